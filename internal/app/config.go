package app

import (
	"strings"
	"time"

	"github.com/stoamedia/wisdom-backend/internal/clients/openai"
	"github.com/stoamedia/wisdom-backend/internal/pkg/envutil"
	"github.com/stoamedia/wisdom-backend/internal/pkg/logger"
	"github.com/stoamedia/wisdom-backend/internal/wisdom"
)

type Config struct {
	Port           string
	CorpusDir      string
	CorpusMetadata string
	ExamplesFile   string

	ChunkSize    int
	ChunkOverlap int

	Retrieval wisdom.RetrievalConfig

	OpenAI openai.Config

	MetricsEnabled bool
	AllowedOrigins []string
}

func LoadConfig(log *logger.Logger) Config {
	cfg := Config{
		Port:           envutil.GetEnv("PORT", "8080", log),
		CorpusDir:      envutil.GetEnv("CORPUS_DIR", "./data/books", log),
		CorpusMetadata: envutil.GetEnv("CORPUS_METADATA", "./data/metadata.yaml", log),
		ExamplesFile:   envutil.GetEnv("EXAMPLES_FILE", "./data/examples.json", log),
		ChunkSize:      envutil.GetEnvAsInt("CHUNK_SIZE", 1000, log),
		ChunkOverlap:   envutil.GetEnvAsInt("CHUNK_OVERLAP", 200, log),
		Retrieval: wisdom.RetrievalConfig{
			K:        envutil.GetEnvAsInt("RETRIEVAL_K", 5, log),
			FetchK:   envutil.GetEnvAsInt("RETRIEVAL_FETCH_K", 20, log),
			Lambda:   envutil.GetEnvAsFloat("RETRIEVAL_LAMBDA", 0.7, log),
			Strategy: envutil.GetEnv("RETRIEVAL_STRATEGY", wisdom.StrategyMMR, log),
		},
		OpenAI: openai.Config{
			APIKey:         envutil.GetEnv("OPENAI_API_KEY", "", log),
			BaseURL:        envutil.GetEnv("OPENAI_BASE_URL", "", log),
			Model:          envutil.GetEnv("OPENAI_MODEL", "gpt-4o", log),
			EmbedModel:     envutil.GetEnv("OPENAI_EMBED_MODEL", "text-embedding-3-large", log),
			Temperature:    envutil.GetEnvAsFloat("OPENAI_TEMPERATURE", 0, log),
			RequestTimeout: time.Duration(envutil.GetEnvAsInt("OPENAI_TIMEOUT_SECONDS", 120, log)) * time.Second,
			MaxRetries:     envutil.GetEnvAsInt("OPENAI_MAX_RETRIES", 3, log),
		},
		MetricsEnabled: envutil.GetEnvAsBool("METRICS_ENABLED", true, log),
	}

	if origins := envutil.GetEnv("CORS_ALLOWED_ORIGINS", "", log); origins != "" {
		for _, o := range strings.Split(origins, ",") {
			if o = strings.TrimSpace(o); o != "" {
				cfg.AllowedOrigins = append(cfg.AllowedOrigins, o)
			}
		}
	}
	return cfg
}
