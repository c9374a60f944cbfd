package wisdom

import (
	"context"

	"github.com/stoamedia/wisdom-backend/internal/domain"
	"github.com/stoamedia/wisdom-backend/internal/observability"
	"github.com/stoamedia/wisdom-backend/internal/pkg/logger"
	"github.com/stoamedia/wisdom-backend/internal/vectorstore/memory"
)

// Retriever fetches context chunks for a theme.
type Retriever interface {
	Retrieve(ctx context.Context, theme string) ([]domain.Chunk, error)
}

// Retrieval strategies.
const (
	StrategyMMR        = "mmr"
	StrategySimilarity = "similarity"
)

// RetrievalConfig tunes the diversity-aware search. Lambda close to 1
// favors pure relevance, close to 0 favors diversity among results.
// Strategy selects between MMR and plain similarity ranking.
type RetrievalConfig struct {
	K        int
	FetchK   int
	Lambda   float64
	Strategy string
}

type retriever struct {
	log     *logger.Logger
	store   *memory.Store
	cfg     RetrievalConfig
	metrics *observability.Metrics
}

func NewRetriever(log *logger.Logger, store *memory.Store, cfg RetrievalConfig, metrics *observability.Metrics) Retriever {
	if cfg.K <= 0 {
		cfg.K = 5
	}
	if cfg.FetchK <= 0 {
		cfg.FetchK = 20
	}
	if cfg.Lambda <= 0 || cfg.Lambda > 1 {
		cfg.Lambda = 0.7
	}
	if cfg.Strategy != StrategySimilarity {
		cfg.Strategy = StrategyMMR
	}
	return &retriever{
		log:     log.With("service", "Retriever"),
		store:   store,
		cfg:     cfg,
		metrics: metrics,
	}
}

func (r *retriever) Retrieve(ctx context.Context, theme string) ([]domain.Chunk, error) {
	var (
		chunks []domain.Chunk
		err    error
	)
	if r.cfg.Strategy == StrategySimilarity {
		chunks, err = r.store.Search(ctx, theme, r.cfg.K)
	} else {
		chunks, err = r.store.SearchMMR(ctx, theme, r.cfg.K, r.cfg.FetchK, r.cfg.Lambda)
	}
	if err != nil {
		return nil, err
	}
	if r.metrics != nil {
		r.metrics.RetrievalResultsCount.Observe(float64(len(chunks)))
	}
	r.log.Debug("Retrieved context", "theme", theme, "chunks", len(chunks))
	return chunks, nil
}
