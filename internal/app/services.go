package app

import (
	"context"
	"fmt"

	"github.com/stoamedia/wisdom-backend/internal/corpus"
	"github.com/stoamedia/wisdom-backend/internal/observability"
	"github.com/stoamedia/wisdom-backend/internal/pkg/logger"
	"github.com/stoamedia/wisdom-backend/internal/vectorstore/memory"
	"github.com/stoamedia/wisdom-backend/internal/wisdom"
)

type Services struct {
	Store  *memory.Store
	Wisdom wisdom.Service
}

// wireServices builds the embedding index and the generation pipeline.
// Ingestion runs to completion here; the server never starts serving on a
// partially built index.
func wireServices(ctx context.Context, log *logger.Logger, cfg Config, clients Clients, metrics *observability.Metrics) (Services, error) {
	meta, err := corpus.LoadMetadata(cfg.CorpusMetadata)
	if err != nil {
		return Services{}, fmt.Errorf("ingestion: %w", err)
	}

	docs, err := corpus.NewLoader(log, meta).Load(cfg.CorpusDir)
	if err != nil {
		return Services{}, fmt.Errorf("ingestion: %w", err)
	}

	chunks := corpus.SplitAll(docs, cfg.ChunkSize, cfg.ChunkOverlap)
	log.Info("Corpus chunked", "documents", len(docs), "chunks", len(chunks), "chunk_size", cfg.ChunkSize, "overlap", cfg.ChunkOverlap)

	store := memory.NewStore(log, clients.OpenAI)
	if err := store.Add(ctx, chunks); err != nil {
		return Services{}, fmt.Errorf("ingestion: %w", err)
	}
	if metrics != nil {
		metrics.ChunksIndexedTotal.Add(float64(store.Size()))
	}
	log.Info("Embedding index built", "chunks", store.Size())

	examples, err := corpus.LoadExamples(cfg.ExamplesFile)
	if err != nil {
		return Services{}, fmt.Errorf("load examples: %w", err)
	}

	retriever := wisdom.NewRetriever(log, store, cfg.Retrieval, metrics)
	contentGen := wisdom.NewContentGenerator(log, clients.OpenAI, examples)
	promptGen := wisdom.NewPromptGenerator(log, clients.OpenAI)
	svc := wisdom.NewService(log, retriever, contentGen, promptGen, metrics)

	return Services{Store: store, Wisdom: svc}, nil
}
