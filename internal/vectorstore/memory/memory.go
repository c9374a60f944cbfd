package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/viant/vec/search"

	"github.com/stoamedia/wisdom-backend/internal/domain"
	"github.com/stoamedia/wisdom-backend/internal/pkg/logger"
)

// Embedder converts text into vectors. Satisfied by the OpenAI client.
type Embedder interface {
	Embed(ctx context.Context, inputs []string) ([][]float32, error)
}

const embedBatchSize = 64

// Store is an in-memory brute-force vector index. It is append-only during
// startup ingestion and read-only afterwards, so concurrent searches need
// no coordination beyond the RWMutex guarding the Add phase.
type Store struct {
	mu       sync.RWMutex
	log      *logger.Logger
	embedder Embedder
	chunks   []domain.Chunk
	mags     []float32
}

func NewStore(log *logger.Logger, embedder Embedder) *Store {
	return &Store{
		log:      log.With("service", "VectorStore"),
		embedder: embedder,
	}
}

// Add embeds and indexes the chunks. Append-only, no dedup.
func (s *Store) Add(ctx context.Context, chunks []domain.Chunk) error {
	for start := 0; start < len(chunks); start += embedBatchSize {
		end := start + embedBatchSize
		if end > len(chunks) {
			end = len(chunks)
		}
		batch := chunks[start:end]

		texts := make([]string, len(batch))
		for i, ch := range batch {
			texts[i] = ch.Text
		}
		vecs, err := s.embedder.Embed(ctx, texts)
		if err != nil {
			return fmt.Errorf("embed chunk batch [%d:%d]: %w", start, end, err)
		}
		if len(vecs) != len(batch) {
			return fmt.Errorf("embed chunk batch [%d:%d]: got %d vectors", start, end, len(vecs))
		}

		s.mu.Lock()
		for i, ch := range batch {
			ch.Embedding = vecs[i]
			s.chunks = append(s.chunks, ch)
			s.mags = append(s.mags, search.Float32s(vecs[i]).Magnitude())
		}
		s.mu.Unlock()

		s.log.Debug("Indexed chunk batch", "from", start, "to", end, "total", len(chunks))
	}
	return nil
}

// Size returns the number of indexed chunks.
func (s *Store) Size() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.chunks)
}

// Search returns the k chunks most similar to query, ranked by descending
// cosine similarity. Never errors on an empty index; returns at most
// min(k, size) results.
func (s *Store) Search(ctx context.Context, query string, k int) ([]domain.Chunk, error) {
	ranked, err := s.rank(ctx, query)
	if err != nil {
		return nil, err
	}
	if k > len(ranked) {
		k = len(ranked)
	}
	if k < 0 {
		k = 0
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Chunk, 0, k)
	for _, r := range ranked[:k] {
		out = append(out, s.chunks[r.idx])
	}
	return out, nil
}

// SearchMMR fetches the top fetchK candidates by similarity and greedily
// selects k of them by maximal marginal relevance:
//
//	argmax  lambda*sim(query, c) - (1-lambda)*max sim(c, selected)
//
// Ties break toward the candidate with the better similarity rank. The
// result has no duplicates and at most min(k, fetchK, size) entries.
func (s *Store) SearchMMR(ctx context.Context, query string, k, fetchK int, lambda float64) ([]domain.Chunk, error) {
	ranked, err := s.rank(ctx, query)
	if err != nil {
		return nil, err
	}
	if fetchK > len(ranked) {
		fetchK = len(ranked)
	}
	if fetchK < 0 {
		fetchK = 0
	}
	candidates := ranked[:fetchK]
	if k > len(candidates) {
		k = len(candidates)
	}
	if k < 0 {
		k = 0
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	selected := make([]int, 0, k)   // indices into candidates, in pick order
	picked := make([]bool, fetchK)  // candidate rank -> already selected
	for len(selected) < k {
		best := -1
		bestScore := 0.0
		for rank, cand := range candidates {
			if picked[rank] {
				continue
			}
			redundancy := 0.0
			for _, sel := range selected {
				sim := s.pairSim(cand.idx, candidates[sel].idx)
				if sim > redundancy {
					redundancy = sim
				}
			}
			score := lambda*cand.score - (1-lambda)*redundancy
			// Strict > keeps the earlier (better-ranked) candidate on ties.
			if best == -1 || score > bestScore {
				best = rank
				bestScore = score
			}
		}
		picked[best] = true
		selected = append(selected, best)
	}

	out := make([]domain.Chunk, 0, len(selected))
	for _, rank := range selected {
		out = append(out, s.chunks[candidates[rank].idx])
	}
	return out, nil
}

type scoredIdx struct {
	idx   int
	score float64
}

// rank embeds the query and scores every indexed chunk, descending.
// Sort is stable so equal scores keep insertion order.
func (s *Store) rank(ctx context.Context, query string) ([]scoredIdx, error) {
	s.mu.RLock()
	size := len(s.chunks)
	s.mu.RUnlock()
	if size == 0 {
		return nil, nil
	}

	vecs, err := s.embedder.Embed(ctx, []string{query})
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}
	if len(vecs) != 1 {
		return nil, fmt.Errorf("embed query: got %d vectors", len(vecs))
	}
	qv := vecs[0]
	qmag := search.Float32s(qv).Magnitude()

	s.mu.RLock()
	defer s.mu.RUnlock()

	ranked := make([]scoredIdx, len(s.chunks))
	for i := range s.chunks {
		ranked[i] = scoredIdx{idx: i, score: cosineSim(qv, qmag, s.chunks[i].Embedding, s.mags[i])}
	}
	sort.SliceStable(ranked, func(a, b int) bool { return ranked[a].score > ranked[b].score })
	return ranked, nil
}

func (s *Store) pairSim(i, j int) float64 {
	return cosineSim(s.chunks[i].Embedding, s.mags[i], s.chunks[j].Embedding, s.mags[j])
}

func cosineSim(a []float32, amag float32, b []float32, bmag float32) float64 {
	if len(a) == 0 || len(b) == 0 || amag == 0 || bmag == 0 {
		return 0
	}
	dist := search.Float32s(a).CosineDistanceWithMagnitude(b, amag, bmag)
	return 1 - float64(dist)
}
