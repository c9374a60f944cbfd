package corpus

import (
	"github.com/google/uuid"

	"github.com/stoamedia/wisdom-backend/internal/domain"
)

// Split cuts a document into overlapping windows of chunkSize bytes of
// UTF-8 text, with overlap bytes shared between consecutive chunks.
// Deterministic; never emits an empty chunk; document metadata is copied
// onto every chunk. Chunks are not trimmed: concatenating chunk[0] with
// chunk[i][overlap:] for i > 0 reproduces the document text byte for byte.
func Split(doc domain.RawDocument, chunkSize, overlap int) []domain.Chunk {
	text := doc.Text
	if text == "" {
		return nil
	}
	if chunkSize <= 0 {
		chunkSize = 1000
	}
	if overlap < 0 {
		overlap = 0
	}
	step := chunkSize - overlap
	if step <= 0 {
		step = chunkSize
		overlap = 0
	}

	var out []domain.Chunk
	idx := 0
	for start := 0; start < len(text); start += step {
		end := start + chunkSize
		if end > len(text) {
			end = len(text)
		}
		out = append(out, domain.Chunk{
			ID:         uuid.New(),
			SourcePath: doc.SourcePath,
			Index:      idx,
			Text:       text[start:end],
			Meta:       doc.Meta,
		})
		idx++
		if end == len(text) {
			break
		}
	}
	return out
}

// SplitAll chunks every document with the same parameters, preserving
// document order.
func SplitAll(docs []domain.RawDocument, chunkSize, overlap int) []domain.Chunk {
	var out []domain.Chunk
	for _, doc := range docs {
		out = append(out, Split(doc, chunkSize, overlap)...)
	}
	return out
}
