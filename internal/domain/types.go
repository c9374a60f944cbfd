package domain

import "github.com/google/uuid"

// DocumentMeta tags a source work with its author and title. Loaded once
// from the corpus metadata file and read-only afterwards.
type DocumentMeta struct {
	Author string `yaml:"author" json:"author"`
	Title  string `yaml:"title" json:"title"`
}

// RawDocument is one source text file, tagged with its metadata.
// Discarded after chunking.
type RawDocument struct {
	SourcePath string
	Text       string
	Meta       DocumentMeta
}

// Chunk is an overlapping window of a source document. The embedding is
// populated at index time; chunks are immutable once indexed.
type Chunk struct {
	ID         uuid.UUID
	SourcePath string
	Index      int
	Text       string
	Meta       DocumentMeta
	Embedding  []float32
}

// ExamplePair is one curated (theme, content) few-shot demonstration.
type ExamplePair struct {
	Theme   string `json:"theme"`
	Content string `json:"content"`
}

// Content is the core generated artifact: a titled piece of writing.
type Content struct {
	Title string `json:"title"`
	Text  string `json:"text"`
}

// Segment is one paragraph of generated text paired with its image prompt.
type Segment struct {
	Text        string `json:"text"`
	ImagePrompt string `json:"imagePrompt"`
}

// Result aggregates everything one wisdom request produces.
type Result struct {
	Title       string    `json:"title"`
	Text        string    `json:"text"`
	MusicPrompt string    `json:"musicPrompt"`
	Segments    []Segment `json:"segments"`
}
