package corpus

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stoamedia/wisdom-backend/internal/domain"
	pkgerrors "github.com/stoamedia/wisdom-backend/internal/pkg/errors"
	"github.com/stoamedia/wisdom-backend/internal/pkg/logger"
)

func writeCorpusFile(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestLoaderLoadsInLexicalOrder(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeCorpusFile(t, dir, "b_discourses.txt", "discourses text")
	writeCorpusFile(t, dir, "a_letters.txt", "letters text")
	writeCorpusFile(t, dir, "notes.md", "ignored, not a txt file")

	meta := MetadataTable{
		"a_letters.txt":    {Author: "Seneca", Title: "Letters"},
		"b_discourses.txt": {Author: "Epictetus", Title: "Discourses"},
	}

	docs, err := NewLoader(logger.NewNop(), meta).Load(dir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(docs) != 2 {
		t.Fatalf("got %d docs, want 2", len(docs))
	}
	if docs[0].Meta.Author != "Seneca" || docs[1].Meta.Author != "Epictetus" {
		t.Fatalf("wrong order: %q then %q", docs[0].Meta.Author, docs[1].Meta.Author)
	}
	if docs[0].Text != "letters text" {
		t.Fatalf("unexpected text %q", docs[0].Text)
	}
}

func TestLoaderFailsOnMissingMetadata(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeCorpusFile(t, dir, "known.txt", "tagged")
	writeCorpusFile(t, dir, "orphan.txt", "untagged")

	meta := MetadataTable{"known.txt": {Author: "Seneca", Title: "Letters"}}

	_, err := NewLoader(logger.NewNop(), meta).Load(dir)
	if err == nil {
		t.Fatal("expected error for file without metadata")
	}
	if !errors.Is(err, pkgerrors.ErrMetadataNotFound) {
		t.Fatalf("error = %v, want ErrMetadataNotFound", err)
	}
}

func TestLoaderFailsOnMissingDirectory(t *testing.T) {
	t.Parallel()

	_, err := NewLoader(logger.NewNop(), MetadataTable{}).Load(filepath.Join(t.TempDir(), "nope"))
	if err == nil {
		t.Fatal("expected error for missing corpus dir")
	}
}

func TestLoadMetadataRejectsBlankEntries(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "metadata.yaml")
	if err := os.WriteFile(path, []byte("letters.txt:\n  author: \"\"\n  title: Letters\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadMetadata(path); err == nil {
		t.Fatal("expected error for blank author")
	}
}

func TestLoadExamples(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "examples.json")
	if err := os.WriteFile(path, []byte(`[{"theme":"control","content":"Some things are up to us."}]`), 0o644); err != nil {
		t.Fatal(err)
	}
	pairs, err := LoadExamples(path)
	if err != nil {
		t.Fatalf("LoadExamples: %v", err)
	}
	want := []domain.ExamplePair{{Theme: "control", Content: "Some things are up to us."}}
	if len(pairs) != 1 || pairs[0] != want[0] {
		t.Fatalf("pairs = %+v, want %+v", pairs, want)
	}

	if err := os.WriteFile(path, []byte(`[{"theme":"","content":"x"}]`), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadExamples(path); err == nil {
		t.Fatal("expected error for blank theme")
	}
}
