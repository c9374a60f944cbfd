package corpus

import (
	"strings"
	"testing"

	"github.com/stoamedia/wisdom-backend/internal/domain"
)

func docWith(text string) domain.RawDocument {
	return domain.RawDocument{
		SourcePath: "books/test.txt",
		Text:       text,
		Meta:       domain.DocumentMeta{Author: "Seneca", Title: "Letters"},
	}
}

func TestSplitReconstructsOriginalText(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name      string
		text      string
		chunkSize int
		overlap   int
	}{
		{"even_windows", strings.Repeat("abcdefghij", 10), 20, 5},
		{"uneven_tail", strings.Repeat("x", 103), 25, 10},
		{"no_overlap", strings.Repeat("stoic wisdom ", 17), 30, 0},
		{"tiny_doc", "ab", 1000, 200},
		{"chunk_equals_doc", strings.Repeat("y", 50), 50, 10},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			chunks := Split(docWith(tc.text), tc.chunkSize, tc.overlap)
			if len(chunks) == 0 {
				t.Fatal("no chunks produced")
			}

			var b strings.Builder
			for i, ch := range chunks {
				if ch.Text == "" {
					t.Fatalf("chunk %d is empty", i)
				}
				if i == 0 {
					b.WriteString(ch.Text)
					continue
				}
				b.WriteString(ch.Text[tc.overlap:])
			}
			if got := b.String(); got != tc.text {
				t.Fatalf("reconstruction mismatch: got len=%d want len=%d", len(got), len(tc.text))
			}
		})
	}
}

func TestSplitPropagatesMetadata(t *testing.T) {
	t.Parallel()

	doc := docWith(strings.Repeat("virtue is the only good ", 40))
	chunks := Split(doc, 100, 20)
	for i, ch := range chunks {
		if ch.Meta != doc.Meta {
			t.Fatalf("chunk %d metadata = %+v, want %+v", i, ch.Meta, doc.Meta)
		}
		if ch.SourcePath != doc.SourcePath {
			t.Fatalf("chunk %d source = %q, want %q", i, ch.SourcePath, doc.SourcePath)
		}
		if ch.Index != i {
			t.Fatalf("chunk %d carries index %d", i, ch.Index)
		}
	}
}

func TestSplitDeterministicBoundaries(t *testing.T) {
	t.Parallel()

	doc := docWith(strings.Repeat("memento mori ", 50))
	a := Split(doc, 120, 30)
	b := Split(doc, 120, 30)
	if len(a) != len(b) {
		t.Fatalf("chunk counts differ: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i].Text != b[i].Text {
			t.Fatalf("chunk %d text differs between runs", i)
		}
	}
}

func TestSplitDegenerateParameters(t *testing.T) {
	t.Parallel()

	if got := Split(docWith(""), 100, 10); got != nil {
		t.Fatalf("empty doc produced %d chunks", len(got))
	}

	// overlap >= chunkSize must not loop forever or emit empty chunks.
	chunks := Split(docWith(strings.Repeat("z", 40)), 10, 10)
	if len(chunks) == 0 {
		t.Fatal("no chunks produced")
	}
	total := 0
	for _, ch := range chunks {
		if ch.Text == "" {
			t.Fatal("empty chunk emitted")
		}
		total += len(ch.Text)
	}
	if total != 40 {
		t.Fatalf("chunks cover %d bytes, want 40", total)
	}
}
