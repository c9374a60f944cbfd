package corpus

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/stoamedia/wisdom-backend/internal/domain"
	pkgerrors "github.com/stoamedia/wisdom-backend/internal/pkg/errors"
	"github.com/stoamedia/wisdom-backend/internal/pkg/logger"
)

// Loader reads the flat directory of source texts and tags each file with
// its metadata entry. A file with no metadata entry fails the whole load.
type Loader struct {
	log  *logger.Logger
	meta MetadataTable
}

func NewLoader(log *logger.Logger, meta MetadataTable) *Loader {
	return &Loader{log: log.With("service", "CorpusLoader"), meta: meta}
}

// Load returns the corpus documents in lexical filename order.
func (l *Loader) Load(dir string) ([]domain.RawDocument, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read corpus dir %q: %w", dir, err)
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if !strings.HasSuffix(strings.ToLower(e.Name()), ".txt") {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)

	docs := make([]domain.RawDocument, 0, len(names))
	for _, name := range names {
		meta, ok := l.meta[name]
		if !ok {
			return nil, fmt.Errorf("%w: %s", pkgerrors.ErrMetadataNotFound, name)
		}
		path := filepath.Join(dir, name)
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read corpus file %q: %w", path, err)
		}
		if len(raw) == 0 {
			l.log.Warn("Skipping empty corpus file", "file", name)
			continue
		}
		docs = append(docs, domain.RawDocument{
			SourcePath: path,
			Text:       string(raw),
			Meta:       meta,
		})
	}

	l.log.Info("Corpus loaded", "dir", dir, "documents", len(docs))
	return docs, nil
}
