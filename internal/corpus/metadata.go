package corpus

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/stoamedia/wisdom-backend/internal/domain"
)

// MetadataTable maps a corpus filename (base name, not path) to the work's
// author and title. Loaded once at startup and read-only afterwards.
type MetadataTable map[string]domain.DocumentMeta

// LoadMetadata reads the metadata file. Every entry must carry a non-empty
// author and title; a blank entry would silently corrupt downstream prompts.
func LoadMetadata(path string) (MetadataTable, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read corpus metadata: %w", err)
	}
	var table MetadataTable
	if err := yaml.Unmarshal(raw, &table); err != nil {
		return nil, fmt.Errorf("parse corpus metadata: %w", err)
	}
	for name, meta := range table {
		if meta.Author == "" || meta.Title == "" {
			return nil, fmt.Errorf("corpus metadata entry %q missing author or title", name)
		}
	}
	return table, nil
}
