package corpus

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/stoamedia/wisdom-backend/internal/domain"
)

// LoadExamples reads the curated few-shot (theme, content) pairs used as
// demonstrations by the content generator.
func LoadExamples(path string) ([]domain.ExamplePair, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read examples file: %w", err)
	}
	var pairs []domain.ExamplePair
	if err := json.Unmarshal(raw, &pairs); err != nil {
		return nil, fmt.Errorf("parse examples file: %w", err)
	}
	for i, p := range pairs {
		if p.Theme == "" || p.Content == "" {
			return nil, fmt.Errorf("examples entry %d missing theme or content", i)
		}
	}
	return pairs, nil
}
