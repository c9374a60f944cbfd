package wisdom

import (
	"context"
	"fmt"
	"strings"

	"github.com/stoamedia/wisdom-backend/internal/clients/openai"
	"github.com/stoamedia/wisdom-backend/internal/domain"
	pkgerrors "github.com/stoamedia/wisdom-backend/internal/pkg/errors"
	"github.com/stoamedia/wisdom-backend/internal/pkg/logger"
)

// ContentGenerator produces the core {title, text} artifact for a theme.
type ContentGenerator interface {
	GenerateContent(ctx context.Context, theme string, context []domain.Chunk) (domain.Content, error)
}

const contentSystemPrompt = `You are an AI philosopher assistant. Create content based on the given theme, using the retrieved context as inspiration.
Guidelines for your responses:
- Be concise yet profound
- Connect ancient wisdom to modern practical application
- Use rhetorical questions and bold assertions
- Maintain a direct, thoughtful, and challenging tone`

var contentSchema = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"title": map[string]any{
			"type":        "string",
			"description": "The title of the philosophical content",
		},
		"text": map[string]any{
			"type":        "string",
			"description": "The philosophical content generated based on the theme and context",
		},
	},
	"required":             []string{"title", "text"},
	"additionalProperties": false,
}

type contentGenerator struct {
	log      *logger.Logger
	ai       openai.Client
	examples []domain.ExamplePair
}

func NewContentGenerator(log *logger.Logger, ai openai.Client, examples []domain.ExamplePair) ContentGenerator {
	return &contentGenerator{
		log:      log.With("service", "ContentGenerator"),
		ai:       ai,
		examples: examples,
	}
}

func (g *contentGenerator) GenerateContent(ctx context.Context, theme string, chunks []domain.Chunk) (domain.Content, error) {
	user := g.buildUserPrompt(theme, chunks)

	obj, err := g.ai.GenerateJSON(ctx, contentSystemPrompt, user, "philosophical_content", contentSchema)
	if err != nil {
		return domain.Content{}, fmt.Errorf("generate content: %w", err)
	}

	title, _ := obj["title"].(string)
	text, _ := obj["text"].(string)
	if strings.TrimSpace(title) == "" || strings.TrimSpace(text) == "" {
		return domain.Content{}, fmt.Errorf("%w: content response missing title or text", pkgerrors.ErrSchemaViolation)
	}

	g.log.Debug("Content generated", "theme", theme, "title", title, "text_len", len(text))
	return domain.Content{Title: title, Text: text}, nil
}

// buildUserPrompt assembles few-shot demonstrations, the annotated context
// chunks and the requested theme into one user message.
func (g *contentGenerator) buildUserPrompt(theme string, chunks []domain.Chunk) string {
	var b strings.Builder

	for _, ex := range g.examples {
		fmt.Fprintf(&b, "Theme: %s\nContent: %s\n\n", ex.Theme, ex.Content)
	}

	annotated := make([]string, 0, len(chunks))
	for _, ch := range chunks {
		annotated = append(annotated, fmt.Sprintf("[From %s's %q]\n%s", ch.Meta.Author, ch.Meta.Title, ch.Text))
	}

	fmt.Fprintf(&b, "Context: %s\nTheme: %s", strings.Join(annotated, "\n\n"), theme)
	return b.String()
}
