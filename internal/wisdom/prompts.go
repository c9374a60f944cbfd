package wisdom

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/stoamedia/wisdom-backend/internal/clients/openai"
	"github.com/stoamedia/wisdom-backend/internal/domain"
	pkgerrors "github.com/stoamedia/wisdom-backend/internal/pkg/errors"
	"github.com/stoamedia/wisdom-backend/internal/pkg/logger"
)

// PromptGenerator derives the auxiliary music and image generation prompts
// from the core generated text.
type PromptGenerator interface {
	GenerateMusicPrompt(ctx context.Context, text string) (string, error)
	GenerateVisualPrompts(ctx context.Context, text string) ([]domain.Segment, error)
}

const musicSystemPrompt = `You are a creative AI assistant specialized in transforming philosophical content into concise music generation prompts.
Given the philosophical text, extract the core emotional tone, theme, and atmosphere.
Then construct a music prompt specifying:
1. Genre and mood
2. Key instrumentation and arrangement
3. Structural elements
4. Style or influence reference
5. Tempo indication

Output only the final music prompt as plain text without subheadings or special characters.
Keep music prompts under 500 characters.`

const visualSystemPrompt = `You are an AI assistant that transforms philosophical text into concise, visually striking image generation prompts that blend cinematic technique with surrealist elements, set within the world of ancient Rome and Greece.
Analyze the content to extract key visual metaphors, settings, and emotional tones, focusing on Stoic philosophy. When specific philosophers are mentioned, feature them as figures in the scene, dressed in authentic period attire.
Then build an image prompt for the segment by listing, in order and separated by commas:
1. Style keyword (always start with "Cinematic surrealism")
2. Composition, lighting and framing
3. Scene and background details
4. Main focus, its appearance and action
5. Technical and cinematic modifiers

Output only the final image prompt as plain text without subheadings or special characters.
Keep image prompts under 1500 characters.`

var musicPromptSchema = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"musicPrompt": map[string]any{
			"type":        "string",
			"description": "Prompt for generating background music",
		},
	},
	"required":             []string{"musicPrompt"},
	"additionalProperties": false,
}

var imagePromptSchema = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"imagePrompt": map[string]any{
			"type":        "string",
			"description": "Prompt for generating a static image",
		},
	},
	"required":             []string{"imagePrompt"},
	"additionalProperties": false,
}

var segmentBoundary = regexp.MustCompile(`\n{2,}`)

// SplitSegments cuts generated text into paragraph segments: split on two
// or more newlines, trim whitespace, drop empties. Order-preserving and
// deterministic.
func SplitSegments(text string) []string {
	parts := segmentBoundary.Split(text, -1)
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

type promptGenerator struct {
	log *logger.Logger
	ai  openai.Client
}

func NewPromptGenerator(log *logger.Logger, ai openai.Client) PromptGenerator {
	return &promptGenerator{
		log: log.With("service", "PromptGenerator"),
		ai:  ai,
	}
}

func (g *promptGenerator) GenerateMusicPrompt(ctx context.Context, text string) (string, error) {
	user := fmt.Sprintf("Philosophical Content:\n\"\"\"\n%s\n\"\"\"", text)

	obj, err := g.ai.GenerateJSON(ctx, musicSystemPrompt, user, "music_prompt", musicPromptSchema)
	if err != nil {
		return "", fmt.Errorf("generate music prompt: %w", err)
	}
	prompt, _ := obj["musicPrompt"].(string)
	if strings.TrimSpace(prompt) == "" {
		return "", fmt.Errorf("%w: music response missing musicPrompt", pkgerrors.ErrSchemaViolation)
	}
	return prompt, nil
}

// GenerateVisualPrompts issues one structured model call per paragraph
// segment. Calls run concurrently; each goroutine writes to its own slot so
// the output keeps input order regardless of completion order.
func (g *promptGenerator) GenerateVisualPrompts(ctx context.Context, text string) ([]domain.Segment, error) {
	segments := SplitSegments(text)
	out := make([]domain.Segment, len(segments))

	eg, egCtx := errgroup.WithContext(ctx)
	for i, seg := range segments {
		i, seg := i, seg
		eg.Go(func() error {
			user := fmt.Sprintf("Content:\n\"\"\"\n%s\n\"\"\"\nSegment:\n\"\"\"\n%s\n\"\"\"", text, seg)

			obj, err := g.ai.GenerateJSON(egCtx, visualSystemPrompt, user, "image_prompt", imagePromptSchema)
			if err != nil {
				return fmt.Errorf("generate visual prompt for segment %d: %w", i, err)
			}
			prompt, _ := obj["imagePrompt"].(string)
			if strings.TrimSpace(prompt) == "" {
				return fmt.Errorf("%w: visual response for segment %d missing imagePrompt", pkgerrors.ErrSchemaViolation, i)
			}
			out[i] = domain.Segment{Text: seg, ImagePrompt: prompt}
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	g.log.Debug("Visual prompts generated", "segments", len(out))
	return out, nil
}
