package wisdom

import (
	"context"
	"fmt"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/stoamedia/wisdom-backend/internal/domain"
	"github.com/stoamedia/wisdom-backend/internal/observability"
	pkgerrors "github.com/stoamedia/wisdom-backend/internal/pkg/errors"
	"github.com/stoamedia/wisdom-backend/internal/pkg/logger"
)

// Service runs the full generation pipeline for one request.
type Service interface {
	Handle(ctx context.Context, theme string) (domain.Result, error)
}

// Stage names used in logs and metrics.
const (
	StageRetrieve        = "retrieve"
	StageGenerateContent = "generate_content"
	StageGenerateMusic   = "generate_music"
	StageGenerateVisual  = "generate_visual"
)

// pipelineState is threaded through the stages; each stage reads earlier
// fields and fills in its own.
type pipelineState struct {
	theme       string
	context     []domain.Chunk
	content     domain.Content
	musicPrompt string
	segments    []domain.Segment
}

type orchestrator struct {
	log       *logger.Logger
	retriever Retriever
	content   ContentGenerator
	prompts   PromptGenerator
	metrics   *observability.Metrics
}

func NewService(log *logger.Logger, retriever Retriever, content ContentGenerator, prompts PromptGenerator, metrics *observability.Metrics) Service {
	return &orchestrator{
		log:       log.With("service", "WisdomService"),
		retriever: retriever,
		content:   content,
		prompts:   prompts,
		metrics:   metrics,
	}
}

// Handle runs retrieve -> generate content -> (music || visual). A failure
// in any stage aborts the request; there are no partial results and no
// stage-level retries.
func (o *orchestrator) Handle(ctx context.Context, theme string) (domain.Result, error) {
	theme = strings.TrimSpace(theme)
	if theme == "" {
		return domain.Result{}, fmt.Errorf("%w: theme is required", pkgerrors.ErrInvalidArgument)
	}

	st := pipelineState{theme: theme}
	started := time.Now()

	if err := o.runStage(ctx, StageRetrieve, func(ctx context.Context) error {
		chunks, err := o.retriever.Retrieve(ctx, st.theme)
		if err != nil {
			return err
		}
		st.context = chunks
		return nil
	}); err != nil {
		return domain.Result{}, err
	}

	if err := o.runStage(ctx, StageGenerateContent, func(ctx context.Context) error {
		content, err := o.content.GenerateContent(ctx, st.theme, st.context)
		if err != nil {
			return err
		}
		st.content = content
		return nil
	}); err != nil {
		return domain.Result{}, err
	}

	// Music and visual prompts both depend only on the generated text and
	// are independent of each other.
	eg, egCtx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		return o.runStage(egCtx, StageGenerateMusic, func(ctx context.Context) error {
			music, err := o.prompts.GenerateMusicPrompt(ctx, st.content.Text)
			if err != nil {
				return err
			}
			st.musicPrompt = music
			return nil
		})
	})
	eg.Go(func() error {
		return o.runStage(egCtx, StageGenerateVisual, func(ctx context.Context) error {
			segments, err := o.prompts.GenerateVisualPrompts(ctx, st.content.Text)
			if err != nil {
				return err
			}
			st.segments = segments
			return nil
		})
	})
	if err := eg.Wait(); err != nil {
		return domain.Result{}, err
	}

	o.log.Info("Wisdom generated",
		"theme", theme,
		"title", st.content.Title,
		"segments", len(st.segments),
		"duration_ms", time.Since(started).Milliseconds(),
	)

	return domain.Result{
		Title:       st.content.Title,
		Text:        st.content.Text,
		MusicPrompt: st.musicPrompt,
		Segments:    st.segments,
	}, nil
}

func (o *orchestrator) runStage(ctx context.Context, stage string, fn func(ctx context.Context) error) error {
	start := time.Now()
	err := fn(ctx)
	if o.metrics != nil {
		o.metrics.ObserveStage(stage, time.Since(start), err)
	}
	if err != nil {
		o.log.Error("Pipeline stage failed", "stage", stage, "error", err)
		return fmt.Errorf("stage %s: %w", stage, err)
	}
	return nil
}
