package wisdom

import (
	"context"
	"errors"
	"testing"

	"github.com/stoamedia/wisdom-backend/internal/domain"
	pkgerrors "github.com/stoamedia/wisdom-backend/internal/pkg/errors"
	"github.com/stoamedia/wisdom-backend/internal/pkg/logger"
)

type stubRetriever struct {
	calls  int
	chunks []domain.Chunk
	err    error
}

func (s *stubRetriever) Retrieve(context.Context, string) ([]domain.Chunk, error) {
	s.calls++
	return s.chunks, s.err
}

type stubContentGen struct {
	content domain.Content
	err     error
}

func (s *stubContentGen) GenerateContent(context.Context, string, []domain.Chunk) (domain.Content, error) {
	return s.content, s.err
}

type stubPromptGen struct {
	music    string
	musicErr error
	segments []domain.Segment
	segErr   error
}

func (s *stubPromptGen) GenerateMusicPrompt(context.Context, string) (string, error) {
	return s.music, s.musicErr
}

func (s *stubPromptGen) GenerateVisualPrompts(context.Context, string) ([]domain.Segment, error) {
	return s.segments, s.segErr
}

func TestHandleRunsAllStages(t *testing.T) {
	t.Parallel()

	ret := &stubRetriever{chunks: []domain.Chunk{{Text: "ctx"}}}
	svc := NewService(logger.NewNop(),
		ret,
		&stubContentGen{content: domain.Content{Title: "On Grit", Text: "one\n\ntwo"}},
		&stubPromptGen{
			music: "slow strings",
			segments: []domain.Segment{
				{Text: "one", ImagePrompt: "p1"},
				{Text: "two", ImagePrompt: "p2"},
			},
		},
		nil,
	)

	got, err := svc.Handle(context.Background(), "resilience")
	if err != nil {
		t.Fatalf("Handle: %v", err)
	}
	if ret.calls != 1 {
		t.Fatalf("retriever called %d times, want 1", ret.calls)
	}
	if got.Title != "On Grit" || got.Text != "one\n\ntwo" || got.MusicPrompt != "slow strings" {
		t.Fatalf("result = %+v", got)
	}
	if len(got.Segments) != 2 || got.Segments[0].ImagePrompt != "p1" {
		t.Fatalf("segments = %+v", got.Segments)
	}
}

func TestHandleRejectsBlankTheme(t *testing.T) {
	t.Parallel()

	ret := &stubRetriever{}
	svc := NewService(logger.NewNop(), ret, &stubContentGen{}, &stubPromptGen{}, nil)

	_, err := svc.Handle(context.Background(), "   ")
	if err == nil {
		t.Fatal("expected error for blank theme")
	}
	if !errors.Is(err, pkgerrors.ErrInvalidArgument) {
		t.Fatalf("error = %v, want ErrInvalidArgument", err)
	}
	if ret.calls != 0 {
		t.Fatalf("retriever called %d times for invalid theme, want 0", ret.calls)
	}
}

func TestHandleAbortsOnStageFailure(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name      string
		retriever *stubRetriever
		content   *stubContentGen
		prompts   *stubPromptGen
	}{
		{
			name:      "retrieve_fails",
			retriever: &stubRetriever{err: errors.New("index down")},
			content:   &stubContentGen{},
			prompts:   &stubPromptGen{},
		},
		{
			name:      "content_fails",
			retriever: &stubRetriever{},
			content:   &stubContentGen{err: errors.New("model refused")},
			prompts:   &stubPromptGen{},
		},
		{
			name:      "music_fails",
			retriever: &stubRetriever{},
			content:   &stubContentGen{content: domain.Content{Title: "T", Text: "x"}},
			prompts:   &stubPromptGen{musicErr: errors.New("rate limited"), segments: []domain.Segment{{Text: "x", ImagePrompt: "p"}}},
		},
		{
			name:      "visual_fails",
			retriever: &stubRetriever{},
			content:   &stubContentGen{content: domain.Content{Title: "T", Text: "x"}},
			prompts:   &stubPromptGen{music: "m", segErr: errors.New("bad schema")},
		},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			svc := NewService(logger.NewNop(), tc.retriever, tc.content, tc.prompts, nil)
			got, err := svc.Handle(context.Background(), "theme")
			if err == nil {
				t.Fatal("expected stage failure to abort the request")
			}
			if got.Title != "" || got.Text != "" || got.MusicPrompt != "" || got.Segments != nil {
				t.Fatalf("partial result leaked: %+v", got)
			}
		})
	}
}
