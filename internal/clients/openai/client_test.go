package openai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stoamedia/wisdom-backend/internal/pkg/logger"
)

func newTestClient(t *testing.T, baseURL string, maxRetries int) Client {
	t.Helper()
	c, err := NewClient(logger.NewNop(), Config{
		APIKey:         "test-key",
		BaseURL:        baseURL,
		Model:          "gpt-4o",
		EmbedModel:     "text-embedding-3-large",
		RequestTimeout: 5 * time.Second,
		MaxRetries:     maxRetries,
	})
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	return c
}

func TestEmbedOrdersVectorsByIndex(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/embeddings" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		// Vectors returned out of order; the client must restore input order.
		_ = json.NewEncoder(w).Encode(map[string]any{
			"data": []map[string]any{
				{"index": 1, "embedding": []float64{0, 1}},
				{"index": 0, "embedding": []float64{1, 0}},
			},
		})
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL, 0)
	got, err := c.Embed(context.Background(), []string{"first", "second"})
	if err != nil {
		t.Fatalf("Embed: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d vectors", len(got))
	}
	if got[0][0] != 1 || got[1][1] != 1 {
		t.Fatalf("vectors out of order: %v", got)
	}
}

func TestEmbedFailsOnMissingVector(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{
			"data": []map[string]any{{"index": 0, "embedding": []float64{1, 0}}},
		})
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL, 0)
	if _, err := c.Embed(context.Background(), []string{"a", "b"}); err == nil {
		t.Fatal("expected error for missing embedding")
	}
}

func responsesBody(text string) map[string]any {
	return map[string]any{
		"output": []map[string]any{
			{
				"type": "message",
				"role": "assistant",
				"content": []map[string]any{
					{"type": "output_text", "text": text},
				},
			},
		},
	}
}

func TestGenerateJSONParsesStructuredOutput(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req map[string]any
		_ = json.NewDecoder(r.Body).Decode(&req)
		format, _ := req["text"].(map[string]any)["format"].(map[string]any)
		if format["type"] != "json_schema" || format["strict"] != true {
			t.Errorf("format not strict json_schema: %v", format)
		}
		_ = json.NewEncoder(w).Encode(responsesBody(`{"title":"On Fate","text":"Amor fati."}`))
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL, 0)
	schema := map[string]any{"type": "object"}
	got, err := c.GenerateJSON(context.Background(), "sys", "user", "content", schema)
	if err != nil {
		t.Fatalf("GenerateJSON: %v", err)
	}
	if got["title"] != "On Fate" {
		t.Fatalf("parsed object = %v", got)
	}
}

func TestGenerateJSONRejectsNonJSONOutput(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(responsesBody("sorry, plain prose"))
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL, 0)
	if _, err := c.GenerateJSON(context.Background(), "sys", "user", "content", map[string]any{"type": "object"}); err == nil {
		t.Fatal("expected parse failure for non-JSON output")
	}
}

func TestDoRetriesRetryableStatus(t *testing.T) {
	t.Parallel()

	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) == 1 {
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		_ = json.NewEncoder(w).Encode(responsesBody("recovered"))
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL, 2)
	got, err := c.GenerateText(context.Background(), "sys", "user")
	if err != nil {
		t.Fatalf("GenerateText: %v", err)
	}
	if got != "recovered" {
		t.Fatalf("text = %q", got)
	}
	if n := atomic.LoadInt32(&calls); n != 2 {
		t.Fatalf("server called %d times, want 2", n)
	}
}

func TestDoDoesNotRetryClientError(t *testing.T) {
	t.Parallel()

	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL, 3)
	if _, err := c.GenerateText(context.Background(), "sys", "user"); err == nil {
		t.Fatal("expected error")
	}
	if n := atomic.LoadInt32(&calls); n != 1 {
		t.Fatalf("server called %d times, want 1 (no retry on 401)", n)
	}
}
