package marker

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *GeminiClient {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	c := NewGeminiClient("test-key", "gemini-test")
	c.baseURL = srv.URL
	return c
}

func TestGenerateContent_Success(t *testing.T) {
	var gotPath, gotKey string
	var gotReq geminiRequest

	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotKey = r.Header.Get("x-goog-api-key")
		if err := json.NewDecoder(r.Body).Decode(&gotReq); err != nil {
			t.Errorf("decode request: %v", err)
		}
		json.NewEncoder(w).Encode(map[string]any{
			"candidates": []map[string]any{
				{"content": map[string]any{"parts": []map[string]string{
					{"text": "marked "},
					{"text": "output"},
				}}},
			},
		})
	})

	got, err := c.GenerateContent(context.Background(), "system text", "user prompt")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "marked output" {
		t.Errorf("expected joined candidate parts, got %q", got)
	}
	if gotPath != "/models/gemini-test:generateContent" {
		t.Errorf("unexpected path %q", gotPath)
	}
	if gotKey != "test-key" {
		t.Errorf("expected api key header, got %q", gotKey)
	}
	if gotReq.SystemInstruction == nil || gotReq.SystemInstruction.Parts[0].Text != "system text" {
		t.Errorf("system instruction not sent: %+v", gotReq.SystemInstruction)
	}
	if len(gotReq.Contents) != 1 || gotReq.Contents[0].Parts[0].Text != "user prompt" {
		t.Errorf("user prompt not sent: %+v", gotReq.Contents)
	}

	if c.Stats().Snapshot().Count != 1 {
		t.Error("expected one latency sample recorded")
	}
}

func TestGenerateContent_BlockedPrompt(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"promptFeedback": map[string]string{"blockReason": "SAFETY"},
		})
	})

	_, err := c.GenerateContent(context.Background(), "", "prompt")
	var blocked *BlockedError
	if !errors.As(err, &blocked) {
		t.Fatalf("expected BlockedError, got %v", err)
	}
	if blocked.Reason != "SAFETY" {
		t.Errorf("expected reason SAFETY, got %q", blocked.Reason)
	}
}

func TestGenerateContent_EmptyResponse(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"no candidates", `{}`},
		{"candidate without text", `{"candidates":[{"content":{"parts":[]}}]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(tt.body))
			})
			_, err := c.GenerateContent(context.Background(), "", "prompt")
			if !errors.Is(err, ErrEmptyResponse) {
				t.Fatalf("expected ErrEmptyResponse, got %v", err)
			}
		})
	}
}

func TestGenerateContent_HTTPError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":{"status":"UNAVAILABLE","message":"overloaded"}}`, http.StatusServiceUnavailable)
	})

	_, err := c.GenerateContent(context.Background(), "", "prompt")
	if err == nil || !strings.Contains(err.Error(), "status 503") {
		t.Fatalf("expected status error, got %v", err)
	}
}

func TestGenerateContent_APIErrorPayload(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"error":{"code":400,"status":"INVALID_ARGUMENT","message":"bad model"}}`))
	})

	_, err := c.GenerateContent(context.Background(), "", "prompt")
	if err == nil || !strings.Contains(err.Error(), "INVALID_ARGUMENT") {
		t.Fatalf("expected api error, got %v", err)
	}
}
