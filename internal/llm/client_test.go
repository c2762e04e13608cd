package llm

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"ayitichat/internal/domain"
)

func TestComplete_ReturnsMessageContent(t *testing.T) {
	var gotPayload completionPayload
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			t.Errorf("path = %q, want /chat/completions", r.URL.Path)
		}
		if auth := r.Header.Get("Authorization"); auth != "Bearer test-key" {
			t.Errorf("Authorization = %q", auth)
		}
		if err := json.NewDecoder(r.Body).Decode(&gotPayload); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		json.NewEncoder(w).Encode(map[string]interface{}{
			"choices": []map[string]interface{}{
				{"message": map[string]string{"content": "Bonjou! Kijan mwen ka ede w?"}},
			},
		})
	}))
	defer server.Close()

	client := NewClientWithHTTPClient(server.URL, "test-key", server.Client())

	content, err := client.Complete(context.Background(), CompletionRequest{
		Model: "google/gemini-3-flash-preview",
		Messages: []ChatMessage{
			{Role: "system", Content: "Reponn an kreyol."},
			{Role: "user", Content: "Bonjou"},
		},
	})
	if err != nil {
		t.Fatalf("Complete: %v", err)
	}
	if content != "Bonjou! Kijan mwen ka ede w?" {
		t.Errorf("content = %q", content)
	}

	if gotPayload.Stream {
		t.Error("stream should be false")
	}
	if gotPayload.Model != "google/gemini-3-flash-preview" {
		t.Errorf("model = %q", gotPayload.Model)
	}
	if len(gotPayload.Messages) != 2 {
		t.Errorf("messages = %d, want 2", len(gotPayload.Messages))
	}
	if gotPayload.Temperature != nil || gotPayload.MaxTokens != nil {
		t.Error("unset temperature and max_tokens should be omitted")
	}
}

func TestComplete_ForwardsUpstreamFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`{"error": "rate limited"}`))
	}))
	defer server.Close()

	client := NewClientWithHTTPClient(server.URL, "test-key", server.Client())

	_, err := client.Complete(context.Background(), CompletionRequest{
		Model:    "sonnet-4.5",
		Messages: []ChatMessage{{Role: "user", Content: "hi"}},
	})

	var upstream *domain.UpstreamError
	if !errors.As(err, &upstream) {
		t.Fatalf("err = %v, want UpstreamError", err)
	}
	if upstream.Status != http.StatusTooManyRequests {
		t.Errorf("status = %d, want 429", upstream.Status)
	}
	if upstream.Body != `{"error": "rate limited"}` {
		t.Errorf("body = %q", upstream.Body)
	}
}

func TestComplete_EmptyChoices(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"choices": []}`))
	}))
	defer server.Close()

	client := NewClientWithHTTPClient(server.URL, "test-key", server.Client())

	_, err := client.Complete(context.Background(), CompletionRequest{
		Model:    "sonnet-4.5",
		Messages: []ChatMessage{{Role: "user", Content: "hi"}},
	})
	if err == nil {
		t.Fatal("expected error for empty choices")
	}
}

func TestScrubArtifacts(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "clean text untouched",
			input: "Men repons ou an.",
			want:  "Men repons ou an.",
		},
		{
			name:  "action object removed",
			input: `Bonjou {"action": "final_answer"} mezanmi`,
			want:  "Bonjou  mezanmi",
		},
		{
			name:  "thought object removed",
			input: `{"thought": "the user greeted me"}Bonjou!`,
			want:  "Bonjou!",
		},
		{
			name: "multiline action_input removed",
			input: "Repons lan:\n{\"action_input\": \"some\nmultiline\nvalue\"}\nfini",
			want:  "Repons lan:\n\nfini",
		},
		{
			name:  "whitespace trimmed",
			input: `  {"action": "x"}  `,
			want:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ScrubArtifacts(tt.input); got != tt.want {
				t.Errorf("ScrubArtifacts(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
