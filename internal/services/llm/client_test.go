package llm_test

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"papercard/internal/services/llm"
)

func chatResponse(content string) string {
	payload := map[string]any{
		"choices": []map[string]any{
			{"message": map[string]any{"content": content}},
		},
	}
	encoded, _ := json.Marshal(payload)
	return string(encoded)
}

func TestCompleteJSONSendsChatRequest(t *testing.T) {
	var gotPath, gotAuth string
	var gotBody map[string]any

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		raw, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(raw, &gotBody)
		fmt.Fprint(w, chatResponse(`{"title":"A Study"}`))
	}))
	defer server.Close()

	client := llm.NewClient(llm.Config{APIKey: "key", Model: "deepseek-chat"}, llm.WithBaseURL(server.URL))
	content, err := client.CompleteJSON(context.Background(), "system prompt", "user prompt")
	if err != nil {
		t.Fatalf("CompleteJSON returned error: %v", err)
	}
	if content != `{"title":"A Study"}` {
		t.Fatalf("unexpected content: %q", content)
	}
	if gotPath != "/chat/completions" {
		t.Fatalf("unexpected path: %q", gotPath)
	}
	if gotAuth != "Bearer key" {
		t.Fatalf("unexpected auth header: %q", gotAuth)
	}
	if gotBody["model"] != "deepseek-chat" {
		t.Fatalf("unexpected model: %v", gotBody["model"])
	}
	messages, ok := gotBody["messages"].([]any)
	if !ok || len(messages) != 2 {
		t.Fatalf("unexpected messages: %v", gotBody["messages"])
	}
}

func TestCompleteJSONRequiresAPIKey(t *testing.T) {
	client := llm.NewClient(llm.Config{})
	if _, err := client.CompleteJSON(context.Background(), "s", "u"); err == nil {
		t.Fatal("expected error without api key")
	}
}

func TestCompleteJSONDoesNotRetryOnServerError(t *testing.T) {
	var calls int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		http.Error(w, "overloaded", http.StatusServiceUnavailable)
	}))
	defer server.Close()

	client := llm.NewClient(llm.Config{APIKey: "key"}, llm.WithBaseURL(server.URL))
	_, err := client.CompleteJSON(context.Background(), "s", "u")
	if err == nil {
		t.Fatal("expected error for http 503")
	}
	if !strings.Contains(err.Error(), "http 503") {
		t.Fatalf("unexpected error: %v", err)
	}
	if calls != 1 {
		t.Fatalf("expected exactly one request, got %d", calls)
	}
}

func TestCompleteJSONReportsAPIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"error":{"message":"invalid model"}}`)
	}))
	defer server.Close()

	client := llm.NewClient(llm.Config{APIKey: "key"}, llm.WithBaseURL(server.URL))
	_, err := client.CompleteJSON(context.Background(), "s", "u")
	if err == nil || !strings.Contains(err.Error(), "invalid model") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestHealthCheck(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, chatResponse("pong"))
	}))
	defer server.Close()

	client := llm.NewClient(llm.Config{APIKey: "key"}, llm.WithBaseURL(server.URL))
	if err := client.HealthCheck(context.Background()); err != nil {
		t.Fatalf("HealthCheck returned error: %v", err)
	}
}

func TestDecodeLLMJSON(t *testing.T) {
	type payload struct {
		Title string `json:"title"`
	}

	tests := []struct {
		name    string
		content string
		want    string
		wantErr bool
	}{
		{
			name:    "plain object",
			content: `{"title":"A"}`,
			want:    "A",
		},
		{
			name:    "json fence",
			content: "```json\n{\"title\":\"B\"}\n```",
			want:    "B",
		},
		{
			name:    "bare fence",
			content: "```\n{\"title\":\"C\"}\n```",
			want:    "C",
		},
		{
			name:    "prose around object",
			content: "Here is the result:\n{\"title\":\"D\"}\nDone.",
			want:    "D",
		},
		{
			name:    "not json",
			content: "I could not process this document.",
			wantErr: true,
		},
		{
			name:    "empty",
			content: "   ",
			wantErr: true,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var out payload
			err := llm.DecodeLLMJSON(tc.content, &out)
			if tc.wantErr {
				if err == nil {
					t.Fatal("expected decode error")
				}
				return
			}
			if err != nil {
				t.Fatalf("DecodeLLMJSON returned error: %v", err)
			}
			if out.Title != tc.want {
				t.Fatalf("unexpected title: %q", out.Title)
			}
		})
	}
}
