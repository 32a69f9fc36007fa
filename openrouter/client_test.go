package openrouter

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/openai/openai-go/option"

	"orproxy/domain"
)

func newTestClient(baseURL string) *Client {
	return NewClient("test-key", "https://example.com", "test-suite",
		option.WithBaseURL(baseURL),
		option.WithMaxRetries(0),
	)
}

func TestClientComplete(t *testing.T) {
	var gotBody struct {
		Model    string `json:"model"`
		Messages []struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"messages"`
	}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			t.Fatalf("unexpected path: %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
			t.Fatalf("unexpected Authorization header: %q", got)
		}
		if got := r.Header.Get("HTTP-Referer"); got != "https://example.com" {
			t.Fatalf("unexpected HTTP-Referer header: %q", got)
		}
		if got := r.Header.Get("X-Title"); got != "test-suite" {
			t.Fatalf("unexpected X-Title header: %q", got)
		}
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Fatalf("decode request body: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"id":"gen-1","object":"chat.completion","created":1,"model":"test-model","choices":[{"index":0,"message":{"role":"assistant","content":"hello there"},"finish_reason":"stop"}]}`)
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	history := []domain.HistoryMessage{
		{Role: domain.RoleUser, Content: "hi"},
		{Role: domain.RoleAssistant, Content: "hello"},
	}

	reply, err := client.Complete(context.Background(), "test-model", history, "  how are you?  ")
	if err != nil {
		t.Fatalf("Complete failed: %v", err)
	}
	if reply != "hello there" {
		t.Fatalf("unexpected reply: %q", reply)
	}

	if gotBody.Model != "test-model" {
		t.Fatalf("unexpected model: %q", gotBody.Model)
	}
	if len(gotBody.Messages) != 3 {
		t.Fatalf("expected 3 messages, got %d", len(gotBody.Messages))
	}
	if gotBody.Messages[0].Role != "user" || gotBody.Messages[0].Content != "hi" {
		t.Fatalf("unexpected first message: %+v", gotBody.Messages[0])
	}
	if gotBody.Messages[1].Role != "assistant" || gotBody.Messages[1].Content != "hello" {
		t.Fatalf("unexpected second message: %+v", gotBody.Messages[1])
	}
	if gotBody.Messages[2].Role != "user" || gotBody.Messages[2].Content != "how are you?" {
		t.Fatalf("unexpected final message: %+v", gotBody.Messages[2])
	}
}

func TestClientCompleteErrorClassification(t *testing.T) {
	tests := []struct {
		name       string
		statusCode int
		wantKind   ErrorKind
	}{
		{"unauthorized", http.StatusUnauthorized, ErrorKindUnauthorized},
		{"rate limited", http.StatusTooManyRequests, ErrorKindRateLimited},
		{"model not found", http.StatusNotFound, ErrorKindNotFound},
		{"bad request", http.StatusBadRequest, ErrorKindBadRequest},
		{"server error", http.StatusInternalServerError, ErrorKindUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(tt.statusCode)
				fmt.Fprint(w, `{"error":{"message":"upstream says no","type":"api_error"}}`)
			}))
			defer server.Close()

			client := newTestClient(server.URL)
			_, err := client.Complete(context.Background(), "test-model", nil, "hi")
			if err == nil {
				t.Fatalf("expected error")
			}

			var orErr *Error
			if !errors.As(err, &orErr) {
				t.Fatalf("expected *Error, got %T", err)
			}
			if orErr.Kind != tt.wantKind {
				t.Fatalf("expected kind %q, got %q (%s)", tt.wantKind, orErr.Kind, orErr.Message)
			}
			if orErr.Message == "" {
				t.Fatalf("expected a message")
			}
		})
	}
}

func TestClientCompleteNetworkError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // connection refused from here on

	client := newTestClient(server.URL)
	_, err := client.Complete(context.Background(), "test-model", nil, "hi")
	if err == nil {
		t.Fatalf("expected error")
	}

	var orErr *Error
	if !errors.As(err, &orErr) {
		t.Fatalf("expected *Error, got %T", err)
	}
	if orErr.Kind != ErrorKindUnknown {
		t.Fatalf("expected kind %q, got %q", ErrorKindUnknown, orErr.Kind)
	}
}

func TestClientCompleteNoChoices(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"id":"gen-1","object":"chat.completion","created":1,"model":"test-model","choices":[]}`)
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	_, err := client.Complete(context.Background(), "test-model", nil, "hi")
	if err == nil {
		t.Fatalf("expected error")
	}

	var orErr *Error
	if !errors.As(err, &orErr) {
		t.Fatalf("expected *Error, got %T", err)
	}
	if orErr.Kind != ErrorKindUnknown {
		t.Fatalf("expected kind %q, got %q", ErrorKindUnknown, orErr.Kind)
	}
	if orErr.Message != "no response received from upstream" {
		t.Fatalf("unexpected message: %q", orErr.Message)
	}
}

func TestClientCompleteEmptyContent(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"id":"gen-1","object":"chat.completion","created":1,"model":"test-model","choices":[{"index":0,"message":{"role":"assistant","content":""},"finish_reason":"stop"}]}`)
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	_, err := client.Complete(context.Background(), "test-model", nil, "hi")
	if err == nil {
		t.Fatalf("expected error")
	}

	var orErr *Error
	if !errors.As(err, &orErr) {
		t.Fatalf("expected *Error, got %T", err)
	}
	if orErr.Message != "empty response received from upstream" {
		t.Fatalf("unexpected message: %q", orErr.Message)
	}
}
