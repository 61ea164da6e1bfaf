package llm

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/admin/astrografia/internal/ports/service"
)

func newTestClient(url string) *Client {
	return NewClient(&Config{ApiKey: "sk-test", BaseURL: url + "/v1/", Model: "gpt-4o"}, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestCompleteSendsChatRequest(t *testing.T) {
	var got chatRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/chat/completions" {
			t.Errorf("path = %s", r.URL.Path)
		}
		if r.Header.Get("Authorization") != "Bearer sk-test" {
			t.Errorf("authorization = %q", r.Header.Get("Authorization"))
		}
		_ = json.NewDecoder(r.Body).Decode(&got)
		_, _ = w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"  **Olá**  "}}],"usage":{"prompt_tokens":10,"completion_tokens":3}}`))
	}))
	defer srv.Close()

	text, err := newTestClient(srv.URL).Complete(context.Background(), service.Completion{
		System:      "sistema",
		Prompt:      "pergunta",
		Temperature: 0.7,
		MaxTokens:   400,
	})
	if err != nil {
		t.Fatalf("Complete: %v", err)
	}
	if text != "**Olá**" {
		t.Fatalf("text = %q", text)
	}
	if got.Model != "gpt-4o" || got.Temperature != 0.7 || got.MaxTokens != 400 {
		t.Fatalf("unexpected request %+v", got)
	}
	if len(got.Messages) != 2 || got.Messages[0].Role != "system" || got.Messages[1].Content != "pergunta" {
		t.Fatalf("unexpected messages %+v", got.Messages)
	}
}

func TestCompleteErrors(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		is     error
	}{
		{name: "api error", status: http.StatusUnauthorized, body: `{"error":{"type":"invalid_api_key","message":"bad key"}}`},
		{name: "no choices", status: http.StatusOK, body: `{"choices":[]}`, is: ErrEmptyCompletion},
		{name: "not json", status: http.StatusBadGateway, body: `upstream down`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			_, err := newTestClient(srv.URL).Complete(context.Background(), service.Completion{Prompt: "x"})
			if err == nil {
				t.Fatalf("expected error")
			}
			if tt.is != nil && !errors.Is(err, tt.is) {
				t.Fatalf("expected %v, got %v", tt.is, err)
			}
		})
	}
}
