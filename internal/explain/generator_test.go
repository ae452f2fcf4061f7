package explain

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestOpenAIGeneratorGenerate(t *testing.T) {
	var gotAuth string
	var gotReq chatRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		if err := json.NewDecoder(r.Body).Decode(&gotReq); err != nil {
			t.Errorf("decode request: %v", err)
		}
		json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{
				{"message": map[string]string{"role": "assistant", "content": "  Bob pays Alice.  "}},
			},
		})
	}))
	defer server.Close()

	gen := NewOpenAIGenerator(server.URL, "secret", "test-model")
	text, err := gen.Generate(context.Background(), "the summary")
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if text != "Bob pays Alice." {
		t.Errorf("Generate = %q, want trimmed reply", text)
	}
	if gotAuth != "Bearer secret" {
		t.Errorf("Authorization = %q", gotAuth)
	}
	if gotReq.Model != "test-model" || len(gotReq.Messages) != 2 || gotReq.Messages[1].Content != "the summary" {
		t.Errorf("request payload = %+v", gotReq)
	}
}

func TestOpenAIGeneratorErrors(t *testing.T) {
	t.Run("non-200 response", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "rate limited", http.StatusTooManyRequests)
		}))
		defer server.Close()

		gen := NewOpenAIGenerator(server.URL, "", "test-model")
		_, err := gen.Generate(context.Background(), "summary")
		if err == nil || !strings.Contains(err.Error(), "429") {
			t.Errorf("Generate error = %v, want status in message", err)
		}
	})

	t.Run("empty choices", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"choices":[]}`))
		}))
		defer server.Close()

		gen := NewOpenAIGenerator(server.URL, "", "test-model")
		text, err := gen.Generate(context.Background(), "summary")
		if err != nil || text != "" {
			t.Errorf("Generate = (%q, %v), want empty text and nil error", text, err)
		}
	})

	t.Run("unreachable endpoint", func(t *testing.T) {
		gen := NewOpenAIGenerator("http://127.0.0.1:1", "", "test-model")
		if _, err := gen.Generate(context.Background(), "summary"); err == nil {
			t.Error("Generate against closed port succeeded")
		}
	})
}
