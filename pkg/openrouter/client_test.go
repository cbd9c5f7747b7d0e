package openrouter_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"assessment-planner/pkg/openrouter"
)

func TestConfigValidate(t *testing.T) {
	t.Run("Missing API Key", func(t *testing.T) {
		_, err := openrouter.New(openrouter.Config{})
		if !errors.Is(err, openrouter.ErrAPIKeyMissing) {
			t.Errorf("expected ErrAPIKeyMissing, got %v", err)
		}
	})

	t.Run("Defaults Applied", func(t *testing.T) {
		cfg := openrouter.Config{APIKey: "k"}
		if err := cfg.Validate(); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cfg.Model != openrouter.DefaultModel {
			t.Errorf("expected default model, got %q", cfg.Model)
		}
		if cfg.BaseURL != openrouter.DefaultBaseURL {
			t.Errorf("expected default base URL, got %q", cfg.BaseURL)
		}
		if cfg.HTTPClient == nil {
			t.Errorf("expected default HTTP client")
		}
	})
}

func TestChatCompletion(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
				t.Errorf("unexpected auth header: %q", got)
			}
			if got := r.Header.Get("X-Title"); got != "Assessment Planner" {
				t.Errorf("unexpected X-Title header: %q", got)
			}

			var req openrouter.Request
			if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
				t.Errorf("decode request: %v", err)
			}
			if req.Model == "" {
				t.Errorf("expected client to fill in default model")
			}

			w.WriteHeader(http.StatusOK)
			w.Write([]byte(`{"id":"gen-1","choices":[{"index":0,"message":{"role":"assistant","content":"hello"}}]}`))
		}))
		defer ts.Close()

		client, err := openrouter.New(openrouter.Config{
			APIKey:   "test-key",
			BaseURL:  ts.URL,
			AppTitle: "Assessment Planner",
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		resp, err := client.ChatCompletion(context.Background(), &openrouter.Request{
			Messages: []openrouter.Message{{Role: "user", Content: "hi"}},
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if resp.Text() != "hello" {
			t.Errorf("expected %q, got %q", "hello", resp.Text())
		}
	})

	t.Run("API Error", func(t *testing.T) {
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusTooManyRequests)
			w.Write([]byte(`{"error":{"message":"rate limited","code":429}}`))
		}))
		defer ts.Close()

		client, _ := openrouter.New(openrouter.Config{APIKey: "k", BaseURL: ts.URL})
		_, err := client.ChatCompletion(context.Background(), &openrouter.Request{})
		if err == nil {
			t.Fatalf("expected error on 429")
		}
	})

	t.Run("Empty Choices", func(t *testing.T) {
		resp := &openrouter.Response{}
		if resp.Text() != "" {
			t.Errorf("expected empty text for empty choices")
		}
	})
}
