package provider

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go.uber.org/zap/zaptest"

	"comboforge/internal/combo"
	"comboforge/pkg/logging/logging"
)

func testCtx(t *testing.T) context.Context {
	return logging.WithLogger(context.Background(), zaptest.NewLogger(t))
}

func testRequest() combo.GenerationRequest {
	return combo.GenerationRequest{
		Topic:    "coffee",
		Mode:     combo.ModeBoth,
		Tone:     "cute",
		Seed:     "x",
		LineHint: 1,
	}.Normalize()
}

func chatServer(t *testing.T, status int, content string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/chat/completions" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		if status < 200 || status >= 300 {
			http.Error(w, "upstream broke", status)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"` + content + `"}}]}`))
	}))
}

func TestChainFallback(t *testing.T) {
	primary := chatServer(t, http.StatusInternalServerError, "")
	defer primary.Close()
	secondary := chatServer(t, http.StatusOK, "SECONDARY")
	defer secondary.Close()

	chain := NewChain(
		NewGroq(AdapterConfig{BaseURL: primary.URL, APIKey: "k1", Timeout: time.Second}),
		NewOpenAI(AdapterConfig{BaseURL: secondary.URL, APIKey: "k2", Timeout: time.Second}),
	)

	raw, src, err := chain.Generate(testCtx(t), testRequest())
	if err != nil {
		t.Fatalf("expected fallback success, got %v", err)
	}
	if raw != "SECONDARY" {
		t.Fatalf("expected secondary content, got %q", raw)
	}
	if src.Name() != "openai" {
		t.Fatalf("expected openai to win, got %q", src.Name())
	}
}

func TestChainSkipsUnconfigured(t *testing.T) {
	srv := chatServer(t, http.StatusOK, "ONLY")
	defer srv.Close()

	chain := NewChain(
		NewAnthropic(AdapterConfig{}), // no key: skipped entirely
		NewGroq(AdapterConfig{BaseURL: srv.URL, APIKey: "k", Timeout: time.Second}),
	)

	raw, src, err := chain.Generate(testCtx(t), testRequest())
	if err != nil {
		t.Fatalf("expected success, got %v", err)
	}
	if raw != "ONLY" || src.Name() != "groq" {
		t.Fatalf("unexpected winner: %q from %q", raw, src.Name())
	}
}

func TestChainNoProviderConfigured(t *testing.T) {
	chain := NewChain(
		NewAnthropic(AdapterConfig{}),
		NewGroq(AdapterConfig{}),
	)

	if chain.Configured() {
		t.Fatalf("chain should report unconfigured")
	}

	_, _, err := chain.Generate(testCtx(t), testRequest())
	if !errors.Is(err, ErrNoProvider) {
		t.Fatalf("expected ErrNoProvider, got %v", err)
	}
}

func TestChainExhaustion(t *testing.T) {
	broken := chatServer(t, http.StatusBadGateway, "")
	defer broken.Close()

	chain := NewChain(
		NewGroq(AdapterConfig{BaseURL: broken.URL, APIKey: "k1", Timeout: time.Second}),
		NewOpenAI(AdapterConfig{BaseURL: broken.URL, APIKey: "k2", Timeout: time.Second}),
	)

	_, _, err := chain.Generate(testCtx(t), testRequest())
	if !errors.Is(err, ErrAllProvidersFailed) {
		t.Fatalf("expected ErrAllProvidersFailed, got %v", err)
	}
}

func TestAnthropicEnvelope(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/messages" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		if got := r.Header.Get("x-api-key"); got != "secret" {
			t.Errorf("missing api key header, got %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"content":[{"type":"text","text":"FROM CLAUDE"}]}`))
	}))
	defer srv.Close()

	a := NewAnthropic(AdapterConfig{BaseURL: srv.URL, APIKey: "secret", Timeout: time.Second})
	got, err := a.Generate(testCtx(t), "prompt")
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if got != "FROM CLAUDE" {
		t.Fatalf("unexpected text: %q", got)
	}
}

func TestTogetherEnvelope(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/completions" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"choices":[{"text":"FROM LEGACY"}]}`))
	}))
	defer srv.Close()

	a := NewTogether(AdapterConfig{BaseURL: srv.URL, APIKey: "secret", Timeout: time.Second})
	got, err := a.Generate(testCtx(t), "prompt")
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if got != "FROM LEGACY" {
		t.Fatalf("unexpected text: %q", got)
	}
}
