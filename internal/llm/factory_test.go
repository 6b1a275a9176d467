package llm

import (
	"context"
	"encoding/json"
	"path/filepath"
	"testing"
	"time"

	"github.com/abhisek/edustream/internal/store"
)

func TestNewProvider_Mock(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Provider = ProviderMock

	p, err := NewProvider(context.Background(), cfg, Audit{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.ModelID() != "mock" {
		t.Fatalf("expected 'mock', got %q", p.ModelID())
	}
}

func TestNewProvider_AuditsProviderName(t *testing.T) {
	s, err := store.Open(filepath.Join(t.TempDir(), "audit.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { s.Close() })

	cfg := DefaultConfig()
	cfg.Provider = ProviderMock
	p, err := NewProvider(context.Background(), cfg, Audit{Events: s.EventRepo()})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// The bare mock has no queued reply; the failed call is audited too.
	_, _ = p.Generate(context.Background(), Request{Messages: UserMessage("hi")})

	events, err := s.EventRepo().QueryLLMEvents(context.Background(), store.QueryOpts{})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(events) != 1 || events[0].Provider != ProviderMock {
		t.Fatalf("expected one event from provider %q, got %+v", ProviderMock, events)
	}
}

func TestNewProvider_Unknown(t *testing.T) {
	_, err := NewProvider(context.Background(), Config{Provider: "carrier-pigeon"}, Audit{})
	if err == nil {
		t.Fatal("expected error for unknown provider")
	}
}

func TestNewProvider_MissingKey(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Provider = ProviderOpenAI
	if _, err := NewProvider(context.Background(), cfg, Audit{}); err == nil {
		t.Fatal("expected error for missing OpenAI key")
	}
}

func TestNewProvider_OpenRouter(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Provider = ProviderOpenRouter
	cfg.OpenRouter.APIKey = "sk-or-test"

	p, err := NewProvider(context.Background(), cfg, Audit{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.ModelID() != "google/gemini-2.5-flash" {
		t.Fatalf("unexpected model %q", p.ModelID())
	}
}

func TestWrap_AppliesTimeout(t *testing.T) {
	mock := NewMockProvider(MockResponse{Content: json.RawMessage("late"), Delay: time.Second})
	p := Wrap(mock, 10*time.Millisecond, Audit{})

	if _, err := p.Generate(context.Background(), Request{}); err != context.DeadlineExceeded {
		t.Fatalf("expected context.DeadlineExceeded, got %v", err)
	}
}
