package llm

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
)

var wordSchema = &Schema{
	Name: "test-word",
	Definition: map[string]any{
		"type":                 "object",
		"properties":           map[string]any{"word": map[string]any{"type": "string"}},
		"required":             []any{"word"},
		"additionalProperties": false,
	},
}

func TestMockProvider_ReplaysInOrder(t *testing.T) {
	mock := NewMockProvider(
		MockText("がんばって"),
		MockResponse{Content: json.RawMessage(`{"word":"ねこ"}`), Usage: Usage{InputTokens: 10, OutputTokens: 5, TotalTokens: 15}},
	)
	ctx := context.Background()

	resp, err := mock.Generate(ctx, Request{System: "sys", Messages: []Message{{Role: RoleUser, Content: "encourage me"}}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := resp.Text(); got != "がんばって" {
		t.Fatalf("Text() = %q, want がんばって", got)
	}
	if resp.Model != MockModel || resp.StopReason != "end" {
		t.Fatalf("got model %q stop %q", resp.Model, resp.StopReason)
	}
	if mock.Remaining() != 1 {
		t.Fatalf("Remaining() = %d, want 1", mock.Remaining())
	}

	resp, err = mock.Generate(ctx, Request{Schema: wordSchema})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(resp.Content) != `{"word":"ねこ"}` || resp.Usage.TotalTokens != 15 {
		t.Fatalf("unexpected response: %s %+v", resp.Content, resp.Usage)
	}

	if mock.CallCount() != 2 || mock.Calls[0].System != "sys" {
		t.Fatalf("calls not recorded: %+v", mock.Calls)
	}
}

func TestMockProvider_ChecksSchema(t *testing.T) {
	mock := NewMockProvider(MockResponse{Content: json.RawMessage(`{"word":1}`)})
	_, err := mock.Generate(context.Background(), Request{Schema: wordSchema})
	var inv *ErrInvalidResponse
	if !errors.As(err, &inv) {
		t.Fatalf("expected ErrInvalidResponse, got %v", err)
	}
}

func TestMockProvider_Errors(t *testing.T) {
	mock := NewMockProvider(MockResponse{Err: &ErrRateLimit{}})

	_, err := mock.Generate(context.Background(), Request{})
	var rl *ErrRateLimit
	if !errors.As(err, &rl) {
		t.Fatalf("expected ErrRateLimit, got %v", err)
	}

	_, err = mock.Generate(context.Background(), Request{})
	var unavail *ErrProviderUnavailable
	if !errors.As(err, &unavail) {
		t.Fatalf("expected ErrProviderUnavailable once drained, got %v", err)
	}
	if mock.ModelID() != MockModel {
		t.Fatalf("ModelID() = %q", mock.ModelID())
	}
}

func TestPurposeContext(t *testing.T) {
	ctx := context.Background()
	if p := PurposeFrom(ctx); p != UnknownPurpose {
		t.Fatalf("expected %q, got %q", UnknownPurpose, p)
	}

	ctx = WithPurpose(ctx, PurposeLearningTips)
	if p := PurposeFrom(ctx); p != PurposeLearningTips {
		t.Fatalf("expected %q, got %q", PurposeLearningTips, p)
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"disabled", Config{}, false},
		{"anthropic without key", Config{Provider: ProviderAnthropic}, true},
		{"anthropic with key", Config{Provider: ProviderAnthropic, Anthropic: AnthropicConfig{APIKey: "sk-test"}}, false},
		{"openai without key", Config{Provider: ProviderOpenAI}, true},
		{"openai with key", Config{Provider: ProviderOpenAI, OpenAI: OpenAIConfig{APIKey: "sk-test"}}, false},
		{"gemini without key", Config{Provider: ProviderGemini}, true},
		{"openrouter without key", Config{Provider: ProviderOpenRouter}, true},
		{"openrouter with key", Config{Provider: ProviderOpenRouter, OpenRouter: OpenRouterConfig{APIKey: "sk-or"}}, false},
		{"mock needs no key", Config{Provider: ProviderMock}, false},
		{"unknown provider", Config{Provider: "mistral"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func clearKeyEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{"GEMINI_API_KEY", "OPENAI_API_KEY", "ANTHROPIC_API_KEY", "OPENROUTER_API_KEY"} {
		t.Setenv(k, "")
	}
}

func TestDiscover(t *testing.T) {
	t.Run("nothing set", func(t *testing.T) {
		clearKeyEnv(t)
		cfg := DefaultConfig()
		if Discover(&cfg) {
			t.Fatal("expected no provider")
		}
	})

	t.Run("priority order", func(t *testing.T) {
		clearKeyEnv(t)
		t.Setenv("ANTHROPIC_API_KEY", "sk-ant")
		t.Setenv("OPENAI_API_KEY", "sk-oai")
		cfg := DefaultConfig()
		if !Discover(&cfg) {
			t.Fatal("expected a provider")
		}
		if cfg.Provider != ProviderOpenAI || cfg.OpenAI.APIKey != "sk-oai" {
			t.Fatalf("got provider %q key %q", cfg.Provider, cfg.OpenAI.APIKey)
		}
	})

	t.Run("explicit provider wins", func(t *testing.T) {
		clearKeyEnv(t)
		t.Setenv("GEMINI_API_KEY", "g-key")
		cfg := DefaultConfig()
		cfg.Provider = ProviderMock
		if !Discover(&cfg) || cfg.Provider != ProviderMock {
			t.Fatalf("provider = %q, want mock", cfg.Provider)
		}
		if cfg.Gemini.APIKey != "" {
			t.Fatal("gemini key should not be picked up")
		}
	})
}

func TestNewProvider(t *testing.T) {
	ctx := context.Background()

	if _, err := NewProvider(ctx, DefaultConfig(), nil, nil); !errors.Is(err, ErrDisabled) {
		t.Fatalf("expected ErrDisabled, got %v", err)
	}
	if _, err := NewProvider(ctx, Config{Provider: ProviderAnthropic}, nil, nil); err == nil {
		t.Fatal("expected missing key error")
	}

	cfg := DefaultConfig()
	cfg.Provider = ProviderOpenRouter
	cfg.OpenRouter.APIKey = "sk-or"
	p, err := NewProvider(ctx, cfg, nil, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.ModelID() != "google/gemini-2.0-flash-exp" {
		t.Fatalf("model = %q", p.ModelID())
	}
	if _, ok := p.(*RetryProvider); !ok {
		t.Fatalf("expected retry wrapper, got %T", p)
	}
}
