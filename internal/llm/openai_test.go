package llm

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	openai "github.com/sashabaranov/go-openai"
)

// themedWordsSchema mirrors the shape of the advisor's themed word list.
var themedWordsSchema = &Schema{
	Name:        "test-themed-words",
	Description: "Beginner words for one theme",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"words": map[string]any{
				"type":     "array",
				"minItems": 1,
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"word":    map[string]any{"type": "string", "minLength": 1},
						"meaning": map[string]any{"type": "string", "minLength": 1},
					},
					"required":             []any{"word", "meaning"},
					"additionalProperties": false,
				},
			},
		},
		"required":             []any{"words"},
		"additionalProperties": false,
	},
}

// chatCompletion answers with one choice.
func chatCompletion(content, finish string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"id":     "chatcmpl-test",
			"object": "chat.completion",
			"model":  "gpt-4o-mini",
			"choices": []map[string]any{{
				"index":         0,
				"message":       map[string]any{"role": "assistant", "content": content},
				"finish_reason": finish,
			}},
			"usage": map[string]any{"prompt_tokens": 40, "completion_tokens": 25, "total_tokens": 65},
		})
	}
}

func apiError(status int, typ string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		json.NewEncoder(w).Encode(map[string]any{
			"error": map[string]any{"type": typ, "message": typ},
		})
	}
}

func newTestOpenAIProvider(t *testing.T, handler http.HandlerFunc) *OpenAIProvider {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	config := openai.DefaultConfig("test-key")
	config.BaseURL = server.URL + "/v1"
	return &OpenAIProvider{
		client: openai.NewClientWithConfig(config),
		model:  "gpt-4o-mini",
	}
}

func travelWords() Request {
	return Ask("You are a patient Japanese tutor.", "List 2 travel words.", Tuning{MaxTokens: 256}).
		Expecting(themedWordsSchema)
}

func TestOpenAIProvider_ThemedWords(t *testing.T) {
	var sent struct {
		Messages       []map[string]any `json:"messages"`
		ResponseFormat struct {
			Type       string `json:"type"`
			JSONSchema struct {
				Name   string         `json:"name"`
				Strict bool           `json:"strict"`
				Schema map[string]any `json:"schema"`
			} `json:"json_schema"`
		} `json:"response_format"`
	}
	answer := `{"words":[{"word":"えき","meaning":"station"},{"word":"きっぷ","meaning":"ticket"}]}`
	reply := chatCompletion(answer, "stop")
	p := newTestOpenAIProvider(t, func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&sent)
		reply(w, r)
	})

	resp, err := p.Generate(context.Background(), travelWords())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if sent.ResponseFormat.Type != "json_schema" || !sent.ResponseFormat.JSONSchema.Strict {
		t.Fatalf("response_format = %+v", sent.ResponseFormat)
	}
	if sent.ResponseFormat.JSONSchema.Name != "test-themed-words" {
		t.Fatalf("schema name = %q", sent.ResponseFormat.JSONSchema.Name)
	}
	if _, ok := sent.ResponseFormat.JSONSchema.Schema["properties"]; !ok {
		t.Fatalf("schema definition not sent: %v", sent.ResponseFormat.JSONSchema.Schema)
	}
	if len(sent.Messages) != 2 || sent.Messages[0]["role"] != "system" {
		t.Fatalf("messages = %v", sent.Messages)
	}

	type words struct {
		Words []struct{ Word, Meaning string } `json:"words"`
	}
	got, err := Decode[words](themedWordsSchema, resp.Content)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(got.Words) != 2 || got.Words[1].Word != "きっぷ" {
		t.Fatalf("words = %+v", got.Words)
	}
	if resp.StopReason != StopEnd || resp.Usage.TotalTokens != 65 {
		t.Fatalf("stop %q usage %+v", resp.StopReason, resp.Usage)
	}
}

func TestOpenAIProvider_OffSchemaAnswer(t *testing.T) {
	p := newTestOpenAIProvider(t, chatCompletion(`{"words":["えき","きっぷ"]}`, "stop"))
	_, err := p.Generate(context.Background(), travelWords())
	var invErr *ErrInvalidResponse
	if !errors.As(err, &invErr) {
		t.Fatalf("expected ErrInvalidResponse, got: %T (%v)", err, err)
	}
	if string(invErr.Content) != `{"words":["えき","きっぷ"]}` {
		t.Fatalf("content = %s", invErr.Content)
	}
}

func TestOpenAIProvider_StructuredAnswerCutOff(t *testing.T) {
	p := newTestOpenAIProvider(t, chatCompletion(`{"words":[{"word":"えき","mea`, "length"))
	_, err := p.Generate(context.Background(), travelWords())
	var maxTok *ErrMaxTokensExceeded
	if !errors.As(err, &maxTok) {
		t.Fatalf("expected ErrMaxTokensExceeded, got: %T (%v)", err, err)
	}
	var retried bool
	if (&RetryProvider{}).shouldRetry(err, &retried) {
		t.Fatal("a truncated structured answer must not be retried")
	}
}

func TestOpenAIProvider_TextAnswerCutOffIsKept(t *testing.T) {
	p := newTestOpenAIProvider(t, chatCompletion("Practise the か row, then", "length"))
	resp, err := p.Generate(context.Background(), Ask("", "Tips for か?", Tuning{MaxTokens: 8}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !resp.Truncated() {
		t.Fatalf("StopReason = %q, want %q", resp.StopReason, StopMaxTokens)
	}
	if got := resp.Text(); got != "Practise the か row, then" {
		t.Fatalf("Text() = %q", got)
	}
}

func TestOpenAIProvider_BlankAnswer(t *testing.T) {
	p := newTestOpenAIProvider(t, chatCompletion("  ", "stop"))
	_, err := p.Generate(context.Background(), Ask("", "Tips for か?", Tuning{}))
	var invErr *ErrInvalidResponse
	if !errors.As(err, &invErr) {
		t.Fatalf("expected ErrInvalidResponse, got: %T (%v)", err, err)
	}
}

func TestOpenAIProvider_Errors(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
		check   func(error) bool
	}{
		{"rate limit", apiError(http.StatusTooManyRequests, "rate_limit_exceeded"), func(err error) bool {
			var e *ErrRateLimit
			return errors.As(err, &e)
		}},
		{"server error", apiError(http.StatusInternalServerError, "server_error"), func(err error) bool {
			var e *ErrProviderUnavailable
			return errors.As(err, &e)
		}},
		{"bad request", apiError(http.StatusBadRequest, "invalid_request_error"), func(err error) bool {
			var e *ErrRejected
			return errors.As(err, &e) && e.StatusCode == http.StatusBadRequest
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := newTestOpenAIProvider(t, tt.handler)
			_, err := p.Generate(context.Background(), travelWords())
			if !tt.check(err) {
				t.Fatalf("unexpected error: %T (%v)", err, err)
			}
		})
	}
}

func TestNewOpenAIProvider(t *testing.T) {
	if _, err := NewOpenAIProvider(OpenAIConfig{Model: "gpt-4o"}); err == nil {
		t.Fatal("expected error for empty API key")
	}
	p, err := NewOpenAIProvider(OpenAIConfig{APIKey: "test-key", Model: "gpt-4o-mini", BaseURL: "http://localhost:1/v1"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.ModelID() != "gpt-4o-mini" {
		t.Fatalf("ModelID() = %q", p.ModelID())
	}
}
