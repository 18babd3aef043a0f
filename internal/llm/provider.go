package llm

import (
	"context"
	"encoding/json"
)

// Provider is the AI text-generation capability behind the advisor.
// Adapters return either plain text or JSON that already matches the
// request schema; see checkAnswer for the shared rules.
type Provider interface {
	Generate(ctx context.Context, req Request) (*Response, error)

	// ModelID is the model requests are sent to, after alias resolution.
	ModelID() string
}

// Request is one prompt. Study-aid prompts are single turn, so Messages
// usually holds one user message; see Ask.
type Request struct {
	System   string
	Messages []Message

	// Schema, when set, asks for a JSON answer using the provider's native
	// structured output and makes the adapter validate it.
	Schema *Schema

	MaxTokens int

	// Temperature in [0, 1]. Zero leaves the provider default.
	Temperature float64
}

// Ask builds a single-turn request.
func Ask(system, prompt string, tuning Tuning) Request {
	return Request{
		System:      system,
		Messages:    []Message{{Role: RoleUser, Content: prompt}},
		MaxTokens:   tuning.MaxTokens,
		Temperature: tuning.Temperature,
	}
}

// Expecting returns a copy of r that asks for a JSON answer matching s.
func (r Request) Expecting(s *Schema) Request {
	r.Schema = s
	return r
}

// Tuning holds the generation settings shared by a family of prompts.
type Tuning struct {
	MaxTokens   int
	Temperature float64
}

// Message is one turn of the conversation.
type Message struct {
	Role    Role
	Content string
}

// Role is the message sender role.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Schema is a named JSON Schema for structured answers. Name keys the
// compiled-schema cache, so two schemas must not share a name.
type Schema struct {
	Name        string
	Description string
	Definition  map[string]any
}

// Normalized stop reasons.
const (
	StopEnd       = "end"
	StopMaxTokens = "max_tokens"
)

// Response is a provider answer. Content is the validated JSON object for
// structured requests and the raw text otherwise; Text unwraps either.
type Response struct {
	Content    json.RawMessage
	Usage      Usage
	Model      string
	StopReason string
}

// Truncated reports whether the answer stopped at the token limit.
func (r *Response) Truncated() bool {
	return r != nil && r.StopReason == StopMaxTokens
}

// Usage is the token count of one request.
type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}
