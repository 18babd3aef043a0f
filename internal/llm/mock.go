package llm

import (
	"context"
	"encoding/json"
	"sync"
)

// MockModel is the model name reported by MockProvider.
const MockModel = "mock"

// MockResponse is one scripted answer for MockProvider.
type MockResponse struct {
	Content json.RawMessage
	Usage   Usage
	Err     error
}

// MockText scripts a plain-text answer, encoded the way the real adapters
// return unstructured text.
func MockText(s string) MockResponse {
	b, _ := json.Marshal(s)
	return MockResponse{Content: b}
}

// MockProvider replays scripted answers in order and records every
// request. Answers go through the same checks as the real adapters. With
// nothing left to replay it reports the provider as unavailable, so a
// MockProvider built with no answers always exercises the caller's
// fallback path.
type MockProvider struct {
	mu        sync.Mutex
	responses []MockResponse
	Calls     []Request
}

// NewMockProvider creates a MockProvider that replays responses.
func NewMockProvider(responses ...MockResponse) *MockProvider {
	return &MockProvider{responses: responses}
}

func (m *MockProvider) Generate(_ context.Context, req Request) (*Response, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Calls = append(m.Calls, req)
	if len(m.responses) == 0 {
		return nil, &ErrProviderUnavailable{}
	}
	next := m.responses[0]
	m.responses = m.responses[1:]
	if next.Err != nil {
		return nil, next.Err
	}

	if err := checkAnswer(req, StopEnd, next.Content); err != nil {
		return nil, err
	}
	return &Response{
		Content:    next.Content,
		Usage:      next.Usage,
		Model:      MockModel,
		StopReason: StopEnd,
	}, nil
}

func (m *MockProvider) ModelID() string {
	return MockModel
}

// CallCount returns the number of Generate calls made.
func (m *MockProvider) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Calls)
}

// Remaining returns how many scripted answers are left.
func (m *MockProvider) Remaining() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.responses)
}
