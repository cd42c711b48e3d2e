package summary

import (
	"context"
	"sync"
)

// MockLLMClient replays Responses in order, then repeats Response. Prompts
// records every prompt it was given.
type MockLLMClient struct {
	Response  string
	Responses []string
	Err       error

	mu      sync.Mutex
	Prompts []string
}

func (m *MockLLMClient) Generate(ctx context.Context, prompt string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Prompts = append(m.Prompts, prompt)
	if m.Err != nil {
		return "", m.Err
	}
	if len(m.Responses) > 0 {
		r := m.Responses[0]
		m.Responses = m.Responses[1:]
		return r, nil
	}
	return m.Response, nil
}

// MockRanker returns Order verbatim.
type MockRanker struct {
	Order []int
}

func (m *MockRanker) Rank(ctx context.Context, query string, documents []string) ([]int, error) {
	return m.Order, nil
}
