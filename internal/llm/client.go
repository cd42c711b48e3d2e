package llm

import (
	"context"
)

type LLMClient interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// RankerClient orders documents by relevance to a query and returns their
// indices, most relevant first.
type RankerClient interface {
	Rank(ctx context.Context, query string, documents []string) ([]int, error)
}

// Options tune every request a client sends. Zero values leave the choice to
// the provider, except that Claude requires a token cap and falls back to
// defaultMaxTokens.
type Options struct {
	MaxTokens   int
	Temperature float32
}

const defaultMaxTokens = 1000

func (o Options) maxTokens() int {
	if o.MaxTokens > 0 {
		return o.MaxTokens
	}
	return defaultMaxTokens
}
