package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/agenthands/lineage/internal/config"
	"github.com/rs/zerolog/log"
)

const (
	defaultOllamaURL = "http://localhost:11434"
	ollamaDummyKey   = "ollama"
)

// NewClient builds the client for cfg.Provider. An empty provider yields a
// nil client and no error: callers treat that as "notes disabled".
func NewClient(ctx context.Context, cfg config.LLMConfig) (LLMClient, error) {
	provider := strings.ToLower(cfg.Provider)
	opts := Options{MaxTokens: cfg.MaxTokens, Temperature: cfg.Temperature}

	switch provider {
	case "":
		return nil, nil

	case "openai":
		return NewOpenAIClient(cfg.APIKey, cfg.Model, cfg.BaseURL, opts), nil

	case "gemini":
		c, err := NewGeminiClient(ctx, cfg.APIKey, cfg.Model, opts)
		if err != nil {
			return nil, err
		}
		return c, nil

	case "claude":
		return NewClaudeClient(cfg.APIKey, cfg.Model, cfg.BaseURL, opts), nil

	case "ollama":
		baseURL := cfg.BaseURL
		if baseURL == "" {
			baseURL = defaultOllamaURL
		}
		if !strings.HasSuffix(baseURL, "/v1") {
			baseURL = fmt.Sprintf("%s/v1", strings.TrimRight(baseURL, "/"))
		}

		log.Info().Str("component", "llm").Str("base_url", baseURL).Msg("using Ollama via OpenAI-compatible API")

		apiKey := cfg.APIKey
		if apiKey == "" {
			apiKey = ollamaDummyKey
		}
		return NewOpenAIClient(apiKey, cfg.Model, baseURL, opts), nil

	default:
		return nil, fmt.Errorf("unsupported llm provider: %s", provider)
	}
}
