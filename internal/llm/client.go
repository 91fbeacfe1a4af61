// Package llm provides text-generation clients used by the AI classifier.
package llm

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// Client is the text-generation capability consumed by the classifier.
// Generate returns the raw model text; callers extract whatever structure
// they asked the prompt for.
type Client interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Config holds configuration for an LLM client.
type Config struct {
	Provider    string
	APIKey      string
	Model       string
	RateLimit   int
	MaxTokens   int
	Temperature float64
}

// NewClient creates a provider client based on configuration. When a rate
// limit is configured the client is wrapped to honor it.
func NewClient(cfg Config) (Client, error) {
	var client Client
	var err error

	switch strings.ToLower(cfg.Provider) {
	case "gemini":
		client, err = newGeminiClient(cfg)
	case "openai":
		client, err = newOpenAIClient(cfg)
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", cfg.Provider)
	}
	if err != nil {
		return nil, err
	}

	if cfg.RateLimit > 0 {
		client = &rateLimitedClient{
			inner:   client,
			limiter: NewRateLimiter(cfg.RateLimit),
		}
	}
	return client, nil
}

// rateLimitedClient gates every Generate call through a token bucket.
type rateLimitedClient struct {
	inner   Client
	limiter *RateLimiter
}

func (c *rateLimitedClient) Generate(ctx context.Context, prompt string) (string, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return "", err
	}
	return c.inner.Generate(ctx, prompt)
}

const defaultHTTPTimeout = 30 * time.Second
