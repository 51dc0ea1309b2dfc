package config

import (
	"context"

	"google.golang.org/genai"
)

// NewGenAIClient returns nil without error when no API key is set; the
// assist service then serves its templated fallbacks.
func NewGenAIClient(ctx context.Context, cfg *Config) (*genai.Client, error) {
	if cfg.GeminiAPIKey == "" {
		return nil, nil
	}
	return genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.GeminiAPIKey,
		Backend: genai.BackendGeminiAPI,
	})
}
