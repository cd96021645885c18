package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/querytube/insight-services/internal/config"
	"github.com/rs/zerolog"
	"google.golang.org/genai"
)

// ErrNotConfigured is returned when no model client could be built
var ErrNotConfigured = errors.New("generative model not configured: set GEMINI_API_KEY")

// Generator produces a text completion for a single prompt
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// GeminiClient calls the Gemini API through google.golang.org/genai
type GeminiClient struct {
	models *genai.Models
	model  string
	log    zerolog.Logger
}

// NewGeminiClient creates a client for cfg.Name
func NewGeminiClient(ctx context.Context, cfg config.ModelConfig, log zerolog.Logger) (*GeminiClient, error) {
	if cfg.APIKey == "" {
		return nil, ErrNotConfigured
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
		HTTPOptions: genai.HTTPOptions{
			APIVersion: cfg.APIVersion,
			BaseURL:    cfg.BaseURL,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	return &GeminiClient{
		models: client.Models,
		model:  cfg.Name,
		log:    log.With().Str("component", "gemini").Str("model", cfg.Name).Logger(),
	}, nil
}

// Generate sends prompt as a single user turn and returns the response text
func (c *GeminiClient) Generate(ctx context.Context, prompt string) (string, error) {
	resp, err := c.models.GenerateContent(ctx, c.model, genai.Text(prompt), nil)
	if err != nil {
		return "", fmt.Errorf("generate content: %w", err)
	}

	text := resp.Text()
	if strings.TrimSpace(text) == "" {
		return "", errors.New("generate content: empty response")
	}

	c.log.Debug().Int("prompt_chars", len(prompt)).Int("response_chars", len(text)).Msg("Model call completed")
	return text, nil
}

// Unconfigured is a Generator that always fails with ErrNotConfigured
type Unconfigured struct{}

// Generate implements Generator
func (Unconfigured) Generate(context.Context, string) (string, error) {
	return "", ErrNotConfigured
}

// IsConfigured reports whether g can reach a model
func IsConfigured(g Generator) bool {
	if g == nil {
		return false
	}
	_, unconfigured := g.(Unconfigured)
	return !unconfigured
}
