// Package ai constructs the language model used by search and the chatbot.
package ai

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/akozadaev/budaya_nusantara/internal/config"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/googleai"
	"github.com/tmc/langchaingo/llms/openai"
)

const (
	ProviderGoogleAI = "googleai"
	ProviderOpenAI   = "openai"
)

var (
	// ErrUnknownProvider is returned for an AI_PROVIDER value we cannot build.
	ErrUnknownProvider = errors.New("unknown AI provider")
	// ErrMissingAPIKey is returned when the googleai provider has no key.
	ErrMissingAPIKey = errors.New("GEMINI_API_KEY not configured")
)

// NewModel builds a multimodal chat model from configuration.
// The same model serves text search, image search and the chatbot.
func NewModel(ctx context.Context, cfg *config.Config) (llms.Model, error) {
	logger := slog.Default().With("component", "ai")

	switch cfg.AIProvider {
	case ProviderGoogleAI, "":
		if cfg.GeminiAPIKey == "" {
			return nil, ErrMissingAPIKey
		}
		model, err := googleai.New(ctx,
			googleai.WithAPIKey(cfg.GeminiAPIKey),
			googleai.WithDefaultModel(cfg.AIModel),
		)
		if err != nil {
			return nil, fmt.Errorf("creating googleai client: %w", err)
		}
		logger.Info("language model ready", "provider", ProviderGoogleAI, "model", cfg.AIModel)
		return model, nil

	case ProviderOpenAI:
		token := cfg.OpenAIAPIKey
		if token == "" {
			// Local OpenAI-compatible servers accept any token.
			token = "none"
		}
		opts := []openai.Option{
			openai.WithToken(token),
			openai.WithModel(cfg.AIModel),
		}
		if cfg.OpenAIBaseURL != "" {
			opts = append(opts, openai.WithBaseURL(cfg.OpenAIBaseURL))
		}
		model, err := openai.New(opts...)
		if err != nil {
			return nil, fmt.Errorf("creating openai client: %w", err)
		}
		logger.Info("language model ready", "provider", ProviderOpenAI, "model", cfg.AIModel, "base_url", cfg.OpenAIBaseURL)
		return model, nil
	}

	return nil, fmt.Errorf("%w: %q", ErrUnknownProvider, cfg.AIProvider)
}

// ResponseText returns the text of the first choice, or "" when the model
// returned no choices.
func ResponseText(resp *llms.ContentResponse) string {
	if resp == nil || len(resp.Choices) == 0 || resp.Choices[0] == nil {
		return ""
	}
	return resp.Choices[0].Content
}
