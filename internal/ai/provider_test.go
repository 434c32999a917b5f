package ai

import (
	"context"
	"testing"

	"github.com/akozadaev/budaya_nusantara/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tmc/langchaingo/llms"
)

func TestNewModelMissingGeminiKey(t *testing.T) {
	cfg := config.Defaults()

	_, err := NewModel(context.Background(), cfg)
	assert.ErrorIs(t, err, ErrMissingAPIKey)
}

func TestNewModelUnknownProvider(t *testing.T) {
	cfg := config.Defaults()
	cfg.AIProvider = "carrier-pigeon"

	_, err := NewModel(context.Background(), cfg)
	assert.ErrorIs(t, err, ErrUnknownProvider)
}

func TestNewModelOpenAICompatible(t *testing.T) {
	cfg := config.Defaults()
	cfg.AIProvider = ProviderOpenAI
	cfg.OpenAIBaseURL = "http://localhost:11434/v1"
	cfg.AIModel = "llava"

	model, err := NewModel(context.Background(), cfg)
	require.NoError(t, err)
	assert.NotNil(t, model)
}

func TestResponseText(t *testing.T) {
	assert.Equal(t, "", ResponseText(nil))
	assert.Equal(t, "", ResponseText(&llms.ContentResponse{}))
	assert.Equal(t, "hi", ResponseText(&llms.ContentResponse{
		Choices: []*llms.ContentChoice{{Content: "hi"}},
	}))
}
