// Package chat implements the conversational cultural assistant.
package chat

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/akozadaev/budaya_nusantara/internal/models"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/schema"
)

var (
	// ErrEmptyMessage is returned when the user message is blank.
	ErrEmptyMessage = errors.New("message is required")
	// ErrModelRequired is returned when the assistant has no model configured.
	ErrModelRequired = errors.New("AI model not configured")
)

const systemPrompt = `Anda adalah asisten AI yang ahli dalam budaya Indonesia.
Tugas Anda adalah membantu pengguna memahami, mengeksplorasi, dan melestarikan kekayaan budaya Nusantara.
Anda dapat menjawab pertanyaan tentang:
- Kebudayaan daerah dari 38 provinsi Indonesia
- Kesenian tradisional (tari, musik, seni rupa)
- Makanan khas daerah
- Rumah adat dan arsitektur tradisional
- Suku dan adat istiadat
- Bahasa daerah dan sastra
- Sejarah dan warisan budaya

Berikan jawaban yang informatif, ramah, dan mendorong apresiasi terhadap budaya Indonesia.
Gunakan bahasa Indonesia yang baik dan benar.`

const primerReply = "Baik, saya siap membantu Anda mengeksplorasi budaya Indonesia!"

// Assistant answers questions about Indonesian culture.
type Assistant struct {
	model  llms.Model
	logger *slog.Logger
}

// NewAssistant creates an Assistant. model may be nil, in which case every
// Stream call fails with ErrModelRequired.
func NewAssistant(model llms.Model, logger *slog.Logger) *Assistant {
	if logger == nil {
		logger = slog.Default()
	}
	return &Assistant{
		model:  model,
		logger: logger.With("component", "chat"),
	}
}

// Stream sends the conversation to the model and calls onChunk for every
// piece of generated text, in order. Returning an error from onChunk aborts
// generation.
func (a *Assistant) Stream(ctx context.Context, req models.ChatRequest, onChunk func(text string) error) error {
	if strings.TrimSpace(req.Message) == "" {
		return ErrEmptyMessage
	}
	if a.model == nil {
		return ErrModelRequired
	}

	messages := buildConversation(req)
	a.logger.Debug("chat request", "history", len(req.History))

	_, err := a.model.GenerateContent(ctx, messages,
		llms.WithStreamingFunc(func(_ context.Context, chunk []byte) error {
			if len(chunk) == 0 {
				return nil
			}
			return onChunk(string(chunk))
		}),
	)
	if err != nil {
		return fmt.Errorf("chat generation failed: %w", err)
	}
	return nil
}

// buildConversation primes the model with the assistant persona, replays the
// client history and appends the new user message.
func buildConversation(req models.ChatRequest) []llms.MessageContent {
	messages := make([]llms.MessageContent, 0, len(req.History)+3)
	messages = append(messages,
		llms.TextParts(schema.ChatMessageTypeHuman, systemPrompt),
		llms.TextParts(schema.ChatMessageTypeAI, primerReply),
	)
	for _, msg := range req.History {
		role := schema.ChatMessageTypeAI
		if msg.Role == "user" {
			role = schema.ChatMessageTypeHuman
		}
		messages = append(messages, llms.TextParts(role, msg.Content))
	}
	return append(messages, llms.TextParts(schema.ChatMessageTypeHuman, req.Message))
}
