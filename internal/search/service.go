// Package search resolves text and image queries to regions.
//
// Text queries try a direct substring match first and fall back to asking the
// language model to pick regions from the full corpus. Image queries always go
// to the model. When the Region Store is unconfigured, or an operation on it
// fails, text queries are answered from the static fallback dataset.
package search

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/akozadaev/budaya_nusantara/internal/ai"
	"github.com/akozadaev/budaya_nusantara/internal/models"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/schema"
)

// RegionStore is the live store the resolvers read from.
type RegionStore interface {
	SearchDaerah(ctx context.Context, q string) ([]models.Daerah, error)
	AllDaerahWithKebudayaan(ctx context.Context) ([]models.Daerah, error)
	GetDaerahByIDs(ctx context.Context, ids []string) ([]models.Daerah, error)
}

// FallbackDataset answers substring queries without any I/O.
type FallbackDataset interface {
	SearchDaerah(keyword string) []models.Daerah
}

// Service runs the search resolution flow for one request at a time; it holds
// no per-request state and is safe for concurrent use.
type Service struct {
	store    RegionStore
	fallback FallbackDataset
	model    llms.Model
	logger   *slog.Logger
	now      func() time.Time
}

// Option configures a Service.
type Option func(*Service)

// WithLogger sets the logger. A nil logger keeps the default.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithClock overrides the time source used for image search ids.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// NewService builds a Service. A nil store means the store is unavailable for
// the whole process lifetime and text search is answered from fallback only.
// A nil model is allowed; semantic resolution then fails with ErrModelRequired.
func NewService(store RegionStore, fallback FallbackDataset, model llms.Model, opts ...Option) (*Service, error) {
	if fallback == nil {
		return nil, ErrFallbackRequired
	}
	s := &Service{
		store:    store,
		fallback: fallback,
		model:    model,
		logger:   slog.Default().With("component", "search"),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// StoreAvailable reports whether a live store is configured.
func (s *Service) StoreAvailable() bool {
	return s.store != nil
}

// Search resolves a text query.
//
// Recoverable outcomes (no match, unparseable model output, store fault with a
// fallback hit) return a response with Success set. A store fault without a
// fallback hit returns an error wrapping ErrNoFallbackMatch; a model failure
// returns the model error.
func (s *Service) Search(ctx context.Context, q string) (*models.SearchResponse, error) {
	if strings.TrimSpace(q) == "" {
		return nil, ErrEmptyQuery
	}

	if s.store == nil {
		return s.searchOffline(q), nil
	}

	direct, err := s.store.SearchDaerah(ctx, q)
	if err != nil {
		return s.recoverFromFault(q, err)
	}
	if len(direct) > 0 {
		return &models.SearchResponse{
			Success:   true,
			Data:      plainResults(direct),
			MatchedBy: models.MatchedByDirect,
			Summary:   summaryDirect(len(direct), q),
		}, nil
	}

	s.logger.Debug("no direct match, asking model", "query", q)

	corpus, err := s.store.AllDaerahWithKebudayaan(ctx)
	if err != nil {
		return s.recoverFromFault(q, err)
	}
	if len(corpus) == 0 {
		return &models.SearchResponse{
			Success:   true,
			Data:      []models.DaerahResult{},
			MatchedBy: models.MatchedByNone,
			Summary:   summaryEmptyStore,
		}, nil
	}

	corpusContext := s.corpusContext(corpus)
	text, err := s.generate(ctx, llms.TextPart(buildTextPrompt(corpusContext, q)))
	if err != nil {
		return nil, err
	}

	answer, err := parseAnswer(text, false)
	if err != nil {
		s.logger.Warn("unusable model response", "query", q, "err", err)
		return &models.SearchResponse{
			Success:   true,
			Data:      []models.DaerahResult{},
			MatchedBy: models.MatchedByGeminiParseError,
			Summary:   summaryParseError(q),
		}, nil
	}
	if len(answer.Matches) == 0 {
		return &models.SearchResponse{
			Success:   true,
			Data:      []models.DaerahResult{},
			MatchedBy: models.MatchedByGeminiNoMatch,
			Summary:   summaryNoMatch(q),
		}, nil
	}

	records, err := s.store.GetDaerahByIDs(ctx, matchIDs(answer.Matches))
	if err != nil {
		return s.recoverFromFault(q, err)
	}

	results := assemble(answer.Matches, records, false)
	if dropped := len(answer.Matches) - len(results); dropped > 0 {
		s.logger.Debug("model returned unknown region ids", "query", q, "dropped", dropped)
	}

	return &models.SearchResponse{
		Success:   true,
		Data:      results,
		MatchedBy: models.MatchedByGemini,
		Summary:   summarySemantic(len(results), q),
	}, nil
}

// SearchImage resolves an uploaded image. There is no substring path for
// images: any store failure is returned as an error.
func (s *Service) SearchImage(ctx context.Context, image []byte, mimeType string) (*models.ImageSearchResponse, error) {
	if len(image) == 0 || !strings.HasPrefix(mimeType, "image/") {
		return nil, ErrInvalidImage
	}

	searchID := strconv.FormatInt(s.now().UnixMilli(), 10)

	if s.store == nil {
		return &models.ImageSearchResponse{
			Success:   true,
			Data:      []models.DaerahResult{},
			MatchedBy: models.MatchedByNone,
			Summary:   summaryImageOffline,
			SearchID:  searchID,
			Fallback:  true,
		}, nil
	}

	corpus, err := s.store.AllDaerahWithKebudayaan(ctx)
	if err != nil {
		return nil, err
	}
	if len(corpus) == 0 {
		return &models.ImageSearchResponse{
			Success:   true,
			Data:      []models.DaerahResult{},
			MatchedBy: models.MatchedByNone,
			Summary:   summaryEmptyStore,
			SearchID:  searchID,
		}, nil
	}

	corpusContext := s.corpusContext(corpus)
	text, err := s.generate(ctx,
		llms.TextPart(buildImagePrompt(corpusContext)),
		llms.BinaryPart(mimeType, image),
	)
	if err != nil {
		return nil, err
	}

	answer, err := parseAnswer(text, true)
	if err != nil {
		s.logger.Warn("unusable model response for image", "err", err)
		return &models.ImageSearchResponse{
			Success:          true,
			Data:             []models.DaerahResult{},
			MatchedBy:        models.MatchedByVisionParseError,
			ImageDescription: imageDescriptionError,
			Summary:          summaryImageParseError,
			SearchID:         searchID,
		}, nil
	}

	description := answer.ImageDescription
	if description == "" {
		description = imageDescriptionUnknown
	}

	if len(answer.Matches) == 0 {
		return &models.ImageSearchResponse{
			Success:          true,
			Data:             []models.DaerahResult{},
			MatchedBy:        models.MatchedByVisionNoMatch,
			ImageDescription: description,
			Summary:          summaryImageNoMatch,
			SearchID:         searchID,
		}, nil
	}

	records, err := s.store.GetDaerahByIDs(ctx, matchIDs(answer.Matches))
	if err != nil {
		return nil, err
	}

	results := assemble(answer.Matches, records, true)
	return &models.ImageSearchResponse{
		Success:          true,
		Data:             results,
		MatchedBy:        models.MatchedByVision,
		ImageDescription: description,
		Summary:          summaryImage(len(results)),
		SearchID:         searchID,
	}, nil
}

// searchOffline serves a text query while the store is unconfigured.
func (s *Service) searchOffline(q string) *models.SearchResponse {
	matches := s.fallback.SearchDaerah(q)
	matchedBy := models.MatchedByFallback
	if len(matches) == 0 {
		matchedBy = models.MatchedByNone
	}
	return &models.SearchResponse{
		Success:   true,
		Data:      plainResults(matches),
		MatchedBy: matchedBy,
		Summary:   summaryOffline(len(matches), q),
		Fallback:  true,
	}
}

// recoverFromFault answers from the fallback dataset after a live-store
// failure. Without a fallback hit the failure is returned to the caller.
func (s *Service) recoverFromFault(q string, cause error) (*models.SearchResponse, error) {
	matches := s.fallback.SearchDaerah(q)
	if len(matches) == 0 {
		s.logger.Error("store failure with no fallback match", "query", q, "err", cause)
		return nil, fmt.Errorf("%w: %w", ErrNoFallbackMatch, cause)
	}

	s.logger.Warn("store failure, serving fallback data", "query", q, "matches", len(matches), "err", cause)
	return &models.SearchResponse{
		Success:   true,
		Data:      plainResults(matches),
		MatchedBy: models.MatchedByFallbackErrorRecovery,
		Summary:   summaryErrorRecovery(len(matches)),
		Fallback:  true,
	}, nil
}

// corpusContext renders the corpus for a prompt, warning when regions were cut.
func (s *Service) corpusContext(corpus []models.Daerah) string {
	corpusContext, omitted := buildCorpusContext(corpus)
	if omitted > 0 {
		s.logger.Warn("corpus context truncated", "regions", len(corpus), "omitted", omitted)
	}
	return corpusContext
}

// generate sends one human turn to the model and returns its trimmed text.
func (s *Service) generate(ctx context.Context, parts ...llms.ContentPart) (string, error) {
	if s.model == nil {
		return "", ErrModelRequired
	}

	resp, err := s.model.GenerateContent(ctx, []llms.MessageContent{
		{Role: schema.ChatMessageTypeHuman, Parts: parts},
	})
	if err != nil {
		return "", fmt.Errorf("model invocation failed: %w", err)
	}

	text := strings.TrimSpace(ai.ResponseText(resp))
	s.logger.Debug("model response", "response", text)
	return text, nil
}

// matchIDs lists match ids in model order.
func matchIDs(matches []match) []string {
	ids := make([]string, len(matches))
	for i, m := range matches {
		ids[i] = m.ID
	}
	return ids
}

// IsInputError reports whether err is caused by bad client input.
func IsInputError(err error) bool {
	return errors.Is(err, ErrEmptyQuery) || errors.Is(err, ErrInvalidImage)
}
