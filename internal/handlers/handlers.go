// Package handlers contains the HTTP handlers of the region search API.
package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/akozadaev/budaya_nusantara/internal/chat"
	"github.com/akozadaev/budaya_nusantara/internal/config"
	"github.com/akozadaev/budaya_nusantara/internal/models"
	"github.com/akozadaev/budaya_nusantara/internal/search"
	"github.com/akozadaev/budaya_nusantara/internal/storage"
	"github.com/gorilla/mux"
)

// Searcher resolves text and image queries.
type Searcher interface {
	Search(ctx context.Context, q string) (*models.SearchResponse, error)
	SearchImage(ctx context.Context, image []byte, mimeType string) (*models.ImageSearchResponse, error)
}

// RegionReader is the live store used by the listing endpoints.
type RegionReader interface {
	ListDaerah(ctx context.Context) ([]models.Daerah, error)
	GetDaerah(ctx context.Context, id string) (*models.Daerah, error)
}

// FallbackReader is the static dataset used when the live store cannot answer.
type FallbackReader interface {
	ListDaerah() []models.Daerah
	GetDaerah(id string) (*models.Daerah, error)
}

// Assistant streams chatbot replies.
type Assistant interface {
	Stream(ctx context.Context, req models.ChatRequest, onChunk func(text string) error) error
}

// Handlers holds the dependencies of the HTTP handlers.
type Handlers struct {
	search    Searcher
	regions   RegionReader // nil while the store is unavailable
	fallback  FallbackReader
	assistant Assistant
	maxUpload int64
	logger    *slog.Logger
}

// NewHandlers creates Handlers. Pass a nil regions reader when the store is
// unavailable; the listing endpoints then answer from fallback.
func NewHandlers(searcher Searcher, regions RegionReader, fallback FallbackReader, assistant Assistant, maxUpload int64, logger *slog.Logger) *Handlers {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handlers{
		search:    searcher,
		regions:   regions,
		fallback:  fallback,
		assistant: assistant,
		maxUpload: maxUpload,
		logger:    logger.With("component", "handlers"),
	}
}

// Register mounts every API route on router, including the legacy
// /api/daerah aliases.
func (h *Handlers) Register(router *mux.Router) {
	router.HandleFunc("/health", h.HealthCheck).Methods(http.MethodGet)
	router.HandleFunc("/search", h.Search).Methods(http.MethodGet)
	router.HandleFunc("/search/image", h.SearchImage).Methods(http.MethodPost)
	router.HandleFunc("/daerah", h.ListDaerah).Methods(http.MethodGet)
	router.HandleFunc("/daerah/{id}", h.GetDaerah).Methods(http.MethodGet)
	router.HandleFunc("/chatbot", h.Chat).Methods(http.MethodPost)

	router.HandleFunc("/api/daerah", h.ListDaerah).Methods(http.MethodGet)
	router.HandleFunc("/api/daerah/search", h.Search).Methods(http.MethodGet)
	router.HandleFunc("/api/daerah/search/image", h.SearchImage).Methods(http.MethodPost)
	router.HandleFunc("/api/chatbot", h.Chat).Methods(http.MethodPost)
}

// Search handles text search.
//
// @Summary      Search regions by text
// @Description  Direct substring match first, then semantic matching by the language model. Falls back to the offline dataset when the database is unavailable.
// @Tags         search
// @Produce      json
// @Param        q    query     string  true  "Search query"
// @Success      200  {object}  models.SearchResponse
// @Failure      400  {object}  models.ErrorResponse  "Missing query"
// @Failure      500  {object}  models.ErrorResponse  "Search failed"
// @Router       /search [get]
func (h *Handlers) Search(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")

	resp, err := h.search.Search(r.Context(), q)
	if err != nil {
		if errors.Is(err, search.ErrEmptyQuery) {
			writeError(w, http.StatusBadRequest, "Query parameter is required", "")
			return
		}
		h.logger.Error("search failed", "query", q, "err", err, "request_id", RequestID(r.Context()))
		writeError(w, http.StatusInternalServerError, "Failed to search daerah", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// SearchImage handles reverse image search.
//
// @Summary      Search regions by image
// @Description  The language model describes the uploaded image and picks up to three matching regions with a confidence tier.
// @Tags         search
// @Accept       multipart/form-data
// @Produce      json
// @Param        image  formData  file  true  "Image file"
// @Success      200    {object}  models.ImageSearchResponse
// @Failure      400    {object}  models.ErrorResponse  "Missing or non-image file"
// @Failure      413    {object}  models.ErrorResponse  "Upload exceeds the size limit"
// @Failure      500    {object}  models.ErrorResponse  "Search failed"
// @Router       /search/image [post]
func (h *Handlers) SearchImage(w http.ResponseWriter, r *http.Request) {
	if r.ContentLength > h.maxUpload {
		writeError(w, http.StatusRequestEntityTooLarge, "Image is too large", "")
		return
	}
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUpload)

	if err := r.ParseMultipartForm(h.maxUpload); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, "Image is too large", err.Error())
			return
		}
		writeError(w, http.StatusBadRequest, "Image is required", err.Error())
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		writeError(w, http.StatusBadRequest, "Image is required", "")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Image is required", err.Error())
		return
	}
	if len(data) == 0 {
		writeError(w, http.StatusBadRequest, "Image is required", "empty file")
		return
	}

	mimeType := header.Header.Get("Content-Type")
	if mimeType == "" || mimeType == "application/octet-stream" {
		mimeType = http.DetectContentType(data)
	}
	if !strings.HasPrefix(mimeType, "image/") {
		writeError(w, http.StatusBadRequest, "File must be an image", "")
		return
	}

	resp, err := h.search.SearchImage(r.Context(), data, mimeType)
	if err != nil {
		if errors.Is(err, search.ErrInvalidImage) {
			writeError(w, http.StatusBadRequest, "File must be an image", "")
			return
		}
		h.logger.Error("image search failed", "err", err, "request_id", RequestID(r.Context()))
		writeError(w, http.StatusInternalServerError, "Failed to search by image", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// ListDaerah returns the regions that can be placed on the map.
//
// @Summary      List regions
// @Description  Regions with both coordinates set. Served from the offline dataset when the database is not configured.
// @Tags         daerah
// @Produce      json
// @Success      200  {object}  models.DaerahListResponse
// @Failure      500  {object}  models.ErrorResponse
// @Router       /daerah [get]
func (h *Handlers) ListDaerah(w http.ResponseWriter, r *http.Request) {
	if h.regions == nil {
		writeJSON(w, http.StatusOK, models.DaerahListResponse{
			Success:  true,
			Data:     h.fallback.ListDaerah(),
			Fallback: true,
		})
		return
	}

	daerahs, err := h.regions.ListDaerah(r.Context())
	if err != nil {
		h.logger.Error("listing daerah failed", "err", err, "request_id", RequestID(r.Context()))
		writeError(w, http.StatusInternalServerError, "Failed to fetch daerah data", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, models.DaerahListResponse{Success: true, Data: daerahs})
}

// GetDaerah returns one region with its artifacts.
//
// @Summary      Get region
// @Description  Full region record including artifact descriptions and virtual tour links.
// @Tags         daerah
// @Produce      json
// @Param        id   path      string  true  "Region ID"
// @Success      200  {object}  models.DaerahDetailResponse
// @Failure      404  {object}  models.ErrorResponse  "Region not found"
// @Router       /daerah/{id} [get]
func (h *Handlers) GetDaerah(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	if h.regions != nil {
		daerah, err := h.regions.GetDaerah(r.Context(), id)
		switch {
		case err == nil:
			writeJSON(w, http.StatusOK, models.DaerahDetailResponse{Success: true, Data: daerah})
			return
		case errors.Is(err, storage.ErrDaerahNotFound):
			writeError(w, http.StatusNotFound, "Daerah not found", "")
			return
		default:
			h.logger.Warn("store failure, looking up fallback region", "id", id, "err", err)
		}
	}

	daerah, err := h.fallback.GetDaerah(id)
	if err != nil {
		writeError(w, http.StatusNotFound, "Daerah not found", "")
		return
	}
	writeJSON(w, http.StatusOK, models.DaerahDetailResponse{Success: true, Data: daerah, Fallback: true})
}

// Chat streams an answer from the cultural assistant as server-sent events.
//
// @Summary      Chat with the cultural assistant
// @Description  Streams `data: {"text": "..."}` frames and finishes with `data: [DONE]`. A failure mid-stream is sent as `data: {"error": "..."}`.
// @Tags         chatbot
// @Accept       json
// @Produce      text/event-stream
// @Param        request  body      models.ChatRequest  true  "Message and history"
// @Success      200      {string}  string  "event stream"
// @Failure      400      {object}  models.ErrorResponse  "Empty message"
// @Failure      500      {object}  models.ErrorResponse  "Model not configured"
// @Router       /chatbot [post]
func (h *Handlers) Chat(w http.ResponseWriter, r *http.Request) {
	var req models.ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}
	if strings.TrimSpace(req.Message) == "" {
		writeError(w, http.StatusBadRequest, "Message is required", "")
		return
	}

	sse := newEventWriter(w)
	err := h.assistant.Stream(r.Context(), req, func(text string) error {
		return sse.send(map[string]string{"text": text})
	})

	if !sse.started {
		// Nothing was streamed yet, so a plain JSON error is still possible.
		switch {
		case err == nil:
			sse.done()
		case errors.Is(err, chat.ErrEmptyMessage):
			writeError(w, http.StatusBadRequest, "Message is required", "")
		case errors.Is(err, chat.ErrModelRequired):
			writeError(w, http.StatusInternalServerError, "AI model not configured", "")
		default:
			h.logger.Error("chat failed", "err", err, "request_id", RequestID(r.Context()))
			writeError(w, http.StatusInternalServerError, "Failed to process message", err.Error())
		}
		return
	}

	if err != nil {
		h.logger.Error("chat stream failed", "err", err, "request_id", RequestID(r.Context()))
		_ = sse.send(map[string]string{"error": err.Error()})
		return
	}
	sse.done()
}

// HealthCheck reports liveness and the store state.
//
// @Summary      Health check
// @Tags         health
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /health [get]
func (h *Handlers) HealthCheck(w http.ResponseWriter, r *http.Request) {
	state := config.StoreOK
	if h.regions == nil {
		state = config.StoreUnavailable
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"status": "ok",
		"store":  string(state),
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("encoding response", "err", err)
	}
}

func writeError(w http.ResponseWriter, status int, message, details string) {
	writeJSON(w, status, models.ErrorResponse{
		Success: false,
		Error:   message,
		Details: details,
	})
}
