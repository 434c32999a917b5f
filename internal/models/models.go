package models

import (
	"strings"
	"time"
)

// JenisKebudayaan is the closed set of cultural artifact categories.
type JenisKebudayaan string

const (
	JenisSukuAdat       JenisKebudayaan = "SUKU_ADAT"
	JenisRumahAdat      JenisKebudayaan = "RUMAH_ADAT"
	JenisMakananKhas    JenisKebudayaan = "MAKANAN_KHAS"
	JenisKesenianDaerah JenisKebudayaan = "KESENIAN_DAERAH"
)

// Valid reports whether j is one of the four known categories.
// Read paths pass unknown values through untouched; only writers should reject them.
func (j JenisKebudayaan) Valid() bool {
	switch j {
	case JenisSukuAdat, JenisRumahAdat, JenisMakananKhas, JenisKesenianDaerah:
		return true
	}
	return false
}

// Kebudayaan represents one cultural artifact owned by a Daerah.
type Kebudayaan struct {
	ID          string          `json:"id"`
	Nama        string          `json:"nama"`
	Jenis       JenisKebudayaan `json:"jenis"`
	Images      []string        `json:"images"`
	Description string          `json:"description,omitempty"`
	VirtualTour *string         `json:"virtualTour,omitempty"`
	DaerahID    string          `json:"-"`
}

// Daerah represents a region (province or cultural unit) with its artifacts.
type Daerah struct {
	ID            string       `json:"id"`
	Nama          string       `json:"nama"`
	Description   string       `json:"description"`
	Latitude      *float64     `json:"latitude"`
	Longitude     *float64     `json:"longitude"`
	Icon          *string      `json:"icon"`
	BackgroundImg *string      `json:"backgroundImg"`
	Images        []string     `json:"images"`
	Kebudayaans   []Kebudayaan `json:"kebudayaans"`
	CreatedAt     time.Time    `json:"-"`
}

// HasCoordinates reports whether the region can be placed on the map.
func (d *Daerah) HasCoordinates() bool {
	return d.Latitude != nil && d.Longitude != nil
}

// Matches reports whether keyword is a case-insensitive substring of the region
// name, its description, or the name or description of any owned artifact.
func (d *Daerah) Matches(keyword string) bool {
	needle := strings.ToLower(keyword)
	if strings.Contains(strings.ToLower(d.Nama), needle) ||
		strings.Contains(strings.ToLower(d.Description), needle) {
		return true
	}
	for _, k := range d.Kebudayaans {
		if strings.Contains(strings.ToLower(k.Nama), needle) ||
			strings.Contains(strings.ToLower(k.Description), needle) {
			return true
		}
	}
	return false
}

// Confidence is the model-reported certainty of an image match.
type Confidence int

// Declaration order is sort order.
const (
	ConfidenceHigh Confidence = iota
	ConfidenceMedium
	ConfidenceLow
	ConfidenceUnknown
)

// ParseConfidence maps the model's free-form tier to a Confidence.
// Anything unrecognised becomes ConfidenceUnknown.
func ParseConfidence(s string) Confidence {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "high":
		return ConfidenceHigh
	case "medium":
		return ConfidenceMedium
	case "low":
		return ConfidenceLow
	}
	return ConfidenceUnknown
}

func (c Confidence) String() string {
	switch c {
	case ConfidenceHigh:
		return "high"
	case ConfidenceMedium:
		return "medium"
	case ConfidenceLow:
		return "low"
	}
	return "unknown"
}

// MatchedBy is the provenance tag of a search response.
type MatchedBy string

const (
	MatchedByDirect                MatchedBy = "direct_search"
	MatchedByGemini                MatchedBy = "gemini_ai"
	MatchedByGeminiNoMatch         MatchedBy = "gemini_no_match"
	MatchedByGeminiParseError      MatchedBy = "gemini_parse_error"
	MatchedByFallback              MatchedBy = "fallback_search"
	MatchedByFallbackErrorRecovery MatchedBy = "fallback_error_recovery"
	MatchedByVision                MatchedBy = "gemini_vision"
	MatchedByVisionNoMatch         MatchedBy = "gemini_vision_no_match"
	MatchedByVisionParseError      MatchedBy = "gemini_vision_parse_error"
	MatchedByNone                  MatchedBy = "none"
)

// DaerahResult is a Daerah decorated with the model's explanation and, for
// image matches, its confidence tier. Missing decorations encode as null.
type DaerahResult struct {
	Daerah
	AIExplanation *string `json:"aiExplanation"`
	AIConfidence  *string `json:"aiConfidence"`
}

// SearchResponse is the envelope of GET /search.
type SearchResponse struct {
	Success   bool           `json:"success"`
	Data      []DaerahResult `json:"data"`
	MatchedBy MatchedBy      `json:"matchedBy"`
	Summary   string         `json:"summary"`
	Fallback  bool           `json:"fallback,omitempty"`
}

// ImageSearchResponse is the envelope of POST /search/image.
type ImageSearchResponse struct {
	Success          bool           `json:"success"`
	Data             []DaerahResult `json:"data"`
	MatchedBy        MatchedBy      `json:"matchedBy"`
	ImageDescription string         `json:"imageDescription,omitempty"`
	Summary          string         `json:"summary"`
	SearchID         string         `json:"searchId"`
	Fallback         bool           `json:"fallback,omitempty"`
}

// DaerahListResponse is the envelope of GET /daerah.
type DaerahListResponse struct {
	Success  bool     `json:"success"`
	Data     []Daerah `json:"data"`
	Fallback bool     `json:"fallback,omitempty"`
}

// DaerahDetailResponse is the envelope of GET /daerah/{id}.
type DaerahDetailResponse struct {
	Success  bool    `json:"success"`
	Data     *Daerah `json:"data"`
	Fallback bool    `json:"fallback,omitempty"`
}

// ErrorResponse is returned on every non-200 path.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// ChatMessage is one turn of a chatbot conversation.
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatRequest is the body of POST /chatbot.
type ChatRequest struct {
	Message string        `json:"message"`
	History []ChatMessage `json:"history"`
}
