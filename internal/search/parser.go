package search

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/akozadaev/budaya_nusantara/internal/models"
)

// maxMatches is the most regions a semantic resolver will return.
const maxMatches = 3

// match is one validated entry of the model's "matches" array.
type match struct {
	ID          string
	Explanation string
	Confidence  models.Confidence
}

// modelAnswer is the validated form of the model's JSON reply.
type modelAnswer struct {
	ImageDescription string
	Matches          []match
}

// extractJSONObject returns the first balanced {...} span of text.
// Braces inside JSON string literals do not count toward the balance.
func extractJSONObject(text string) (string, bool) {
	start := strings.IndexByte(text, '{')
	if start < 0 {
		return "", false
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(text); i++ {
		c := text[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return text[start : i+1], true
			}
		}
	}
	return "", false
}

// parseAnswer extracts and validates the model reply. withImage enables the
// image contract: optional string imageDescription and a per-match confidence.
// Any deviation from the contract yields errMalformedResponse.
func parseAnswer(text string, withImage bool) (*modelAnswer, error) {
	span, ok := extractJSONObject(text)
	if !ok {
		return nil, fmt.Errorf("%w: no JSON object in %.200q", errMalformedResponse, text)
	}

	var top map[string]json.RawMessage
	if err := json.Unmarshal([]byte(span), &top); err != nil {
		return nil, fmt.Errorf("%w: %v", errMalformedResponse, err)
	}

	answer := &modelAnswer{Matches: []match{}}

	if withImage {
		if raw, ok := top["imageDescription"]; ok && !isNull(raw) {
			if err := json.Unmarshal(raw, &answer.ImageDescription); err != nil {
				return nil, fmt.Errorf("%w: imageDescription is not a string", errMalformedResponse)
			}
		}
	}

	rawMatches, ok := top["matches"]
	if !ok || isNull(rawMatches) {
		return nil, fmt.Errorf("%w: missing matches", errMalformedResponse)
	}

	var items []map[string]json.RawMessage
	if err := json.Unmarshal(rawMatches, &items); err != nil {
		return nil, fmt.Errorf("%w: matches is not an array of objects", errMalformedResponse)
	}

	seen := make(map[string]bool, len(items))
	for i, item := range items {
		if item == nil {
			return nil, fmt.Errorf("%w: matches[%d] is null", errMalformedResponse, i)
		}

		var m match
		if err := json.Unmarshal(item["id"], &m.ID); err != nil || strings.TrimSpace(m.ID) == "" {
			return nil, fmt.Errorf("%w: matches[%d].id must be a non-empty string", errMalformedResponse, i)
		}
		m.ID = strings.TrimSpace(m.ID)

		if raw, ok := item["explanation"]; ok && !isNull(raw) {
			if err := json.Unmarshal(raw, &m.Explanation); err != nil {
				return nil, fmt.Errorf("%w: matches[%d].explanation is not a string", errMalformedResponse, i)
			}
		}

		m.Confidence = models.ConfidenceUnknown
		if withImage {
			var tier string
			if raw, ok := item["confidence"]; ok && json.Unmarshal(raw, &tier) == nil {
				m.Confidence = models.ParseConfidence(tier)
			}
		}

		if seen[m.ID] {
			continue
		}
		seen[m.ID] = true
		answer.Matches = append(answer.Matches, m)
		if len(answer.Matches) == maxMatches {
			break
		}
	}

	return answer, nil
}

func isNull(raw json.RawMessage) bool {
	return strings.TrimSpace(string(raw)) == "null"
}
