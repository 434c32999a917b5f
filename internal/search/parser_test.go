package search

import (
	"testing"

	"github.com/akozadaev/budaya_nusantara/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractJSONObject(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
		ok   bool
	}{
		{"plain object", `{"matches":[]}`, `{"matches":[]}`, true},
		{"markdown fenced", "```json\n{\"matches\":[]}\n```", `{"matches":[]}`, true},
		{"leading prose", `Berikut hasilnya: {"a":{"b":1}} selesai`, `{"a":{"b":1}}`, true},
		{"brace inside string", `{"explanation":"pakai } dan {"} ekor`, `{"explanation":"pakai } dan {"}`, true},
		{"escaped quote inside string", `{"x":"a \"}\" b"}`, `{"x":"a \"}\" b"}`, true},
		{"first of two objects", `{"a":1} {"b":2}`, `{"a":1}`, true},
		{"no brace", "maaf, saya tidak tahu", "", false},
		{"unbalanced", `{"matches":[`, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := extractJSONObject(tt.in)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseAnswerText(t *testing.T) {
	answer, err := parseAnswer("```json\n"+`{"matches":[{"id":"bali","explanation":"Pulau dewata"},{"id":"jabar"}]}`+"\n```", false)
	require.NoError(t, err)
	require.Len(t, answer.Matches, 2)
	assert.Equal(t, match{ID: "bali", Explanation: "Pulau dewata", Confidence: models.ConfidenceUnknown}, answer.Matches[0])
	assert.Equal(t, "jabar", answer.Matches[1].ID)
	assert.Empty(t, answer.Matches[1].Explanation)
}

func TestParseAnswerEmptyMatches(t *testing.T) {
	answer, err := parseAnswer(`{"matches": []}`, false)
	require.NoError(t, err)
	assert.Empty(t, answer.Matches)
}

func TestParseAnswerTruncatesAndDedupes(t *testing.T) {
	text := `{"matches":[{"id":"a"},{"id":"a"},{"id":"b"},{"id":"c"},{"id":"d"}]}`

	answer, err := parseAnswer(text, false)
	require.NoError(t, err)
	require.Len(t, answer.Matches, maxMatches)
	assert.Equal(t, []string{"a", "b", "c"}, matchIDs(answer.Matches))
}

func TestParseAnswerRejectsContractViolations(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{"no json", "Tidak ada daerah yang cocok."},
		{"invalid json", `{"matches": [oops]}`},
		{"missing matches", `{"result": []}`},
		{"null matches", `{"matches": null}`},
		{"matches not array", `{"matches": "bali"}`},
		{"match not object", `{"matches": ["bali"]}`},
		{"null match", `{"matches": [null]}`},
		{"missing id", `{"matches": [{"explanation": "x"}]}`},
		{"numeric id", `{"matches": [{"id": 42}]}`},
		{"blank id", `{"matches": [{"id": "  "}]}`},
		{"explanation not string", `{"matches": [{"id": "bali", "explanation": 1}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parseAnswer(tt.text, false)
			assert.ErrorIs(t, err, errMalformedResponse)
		})
	}
}

func TestParseAnswerImage(t *testing.T) {
	text := `{
		"imageDescription": "Rumah bergonjong",
		"matches": [
			{"id": "sumbar", "explanation": "Rumah Gadang", "confidence": "HIGH"},
			{"id": "bali", "confidence": "sedang"},
			{"id": "jabar", "confidence": 3}
		]
	}`

	answer, err := parseAnswer(text, true)
	require.NoError(t, err)
	assert.Equal(t, "Rumah bergonjong", answer.ImageDescription)
	require.Len(t, answer.Matches, 3)
	assert.Equal(t, models.ConfidenceHigh, answer.Matches[0].Confidence)
	assert.Equal(t, models.ConfidenceUnknown, answer.Matches[1].Confidence)
	assert.Equal(t, models.ConfidenceUnknown, answer.Matches[2].Confidence)
}

func TestParseAnswerImageDescriptionMustBeString(t *testing.T) {
	_, err := parseAnswer(`{"imageDescription": ["x"], "matches": []}`, true)
	assert.ErrorIs(t, err, errMalformedResponse)

	answer, err := parseAnswer(`{"imageDescription": null, "matches": []}`, true)
	require.NoError(t, err)
	assert.Empty(t, answer.ImageDescription)
}

func TestParseAnswerTextIgnoresConfidence(t *testing.T) {
	answer, err := parseAnswer(`{"matches": [{"id": "bali", "confidence": "high"}]}`, false)
	require.NoError(t, err)
	assert.Equal(t, models.ConfidenceUnknown, answer.Matches[0].Confidence)
}
