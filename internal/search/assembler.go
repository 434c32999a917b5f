package search

import (
	"fmt"
	"slices"

	"github.com/akozadaev/budaya_nusantara/internal/models"
)

// assemble decorates the fetched records with each match's explanation and,
// when withConfidence is set, its confidence tier. Output follows match order;
// matches whose id was not found are dropped. With confidence, results are
// stably sorted high, medium, low, then unknown.
func assemble(matches []match, records []models.Daerah, withConfidence bool) []models.DaerahResult {
	byID := make(map[string]models.Daerah, len(records))
	for _, d := range records {
		byID[d.ID] = d
	}

	type ranked struct {
		result     models.DaerahResult
		confidence models.Confidence
	}

	out := make([]ranked, 0, len(matches))
	for _, m := range matches {
		d, ok := byID[m.ID]
		if !ok {
			continue
		}
		r := models.DaerahResult{Daerah: d}
		if m.Explanation != "" {
			explanation := m.Explanation
			r.AIExplanation = &explanation
		}
		if withConfidence && m.Confidence != models.ConfidenceUnknown {
			tier := m.Confidence.String()
			r.AIConfidence = &tier
		}
		out = append(out, ranked{result: r, confidence: m.Confidence})
	}

	if withConfidence {
		slices.SortStableFunc(out, func(a, b ranked) int {
			return int(a.confidence) - int(b.confidence)
		})
	}

	results := make([]models.DaerahResult, len(out))
	for i, r := range out {
		results[i] = r.result
	}
	return results
}

// plainResults wraps undecorated records for a response envelope.
func plainResults(daerahs []models.Daerah) []models.DaerahResult {
	results := make([]models.DaerahResult, len(daerahs))
	for i, d := range daerahs {
		results[i] = models.DaerahResult{Daerah: d}
	}
	return results
}

// Summary sentences embed the match count and, for text search, the query verbatim.

func summaryDirect(n int, q string) string {
	return fmt.Sprintf("Ditemukan %d daerah yang cocok dengan pencarian \"%s\"", n, q)
}

func summarySemantic(n int, q string) string {
	if n == 0 {
		return summaryNoMatch(q)
	}
	return fmt.Sprintf("Ditemukan %d daerah yang mungkin cocok dengan \"%s\"", n, q)
}

func summaryNoMatch(q string) string {
	return fmt.Sprintf("Tidak ditemukan daerah yang cocok dengan pencarian \"%s\"", q)
}

func summaryParseError(q string) string {
	return fmt.Sprintf("Tidak dapat memproses hasil pencarian untuk \"%s\"", q)
}

func summaryOffline(n int, q string) string {
	if n == 0 {
		return fmt.Sprintf("Tidak ada daerah yang cocok dengan pencarian \"%s\" pada data offline.", q)
	}
	return fmt.Sprintf("Ditemukan %d daerah yang cocok dengan pencarian \"%s\" (mode offline)", n, q)
}

func summaryErrorRecovery(n int) string {
	return fmt.Sprintf("Database tidak dapat diakses, tetapi ditemukan %d hasil dari data offline.", n)
}

func summaryImage(n int) string {
	if n == 0 {
		return summaryImageNoMatch
	}
	return fmt.Sprintf("Ditemukan %d daerah yang mungkin cocok dengan gambar yang diunggah", n)
}

const (
	summaryEmptyStore       = "Tidak ada daerah yang ditemukan dalam database"
	summaryImageNoMatch     = "Tidak ditemukan daerah yang cocok dengan gambar yang diunggah"
	summaryImageParseError  = "Tidak dapat memproses hasil analisis gambar"
	summaryImageOffline     = "Pencarian gambar tidak tersedia dalam mode offline"
	imageDescriptionUnknown = "Gambar tidak dapat diidentifikasi"
	imageDescriptionError   = "Error dalam memproses gambar"
)
