package search

import (
	"fmt"
	"strings"

	"github.com/akozadaev/budaya_nusantara/internal/models"
)

// maxContextChars bounds the corpus block sent to the model.
const maxContextChars = 60000

const contextSeparator = "\n\n---\n\n"

// buildCorpusContext renders one paragraph per region, each listing its
// artifacts as "nama (JENIS): description". Regions that would push the block
// past maxContextChars are left out; the second return value counts them.
func buildCorpusContext(corpus []models.Daerah) (string, int) {
	var b strings.Builder
	for i, d := range corpus {
		kebudayaan := make([]string, 0, len(d.Kebudayaans))
		for _, k := range d.Kebudayaans {
			kebudayaan = append(kebudayaan, fmt.Sprintf("%s (%s): %s", k.Nama, k.Jenis, k.Description))
		}
		paragraph := fmt.Sprintf("ID: %s\nNama: %s\nDeskripsi: %s\nKebudayaan: %s",
			d.ID, d.Nama, d.Description, strings.Join(kebudayaan, "; "))

		extra := len(paragraph)
		if b.Len() > 0 {
			extra += len(contextSeparator)
		}
		if b.Len()+extra > maxContextChars {
			return b.String(), len(corpus) - i
		}
		if b.Len() > 0 {
			b.WriteString(contextSeparator)
		}
		b.WriteString(paragraph)
	}
	return b.String(), 0
}

// buildTextPrompt asks for at most three region ids with explanations.
func buildTextPrompt(corpusContext, query string) string {
	return `Kamu adalah asisten pencarian daerah di Indonesia. Berikut adalah daftar daerah yang tersedia:

` + corpusContext + `

User mencari: "` + query + `"

Tugasmu adalah menemukan daerah yang paling cocok dengan pencarian user. Analisis berdasarkan:
1. Kesamaan nama daerah
2. Relevansi deskripsi daerah
3. Kebudayaan yang ada di daerah tersebut (suku, rumah adat, makanan khas, kesenian)

PENTING: Kembalikan response HANYA dalam format JSON berikut:
{
  "matches": [
    {
      "id": "[id daerah]",
      "explanation": "[Penjelasan singkat 1-2 kalimat kenapa daerah ini cocok dengan pencarian]"
    }
  ]
}

Jika ada beberapa yang cocok, kembalikan maksimal 3 daerah yang paling relevan.
Jika tidak ada yang cocok sama sekali, kembalikan:
{
  "matches": []
}

Contoh response yang benar:
{
  "matches": [
    {
      "id": "abc-123-def-456",
      "explanation": "Daerah ini memiliki kebudayaan Suku Baduy yang terkenal dengan tradisi isolasi dan kearifan lokalnya."
    }
  ]
}`
}

// buildImagePrompt adds imageDescription and a confidence tier per match.
func buildImagePrompt(corpusContext string) string {
	return `Kamu adalah asisten pencarian daerah di Indonesia berdasarkan gambar. Berikut adalah daftar daerah yang tersedia:

` + corpusContext + `

User mengunggah sebuah gambar. Analisis gambar tersebut dan cari daerah di Indonesia yang paling cocok berdasarkan:
1. Elemen budaya yang terlihat di gambar (rumah adat, pakaian tradisional, makanan, kesenian, dll)
2. Karakteristik arsitektur atau desain yang khas
3. Motif atau ornamen tradisional
4. Objek atau benda budaya lainnya

PENTING: Kembalikan response HANYA dalam format JSON berikut:
{
  "imageDescription": "[Deskripsi singkat tentang apa yang terlihat di gambar]",
  "matches": [
    {
      "id": "[id daerah]",
      "explanation": "[Penjelasan 2-3 kalimat kenapa daerah ini cocok dengan gambar. Sebutkan elemen spesifik dari gambar yang cocok dengan kebudayaan daerah ini]",
      "confidence": "[high/medium/low]"
    }
  ]
}

Jika ada beberapa yang cocok, kembalikan maksimal 3 daerah yang paling relevan, urutkan berdasarkan confidence.
Jika tidak ada yang cocok sama sekali, kembalikan:
{
  "imageDescription": "[Deskripsi singkat tentang apa yang terlihat di gambar]",
  "matches": []
}

Contoh response yang benar:
{
  "imageDescription": "Gambar menampilkan rumah tradisional dengan atap melengkung khas dan ornamen tanduk kerbau",
  "matches": [
    {
      "id": "abc-123-def-456",
      "explanation": "Rumah adat di gambar sangat mirip dengan Tongkonan, rumah adat Toraja. Atap melengkung dengan hiasan tanduk kerbau adalah ciri khas arsitektur Toraja.",
      "confidence": "high"
    }
  ]
}`
}
