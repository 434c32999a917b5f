package storage

import (
	"github.com/akozadaev/budaya_nusantara/internal/models"
)

// fallbackDaerah mirrors a handful of representative regions. It is served
// when the Region Store is unconfigured or an operation against it fails.
var fallbackDaerah = []models.Daerah{
	{
		ID:          "fallback-jakarta",
		Nama:        "DKI Jakarta",
		Description: "Ibu kota dengan keragaman budaya Betawi dan pengaruh dari seluruh Nusantara.",
		Latitude:    float(-6.2088),
		Longitude:   float(106.8456),
		Icon:        str("/icon/bali.png"),
		Images:      []string{"/kesenian/kesenian1.jpg", "/rumah/rumah1.jpeg"},
		Kebudayaans: []models.Kebudayaan{
			{
				ID:          "fallback-jakarta-suku",
				Nama:        "Suku Betawi",
				Jenis:       models.JenisSukuAdat,
				Images:      []string{"/suku/suku1.jpeg"},
				Description: "Suku asli Jakarta dengan perpaduan budaya Arab, Tionghoa, dan Eropa.",
			},
			{
				ID:          "fallback-jakarta-makanan",
				Nama:        "Kerak Telor",
				Jenis:       models.JenisMakananKhas,
				Images:      []string{"/makanan/makanan1.webp"},
				Description: "Kuliner khas Betawi berbahan ketan dan telur dengan cita rasa gurih.",
			},
			{
				ID:          "fallback-jakarta-kesenian",
				Nama:        "Tari Topeng Betawi",
				Jenis:       models.JenisKesenianDaerah,
				Images:      []string{"/kesenian/kesenian1.jpg"},
				Description: "Pertunjukan tari dengan topeng karakter mencerminkan dinamika kehidupan kota.",
			},
		},
	},
	{
		ID:          "fallback-jabar",
		Nama:        "Jawa Barat",
		Description: "Rumah bagi budaya Sunda dengan alam pegunungan dan tradisi yang ramah.",
		Latitude:    float(-6.9175),
		Longitude:   float(107.6191),
		Icon:        str("/icon/bali.png"),
		Images:      []string{"/kesenian/kesenian2.jpeg", "/rumah/rumah2.jpg"},
		Kebudayaans: []models.Kebudayaan{
			{
				ID:          "fallback-jabar-suku",
				Nama:        "Suku Sunda",
				Jenis:       models.JenisSukuAdat,
				Images:      []string{"/suku/suku2.jpeg"},
				Description: "Suku besar di Tatar Pasundan dengan filosofi silih asah, silih asih.",
			},
			{
				ID:          "fallback-jabar-kesenian",
				Nama:        "Tari Jaipong",
				Jenis:       models.JenisKesenianDaerah,
				Images:      []string{"/kesenian/kesenian7.webp"},
				Description: "Tari dinamis yang memadukan gerakan ketuk tilu dan pencak silat.",
			},
			{
				ID:          "fallback-jabar-makanan",
				Nama:        "Nasi Timbel",
				Jenis:       models.JenisMakananKhas,
				Images:      []string{"/makanan/makanan2.jpg"},
				Description: "Nasi hangat dibungkus daun pisang dengan lauk lalap dan sambal.",
			},
		},
	},
	{
		ID:          "fallback-bali",
		Nama:        "Bali",
		Description: "Pulau Dewata dengan arsitektur pura dan upacara keagamaan yang khas.",
		Latitude:    float(-8.6705),
		Longitude:   float(115.2126),
		Icon:        str("/icon/bali.png"),
		Images:      []string{"/kesenian/kesenian6.jpg", "/rumah/rumah4.jpg"},
		Kebudayaans: []models.Kebudayaan{
			{
				ID:          "fallback-bali-kesenian",
				Nama:        "Tari Kecak",
				Jenis:       models.JenisKesenianDaerah,
				Images:      []string{"/kesenian/kesenian6.jpg"},
				Description: "Tari kolosal dengan paduan suara 'cak' menggambarkan kisah Ramayana.",
			},
			{
				ID:          "fallback-bali-makanan",
				Nama:        "Bebek Betutu",
				Jenis:       models.JenisMakananKhas,
				Images:      []string{"/makanan/makanan4.jpg"},
				Description: "Bebek berbumbu rempah lengkap yang dimasak perlahan dalam balutan daun.",
			},
			{
				ID:          "fallback-bali-rumah",
				Nama:        "Gapura Candi Bentar",
				Jenis:       models.JenisRumahAdat,
				Images:      []string{"/rumah/rumah4.jpg"},
				Description: "Pintu masuk khas arsitektur Bali yang melambangkan keseimbangan sekala-niskala.",
			},
		},
	},
	{
		ID:          "fallback-sumbar",
		Nama:        "Sumatera Barat",
		Description: "Tanah Minangkabau dengan tradisi matrilineal dan kuliner mendunia.",
		Latitude:    float(-0.9493),
		Longitude:   float(100.3543),
		Icon:        str("/icon/bali.png"),
		Images:      []string{"/kesenian/kesenian5.jpeg", "/rumah/rumah5.jpeg"},
		Kebudayaans: []models.Kebudayaan{
			{
				ID:          "fallback-sumbar-suku",
				Nama:        "Suku Minangkabau",
				Jenis:       models.JenisSukuAdat,
				Images:      []string{"/suku/suku5.jpeg"},
				Description: "Suku matrilineal terbesar yang dikenal dengan falsafah adat basandi syarak.",
			},
			{
				ID:          "fallback-sumbar-rumah",
				Nama:        "Rumah Gadang",
				Jenis:       models.JenisRumahAdat,
				Images:      []string{"/rumah/rumah5.jpeg"},
				Description: "Rumah adat beratap gonjong yang melambangkan tanduk kerbau.",
			},
			{
				ID:          "fallback-sumbar-makanan",
				Nama:        "Rendang",
				Jenis:       models.JenisMakananKhas,
				Images:      []string{"/makanan/makanan5.jpg"},
				Description: "Olahan daging bercita rasa kaya rempah yang dimasak hingga kering.",
			},
		},
	},
	{
		ID:          "fallback-jogja",
		Nama:        "DI Yogyakarta",
		Description: "Kota budaya dengan warisan keraton, candi, dan karya seni kontemporer.",
		Latitude:    float(-7.7956),
		Longitude:   float(110.3695),
		Icon:        str("/icon/bali.png"),
		Images:      []string{"/kesenian/kesenian7.webp", "/rumah/rumah3.jpg"},
		Kebudayaans: []models.Kebudayaan{
			{
				ID:          "fallback-jogja-kesenian",
				Nama:        "Tari Bedhaya",
				Jenis:       models.JenisKesenianDaerah,
				Images:      []string{"/kesenian/kesenian7.webp"},
				Description: "Tari sakral keraton yang menggambarkan harmoni antara manusia dan alam.",
			},
			{
				ID:          "fallback-jogja-makanan",
				Nama:        "Gudeg",
				Jenis:       models.JenisMakananKhas,
				Images:      []string{"/makanan/makanan3.jpg"},
				Description: "Masakan nangka muda bercita rasa manis yang disajikan dengan sambal krecek.",
			},
			{
				ID:          "fallback-jogja-rumah",
				Nama:        "Rumah Joglo",
				Jenis:       models.JenisRumahAdat,
				Images:      []string{"/rumah/rumah3.jpg"},
				Description: "Rumah tradisional dengan atap bergelombang melambangkan strata sosial.",
			},
		},
	},
}

// FallbackStorage serves the static fallback dataset. Every call returns
// copies, so callers may decorate results freely.
type FallbackStorage struct{}

// NewFallbackStorage returns the static dataset store.
func NewFallbackStorage() *FallbackStorage {
	return &FallbackStorage{}
}

// SearchDaerah applies the same substring rule as the live store.
func (fs *FallbackStorage) SearchDaerah(keyword string) []models.Daerah {
	matches := []models.Daerah{}
	if keyword == "" {
		return matches
	}
	for i := range fallbackDaerah {
		if fallbackDaerah[i].Matches(keyword) {
			matches = append(matches, copyDaerah(fallbackDaerah[i]))
		}
	}
	return matches
}

// ListDaerah returns the fallback regions eligible for map placement.
func (fs *FallbackStorage) ListDaerah() []models.Daerah {
	out := []models.Daerah{}
	for i := range fallbackDaerah {
		if fallbackDaerah[i].HasCoordinates() {
			out = append(out, copyDaerah(fallbackDaerah[i]))
		}
	}
	return out
}

// GetDaerah looks a fallback region up by id.
func (fs *FallbackStorage) GetDaerah(id string) (*models.Daerah, error) {
	for i := range fallbackDaerah {
		if fallbackDaerah[i].ID == id {
			d := copyDaerah(fallbackDaerah[i])
			return &d, nil
		}
	}
	return nil, ErrDaerahNotFound
}

func copyDaerah(d models.Daerah) models.Daerah {
	out := d
	out.Images = append([]string(nil), d.Images...)
	out.Kebudayaans = make([]models.Kebudayaan, len(d.Kebudayaans))
	for i, k := range d.Kebudayaans {
		k.Images = append([]string(nil), k.Images...)
		k.DaerahID = d.ID
		out.Kebudayaans[i] = k
	}
	return out
}

func float(v float64) *float64 { return &v }

func str(v string) *string { return &v }
