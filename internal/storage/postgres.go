package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/akozadaev/budaya_nusantara/internal/models"
	"github.com/lib/pq"
)

// ErrDaerahNotFound is returned when a region lookup by id finds nothing.
var ErrDaerahNotFound = errors.New("daerah not found")

const daerahColumns = `d.id, d.nama, d.description, d.latitude, d.longitude, d.icon, d."backgroundImg", d.images, d."createdAt"`

const kebudayaanColumns = `k.id, k.nama, k.jenis::text, k.images, k.description, k."virtualTour", k."daerahId"`

// PostgresStorage reads regions and their cultural artifacts from PostgreSQL.
// Tables are "Daerah" and "Kebudayaan" with camelCase column names.
type PostgresStorage struct {
	db *sql.DB // Connection pool
}

// NewPostgresStorage opens a connection pool for the given URL.
// The connection is not verified here; call Ping for that.
func NewPostgresStorage(dsn string) (*PostgresStorage, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	return &PostgresStorage{db: db}, nil
}

// NewPostgresStorageWithDB wraps an existing pool.
func NewPostgresStorageWithDB(db *sql.DB) *PostgresStorage {
	return &PostgresStorage{db: db}
}

// Ping verifies the database is reachable.
func (ps *PostgresStorage) Ping(ctx context.Context) error {
	if err := ps.db.PingContext(ctx); err != nil {
		return fmt.Errorf("failed to ping database: %w", err)
	}
	return nil
}

// Close closes the connection pool.
func (ps *PostgresStorage) Close() error {
	return ps.db.Close()
}

// SearchDaerah returns regions in insertion order whose name or description, or
// any owned artifact's name or description, contains q case-insensitively.
func (ps *PostgresStorage) SearchDaerah(ctx context.Context, q string) ([]models.Daerah, error) {
	query := `SELECT ` + daerahColumns + ` FROM "Daerah" d
		WHERE d.nama ILIKE $1 OR d.description ILIKE $1
			OR EXISTS (SELECT 1 FROM "Kebudayaan" k WHERE k."daerahId" = d.id AND (k.nama ILIKE $1 OR k.description ILIKE $1))
		ORDER BY d."createdAt", d.id`

	daerahs, err := ps.queryDaerah(ctx, query, likePattern(q))
	if err != nil {
		return nil, fmt.Errorf("failed to search daerah: %w", err)
	}
	if err := ps.attachKebudayaan(ctx, daerahs, false); err != nil {
		return nil, err
	}
	return daerahs, nil
}

// ListDaerah returns the regions that carry both coordinates.
func (ps *PostgresStorage) ListDaerah(ctx context.Context) ([]models.Daerah, error) {
	query := `SELECT ` + daerahColumns + ` FROM "Daerah" d
		WHERE d.latitude IS NOT NULL AND d.longitude IS NOT NULL
		ORDER BY d."createdAt", d.id`

	daerahs, err := ps.queryDaerah(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list daerah: %w", err)
	}
	if err := ps.attachKebudayaan(ctx, daerahs, false); err != nil {
		return nil, err
	}
	return daerahs, nil
}

// AllDaerahWithKebudayaan returns the full corpus, artifact descriptions included.
func (ps *PostgresStorage) AllDaerahWithKebudayaan(ctx context.Context) ([]models.Daerah, error) {
	query := `SELECT ` + daerahColumns + ` FROM "Daerah" d ORDER BY d."createdAt", d.id`

	daerahs, err := ps.queryDaerah(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to load daerah corpus: %w", err)
	}
	if err := ps.attachKebudayaan(ctx, daerahs, true); err != nil {
		return nil, err
	}
	return daerahs, nil
}

// GetDaerahByIDs fetches the regions with the given ids in one query.
// Unknown ids are absent from the result.
func (ps *PostgresStorage) GetDaerahByIDs(ctx context.Context, ids []string) ([]models.Daerah, error) {
	if len(ids) == 0 {
		return []models.Daerah{}, nil
	}

	query := `SELECT ` + daerahColumns + ` FROM "Daerah" d WHERE d.id = ANY($1) ORDER BY d."createdAt", d.id`

	daerahs, err := ps.queryDaerah(ctx, query, pq.Array(ids))
	if err != nil {
		return nil, fmt.Errorf("failed to get daerah by ids: %w", err)
	}
	if err := ps.attachKebudayaan(ctx, daerahs, false); err != nil {
		return nil, err
	}
	return daerahs, nil
}

// GetDaerah fetches one region with full artifact detail.
// Returns ErrDaerahNotFound when no region has the id.
func (ps *PostgresStorage) GetDaerah(ctx context.Context, id string) (*models.Daerah, error) {
	query := `SELECT ` + daerahColumns + ` FROM "Daerah" d WHERE d.id = $1`

	daerahs, err := ps.queryDaerah(ctx, query, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get daerah: %w", err)
	}
	if len(daerahs) == 0 {
		return nil, ErrDaerahNotFound
	}
	if err := ps.attachKebudayaan(ctx, daerahs, true); err != nil {
		return nil, err
	}
	return &daerahs[0], nil
}

// CountDaerah returns the number of regions.
func (ps *PostgresStorage) CountDaerah(ctx context.Context) (int, error) {
	var n int
	if err := ps.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM "Daerah"`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count daerah: %w", err)
	}
	return n, nil
}

// CountKebudayaan returns the number of cultural artifacts.
func (ps *PostgresStorage) CountKebudayaan(ctx context.Context) (int, error) {
	var n int
	if err := ps.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM "Kebudayaan"`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count kebudayaan: %w", err)
	}
	return n, nil
}

func (ps *PostgresStorage) queryDaerah(ctx context.Context, query string, args ...any) ([]models.Daerah, error) {
	rows, err := ps.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	daerahs := []models.Daerah{}
	for rows.Next() {
		var (
			d                     models.Daerah
			lat, lon              sql.NullFloat64
			icon, backgroundImage sql.NullString
		)
		if err := rows.Scan(
			&d.ID,
			&d.Nama,
			&d.Description,
			&lat,
			&lon,
			&icon,
			&backgroundImage,
			pq.Array(&d.Images),
			&d.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan daerah: %w", err)
		}
		// Coordinates are only meaningful as a pair.
		if lat.Valid && lon.Valid {
			d.Latitude = &lat.Float64
			d.Longitude = &lon.Float64
		}
		if icon.Valid {
			d.Icon = &icon.String
		}
		if backgroundImage.Valid {
			d.BackgroundImg = &backgroundImage.String
		}
		if d.Images == nil {
			d.Images = []string{}
		}
		d.Kebudayaans = []models.Kebudayaan{}
		daerahs = append(daerahs, d)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}
	return daerahs, nil
}

// attachKebudayaan loads artifacts for all given regions in one query.
// Without detail, description and virtual tour are left empty.
func (ps *PostgresStorage) attachKebudayaan(ctx context.Context, daerahs []models.Daerah, detail bool) error {
	if len(daerahs) == 0 {
		return nil
	}

	ids := make([]string, len(daerahs))
	index := make(map[string]int, len(daerahs))
	for i, d := range daerahs {
		ids[i] = d.ID
		index[d.ID] = i
	}

	query := `SELECT ` + kebudayaanColumns + ` FROM "Kebudayaan" k WHERE k."daerahId" = ANY($1) ORDER BY k."createdAt", k.id`

	rows, err := ps.db.QueryContext(ctx, query, pq.Array(ids))
	if err != nil {
		return fmt.Errorf("failed to query kebudayaan: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			k           models.Kebudayaan
			jenis       string
			virtualTour sql.NullString
		)
		if err := rows.Scan(
			&k.ID,
			&k.Nama,
			&jenis,
			pq.Array(&k.Images),
			&k.Description,
			&virtualTour,
			&k.DaerahID,
		); err != nil {
			return fmt.Errorf("failed to scan kebudayaan: %w", err)
		}
		k.Jenis = models.JenisKebudayaan(jenis)
		if k.Images == nil {
			k.Images = []string{}
		}
		if detail {
			if virtualTour.Valid {
				k.VirtualTour = &virtualTour.String
			}
		} else {
			k.Description = ""
		}

		i, ok := index[k.DaerahID]
		if !ok {
			continue
		}
		daerahs[i].Kebudayaans = append(daerahs[i].Kebudayaans, k)
	}

	if err := rows.Err(); err != nil {
		return fmt.Errorf("error iterating rows: %w", err)
	}
	return nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// likePattern turns q into an ILIKE pattern matching q as a literal substring.
func likePattern(q string) string {
	return "%" + likeEscaper.Replace(q) + "%"
}
