package storage

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/akozadaev/budaya_nusantara/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	daerahCols     = []string{"id", "nama", "description", "latitude", "longitude", "icon", "backgroundImg", "images", "createdAt"}
	kebudayaanCols = []string{"id", "nama", "jenis", "images", "description", "virtualTour", "daerahId"}
)

func newMockStorage(t *testing.T) (*PostgresStorage, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewPostgresStorageWithDB(db), mock
}

func sumbarRow(rows *sqlmock.Rows) *sqlmock.Rows {
	return rows.AddRow("d-sumbar", "Sumatera Barat", "Tanah Minangkabau", -0.9493, 100.3543, "/icon/sumbar.png", nil, "{/a.jpg,/b.jpg}", time.Now())
}

func TestSearchDaerah(t *testing.T) {
	store, mock := newMockStorage(t)

	mock.ExpectQuery(regexp.QuoteMeta(`WHERE d.nama ILIKE $1 OR d.description ILIKE $1`)).
		WithArgs("%rendang%").
		WillReturnRows(sumbarRow(sqlmock.NewRows(daerahCols)))
	mock.ExpectQuery(regexp.QuoteMeta(`FROM "Kebudayaan" k WHERE k."daerahId" = ANY($1)`)).
		WithArgs(sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows(kebudayaanCols).
			AddRow("k-rendang", "Rendang", "MAKANAN_KHAS", "{/r.jpg}", "Olahan daging", nil, "d-sumbar").
			AddRow("k-orphan", "Lain", "SUKU_ADAT", "{}", "x", nil, "d-other"))

	got, err := store.SearchDaerah(context.Background(), "rendang")
	require.NoError(t, err)
	require.Len(t, got, 1)

	d := got[0]
	assert.Equal(t, "d-sumbar", d.ID)
	require.NotNil(t, d.Latitude)
	assert.InDelta(t, -0.9493, *d.Latitude, 1e-9)
	assert.Equal(t, "/icon/sumbar.png", *d.Icon)
	assert.Nil(t, d.BackgroundImg)
	assert.Equal(t, []string{"/a.jpg", "/b.jpg"}, d.Images)

	require.Len(t, d.Kebudayaans, 1)
	assert.Equal(t, models.JenisMakananKhas, d.Kebudayaans[0].Jenis)
	assert.Equal(t, []string{"/r.jpg"}, d.Kebudayaans[0].Images)
	assert.Empty(t, d.Kebudayaans[0].Description, "response rows carry no artifact description")

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSearchDaerahNoRowsSkipsArtifactQuery(t *testing.T) {
	store, mock := newMockStorage(t)

	mock.ExpectQuery(regexp.QuoteMeta(`WHERE d.nama ILIKE $1`)).
		WithArgs("%zzz%").
		WillReturnRows(sqlmock.NewRows(daerahCols))

	got, err := store.SearchDaerah(context.Background(), "zzz")
	require.NoError(t, err)
	assert.Empty(t, got)
	assert.NotNil(t, got)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSearchDaerahQueryError(t *testing.T) {
	store, mock := newMockStorage(t)

	mock.ExpectQuery(regexp.QuoteMeta(`WHERE d.nama ILIKE $1`)).
		WillReturnError(errors.New("connection refused"))

	_, err := store.SearchDaerah(context.Background(), "bali")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection refused")
}

func TestLikePatternEscapesWildcards(t *testing.T) {
	assert.Equal(t, "%bali%", likePattern("bali"))
	assert.Equal(t, `%100\%%`, likePattern("100%"))
	assert.Equal(t, `%a\_b%`, likePattern("a_b"))
	assert.Equal(t, `%c:\\d%`, likePattern(`c:\d`))
}

func TestAllDaerahWithKebudayaanKeepsDescriptions(t *testing.T) {
	store, mock := newMockStorage(t)

	mock.ExpectQuery(regexp.QuoteMeta(`FROM "Daerah" d ORDER BY d."createdAt", d.id`)).
		WillReturnRows(sumbarRow(sqlmock.NewRows(daerahCols)))
	mock.ExpectQuery(regexp.QuoteMeta(`FROM "Kebudayaan" k`)).
		WithArgs(sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows(kebudayaanCols).
			AddRow("k-gadang", "Rumah Gadang", "RUMAH_ADAT", "{}", "Atap gonjong", "https://tour.example/gadang", "d-sumbar"))

	got, err := store.AllDaerahWithKebudayaan(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Len(t, got[0].Kebudayaans, 1)
	assert.Equal(t, "Atap gonjong", got[0].Kebudayaans[0].Description)
	require.NotNil(t, got[0].Kebudayaans[0].VirtualTour)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetDaerahByIDsEmpty(t *testing.T) {
	store, mock := newMockStorage(t)

	got, err := store.GetDaerahByIDs(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, got)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetDaerahByIDs(t *testing.T) {
	store, mock := newMockStorage(t)

	mock.ExpectQuery(regexp.QuoteMeta(`WHERE d.id = ANY($1)`)).
		WithArgs(sqlmock.AnyArg()).
		WillReturnRows(sumbarRow(sqlmock.NewRows(daerahCols)))
	mock.ExpectQuery(regexp.QuoteMeta(`FROM "Kebudayaan" k`)).
		WithArgs(sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows(kebudayaanCols))

	got, err := store.GetDaerahByIDs(context.Background(), []string{"d-sumbar", "hallucinated"})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "d-sumbar", got[0].ID)
	assert.NotNil(t, got[0].Kebudayaans)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetDaerahNotFound(t *testing.T) {
	store, mock := newMockStorage(t)

	mock.ExpectQuery(regexp.QuoteMeta(`WHERE d.id = $1`)).
		WithArgs("missing").
		WillReturnRows(sqlmock.NewRows(daerahCols))

	_, err := store.GetDaerah(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrDaerahNotFound)
}

func TestListDaerahDropsHalfCoordinates(t *testing.T) {
	store, mock := newMockStorage(t)

	mock.ExpectQuery(regexp.QuoteMeta(`WHERE d.latitude IS NOT NULL AND d.longitude IS NOT NULL`)).
		WillReturnRows(sqlmock.NewRows(daerahCols).
			AddRow("d1", "Bali", "Pulau Dewata", -8.67, 115.21, nil, nil, "{}", time.Now()))
	mock.ExpectQuery(regexp.QuoteMeta(`FROM "Kebudayaan" k`)).
		WithArgs(sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows(kebudayaanCols))

	got, err := store.ListDaerah(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.True(t, got[0].HasCoordinates())
	assert.Equal(t, []string{}, got[0].Images)
}

func TestCounts(t *testing.T) {
	store, mock := newMockStorage(t)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT COUNT(*) FROM "Daerah"`)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(38))
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT COUNT(*) FROM "Kebudayaan"`)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(152))

	n, err := store.CountDaerah(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 38, n)

	n, err = store.CountKebudayaan(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 152, n)
}
