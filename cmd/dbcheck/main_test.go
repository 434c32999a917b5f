package main

import (
	"bytes"
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/akozadaev/budaya_nusantara/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReport(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectPing()
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT COUNT(*) FROM "Daerah"`)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(38))
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT COUNT(*) FROM "Kebudayaan"`)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(152))

	var out bytes.Buffer
	require.NoError(t, report(context.Background(), &out, storage.NewPostgresStorageWithDB(db)))
	assert.Contains(t, out.String(), "Found 38 daerah and 152 kebudayaan records.")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReportPingFailure(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectPing().WillReturnError(errors.New("connection refused"))

	var out bytes.Buffer
	err = report(context.Background(), &out, storage.NewPostgresStorageWithDB(db))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection refused")
}

func TestRootCmdRejectsNonPostgresURL(t *testing.T) {
	t.Setenv("CONFIG_FILE", "")
	t.Setenv("DATABASE_URL", "")

	cmd := newRootCmd()
	cmd.SetArgs([]string{"--database-url", "mysql://localhost/db"})
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "STORE_UNAVAILABLE")
}
