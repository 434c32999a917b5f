package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"CONFIG_FILE", "DATABASE_URL", "APP_PORT", "AI_PROVIDER", "GEMINI_API_KEY",
		"AI_MODEL", "OPENAI_BASE_URL", "OPENAI_API_KEY", "LOG_LEVEL", "MAX_UPLOAD_MB",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.AppPort)
	assert.Equal(t, "googleai", cfg.AIProvider)
	assert.Equal(t, "gemini-2.0-flash", cfg.AIModel)
	assert.Equal(t, 10, cfg.MaxUploadMB)
	assert.Equal(t, StoreUnavailable, cfg.StoreState())
}

func TestLoadFileThenEnv(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
database_url = "postgresql://file/db"
app_port = "9000"
ai_model = "from-file"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	t.Setenv("CONFIG_FILE", path)
	t.Setenv("AI_MODEL", "from-env")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "postgresql://file/db", cfg.DatabaseURL)
	assert.Equal(t, "9000", cfg.AppPort)
	assert.Equal(t, "from-env", cfg.AIModel)
	assert.Equal(t, StoreOK, cfg.StoreState())
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("CONFIG_FILE", filepath.Join(t.TempDir(), "absent.toml"))

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.AppPort)
}

func TestLoadInvalidUploadLimit(t *testing.T) {
	clearEnv(t)
	t.Setenv("MAX_UPLOAD_MB", "lots")

	_, err := Load()
	assert.Error(t, err)

	t.Setenv("MAX_UPLOAD_MB", "0")
	_, err = Load()
	assert.Error(t, err)
}

func TestLoadFileRejectsNonPositiveUploadLimit(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("max_upload_mb = -1\n"), 0o644))
	t.Setenv("CONFIG_FILE", path)

	_, err := Load()
	assert.Error(t, err)

	t.Setenv("MAX_UPLOAD_MB", "4")
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 4, cfg.MaxUploadMB)
}

func TestStoreState(t *testing.T) {
	cases := map[string]StoreState{
		"":                              StoreUnavailable,
		"mysql://localhost/db":          StoreUnavailable,
		"file:./dev.db":                 StoreUnavailable,
		"postgres://u:p@localhost/db":   StoreOK,
		"postgresql://u:p@localhost/db": StoreOK,
	}
	for url, want := range cases {
		cfg := &Config{DatabaseURL: url}
		assert.Equal(t, want, cfg.StoreState(), "url %q", url)
	}
}

func TestSlogLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, (&Config{LogLevel: "DEBUG"}).SlogLevel())
	assert.Equal(t, slog.LevelWarn, (&Config{LogLevel: "warning"}).SlogLevel())
	assert.Equal(t, slog.LevelInfo, (&Config{LogLevel: "bogus"}).SlogLevel())
	assert.Equal(t, int64(2<<20), (&Config{MaxUploadMB: 2}).MaxUploadBytes())
}
