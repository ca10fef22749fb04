package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, "catalog-service", cfg.ServiceName)
	assert.Equal(t, 8000, cfg.Port)
	assert.Equal(t, ":8000", cfg.Addr())
	assert.Equal(t, 10, cfg.Database.MaxSessions)
	assert.True(t, cfg.Database.AutoMigrate)
	assert.Equal(t, []string{"*"}, cfg.CORS.Origins)
	assert.Equal(t, bcrypt.DefaultCost, cfg.BcryptCost)
	assert.NoError(t, cfg.Validate())
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("CATALOG_PORT", "9090")
	t.Setenv("DATABASE_URL", "sqlite://:memory:")
	t.Setenv("CATALOG_DB_MAX_SESSIONS", "4")
	t.Setenv("CATALOG_DB_ACQUIRE_TIMEOUT", "750ms")
	t.Setenv("CATALOG_AUTO_MIGRATE", "false")
	t.Setenv("CATALOG_CORS_ORIGINS", "http://a.test, http://b.test,")
	t.Setenv("CATALOG_LOG_FORMAT", "text")
	t.Setenv("CATALOG_BCRYPT_COST", "4")

	cfg := DefaultConfig()
	require.NoError(t, cfg.LoadFromEnv())

	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, "sqlite://:memory:", cfg.Database.URL)
	assert.Equal(t, 4, cfg.Database.MaxSessions)
	assert.Equal(t, 750*time.Millisecond, cfg.Database.AcquireTimeout)
	assert.False(t, cfg.Database.AutoMigrate)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.CORS.Origins)
	assert.Equal(t, "text", cfg.Log.Format)
	assert.Equal(t, 4, cfg.BcryptCost)
}

func TestLoadFromEnvRejectsBadNumbers(t *testing.T) {
	t.Setenv("CATALOG_PORT", "eighty")
	assert.Error(t, DefaultConfig().LoadFromEnv())
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	yaml := `
service_name: catalog-test
port: 8081
database:
  url: sqlite://catalog.db
  max_sessions: 2
log:
  level: debug
`
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0o600))

	cfg := DefaultConfig()
	require.NoError(t, cfg.LoadFromFile(path))

	assert.Equal(t, "catalog-test", cfg.ServiceName)
	assert.Equal(t, 8081, cfg.Port)
	assert.Equal(t, "sqlite://catalog.db", cfg.Database.URL)
	assert.Equal(t, 2, cfg.Database.MaxSessions)
	assert.Equal(t, "debug", cfg.Log.Level)
	// untouched keys keep their defaults
	assert.Equal(t, "json", cfg.Log.Format)
	assert.True(t, cfg.Database.AutoMigrate)
}

func TestLoadEnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	require.NoError(t, os.WriteFile(path, []byte("port: 8081\n"), 0o600))

	t.Setenv("CATALOG_CONFIG_FILE", path)
	t.Setenv("CATALOG_PORT", "8082")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 8082, cfg.Port)
}

func TestLoadMissingFile(t *testing.T) {
	t.Setenv("CATALOG_CONFIG_FILE", filepath.Join(t.TempDir(), "missing.yaml"))
	_, err := Load()
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Port = 0
	cfg.Database.URL = ""
	cfg.Database.MaxSessions = 0
	cfg.BcryptCost = 1
	cfg.Log.Format = "xml"
	cfg.CORS.Origins = nil

	err := cfg.Validate()
	require.Error(t, err)
	for _, want := range []string{"port", "database url", "max_sessions", "bcrypt_cost", "log format", "cors origins"} {
		assert.Contains(t, err.Error(), want)
	}
}

func TestValidateEmptyCORSOrigins(t *testing.T) {
	cfg := DefaultConfig()
	cfg.CORS.Origins = []string{}
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cors origins")
}

func TestLoadRejectsBlankCORSOrigins(t *testing.T) {
	t.Setenv("CATALOG_CORS_ORIGINS", " , ")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cors origins")
}

func TestLoadRejectsEmptyCORSOriginsInFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	require.NoError(t, os.WriteFile(path, []byte("cors:\n  origins: []\n"), 0o600))
	t.Setenv("CATALOG_CONFIG_FILE", path)

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cors origins")
}

func TestGetEnv(t *testing.T) {
	t.Setenv("CATALOG_TEST_KEY", "value")
	assert.Equal(t, "value", GetEnv("CATALOG_TEST_KEY", "fallback"))
	assert.Equal(t, "fallback", GetEnv("CATALOG_TEST_KEY_UNSET", "fallback"))
}

func TestConfigureLogging(t *testing.T) {
	defer log.SetLevel(log.InfoLevel)
	defer log.SetFormatter(&log.JSONFormatter{})

	ConfigureLogging(LogConfig{Level: "debug", Format: "text"})
	assert.Equal(t, log.DebugLevel, log.GetLevel())
	assert.IsType(t, &log.TextFormatter{}, log.StandardLogger().Formatter)

	ConfigureLogging(LogConfig{Level: "loud", Format: "json"})
	assert.Equal(t, log.InfoLevel, log.GetLevel())
	assert.IsType(t, &log.JSONFormatter{}, log.StandardLogger().Formatter)
}
