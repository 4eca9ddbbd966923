package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/alexanderramin/hubkit/internal/storage"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var envNames = []string{
	"HUBKIT_CONFIG", "HUBKIT_BACKEND", "HUBKIT_DB", "HUBKIT_FILE",
	"HUBKIT_REDIS_ADDR", "HUBKIT_REDIS_PASSWORD", "HUBKIT_REDIS_DB",
	"HUBKIT_AUTH_DELAY_MS", "HUBKIT_CHECKOUT_DELAY_MS", "HUBKIT_NOTIFICATION_TTL_MS",
	"HUBKIT_LOG_LEVEL", "HUBKIT_LOG_FILE", "HUBKIT_METRICS_FILE",
}

// isolate points HOME at a temp dir and blanks every HUBKIT_* variable.
func isolate(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	for _, name := range envNames {
		t.Setenv(name, "")
	}
	return home
}

func writeFile(t *testing.T, path, body string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
}

func TestLoad_Defaults(t *testing.T) {
	home := isolate(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, storage.BackendSQLite, cfg.Backend)
	assert.Equal(t, filepath.Join(home, ".hubkit", "hubkit.db"), cfg.DBPath)
	assert.Equal(t, time.Second, cfg.AuthDelay())
	assert.Equal(t, 3*time.Second, cfg.CheckoutDelay())
	assert.Equal(t, 5*time.Second, cfg.NotificationTTL())
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.NoError(t, cfg.Validate())
}

func TestLoad_DefaultFileIsMerged(t *testing.T) {
	home := isolate(t)
	writeFile(t, filepath.Join(home, ".hubkit", "config.yaml"), `
backend: redis
redis:
  addr: cache:6380
  db: 2
checkout_delay_ms: 0
log_level: debug
`)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, storage.BackendRedis, cfg.Backend)
	assert.Equal(t, "cache:6380", cfg.Redis.Addr)
	assert.Equal(t, 2, cfg.Redis.DB)
	assert.Zero(t, cfg.CheckoutDelay())
	assert.Equal(t, time.Second, cfg.AuthDelay(), "unset keys keep defaults")
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	home := isolate(t)
	path := filepath.Join(home, "custom.yaml")
	writeFile(t, path, "backend: file\nfile: /tmp/from-file.json\nauth_delay_ms: 50\n")
	t.Setenv("HUBKIT_CONFIG", path)
	t.Setenv("HUBKIT_FILE", "/tmp/from-env.json")
	t.Setenv("HUBKIT_AUTH_DELAY_MS", "5")
	t.Setenv("HUBKIT_METRICS_FILE", "/tmp/hubkit.prom")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, storage.BackendFile, cfg.Backend)
	assert.Equal(t, "/tmp/from-env.json", cfg.File)
	assert.Equal(t, 5*time.Millisecond, cfg.AuthDelay())
	assert.Equal(t, "/tmp/hubkit.prom", cfg.MetricsFile)
}

func TestLoad_InvalidNumericEnvIgnored(t *testing.T) {
	isolate(t)
	t.Setenv("HUBKIT_CHECKOUT_DELAY_MS", "soon")
	t.Setenv("HUBKIT_NOTIFICATION_TTL_MS", "-1")
	t.Setenv("HUBKIT_REDIS_DB", "x")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 3*time.Second, cfg.CheckoutDelay())
	assert.Equal(t, 5*time.Second, cfg.NotificationTTL())
	assert.Zero(t, cfg.Redis.DB)
}

func TestLoad_ExplicitConfigMustExist(t *testing.T) {
	home := isolate(t)
	t.Setenv("HUBKIT_CONFIG", filepath.Join(home, "missing.yaml"))

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing.yaml")
}

func TestLoad_MalformedFile(t *testing.T) {
	home := isolate(t)
	writeFile(t, filepath.Join(home, ".hubkit", "config.yaml"), "backend: [unterminated\n")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing config")
}

func TestBindFlags(t *testing.T) {
	isolate(t)
	t.Setenv("HUBKIT_BACKEND", "file")
	cfg, err := Load()
	require.NoError(t, err)

	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	cfg.BindFlags(fs)
	require.NoError(t, fs.Parse([]string{"--db", "/tmp/flag.db"}))

	assert.Equal(t, storage.BackendFile, cfg.Backend, "unset flag keeps env value")
	assert.Equal(t, "/tmp/flag.db", cfg.DBPath)
	assert.Equal(t, storage.BackendFile, cfg.Storage().Backend)

	require.NoError(t, fs.Parse([]string{"--ephemeral"}))
	assert.Equal(t, storage.BackendMemory, cfg.Storage().Backend)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"unknown backend", func(c *Config) { c.Backend = "mongo" }, "unknown backend"},
		{"negative delay", func(c *Config) { c.AuthDelayMs = -1 }, "negative"},
		{"bad log level", func(c *Config) { c.LogLevel = "loud" }, "log level"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestStorageOptions(t *testing.T) {
	cfg := Default()
	cfg.Backend = storage.BackendRedis
	cfg.Redis = RedisConfig{Addr: "r:1", Password: "pw", DB: 3}

	opts := cfg.Storage()
	assert.Equal(t, storage.BackendRedis, opts.Backend)
	assert.Equal(t, storage.RedisOptions{Addr: "r:1", Password: "pw", DB: 3}, opts.Redis)
	assert.Equal(t, cfg.DBPath, opts.SQLitePath)
	assert.Equal(t, cfg.File, opts.FilePath)
}
