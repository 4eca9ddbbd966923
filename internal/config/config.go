// Package config resolves runtime settings for the hubkit binaries. Values
// are layered: defaults, then an optional YAML file, then HUBKIT_*
// environment variables, then command-line flags.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"time"

	"github.com/alexanderramin/hubkit/internal/storage"
	"github.com/spf13/pflag"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"
)

// RedisConfig addresses the Redis backend.
type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

// Config holds all settings shared by shophub and projecthub.
type Config struct {
	Backend string      `yaml:"backend"`
	DBPath  string      `yaml:"db"`
	File    string      `yaml:"file"`
	Redis   RedisConfig `yaml:"redis"`

	AuthDelayMs       int `yaml:"auth_delay_ms"`
	CheckoutDelayMs   int `yaml:"checkout_delay_ms"`
	NotificationTTLMs int `yaml:"notification_ttl_ms"`

	LogLevel    string `yaml:"log_level"`
	LogFile     string `yaml:"log_file"`
	MetricsFile string `yaml:"metrics_file"`

	// Ephemeral keeps all state in memory for the life of the process.
	// Set only by the --ephemeral flag.
	Ephemeral bool `yaml:"-"`
}

// Default returns the built-in settings: SQLite under ~/.hubkit, the
// original simulated latencies, and warn-level logging.
func Default() Config {
	dir := homeDir()
	return Config{
		Backend:           storage.BackendSQLite,
		DBPath:            filepath.Join(dir, "hubkit.db"),
		File:              filepath.Join(dir, "hubkit.json"),
		Redis:             RedisConfig{Addr: "localhost:6379"},
		AuthDelayMs:       1000,
		CheckoutDelayMs:   3000,
		NotificationTTLMs: 5000,
		LogLevel:          "warn",
	}
}

// Load layers the config file and environment over Default. The file named
// by HUBKIT_CONFIG must exist; the default ~/.hubkit/config.yaml is optional.
func Load() (Config, error) {
	cfg := Default()

	path, required := os.Getenv("HUBKIT_CONFIG"), true
	if path == "" {
		path, required = filepath.Join(homeDir(), "config.yaml"), false
	}
	if err := cfg.mergeFile(path, required); err != nil {
		return Config{}, err
	}
	cfg.applyEnv()
	return cfg, nil
}

func (c *Config) mergeFile(path string, required bool) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) && !required {
			return nil
		}
		return fmt.Errorf("reading config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parsing config %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv("HUBKIT_BACKEND"); v != "" {
		c.Backend = v
	}
	if v := os.Getenv("HUBKIT_DB"); v != "" {
		c.DBPath = v
	}
	if v := os.Getenv("HUBKIT_FILE"); v != "" {
		c.File = v
	}
	if v := os.Getenv("HUBKIT_REDIS_ADDR"); v != "" {
		c.Redis.Addr = v
	}
	if v := os.Getenv("HUBKIT_REDIS_PASSWORD"); v != "" {
		c.Redis.Password = v
	}
	applyIntEnv(&c.Redis.DB, "HUBKIT_REDIS_DB")
	applyIntEnv(&c.AuthDelayMs, "HUBKIT_AUTH_DELAY_MS")
	applyIntEnv(&c.CheckoutDelayMs, "HUBKIT_CHECKOUT_DELAY_MS")
	applyIntEnv(&c.NotificationTTLMs, "HUBKIT_NOTIFICATION_TTL_MS")
	if v := os.Getenv("HUBKIT_LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}
	if v := os.Getenv("HUBKIT_LOG_FILE"); v != "" {
		c.LogFile = v
	}
	if v := os.Getenv("HUBKIT_METRICS_FILE"); v != "" {
		c.MetricsFile = v
	}
}

// applyIntEnv ignores unset, malformed and negative values.
func applyIntEnv(dst *int, name string) {
	v := os.Getenv(name)
	if v == "" {
		return
	}
	if n, err := strconv.Atoi(v); err == nil && n >= 0 {
		*dst = n
	}
}

// BindFlags registers the persistent storage flags on fs. Flag defaults are
// the values already in c, so an unset flag keeps the file and env layers.
func (c *Config) BindFlags(fs *pflag.FlagSet) {
	fs.StringVar(&c.Backend, "backend", c.Backend, "storage backend: sqlite, file, redis or memory")
	fs.StringVar(&c.DBPath, "db", c.DBPath, "SQLite database path")
	fs.BoolVar(&c.Ephemeral, "ephemeral", false, "keep state in memory only")
}

// Validate rejects settings the binaries cannot run with.
func (c Config) Validate() error {
	if !slices.Contains(storage.Backends, c.Backend) {
		return fmt.Errorf("unknown backend %q (want one of %v)", c.Backend, storage.Backends)
	}
	if c.AuthDelayMs < 0 || c.CheckoutDelayMs < 0 || c.NotificationTTLMs < 0 {
		return fmt.Errorf("delays must not be negative")
	}
	if _, err := zapcore.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("invalid log level %q", c.LogLevel)
	}
	return nil
}

// Storage translates the config into backend options.
func (c Config) Storage() storage.Options {
	backend := c.Backend
	if c.Ephemeral {
		backend = storage.BackendMemory
	}
	return storage.Options{
		Backend:    backend,
		SQLitePath: c.DBPath,
		FilePath:   c.File,
		Redis: storage.RedisOptions{
			Addr:     c.Redis.Addr,
			Password: c.Redis.Password,
			DB:       c.Redis.DB,
		},
	}
}

func (c Config) AuthDelay() time.Duration {
	return time.Duration(c.AuthDelayMs) * time.Millisecond
}

func (c Config) CheckoutDelay() time.Duration {
	return time.Duration(c.CheckoutDelayMs) * time.Millisecond
}

func (c Config) NotificationTTL() time.Duration {
	return time.Duration(c.NotificationTTLMs) * time.Millisecond
}

func homeDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".hubkit"
	}
	return filepath.Join(home, ".hubkit")
}
