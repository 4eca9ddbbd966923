package storage

import (
	"context"
	"fmt"
)

const (
	BackendSQLite = "sqlite"
	BackendFile   = "file"
	BackendRedis  = "redis"
	BackendMemory = "memory"
)

// Backends lists the accepted Options.Backend values.
var Backends = []string{BackendSQLite, BackendFile, BackendRedis, BackendMemory}

// Options selects and configures a backend.
type Options struct {
	Backend    string
	SQLitePath string
	FilePath   string
	Redis      RedisOptions
}

// Open returns the backend described by opts.
func Open(ctx context.Context, opts Options) (KV, error) {
	switch opts.Backend {
	case BackendSQLite, "":
		return OpenSQLiteKV(opts.SQLitePath)
	case BackendFile:
		return NewFileKV(opts.FilePath)
	case BackendRedis:
		return NewRedisKV(ctx, opts.Redis)
	case BackendMemory:
		return NewMemoryKV(), nil
	default:
		return nil, fmt.Errorf("unknown storage backend %q", opts.Backend)
	}
}
