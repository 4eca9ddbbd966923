// Package logging builds the zap logger used by the binaries and adapts it
// to the store use-case observer.
package logging

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/alexanderramin/hubkit/internal/store"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Options selects the level and destination of the logger.
type Options struct {
	Level string
	// File receives JSON entries when set; otherwise console entries go to stderr.
	File string
}

// New builds a logger for opts. Callers should Sync it before exit.
func New(opts Options) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(opts.Level)
	if err != nil {
		return nil, fmt.Errorf("parsing log level: %w", err)
	}

	var cfg zap.Config
	if opts.File != "" {
		if err := os.MkdirAll(filepath.Dir(opts.File), 0o755); err != nil {
			return nil, fmt.Errorf("creating log directory: %w", err)
		}
		cfg = zap.NewProductionConfig()
		cfg.OutputPaths = []string{opts.File}
		cfg.ErrorOutputPaths = []string{opts.File}
	} else {
		cfg = zap.NewDevelopmentConfig()
		cfg.Development = false
		cfg.DisableStacktrace = true
		cfg.OutputPaths = []string{"stderr"}
		cfg.ErrorOutputPaths = []string{"stderr"}
	}
	cfg.Level = zap.NewAtomicLevelAt(level)
	cfg.EncoderConfig.TimeKey = "ts"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	logger, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("building logger: %w", err)
	}
	return logger, nil
}

// Observer logs every store use case as a "store_use_case" entry. Failures
// are logged at warn, successes at debug.
type Observer struct {
	log *zap.Logger
}

func NewObserver(log *zap.Logger) *Observer {
	if log == nil {
		log = zap.NewNop()
	}
	return &Observer{log: log}
}

func (o *Observer) ObserveUseCase(_ context.Context, e store.UseCaseEvent) {
	fields := make([]zap.Field, 0, len(e.Fields)+4)
	fields = append(fields,
		zap.String("use_case", e.Name),
		zap.Int64("duration_ms", e.Duration.Milliseconds()),
		zap.Bool("success", e.Success),
	)
	for k, v := range e.Fields {
		fields = append(fields, zap.Any(k, v))
	}
	if e.Err != nil {
		fields = append(fields, zap.Error(e.Err))
		o.log.Warn("store_use_case", fields...)
		return
	}
	o.log.Debug("store_use_case", fields...)
}
