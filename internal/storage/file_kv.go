package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/gofrs/flock"
)

const (
	fileLockTimeout = 3 * time.Second
	fileLockRetry   = 100 * time.Millisecond
	fileFormat      = "1"
)

// FileKV stores every entry in a single JSON document. A sibling ".lock"
// file serialises access across processes; writes land in a temp file that
// is renamed over the document.
type FileKV struct {
	path string
	lock *flock.Flock
	mu   sync.Mutex
}

type fileDocument struct {
	Version   string            `json:"version"`
	UpdatedAt time.Time         `json:"updated_at"`
	Entries   map[string]string `json:"entries"`
}

// NewFileKV creates a FileKV for path, creating the parent directory.
func NewFileKV(path string) (*FileKV, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("creating store directory: %w", err)
	}
	return &FileKV{path: path, lock: flock.New(path + ".lock")}, nil
}

func (f *FileKV) Get(ctx context.Context, key string) ([]byte, error) {
	var out []byte
	err := f.withLock(ctx, func() error {
		doc, err := f.read()
		if err != nil {
			return err
		}
		v, ok := doc.Entries[key]
		if !ok {
			return ErrNotFound
		}
		out = []byte(v)
		return nil
	})
	return out, err
}

func (f *FileKV) Set(ctx context.Context, key string, value []byte) error {
	return f.SetMulti(ctx, map[string][]byte{key: value})
}

func (f *FileKV) SetMulti(ctx context.Context, entries map[string][]byte) error {
	return f.withLock(ctx, func() error {
		doc, err := f.read()
		if err != nil {
			return err
		}
		for k, v := range entries {
			doc.Entries[k] = string(v)
		}
		return f.write(doc)
	})
}

func (f *FileKV) Delete(ctx context.Context, key string) error {
	return f.withLock(ctx, func() error {
		doc, err := f.read()
		if err != nil {
			return err
		}
		if _, ok := doc.Entries[key]; !ok {
			return nil
		}
		delete(doc.Entries, key)
		return f.write(doc)
	})
}

func (f *FileKV) Close() error {
	return nil
}

func (f *FileKV) withLock(ctx context.Context, fn func() error) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	lockCtx, cancel := context.WithTimeout(ctx, fileLockTimeout)
	defer cancel()

	locked, err := f.lock.TryLockContext(lockCtx, fileLockRetry)
	if err != nil {
		return fmt.Errorf("acquiring lock on %s: %w", f.path, err)
	}
	if !locked {
		return fmt.Errorf("could not acquire lock on %s", f.path)
	}
	defer func() { _ = f.lock.Unlock() }()

	return fn()
}

// read loads the document; a missing or empty file is an empty document.
func (f *FileKV) read() (*fileDocument, error) {
	doc := &fileDocument{Version: fileFormat, Entries: map[string]string{}}

	data, err := os.ReadFile(f.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return doc, nil
		}
		return nil, fmt.Errorf("reading %s: %w", f.path, err)
	}
	if len(data) == 0 {
		return doc, nil
	}
	if err := json.Unmarshal(data, doc); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", f.path, err)
	}
	if doc.Entries == nil {
		doc.Entries = map[string]string{}
	}
	return doc, nil
}

func (f *FileKV) write(doc *fileDocument) error {
	doc.Version = fileFormat
	doc.UpdatedAt = time.Now().UTC()

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding store document: %w", err)
	}

	tmp := f.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("writing temp file: %w", err)
	}
	if err := os.Rename(tmp, f.path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("replacing %s: %w", f.path, err)
	}
	return nil
}
