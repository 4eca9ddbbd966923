// Package storage provides the durable key-value capability the stores
// persist into. Values are opaque byte slices; every write replaces the
// whole value for its key.
package storage

import (
	"context"
	"errors"
	"sort"
)

// ErrNotFound is returned by Get when the key has no value.
var ErrNotFound = errors.New("key not found")

// KV is a string-keyed save/load capability with no multi-writer guarantees.
type KV interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	// SetMulti writes every entry or none of them.
	SetMulti(ctx context.Context, entries map[string][]byte) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Compile-time verification that every backend satisfies KV.
var (
	_ KV = (*SQLiteKV)(nil)
	_ KV = (*FileKV)(nil)
	_ KV = (*RedisKV)(nil)
	_ KV = (*MemoryKV)(nil)
	_ KV = (*PrefixedKV)(nil)
)

// PrefixedKV namespaces every key of an underlying KV, so two applications
// can share one database.
type PrefixedKV struct {
	kv     KV
	prefix string
}

// Prefixed wraps kv so that key k is stored as prefix+k.
func Prefixed(kv KV, prefix string) *PrefixedKV {
	return &PrefixedKV{kv: kv, prefix: prefix}
}

func (p *PrefixedKV) Get(ctx context.Context, key string) ([]byte, error) {
	return p.kv.Get(ctx, p.prefix+key)
}

func (p *PrefixedKV) Set(ctx context.Context, key string, value []byte) error {
	return p.kv.Set(ctx, p.prefix+key, value)
}

func (p *PrefixedKV) SetMulti(ctx context.Context, entries map[string][]byte) error {
	prefixed := make(map[string][]byte, len(entries))
	for k, v := range entries {
		prefixed[p.prefix+k] = v
	}
	return p.kv.SetMulti(ctx, prefixed)
}

func (p *PrefixedKV) Delete(ctx context.Context, key string) error {
	return p.kv.Delete(ctx, p.prefix+key)
}

func (p *PrefixedKV) Close() error {
	return p.kv.Close()
}

// sortedKeys returns the keys of entries in lexical order so multi-key writes
// are issued deterministically.
func sortedKeys(entries map[string][]byte) []string {
	keys := make([]string, 0, len(entries))
	for k := range entries {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
