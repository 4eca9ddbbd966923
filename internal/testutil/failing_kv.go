package testutil

import (
	"context"
	"sync/atomic"

	"github.com/alexanderramin/hubkit/internal/storage"
)

// FailOnNthWriteKV wraps a KV and injects Err on the Nth write (Set, SetMulti
// or Delete). Writes are counted starting at 1; FailOn 0 never fails. Reads
// pass through untouched.
type FailOnNthWriteKV struct {
	storage.KV
	FailOn int32
	Err    error
	count  atomic.Int32
}

// FailAlways makes every subsequent write fail with err.
func (f *FailOnNthWriteKV) FailAlways(err error) {
	f.Err = err
	f.FailOn = -1
}

// Writes returns how many writes have been attempted.
func (f *FailOnNthWriteKV) Writes() int {
	return int(f.count.Load())
}

func (f *FailOnNthWriteKV) fail() bool {
	n := f.count.Add(1)
	return f.FailOn < 0 || (f.FailOn > 0 && n == f.FailOn)
}

func (f *FailOnNthWriteKV) Set(ctx context.Context, key string, value []byte) error {
	if f.fail() {
		return f.Err
	}
	return f.KV.Set(ctx, key, value)
}

func (f *FailOnNthWriteKV) SetMulti(ctx context.Context, entries map[string][]byte) error {
	if f.fail() {
		return f.Err
	}
	return f.KV.SetMulti(ctx, entries)
}

func (f *FailOnNthWriteKV) Delete(ctx context.Context, key string) error {
	if f.fail() {
		return f.Err
	}
	return f.KV.Delete(ctx, key)
}
