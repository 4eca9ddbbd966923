package testutil

import (
	"testing"

	"github.com/alexanderramin/hubkit/internal/db"
	"github.com/alexanderramin/hubkit/internal/storage"
	"github.com/stretchr/testify/require"
)

// NewTestKV returns a SQLite-backed KV over a private in-memory database,
// migrated and closed with the test.
func NewTestKV(t testing.TB) *storage.SQLiteKV {
	t.Helper()
	kv, err := storage.OpenSQLiteKV(db.MemoryPath)
	require.NoError(t, err, "opening in-memory kv")
	t.Cleanup(func() { _ = kv.Close() })
	return kv
}
