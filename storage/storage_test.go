package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testStorage(t *testing.T, s Storage) {
	t.Helper()
	ctx := context.Background()

	_, err := s.Get(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, s.Put(ctx, "entries", []byte(`[1]`)))
	got, err := s.Get(ctx, "entries")
	require.NoError(t, err)
	assert.Equal(t, []byte(`[1]`), got)

	require.NoError(t, s.Put(ctx, "entries", []byte(`[1,2]`)))
	got, err = s.Get(ctx, "entries")
	require.NoError(t, err)
	assert.Equal(t, []byte(`[1,2]`), got)

	assert.NoError(t, s.Close())
}

func TestMemory(t *testing.T) {
	testStorage(t, NewMemory())
}

func TestMemoryCopiesValues(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	value := []byte("abc")
	require.NoError(t, m.Put(ctx, "k", value))
	value[0] = 'x'

	got, err := m.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("abc"), got)

	got[1] = 'y'
	again, _ := m.Get(ctx, "k")
	assert.Equal(t, []byte("abc"), again)
}

func TestFile(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "data")
	f, err := NewFile(dir)
	require.NoError(t, err)

	testStorage(t, f)

	assert.Equal(t, filepath.Join(dir, "entries.json"), f.Path("entries"))
	data, err := os.ReadFile(f.Path("entries"))
	require.NoError(t, err)
	assert.Equal(t, []byte(`[1,2]`), data)

	// no temp files left behind
	files, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, files, 1)
}

func TestFilePutFailure(t *testing.T) {
	dir := t.TempDir()
	f, err := NewFile(dir)
	require.NoError(t, err)

	require.NoError(t, os.RemoveAll(dir))
	assert.Error(t, f.Put(context.Background(), "entries", []byte(`[]`)))
}

func TestPostgres(t *testing.T) {
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("skipping postgres storage test: TEST_DATABASE_URL not set")
	}
	ctx := context.Background()

	p, err := NewPostgres(ctx, dsn)
	require.NoError(t, err)
	_, err = p.pool.Exec(ctx, `DELETE FROM kv_store WHERE key IN ('missing', 'entries')`)
	require.NoError(t, err)

	testStorage(t, p)
}
