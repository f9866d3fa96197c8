package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	st, err := NewFileStore(t.TempDir())
	require.NoError(t, err)

	_, ok, err := st.Load(ctx)
	require.NoError(t, err)
	assert.False(t, ok, "fresh store should be empty")

	require.NoError(t, st.Save(ctx, []byte(`{"cash":25000}`)))
	raw, ok, err := st.Load(ctx)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.JSONEq(t, `{"cash":25000}`, string(raw))

	// Full overwrite, last write wins.
	require.NoError(t, st.Save(ctx, []byte(`{"cash":100}`)))
	raw, _, err = st.Load(ctx)
	require.NoError(t, err)
	assert.JSONEq(t, `{"cash":100}`, string(raw))

	require.NoError(t, st.Clear(ctx))
	_, ok, err = st.Load(ctx)
	require.NoError(t, err)
	assert.False(t, ok)

	// Clearing an already-empty store is fine.
	require.NoError(t, st.Clear(ctx))
}

func TestFileStoreCreatesDataDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "data")
	_, err := NewFileStore(dir)
	require.NoError(t, err)
	assert.DirExists(t, dir)
}

func TestMemStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	st := NewMemStore()

	_, ok, err := st.Load(ctx)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, st.Save(ctx, []byte("one")))
	require.NoError(t, st.Save(ctx, []byte("two")))
	raw, ok, err := st.Load(ctx)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "two", string(raw))
	assert.Equal(t, 2, st.SaveCount)

	require.NoError(t, st.Clear(ctx))
	_, ok, err = st.Load(ctx)
	require.NoError(t, err)
	assert.False(t, ok)
}
