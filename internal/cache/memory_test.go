package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryBackend_SetGet(t *testing.T) {
	ctx := context.Background()
	m := NewMemoryBackend(time.Hour)

	require.NoError(t, m.Set(ctx, "k", []byte("v"), 0))

	got, ok, err := m.Get(ctx, "k")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, []byte("v"), got)
}

func TestMemoryBackend_MissingKey(t *testing.T) {
	m := NewMemoryBackend(time.Hour)

	_, ok, err := m.Get(context.Background(), "absent")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestMemoryBackend_Expiry(t *testing.T) {
	ctx := context.Background()
	m := NewMemoryBackend(time.Hour)

	require.NoError(t, m.Set(ctx, "k", []byte("v"), time.Nanosecond))
	time.Sleep(5 * time.Millisecond)

	_, ok, err := m.Get(ctx, "k")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestMemoryBackend_DeleteAndClear(t *testing.T) {
	ctx := context.Background()
	m := NewMemoryBackend(time.Hour)

	require.NoError(t, m.Set(ctx, "a", []byte("1"), 0))
	require.NoError(t, m.Set(ctx, "b", []byte("2"), 0))

	require.NoError(t, m.Delete(ctx, "a"))
	_, ok, _ := m.Get(ctx, "a")
	assert.False(t, ok)

	require.NoError(t, m.Clear(ctx))
	_, ok, _ = m.Get(ctx, "b")
	assert.False(t, ok)
}

func TestMemoryBackend_Overwrite(t *testing.T) {
	ctx := context.Background()
	m := NewMemoryBackend(time.Hour)

	require.NoError(t, m.Set(ctx, "k", []byte("old"), 0))
	require.NoError(t, m.Set(ctx, "k", []byte("new"), 0))

	got, ok, err := m.Get(ctx, "k")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, []byte("new"), got)
}
