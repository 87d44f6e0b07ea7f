package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemStoreGetPut(t *testing.T) {
	s := NewMemStore()
	ctx := context.Background()

	_, err := s.Get(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, s.Put(ctx, "k", []byte("v1")))
	got, err := s.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("v1"), got)

	// overwrite wins, no append semantics
	require.NoError(t, s.Put(ctx, "k", []byte("v2")))
	got, err = s.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("v2"), got)
	assert.Equal(t, 1, s.Len())
}

func TestMemStoreCopiesValues(t *testing.T) {
	s := NewMemStore()
	ctx := context.Background()

	in := []byte("payload")
	require.NoError(t, s.Put(ctx, "k", in))
	in[0] = 'X'

	got, err := s.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("payload"), got)

	got[0] = 'Y'
	again, err := s.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("payload"), again)
}
