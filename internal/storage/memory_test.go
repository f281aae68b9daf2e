package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryKVRoundTrip(t *testing.T) {
	kv := NewMemoryKV()
	ctx := context.Background()

	_, err := kv.Get(ctx, "cart:abc")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, kv.Set(ctx, "cart:abc", []byte(`{"items":[]}`)))

	value, err := kv.Get(ctx, "cart:abc")
	require.NoError(t, err)
	assert.Equal(t, []byte(`{"items":[]}`), value)

	require.NoError(t, kv.Delete(ctx, "cart:abc"))
	_, err = kv.Get(ctx, "cart:abc")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryKVCopiesValues(t *testing.T) {
	kv := NewMemoryKV()
	ctx := context.Background()

	original := []byte("light")
	require.NoError(t, kv.Set(ctx, "haluna-ui-theme:s1", original))
	original[0] = 'X'

	value, err := kv.Get(ctx, "haluna-ui-theme:s1")
	require.NoError(t, err)
	assert.Equal(t, []byte("light"), value)
}

func TestSessionKey(t *testing.T) {
	assert.Equal(t, "mainShopId:abc", SessionKey(KeyMainShop, "abc"))
	assert.Equal(t, "userLocation:abc", SessionKey(KeyUserLocation, "abc"))
}
