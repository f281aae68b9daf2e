package session

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"halvi-backend/internal/normalize"
	"halvi-backend/internal/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubResolver struct {
	mu    sync.Mutex
	shops map[string]normalize.Shop
	calls int
}

func (r *stubResolver) GetShopByID(id string) (*normalize.Shop, error) {
	r.mu.Lock()
	r.calls++
	r.mu.Unlock()

	shop, ok := r.shops[id]
	if !ok {
		return nil, fmt.Errorf("shop not found")
	}
	return &shop, nil
}

func newSelection(shops ...string) (*ShopSelection, *stubResolver) {
	resolver := &stubResolver{shops: make(map[string]normalize.Shop)}
	for _, id := range shops {
		resolver.shops[id] = normalize.Shop{ID: id, Name: "Shop " + id}
	}
	return NewShopSelection(storage.NewMemoryKV(), resolver, quietLog()), resolver
}

func TestMainShopLifecycle(t *testing.T) {
	p, _ := newSelection("shop-1")
	ctx := context.Background()

	assert.Nil(t, p.MainShop(ctx, "s1"))

	shop, err := p.SetMainShop(ctx, "s1", "shop-1")
	require.NoError(t, err)
	assert.Equal(t, "shop-1", shop.ID)

	main := p.MainShop(ctx, "s1")
	require.NotNil(t, main)
	assert.Equal(t, "shop-1", main.ID)

	require.NoError(t, p.ClearMainShop(ctx, "s1"))
	assert.Nil(t, p.MainShop(ctx, "s1"))
}

func TestSetMainShopUnknownID(t *testing.T) {
	p, _ := newSelection()
	_, err := p.SetMainShop(context.Background(), "s1", "nope")
	assert.Error(t, err)
}

func TestMainShopDroppedWhenStoredIDNoLongerResolves(t *testing.T) {
	p, resolver := newSelection("shop-1")
	ctx := context.Background()

	_, err := p.SetMainShop(ctx, "s1", "shop-1")
	require.NoError(t, err)

	delete(resolver.shops, "shop-1")
	assert.Nil(t, p.MainShop(ctx, "s1"))
}

func TestSelectedShopsUnique(t *testing.T) {
	p, _ := newSelection("a", "b")
	ctx := context.Background()

	_, err := p.SelectShop(ctx, "s1", "a")
	require.NoError(t, err)
	_, err = p.SelectShop(ctx, "s1", "b")
	require.NoError(t, err)
	shops, err := p.SelectShop(ctx, "s1", "a")
	require.NoError(t, err)

	require.Len(t, shops, 2)
	assert.Equal(t, "a", shops[0].ID)
	assert.Equal(t, "b", shops[1].ID)
}

func TestSelectedShopsDropUnresolvableIDs(t *testing.T) {
	p, resolver := newSelection("a", "b", "c")
	ctx := context.Background()

	for _, id := range []string{"a", "b", "c"} {
		_, err := p.SelectShop(ctx, "s1", id)
		require.NoError(t, err)
	}

	delete(resolver.shops, "b")

	shops := p.SelectedShops(ctx, "s1")
	require.Len(t, shops, 2, "unresolvable IDs are filtered, not fatal")
	assert.Equal(t, "a", shops[0].ID)
	assert.Equal(t, "c", shops[1].ID)
}

func TestDeselectShop(t *testing.T) {
	p, _ := newSelection("a", "b")
	ctx := context.Background()

	_, err := p.SelectShop(ctx, "s1", "a")
	require.NoError(t, err)
	_, err = p.SelectShop(ctx, "s1", "b")
	require.NoError(t, err)

	shops, err := p.DeselectShop(ctx, "s1", "a")
	require.NoError(t, err)
	require.Len(t, shops, 1)
	assert.Equal(t, "b", shops[0].ID)
}

func TestSelectedShopsEmptyWithoutState(t *testing.T) {
	p, _ := newSelection()
	shops := p.SelectedShops(context.Background(), "fresh")
	assert.NotNil(t, shops)
	assert.Empty(t, shops)
}
