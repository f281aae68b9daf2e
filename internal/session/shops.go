package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"halvi-backend/internal/normalize"
	"halvi-backend/internal/storage"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// ShopResolver turns a persisted shop ID back into a full shop record.
type ShopResolver interface {
	GetShopByID(id string) (*normalize.Shop, error)
}

// ShopSelection holds the business-context selection: one optional main
// shop plus a unique set of selected shops. Only the IDs are persisted;
// records are resolved on rehydration and IDs that no longer resolve are
// dropped rather than failing the load.
type ShopSelection struct {
	kv       storage.KV
	resolver ShopResolver
	log      *logrus.Logger
}

func NewShopSelection(kv storage.KV, resolver ShopResolver, log *logrus.Logger) *ShopSelection {
	return &ShopSelection{kv: kv, resolver: resolver, log: log}
}

// MainShop resolves the session's main shop, or nil when none is set or
// the stored ID no longer resolves.
func (p *ShopSelection) MainShop(ctx context.Context, sessionID string) *normalize.Shop {
	data, err := p.kv.Get(ctx, storage.SessionKey(storage.KeyMainShop, sessionID))
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			p.log.WithError(err).WithField("session", sessionID).Warn("failed to load main shop")
		}
		return nil
	}

	shopID := string(data)
	if shopID == "" {
		return nil
	}

	shop, err := p.resolver.GetShopByID(shopID)
	if err != nil {
		p.log.WithError(err).WithFields(logrus.Fields{"session": sessionID, "shop": shopID}).Warn("stored main shop no longer resolves")
		return nil
	}
	return shop
}

// SetMainShop resolves shopID and persists it as the session's main shop.
func (p *ShopSelection) SetMainShop(ctx context.Context, sessionID, shopID string) (*normalize.Shop, error) {
	shop, err := p.resolver.GetShopByID(shopID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve shop %s: %w", shopID, err)
	}

	if err := p.kv.Set(ctx, storage.SessionKey(storage.KeyMainShop, sessionID), []byte(shopID)); err != nil {
		return nil, fmt.Errorf("failed to persist main shop: %w", err)
	}
	return shop, nil
}

// ClearMainShop removes the session's main shop.
func (p *ShopSelection) ClearMainShop(ctx context.Context, sessionID string) error {
	if err := p.kv.Delete(ctx, storage.SessionKey(storage.KeyMainShop, sessionID)); err != nil {
		return fmt.Errorf("failed to clear main shop: %w", err)
	}
	return nil
}

// SelectedShops resolves every selected shop ID in parallel, preserving
// the stored order. IDs that fail to resolve are filtered out.
func (p *ShopSelection) SelectedShops(ctx context.Context, sessionID string) []normalize.Shop {
	ids := p.selectedIDs(ctx, sessionID)
	if len(ids) == 0 {
		return []normalize.Shop{}
	}

	resolved := make([]*normalize.Shop, len(ids))
	var g errgroup.Group
	for i, id := range ids {
		i, id := i, id
		g.Go(func() error {
			shop, err := p.resolver.GetShopByID(id)
			if err != nil {
				p.log.WithError(err).WithFields(logrus.Fields{"session": sessionID, "shop": id}).Warn("selected shop no longer resolves")
				return nil
			}
			resolved[i] = shop
			return nil
		})
	}
	// workers only report, never fail the batch
	_ = g.Wait()

	shops := make([]normalize.Shop, 0, len(resolved))
	for _, shop := range resolved {
		if shop != nil {
			shops = append(shops, *shop)
		}
	}
	return shops
}

// SelectShop adds shopID to the selection. Selecting an already-selected
// shop is a no-op; uniqueness is by ID.
func (p *ShopSelection) SelectShop(ctx context.Context, sessionID, shopID string) ([]normalize.Shop, error) {
	if _, err := p.resolver.GetShopByID(shopID); err != nil {
		return nil, fmt.Errorf("failed to resolve shop %s: %w", shopID, err)
	}

	ids := p.selectedIDs(ctx, sessionID)
	for _, id := range ids {
		if id == shopID {
			return p.SelectedShops(ctx, sessionID), nil
		}
	}

	ids = append(ids, shopID)
	if err := p.saveSelectedIDs(ctx, sessionID, ids); err != nil {
		return nil, err
	}
	return p.SelectedShops(ctx, sessionID), nil
}

// DeselectShop removes shopID from the selection.
func (p *ShopSelection) DeselectShop(ctx context.Context, sessionID, shopID string) ([]normalize.Shop, error) {
	ids := p.selectedIDs(ctx, sessionID)
	filtered := ids[:0]
	for _, id := range ids {
		if id != shopID {
			filtered = append(filtered, id)
		}
	}

	if err := p.saveSelectedIDs(ctx, sessionID, filtered); err != nil {
		return nil, err
	}
	return p.SelectedShops(ctx, sessionID), nil
}

func (p *ShopSelection) selectedIDs(ctx context.Context, sessionID string) []string {
	data, err := p.kv.Get(ctx, storage.SessionKey(storage.KeySelectedShops, sessionID))
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			p.log.WithError(err).WithField("session", sessionID).Warn("failed to load selected shops")
		}
		return []string{}
	}

	var ids []string
	if err := json.Unmarshal(data, &ids); err != nil {
		p.log.WithError(err).WithField("session", sessionID).Warn("corrupt selected shops in storage")
		return []string{}
	}
	return ids
}

func (p *ShopSelection) saveSelectedIDs(ctx context.Context, sessionID string, ids []string) error {
	data, err := json.Marshal(ids)
	if err != nil {
		return fmt.Errorf("failed to encode selected shops: %w", err)
	}
	if err := p.kv.Set(ctx, storage.SessionKey(storage.KeySelectedShops, sessionID), data); err != nil {
		return fmt.Errorf("failed to persist selected shops: %w", err)
	}
	return nil
}
