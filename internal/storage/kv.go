// Package storage provides session-scoped key/value persistence. Each
// provider owns a distinct key namespace (cart, language, haluna-ui-theme,
// systemTheme, mainShopId, selectedShops, userLocation); no two providers
// write the same key, so writes never conflict across namespaces.
package storage

import (
	"context"
	"errors"
	"fmt"
)

// ErrNotFound is returned when a key has no stored value.
var ErrNotFound = errors.New("storage: key not found")

// Namespaces for persisted session state. One provider per namespace.
const (
	KeyCart          = "cart"
	KeyLanguage      = "language"
	KeyTheme         = "haluna-ui-theme"
	KeySystemTheme   = "systemTheme"
	KeyMainShop      = "mainShopId"
	KeySelectedShops = "selectedShops"
	KeyUserLocation  = "userLocation"
)

// KV is the persistence interface behind every provider. Implementations
// must be safe for concurrent use.
type KV interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Ping(ctx context.Context) error
}

// SessionKey builds the stored key for a namespace scoped to one session.
func SessionKey(namespace, sessionID string) string {
	return fmt.Sprintf("%s:%s", namespace, sessionID)
}
