package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"halvi-backend/internal/normalize"
	"halvi-backend/internal/notify"
	"halvi-backend/internal/storage"

	"github.com/sirupsen/logrus"
)

// Service loads, mutates and persists per-session carts. Every mutation is
// load-modify-save under the originating request; two concurrent writers
// for the same session race on the store and the last write wins, matching
// the single-owner session model.
type Service struct {
	kv       storage.KV
	notifier notify.Notifier
	log      *logrus.Logger
}

func NewService(kv storage.KV, notifier notify.Notifier, log *logrus.Logger) *Service {
	return &Service{kv: kv, notifier: notifier, log: log}
}

// Get returns the session's cart. A missing entry yields an empty cart; a
// corrupt entry is logged and treated as empty rather than failing.
func (s *Service) Get(ctx context.Context, sessionID string) *Cart {
	data, err := s.kv.Get(ctx, storage.SessionKey(storage.KeyCart, sessionID))
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			s.log.WithError(err).WithField("session", sessionID).Warn("failed to load cart, starting empty")
		}
		return New()
	}

	c, err := decode(data)
	if err != nil {
		s.log.WithError(err).WithField("session", sessionID).Warn("corrupt cart in storage, starting empty")
		return New()
	}
	return c
}

// Add puts quantity of product into the cart and emits a confirmation.
func (s *Service) Add(ctx context.Context, sessionID string, product normalize.Product, quantity int) (*Cart, error) {
	c := s.Get(ctx, sessionID)
	c.Add(product, quantity)

	if err := s.save(ctx, sessionID, c); err != nil {
		return nil, err
	}

	s.push(ctx, sessionID, notify.Notification{
		Title: "Added to cart",
		Body:  fmt.Sprintf("%s is in your cart", product.Name),
		URL:   "/cart",
	})
	return c, nil
}

// Remove drops the line for productID and emits a confirmation.
func (s *Service) Remove(ctx context.Context, sessionID, productID string) (*Cart, error) {
	c := s.Get(ctx, sessionID)
	c.Remove(productID)

	if err := s.save(ctx, sessionID, c); err != nil {
		return nil, err
	}

	s.push(ctx, sessionID, notify.Notification{
		Title: "Removed from cart",
		Body:  "Item removed from your cart",
		URL:   "/cart",
	})
	return c, nil
}

// SetQuantity updates the line quantity; zero or less removes the line.
// Plain quantity updates do not emit a confirmation.
func (s *Service) SetQuantity(ctx context.Context, sessionID, productID string, quantity int) (*Cart, error) {
	if quantity <= 0 {
		return s.Remove(ctx, sessionID, productID)
	}

	c := s.Get(ctx, sessionID)
	c.SetQuantity(productID, quantity)

	if err := s.save(ctx, sessionID, c); err != nil {
		return nil, err
	}
	return c, nil
}

// Clear empties the cart and emits a confirmation.
func (s *Service) Clear(ctx context.Context, sessionID string) (*Cart, error) {
	c := s.Get(ctx, sessionID)
	c.Clear()

	if err := s.save(ctx, sessionID, c); err != nil {
		return nil, err
	}

	s.push(ctx, sessionID, notify.Notification{
		Title: "Cart cleared",
		Body:  "Your cart is now empty",
		URL:   "/shops",
	})
	return c, nil
}

// Checkout empties the cart after an order completes, without the
// cleared-cart confirmation; the order flow surfaces its own.
func (s *Service) Checkout(ctx context.Context, sessionID string) error {
	c := s.Get(ctx, sessionID)
	c.Clear()
	return s.save(ctx, sessionID, c)
}

func (s *Service) save(ctx context.Context, sessionID string, c *Cart) error {
	data, err := json.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to encode cart: %w", err)
	}
	if err := s.kv.Set(ctx, storage.SessionKey(storage.KeyCart, sessionID), data); err != nil {
		return fmt.Errorf("failed to persist cart: %w", err)
	}
	return nil
}

func (s *Service) push(ctx context.Context, sessionID string, n notify.Notification) {
	if s.notifier == nil {
		return
	}
	if err := s.notifier.Push(ctx, sessionID, n); err != nil {
		s.log.WithError(err).WithField("session", sessionID).Warn("failed to push notification")
	}
}
