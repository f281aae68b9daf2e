// Package cart implements the per-session shopping cart: an aggregate of
// line items keyed by product ID with derived totals, persisted through
// storage.KV after every mutation.
package cart

import (
	"encoding/json"
	"time"

	"halvi-backend/internal/normalize"
)

// Item is one cart line. The product is an immutable snapshot taken when
// the line was added; later catalog edits do not change it.
type Item struct {
	Product  normalize.Product `json:"product"`
	Quantity int               `json:"quantity"`
}

// Cart holds the line items in insertion order. TotalItems and TotalPrice
// are derived from Items and recomputed after every mutation, never
// mutated independently.
type Cart struct {
	Items      []Item    `json:"items"`
	TotalItems int       `json:"total_items"`
	TotalPrice float64   `json:"total_price"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// New returns an empty cart.
func New() *Cart {
	return &Cart{Items: []Item{}}
}

// Add merges quantity into an existing line for the same product ID or
// appends a new line. Quantities of zero or less leave the cart unchanged.
func (c *Cart) Add(product normalize.Product, quantity int) {
	if quantity <= 0 {
		c.recompute()
		return
	}

	for i := range c.Items {
		if c.Items[i].Product.ID == product.ID {
			c.Items[i].Quantity += quantity
			c.recompute()
			return
		}
	}

	c.Items = append(c.Items, Item{Product: product, Quantity: quantity})
	c.recompute()
}

// Remove drops the line for productID. Removing an absent ID is a no-op
// apart from recomputing totals.
func (c *Cart) Remove(productID string) {
	filtered := c.Items[:0]
	for _, item := range c.Items {
		if item.Product.ID != productID {
			filtered = append(filtered, item)
		}
	}
	c.Items = filtered
	c.recompute()
}

// SetQuantity replaces the quantity for productID. A quantity of zero or
// less removes the line instead.
func (c *Cart) SetQuantity(productID string, quantity int) {
	if quantity <= 0 {
		c.Remove(productID)
		return
	}

	for i := range c.Items {
		if c.Items[i].Product.ID == productID {
			c.Items[i].Quantity = quantity
			break
		}
	}
	c.recompute()
}

// Clear resets the cart to empty.
func (c *Cart) Clear() {
	c.Items = []Item{}
	c.recompute()
}

// Find returns the line for productID, or nil.
func (c *Cart) Find(productID string) *Item {
	for i := range c.Items {
		if c.Items[i].Product.ID == productID {
			return &c.Items[i]
		}
	}
	return nil
}

func (c *Cart) recompute() {
	if c.Items == nil {
		c.Items = []Item{}
	}

	totalItems := 0
	totalPrice := 0.0
	for _, item := range c.Items {
		totalItems += item.Quantity
		totalPrice += item.Product.Price * float64(item.Quantity)
	}

	c.TotalItems = totalItems
	c.TotalPrice = totalPrice
	c.UpdatedAt = time.Now().UTC()
}

// decode parses a persisted cart and recomputes totals so a stale or
// hand-edited payload can never leave totals out of sync with items.
func decode(data []byte) (*Cart, error) {
	var c Cart
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, err
	}
	c.recompute()
	return &c, nil
}
