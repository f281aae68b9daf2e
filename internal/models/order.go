package models

import (
	"encoding/json"
	"time"
)

type Order struct {
	ID         string          `json:"id"`
	SessionID  string          `json:"session_id"`
	UserID     *int            `json:"user_id,omitempty"`
	Items      json.RawMessage `json:"items"`
	TotalItems int             `json:"total_items"`
	TotalPrice float64         `json:"total_price"`
	Status     string          `json:"status"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

const (
	OrderStatusPending   = "pending"
	OrderStatusCompleted = "completed"
	OrderStatusCancelled = "cancelled"
)

type CheckoutResponse struct {
	OrderID    string  `json:"order_id"`
	TotalItems int     `json:"total_items"`
	TotalPrice float64 `json:"total_price"`
	Status     string  `json:"status"`
}

type OrderListResponse struct {
	Orders []Order `json:"orders"`
	Total  int     `json:"total"`
}
