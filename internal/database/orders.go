package database

import (
	"database/sql"
	"fmt"

	"halvi-backend/internal/models"
)

type OrderQueries struct {
	db *sql.DB
}

func NewOrderQueries(db *sql.DB) *OrderQueries {
	return &OrderQueries{db: db}
}

// CreateOrder stores an order snapshot taken from the cart at checkout
func (q *OrderQueries) CreateOrder(order *models.Order) error {
	query := `
		INSERT INTO orders (id, session_id, user_id, items, total_items, total_price, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at, updated_at
	`
	err := q.db.QueryRow(query,
		order.ID, order.SessionID, order.UserID, []byte(order.Items),
		order.TotalItems, order.TotalPrice, order.Status,
	).Scan(&order.CreatedAt, &order.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create order: %w", err)
	}
	return nil
}

// GetOrderByID returns a single order
func (q *OrderQueries) GetOrderByID(id string) (*models.Order, error) {
	query := `
		SELECT id, session_id, user_id, items, total_items, total_price, status, created_at, updated_at
		FROM orders
		WHERE id = $1
	`
	order := &models.Order{}
	var items []byte
	err := q.db.QueryRow(query, id).Scan(
		&order.ID, &order.SessionID, &order.UserID, &items,
		&order.TotalItems, &order.TotalPrice, &order.Status,
		&order.CreatedAt, &order.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("order not found")
		}
		return nil, fmt.Errorf("failed to get order: %w", err)
	}
	order.Items = items
	return order, nil
}

// ListOrdersBySession returns the session's orders, newest first
func (q *OrderQueries) ListOrdersBySession(sessionID string) ([]models.Order, error) {
	query := `
		SELECT id, session_id, user_id, items, total_items, total_price, status, created_at, updated_at
		FROM orders
		WHERE session_id = $1
		ORDER BY created_at DESC
	`
	return q.listOrders(query, sessionID)
}

// ListOrdersByUser returns an authenticated user's orders, newest first
func (q *OrderQueries) ListOrdersByUser(userID int) ([]models.Order, error) {
	query := `
		SELECT id, session_id, user_id, items, total_items, total_price, status, created_at, updated_at
		FROM orders
		WHERE user_id = $1
		ORDER BY created_at DESC
	`
	return q.listOrders(query, userID)
}

func (q *OrderQueries) listOrders(query string, arg interface{}) ([]models.Order, error) {
	rows, err := q.db.Query(query, arg)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	defer rows.Close()

	orders := []models.Order{}
	for rows.Next() {
		var order models.Order
		var items []byte
		err := rows.Scan(
			&order.ID, &order.SessionID, &order.UserID, &items,
			&order.TotalItems, &order.TotalPrice, &order.Status,
			&order.CreatedAt, &order.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan order: %w", err)
		}
		order.Items = items
		orders = append(orders, order)
	}
	return orders, nil
}
