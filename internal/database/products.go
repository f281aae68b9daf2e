package database

import (
	"database/sql"
	"fmt"
	"strings"

	"halvi-backend/internal/normalize"

	"github.com/lib/pq"
)

type ProductQueries struct {
	db *sql.DB
}

func NewProductQueries(db *sql.DB) *ProductQueries {
	return &ProductQueries{db: db}
}

// ProductFilter narrows ListProducts. Zero values mean "no filter".
type ProductFilter struct {
	ShopID      string
	Category    string
	Search      string
	HalalOnly   bool
	InStockOnly bool
}

const productColumns = `id, shop_id, name, description, price, images, category,
	is_halal_certified, in_stock, created_at`

func scanProduct(row interface{ Scan(...interface{}) error }) (*normalize.Product, error) {
	var product normalize.Product
	err := row.Scan(
		&product.ID,
		&product.ShopID,
		&product.Name,
		&product.Description,
		&product.Price,
		pq.Array(&product.Images),
		&product.Category,
		&product.IsHalalCertified,
		&product.InStock,
		&product.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	if product.Images == nil {
		product.Images = []string{}
	}
	return &product, nil
}

// GetProductByID returns a single product by its identifier
func (q *ProductQueries) GetProductByID(id string) (*normalize.Product, error) {
	query := fmt.Sprintf(`SELECT %s FROM products WHERE id = $1`, productColumns)

	product, err := scanProduct(q.db.QueryRow(query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("product not found")
		}
		return nil, fmt.Errorf("failed to get product: %w", err)
	}
	return product, nil
}

// ListProducts returns products matching the filter, with pagination
func (q *ProductQueries) ListProducts(filter ProductFilter, page, limit int) ([]normalize.Product, int, error) {
	offset := (page - 1) * limit

	conditions := []string{}
	args := []interface{}{}

	if filter.ShopID != "" {
		args = append(args, filter.ShopID)
		conditions = append(conditions, fmt.Sprintf("shop_id = $%d", len(args)))
	}
	if filter.Category != "" {
		args = append(args, filter.Category)
		conditions = append(conditions, fmt.Sprintf("category = $%d", len(args)))
	}
	if filter.Search != "" {
		args = append(args, "%"+strings.TrimSpace(filter.Search)+"%")
		conditions = append(conditions, fmt.Sprintf("(name ILIKE $%d OR description ILIKE $%d)", len(args), len(args)))
	}
	if filter.HalalOnly {
		conditions = append(conditions, "is_halal_certified = true")
	}
	if filter.InStockOnly {
		conditions = append(conditions, "in_stock = true")
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = "WHERE " + strings.Join(conditions, " AND ")
	}

	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM products %s`, whereClause)
	var total int
	if err := q.db.QueryRow(countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count products: %w", err)
	}

	query := fmt.Sprintf(`SELECT %s FROM products %s ORDER BY created_at DESC LIMIT $%d OFFSET $%d`,
		productColumns, whereClause, len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	rows, err := q.db.Query(query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list products: %w", err)
	}
	defer rows.Close()

	products := []normalize.Product{}
	for rows.Next() {
		product, err := scanProduct(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, *product)
	}
	return products, total, nil
}

// UpsertProduct inserts or replaces a product record by ID
func (q *ProductQueries) UpsertProduct(product *normalize.Product) error {
	query := `
		INSERT INTO products (id, shop_id, name, description, price, images, category,
			is_halal_certified, in_stock)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (id) DO UPDATE SET
			shop_id = EXCLUDED.shop_id,
			name = EXCLUDED.name,
			description = EXCLUDED.description,
			price = EXCLUDED.price,
			images = EXCLUDED.images,
			category = EXCLUDED.category,
			is_halal_certified = EXCLUDED.is_halal_certified,
			in_stock = EXCLUDED.in_stock
		RETURNING created_at
	`
	err := q.db.QueryRow(query,
		product.ID, product.ShopID, product.Name, product.Description, product.Price,
		pq.Array(product.Images), product.Category, product.IsHalalCertified, product.InStock,
	).Scan(&product.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to upsert product: %w", err)
	}
	return nil
}
