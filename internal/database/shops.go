package database

import (
	"database/sql"
	"fmt"
	"strings"

	"halvi-backend/internal/normalize"
)

type ShopQueries struct {
	db *sql.DB
}

func NewShopQueries(db *sql.DB) *ShopQueries {
	return &ShopQueries{db: db}
}

const shopColumns = `id, owner_id, name, description, logo, cover_image, location, address,
	latitude, longitude, rating_average, rating_count, is_verified, is_halal_certified,
	delivery_available, created_at`

func scanShop(row interface{ Scan(...interface{}) error }) (*normalize.Shop, error) {
	var shop normalize.Shop
	err := row.Scan(
		&shop.ID,
		&shop.OwnerID,
		&shop.Name,
		&shop.Description,
		&shop.Logo,
		&shop.CoverImage,
		&shop.Location,
		&shop.Address,
		&shop.Latitude,
		&shop.Longitude,
		&shop.Rating.Average,
		&shop.Rating.Count,
		&shop.IsVerified,
		&shop.IsHalalCertified,
		&shop.DeliveryAvailable,
		&shop.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &shop, nil
}

// GetShopByID returns a single shop by its identifier
func (q *ShopQueries) GetShopByID(id string) (*normalize.Shop, error) {
	query := fmt.Sprintf(`SELECT %s FROM shops WHERE id = $1`, shopColumns)

	shop, err := scanShop(q.db.QueryRow(query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("shop not found")
		}
		return nil, fmt.Errorf("failed to get shop: %w", err)
	}
	return shop, nil
}

// ListShops returns shops with search and pagination
func (q *ShopQueries) ListShops(page, limit int, search string) ([]normalize.Shop, int, error) {
	offset := (page - 1) * limit

	whereClause := ""
	args := []interface{}{}
	if search != "" {
		whereClause = `WHERE name ILIKE $1 OR location ILIKE $1`
		args = append(args, "%"+strings.TrimSpace(search)+"%")
	}

	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM shops %s`, whereClause)
	var total int
	if err := q.db.QueryRow(countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count shops: %w", err)
	}

	query := fmt.Sprintf(`SELECT %s FROM shops %s ORDER BY rating_average DESC, name ASC LIMIT $%d OFFSET $%d`,
		shopColumns, whereClause, len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	rows, err := q.db.Query(query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list shops: %w", err)
	}
	defer rows.Close()

	shops := []normalize.Shop{}
	for rows.Next() {
		shop, err := scanShop(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan shop: %w", err)
		}
		shops = append(shops, *shop)
	}
	return shops, total, nil
}

// ListShopsByOwner returns every shop owned by ownerID
func (q *ShopQueries) ListShopsByOwner(ownerID string) ([]normalize.Shop, error) {
	query := fmt.Sprintf(`SELECT %s FROM shops WHERE owner_id = $1 ORDER BY created_at ASC`, shopColumns)

	rows, err := q.db.Query(query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list owner shops: %w", err)
	}
	defer rows.Close()

	shops := []normalize.Shop{}
	for rows.Next() {
		shop, err := scanShop(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan shop: %w", err)
		}
		shops = append(shops, *shop)
	}
	return shops, nil
}

// GetNearbyShops returns shops within radiusKm of the given coordinates,
// nearest first (haversine distance computed in SQL)
func (q *ShopQueries) GetNearbyShops(latitude, longitude, radiusKm float64, limit int) ([]normalize.Shop, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM (
			SELECT *, (
				6371 * acos(
					least(1.0, cos(radians($1)) * cos(radians(latitude)) *
					cos(radians(longitude) - radians($2)) +
					sin(radians($1)) * sin(radians(latitude)))
				)
			) AS distance_km
			FROM shops
		) nearby
		WHERE distance_km <= $3
		ORDER BY distance_km ASC
		LIMIT $4
	`, shopColumns)

	rows, err := q.db.Query(query, latitude, longitude, radiusKm, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get nearby shops: %w", err)
	}
	defer rows.Close()

	shops := []normalize.Shop{}
	for rows.Next() {
		shop, err := scanShop(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan shop: %w", err)
		}
		shops = append(shops, *shop)
	}
	return shops, nil
}

// UpsertShop inserts or replaces a shop record by ID
func (q *ShopQueries) UpsertShop(shop *normalize.Shop) error {
	query := `
		INSERT INTO shops (id, owner_id, name, description, logo, cover_image, location, address,
			latitude, longitude, rating_average, rating_count, is_verified, is_halal_certified, delivery_available)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		ON CONFLICT (id) DO UPDATE SET
			owner_id = EXCLUDED.owner_id,
			name = EXCLUDED.name,
			description = EXCLUDED.description,
			logo = EXCLUDED.logo,
			cover_image = EXCLUDED.cover_image,
			location = EXCLUDED.location,
			address = EXCLUDED.address,
			latitude = EXCLUDED.latitude,
			longitude = EXCLUDED.longitude,
			rating_average = EXCLUDED.rating_average,
			rating_count = EXCLUDED.rating_count,
			is_verified = EXCLUDED.is_verified,
			is_halal_certified = EXCLUDED.is_halal_certified,
			delivery_available = EXCLUDED.delivery_available
		RETURNING created_at
	`
	err := q.db.QueryRow(query,
		shop.ID, shop.OwnerID, shop.Name, shop.Description, shop.Logo, shop.CoverImage,
		shop.Location, shop.Address, shop.Latitude, shop.Longitude,
		shop.Rating.Average, shop.Rating.Count, shop.IsVerified, shop.IsHalalCertified,
		shop.DeliveryAvailable,
	).Scan(&shop.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to upsert shop: %w", err)
	}
	return nil
}

// SetShopVerified flips the verification flag
func (q *ShopQueries) SetShopVerified(id string, verified bool) error {
	result, err := q.db.Exec(`UPDATE shops SET is_verified = $1 WHERE id = $2`, verified, id)
	if err != nil {
		return fmt.Errorf("failed to update shop verification: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("shop not found")
	}
	return nil
}
