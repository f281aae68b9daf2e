package normalize

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeProductDualConventions(t *testing.T) {
	p := NormalizeProduct(map[string]interface{}{
		"shop_id":            "s1",
		"is_halal_certified": true,
	})

	assert.Equal(t, "s1", p.ShopID)
	assert.True(t, p.IsHalalCertified)

	m := p.Map()
	assert.Equal(t, "s1", m["shop_id"])
	assert.Equal(t, "s1", m["shopId"])
	assert.Equal(t, true, m["is_halal_certified"])
	assert.Equal(t, true, m["isHalalCertified"])
}

func TestNormalizeProductSnakeCaseWins(t *testing.T) {
	p := NormalizeProduct(map[string]interface{}{
		"shop_id": "from-db",
		"shopId":  "from-client",
		"price":   12.5,
	})

	assert.Equal(t, "from-db", p.ShopID)
	assert.Equal(t, 12.5, p.Price)
}

func TestNormalizeProductCamelCaseFallback(t *testing.T) {
	p := NormalizeProduct(map[string]interface{}{
		"shopId":  "s2",
		"inStock": false,
	})

	assert.Equal(t, "s2", p.ShopID)
	assert.False(t, p.InStock)
}

func TestNormalizeProductDefaults(t *testing.T) {
	p := NormalizeProduct(map[string]interface{}{"id": "p1"})

	assert.Equal(t, "p1", p.ID)
	assert.Equal(t, 0.0, p.Price)
	assert.NotNil(t, p.Images)
	assert.Empty(t, p.Images)
	assert.True(t, p.InStock, "missing in_stock defaults to available")
	assert.False(t, p.IsHalalCertified, "missing certification defaults to false")
}

func TestNormalizeProductIdempotent(t *testing.T) {
	raw := map[string]interface{}{
		"id":      "p1",
		"shopId":  "s1",
		"name":    "Dates",
		"price":   7.25,
		"images":  []interface{}{"a.jpg", "b.jpg"},
		"inStock": true,
	}

	once := NormalizeProduct(raw)
	twice := NormalizeProduct(once.Map())
	assert.Equal(t, once, twice)
}

func TestNormalizeProductIgnoresMalformedValues(t *testing.T) {
	p := NormalizeProduct(map[string]interface{}{
		"id":       42,
		"price":    "not-a-number",
		"images":   "not-a-list",
		"in_stock": "yes",
	})

	assert.Equal(t, "", p.ID)
	assert.Equal(t, 0.0, p.Price)
	assert.Empty(t, p.Images)
	assert.True(t, p.InStock)
}

func TestProductJSONRoundTrip(t *testing.T) {
	p := Product{ID: "p1", ShopID: "s1", Name: "Olive oil", Price: 19.99, InStock: true}

	data, err := json.Marshal(p)
	require.NoError(t, err)

	var raw map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &raw))
	assert.Equal(t, "s1", raw["shop_id"])
	assert.Equal(t, "s1", raw["shopId"])

	var decoded Product
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, p, decoded)
}

func TestNormalizeShopRatingObject(t *testing.T) {
	s := NormalizeShop(map[string]interface{}{
		"id": "s1",
		"rating": map[string]interface{}{
			"average": 4.5,
			"count":   12,
		},
	})

	assert.Equal(t, 4.5, s.Rating.Average)
	assert.Equal(t, 12, s.Rating.Count)
}

func TestNormalizeShopRatingBareNumber(t *testing.T) {
	s := NormalizeShop(map[string]interface{}{
		"id":     "s1",
		"rating": 4.2,
	})

	assert.Equal(t, 4.2, s.Rating.Average)
	assert.Equal(t, 0, s.Rating.Count)
}

func TestNormalizeShopRatingFlattened(t *testing.T) {
	s := NormalizeShop(map[string]interface{}{
		"ratingAverage": 3.8,
		"rating_count":  44,
	})

	assert.Equal(t, 3.8, s.Rating.Average)
	assert.Equal(t, 44, s.Rating.Count)
}

func TestNormalizeShopIdempotent(t *testing.T) {
	raw := map[string]interface{}{
		"id":         "s1",
		"ownerId":    "u9",
		"name":       "Madina Market",
		"logoUrl":    "logo.png",
		"latitude":   24.7,
		"longitude":  46.6,
		"rating":     4.5,
		"isVerified": true,
	}

	once := NormalizeShop(raw)
	twice := NormalizeShop(once.Map())
	assert.Equal(t, once, twice)
}

func TestNormalizeShopDualConventions(t *testing.T) {
	s := NormalizeShop(map[string]interface{}{
		"owner_id":           "u1",
		"delivery_available": true,
	})

	m := s.Map()
	assert.Equal(t, "u1", m["ownerId"])
	assert.Equal(t, "u1", m["owner_id"])
	assert.Equal(t, true, m["deliveryAvailable"])
	assert.Equal(t, true, m["delivery_available"])
}
