// Package normalize resolves catalog records that arrive with inconsistent
// field naming (snake_case database rows vs camelCase client payloads) into
// canonical Product and Shop values. Canonical values marshal back out with
// both naming conventions populated so either convention resolves to the
// same value. Normalization never fails: unknown shapes degrade to typed
// defaults.
package normalize

import (
	"encoding/json"
)

// Rating is the canonical shop rating. Source records may carry a bare
// number or an {average, count} object; both coerce to this form.
type Rating struct {
	Average float64 `json:"average"`
	Count   int     `json:"count"`
}

// Product is the canonical product record.
type Product struct {
	ID               string
	ShopID           string
	Name             string
	Description      string
	Price            float64
	Images           []string
	Category         string
	IsHalalCertified bool
	InStock          bool
	CreatedAt        string
}

// Shop is the canonical shop record.
type Shop struct {
	ID                string
	OwnerID           string
	Name              string
	Description       string
	Logo              string
	CoverImage        string
	Location          string
	Address           string
	Latitude          float64
	Longitude         float64
	Rating            Rating
	IsVerified        bool
	IsHalalCertified  bool
	DeliveryAvailable bool
	CreatedAt         string
}

// NormalizeProduct resolves a raw record of unknown shape into a canonical Product.
// The snake_case value wins when both conventions are present; missing
// fields default (empty images, zero price, in_stock true).
func NormalizeProduct(raw map[string]interface{}) Product {
	return Product{
		ID:               stringField(raw, "id", "id"),
		ShopID:           stringField(raw, "shop_id", "shopId"),
		Name:             stringField(raw, "name", "name"),
		Description:      stringField(raw, "description", "description"),
		Price:            floatField(raw, "price", "price"),
		Images:           stringSliceField(raw, "images", "images"),
		Category:         stringField(raw, "category", "category"),
		IsHalalCertified: boolField(raw, "is_halal_certified", "isHalalCertified", false),
		InStock:          boolField(raw, "in_stock", "inStock", true),
		CreatedAt:        stringField(raw, "created_at", "createdAt"),
	}
}

// NormalizeShop resolves a raw record of unknown shape into a canonical Shop.
func NormalizeShop(raw map[string]interface{}) Shop {
	return Shop{
		ID:                stringField(raw, "id", "id"),
		OwnerID:           stringField(raw, "owner_id", "ownerId"),
		Name:              stringField(raw, "name", "name"),
		Description:       stringField(raw, "description", "description"),
		Logo:              stringField(raw, "logo", "logoUrl"),
		CoverImage:        stringField(raw, "cover_image", "coverImage"),
		Location:          stringField(raw, "location", "location"),
		Address:           stringField(raw, "address", "address"),
		Latitude:          floatField(raw, "latitude", "latitude"),
		Longitude:         floatField(raw, "longitude", "longitude"),
		Rating:            ratingField(raw),
		IsVerified:        boolField(raw, "is_verified", "isVerified", false),
		IsHalalCertified:  boolField(raw, "is_halal_certified", "isHalalCertified", false),
		DeliveryAvailable: boolField(raw, "delivery_available", "deliveryAvailable", false),
		CreatedAt:         stringField(raw, "created_at", "createdAt"),
	}
}

// Map emits the product with both naming conventions populated.
func (p Product) Map() map[string]interface{} {
	images := p.Images
	if images == nil {
		images = []string{}
	}
	return map[string]interface{}{
		"id":                 p.ID,
		"shop_id":            p.ShopID,
		"shopId":             p.ShopID,
		"name":               p.Name,
		"description":        p.Description,
		"price":              p.Price,
		"images":             images,
		"category":           p.Category,
		"is_halal_certified": p.IsHalalCertified,
		"isHalalCertified":   p.IsHalalCertified,
		"in_stock":           p.InStock,
		"inStock":            p.InStock,
		"created_at":         p.CreatedAt,
		"createdAt":          p.CreatedAt,
	}
}

// Map emits the shop with both naming conventions populated. The rating is
// carried both as an object and as flattened average/count scalars since
// call sites read it either way.
func (s Shop) Map() map[string]interface{} {
	return map[string]interface{}{
		"id":                 s.ID,
		"owner_id":           s.OwnerID,
		"ownerId":            s.OwnerID,
		"name":               s.Name,
		"description":        s.Description,
		"logo":               s.Logo,
		"logoUrl":            s.Logo,
		"cover_image":        s.CoverImage,
		"coverImage":         s.CoverImage,
		"location":           s.Location,
		"address":            s.Address,
		"latitude":           s.Latitude,
		"longitude":          s.Longitude,
		"rating":             map[string]interface{}{"average": s.Rating.Average, "count": s.Rating.Count},
		"rating_average":     s.Rating.Average,
		"ratingAverage":      s.Rating.Average,
		"rating_count":       s.Rating.Count,
		"ratingCount":        s.Rating.Count,
		"is_verified":        s.IsVerified,
		"isVerified":         s.IsVerified,
		"is_halal_certified": s.IsHalalCertified,
		"isHalalCertified":   s.IsHalalCertified,
		"delivery_available": s.DeliveryAvailable,
		"deliveryAvailable":  s.DeliveryAvailable,
		"created_at":         s.CreatedAt,
		"createdAt":          s.CreatedAt,
	}
}

func (p Product) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.Map())
}

func (p *Product) UnmarshalJSON(data []byte) error {
	var raw map[string]interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*p = NormalizeProduct(raw)
	return nil
}

func (s Shop) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Map())
}

func (s *Shop) UnmarshalJSON(data []byte) error {
	var raw map[string]interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*s = NormalizeShop(raw)
	return nil
}

// lookup returns the first present value, snake_case first.
func lookup(raw map[string]interface{}, snake, camel string) (interface{}, bool) {
	if v, ok := raw[snake]; ok && v != nil {
		return v, true
	}
	if v, ok := raw[camel]; ok && v != nil {
		return v, true
	}
	return nil, false
}

func stringField(raw map[string]interface{}, snake, camel string) string {
	v, ok := lookup(raw, snake, camel)
	if !ok {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return ""
}

func floatField(raw map[string]interface{}, snake, camel string) float64 {
	v, ok := lookup(raw, snake, camel)
	if !ok {
		return 0
	}
	return toFloat(v)
}

func toFloat(v interface{}) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case float32:
		return float64(n)
	case int:
		return float64(n)
	case int64:
		return float64(n)
	case json.Number:
		f, err := n.Float64()
		if err != nil {
			return 0
		}
		return f
	default:
		return 0
	}
}

func boolField(raw map[string]interface{}, snake, camel string, defaultValue bool) bool {
	v, ok := lookup(raw, snake, camel)
	if !ok {
		return defaultValue
	}
	if b, ok := v.(bool); ok {
		return b
	}
	return defaultValue
}

func stringSliceField(raw map[string]interface{}, snake, camel string) []string {
	v, ok := lookup(raw, snake, camel)
	if !ok {
		return []string{}
	}
	switch items := v.(type) {
	case []string:
		out := make([]string, len(items))
		copy(out, items)
		return out
	case []interface{}:
		out := make([]string, 0, len(items))
		for _, item := range items {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	default:
		return []string{}
	}
}

// ratingField coerces a bare number, an {average, count} object in either
// naming convention, or flattened rating_average/rating_count scalars.
func ratingField(raw map[string]interface{}) Rating {
	if v, ok := lookup(raw, "rating", "rating"); ok {
		switch r := v.(type) {
		case map[string]interface{}:
			return Rating{
				Average: floatField(r, "average", "average"),
				Count:   int(floatField(r, "count", "count")),
			}
		default:
			if f := toFloat(v); f != 0 {
				return Rating{Average: f, Count: intField(raw, "rating_count", "ratingCount")}
			}
		}
	}
	return Rating{
		Average: floatField(raw, "rating_average", "ratingAverage"),
		Count:   intField(raw, "rating_count", "ratingCount"),
	}
}

func intField(raw map[string]interface{}, snake, camel string) int {
	return int(floatField(raw, snake, camel))
}
