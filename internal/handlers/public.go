package handlers

import (
	"database/sql"
	"net/http"
	"strconv"

	"halvi-backend/internal/database"
	"halvi-backend/internal/middleware"
	"halvi-backend/internal/session"

	"github.com/gin-gonic/gin"
)

// PublicHandler serves the unauthenticated catalog endpoints.
type PublicHandler struct {
	shopQueries    *database.ShopQueries
	productQueries *database.ProductQueries
	location       *session.LocationProvider
}

func NewPublicHandler(db *sql.DB, location *session.LocationProvider) *PublicHandler {
	return &PublicHandler{
		shopQueries:    database.NewShopQueries(db),
		productQueries: database.NewProductQueries(db),
		location:       location,
	}
}

func (h *PublicHandler) GetShops(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	search := c.Query("search")

	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	shops, total, err := h.shopQueries.ListShops(page, limit, search)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch shops"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"shops": shops,
		"total": total,
		"page":  page,
		"limit": limit,
	})
}

func (h *PublicHandler) GetShop(c *gin.Context) {
	shop, err := h.shopQueries.GetShopByID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Shop not found"})
		return
	}

	c.JSON(http.StatusOK, shop)
}

// GetNearbyShops ranks shops by distance from the session's location.
// Sessions without a stored location fall back to the configured city
// center, so the endpoint always returns something useful.
func (h *PublicHandler) GetNearbyShops(c *gin.Context) {
	sessionID := middleware.GetSessionID(c)

	radius, _ := strconv.ParseFloat(c.DefaultQuery("radius", "10"), 64)
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	if radius <= 0 || radius > 100 {
		radius = 10
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	latitude, longitude := h.location.Coordinates(c.Request.Context(), sessionID)

	shops, err := h.shopQueries.GetNearbyShops(latitude, longitude, radius, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch nearby shops"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"shops":     shops,
		"total":     len(shops),
		"latitude":  latitude,
		"longitude": longitude,
		"radius_km": radius,
	})
}

func (h *PublicHandler) GetProducts(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	filter := database.ProductFilter{
		ShopID:      c.Query("shop_id"),
		Category:    c.Query("category"),
		Search:      c.Query("search"),
		HalalOnly:   c.Query("halal") == "true",
		InStockOnly: c.Query("in_stock") == "true",
	}

	products, total, err := h.productQueries.ListProducts(filter, page, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch products"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"products": products,
		"total":    total,
		"page":     page,
		"limit":    limit,
	})
}

func (h *PublicHandler) GetProduct(c *gin.Context) {
	product, err := h.productQueries.GetProductByID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		return
	}

	c.JSON(http.StatusOK, product)
}
