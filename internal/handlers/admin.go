package handlers

import (
	"database/sql"
	"net/http"
	"strconv"

	"halvi-backend/internal/database"
	"halvi-backend/internal/normalize"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// AdminHandler covers catalog ingestion and moderation. Import
// endpoints accept raw feed records in either naming convention and
// normalize them before they touch the database.
type AdminHandler struct {
	shopQueries    *database.ShopQueries
	productQueries *database.ProductQueries
	log            *logrus.Logger
}

func NewAdminHandler(db *sql.DB, log *logrus.Logger) *AdminHandler {
	return &AdminHandler{
		shopQueries:    database.NewShopQueries(db),
		productQueries: database.NewProductQueries(db),
		log:            log,
	}
}

func (h *AdminHandler) ImportShops(c *gin.Context) {
	var raw []map[string]interface{}
	if err := c.ShouldBindJSON(&raw); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	imported := 0
	skipped := 0
	for _, record := range raw {
		shop := normalize.NormalizeShop(record)
		if shop.ID == "" {
			skipped++
			continue
		}
		if err := h.shopQueries.UpsertShop(&shop); err != nil {
			h.log.WithError(err).WithField("shop", shop.ID).Warn("failed to import shop")
			skipped++
			continue
		}
		imported++
	}

	c.JSON(http.StatusOK, gin.H{"imported": imported, "skipped": skipped})
}

func (h *AdminHandler) ImportProducts(c *gin.Context) {
	var raw []map[string]interface{}
	if err := c.ShouldBindJSON(&raw); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	imported := 0
	skipped := 0
	for _, record := range raw {
		product := normalize.NormalizeProduct(record)
		if product.ID == "" || product.ShopID == "" {
			skipped++
			continue
		}
		if err := h.productQueries.UpsertProduct(&product); err != nil {
			h.log.WithError(err).WithField("product", product.ID).Warn("failed to import product")
			skipped++
			continue
		}
		imported++
	}

	c.JSON(http.StatusOK, gin.H{"imported": imported, "skipped": skipped})
}

func (h *AdminHandler) VerifyShop(c *gin.Context) {
	verified, err := strconv.ParseBool(c.DefaultQuery("verified", "true"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid verified value"})
		return
	}

	if err := h.shopQueries.SetShopVerified(c.Param("id"), verified); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Shop not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"id": c.Param("id"), "verified": verified})
}

// GetOwnerShops lists shops belonging to the authenticated business
// user. Shop owner IDs are stored as strings to match the feed format.
func (h *AdminHandler) GetOwnerShops(c *gin.Context) {
	userID := c.GetInt("user_id")

	shops, err := h.shopQueries.ListShopsByOwner(strconv.Itoa(userID))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch shops"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"shops": shops, "total": len(shops)})
}
