package handlers

import (
	"database/sql"
	"encoding/json"
	"net/http"

	"halvi-backend/internal/cart"
	"halvi-backend/internal/database"
	"halvi-backend/internal/middleware"
	"halvi-backend/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

type CartHandler struct {
	carts          *cart.Service
	productQueries *database.ProductQueries
	orderQueries   *database.OrderQueries
	log            *logrus.Logger
}

func NewCartHandler(carts *cart.Service, db *sql.DB, log *logrus.Logger) *CartHandler {
	return &CartHandler{
		carts:          carts,
		productQueries: database.NewProductQueries(db),
		orderQueries:   database.NewOrderQueries(db),
		log:            log,
	}
}

func (h *CartHandler) GetCart(c *gin.Context) {
	sessionID := middleware.GetSessionID(c)
	c.JSON(http.StatusOK, h.carts.Get(c.Request.Context(), sessionID))
}

func (h *CartHandler) GetCartCount(c *gin.Context) {
	sessionID := middleware.GetSessionID(c)
	snapshot := h.carts.Get(c.Request.Context(), sessionID)
	c.JSON(http.StatusOK, models.CartCountResponse{Count: snapshot.TotalItems})
}

func (h *CartHandler) AddToCart(c *gin.Context) {
	sessionID := middleware.GetSessionID(c)

	var req models.CartAddRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	product, err := h.productQueries.GetProductByID(req.ProductID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		return
	}

	snapshot, err := h.carts.Add(c.Request.Context(), sessionID, *product, req.Quantity)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update cart"})
		return
	}

	c.JSON(http.StatusOK, snapshot)
}

func (h *CartHandler) UpdateCartItem(c *gin.Context) {
	sessionID := middleware.GetSessionID(c)
	productID := c.Param("id")

	var req models.CartUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	snapshot, err := h.carts.SetQuantity(c.Request.Context(), sessionID, productID, req.Quantity)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update cart"})
		return
	}

	c.JSON(http.StatusOK, snapshot)
}

func (h *CartHandler) RemoveFromCart(c *gin.Context) {
	sessionID := middleware.GetSessionID(c)
	productID := c.Param("id")

	snapshot, err := h.carts.Remove(c.Request.Context(), sessionID, productID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update cart"})
		return
	}

	c.JSON(http.StatusOK, snapshot)
}

func (h *CartHandler) ClearCart(c *gin.Context) {
	sessionID := middleware.GetSessionID(c)

	snapshot, err := h.carts.Clear(c.Request.Context(), sessionID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to clear cart"})
		return
	}

	c.JSON(http.StatusOK, snapshot)
}

// Checkout snapshots the cart into an order, then empties it. The order
// keeps the line items as JSON so the catalog can change afterwards
// without rewriting history.
func (h *CartHandler) Checkout(c *gin.Context) {
	sessionID := middleware.GetSessionID(c)
	ctx := c.Request.Context()

	snapshot := h.carts.Get(ctx, sessionID)
	if len(snapshot.Items) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Cart is empty"})
		return
	}

	items, err := json.Marshal(snapshot.Items)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create order"})
		return
	}

	order := &models.Order{
		ID:         uuid.NewString(),
		SessionID:  sessionID,
		Items:      items,
		TotalItems: snapshot.TotalItems,
		TotalPrice: snapshot.TotalPrice,
		Status:     models.OrderStatusPending,
	}
	if userID, exists := c.Get("user_id"); exists {
		id := userID.(int)
		order.UserID = &id
	}

	if err := h.orderQueries.CreateOrder(order); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create order"})
		return
	}

	if err := h.carts.Checkout(ctx, sessionID); err != nil {
		h.log.WithError(err).WithField("order", order.ID).Warn("failed to clear cart after checkout")
	}

	c.JSON(http.StatusCreated, models.CheckoutResponse{
		OrderID:    order.ID,
		TotalItems: order.TotalItems,
		TotalPrice: order.TotalPrice,
		Status:     order.Status,
	})
}

func (h *CartHandler) ListOrders(c *gin.Context) {
	sessionID := middleware.GetSessionID(c)

	orders, err := h.orderQueries.ListOrdersBySession(sessionID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list orders"})
		return
	}

	c.JSON(http.StatusOK, models.OrderListResponse{Orders: orders, Total: len(orders)})
}
