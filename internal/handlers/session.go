package handlers

import (
	"net/http"

	"halvi-backend/internal/middleware"
	"halvi-backend/internal/models"
	"halvi-backend/internal/session"

	"github.com/gin-gonic/gin"
)

// SessionHandler exposes the per-session preference state: location,
// shop selection, theme, and language.
type SessionHandler struct {
	location *session.LocationProvider
	shops    *session.ShopSelection
	themes   *session.ThemeProvider
	language *session.LanguageProvider
}

func NewSessionHandler(location *session.LocationProvider, shops *session.ShopSelection, themes *session.ThemeProvider, language *session.LanguageProvider) *SessionHandler {
	return &SessionHandler{
		location: location,
		shops:    shops,
		themes:   themes,
		language: language,
	}
}

func (h *SessionHandler) GetLocation(c *gin.Context) {
	sessionID := middleware.GetSessionID(c)
	c.JSON(http.StatusOK, h.location.Current(c.Request.Context(), sessionID))
}

// RequestLocation records the client's geolocation result. A denied
// permission disables location for the session instead of failing.
func (h *SessionHandler) RequestLocation(c *gin.Context) {
	sessionID := middleware.GetSessionID(c)

	var req models.LocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	state := h.location.Request(c.Request.Context(), sessionID, req.Latitude, req.Longitude, req.Denied)
	c.JSON(http.StatusOK, state)
}

func (h *SessionHandler) GetMainShop(c *gin.Context) {
	sessionID := middleware.GetSessionID(c)

	shop := h.shops.MainShop(c.Request.Context(), sessionID)
	if shop == nil {
		c.JSON(http.StatusOK, gin.H{"shop": nil})
		return
	}

	c.JSON(http.StatusOK, gin.H{"shop": shop})
}

func (h *SessionHandler) SetMainShop(c *gin.Context) {
	sessionID := middleware.GetSessionID(c)

	var req models.ShopSelectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	shop, err := h.shops.SetMainShop(c.Request.Context(), sessionID, req.ShopID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Shop not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"shop": shop})
}

func (h *SessionHandler) ClearMainShop(c *gin.Context) {
	sessionID := middleware.GetSessionID(c)

	if err := h.shops.ClearMainShop(c.Request.Context(), sessionID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to clear main shop"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"shop": nil})
}

func (h *SessionHandler) GetSelectedShops(c *gin.Context) {
	sessionID := middleware.GetSessionID(c)

	shops := h.shops.SelectedShops(c.Request.Context(), sessionID)
	c.JSON(http.StatusOK, gin.H{"shops": shops, "total": len(shops)})
}

func (h *SessionHandler) SelectShop(c *gin.Context) {
	sessionID := middleware.GetSessionID(c)

	var req models.ShopSelectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	shops, err := h.shops.SelectShop(c.Request.Context(), sessionID, req.ShopID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Shop not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"shops": shops, "total": len(shops)})
}

func (h *SessionHandler) DeselectShop(c *gin.Context) {
	sessionID := middleware.GetSessionID(c)

	shops, err := h.shops.DeselectShop(c.Request.Context(), sessionID, c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update selection"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"shops": shops, "total": len(shops)})
}

func (h *SessionHandler) GetTheme(c *gin.Context) {
	sessionID := middleware.GetSessionID(c)
	c.JSON(http.StatusOK, h.themes.State(c.Request.Context(), sessionID))
}

func (h *SessionHandler) SetTheme(c *gin.Context) {
	sessionID := middleware.GetSessionID(c)

	var req models.ThemeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	state, err := h.themes.SetTheme(c.Request.Context(), sessionID, req.Theme)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save theme"})
		return
	}

	c.JSON(http.StatusOK, state)
}

func (h *SessionHandler) ClearTheme(c *gin.Context) {
	sessionID := middleware.GetSessionID(c)

	state, err := h.themes.ClearTheme(c.Request.Context(), sessionID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to clear theme"})
		return
	}

	c.JSON(http.StatusOK, state)
}

func (h *SessionHandler) ReportSystemTheme(c *gin.Context) {
	sessionID := middleware.GetSessionID(c)

	var req models.SystemThemeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.themes.ReportSystemTheme(c.Request.Context(), sessionID, req.SystemTheme); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save system theme"})
		return
	}
	c.JSON(http.StatusOK, h.themes.State(c.Request.Context(), sessionID))
}

func (h *SessionHandler) GetLanguage(c *gin.Context) {
	sessionID := middleware.GetSessionID(c)
	c.JSON(http.StatusOK, h.language.State(c.Request.Context(), sessionID))
}

func (h *SessionHandler) SetLanguage(c *gin.Context) {
	sessionID := middleware.GetSessionID(c)

	var req models.LanguageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	state, err := h.language.SetLanguage(c.Request.Context(), sessionID, req.Language)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unsupported language"})
		return
	}

	c.JSON(http.StatusOK, state)
}

func (h *SessionHandler) GetLanguages(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"languages": h.language.Languages()})
}

func (h *SessionHandler) Translate(c *gin.Context) {
	sessionID := middleware.GetSessionID(c)
	key := c.Param("key")

	c.JSON(http.StatusOK, models.TranslateResponse{
		Key:   key,
		Value: h.language.Translate(c.Request.Context(), sessionID, key),
	})
}
