package models

// LocationRequest reports the client's geolocation result. Denied marks an
// explicit permission refusal; coordinates are ignored in that case.
type LocationRequest struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Denied    bool    `json:"denied"`
}

type ThemeRequest struct {
	Theme string `json:"theme" binding:"required,oneof=light dark"`
}

// SystemThemeRequest reports the client's detected OS preference.
type SystemThemeRequest struct {
	SystemTheme string `json:"system_theme" binding:"required,oneof=light dark"`
}

type LanguageRequest struct {
	Language string `json:"language" binding:"required"`
}

type TranslateResponse struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

type ShopSelectionRequest struct {
	ShopID string `json:"shop_id" binding:"required"`
}
