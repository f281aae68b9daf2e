package models

// CartAddRequest adds a product to the session's cart. The product is
// resolved server-side so the stored line carries a snapshot of the
// catalog record at add time.
type CartAddRequest struct {
	ProductID string `json:"product_id" binding:"required"`
	Quantity  int    `json:"quantity"`
}

// CartUpdateRequest replaces a line's quantity. Zero removes the line.
type CartUpdateRequest struct {
	Quantity int `json:"quantity"`
}

type CartCountResponse struct {
	Count int `json:"count"`
}
