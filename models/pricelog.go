package models

// PriceLog is an append-only audit record of a product price change.
type PriceLog struct {
	ProductID   string `json:"product_id"`
	ProductName string `json:"product_name"`
	OldPrice    string `json:"old_price"`
	NewPrice    string `json:"new_price"`
	UpdatedBy   string `json:"updated_by"`
	Timestamp   string `json:"timestamp"`
}
