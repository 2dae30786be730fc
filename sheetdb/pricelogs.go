package sheetdb

import (
	"context"
	"log"

	"sweetshop/models"
)

var priceLogColumns = []string{"product_id", "product_name", "old_price", "new_price", "updated_by", "timestamp"}

// LogPriceChange appends one audit row; the PriceLogs sheet is created on
// first use.
func (s *sheetStore) LogPriceChange(ctx context.Context, entry models.PriceLog) error {
	if err := s.api.ensureSheet(ctx, sheetPriceLogs, priceLogColumns); err != nil {
		return err
	}
	return s.api.appendRow(ctx, sheetPriceLogs, map[string]string{
		"product_id":   entry.ProductID,
		"product_name": entry.ProductName,
		"old_price":    entry.OldPrice,
		"new_price":    entry.NewPrice,
		"updated_by":   entry.UpdatedBy,
		"timestamp":    entry.Timestamp,
	})
}

func logPriceAuditFailure(productID string, err error) {
	log.Printf("[DB] failed to log price change for product %s: %v", productID, err)
}
