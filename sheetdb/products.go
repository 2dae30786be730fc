package sheetdb

import (
	"context"
	"strconv"
	"time"

	"sweetshop/models"
)

func productFromRow(r row) models.Product {
	stock, _ := strconv.Atoi(r.values["stock"])
	return models.Product{
		ID:          r.values["id"],
		Name:        r.values["name"],
		Category:    r.values["category"],
		Stock:       stock,
		ImageURL:    r.values["image_url"],
		Description: r.values["description"],
		Price:       r.values["price"],
	}
}

func (s *sheetStore) GetProducts(ctx context.Context) ([]models.Product, error) {
	rows, err := s.api.readSheet(ctx, sheetProducts)
	if err != nil {
		return nil, err
	}
	products := make([]models.Product, 0, len(rows))
	for _, r := range rows {
		products = append(products, productFromRow(r))
	}
	return products, nil
}

func (s *sheetStore) findProductRow(ctx context.Context, id string) (row, error) {
	rows, err := s.api.readSheet(ctx, sheetProducts)
	if err != nil {
		return row{}, err
	}
	for _, r := range rows {
		if r.values["id"] == id {
			return r, nil
		}
	}
	return row{}, ErrNotFound
}

func (s *sheetStore) GetProduct(ctx context.Context, id string) (models.Product, error) {
	r, err := s.findProductRow(ctx, id)
	if err != nil {
		return models.Product{}, err
	}
	return productFromRow(r), nil
}

func (s *sheetStore) CreateProduct(ctx context.Context, product models.Product) error {
	return s.api.appendRow(ctx, sheetProducts, map[string]string{
		"id":          product.ID,
		"name":        product.Name,
		"category":    product.Category,
		"stock":       strconv.Itoa(product.Stock),
		"image_url":   product.ImageURL,
		"description": product.Description,
		"price":       product.Price,
	})
}

// UpdateProduct overwrites the stored row with the given fields. An empty
// ImageURL keeps the existing image. A price change is recorded in the
// PriceLogs audit sheet before the row is saved.
func (s *sheetStore) UpdateProduct(ctx context.Context, product models.Product, updatedBy string) error {
	r, err := s.findProductRow(ctx, product.ID)
	if err != nil {
		return err
	}

	oldPrice := r.values["price"]
	if oldPrice != product.Price {
		entry := models.PriceLog{
			ProductID:   product.ID,
			ProductName: product.Name,
			OldPrice:    oldPrice,
			NewPrice:    product.Price,
			UpdatedBy:   updatedBy,
			Timestamp:   now().UTC().Format(time.RFC3339),
		}
		if err := s.LogPriceChange(ctx, entry); err != nil {
			// Audit failure should not block the update itself.
			logPriceAuditFailure(product.ID, err)
		}
	}

	r.values["name"] = product.Name
	r.values["category"] = product.Category
	r.values["description"] = product.Description
	r.values["price"] = product.Price
	if product.ImageURL != "" {
		r.values["image_url"] = product.ImageURL
	}
	return s.api.updateRow(ctx, sheetProducts, r)
}

func (s *sheetStore) DeleteProduct(ctx context.Context, id string) error {
	r, err := s.findProductRow(ctx, id)
	if err != nil {
		return err
	}
	return s.api.deleteRow(ctx, sheetProducts, r.index)
}
