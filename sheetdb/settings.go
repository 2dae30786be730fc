package sheetdb

import (
	"context"

	"sweetshop/models"
)

var settingsColumns = []string{"key", "value"}

// GetShopSettings reads the key/value Settings sheet into the singleton
// settings struct. Missing keys come back empty.
func (s *sheetStore) GetShopSettings(ctx context.Context) (models.ShopSettings, error) {
	if err := s.api.ensureSheet(ctx, sheetSettings, settingsColumns); err != nil {
		return models.ShopSettings{}, err
	}

	rows, err := s.api.readSheet(ctx, sheetSettings)
	if err != nil {
		return models.ShopSettings{}, err
	}

	kv := make(map[string]string, len(rows))
	for _, r := range rows {
		kv[r.values["key"]] = r.values["value"]
	}
	return models.ShopSettings{
		Name:    kv["name"],
		Address: kv["address"],
		Contact: kv["contact"],
		GSTIN:   kv["gstin"],
	}, nil
}

// SaveShopSettings upserts each settings key in place.
func (s *sheetStore) SaveShopSettings(ctx context.Context, settings models.ShopSettings) error {
	if err := s.api.ensureSheet(ctx, sheetSettings, settingsColumns); err != nil {
		return err
	}

	rows, err := s.api.readSheet(ctx, sheetSettings)
	if err != nil {
		return err
	}

	byKey := make(map[string]row, len(rows))
	for _, r := range rows {
		byKey[r.values["key"]] = r
	}

	pairs := map[string]string{
		"name":    settings.Name,
		"address": settings.Address,
		"contact": settings.Contact,
		"gstin":   settings.GSTIN,
	}
	for _, key := range []string{"name", "address", "contact", "gstin"} {
		value := pairs[key]
		if r, ok := byKey[key]; ok {
			r.values["value"] = value
			if err := s.api.updateRow(ctx, sheetSettings, r); err != nil {
				return err
			}
			continue
		}
		if err := s.api.appendRow(ctx, sheetSettings, map[string]string{"key": key, "value": value}); err != nil {
			return err
		}
	}
	return nil
}
