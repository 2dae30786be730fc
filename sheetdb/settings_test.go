package sheetdb

import (
	"context"
	"testing"

	"sweetshop/models"
)

func TestShopSettingsUpsert(t *testing.T) {
	api := newFakeAPI()
	store := &sheetStore{api: api}
	ctx := context.Background()

	// Reading before any save creates the sheet and returns empties.
	settings, err := store.GetShopSettings(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if settings.Name != "" {
		t.Errorf("expected empty settings, got %+v", settings)
	}

	want := models.ShopSettings{
		Name:    "Sharma Sweets",
		Address: "12 MG Road, Pune",
		Contact: "+91 9000000000",
		GSTIN:   "27AAAAA0000A1Z5",
	}
	if err := store.SaveShopSettings(ctx, want); err != nil {
		t.Fatal(err)
	}

	got, err := store.GetShopSettings(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if got != want {
		t.Errorf("round trip mismatch: got %+v want %+v", got, want)
	}

	// Saving again updates rows in place instead of appending duplicates.
	want.Contact = "+91 9111111111"
	if err := store.SaveShopSettings(ctx, want); err != nil {
		t.Fatal(err)
	}
	if rows := len(api.sheets[sheetSettings].rows); rows != 4 {
		t.Errorf("expected 4 key/value rows, got %d", rows)
	}
	got, _ = store.GetShopSettings(ctx)
	if got.Contact != "+91 9111111111" {
		t.Errorf("contact not updated: %+v", got)
	}
}
