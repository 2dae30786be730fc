package models

// ShopSettings is the singleton shop identity block printed on invoices.
type ShopSettings struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	Contact string `json:"contact"`
	GSTIN   string `json:"gstin"`
}
