package models

type Product struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Category    string `json:"category"`
	Stock       int    `json:"stock"`
	ImageURL    string `json:"image_url"`
	Description string `json:"description"`
	Price       string `json:"price"`
}
