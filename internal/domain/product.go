package domain

import "time"

// Product is a plain catalog product served by the external product API.
type Product struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Summary     string    `json:"summary"`
	Price       Money     `json:"price"`
	Currency    string    `json:"currency"`
	Images      []string  `json:"images"`
	Category    string    `json:"category"`
	Stock       int       `json:"stock"`
	SKU         string    `json:"sku"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type ProductFilter struct {
	Category string
	MinPrice string
	MaxPrice string
	Search   string
	Sort     string
	Page     int
	Limit    int
}

type ProductPage struct {
	Products []Product `json:"products"`
	Total    int       `json:"total"`
	Page     int       `json:"page"`
	Limit    int       `json:"limit"`
	HasMore  bool      `json:"has_more"`
}

// CartItem builds the plain cart line for the product.
func (p *Product) CartItem() CartItem {
	it := CartItem{ID: p.ID, Name: p.Name, UnitPrice: p.Price, Quantity: 1}
	if len(p.Images) > 0 {
		it.Image = p.Images[0]
	}
	return it
}
