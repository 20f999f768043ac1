package domain

import "time"

// Product is a catalog entry. Stock never drops below zero.
type Product struct {
	ID        string    `json:"id"`
	Name      string    `json:"nombre"`
	Stock     int       `json:"existencia"`
	Price     float64   `json:"precio"`
	CreatedAt time.Time `json:"creado"`
}

// ProductPatch lists the product fields an update may change.
type ProductPatch struct {
	Name  *string
	Stock *int
	Price *float64
}

func (p ProductPatch) Apply(pr *Product) {
	if p.Name != nil {
		pr.Name = *p.Name
	}
	if p.Stock != nil {
		pr.Stock = *p.Stock
	}
	if p.Price != nil {
		pr.Price = *p.Price
	}
}
