package model

import "github.com/pkg/errors"

var (
	ErrCatalogNotFound = errors.New("catalog not found")
	ErrCatalogRead     = errors.New("catalog read failed")
)

type Product struct {
	ID             string  `json:"id"`
	Name           string  `json:"name,omitempty"`
	Title          string  `json:"title,omitempty"`
	Price          float64 `json:"price"`
	CompareAtPrice float64 `json:"compare_at_price,omitempty"`
	Stock          int     `json:"stock,omitempty"`
	ImageURL       string  `json:"image_url,omitempty"`
	Category       string  `json:"category,omitempty"`
}

// Catalog is the document layout of the product file.
type Catalog struct {
	Products []Product `json:"products"`
}

// IndexProducts maps product ids to products. A later duplicate replaces an earlier one.
func IndexProducts(products []Product) map[string]Product {
	index := make(map[string]Product, len(products))
	for _, p := range products {
		index[p.ID] = p
	}
	return index
}
