package model

import "github.com/google/uuid"

type OrderPlaced struct {
	OrderID      uuid.UUID
	CustomerName string
	ItemCount    int
	Total        float64
}

func (e OrderPlaced) Type() string {
	return "OrderPlaced"
}

// ItemUnpriced is raised for a line item whose product id is absent from the
// catalog. The item stays in the order and contributes nothing to the subtotal.
type ItemUnpriced struct {
	OrderID   uuid.UUID
	ProductID string
	Qty       int
}

func (e ItemUnpriced) Type() string { return "ItemUnpriced" }
