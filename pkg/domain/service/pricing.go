package service

import "github.com/Kraftvoll1/lojinha/pkg/domain/model"

const (
	FreeShippingThreshold = 199.0
	FlatShippingRate      = 19.9
)

// Subtotal sums price*qty over items. Items whose id is missing from the
// catalog add nothing and are returned as unpriced.
func Subtotal(items []model.LineItem, catalog map[string]model.Product) (float64, []model.LineItem) {
	var (
		subtotal float64
		unpriced []model.LineItem
	)
	for _, item := range items {
		product, ok := catalog[item.ID]
		if !ok {
			unpriced = append(unpriced, item)
			continue
		}
		subtotal += product.Price * float64(item.Qty)
	}
	return subtotal, unpriced
}

func Shipping(subtotal float64) float64 {
	switch {
	case subtotal >= FreeShippingThreshold:
		return 0
	case subtotal > 0:
		return FlatShippingRate
	default:
		return 0
	}
}

func Price(items []model.LineItem, catalog map[string]model.Product) (model.Totals, []model.LineItem) {
	subtotal, unpriced := Subtotal(items, catalog)
	shipping := Shipping(subtotal)
	return model.Totals{
		Subtotal: subtotal,
		Shipping: shipping,
		Total:    subtotal + shipping,
	}, unpriced
}
