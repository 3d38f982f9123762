package pricing

import (
	"math"

	"catalog-admin/internal/models"
)

// Pricing constants applied to every order.
const (
	TaxRate      = 0.08
	ShippingFlat = 10.00
)

// Summary is the monetary breakdown of an order at submission time.
type Summary struct {
	Subtotal float64 `json:"subtotal"`
	Tax      float64 `json:"tax"`
	Shipping float64 `json:"shipping"`
	Total    float64 `json:"total"`
}

// Quote computes the order summary for the given line items against the
// current catalog. A line item whose product is not in the catalog
// contributes zero to the subtotal; it is not an error. The function is
// pure: the same catalog and items always produce the same summary.
func Quote(catalog map[string]models.Product, items []models.LineItem) Summary {
	var subtotal float64
	for _, item := range items {
		product, ok := catalog[item.ProductID]
		if !ok {
			continue
		}
		subtotal += product.Price * float64(item.Quantity)
	}

	subtotal = round2(subtotal)
	tax := round2(subtotal * TaxRate)
	total := round2(subtotal + tax + ShippingFlat)

	return Summary{
		Subtotal: subtotal,
		Tax:      tax,
		Shipping: ShippingFlat,
		Total:    total,
	}
}

// round2 rounds half away from zero to two decimals.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
