package pricing

import (
	"testing"

	"catalog-admin/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestQuote(t *testing.T) {
	catalog := map[string]models.Product{
		"1": {ID: "1", Price: 10.00},
		"2": {ID: "2", Price: 5.00},
	}

	items := []models.LineItem{
		{ProductID: "1", Quantity: 2},
		{ProductID: "2", Quantity: 3},
	}

	summary := Quote(catalog, items)

	assert.Equal(t, 35.00, summary.Subtotal)
	assert.Equal(t, 2.80, summary.Tax)
	assert.Equal(t, 10.00, summary.Shipping)
	assert.Equal(t, 47.80, summary.Total)
}

func TestQuoteEmptyItems(t *testing.T) {
	catalog := map[string]models.Product{
		"1": {ID: "1", Price: 10.00},
	}

	summary := Quote(catalog, nil)

	assert.Zero(t, summary.Subtotal)
	assert.Zero(t, summary.Tax)
	assert.Equal(t, ShippingFlat, summary.Shipping)
	assert.Equal(t, ShippingFlat, summary.Total)
}

func TestQuoteUnknownProductContributesZero(t *testing.T) {
	catalog := map[string]models.Product{
		"1": {ID: "1", Price: 10.00},
	}

	items := []models.LineItem{
		{ProductID: "1", Quantity: 1},
		{ProductID: "missing", Quantity: 99},
	}

	summary := Quote(catalog, items)

	assert.Equal(t, 10.00, summary.Subtotal)
	assert.Equal(t, 0.80, summary.Tax)
	assert.Equal(t, 20.80, summary.Total)
}

func TestQuoteTotalIsSumOfParts(t *testing.T) {
	catalog := map[string]models.Product{
		"a": {ID: "a", Price: 129.99},
		"b": {ID: "b", Price: 249.99},
	}

	items := []models.LineItem{
		{ProductID: "a", Quantity: 3},
		{ProductID: "b", Quantity: 1},
	}

	summary := Quote(catalog, items)

	assert.Equal(t, 639.96, summary.Subtotal)
	assert.InDelta(t, summary.Subtotal+summary.Tax+summary.Shipping, summary.Total, 0.001)
}

func TestQuoteDeterministic(t *testing.T) {
	catalog := map[string]models.Product{
		"1": {ID: "1", Price: 19.99},
	}
	items := []models.LineItem{{ProductID: "1", Quantity: 7}}

	first := Quote(catalog, items)
	for i := 0; i < 100; i++ {
		assert.Equal(t, first, Quote(catalog, items))
	}
}
