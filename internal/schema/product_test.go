package schema

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func number(v float64) Number {
	return Number{Value: v, Set: true}
}

func TestValidateProduct(t *testing.T) {
	in := ProductInput{
		Name:          "Wireless Headphones",
		SKU:           "wh-001",
		Category:      "Electronics",
		Price:         number(129.99),
		StockQuantity: number(45),
		Description:   "Noise cancelling",
	}

	product, err := ValidateProduct(in)
	require.NoError(t, err)

	assert.Equal(t, "WH-001", product.SKU, "SKU should be stored upper-cased")
	assert.Equal(t, 129.99, product.Price)
	assert.Equal(t, 45, product.StockQuantity)
	assert.True(t, product.IsActive, "isActive should default to true")
}

func TestValidateProductUppercasesSKU(t *testing.T) {
	in := ProductInput{
		Name:     "Thing",
		SKU:      "ab-12",
		Category: "Toys",
		Price:    number(1),
	}

	product, err := ValidateProduct(in)
	require.NoError(t, err)
	assert.Equal(t, "AB-12", product.SKU)
}

func TestValidateProductRejectsNonPositivePrice(t *testing.T) {
	for _, price := range []float64{0, -1, -129.99} {
		in := ProductInput{
			Name:     "Thing",
			SKU:      "SKU-1",
			Category: "Toys",
			Price:    number(price),
		}

		_, err := ValidateProduct(in)
		require.Error(t, err)

		fieldErrs, ok := AsFieldErrors(err)
		require.True(t, ok)
		assert.Contains(t, fieldErrs, FieldError{Field: "price", Message: "Price must be positive"})
	}
}

func TestValidateProductRejectsBadSKULength(t *testing.T) {
	cases := map[string]string{
		"ab":                    "SKU must be at least 3 characters",
		"abcdefghijklmnopqrstu": "SKU must be at most 20 characters",
	}

	for sku, want := range cases {
		in := ProductInput{
			Name:     "Thing",
			SKU:      sku,
			Category: "Toys",
			Price:    number(1),
		}

		_, err := ValidateProduct(in)
		require.Error(t, err, "sku %q", sku)

		fieldErrs, _ := AsFieldErrors(err)
		assert.Contains(t, fieldErrs, FieldError{Field: "sku", Message: want})
	}
}

func TestValidateProductRejectsUnknownCategory(t *testing.T) {
	in := ProductInput{
		Name:     "Thing",
		SKU:      "SKU-1",
		Category: "Groceries",
		Price:    number(1),
	}

	_, err := ValidateProduct(in)
	require.Error(t, err)

	fieldErrs, _ := AsFieldErrors(err)
	assert.Contains(t, fieldErrs, FieldError{Field: "category", Message: "Invalid category"})
}

func TestValidateProductRejectsNegativeStock(t *testing.T) {
	in := ProductInput{
		Name:          "Thing",
		SKU:           "SKU-1",
		Category:      "Toys",
		Price:         number(1),
		StockQuantity: number(-3),
	}

	_, err := ValidateProduct(in)
	require.Error(t, err)

	fieldErrs, _ := AsFieldErrors(err)
	assert.Contains(t, fieldErrs, FieldError{Field: "stockQuantity", Message: "Stock quantity cannot be negative"})
}

func TestValidateProductExplicitInactive(t *testing.T) {
	inactive := false
	in := ProductInput{
		Name:     "Thing",
		SKU:      "SKU-1",
		Category: "Toys",
		Price:    number(1),
		IsActive: &inactive,
	}

	product, err := ValidateProduct(in)
	require.NoError(t, err)
	assert.False(t, product.IsActive)
}

func TestProductInputCoercesNumericStrings(t *testing.T) {
	payload := `{"name":"Thing","sku":"sku-9","category":"Books","price":"19.99","stockQuantity":"4"}`

	var in ProductInput
	require.NoError(t, json.Unmarshal([]byte(payload), &in))

	product, err := ValidateProduct(in)
	require.NoError(t, err)
	assert.Equal(t, 19.99, product.Price)
	assert.Equal(t, 4, product.StockQuantity)
	assert.Equal(t, "SKU-9", product.SKU)
}
