package schema

import (
	"strings"

	"catalog-admin/internal/models"

	"github.com/go-playground/validator/v10"
)

// ProductInput is raw product-creation form input. Numeric fields accept
// string or number; isActive defaults to true when absent.
type ProductInput struct {
	Name          string `json:"name"`
	SKU           string `json:"sku"`
	Category      string `json:"category"`
	Price         Number `json:"price"`
	StockQuantity Number `json:"stockQuantity"`
	Description   string `json:"description"`
	ImageURL      string `json:"imageUrl"`
	IsActive      *bool  `json:"isActive"`
}

type productValues struct {
	Name          string  `json:"name" validate:"required,min=2,max=100"`
	SKU           string  `json:"sku" validate:"required,min=3,max=20"`
	Category      string  `json:"category" validate:"required"`
	Price         float64 `json:"price" validate:"gt=0"`
	StockQuantity float64 `json:"stockQuantity" validate:"min=0"`
}

// ValidateProduct runs the product-creation schema against raw input.
// It returns a fully-typed product ready for the upstream payload, or
// FieldErrors naming every offending field. It performs no I/O.
func ValidateProduct(in ProductInput) (*models.Product, error) {
	vals := productValues{
		Name:          strings.TrimSpace(in.Name),
		SKU:           strings.ToUpper(strings.TrimSpace(in.SKU)),
		Category:      in.Category,
		Price:         in.Price.Value,
		StockQuantity: in.StockQuantity.Value,
	}

	var errs FieldErrors
	if err := validate.Struct(vals); err != nil {
		errs = translate(err, productMessage)
	}
	if vals.Category != "" && !models.ValidCategory(vals.Category) {
		errs = append(errs, FieldError{Field: "category", Message: "Invalid category"})
	}
	if in.StockQuantity.Set && !in.StockQuantity.Integral() {
		errs = append(errs, FieldError{Field: "stockQuantity", Message: "Stock quantity must be a whole number"})
	}
	if len(errs) > 0 {
		return nil, errs
	}

	isActive := true
	if in.IsActive != nil {
		isActive = *in.IsActive
	}

	return &models.Product{
		Name:          vals.Name,
		SKU:           vals.SKU,
		Category:      vals.Category,
		Price:         vals.Price,
		StockQuantity: int(vals.StockQuantity),
		Description:   in.Description,
		ImageURL:      in.ImageURL,
		IsActive:      isActive,
	}, nil
}

func productMessage(fe validator.FieldError) string {
	switch fe.Field() {
	case "name":
		if fe.Tag() == "max" {
			return "Product name must be at most 100 characters"
		}
		return "Product name must be at least 2 characters"
	case "sku":
		if fe.Tag() == "max" {
			return "SKU must be at most 20 characters"
		}
		return "SKU must be at least 3 characters"
	case "category":
		return "Category is required"
	case "price":
		return "Price must be positive"
	case "stockQuantity":
		return "Stock quantity cannot be negative"
	}
	return "Invalid value"
}
