package schema

import (
	"strconv"
	"strings"
	"time"

	"catalog-admin/internal/models"

	"github.com/go-playground/validator/v10"
)

// LineItemInput is a raw (productId, quantity) pair; quantity accepts
// string or number.
type LineItemInput struct {
	ProductID string `json:"productId"`
	Quantity  Number `json:"quantity"`
}

// OrderInput is raw order-creation form input.
type OrderInput struct {
	Items                []LineItemInput `json:"products"`
	ClientName           string          `json:"clientName"`
	DeliveryAddress      string          `json:"deliveryAddress"`
	PaymentStatus        string          `json:"paymentStatus"`
	DeliveryStatus       string          `json:"deliveryStatus"`
	ExpectedDeliveryDate *time.Time      `json:"expectedDeliveryDate"`
}

// OrderValues is the typed result of a successful order validation.
// Totals are not part of the schema; they are derived at submission time.
type OrderValues struct {
	Items                []models.LineItem
	ClientName           string
	DeliveryAddress      string
	PaymentStatus        string
	DeliveryStatus       string
	ExpectedDeliveryDate time.Time
}

type lineItemValues struct {
	ProductID string `json:"productId" validate:"required"`
	Quantity  int    `json:"quantity" validate:"gt=0"`
}

type orderValues struct {
	Items                []lineItemValues `json:"products" validate:"min=1,dive"`
	ClientName           string           `json:"clientName" validate:"required,min=2"`
	DeliveryAddress      string           `json:"deliveryAddress" validate:"required,min=5"`
	PaymentStatus        string           `json:"paymentStatus" validate:"oneof=paid pending refunded"`
	DeliveryStatus       string           `json:"deliveryStatus" validate:"oneof=pending shipped delivered canceled"`
	ExpectedDeliveryDate time.Time        `json:"expectedDeliveryDate" validate:"required"`
}

// ValidateOrder runs the order-creation schema against raw input. It must be
// called before any upstream request is issued; a failure blocks submission.
func ValidateOrder(in OrderInput) (*OrderValues, error) {
	vals := orderValues{
		Items:           make([]lineItemValues, len(in.Items)),
		ClientName:      strings.TrimSpace(in.ClientName),
		DeliveryAddress: strings.TrimSpace(in.DeliveryAddress),
		PaymentStatus:   in.PaymentStatus,
		DeliveryStatus:  in.DeliveryStatus,
	}
	if in.ExpectedDeliveryDate != nil {
		vals.ExpectedDeliveryDate = *in.ExpectedDeliveryDate
	}

	var errs FieldErrors
	for i, item := range in.Items {
		vals.Items[i] = lineItemValues{
			ProductID: item.ProductID,
			Quantity:  int(item.Quantity.Value),
		}
		if item.Quantity.Set && !item.Quantity.Integral() {
			errs = append(errs, FieldError{
				Field:   "products[" + strconv.Itoa(i) + "].quantity",
				Message: "Quantity must be a whole number",
			})
		}
	}

	if err := validate.Struct(vals); err != nil {
		errs = append(errs, translate(err, orderMessage)...)
	}
	if len(errs) > 0 {
		return nil, errs
	}

	items := make([]models.LineItem, len(vals.Items))
	for i, item := range vals.Items {
		items[i] = models.LineItem{ProductID: item.ProductID, Quantity: item.Quantity}
	}

	return &OrderValues{
		Items:                items,
		ClientName:           vals.ClientName,
		DeliveryAddress:      vals.DeliveryAddress,
		PaymentStatus:        vals.PaymentStatus,
		DeliveryStatus:       vals.DeliveryStatus,
		ExpectedDeliveryDate: vals.ExpectedDeliveryDate,
	}, nil
}

func orderMessage(fe validator.FieldError) string {
	switch fe.Field() {
	case "products":
		return "At least one product must be selected"
	case "productId":
		return "Product is required"
	case "quantity":
		return "Quantity must be positive"
	case "clientName":
		return "Client name must be at least 2 characters"
	case "deliveryAddress":
		return "Please provide a valid delivery address"
	case "paymentStatus":
		return "Invalid payment status"
	case "deliveryStatus":
		return "Invalid delivery status"
	case "expectedDeliveryDate":
		return "Expected delivery date is required"
	}
	return "Invalid value"
}
