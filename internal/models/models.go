package models

import "time"

// Product represents a catalog product as stored by the upstream service.
// ID and CreatedAt are assigned upstream on creation; SKU is stored upper-cased.
type Product struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	SKU           string    `json:"sku"`
	Category      string    `json:"category"`
	Price         float64   `json:"price"`
	StockQuantity int       `json:"stockQuantity"`
	Description   string    `json:"description,omitempty"`
	ImageURL      string    `json:"imageUrl,omitempty"`
	IsActive      bool      `json:"isActive"`
	CreatedAt     time.Time `json:"createdAt,omitempty"`
}

// LineItem is a (productId, quantity) pair within an order.
type LineItem struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

// Order represents a customer order as stored by the upstream service.
// TotalAmount, Tax and ShippingCost are computed at submission time and are
// not independently editable.
type Order struct {
	ID                   string     `json:"id"`
	OrderID              string     `json:"orderId,omitempty"`
	Items                []LineItem `json:"products"`
	ClientName           string     `json:"clientName"`
	DeliveryAddress      string     `json:"deliveryAddress"`
	PaymentStatus        string     `json:"paymentStatus"`
	DeliveryStatus       string     `json:"deliveryStatus"`
	ExpectedDeliveryDate time.Time  `json:"expectedDeliveryDate"`
	TotalAmount          float64    `json:"totalAmount"`
	Tax                  float64    `json:"tax"`
	ShippingCost         float64    `json:"shippingCost"`
	PaymentMethod        string     `json:"paymentMethod,omitempty"`
	CreatedAt            time.Time  `json:"createdAt,omitempty"`
}

// Payment statuses
const (
	PaymentStatusPaid     = "paid"
	PaymentStatusPending  = "pending"
	PaymentStatusRefunded = "refunded"
)

// Delivery statuses
const (
	DeliveryStatusPending   = "pending"
	DeliveryStatusShipped   = "shipped"
	DeliveryStatusDelivered = "delivered"
	DeliveryStatusCanceled  = "canceled"
)

// PaymentMethodDefault is sent with every submitted order.
const PaymentMethodDefault = "credit_card"

// ProductCategories is the closed set of valid product categories.
var ProductCategories = []string{
	"Electronics",
	"Furniture",
	"Clothing",
	"Books",
	"Toys",
	"Sports",
	"Home & Kitchen",
	"Beauty",
	"Automotive",
}

// ValidCategory reports whether c is one of ProductCategories.
func ValidCategory(c string) bool {
	for _, v := range ProductCategories {
		if v == c {
			return true
		}
	}
	return false
}

// AuditRecord is a persisted admin action, written by the audit worker.
type AuditRecord struct {
	ID        int64     `db:"id" json:"id"`
	EventID   string    `db:"event_id" json:"event_id"`
	EventType string    `db:"event_type" json:"event_type"`
	Entity    string    `db:"entity" json:"entity"`
	EntityID  string    `db:"entity_id" json:"entity_id"`
	Payload   []byte    `db:"payload" json:"payload,omitempty"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}
