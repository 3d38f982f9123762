package models

import "time"

// Audit event types
const (
	EventTypeProductCreated = "PRODUCT_CREATED"
	EventTypeProductUpdated = "PRODUCT_UPDATED"
	EventTypeProductDeleted = "PRODUCT_DELETED"
	EventTypeOrderSubmitted = "ORDER_SUBMITTED"
)

// BaseEvent contains common fields for all events
type BaseEvent struct {
	EventID   string    `json:"event_id"`
	EventType string    `json:"event_type"`
	Timestamp time.Time `json:"timestamp"`
}

// ProductEvent published when a product is created, updated or deleted
type ProductEvent struct {
	BaseEvent
	ProductID string `json:"product_id"`
	SKU       string `json:"sku,omitempty"`
	Name      string `json:"name,omitempty"`
	IsActive  *bool  `json:"is_active,omitempty"`
}

// OrderSubmittedEvent published when an order is submitted upstream
type OrderSubmittedEvent struct {
	BaseEvent
	OrderID     string     `json:"order_id"`
	ClientName  string     `json:"client_name"`
	TotalAmount float64    `json:"total_amount"`
	Items       []LineItem `json:"items"`
}

// EntityFor maps an event type to the entity it concerns.
func EntityFor(eventType string) string {
	switch eventType {
	case EventTypeOrderSubmitted:
		return "order"
	default:
		return "product"
	}
}
