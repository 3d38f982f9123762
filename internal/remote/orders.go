package remote

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"catalog-admin/internal/models"
)

// OrderFilters narrows an order listing. Zero-valued filters are omitted
// from the query string.
type OrderFilters struct {
	PaymentStatus  string
	DeliveryStatus string
	Page           int
	Limit          int
}

func (f OrderFilters) query() url.Values {
	q := url.Values{}
	appendIfSet(q, "paymentStatus", f.PaymentStatus)
	appendIfSet(q, "deliveryStatus", f.DeliveryStatus)
	appendIfPositive(q, "page", f.Page)
	appendIfPositive(q, "limit", f.Limit)
	return q
}

// ListOrders fetches orders matching the filters.
func (c *Client) ListOrders(ctx context.Context, filters OrderFilters) ([]models.Order, error) {
	var orders []models.Order
	if err := c.do(ctx, http.MethodGet, "/orders", "/orders", filters.query(), nil, &orders); err != nil {
		return nil, fmt.Errorf("failed to fetch orders: %w", err)
	}
	return orders, nil
}

// GetOrder fetches a single order by ID.
func (c *Client) GetOrder(ctx context.Context, id string) (*models.Order, error) {
	var order models.Order
	err := c.do(ctx, http.MethodGet, "/orders/"+id, "/orders/{id}", nil, nil, &order)
	if errors.Is(err, ErrNotFound) {
		return nil, fmt.Errorf("order not found: %w", err)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch order: %w", err)
	}
	return &order, nil
}

// CreateOrder submits an order upstream and returns the created record.
func (c *Client) CreateOrder(ctx context.Context, order *models.Order) (*models.Order, error) {
	var created models.Order
	if err := c.do(ctx, http.MethodPost, "/orders", "/orders", nil, order, &created); err != nil {
		return nil, fmt.Errorf("failed to create order: %w", err)
	}
	return &created, nil
}

// UpdateOrder replaces the full order record upstream.
func (c *Client) UpdateOrder(ctx context.Context, id string, order *models.Order) (*models.Order, error) {
	var updated models.Order
	err := c.do(ctx, http.MethodPut, "/orders/"+id, "/orders/{id}", nil, order, &updated)
	if errors.Is(err, ErrNotFound) {
		return nil, fmt.Errorf("order not found: %w", err)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update order: %w", err)
	}
	return &updated, nil
}

// DeleteOrder deletes an order upstream.
func (c *Client) DeleteOrder(ctx context.Context, id string) error {
	if err := c.do(ctx, http.MethodDelete, "/orders/"+id, "/orders/{id}", nil, nil, nil); err != nil {
		return fmt.Errorf("failed to delete order: %w", err)
	}
	return nil
}
