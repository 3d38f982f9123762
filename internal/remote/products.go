package remote

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"catalog-admin/internal/models"
)

// ProductFilters narrows a product listing. Zero-valued filters are omitted
// from the query string entirely, never sent empty.
type ProductFilters struct {
	Category string
	Active   *bool
	Page     int
	Limit    int
}

func (f ProductFilters) query() url.Values {
	q := url.Values{}
	appendIfSet(q, "category", f.Category)
	if f.Active != nil {
		q.Set("active", strconv.FormatBool(*f.Active))
	}
	appendIfPositive(q, "page", f.Page)
	appendIfPositive(q, "limit", f.Limit)
	return q
}

// ListProducts fetches products matching the filters.
func (c *Client) ListProducts(ctx context.Context, filters ProductFilters) ([]models.Product, error) {
	var products []models.Product
	if err := c.do(ctx, http.MethodGet, "/products", "/products", filters.query(), nil, &products); err != nil {
		return nil, fmt.Errorf("failed to fetch products: %w", err)
	}
	return products, nil
}

// GetProduct fetches a single product by ID.
func (c *Client) GetProduct(ctx context.Context, id string) (*models.Product, error) {
	var product models.Product
	err := c.do(ctx, http.MethodGet, "/products/"+id, "/products/{id}", nil, nil, &product)
	if errors.Is(err, ErrNotFound) {
		return nil, fmt.Errorf("product not found: %w", err)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch product: %w", err)
	}
	return &product, nil
}

// CreateProduct creates a product upstream and returns the created record
// with its assigned ID and creation timestamp.
func (c *Client) CreateProduct(ctx context.Context, product *models.Product) (*models.Product, error) {
	var created models.Product
	if err := c.do(ctx, http.MethodPost, "/products", "/products", nil, product, &created); err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}
	return &created, nil
}

// UpdateProduct replaces the full product record upstream.
func (c *Client) UpdateProduct(ctx context.Context, id string, product *models.Product) (*models.Product, error) {
	var updated models.Product
	err := c.do(ctx, http.MethodPut, "/products/"+id, "/products/{id}", nil, product, &updated)
	if errors.Is(err, ErrNotFound) {
		return nil, fmt.Errorf("product not found: %w", err)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update product: %w", err)
	}
	return &updated, nil
}

// DeleteProduct deletes a product upstream. The upstream guarantees no
// response body beyond the status.
func (c *Client) DeleteProduct(ctx context.Context, id string) error {
	if err := c.do(ctx, http.MethodDelete, "/products/"+id, "/products/{id}", nil, nil, nil); err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}
	return nil
}
