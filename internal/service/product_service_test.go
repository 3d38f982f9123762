package service

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"catalog-admin/internal/models"
	"catalog-admin/internal/remote"
	"catalog-admin/internal/schema"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func price(v float64) schema.Number {
	return schema.Number{Value: v, Set: true}
}

func TestCreateProduct(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/products", r.URL.Path)

		var product models.Product
		require.NoError(t, json.NewDecoder(r.Body).Decode(&product))
		product.ID = "99"
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(product)
	}))
	defer srv.Close()

	svc := NewProductService(remote.NewClient(srv.URL, 5*time.Second), nil, nil)

	created, err := svc.Create(context.Background(), schema.ProductInput{
		Name:          "Desk Lamp",
		SKU:           "dl-100",
		Category:      "Furniture",
		Price:         price(39.99),
		StockQuantity: price(12),
	})
	require.NoError(t, err)

	assert.Equal(t, "99", created.ID)
	assert.Equal(t, "DL-100", created.SKU, "SKU upper-cased before submission")
	assert.True(t, created.IsActive)
}

func TestCreateProductValidationFailureSkipsUpstream(t *testing.T) {
	var calls int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(&calls, 1)
	}))
	defer srv.Close()

	svc := NewProductService(remote.NewClient(srv.URL, 5*time.Second), nil, nil)

	_, err := svc.Create(context.Background(), schema.ProductInput{
		Name:     "X",
		SKU:      "ab",
		Category: "Nonsense",
		Price:    price(-5),
	})
	require.Error(t, err)

	fieldErrs, ok := schema.AsFieldErrors(err)
	require.True(t, ok)
	assert.NotEmpty(t, fieldErrs)
	assert.Zero(t, atomic.LoadInt64(&calls))
}

func TestToggleActive(t *testing.T) {
	product := models.Product{
		ID: "7", Name: "Office Chair", SKU: "OC-002",
		Category: "Furniture", Price: 249.99, IsActive: true,
	}

	var putBody models.Product
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			require.Equal(t, "/products/7", r.URL.Path)
			json.NewEncoder(w).Encode(product)
		case http.MethodPut:
			require.Equal(t, "/products/7", r.URL.Path)
			require.NoError(t, json.NewDecoder(r.Body).Decode(&putBody))
			json.NewEncoder(w).Encode(putBody)
		}
	}))
	defer srv.Close()

	svc := NewProductService(remote.NewClient(srv.URL, 5*time.Second), nil, nil)

	updated, err := svc.ToggleActive(context.Background(), "7")
	require.NoError(t, err)

	assert.False(t, updated.IsActive)
	assert.False(t, putBody.IsActive, "full-record replace carries the flipped flag")
	assert.Equal(t, "OC-002", putBody.SKU, "full-record replace keeps all other fields")
}

func TestToggleActiveUpstreamFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			json.NewEncoder(w).Encode(models.Product{ID: "7", IsActive: true})
			return
		}
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	svc := NewProductService(remote.NewClient(srv.URL, 5*time.Second), nil, nil)

	_, err := svc.ToggleActive(context.Background(), "7")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to update product")
}

func TestGetProductNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(http.NotFound))
	defer srv.Close()

	svc := NewProductService(remote.NewClient(srv.URL, 5*time.Second), nil, nil)

	_, err := svc.Get(context.Background(), "missing")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "product not found")
}
