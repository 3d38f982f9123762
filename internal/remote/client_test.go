package remote

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"catalog-admin/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListProductsSendsOnlyPresentFilters(t *testing.T) {
	var gotQuery map[string][]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		json.NewEncoder(w).Encode([]models.Product{{ID: "1", Name: "Thing"}})
	}))
	defer srv.Close()

	client := NewClient(srv.URL, 5*time.Second)

	active := true
	products, err := client.ListProducts(context.Background(), ProductFilters{
		Category: "Electronics",
		Active:   &active,
	})
	require.NoError(t, err)
	require.Len(t, products, 1)

	assert.Equal(t, []string{"Electronics"}, gotQuery["category"])
	assert.Equal(t, []string{"true"}, gotQuery["active"])
	assert.NotContains(t, gotQuery, "page", "absent filters must be omitted, not sent empty")
	assert.NotContains(t, gotQuery, "limit")
}

func TestListProductsNoFiltersNoQuery(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.URL.RawQuery)
		json.NewEncoder(w).Encode([]models.Product{})
	}))
	defer srv.Close()

	client := NewClient(srv.URL, 5*time.Second)
	_, err := client.ListProducts(context.Background(), ProductFilters{})
	require.NoError(t, err)
}

func TestListProductsServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, 5*time.Second)

	products, err := client.ListProducts(context.Background(), ProductFilters{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to fetch products")
	assert.Nil(t, products, "no partial result on failure")
}

func TestGetProductNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, 5*time.Second)

	_, err := client.GetProduct(context.Background(), "missing")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNotFound))
	assert.Contains(t, err.Error(), "product not found")
}

func TestCreateProductPostsJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/products", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var body models.Product
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		body.ID = "42"
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(body)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, 5*time.Second)

	created, err := client.CreateProduct(context.Background(), &models.Product{
		Name:     "Desk Lamp",
		SKU:      "DL-100",
		Category: "Furniture",
		Price:    39.99,
		IsActive: true,
	})
	require.NoError(t, err)
	assert.Equal(t, "42", created.ID)
	assert.Equal(t, "DL-100", created.SKU)
}

func TestUpdateProductPutsFullRecord(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/products/42", r.URL.Path)

		var body models.Product
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		json.NewEncoder(w).Encode(body)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, 5*time.Second)

	updated, err := client.UpdateProduct(context.Background(), "42", &models.Product{
		ID: "42", Name: "Desk Lamp", SKU: "DL-100", Category: "Furniture", Price: 35.00,
	})
	require.NoError(t, err)
	assert.Equal(t, 35.00, updated.Price)
}

func TestDeleteProduct(t *testing.T) {
	var called bool
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		assert.Equal(t, http.MethodDelete, r.Method)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, 5*time.Second)
	require.NoError(t, client.DeleteProduct(context.Background(), "42"))
	assert.True(t, called)
}

func TestListOrdersFilters(t *testing.T) {
	var gotQuery map[string][]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		assert.Equal(t, "/orders", r.URL.Path)
		json.NewEncoder(w).Encode([]models.Order{})
	}))
	defer srv.Close()

	client := NewClient(srv.URL, 5*time.Second)

	_, err := client.ListOrders(context.Background(), OrderFilters{
		PaymentStatus: "paid",
		Page:          2,
		Limit:         10,
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"paid"}, gotQuery["paymentStatus"])
	assert.Equal(t, []string{"2"}, gotQuery["page"])
	assert.Equal(t, []string{"10"}, gotQuery["limit"])
	assert.NotContains(t, gotQuery, "deliveryStatus")
}

func TestGetOrderNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, 5*time.Second)

	_, err := client.GetOrder(context.Background(), "nope")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNotFound))
	assert.Contains(t, err.Error(), "order not found")
}

func TestSingleAttemptPerCall(t *testing.T) {
	var attempts int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		http.Error(w, "unavailable", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, 5*time.Second)

	_, err := client.ListOrders(context.Background(), OrderFilters{})
	require.Error(t, err)
	assert.Equal(t, 1, attempts, "no retry, no backoff")
}
