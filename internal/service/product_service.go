package service

import (
	"context"
	"time"

	"catalog-admin/internal/broker"
	"catalog-admin/internal/models"
	"catalog-admin/internal/redisclient"
	"catalog-admin/internal/remote"
	"catalog-admin/internal/schema"
	"catalog-admin/internal/util"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ProductService handles product admin operations. The cache and event
// publisher are optional; a nil value disables that concern.
type ProductService struct {
	remote *remote.Client
	cache  *redisclient.Client
	events *broker.EventPublisher
	logger *zap.Logger
}

// NewProductService creates a new product service
func NewProductService(remoteClient *remote.Client, cache *redisclient.Client, events *broker.EventPublisher) *ProductService {
	return &ProductService{
		remote: remoteClient,
		cache:  cache,
		events: events,
		logger: util.GetLogger(),
	}
}

// List fetches products matching the filters.
func (s *ProductService) List(ctx context.Context, filters remote.ProductFilters) ([]models.Product, error) {
	ctx, span := util.StartSpan(ctx, "ProductService.List")
	defer span.End()

	return s.remote.ListProducts(ctx, filters)
}

// Get fetches one product by ID.
func (s *ProductService) Get(ctx context.Context, id string) (*models.Product, error) {
	ctx, span := util.StartSpan(ctx, "ProductService.Get")
	defer span.End()

	return s.remote.GetProduct(ctx, id)
}

// Create validates raw product input and creates the product upstream.
// Validation runs synchronously before any network call; a failure means no
// request is issued.
func (s *ProductService) Create(ctx context.Context, in schema.ProductInput) (*models.Product, error) {
	ctx, span := util.StartSpan(ctx, "ProductService.Create")
	defer span.End()

	product, err := schema.ValidateProduct(in)
	if err != nil {
		util.ValidationFailuresTotal.WithLabelValues("product").Inc()
		return nil, err
	}

	created, err := s.remote.CreateProduct(ctx, product)
	if err != nil {
		util.ProductsFailedTotal.WithLabelValues("upstream").Inc()
		return nil, err
	}

	util.ProductsCreatedTotal.Inc()
	s.logger.Info("Product created",
		zap.String("product_id", created.ID),
		zap.String("sku", created.SKU))

	s.invalidateCatalog(ctx)
	s.publishProductEvent(ctx, models.EventTypeProductCreated, created)

	return created, nil
}

// Update validates raw input and replaces the full product record upstream.
func (s *ProductService) Update(ctx context.Context, id string, in schema.ProductInput) (*models.Product, error) {
	ctx, span := util.StartSpan(ctx, "ProductService.Update")
	defer span.End()

	product, err := schema.ValidateProduct(in)
	if err != nil {
		util.ValidationFailuresTotal.WithLabelValues("product").Inc()
		return nil, err
	}
	product.ID = id

	updated, err := s.remote.UpdateProduct(ctx, id, product)
	if err != nil {
		util.ProductsFailedTotal.WithLabelValues("upstream").Inc()
		return nil, err
	}

	util.ProductsUpdatedTotal.Inc()
	s.invalidateCatalog(ctx)
	s.publishProductEvent(ctx, models.EventTypeProductUpdated, updated)

	return updated, nil
}

// ToggleActive flips a product's isActive flag via a full-record replace.
// Nothing is mutated until the upstream confirms the write, so a failed
// toggle leaves no state to revert.
func (s *ProductService) ToggleActive(ctx context.Context, id string) (*models.Product, error) {
	ctx, span := util.StartSpan(ctx, "ProductService.ToggleActive")
	defer span.End()

	product, err := s.remote.GetProduct(ctx, id)
	if err != nil {
		return nil, err
	}

	product.IsActive = !product.IsActive

	updated, err := s.remote.UpdateProduct(ctx, id, product)
	if err != nil {
		util.ProductsFailedTotal.WithLabelValues("upstream").Inc()
		return nil, err
	}

	util.ProductsUpdatedTotal.Inc()
	s.logger.Info("Product activation toggled",
		zap.String("product_id", id),
		zap.Bool("is_active", updated.IsActive))

	s.invalidateCatalog(ctx)
	s.publishProductEvent(ctx, models.EventTypeProductUpdated, updated)

	return updated, nil
}

// Delete removes a product upstream.
func (s *ProductService) Delete(ctx context.Context, id string) error {
	ctx, span := util.StartSpan(ctx, "ProductService.Delete")
	defer span.End()

	if err := s.remote.DeleteProduct(ctx, id); err != nil {
		util.ProductsFailedTotal.WithLabelValues("upstream").Inc()
		return err
	}

	s.invalidateCatalog(ctx)
	s.publishProductEvent(ctx, models.EventTypeProductDeleted, &models.Product{ID: id})

	return nil
}

func (s *ProductService) invalidateCatalog(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.InvalidateCatalog(ctx); err != nil {
		s.logger.Warn("Failed to invalidate catalog cache", zap.Error(err))
	}
}

// publishProductEvent is fire-and-forget: a publish failure is logged and
// never fails the admin operation.
func (s *ProductService) publishProductEvent(ctx context.Context, eventType string, product *models.Product) {
	if s.events == nil {
		return
	}

	isActive := product.IsActive
	event := &models.ProductEvent{
		BaseEvent: models.BaseEvent{
			EventID:   uuid.New().String(),
			EventType: eventType,
			Timestamp: time.Now(),
		},
		ProductID: product.ID,
		SKU:       product.SKU,
		Name:      product.Name,
		IsActive:  &isActive,
	}

	if err := s.events.PublishProductEvent(ctx, event); err != nil {
		s.logger.Error("Failed to publish product event",
			zap.String("event_type", eventType),
			zap.Error(err))
	}
}
