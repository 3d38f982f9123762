package service

import (
	"context"
	"time"

	"catalog-admin/internal/broker"
	"catalog-admin/internal/models"
	"catalog-admin/internal/pricing"
	"catalog-admin/internal/redisclient"
	"catalog-admin/internal/remote"
	"catalog-admin/internal/schema"
	"catalog-admin/internal/util"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// OrderService handles order admin operations: listing, quoting and
// submission. Cache and event publisher are optional.
type OrderService struct {
	remote *remote.Client
	cache  *redisclient.Client
	events *broker.EventPublisher
	logger *zap.Logger
}

// NewOrderService creates a new order service
func NewOrderService(remoteClient *remote.Client, cache *redisclient.Client, events *broker.EventPublisher) *OrderService {
	return &OrderService{
		remote: remoteClient,
		cache:  cache,
		events: events,
		logger: util.GetLogger(),
	}
}

// List fetches orders matching the filters.
func (s *OrderService) List(ctx context.Context, filters remote.OrderFilters) ([]models.Order, error) {
	ctx, span := util.StartSpan(ctx, "OrderService.List")
	defer span.End()

	return s.remote.ListOrders(ctx, filters)
}

// Get fetches one order by ID.
func (s *OrderService) Get(ctx context.Context, id string) (*models.Order, error) {
	ctx, span := util.StartSpan(ctx, "OrderService.Get")
	defer span.End()

	return s.remote.GetOrder(ctx, id)
}

// Update replaces the full order record upstream.
func (s *OrderService) Update(ctx context.Context, id string, order *models.Order) (*models.Order, error) {
	ctx, span := util.StartSpan(ctx, "OrderService.Update")
	defer span.End()

	return s.remote.UpdateOrder(ctx, id, order)
}

// Delete removes an order upstream.
func (s *OrderService) Delete(ctx context.Context, id string) error {
	ctx, span := util.StartSpan(ctx, "OrderService.Delete")
	defer span.End()

	return s.remote.DeleteOrder(ctx, id)
}

// Quote prices the given line items against the current active-product
// catalog without submitting anything. The order form calls this on every
// line-item change, so it always observes the latest catalog and item list.
func (s *OrderService) Quote(ctx context.Context, items []schema.LineItemInput) (pricing.Summary, error) {
	ctx, span := util.StartSpan(ctx, "OrderService.Quote")
	defer span.End()

	catalog, err := s.activeCatalog(ctx)
	if err != nil {
		return pricing.Summary{}, err
	}

	return pricing.Quote(catalog, coerceItems(items)), nil
}

// Submit validates raw order input, prices it and creates the order
// upstream. Validation failure blocks the call entirely: no upstream
// request is issued.
func (s *OrderService) Submit(ctx context.Context, in schema.OrderInput) (*models.Order, error) {
	ctx, span := util.StartSpan(ctx, "OrderService.Submit")
	defer span.End()

	vals, err := schema.ValidateOrder(in)
	if err != nil {
		util.ValidationFailuresTotal.WithLabelValues("order").Inc()
		util.OrdersFailedTotal.WithLabelValues("validation").Inc()
		return nil, err
	}

	catalog, err := s.activeCatalog(ctx)
	if err != nil {
		util.OrdersFailedTotal.WithLabelValues("catalog").Inc()
		return nil, err
	}

	summary := pricing.Quote(catalog, vals.Items)

	order := &models.Order{
		Items:                vals.Items,
		ClientName:           vals.ClientName,
		DeliveryAddress:      vals.DeliveryAddress,
		PaymentStatus:        vals.PaymentStatus,
		DeliveryStatus:       vals.DeliveryStatus,
		ExpectedDeliveryDate: vals.ExpectedDeliveryDate,
		TotalAmount:          summary.Total,
		Tax:                  summary.Tax,
		ShippingCost:         summary.Shipping,
		PaymentMethod:        models.PaymentMethodDefault,
	}

	created, err := s.remote.CreateOrder(ctx, order)
	if err != nil {
		util.OrdersFailedTotal.WithLabelValues("upstream").Inc()
		return nil, err
	}

	util.OrdersSubmittedTotal.Inc()
	s.logger.Info("Order submitted",
		zap.String("order_id", created.ID),
		zap.String("client", created.ClientName),
		zap.Float64("total", created.TotalAmount))

	s.publishOrderSubmitted(ctx, created)

	return created, nil
}

// activeCatalog loads the active-product catalog, cache-aside. Any cache
// error falls through to the upstream.
func (s *OrderService) activeCatalog(ctx context.Context) (map[string]models.Product, error) {
	if s.cache != nil {
		products, err := s.cache.GetCatalog(ctx)
		if err != nil {
			s.logger.Warn("Catalog cache read failed, falling back to upstream", zap.Error(err))
		} else if products != nil {
			util.CatalogCacheHitsTotal.Inc()
			return catalogMap(products), nil
		}
		util.CatalogCacheMissesTotal.Inc()
	}

	active := true
	products, err := s.remote.ListProducts(ctx, remote.ProductFilters{Active: &active})
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.SetCatalog(ctx, products); err != nil {
			s.logger.Warn("Catalog cache write failed", zap.Error(err))
		}
	}

	return catalogMap(products), nil
}

func catalogMap(products []models.Product) map[string]models.Product {
	m := make(map[string]models.Product, len(products))
	for _, p := range products {
		m[p.ID] = p
	}
	return m
}

func coerceItems(items []schema.LineItemInput) []models.LineItem {
	out := make([]models.LineItem, 0, len(items))
	for _, item := range items {
		if item.ProductID == "" {
			continue
		}
		out = append(out, models.LineItem{
			ProductID: item.ProductID,
			Quantity:  int(item.Quantity.Value),
		})
	}
	return out
}

// publishOrderSubmitted is fire-and-forget like the product events.
func (s *OrderService) publishOrderSubmitted(ctx context.Context, order *models.Order) {
	if s.events == nil {
		return
	}

	event := &models.OrderSubmittedEvent{
		BaseEvent: models.BaseEvent{
			EventID:   uuid.New().String(),
			EventType: models.EventTypeOrderSubmitted,
			Timestamp: time.Now(),
		},
		OrderID:     order.ID,
		ClientName:  order.ClientName,
		TotalAmount: order.TotalAmount,
		Items:       order.Items,
	}

	if err := s.events.PublishOrderSubmitted(ctx, event); err != nil {
		s.logger.Error("Failed to publish OrderSubmitted event", zap.Error(err))
	}
}
