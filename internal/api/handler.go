package api

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"catalog-admin/internal/remote"
	"catalog-admin/internal/schema"
	"catalog-admin/internal/service"
	"catalog-admin/internal/store"
	"catalog-admin/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Handler contains HTTP handlers
type Handler struct {
	products *service.ProductService
	orders   *service.OrderService
	audit    *store.Store
}

// NewHandler creates a new HTTP handler. The audit store may be nil when the
// audit trail is disabled.
func NewHandler(products *service.ProductService, orders *service.OrderService, audit *store.Store) *Handler {
	return &Handler{
		products: products,
		orders:   orders,
		audit:    audit,
	}
}

// SetupRoutes sets up HTTP routes
func (h *Handler) SetupRoutes(router *gin.Engine) {
	router.Use(gin.Recovery())
	router.Use(prometheusMiddleware())
	router.Use(gin.Logger())

	router.GET("/health", h.healthCheck)
	router.GET("/ready", h.readinessCheck)

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := router.Group("/api/v1")
	{
		v1.GET("/products", h.listProducts)
		v1.POST("/products", h.createProduct)
		v1.GET("/products/:id", h.getProduct)
		v1.PUT("/products/:id", h.updateProduct)
		v1.POST("/products/:id/toggle", h.toggleProduct)
		v1.DELETE("/products/:id", h.deleteProduct)

		v1.GET("/orders", h.listOrders)
		v1.POST("/orders", h.createOrder)
		v1.POST("/orders/quote", h.quoteOrder)
		v1.GET("/orders/:id", h.getOrder)
		v1.PUT("/orders/:id", h.updateOrder)
		v1.DELETE("/orders/:id", h.deleteOrder)

		v1.GET("/audit", h.listAudit)
		v1.GET("/audit/:entity/:id", h.entityAudit)
	}
}

// healthCheck handles health check requests
func (h *Handler) healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "healthy",
		"time":   time.Now().Unix(),
	})
}

// readinessCheck handles readiness check requests
func (h *Handler) readinessCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ready",
		"time":   time.Now().Unix(),
	})
}

// respondError maps the error taxonomy to HTTP statuses: field-scoped
// validation failures to 422, upstream not-found to 404, everything else
// surfaces as a gateway failure.
func respondError(c *gin.Context, err error) {
	if fieldErrs, ok := schema.AsFieldErrors(err); ok {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error":  "Validation failed",
			"fields": fieldErrs,
		})
		return
	}

	if errors.Is(err, remote.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{
			"error": err.Error(),
		})
		return
	}

	c.JSON(http.StatusBadGateway, gin.H{
		"error": err.Error(),
	})
}

func (h *Handler) listProducts(c *gin.Context) {
	filters := remote.ProductFilters{
		Category: c.Query("category"),
		Page:     intQuery(c, "page"),
		Limit:    intQuery(c, "limit"),
	}
	if raw, ok := c.GetQuery("active"); ok {
		active, err := strconv.ParseBool(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid active filter"})
			return
		}
		filters.Active = &active
	}

	products, err := h.products.List(c.Request.Context(), filters)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, products)
}

func (h *Handler) getProduct(c *gin.Context) {
	product, err := h.products.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, product)
}

func (h *Handler) createProduct(c *gin.Context) {
	var in schema.ProductInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"details": err.Error(),
		})
		return
	}

	created, err := h.products.Create(c.Request.Context(), in)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, created)
}

func (h *Handler) updateProduct(c *gin.Context) {
	var in schema.ProductInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"details": err.Error(),
		})
		return
	}

	updated, err := h.products.Update(c.Request.Context(), c.Param("id"), in)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, updated)
}

func (h *Handler) toggleProduct(c *gin.Context) {
	updated, err := h.products.ToggleActive(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, updated)
}

func (h *Handler) deleteProduct(c *gin.Context) {
	if err := h.products.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"deleted": true})
}

func (h *Handler) listOrders(c *gin.Context) {
	filters := remote.OrderFilters{
		PaymentStatus:  c.Query("paymentStatus"),
		DeliveryStatus: c.Query("deliveryStatus"),
		Page:           intQuery(c, "page"),
		Limit:          intQuery(c, "limit"),
	}

	orders, err := h.orders.List(c.Request.Context(), filters)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, orders)
}

func (h *Handler) getOrder(c *gin.Context) {
	order, err := h.orders.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, order)
}

func (h *Handler) createOrder(c *gin.Context) {
	var in schema.OrderInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"details": err.Error(),
		})
		return
	}

	created, err := h.orders.Submit(c.Request.Context(), in)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, created)
}

// quoteOrder prices the current line-item list without submitting. The order
// form calls this after every line-item change.
func (h *Handler) quoteOrder(c *gin.Context) {
	var in struct {
		Items []schema.LineItemInput `json:"products"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"details": err.Error(),
		})
		return
	}

	summary, err := h.orders.Quote(c.Request.Context(), in.Items)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, summary)
}

func (h *Handler) updateOrder(c *gin.Context) {
	var in schema.OrderInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"details": err.Error(),
		})
		return
	}

	vals, err := schema.ValidateOrder(in)
	if err != nil {
		respondError(c, err)
		return
	}

	order, err := h.orders.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	order.Items = vals.Items
	order.ClientName = vals.ClientName
	order.DeliveryAddress = vals.DeliveryAddress
	order.PaymentStatus = vals.PaymentStatus
	order.DeliveryStatus = vals.DeliveryStatus
	order.ExpectedDeliveryDate = vals.ExpectedDeliveryDate

	updated, err := h.orders.Update(c.Request.Context(), c.Param("id"), order)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, updated)
}

func (h *Handler) deleteOrder(c *gin.Context) {
	if err := h.orders.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"deleted": true})
}

func (h *Handler) listAudit(c *gin.Context) {
	if h.audit == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Audit trail is disabled"})
		return
	}

	records, err := h.audit.ListAuditRecords(c.Request.Context(), c.Query("entity"), intQuery(c, "limit"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch audit records"})
		return
	}

	c.JSON(http.StatusOK, records)
}

// entityAudit returns the audit history of one product or order.
func (h *Handler) entityAudit(c *gin.Context) {
	if h.audit == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Audit trail is disabled"})
		return
	}

	entity := c.Param("entity")
	if entity != "product" && entity != "order" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown audit entity"})
		return
	}

	records, err := h.audit.ListAuditRecordsForEntity(c.Request.Context(), entity, c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch audit records"})
		return
	}

	c.JSON(http.StatusOK, records)
}

func intQuery(c *gin.Context, key string) int {
	v, err := strconv.Atoi(c.Query(key))
	if err != nil {
		return 0
	}
	return v
}

// prometheusMiddleware collects HTTP metrics
func prometheusMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		duration := time.Since(start).Seconds()
		status := strconv.Itoa(c.Writer.Status())

		util.HTTPRequestDuration.WithLabelValues(
			c.Request.Method,
			c.FullPath(),
			status,
		).Observe(duration)

		util.HTTPRequestsTotal.WithLabelValues(
			c.Request.Method,
			c.FullPath(),
			status,
		).Inc()
	}
}
