package broker

import (
	"context"
	"encoding/json"
	"fmt"

	"catalog-admin/internal/models"

	"github.com/segmentio/kafka-go"
)

// EventPublisher handles publishing audit events
type EventPublisher struct {
	producer *Producer
}

// NewEventPublisher creates a new event publisher
func NewEventPublisher(producer *Producer) *EventPublisher {
	return &EventPublisher{producer: producer}
}

// PublishProductEvent publishes a product created/updated/deleted event
func (ep *EventPublisher) PublishProductEvent(ctx context.Context, event *models.ProductEvent) error {
	key := fmt.Sprintf("product-%s", event.ProductID)
	return ep.producer.PublishEvent(ctx, key, event)
}

// PublishOrderSubmitted publishes an OrderSubmitted event
func (ep *EventPublisher) PublishOrderSubmitted(ctx context.Context, event *models.OrderSubmittedEvent) error {
	key := fmt.Sprintf("order-%s", event.OrderID)
	return ep.producer.PublishEvent(ctx, key, event)
}

// AuditHandler routes consumed audit events to a persistence callback.
type AuditHandler struct {
	onEvent func(ctx context.Context, record *models.AuditRecord) error
}

// NewAuditHandler creates a handler that invokes onEvent per audit event.
func NewAuditHandler(onEvent func(ctx context.Context, record *models.AuditRecord) error) *AuditHandler {
	return &AuditHandler{onEvent: onEvent}
}

// HandleMessage converts a Kafka message into an audit record. Unknown event
// types are skipped without error so one bad message cannot wedge the group.
func (ah *AuditHandler) HandleMessage(ctx context.Context, msg kafka.Message) error {
	var base models.BaseEvent
	if err := json.Unmarshal(msg.Value, &base); err != nil {
		return fmt.Errorf("failed to unmarshal base event: %w", err)
	}

	switch base.EventType {
	case models.EventTypeProductCreated,
		models.EventTypeProductUpdated,
		models.EventTypeProductDeleted,
		models.EventTypeOrderSubmitted:
	default:
		return nil
	}

	entityID, err := entityIDFrom(base.EventType, msg.Value)
	if err != nil {
		return err
	}

	record := &models.AuditRecord{
		EventID:   base.EventID,
		EventType: base.EventType,
		Entity:    models.EntityFor(base.EventType),
		EntityID:  entityID,
		Payload:   msg.Value,
		CreatedAt: base.Timestamp,
	}

	return ah.onEvent(ctx, record)
}

func entityIDFrom(eventType string, payload []byte) (string, error) {
	if eventType == models.EventTypeOrderSubmitted {
		var event models.OrderSubmittedEvent
		if err := json.Unmarshal(payload, &event); err != nil {
			return "", fmt.Errorf("failed to unmarshal order event: %w", err)
		}
		return event.OrderID, nil
	}

	var event models.ProductEvent
	if err := json.Unmarshal(payload, &event); err != nil {
		return "", fmt.Errorf("failed to unmarshal product event: %w", err)
	}
	return event.ProductID, nil
}
