package worker

import (
	"context"

	"catalog-admin/internal/broker"
	"catalog-admin/internal/models"
	"catalog-admin/internal/store"
	"catalog-admin/internal/util"

	"go.uber.org/zap"
)

// AuditWorker consumes audit events from Kafka and persists them.
type AuditWorker struct {
	consumer *broker.Consumer
	handler  *broker.AuditHandler
	logger   *zap.Logger
}

// NewAuditWorker creates a worker writing consumed events to the store.
func NewAuditWorker(consumer *broker.Consumer, auditStore *store.Store) *AuditWorker {
	logger := util.GetLogger()

	handler := broker.NewAuditHandler(func(ctx context.Context, record *models.AuditRecord) error {
		inserted, err := auditStore.InsertAuditRecord(ctx, record)
		if err != nil {
			return err
		}
		if !inserted {
			logger.Debug("Duplicate audit event skipped", zap.String("event_id", record.EventID))
			return nil
		}

		util.AuditRecordsWrittenTotal.Inc()
		logger.Info("Audit record written",
			zap.String("event_type", record.EventType),
			zap.String("entity", record.Entity),
			zap.String("entity_id", record.EntityID))
		return nil
	})

	return &AuditWorker{
		consumer: consumer,
		handler:  handler,
		logger:   logger,
	}
}

// Start starts the worker
func (w *AuditWorker) Start(ctx context.Context) error {
	w.logger.Info("Starting audit worker")
	return w.consumer.StartConsuming(ctx, w.handler.HandleMessage)
}

// Stop stops the worker
func (w *AuditWorker) Stop() error {
	w.logger.Info("Stopping audit worker")
	return w.consumer.Close()
}
