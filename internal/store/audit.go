package store

import (
	"context"
	"database/sql"
	"fmt"

	"catalog-admin/internal/models"
)

// InsertAuditRecord persists one audit record. Records are deduplicated on
// event_id so a redelivered Kafka message is a no-op; it returns false when
// the event was already recorded.
func (s *Store) InsertAuditRecord(ctx context.Context, record *models.AuditRecord) (bool, error) {
	query := `
		INSERT INTO audit_records (event_id, event_type, entity, entity_id, payload, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (event_id) DO NOTHING
		RETURNING id`

	err := s.db.GetContext(ctx, &record.ID, query,
		record.EventID, record.EventType, record.Entity, record.EntityID,
		record.Payload, record.CreatedAt)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to insert audit record: %w", err)
	}
	return true, nil
}

// GetAuditRecord retrieves an audit record by event ID.
func (s *Store) GetAuditRecord(ctx context.Context, eventID string) (*models.AuditRecord, error) {
	var record models.AuditRecord
	err := s.db.GetContext(ctx, &record,
		"SELECT * FROM audit_records WHERE event_id = $1", eventID)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("audit record not found: %s", eventID)
	}
	if err != nil {
		return nil, err
	}
	return &record, nil
}

// ListAuditRecords retrieves recent audit records, optionally filtered by
// entity ("product" or "order"). A zero limit defaults to 50.
func (s *Store) ListAuditRecords(ctx context.Context, entity string, limit int) ([]models.AuditRecord, error) {
	if limit <= 0 {
		limit = 50
	}

	var records []models.AuditRecord
	var err error
	if entity != "" {
		err = s.db.SelectContext(ctx, &records,
			"SELECT * FROM audit_records WHERE entity = $1 ORDER BY created_at DESC LIMIT $2",
			entity, limit)
	} else {
		err = s.db.SelectContext(ctx, &records,
			"SELECT * FROM audit_records ORDER BY created_at DESC LIMIT $1", limit)
	}
	return records, err
}

// ListAuditRecordsForEntity retrieves the audit history of one record.
func (s *Store) ListAuditRecordsForEntity(ctx context.Context, entity, entityID string) ([]models.AuditRecord, error) {
	var records []models.AuditRecord
	err := s.db.SelectContext(ctx, &records,
		"SELECT * FROM audit_records WHERE entity = $1 AND entity_id = $2 ORDER BY created_at DESC",
		entity, entityID)
	return records, err
}
