package audit

import (
	"encoding/json"
	"fmt"

	"catalog-backend/internal/models"

	"gorm.io/gorm"
)

// Recorder appends audit rows for admin mutations. It is best-effort
// infrastructure: callers treat a failed write as non-fatal.
type Recorder struct {
	db *gorm.DB
}

func NewRecorder(db *gorm.DB) *Recorder {
	return &Recorder{db: db}
}

type LogOptions struct {
	EntityType  string
	EntityID    uint
	Action      models.AuditAction
	Description string
	Before      any
	After       any
}

func (r *Recorder) Write(opts LogOptions) error {
	beforeStr := "null"
	afterStr := "null"

	if opts.Before != nil {
		if b, err := json.Marshal(opts.Before); err == nil {
			beforeStr = string(b)
		}
	}
	if opts.After != nil {
		if b, err := json.Marshal(opts.After); err == nil {
			afterStr = string(b)
		}
	}

	entry := models.AuditLog{
		EntityType:  opts.EntityType,
		EntityID:    opts.EntityID,
		Action:      opts.Action,
		Description: opts.Description,
		BeforeData:  beforeStr,
		AfterData:   afterStr,
	}

	if err := r.db.Create(&entry).Error; err != nil {
		return fmt.Errorf("audit log write failed: %w", err)
	}
	return nil
}

// List returns the newest entries first, optionally filtered by entity
// type. limit is clamped to [1, 500].
func (r *Recorder) List(entityType string, limit int) ([]models.AuditLog, error) {
	if limit <= 0 {
		limit = 100
	}
	if limit > 500 {
		limit = 500
	}

	q := r.db.Model(&models.AuditLog{}).Order("id desc").Limit(limit)
	if entityType != "" {
		q = q.Where("entity_type = ?", entityType)
	}

	var logs []models.AuditLog
	if err := q.Find(&logs).Error; err != nil {
		return nil, err
	}
	return logs, nil
}
