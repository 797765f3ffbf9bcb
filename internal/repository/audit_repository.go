package repository

import (
	"context"
	"database/sql"

	"github.com/qaportal-net/qaportal-be/internal/model"
)

// auditRepository appends portal activity entries. Audit rows are never
// updated or deleted.
type auditRepository struct {
	db *sql.DB
}

func NewAuditRepository(db *sql.DB) IAuditRepository {
	return &auditRepository{db: db}
}

func (r *auditRepository) Insert(ctx context.Context, entry *model.AuditLog) error {
	query := `
		INSERT INTO audit_logs (user_id, action, resource_type, details)
		VALUES ($1, $2, $3, $4)`

	_, err := r.db.ExecContext(ctx, query,
		entry.UserID,
		entry.Action,
		entry.ResourceType,
		entry.Details,
	)
	return err
}
