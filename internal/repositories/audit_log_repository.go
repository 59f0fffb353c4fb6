package repositories

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/stevedao0/contract-service/internal/models"
)

type AuditLogRepository interface {
	Create(ctx context.Context, entry *models.AuditLog) error
	ListByTarget(ctx context.Context, targetType models.AuditTargetType, targetKey string, limit int) ([]*models.AuditLog, error)
	ListRecent(ctx context.Context, limit int) ([]*models.AuditLog, error)
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}

type auditLogRepo struct {
	ex Executor
}

const auditLogSelect = `
        SELECT id, actor, action, target_type, target_key, row_version, details, created_at
          FROM audit_logs`

func NewAuditLogRepository(ex Executor) AuditLogRepository {
	return &auditLogRepo{ex: ex}
}

func (r *auditLogRepo) Create(ctx context.Context, entry *models.AuditLog) error {
	if entry.ID == uuid.Nil {
		entry.ID = uuid.New()
	}
	entry.CreatedAt = now()
	details := "{}"
	if len(entry.Details) > 0 {
		details = string(entry.Details)
	}

	q := `
        INSERT INTO audit_logs (
            id, actor, action, target_type, target_key, row_version, details, created_at
        ) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
    `
	_, err := r.ex.Exec(ctx, q,
		entry.ID,
		entry.Actor,
		string(entry.Action),
		string(entry.TargetType),
		entry.TargetKey,
		entry.RowVersion,
		details,
		entry.CreatedAt,
	)
	return err
}

func (r *auditLogRepo) ListByTarget(
	ctx context.Context,
	targetType models.AuditTargetType,
	targetKey string,
	limit int,
) ([]*models.AuditLog, error) {
	return r.list(ctx,
		auditLogSelect+" WHERE target_type=$1 AND target_key=$2 ORDER BY created_at DESC LIMIT $3",
		string(targetType), targetKey, limit)
}

func (r *auditLogRepo) ListRecent(ctx context.Context, limit int) ([]*models.AuditLog, error) {
	return r.list(ctx, auditLogSelect+" ORDER BY created_at DESC LIMIT $1", limit)
}

func (r *auditLogRepo) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	return r.ex.Exec(ctx, `DELETE FROM audit_logs WHERE created_at < $1`, cutoff.UTC())
}

func (r *auditLogRepo) list(ctx context.Context, q string, args ...any) ([]*models.AuditLog, error) {
	rows, err := r.ex.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*models.AuditLog
	for rows.Next() {
		var (
			e                    models.AuditLog
			action, target, body string
		)
		if err := rows.Scan(&e.ID, &e.Actor, &action, &target, &e.TargetKey, &e.RowVersion, &body, &e.CreatedAt); err != nil {
			return nil, err
		}
		e.Action = models.AuditAction(action)
		e.TargetType = models.AuditTargetType(target)
		e.Details = []byte(body)
		out = append(out, &e)
	}
	return out, rows.Err()
}
