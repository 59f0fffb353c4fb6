package services

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/stevedao0/contract-service/internal/models"
	"github.com/stevedao0/contract-service/internal/repositories"
	"github.com/stevedao0/contract-service/internal/utils"
)

const (
	defaultAuditLimit = 50
	maxAuditLimit     = 500
)

type AuditService struct {
	repo repositories.AuditLogRepository
}

func NewAuditService(repo repositories.AuditLogRepository) *AuditService {
	return &AuditService{repo: repo}
}

// Record writes an audit entry. Failures are logged, never returned: the
// audited operation has already committed.
func (s *AuditService) Record(
	ctx context.Context,
	actor string,
	action models.AuditAction,
	targetType models.AuditTargetType,
	targetKey string,
	rowVersion int64,
	details any,
) {
	entry := &models.AuditLog{
		Actor:      actorOrSystem(actor),
		Action:     action,
		TargetType: targetType,
		TargetKey:  targetKey,
		RowVersion: rowVersion,
	}
	if details != nil {
		marshalled, err := json.Marshal(details)
		if err == nil {
			entry.Details = json.RawMessage(marshalled)
		}
	}

	if err := s.repo.Create(ctx, entry); err != nil {
		utils.Logger.WithError(err).WithFields(logrus.Fields{
			"action":     action,
			"target_key": targetKey,
		}).Warn("Failed to write audit log")
	}
}

func (s *AuditService) List(ctx context.Context, targetType, targetKey string, limit int) ([]*models.AuditLog, error) {
	if limit <= 0 {
		limit = defaultAuditLimit
	}
	if limit > maxAuditLimit {
		limit = maxAuditLimit
	}

	var (
		entries []*models.AuditLog
		err     error
	)
	switch tt := models.AuditTargetType(targetType); tt {
	case "":
		entries, err = s.repo.ListRecent(ctx, limit)
	case models.TargetContract, models.TargetAnnex, models.TargetWorks:
		if targetKey == "" {
			return nil, validationError("target_key is required with target_type", nil)
		}
		entries, err = s.repo.ListByTarget(ctx, tt, utils.NormalizeKey(targetKey), limit)
	default:
		return nil, &utils.AppError{StatusCode: http.StatusBadRequest, Code: utils.ErrCodeValidation, Message: "target_type must be CONTRACT, ANNEX or WORKS"}
	}
	if err != nil {
		return nil, storeError(err, "Audit log", "list")
	}
	if entries == nil {
		entries = []*models.AuditLog{}
	}
	return entries, nil
}

// PurgeExpired removes audit entries older than retention.
func (s *AuditService) PurgeExpired(ctx context.Context, retention time.Duration) (int64, error) {
	cutoff := time.Now().UTC().Add(-retention)
	n, err := s.repo.DeleteOlderThan(ctx, cutoff)
	if err != nil {
		return 0, err
	}
	utils.Logger.WithFields(logrus.Fields{"deleted": n, "cutoff": cutoff}).Info("Purged expired audit logs")
	return n, nil
}
