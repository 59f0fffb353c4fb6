package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

type AuditAction string

const (
	AuditCreate AuditAction = "CREATE"
	AuditUpdate AuditAction = "UPDATE"
	AuditDelete AuditAction = "DELETE"
	AuditImport AuditAction = "IMPORT"
)

type AuditTargetType string

const (
	TargetContract AuditTargetType = "CONTRACT"
	TargetAnnex    AuditTargetType = "ANNEX"
	TargetWorks    AuditTargetType = "WORKS"
)

type AuditLog struct {
	ID         uuid.UUID       `json:"id"`
	Actor      string          `json:"actor"`
	Action     AuditAction     `json:"action"`
	TargetType AuditTargetType `json:"target_type"`
	TargetKey  string          `json:"target_key"`
	RowVersion int64           `json:"row_version"`
	Details    json.RawMessage `json:"details,omitempty"` // before/after snapshot
	CreatedAt  time.Time       `json:"created_at"`
}
