package dtos

import "github.com/stevedao0/contract-service/internal/models"

type ListAuditLogsResponse struct {
	Entries []*models.AuditLog `json:"entries"`
}

type HealthResponse struct {
	Status  string `json:"status"`
	Backend string `json:"backend"`
}
