package controllers

import (
	"net/http"

	"github.com/stevedao0/contract-service/internal/dtos"
	"github.com/stevedao0/contract-service/internal/services"
	"github.com/stevedao0/contract-service/internal/utils"
)

type AuditController struct {
	svc *services.AuditService
}

func NewAuditController(svc *services.AuditService) *AuditController {
	return &AuditController{svc: svc}
}

// GET /api/v1/audit?target_type=&target_key=&limit=
func (c *AuditController) ListHandler(w http.ResponseWriter, r *http.Request) {
	limit, ok := optionalIntQuery(w, r, "limit")
	if !ok {
		return
	}
	q := r.URL.Query()
	entries, err := c.svc.List(r.Context(), q.Get("target_type"), q.Get("target_key"), limit)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dtos.ListAuditLogsResponse{Entries: entries})
}
