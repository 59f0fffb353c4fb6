package controllers

import (
	"net/http"

	"github.com/stevedao0/contract-service/internal/services"
	"github.com/stevedao0/contract-service/internal/utils"
)

type StatsController struct {
	svc *services.StatsService
}

func NewStatsController(svc *services.StatsService) *StatsController {
	return &StatsController{svc: svc}
}

// GET /api/v1/stats?year=&handler=
func (c *StatsController) DashboardHandler(w http.ResponseWriter, r *http.Request) {
	year, ok := optionalIntQuery(w, r, "year")
	if !ok {
		return
	}
	resp, err := c.svc.Dashboard(r.Context(), year, r.URL.Query().Get("handler"))
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, resp)
}

// GET /api/v1/stats/report?source=&group_by=&start=&end=&handler=
func (c *StatsController) ReportHandler(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	resp, err := c.svc.Report(r.Context(), q.Get("source"), q.Get("group_by"), q.Get("start"), q.Get("end"), q.Get("handler"))
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, resp)
}
