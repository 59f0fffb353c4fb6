package controllers

import (
	"net/http"

	"github.com/stevedao0/contract-service/internal/app"
	"github.com/stevedao0/contract-service/internal/dtos"
	"github.com/stevedao0/contract-service/internal/utils"
)

type HealthController struct {
	app *app.App
}

func NewHealthController(app *app.App) *HealthController {
	return &HealthController{app}
}

func (c *HealthController) HealthCheckHandler(w http.ResponseWriter, r *http.Request) {
	if err := c.app.Store.Ping(r.Context()); err != nil {
		utils.Logger.WithError(err).Error("contract-service DB unreachable")
		utils.RespondErrorWithCode(w, http.StatusServiceUnavailable, utils.ErrCodeInternal, "Database unreachable", nil, err)
		return
	}
	resp := dtos.HealthResponse{Status: "OK", Backend: c.app.Store.Backend()}
	utils.RespondWithJSON(w, http.StatusOK, resp)
}
