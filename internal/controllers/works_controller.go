package controllers

import (
	"net/http"

	"github.com/stevedao0/contract-service/internal/dtos"
	"github.com/stevedao0/contract-service/internal/services"
	"github.com/stevedao0/contract-service/internal/utils"
)

type WorksController struct {
	svc *services.WorkService
}

func NewWorksController(svc *services.WorkService) *WorksController {
	return &WorksController{svc: svc}
}

// POST /api/v1/works/import
func (c *WorksController) ImportHandler(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}
	var req dtos.ImportWorksRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	resp, err := c.svc.ImportWorks(r.Context(), actor, req)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, resp)
}

// GET /api/v1/works?contract_no=&annex_no=
func (c *WorksController) ListHandler(w http.ResponseWriter, r *http.Request) {
	contractNo, ok := requireQuery(w, r, "contract_no")
	if !ok {
		return
	}
	list, err := c.svc.ListWorks(r.Context(), contractNo, r.URL.Query().Get("annex_no"))
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dtos.ListWorksResponse{Works: list, Total: len(list)})
}
