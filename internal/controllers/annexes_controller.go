package controllers

import (
	"net/http"

	"github.com/stevedao0/contract-service/internal/dtos"
	"github.com/stevedao0/contract-service/internal/models"
	"github.com/stevedao0/contract-service/internal/services"
	"github.com/stevedao0/contract-service/internal/utils"
)

type AnnexesController struct {
	svc *services.AnnexService
}

func NewAnnexesController(svc *services.AnnexService) *AnnexesController {
	return &AnnexesController{svc: svc}
}

// GET /api/v1/annexes?contract_no=  or  ?year=
func (c *AnnexesController) ListHandler(w http.ResponseWriter, r *http.Request) {
	year, ok := optionalIntQuery(w, r, "year")
	if !ok {
		return
	}
	contractNo := r.URL.Query().Get("contract_no")

	var (
		list []*models.Annex
		err  error
	)
	switch {
	case contractNo != "":
		list, err = c.svc.ListByContract(r.Context(), contractNo)
	case year > 0:
		list, err = c.svc.ListByYear(r.Context(), year)
	default:
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeValidation, "contract_no or year is required", nil)
		return
	}
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dtos.ListAnnexesResponse{Annexes: list, Total: len(list)})
}

// POST /api/v1/annexes
func (c *AnnexesController) CreateHandler(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}
	var req dtos.CreateAnnexRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	created, err := c.svc.CreateAnnex(r.Context(), actor, req)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, created)
}

// GET /api/v1/annexes/detail?contract_no=&annex_no=
func (c *AnnexesController) GetHandler(w http.ResponseWriter, r *http.Request) {
	contractNo, ok := requireQuery(w, r, "contract_no")
	if !ok {
		return
	}
	annexNo, ok := requireQuery(w, r, "annex_no")
	if !ok {
		return
	}
	annex, err := c.svc.GetAnnex(r.Context(), contractNo, annexNo)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, annex)
}

// PUT /api/v1/annexes/update
func (c *AnnexesController) UpdateHandler(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}
	var req dtos.UpdateAnnexRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	updated, err := c.svc.UpdateAnnex(r.Context(), actor, req)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, updated)
}

// DELETE /api/v1/annexes/delete?contract_no=&annex_no=
func (c *AnnexesController) DeleteHandler(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}
	contractNo, ok := requireQuery(w, r, "contract_no")
	if !ok {
		return
	}
	annexNo, ok := requireQuery(w, r, "annex_no")
	if !ok {
		return
	}

	res, err := c.svc.DeleteAnnex(r.Context(), actor, contractNo, annexNo)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	key := models.AnnexKey{ContractNo: utils.NormalizeKey(contractNo), AnnexNo: utils.NormalizeKey(annexNo)}
	utils.RespondWithJSON(w, http.StatusOK, dtos.DeleteResponse{
		Deleted: key.String(),
		Annexes: res.Annexes,
		Works:   res.Works,
	})
}
