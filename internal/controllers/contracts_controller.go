package controllers

import (
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/stevedao0/contract-service/internal/dtos"
	"github.com/stevedao0/contract-service/internal/services"
	"github.com/stevedao0/contract-service/internal/utils"
)

type ContractsController struct {
	svc *services.ContractService
}

func NewContractsController(svc *services.ContractService) *ContractsController {
	return &ContractsController{svc: svc}
}

// GET /api/v1/contracts?year=&q=
func (c *ContractsController) ListHandler(w http.ResponseWriter, r *http.Request) {
	year, ok := optionalIntQuery(w, r, "year")
	if !ok {
		return
	}
	list, err := c.svc.ListContracts(r.Context(), year, r.URL.Query().Get("q"))
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dtos.ListContractsResponse{Contracts: list, Total: len(list)})
}

// POST /api/v1/contracts
func (c *ContractsController) CreateHandler(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}
	var req dtos.CreateContractRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	created, err := c.svc.CreateContract(r.Context(), actor, req)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, created)
}

// GET /api/v1/contracts/detail?contract_no= (or ?id=)
func (c *ContractsController) GetHandler(w http.ResponseWriter, r *http.Request) {
	if rawID := strings.TrimSpace(r.URL.Query().Get("id")); rawID != "" {
		id, err := uuid.Parse(rawID)
		if err != nil {
			utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeValidation, "id must be a UUID", nil, err)
			return
		}
		contract, err := c.svc.GetContractByID(r.Context(), id)
		if err != nil {
			utils.HandleAppError(w, err)
			return
		}
		utils.RespondWithJSON(w, http.StatusOK, contract)
		return
	}

	contractNo, ok := requireQuery(w, r, "contract_no")
	if !ok {
		return
	}
	contract, err := c.svc.GetContract(r.Context(), contractNo)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, contract)
}

// PUT /api/v1/contracts/update
// 409 row_version_conflict carries the stored contract in details.
func (c *ContractsController) UpdateHandler(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}
	var req dtos.UpdateContractRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	updated, err := c.svc.UpdateContract(r.Context(), actor, req)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, updated)
}

// DELETE /api/v1/contracts/delete?contract_no=
func (c *ContractsController) DeleteHandler(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}
	contractNo, ok := requireQuery(w, r, "contract_no")
	if !ok {
		return
	}

	res, err := c.svc.DeleteContract(r.Context(), actor, contractNo)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dtos.DeleteResponse{
		Deleted: utils.NormalizeKey(contractNo),
		Annexes: res.Annexes,
		Works:   res.Works,
	})
}
