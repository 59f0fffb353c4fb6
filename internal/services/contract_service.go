package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/stevedao0/contract-service/internal/dtos"
	"github.com/stevedao0/contract-service/internal/models"
	"github.com/stevedao0/contract-service/internal/repositories"
	"github.com/stevedao0/contract-service/internal/utils"
)

type ContractService struct {
	contracts repositories.ContractRepository
	audit     *AuditService
}

func NewContractService(contracts repositories.ContractRepository, audit *AuditService) *ContractService {
	return &ContractService{contracts: contracts, audit: audit}
}

func (s *ContractService) ListContracts(ctx context.Context, year int, query string) ([]*models.Contract, error) {
	list, err := s.contracts.Search(ctx, year, query)
	if err != nil {
		return nil, storeError(err, "Contract", "list")
	}
	if list == nil {
		list = []*models.Contract{}
	}
	return list, nil
}

func (s *ContractService) GetContract(ctx context.Context, contractNo string) (*models.Contract, error) {
	c, err := s.contracts.GetByContractNo(ctx, utils.NormalizeKey(contractNo))
	if err != nil {
		return nil, storeError(err, "Contract", "load")
	}
	return c, nil
}

// GetContractByID follows an annex's contract_id back to its parent.
func (s *ContractService) GetContractByID(ctx context.Context, id uuid.UUID) (*models.Contract, error) {
	c, err := s.contracts.GetByID(ctx, id)
	if err != nil {
		return nil, storeError(err, "Contract", "load")
	}
	return c, nil
}

func (s *ContractService) CreateContract(ctx context.Context, actor string, req dtos.CreateContractRequest) (*models.Contract, error) {
	contractNo := utils.NormalizeKey(req.ContractNo)
	if contractNo == "" {
		return nil, validationError("contract_no is required", nil)
	}
	signedOn, err := parseSignedOn(req.SignedOn)
	if err != nil {
		return nil, err
	}

	actor = actorOrSystem(actor)
	c := &models.Contract{
		ContractNo:   contractNo,
		ContractYear: utils.YearFromContractNo(contractNo, time.Now().Year()),
		SignedOn:     signedOn,
		Field:        utils.DefaultContractField,
		RegionCode:   utils.DefaultRegionCode,
		FieldCode:    utils.DefaultFieldCode,
		Terms:        defaultTerms(),
		CreatedBy:    actor,
		UpdatedBy:    actor,
	}
	if req.ContractYear != nil {
		c.ContractYear = *req.ContractYear
	}
	setString(&c.Field, req.Field)
	setString(&c.RegionCode, req.RegionCode)
	setString(&c.FieldCode, req.FieldCode)
	applyTerms(&c.Terms, req.TermsInput)

	created, err := s.contracts.Create(ctx, c)
	if err != nil {
		return nil, storeError(err, "Contract", "create")
	}

	utils.Logger.WithFields(logrus.Fields{
		"contract_no": created.ContractNo,
		"actor":       actor,
	}).Info("Contract created")
	s.audit.Record(ctx, actor, models.AuditCreate, models.TargetContract, created.ContractNo, created.RowVersion, created)
	return created, nil
}

// UpdateContract applies req on top of the stored record and writes it only
// if nobody has saved since the caller loaded ExpectedRowVersion. A conflict
// is returned to the caller with the current record; it is never merged or
// retried here.
func (s *ContractService) UpdateContract(ctx context.Context, actor string, req dtos.UpdateContractRequest) (*models.Contract, error) {
	contractNo := utils.NormalizeKey(req.ContractNo)
	signedOn, err := parseSignedOn(req.SignedOn)
	if err != nil {
		return nil, err
	}

	current, err := s.contracts.GetByContractNo(ctx, contractNo)
	if err != nil {
		return nil, storeError(err, "Contract", "load")
	}

	edit := *current
	if req.ContractYear != nil {
		edit.ContractYear = *req.ContractYear
	}
	if req.SignedOn != nil {
		edit.SignedOn = signedOn
	}
	setString(&edit.Field, req.Field)
	setString(&edit.RegionCode, req.RegionCode)
	setString(&edit.FieldCode, req.FieldCode)
	applyTerms(&edit.Terms, req.TermsInput)
	edit.UpdatedBy = actorOrSystem(actor)

	updated, err := s.contracts.UpdateIfVersion(ctx, &edit, req.ExpectedRowVersion)
	if err != nil {
		return nil, storeError(err, "Contract", "update")
	}

	utils.Logger.WithFields(logrus.Fields{
		"contract_no": updated.ContractNo,
		"actor":       updated.UpdatedBy,
		"row_version": updated.RowVersion,
	}).Info("Contract updated")
	s.audit.Record(ctx, updated.UpdatedBy, models.AuditUpdate, models.TargetContract, updated.ContractNo, updated.RowVersion,
		map[string]any{"before": current, "after": updated})
	return updated, nil
}

// RecordGeneratedDocuments stores the paths of documents rendered for a
// contract. It is bookkeeping done by the service itself, so it re-reads
// and retries on a concurrent edit instead of surfacing the conflict.
func (s *ContractService) RecordGeneratedDocuments(ctx context.Context, contractNo, docxPath, cataloguePath string) (*models.Contract, error) {
	updated, err := s.contracts.UpdateWithRetry(ctx, utils.NormalizeKey(contractNo), func(c *models.Contract) error {
		if docxPath != "" {
			c.DocxPath = docxPath
		}
		if cataloguePath != "" {
			c.CataloguePath = cataloguePath
		}
		c.UpdatedBy = utils.SystemActor
		return nil
	})
	if err != nil {
		return nil, storeError(err, "Contract", "update")
	}
	s.audit.Record(ctx, utils.SystemActor, models.AuditUpdate, models.TargetContract, updated.ContractNo, updated.RowVersion,
		map[string]string{"docx_path": updated.DocxPath, "catalogue_path": updated.CataloguePath})
	return updated, nil
}

func (s *ContractService) DeleteContract(ctx context.Context, actor, contractNo string) (repositories.DeleteResult, error) {
	contractNo = utils.NormalizeKey(contractNo)
	res, err := s.contracts.Delete(ctx, contractNo)
	if err != nil {
		return res, storeError(err, "Contract", "delete")
	}

	actor = actorOrSystem(actor)
	utils.Logger.WithFields(logrus.Fields{
		"contract_no":     contractNo,
		"actor":           actor,
		"annexes_deleted": res.Annexes,
		"works_deleted":   res.Works,
	}).Info("Contract deleted")
	s.audit.Record(ctx, actor, models.AuditDelete, models.TargetContract, contractNo, 0, res)
	return res, nil
}
