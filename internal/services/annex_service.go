package services

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/stevedao0/contract-service/internal/dtos"
	"github.com/stevedao0/contract-service/internal/models"
	"github.com/stevedao0/contract-service/internal/repositories"
	"github.com/stevedao0/contract-service/internal/utils"
)

type AnnexService struct {
	annexes   repositories.AnnexRepository
	contracts repositories.ContractRepository
	audit     *AuditService
}

func NewAnnexService(
	annexes repositories.AnnexRepository,
	contracts repositories.ContractRepository,
	audit *AuditService,
) *AnnexService {
	return &AnnexService{annexes: annexes, contracts: contracts, audit: audit}
}

func annexKey(contractNo, annexNo string) models.AnnexKey {
	return models.AnnexKey{ContractNo: utils.NormalizeKey(contractNo), AnnexNo: utils.NormalizeKey(annexNo)}
}

func (s *AnnexService) ListByContract(ctx context.Context, contractNo string) ([]*models.Annex, error) {
	list, err := s.annexes.ListByContract(ctx, utils.NormalizeKey(contractNo))
	if err != nil {
		return nil, storeError(err, "Annex", "list")
	}
	if list == nil {
		list = []*models.Annex{}
	}
	return list, nil
}

func (s *AnnexService) ListByYear(ctx context.Context, year int) ([]*models.Annex, error) {
	list, err := s.annexes.ListByYear(ctx, year)
	if err != nil {
		return nil, storeError(err, "Annex", "list")
	}
	if list == nil {
		list = []*models.Annex{}
	}
	return list, nil
}

func (s *AnnexService) GetAnnex(ctx context.Context, contractNo, annexNo string) (*models.Annex, error) {
	a, err := s.annexes.Get(ctx, annexKey(contractNo, annexNo))
	if err != nil {
		return nil, storeError(err, "Annex", "load")
	}
	return a, nil
}

/*
CreateAnnex stores a new annex. When the parent contract exists the annex is
linked to it by id and starts from the contract's party and channel details;
an annex whose contract is not (yet) in the store is kept unlinked.
*/
func (s *AnnexService) CreateAnnex(ctx context.Context, actor string, req dtos.CreateAnnexRequest) (*models.Annex, error) {
	key := annexKey(req.ContractNo, req.AnnexNo)
	if key.ContractNo == "" || key.AnnexNo == "" {
		return nil, validationError("contract_no and annex_no are required", nil)
	}
	signedOn, err := parseSignedOn(req.SignedOn)
	if err != nil {
		return nil, err
	}

	actor = actorOrSystem(actor)
	a := &models.Annex{
		ContractNo: key.ContractNo,
		AnnexNo:    key.AnnexNo,
		SignedOn:   signedOn,
		Terms:      defaultTerms(),
		CreatedBy:  actor,
		UpdatedBy:  actor,
	}

	parent, err := s.contracts.GetByContractNo(ctx, key.ContractNo)
	switch {
	case err == nil:
		a.ContractID = uuid.NullUUID{UUID: parent.ID, Valid: true}
		a.Terms = inheritedTerms(parent.Terms)
	case errors.Is(err, utils.ErrNotFound):
		utils.Logger.WithField("contract_no", key.ContractNo).Warn("Creating annex for a contract that is not in the store")
	default:
		return nil, storeError(err, "Contract", "load")
	}
	applyTerms(&a.Terms, req.TermsInput)

	created, err := s.annexes.Create(ctx, a)
	if err != nil {
		if a.ContractID.Valid && errors.Is(err, utils.ErrNotFound) {
			// parent deleted after it was read
			return nil, storeError(err, "Contract", "create annex")
		}
		return nil, storeError(err, "Annex", "create")
	}

	utils.Logger.WithFields(logrus.Fields{
		"contract_no": created.ContractNo,
		"annex_no":    created.AnnexNo,
		"actor":       actor,
	}).Info("Annex created")
	s.audit.Record(ctx, actor, models.AuditCreate, models.TargetAnnex, key.String(), created.RowVersion, created)
	return created, nil
}

// inheritedTerms keeps the parent's party and channel details; amounts and
// generated documents belong to the annex alone.
func inheritedTerms(parent models.Terms) models.Terms {
	t := parent
	t.AmountBeforeVAT = 0
	t.VATPercent = utils.DefaultVATPercent
	t.VATAmount = 0
	t.TotalAmount = 0
	t.DocxPath = ""
	t.CataloguePath = ""
	return t
}

func (s *AnnexService) UpdateAnnex(ctx context.Context, actor string, req dtos.UpdateAnnexRequest) (*models.Annex, error) {
	key := annexKey(req.ContractNo, req.AnnexNo)
	signedOn, err := parseSignedOn(req.SignedOn)
	if err != nil {
		return nil, err
	}

	current, err := s.annexes.Get(ctx, key)
	if err != nil {
		return nil, storeError(err, "Annex", "load")
	}

	edit := *current
	if req.SignedOn != nil {
		edit.SignedOn = signedOn
	}
	applyTerms(&edit.Terms, req.TermsInput)
	edit.UpdatedBy = actorOrSystem(actor)

	updated, err := s.annexes.UpdateIfVersion(ctx, &edit, req.ExpectedRowVersion)
	if err != nil {
		return nil, storeError(err, "Annex", "update")
	}

	utils.Logger.WithFields(logrus.Fields{
		"contract_no": updated.ContractNo,
		"annex_no":    updated.AnnexNo,
		"actor":       updated.UpdatedBy,
		"row_version": updated.RowVersion,
	}).Info("Annex updated")
	s.audit.Record(ctx, updated.UpdatedBy, models.AuditUpdate, models.TargetAnnex, key.String(), updated.RowVersion,
		map[string]any{"before": current, "after": updated})
	return updated, nil
}

// RecordGeneratedDocuments stores the paths of documents rendered for an
// annex, retrying on a concurrent edit like its contract counterpart.
func (s *AnnexService) RecordGeneratedDocuments(ctx context.Context, contractNo, annexNo, docxPath, cataloguePath string) (*models.Annex, error) {
	key := annexKey(contractNo, annexNo)
	updated, err := s.annexes.UpdateWithRetry(ctx, key, func(a *models.Annex) error {
		if docxPath != "" {
			a.DocxPath = docxPath
		}
		if cataloguePath != "" {
			a.CataloguePath = cataloguePath
		}
		a.UpdatedBy = utils.SystemActor
		return nil
	})
	if err != nil {
		return nil, storeError(err, "Annex", "update")
	}
	s.audit.Record(ctx, utils.SystemActor, models.AuditUpdate, models.TargetAnnex, key.String(), updated.RowVersion,
		map[string]string{"docx_path": updated.DocxPath, "catalogue_path": updated.CataloguePath})
	return updated, nil
}

func (s *AnnexService) DeleteAnnex(ctx context.Context, actor, contractNo, annexNo string) (repositories.DeleteResult, error) {
	key := annexKey(contractNo, annexNo)
	res, err := s.annexes.Delete(ctx, key)
	if err != nil {
		return res, storeError(err, "Annex", "delete")
	}

	actor = actorOrSystem(actor)
	utils.Logger.WithFields(logrus.Fields{
		"contract_no":   key.ContractNo,
		"annex_no":      key.AnnexNo,
		"actor":         actor,
		"works_deleted": res.Works,
	}).Info("Annex deleted")
	s.audit.Record(ctx, actor, models.AuditDelete, models.TargetAnnex, key.String(), 0, res)
	return res, nil
}
