package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/stevedao0/contract-service/internal/dtos"
	"github.com/stevedao0/contract-service/internal/models"
	"github.com/stevedao0/contract-service/internal/repositories"
	"github.com/stevedao0/contract-service/internal/utils"
)

type WorkService struct {
	works     repositories.WorkRepository
	contracts repositories.ContractRepository
	annexes   repositories.AnnexRepository
	audit     *AuditService
}

func NewWorkService(
	works repositories.WorkRepository,
	contracts repositories.ContractRepository,
	annexes repositories.AnnexRepository,
	audit *AuditService,
) *WorkService {
	return &WorkService{works: works, contracts: contracts, annexes: annexes, audit: audit}
}

// RowError points at one rejected import row (1-based).
type RowError struct {
	Row   int    `json:"row"`
	Field string `json:"field"`
	Error string `json:"error"`
}

/*
ImportWorks appends catalogue rows to a contract (or one of its annexes).
The owner must exist. Rows are normalised first; if any row is invalid
nothing is stored and every problem is reported. Valid batches are inserted
in one transaction.
*/
func (s *WorkService) ImportWorks(ctx context.Context, actor string, req dtos.ImportWorksRequest) (*dtos.ImportWorksResponse, error) {
	contractNo := utils.NormalizeKey(req.ContractNo)
	annexNo := utils.NormalizeKey(req.AnnexNo)

	contract, err := s.contracts.GetByContractNo(ctx, contractNo)
	if err != nil {
		return nil, storeError(err, "Contract", "load")
	}
	owner := contract.Terms
	targetKey := contractNo
	if annexNo != "" {
		key := models.AnnexKey{ContractNo: contractNo, AnnexNo: annexNo}
		annex, err := s.annexes.Get(ctx, key)
		if err != nil {
			return nil, storeError(err, "Annex", "load")
		}
		owner = annex.Terms
		targetKey = key.String()
	}

	actor = actorOrSystem(actor)
	year := contract.ContractYear
	if year == 0 {
		year = utils.YearFromContractNo(contractNo, 0)
	}

	works := make([]*models.Work, 0, len(req.Rows))
	var rowErrs []RowError
	for i, row := range req.Rows {
		w, errs := normalizeWorkRow(i+1, row)
		if len(errs) > 0 {
			rowErrs = append(rowErrs, errs...)
			continue
		}
		w.Year = year
		w.ContractNo = contractNo
		w.AnnexNo = annexNo
		w.ChannelName = owner.ChannelName
		w.ChannelID = owner.ChannelID
		w.ChannelLink = owner.ChannelLink
		w.Handler = owner.HandlerEmail
		w.CreatedBy = actor
		works = append(works, w)
	}
	if len(rowErrs) > 0 {
		return nil, validationError(fmt.Sprintf("%d row(s) could not be imported", len(rowErrs)), rowErrs)
	}

	// CreateBatch re-checks the owner under lock; a delete that won the
	// race surfaces here as not found.
	n, err := s.works.CreateBatch(ctx, works)
	if err != nil {
		owner := "Contract"
		if annexNo != "" {
			owner = "Contract or annex"
		}
		if errors.Is(err, utils.ErrNotFound) {
			return nil, storeError(err, owner, "import works")
		}
		return nil, storeError(err, "Works", "import")
	}

	utils.Logger.WithFields(logrus.Fields{
		"contract_no": contractNo,
		"annex_no":    annexNo,
		"actor":       actor,
		"rows":        n,
	}).Info("Works imported")
	s.audit.Record(ctx, actor, models.AuditImport, models.TargetWorks, targetKey, 0, map[string]int{"rows": n})

	return &dtos.ImportWorksResponse{ContractNo: contractNo, AnnexNo: annexNo, Imported: n}, nil
}

func normalizeWorkRow(rowNum int, row dtos.WorkRow) (*models.Work, []RowError) {
	var errs []RowError
	w := &models.Work{
		Seq:            row.Seq,
		WorkCode:       strings.TrimSpace(row.WorkCode),
		Title:          strings.TrimSpace(row.Title),
		Author:         strings.TrimSpace(row.Author),
		Composer:       strings.TrimSpace(row.Composer),
		Lyricist:       strings.TrimSpace(row.Lyricist),
		EffectiveDate:  utils.FormatDDMMYYYY(row.EffectiveDate),
		ExpirationDate: utils.FormatDDMMYYYY(row.ExpirationDate),
		UsageType:      strings.TrimSpace(row.UsageType),
		RoyaltyRate:    strings.TrimSpace(row.RoyaltyRate),
		Note:           strings.TrimSpace(row.Note),
	}
	if w.Seq == 0 {
		w.Seq = rowNum
	}
	if w.Title == "" {
		errs = append(errs, RowError{Row: rowNum, Field: "title", Error: "title is required"})
	}

	if strings.TrimSpace(row.Video) != "" {
		w.VideoID = utils.ExtractVideoID(row.Video)
		if w.VideoID == "" {
			errs = append(errs, RowError{Row: rowNum, Field: "video", Error: "not a YouTube link or video id"})
		}
		w.YouTubeURL = utils.YouTubeWatchURL(w.VideoID)
	}

	var err error
	if w.TimeRange, err = utils.NormalizeTimeRange(row.TimeRange); err != nil {
		errs = append(errs, RowError{Row: rowNum, Field: "time_range", Error: err.Error()})
	}
	if w.Duration, err = utils.NormalizeHHMMSS(row.Duration); err != nil {
		errs = append(errs, RowError{Row: rowNum, Field: "duration", Error: err.Error()})
	}
	return w, errs
}

// ListWorks lists a contract's works, or only one annex's when annexNo is set.
func (s *WorkService) ListWorks(ctx context.Context, contractNo, annexNo string) ([]*models.Work, error) {
	contractNo = utils.NormalizeKey(contractNo)
	annexNo = utils.NormalizeKey(annexNo)

	var (
		list []*models.Work
		err  error
	)
	if annexNo == "" {
		list, err = s.works.ListByContract(ctx, contractNo)
	} else {
		list, err = s.works.ListByAnnex(ctx, contractNo, annexNo)
	}
	if err != nil {
		return nil, storeError(err, "Works", "list")
	}
	if list == nil {
		list = []*models.Work{}
	}
	return list, nil
}
