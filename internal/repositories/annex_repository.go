package repositories

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/stevedao0/contract-service/internal/models"
	"github.com/stevedao0/contract-service/internal/utils"
)

type AnnexRepository interface {
	Create(ctx context.Context, a *models.Annex) (*models.Annex, error)
	Get(ctx context.Context, key models.AnnexKey) (*models.Annex, error)
	ListByContract(ctx context.Context, contractNo string) ([]*models.Annex, error)
	ListByYear(ctx context.Context, year int) ([]*models.Annex, error)
	SummaryByYear(ctx context.Context, year int, handler string) (Summary, error)
	UpdateIfVersion(ctx context.Context, a *models.Annex, expected int64) (*models.Annex, error)
	UpdateWithRetry(ctx context.Context, key models.AnnexKey, mutate func(*models.Annex) error) (*models.Annex, error)
	// Delete removes the annex and the works imported for it.
	Delete(ctx context.Context, key models.AnnexKey) (DeleteResult, error)
}

type annexRepo struct {
	*BaseVersionedRepo[*models.Annex]
	ex Executor
}

var annexHeadColumns = []string{"id", "contract_id", "contract_no", "annex_no", "signed_on"}

var annexSelect = "SELECT " + columnList("", annexHeadColumns, termsColumns, trackingColumns) + " FROM annexes"

func NewAnnexRepository(ex Executor) AnnexRepository {
	r := &annexRepo{ex: ex}
	r.BaseVersionedRepo = NewBaseRepo(ex, annexSelect+" WHERE contract_no=$1 AND annex_no=$2", r.scanAnnex)
	return r
}

func (r *annexRepo) Create(ctx context.Context, a *models.Annex) (*models.Annex, error) {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	ts := now()
	a.CreatedAt, a.UpdatedAt = ts, ts
	if a.UpdatedBy == "" {
		a.UpdatedBy = a.CreatedBy
	}
	a.RowVersion = models.InitialRowVersion

	args := []any{a.ID, a.ContractID, a.ContractNo, a.AnnexNo, a.SignedOn}
	args = append(args, termsArgs(&a.Terms)...)
	args = append(args, a.CreatedAt, a.UpdatedAt, a.CreatedBy, a.UpdatedBy, a.RowVersion)

	cols := columnList("", annexHeadColumns, termsColumns, trackingColumns)
	q := fmt.Sprintf(`
        INSERT INTO annexes (%s) VALUES (%s)
        RETURNING %s`, cols, placeholders(1, len(args)), cols)
	return r.scanAnnex(r.ex.QueryRow(ctx, q, args...))
}

func (r *annexRepo) Get(ctx context.Context, key models.AnnexKey) (*models.Annex, error) {
	return r.GetByKey(ctx, key.ContractNo, key.AnnexNo)
}

func (r *annexRepo) ListByContract(ctx context.Context, contractNo string) ([]*models.Annex, error) {
	return r.list(ctx, annexSelect+" WHERE contract_no=$1 ORDER BY annex_no ASC", contractNo)
}

// ListByYear returns the annexes whose parent contract belongs to year.
func (r *annexRepo) ListByYear(ctx context.Context, year int) ([]*models.Annex, error) {
	q := fmt.Sprintf(`
        SELECT %s
          FROM annexes a
          JOIN contracts c ON c.contract_no = a.contract_no
         WHERE c.contract_year=$1
         ORDER BY a.contract_no ASC, a.annex_no ASC`,
		columnList("a.", annexHeadColumns, termsColumns, trackingColumns))
	return r.list(ctx, q, year)
}

func (r *annexRepo) list(ctx context.Context, q string, args ...any) ([]*models.Annex, error) {
	rows, err := r.ex.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*models.Annex
	for rows.Next() {
		a, err := r.scanAnnex(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (r *annexRepo) UpdateIfVersion(ctx context.Context, a *models.Annex, expected int64) (*models.Annex, error) {
	a.UpdatedAt = now()

	args := []any{a.SignedOn}
	args = append(args, termsArgs(&a.Terms)...)
	n := len(args)
	args = append(args, a.UpdatedAt, a.UpdatedBy, a.ContractNo, a.AnnexNo, expected)

	q := fmt.Sprintf(`
        UPDATE annexes
           SET %s,
               updated_at=%s,
               updated_by=%s,
               row_version=row_version+1
         WHERE contract_no=%s
           AND annex_no=%s
           AND row_version=%s
        RETURNING %s`,
		setClause(1, []string{"signed_on"}, termsColumns),
		placeholder(n+1), placeholder(n+2), placeholder(n+3), placeholder(n+4), placeholder(n+5),
		columnList("", annexHeadColumns, termsColumns, trackingColumns),
	)
	return r.CompareAndSwap(ctx, q, args, expected, a.ContractNo, a.AnnexNo)
}

func (r *annexRepo) UpdateWithRetry(ctx context.Context, key models.AnnexKey, mutate func(*models.Annex) error) (*models.Annex, error) {
	return r.BaseVersionedRepo.UpdateWithRetry(ctx, mutate, r.UpdateIfVersion, key.ContractNo, key.AnnexNo)
}

func (r *annexRepo) Delete(ctx context.Context, key models.AnnexKey) (DeleteResult, error) {
	var res DeleteResult
	err := r.ex.InTx(ctx, func(tx Executor) error {
		if err := lockRow(ctx, tx, lockUpdate, "annexes", "contract_no=$1 AND annex_no=$2", key.ContractNo, key.AnnexNo); err != nil {
			return err
		}
		var err error
		res.Works, err = tx.Exec(ctx,
			`DELETE FROM works WHERE contract_no=$1 AND annex_no=$2`, key.ContractNo, key.AnnexNo)
		if err != nil {
			return err
		}
		n, err := tx.Exec(ctx,
			`DELETE FROM annexes WHERE contract_no=$1 AND annex_no=$2`, key.ContractNo, key.AnnexNo)
		if err != nil {
			return err
		}
		if n == 0 {
			return utils.ErrNotFound
		}
		res.Annexes = n
		return nil
	})
	if err != nil {
		return DeleteResult{}, err
	}
	return res, nil
}

func (r *annexRepo) scanAnnex(row Row) (*models.Annex, error) {
	a := &models.Annex{}
	dest := []any{&a.ID, &a.ContractID, &a.ContractNo, &a.AnnexNo, &a.SignedOn}
	dest = append(dest, termsDest(&a.Terms)...)
	dest = append(dest, &a.CreatedAt, &a.UpdatedAt, &a.CreatedBy, &a.UpdatedBy, &a.RowVersion)
	if err := row.Scan(dest...); err != nil {
		return nil, err
	}
	return a, nil
}
