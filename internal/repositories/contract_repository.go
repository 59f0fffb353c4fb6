package repositories

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/stevedao0/contract-service/internal/models"
	"github.com/stevedao0/contract-service/internal/utils"
)

type ContractRepository interface {
	Create(ctx context.Context, c *models.Contract) (*models.Contract, error)
	GetByContractNo(ctx context.Context, contractNo string) (*models.Contract, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.Contract, error)
	ListByYear(ctx context.Context, year int) ([]*models.Contract, error)
	Search(ctx context.Context, year int, query string) ([]*models.Contract, error)

	// handler "" matches every contract.
	SummaryByYear(ctx context.Context, year int, handler string) (Summary, error)
	TopChannelsByYear(ctx context.Context, year int, handler string, limit int) ([]models.ChannelTotal, error)
	SignedBetween(ctx context.Context, from, to time.Time, handler string) ([]DatedValue, error)

	// UpdateIfVersion writes every mutable column of c when the stored
	// row_version equals expected. c.UpdatedBy names the actor.
	UpdateIfVersion(ctx context.Context, c *models.Contract, expected int64) (*models.Contract, error)
	UpdateWithRetry(ctx context.Context, contractNo string, mutate func(*models.Contract) error) (*models.Contract, error)

	// Delete removes the contract, its annexes and every work imported for
	// either, in one transaction.
	Delete(ctx context.Context, contractNo string) (DeleteResult, error)
}

type contractRepo struct {
	*BaseVersionedRepo[*models.Contract]
	ex Executor
}

var contractHeadColumns = []string{
	"id", "contract_no", "contract_year", "signed_on", "business_field", "region_code", "field_code",
}

// the natural key and id never change after insert
var contractMutableHeadColumns = contractHeadColumns[2:]

var contractSelect = "SELECT " + columnList("", contractHeadColumns, termsColumns, trackingColumns) + " FROM contracts"

func NewContractRepository(ex Executor) ContractRepository {
	r := &contractRepo{ex: ex}
	r.BaseVersionedRepo = NewBaseRepo(ex, contractSelect+" WHERE contract_no=$1", r.scanContract)
	return r
}

func (r *contractRepo) Create(ctx context.Context, c *models.Contract) (*models.Contract, error) {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	ts := now()
	c.CreatedAt, c.UpdatedAt = ts, ts
	if c.UpdatedBy == "" {
		c.UpdatedBy = c.CreatedBy
	}
	c.RowVersion = models.InitialRowVersion

	args := []any{c.ID, c.ContractNo, c.ContractYear, c.SignedOn, c.Field, c.RegionCode, c.FieldCode}
	args = append(args, termsArgs(&c.Terms)...)
	args = append(args, c.CreatedAt, c.UpdatedAt, c.CreatedBy, c.UpdatedBy, c.RowVersion)

	q := fmt.Sprintf(`
        INSERT INTO contracts (%s) VALUES (%s)
        RETURNING %s`,
		columnList("", contractHeadColumns, termsColumns, trackingColumns),
		placeholders(1, len(args)),
		columnList("", contractHeadColumns, termsColumns, trackingColumns),
	)
	return r.scanContract(r.ex.QueryRow(ctx, q, args...))
}

func (r *contractRepo) GetByContractNo(ctx context.Context, contractNo string) (*models.Contract, error) {
	return r.GetByKey(ctx, contractNo)
}

func (r *contractRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Contract, error) {
	return r.scanContract(r.ex.QueryRow(ctx, contractSelect+" WHERE id=$1", id))
}

func (r *contractRepo) ListByYear(ctx context.Context, year int) ([]*models.Contract, error) {
	return r.Search(ctx, year, "")
}

func (r *contractRepo) Search(ctx context.Context, year int, query string) ([]*models.Contract, error) {
	var (
		where []string
		args  []any
	)
	if year > 0 {
		args = append(args, year)
		where = append(where, "contract_year="+placeholder(len(args)))
	}
	if q := strings.TrimSpace(query); q != "" {
		args = append(args, "%"+strings.ToLower(q)+"%")
		p := placeholder(len(args))
		where = append(where, fmt.Sprintf(
			"(LOWER(contract_no) LIKE %[1]s OR LOWER(channel_name) LIKE %[1]s OR LOWER(party_name) LIKE %[1]s OR LOWER(channel_id) LIKE %[1]s)", p))
	}

	stmt := contractSelect
	if len(where) > 0 {
		stmt += " WHERE " + strings.Join(where, " AND ")
	}
	stmt += " ORDER BY contract_year DESC, contract_no ASC"

	rows, err := r.ex.Query(ctx, stmt, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*models.Contract
	for rows.Next() {
		c, err := r.scanContract(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *contractRepo) UpdateIfVersion(ctx context.Context, c *models.Contract, expected int64) (*models.Contract, error) {
	c.UpdatedAt = now()

	args := []any{c.ContractYear, c.SignedOn, c.Field, c.RegionCode, c.FieldCode}
	args = append(args, termsArgs(&c.Terms)...)
	n := len(args)
	args = append(args, c.UpdatedAt, c.UpdatedBy, c.ContractNo, expected)

	q := fmt.Sprintf(`
        UPDATE contracts
           SET %s,
               updated_at=%s,
               updated_by=%s,
               row_version=row_version+1
         WHERE contract_no=%s
           AND row_version=%s
        RETURNING %s`,
		setClause(1, contractMutableHeadColumns, termsColumns),
		placeholder(n+1), placeholder(n+2), placeholder(n+3), placeholder(n+4),
		columnList("", contractHeadColumns, termsColumns, trackingColumns),
	)
	return r.CompareAndSwap(ctx, q, args, expected, c.ContractNo)
}

func (r *contractRepo) UpdateWithRetry(ctx context.Context, contractNo string, mutate func(*models.Contract) error) (*models.Contract, error) {
	return r.BaseVersionedRepo.UpdateWithRetry(ctx, mutate, r.UpdateIfVersion, contractNo)
}

func (r *contractRepo) Delete(ctx context.Context, contractNo string) (DeleteResult, error) {
	var res DeleteResult
	err := r.ex.InTx(ctx, func(tx Executor) error {
		// lock the owner first: an import holding it finishes before we
		// collect its works, and a later one finds the owner gone
		if err := lockRow(ctx, tx, lockUpdate, "contracts", "contract_no=$1", contractNo); err != nil {
			return err
		}
		var err error
		if res.Works, err = tx.Exec(ctx, `DELETE FROM works WHERE contract_no=$1`, contractNo); err != nil {
			return err
		}
		if res.Annexes, err = tx.Exec(ctx, `DELETE FROM annexes WHERE contract_no=$1`, contractNo); err != nil {
			return err
		}
		n, err := tx.Exec(ctx, `DELETE FROM contracts WHERE contract_no=$1`, contractNo)
		if err != nil {
			return err
		}
		if n == 0 {
			return utils.ErrNotFound
		}
		return nil
	})
	if err != nil {
		return DeleteResult{}, err
	}
	return res, nil
}

func (r *contractRepo) scanContract(row Row) (*models.Contract, error) {
	c := &models.Contract{}
	dest := []any{&c.ID, &c.ContractNo, &c.ContractYear, &c.SignedOn, &c.Field, &c.RegionCode, &c.FieldCode}
	dest = append(dest, termsDest(&c.Terms)...)
	dest = append(dest, &c.CreatedAt, &c.UpdatedAt, &c.CreatedBy, &c.UpdatedBy, &c.RowVersion)
	if err := row.Scan(dest...); err != nil {
		return nil, err
	}
	return c, nil
}
