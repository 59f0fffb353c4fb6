package repositories

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/stevedao0/contract-service/internal/models"
)

type WorkRepository interface {
	// CreateBatch inserts every row or none. Each row's contract (and annex,
	// when set) must exist; otherwise it fails with utils.ErrNotFound.
	CreateBatch(ctx context.Context, works []*models.Work) (int, error)
	ListByContract(ctx context.Context, contractNo string) ([]*models.Work, error)
	ListByAnnex(ctx context.Context, contractNo, annexNo string) ([]*models.Work, error)
	// handler "" matches every row.
	CountByYear(ctx context.Context, year int, handler string) (int64, error)
	ImportedBetween(ctx context.Context, from, to time.Time, handler string) ([]time.Time, error)
}

type workRepo struct {
	ex Executor
}

var workColumns = []string{
	"id", "year", "contract_no", "annex_no",
	"channel_name", "channel_id", "channel_link", "handler",
	"seq", "video_id", "youtube_url", "work_code", "title", "author", "composer", "lyricist",
	"time_range", "duration", "effective_date", "expiration_date", "usage_type", "royalty_rate", "note",
	"imported_at", "created_by",
}

var workSelect = "SELECT " + columnList("", workColumns) + " FROM works"

func NewWorkRepository(ex Executor) WorkRepository {
	return &workRepo{ex: ex}
}

func (r *workRepo) CreateBatch(ctx context.Context, works []*models.Work) (int, error) {
	if len(works) == 0 {
		return 0, nil
	}
	q := fmt.Sprintf(`INSERT INTO works (%s) VALUES (%s)`,
		columnList("", workColumns), placeholders(1, len(workColumns)))

	ts := now()
	err := r.ex.InTx(ctx, func(tx Executor) error {
		if err := lockOwners(ctx, tx, works); err != nil {
			return err
		}
		for _, w := range works {
			if w.ID == uuid.Nil {
				w.ID = uuid.New()
			}
			w.ImportedAt = ts
			if _, err := tx.Exec(ctx, q,
				w.ID, w.Year, w.ContractNo, w.AnnexNo,
				w.ChannelName, w.ChannelID, w.ChannelLink, w.Handler,
				w.Seq, w.VideoID, w.YouTubeURL, w.WorkCode, w.Title, w.Author, w.Composer, w.Lyricist,
				w.TimeRange, w.Duration, w.EffectiveDate, w.ExpirationDate, w.UsageType, w.RoyaltyRate, w.Note,
				w.ImportedAt, w.CreatedBy,
			); err != nil {
				return fmt.Errorf("insert work seq %d: %w", w.Seq, err)
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return len(works), nil
}

func (r *workRepo) ListByContract(ctx context.Context, contractNo string) ([]*models.Work, error) {
	return r.list(ctx, workSelect+" WHERE contract_no=$1 ORDER BY annex_no ASC, seq ASC", contractNo)
}

func (r *workRepo) ListByAnnex(ctx context.Context, contractNo, annexNo string) ([]*models.Work, error) {
	return r.list(ctx, workSelect+" WHERE contract_no=$1 AND annex_no=$2 ORDER BY seq ASC", contractNo, annexNo)
}

func (r *workRepo) CountByYear(ctx context.Context, year int, handler string) (int64, error) {
	var n int64
	err := r.ex.QueryRow(ctx,
		`SELECT COUNT(*) FROM works WHERE year=$1 AND ($2='' OR handler=$2)`, year, handler).Scan(&n)
	return n, err
}

// ImportedBetween returns the import time of every row in [from, to).
func (r *workRepo) ImportedBetween(ctx context.Context, from, to time.Time, handler string) ([]time.Time, error) {
	rows, err := r.ex.Query(ctx, `
        SELECT imported_at FROM works
         WHERE imported_at >= $1 AND imported_at < $2
           AND ($3='' OR handler=$3)
         ORDER BY imported_at ASC`, from, to, handler)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []time.Time
	for rows.Next() {
		var at time.Time
		if err := rows.Scan(&at); err != nil {
			return nil, err
		}
		out = append(out, at)
	}
	return out, rows.Err()
}

// lockOwners share-locks every contract and annex the batch hangs off, in
// key order.
func lockOwners(ctx context.Context, tx Executor, works []*models.Work) error {
	var (
		contracts []string
		annexes   []models.AnnexKey
	)
	for _, w := range works {
		if !slices.Contains(contracts, w.ContractNo) {
			contracts = append(contracts, w.ContractNo)
		}
		key := models.AnnexKey{ContractNo: w.ContractNo, AnnexNo: w.AnnexNo}
		if w.AnnexNo != "" && !slices.Contains(annexes, key) {
			annexes = append(annexes, key)
		}
	}
	slices.Sort(contracts)
	slices.SortFunc(annexes, func(a, b models.AnnexKey) int {
		return strings.Compare(a.String(), b.String())
	})

	for _, no := range contracts {
		if err := lockRow(ctx, tx, lockShare, "contracts", "contract_no=$1", no); err != nil {
			return fmt.Errorf("contract %s: %w", no, err)
		}
	}
	for _, key := range annexes {
		if err := lockRow(ctx, tx, lockShare, "annexes", "contract_no=$1 AND annex_no=$2", key.ContractNo, key.AnnexNo); err != nil {
			return fmt.Errorf("annex %s: %w", key, err)
		}
	}
	return nil
}

func (r *workRepo) list(ctx context.Context, q string, args ...any) ([]*models.Work, error) {
	rows, err := r.ex.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*models.Work
	for rows.Next() {
		w := &models.Work{}
		if err := rows.Scan(
			&w.ID, &w.Year, &w.ContractNo, &w.AnnexNo,
			&w.ChannelName, &w.ChannelID, &w.ChannelLink, &w.Handler,
			&w.Seq, &w.VideoID, &w.YouTubeURL, &w.WorkCode, &w.Title, &w.Author, &w.Composer, &w.Lyricist,
			&w.TimeRange, &w.Duration, &w.EffectiveDate, &w.ExpirationDate, &w.UsageType, &w.RoyaltyRate, &w.Note,
			&w.ImportedAt, &w.CreatedBy,
		); err != nil {
			return nil, err
		}
		out = append(out, w)
	}
	return out, rows.Err()
}
