package repositories

import (
	"context"
	"time"

	"github.com/stevedao0/contract-service/internal/models"
)

// Summary is a row count with the sum of total_amount over those rows.
type Summary struct {
	Count      int64
	TotalValue int64
}

// DatedValue is one contract's signing date and total amount.
type DatedValue struct {
	At    time.Time
	Value int64
}

// SUM over BIGINT is NUMERIC on PostgreSQL; the cast keeps both backends
// scanning into int64.
const sumTotalAmount = `CAST(COALESCE(SUM(total_amount), 0) AS BIGINT)`

// unknownChannel labels contracts with neither channel name nor id.
const unknownChannel = "(unknown)"

func (r *contractRepo) SummaryByYear(ctx context.Context, year int, handler string) (Summary, error) {
	var s Summary
	err := r.ex.QueryRow(ctx, `
        SELECT COUNT(*), `+sumTotalAmount+`
          FROM contracts
         WHERE contract_year=$1 AND ($2='' OR handler_email=$2)`, year, handler).Scan(&s.Count, &s.TotalValue)
	return s, err
}

// TopChannelsByYear ranks channels by the total value of their contracts.
func (r *contractRepo) TopChannelsByYear(ctx context.Context, year int, handler string, limit int) ([]models.ChannelTotal, error) {
	rows, err := r.ex.Query(ctx, `
        SELECT COALESCE(NULLIF(channel_name, ''), NULLIF(channel_id, ''), '`+unknownChannel+`') AS channel,
               `+sumTotalAmount+` AS total
          FROM contracts
         WHERE contract_year=$1 AND ($2='' OR handler_email=$2)
         GROUP BY 1
         ORDER BY total DESC, channel ASC
         LIMIT $3`, year, handler, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.ChannelTotal
	for rows.Next() {
		var ct models.ChannelTotal
		if err := rows.Scan(&ct.Channel, &ct.TotalValue); err != nil {
			return nil, err
		}
		out = append(out, ct)
	}
	return out, rows.Err()
}

// SignedBetween returns contracts signed in [from, to). Unsigned contracts
// are skipped.
func (r *contractRepo) SignedBetween(ctx context.Context, from, to time.Time, handler string) ([]DatedValue, error) {
	rows, err := r.ex.Query(ctx, `
        SELECT signed_on, total_amount
          FROM contracts
         WHERE signed_on IS NOT NULL
           AND signed_on >= $1 AND signed_on < $2
           AND ($3='' OR handler_email=$3)
         ORDER BY signed_on ASC`, from, to, handler)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []DatedValue
	for rows.Next() {
		var dv DatedValue
		if err := rows.Scan(&dv.At, &dv.Value); err != nil {
			return nil, err
		}
		out = append(out, dv)
	}
	return out, rows.Err()
}

// SummaryByYear counts the annexes whose parent contract belongs to year.
func (r *annexRepo) SummaryByYear(ctx context.Context, year int, handler string) (Summary, error) {
	var s Summary
	err := r.ex.QueryRow(ctx, `
        SELECT COUNT(*), CAST(COALESCE(SUM(a.total_amount), 0) AS BIGINT)
          FROM annexes a
          JOIN contracts c ON c.contract_no = a.contract_no
         WHERE c.contract_year=$1 AND ($2='' OR a.handler_email=$2)`, year, handler).Scan(&s.Count, &s.TotalValue)
	return s, err
}
