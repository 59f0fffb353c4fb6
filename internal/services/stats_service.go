package services

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/stevedao0/contract-service/internal/dtos"
	"github.com/stevedao0/contract-service/internal/models"
	"github.com/stevedao0/contract-service/internal/repositories"
)

const (
	ReportSourceContracts = "contracts"
	ReportSourceWorks     = "works"

	GroupByDay   = "day"
	GroupByWeek  = "week"
	GroupByMonth = "month"
	GroupByYear  = "year"

	topChannelsLimit = 8
)

type StatsService struct {
	contracts repositories.ContractRepository
	annexes   repositories.AnnexRepository
	works     repositories.WorkRepository

	now func() time.Time
}

func NewStatsService(
	contracts repositories.ContractRepository,
	annexes repositories.AnnexRepository,
	works repositories.WorkRepository,
) *StatsService {
	return &StatsService{contracts: contracts, annexes: annexes, works: works, now: time.Now}
}

// Dashboard sums one contract year. year 0 means the current year; a
// non-empty handler narrows every figure to that handler's records.
func (s *StatsService) Dashboard(ctx context.Context, year int, handler string) (*dtos.DashboardResponse, error) {
	if year == 0 {
		year = s.now().Year()
	}
	handler = strings.TrimSpace(handler)

	contracts, err := s.contracts.SummaryByYear(ctx, year, handler)
	if err != nil {
		return nil, storeError(err, "Contract statistics", "load")
	}
	annexes, err := s.annexes.SummaryByYear(ctx, year, handler)
	if err != nil {
		return nil, storeError(err, "Annex statistics", "load")
	}
	works, err := s.works.CountByYear(ctx, year, handler)
	if err != nil {
		return nil, storeError(err, "Works statistics", "load")
	}
	top, err := s.contracts.TopChannelsByYear(ctx, year, handler, topChannelsLimit)
	if err != nil {
		return nil, storeError(err, "Channel statistics", "load")
	}
	if top == nil {
		top = []models.ChannelTotal{}
	}

	return &dtos.DashboardResponse{
		Year:                year,
		Handler:             handler,
		ContractsCount:      contracts.Count,
		AnnexesCount:        annexes.Count,
		WorksCount:          works,
		ContractsTotalValue: contracts.TotalValue,
		AnnexesTotalValue:   annexes.TotalValue,
		TopChannels:         top,
	}, nil
}

/*
Report buckets contracts (by signing date, with their value) or works (by
import date) between start and end inclusive, grouped by day, ISO week,
month or year. Empty arguments fall back to contracts, month, January 1st
of this year and today; a reversed range is swapped.
*/
func (s *StatsService) Report(ctx context.Context, source, groupBy, start, end, handler string) (*dtos.ReportResponse, error) {
	source = strings.ToLower(strings.TrimSpace(source))
	if source == "" {
		source = ReportSourceContracts
	}
	if source != ReportSourceContracts && source != ReportSourceWorks {
		return nil, validationError(fmt.Sprintf("source must be %s or %s", ReportSourceContracts, ReportSourceWorks), nil)
	}
	groupBy = strings.ToLower(strings.TrimSpace(groupBy))
	if groupBy == "" {
		groupBy = GroupByMonth
	}
	switch groupBy {
	case GroupByDay, GroupByWeek, GroupByMonth, GroupByYear:
	default:
		return nil, validationError("group_by must be day, week, month or year", nil)
	}

	today := s.now().UTC().Truncate(24 * time.Hour)
	from, err := parseReportDate("start", start, time.Date(today.Year(), time.January, 1, 0, 0, 0, 0, time.UTC))
	if err != nil {
		return nil, err
	}
	to, err := parseReportDate("end", end, today)
	if err != nil {
		return nil, err
	}
	if to.Before(from) {
		from, to = to, from
	}
	handler = strings.TrimSpace(handler)

	buckets := map[string]*dtos.ReportRow{}
	add := func(at time.Time, value int64) {
		key := periodKey(at, groupBy)
		row, ok := buckets[key]
		if !ok {
			row = &dtos.ReportRow{Period: key}
			buckets[key] = row
		}
		row.Count++
		row.TotalValue += value
	}

	// the end day is inclusive
	until := to.AddDate(0, 0, 1)
	if source == ReportSourceWorks {
		stamps, err := s.works.ImportedBetween(ctx, from, until, handler)
		if err != nil {
			return nil, storeError(err, "Works report", "load")
		}
		for _, at := range stamps {
			add(at, 0)
		}
	} else {
		signed, err := s.contracts.SignedBetween(ctx, from, until, handler)
		if err != nil {
			return nil, storeError(err, "Contract report", "load")
		}
		for _, dv := range signed {
			add(dv.At, dv.Value)
		}
	}

	resp := &dtos.ReportResponse{
		Source:  source,
		GroupBy: groupBy,
		Start:   from.Format(time.DateOnly),
		End:     to.Format(time.DateOnly),
		Handler: handler,
		Rows:    make([]dtos.ReportRow, 0, len(buckets)),
	}
	for _, row := range buckets {
		resp.Rows = append(resp.Rows, *row)
		resp.Total += row.Count
		resp.TotalValue += row.TotalValue
	}
	sort.Slice(resp.Rows, func(i, j int) bool { return resp.Rows[i].Period < resp.Rows[j].Period })
	return resp, nil
}

func parseReportDate(name, raw string, fallback time.Time) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return fallback, nil
	}
	d, err := time.Parse(time.DateOnly, raw)
	if err != nil {
		return time.Time{}, validationError(name+" must be a yyyy-mm-dd date", nil)
	}
	return d, nil
}

// periodKey labels t's bucket. Weeks start on Monday and read
// "yyyy-mm-dd..yyyy-mm-dd".
func periodKey(t time.Time, groupBy string) string {
	d := t.UTC()
	switch groupBy {
	case GroupByDay:
		return d.Format(time.DateOnly)
	case GroupByWeek:
		back := (int(d.Weekday()) + 6) % 7
		monday := time.Date(d.Year(), d.Month(), d.Day()-back, 0, 0, 0, 0, time.UTC)
		return monday.Format(time.DateOnly) + ".." + monday.AddDate(0, 0, 6).Format(time.DateOnly)
	case GroupByMonth:
		return d.Format("2006-01")
	default:
		return d.Format("2006")
	}
}
