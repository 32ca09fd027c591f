package service

import (
	"context"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/svml/uriage-bot/internal/domain/report"
	"github.com/svml/uriage-bot/internal/repository"
)

// SummaryTotals aggregates the amount columns over a month
type SummaryTotals struct {
	Total     int64 `json:"totalAmount"`
	Cash      int64 `json:"cashAmount"`
	Card      int64 `json:"cardAmount"`
	Expense   int64 `json:"expenseAmount"`
	Remainder int64 `json:"remainder"`
}

// MonthlySummary is a tenant's reports for one month plus their totals
type MonthlySummary struct {
	TenantID string           `json:"tenantId"`
	Year     int              `json:"year"`
	Month    time.Month       `json:"month"`
	Reports  []*report.Report `json:"reports"`
	Totals   SummaryTotals    `json:"totals"`
}

// SummaryService aggregates persisted reports for reporting surfaces
type SummaryService struct {
	reports *repository.ReportRepository
	logger  *zap.Logger
}

// NewSummaryService creates a new SummaryService
func NewSummaryService(reports *repository.ReportRepository, logger *zap.Logger) *SummaryService {
	return &SummaryService{reports: reports, logger: logger}
}

// Monthly lists a tenant's reports for the month, sorted by date, with
// aggregated totals. A month with no reports yields an empty summary.
func (s *SummaryService) Monthly(ctx context.Context, tenantID string, year int, month time.Month) (*MonthlySummary, error) {
	reports, err := s.reports.ListMonth(ctx, tenantID, year, month)
	if err != nil {
		return nil, err
	}

	sort.Slice(reports, func(i, j int) bool {
		return reports[i].Date < reports[j].Date
	})

	summary := &MonthlySummary{
		TenantID: tenantID,
		Year:     year,
		Month:    month,
		Reports:  reports,
	}
	for _, rep := range reports {
		summary.Totals.Total += rep.TotalAmount
		summary.Totals.Cash += rep.CashAmount
		summary.Totals.Card += rep.CardAmount
		summary.Totals.Expense += rep.ExpenseAmount
		summary.Totals.Remainder += rep.Remainder
	}

	s.logger.Debug("Monthly summary built",
		zap.String("tenant_id", tenantID),
		zap.Int("year", year),
		zap.Int("month", int(month)),
		zap.Int("report_count", len(reports)))
	return summary, nil
}
