// Package export renders monthly summaries into downloadable workbooks.
package export

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/svml/uriage-bot/internal/application/service"
	"github.com/svml/uriage-bot/internal/domain/report"
)

const summarySheet = "売上報告"

// ExcelExporter writes monthly summaries as xlsx workbooks
type ExcelExporter struct {
	logger *zap.Logger
}

// NewExcelExporter creates a new ExcelExporter
func NewExcelExporter(logger *zap.Logger) *ExcelExporter {
	return &ExcelExporter{logger: logger}
}

// Export renders the summary into a single-sheet workbook: one row per
// report, a totals row at the bottom.
func (e *ExcelExporter) Export(summary *service.MonthlySummary) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	// The default sheet is "Sheet1"; rename rather than add-and-delete.
	if err := f.SetSheetName("Sheet1", summarySheet); err != nil {
		return nil, fmt.Errorf("failed to prepare sheet: %w", err)
	}

	headers := []string{"日付", "報告者", "総売り", "現金", "カード", "諸経費", "残金", "ステータス"}
	for i, h := range headers {
		e.setCell(f, cellRef(i, 1), h)
	}

	for i, rep := range summary.Reports {
		row := i + 2
		e.setCell(f, cellRef(0, row), rep.Date)
		e.setCell(f, cellRef(1, row), rep.SubmitterDisplayName)
		e.setCell(f, cellRef(2, row), rep.TotalAmount)
		e.setCell(f, cellRef(3, row), rep.CashAmount)
		e.setCell(f, cellRef(4, row), rep.CardAmount)
		e.setCell(f, cellRef(5, row), rep.ExpenseAmount)
		e.setCell(f, cellRef(6, row), rep.Remainder)
		e.setCell(f, cellRef(7, row), statusLabel(rep))
	}

	totalsRow := len(summary.Reports) + 2
	e.setCell(f, cellRef(0, totalsRow), "合計")
	e.setCell(f, cellRef(2, totalsRow), summary.Totals.Total)
	e.setCell(f, cellRef(3, totalsRow), summary.Totals.Cash)
	e.setCell(f, cellRef(4, totalsRow), summary.Totals.Card)
	e.setCell(f, cellRef(5, totalsRow), summary.Totals.Expense)
	e.setCell(f, cellRef(6, totalsRow), summary.Totals.Remainder)

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}

	e.logger.Info("Monthly workbook exported",
		zap.String("tenant_id", summary.TenantID),
		zap.Int("year", summary.Year),
		zap.Int("month", int(summary.Month)),
		zap.Int("report_count", len(summary.Reports)))
	return buf.Bytes(), nil
}

// Filename names the workbook after the tenant and month.
func (e *ExcelExporter) Filename(summary *service.MonthlySummary) string {
	return fmt.Sprintf("uriage_%s_%04d-%02d.xlsx", summary.TenantID, summary.Year, int(summary.Month))
}

// setCell sets a cell value, logging rather than failing on bad references
func (e *ExcelExporter) setCell(f *excelize.File, cell string, value interface{}) {
	if err := f.SetCellValue(summarySheet, cell, value); err != nil {
		e.logger.Warn("Failed to set cell value",
			zap.String("cell", cell),
			zap.Error(err))
	}
}

// cellRef builds an A1-style reference from zero-based column and one-based
// row; the sheet never grows past column Z.
func cellRef(col, row int) string {
	return fmt.Sprintf("%c%d", 'A'+col, row)
}

func statusLabel(rep *report.Report) string {
	switch {
	case rep.Approval == nil:
		return "承認待ち"
	case rep.Approval.Status == report.StatusApproved:
		return "承認済み"
	default:
		return "却下済み"
	}
}
