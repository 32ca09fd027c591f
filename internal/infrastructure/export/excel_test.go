package export

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/svml/uriage-bot/internal/application/service"
	"github.com/svml/uriage-bot/internal/domain/report"
)

func sampleSummary() *service.MonthlySummary {
	return &service.MonthlySummary{
		TenantID: "guild-1",
		Year:     2025,
		Month:    time.July,
		Reports: []*report.Report{
			{
				Date:                 "2025-07-07",
				SubmitterDisplayName: "Tanaka",
				TotalAmount:          300000,
				CashAmount:           120000,
				CardAmount:           150000,
				ExpenseAmount:        40000,
				Remainder:            140000,
			},
			{
				Date:                 "2025-07-08",
				SubmitterDisplayName: "Suzuki",
				TotalAmount:          200000,
				CashAmount:           80000,
				CardAmount:           100000,
				ExpenseAmount:        20000,
				Remainder:            100000,
				Approval:             &report.Approval{Status: report.StatusApproved, ActorDisplayName: "Boss"},
			},
		},
		Totals: service.SummaryTotals{
			Total:     500000,
			Cash:      200000,
			Card:      250000,
			Expense:   60000,
			Remainder: 240000,
		},
	}
}

func TestExcelExporter_Export(t *testing.T) {
	exporter := NewExcelExporter(zap.NewNop())

	data, err := exporter.Export(sampleSummary())
	require.NoError(t, err)
	require.NotEmpty(t, data)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	require.Contains(t, f.GetSheetList(), summarySheet)

	cell := func(ref string) string {
		v, err := f.GetCellValue(summarySheet, ref)
		require.NoError(t, err)
		return v
	}

	assert.Equal(t, "日付", cell("A1"))
	assert.Equal(t, "残金", cell("G1"))

	assert.Equal(t, "2025-07-07", cell("A2"))
	assert.Equal(t, "Tanaka", cell("B2"))
	assert.Equal(t, "300000", cell("C2"))
	assert.Equal(t, "承認待ち", cell("H2"))

	assert.Equal(t, "2025-07-08", cell("A3"))
	assert.Equal(t, "承認済み", cell("H3"))

	assert.Equal(t, "合計", cell("A4"))
	assert.Equal(t, "500000", cell("C4"))
	assert.Equal(t, "240000", cell("G4"))
}

func TestExcelExporter_Export_EmptyMonth(t *testing.T) {
	exporter := NewExcelExporter(zap.NewNop())

	data, err := exporter.Export(&service.MonthlySummary{
		TenantID: "guild-1",
		Year:     2025,
		Month:    time.July,
	})
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	v, err := f.GetCellValue(summarySheet, "A2")
	require.NoError(t, err)
	assert.Equal(t, "合計", v)
}

func TestExcelExporter_Filename(t *testing.T) {
	exporter := NewExcelExporter(zap.NewNop())
	name := exporter.Filename(sampleSummary())
	assert.Equal(t, "uriage_guild-1_2025-07.xlsx", name)
}
