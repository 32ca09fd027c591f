package discord

import (
	"testing"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/svml/uriage-bot/internal/domain/report"
)

func textInputs(t *testing.T, data *discordgo.InteractionResponseData) map[string]discordgo.TextInput {
	t.Helper()
	inputs := make(map[string]discordgo.TextInput)
	for _, c := range data.Components {
		row, ok := c.(discordgo.ActionsRow)
		require.True(t, ok)
		require.Len(t, row.Components, 1)
		input, ok := row.Components[0].(discordgo.TextInput)
		require.True(t, ok)
		inputs[input.CustomID] = input
	}
	return inputs
}

func TestNewReportModal_Blank(t *testing.T) {
	data := NewReportModal(nil, "")

	assert.Equal(t, CustomIDReportModal, data.CustomID)
	assert.Equal(t, "売上報告", data.Title)

	inputs := textInputs(t, data)
	require.Len(t, inputs, 5)
	for _, field := range []string{report.FieldDate, report.FieldTotal, report.FieldCash, report.FieldCard, report.FieldExpenses} {
		input, ok := inputs[field]
		require.True(t, ok, field)
		assert.True(t, input.Required)
		assert.Empty(t, input.Value)
		assert.NotEmpty(t, input.Placeholder)
	}
}

func TestNewReportModal_Prefilled(t *testing.T) {
	rep := &report.Report{
		Date:          "2025-07-07",
		TotalAmount:   300000,
		CashAmount:    120000,
		CardAmount:    150000,
		ExpenseAmount: 40000,
	}

	data := NewReportModal(rep, "123456789")

	assert.Equal(t, "sales_report_edit_modal_2025-07-07_123456789", data.CustomID)
	assert.Equal(t, "売上報告の修正", data.Title)

	// The edit custom id must round-trip through the dispatch pattern.
	captures, ok := Pattern(CustomIDEditModalPattern).Match(data.CustomID)
	require.True(t, ok)
	assert.Equal(t, []string{"2025-07-07", "123456789"}, captures)

	inputs := textInputs(t, data)
	assert.Equal(t, "7/7", inputs[report.FieldDate].Value)
	assert.Equal(t, "300000", inputs[report.FieldTotal].Value)
	assert.Equal(t, "120000", inputs[report.FieldCash].Value)
	assert.Equal(t, "150000", inputs[report.FieldCard].Value)
	assert.Equal(t, "40000", inputs[report.FieldExpenses].Value)

	// Prefilled inputs drop their placeholders.
	assert.Empty(t, inputs[report.FieldTotal].Placeholder)
}
