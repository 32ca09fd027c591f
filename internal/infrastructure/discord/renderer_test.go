package discord

import (
	"testing"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/svml/uriage-bot/internal/application/port"
	"github.com/svml/uriage-bot/internal/domain/report"
)

func sampleReport() *report.Report {
	return &report.Report{
		TenantID:             "guild-1",
		Date:                 "2025-07-07",
		SubmitterID:          "u1",
		SubmitterDisplayName: "Tanaka",
		TotalAmount:          300000,
		CashAmount:           120000,
		CardAmount:           150000,
		ExpenseAmount:        40000,
		Remainder:            140000,
		SubmittedAt:          time.Date(2025, 7, 7, 21, 30, 0, 0, time.UTC),
	}
}

func TestBuildReportEmbed(t *testing.T) {
	t.Run("pending report", func(t *testing.T) {
		embed := buildReportEmbed(sampleReport(), false)

		assert.Equal(t, "📊 売上報告 (7/7)", embed.Title)
		assert.Equal(t, colorPending, embed.Color)
		require.Len(t, embed.Fields, 5)
		assert.Equal(t, "¥300,000", embed.Fields[0].Value)
		assert.Equal(t, "¥140,000", embed.Fields[4].Value)
		assert.Equal(t, "報告者: Tanaka", embed.Footer.Text)
	})

	t.Run("approved report", func(t *testing.T) {
		rep := sampleReport()
		rep.Approval = &report.Approval{
			Status:           report.StatusApproved,
			ActorID:          "boss",
			ActorDisplayName: "Boss",
			DecidedAt:        time.Now(),
		}

		embed := buildReportEmbed(rep, false)
		assert.Equal(t, colorApproved, embed.Color)
		require.Len(t, embed.Fields, 6)
		assert.Equal(t, "ステータス", embed.Fields[5].Name)
		assert.Equal(t, "✅ 承認済み (by Boss)", embed.Fields[5].Value)
	})

	t.Run("rejected report", func(t *testing.T) {
		rep := sampleReport()
		rep.Approval = &report.Approval{
			Status:           report.StatusRejected,
			ActorDisplayName: "Boss",
		}

		embed := buildReportEmbed(rep, false)
		assert.Equal(t, colorRejected, embed.Color)
		assert.Equal(t, "❌ 却下済み (by Boss)", embed.Fields[5].Value)
	})

	t.Run("edited report awaiting re-approval", func(t *testing.T) {
		embed := buildReportEmbed(sampleReport(), true)
		assert.Equal(t, colorEdited, embed.Color)
		assert.Equal(t, "⚠️ 修正済・再承認待ち", embed.Fields[5].Value)
	})

	t.Run("a decision outranks the edited flag", func(t *testing.T) {
		rep := sampleReport()
		rep.Approval = &report.Approval{Status: report.StatusApproved, ActorDisplayName: "Boss"}

		embed := buildReportEmbed(rep, true)
		assert.Equal(t, colorApproved, embed.Color)
	})
}

func TestBuildReportComponents(t *testing.T) {
	buttonsOf := func(t *testing.T, components []discordgo.MessageComponent) []discordgo.Button {
		t.Helper()
		require.Len(t, components, 1)
		row, ok := components[0].(discordgo.ActionsRow)
		require.True(t, ok)

		buttons := make([]discordgo.Button, 0, len(row.Components))
		for _, c := range row.Components {
			button, ok := c.(discordgo.Button)
			require.True(t, ok)
			buttons = append(buttons, button)
		}
		return buttons
	}

	t.Run("all affordances enabled", func(t *testing.T) {
		components := buildReportComponents(sampleReport(),
			[]port.Affordance{port.AffordanceApprove, port.AffordanceReject, port.AffordanceEdit})

		buttons := buttonsOf(t, components)
		require.Len(t, buttons, 3)
		assert.Equal(t, "uriage_approve_2025-07-07", buttons[0].CustomID)
		assert.Equal(t, "uriage_reject_2025-07-07", buttons[1].CustomID)
		assert.Equal(t, CustomIDEditButton, buttons[2].CustomID)
		for _, b := range buttons {
			assert.False(t, b.Disabled)
		}
	})

	t.Run("decided report keeps only edit enabled", func(t *testing.T) {
		components := buildReportComponents(sampleReport(),
			[]port.Affordance{port.AffordanceEdit})

		buttons := buttonsOf(t, components)
		assert.True(t, buttons[0].Disabled)
		assert.True(t, buttons[1].Disabled)
		assert.False(t, buttons[2].Disabled)
	})
}

func TestFormatYen(t *testing.T) {
	tests := []struct {
		amount int64
		want   string
	}{
		{0, "¥0"},
		{100, "¥100"},
		{1000, "¥1,000"},
		{300000, "¥300,000"},
		{1234567, "¥1,234,567"},
		{-5000, "¥-5,000"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, formatYen(tt.amount))
	}
}
