package discord

import (
	"fmt"
	"strconv"

	"github.com/bwmarrin/discordgo"

	"github.com/svml/uriage-bot/internal/domain/report"
)

// NewReportModal builds the sales report modal. A non-nil prefill turns it
// into an edit form carrying the original date and message id in its
// custom id.
func NewReportModal(prefill *report.Report, messageID string) *discordgo.InteractionResponseData {
	customID := CustomIDReportModal
	title := "売上報告"
	if prefill != nil {
		customID = fmt.Sprintf("%s%s_%s", CustomIDEditModalPrefix, prefill.Date, messageID)
		title = "売上報告の修正"
	}

	return &discordgo.InteractionResponseData{
		CustomID: customID,
		Title:    title,
		Components: []discordgo.MessageComponent{
			textInputRow(report.FieldDate, "日付 (例: 7/7)", "7/7", prefillDate(prefill)),
			textInputRow(report.FieldTotal, "総売り (半角数字)", "300000", prefillAmount(prefill, func(r *report.Report) int64 { return r.TotalAmount })),
			textInputRow(report.FieldCash, "現金 (半角数字)", "150000", prefillAmount(prefill, func(r *report.Report) int64 { return r.CashAmount })),
			textInputRow(report.FieldCard, "カード (半角数字)", "150000", prefillAmount(prefill, func(r *report.Report) int64 { return r.CardAmount })),
			textInputRow(report.FieldExpenses, "諸経費 (半角数字)", "10000", prefillAmount(prefill, func(r *report.Report) int64 { return r.ExpenseAmount })),
		},
	}
}

func textInputRow(customID, label, placeholder, value string) discordgo.ActionsRow {
	if value != "" {
		placeholder = ""
	}
	return discordgo.ActionsRow{
		Components: []discordgo.MessageComponent{
			discordgo.TextInput{
				CustomID:    customID,
				Label:       label,
				Style:       discordgo.TextInputShort,
				Required:    true,
				Placeholder: placeholder,
				Value:       value,
			},
		},
	}
}

func prefillDate(rep *report.Report) string {
	if rep == nil {
		return ""
	}
	return rep.DateShort()
}

func prefillAmount(rep *report.Report, get func(*report.Report) int64) string {
	if rep == nil {
		return ""
	}
	return strconv.FormatInt(get(rep), 10)
}
