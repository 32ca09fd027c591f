package discord

import (
	"context"
	"fmt"
	"strconv"

	"github.com/bwmarrin/discordgo"
	"go.uber.org/zap"

	"github.com/svml/uriage-bot/internal/application/port"
	"github.com/svml/uriage-bot/internal/domain/report"
)

// Embed colors per report state
const (
	colorPending  = 0x0099FF
	colorApproved = 0x57F287
	colorRejected = 0xED4245
	colorEdited   = 0xFFA500
)

// Renderer implements port.ReportPresenter on top of a Discord session
type Renderer struct {
	session *discordgo.Session
	logger  *zap.Logger
}

// NewRenderer creates a new Renderer
func NewRenderer(session *discordgo.Session, logger *zap.Logger) *Renderer {
	return &Renderer{session: session, logger: logger}
}

// Present renders the report into a channel message and returns its id
func (r *Renderer) Present(ctx context.Context, req port.RenderRequest) (string, error) {
	embed := buildReportEmbed(req.Report, req.Edited)
	components := buildReportComponents(req.Report, req.Affordances)

	switch req.Mode {
	case port.RenderNew:
		msg, err := r.session.ChannelMessageSendComplex(req.ChannelID, &discordgo.MessageSend{
			Embeds:     []*discordgo.MessageEmbed{embed},
			Components: components,
		})
		if err != nil {
			r.logger.Error("Failed to post report message",
				zap.String("channel_id", req.ChannelID),
				zap.Error(err))
			return "", fmt.Errorf("post report message: %w", err)
		}
		return msg.ID, nil

	case port.RenderUpdate:
		embeds := []*discordgo.MessageEmbed{embed}
		msg, err := r.session.ChannelMessageEditComplex(&discordgo.MessageEdit{
			ID:         req.MessageRef,
			Channel:    req.ChannelID,
			Embeds:     &embeds,
			Components: &components,
		})
		if err != nil {
			r.logger.Error("Failed to update report message",
				zap.String("channel_id", req.ChannelID),
				zap.String("message_id", req.MessageRef),
				zap.Error(err))
			return "", fmt.Errorf("update report message: %w", err)
		}
		return msg.ID, nil

	default:
		return "", fmt.Errorf("unknown render mode %q", req.Mode)
	}
}

func buildReportEmbed(rep *report.Report, edited bool) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Title: fmt.Sprintf("📊 売上報告 (%s)", rep.DateShort()),
		Color: colorPending,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "総売り", Value: formatYen(rep.TotalAmount), Inline: true},
			{Name: "現金", Value: formatYen(rep.CashAmount), Inline: true},
			{Name: "カード", Value: formatYen(rep.CardAmount), Inline: true},
			{Name: "諸経費", Value: formatYen(rep.ExpenseAmount), Inline: true},
			{Name: "残金", Value: formatYen(rep.Remainder), Inline: true},
		},
		Footer: &discordgo.MessageEmbedFooter{
			Text: fmt.Sprintf("報告者: %s", rep.SubmitterDisplayName),
		},
		Timestamp: rep.SubmittedAt.Format("2006-01-02T15:04:05Z07:00"),
	}

	switch {
	case rep.Approval != nil && rep.Approval.Status == report.StatusApproved:
		embed.Color = colorApproved
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:  "ステータス",
			Value: fmt.Sprintf("✅ 承認済み (by %s)", rep.Approval.ActorDisplayName),
		})
	case rep.Approval != nil && rep.Approval.Status == report.StatusRejected:
		embed.Color = colorRejected
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:  "ステータス",
			Value: fmt.Sprintf("❌ 却下済み (by %s)", rep.Approval.ActorDisplayName),
		})
	case edited:
		embed.Color = colorEdited
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:  "ステータス",
			Value: "⚠️ 修正済・再承認待ち",
		})
	}

	return embed
}

func buildReportComponents(rep *report.Report, affordances []port.Affordance) []discordgo.MessageComponent {
	enabled := make(map[port.Affordance]bool, len(affordances))
	for _, a := range affordances {
		enabled[a] = true
	}

	return []discordgo.MessageComponent{
		discordgo.ActionsRow{
			Components: []discordgo.MessageComponent{
				discordgo.Button{
					CustomID: CustomIDApprovePrefix + rep.Date,
					Label:    "承認",
					Style:    discordgo.SuccessButton,
					Disabled: !enabled[port.AffordanceApprove],
				},
				discordgo.Button{
					CustomID: CustomIDRejectPrefix + rep.Date,
					Label:    "却下",
					Style:    discordgo.DangerButton,
					Disabled: !enabled[port.AffordanceReject],
				},
				discordgo.Button{
					CustomID: CustomIDEditButton,
					Label:    "修正",
					Style:    discordgo.SecondaryButton,
					Disabled: !enabled[port.AffordanceEdit],
				},
			},
		},
	}
}

// formatYen renders a whole-yen amount with thousands separators
func formatYen(amount int64) string {
	digits := strconv.FormatInt(amount, 10)
	negative := false
	if digits[0] == '-' {
		negative = true
		digits = digits[1:]
	}

	var out []byte
	for i, d := range []byte(digits) {
		if i > 0 && (len(digits)-i)%3 == 0 {
			out = append(out, ',')
		}
		out = append(out, d)
	}
	if negative {
		return "¥-" + string(out)
	}
	return "¥" + string(out)
}
