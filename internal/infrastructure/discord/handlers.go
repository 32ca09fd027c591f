package discord

import (
	"context"
	"errors"
	"regexp"
	"time"

	"github.com/bwmarrin/discordgo"
	"go.uber.org/zap"

	"github.com/svml/uriage-bot/internal/application/service"
	"github.com/svml/uriage-bot/internal/domain/report"
)

// displayedDatePattern pulls the M/D date out of a report embed title,
// e.g. "📊 売上報告 (7/7)".
var displayedDatePattern = regexp.MustCompile(`\((\d{1,2}/\d{1,2})\)`)

const interactionTimeout = 15 * time.Second

// Handlers binds the application services to Discord interactions.
type Handlers struct {
	reports  *service.ReportService
	settings *service.SettingsService
	logger   *zap.Logger
}

func NewHandlers(reports *service.ReportService, settings *service.SettingsService, logger *zap.Logger) *Handlers {
	return &Handlers{
		reports:  reports,
		settings: settings,
		logger:   logger,
	}
}

// Register installs the component and modal routes on the dispatcher.
func (h *Handlers) Register(d *Dispatcher) {
	d.Register("report_button", Exact(CustomIDReportButton), h.handleReportButton)
	d.Register("report_modal", Exact(CustomIDReportModal), h.handleReportModal)
	d.Register("edit_button", Exact(CustomIDEditButton), h.handleEditButton)
	d.Register("edit_modal", Pattern(CustomIDEditModalPattern), h.handleEditModal)
	d.Register("approve", Prefix(CustomIDApprovePrefix), h.handleApprove)
	d.Register("reject", Prefix(CustomIDRejectPrefix), h.handleReject)
	d.Register("role_select", Exact(CustomIDRoleSelect), h.handleRoleSelect)
}

// HandleInteraction is the discordgo gateway entry point. Slash commands are
// routed by name; components and modal submissions go through the dispatcher.
func (h *Handlers) HandleInteraction(d *Dispatcher) func(s *discordgo.Session, e *discordgo.InteractionCreate) {
	return func(s *discordgo.Session, e *discordgo.InteractionCreate) {
		ctx, cancel := context.WithTimeout(context.Background(), interactionTimeout)
		defer cancel()

		ic := &Interaction{Session: s, Event: e}

		switch e.Type {
		case discordgo.InteractionApplicationCommand:
			h.handleCommand(ctx, ic)
		case discordgo.InteractionMessageComponent, discordgo.InteractionModalSubmit:
			matched, err := d.Dispatch(ctx, ic.CustomID(), ic)
			if !matched {
				h.logger.Warn("unrouted interaction",
					zap.String("custom_id", ic.CustomID()),
					zap.String("tenant_id", ic.TenantID()))
				return
			}
			if err != nil {
				h.replyError(ic, err)
			}
		}
	}
}

func (h *Handlers) handleCommand(ctx context.Context, ic *Interaction) {
	name := ic.Event.ApplicationCommandData().Name
	var err error
	switch name {
	case CommandReportPanel:
		err = h.handlePanelCommand(ctx, ic)
	case CommandSettings:
		err = h.handleSettingsCommand(ctx, ic)
	default:
		h.logger.Warn("unknown command", zap.String("name", name))
		return
	}
	if err != nil {
		h.logger.Error("command failed",
			zap.String("name", name),
			zap.String("tenant_id", ic.TenantID()),
			zap.Error(err))
		h.replyError(ic, err)
	}
}

// handlePanelCommand posts the persistent report panel into the channel.
func (h *Handlers) handlePanelCommand(_ context.Context, ic *Interaction) error {
	return ic.Session.InteractionRespond(ic.Event.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: "下のボタンから日次の売上を報告してください。",
			Components: []discordgo.MessageComponent{
				discordgo.ActionsRow{
					Components: []discordgo.MessageComponent{
						discordgo.Button{
							CustomID: CustomIDReportButton,
							Label:    "売上を報告する",
							Style:    discordgo.SuccessButton,
						},
					},
				},
			},
		},
	})
}

// handleSettingsCommand shows the approver role picker, preselecting nothing.
// Discord resolves the chosen roles client side so no listing call is needed.
func (h *Handlers) handleSettingsCommand(_ context.Context, ic *Interaction) error {
	minValues := 0
	return ic.Session.InteractionRespond(ic.Event.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: "売上報告を承認できるロールを選択してください。未選択の場合は管理者のみが承認できます。",
			Flags:   discordgo.MessageFlagsEphemeral,
			Components: []discordgo.MessageComponent{
				discordgo.ActionsRow{
					Components: []discordgo.MessageComponent{
						discordgo.SelectMenu{
							MenuType:    discordgo.RoleSelectMenu,
							CustomID:    CustomIDRoleSelect,
							Placeholder: "承認ロールを選択",
							MinValues:   &minValues,
							MaxValues:   10,
						},
					},
				},
			},
		},
	})
}

func (h *Handlers) handleReportButton(_ context.Context, ic *Interaction, _ []string) error {
	return ic.RespondModal(NewReportModal(nil, ""))
}

func (h *Handlers) handleReportModal(ctx context.Context, ic *Interaction, _ []string) error {
	if err := ic.DeferEphemeral(); err != nil {
		return err
	}
	_, err := h.reports.Submit(ctx, service.SubmitInput{
		TenantID:  ic.TenantID(),
		ChannelID: ic.ChannelID(),
		Actor:     ic.Actor(),
		Fields:    ic.ModalFields(),
	})
	if err != nil {
		return ic.FollowUpEphemeral(userMessage(err))
	}
	return ic.FollowUpEphemeral("✅ 報告を送信しました。")
}

// handleEditButton recovers the report date from the embed title of the
// message the button sits on, then opens a prefilled modal.
func (h *Handlers) handleEditButton(ctx context.Context, ic *Interaction, _ []string) error {
	msg := ic.Event.Message
	if msg == nil || len(msg.Embeds) == 0 {
		return ic.RespondEphemeral(userMessage(report.ErrStaleReport))
	}
	m := displayedDatePattern.FindStringSubmatch(msg.Embeds[0].Title)
	if m == nil {
		return ic.RespondEphemeral(userMessage(report.ErrStaleReport))
	}
	rep, err := h.reports.RequestEdit(ctx, ic.TenantID(), m[1])
	if err != nil {
		return ic.RespondEphemeral(userMessage(err))
	}
	return ic.RespondModal(NewReportModal(rep, msg.ID))
}

func (h *Handlers) handleEditModal(ctx context.Context, ic *Interaction, captures []string) error {
	if len(captures) < 2 {
		return ic.RespondEphemeral(userMessage(report.ErrStaleReport))
	}
	if err := ic.DeferEphemeral(); err != nil {
		return err
	}
	_, err := h.reports.SubmitEdit(ctx, service.EditInput{
		TenantID:     ic.TenantID(),
		ChannelID:    ic.ChannelID(),
		Actor:        ic.Actor(),
		Fields:       ic.ModalFields(),
		OriginalDate: captures[0],
		MessageRef:   captures[1],
	})
	if err != nil {
		return ic.FollowUpEphemeral(userMessage(err))
	}
	return ic.FollowUpEphemeral("✅ 報告を更新しました。")
}

func (h *Handlers) handleApprove(ctx context.Context, ic *Interaction, captures []string) error {
	return h.decide(ctx, ic, captures, report.StatusApproved)
}

func (h *Handlers) handleReject(ctx context.Context, ic *Interaction, captures []string) error {
	return h.decide(ctx, ic, captures, report.StatusRejected)
}

func (h *Handlers) decide(ctx context.Context, ic *Interaction, captures []string, verdict report.ApprovalStatus) error {
	if err := ic.DeferUpdate(); err != nil {
		return err
	}
	if len(captures) < 1 {
		return ic.FollowUpEphemeral(userMessage(report.ErrNotFound))
	}
	messageRef := ""
	if ic.Event.Message != nil {
		messageRef = ic.Event.Message.ID
	}
	_, err := h.reports.Decide(ctx, service.DecideInput{
		TenantID:   ic.TenantID(),
		ChannelID:  ic.ChannelID(),
		Actor:      ic.Actor(),
		Date:       captures[0],
		Verdict:    verdict,
		MessageRef: messageRef,
	})
	if err != nil {
		return ic.FollowUpEphemeral(userMessage(err))
	}
	return nil
}

func (h *Handlers) handleRoleSelect(ctx context.Context, ic *Interaction, _ []string) error {
	roleIDs := ic.SelectedValues()
	if _, err := h.settings.SetApprovalRoles(ctx, ic.TenantID(), roleIDs); err != nil {
		return ic.RespondEphemeral(userMessage(err))
	}
	if len(roleIDs) == 0 {
		return ic.RespondUpdateContent("✅ 承認ロールをクリアしました。管理者のみが承認できます。")
	}
	return ic.RespondUpdateContent("✅ 承認ロールを設定しました。")
}

// replyError delivers a user-facing failure message, falling back to a
// follow-up when the interaction was already acknowledged.
func (h *Handlers) replyError(ic *Interaction, err error) {
	msg := userMessage(err)
	if respondErr := ic.RespondEphemeral(msg); respondErr != nil {
		if followErr := ic.FollowUpEphemeral(msg); followErr != nil {
			h.logger.Error("failed to deliver error reply",
				zap.String("tenant_id", ic.TenantID()),
				zap.Error(followErr))
		}
	}
}

// userMessage maps domain errors onto the Japanese copy shown to members.
func userMessage(err error) string {
	switch {
	case errors.Is(err, report.ErrInvalidAmount):
		return "⚠️ 金額は半角数字で入力してください。"
	case errors.Is(err, report.ErrInvalidDate):
		return "⚠️ 日付の形式が正しくありません。(例: 7/7)"
	case errors.Is(err, report.ErrStaleReport):
		return "⚠️ 元の報告データが見つかりませんでした。新規で報告してください。"
	case errors.Is(err, report.ErrNotFound):
		return "エラー: 元の報告データが見つかりませんでした。"
	case errors.Is(err, report.ErrForbidden):
		return "⚠️ この操作を行う権限がありません。"
	case errors.Is(err, report.ErrAlreadyDecided):
		return "⚠️ この報告は既に承認・却下されています。修正後に再度お試しください。"
	default:
		return "エラーが発生し、処理を完了できませんでした。"
	}
}
