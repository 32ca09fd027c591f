package discord

import (
	"github.com/bwmarrin/discordgo"

	"github.com/svml/uriage-bot/internal/domain/tenant"
)

// Interaction bundles a discordgo interaction event with the session it
// arrived on.
type Interaction struct {
	Session *discordgo.Session
	Event   *discordgo.InteractionCreate
}

// CustomID returns the component or modal custom id, empty for commands
func (ic *Interaction) CustomID() string {
	switch ic.Event.Type {
	case discordgo.InteractionMessageComponent:
		return ic.Event.MessageComponentData().CustomID
	case discordgo.InteractionModalSubmit:
		return ic.Event.ModalSubmitData().CustomID
	default:
		return ""
	}
}

// TenantID returns the guild the interaction happened in
func (ic *Interaction) TenantID() string {
	return ic.Event.GuildID
}

// ChannelID returns the channel the interaction happened in
func (ic *Interaction) ChannelID() string {
	return ic.Event.ChannelID
}

// Actor builds the policy-facing view of the interacting member
func (ic *Interaction) Actor() tenant.Actor {
	member := ic.Event.Member
	if member == nil || member.User == nil {
		return tenant.Actor{}
	}

	name := member.User.Username
	if member.Nick != "" {
		name = member.Nick
	}

	return tenant.Actor{
		ID:            member.User.ID,
		DisplayName:   name,
		RoleIDs:       member.Roles,
		Administrator: member.Permissions&discordgo.PermissionAdministrator != 0,
	}
}

// ModalFields flattens submitted modal text inputs into field name → value
func (ic *Interaction) ModalFields() map[string]string {
	fields := make(map[string]string)
	for _, row := range ic.Event.ModalSubmitData().Components {
		actionRow, ok := row.(*discordgo.ActionsRow)
		if !ok {
			continue
		}
		for _, comp := range actionRow.Components {
			if input, ok := comp.(*discordgo.TextInput); ok {
				fields[input.CustomID] = input.Value
			}
		}
	}
	return fields
}

// SelectedValues returns the values of a select-menu component interaction
func (ic *Interaction) SelectedValues() []string {
	return ic.Event.MessageComponentData().Values
}

// RespondEphemeral replies with a private message only the actor can see
func (ic *Interaction) RespondEphemeral(content string) error {
	return ic.Session.InteractionRespond(ic.Event.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: content,
			Flags:   discordgo.MessageFlagsEphemeral,
		},
	})
}

// FollowUpEphemeral sends a private follow-up after a deferred response
func (ic *Interaction) FollowUpEphemeral(content string) error {
	_, err := ic.Session.FollowupMessageCreate(ic.Event.Interaction, true, &discordgo.WebhookParams{
		Content: content,
		Flags:   discordgo.MessageFlagsEphemeral,
	})
	return err
}

// RespondUpdateContent replaces the originating message with plain content,
// dropping any components it carried.
func (ic *Interaction) RespondUpdateContent(content string) error {
	empty := []discordgo.MessageComponent{}
	return ic.Session.InteractionRespond(ic.Event.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseUpdateMessage,
		Data: &discordgo.InteractionResponseData{
			Content:    content,
			Components: empty,
		},
	})
}

// DeferEphemeral acknowledges the interaction with a pending private reply
func (ic *Interaction) DeferEphemeral() error {
	return ic.Session.InteractionRespond(ic.Event.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Flags: discordgo.MessageFlagsEphemeral,
		},
	})
}

// DeferUpdate acknowledges a component interaction without visible output
func (ic *Interaction) DeferUpdate() error {
	return ic.Session.InteractionRespond(ic.Event.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredMessageUpdate,
	})
}

// RespondModal opens a modal form
func (ic *Interaction) RespondModal(data *discordgo.InteractionResponseData) error {
	return ic.Session.InteractionRespond(ic.Event.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseModal,
		Data: data,
	})
}
