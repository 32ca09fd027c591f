package discord

import (
	"github.com/bwmarrin/discordgo"
	"go.uber.org/zap"
)

// Command names registered with the Discord API
const (
	CommandReportPanel = "uriage"
	CommandSettings    = "uriage_config"
)

// Commands returns the application command descriptors this bot registers
func Commands() []*discordgo.ApplicationCommand {
	adminOnly := int64(discordgo.PermissionAdministrator)
	return []*discordgo.ApplicationCommand{
		{
			Name:        CommandReportPanel,
			Description: "売上報告パネルを設置します",
		},
		{
			Name:                     CommandSettings,
			Description:              "売上報告の承認ロールを設定します",
			DefaultMemberPermissions: &adminOnly,
		},
	}
}

// Dedupe drops commands whose name collides with an earlier descriptor.
// A collision is a registration bug: it is logged as an error and the later
// descriptor is skipped, never registered twice.
func Dedupe(commands []*discordgo.ApplicationCommand, logger *zap.Logger) []*discordgo.ApplicationCommand {
	seen := make(map[string]bool, len(commands))
	out := make([]*discordgo.ApplicationCommand, 0, len(commands))

	for _, cmd := range commands {
		if seen[cmd.Name] {
			logger.Error("Duplicate command name, skipping",
				zap.String("command", cmd.Name))
			continue
		}
		seen[cmd.Name] = true
		out = append(out, cmd)
	}
	return out
}
