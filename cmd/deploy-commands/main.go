// Command deploy-commands registers the bot's application commands with
// Discord. Run it once per deployment; it overwrites the global command set.
package main

import (
	"fmt"
	"os"

	"github.com/bwmarrin/discordgo"
	"github.com/subosito/gotenv"
	"go.uber.org/zap"

	"github.com/svml/uriage-bot/internal/infrastructure/discord"
	"github.com/svml/uriage-bot/pkg/utils"
)

func main() {
	gotenv.Load()

	token := os.Getenv("DISCORD_TOKEN")
	clientID := os.Getenv("DISCORD_CLIENT_ID")
	if token == "" || clientID == "" {
		fmt.Fprintln(os.Stderr, "DISCORD_TOKEN and DISCORD_CLIENT_ID must be set")
		os.Exit(1)
	}

	logger, err := utils.NewLogger(utils.LoggerConfig{
		Level:      "info",
		OutputPath: "stdout",
		Format:     "console",
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	session, err := discordgo.New("Bot " + token)
	if err != nil {
		logger.Fatal("Failed to create Discord session", zap.Error(err))
	}

	commands := discord.Dedupe(discord.Commands(), logger)

	logger.Info("Registering application commands",
		zap.Int("count", len(commands)))

	registered, err := session.ApplicationCommandBulkOverwrite(clientID, "", commands)
	if err != nil {
		logger.Fatal("Failed to register application commands", zap.Error(err))
	}

	for _, cmd := range registered {
		logger.Info("Command registered",
			zap.String("name", cmd.Name),
			zap.String("id", cmd.ID))
	}
	logger.Info("Command registration complete")
}
