package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	gcs "cloud.google.com/go/storage"
	"github.com/bwmarrin/discordgo"
	"github.com/subosito/gotenv"
	"go.uber.org/zap"

	"github.com/svml/uriage-bot/internal/application/service"
	"github.com/svml/uriage-bot/internal/config"
	"github.com/svml/uriage-bot/internal/infrastructure/discord"
	"github.com/svml/uriage-bot/internal/infrastructure/export"
	"github.com/svml/uriage-bot/internal/infrastructure/storage"
	httpserver "github.com/svml/uriage-bot/internal/interfaces/http"
	"github.com/svml/uriage-bot/internal/repository"
	"github.com/svml/uriage-bot/pkg/utils"
)

func main() {
	// Load .env if present; real deployments set the environment directly
	gotenv.Load()

	cfg, err := config.Load("configs/config.yaml")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logger, err := utils.NewLogger(utils.LoggerConfig{
		Level:      cfg.Logger.Level,
		OutputPath: cfg.Logger.OutputPath,
		Format:     cfg.Logger.Format,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("Starting sales report bot",
		zap.String("version", "1.0.0"),
		zap.Int("port", cfg.Server.Port))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Blob storage
	gcsClient, err := gcs.NewClient(ctx)
	if err != nil {
		logger.Fatal("Failed to create storage client", zap.Error(err))
	}
	defer gcsClient.Close()

	store, err := storage.NewGCSStore(gcsClient, storage.GCSConfig{Bucket: cfg.Storage.Bucket}, logger)
	if err != nil {
		logger.Fatal("Failed to initialize blob store", zap.Error(err))
	}

	// Repositories
	reportRepo := repository.NewReportRepository(store, logger)
	settingsRepo := repository.NewSettingsRepository(store, logger)

	// Discord session; intents cover slash commands, components and modals
	session, err := discordgo.New("Bot " + cfg.Discord.Token)
	if err != nil {
		logger.Fatal("Failed to create Discord session", zap.Error(err))
	}
	session.Identify.Intents = discordgo.IntentsGuilds

	defaultLoc, err := time.LoadLocation(cfg.Tenant.DefaultTimezone)
	if err != nil {
		logger.Fatal("Failed to load default timezone", zap.Error(err))
	}

	// Services
	renderer := discord.NewRenderer(session, logger)
	reportService := service.NewReportService(reportRepo, settingsRepo, renderer, defaultLoc, logger)
	settingsService := service.NewSettingsService(settingsRepo, logger)
	summaryService := service.NewSummaryService(reportRepo, logger)
	exporter := export.NewExcelExporter(logger)

	// Interaction routing
	dispatcher := discord.NewDispatcher(logger)
	handlers := discord.NewHandlers(reportService, settingsService, logger)
	handlers.Register(dispatcher)
	session.AddHandler(handlers.HandleInteraction(dispatcher))
	session.AddHandler(func(s *discordgo.Session, r *discordgo.Ready) {
		logger.Info("Discord gateway ready",
			zap.String("username", r.User.Username),
			zap.Int("guild_count", len(r.Guilds)))
	})

	if err := session.Open(); err != nil {
		logger.Fatal("Failed to open Discord gateway connection", zap.Error(err))
	}

	// Ops HTTP server
	server := httpserver.NewServer(cfg.Server, summaryService, settingsService, exporter, logger.Sugar())
	serverErr := make(chan error, 1)
	go func() {
		serverErr <- server.Start(ctx)
	}()

	select {
	case <-ctx.Done():
		logger.Info("Shutdown signal received")
	case err := <-serverErr:
		if err != nil {
			logger.Error("HTTP server failed", zap.Error(err))
		}
	}

	logger.Info("Shutting down...")
	if err := session.Close(); err != nil {
		logger.Error("Failed to close Discord session", zap.Error(err))
	}
	logger.Info("Bot exited successfully")
}
