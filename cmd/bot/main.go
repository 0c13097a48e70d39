package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/go-telegram/bot"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"voxnote/internal/api"
	"voxnote/internal/config"
	"voxnote/internal/pipeline"
	"voxnote/internal/repository"
	"voxnote/internal/stt"
	"voxnote/internal/telegram"
	"voxnote/internal/telemetry"
)

func main() {
	// Load .env file if it exists (ignore error if file doesn't exist)
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		boot := zerolog.New(os.Stderr)
		boot.Fatal().Err(err).Msg("failed to load configuration")
	}

	logger := newLogger(cfg.LogLevel)

	reporter, err := telemetry.Init(cfg.SentryDSN)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize error tracking")
	}
	defer reporter.Close()

	db, err := repository.Open(cfg.DatabasePath)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to open usage database")
	}
	defer db.Close()
	usage := repository.NewSQLiteRepository(db)

	provider, err := stt.CreateProvider(cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to create STT provider")
	}

	b, err := bot.New(cfg.TelegramToken)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to create Telegram client")
	}

	gateway := telegram.NewGateway(b)
	pl := pipeline.New(gateway, provider, usage, reporter, logger.With().Str("component", "pipeline").Logger())
	telegram.NewService(pl, cfg.BotName).RegisterHandlers(b)

	if cfg.HTTPAddr != "" {
		go serveStats(cfg.HTTPAddr, usage, logger)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	logger.Info().
		Str("provider", provider.Name()).
		Str("model", cfg.Model).
		Msg("bot started, polling Telegram")
	b.Start(ctx)

	logger.Info().Msg("shutting down")
}

// serveStats runs the optional read-only stats server.
func serveStats(addr string, usage repository.UsageRepository, logger zerolog.Logger) {
	if os.Getenv("GIN_MODE") == "" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())
	api.RegisterRoutes(r, usage)

	logger.Info().Str("addr", addr).Msg("stats server listening")
	if err := r.Run(addr); err != nil {
		logger.Error().Err(err).Msg("stats server stopped")
	}
}

func newLogger(level string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		lvl = zerolog.InfoLevel
	}
	return zerolog.New(os.Stdout).Level(lvl).With().Timestamp().Logger()
}
