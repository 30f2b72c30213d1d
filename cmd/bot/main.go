package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/verify-service/internal/api/http"
	"github.com/spec-kit/verify-service/internal/api/http/handlers"
	"github.com/spec-kit/verify-service/internal/captcha"
	"github.com/spec-kit/verify-service/internal/config"
	"github.com/spec-kit/verify-service/internal/events"
	"github.com/spec-kit/verify-service/internal/observability"
	"github.com/spec-kit/verify-service/internal/platform/discord"
	"github.com/spec-kit/verify-service/internal/service"
	"github.com/spec-kit/verify-service/internal/token"
	"github.com/spec-kit/verify-service/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	metrics := observability.NewMetrics()
	dispatcher := events.NewInMemoryDispatcher()

	store := token.NewStore(cfg.Verification.TokenTTL())
	worker.StartTokenSweeper(ctx, store, cfg.Verification.SweepInterval(), logger)

	linkService := service.NewLinkService(store, cfg.Verification.WebBase, cfg.Verification.TokenTTL(), dispatcher, logger)

	bot, err := discord.NewBot(cfg.Discord, linkService, logger)
	if err != nil {
		logger.Fatal("failed to create discord bot", zap.Error(err))
	}
	if err := bot.Open(); err != nil {
		logger.Fatal("failed to connect to discord gateway", zap.Error(err))
	}
	defer bot.Close()

	verificationService := service.NewVerificationService(service.VerificationDependencies{
		Store:      store,
		Captcha:    captcha.NewClient(cfg.Captcha),
		Guild:      bot.RoleGranter(),
		Dispatcher: dispatcher,
		Logger:     logger,
	}, cfg.Discord.GuildID, cfg.Discord.RoleID)

	notificationService := service.NewNotificationService(dispatcher, logger, cfg.Notification)
	notificationService.RegisterHandlers()

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	healthHandler := handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, bot)
	verifyHandler := handlers.NewVerifyHandler(verificationService, logger, metrics)

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:     healthHandler,
		Verify:     verifyHandler,
		WebsiteDir: cfg.App.WebsiteDir,
	})

	go func() {
		logger.Info("website running", zap.String("addr", cfg.App.Addr()))
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.Shutdown()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
