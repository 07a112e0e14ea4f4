package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/MatiasOrellano/invitly-backend/internal/application"
	"github.com/MatiasOrellano/invitly-backend/internal/application/services"
	"github.com/MatiasOrellano/invitly-backend/internal/config"
	"github.com/MatiasOrellano/invitly-backend/internal/infrastructure/cache"
	"github.com/MatiasOrellano/invitly-backend/internal/infrastructure/checkout"
	"github.com/MatiasOrellano/invitly-backend/internal/infrastructure/notify"
	"github.com/MatiasOrellano/invitly-backend/internal/infrastructure/persistence/postgres"
	"github.com/MatiasOrellano/invitly-backend/internal/interfaces/rest/handlers"
	"github.com/MatiasOrellano/invitly-backend/internal/interfaces/rest/middleware"
	"github.com/MatiasOrellano/invitly-backend/internal/worker"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	logger := cfg.Logger.NewLogger()
	slog.SetDefault(logger)

	logger.Info("starting invitation backend",
		"port", cfg.Server.Port,
		"log_level", cfg.Logger.Level,
	)

	ctx := context.Background()
	db, err := postgres.Connect(ctx, &cfg.Database, logger)
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	redisClient, err := cache.NewRedisClient(ctx, cfg.Redis.URL)
	if err != nil {
		logger.Error("failed to connect to redis", "error", err)
		os.Exit(1)
	}
	defer redisClient.Close()

	paymentRepo := postgres.NewPaymentRepository(db)
	giftRepo := postgres.NewGiftRepository(db)
	attendeeRepo := postgres.NewAttendeeRepository(db)
	landingRepo := postgres.NewLandingRepository(db)
	landingCache := cache.NewLandingCache(redisClient, cfg.Redis.CacheTTL)

	checkoutClient := checkout.NewCheckoutClient(cfg.Checkout)

	var mailer application.Mailer
	if smtpMailer, err := notify.NewSMTPMailer(cfg.SMTP); err != nil {
		logger.Warn("smtp not configured, rsvp confirmation mail disabled", "error", err)
		mailer = notify.NopMailer{}
	} else {
		mailer = smtpMailer
	}

	checkoutService := services.NewCheckoutService(paymentRepo, giftRepo, checkoutClient, cfg.Checkout, logger)
	reconcileService := services.NewReconcileService(paymentRepo, landingRepo, landingCache, logger)
	giftCompletionService := services.NewGiftCompletionService(giftRepo, logger)
	statusService := services.NewStatusService(paymentRepo, giftRepo, landingRepo, checkoutClient, cfg.Checkout, logger)
	rsvpService := services.NewRSVPService(attendeeRepo, mailer, logger)
	landingService := services.NewLandingService(landingRepo, landingCache, logger)

	h := handlers.NewHandlers(
		checkoutService,
		reconcileService,
		giftCompletionService,
		statusService,
		rsvpService,
		landingService,
		cfg.Checkout.WebhookSecret,
		logger,
	)

	mux := http.NewServeMux()
	h.RegisterRoutes(mux,
		middleware.RequireAuth(cfg.Auth.JWTSecret),
		middleware.RateLimit(cfg.RateLimit.RequestsPerMinute, cfg.RateLimit.Burst),
	)

	handler := http.Handler(mux)
	handler = middleware.CORS(cfg.Server.AllowedOrigin)(handler)
	handler = middleware.Recovery(logger)(handler)
	handler = middleware.Logging(logger)(handler)
	handler = middleware.Timeout(cfg.Server.ReadTimeout)(handler)

	server := &http.Server{
		Addr:         "0.0.0.0:" + cfg.Server.Port,
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	expirationWorker := worker.NewExpirationWorker(
		paymentRepo,
		giftRepo,
		cfg.Checkout.SessionTTL,
		cfg.Worker.Interval,
		cfg.Worker.BatchSize,
		logger,
	)

	workerCtx, cancelWorkers := context.WithCancel(context.Background())
	defer cancelWorkers()

	go expirationWorker.Start(workerCtx)

	go func() {
		logger.Info("server starting", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")

	cancelWorkers()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
	}

	logger.Info("server exited")
}
