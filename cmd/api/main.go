package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/clinicops/booking-api/cmd/mainconfig"
	"github.com/clinicops/booking-api/internal/api/router"
	"github.com/clinicops/booking-api/internal/booking"
	appconfig "github.com/clinicops/booking-api/internal/config"
	"github.com/clinicops/booking-api/internal/notify"
	"github.com/clinicops/booking-api/internal/observability/metrics"
	"github.com/clinicops/booking-api/pkg/logging"
)

func main() {
	// Load .env when present for local development; production relies on
	// real environment variables.
	_ = godotenv.Load()
	cfg := appconfig.Load()

	logger := logging.New(cfg.LogLevel)
	if cfg.Env == "development" {
		logger = logging.NewText(cfg.LogLevel)
	}
	logger.Info("starting booking API server",
		"env", cfg.Env,
		"port", cfg.Port,
	)

	ctx := context.Background()

	var store booking.Store
	var sender notify.EmailSender
	if cfg.UseMemoryStore {
		store = booking.NewMemoryStore()
		sender = notify.NewStubEmailSender(logger)
	} else {
		awsCfg, err := mainconfig.LoadAWSConfig(ctx, cfg)
		if err != nil {
			logger.Error("failed to load AWS config", "error", err)
			os.Exit(1)
		}
		store = booking.NewDynamoStore(dynamodb.NewFromConfig(awsCfg), cfg.BookingsTable, logger)
		sender = buildEmailSender(cfg, awsCfg, logger)
	}

	bookingMetrics := metrics.NewBookingMetrics(nil)
	confirmer := notify.NewConfirmer(sender, logger)
	service := booking.NewService(store, confirmer, bookingMetrics, logger)
	handler := booking.NewHandler(service, logger)

	r := router.New(&router.Config{
		Logger:             logger,
		BookingHandler:     handler,
		MetricsHandler:     promhttp.Handler(),
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
		RateLimitRPS:       cfg.RateLimitRPS,
		RateLimitBurst:     cfg.RateLimitBurst,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	logger.Info("server stopped")
}

// buildEmailSender picks the configured confirmation provider, falling back
// to the stub so a misconfigured deployment still takes bookings.
func buildEmailSender(cfg *appconfig.Config, awsCfg aws.Config, logger *logging.Logger) notify.EmailSender {
	switch cfg.EmailProvider {
	case "ses":
		if sender := notify.NewSESSender(sesv2.NewFromConfig(awsCfg), notify.SESConfig{
			FromEmail: cfg.SESFromEmail,
			FromName:  cfg.SESFromName,
		}, logger); sender != nil {
			return sender
		}
	case "sendgrid":
		if sender := notify.NewSendGridSender(notify.SendGridConfig{
			APIKey:    cfg.SendGridAPIKey,
			FromEmail: cfg.SendGridFromEmail,
			FromName:  cfg.SendGridFromName,
		}, logger); sender != nil {
			return sender
		}
	}
	logger.Warn("no email provider configured, confirmations will not be sent", "provider", cfg.EmailProvider)
	return notify.NewStubEmailSender(logger)
}
