package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/barkanor/leadgate/internal/api/router"
	appconfig "github.com/barkanor/leadgate/internal/config"
	"github.com/barkanor/leadgate/internal/convlog"
	"github.com/barkanor/leadgate/internal/greenapi"
	"github.com/barkanor/leadgate/internal/leads"
	observemetrics "github.com/barkanor/leadgate/internal/observability/metrics"
	"github.com/barkanor/leadgate/internal/sheetstore"
	"github.com/barkanor/leadgate/internal/webhook"
	"github.com/barkanor/leadgate/pkg/logging"
)

func main() {
	// Local dev convenience; the file is absent in deployment.
	_ = godotenv.Load()

	cfg := appconfig.Load()
	logger := logging.New(cfg.LogLevel)
	logger.Info("starting leadgate webhook service",
		"env", cfg.Env,
		"port", cfg.Port,
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	m := observemetrics.NewWebhookMetrics(nil)

	var (
		leadsRepo leads.Repository
		logSink   convlog.Appender
	)
	if cfg.UsePostgres() {
		pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
		if err != nil {
			logger.Error("failed to init postgres pool", "error", err)
			os.Exit(1)
		}
		defer pool.Close()
		leadsRepo = leads.NewPostgresRepository(pool)
		logSink = convlog.NewPostgresAppender(pool)
		logger.Info("row store: postgres")
	} else {
		// Credential problems surface on first use, per event, not here.
		sheetClient := sheetstore.New(cfg.SpreadsheetID, cfg.GoogleCredentials)
		leadsRepo = sheetstore.NewLeadsRepository(sheetClient)
		logSink = sheetstore.NewConversationLog(sheetClient)
		logger.Info("row store: spreadsheet", "spreadsheet_id", cfg.SpreadsheetID)
	}

	gate := webhook.NewGate(cfg.DedupTTL)
	go gate.Run(ctx, cfg.DedupSweepInterval)

	sender := greenapi.New(greenapi.Config{
		BaseURL:    cfg.GreenAPIBaseURL,
		InstanceID: cfg.GreenAPIInstanceID,
		APIToken:   cfg.GreenAPIToken,
		Logger:     logger.Logger,
	})

	processor := webhook.NewProcessor(webhook.ProcessorConfig{
		Gate:      gate,
		Log:       logSink,
		Leads:     leads.NewService(leadsRepo),
		Sender:    sender,
		ReplyText: cfg.ReplyText,
		Metrics:   m,
		Logger:    logger,
	})
	webhookHandler := webhook.NewHandler(processor, cfg.MaxBodyBytes, logger)

	r := router.New(&router.Config{
		Logger:         logger,
		Webhook:        webhookHandler,
		MetricsHandler: promhttp.Handler(),
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
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	logger.Info("server stopped")
}
