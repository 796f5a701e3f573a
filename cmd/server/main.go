// Command server runs the astrology content backend: profile onboarding,
// freshness-driven horoscope delivery, partner compatibility memos, and the
// entitlement-gated regeneration endpoint.
//
// Configuration is environment-driven (see internal/config); a local .env
// file is honored in development. On SIGINT/SIGTERM the server drains
// in-flight requests before exiting.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gorm.io/plugin/opentelemetry/tracing"

	"github.com/novalune/go-astro-backend/internal/billing"
	"github.com/novalune/go-astro-backend/internal/chart"
	"github.com/novalune/go-astro-backend/internal/config"
	httpapi "github.com/novalune/go-astro-backend/internal/http"
	"github.com/novalune/go-astro-backend/internal/observability"
	"github.com/novalune/go-astro-backend/internal/oracle"
	"github.com/novalune/go-astro-backend/internal/repo"
	"github.com/novalune/go-astro-backend/internal/sysutil"
)

// version is stamped at build time via -ldflags "-X main.version=...".
var version = "dev"

// @title           Astro Content Backend API
// @version         1.0
// @description     Personalized astrology content with freshness-policy caching, a shared daily forecast cache, partner compatibility memos, and a pay-or-wait regeneration gate.
// @BasePath        /api/v1
//
// @contact.name    Nova Lune Engineering
// @contact.url     https://github.com/novalune/go-astro-backend
//
// @license.name    MIT
// @license.url     https://opensource.org/licenses/MIT
func main() {
	// Local development convenience; real deployments set the environment.
	_ = godotenv.Load()

	cfg := config.MustLoad()

	// Logging
	sysutil.SetLogLevel(cfg.LogLevel)
	if cfg.LogPretty {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	}
	gin.SetMode(cfg.GinMode)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Tracing (no-op unless OTEL_ENABLED)
	shutdownOTel, err := observability.SetupOTel(ctx, cfg.OTEL, version)
	if err != nil {
		log.Fatal().Err(err).Msg("otel setup failed")
	}
	defer func() {
		sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownOTel(sctx); err != nil {
			log.Warn().Err(err).Msg("otel shutdown")
		}
	}()

	// Storage
	db, err := repo.OpenSQLite(cfg.DBPath)
	if err != nil {
		log.Fatal().Err(err).Str("path", cfg.DBPath).Msg("open database failed")
	}
	if err := db.Use(tracing.NewPlugin(tracing.WithoutMetrics())); err != nil {
		log.Warn().Err(err).Msg("gorm tracing plugin")
	}
	if err := repo.AutoMigrate(db); err != nil {
		log.Fatal().Err(err).Msg("migrations failed")
	}

	// External collaborators
	orc := oracle.NewClient(oracle.Config{
		BaseURL:      cfg.Oracle.BaseURL,
		APIKey:       cfg.Oracle.APIKey,
		Model:        cfg.Oracle.Model,
		MaxRetries:   cfg.Oracle.MaxRetries,
		RetryBackoff: cfg.Oracle.RetryBackoff,
		Timeout:      cfg.Oracle.Timeout,
	})
	eng := chart.NewClient(cfg.Chart.BaseURL, cfg.Chart.APIKey, cfg.Chart.Timeout)

	// An empty billing endpoint selects the approve-everything sandbox.
	var charger billing.Charger = billing.Sandbox{}
	if cfg.Billing.BaseURL != "" {
		charger = billing.NewClient(cfg.Billing.BaseURL, cfg.Billing.APIKey, cfg.Billing.Timeout)
	} else {
		log.Info().Msg("billing sandbox active (BILLING_BASE_URL not set)")
	}

	// HTTP
	r := gin.New()
	httpapi.RegisterRoutes(r, db, orc, eng, charger, cfg)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadTimeout:       cfg.ReadTimeout,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
		WriteTimeout:      cfg.WriteTimeout,
		IdleTimeout:       cfg.IdleTimeout,
		MaxHeaderBytes:    cfg.MaxHeaderBytes,
	}

	go func() {
		log.Info().
			Str("addr", srv.Addr).
			Str("base_path", cfg.APIBasePath).
			Str("version", version).
			Msg("server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutdown signal received")

	sctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(sctx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
	log.Info().Msg("server stopped")
}
