// Package httpapi wires the HTTP transport (Gin) to application services,
// middleware, and route handlers. It centralizes cross-cutting concerns such
// as tracing, correlation IDs, logging/redaction, panic recovery, metrics,
// CORS, security headers, idempotency, rate limiting, and compression.
//
// Design goals:
//   - Put observability first (OTel + Prometheus)
//   - Safe-by-default middleware ordering (RequestID → logging → recovery)
//   - Deterministic, minimal router setup; all dependencies injected
//   - Production-ready CORS and security header posture
package httpapi

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"gorm.io/gorm"

	_ "github.com/novalune/go-astro-backend/docs"
	"github.com/novalune/go-astro-backend/internal/billing"
	"github.com/novalune/go-astro-backend/internal/chart"
	"github.com/novalune/go-astro-backend/internal/config"
	"github.com/novalune/go-astro-backend/internal/domain"
	"github.com/novalune/go-astro-backend/internal/freshness"
	"github.com/novalune/go-astro-backend/internal/http/handlers"
	"github.com/novalune/go-astro-backend/internal/http/middleware"
	"github.com/novalune/go-astro-backend/internal/oracle"
	"github.com/novalune/go-astro-backend/internal/repo"
	"github.com/novalune/go-astro-backend/internal/services"
)

// profileRepoShim adapts the repository free functions to the
// services.ProfileStore and services.SettingsStore interfaces. This keeps
// services decoupled from the concrete repo package while reusing existing
// functions.
type profileRepoShim struct{}

// CreateProfile proxies repo.CreateProfile.
func (profileRepoShim) CreateProfile(ctx context.Context, db *gorm.DB, p *domain.Profile) (*domain.Profile, error) {
	return repo.CreateProfile(ctx, db, p)
}

// GetProfile proxies repo.GetProfile.
func (profileRepoShim) GetProfile(ctx context.Context, db *gorm.DB, id string) (*domain.Profile, error) {
	return repo.GetProfile(ctx, db, id)
}

// SaveProfile proxies repo.SaveProfile.
func (profileRepoShim) SaveProfile(ctx context.Context, db *gorm.DB, p *domain.Profile) error {
	return repo.SaveProfile(ctx, db, p)
}

// UpdateProfileTier proxies repo.UpdateProfileTier.
func (profileRepoShim) UpdateProfileTier(ctx context.Context, db *gorm.DB, id, tier string) error {
	return repo.UpdateProfileTier(ctx, db, id, tier)
}

// UpdateProfileLocale proxies repo.UpdateProfileLocale.
func (profileRepoShim) UpdateProfileLocale(ctx context.Context, db *gorm.DB, id, locale string) error {
	return repo.UpdateProfileLocale(ctx, db, id, locale)
}

// forecastCacheShim adapts the shared forecast cache repo functions to the
// services.ForecastCache interface.
type forecastCacheShim struct{}

// GetForecast proxies repo.GetForecast.
func (forecastCacheShim) GetForecast(ctx context.Context, db *gorm.DB, sign, day string) (*domain.ForecastCacheEntry, error) {
	return repo.GetForecast(ctx, db, sign, day)
}

// UpsertForecast proxies repo.UpsertForecast.
func (forecastCacheShim) UpsertForecast(ctx context.Context, db *gorm.DB, sign, day, text string, generatedAt time.Time) (*domain.ForecastCacheEntry, error) {
	return repo.UpsertForecast(ctx, db, sign, day, text, generatedAt)
}

// receiptRepoShim adapts the regeneration receipt repo functions to the
// services.ReceiptStore interface.
type receiptRepoShim struct{}

// GetReceipt proxies repo.GetReceipt.
func (receiptRepoShim) GetReceipt(ctx context.Context, db *gorm.DB, userID, category, key string, now time.Time) (*domain.RegenReceipt, error) {
	return repo.GetReceipt(ctx, db, userID, category, key, now)
}

// CreateReceipt proxies repo.CreateReceipt.
func (receiptRepoShim) CreateReceipt(ctx context.Context, db *gorm.DB, userID, category, key, content string, charged bool, ttl time.Duration) (*domain.RegenReceipt, error) {
	return repo.CreateReceipt(ctx, db, userID, category, key, content, charged, ttl)
}

// RegisterRoutes attaches all middleware and HTTP endpoints to the given Gin
// engine. It configures observability (tracing, metrics), idempotency and rate
// limiting, CORS, compression and security headers, health and metrics
// endpoints, and then mounts the versioned public API under /api/v*.
//
// Middleware order matters:
//  1. OpenTelemetry: trace everything
//  2. RequestID: generate/propagate correlation id
//  3. RedactingLogger: structured logs with PII scrubbing (birth facts!)
//  4. Recovery: capture panics after logger
//  5. Body size limiter
//  6. Metrics
//  7. Idempotency validator (before rate limiter to allow bypass on replay)
//  8. Rate limiter (per user/IP, bypass on replay)
//  9. CORS, gzip, and security headers
func RegisterRoutes(r *gin.Engine, db *gorm.DB, orc oracle.Oracle, eng chart.Engine, charger billing.Charger, cfg config.Config) {
	r.HandleMethodNotAllowed = true

	// 1) Trace all HTTP requests
	r.Use(otelgin.Middleware(cfg.OTEL.ServiceName))

	// 2) Correlate requests and logs
	r.Use(middleware.RequestID())

	// 3) Structured logging with redaction
	r.Use(middleware.RedactingLogger(middleware.RedactOptions{
		MaskHeaders: []string{
			"X-API-Key", // project-specific sensitive header example
		},
	}))

	// 4) Panic recovery to JSON 500 (with request id)
	r.Use(middleware.Recovery())

	// 5) Global body size limit (64 KiB; the API accepts small JSON facts only)
	r.Use(limitBody(64 << 10))

	// 6) Prometheus metrics and /metrics endpoint
	r.Use(middleware.Metrics())
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// 7) Idempotency validation (before rate limiting). A valid receipt for
	// (user, key) marks the request as a replay so the limiter lets retries
	// through.
	r.Use(middleware.IdempotencyValidator(
		middleware.IdempotencyOptions{
			MaxLen: 200,
		},
		func(ctx context.Context, userID, key string, now time.Time) (bool, error) {
			return repo.HasReceipt(ctx, db, userID, key, now)
		},
	))

	// 8) Token-bucket rate limiter per user/IP
	rl := middleware.NewRateLimiter(cfg.RateRPS, cfg.RateBurst, middleware.KeyByUserOrIP())
	r.Use(rl.Handler())

	// 9) CORS posture (safe defaults: allow all if none configured)
	if len(cfg.CORS.AllowedOrigins) == 0 {
		// Force ACAO: * even for requests without an Origin header (helps tests and simple health checks).
		r.Use(func(c *gin.Context) {
			c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
			c.Next()
		})
		r.Use(cors.New(cors.Config{
			AllowAllOrigins:  true,
			AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-User-ID", middleware.HeaderIdempotencyKey},
			ExposeHeaders:    []string{"X-Request-ID", "Content-Length"},
			AllowCredentials: false, // must remain false with AllowAllOrigins
			MaxAge:           12 * time.Hour,
		}))
	} else {
		// Echo ACAO with the request Origin when it is in the allowlist (in addition to gin-contrib/cors).
		allowed := make(map[string]struct{}, len(cfg.CORS.AllowedOrigins))
		for _, o := range cfg.CORS.AllowedOrigins {
			allowed[o] = struct{}{}
		}
		r.Use(func(c *gin.Context) {
			if origin := c.GetHeader("Origin"); origin != "" {
				if _, ok := allowed[origin]; ok {
					h := c.Writer.Header()
					h.Set("Access-Control-Allow-Origin", origin)
					h.Add("Vary", "Origin")
				}
			}
			c.Next()
		})
		r.Use(cors.New(cors.Config{
			AllowOrigins:     cfg.CORS.AllowedOrigins,
			AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-User-ID", middleware.HeaderIdempotencyKey},
			ExposeHeaders:    []string{"X-Request-ID", "Content-Length"},
			AllowCredentials: false,
			MaxAge:           12 * time.Hour,
		}))
	}

	// Compress responses: bundles are pages of generated prose.
	r.Use(gzip.Gzip(gzip.DefaultCompression, gzip.WithExcludedPaths([]string{"/metrics"})))

	// Security headers (HSTS only when enabled and request is HTTPS)
	r.Use(middleware.SecurityHeaders(middleware.SecurityOptions{
		EnableHSTS:   cfg.Security.EnableHSTS,
		HSTSMaxAge:   cfg.Security.HSTSMaxAge,
		NoStore:      false,
		EnablePolicy: true,
	}))

	// Fallbacks
	r.NoRoute(func(c *gin.Context) {
		handlers.Fail(c, http.StatusNotFound, handlers.ErrCodeNotFound, "route not found")
	})
	r.NoMethod(func(c *gin.Context) {
		handlers.Fail(c, http.StatusMethodNotAllowed, handlers.ErrCodeMethodNotAllowed, "method not allowed")
	})

	// Liveness/health
	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })

	// Swagger UI (opt-in)
	if cfg.SwaggerEnabled {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	// Dependency injection: services ← adapters/repo/db
	fresh := freshness.New(cfg.Freshness.UTCOffset, cfg.Freshness.Grace)
	genSvc := &services.GenerationService{
		DB:        db,
		Oracle:    orc,
		Store:     profileRepoShim{},
		Freshness: fresh,
	}
	profileSvc := &services.OnboardingService{
		DB:       db,
		Chart:    eng,
		Store:    profileRepoShim{},
		Settings: profileRepoShim{},
		Gen:      genSvc,
	}
	horoSvc := &services.HoroscopeService{
		DB:          db,
		Oracle:      orc,
		Store:       profileRepoShim{},
		Cache:       forecastCacheShim{},
		Freshness:   fresh,
		Gen:         genSvc,
		PersistWait: cfg.PersistWait,
	}
	compatSvc := &services.SynastryService{
		DB:     db,
		Oracle: orc,
		Store:  profileRepoShim{},
	}
	regenSvc := &services.RegenerationService{
		DB:       db,
		Oracle:   orc,
		Store:    profileRepoShim{},
		Receipts: receiptRepoShim{},
		Billing:  charger,
		Policy: services.RegenPolicy{
			PriceCents: cfg.Regen.PriceCents,
			ReceiptTTL: cfg.Regen.ReceiptTTL,
			Intro:      services.FreeAllowance{Grants: cfg.Regen.IntroFree, Window: cfg.Regen.IntroWindow},
			DeepDive:   services.FreeAllowance{Grants: cfg.Regen.DeepDiveFree, Window: cfg.Regen.DeepDiveWindow},
		},
	}
	h := handlers.New(profileSvc, horoSvc, compatSvc, regenSvc)

	// Public API
	apiBase := cfg.APIBasePath // e.g. "/api/v1"
	api := groupWithPrefix(r, apiBase)
	{
		// Profiles
		api.POST("/profiles", h.Onboard)
		api.GET("/profiles/me", h.GetProfile)
		api.PATCH("/profiles/me", h.UpdateSettings)

		// Daily horoscope
		api.GET("/horoscope/today", h.TodayHoroscope)

		// Compatibility memos
		api.POST("/compatibility", h.Compatibility)

		// Regeneration gate
		api.POST("/regenerate", h.Regenerate)
	}
}

// limitBody returns a Gin middleware that caps the request body size for all
// endpoints to maxBytes using http.MaxBytesReader. Requests exceeding the cap
// will cause downstream body reads to error.
func limitBody(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()
	}
}

// groupWithPrefix mounts a group at prefix, treating "/" (or empty) as root.
func groupWithPrefix(r *gin.Engine, prefix string) *gin.RouterGroup {
	if prefix == "" || prefix == "/" {
		return r.Group("")
	}
	return r.Group(prefix)
}
