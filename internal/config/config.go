// Package config provides application configuration loaded from environment
// variables with defaults and validation. It centralizes application settings
// such as server timeouts, logging, database paths, the external collaborator
// endpoints (oracle, chart, billing), freshness policy knobs, and observability.
package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"
)

// CORSConfig defines Cross-Origin Resource Sharing settings.
type CORSConfig struct {
	AllowedOrigins []string
}

// SecurityConfig defines security-related settings such as HSTS.
type SecurityConfig struct {
	EnableHSTS bool
	HSTSMaxAge time.Duration
}

// OTELConfig defines OpenTelemetry observability settings.
type OTELConfig struct {
	Enabled     bool    // OTEL_ENABLED
	Endpoint    string  // OTEL_EXPORTER_OTLP_ENDPOINT (e.g. "otel:4317")
	Insecure    bool    // OTEL_EXPORTER_OTLP_INSECURE (true if no TLS)
	ServiceName string  // OTEL_SERVICE_NAME (e.g. "go-astro-backend")
	SampleRatio float64 // OTEL_TRACES_SAMPLER_ARG in [0..1]
}

// OracleConfig defines the OpenAI-compatible content provider settings.
type OracleConfig struct {
	BaseURL      string        // ORACLE_BASE_URL ("" keeps the provider default)
	APIKey       string        // ORACLE_API_KEY
	Model        string        // ORACLE_MODEL
	MaxRetries   int           // ORACLE_MAX_RETRIES (attempts, >= 1)
	RetryBackoff time.Duration // ORACLE_RETRY_BACKOFF (first retry delay)
	Timeout      time.Duration // ORACLE_TIMEOUT (per HTTP attempt)
}

// ChartConfig defines the chart computation service settings.
type ChartConfig struct {
	BaseURL string        // CHART_BASE_URL
	APIKey  string        // CHART_API_KEY
	Timeout time.Duration // CHART_TIMEOUT
}

// BillingConfig defines the billing service settings. An empty BaseURL
// selects the sandbox charger, which approves everything.
type BillingConfig struct {
	BaseURL string        // BILLING_BASE_URL
	APIKey  string        // BILLING_API_KEY
	Timeout time.Duration // BILLING_TIMEOUT
}

// FreshnessConfig defines how reference days are computed.
type FreshnessConfig struct {
	UTCOffset time.Duration // REF_UTC_OFFSET (fixed zone offset, e.g. "5h30m", "-3h")
	Grace     time.Duration // REF_GRACE (post-midnight grace window)
}

// RegenConfig defines the regeneration gate policy: the posted price and the
// per-category free allowances inside their rolling windows. Year-ahead
// reports have no free allowance; every regeneration of those is paid.
type RegenConfig struct {
	PriceCents     int           // REGEN_PRICE_CENTS
	ReceiptTTL     time.Duration // REGEN_RECEIPT_TTL (Idempotency-Key validity)
	IntroFree      int           // REGEN_INTRO_FREE (per window)
	IntroWindow    time.Duration // REGEN_INTRO_WINDOW
	DeepDiveFree   int           // REGEN_DEEP_DIVE_FREE (per window)
	DeepDiveWindow time.Duration // REGEN_DEEP_DIVE_WINDOW
}

// Config holds all configuration values for the application.
type Config struct {
	// Server
	Port              string        // just the number
	ReadTimeout       time.Duration // e.g. 15s
	ReadHeaderTimeout time.Duration // e.g. 10s
	WriteTimeout      time.Duration // e.g. 20s
	IdleTimeout       time.Duration // e.g. 60s
	MaxHeaderBytes    int           // bytes
	GinMode           string        // debug|release|test

	// Logging / Docs
	LogLevel       string // debug|info|warn|error|fatal|panic
	LogPretty      bool   // pretty console logs in dev
	SwaggerEnabled bool   // enable Swagger UI route
	APIBasePath    string // base path for API routes

	// App
	DBPath        string        // SQLite path
	DefaultLocale string        // BCP-47 tag used when a profile has none
	PersistWait   time.Duration // budget for detached best-effort persists

	// Rate limiting
	RateRPS   float64 // tokens per second (>= 0)
	RateBurst int     // bucket size (>= 1)

	// Web protection
	CORS     CORSConfig
	Security SecurityConfig

	// Collaborators
	Oracle  OracleConfig
	Chart   ChartConfig
	Billing BillingConfig

	// Policy
	Freshness FreshnessConfig
	Regen     RegenConfig

	// Observability
	OTEL OTELConfig
}

// MustLoad loads the configuration and panics if validation fails.
func MustLoad() Config {
	cfg, err := Load()
	if err != nil {
		panic(err)
	}
	return cfg
}

// Load reads configuration from environment variables,
// applies defaults, normalizes values, and validates the result.
func Load() (Config, error) {
	cfg := Config{
		// Server
		Port:              getenv("PORT", "8080"),
		ReadTimeout:       getdur("READ_TIMEOUT", 15*time.Second),
		ReadHeaderTimeout: getdur("READ_HEADER_TIMEOUT", 10*time.Second),
		WriteTimeout:      getdur("WRITE_TIMEOUT", 20*time.Second),
		IdleTimeout:       getdur("IDLE_TIMEOUT", 60*time.Second),
		MaxHeaderBytes:    getint("MAX_HEADER_BYTES", 1<<20),
		GinMode:           strings.ToLower(getenv("GIN_MODE", "release")),

		// Logging / Docs
		LogLevel:       strings.ToLower(getenv("LOG_LEVEL", "info")),
		LogPretty:      getbool("LOG_PRETTY", false),
		SwaggerEnabled: getbool("SWAGGER_ENABLED", false),
		APIBasePath:    normalizeBasePath(getenv("API_BASE_PATH", "/api/v1")),

		// App
		DBPath:        getenv("DB_PATH", "astro.db"),
		DefaultLocale: getenv("DEFAULT_LOCALE", "en"),
		PersistWait:   getdur("PERSIST_WAIT", 5*time.Second),

		// Rate limiting
		RateRPS:   getfloat("RATE_RPS", 5.0),
		RateBurst: getint("RATE_BURST", 10),

		// Web protection
		CORS: CORSConfig{
			AllowedOrigins: splitCSV(getenv("CORS_ALLOWED_ORIGINS", "")),
		},
		Security: SecurityConfig{
			EnableHSTS: getbool("ENABLE_HSTS", false),
			HSTSMaxAge: getdur("HSTS_MAX_AGE", 180*24*time.Hour),
		},

		// Collaborators
		Oracle: OracleConfig{
			BaseURL:      getenv("ORACLE_BASE_URL", ""),
			APIKey:       getenv("ORACLE_API_KEY", ""),
			Model:        getenv("ORACLE_MODEL", "gpt-4o-mini"),
			MaxRetries:   getint("ORACLE_MAX_RETRIES", 3),
			RetryBackoff: getdur("ORACLE_RETRY_BACKOFF", time.Second),
			Timeout:      getdur("ORACLE_TIMEOUT", 30*time.Second),
		},
		Chart: ChartConfig{
			BaseURL: getenv("CHART_BASE_URL", "http://localhost:9090"),
			APIKey:  getenv("CHART_API_KEY", ""),
			Timeout: getdur("CHART_TIMEOUT", 15*time.Second),
		},
		Billing: BillingConfig{
			BaseURL: getenv("BILLING_BASE_URL", ""),
			APIKey:  getenv("BILLING_API_KEY", ""),
			Timeout: getdur("BILLING_TIMEOUT", 10*time.Second),
		},

		// Policy
		Freshness: FreshnessConfig{
			UTCOffset: getdur("REF_UTC_OFFSET", 0),
			Grace:     getdur("REF_GRACE", 3*time.Hour),
		},
		Regen: RegenConfig{
			PriceCents:     getint("REGEN_PRICE_CENTS", 299),
			ReceiptTTL:     getdur("REGEN_RECEIPT_TTL", 24*time.Hour),
			IntroFree:      getint("REGEN_INTRO_FREE", 1),
			IntroWindow:    getdur("REGEN_INTRO_WINDOW", 24*time.Hour),
			DeepDiveFree:   getint("REGEN_DEEP_DIVE_FREE", 3),
			DeepDiveWindow: getdur("REGEN_DEEP_DIVE_WINDOW", 7*24*time.Hour),
		},

		// Observability (OpenTelemetry)
		OTEL: OTELConfig{
			Enabled:     getbool("OTEL_ENABLED", false),
			Endpoint:    getenv("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4317"),
			Insecure:    getbool("OTEL_EXPORTER_OTLP_INSECURE", true),
			ServiceName: getenv("OTEL_SERVICE_NAME", "go-astro-backend"),
			SampleRatio: getfloat("OTEL_TRACES_SAMPLER_ARG", 1.0),
		},
	}

	// --- normalization ---
	if cfg.LogLevel == "warning" {
		cfg.LogLevel = "warn"
	}
	switch cfg.GinMode {
	case "debug", "release", "test":
	default:
		cfg.GinMode = "release"
	}

	// --- validation ---
	switch cfg.LogLevel {
	case "debug", "info", "warn", "error", "fatal", "panic":
	default:
		return cfg, errors.New("LOG_LEVEL must be one of: debug, info, warn, error, fatal, panic")
	}
	if strings.TrimSpace(cfg.Port) == "" {
		return cfg, errors.New("PORT must not be empty")
	}
	if cfg.ReadTimeout <= 0 || cfg.ReadHeaderTimeout <= 0 || cfg.WriteTimeout <= 0 || cfg.IdleTimeout <= 0 {
		return cfg, errors.New("timeouts must be positive durations")
	}
	if cfg.MaxHeaderBytes <= 0 {
		return cfg, errors.New("MAX_HEADER_BYTES must be > 0")
	}
	if strings.TrimSpace(cfg.DBPath) == "" {
		return cfg, errors.New("DB_PATH must not be empty")
	}
	if strings.TrimSpace(cfg.DefaultLocale) == "" {
		return cfg, errors.New("DEFAULT_LOCALE must not be empty")
	}
	if cfg.PersistWait <= 0 {
		return cfg, errors.New("PERSIST_WAIT must be > 0")
	}
	if cfg.RateRPS < 0 {
		return cfg, errors.New("RATE_RPS must be >= 0")
	}
	if cfg.RateBurst < 1 {
		return cfg, errors.New("RATE_BURST must be >= 1")
	}
	if cfg.Security.HSTSMaxAge < 0 {
		return cfg, errors.New("HSTS_MAX_AGE must be >= 0")
	}
	if cfg.Oracle.MaxRetries < 1 {
		return cfg, errors.New("ORACLE_MAX_RETRIES must be >= 1")
	}
	if cfg.Oracle.RetryBackoff <= 0 || cfg.Oracle.Timeout <= 0 {
		return cfg, errors.New("oracle backoff and timeout must be positive durations")
	}
	if strings.TrimSpace(cfg.Chart.BaseURL) == "" {
		return cfg, errors.New("CHART_BASE_URL must not be empty")
	}
	if cfg.Chart.Timeout <= 0 || cfg.Billing.Timeout <= 0 {
		return cfg, errors.New("collaborator timeouts must be positive durations")
	}
	if cfg.Freshness.UTCOffset < -12*time.Hour || cfg.Freshness.UTCOffset > 14*time.Hour {
		return cfg, errors.New("REF_UTC_OFFSET must be within -12h..14h")
	}
	if cfg.Freshness.Grace < 0 {
		return cfg, errors.New("REF_GRACE must be >= 0")
	}
	if cfg.Regen.PriceCents < 0 {
		return cfg, errors.New("REGEN_PRICE_CENTS must be >= 0")
	}
	if cfg.Regen.ReceiptTTL <= 0 {
		return cfg, errors.New("REGEN_RECEIPT_TTL must be > 0")
	}
	if cfg.Regen.IntroFree < 0 || cfg.Regen.DeepDiveFree < 0 {
		return cfg, errors.New("free regeneration allowances must be >= 0")
	}
	if cfg.Regen.IntroWindow <= 0 || cfg.Regen.DeepDiveWindow <= 0 {
		return cfg, errors.New("free regeneration windows must be positive durations")
	}
	if cfg.OTEL.SampleRatio < 0 || cfg.OTEL.SampleRatio > 1 {
		return cfg, errors.New("OTEL_TRACES_SAMPLER_ARG must be in [0,1]")
	}

	return cfg, nil
}

// ---- helpers (no external deps) ----

func getenv(k, def string) string {
	if v, ok := os.LookupEnv(k); ok && v != "" {
		return v
	}
	return def
}

func getfloat(k string, def float64) float64 {
	if v, ok := os.LookupEnv(k); ok && v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return def
}

func getint(k string, def int) int {
	if v, ok := os.LookupEnv(k); ok && v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return def
}

func getbool(k string, def bool) bool {
	if v, ok := os.LookupEnv(k); ok && v != "" {
		switch strings.ToLower(strings.TrimSpace(v)) {
		case "1", "true", "yes", "y", "on":
			return true
		case "0", "false", "no", "n", "off":
			return false
		}
	}
	return def
}

func getdur(k string, def time.Duration) time.Duration {
	if v, ok := os.LookupEnv(k); ok && v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}

func splitCSV(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		t := strings.TrimSpace(p)
		if t != "" {
			out = append(out, t)
		}
	}
	return out
}

// normalizeBasePath ensures leading '/' and strips trailing '/' (except root).
func normalizeBasePath(p string) string {
	p = strings.TrimSpace(p)
	if p == "" {
		return "/"
	}
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	if len(p) > 1 && strings.HasSuffix(p, "/") {
		p = strings.TrimRight(p, "/")
	}
	return p
}
