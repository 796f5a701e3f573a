// Package services – domain metrics
//
// This file exposes Prometheus counters for the expensive-call economy the
// orchestrator exists to manage: how often the content oracle is actually
// invoked and with what outcome, at which level forecast requests are
// satisfied, and how regeneration attempts resolve. Label sets are small and
// enumerable to keep cardinality bounded.
package services

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/novalune/go-astro-backend/internal/oracle"
)

// Forecast lookup levels.
const (
	lookupBundle = "bundle" // served from the user's own bundle
	lookupShared = "shared" // served from the cross-user cache
	lookupMiss   = "miss"   // generated on demand
)

// Regeneration attempt outcomes.
const (
	regenFree            = "free"
	regenPaid            = "paid"
	regenReplayed        = "replayed"
	regenNotPremium      = "not_premium"
	regenRateLimited     = "rate_limited"
	regenPaymentDeclined = "payment_declined"
	regenError           = "error"
)

var (
	// oracleCalls counts content oracle invocations by kind and outcome.
	oracleCalls = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "oracle_calls_total",
			Help: "Total number of content oracle calls.",
		},
		[]string{"kind", "outcome"},
	)

	// forecastLookups counts daily forecast requests by the level that served them.
	forecastLookups = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "forecast_lookups_total",
			Help: "Total number of daily forecast lookups by cache level.",
		},
		[]string{"level"},
	)

	// regenAttempts counts regeneration gate decisions by outcome.
	regenAttempts = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "regeneration_attempts_total",
			Help: "Total number of regeneration attempts by outcome.",
		},
		[]string{"outcome"},
	)
)

func init() {
	prometheus.MustRegister(oracleCalls, forecastLookups, regenAttempts)
}

// observeOracleCall records one oracle invocation and its outcome.
func observeOracleCall(kind oracle.Kind, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	oracleCalls.WithLabelValues(string(kind), outcome).Inc()
}
