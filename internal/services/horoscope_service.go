// Package services – HoroscopeService
//
// This file implements the daily forecast path and its two cache levels: the
// user's own bundle (fast path) and the cross-user shared cache keyed by
// (sign, reference day). Within one reference day a user triggers at most
// one oracle call through here, and across users of the same sign the
// intended total is one — concurrent first access may duplicate the call,
// which the shared cache absorbs with last-write-wins.
package services

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/novalune/go-astro-backend/internal/domain"
	"github.com/novalune/go-astro-backend/internal/freshness"
	"github.com/novalune/go-astro-backend/internal/oracle"

	// OpenTelemetry
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// defaultPersistWait bounds the detached bundle write after a shared-cache
// hit when the service is constructed without an explicit value.
const defaultPersistWait = 5 * time.Second

// HoroscopeService serves today's forecast for a profile.
type HoroscopeService struct {
	// DB is the GORM handle used for persistence.
	DB *gorm.DB
	// Oracle produces forecast text on a shared-cache miss.
	Oracle oracle.Oracle
	// Store loads and saves profiles.
	Store ProfileStore
	// Cache is the cross-user forecast cache.
	Cache ForecastCache
	// Freshness decides staleness and the current reference day.
	Freshness *freshness.Evaluator
	// Gen runs the initial fill for profiles with no bundle at all.
	Gen *GenerationService

	// PersistWait bounds the detached profile write after a shared-cache
	// hit. Zero selects defaultPersistWait.
	PersistWait time.Duration
}

// Today returns the forecast for the user's current reference day.
//
// Resolution order: initial fill when the bundle is empty, then the user's
// own bundle, then the shared cache, then one oracle call that primes both.
// Refresh persistence is enrichment: failures are logged, never surfaced,
// because the caller already holds the content.
func (s *HoroscopeService) Today(ctx context.Context, userID string) (*domain.ForecastPayload, error) {
	tr := otel.Tracer("services/HoroscopeService")
	ctx, span := tr.Start(ctx, "Today",
		trace.WithAttributes(attribute.String("user.id", userID)),
	)
	defer span.End()

	p, err := s.Store.GetProfile(ctx, s.DB, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}

	// A profile with no bundle at all means the initial fill never ran or
	// was never saved. Run it now; its forecast slice is today's answer.
	if p.Bundle.Empty() {
		span.SetAttributes(attribute.Bool("forecast.initial_fill", true))
		if _, err := s.Gen.GenerateAll(ctx, p); err != nil && !errors.Is(err, ErrBundlePersist) {
			return nil, err
		}
		return p.Bundle.Forecast, nil
	}

	now := time.Now().UTC()
	day := s.Freshness.ReferenceDay(now)

	// Fast path: the bundle already holds a fresh slice for today.
	last, _ := p.Stamps.Last(domain.CategoryForecast)
	if f := p.Bundle.Forecast; f != nil && f.Text != "" && f.Day == day &&
		!s.Freshness.Due(domain.CategoryForecast, last, now) {
		forecastLookups.WithLabelValues(lookupBundle).Inc()
		return f, nil
	}

	// Shared path: a sign-mate may have generated today's text already.
	entry, err := s.Cache.GetForecast(ctx, s.DB, p.Sign, day)
	if err == nil {
		forecastLookups.WithLabelValues(lookupShared).Inc()
		f := &domain.ForecastPayload{
			Sign:        p.Sign,
			Day:         day,
			Text:        entry.Text,
			GeneratedAt: entry.GeneratedAt,
		}
		p.EnsureLedgers()
		p.Bundle.Forecast = f
		p.Stamps.Touch(domain.CategoryForecast, now)
		s.persistDetached(ctx, p)
		return f, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		log.Warn().Err(err).
			Str("sign", p.Sign).
			Str("day", day).
			Msg("forecast cache read failed, generating")
	}

	// Miss: one oracle call primes both the shared cache and the bundle.
	forecastLookups.WithLabelValues(lookupMiss).Inc()
	locale := localeOf(p)
	req := contentRequest(p, oracle.KindDailyForecast, locale)
	req.Day = day

	text, gerr := s.Oracle.Generate(ctx, req)
	observeOracleCall(oracle.KindDailyForecast, gerr)
	if gerr != nil {
		log.Warn().Err(gerr).
			Str("user_id", p.ID).
			Msg("daily forecast generation failed, substituting fallback")
		// The fallback stays local to this user; sign-mates still get a
		// real generation attempt on their next request.
		text = oracle.Fallback(oracle.KindDailyForecast, locale)
	} else if _, uerr := s.Cache.UpsertForecast(ctx, s.DB, p.Sign, day, text, now); uerr != nil {
		log.Warn().Err(uerr).
			Str("sign", p.Sign).
			Str("day", day).
			Msg("forecast cache write failed")
	}

	f := &domain.ForecastPayload{Sign: p.Sign, Day: day, Text: text, GeneratedAt: now}
	p.EnsureLedgers()
	p.Bundle.Forecast = f
	p.Stamps.Touch(domain.CategoryForecast, now)
	if err := s.Store.SaveProfile(ctx, s.DB, p); err != nil {
		log.Warn().Err(err).
			Str("user_id", p.ID).
			Msg("persisting refreshed forecast failed")
	}
	return f, nil
}

// persistDetached writes the profile back without holding up the response.
// The write outlives the request on purpose: refresh persistence is
// fire-and-forget, and the caller already has the content in hand.
func (s *HoroscopeService) persistDetached(ctx context.Context, p *domain.Profile) {
	wait := s.PersistWait
	if wait <= 0 {
		wait = defaultPersistWait
	}
	bg := context.WithoutCancel(ctx)
	go func() {
		ctx, cancel := context.WithTimeout(bg, wait)
		defer cancel()
		if err := s.Store.SaveProfile(ctx, s.DB, p); err != nil {
			log.Warn().Err(err).
				Str("user_id", p.ID).
				Msg("detached bundle persist failed")
		}
	}()
}
