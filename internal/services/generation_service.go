// Package services – GenerationService
//
// This file implements the generation orchestrator: one oracle call per
// content category, fanned out concurrently, with per-category fallback on
// failure. A failed category never aborts its siblings; the bundle that
// comes back is always complete and displayable.
//
// Observability: the public method is OpenTelemetry-instrumented and every
// oracle call is counted by kind and outcome.
package services

import (
	"context"
	"sync"
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

	"golang.org/x/text/language"
)

// GenerationService fills a profile's content bundle. It runs once per
// profile at onboarding and again only when a profile turns up with no
// bundle at all (a previous fill that was generated but never saved).
type GenerationService struct {
	// DB is the GORM handle used for persistence.
	DB *gorm.DB
	// Oracle produces the content.
	Oracle oracle.Oracle
	// Store persists the profile with its bundle and ledgers.
	Store ProfileStore
	// Freshness supplies the reference day written into the daily slice.
	Freshness *freshness.Evaluator
}

/// genJob is one fan-out slot: a category and the oracle kind that fills it.
type genJob struct {
	cat   domain.Category
	kind  oracle.Kind
	topic string
}

// genResult is the outcome of one slot, fallback text included.
type genResult struct {
	genJob
	text     string
	fallback bool
}

// GenerateAll generates every automatic category for the profile: the intro,
// the daily forecast, and one deep dive per topic. Paid-only categories are
// never produced here. Oracle failures are absorbed per category into a
// localized fallback string; the ledger is stamped for every slot either
// way, so recovery goes through the regeneration gate or the next daily
// roll, not through repeated full fills.
//
// The bundle is written into p and persisted. When the save fails the bundle
// is still returned alongside ErrBundlePersist: first-time callers surface
// the error, enrichment callers keep the content and absorb it.
func (s *GenerationService) GenerateAll(ctx context.Context, p *domain.Profile) (*domain.ContentBundle, error) {
	tr := otel.Tracer("services/GenerationService")
	ctx, span := tr.Start(ctx, "GenerateAll",
		trace.WithAttributes(
			attribute.String("user.id", p.ID),
			attribute.String("user.sign", p.Sign),
		),
	)
	defer span.End()

	now := time.Now().UTC()
	day := s.Freshness.ReferenceDay(now)
	locale := localeOf(p)

	jobs := []genJob{
		{cat: domain.CategoryIntro, kind: oracle.KindIntro},
		{cat: domain.CategoryForecast, kind: oracle.KindDailyForecast},
	}
	for _, topic := range domain.DeepDiveTopics {
		jobs = append(jobs, genJob{cat: domain.DeepDiveCategory(topic), kind: oracle.KindDeepDive, topic: topic})
	}

	results := make([]genResult, 0, len(jobs))
	var wg sync.WaitGroup
	var mu sync.Mutex

	for _, job := range jobs {
		wg.Add(1)
		go func(job genJob) {
			defer wg.Done()

			req := contentRequest(p, job.kind, locale)
			req.Topic = job.topic
			if job.kind == oracle.KindDailyForecast {
				req.Day = day
			}

			text, err := s.Oracle.Generate(ctx, req)
			observeOracleCall(job.kind, err)

			r := genResult{genJob: job, text: text}
			if err != nil {
				log.Warn().Err(err).
					Str("user_id", p.ID).
					Str("category", string(job.cat)).
					Msg("oracle call failed, substituting fallback")
				r.text = oracle.Fallback(job.kind, locale)
				r.fallback = true
			}

			mu.Lock()
			results = append(results, r)
			mu.Unlock()
		}(job)
	}
	wg.Wait()

	p.EnsureLedgers()
	fallbacks := 0
	for _, r := range results {
		switch r.cat {
		case domain.CategoryIntro:
			p.Bundle.Intro = r.text
		case domain.CategoryForecast:
			p.Bundle.Forecast = &domain.ForecastPayload{
				Sign:        p.Sign,
				Day:         day,
				Text:        r.text,
				GeneratedAt: now,
			}
		default:
			p.Bundle.SetDeepDive(r.topic, r.text)
		}
		p.Stamps.Touch(r.cat, now)
		if r.fallback {
			fallbacks++
		}
	}
	span.SetAttributes(attribute.Int("generation.fallbacks", fallbacks))

	if err := s.Store.SaveProfile(ctx, s.DB, p); err != nil {
		log.Error().Err(err).
			Str("user_id", p.ID).
			Msg("persisting generated bundle failed")
		return &p.Bundle, ErrBundlePersist
	}
	return &p.Bundle, nil
}

// localeOf parses the profile's stored locale; unparseable or empty tags
// fall back to English.
func localeOf(p *domain.Profile) language.Tag {
	tag, err := language.Parse(p.Locale)
	if err != nil {
		return language.English
	}
	return tag
}

// contentRequest assembles the parts of an oracle request shared by every
// kind. Callers fill in Topic, Day, or Partner as needed.
func contentRequest(p *domain.Profile, kind oracle.Kind, locale language.Tag) oracle.Request {
	return oracle.Request{
		Kind: kind,
		User: oracle.UserFacts{
			Name:       p.Name,
			BirthDate:  p.BirthDate,
			BirthTime:  p.BirthTime,
			BirthPlace: p.BirthPlace,
			Sign:       p.Sign,
		},
		Chart:  p.Chart,
		Locale: locale,
	}
}
