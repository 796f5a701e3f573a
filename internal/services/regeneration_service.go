// Package services – RegenerationService
//
// This file implements the pay-or-wait gate over forced content regeneration:
// the only path that can replace a one-time or paid-only category after its
// first generation. Premium standing, per-category free allowances inside
// rolling windows, and the posted price are all policy, not code; denials
// are typed outcomes the caller renders, never errors.
package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/novalune/go-astro-backend/internal/billing"
	"github.com/novalune/go-astro-backend/internal/domain"
	"github.com/novalune/go-astro-backend/internal/oracle"

	// OpenTelemetry
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// defaultReceiptTTL is how long a regeneration receipt can be replayed when
// the policy does not set one.
const defaultReceiptTTL = 24 * time.Hour

// FreeAllowance is one category's free-regeneration budget: Grants free
// regenerations inside each rolling Window. A zero Grants means every
// regeneration of that category is paid.
type FreeAllowance struct {
	Grants int
	Window time.Duration
}

// RegenPolicy is the gate's configuration: the posted price, the replay
// window for idempotency receipts, and the per-category free allowances.
// Paid-only categories have no allowance.
type RegenPolicy struct {
	PriceCents int
	ReceiptTTL time.Duration
	Intro      FreeAllowance
	DeepDive   FreeAllowance
}

// allowance returns the free budget for a category. Categories without one
// (year-ahead and anything else paid-only) get the zero allowance.
func (p RegenPolicy) allowance(cat domain.Category) FreeAllowance {
	if _, ok := domain.DeepDiveTopic(cat); ok {
		return p.DeepDive
	}
	if cat == domain.CategoryIntro {
		return p.Intro
	}
	return FreeAllowance{}
}

// DeniedReason classifies why the gate refused to regenerate. Denials are
// expected outcomes: the caller renders an upsell, a wait-or-pay prompt, or
// a payment failure message.
type DeniedReason string

// Denial reasons.
const (
	DeniedNotPremium      DeniedReason = "not_premium"
	DeniedRateLimited     DeniedReason = "rate_limited"
	DeniedPaymentDeclined DeniedReason = "payment_declined"
)

// RegenOutcome is the result of a regeneration attempt. Either Denied is set
// or Content carries the new text. PriceCents is the posted price when the
// attempt was denied for payment reasons, and the amount actually charged
// when Charged is true.
type RegenOutcome struct {
	Category   domain.Category
	Content    string
	Denied     DeniedReason
	Charged    bool
	PriceCents int
	Replayed   bool
}

// Allowed reports whether the attempt produced content.
func (o *RegenOutcome) Allowed() bool { return o.Denied == "" }

// RegenerationService decides whether a forced regeneration is free, paid,
// or denied, and performs it when allowed.
type RegenerationService struct {
	// DB is the GORM handle used for persistence.
	DB *gorm.DB
	// Oracle produces the replacement text.
	Oracle oracle.Oracle
	// Store loads and saves profiles.
	Store ProfileStore
	// Receipts records processed attempts for idempotent replays.
	Receipts ReceiptStore
	// Billing collects the posted price for paid regenerations.
	Billing billing.Charger
	// Policy is the gate configuration.
	Policy RegenPolicy
}

// Attempt applies the entitlement decision table for one category and, when
// allowed, regenerates it: not premium → denied; free allowance left in the
// rolling window → proceed at no charge; allowance exhausted → denied unless
// the caller agreed to pay, in which case billing decides.
//
// idemKey, when non-empty, makes the attempt replayable: a valid receipt for
// (user, category, key) short-circuits to the recorded content without
// touching the oracle or billing again.
//
// On proceed the oracle is called first and billing second, so a failed
// generation never charges anyone; the bundle field is overwritten, both
// ledgers are updated, and the save is enrichment (absorbed and logged).
func (s *RegenerationService) Attempt(ctx context.Context, userID string, cat domain.Category, agreeToCharge bool, idemKey string) (*RegenOutcome, error) {
	tr := otel.Tracer("services/RegenerationService")
	ctx, span := tr.Start(ctx, "Attempt",
		trace.WithAttributes(
			attribute.String("user.id", userID),
			attribute.String("category", string(cat)),
		),
	)
	defer span.End()

	if !domain.KnownCategory(cat) {
		return nil, ErrUnknownCategory
	}
	if domain.KindOf(cat) == domain.KindDailyScheduled {
		return nil, ErrNotRegenerable
	}
	kind, ok := oracle.KindForCategory(cat)
	if !ok {
		return nil, ErrNotRegenerable
	}

	p, err := s.Store.GetProfile(ctx, s.DB, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}

	now := time.Now().UTC()
	idemKey = strings.TrimSpace(idemKey)

	// Replay: a recorded attempt wins over everything, including tier
	// changes since, so retries always see the original result.
	if idemKey != "" {
		rec, rerr := s.Receipts.GetReceipt(ctx, s.DB, userID, string(cat), idemKey, now)
		if rerr == nil {
			regenAttempts.WithLabelValues(regenReplayed).Inc()
			out := &RegenOutcome{
				Category: cat,
				Content:  rec.Content,
				Charged:  rec.Charged,
				Replayed: true,
			}
			if rec.Charged {
				out.PriceCents = s.Policy.PriceCents
			}
			return out, nil
		}
		if !errors.Is(rerr, gorm.ErrRecordNotFound) {
			log.Warn().Err(rerr).
				Str("user_id", userID).
				Msg("receipt lookup failed, treating attempt as new")
		}
	}

	if !p.IsPremium() {
		regenAttempts.WithLabelValues(regenNotPremium).Inc()
		return &RegenOutcome{Category: cat, Denied: DeniedNotPremium}, nil
	}

	p.EnsureLedgers()
	allowance := s.Policy.allowance(cat)
	record := p.Regen.Record(cat)
	used := record.FreeUsed(now, allowance.Window)
	needsCharge := allowance.Grants == 0 || used >= allowance.Grants

	if needsCharge && !agreeToCharge {
		regenAttempts.WithLabelValues(regenRateLimited).Inc()
		return &RegenOutcome{
			Category:   cat,
			Denied:     DeniedRateLimited,
			PriceCents: s.Policy.PriceCents,
		}, nil
	}

	req := contentRequest(p, kind, localeOf(p))
	if topic, isDive := domain.DeepDiveTopic(cat); isDive {
		req.Topic = topic
	}

	text, gerr := s.Oracle.Generate(ctx, req)
	observeOracleCall(kind, gerr)
	if gerr != nil {
		regenAttempts.WithLabelValues(regenError).Inc()
		log.Error().Err(gerr).
			Str("user_id", userID).
			Str("category", string(cat)).
			Msg("regeneration oracle call failed")
		return nil, ErrOracleUnavailable
	}

	charged := false
	if needsCharge {
		res, berr := s.Billing.Charge(ctx, userID, s.Policy.PriceCents)
		if berr != nil || res != billing.ResultApproved {
			if berr != nil {
				log.Error().Err(berr).
					Str("user_id", userID).
					Msg("billing charge failed")
			}
			regenAttempts.WithLabelValues(regenPaymentDeclined).Inc()
			return &RegenOutcome{
				Category:   cat,
				Denied:     DeniedPaymentDeclined,
				PriceCents: s.Policy.PriceCents,
			}, nil
		}
		charged = true
	}

	applyContent(p, cat, text)
	if charged {
		record.RecordPaid(now)
	} else {
		record.GrantFree(now)
	}
	p.Stamps.Touch(cat, now)

	if err := s.Store.SaveProfile(ctx, s.DB, p); err != nil {
		log.Warn().Err(err).
			Str("user_id", userID).
			Str("category", string(cat)).
			Msg("persisting regenerated content failed")
	}

	if idemKey != "" {
		ttl := s.Policy.ReceiptTTL
		if ttl <= 0 {
			ttl = defaultReceiptTTL
		}
		if _, rerr := s.Receipts.CreateReceipt(ctx, s.DB, userID, string(cat), idemKey, text, charged, ttl); rerr != nil {
			log.Warn().Err(rerr).
				Str("user_id", userID).
				Str("category", string(cat)).
				Msg("recording regeneration receipt failed")
		}
	}

	outcome := &RegenOutcome{Category: cat, Content: text, Charged: charged}
	if charged {
		outcome.PriceCents = s.Policy.PriceCents
		regenAttempts.WithLabelValues(regenPaid).Inc()
	} else {
		regenAttempts.WithLabelValues(regenFree).Inc()
	}
	return outcome, nil
}

// applyContent overwrites the bundle field the category names.
func applyContent(p *domain.Profile, cat domain.Category, text string) {
	switch cat {
	case domain.CategoryIntro:
		p.Bundle.Intro = text
	case domain.CategoryYearAhead:
		p.Bundle.YearAhead = text
	default:
		if topic, ok := domain.DeepDiveTopic(cat); ok {
			p.Bundle.SetDeepDive(topic, text)
		}
	}
}
