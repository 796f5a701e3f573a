// Package services – OnboardingService
//
// This file implements first-time profile setup: validate the birth facts,
// compute the chart exactly once, create the profile row, then run the full
// content generation. Validation rejects bad input before any external call
// is made, and the profile insert is the one persistence step whose failure
// blocks the user (there is no content to fall back on yet).
package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/novalune/go-astro-backend/internal/chart"
	"github.com/novalune/go-astro-backend/internal/domain"

	// OpenTelemetry
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"golang.org/x/text/language"
)

// OnboardingService creates profiles, runs their initial content fill, and
// owns the small profile read/update surface the API exposes.
type OnboardingService struct {
	// DB is the GORM handle used for persistence.
	DB *gorm.DB
	// Chart computes the astrological facts from the birth data.
	Chart chart.Engine
	// Store persists the new profile.
	Store ProfileStore
	// Settings applies targeted tier/locale updates.
	Settings SettingsStore
	// Gen performs the initial bundle generation.
	Gen *GenerationService
}

// OnboardInput carries the facts a new user submits. Locale and Tier are
// optional; BirthTime may be empty when the user does not know it.
type OnboardInput struct {
	Name       string
	BirthDate  string
	BirthTime  string
	BirthPlace string
	Locale     string
	Tier       string
}

// normalize trims and validates the input in place, applying defaults for
// the optional fields.
func (in *OnboardInput) normalize() error {
	in.Name = strings.TrimSpace(in.Name)
	if in.Name == "" {
		return ErrInvalidName
	}

	in.BirthDate = strings.TrimSpace(in.BirthDate)
	if _, err := time.Parse("2006-01-02", in.BirthDate); err != nil {
		return ErrInvalidBirthDate
	}

	in.BirthTime = strings.TrimSpace(in.BirthTime)
	if in.BirthTime != "" {
		if _, err := time.Parse("15:04", in.BirthTime); err != nil {
			return ErrInvalidBirthTime
		}
	}

	in.BirthPlace = strings.TrimSpace(in.BirthPlace)
	if in.BirthPlace == "" {
		return ErrInvalidBirthPlace
	}

	in.Locale = strings.TrimSpace(in.Locale)
	if in.Locale == "" {
		in.Locale = "en"
	} else if _, err := language.Parse(in.Locale); err != nil {
		return ErrInvalidLocale
	}

	switch in.Tier {
	case "":
		in.Tier = domain.TierFree
	case domain.TierFree, domain.TierPremium:
	default:
		return ErrInvalidTier
	}
	return nil
}

// Onboard validates the input, computes the chart, creates the profile and
// fills its bundle. The chart is computed here and never again for this
// profile. The returned profile carries the generated bundle.
//
// Error contract: validation sentinels before any external call;
// ErrChartUnavailable when the engine fails; ErrProfilePersist when the row
// insert fails; ErrBundlePersist when content was generated but could not be
// saved (all three retryable by the user).
func (s *OnboardingService) Onboard(ctx context.Context, in OnboardInput) (*domain.Profile, error) {
	tr := otel.Tracer("services/OnboardingService")
	ctx, span := tr.Start(ctx, "Onboard")
	defer span.End()

	if err := in.normalize(); err != nil {
		return nil, err
	}

	facts, err := s.Chart.Compute(ctx, chart.ComputeRequest{
		Name:       in.Name,
		BirthDate:  in.BirthDate,
		BirthTime:  in.BirthTime,
		BirthPlace: in.BirthPlace,
		Locale:     in.Locale,
	})
	if err != nil {
		log.Error().Err(err).Msg("chart engine failed during onboarding")
		return nil, ErrChartUnavailable
	}

	// The engine owns the placements, but the shared-cache bucket must be
	// one of the twelve signs; fall back to the calendar boundaries when the
	// engine returns something unusable.
	sign := strings.ToLower(strings.TrimSpace(facts.SunSign))
	if !domain.ValidSign(sign) {
		derived, derr := domain.SignForBirthDate(in.BirthDate)
		if derr != nil {
			return nil, ErrInvalidBirthDate
		}
		sign = string(derived)
	}

	created, err := s.Store.CreateProfile(ctx, s.DB, &domain.Profile{
		Name:       in.Name,
		BirthDate:  in.BirthDate,
		BirthTime:  in.BirthTime,
		BirthPlace: in.BirthPlace,
		Locale:     in.Locale,
		Tier:       in.Tier,
		Sign:       sign,
		Chart:      facts,
	})
	if err != nil {
		log.Error().Err(err).Msg("profile insert failed during onboarding")
		return nil, ErrProfilePersist
	}
	span.SetAttributes(attribute.String("user.id", created.ID))

	// The initial fill must complete before any refresh path may touch this
	// bundle; sequencing here is what guarantees that.
	if _, err := s.Gen.GenerateAll(ctx, created); err != nil {
		return nil, err
	}
	return created, nil
}

// Profile returns the profile with its bundle and ledgers.
func (s *OnboardingService) Profile(ctx context.Context, userID string) (*domain.Profile, error) {
	tr := otel.Tracer("services/OnboardingService")
	ctx, span := tr.Start(ctx, "Profile",
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
	return p, nil
}

// SettingsInput carries the mutable profile settings. Empty fields are left
// unchanged.
type SettingsInput struct {
	Locale string
	Tier   string
}

// UpdateSettings applies a locale and/or tier change and returns the updated
// profile. In production the tier change arrives from the billing provider's
// webhook; this surface also serves as the demo stand-in for it.
func (s *OnboardingService) UpdateSettings(ctx context.Context, userID string, in SettingsInput) (*domain.Profile, error) {
	tr := otel.Tracer("services/OnboardingService")
	ctx, span := tr.Start(ctx, "UpdateSettings",
		trace.WithAttributes(attribute.String("user.id", userID)),
	)
	defer span.End()

	in.Locale = strings.TrimSpace(in.Locale)
	if in.Locale != "" {
		if _, err := language.Parse(in.Locale); err != nil {
			return nil, ErrInvalidLocale
		}
	}
	switch in.Tier {
	case "", domain.TierFree, domain.TierPremium:
	default:
		return nil, ErrInvalidTier
	}
	if in.Locale == "" && in.Tier == "" {
		return nil, ErrNoSettings
	}

	if in.Tier != "" {
		if err := s.Settings.UpdateProfileTier(ctx, s.DB, userID, in.Tier); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrProfileNotFound
			}
			return nil, err
		}
	}
	if in.Locale != "" {
		if err := s.Settings.UpdateProfileLocale(ctx, s.DB, userID, in.Locale); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrProfileNotFound
			}
			return nil, err
		}
	}
	return s.Profile(ctx, userID)
}
