// Package services defines the business logic for profile onboarding,
// content generation, the daily horoscope path, compatibility memos, and the
// regeneration gate. This file centralizes common service-level error values
// so that they can be consistently returned by service methods and checked
// by callers.
//
// These errors are intended for internal use by the service layer and
// translation into user-facing messages or HTTP status codes should be
// performed at the handler/controller layer.
package services

import "errors"

// Profile and validation errors.
var (
	// ErrProfileNotFound indicates that the requested profile does not exist.
	ErrProfileNotFound = errors.New("profile not found")

	// ErrInvalidName is returned when an onboarding request carries an empty
	// display name.
	ErrInvalidName = errors.New("name is required")

	// ErrInvalidBirthDate is returned when a birth date is missing or not in
	// YYYY-MM-DD form.
	ErrInvalidBirthDate = errors.New("birth date must be YYYY-MM-DD")

	// ErrInvalidBirthTime is returned when a birth time is present but not in
	// HH:MM form.
	ErrInvalidBirthTime = errors.New("birth time must be HH:MM")

	// ErrInvalidBirthPlace is returned when an onboarding request carries an
	// empty birth place.
	ErrInvalidBirthPlace = errors.New("birth place is required")

	// ErrInvalidLocale is returned when a locale is present but not a valid
	// BCP-47 tag.
	ErrInvalidLocale = errors.New("locale must be a valid BCP-47 tag")

	// ErrInvalidTier is returned when a tier value is outside the allowed set.
	ErrInvalidTier = errors.New("tier must be free or premium")

	// ErrNoSettings is returned when a settings update names nothing to change.
	ErrNoSettings = errors.New("no settings to update")
)

// Partner (compatibility) validation errors.
var (
	// ErrInvalidPartnerName is returned when a compatibility request carries
	// an empty partner name.
	ErrInvalidPartnerName = errors.New("partner name is required")

	// ErrInvalidPartnerBirthDate is returned when a partner birth date is
	// missing or not in YYYY-MM-DD form.
	ErrInvalidPartnerBirthDate = errors.New("partner birth date must be YYYY-MM-DD")

	// ErrInvalidMemoMode is returned when a compatibility request names a
	// memo depth other than brief or full.
	ErrInvalidMemoMode = errors.New("mode must be brief or full")
)

// External collaborator and persistence errors.
var (
	// ErrChartUnavailable indicates that the chart engine could not compute
	// chart facts; onboarding cannot continue without them.
	ErrChartUnavailable = errors.New("chart engine unavailable")

	// ErrOracleUnavailable indicates that the content oracle failed on a path
	// with no fallback, such as an explicit regeneration.
	ErrOracleUnavailable = errors.New("content oracle unavailable")

	// ErrProfilePersist indicates that the profile row itself could not be
	// created. This is the critical persistence failure of onboarding and is
	// retryable by the user.
	ErrProfilePersist = errors.New("profile could not be saved")

	// ErrBundlePersist indicates that freshly generated content could not be
	// written back. Callers on the first-time path surface it; enrichment
	// callers absorb it because the caller already holds the content.
	ErrBundlePersist = errors.New("generated content could not be saved")
)

// Regeneration gate errors.
var (
	// ErrUnknownCategory is returned when a regeneration names a category
	// this backend does not produce.
	ErrUnknownCategory = errors.New("unknown content category")

	// ErrNotRegenerable is returned when a regeneration names a category the
	// gate does not govern, such as the daily forecast, which refreshes on
	// its own schedule.
	ErrNotRegenerable = errors.New("category cannot be regenerated")
)
