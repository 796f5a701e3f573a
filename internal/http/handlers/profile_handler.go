// Profile HTTP handlers.
//
// This file exposes REST endpoints for the profile resource:
//   - POST   /profiles       (onboarding: birth facts in, profile + bundle out)
//   - GET    /profiles/me    (profile with bundle, ETag support)
//   - PATCH  /profiles/me    (update locale and/or tier)
//
// Handlers are transport-thin: they validate input, call application services,
// and translate results into HTTP responses (including conditional responses).
package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/novalune/go-astro-backend/internal/domain"
	"github.com/novalune/go-astro-backend/internal/repo"
	"github.com/novalune/go-astro-backend/internal/services"
)

//
// Service contracts (context-aware)
//

// ProfileService defines profile lifecycle operations consumed by HTTP
// handlers.
//
// Implementations should be safe for concurrent use and must honor the
// provided context for cancellation and timeouts.
type ProfileService interface {
	// Onboard creates a profile from birth facts and runs the initial
	// content generation. It blocks until the bundle is complete.
	Onboard(ctx context.Context, in services.OnboardInput) (*domain.Profile, error)
	// Profile returns the profile with its bundle.
	Profile(ctx context.Context, userID string) (*domain.Profile, error)
	// UpdateSettings applies a locale and/or tier change.
	UpdateSettings(ctx context.Context, userID string, in services.SettingsInput) (*domain.Profile, error)
}

// HoroscopeService defines the daily forecast operation.
type HoroscopeService interface {
	// Today returns the forecast for the user's current reference day,
	// generating it at most once per user per day.
	Today(ctx context.Context, userID string) (*domain.ForecastPayload, error)
}

// CompatibilityService defines the partner memo operation.
type CompatibilityService interface {
	// Memo returns (and caches) the compatibility memo for a partner at the
	// requested depth.
	Memo(ctx context.Context, userID string, in services.PartnerInput, mode domain.MemoMode) (*domain.PartnerMemo, error)
}

// RegenerationService defines the entitlement-gated forced regeneration.
type RegenerationService interface {
	// Attempt applies the pay-or-wait decision table and regenerates the
	// category when allowed. Denials are outcomes, not errors.
	Attempt(ctx context.Context, userID string, cat domain.Category, agreeToCharge bool, idemKey string) (*services.RegenOutcome, error)
}

//
// Handler wiring
//

// Handlers groups the HTTP endpoints for profiles, horoscopes, compatibility
// memos, and regeneration. It depends on abstract service interfaces to keep
// transport concerns separate from business logic.
type Handlers struct {
	profileSvc ProfileService
	horoSvc    HoroscopeService
	compatSvc  CompatibilityService
	regenSvc   RegenerationService
}

// New constructs and returns a Handlers instance bound to the given services.
func New(profileSvc ProfileService, horoSvc HoroscopeService, compatSvc CompatibilityService, regenSvc RegenerationService) *Handlers {
	return &Handlers{profileSvc: profileSvc, horoSvc: horoSvc, compatSvc: compatSvc, regenSvc: regenSvc}
}

// userID extracts the authenticated user id from Gin context (set by upstream
// middleware). If absent, it falls back to "X-User-ID" header (tests use it),
// and finally to "demo-user". It never touches c.Request if it's nil.
func userID(c *gin.Context) string {
	if v, ok := c.Get("userID"); ok {
		if s, ok := v.(string); ok && s != "" {
			return s
		}
	}
	if c != nil && c.Request != nil {
		if h := strings.TrimSpace(c.GetHeader("X-User-ID")); h != "" {
			return h
		}
	}
	return "demo-user"
}

// failService maps service-layer sentinels to the error envelope. Anything
// unrecognized becomes a 500.
func failService(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrProfileNotFound):
		fail(c, http.StatusNotFound, ErrCodeNotFound, "profile not found")
	case errors.Is(err, services.ErrInvalidName),
		errors.Is(err, services.ErrInvalidBirthDate),
		errors.Is(err, services.ErrInvalidBirthTime),
		errors.Is(err, services.ErrInvalidBirthPlace),
		errors.Is(err, services.ErrInvalidLocale),
		errors.Is(err, services.ErrInvalidTier),
		errors.Is(err, services.ErrNoSettings),
		errors.Is(err, services.ErrInvalidPartnerName),
		errors.Is(err, services.ErrInvalidPartnerBirthDate),
		errors.Is(err, services.ErrInvalidMemoMode),
		errors.Is(err, services.ErrUnknownCategory),
		errors.Is(err, services.ErrNotRegenerable):
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, err.Error())
	case errors.Is(err, services.ErrChartUnavailable):
		fail(c, http.StatusBadGateway, ErrCodeChartUnavailable, "chart computation unavailable, try again")
	case errors.Is(err, services.ErrOracleUnavailable):
		fail(c, http.StatusBadGateway, ErrCodeGenerationFailed, "content generation unavailable, try again")
	case errors.Is(err, services.ErrProfilePersist), errors.Is(err, services.ErrBundlePersist):
		fail(c, http.StatusServiceUnavailable, ErrCodeSaveFailed, "could not save, try again")
	default:
		fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
	}
}

//
// DTOs
//

// OnboardRequest is the JSON payload for creating a profile.
type OnboardRequest struct {
	// Name is the display name used to personalize generated content.
	Name string `json:"name" binding:"required" example:"Jane Doe"`
	// BirthDate is the calendar date of birth (YYYY-MM-DD).
	BirthDate string `json:"birth_date" binding:"required" example:"1989-03-06"`
	// BirthTime is the optional wall-clock time of birth (HH:MM).
	BirthTime string `json:"birth_time,omitempty" example:"04:30"`
	// BirthPlace is the free-form birth location.
	BirthPlace string `json:"birth_place" binding:"required" example:"Athens, Greece"`
	// Locale is an optional BCP-47 tag for generated content (default "en").
	Locale string `json:"locale,omitempty" example:"el"`
	// Tier is the optional subscription tier: free (default) or premium.
	Tier string `json:"tier,omitempty" example:"free"`
}

// UpdateSettingsRequest is the JSON payload for PATCH /profiles/me. Empty
// fields are left unchanged; at least one must be set.
type UpdateSettingsRequest struct {
	Locale string `json:"locale,omitempty" example:"en-GB"`
	// Tier stands in for the billing provider's subscription webhook.
	Tier string `json:"tier,omitempty" example:"premium"`
}

//
// Handlers
//

// Onboard godoc
// @ID          onboardProfile
// @Summary     Create a profile
// @Description Validates birth facts, computes the chart once, and generates the full content bundle before responding.
// @Tags        Profiles
// @Accept      json
// @Produce     json
//
// @Param       X-User-ID  header  string  false "User ID (demo header)"  example(user123)
// @Param       body       body    handlers.OnboardRequest  true  "Birth facts"
//
// @Success     201  {object}  domain.Profile
// @Failure     400  {object}  handlers.ErrorResponse  "Invalid birth facts"
// @Failure     502  {object}  handlers.ErrorResponse  "Chart engine unavailable"
// @Failure     503  {object}  handlers.ErrorResponse  "Profile could not be saved (retryable)"
// @Router      /profiles [post]
func (h *Handlers) Onboard(c *gin.Context) {
	var req OnboardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}

	p, err := h.profileSvc.Onboard(c.Request.Context(), services.OnboardInput{
		Name:       req.Name,
		BirthDate:  req.BirthDate,
		BirthTime:  req.BirthTime,
		BirthPlace: req.BirthPlace,
		Locale:     req.Locale,
		Tier:       req.Tier,
	})
	if err != nil {
		failService(c, err)
		return
	}
	ok(c, http.StatusCreated, p)
}

// GetProfile godoc
// @ID          getProfile
// @Summary     Get the current profile
// @Description Returns the profile with its content bundle. Supports weak ETag via If-None-Match and may return 304.
// @Tags        Profiles
// @Produce     json
//
// @Param       X-User-ID      header  string  false "User ID (demo header)"       example(user123)
// @Param       If-None-Match  header  string  false "Return 304 if ETag matches"  example(W/\"abc123\")
//
// @Success     200  {object} domain.Profile
// @Header      200  {string} ETag "Weak ETag for the current bundle"
// @Success     304  {string} string "Not Modified"
// @Failure     404  {object} handlers.ErrorResponse "Profile not found"
// @Failure     500  {object} handlers.ErrorResponse "Internal error"
// @Router      /profiles/me [get]
func (h *Handlers) GetProfile(c *gin.Context) {
	ctx := c.Request.Context()
	uid := userID(c)

	// ETag pre-check (best effort): one indexed column read instead of
	// deserializing the whole bundle.
	var db *gorm.DB
	if svc, isConcrete := h.profileSvc.(*services.OnboardingService); isConcrete {
		db = svc.DB
	}
	if db != nil {
		if updatedAt, err := repo.ProfileStamp(ctx, db, uid); err == nil && updatedAt != nil {
			etag := fmt.Sprintf(`W/"profile:%s:%d"`, uid, updatedAt.Unix())
			c.Header("ETag", etag)
			if inm := c.GetHeader("If-None-Match"); inm != "" && inm == etag {
				c.Status(http.StatusNotModified)
				return
			}
		}
	}

	p, err := h.profileSvc.Profile(ctx, uid)
	if err != nil {
		failService(c, err)
		return
	}
	ok(c, http.StatusOK, p)
}

// UpdateSettings godoc
// @ID          updateSettings
// @Summary     Update profile settings
// @Description Changes the content locale and/or subscription tier. The tier field doubles as the demo stand-in for the billing webhook.
// @Tags        Profiles
// @Accept      json
// @Produce     json
//
// @Param       X-User-ID  header  string  false "User ID (demo header)"  example(user123)
// @Param       body       body    handlers.UpdateSettingsRequest  true  "Settings to change"
//
// @Success     200  {object} domain.Profile
// @Failure     400  {object} handlers.ErrorResponse "Nothing to update or invalid values"
// @Failure     404  {object} handlers.ErrorResponse "Profile not found"
// @Failure     500  {object} handlers.ErrorResponse "Internal error"
// @Router      /profiles/me [patch]
func (h *Handlers) UpdateSettings(c *gin.Context) {
	var req UpdateSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}

	p, err := h.profileSvc.UpdateSettings(c.Request.Context(), userID(c), services.SettingsInput{
		Locale: req.Locale,
		Tier:   req.Tier,
	})
	if err != nil {
		failService(c, err)
		return
	}
	ok(c, http.StatusOK, p)
}
