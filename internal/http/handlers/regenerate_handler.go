// Regeneration HTTP handlers.
//
// This file exposes the REST endpoint for entitlement-gated forced
// regeneration of one-time and paid-only content:
//   - POST /regenerate
//
// Denials from the gate are expected outcomes, rendered with distinct status
// codes so clients can branch: 403 upgrade_required (upsell), 429
// regen_limit_reached (pay-or-wait, posted price attached), 402
// payment_declined. An Idempotency-Key header makes the attempt replayable
// without a second charge or oracle call.
package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/novalune/go-astro-backend/internal/domain"
	"github.com/novalune/go-astro-backend/internal/http/middleware"
	"github.com/novalune/go-astro-backend/internal/services"
)

// RegenerateRequest is the JSON payload for a regeneration attempt.
type RegenerateRequest struct {
	// Category names the content to regenerate: intro, year_ahead, or
	// deep_dive:<topic>. The daily forecast refreshes on its own schedule
	// and is not accepted here.
	Category string `json:"category" binding:"required" example:"intro"`
	// AgreeToCharge authorizes billing the posted price when the free
	// allowance for the category is spent.
	AgreeToCharge bool `json:"agree_to_charge,omitempty" example:"true"`
}

// RegenerateResponse carries the regenerated content.
type RegenerateResponse struct {
	Category string `json:"category" example:"intro"`
	Content  string `json:"content"`
	// Charged is true when the posted price was billed for this attempt.
	Charged bool `json:"charged" example:"false"`
	// PriceCents is the amount billed when Charged is true.
	PriceCents int `json:"price_cents,omitempty" example:"299"`
	// Replayed is true when the response was served from an idempotency
	// receipt instead of a fresh generation.
	Replayed bool `json:"replayed,omitempty" example:"false"`
}

// Regenerate godoc
// @ID          regenerateContent
// @Summary     Force-regenerate a content category
// @Description Applies the pay-or-wait entitlement gate and regenerates the category when allowed. The only path that changes one-time content after its first generation.
// @Tags        Regeneration
// @Accept      json
// @Produce     json
//
// @Param       X-User-ID        header  string  false "User ID (demo header)"  example(user123)
// @Param       Idempotency-Key  header  string  false "Replay protection key"  example(regen-intro-20240601)
// @Param       body             body    handlers.RegenerateRequest  true  "Category and charge consent"
//
// @Success     200  {object} handlers.RegenerateResponse
// @Failure     400  {object} handlers.ErrorResponse "Unknown or non-regenerable category"
// @Failure     402  {object} handlers.ErrorResponse "Payment declined"
// @Failure     403  {object} handlers.ErrorResponse "Premium required (upsell)"
// @Failure     404  {object} handlers.ErrorResponse "Profile not found"
// @Failure     429  {object} handlers.ErrorResponse "Free allowance spent; posted price attached"
// @Failure     502  {object} handlers.ErrorResponse "Content oracle unavailable"
// @Router      /regenerate [post]
func (h *Handlers) Regenerate(c *gin.Context) {
	var req RegenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}
	cat := domain.Category(strings.ToLower(strings.TrimSpace(req.Category)))

	idemKey, _ := middleware.GetIdempotencyKey(c)
	out, err := h.regenSvc.Attempt(c.Request.Context(), userID(c), cat, req.AgreeToCharge, idemKey)
	if err != nil {
		failService(c, err)
		return
	}

	if !out.Allowed() {
		switch out.Denied {
		case services.DeniedNotPremium:
			fail(c, http.StatusForbidden, ErrCodeUpgradeRequired, "regeneration requires a premium subscription")
		case services.DeniedRateLimited:
			failPriced(c, http.StatusTooManyRequests, ErrCodeRegenLimitReached,
				"free regeneration already used; pay the posted price to proceed", out.PriceCents)
		case services.DeniedPaymentDeclined:
			failPriced(c, http.StatusPaymentRequired, ErrCodePaymentDeclined,
				"payment was declined", out.PriceCents)
		default:
			fail(c, http.StatusInternalServerError, ErrCodeInternal, "unknown denial reason")
		}
		return
	}

	ok(c, http.StatusOK, RegenerateResponse{
		Category:   string(out.Category),
		Content:    out.Content,
		Charged:    out.Charged,
		PriceCents: out.PriceCents,
		Replayed:   out.Replayed,
	})
}
