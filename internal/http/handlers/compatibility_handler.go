// Compatibility (synastry) HTTP handlers.
//
// This file exposes the REST endpoint for partner compatibility memos:
//   - POST /compatibility
//
// The endpoint is a cache front: memos are keyed by the normalized partner
// identity with independent brief/full slots, so repeating a request for an
// already-generated depth costs zero external calls.
package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/novalune/go-astro-backend/internal/domain"
	"github.com/novalune/go-astro-backend/internal/services"
)

// CompatibilityRequest is the JSON payload for requesting a partner memo.
// PartnerName and PartnerBirthDate identify the cached slot; the remaining
// fields only enrich the generated text.
type CompatibilityRequest struct {
	// PartnerName is the partner's display name (case/whitespace-insensitive
	// for caching).
	PartnerName string `json:"partner_name" binding:"required" example:"Jane"`
	// PartnerBirthDate is the partner's date of birth (YYYY-MM-DD).
	PartnerBirthDate string `json:"partner_birth_date" binding:"required" example:"1992-08-20"`
	// PartnerBirthTime is the optional time of birth (HH:MM).
	PartnerBirthTime string `json:"partner_birth_time,omitempty" example:"14:15"`
	// PartnerBirthPlace is the optional birth location.
	PartnerBirthPlace string `json:"partner_birth_place,omitempty" example:"Lisbon, Portugal"`
	// Relationship optionally frames the reading (e.g. romantic, friend).
	Relationship string `json:"relationship,omitempty" example:"romantic"`
	// Mode selects the memo depth: brief or full.
	Mode string `json:"mode" binding:"required" example:"brief"`
}

// Compatibility godoc
// @ID          compatibilityMemo
// @Summary     Partner compatibility memo
// @Description Returns the cached memo for (partner, depth), generating it on first request. Brief and full are independent cache slots.
// @Tags        Compatibility
// @Accept      json
// @Produce     json
//
// @Param       X-User-ID  header  string  false "User ID (demo header)"  example(user123)
// @Param       body       body    handlers.CompatibilityRequest  true  "Partner facts and memo depth"
//
// @Success     200  {object} domain.PartnerMemo
// @Failure     400  {object} handlers.ErrorResponse "Invalid partner facts or mode"
// @Failure     404  {object} handlers.ErrorResponse "Profile not found"
// @Failure     500  {object} handlers.ErrorResponse "Internal error"
// @Router      /compatibility [post]
func (h *Handlers) Compatibility(c *gin.Context) {
	var req CompatibilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}

	mode := domain.MemoMode(strings.ToLower(strings.TrimSpace(req.Mode)))
	m, err := h.compatSvc.Memo(c.Request.Context(), userID(c), services.PartnerInput{
		Name:         req.PartnerName,
		BirthDate:    req.PartnerBirthDate,
		BirthTime:    req.PartnerBirthTime,
		BirthPlace:   req.PartnerBirthPlace,
		Relationship: req.Relationship,
	}, mode)
	if err != nil {
		failService(c, err)
		return
	}
	ok(c, http.StatusOK, m)
}
