// Package chart provides the client for the external chart computation
// service. Given birth facts it returns the astrological placements the
// content oracle grounds its readings in.
//
// Chart facts are computed exactly once per profile, at onboarding; nothing
// in this backend recomputes them for an existing profile.
package chart

import (
	"context"

	"github.com/novalune/go-astro-backend/internal/domain"
)

// ComputeRequest carries the birth facts of one person. BirthTime may be
// empty; the engine then returns facts without a rising sign. Locale selects
// the language of the textual placement descriptions.
type ComputeRequest struct {
	Name       string `json:"name"`
	BirthDate  string `json:"birth_date"`
	BirthTime  string `json:"birth_time,omitempty"`
	BirthPlace string `json:"birth_place"`
	Locale     string `json:"locale,omitempty"`
}

// Engine computes chart facts from birth data. Implementations must be safe
// for concurrent use.
type Engine interface {
	Compute(ctx context.Context, req ComputeRequest) (*domain.ChartFacts, error)
}
