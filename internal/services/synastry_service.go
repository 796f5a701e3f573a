// Package services – SynastryService
//
// This file implements the compatibility memo cache. Memos are cached per
// partner identity (case- and whitespace-insensitive name plus birth date)
// with independent slots for the brief and full depths: generating one never
// populates or evicts the other. A cache hit costs zero external calls.
package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/novalune/go-astro-backend/internal/domain"
	"github.com/novalune/go-astro-backend/internal/oracle"

	// OpenTelemetry
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// SynastryService serves compatibility memos between the user and a partner.
type SynastryService struct {
	// DB is the GORM handle used for persistence.
	DB *gorm.DB
	// Oracle produces memo text on a cache miss.
	Oracle oracle.Oracle
	// Store loads and saves profiles.
	Store ProfileStore
}

// PartnerInput carries the second person of a compatibility reading. Name
// and BirthDate identify the cache slot; the rest only enriches the prompt.
type PartnerInput struct {
	Name         string
	BirthDate    string
	BirthTime    string
	BirthPlace   string
	Relationship string
}

// normalize trims and validates the partner facts in place.
func (in *PartnerInput) normalize() error {
	in.Name = strings.TrimSpace(in.Name)
	if in.Name == "" {
		return ErrInvalidPartnerName
	}

	in.BirthDate = strings.TrimSpace(in.BirthDate)
	if _, err := time.Parse("2006-01-02", in.BirthDate); err != nil {
		return ErrInvalidPartnerBirthDate
	}

	in.BirthTime = strings.TrimSpace(in.BirthTime)
	if in.BirthTime != "" {
		if _, err := time.Parse("15:04", in.BirthTime); err != nil {
			return ErrInvalidBirthTime
		}
	}

	in.BirthPlace = strings.TrimSpace(in.BirthPlace)
	in.Relationship = strings.TrimSpace(in.Relationship)
	return nil
}

// Memo returns the compatibility memo for the given partner and depth,
// generating and caching it on first request. Malformed partner facts are
// rejected before any external call.
//
// Oracle failures are absorbed into a fallback memo that is served but never
// cached, so the slot stays empty and the next request tries again.
func (s *SynastryService) Memo(ctx context.Context, userID string, in PartnerInput, mode domain.MemoMode) (*domain.PartnerMemo, error) {
	tr := otel.Tracer("services/SynastryService")
	ctx, span := tr.Start(ctx, "Memo",
		trace.WithAttributes(
			attribute.String("user.id", userID),
			attribute.String("memo.mode", string(mode)),
		),
	)
	defer span.End()

	if !domain.ValidMemoMode(mode) {
		return nil, ErrInvalidMemoMode
	}
	if err := in.normalize(); err != nil {
		return nil, err
	}

	p, err := s.Store.GetProfile(ctx, s.DB, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}

	key := domain.PartnerKey(in.Name, in.BirthDate)
	if m := p.Bundle.Memo(key, mode); m != nil {
		span.SetAttributes(attribute.Bool("memo.cached", true))
		return m, nil
	}

	kind := oracle.KindSynastryBrief
	if mode == domain.MemoFull {
		kind = oracle.KindSynastryFull
	}
	locale := localeOf(p)
	req := contentRequest(p, kind, locale)
	req.Partner = &oracle.PartnerFacts{
		Name:         in.Name,
		BirthDate:    in.BirthDate,
		BirthTime:    in.BirthTime,
		BirthPlace:   in.BirthPlace,
		Relationship: in.Relationship,
	}

	now := time.Now().UTC()
	text, gerr := s.Oracle.Generate(ctx, req)
	observeOracleCall(kind, gerr)
	if gerr != nil {
		log.Warn().Err(gerr).
			Str("user_id", p.ID).
			Str("mode", string(mode)).
			Msg("synastry generation failed, serving fallback")
		return &domain.PartnerMemo{
			Text:             oracle.Fallback(kind, locale),
			PartnerName:      in.Name,
			PartnerBirthDate: in.BirthDate,
			Relationship:     in.Relationship,
			GeneratedAt:      now,
		}, nil
	}

	m := &domain.PartnerMemo{
		Text:             text,
		PartnerName:      in.Name,
		PartnerBirthDate: in.BirthDate,
		Relationship:     in.Relationship,
		GeneratedAt:      now,
	}
	p.Bundle.SetMemo(key, mode, m)
	if err := s.Store.SaveProfile(ctx, s.DB, p); err != nil {
		log.Warn().Err(err).
			Str("user_id", p.ID).
			Msg("persisting partner memo failed")
	}
	return m, nil
}
