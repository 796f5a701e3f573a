// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the shared
// daily forecast cache keyed by (sign, reference day).
//
// The cache is deliberately lock-free across processes: concurrent first
// readers of a cold key may both generate and both upsert, and the last
// write wins. The texts are interchangeable, so callers tolerate the
// duplicate work instead of paying for coordination.
package repo

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/novalune/go-astro-backend/internal/domain"
)

// GetForecast returns the cached forecast for (sign, day) or ErrNotFound.
func GetForecast(ctx context.Context, db *gorm.DB, sign, day string) (*domain.ForecastCacheEntry, error) {
	var e domain.ForecastCacheEntry
	err := db.WithContext(ctx).
		Where("sign = ? AND day = ?", sign, day).
		First(&e).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &e, nil
}

// UpsertForecast stores text for (sign, day), replacing any existing row.
// Last write wins on conflict.
func UpsertForecast(ctx context.Context, db *gorm.DB, sign, day, text string, generatedAt time.Time) (*domain.ForecastCacheEntry, error) {
	e := &domain.ForecastCacheEntry{
		Sign:        sign,
		Day:         day,
		Text:        text,
		GeneratedAt: generatedAt,
	}
	err := db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "sign"}, {Name: "day"}},
			DoUpdates: clause.AssignmentColumns([]string{"text", "generated_at", "updated_at"}),
		}).
		Create(e).Error
	if err != nil {
		return nil, err
	}
	return e, nil
}
