// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides small aggregate/statistics queries used
// for conditional responses (ETag generation) and the operational stats
// endpoint. Each function is context-aware and safe to call from services or
// handlers.
package repo

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/novalune/go-astro-backend/internal/domain"
)

// ProfileStamp returns the UpdatedAt of a single profile without loading the
// JSON bundle columns. When the profile does not exist, updatedAt is nil.
//
// Handlers use this for cheap ETag checks: a 304 can be answered from one
// indexed column read instead of deserializing the whole content bundle.
func ProfileStamp(ctx context.Context, db *gorm.DB, id string) (updatedAt *time.Time, err error) {
	var rows []struct {
		UpdatedAt time.Time
	}
	err = db.WithContext(ctx).
		Model(&domain.Profile{}).
		Where("id = ?", id).
		Select("updated_at").
		Limit(1).
		Scan(&rows).Error
	if err != nil || len(rows) == 0 {
		return nil, err
	}
	return &rows[0].UpdatedAt, nil
}

// ProfilesStats returns aggregate metadata for the profiles table: the total
// number of rows and the maximum UpdatedAt timestamp among those rows. When
// there are no profiles, the returned count is 0 and maxUpdatedAt is nil.
func ProfilesStats(ctx context.Context, db *gorm.DB) (count int64, maxUpdatedAt *time.Time, err error) {
	q := db.WithContext(ctx).Model(&domain.Profile{})

	// Count
	if err = q.Count(&count).Error; err != nil {
		return 0, nil, err
	}
	if count == 0 {
		return 0, nil, nil
	}

	// Get latest updated_at (avoid MAX() -> TEXT in SQLite)
	var row struct {
		UpdatedAt time.Time
	}
	if err = q.Select("updated_at").Order("updated_at DESC").Limit(1).Scan(&row).Error; err != nil {
		return 0, nil, err
	}
	return count, &row.UpdatedAt, nil
}

// ForecastCacheStats returns aggregate metadata for the shared forecast
// cache: the total number of cached (sign, day) texts and the latest
// GeneratedAt among them. When the cache is empty, the returned count is 0
// and maxGeneratedAt is nil.
func ForecastCacheStats(ctx context.Context, db *gorm.DB) (count int64, maxGeneratedAt *time.Time, err error) {
	q := db.WithContext(ctx).Model(&domain.ForecastCacheEntry{})

	// Count
	if err = q.Count(&count).Error; err != nil {
		return 0, nil, err
	}
	if count == 0 {
		return 0, nil, nil
	}

	// Get latest generated_at (avoid MAX() -> TEXT in SQLite)
	var row struct {
		GeneratedAt time.Time
	}
	if err = q.Select("generated_at").Order("generated_at DESC").Limit(1).Scan(&row).Error; err != nil {
		return 0, nil, err
	}
	return count, &row.GeneratedAt, nil
}
