// Package services – persistence contracts
//
// This file defines the repository contracts the services consume. The
// concrete implementations live in internal/repo as free functions; the HTTP
// wiring adapts them with small shim types. Keeping the interfaces here
// decouples the orchestration logic from the repo package and lets tests
// substitute in-memory or counting stores.
package services

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/novalune/go-astro-backend/internal/domain"
)

// ProfileStore persists user profiles together with their content bundle and
// bookkeeping ledgers. Get must return gorm.ErrRecordNotFound for a missing
// profile.
type ProfileStore interface {
	// CreateProfile inserts a new profile row, assigning missing defaults.
	CreateProfile(ctx context.Context, db *gorm.DB, p *domain.Profile) (*domain.Profile, error)

	// GetProfile fetches a profile by ID.
	GetProfile(ctx context.Context, db *gorm.DB, id string) (*domain.Profile, error)

	// SaveProfile writes the whole profile row back, JSON columns included.
	SaveProfile(ctx context.Context, db *gorm.DB, p *domain.Profile) error
}

// SettingsStore updates the mutable profile settings in place, without
// rewriting the content bundle. Both methods must return
// gorm.ErrRecordNotFound when the profile does not exist.
type SettingsStore interface {
	UpdateProfileTier(ctx context.Context, db *gorm.DB, id, tier string) error
	UpdateProfileLocale(ctx context.Context, db *gorm.DB, id, locale string) error
}

// ForecastCache is the shared, cross-user daily forecast cache keyed by
// (sign, reference day). GetForecast must return gorm.ErrRecordNotFound on a
// cold key; UpsertForecast replaces an existing row (last write wins).
type ForecastCache interface {
	GetForecast(ctx context.Context, db *gorm.DB, sign, day string) (*domain.ForecastCacheEntry, error)
	UpsertForecast(ctx context.Context, db *gorm.DB, sign, day, text string, generatedAt time.Time) (*domain.ForecastCacheEntry, error)
}

// ReceiptStore records processed regeneration requests for idempotent
// replays. GetReceipt must return gorm.ErrRecordNotFound when no valid
// receipt exists; CreateReceipt must report duplicates distinctly.
type ReceiptStore interface {
	GetReceipt(ctx context.Context, db *gorm.DB, userID, category, key string, now time.Time) (*domain.RegenReceipt, error)
	CreateReceipt(ctx context.Context, db *gorm.DB, userID, category, key, content string, charged bool, ttl time.Duration) (*domain.RegenReceipt, error)
}
