// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the Profile
// model.
//
// All functions are context-aware and accept a *gorm.DB handle, making them
// safe for use within transactions or connection-scoped operations.
// They follow the "thin repository" approach: no business logic, only CRUD
// persistence and query composition.
//
// Error semantics:
//   - When a profile is not found, functions return gorm.ErrRecordNotFound
//     (also exported here as ErrNotFound for convenience).
//   - On DB errors (constraint violations, connectivity issues, etc.),
//     the raw gorm error is propagated.
//
// Functions:
//
//   - CreateProfile(ctx, db, p) -> *domain.Profile, error
//     Inserts a new Profile row, assigning a UUID key and UTC timestamp
//     when the caller left them unset.
//
//   - GetProfile(ctx, db, id) -> *domain.Profile, error
//     Fetches a single profile by ID, or ErrNotFound if missing.
//
//   - SaveProfile(ctx, db, p) -> error
//     Persists the full profile row, including the JSON bundle and ledger
//     columns. This is the write half of the profile store contract.
//
//   - UpdateProfileTier(ctx, db, id, tier) -> error
//     Updates the subscription tier, returning ErrNotFound when no row
//     matched.
//
//   - UpdateProfileLocale(ctx, db, id, locale) -> error
//     Updates the content locale, returning ErrNotFound when no row matched.
//
// This repository is designed to be wrapped by higher-level services
// (see services.OnboardingService and friends) which enforce freshness and
// entitlement rules.
package repo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/novalune/go-astro-backend/internal/domain"
)

// ErrNotFound is returned when a requested record does not exist.
// It aliases gorm.ErrRecordNotFound for convenience and consistency
// across the service layer and handlers.
var ErrNotFound = gorm.ErrRecordNotFound

// CreateProfile inserts a new Profile row. A missing ID is filled with a
// random UUID and a missing CreatedAt with the current UTC time; ledger maps
// are allocated so later stamping never hits a nil map.
//
// On success, it returns the persisted Profile. On failure, it returns a DB error.
func CreateProfile(ctx context.Context, db *gorm.DB, p *domain.Profile) (*domain.Profile, error) {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now().UTC()
	}
	p.EnsureLedgers()
	if err := db.WithContext(ctx).Create(p).Error; err != nil {
		return nil, err
	}
	return p, nil
}

// GetProfile fetches a single profile by its ID. If the record does not
// exist, it returns ErrNotFound. On other DB errors, the raw error is
// returned. Ledger maps on the returned profile are always allocated.
func GetProfile(ctx context.Context, db *gorm.DB, id string) (*domain.Profile, error) {
	var p domain.Profile
	err := db.WithContext(ctx).
		Where("id = ?", id).
		First(&p).Error
	if err != nil {
		return nil, err
	}
	p.EnsureLedgers()
	return &p, nil
}

// SaveProfile writes the whole profile row back, JSON columns included.
// The bundle, stamps and regeneration ledger travel together with the row,
// so one Save covers every generation bookkeeping change.
func SaveProfile(ctx context.Context, db *gorm.DB, p *domain.Profile) error {
	return db.WithContext(ctx).Save(p).Error
}

// UpdateProfileTier updates the subscription tier of a profile. If no rows
// are affected (profile missing), it returns ErrNotFound.
func UpdateProfileTier(ctx context.Context, db *gorm.DB, id, tier string) error {
	res := db.WithContext(ctx).
		Model(&domain.Profile{}).
		Where("id = ?", id).
		Update("tier", tier)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// UpdateProfileLocale updates the content locale of a profile. If no rows
// are affected (profile missing), it returns ErrNotFound.
func UpdateProfileLocale(ctx context.Context, db *gorm.DB, id, locale string) error {
	res := db.WithContext(ctx).
		Model(&domain.Profile{}).
		Where("id = ?", id).
		Update("locale", locale)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
