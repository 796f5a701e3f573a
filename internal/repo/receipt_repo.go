// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository helpers for the RegenReceipt
// model used to implement safe-retry semantics for the paid regeneration
// endpoint.
package repo

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/novalune/go-astro-backend/internal/domain"
)

// ErrDuplicate indicates that a receipt already exists for the given
// (user_id, category, key) tuple.
var ErrDuplicate = errors.New("duplicate")

// GetReceipt returns a non-expired receipt or ErrNotFound.
func GetReceipt(ctx context.Context, db *gorm.DB, userID, category, key string, now time.Time) (*domain.RegenReceipt, error) {
	if strings.TrimSpace(key) == "" {
		return nil, ErrNotFound
	}
	var rec domain.RegenReceipt
	err := db.WithContext(ctx).
		Where("user_id = ? AND category = ? AND key = ? AND expires_at > ?", userID, category, key, now).
		First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

// HasReceipt reports whether any non-expired receipt exists for (user, key),
// regardless of category. The HTTP idempotency middleware uses it to flag
// replays before the request body (and thus the category) has been read.
func HasReceipt(ctx context.Context, db *gorm.DB, userID, key string, now time.Time) (bool, error) {
	if strings.TrimSpace(key) == "" {
		return false, nil
	}
	var n int64
	err := db.WithContext(ctx).
		Model(&domain.RegenReceipt{}).
		Where("user_id = ? AND key = ? AND expires_at > ?", userID, key, now).
		Count(&n).Error
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// CreateReceipt inserts a receipt and returns ErrDuplicate on unique violation.
func CreateReceipt(ctx context.Context, db *gorm.DB, userID, category, key, content string, charged bool, ttl time.Duration) (*domain.RegenReceipt, error) {
	now := time.Now().UTC()
	rec := &domain.RegenReceipt{
		ID:        uuid.NewString(),
		UserID:    userID,
		Category:  category,
		Key:       key,
		Content:   content,
		Charged:   charged,
		CreatedAt: now,
		ExpiresAt: now.Add(ttl),
	}
	if err := db.WithContext(ctx).Create(rec).Error; err != nil {
		// glebarez/sqlite often returns plain-text errors for UNIQUE violations.
		low := strings.ToLower(err.Error())
		if errors.Is(err, gorm.ErrDuplicatedKey) ||
			strings.Contains(low, "unique constraint failed") ||
			strings.Contains(low, "constraint failed: unique") {
			return nil, ErrDuplicate
		}
		return nil, err
	}
	return rec, nil
}
