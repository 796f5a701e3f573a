// Package domain defines the persistence models for user profiles, generated
// content bundles, and the shared horoscope cache. These types are mapped
// with GORM and form the core data layer of the astrology backend.
package domain

import (
	"time"

	"gorm.io/gorm"
)

// Subscription tiers. Tier gates the regeneration entitlement: only premium
// profiles may regenerate content at all.
const (
	TierFree    = "free"
	TierPremium = "premium"
)

// Profile represents a single user of the service together with everything
// generated for them. Birth facts are captured once at onboarding; the chart
// facts are computed once and never recomputed for the same profile.
//
// Fields:
//   - ID: stable UUID primary key (char(36)).
//   - Name: display name used when personalizing generated text.
//   - BirthDate: calendar date of birth, "2006-01-02".
//   - BirthTime: optional wall-clock time of birth, "15:04" ("" if unknown).
//   - BirthPlace: free-form birth location passed to the chart engine.
//   - Locale: BCP-47 tag controlling the language of generated content.
//   - Tier: subscription tier, "free" or "premium".
//   - Sign: sun-sign bucket derived from the chart (shared-cache key part).
//   - Chart: computed chart facts, stored as JSON (nil until computed).
//   - Bundle: all generated content, stored as JSON alongside the profile.
//   - Stamps: per-category generation timestamps, stored as JSON.
//   - Regen: per-category regeneration accounting, stored as JSON.
//   - CreatedAt / UpdatedAt: timestamps managed by GORM.
//   - DeletedAt: soft deletion marker (retains row for audit/history).
type Profile struct {
	ID         string             `json:"id"          gorm:"type:char(36);primaryKey"`
	Name       string             `json:"name"        gorm:"type:varchar(120);not null"`
	BirthDate  string             `json:"birth_date"  gorm:"type:varchar(10);not null"`
	BirthTime  string             `json:"birth_time,omitempty" gorm:"type:varchar(5)"`
	BirthPlace string             `json:"birth_place" gorm:"type:varchar(255);not null"`
	Locale     string             `json:"locale"      gorm:"type:varchar(35);not null;default:'en'"`
	Tier       string             `json:"tier"        gorm:"type:varchar(16);not null;default:'free';check:tier IN ('free','premium')"`
	Sign       string             `json:"sign"        gorm:"type:varchar(16);not null;index:idx_profile_sign"`
	Chart      *ChartFacts        `json:"chart,omitempty" gorm:"serializer:json"`
	Bundle     ContentBundle      `json:"bundle"      gorm:"serializer:json"`
	Stamps     TimestampLedger    `json:"stamps"      gorm:"serializer:json"`
	Regen      RegenerationLedger `json:"-"           gorm:"serializer:json"`
	CreatedAt  time.Time          `json:"created_at"`
	UpdatedAt  time.Time          `json:"updated_at"`
	DeletedAt  gorm.DeletedAt     `json:"-"           gorm:"index"`
}

// TableName returns the database table name for Profile.
func (Profile) TableName() string { return "profiles" }

// IsPremium reports whether the profile may use the regeneration gate.
func (p *Profile) IsPremium() bool { return p.Tier == TierPremium }

// EnsureLedgers allocates the bookkeeping maps when they come back nil from
// the JSON columns, so callers can stamp and record without nil checks.
func (p *Profile) EnsureLedgers() {
	if p.Stamps == nil {
		p.Stamps = TimestampLedger{}
	}
	if p.Regen == nil {
		p.Regen = RegenerationLedger{}
	}
}

// ChartFacts holds the astrological facts computed from the birth data by the
// chart engine. The struct is stored as an opaque JSON column; the backend
// never derives placements itself beyond the sun-sign bucket.
type ChartFacts struct {
	SunSign    string            `json:"sun_sign"`
	MoonSign   string            `json:"moon_sign,omitempty"`
	RisingSign string            `json:"rising_sign,omitempty"`
	Placements map[string]string `json:"placements,omitempty"`
	ComputedAt time.Time         `json:"computed_at"`
}

