package domain

import "time"

// ForecastCacheEntry is one row of the shared, cross-user daily forecast
// cache, keyed by (sign, reference day). Every user with the same sun sign
// reads the same row for a given day, so the oracle is asked for each
// (sign, day) text at most about once.
//
// Consistency: the table is eventually consistent and duplicate-write
// tolerant. Two requests racing on a cold key may both generate and both
// write; the last write wins and the texts are interchangeable. There is no
// cross-process lock around generation on purpose.
//
// Fields:
//   - Sign: sun-sign bucket, first half of the composite primary key.
//   - Day: reference day "2006-01-02", second half of the key.
//   - Text: the generated forecast shared by all users of the bucket.
//   - GeneratedAt: when the stored text was produced.
type ForecastCacheEntry struct {
	Sign        string    `json:"sign" gorm:"type:varchar(16);primaryKey"`
	Day         string    `json:"day"  gorm:"type:varchar(10);primaryKey"`
	Text        string    `json:"text" gorm:"type:text;not null"`
	GeneratedAt time.Time `json:"generated_at"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// TableName returns the database table name for ForecastCacheEntry.
func (ForecastCacheEntry) TableName() string { return "forecast_cache" }
