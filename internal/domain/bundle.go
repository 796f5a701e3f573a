// Package domain defines the core persistence models for the application.
// This file holds the content bundle and the bookkeeping ledgers that travel
// with a profile as JSON columns.
package domain

import "time"

// ContentBundle aggregates every piece of generated content a profile owns.
// A missing category is represented by its zero value (empty string, nil
// pointer, or absent map key), never by a placeholder: consumers check for
// absence, not for sentinel text.
type ContentBundle struct {
	Intro        string                      `json:"intro,omitempty"`
	Forecast     *ForecastPayload            `json:"forecast,omitempty"`
	DeepDives    map[string]string           `json:"deep_dives,omitempty"`
	YearAhead    string                      `json:"year_ahead,omitempty"`
	PartnerMemos map[string]*PartnerMemoPair `json:"partner_memos,omitempty"`
}

// Empty reports whether nothing has ever been generated into the bundle.
// The orchestrator treats an empty bundle as "initial fill never ran" and
// triggers full generation before serving any slice of it.
func (b *ContentBundle) Empty() bool {
	return b.Intro == "" &&
		b.Forecast == nil &&
		len(b.DeepDives) == 0 &&
		b.YearAhead == "" &&
		len(b.PartnerMemos) == 0
}

// DeepDive returns the stored deep-dive text for a topic, "" when absent.
func (b *ContentBundle) DeepDive(topic string) string {
	if b.DeepDives == nil {
		return ""
	}
	return b.DeepDives[topic]
}

// SetDeepDive stores deep-dive text for a topic, allocating the map lazily.
func (b *ContentBundle) SetDeepDive(topic, text string) {
	if b.DeepDives == nil {
		b.DeepDives = make(map[string]string, 1)
	}
	b.DeepDives[topic] = text
}

// Memo returns the stored partner memo for the given partner key and mode,
// nil when that slot has never been generated.
func (b *ContentBundle) Memo(key string, mode MemoMode) *PartnerMemo {
	if b.PartnerMemos == nil {
		return nil
	}
	pair := b.PartnerMemos[key]
	if pair == nil {
		return nil
	}
	if mode == MemoFull {
		return pair.Full
	}
	return pair.Brief
}

// SetMemo stores a partner memo under its key without disturbing the slot of
// the other mode.
func (b *ContentBundle) SetMemo(key string, mode MemoMode, m *PartnerMemo) {
	if b.PartnerMemos == nil {
		b.PartnerMemos = make(map[string]*PartnerMemoPair, 1)
	}
	pair := b.PartnerMemos[key]
	if pair == nil {
		pair = &PartnerMemoPair{}
		b.PartnerMemos[key] = pair
	}
	if mode == MemoFull {
		pair.Full = m
	} else {
		pair.Brief = m
	}
}

// ForecastPayload is the daily forecast slot of a bundle. Day carries the
// reference day ("2006-01-02") the text was generated for, which is what the
// freshness evaluator compares against the current reference day.
type ForecastPayload struct {
	Sign        string    `json:"sign"`
	Day         string    `json:"day"`
	Text        string    `json:"text"`
	GeneratedAt time.Time `json:"generated_at"`
}

// MemoMode selects one of the two independent compatibility memo depths.
type MemoMode string

// Memo depths. Brief and Full occupy independent cache slots: generating one
// never satisfies or evicts the other.
const (
	MemoBrief MemoMode = "brief"
	MemoFull  MemoMode = "full"
)

// ValidMemoMode reports whether m is a known memo depth.
func ValidMemoMode(m MemoMode) bool { return m == MemoBrief || m == MemoFull }

// PartnerMemoPair holds the two depth slots cached for one partner key.
type PartnerMemoPair struct {
	Brief *PartnerMemo `json:"brief,omitempty"`
	Full  *PartnerMemo `json:"full,omitempty"`
}

// PartnerMemo is a generated compatibility reading for one partner.
type PartnerMemo struct {
	Text             string    `json:"text"`
	PartnerName      string    `json:"partner_name"`
	PartnerBirthDate string    `json:"partner_birth_date"`
	Relationship     string    `json:"relationship,omitempty"`
	GeneratedAt      time.Time `json:"generated_at"`
}

// TimestampLedger records, per category, when content was last generated.
// Values are Unix epoch milliseconds. Touch never moves a stamp backwards,
// so replays and clock skew cannot make stale content look fresh.
type TimestampLedger map[string]int64

// Touch records t as the generation time for cat unless a later stamp is
// already present.
func (l TimestampLedger) Touch(cat Category, t time.Time) {
	ms := t.UnixMilli()
	if cur, ok := l[string(cat)]; ok && cur >= ms {
		return
	}
	l[string(cat)] = ms
}

// Last returns the recorded generation time for cat. ok is false when the
// category has never been stamped.
func (l TimestampLedger) Last(cat Category) (time.Time, bool) {
	ms, ok := l[string(cat)]
	if !ok {
		return time.Time{}, false
	}
	return time.UnixMilli(ms), true
}

// RegenerationLedger tracks regeneration accounting per category.
type RegenerationLedger map[string]*RegenRecord

// Record returns the accounting record for cat, allocating it on first use.
func (l RegenerationLedger) Record(cat Category) *RegenRecord {
	r, ok := l[string(cat)]
	if !ok {
		r = &RegenRecord{}
		l[string(cat)] = r
	}
	return r
}

// RegenRecord is the per-category regeneration history of one profile.
//
// FreeGrants holds the epoch-millisecond times of free regenerations inside
// the current rolling window; entries older than the window are pruned on
// read. PaidCount counts charged regenerations for reporting.
type RegenRecord struct {
	FreeGrants  []int64 `json:"free_grants,omitempty"`
	LastRegenAt int64   `json:"last_regen_at,omitempty"`
	PaidCount   int     `json:"paid_count,omitempty"`
}

// FreeUsed prunes grants that fell out of the rolling window ending at now
// and returns how many free grants remain in force.
func (r *RegenRecord) FreeUsed(now time.Time, window time.Duration) int {
	cutoff := now.Add(-window).UnixMilli()
	kept := r.FreeGrants[:0]
	for _, ms := range r.FreeGrants {
		if ms > cutoff {
			kept = append(kept, ms)
		}
	}
	r.FreeGrants = kept
	return len(kept)
}

// GrantFree records a free regeneration at now.
func (r *RegenRecord) GrantFree(now time.Time) {
	r.FreeGrants = append(r.FreeGrants, now.UnixMilli())
	r.LastRegenAt = now.UnixMilli()
}

// RecordPaid records a charged regeneration at now.
func (r *RegenRecord) RecordPaid(now time.Time) {
	r.PaidCount++
	r.LastRegenAt = now.UnixMilli()
}
