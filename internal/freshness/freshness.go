// Package freshness decides whether a content category needs (re)generation.
//
// The evaluator is pure: callers pass both the last generation time and the
// current time, so the same inputs always yield the same verdict and tests
// never sleep. Day comparisons run in a fixed reference zone shifted back by
// a grace window, which keeps "today's" forecast serving shortly after
// midnight instead of expiring everyone's content at 00:00 sharp.
package freshness

import (
	"time"

	"github.com/novalune/go-astro-backend/internal/domain"
)

// Defaults applied by New when the caller passes zero values.
const (
	// DefaultGrace keeps the previous day's content fresh for a few hours
	// past midnight.
	DefaultGrace = 3 * time.Hour

	// staleAfter is the hard ceiling for daily content: whatever bucket the
	// calendar puts it in, content older than this is due again.
	staleAfter = 24 * time.Hour
)

// Evaluator classifies content age against the freshness policy. The zero
// value is not usable; construct with New.
type Evaluator struct {
	loc   *time.Location
	grace time.Duration
}

// New builds an evaluator for the given fixed UTC offset and post-midnight
// grace window. A zero grace selects DefaultGrace; a negative grace disables
// the window entirely.
func New(utcOffset, grace time.Duration) *Evaluator {
	if grace == 0 {
		grace = DefaultGrace
	}
	if grace < 0 {
		grace = 0
	}
	return &Evaluator{
		loc:   time.FixedZone("ref", int(utcOffset/time.Second)),
		grace: grace,
	}
}

// ReferenceDay buckets an instant into its reference day ("2006-01-02").
// The instant is moved into the fixed reference zone and shifted back by the
// grace window before taking the calendar date, so 01:30 with a 3h grace
// still counts as the previous day.
func (e *Evaluator) ReferenceDay(t time.Time) string {
	return t.In(e.loc).Add(-e.grace).Format("2006-01-02")
}

// Due reports whether content of the given category, last generated at last,
// needs regeneration at now. A zero last means the content has never been
// generated.
//
// One-time content is due only while absent. Daily content is due when
// absent, when the reference day has rolled over, or when more than a full
// day has elapsed regardless of the calendar (a safety net for frozen or
// skewed stamps). Paid-only content is never due: the regeneration gate is
// its only producer.
func (e *Evaluator) Due(cat domain.Category, last, now time.Time) bool {
	switch domain.KindOf(cat) {
	case domain.KindPaidOnly:
		return false
	case domain.KindDailyScheduled:
		if last.IsZero() {
			return true
		}
		if e.ReferenceDay(last) != e.ReferenceDay(now) {
			return true
		}
		return now.Sub(last) >= staleAfter
	default:
		return last.IsZero()
	}
}
