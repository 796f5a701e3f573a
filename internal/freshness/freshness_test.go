package freshness

import (
	"testing"
	"time"

	"github.com/novalune/go-astro-backend/internal/domain"
)

func mustTime(t *testing.T, value string) time.Time {
	t.Helper()
	ts, err := time.Parse(time.RFC3339, value)
	if err != nil {
		t.Fatalf("parse %q: %v", value, err)
	}
	return ts
}

func TestReferenceDay_GraceWindow(t *testing.T) {
	e := New(0, 3*time.Hour)

	cases := []struct {
		at   string
		want string
	}{
		{"2026-08-26T12:00:00Z", "2026-08-26"},
		// inside the grace window: still the previous day
		{"2026-08-27T01:30:00Z", "2026-08-26"},
		{"2026-08-27T02:59:59Z", "2026-08-26"},
		// grace exhausted: the new day begins
		{"2026-08-27T03:00:00Z", "2026-08-27"},
	}
	for _, tc := range cases {
		if got := e.ReferenceDay(mustTime(t, tc.at)); got != tc.want {
			t.Fatalf("ReferenceDay(%s) = %q; want %q", tc.at, got, tc.want)
		}
	}
}

func TestReferenceDay_FixedOffsetZone(t *testing.T) {
	// UTC+05:30 with no grace: 19:00Z is already the next local day at 00:30.
	e := New(5*time.Hour+30*time.Minute, -1)

	if got := e.ReferenceDay(mustTime(t, "2026-08-26T19:00:00Z")); got != "2026-08-27" {
		t.Fatalf("ReferenceDay = %q; want 2026-08-27", got)
	}
	if got := e.ReferenceDay(mustTime(t, "2026-08-26T18:00:00Z")); got != "2026-08-26" {
		t.Fatalf("ReferenceDay = %q; want 2026-08-26", got)
	}
}

func TestDue_OneTime(t *testing.T) {
	e := New(0, 0)
	now := mustTime(t, "2026-08-26T12:00:00Z")

	if !e.Due(domain.CategoryIntro, time.Time{}, now) {
		t.Fatalf("absent one-time content must be due")
	}
	if e.Due(domain.CategoryIntro, now.Add(-1000*time.Hour), now) {
		t.Fatalf("one-time content never expires by age")
	}
	if e.Due(domain.DeepDiveCategory("love"), now.Add(-time.Minute), now) {
		t.Fatalf("generated deep dive must not be due")
	}
}

func TestDue_DailyScheduled(t *testing.T) {
	e := New(0, 3*time.Hour)
	now := mustTime(t, "2026-08-26T12:00:00Z")

	if !e.Due(domain.CategoryForecast, time.Time{}, now) {
		t.Fatalf("absent daily content must be due")
	}
	if e.Due(domain.CategoryForecast, mustTime(t, "2026-08-26T08:00:00Z"), now) {
		t.Fatalf("same reference day must not be due")
	}
	if !e.Due(domain.CategoryForecast, mustTime(t, "2026-08-25T22:00:00Z"), now) {
		t.Fatalf("previous reference day must be due")
	}

	// Post-midnight grace: at 01:00 the previous evening's forecast holds.
	lateNow := mustTime(t, "2026-08-27T01:00:00Z")
	if e.Due(domain.CategoryForecast, mustTime(t, "2026-08-26T21:00:00Z"), lateNow) {
		t.Fatalf("forecast within the grace window must not be due")
	}
}

func TestDue_DailyElapsedCeiling(t *testing.T) {
	// Whatever the zone or grace settings, a daily stamp 24h old or older is
	// always due. Sweep a day of now values to cover both expiry branches.
	e := New(5*time.Hour+30*time.Minute, 6*time.Hour)
	base := mustTime(t, "2026-08-25T00:00:00Z")
	for i := 0; i < 24; i++ {
		now := base.Add(time.Duration(i) * time.Hour)
		last := now.Add(-24 * time.Hour)
		if !e.Due(domain.CategoryForecast, last, now) {
			t.Fatalf("stamp 24h before %s must be due", now)
		}
	}
}

func TestDue_PaidOnly(t *testing.T) {
	e := New(0, 0)
	now := mustTime(t, "2026-08-26T12:00:00Z")

	if e.Due(domain.CategoryYearAhead, time.Time{}, now) {
		t.Fatalf("paid-only content must never be due, even when absent")
	}
	if e.Due(domain.CategoryYearAhead, now.Add(-9000*time.Hour), now) {
		t.Fatalf("paid-only content must never be due by age")
	}
}
