package repo

import (
	"context"
	"fmt"
	"testing"
	"time"

	sqlite "github.com/glebarez/sqlite" // pure-Go SQLite
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/novalune/go-astro-backend/internal/domain"
)

func newProfileDB(t *testing.T, migrate ...any) *gorm.DB {
	t.Helper()
	// Use a unique in-memory database per test to avoid schema leakage across tests.
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if len(migrate) > 0 {
		if err := db.AutoMigrate(migrate...); err != nil {
			t.Fatalf("automigrate: %v", err)
		}
	}
	return db
}

func TestCreateProfile_FillsDefaults(t *testing.T) {
	db := newProfileDB(t, &domain.Profile{})

	start := time.Now().UTC().Add(-time.Minute)
	p, err := CreateProfile(context.Background(), db, &domain.Profile{
		Name:       "Jane",
		BirthDate:  "1989-03-06",
		BirthPlace: "Lisbon, Portugal",
		Locale:     "en",
		Tier:       domain.TierFree,
		Sign:       "pisces",
	})
	if err != nil {
		t.Fatalf("CreateProfile: %v", err)
	}
	if p.ID == "" || len(p.ID) != 36 {
		t.Fatalf("expected UUID primary key, got %q", p.ID)
	}
	if p.CreatedAt.Before(start) {
		t.Fatalf("CreatedAt seems unset/really old: %v", p.CreatedAt)
	}
	if p.Stamps == nil || p.Regen == nil {
		t.Fatalf("expected ledgers allocated, got stamps=%v regen=%v", p.Stamps, p.Regen)
	}
}

func TestCreateProfile_KeepsCallerID(t *testing.T) {
	db := newProfileDB(t, &domain.Profile{})

	p, err := CreateProfile(context.Background(), db, &domain.Profile{
		ID:         "fixed-id",
		Name:       "Jo",
		BirthDate:  "1990-01-01",
		BirthPlace: "Athens, Greece",
		Sign:       "capricorn",
	})
	if err != nil {
		t.Fatalf("CreateProfile: %v", err)
	}
	if p.ID != "fixed-id" {
		t.Fatalf("expected caller-provided ID preserved, got %q", p.ID)
	}
}

func TestCreateProfile_Error_NoTable(t *testing.T) {
	db := newProfileDB(t /* no migrations */)
	p, err := CreateProfile(context.Background(), db, &domain.Profile{Name: "x"})
	if err == nil || p != nil {
		t.Fatalf("expected error creating without table, got p=%v err=%v", p, err)
	}
}

func TestGetProfile_NotFound(t *testing.T) {
	db := newProfileDB(t, &domain.Profile{})

	p, err := GetProfile(context.Background(), db, "missing")
	if p != nil || err != ErrNotFound {
		t.Fatalf("expected (nil, ErrNotFound), got (%v, %v)", p, err)
	}
}

func TestGetProfile_RoundTripsJSONColumns(t *testing.T) {
	db := newProfileDB(t, &domain.Profile{})

	gen := time.Date(2026, 3, 6, 7, 30, 0, 0, time.UTC)
	seed := &domain.Profile{
		Name:       "Jane",
		BirthDate:  "1989-03-06",
		BirthPlace: "Lisbon, Portugal",
		Locale:     "en",
		Tier:       domain.TierPremium,
		Sign:       "pisces",
		Chart:      &domain.ChartFacts{SunSign: "pisces", MoonSign: "leo", ComputedAt: gen},
		Bundle: domain.ContentBundle{
			Intro: "welcome",
			Forecast: &domain.ForecastPayload{
				Sign: "pisces", Day: "2026-03-06", Text: "clear skies", GeneratedAt: gen,
			},
			DeepDives: map[string]string{"love": "deep love text"},
		},
	}
	seed.EnsureLedgers()
	seed.Stamps.Touch(domain.CategoryIntro, gen)

	created, err := CreateProfile(context.Background(), db, seed)
	if err != nil {
		t.Fatalf("CreateProfile: %v", err)
	}

	got, err := GetProfile(context.Background(), db, created.ID)
	if err != nil {
		t.Fatalf("GetProfile: %v", err)
	}
	if got.Chart == nil || got.Chart.SunSign != "pisces" || got.Chart.MoonSign != "leo" {
		t.Fatalf("chart did not round-trip: %+v", got.Chart)
	}
	if got.Bundle.Intro != "welcome" || got.Bundle.DeepDive("love") != "deep love text" {
		t.Fatalf("bundle did not round-trip: %+v", got.Bundle)
	}
	if got.Bundle.Forecast == nil || got.Bundle.Forecast.Day != "2026-03-06" {
		t.Fatalf("forecast did not round-trip: %+v", got.Bundle.Forecast)
	}
	if last, ok := got.Stamps.Last(domain.CategoryIntro); !ok || !last.Equal(gen) {
		t.Fatalf("stamps did not round-trip: ok=%v last=%v", ok, last)
	}
}

func TestSaveProfile_PersistsBundleChanges(t *testing.T) {
	db := newProfileDB(t, &domain.Profile{})

	created, err := CreateProfile(context.Background(), db, &domain.Profile{
		Name:       "Sam",
		BirthDate:  "2000-07-01",
		BirthPlace: "Berlin, Germany",
		Sign:       "cancer",
	})
	if err != nil {
		t.Fatalf("CreateProfile: %v", err)
	}

	created.Bundle.YearAhead = "a year of change"
	created.Bundle.SetMemo("alex_1991-02-02", domain.MemoBrief, &domain.PartnerMemo{
		Text:             "brief memo",
		PartnerName:      "Alex",
		PartnerBirthDate: "1991-02-02",
		GeneratedAt:      time.Now().UTC(),
	})
	if err := SaveProfile(context.Background(), db, created); err != nil {
		t.Fatalf("SaveProfile: %v", err)
	}

	got, err := GetProfile(context.Background(), db, created.ID)
	if err != nil {
		t.Fatalf("GetProfile after save: %v", err)
	}
	if got.Bundle.YearAhead != "a year of change" {
		t.Fatalf("year ahead not persisted: %+v", got.Bundle)
	}
	memo := got.Bundle.Memo("alex_1991-02-02", domain.MemoBrief)
	if memo == nil || memo.Text != "brief memo" || memo.PartnerName != "Alex" {
		t.Fatalf("partner memo not persisted: %+v", memo)
	}
	if got.Bundle.Memo("alex_1991-02-02", domain.MemoFull) != nil {
		t.Fatalf("full slot should stay empty, got %+v", got.Bundle.PartnerMemos)
	}
}

func TestUpdateProfileTier_SuccessAndMissing(t *testing.T) {
	db := newProfileDB(t, &domain.Profile{})

	created, err := CreateProfile(context.Background(), db, &domain.Profile{
		Name:       "Kim",
		BirthDate:  "1995-11-30",
		BirthPlace: "Oslo, Norway",
		Tier:       domain.TierFree,
		Sign:       "sagittarius",
	})
	if err != nil {
		t.Fatalf("CreateProfile: %v", err)
	}

	if err := UpdateProfileTier(context.Background(), db, created.ID, domain.TierPremium); err != nil {
		t.Fatalf("UpdateProfileTier: %v", err)
	}
	got, err := GetProfile(context.Background(), db, created.ID)
	if err != nil {
		t.Fatalf("GetProfile: %v", err)
	}
	if !got.IsPremium() {
		t.Fatalf("expected premium after update, got tier=%q", got.Tier)
	}

	if err := UpdateProfileTier(context.Background(), db, "missing", domain.TierPremium); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound for missing profile, got %v", err)
	}
}

func TestUpdateProfileLocale_SuccessAndMissing(t *testing.T) {
	db := newProfileDB(t, &domain.Profile{})

	created, err := CreateProfile(context.Background(), db, &domain.Profile{
		Name:       "Ana",
		BirthDate:  "1988-04-14",
		BirthPlace: "Madrid, Spain",
		Locale:     "en",
		Sign:       "aries",
	})
	if err != nil {
		t.Fatalf("CreateProfile: %v", err)
	}

	if err := UpdateProfileLocale(context.Background(), db, created.ID, "es"); err != nil {
		t.Fatalf("UpdateProfileLocale: %v", err)
	}
	got, err := GetProfile(context.Background(), db, created.ID)
	if err != nil {
		t.Fatalf("GetProfile: %v", err)
	}
	if got.Locale != "es" {
		t.Fatalf("expected locale es, got %q", got.Locale)
	}

	if err := UpdateProfileLocale(context.Background(), db, "missing", "de"); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound for missing profile, got %v", err)
	}
}
