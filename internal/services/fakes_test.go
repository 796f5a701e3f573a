package services

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	sqlite "github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/novalune/go-astro-backend/internal/billing"
	"github.com/novalune/go-astro-backend/internal/chart"
	"github.com/novalune/go-astro-backend/internal/domain"
	"github.com/novalune/go-astro-backend/internal/oracle"
	"github.com/novalune/go-astro-backend/internal/repo"
)

// ---------- shared test doubles ----------

// newSvcDB opens a unique in-memory database per test, optionally migrated.
func newSvcDB(t *testing.T, migrate ...any) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:svc_%s?mode=memory&cache=shared", uuid.NewString())

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

// gormStores adapts the repo free functions to the store contracts, the same
// way the HTTP wiring does in production.
type gormStores struct{}

func (gormStores) CreateProfile(ctx context.Context, db *gorm.DB, p *domain.Profile) (*domain.Profile, error) {
	return repo.CreateProfile(ctx, db, p)
}

func (gormStores) GetProfile(ctx context.Context, db *gorm.DB, id string) (*domain.Profile, error) {
	return repo.GetProfile(ctx, db, id)
}

func (gormStores) SaveProfile(ctx context.Context, db *gorm.DB, p *domain.Profile) error {
	return repo.SaveProfile(ctx, db, p)
}

func (gormStores) UpdateProfileTier(ctx context.Context, db *gorm.DB, id, tier string) error {
	return repo.UpdateProfileTier(ctx, db, id, tier)
}

func (gormStores) UpdateProfileLocale(ctx context.Context, db *gorm.DB, id, locale string) error {
	return repo.UpdateProfileLocale(ctx, db, id, locale)
}

func (gormStores) GetForecast(ctx context.Context, db *gorm.DB, sign, day string) (*domain.ForecastCacheEntry, error) {
	return repo.GetForecast(ctx, db, sign, day)
}

func (gormStores) UpsertForecast(ctx context.Context, db *gorm.DB, sign, day, text string, generatedAt time.Time) (*domain.ForecastCacheEntry, error) {
	return repo.UpsertForecast(ctx, db, sign, day, text, generatedAt)
}

func (gormStores) GetReceipt(ctx context.Context, db *gorm.DB, userID, category, key string, now time.Time) (*domain.RegenReceipt, error) {
	return repo.GetReceipt(ctx, db, userID, category, key, now)
}

func (gormStores) CreateReceipt(ctx context.Context, db *gorm.DB, userID, category, key, content string, charged bool, ttl time.Duration) (*domain.RegenReceipt, error) {
	return repo.CreateReceipt(ctx, db, userID, category, key, content, charged, ttl)
}

// stubOracle records every request and answers with deterministic text, or
// with whatever the reply hook decides. Safe for concurrent fan-out.
type stubOracle struct {
	mu    sync.Mutex
	calls []oracle.Request
	reply func(req oracle.Request) (string, error)
}

func (f *stubOracle) Generate(_ context.Context, req oracle.Request) (string, error) {
	f.mu.Lock()
	f.calls = append(f.calls, req)
	f.mu.Unlock()

	if f.reply != nil {
		return f.reply(req)
	}
	if req.Topic != "" {
		return fmt.Sprintf("%s text about %s", req.Kind, req.Topic), nil
	}
	return fmt.Sprintf("%s text", req.Kind), nil
}

func (f *stubOracle) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

func (f *stubOracle) countKind(k oracle.Kind) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, c := range f.calls {
		if c.Kind == k {
			n++
		}
	}
	return n
}

// stubEngine is a counting chart engine with scripted output.
type stubEngine struct {
	mu    sync.Mutex
	calls int
	facts *domain.ChartFacts
	err   error
}

func (e *stubEngine) Compute(context.Context, chart.ComputeRequest) (*domain.ChartFacts, error) {
	e.mu.Lock()
	e.calls++
	e.mu.Unlock()
	if e.err != nil {
		return nil, e.err
	}
	f := *e.facts
	return &f, nil
}

func (e *stubEngine) count() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.calls
}

// stubCharger is a counting billing collaborator with a scripted verdict.
type stubCharger struct {
	mu     sync.Mutex
	calls  int
	result billing.Result
	err    error
}

func (c *stubCharger) Charge(context.Context, string, int) (billing.Result, error) {
	c.mu.Lock()
	c.calls++
	c.mu.Unlock()
	if c.err != nil {
		return "", c.err
	}
	if c.result == "" {
		return billing.ResultApproved, nil
	}
	return c.result, nil
}

func (c *stubCharger) count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.calls
}

// seedProfile inserts an onboarded profile with chart facts but no bundle.
func seedProfile(t *testing.T, db *gorm.DB, tier string) *domain.Profile {
	t.Helper()
	p, err := repo.CreateProfile(context.Background(), db, &domain.Profile{
		Name:       "Jane",
		BirthDate:  "1989-03-06",
		BirthPlace: "Lisbon, Portugal",
		Locale:     "en",
		Tier:       tier,
		Sign:       "pisces",
		Chart:      &domain.ChartFacts{SunSign: "pisces", MoonSign: "leo", ComputedAt: time.Now().UTC()},
	})
	if err != nil {
		t.Fatalf("seed profile: %v", err)
	}
	return p
}
