package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	sqlite "github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/novalune/go-astro-backend/internal/domain"
	"github.com/novalune/go-astro-backend/internal/services"
)

// fakeProfileService is a hand-rolled counting fake for ProfileService.
type fakeProfileService struct {
	onboardCalls  int
	profileCalls  int
	settingsCalls int

	onboardIn  services.OnboardInput
	settingsIn services.SettingsInput

	profile *domain.Profile
	err     error
}

func (f *fakeProfileService) Onboard(_ context.Context, in services.OnboardInput) (*domain.Profile, error) {
	f.onboardCalls++
	f.onboardIn = in
	return f.profile, f.err
}

func (f *fakeProfileService) Profile(_ context.Context, _ string) (*domain.Profile, error) {
	f.profileCalls++
	return f.profile, f.err
}

func (f *fakeProfileService) UpdateSettings(_ context.Context, _ string, in services.SettingsInput) (*domain.Profile, error) {
	f.settingsCalls++
	f.settingsIn = in
	return f.profile, f.err
}

func newProfileRouter(svc ProfileService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := New(svc, nil, nil, nil)
	r.POST("/profiles", h.Onboard)
	r.GET("/profiles/me", h.GetProfile)
	r.PATCH("/profiles/me", h.UpdateSettings)
	return r
}

func TestOnboard_Created(t *testing.T) {
	fake := &fakeProfileService{profile: &domain.Profile{
		ID:   "u1",
		Name: "Ada",
		Sign: "pisces",
		Bundle: domain.ContentBundle{
			Intro: "welcome",
		},
	}}
	r := newProfileRouter(fake)

	body := `{"name":"Ada","birth_date":"1989-03-06","birth_place":"Athens","locale":"el"}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/profiles", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
	}
	if fake.onboardCalls != 1 {
		t.Fatalf("onboard calls=%d", fake.onboardCalls)
	}
	if fake.onboardIn.Locale != "el" || fake.onboardIn.BirthDate != "1989-03-06" {
		t.Fatalf("input not forwarded: %+v", fake.onboardIn)
	}
	var p domain.Profile
	if err := json.Unmarshal(w.Body.Bytes(), &p); err != nil {
		t.Fatalf("json: %v", err)
	}
	if p.ID != "u1" || p.Bundle.Intro != "welcome" {
		t.Fatalf("unexpected body: %+v", p)
	}
}

func TestOnboard_BadJSON_And_ValidationMapping(t *testing.T) {
	// malformed JSON → 400 before the service is touched
	fake := &fakeProfileService{}
	r := newProfileRouter(fake)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/profiles", bytes.NewBufferString("{nope"))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	if w.Code != http.StatusBadRequest || fake.onboardCalls != 0 {
		t.Fatalf("bad json: status=%d calls=%d", w.Code, fake.onboardCalls)
	}

	// service-level validation sentinel → 400 bad_request
	fake = &fakeProfileService{err: services.ErrInvalidBirthDate}
	r = newProfileRouter(fake)
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPost, "/profiles",
		bytes.NewBufferString(`{"name":"A","birth_date":"junk","birth_place":"X"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("validation: status=%d", w.Code)
	}
	var er ErrorResponse
	_ = json.Unmarshal(w.Body.Bytes(), &er)
	if er.Code != ErrCodeBadRequest {
		t.Fatalf("code=%q", er.Code)
	}
}

func TestOnboard_UpstreamFailures(t *testing.T) {
	cases := []struct {
		err        error
		wantStatus int
		wantCode   string
	}{
		{services.ErrChartUnavailable, http.StatusBadGateway, ErrCodeChartUnavailable},
		{services.ErrOracleUnavailable, http.StatusBadGateway, ErrCodeGenerationFailed},
		{services.ErrProfilePersist, http.StatusServiceUnavailable, ErrCodeSaveFailed},
		{services.ErrBundlePersist, http.StatusServiceUnavailable, ErrCodeSaveFailed},
	}
	for _, tc := range cases {
		fake := &fakeProfileService{err: tc.err}
		r := newProfileRouter(fake)
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/profiles",
			bytes.NewBufferString(`{"name":"A","birth_date":"1989-03-06","birth_place":"X"}`))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, req)

		if w.Code != tc.wantStatus {
			t.Fatalf("%v: status=%d", tc.err, w.Code)
		}
		var er ErrorResponse
		_ = json.Unmarshal(w.Body.Bytes(), &er)
		if er.Code != tc.wantCode {
			t.Fatalf("%v: code=%q", tc.err, er.Code)
		}
	}
}

func TestGetProfile_OK_And_NotFound(t *testing.T) {
	fake := &fakeProfileService{profile: &domain.Profile{ID: "u9", Name: "Ada"}}
	r := newProfileRouter(fake)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/profiles/me", nil)
	req.Header.Set("X-User-ID", "u9")
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK || fake.profileCalls != 1 {
		t.Fatalf("status=%d calls=%d", w.Code, fake.profileCalls)
	}

	fake = &fakeProfileService{err: services.ErrProfileNotFound}
	r = newProfileRouter(fake)
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/profiles/me", nil)
	r.ServeHTTP(w, req)
	if w.Code != http.StatusNotFound {
		t.Fatalf("status=%d", w.Code)
	}
}

// The ETag pre-check short-circuits with 304 when If-None-Match carries the
// current weak tag; the service itself is never consulted on that path, so a
// bare OnboardingService with only the DB handle is enough.
func TestGetProfile_ETag_NotModified(t *testing.T) {
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:handlerdb_%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&domain.Profile{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	p := &domain.Profile{
		ID:         "etag-user",
		Name:       "Ada",
		BirthDate:  "1989-03-06",
		BirthPlace: "Athens",
		Locale:     "en",
		Tier:       domain.TierFree,
		Sign:       "pisces",
	}
	if err := db.Create(p).Error; err != nil {
		t.Fatalf("seed profile: %v", err)
	}
	var saved domain.Profile
	if err := db.First(&saved, "id = ?", p.ID).Error; err != nil {
		t.Fatalf("reload: %v", err)
	}
	etag := fmt.Sprintf(`W/"profile:%s:%d"`, p.ID, saved.UpdatedAt.Unix())

	r := gin.New()
	h := New(&services.OnboardingService{DB: db}, nil, nil, nil)
	r.GET("/profiles/me", h.GetProfile)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/profiles/me", nil)
	req.Header.Set("X-User-ID", p.ID)
	req.Header.Set("If-None-Match", etag)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNotModified {
		t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
	}
	if got := w.Header().Get("ETag"); got != etag {
		t.Fatalf("etag=%q want %q", got, etag)
	}
	if w.Body.Len() != 0 {
		t.Fatalf("expected empty body for 304")
	}
}

func TestUpdateSettings_ForwardsAndMaps(t *testing.T) {
	fake := &fakeProfileService{profile: &domain.Profile{ID: "u1", Tier: domain.TierPremium}}
	r := newProfileRouter(fake)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPatch, "/profiles/me",
		bytes.NewBufferString(`{"tier":"premium","locale":"en-GB"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK || fake.settingsCalls != 1 {
		t.Fatalf("status=%d calls=%d", w.Code, fake.settingsCalls)
	}
	if fake.settingsIn.Tier != "premium" || fake.settingsIn.Locale != "en-GB" {
		t.Fatalf("input not forwarded: %+v", fake.settingsIn)
	}

	// empty patch → 400 no_settings sentinel
	fake = &fakeProfileService{err: services.ErrNoSettings}
	r = newProfileRouter(fake)
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPatch, "/profiles/me", bytes.NewBufferString(`{}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status=%d", w.Code)
	}
}

// userID resolution: context value wins over the demo header, which wins over
// the hardcoded fallback.
func Test_userID_Resolution(t *testing.T) {
	gin.SetMode(gin.TestMode)

	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	if got := userID(c); got != "demo-user" {
		t.Fatalf("fallback: %q", got)
	}

	c.Request.Header.Set("X-User-ID", "header-user")
	if got := userID(c); got != "header-user" {
		t.Fatalf("header: %q", got)
	}

	c.Set("userID", "ctx-user")
	if got := userID(c); got != "ctx-user" {
		t.Fatalf("context: %q", got)
	}
}
