package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/novalune/go-astro-backend/internal/domain"
	"github.com/novalune/go-astro-backend/internal/services"
)

// fakeHoroscopeService is a counting fake for HoroscopeService.
type fakeHoroscopeService struct {
	calls   int
	lastUID string
	payload *domain.ForecastPayload
	err     error
}

func (f *fakeHoroscopeService) Today(_ context.Context, userID string) (*domain.ForecastPayload, error) {
	f.calls++
	f.lastUID = userID
	return f.payload, f.err
}

func newHoroscopeRouter(svc HoroscopeService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := New(nil, svc, nil, nil)
	r.GET("/horoscope/today", h.TodayHoroscope)
	return r
}

func TestTodayHoroscope_OK(t *testing.T) {
	fake := &fakeHoroscopeService{payload: &domain.ForecastPayload{
		Sign:        "leo",
		Day:         "2024-06-01",
		Text:        "Today favors bold beginnings.",
		GeneratedAt: time.Date(2024, 6, 1, 6, 0, 0, 0, time.UTC),
	}}
	r := newHoroscopeRouter(fake)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/horoscope/today", nil)
	req.Header.Set("X-User-ID", "u42")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
	}
	if fake.calls != 1 || fake.lastUID != "u42" {
		t.Fatalf("calls=%d uid=%q", fake.calls, fake.lastUID)
	}
	var f domain.ForecastPayload
	if err := json.Unmarshal(w.Body.Bytes(), &f); err != nil {
		t.Fatalf("json: %v", err)
	}
	if f.Sign != "leo" || f.Day != "2024-06-01" || f.Text == "" {
		t.Fatalf("unexpected payload: %+v", f)
	}
}

func TestTodayHoroscope_ErrorMapping(t *testing.T) {
	cases := []struct {
		err        error
		wantStatus int
		wantCode   string
	}{
		{services.ErrProfileNotFound, http.StatusNotFound, ErrCodeNotFound},
		{services.ErrOracleUnavailable, http.StatusBadGateway, ErrCodeGenerationFailed},
		{services.ErrBundlePersist, http.StatusServiceUnavailable, ErrCodeSaveFailed},
	}
	for _, tc := range cases {
		fake := &fakeHoroscopeService{err: tc.err}
		r := newHoroscopeRouter(fake)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/horoscope/today", nil)
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
