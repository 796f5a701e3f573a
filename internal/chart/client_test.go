package chart

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestClient_Compute_Success(t *testing.T) {
	var gotPath, gotAuth string
	var gotReq ComputeRequest

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		if err := json.NewDecoder(r.Body).Decode(&gotReq); err != nil {
			t.Errorf("decode request: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"chart": {
				"sun_sign": "pisces",
				"moon_sign": "leo",
				"rising_sign": "virgo",
				"placements": {"Venus": "taurus"}
			}
		}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "secret", 5*time.Second)
	facts, err := c.Compute(context.Background(), ComputeRequest{
		BirthDate:  "1989-03-06",
		BirthTime:  "07:45",
		BirthPlace: "Athens, GR",
	})
	if err != nil {
		t.Fatalf("Compute: %v", err)
	}

	if gotPath != "/v1/charts" {
		t.Fatalf("path = %q; want /v1/charts", gotPath)
	}
	if gotAuth != "Bearer secret" {
		t.Fatalf("auth = %q", gotAuth)
	}
	if gotReq.BirthDate != "1989-03-06" || gotReq.BirthPlace != "Athens, GR" {
		t.Fatalf("request body = %+v", gotReq)
	}
	if facts.SunSign != "pisces" || facts.MoonSign != "leo" || facts.Placements["Venus"] != "taurus" {
		t.Fatalf("facts = %+v", facts)
	}
	if facts.ComputedAt.IsZero() {
		t.Fatalf("ComputedAt should be defaulted when the service omits it")
	}
}

func TestClient_Compute_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "ephemeris offline", http.StatusBadGateway)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "", 0)
	if _, err := c.Compute(context.Background(), ComputeRequest{BirthDate: "1989-03-06", BirthPlace: "Athens"}); err == nil {
		t.Fatalf("expected error on non-200 response")
	}
}

func TestClient_Compute_MissingSunSign(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"chart": {}}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "", 0)
	if _, err := c.Compute(context.Background(), ComputeRequest{BirthDate: "1989-03-06", BirthPlace: "Athens"}); err == nil {
		t.Fatalf("expected error when sun sign missing")
	}
}

func TestClient_Compute_BadBaseURL(t *testing.T) {
	c := NewClient("://nope", "", 0)
	if _, err := c.Compute(context.Background(), ComputeRequest{BirthDate: "1989-03-06"}); err == nil {
		t.Fatalf("expected error for invalid base URL")
	}
}
