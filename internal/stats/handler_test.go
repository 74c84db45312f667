package stats

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/ruchirachamara/assessment/internal/server"
	"github.com/ruchirachamara/assessment/pkg/models"
)

func newTestHandler(t *testing.T, src *fakeSource) (*Handler, *http.ServeMux) {
	t.Helper()
	svc, _ := newTestService(t, src, 5*time.Minute)
	h := NewHandler(svc, zap.NewNop())
	mux := http.NewServeMux()
	h.RegisterRoutes(mux)
	return h, mux
}

func TestHandleStats(t *testing.T) {
	src := &fakeSource{items: []models.Item{
		{ID: 1, Price: models.Price(10)},
		{ID: 2, Price: models.Price(20)},
	}}
	_, mux := newTestHandler(t, src)

	w := httptest.NewRecorder()
	mux.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/stats", http.NoBody))

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}
	var stats models.Stats
	if err := json.NewDecoder(w.Body).Decode(&stats); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if stats.Total != 2 || stats.AveragePrice != 15 {
		t.Errorf("stats = %+v, want total 2 average 15", stats)
	}
}

func TestHandleStats_SourceError(t *testing.T) {
	src := &fakeSource{err: errors.New("disk gone")}
	_, mux := newTestHandler(t, src)

	w := httptest.NewRecorder()
	mux.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/stats", http.NoBody))

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusInternalServerError)
	}
	var p server.Problem
	if err := json.NewDecoder(w.Body).Decode(&p); err != nil {
		t.Fatalf("decode problem: %v", err)
	}
	if p.Detail != "failed to compute stats" {
		t.Errorf("detail = %q, want %q", p.Detail, "failed to compute stats")
	}
}

func TestHandleInvalidate(t *testing.T) {
	src := &fakeSource{items: []models.Item{{ID: 1}}}
	_, mux := newTestHandler(t, src)

	// Prime the cache.
	mux.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/stats", http.NoBody))

	w := httptest.NewRecorder()
	mux.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/api/stats/cache", http.NoBody))

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}
	var msg MessageResponse
	if err := json.NewDecoder(w.Body).Decode(&msg); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if msg.Message != "Stats cache cleared" {
		t.Errorf("message = %q, want %q", msg.Message, "Stats cache cleared")
	}

	mux.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/stats", http.NoBody))
	if n := src.loadCount(); n != 2 {
		t.Errorf("source loaded %d times, want 2 after manual invalidation", n)
	}
}

func TestHandleStatus_Empty(t *testing.T) {
	_, mux := newTestHandler(t, &fakeSource{})

	w := httptest.NewRecorder()
	mux.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/stats/cache/status", http.NoBody))

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}
	var raw map[string]interface{}
	if err := json.NewDecoder(w.Body).Decode(&raw); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if raw["cached"] != false || raw["cacheValid"] != false {
		t.Errorf("cached/cacheValid = %v/%v, want false/false", raw["cached"], raw["cacheValid"])
	}
	if raw["cacheAge"] != nil {
		t.Errorf("cacheAge = %v, want null", raw["cacheAge"])
	}
	if raw["lastUpdated"] != nil {
		t.Errorf("lastUpdated = %v, want null", raw["lastUpdated"])
	}
}

func TestHandleStatus_AfterStats(t *testing.T) {
	_, mux := newTestHandler(t, &fakeSource{items: []models.Item{{ID: 1}}})

	mux.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/stats", http.NoBody))

	w := httptest.NewRecorder()
	mux.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/stats/cache/status", http.NoBody))

	var status models.CacheStatus
	if err := json.NewDecoder(w.Body).Decode(&status); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !status.Cached || !status.CacheValid {
		t.Errorf("status = %+v, want cached and valid right after a stats request", status)
	}
	if status.CacheAge == nil || status.LastUpdated == nil {
		t.Error("CacheAge/LastUpdated missing after a stats request")
	}
}
