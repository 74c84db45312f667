package catalog

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/ruchirachamara/assessment/internal/server"
	"github.com/ruchirachamara/assessment/pkg/models"
	"github.com/ruchirachamara/assessment/pkg/query"
)

func newTestHandler(t *testing.T, items []models.Item) (*Handler, *http.ServeMux) {
	t.Helper()
	st := newTestStore(t)
	if items != nil {
		writeCollection(t, st, items)
	}
	h := NewHandler(st, zap.NewNop())
	mux := http.NewServeMux()
	h.RegisterRoutes(mux)
	return h, mux
}

func catalogFixture() []models.Item {
	return []models.Item{
		{ID: 1, Name: "Laptop", Price: models.Price(999.5), Category: "Electronics"},
		{ID: 2, Name: "Lamp", Price: models.Price(30), Category: "Home"},
		{ID: 3, Name: "Mug", Price: models.Price(8), Category: "Home"},
	}
}

// -- GET /api/items --

func TestHandleList_Defaults(t *testing.T) {
	_, mux := newTestHandler(t, catalogFixture())
	req := httptest.NewRequest(http.MethodGet, "/api/items", http.NoBody)
	w := httptest.NewRecorder()

	mux.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}
	var res query.PageResult
	if err := json.NewDecoder(w.Body).Decode(&res); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(res.Items) != 3 {
		t.Errorf("len(items) = %d, want 3", len(res.Items))
	}
	if res.Pagination.TotalItems != 3 || res.Search.ResultsFound != 3 {
		t.Errorf("totals = %d/%d, want 3/3",
			res.Pagination.TotalItems, res.Search.ResultsFound)
	}
	if res.Pagination.CurrentPage != 1 || res.Pagination.ItemsPerPage != 10 {
		t.Errorf("pagination = %+v, want page 1 limit 10", res.Pagination)
	}
}

func TestHandleList_QueryParams(t *testing.T) {
	_, mux := newTestHandler(t, catalogFixture())
	req := httptest.NewRequest(http.MethodGet,
		"/api/items?category=home&sortBy=price&sortOrder=desc", http.NoBody)
	w := httptest.NewRecorder()

	mux.ServeHTTP(w, req)

	var res query.PageResult
	if err := json.NewDecoder(w.Body).Decode(&res); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(res.Items) != 2 {
		t.Fatalf("len(items) = %d, want 2", len(res.Items))
	}
	if res.Items[0].ID != 2 || res.Items[1].ID != 3 {
		t.Errorf("order = [%d %d], want [2 3] for price desc", res.Items[0].ID, res.Items[1].ID)
	}
	if res.Search.Category != "home" || res.Search.SortOrder != "desc" {
		t.Errorf("search echo = %+v, want the requested parameters", res.Search)
	}
}

func TestHandleList_EmptyCollection(t *testing.T) {
	_, mux := newTestHandler(t, nil)
	req := httptest.NewRequest(http.MethodGet, "/api/items", http.NoBody)
	w := httptest.NewRecorder()

	mux.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d for a missing file", w.Code, http.StatusOK)
	}
	var res query.PageResult
	if err := json.NewDecoder(w.Body).Decode(&res); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if res.Items == nil || len(res.Items) != 0 {
		t.Errorf("items = %#v, want empty array", res.Items)
	}
	if res.Pagination.TotalPages != 0 || res.Pagination.HasNextPage || res.Pagination.HasPrevPage {
		t.Errorf("pagination = %+v, want zeroed page metadata", res.Pagination)
	}
}

// -- GET /api/items/{id} --

func TestHandleGet_Success(t *testing.T) {
	h, _ := newTestHandler(t, catalogFixture())
	req := httptest.NewRequest(http.MethodGet, "/api/items/2", http.NoBody)
	req.SetPathValue("id", "2")
	w := httptest.NewRecorder()

	h.handleGet(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}
	var item models.Item
	if err := json.NewDecoder(w.Body).Decode(&item); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if item.Name != "Lamp" {
		t.Errorf("item.Name = %q, want Lamp", item.Name)
	}
}

func TestHandleGet_InvalidID(t *testing.T) {
	h, _ := newTestHandler(t, catalogFixture())
	req := httptest.NewRequest(http.MethodGet, "/api/items/abc", http.NoBody)
	req.SetPathValue("id", "abc")
	w := httptest.NewRecorder()

	h.handleGet(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusBadRequest)
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/problem+json" {
		t.Errorf("Content-Type = %q, want application/problem+json", ct)
	}
	var p server.Problem
	if err := json.NewDecoder(w.Body).Decode(&p); err != nil {
		t.Fatalf("decode problem: %v", err)
	}
	if p.Detail != "Invalid item ID" {
		t.Errorf("detail = %q, want %q", p.Detail, "Invalid item ID")
	}
}

func TestHandleGet_NotFound(t *testing.T) {
	h, _ := newTestHandler(t, catalogFixture())
	req := httptest.NewRequest(http.MethodGet, "/api/items/999", http.NoBody)
	req.SetPathValue("id", "999")
	w := httptest.NewRecorder()

	h.handleGet(w, req)

	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusNotFound)
	}
	var p server.Problem
	if err := json.NewDecoder(w.Body).Decode(&p); err != nil {
		t.Fatalf("decode problem: %v", err)
	}
	if p.Detail != "Item not found" {
		t.Errorf("detail = %q, want %q", p.Detail, "Item not found")
	}
}

// -- GET /api/items/categories --

func TestHandleCategories(t *testing.T) {
	_, mux := newTestHandler(t, catalogFixture())
	req := httptest.NewRequest(http.MethodGet, "/api/items/categories", http.NoBody)
	w := httptest.NewRecorder()

	mux.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d; categories must not be routed as an item ID", w.Code, http.StatusOK)
	}
	var res models.CategoryList
	if err := json.NewDecoder(w.Body).Decode(&res); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	want := []string{"Electronics", "Home"}
	if res.Total != 2 || len(res.Categories) != 2 {
		t.Fatalf("categories = %+v, want %v", res, want)
	}
	for i, c := range want {
		if res.Categories[i] != c {
			t.Errorf("categories[%d] = %q, want %q", i, res.Categories[i], c)
		}
	}
}

// -- POST /api/items --

func TestHandleCreate_Success(t *testing.T) {
	h, mux := newTestHandler(t, nil)

	body := `{"name":"  Widget  ","price":9.99,"category":"Tools"}`
	req := httptest.NewRequest(http.MethodPost, "/api/items", strings.NewReader(body))
	w := httptest.NewRecorder()

	mux.ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, want %d: %s", w.Code, http.StatusCreated, w.Body.String())
	}
	var item models.Item
	if err := json.NewDecoder(w.Body).Decode(&item); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if item.ID == 0 {
		t.Error("created item has no ID")
	}
	if item.Name != "Widget" {
		t.Errorf("item.Name = %q, want trimmed Widget", item.Name)
	}
	if item.CreatedAt == "" {
		t.Error("created item has no createdAt")
	}

	items, err := h.store.Load()
	if err != nil {
		t.Fatal(err)
	}
	if len(items) != 1 {
		t.Errorf("collection has %d items after create, want 1", len(items))
	}
}

func TestHandleCreate_Validation(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		wantDetail string
	}{
		{"missing name", `{"price":1}`, "name is required"},
		{"blank name", `{"name":"   ","price":1}`, "name is required"},
		{"missing price", `{"name":"Widget"}`, "price is required"},
		{"negative price", `{"name":"Widget","price":-1}`, "price must be non-negative"},
		{"malformed body", `{"name":`, "invalid request body"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, _ := newTestHandler(t, nil)
			req := httptest.NewRequest(http.MethodPost, "/api/items", strings.NewReader(tt.body))
			w := httptest.NewRecorder()

			h.handleCreate(w, req)

			if w.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want %d", w.Code, http.StatusBadRequest)
			}
			var p server.Problem
			if err := json.NewDecoder(w.Body).Decode(&p); err != nil {
				t.Fatalf("decode problem: %v", err)
			}
			if p.Detail != tt.wantDetail {
				t.Errorf("detail = %q, want %q", p.Detail, tt.wantDetail)
			}

			items, err := h.store.Load()
			if err != nil {
				t.Fatal(err)
			}
			if len(items) != 0 {
				t.Errorf("collection has %d items after rejected create, want 0", len(items))
			}
		})
	}
}

func TestHandleCreate_ZeroPriceAllowed(t *testing.T) {
	h, _ := newTestHandler(t, nil)
	req := httptest.NewRequest(http.MethodPost, "/api/items",
		strings.NewReader(`{"name":"Freebie","price":0}`))
	w := httptest.NewRecorder()

	h.handleCreate(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, want %d for an explicit zero price", w.Code, http.StatusCreated)
	}
	var item models.Item
	if err := json.NewDecoder(w.Body).Decode(&item); err != nil {
		t.Fatal(err)
	}
	if item.Price == nil || *item.Price != 0 {
		t.Errorf("price = %v, want explicit 0", item.Price)
	}
}
