package inventory

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/appetiteclub/frontdesk/services/frontdesk/internal/record"
)

func newTestRouter(store record.Store) (chi.Router, *Manager) {
	m := NewManager(ManagerDeps{Store: store, Publisher: &MockPublisher{}}, nil)
	r := chi.NewRouter()
	NewHandler(m, nil).RegisterRoutes(r)
	return r, m
}

func TestNewHandler(t *testing.T) {
	h := NewHandler(nil, nil)
	if h == nil {
		t.Fatal("NewHandler() returned nil")
	}
	if h.logger == nil {
		t.Error("NewHandler() should set noop logger when nil")
	}
}

func TestHandlerCreateItem(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		expectedStatus int
	}{
		{
			name:           "validItem",
			body:           `{"name":"Flour","quantity":20,"unit":"kg","lowStockThreshold":5}`,
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "missingName",
			body:           `{"quantity":20,"unit":"kg"}`,
			expectedStatus: http.StatusUnprocessableEntity,
		},
		{
			name:           "invalidJSON",
			body:           `{"name":`,
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, _ := newTestRouter(NewMockStore())

			req := httptest.NewRequest(http.MethodPost, "/inventory", bytes.NewBufferString(tt.body))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			if w.Code != tt.expectedStatus {
				t.Errorf("CreateItem() status = %d, want %d, body %s", w.Code, tt.expectedStatus, w.Body.String())
			}
		})
	}
}

func TestHandlerGetItem(t *testing.T) {
	tests := []struct {
		name           string
		id             string
		expectedStatus int
	}{
		{name: "existingItem", id: "1", expectedStatus: http.StatusOK},
		{name: "itemNotFound", id: "99", expectedStatus: http.StatusNotFound},
		{name: "invalidID", id: "abc", expectedStatus: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, m := newTestRouter(NewMockStore())
			if _, err := m.Create(context.Background(), CreateInput{Name: "Salt", Unit: "kg", Quantity: 3}); err != nil {
				t.Fatalf("Create() error = %v", err)
			}

			req := httptest.NewRequest(http.MethodGet, "/inventory/"+tt.id, nil)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			if w.Code != tt.expectedStatus {
				t.Errorf("GetItem() status = %d, want %d", w.Code, tt.expectedStatus)
			}
		})
	}
}

func TestHandlerAdjustQuantity(t *testing.T) {
	router, m := newTestRouter(NewMockStore())
	item, err := m.Create(context.Background(), CreateInput{Name: "Mozzarella", Unit: "kg", Quantity: 5, LowStockThreshold: 5})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/inventory/1/adjust", bytes.NewBufferString(`{"delta":1}`))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("AdjustQuantity() status = %d, body %s", w.Code, w.Body.String())
	}

	var resp struct {
		Data Item `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Data.ID != item.ID || resp.Data.Quantity != 6 || resp.Data.Level != "medium" {
		t.Errorf("AdjustQuantity() data = %+v", resp.Data)
	}
}

func TestHandlerListItemsFilters(t *testing.T) {
	router, m := newTestRouter(NewMockStore())
	ctx := context.Background()
	for _, in := range []CreateInput{
		{Name: "Tomatoes", Unit: "kg", Quantity: 1, LowStockThreshold: 3},
		{Name: "Basil", Unit: "bunch", Quantity: 9, LowStockThreshold: 2},
	} {
		if _, err := m.Create(ctx, in); err != nil {
			t.Fatalf("Create() error = %v", err)
		}
	}

	tests := []struct {
		name      string
		query     string
		wantCount int
	}{
		{name: "all", query: "", wantCount: 2},
		{name: "lowOnly", query: "?filter=low", wantCount: 1},
		{name: "goodOnly", query: "?filter=good", wantCount: 1},
		{name: "search", query: "?q=bas", wantCount: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/inventory"+tt.query, nil)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			var resp struct {
				Data []Item `json:"data"`
			}
			if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
				t.Fatalf("decode response: %v", err)
			}
			if len(resp.Data) != tt.wantCount {
				t.Errorf("ListItems(%q) count = %d, want %d", tt.query, len(resp.Data), tt.wantCount)
			}
		})
	}
}

func TestHandlerStoreUnavailable(t *testing.T) {
	store := NewMockStore()
	store.FetchAllFunc = func(context.Context, string, []string) ([]record.Record, error) {
		return nil, record.Transport("fetch inventory", errors.New("connection refused"))
	}
	router, _ := newTestRouter(store)

	req := httptest.NewRequest(http.MethodGet, "/inventory/summary", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusServiceUnavailable {
		t.Errorf("GetSummary() status = %d, want %d", w.Code, http.StatusServiceUnavailable)
	}
}
