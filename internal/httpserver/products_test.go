package httpserver

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"storefront/internal/domain"
)

func TestListProducts_Public(t *testing.T) {
	svc := &stubProductSvc{products: []domain.Product{
		{ID: 3, Name: "Keyboard", PriceCents: 4500, Available: true},
		{ID: 5, Name: "Monitor", PriceCents: 12000, Available: true},
	}}
	router := newTestRouter(t, Deps{ProductSvc: svc})

	req := httptest.NewRequest(http.MethodGet, "/api/products", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var out []map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(out) != 2 {
		t.Fatalf("expected 2 products, got %d", len(out))
	}
}

func TestListProducts_EmptyIsArray(t *testing.T) {
	router := newTestRouter(t, Deps{ProductSvc: &stubProductSvc{}})

	req := httptest.NewRequest(http.MethodGet, "/api/products", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if body := strings.TrimSpace(rec.Body.String()); body != "[]" {
		t.Fatalf("expected empty array body, got %q", body)
	}
}

func TestGetProduct_NotFound(t *testing.T) {
	router := newTestRouter(t, Deps{ProductSvc: &stubProductSvc{getErr: domain.ErrNotFound}})

	req := httptest.NewRequest(http.MethodGet, "/api/products/99", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestGetProduct_BadID(t *testing.T) {
	router := newTestRouter(t, Deps{})

	req := httptest.NewRequest(http.MethodGet, "/api/products/abc", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestCreateProduct_AdminOnly(t *testing.T) {
	svc := &stubProductSvc{created: &domain.Product{ID: 10, Name: "Webcam", SerialCode: "ELEC-004"}}
	router := newTestRouter(t, Deps{ProductSvc: svc})
	body := `{"name":"Webcam","price":4500,"category":"electronics","stock":5}`

	req := httptest.NewRequest(http.MethodPost, "/api/admin/products", strings.NewReader(body))
	req.Header.Set("Authorization", "Bearer user-token")
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for non-admin, got %d", rec.Code)
	}

	req = httptest.NewRequest(http.MethodPost, "/api/admin/products", strings.NewReader(body))
	req.Header.Set("Authorization", "Bearer admin-token")
	req.Header.Set("Content-Type", "application/json")
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201 for admin, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestCreateProduct_InvalidInput(t *testing.T) {
	svc := &stubProductSvc{createErr: domain.ErrInvalidInput}
	router := newTestRouter(t, Deps{ProductSvc: svc})

	req := httptest.NewRequest(http.MethodPost, "/api/admin/products", strings.NewReader(`{"name":"","price":-1}`))
	req.Header.Set("Authorization", "Bearer admin-token")
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestUpdateProduct_Admin(t *testing.T) {
	svc := &stubProductSvc{updated: &domain.Product{ID: 3, Name: "Keyboard v2", PriceCents: 4900}}
	router := newTestRouter(t, Deps{ProductSvc: svc})

	req := httptest.NewRequest(http.MethodPut, "/api/admin/products/3", strings.NewReader(`{"name":"Keyboard v2","price":4900}`))
	req.Header.Set("Authorization", "Bearer admin-token")
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestDeleteProduct_Admin(t *testing.T) {
	router := newTestRouter(t, Deps{ProductSvc: &stubProductSvc{}})

	req := httptest.NewRequest(http.MethodDelete, "/api/admin/products/3", nil)
	req.Header.Set("Authorization", "Bearer admin-token")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestAdminProducts_RequiresAuth(t *testing.T) {
	router := newTestRouter(t, Deps{})

	req := httptest.NewRequest(http.MethodGet, "/api/admin/products", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}
