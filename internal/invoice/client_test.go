package invoice

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestGenerate_RelaysDocument(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Fatalf("expected POST, got %s", r.Method)
		}
		if r.URL.Path != "/invoice/generate/42" {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/pdf")
		_, _ = w.Write([]byte("%PDF-1.4 fake"))
	}))
	defer upstream.Close()

	client := NewClient(upstream.URL, nil)
	doc, err := client.Generate(context.Background(), 42)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if doc.ContentType != "application/pdf" {
		t.Fatalf("unexpected content type %s", doc.ContentType)
	}
	if string(doc.Data) != "%PDF-1.4 fake" {
		t.Fatalf("unexpected body %q", doc.Data)
	}
}

func TestGenerate_UpstreamFailureSurfacesStatus(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"detail":"order not found"}`))
	}))
	defer upstream.Close()

	client := NewClient(upstream.URL, nil)
	_, err := client.Generate(context.Background(), 404)

	var upErr *UpstreamError
	if !errors.As(err, &upErr) {
		t.Fatalf("expected UpstreamError, got %v", err)
	}
	if upErr.StatusCode != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", upErr.StatusCode)
	}
	if upErr.ContentType != "application/json" {
		t.Fatalf("expected upstream content type preserved, got %q", upErr.ContentType)
	}
	if upErr.Body != `{"detail":"order not found"}` {
		t.Fatalf("expected upstream body preserved, got %q", upErr.Body)
	}
}

func TestGenerate_DefaultsContentType(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header()["Content-Type"] = nil
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("data"))
	}))
	defer upstream.Close()

	client := NewClient(upstream.URL, nil)
	doc, err := client.Generate(context.Background(), 1)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if doc.ContentType != "application/pdf" {
		t.Fatalf("expected pdf default, got %s", doc.ContentType)
	}
}

func TestGenerate_Unreachable(t *testing.T) {
	client := NewClient("http://127.0.0.1:1", nil)
	if _, err := client.Generate(context.Background(), 1); err == nil {
		t.Fatalf("expected error for unreachable upstream")
	}
}

func TestFetchOrder_RelaysJSON(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/invoice/orders/9" {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"order_id":9}`))
	}))
	defer upstream.Close()

	client := NewClient(upstream.URL, nil)
	body, err := client.FetchOrder(context.Background(), 9)
	if err != nil {
		t.Fatalf("fetch order: %v", err)
	}
	if string(body) != `{"order_id":9}` {
		t.Fatalf("unexpected body %q", body)
	}
}
