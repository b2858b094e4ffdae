package routes

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	_ "github.com/danielgtaylor/huma/v2/formats/cbor"
	"github.com/fxamacker/cbor/v2"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	appmiddleware "github.com/hellospa/backend/internal/middleware"
	"github.com/hellospa/backend/internal/respond"
)

func newTestRouter() chi.Router {
	router := chi.NewRouter()
	router.Use(
		appmiddleware.RequestID(),
		chimiddleware.RealIP,
		appmiddleware.RequestLogger(),
		respond.Recoverer(),
	)
	cfg := huma.DefaultConfig("RoutesTest", "test")
	cfg.Transformers = nil
	api := humachi.New(router, cfg)
	Register(api)
	return router
}

func TestHelloJSON(t *testing.T) {
	router := newTestRouter()

	req := httptest.NewRequest(http.MethodGet, "/api/hello", nil)
	req.Header.Set(chimiddleware.RequestIDHeader, "hello-get-json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	if ct := resp.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("expected application/json, got %s", ct)
	}

	var greeting GreetingData
	if err := json.Unmarshal(resp.Body.Bytes(), &greeting); err != nil {
		t.Fatalf("json unmarshal: %v", err)
	}
	if greeting.Message != "Hello World from Google Cloud Run!" {
		t.Errorf("unexpected message: %s", greeting.Message)
	}
	if greeting.Backend != "Go + Huma" {
		t.Errorf("unexpected backend: %s", greeting.Backend)
	}
	if greeting.Frontend != "React + TypeScript + Vite" {
		t.Errorf("unexpected frontend: %s", greeting.Frontend)
	}
}

func TestHelloCBOR(t *testing.T) {
	router := newTestRouter()

	req := httptest.NewRequest(http.MethodGet, "/api/hello", nil)
	req.Header.Set("Accept", "application/cbor")
	req.Header.Set(chimiddleware.RequestIDHeader, "hello-get-cbor")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	if ct := resp.Header().Get("Content-Type"); ct != "application/cbor" {
		t.Errorf("expected application/cbor, got %s", ct)
	}

	var greeting GreetingData
	if err := cbor.Unmarshal(resp.Body.Bytes(), &greeting); err != nil {
		t.Fatalf("cbor unmarshal: %v", err)
	}
	if greeting.Message != "Hello World from Google Cloud Run!" {
		t.Errorf("unexpected message: %s", greeting.Message)
	}
}

func TestHelloIgnoresRequestInputs(t *testing.T) {
	router := newTestRouter()

	req := httptest.NewRequest(http.MethodGet, "/api/hello?name=ignored", nil)
	req.Header.Set("X-Custom", "also-ignored")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}

	var greeting GreetingData
	if err := json.Unmarshal(resp.Body.Bytes(), &greeting); err != nil {
		t.Fatalf("json unmarshal: %v", err)
	}
	if greeting.Message != "Hello World from Google Cloud Run!" {
		t.Errorf("inputs must not influence the payload, got %s", greeting.Message)
	}
}

func TestHealthStatus(t *testing.T) {
	router := newTestRouter()

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	req.Header.Set(chimiddleware.RequestIDHeader, "health-get")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}

	var health HealthData
	if err := json.Unmarshal(resp.Body.Bytes(), &health); err != nil {
		t.Fatalf("json unmarshal: %v", err)
	}
	if health.Status != "healthy" {
		t.Fatalf("expected 'healthy', got %s", health.Status)
	}
}
