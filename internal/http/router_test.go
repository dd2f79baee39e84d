package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestHealth(t *testing.T) {
	r := setupRouter(&stubScorer{}, CORSOptions{})

	rec := performRequest(r, http.MethodGet, "/health", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body["status"] != "healthy" || body["timestamp"] == "" {
		t.Fatalf("unexpected body: %v", body)
	}
}

func TestNotFound(t *testing.T) {
	r := setupRouter(&stubScorer{}, CORSOptions{})

	rec := performRequest(r, http.MethodGet, "/api/v1/nope", nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", rec.Code)
	}
	var body map[string]string
	_ = json.Unmarshal(rec.Body.Bytes(), &body)
	if body["message"] != "Not found" || body["path"] != "/api/v1/nope" {
		t.Fatalf("unexpected body: %v", body)
	}
}

func TestMetricsEndpoint(t *testing.T) {
	r := setupRouter(newPipeline(t), CORSOptions{})
	performRequest(r, http.MethodPost, "/api/v1/roles/calculate", map[string]any{"answers": answersOf(60, 2)})

	rec := performRequest(r, http.MethodGet, "/metrics", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "role_scoring_requests_total") {
		t.Fatalf("expected scoring counter in metrics output")
	}
}

func corsRequest(r http.Handler, method, origin string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, "/api/v1/roles/calculate", strings.NewReader(`{"answers":[]}`))
	req.Header.Set("Content-Type", "application/json")
	if origin != "" {
		req.Header.Set("Origin", origin)
	}
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestCORSAllowedOriginPreflight(t *testing.T) {
	r := setupRouter(&stubScorer{}, CORSOptions{AllowedOrigins: []string{"https://poehali.dev"}})

	rec := corsRequest(r, http.MethodOptions, "https://poehali.dev")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	if rec.Header().Get("Access-Control-Allow-Origin") != "https://poehali.dev" {
		t.Fatalf("missing allow-origin header")
	}
	if rec.Header().Get("Access-Control-Allow-Credentials") != "true" {
		t.Fatalf("missing allow-credentials header")
	}
	if !strings.Contains(rec.Header().Get("Access-Control-Allow-Methods"), "POST") {
		t.Fatalf("missing allow-methods header")
	}
}

func TestCORSDisallowedOrigin(t *testing.T) {
	r := setupRouter(&stubScorer{}, CORSOptions{AllowedOrigins: []string{"https://poehali.dev"}})

	rec := corsRequest(r, http.MethodPost, "https://evil.example")
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected status 403, got %d", rec.Code)
	}
	if rec.Header().Get("Access-Control-Allow-Origin") != "" {
		t.Fatalf("unexpected allow-origin header")
	}
}

func TestCORSNoOriginPasses(t *testing.T) {
	r := setupRouter(newPipeline(t), CORSOptions{})

	rec := corsRequest(r, http.MethodPost, "")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected request to reach handler and fail validation, got %d", rec.Code)
	}
}

func TestCORSAllowAllInDevelopment(t *testing.T) {
	r := setupRouter(&stubScorer{}, CORSOptions{AllowAll: true})

	rec := corsRequest(r, http.MethodOptions, "http://anything.local")
	if rec.Code != http.StatusOK || rec.Header().Get("Access-Control-Allow-Origin") != "http://anything.local" {
		t.Fatalf("expected any origin to be allowed, got %d", rec.Code)
	}
}
