package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestNormalizePath(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"/api/v1/accounts/01ABC123", "/api/v1/accounts/:id"},
		{"/api/v1/accounts/01ABC123/entries", "/api/v1/accounts/:id/entries"},
		{"/api/v1/transactions/01XYZ789", "/api/v1/transactions/:id"},
		{"/api/v1/entries/01DEF456", "/api/v1/entries/:id"},
		{"/api/v1/ledger/accounts/01ABC/reconciliation", "/api/v1/ledger/accounts/:id/reconciliation"},
		{"/api/v1/accounts/", "/api/v1/accounts/"},
		{"/api/v1/ledger/consistency", "/api/v1/ledger/consistency"},
		{"/health", "/health"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			if got := normalizePath(tt.path); got != tt.want {
				t.Fatalf("expected %s, got %s", tt.want, got)
			}
		})
	}
}

func TestMetricsMiddlewarePassesThrough(t *testing.T) {
	wrapped := Metrics(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))

	rec := httptest.NewRecorder()
	wrapped.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/accounts/", nil))

	if rec.Code != http.StatusTeapot {
		t.Fatalf("expected wrapped handler status, got %d", rec.Code)
	}
}
