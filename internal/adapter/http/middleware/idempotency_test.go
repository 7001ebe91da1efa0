package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

type fakeIdempotencyStore struct {
	values map[string][]byte
}

func newFakeIdempotencyStore() *fakeIdempotencyStore {
	return &fakeIdempotencyStore{values: make(map[string][]byte)}
}

func (s *fakeIdempotencyStore) CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error) {
	if existing, ok := s.values[key]; ok {
		return true, existing, nil
	}
	if response != nil {
		s.values[key] = response
	} else {
		s.values[key] = []byte("processing")
	}
	return false, nil, nil
}

func (s *fakeIdempotencyStore) Update(ctx context.Context, key string, response []byte, ttl time.Duration) error {
	s.values[key] = response
	return nil
}

func TestIdempotencyMiddleware_ReplaysStoredResponse(t *testing.T) {
	store := newFakeIdempotencyStore()
	store.values["key-1"] = []byte(`{"transaction_id":"txn-1"}`)

	calls := 0
	wrapped := NewIdempotencyMiddleware(store).Wrap(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
	}))

	req := httptest.NewRequest(http.MethodPost, "/api/v1/transactions", strings.NewReader("{}"))
	req.Header.Set(IdempotencyKeyHeader, "key-1")
	rec := httptest.NewRecorder()

	wrapped.ServeHTTP(rec, req)

	if calls != 0 {
		t.Fatalf("expected handler to be skipped on replay, got %d calls", calls)
	}
	if rec.Header().Get("X-Idempotency-Replay") != "true" {
		t.Fatal("expected replay header")
	}
	if !strings.Contains(rec.Body.String(), "txn-1") {
		t.Fatalf("expected cached body, got %s", rec.Body.String())
	}
}

func TestIdempotencyMiddleware_StoresSuccessfulResponse(t *testing.T) {
	store := newFakeIdempotencyStore()

	wrapped := NewIdempotencyMiddleware(store).Wrap(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"transaction_id":"txn-1"}`))
	}))

	req := httptest.NewRequest(http.MethodPost, "/api/v1/transactions", strings.NewReader("{}"))
	req.Header.Set(IdempotencyKeyHeader, "key-1")
	rec := httptest.NewRecorder()

	wrapped.ServeHTTP(rec, req)

	if got := string(store.values["key-1"]); !strings.Contains(got, "txn-1") {
		t.Fatalf("expected response stored under the key, got %q", got)
	}
}

func TestIdempotencyMiddleware_SkipsFailedResponses(t *testing.T) {
	store := newFakeIdempotencyStore()

	wrapped := NewIdempotencyMiddleware(store).Wrap(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error":"unbalanced"}`))
	}))

	req := httptest.NewRequest(http.MethodPost, "/api/v1/transactions", strings.NewReader("{}"))
	req.Header.Set(IdempotencyKeyHeader, "key-1")
	rec := httptest.NewRecorder()

	wrapped.ServeHTTP(rec, req)

	if got := string(store.values["key-1"]); got != "processing" {
		t.Fatalf("expected placeholder to remain for failed request, got %q", got)
	}
}

func TestIdempotencyMiddleware_IgnoresReadsAndMissingKey(t *testing.T) {
	store := newFakeIdempotencyStore()

	calls := 0
	wrapped := NewIdempotencyMiddleware(store).Wrap(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
	}))

	getReq := httptest.NewRequest(http.MethodGet, "/api/v1/accounts", nil)
	getReq.Header.Set(IdempotencyKeyHeader, "key-1")
	wrapped.ServeHTTP(httptest.NewRecorder(), getReq)

	postReq := httptest.NewRequest(http.MethodPost, "/api/v1/transactions", strings.NewReader("{}"))
	wrapped.ServeHTTP(httptest.NewRecorder(), postReq)

	if calls != 2 {
		t.Fatalf("expected both requests to pass through, got %d", calls)
	}
	if len(store.values) != 0 {
		t.Fatalf("expected no keys stored, got %v", store.values)
	}
}
