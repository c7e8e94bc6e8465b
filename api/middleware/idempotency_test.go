package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

type fakeIdempotencyStore struct {
	values map[string]string
}

func newFakeIdempotencyStore() *fakeIdempotencyStore {
	return &fakeIdempotencyStore{values: map[string]string{}}
}

func (f *fakeIdempotencyStore) Get(_ context.Context, key string) (string, error) {
	value, ok := f.values[key]
	if !ok {
		return "", redis.Nil
	}
	return value, nil
}

func (f *fakeIdempotencyStore) SetNX(_ context.Context, key string, value any, _ time.Duration) (bool, error) {
	if _, ok := f.values[key]; ok {
		return false, nil
	}
	f.values[key] = value.(string)
	return true, nil
}

func (f *fakeIdempotencyStore) IdempotencyKey(scope, id string) string {
	return "ss:idempotency:" + scope + ":" + id
}

func (f *fakeIdempotencyStore) Del(_ context.Context, keys ...string) error {
	for _, key := range keys {
		delete(f.values, key)
	}
	return nil
}

func quoteRequest(body string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/checkout/quote", strings.NewReader(body))
	req = req.WithContext(WithActor(req.Context(), uuid.New(), "customer"))
	return req
}

func TestIdempotencyRequiresKeyHeader(t *testing.T) {
	handler := Idempotency(newFakeIdempotencyStore(), time.Hour, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler should not run without a key")
	}))

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, quoteRequest(`{}`))

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}

func TestIdempotencyReplaysStoredResponse(t *testing.T) {
	store := newFakeIdempotencyStore()
	calls := 0
	handler := Idempotency(store, time.Hour, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"data":{"total":"117.60"}}`))
	}))

	customerID := uuid.New()
	makeRequest := func() *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/checkout/quote", strings.NewReader(`{}`))
		req = req.WithContext(WithActor(req.Context(), customerID, "customer"))
		req.Header.Set("Idempotency-Key", "quote-abc")
		resp := httptest.NewRecorder()
		handler.ServeHTTP(resp, req)
		return resp
	}

	first := makeRequest()
	second := makeRequest()

	if calls != 1 {
		t.Fatalf("expected one handler invocation, got %d", calls)
	}
	if first.Body.String() != second.Body.String() {
		t.Fatalf("replayed body differs: %q vs %q", first.Body.String(), second.Body.String())
	}
	if second.Code != http.StatusOK {
		t.Fatalf("expected 200 replay got %d", second.Code)
	}
	if ct := second.Header().Get("Content-Type"); ct != "application/json" {
		t.Fatalf("replay lost content type: %q", ct)
	}
}

func TestIdempotencyRejectsKeyReuseWithDifferentBody(t *testing.T) {
	store := newFakeIdempotencyStore()
	handler := Idempotency(store, time.Hour, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"data":{}}`))
	}))

	customerID := uuid.New()
	send := func(body string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/checkout/quote", strings.NewReader(body))
		req = req.WithContext(WithActor(req.Context(), customerID, "customer"))
		req.Header.Set("Idempotency-Key", "quote-abc")
		resp := httptest.NewRecorder()
		handler.ServeHTTP(resp, req)
		return resp
	}

	if resp := send(`{"a":1}`); resp.Code != http.StatusOK {
		t.Fatalf("first request: expected 200 got %d", resp.Code)
	}
	resp := send(`{"a":2}`)
	if resp.Code != http.StatusConflict {
		t.Fatalf("expected 409 got %d: %s", resp.Code, resp.Body.String())
	}
	if !strings.Contains(resp.Body.String(), "IDEMPOTENCY_KEY_REUSED") {
		t.Fatalf("expected idempotency error code, got %s", resp.Body.String())
	}
}

func TestIdempotencySkipsUnmatchedRoutes(t *testing.T) {
	store := newFakeIdempotencyStore()
	handler := Idempotency(store, time.Hour, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/cart", nil)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected passthrough 200 got %d", resp.Code)
	}
	if len(store.values) != 0 {
		t.Fatalf("unmatched route should not persist records: %v", store.values)
	}
}
