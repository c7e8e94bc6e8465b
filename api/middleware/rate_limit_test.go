package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
)

type fakeRateLimiter struct {
	counts map[string]int64
}

func newFakeRateLimiter() *fakeRateLimiter {
	return &fakeRateLimiter{counts: map[string]int64{}}
}

func (f *fakeRateLimiter) FixedWindowAllow(_ context.Context, scope string, limit int64, _ time.Duration) (bool, int64, error) {
	f.counts[scope]++
	return f.counts[scope] <= limit, f.counts[scope], nil
}

func cartWriteRequest(actorID uuid.UUID) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/cart/items", strings.NewReader(`{}`))
	return req.WithContext(WithActor(req.Context(), actorID, "customer"))
}

func TestRateLimitBlocksAboveLimit(t *testing.T) {
	limiter := newFakeRateLimiter()
	handler := RateLimit(NewRateLimitPolicy("cart_writes", time.Minute, 2), limiter, nil)(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusCreated)
		}))

	actorID := uuid.New()
	for i := 0; i < 2; i++ {
		resp := httptest.NewRecorder()
		handler.ServeHTTP(resp, cartWriteRequest(actorID))
		if resp.Code != http.StatusCreated {
			t.Fatalf("request %d: expected 201 got %d", i+1, resp.Code)
		}
	}

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, cartWriteRequest(actorID))
	if resp.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429 got %d: %s", resp.Code, resp.Body.String())
	}
	if !strings.Contains(resp.Body.String(), "RATE_LIMIT_EXCEEDED") {
		t.Fatalf("expected rate limit error code, got %s", resp.Body.String())
	}
}

func TestRateLimitScopesPerActor(t *testing.T) {
	limiter := newFakeRateLimiter()
	handler := RateLimit(NewRateLimitPolicy("cart_writes", time.Minute, 1), limiter, nil)(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusCreated)
		}))

	first := httptest.NewRecorder()
	handler.ServeHTTP(first, cartWriteRequest(uuid.New()))
	second := httptest.NewRecorder()
	handler.ServeHTTP(second, cartWriteRequest(uuid.New()))

	if first.Code != http.StatusCreated || second.Code != http.StatusCreated {
		t.Fatalf("distinct actors must not share a window: %d, %d", first.Code, second.Code)
	}
}

func TestRateLimitDisabledPolicyPassesThrough(t *testing.T) {
	limiter := newFakeRateLimiter()
	handler := RateLimit(NewRateLimitPolicy("cart_writes", 0, 0), limiter, nil)(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusCreated)
		}))

	actorID := uuid.New()
	for i := 0; i < 5; i++ {
		resp := httptest.NewRecorder()
		handler.ServeHTTP(resp, cartWriteRequest(actorID))
		if resp.Code != http.StatusCreated {
			t.Fatalf("disabled policy must pass through, got %d", resp.Code)
		}
	}
	if len(limiter.counts) != 0 {
		t.Fatalf("disabled policy must not touch the store: %v", limiter.counts)
	}
}

func TestRateLimitNilStorePassesThrough(t *testing.T) {
	handler := RateLimit(NewRateLimitPolicy("cart_writes", time.Minute, 1), nil, nil)(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusCreated)
		}))

	actorID := uuid.New()
	for i := 0; i < 3; i++ {
		resp := httptest.NewRecorder()
		handler.ServeHTTP(resp, cartWriteRequest(actorID))
		if resp.Code != http.StatusCreated {
			t.Fatalf("nil store must pass through, got %d", resp.Code)
		}
	}
}
