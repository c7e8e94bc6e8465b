package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"

	checkoutsvc "github.com/sarisaristore/sarisari-backend/internal/checkout"
	pkgerrors "github.com/sarisaristore/sarisari-backend/pkg/errors"
)

type stubCheckoutService struct {
	quote *checkoutsvc.QuoteDTO
	err   error
}

func (s stubCheckoutService) Quote(_ context.Context, _ uuid.UUID) (*checkoutsvc.QuoteDTO, error) {
	return s.quote, s.err
}

func TestCheckoutQuoteSuccess(t *testing.T) {
	quote := &checkoutsvc.QuoteDTO{
		Lines:    []checkoutsvc.QuoteLineDTO{},
		Subtotal: "105.00",
		Tax:      "12.60",
		Total:    "117.60",
	}
	handler := CheckoutQuote(stubCheckoutService{quote: quote}, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/checkout/quote", nil)
	req = withCustomer(req)

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", resp.Code, resp.Body.String())
	}

	var envelope struct {
		Data checkoutsvc.QuoteDTO `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Data.Total != "117.60" {
		t.Fatalf("unexpected total: %s", envelope.Data.Total)
	}
}

func TestCheckoutQuoteNoStock(t *testing.T) {
	handler := CheckoutQuote(stubCheckoutService{err: pkgerrors.New(pkgerrors.CodeNoStock, "product has no stock on record")}, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/checkout/quote", nil)
	req = withCustomer(req)

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422 got %d", resp.Code)
	}
}

func TestCheckoutQuoteUnauthenticated(t *testing.T) {
	handler := CheckoutQuote(stubCheckoutService{}, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/checkout/quote", nil)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", resp.Code)
	}
}
