package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"

	stocksvc "github.com/sarisaristore/sarisari-backend/internal/stock"
	pkgerrors "github.com/sarisaristore/sarisari-backend/pkg/errors"
)

type stubStockService struct {
	batch   *stocksvc.BatchDTO
	listing *stocksvc.BatchListDTO
	total   int
	err     error
}

func (s stubStockService) AddBatch(_ context.Context, _ uuid.UUID, _ stocksvc.AddBatchInput) (*stocksvc.BatchDTO, error) {
	return s.batch, s.err
}

func (s stubStockService) RemoveBatch(_ context.Context, _ uuid.UUID) error {
	return s.err
}

func (s stubStockService) ListBatches(_ context.Context, _ uuid.UUID) (*stocksvc.BatchListDTO, error) {
	return s.listing, s.err
}

func (s stubStockService) TotalQuantity(_ context.Context, _ uuid.UUID) (int, error) {
	return s.total, s.err
}

func TestAdminAddStockCreated(t *testing.T) {
	batch := &stocksvc.BatchDTO{ID: uuid.New(), Quantity: 5, Price: "45.00"}
	handler := AdminAddStock(stubStockService{batch: batch}, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/admin/products/x/stocks", strings.NewReader(`{"quantity":5,"price":"45.00"}`))
	req = withURLParam(req, "productId", uuid.NewString())

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d: %s", resp.Code, resp.Body.String())
	}

	var envelope struct {
		Data stocksvc.BatchDTO `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Data.Price != "45.00" {
		t.Fatalf("unexpected price: %s", envelope.Data.Price)
	}
}

func TestAdminAddStockRejectsBadPrice(t *testing.T) {
	handler := AdminAddStock(stubStockService{}, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/admin/products/x/stocks", strings.NewReader(`{"quantity":5,"price":"forty"}`))
	req = withURLParam(req, "productId", uuid.NewString())

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}

func TestAdminDeleteStockNotFound(t *testing.T) {
	handler := AdminDeleteStock(stubStockService{err: pkgerrors.New(pkgerrors.CodeNotFound, "stock batch not found")}, nil)

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/admin/stocks/x", nil)
	req = withURLParam(req, "stockId", uuid.NewString())

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404 got %d", resp.Code)
	}
}

func TestAdminDeleteStockInvalidID(t *testing.T) {
	handler := AdminDeleteStock(stubStockService{}, nil)

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/admin/stocks/nope", nil)
	req = withURLParam(req, "stockId", "nope")

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}
