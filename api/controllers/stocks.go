package controllers

import (
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/sarisaristore/sarisari-backend/api/responses"
	"github.com/sarisaristore/sarisari-backend/api/validators"
	stocksvc "github.com/sarisaristore/sarisari-backend/internal/stock"
	pkgerrors "github.com/sarisaristore/sarisari-backend/pkg/errors"
	"github.com/sarisaristore/sarisari-backend/pkg/logger"
)

// AdminListStocks returns a product's batches newest first.
func AdminListStocks(svc stocksvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		productID, err := validators.ParseURLUUID(r, "productId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		listing, err := svc.ListBatches(r.Context(), productID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, listing)
	}
}

// AdminAddStock records a restock batch for the product.
func AdminAddStock(svc stocksvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		productID, err := validators.ParseURLUUID(r, "productId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload addStockRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		price, err := decimal.NewFromString(payload.Price)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid price"))
			return
		}

		batch, err := svc.AddBatch(r.Context(), productID, stocksvc.AddBatchInput{
			Quantity: payload.Quantity,
			Price:    price,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, batch)
	}
}

// AdminDeleteStock removes one batch; its quantity simply drops out of the
// product's aggregate.
func AdminDeleteStock(svc stocksvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		stockID, err := validators.ParseURLUUID(r, "stockId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.RemoveBatch(r.Context(), stockID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}

type addStockRequest struct {
	Quantity int    `json:"quantity" validate:"required,min=1"`
	Price    string `json:"price" validate:"required"`
}
