package controllers

import (
	"net/http"

	"github.com/sarisaristore/sarisari-backend/api/responses"
	checkoutsvc "github.com/sarisaristore/sarisari-backend/internal/checkout"
	pkgerrors "github.com/sarisaristore/sarisari-backend/pkg/errors"
	"github.com/sarisaristore/sarisari-backend/pkg/logger"
)

// CheckoutQuote prices the customer's current cart: subtotal, tax, total.
func CheckoutQuote(svc checkoutsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		customerID, ok := customerFromContext(r)
		if !ok {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "customer context missing"))
			return
		}
		quote, err := svc.Quote(r.Context(), customerID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, quote)
	}
}
