package controllers

import (
	"net/http"
	"strings"

	"github.com/sarisaristore/sarisari-backend/api/responses"
	"github.com/sarisaristore/sarisari-backend/api/validators"
	productsvc "github.com/sarisaristore/sarisari-backend/internal/products"
	"github.com/sarisaristore/sarisari-backend/pkg/logger"
	"github.com/sarisaristore/sarisari-backend/pkg/pagination"
)

// StorefrontListProducts returns the customer-facing catalog page: active
// products that have stock, priced from the newest batch.
func StorefrontListProducts(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit, err := validators.ParseQueryInt(r, "limit", 0, 1, pagination.MaxLimit)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		page, err := svc.ListStorefront(r.Context(), pagination.Params{
			Limit:  limit,
			Cursor: strings.TrimSpace(r.URL.Query().Get("cursor")),
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, page)
	}
}
