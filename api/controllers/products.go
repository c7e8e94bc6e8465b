package controllers

import (
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/sarisaristore/sarisari-backend/api/responses"
	"github.com/sarisaristore/sarisari-backend/api/validators"
	"github.com/sarisaristore/sarisari-backend/internal/inventory"
	productsvc "github.com/sarisaristore/sarisari-backend/internal/products"
	"github.com/sarisaristore/sarisari-backend/pkg/enums"
	pkgerrors "github.com/sarisaristore/sarisari-backend/pkg/errors"
	"github.com/sarisaristore/sarisari-backend/pkg/logger"
)

// AdminListProducts returns the filtered inventory listing with the
// dashboard analytics block. stock_status narrows to products whose
// aggregate quantity classifies as safe, low or critical.
func AdminListProducts(svc productsvc.Service, analytics inventory.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		input := productsvc.ListProductsInput{
			Search: strings.TrimSpace(r.URL.Query().Get("search")),
		}
		if raw := strings.TrimSpace(r.URL.Query().Get("status")); raw != "" {
			status, err := enums.ParseProductStatus(raw)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid status filter"))
				return
			}
			input.Status = &status
		}

		hasMatches := true
		if raw := strings.TrimSpace(r.URL.Query().Get("stock_status")); raw != "" {
			stockStatus, err := enums.ParseStockStatus(raw)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid stock_status filter"))
				return
			}
			ids, err := analytics.FilterByStatus(r.Context(), stockStatus)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, err)
				return
			}
			input.IDs = ids
			hasMatches = len(ids) > 0
		}

		products := []productsvc.ProductDTO{}
		if hasMatches {
			listing, err := svc.ListProducts(r.Context(), input)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, err)
				return
			}
			products = listing.Products
		}

		counts, err := analytics.Analytics(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]any{
			"products":  products,
			"analytics": counts,
		})
	}
}

// AdminCreateProduct handles product creation from the admin panel.
func AdminCreateProduct(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload productRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input, err := payload.toCreateInput()
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		created, err := svc.CreateProduct(r.Context(), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, created)
	}
}

// AdminGetProduct returns one product with variants and its stock status.
func AdminGetProduct(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		productID, err := validators.ParseURLUUID(r, "productId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		dto, err := svc.GetProduct(r.Context(), productID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, dto)
	}
}

// AdminUpdateProduct mutates a product; variant rows upsert by id.
func AdminUpdateProduct(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		productID, err := validators.ParseURLUUID(r, "productId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload updateProductRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input, err := payload.toUpdateInput()
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		updated, err := svc.UpdateProduct(r.Context(), productID, input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, updated)
	}
}

type variantRequest struct {
	ID        *uuid.UUID `json:"id,omitempty"`
	Name      string     `json:"name" validate:"required"`
	BasePrice string     `json:"base_price" validate:"required"`
	CostEach  string     `json:"cost_each" validate:"required"`
}

type productRequest struct {
	Name        string           `json:"name" validate:"required"`
	SKU         *string          `json:"sku,omitempty"`
	Description *string          `json:"description,omitempty"`
	Images      []string         `json:"images,omitempty" validate:"omitempty,dive,required"`
	Status      string           `json:"status,omitempty" validate:"omitempty,oneof=active inactive"`
	Variants    []variantRequest `json:"variants,omitempty" validate:"omitempty,dive"`
}

type updateProductRequest struct {
	Name        *string           `json:"name,omitempty" validate:"omitempty,min=1"`
	SKU         *string           `json:"sku,omitempty"`
	Description *string           `json:"description,omitempty"`
	Images      *[]string         `json:"images,omitempty" validate:"omitempty,dive,required"`
	Status      *string           `json:"status,omitempty" validate:"omitempty,oneof=active inactive"`
	Variants    *[]variantRequest `json:"variants,omitempty" validate:"omitempty,dive"`
}

func (p productRequest) toCreateInput() (productsvc.CreateProductInput, error) {
	input := productsvc.CreateProductInput{
		Name:        p.Name,
		SKU:         p.SKU,
		Description: p.Description,
		Images:      p.Images,
	}
	if p.Status != "" {
		status, err := enums.ParseProductStatus(p.Status)
		if err != nil {
			return input, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid status")
		}
		input.Status = status
	}

	variants, err := toVariantInputs(p.Variants)
	if err != nil {
		return input, err
	}
	input.Variants = variants
	return input, nil
}

func (p updateProductRequest) toUpdateInput() (productsvc.UpdateProductInput, error) {
	input := productsvc.UpdateProductInput{
		Name:        p.Name,
		SKU:         p.SKU,
		Description: p.Description,
		Images:      p.Images,
	}
	if p.Status != nil {
		status, err := enums.ParseProductStatus(*p.Status)
		if err != nil {
			return input, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid status")
		}
		input.Status = &status
	}
	if p.Variants != nil {
		variants, err := toVariantInputs(*p.Variants)
		if err != nil {
			return input, err
		}
		input.Variants = &variants
	}
	return input, nil
}

func toVariantInputs(requests []variantRequest) ([]productsvc.VariantInput, error) {
	variants := make([]productsvc.VariantInput, 0, len(requests))
	for _, v := range requests {
		basePrice, err := decimal.NewFromString(v.BasePrice)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid base_price")
		}
		costEach, err := decimal.NewFromString(v.CostEach)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid cost_each")
		}
		variants = append(variants, productsvc.VariantInput{
			ID:        v.ID,
			Name:      v.Name,
			BasePrice: basePrice,
			CostEach:  costEach,
		})
	}
	return variants, nil
}
