package product

import (
	"time"

	"github.com/google/uuid"

	"github.com/sarisaristore/sarisari-backend/pkg/db/models"
	"github.com/sarisaristore/sarisari-backend/pkg/enums"
)

// ProductDTO represents the admin product payload returned to clients.
type ProductDTO struct {
	ID            uuid.UUID         `json:"id"`
	Name          string            `json:"name"`
	SKU           *string           `json:"sku,omitempty"`
	Description   *string           `json:"description,omitempty"`
	Images        []string          `json:"images"`
	Status        string            `json:"status"`
	Variants      []VariantDTO      `json:"variants"`
	TotalQuantity int               `json:"total_quantity"`
	StockStatus   enums.StockStatus `json:"stock_status"`
	CreatedAt     time.Time         `json:"created_at"`
	UpdatedAt     time.Time         `json:"updated_at"`
}

// VariantDTO is one sellable configuration of a product.
type VariantDTO struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	BasePrice string    `json:"base_price"`
	CostEach  string    `json:"cost_each"`
	CreatedAt time.Time `json:"created_at"`
}

// ProductListDTO is the admin inventory listing payload.
type ProductListDTO struct {
	Products []ProductDTO `json:"products"`
}

// StorefrontProductDTO is the customer-facing listing entry. Price is the
// newest batch price; products without batches never reach this payload.
type StorefrontProductDTO struct {
	ID            uuid.UUID         `json:"id"`
	Name          string            `json:"name"`
	Description   *string           `json:"description,omitempty"`
	Images        []string          `json:"images"`
	UnitPrice     string            `json:"unit_price"`
	TotalQuantity int               `json:"total_quantity"`
	StockStatus   enums.StockStatus `json:"stock_status"`
}

// StorefrontListDTO carries one storefront page plus the next cursor.
type StorefrontListDTO struct {
	Products   []StorefrontProductDTO `json:"products"`
	NextCursor *string                `json:"next_cursor,omitempty"`
}

// NewProductDTO builds a DTO from the persisted model and its recomputed
// stock aggregate.
func NewProductDTO(product *models.Product, totalQuantity int, stockStatus enums.StockStatus) *ProductDTO {
	dto := &ProductDTO{
		ID:            product.ID,
		Name:          product.Name,
		SKU:           product.SKU,
		Description:   product.Description,
		Images:        append([]string{}, product.Images...),
		Status:        string(product.Status),
		Variants:      make([]VariantDTO, 0, len(product.Variants)),
		TotalQuantity: totalQuantity,
		StockStatus:   stockStatus,
		CreatedAt:     product.CreatedAt,
		UpdatedAt:     product.UpdatedAt,
	}
	for i := range product.Variants {
		dto.Variants = append(dto.Variants, NewVariantDTO(&product.Variants[i]))
	}
	return dto
}

// NewVariantDTO builds a DTO from the persisted variant row.
func NewVariantDTO(variant *models.Variant) VariantDTO {
	return VariantDTO{
		ID:        variant.ID,
		Name:      variant.Name,
		BasePrice: variant.BasePrice.StringFixed(2),
		CostEach:  variant.CostEach.StringFixed(2),
		CreatedAt: variant.CreatedAt,
	}
}
