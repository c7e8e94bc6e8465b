package product

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/sarisaristore/sarisari-backend/internal/inventory"
	"github.com/sarisaristore/sarisari-backend/pkg/db"
	"github.com/sarisaristore/sarisari-backend/pkg/db/models"
	"github.com/sarisaristore/sarisari-backend/pkg/enums"
	pkgerrors "github.com/sarisaristore/sarisari-backend/pkg/errors"
	"github.com/sarisaristore/sarisari-backend/pkg/pagination"
)

// Service exposes admin catalog management and the storefront listing.
type Service interface {
	CreateProduct(ctx context.Context, input CreateProductInput) (*ProductDTO, error)
	UpdateProduct(ctx context.Context, productID uuid.UUID, input UpdateProductInput) (*ProductDTO, error)
	GetProduct(ctx context.Context, productID uuid.UUID) (*ProductDTO, error)
	ListProducts(ctx context.Context, input ListProductsInput) (*ProductListDTO, error)
	ListStorefront(ctx context.Context, params pagination.Params) (*StorefrontListDTO, error)
}

// VariantInput is one variant row in a create or update payload. A nil ID
// creates a new row; a set ID updates the matching row in place.
type VariantInput struct {
	ID        *uuid.UUID
	Name      string
	BasePrice decimal.Decimal
	CostEach  decimal.Decimal
}

// CreateProductInput holds the validated payload to create a product.
type CreateProductInput struct {
	Name        string
	SKU         *string
	Description *string
	Images      []string
	Status      enums.ProductStatus
	Variants    []VariantInput
}

// UpdateProductInput holds optional mutation values for a product. Nil
// fields are left untouched; a non-nil Variants slice replaces the variant
// set, upserting by id.
type UpdateProductInput struct {
	Name        *string
	SKU         *string
	Description *string
	Images      *[]string
	Status      *enums.ProductStatus
	Variants    *[]VariantInput
}

// ListProductsInput narrows the admin inventory listing. IDs, when set,
// restricts the listing to those products (the stock-status filter resolves
// to an id set first).
type ListProductsInput struct {
	Search string
	Status *enums.ProductStatus
	IDs    []uuid.UUID
}

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type stockReader interface {
	TotalQuantity(ctx context.Context, productID uuid.UUID) (int, error)
	TotalsByProduct(ctx context.Context, productIDs []uuid.UUID) (map[uuid.UUID]int, error)
	NewestPricesByProduct(ctx context.Context, productIDs []uuid.UUID) (map[uuid.UUID]decimal.Decimal, error)
}

// service implements the product service.
type service struct {
	repo  *Repository
	tx    txRunner
	stock stockReader
}

// NewService constructs a product service instance.
func NewService(repo *Repository, tx txRunner, stock stockReader) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("product repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	if stock == nil {
		return nil, fmt.Errorf("stock reader required")
	}
	return &service{repo: repo, tx: tx, stock: stock}, nil
}

// CreateProduct creates the product with its variants.
func (s *service) CreateProduct(ctx context.Context, input CreateProductInput) (*ProductDTO, error) {
	if err := validateVariantInputs(input.Variants); err != nil {
		return nil, err
	}

	status := input.Status
	if status == "" {
		status = enums.ProductStatusActive
	}
	if !status.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid product status")
	}

	productModel := &models.Product{
		Name:        input.Name,
		SKU:         input.SKU,
		Description: input.Description,
		Images:      input.Images,
		Status:      status,
	}
	for _, v := range input.Variants {
		productModel.Variants = append(productModel.Variants, models.Variant{
			Name:      v.Name,
			BasePrice: v.BasePrice,
			CostEach:  v.CostEach,
		})
	}

	if err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		if _, err := s.repo.WithTx(tx).CreateProduct(ctx, productModel); err != nil {
			if db.IsUniqueViolation(err, "idx_products_sku") {
				return pkgerrors.New(pkgerrors.CodeConflict, "sku already in use")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: insert product")
		}
		return nil
	}); err != nil {
		if pkgerrors.As(err) != nil {
			return nil, err
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create product")
	}

	return s.loadProductDTO(ctx, productModel.ID)
}

// UpdateProduct applies the mutation and upserts variant rows by id.
func (s *service) UpdateProduct(ctx context.Context, productID uuid.UUID, input UpdateProductInput) (*ProductDTO, error) {
	if input.Variants != nil {
		if err := validateVariantInputs(*input.Variants); err != nil {
			return nil, err
		}
	}
	if input.Status != nil && !input.Status.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid product status")
	}

	existing, err := s.repo.FindByID(ctx, productID)
	if err != nil {
		if db.IsNotFound(err) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load product")
	}

	if input.Name != nil {
		existing.Name = *input.Name
	}
	if input.SKU != nil {
		existing.SKU = input.SKU
	}
	if input.Description != nil {
		existing.Description = input.Description
	}
	if input.Images != nil {
		existing.Images = *input.Images
	}
	if input.Status != nil {
		existing.Status = *input.Status
	}
	// Save below writes product columns only; variant rows are written
	// explicitly inside the transaction
	variants := existing.Variants
	existing.Variants = nil

	if err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		txRepo := s.repo.WithTx(tx)

		if _, err := txRepo.UpdateProduct(ctx, existing); err != nil {
			if db.IsUniqueViolation(err, "idx_products_sku") {
				return pkgerrors.New(pkgerrors.CodeConflict, "sku already in use")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: update product")
		}

		if input.Variants == nil {
			return nil
		}
		return s.replaceVariants(ctx, txRepo, productID, variants, *input.Variants)
	}); err != nil {
		if pkgerrors.As(err) != nil {
			return nil, err
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update product")
	}

	return s.loadProductDTO(ctx, productID)
}

// replaceVariants upserts the payload rows by id and drops rows the payload
// no longer mentions.
func (s *service) replaceVariants(ctx context.Context, txRepo *Repository, productID uuid.UUID, current []models.Variant, inputs []VariantInput) error {
	byID := make(map[uuid.UUID]*models.Variant, len(current))
	for i := range current {
		byID[current[i].ID] = &current[i]
	}

	keep := make([]uuid.UUID, 0, len(inputs))
	for _, v := range inputs {
		if v.ID != nil {
			existing, ok := byID[*v.ID]
			if !ok {
				return pkgerrors.New(pkgerrors.CodeNotFound, "variant not found on product")
			}
			existing.Name = v.Name
			existing.BasePrice = v.BasePrice
			existing.CostEach = v.CostEach
			if err := txRepo.UpsertVariant(ctx, existing); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: update variant")
			}
			keep = append(keep, existing.ID)
			continue
		}

		created := &models.Variant{
			ProductID: productID,
			Name:      v.Name,
			BasePrice: v.BasePrice,
			CostEach:  v.CostEach,
		}
		if err := txRepo.UpsertVariant(ctx, created); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: insert variant")
		}
		keep = append(keep, created.ID)
	}

	if err := txRepo.DeleteVariantsExcept(ctx, productID, keep); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: prune variants")
	}
	return nil
}

// GetProduct loads one product with variants and its stock aggregate.
func (s *service) GetProduct(ctx context.Context, productID uuid.UUID) (*ProductDTO, error) {
	return s.loadProductDTO(ctx, productID)
}

// ListProducts returns the filtered admin inventory listing.
func (s *service) ListProducts(ctx context.Context, input ListProductsInput) (*ProductListDTO, error) {
	if input.Status != nil && !input.Status.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid product status")
	}

	productRows, err := s.repo.ListAdmin(ctx, ListFilter{Search: input.Search, Status: input.Status, IDs: input.IDs})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: list products")
	}

	ids := make([]uuid.UUID, 0, len(productRows))
	for i := range productRows {
		ids = append(ids, productRows[i].ID)
	}
	totals, err := s.stock.TotalsByProduct(ctx, ids)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: aggregate stock totals")
	}

	out := &ProductListDTO{Products: make([]ProductDTO, 0, len(productRows))}
	for i := range productRows {
		total := totals[productRows[i].ID]
		out.Products = append(out.Products, *NewProductDTO(&productRows[i], total, inventory.Classify(total)))
	}
	return out, nil
}

// ListStorefront returns one customer-facing page: active products that
// have stock rows, priced from the newest batch.
func (s *service) ListStorefront(ctx context.Context, params pagination.Params) (*StorefrontListDTO, error) {
	cursor, err := pagination.ParseCursor(params.Cursor)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid cursor")
	}
	limit := pagination.NormalizeLimit(params.Limit)

	productRows, err := s.repo.ListStorefront(ctx, limit+1, cursor)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: list storefront products")
	}

	var nextCursor *string
	if len(productRows) > limit {
		productRows = productRows[:limit]
		last := productRows[len(productRows)-1]
		encoded := pagination.EncodeCursor(pagination.Cursor{CreatedAt: last.CreatedAt, ID: last.ID})
		nextCursor = &encoded
	}

	ids := make([]uuid.UUID, 0, len(productRows))
	for i := range productRows {
		ids = append(ids, productRows[i].ID)
	}
	totals, err := s.stock.TotalsByProduct(ctx, ids)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: aggregate stock totals")
	}
	prices, err := s.stock.NewestPricesByProduct(ctx, ids)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load batch prices")
	}

	out := &StorefrontListDTO{
		Products:   make([]StorefrontProductDTO, 0, len(productRows)),
		NextCursor: nextCursor,
	}
	for i := range productRows {
		p := &productRows[i]
		price, ok := prices[p.ID]
		if !ok {
			// listing already excludes batch-less products; a batch deleted
			// between the two queries leaves the product unpriced, skip it
			continue
		}
		total := totals[p.ID]
		out.Products = append(out.Products, StorefrontProductDTO{
			ID:            p.ID,
			Name:          p.Name,
			Description:   p.Description,
			Images:        append([]string{}, p.Images...),
			UnitPrice:     price.StringFixed(2),
			TotalQuantity: total,
			StockStatus:   inventory.Classify(total),
		})
	}
	return out, nil
}

func (s *service) loadProductDTO(ctx context.Context, productID uuid.UUID) (*ProductDTO, error) {
	productModel, err := s.repo.FindByID(ctx, productID)
	if err != nil {
		if db.IsNotFound(err) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load product")
	}

	total, err := s.stock.TotalQuantity(ctx, productID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: sum stock batches")
	}
	return NewProductDTO(productModel, total, inventory.Classify(total)), nil
}

func validateVariantInputs(variants []VariantInput) error {
	for _, v := range variants {
		if v.Name == "" {
			return pkgerrors.New(pkgerrors.CodeValidation, "variant name is required")
		}
		if v.BasePrice.IsNegative() || v.CostEach.IsNegative() {
			return pkgerrors.New(pkgerrors.CodeValidation, "variant prices cannot be negative")
		}
	}
	return nil
}
