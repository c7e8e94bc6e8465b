package stock

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/sarisaristore/sarisari-backend/pkg/db"
	"github.com/sarisaristore/sarisari-backend/pkg/db/models"
	pkgerrors "github.com/sarisaristore/sarisari-backend/pkg/errors"
)

// Service exposes the stock ledger operations used by the admin surface.
type Service interface {
	AddBatch(ctx context.Context, productID uuid.UUID, input AddBatchInput) (*BatchDTO, error)
	RemoveBatch(ctx context.Context, batchID uuid.UUID) error
	ListBatches(ctx context.Context, productID uuid.UUID) (*BatchListDTO, error)
	TotalQuantity(ctx context.Context, productID uuid.UUID) (int, error)
}

// AddBatchInput holds the validated payload to record a restock.
type AddBatchInput struct {
	Quantity int
	Price    decimal.Decimal
}

type batchRepo interface {
	InsertBatch(ctx context.Context, batch *models.StockBatch) (*models.StockBatch, error)
	DeleteBatch(ctx context.Context, id uuid.UUID) (int64, error)
	ListByProduct(ctx context.Context, productID uuid.UUID) ([]models.StockBatch, error)
	TotalQuantity(ctx context.Context, productID uuid.UUID) (int, error)
}

type productFinder interface {
	ProductExists(ctx context.Context, id uuid.UUID) (bool, error)
}

type service struct {
	repo     batchRepo
	products productFinder
}

// NewService constructs the stock ledger service.
func NewService(repo batchRepo, products productFinder) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("stock repository required")
	}
	if products == nil {
		return nil, fmt.Errorf("product finder required")
	}
	return &service{repo: repo, products: products}, nil
}

// AddBatch validates the restock payload and appends a batch row.
func (s *service) AddBatch(ctx context.Context, productID uuid.UUID, input AddBatchInput) (*BatchDTO, error) {
	if input.Quantity < 1 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantity must be at least 1")
	}
	if input.Price.LessThan(decimal.NewFromInt(1)) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "price must be at least 1")
	}

	if err := s.ensureProduct(ctx, productID); err != nil {
		return nil, err
	}

	batch := &models.StockBatch{
		ProductID: productID,
		Quantity:  input.Quantity,
		Price:     input.Price,
	}
	created, err := s.repo.InsertBatch(ctx, batch)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: insert stock batch")
	}
	return NewBatchDTO(created), nil
}

// RemoveBatch deletes one batch row. The losing side of a concurrent
// double-delete gets not found.
func (s *service) RemoveBatch(ctx context.Context, batchID uuid.UUID) error {
	rows, err := s.repo.DeleteBatch(ctx, batchID)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: delete stock batch")
	}
	if rows == 0 {
		return pkgerrors.New(pkgerrors.CodeNotFound, "stock batch not found")
	}
	return nil
}

// ListBatches returns the product's batches newest first plus the aggregate.
func (s *service) ListBatches(ctx context.Context, productID uuid.UUID) (*BatchListDTO, error) {
	if err := s.ensureProduct(ctx, productID); err != nil {
		return nil, err
	}

	batches, err := s.repo.ListByProduct(ctx, productID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: list stock batches")
	}

	out := &BatchListDTO{
		ProductID: productID,
		Batches:   make([]BatchDTO, 0, len(batches)),
	}
	for i := range batches {
		out.TotalQuantity += batches[i].Quantity
		out.Batches = append(out.Batches, *NewBatchDTO(&batches[i]))
	}
	return out, nil
}

// TotalQuantity recomputes the on-hand aggregate for the product.
func (s *service) TotalQuantity(ctx context.Context, productID uuid.UUID) (int, error) {
	total, err := s.repo.TotalQuantity(ctx, productID)
	if err != nil {
		return 0, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: sum stock batches")
	}
	return total, nil
}

func (s *service) ensureProduct(ctx context.Context, productID uuid.UUID) error {
	exists, err := s.products.ProductExists(ctx, productID)
	if err != nil {
		if db.IsNotFound(err) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load product")
	}
	if !exists {
		return pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
	}
	return nil
}
