package stock

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/sarisaristore/sarisari-backend/pkg/db/models"
)

// Repository wires together stock batch persistence helpers.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx returns a repository bound to the provided transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return &Repository{db: tx}
}

// InsertBatch appends a new batch row.
func (r *Repository) InsertBatch(ctx context.Context, batch *models.StockBatch) (*models.StockBatch, error) {
	if err := r.db.WithContext(ctx).Create(batch).Error; err != nil {
		return nil, err
	}
	return batch, nil
}

// DeleteBatch removes a batch by ID and reports how many rows went away.
// A concurrent double-delete sees zero rows affected, which callers surface
// as not found.
func (r *Repository) DeleteBatch(ctx context.Context, id uuid.UUID) (int64, error) {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.StockBatch{})
	if res.Error != nil {
		return 0, res.Error
	}
	return res.RowsAffected, nil
}

// FindBatch loads a single batch row.
func (r *Repository) FindBatch(ctx context.Context, id uuid.UUID) (*models.StockBatch, error) {
	var batch models.StockBatch
	if err := r.db.WithContext(ctx).First(&batch, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &batch, nil
}

// ListByProduct returns the product's batches newest first.
func (r *Repository) ListByProduct(ctx context.Context, productID uuid.UUID) ([]models.StockBatch, error) {
	var batches []models.StockBatch
	err := r.db.WithContext(ctx).
		Where("product_id = ?", productID).
		Order("created_at DESC, id DESC").
		Find(&batches).
		Error
	if err != nil {
		return nil, err
	}
	return batches, nil
}

// NewestBatch returns the most recently created batch for the product, or
// gorm.ErrRecordNotFound when the product has no batches.
func (r *Repository) NewestBatch(ctx context.Context, productID uuid.UUID) (*models.StockBatch, error) {
	var batch models.StockBatch
	err := r.db.WithContext(ctx).
		Where("product_id = ?", productID).
		Order("created_at DESC, id DESC").
		First(&batch).
		Error
	if err != nil {
		return nil, err
	}
	return &batch, nil
}

// TotalQuantity sums the product's batch quantities, 0 when none exist.
func (r *Repository) TotalQuantity(ctx context.Context, productID uuid.UUID) (int, error) {
	var total int64
	err := r.db.WithContext(ctx).
		Model(&models.StockBatch{}).
		Where("product_id = ?", productID).
		Select("COALESCE(SUM(quantity), 0)").
		Scan(&total).
		Error
	if err != nil {
		return 0, err
	}
	return int(total), nil
}

// NewestPricesByProduct returns each product's most recent batch price.
// Products with no batches are absent from the map.
func (r *Repository) NewestPricesByProduct(ctx context.Context, productIDs []uuid.UUID) (map[uuid.UUID]decimal.Decimal, error) {
	prices := make(map[uuid.UUID]decimal.Decimal, len(productIDs))
	if len(productIDs) == 0 {
		return prices, nil
	}

	var batches []models.StockBatch
	err := r.db.WithContext(ctx).
		Where("product_id IN ?", productIDs).
		Order("created_at DESC, id DESC").
		Find(&batches).
		Error
	if err != nil {
		return nil, err
	}

	// rows arrive newest first, so the first hit per product wins
	for i := range batches {
		if _, ok := prices[batches[i].ProductID]; !ok {
			prices[batches[i].ProductID] = batches[i].Price
		}
	}
	return prices, nil
}

// TotalsByProduct returns batch quantity sums keyed by product id. Products
// with no batches are simply absent from the map.
func (r *Repository) TotalsByProduct(ctx context.Context, productIDs []uuid.UUID) (map[uuid.UUID]int, error) {
	totals := make(map[uuid.UUID]int, len(productIDs))
	if len(productIDs) == 0 {
		return totals, nil
	}

	type row struct {
		ProductID uuid.UUID
		Total     int64
	}
	var rows []row
	err := r.db.WithContext(ctx).
		Model(&models.StockBatch{}).
		Select("product_id, SUM(quantity) AS total").
		Where("product_id IN ?", productIDs).
		Group("product_id").
		Scan(&rows).
		Error
	if err != nil {
		return nil, err
	}

	for _, rec := range rows {
		totals[rec.ProductID] = int(rec.Total)
	}
	return totals, nil
}
