package inventory

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/sarisaristore/sarisari-backend/pkg/db/models"
	"github.com/sarisaristore/sarisari-backend/pkg/enums"
)

// ProductTotal pairs a product with its recomputed batch quantity sum.
type ProductTotal struct {
	ProductID uuid.UUID
	Status    enums.ProductStatus
	Total     int
}

// Repository answers aggregate stock questions across the whole catalog.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// ProductTotals returns every product with its aggregate batch quantity.
// Products with no batches come back with a total of 0.
func (r *Repository) ProductTotals(ctx context.Context) ([]ProductTotal, error) {
	type row struct {
		ProductID uuid.UUID
		Status    enums.ProductStatus
		Total     int64
	}
	var rows []row
	err := r.db.WithContext(ctx).
		Model(&models.Product{}).
		Select("products.id AS product_id, products.status AS status, COALESCE(SUM(stock_batches.quantity), 0) AS total").
		Joins("LEFT JOIN stock_batches ON stock_batches.product_id = products.id").
		Group("products.id, products.status").
		Scan(&rows).
		Error
	if err != nil {
		return nil, err
	}

	totals := make([]ProductTotal, 0, len(rows))
	for _, rec := range rows {
		totals = append(totals, ProductTotal{
			ProductID: rec.ProductID,
			Status:    rec.Status,
			Total:     int(rec.Total),
		})
	}
	return totals, nil
}

// ProductIDsByStatus filters the catalog to products whose aggregate
// quantity classifies to the given status, at the query level.
func (r *Repository) ProductIDsByStatus(ctx context.Context, status enums.StockStatus) ([]uuid.UUID, error) {
	query := r.db.WithContext(ctx).
		Model(&models.Product{}).
		Select("products.id").
		Joins("LEFT JOIN stock_batches ON stock_batches.product_id = products.id").
		Group("products.id")

	switch status {
	case enums.StockStatusCritical:
		query = query.Having("COALESCE(SUM(stock_batches.quantity), 0) = 0")
	case enums.StockStatusLow:
		query = query.Having("COALESCE(SUM(stock_batches.quantity), 0) BETWEEN 1 AND ?", LowStockMax)
	case enums.StockStatusSafe:
		query = query.Having("COALESCE(SUM(stock_batches.quantity), 0) > ?", LowStockMax)
	default:
		return nil, fmt.Errorf("unknown stock status %q", status)
	}

	var ids []uuid.UUID
	if err := query.Scan(&ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}
