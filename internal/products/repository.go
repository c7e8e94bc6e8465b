package product

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/sarisaristore/sarisari-backend/pkg/db/models"
	"github.com/sarisaristore/sarisari-backend/pkg/enums"
	"github.com/sarisaristore/sarisari-backend/pkg/pagination"
)

// ListFilter narrows the admin inventory listing.
type ListFilter struct {
	Search string
	Status *enums.ProductStatus
	IDs    []uuid.UUID
}

// Repository wires together product and variant persistence helpers.
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

// CreateProduct inserts a new product row with its variants.
func (r *Repository) CreateProduct(ctx context.Context, product *models.Product) (*models.Product, error) {
	if err := r.db.WithContext(ctx).Create(product).Error; err != nil {
		return nil, err
	}
	return product, nil
}

// UpdateProduct updates an existing product row.
func (r *Repository) UpdateProduct(ctx context.Context, product *models.Product) (*models.Product, error) {
	if err := r.db.WithContext(ctx).Save(product).Error; err != nil {
		return nil, err
	}
	return product, nil
}

// FindByID loads the product with its variants.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	var product models.Product
	err := r.db.WithContext(ctx).
		Preload("Variants", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC, id ASC")
		}).
		First(&product, "id = ?", id).
		Error
	if err != nil {
		return nil, err
	}
	return &product, nil
}

// ProductExists reports whether a product row with the id is present.
func (r *Repository) ProductExists(ctx context.Context, id uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Product{}).
		Where("id = ?", id).
		Count(&count).
		Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// ListAdmin returns the catalog filtered by search text and status,
// newest first. The admin panel shows the whole inventory at once.
func (r *Repository) ListAdmin(ctx context.Context, filter ListFilter) ([]models.Product, error) {
	query := r.db.WithContext(ctx).
		Preload("Variants", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC, id ASC")
		}).
		Order("created_at DESC, id DESC")

	if search := strings.TrimSpace(filter.Search); search != "" {
		like := "%" + strings.ToLower(search) + "%"
		query = query.Where("LOWER(name) LIKE ? OR LOWER(COALESCE(sku, '')) LIKE ?", like, like)
	}
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	if len(filter.IDs) > 0 {
		query = query.Where("id IN ?", filter.IDs)
	}

	var products []models.Product
	if err := query.Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

// ListStorefront returns one page of active products that have at least one
// stock batch, newest first with cursor pagination.
func (r *Repository) ListStorefront(ctx context.Context, limit int, cursor *pagination.Cursor) ([]models.Product, error) {
	query := r.db.WithContext(ctx).
		Where("status = ?", enums.ProductStatusActive).
		Where("EXISTS (SELECT 1 FROM stock_batches WHERE stock_batches.product_id = products.id)").
		Order("created_at DESC, id DESC").
		Limit(limit)

	if cursor != nil {
		query = query.Where(
			"(created_at < ?) OR (created_at = ? AND id < ?)",
			cursor.CreatedAt, cursor.CreatedAt, cursor.ID,
		)
	}

	var products []models.Product
	if err := query.Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

// UpsertVariant writes one variant row, creating or saving by primary key.
func (r *Repository) UpsertVariant(ctx context.Context, variant *models.Variant) error {
	return r.db.WithContext(ctx).Save(variant).Error
}

// DeleteVariantsExcept removes the product's variants whose ids are not in
// keep. An empty keep list removes them all.
func (r *Repository) DeleteVariantsExcept(ctx context.Context, productID uuid.UUID, keep []uuid.UUID) error {
	query := r.db.WithContext(ctx).Where("product_id = ?", productID)
	if len(keep) > 0 {
		query = query.Where("id NOT IN ?", keep)
	}
	return query.Delete(&models.Variant{}).Error
}
