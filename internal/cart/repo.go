package cart

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/sarisaristore/sarisari-backend/pkg/db/models"
)

// Repository wires together cart item persistence helpers. Every query is
// scoped by customer id so one customer can never touch another's rows.
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

// UpsertItem adds quantity to the customer's row for the product, creating
// the row when absent. The (customer_id, product_id) unique index turns a
// concurrent double-add into a single incremented row.
func (r *Repository) UpsertItem(ctx context.Context, item *models.CartItem) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "customer_id"}, {Name: "product_id"}},
			DoUpdates: clause.Assignments(map[string]any{
				"quantity":   gorm.Expr("quantity + ?", item.Quantity),
				"updated_at": gorm.Expr("CURRENT_TIMESTAMP"),
			}),
		}).
		Create(item).
		Error
}

// FindItem loads one cart row owned by the customer.
func (r *Repository) FindItem(ctx context.Context, customerID, itemID uuid.UUID) (*models.CartItem, error) {
	var item models.CartItem
	err := r.db.WithContext(ctx).
		First(&item, "id = ? AND customer_id = ?", itemID, customerID).
		Error
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// FindByProduct loads the customer's row for the product, if any.
func (r *Repository) FindByProduct(ctx context.Context, customerID, productID uuid.UUID) (*models.CartItem, error) {
	var item models.CartItem
	err := r.db.WithContext(ctx).
		First(&item, "customer_id = ? AND product_id = ?", customerID, productID).
		Error
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// ListByCustomer returns the customer's cart rows newest first with the
// product preloaded.
func (r *Repository) ListByCustomer(ctx context.Context, customerID uuid.UUID) ([]models.CartItem, error) {
	var items []models.CartItem
	err := r.db.WithContext(ctx).
		Preload("Product").
		Where("customer_id = ?", customerID).
		Order("created_at DESC, id DESC").
		Find(&items).
		Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

// UpdateQuantity sets the quantity on the customer's row and reports how
// many rows matched.
func (r *Repository) UpdateQuantity(ctx context.Context, customerID, itemID uuid.UUID, quantity int) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&models.CartItem{}).
		Where("id = ? AND customer_id = ?", itemID, customerID).
		Update("quantity", quantity)
	if res.Error != nil {
		return 0, res.Error
	}
	return res.RowsAffected, nil
}

// DeleteItem removes the customer's row and reports how many rows went away.
func (r *Repository) DeleteItem(ctx context.Context, customerID, itemID uuid.UUID) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("id = ? AND customer_id = ?", itemID, customerID).
		Delete(&models.CartItem{})
	if res.Error != nil {
		return 0, res.Error
	}
	return res.RowsAffected, nil
}
