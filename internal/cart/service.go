package cart

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/sarisaristore/sarisari-backend/pkg/db"
	"github.com/sarisaristore/sarisari-backend/pkg/db/models"
	pkgerrors "github.com/sarisaristore/sarisari-backend/pkg/errors"
)

// Service exposes the customer cart operations. Every call is scoped by the
// customer id taken from the access token.
type Service interface {
	AddItem(ctx context.Context, customerID uuid.UUID, input AddItemInput) (*ItemDTO, error)
	ListItems(ctx context.Context, customerID uuid.UUID) (*CartDTO, error)
	UpdateItemQuantity(ctx context.Context, customerID, itemID uuid.UUID, quantity int) (*ItemDTO, error)
	RemoveItem(ctx context.Context, customerID, itemID uuid.UUID) error
}

// AddItemInput holds the validated add-to-cart payload.
type AddItemInput struct {
	ProductID uuid.UUID
	Quantity  int
}

type itemRepo interface {
	UpsertItem(ctx context.Context, item *models.CartItem) error
	FindItem(ctx context.Context, customerID, itemID uuid.UUID) (*models.CartItem, error)
	FindByProduct(ctx context.Context, customerID, productID uuid.UUID) (*models.CartItem, error)
	ListByCustomer(ctx context.Context, customerID uuid.UUID) ([]models.CartItem, error)
	UpdateQuantity(ctx context.Context, customerID, itemID uuid.UUID, quantity int) (int64, error)
	DeleteItem(ctx context.Context, customerID, itemID uuid.UUID) (int64, error)
}

type productFinder interface {
	ProductExists(ctx context.Context, id uuid.UUID) (bool, error)
}

type unitPricer interface {
	UnitPrice(ctx context.Context, productID uuid.UUID) (decimal.Decimal, error)
}

type service struct {
	repo     itemRepo
	products productFinder
	pricer   unitPricer
}

// NewService constructs the cart service.
func NewService(repo itemRepo, products productFinder, pricer unitPricer) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("cart repository required")
	}
	if products == nil {
		return nil, fmt.Errorf("product finder required")
	}
	if pricer == nil {
		return nil, fmt.Errorf("unit pricer required")
	}
	return &service{repo: repo, products: products, pricer: pricer}, nil
}

// AddItem adds the product to the customer's cart. Repeat adds for the same
// product increment the existing row instead of inserting a duplicate.
func (s *service) AddItem(ctx context.Context, customerID uuid.UUID, input AddItemInput) (*ItemDTO, error) {
	if input.Quantity < 1 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantity must be at least 1")
	}

	exists, err := s.products.ProductExists(ctx, input.ProductID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load product")
	}
	if !exists {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
	}

	item := &models.CartItem{
		CustomerID: customerID,
		ProductID:  input.ProductID,
		Quantity:   input.Quantity,
	}
	if err := s.repo.UpsertItem(ctx, item); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: upsert cart item")
	}

	// reload so an incremented row reports its running quantity
	current, err := s.repo.FindByProduct(ctx, customerID, input.ProductID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: reload cart item")
	}
	dto, err := s.priceItem(ctx, newItemDTO(current))
	if err != nil {
		return nil, err
	}
	return &dto, nil
}

// ListItems returns the customer's cart newest first with line totals.
func (s *service) ListItems(ctx context.Context, customerID uuid.UUID) (*CartDTO, error) {
	items, err := s.repo.ListByCustomer(ctx, customerID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: list cart items")
	}

	out := &CartDTO{Items: make([]ItemDTO, 0, len(items)), ItemCount: len(items)}
	for i := range items {
		dto, err := s.priceItem(ctx, newItemDTO(&items[i]))
		if err != nil {
			return nil, err
		}
		out.Items = append(out.Items, dto)
	}
	return out, nil
}

// UpdateItemQuantity sets the quantity on the customer's own row.
func (s *service) UpdateItemQuantity(ctx context.Context, customerID, itemID uuid.UUID, quantity int) (*ItemDTO, error) {
	if quantity < 1 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantity must be at least 1")
	}

	rows, err := s.repo.UpdateQuantity(ctx, customerID, itemID, quantity)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: update cart item")
	}
	if rows == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "cart item not found")
	}

	current, err := s.repo.FindItem(ctx, customerID, itemID)
	if err != nil {
		if db.IsNotFound(err) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "cart item not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: reload cart item")
	}
	dto, err := s.priceItem(ctx, newItemDTO(current))
	if err != nil {
		return nil, err
	}
	return &dto, nil
}

// RemoveItem deletes the customer's own row; anything else is not found.
func (s *service) RemoveItem(ctx context.Context, customerID, itemID uuid.UUID) error {
	rows, err := s.repo.DeleteItem(ctx, customerID, itemID)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: delete cart item")
	}
	if rows == 0 {
		return pkgerrors.New(pkgerrors.CodeNotFound, "cart item not found")
	}
	return nil
}

// priceItem fills unit price and line total from the newest batch. A
// product with no batches leaves the line unpriced and unavailable; any
// other pricing failure aborts the caller.
func (s *service) priceItem(ctx context.Context, dto ItemDTO) (ItemDTO, error) {
	price, err := s.pricer.UnitPrice(ctx, dto.ProductID)
	if err != nil {
		if typed := pkgerrors.As(err); typed != nil && typed.Code() == pkgerrors.CodeNoStock {
			return dto, nil
		}
		return dto, err
	}

	unit := price.StringFixed(2)
	line := price.Mul(decimal.NewFromInt(int64(dto.Quantity))).StringFixed(2)
	dto.UnitPrice = &unit
	dto.LineTotal = &line
	dto.Available = true
	return dto, nil
}
