package checkout

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/sarisaristore/sarisari-backend/pkg/db/models"
	pkgerrors "github.com/sarisaristore/sarisari-backend/pkg/errors"
)

// Service produces checkout quotes for a customer's current cart.
type Service interface {
	Quote(ctx context.Context, customerID uuid.UUID) (*QuoteDTO, error)
}

type cartReader interface {
	ListByCustomer(ctx context.Context, customerID uuid.UUID) ([]models.CartItem, error)
}

type service struct {
	cart   cartReader
	pricer *Pricer
	now    func() time.Time
}

// NewService constructs the checkout service.
func NewService(cart cartReader, pricer *Pricer) (Service, error) {
	if cart == nil {
		return nil, fmt.Errorf("cart reader required")
	}
	if pricer == nil {
		return nil, fmt.Errorf("pricer required")
	}
	return &service{cart: cart, pricer: pricer, now: time.Now}, nil
}

// Quote prices the customer's cart and returns the money summary. An empty
// cart quotes as zeroes; a cart line with no stock fails with NO_STOCK.
func (s *service) Quote(ctx context.Context, customerID uuid.UUID) (*QuoteDTO, error) {
	items, err := s.cart.ListByCustomer(ctx, customerID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: list cart items")
	}

	priced, totals, err := s.pricer.PriceCart(ctx, items)
	if err != nil {
		return nil, err
	}

	lines := make([]QuoteLineDTO, 0, len(priced))
	for _, line := range priced {
		dto := QuoteLineDTO{
			ProductID: line.Item.ProductID,
			Quantity:  line.Item.Quantity,
			UnitPrice: line.UnitPrice.StringFixed(2),
			LineTotal: line.LineTotal.StringFixed(2),
		}
		if line.Item.Product != nil {
			dto.ProductName = line.Item.Product.Name
		}
		lines = append(lines, dto)
	}

	return NewQuoteDTO(lines, totals, s.now().UTC()), nil
}
