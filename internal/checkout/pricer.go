package checkout

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/sarisaristore/sarisari-backend/pkg/db"
	"github.com/sarisaristore/sarisari-backend/pkg/db/models"
	pkgerrors "github.com/sarisaristore/sarisari-backend/pkg/errors"
)

// Totals carries the cart money summary at full decimal precision.
// Rounding to 2 places happens only when building the response DTO.
type Totals struct {
	Subtotal decimal.Decimal
	Tax      decimal.Decimal
	Total    decimal.Decimal
}

type newestBatchReader interface {
	NewestBatch(ctx context.Context, productID uuid.UUID) (*models.StockBatch, error)
}

// Pricer prices cart lines from stock batches. The unit price of a product
// is the price of its most recently created batch, newest wins.
type Pricer struct {
	batches newestBatchReader
	taxRate decimal.Decimal
}

// NewPricer constructs a pricer with the given tax rate, e.g. "0.12".
func NewPricer(batches newestBatchReader, taxRate decimal.Decimal) (*Pricer, error) {
	if batches == nil {
		return nil, fmt.Errorf("batch reader required")
	}
	if taxRate.IsNegative() {
		return nil, fmt.Errorf("tax rate cannot be negative")
	}
	return &Pricer{batches: batches, taxRate: taxRate}, nil
}

// UnitPrice returns the newest batch price for the product. Products with
// no batches fail with a NO_STOCK error and must be treated as unpriced.
func (p *Pricer) UnitPrice(ctx context.Context, productID uuid.UUID) (decimal.Decimal, error) {
	batch, err := p.batches.NewestBatch(ctx, productID)
	if err != nil {
		if db.IsNotFound(err) {
			return decimal.Zero, pkgerrors.New(pkgerrors.CodeNoStock, "product has no stock on record").
				WithDetails(map[string]any{"product_id": productID})
		}
		return decimal.Zero, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load newest batch")
	}
	return batch.Price, nil
}

// LineTotal prices one cart line.
func (p *Pricer) LineTotal(ctx context.Context, item *models.CartItem) (decimal.Decimal, error) {
	unit, err := p.UnitPrice(ctx, item.ProductID)
	if err != nil {
		return decimal.Zero, err
	}
	return unit.Mul(decimal.NewFromInt(int64(item.Quantity))), nil
}

// PricedLine is one cart line with its resolved unit price and extension.
type PricedLine struct {
	Item      *models.CartItem
	UnitPrice decimal.Decimal
	LineTotal decimal.Decimal
}

// PriceCart resolves every line and the money summary in one pass. An empty
// cart yields no lines and all-zero totals. Any unpriceable line fails the
// whole computation.
func (p *Pricer) PriceCart(ctx context.Context, items []models.CartItem) ([]PricedLine, Totals, error) {
	lines := make([]PricedLine, 0, len(items))
	subtotal := decimal.Zero
	for i := range items {
		item := &items[i]
		unit, err := p.UnitPrice(ctx, item.ProductID)
		if err != nil {
			return nil, Totals{}, err
		}
		line := unit.Mul(decimal.NewFromInt(int64(item.Quantity)))
		subtotal = subtotal.Add(line)
		lines = append(lines, PricedLine{Item: item, UnitPrice: unit, LineTotal: line})
	}

	tax := subtotal.Mul(p.taxRate)
	return lines, Totals{
		Subtotal: subtotal,
		Tax:      tax,
		Total:    subtotal.Add(tax),
	}, nil
}

// ComputeTotals sums the cart lines and applies the tax rate.
func (p *Pricer) ComputeTotals(ctx context.Context, items []models.CartItem) (Totals, error) {
	_, totals, err := p.PriceCart(ctx, items)
	return totals, err
}
