package inventory

import "github.com/sarisaristore/sarisari-backend/pkg/enums"

// LowStockMax is the largest on-hand quantity still classified as low.
const LowStockMax = 10

// Classify maps an aggregate quantity to its inventory status. The three
// ranges partition the non-negative integers: 0 is critical, 1..10 is low,
// anything above 10 is safe. Negative input cannot arise from a sum of
// positive batch quantities and is folded into critical.
func Classify(quantity int) enums.StockStatus {
	switch {
	case quantity <= 0:
		return enums.StockStatusCritical
	case quantity <= LowStockMax:
		return enums.StockStatusLow
	default:
		return enums.StockStatusSafe
	}
}
