package enums

import "fmt"

// StockStatus is the inventory classification tag derived from a product's
// aggregate on-hand quantity.
type StockStatus string

const (
	StockStatusCritical StockStatus = "critical"
	StockStatusLow      StockStatus = "low"
	StockStatusSafe     StockStatus = "safe"
)

var validStockStatuses = []StockStatus{
	StockStatusCritical,
	StockStatusLow,
	StockStatusSafe,
}

// String implements fmt.Stringer.
func (s StockStatus) String() string {
	return string(s)
}

// IsValid reports whether the value is a known StockStatus.
func (s StockStatus) IsValid() bool {
	for _, candidate := range validStockStatuses {
		if candidate == s {
			return true
		}
	}
	return false
}

// ParseStockStatus converts raw input into a StockStatus.
func ParseStockStatus(value string) (StockStatus, error) {
	for _, candidate := range validStockStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid stock status %q", value)
}
