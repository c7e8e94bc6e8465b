package checkout

import (
	"time"

	"github.com/google/uuid"
)

// QuoteLineDTO is one priced cart line inside a checkout quote.
type QuoteLineDTO struct {
	ProductID   uuid.UUID `json:"product_id"`
	ProductName string    `json:"product_name,omitempty"`
	Quantity    int       `json:"quantity"`
	UnitPrice   string    `json:"unit_price"`
	LineTotal   string    `json:"line_total"`
}

// QuoteDTO is the checkout summary returned to the customer. Amounts are
// rounded half up to 2 places here, at the presentation boundary.
type QuoteDTO struct {
	Lines    []QuoteLineDTO `json:"lines"`
	Subtotal string         `json:"subtotal"`
	Tax      string         `json:"tax"`
	Total    string         `json:"total"`
	QuotedAt time.Time      `json:"quoted_at"`
}

// NewQuoteDTO renders the totals for display.
func NewQuoteDTO(lines []QuoteLineDTO, totals Totals, quotedAt time.Time) *QuoteDTO {
	if lines == nil {
		lines = []QuoteLineDTO{}
	}
	return &QuoteDTO{
		Lines:    lines,
		Subtotal: totals.Subtotal.StringFixed(2),
		Tax:      totals.Tax.StringFixed(2),
		Total:    totals.Total.StringFixed(2),
		QuotedAt: quotedAt,
	}
}
