package cart

import (
	"time"

	"github.com/google/uuid"

	"github.com/sarisaristore/sarisari-backend/pkg/db/models"
)

// ItemDTO is one cart line returned to the customer. Price fields are nil
// when the product currently has no stock batches to price from.
type ItemDTO struct {
	ID          uuid.UUID `json:"id"`
	ProductID   uuid.UUID `json:"product_id"`
	ProductName string    `json:"product_name,omitempty"`
	Quantity    int       `json:"quantity"`
	UnitPrice   *string   `json:"unit_price,omitempty"`
	LineTotal   *string   `json:"line_total,omitempty"`
	Available   bool      `json:"available"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// CartDTO is the full cart listing payload.
type CartDTO struct {
	Items     []ItemDTO `json:"items"`
	ItemCount int       `json:"item_count"`
}

// newItemDTO builds the unpriced portion of a cart line.
func newItemDTO(item *models.CartItem) ItemDTO {
	dto := ItemDTO{
		ID:        item.ID,
		ProductID: item.ProductID,
		Quantity:  item.Quantity,
		CreatedAt: item.CreatedAt,
		UpdatedAt: item.UpdatedAt,
	}
	if item.Product != nil {
		dto.ProductName = item.Product.Name
	}
	return dto
}
