package stock

import (
	"time"

	"github.com/google/uuid"

	"github.com/sarisaristore/sarisari-backend/pkg/db/models"
)

// BatchDTO represents one restock event returned to admin clients.
type BatchDTO struct {
	ID        uuid.UUID `json:"id"`
	ProductID uuid.UUID `json:"product_id"`
	Quantity  int       `json:"quantity"`
	Price     string    `json:"price"`
	CreatedAt time.Time `json:"created_at"`
}

// BatchListDTO is the batch listing payload with the running aggregate.
type BatchListDTO struct {
	ProductID     uuid.UUID  `json:"product_id"`
	TotalQuantity int        `json:"total_quantity"`
	Batches       []BatchDTO `json:"batches"`
}

// NewBatchDTO builds a DTO from the persisted batch row.
func NewBatchDTO(batch *models.StockBatch) *BatchDTO {
	return &BatchDTO{
		ID:        batch.ID,
		ProductID: batch.ProductID,
		Quantity:  batch.Quantity,
		Price:     batch.Price.StringFixed(2),
		CreatedAt: batch.CreatedAt,
	}
}
