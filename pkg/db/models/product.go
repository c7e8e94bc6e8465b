package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/sarisaristore/sarisari-backend/pkg/enums"
)

// Product is the canonical catalog listing managed from the admin panel.
type Product struct {
	ID          uuid.UUID           `gorm:"column:id;type:uuid;primaryKey"`
	Name        string              `gorm:"column:name;not null"`
	SKU         *string             `gorm:"column:sku"`
	Description *string             `gorm:"column:description"`
	Images      []string            `gorm:"column:images;type:jsonb;serializer:json"`
	Status      enums.ProductStatus `gorm:"column:status;not null;default:'active'"`
	Variants    []Variant           `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
	StockBatches []StockBatch       `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
	CreatedAt   time.Time           `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time           `gorm:"column:updated_at;autoUpdateTime"`
}

// BeforeCreate assigns the primary key so the model works on both the
// postgres and sqlite dialects.
func (p *Product) BeforeCreate(_ *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
