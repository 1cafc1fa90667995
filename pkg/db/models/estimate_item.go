package models

import (
	"time"

	"github.com/google/uuid"
)

// EstimateItem is one row on an estimate. Quantity and UnitPrice are copied
// from the catalog item at add time, not live-linked; Amount is always
// recomputed as Quantity*UnitPrice and never edited independently.
type EstimateItem struct {
	ID         uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	EstimateID uuid.UUID `gorm:"column:estimate_id;type:uuid;not null;index"`
	ItemID     uuid.UUID `gorm:"column:item_id;type:uuid;not null"`
	Quantity   float64   `gorm:"column:quantity;type:numeric(12,3);not null"`
	UnitPrice  float64   `gorm:"column:unit_price;type:numeric(12,2);not null"`
	Amount     float64   `gorm:"column:amount;type:numeric(16,5);not null"`
	Notes      *string   `gorm:"column:notes"`
	Position   int       `gorm:"column:position;not null;default:0"`
	Item       *Item     `gorm:"foreignKey:ItemID"`
	CreatedAt  time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt  time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
