package models

import (
	"time"

	"github.com/google/uuid"
)

// Item is a reusable priced catalog entry (unit price master). UnitPrice is an
// independently stored field: it may drift from round(PurchasePrice*MarkupRate)
// and the system treats that drift as a legal state, never an error.
type Item struct {
	ID            uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Name          string    `gorm:"column:name;not null"`
	Category      string    `gorm:"column:category;not null;index"`
	Specification *string   `gorm:"column:specification"`
	Unit          *string   `gorm:"column:unit"`
	PurchasePrice *float64  `gorm:"column:purchase_price;type:numeric(12,2)"`
	MarkupRate    float64   `gorm:"column:markup_rate;type:numeric(6,3);not null;default:1.5"`
	UnitPrice     float64   `gorm:"column:unit_price;type:numeric(12,2);not null;default:0"`
	Description   *string   `gorm:"column:description"`
	IsActive      bool      `gorm:"column:is_active;not null;default:true"`
	CreatedAt     time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt     time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
