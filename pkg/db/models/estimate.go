package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/Leadfive-LLC/estimate-system/pkg/enums"
)

// Estimate is a quote document composed of copied catalog line items.
// TotalAmount is stored and must equal the sum of line amounts at save time.
type Estimate struct {
	ID          uuid.UUID            `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Title       string               `gorm:"column:title;not null"`
	ClientID    uuid.UUID            `gorm:"column:client_id;type:uuid;not null;index"`
	UserID      uuid.UUID            `gorm:"column:user_id;type:uuid;not null;index"`
	Description *string              `gorm:"column:description"`
	Status      enums.EstimateStatus `gorm:"column:status;not null;default:'DRAFT'"`
	TotalAmount float64              `gorm:"column:total_amount;type:numeric(16,5);not null;default:0"`
	ValidUntil  *time.Time           `gorm:"column:valid_until"`
	Notes       *string              `gorm:"column:notes"`
	Client      *Client              `gorm:"foreignKey:ClientID"`
	User        *User                `gorm:"foreignKey:UserID"`
	Items       []EstimateItem       `gorm:"foreignKey:EstimateID;constraint:OnDelete:CASCADE"`
	CreatedAt   time.Time            `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time            `gorm:"column:updated_at;autoUpdateTime"`
}
