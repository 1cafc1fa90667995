package models

import (
	"time"

	"github.com/google/uuid"
)

// Client is a customer the contractor prepares estimates for. Deletion is
// soft: the row stays for historical estimates, is_active goes false.
type Client struct {
	ID        uuid.UUID  `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Name      string     `gorm:"column:name;not null"`
	Email     *string    `gorm:"column:email"`
	Phone     *string    `gorm:"column:phone"`
	Address   *string    `gorm:"column:address"`
	Notes     *string    `gorm:"column:notes"`
	IsActive  bool       `gorm:"column:is_active;not null;default:true"`
	Estimates []Estimate `gorm:"foreignKey:ClientID"`
	CreatedAt time.Time  `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time  `gorm:"column:updated_at;autoUpdateTime"`
}
