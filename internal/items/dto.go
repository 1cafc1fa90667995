package items

import (
	"time"

	"github.com/google/uuid"

	"github.com/Leadfive-LLC/estimate-system/pkg/db/models"
)

// ItemDTO is the transport shape for a catalog entry.
type ItemDTO struct {
	ID            uuid.UUID `json:"id"`
	Name          string    `json:"name"`
	Category      string    `json:"category"`
	Specification *string   `json:"specification,omitempty"`
	Unit          *string   `json:"unit,omitempty"`
	PurchasePrice *float64  `json:"purchase_price,omitempty"`
	MarkupRate    float64   `json:"markup_rate"`
	UnitPrice     float64   `json:"unit_price"`
	Description   *string   `json:"description,omitempty"`
	IsActive      bool      `json:"is_active"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// DerivedPriceDTO reports a markup-based price proposal without touching the
// stored unit price.
type DerivedPriceDTO struct {
	ItemID           uuid.UUID `json:"item_id"`
	PurchasePrice    float64   `json:"purchase_price"`
	MarkupRate       float64   `json:"markup_rate"`
	DerivedUnitPrice float64   `json:"derived_unit_price"`
	CurrentUnitPrice float64   `json:"current_unit_price"`
}

// FromModel maps the persisted item into a DTO.
func FromModel(m *models.Item) *ItemDTO {
	if m == nil {
		return nil
	}
	return &ItemDTO{
		ID:            m.ID,
		Name:          m.Name,
		Category:      m.Category,
		Specification: m.Specification,
		Unit:          m.Unit,
		PurchasePrice: m.PurchasePrice,
		MarkupRate:    m.MarkupRate,
		UnitPrice:     m.UnitPrice,
		Description:   m.Description,
		IsActive:      m.IsActive,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}
