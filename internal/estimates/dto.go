package estimates

import (
	"time"

	"github.com/google/uuid"

	"github.com/Leadfive-LLC/estimate-system/pkg/db/models"
	"github.com/Leadfive-LLC/estimate-system/pkg/enums"
)

// ClientSummaryDTO is the trimmed client shape embedded in estimate rows.
type ClientSummaryDTO struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

// EstimateSummaryDTO is the list-view shape of an estimate.
type EstimateSummaryDTO struct {
	ID          uuid.UUID            `json:"id"`
	Title       string               `json:"title"`
	Status      enums.EstimateStatus `json:"status"`
	TotalAmount float64              `json:"total_amount"`
	Client      *ClientSummaryDTO    `json:"client,omitempty"`
	ItemCount   int                  `json:"item_count"`
	ValidUntil  *time.Time           `json:"valid_until,omitempty"`
	CreatedAt   time.Time            `json:"created_at"`
	UpdatedAt   time.Time            `json:"updated_at"`
}

// EstimateItemDTO is one line on an estimate document.
type EstimateItemDTO struct {
	ID        uuid.UUID `json:"id"`
	ItemID    uuid.UUID `json:"item_id"`
	ItemName  string    `json:"item_name,omitempty"`
	Quantity  float64   `json:"quantity"`
	UnitPrice float64   `json:"unit_price"`
	Amount    float64   `json:"amount"`
	Notes     *string   `json:"notes,omitempty"`
	Position  int       `json:"position"`
}

// TaxBreakdownDTO reports how a tax-inclusive total splits into parts.
type TaxBreakdownDTO struct {
	Subtotal float64 `json:"subtotal"`
	Tax      float64 `json:"tax"`
	Total    float64 `json:"total"`
}

// EstimateDetailDTO is the full document shape.
type EstimateDetailDTO struct {
	ID          uuid.UUID            `json:"id"`
	Title       string               `json:"title"`
	ClientID    uuid.UUID            `json:"client_id"`
	UserID      uuid.UUID            `json:"user_id"`
	Description *string              `json:"description,omitempty"`
	Status      enums.EstimateStatus `json:"status"`
	TotalAmount float64              `json:"total_amount"`
	Tax         TaxBreakdownDTO      `json:"tax_breakdown"`
	ValidUntil  *time.Time           `json:"valid_until,omitempty"`
	Notes       *string              `json:"notes,omitempty"`
	Client      *ClientSummaryDTO    `json:"client,omitempty"`
	Items       []EstimateItemDTO    `json:"items"`
	CreatedAt   time.Time            `json:"created_at"`
	UpdatedAt   time.Time            `json:"updated_at"`
}

// SummaryFromModel maps a persisted estimate into its list-view shape.
func SummaryFromModel(m *models.Estimate, itemCount int) *EstimateSummaryDTO {
	if m == nil {
		return nil
	}
	dto := &EstimateSummaryDTO{
		ID:          m.ID,
		Title:       m.Title,
		Status:      m.Status,
		TotalAmount: m.TotalAmount,
		ItemCount:   itemCount,
		ValidUntil:  m.ValidUntil,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
	if m.Client != nil {
		dto.Client = &ClientSummaryDTO{ID: m.Client.ID, Name: m.Client.Name}
	}
	return dto
}

// DetailFromModel maps a fully loaded estimate into the document shape.
// The tax breakdown is computed by the service, not stored.
func DetailFromModel(m *models.Estimate, tax TaxBreakdownDTO) *EstimateDetailDTO {
	if m == nil {
		return nil
	}
	dto := &EstimateDetailDTO{
		ID:          m.ID,
		Title:       m.Title,
		ClientID:    m.ClientID,
		UserID:      m.UserID,
		Description: m.Description,
		Status:      m.Status,
		TotalAmount: m.TotalAmount,
		Tax:         tax,
		ValidUntil:  m.ValidUntil,
		Notes:       m.Notes,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
	if m.Client != nil {
		dto.Client = &ClientSummaryDTO{ID: m.Client.ID, Name: m.Client.Name}
	}
	dto.Items = make([]EstimateItemDTO, 0, len(m.Items))
	for _, row := range m.Items {
		item := EstimateItemDTO{
			ID:        row.ID,
			ItemID:    row.ItemID,
			Quantity:  row.Quantity,
			UnitPrice: row.UnitPrice,
			Amount:    row.Amount,
			Notes:     row.Notes,
			Position:  row.Position,
		}
		if row.Item != nil {
			item.ItemName = row.Item.Name
		}
		dto.Items = append(dto.Items, item)
	}
	return dto
}
