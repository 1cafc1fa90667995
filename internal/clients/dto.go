package clients

import (
	"time"

	"github.com/google/uuid"

	"github.com/Leadfive-LLC/estimate-system/pkg/db/models"
	"github.com/Leadfive-LLC/estimate-system/pkg/enums"
)

// ClientDTO is the transport shape for a customer record.
type ClientDTO struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Email     *string   `json:"email,omitempty"`
	Phone     *string   `json:"phone,omitempty"`
	Address   *string   `json:"address,omitempty"`
	Notes     *string   `json:"notes,omitempty"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ClientDetailDTO adds the client's estimate history to the base shape.
type ClientDetailDTO struct {
	ClientDTO
	Estimates []ClientEstimateDTO `json:"estimates"`
}

// ClientEstimateDTO is the trimmed estimate row shown on a client page.
type ClientEstimateDTO struct {
	ID          uuid.UUID            `json:"id"`
	Title       string               `json:"title"`
	Status      enums.EstimateStatus `json:"status"`
	TotalAmount float64              `json:"total_amount"`
	CreatedAt   time.Time            `json:"created_at"`
}

// FromModel maps the persisted client into a DTO.
func FromModel(m *models.Client) *ClientDTO {
	if m == nil {
		return nil
	}
	return &ClientDTO{
		ID:        m.ID,
		Name:      m.Name,
		Email:     m.Email,
		Phone:     m.Phone,
		Address:   m.Address,
		Notes:     m.Notes,
		IsActive:  m.IsActive,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

// DetailFromModel maps a client with preloaded estimates into the detail DTO.
func DetailFromModel(m *models.Client) *ClientDetailDTO {
	if m == nil {
		return nil
	}
	detail := &ClientDetailDTO{ClientDTO: *FromModel(m)}
	detail.Estimates = make([]ClientEstimateDTO, 0, len(m.Estimates))
	for _, estimate := range m.Estimates {
		detail.Estimates = append(detail.Estimates, ClientEstimateDTO{
			ID:          estimate.ID,
			Title:       estimate.Title,
			Status:      estimate.Status,
			TotalAmount: estimate.TotalAmount,
			CreatedAt:   estimate.CreatedAt,
		})
	}
	return detail
}
