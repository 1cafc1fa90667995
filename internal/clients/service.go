package clients

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Leadfive-LLC/estimate-system/pkg/db/models"
	pkgerrors "github.com/Leadfive-LLC/estimate-system/pkg/errors"
	"github.com/Leadfive-LLC/estimate-system/pkg/types"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Service exposes customer management operations.
type Service interface {
	List(ctx context.Context) ([]ClientDTO, error)
	Get(ctx context.Context, id uuid.UUID) (*ClientDetailDTO, error)
	Create(ctx context.Context, input CreateClientInput) (*ClientDTO, error)
	Update(ctx context.Context, id uuid.UUID, input UpdateClientInput) (*ClientDTO, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// CreateClientInput holds the validated payload to create a client.
type CreateClientInput struct {
	Name    string
	Email   *string
	Phone   *string
	Address *string
	Notes   *string
}

// UpdateClientInput holds optional mutation values for a client. Nullable
// fields distinguish "absent" (keep current value) from an explicit null
// (clear the column).
type UpdateClientInput struct {
	Name    *string
	Email   types.NullableString
	Phone   types.NullableString
	Address types.NullableString
	Notes   types.NullableString
}

type clientRepository interface {
	ListActive(ctx context.Context) ([]models.Client, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Client, error)
	FindByIDWithEstimates(ctx context.Context, id uuid.UUID) (*models.Client, error)
	Create(ctx context.Context, client *models.Client) (*models.Client, error)
	Update(ctx context.Context, client *models.Client) (*models.Client, error)
	Deactivate(ctx context.Context, id uuid.UUID) error
}

type service struct {
	repo clientRepository
}

// NewService constructs the client service.
func NewService(repo clientRepository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("client repository required")
	}
	return &service{repo: repo}, nil
}

// List returns active clients, newest first.
func (s *service) List(ctx context.Context) ([]ClientDTO, error) {
	rows, err := s.repo.ListActive(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: list clients")
	}
	dtos := make([]ClientDTO, 0, len(rows))
	for i := range rows {
		dtos = append(dtos, *FromModel(&rows[i]))
	}
	return dtos, nil
}

// Get loads a single client with its estimate history.
func (s *service) Get(ctx context.Context, id uuid.UUID) (*ClientDetailDTO, error) {
	client, err := s.repo.FindByIDWithEstimates(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "client not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load client")
	}
	return DetailFromModel(client), nil
}

// Create persists a new client.
func (s *service) Create(ctx context.Context, input CreateClientInput) (*ClientDTO, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "name is required")
	}

	client := &models.Client{
		Name:     name,
		Email:    input.Email,
		Phone:    input.Phone,
		Address:  input.Address,
		Notes:    input.Notes,
		IsActive: true,
	}
	created, err := s.repo.Create(ctx, client)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: insert client")
	}
	return FromModel(created), nil
}

// Update applies the provided partial changes to an existing client.
func (s *service) Update(ctx context.Context, id uuid.UUID, input UpdateClientInput) (*ClientDTO, error) {
	client, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "client not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load client")
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "name cannot be empty")
		}
		client.Name = name
	}
	if input.Email.Valid {
		client.Email = input.Email.Value
	}
	if input.Phone.Valid {
		client.Phone = input.Phone.Value
	}
	if input.Address.Valid {
		client.Address = input.Address.Value
	}
	if input.Notes.Valid {
		client.Notes = input.Notes.Value
	}

	updated, err := s.repo.Update(ctx, client)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: update client")
	}
	return FromModel(updated), nil
}

// Delete soft-deletes the client so historical estimates keep their reference.
func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "client not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load client")
	}
	if err := s.repo.Deactivate(ctx, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: deactivate client")
	}
	return nil
}
