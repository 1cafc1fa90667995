package items

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Leadfive-LLC/estimate-system/internal/pricing"
	"github.com/Leadfive-LLC/estimate-system/pkg/db/models"
	pkgerrors "github.com/Leadfive-LLC/estimate-system/pkg/errors"
	"github.com/Leadfive-LLC/estimate-system/pkg/types"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Service exposes catalog management operations.
type Service interface {
	List(ctx context.Context, category string) ([]ItemDTO, error)
	Categories(ctx context.Context) ([]string, error)
	Get(ctx context.Context, id uuid.UUID) (*ItemDTO, error)
	Create(ctx context.Context, input CreateItemInput) (*ItemDTO, error)
	Update(ctx context.Context, id uuid.UUID, input UpdateItemInput) (*ItemDTO, error)
	Delete(ctx context.Context, id uuid.UUID) error
	DerivedPrice(ctx context.Context, id uuid.UUID) (*DerivedPriceDTO, error)
}

// CreateItemInput holds the validated payload to create a catalog item.
type CreateItemInput struct {
	Name          string
	Category      string
	Specification *string
	Unit          *string
	PurchasePrice *float64
	MarkupRate    *float64
	UnitPrice     *float64
	Description   *string
}

// UpdateItemInput holds optional mutation values for a catalog item.
// UnitPrice only changes when the caller sends it explicitly; editing the
// purchase price or markup rate never rewrites the selling price on its own.
type UpdateItemInput struct {
	Name          *string
	Category      *string
	Specification types.NullableString
	Unit          types.NullableString
	PurchasePrice types.NullableFloat
	MarkupRate    *float64
	UnitPrice     *float64
	Description   types.NullableString
}

type itemRepository interface {
	ListActive(ctx context.Context, category string) ([]models.Item, error)
	ListCategories(ctx context.Context) ([]string, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Item, error)
	Create(ctx context.Context, item *models.Item) (*models.Item, error)
	Update(ctx context.Context, item *models.Item) (*models.Item, error)
	Deactivate(ctx context.Context, id uuid.UUID) error
}

type service struct {
	repo itemRepository
}

// NewService constructs the catalog item service.
func NewService(repo itemRepository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("item repository required")
	}
	return &service{repo: repo}, nil
}

// List returns active items, optionally filtered by category.
func (s *service) List(ctx context.Context, category string) ([]ItemDTO, error) {
	rows, err := s.repo.ListActive(ctx, strings.TrimSpace(category))
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: list items")
	}
	dtos := make([]ItemDTO, 0, len(rows))
	for i := range rows {
		dtos = append(dtos, *FromModel(&rows[i]))
	}
	return dtos, nil
}

// Categories returns the distinct categories of active items.
func (s *service) Categories(ctx context.Context) ([]string, error) {
	categories, err := s.repo.ListCategories(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: list categories")
	}
	return categories, nil
}

// Get loads a single catalog item.
func (s *service) Get(ctx context.Context, id uuid.UUID) (*ItemDTO, error) {
	item, err := s.loadItem(ctx, id)
	if err != nil {
		return nil, err
	}
	return FromModel(item), nil
}

// Create persists a new catalog item with catalog defaults applied.
func (s *service) Create(ctx context.Context, input CreateItemInput) (*ItemDTO, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "name is required")
	}
	category := strings.TrimSpace(input.Category)
	if category == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "category is required")
	}

	markupRate := pricing.DefaultMarkupRate
	if input.MarkupRate != nil {
		if err := validateMarkupRate(*input.MarkupRate); err != nil {
			return nil, err
		}
		markupRate = *input.MarkupRate
	}
	unitPrice := 0.0
	if input.UnitPrice != nil {
		unitPrice = *input.UnitPrice
	}

	item := &models.Item{
		Name:          name,
		Category:      category,
		Specification: input.Specification,
		Unit:          input.Unit,
		PurchasePrice: input.PurchasePrice,
		MarkupRate:    markupRate,
		UnitPrice:     unitPrice,
		Description:   input.Description,
		IsActive:      true,
	}
	created, err := s.repo.Create(ctx, item)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: insert item")
	}
	return FromModel(created), nil
}

// Update applies the provided partial changes to an existing item.
func (s *service) Update(ctx context.Context, id uuid.UUID, input UpdateItemInput) (*ItemDTO, error) {
	item, err := s.loadItem(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "name cannot be empty")
		}
		item.Name = name
	}
	if input.Category != nil {
		category := strings.TrimSpace(*input.Category)
		if category == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "category cannot be empty")
		}
		item.Category = category
	}
	if input.MarkupRate != nil {
		if err := validateMarkupRate(*input.MarkupRate); err != nil {
			return nil, err
		}
		item.MarkupRate = *input.MarkupRate
	}
	if input.UnitPrice != nil {
		item.UnitPrice = *input.UnitPrice
	}
	if input.Specification.Valid {
		item.Specification = input.Specification.Value
	}
	if input.Unit.Valid {
		item.Unit = input.Unit.Value
	}
	if input.PurchasePrice.Valid {
		item.PurchasePrice = input.PurchasePrice.Value
	}
	if input.Description.Valid {
		item.Description = input.Description.Value
	}

	updated, err := s.repo.Update(ctx, item)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: update item")
	}
	return FromModel(updated), nil
}

// Delete soft-deletes the item; estimates keep their copied prices.
func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.loadItem(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Deactivate(ctx, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: deactivate item")
	}
	return nil
}

// DerivedPrice computes the markup-based price proposal for the item. The
// stored unit price is reported alongside but never modified here.
func (s *service) DerivedPrice(ctx context.Context, id uuid.UUID) (*DerivedPriceDTO, error) {
	item, err := s.loadItem(ctx, id)
	if err != nil {
		return nil, err
	}

	derived, err := pricing.DeriveUnitPrice(item.PurchasePrice, item.MarkupRate)
	if err != nil {
		if errors.Is(err, pricing.ErrNoPurchasePrice) {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "item has no purchase price")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "derive unit price")
	}

	return &DerivedPriceDTO{
		ItemID:           item.ID,
		PurchasePrice:    *item.PurchasePrice,
		MarkupRate:       item.MarkupRate,
		DerivedUnitPrice: derived,
		CurrentUnitPrice: item.UnitPrice,
	}, nil
}

func (s *service) loadItem(ctx context.Context, id uuid.UUID) (*models.Item, error) {
	item, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "item not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load item")
	}
	return item, nil
}

func validateMarkupRate(rate float64) error {
	if rate <= 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "markup_rate must be positive")
	}
	return nil
}
