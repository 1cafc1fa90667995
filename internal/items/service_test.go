package items

import (
	"context"
	"errors"
	"testing"

	"github.com/Leadfive-LLC/estimate-system/internal/pricing"
	"github.com/Leadfive-LLC/estimate-system/pkg/db/models"
	pkgerrors "github.com/Leadfive-LLC/estimate-system/pkg/errors"
	"github.com/Leadfive-LLC/estimate-system/pkg/types"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type stubItemRepo struct {
	items      []models.Item
	categories []string
	item       *models.Item
	err        error
	updated    *models.Item
	category   string
}

func (s *stubItemRepo) ListActive(ctx context.Context, category string) ([]models.Item, error) {
	s.category = category
	return s.items, s.err
}

func (s *stubItemRepo) ListCategories(ctx context.Context) ([]string, error) {
	return s.categories, s.err
}

func (s *stubItemRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.Item, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.item, nil
}

func (s *stubItemRepo) Create(ctx context.Context, item *models.Item) (*models.Item, error) {
	if s.err != nil {
		return nil, s.err
	}
	item.ID = uuid.New()
	return item, nil
}

func (s *stubItemRepo) Update(ctx context.Context, item *models.Item) (*models.Item, error) {
	if s.err != nil {
		return nil, s.err
	}
	s.updated = item
	return item, nil
}

func (s *stubItemRepo) Deactivate(ctx context.Context, id uuid.UUID) error {
	return s.err
}

func baseItem() *models.Item {
	purchase := 18000.0
	spec := "H2.0m pot"
	return &models.Item{
		ID:            uuid.New(),
		Name:          "Ilex integra",
		Category:      "planting",
		Specification: &spec,
		PurchasePrice: &purchase,
		MarkupRate:    1.5,
		UnitPrice:     25000,
		IsActive:      true,
	}
}

func TestServiceListPassesCategoryFilter(t *testing.T) {
	repo := &stubItemRepo{items: []models.Item{*baseItem()}}
	svc, err := NewService(repo)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	dtos, err := svc.List(context.Background(), " planting ")
	if err != nil {
		t.Fatalf("list items: %v", err)
	}
	if repo.category != "planting" {
		t.Fatalf("expected trimmed category filter, got %q", repo.category)
	}
	if len(dtos) != 1 {
		t.Fatalf("expected 1 item got %d", len(dtos))
	}
}

func TestServiceCreateAppliesDefaults(t *testing.T) {
	svc, _ := NewService(&stubItemRepo{})

	dto, err := svc.Create(context.Background(), CreateItemInput{
		Name:     "Topsoil",
		Category: "materials",
	})
	if err != nil {
		t.Fatalf("create item: %v", err)
	}
	if dto.MarkupRate != pricing.DefaultMarkupRate {
		t.Fatalf("expected default markup rate, got %v", dto.MarkupRate)
	}
	if dto.UnitPrice != 0 {
		t.Fatalf("expected zero unit price, got %v", dto.UnitPrice)
	}
	if !dto.IsActive {
		t.Fatal("expected new item to be active")
	}
}

func TestServiceCreateRejectsBadMarkup(t *testing.T) {
	svc, _ := NewService(&stubItemRepo{})

	rate := -1.0
	_, err := svc.Create(context.Background(), CreateItemInput{
		Name:       "Topsoil",
		Category:   "materials",
		MarkupRate: &rate,
	})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation code, got %v", err)
	}
}

func TestServiceUpdateNeverTouchesUnitPriceImplicitly(t *testing.T) {
	item := baseItem()
	repo := &stubItemRepo{item: item}
	svc, _ := NewService(repo)

	newPurchase := 20000.0
	newRate := 2.0
	dto, err := svc.Update(context.Background(), item.ID, UpdateItemInput{
		PurchasePrice: types.NullableFloat{Valid: true, Value: &newPurchase},
		MarkupRate:    &newRate,
	})
	if err != nil {
		t.Fatalf("update item: %v", err)
	}
	if dto.UnitPrice != 25000 {
		t.Fatalf("unit price must stay at 25000, got %v", dto.UnitPrice)
	}
	if dto.PurchasePrice == nil || *dto.PurchasePrice != 20000 {
		t.Fatalf("expected purchase price 20000, got %v", dto.PurchasePrice)
	}
	if dto.MarkupRate != 2.0 {
		t.Fatalf("expected markup rate 2.0, got %v", dto.MarkupRate)
	}
}

func TestServiceUpdateClearsPurchasePriceOnNull(t *testing.T) {
	item := baseItem()
	svc, _ := NewService(&stubItemRepo{item: item})

	dto, err := svc.Update(context.Background(), item.ID, UpdateItemInput{
		PurchasePrice: types.NullableFloat{Valid: true, Value: nil},
	})
	if err != nil {
		t.Fatalf("update item: %v", err)
	}
	if dto.PurchasePrice != nil {
		t.Fatalf("explicit null should clear purchase price, got %v", dto.PurchasePrice)
	}
}

func TestServiceUpdateSetsExplicitUnitPrice(t *testing.T) {
	item := baseItem()
	svc, _ := NewService(&stubItemRepo{item: item})

	price := 26000.0
	dto, err := svc.Update(context.Background(), item.ID, UpdateItemInput{UnitPrice: &price})
	if err != nil {
		t.Fatalf("update item: %v", err)
	}
	if dto.UnitPrice != 26000 {
		t.Fatalf("expected unit price 26000, got %v", dto.UnitPrice)
	}
}

func TestServiceDerivedPrice(t *testing.T) {
	item := baseItem()
	svc, _ := NewService(&stubItemRepo{item: item})

	dto, err := svc.DerivedPrice(context.Background(), item.ID)
	if err != nil {
		t.Fatalf("derived price: %v", err)
	}
	if dto.DerivedUnitPrice != 27000 {
		t.Fatalf("expected derived price 27000, got %v", dto.DerivedUnitPrice)
	}
	if dto.CurrentUnitPrice != 25000 {
		t.Fatalf("expected current price 25000, got %v", dto.CurrentUnitPrice)
	}
}

func TestServiceDerivedPriceWithoutPurchasePrice(t *testing.T) {
	item := baseItem()
	item.PurchasePrice = nil
	svc, _ := NewService(&stubItemRepo{item: item})

	_, err := svc.DerivedPrice(context.Background(), item.ID)
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation code, got %v", err)
	}
}

func TestServiceGetNotFound(t *testing.T) {
	svc, _ := NewService(&stubItemRepo{err: gorm.ErrRecordNotFound})

	_, err := svc.Get(context.Background(), uuid.New())
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found code, got %v", err)
	}
}

func TestServiceListDependencyError(t *testing.T) {
	svc, _ := NewService(&stubItemRepo{err: errors.New("boom")})

	_, err := svc.List(context.Background(), "")
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeDependency {
		t.Fatalf("expected dependency code, got %v", err)
	}
}
