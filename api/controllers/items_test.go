package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/Leadfive-LLC/estimate-system/internal/items"
	pkgerrors "github.com/Leadfive-LLC/estimate-system/pkg/errors"
)

type stubItemService struct {
	list       []items.ItemDTO
	categories []string
	item       *items.ItemDTO
	derived    *items.DerivedPriceDTO
	err        error

	listCategory string
	created      *items.CreateItemInput
}

func (s *stubItemService) List(_ context.Context, category string) ([]items.ItemDTO, error) {
	s.listCategory = category
	return s.list, s.err
}

func (s *stubItemService) Categories(_ context.Context) ([]string, error) {
	return s.categories, s.err
}

func (s *stubItemService) Get(_ context.Context, _ uuid.UUID) (*items.ItemDTO, error) {
	return s.item, s.err
}

func (s *stubItemService) Create(_ context.Context, input items.CreateItemInput) (*items.ItemDTO, error) {
	s.created = &input
	return s.item, s.err
}

func (s *stubItemService) Update(_ context.Context, _ uuid.UUID, _ items.UpdateItemInput) (*items.ItemDTO, error) {
	return s.item, s.err
}

func (s *stubItemService) Delete(_ context.Context, _ uuid.UUID) error {
	return s.err
}

func (s *stubItemService) DerivedPrice(_ context.Context, _ uuid.UUID) (*items.DerivedPriceDTO, error) {
	return s.derived, s.err
}

func withItemParam(req *http.Request, id string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("itemId", id)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}

func TestItemListForwardsCategoryFilter(t *testing.T) {
	svc := &stubItemService{list: []items.ItemDTO{{ID: uuid.New(), Name: "Paving stone"}}}
	handler := ItemList(svc, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/items?category=masonry", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", rec.Code)
	}
	if svc.listCategory != "masonry" {
		t.Fatalf("expected category filter masonry got %q", svc.listCategory)
	}
}

func TestItemCategories(t *testing.T) {
	handler := ItemCategories(&stubItemService{categories: []string{"masonry", "planting"}}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/items/categories", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", rec.Code)
	}

	var envelope struct {
		Data []string `json:"data"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(envelope.Data) != 2 || envelope.Data[0] != "masonry" {
		t.Fatalf("unexpected categories %v", envelope.Data)
	}
}

func TestItemCreateRejectsNonPositiveMarkup(t *testing.T) {
	handler := ItemCreate(&stubItemService{}, nil)

	req := authedRequest(http.MethodPost, "/api/items", []byte(`{"name":"Topsoil","category":"planting","markup_rate":0}`))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", rec.Code)
	}
}

func TestItemCreate(t *testing.T) {
	svc := &stubItemService{item: &items.ItemDTO{ID: uuid.New(), Name: "Topsoil"}}
	handler := ItemCreate(svc, nil)

	req := authedRequest(http.MethodPost, "/api/items", []byte(`{"name":" Topsoil ","category":"planting","purchase_price":3000,"markup_rate":1.5}`))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d", rec.Code)
	}
	if svc.created == nil || svc.created.Name != "Topsoil" {
		t.Fatalf("expected trimmed name, got %+v", svc.created)
	}
}

func TestItemDerivedPrice(t *testing.T) {
	itemID := uuid.New()
	derived := &items.DerivedPriceDTO{
		ItemID:           itemID,
		PurchasePrice:    18000,
		MarkupRate:       1.5,
		DerivedUnitPrice: 27000,
		CurrentUnitPrice: 25000,
	}
	handler := ItemDerivedPrice(&stubItemService{derived: derived}, nil)

	req := withItemParam(httptest.NewRequest(http.MethodGet, "/api/items/"+itemID.String()+"/derived-price", nil), itemID.String())
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", rec.Code)
	}

	var envelope struct {
		Data items.DerivedPriceDTO `json:"data"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Data.DerivedUnitPrice != 27000 || envelope.Data.CurrentUnitPrice != 25000 {
		t.Fatalf("unexpected payload %+v", envelope.Data)
	}
}

func TestItemDerivedPriceWithoutPurchasePrice(t *testing.T) {
	handler := ItemDerivedPrice(&stubItemService{err: pkgerrors.New(pkgerrors.CodeValidation, "item has no purchase price")}, nil)

	id := uuid.NewString()
	req := withItemParam(httptest.NewRequest(http.MethodGet, "/api/items/"+id+"/derived-price", nil), id)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", rec.Code)
	}
}
