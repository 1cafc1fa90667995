package controllers

import (
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/Leadfive-LLC/estimate-system/api/responses"
	"github.com/Leadfive-LLC/estimate-system/api/validators"
	"github.com/Leadfive-LLC/estimate-system/internal/items"
	pkgerrors "github.com/Leadfive-LLC/estimate-system/pkg/errors"
	"github.com/Leadfive-LLC/estimate-system/pkg/logger"
	"github.com/Leadfive-LLC/estimate-system/pkg/types"
)

type itemCreateRequest struct {
	Name          string   `json:"name" validate:"required"`
	Category      string   `json:"category" validate:"required"`
	Specification *string  `json:"specification,omitempty"`
	Unit          *string  `json:"unit,omitempty"`
	PurchasePrice *float64 `json:"purchase_price,omitempty" validate:"omitempty,min=0"`
	MarkupRate    *float64 `json:"markup_rate,omitempty" validate:"omitempty,gt=0"`
	UnitPrice     *float64 `json:"unit_price,omitempty" validate:"omitempty,min=0"`
	Description   *string  `json:"description,omitempty"`
}

func (r itemCreateRequest) toInput() items.CreateItemInput {
	return items.CreateItemInput{
		Name:          strings.TrimSpace(r.Name),
		Category:      strings.TrimSpace(r.Category),
		Specification: r.Specification,
		Unit:          r.Unit,
		PurchasePrice: r.PurchasePrice,
		MarkupRate:    r.MarkupRate,
		UnitPrice:     r.UnitPrice,
		Description:   r.Description,
	}
}

type itemUpdateRequest struct {
	Name          *string              `json:"name,omitempty" validate:"omitempty,min=1"`
	Category      *string              `json:"category,omitempty" validate:"omitempty,min=1"`
	Specification types.NullableString `json:"specification,omitempty"`
	Unit          types.NullableString `json:"unit,omitempty"`
	PurchasePrice types.NullableFloat  `json:"purchase_price,omitempty"`
	MarkupRate    *float64             `json:"markup_rate,omitempty" validate:"omitempty,gt=0"`
	UnitPrice     *float64             `json:"unit_price,omitempty" validate:"omitempty,min=0"`
	Description   types.NullableString `json:"description,omitempty"`
}

func (r itemUpdateRequest) toInput() items.UpdateItemInput {
	return items.UpdateItemInput{
		Name:          r.Name,
		Category:      r.Category,
		Specification: r.Specification,
		Unit:          r.Unit,
		PurchasePrice: r.PurchasePrice,
		MarkupRate:    r.MarkupRate,
		UnitPrice:     r.UnitPrice,
		Description:   r.Description,
	}
}

// ItemList returns active catalog items, optionally filtered by category.
func ItemList(svc items.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "item service unavailable"))
			return
		}

		list, err := svc.List(r.Context(), validators.ParseCategoryQuery(r))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, list)
	}
}

func ItemCategories(svc items.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "item service unavailable"))
			return
		}

		categories, err := svc.Categories(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, categories)
	}
}

func ItemGet(svc items.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "item service unavailable"))
			return
		}

		id, err := itemIDParam(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		item, err := svc.Get(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, item)
	}
}

func ItemCreate(svc items.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "item service unavailable"))
			return
		}

		var payload itemCreateRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		created, err := svc.Create(r.Context(), payload.toInput())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, created)
	}
}

func ItemUpdate(svc items.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "item service unavailable"))
			return
		}

		id, err := itemIDParam(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload itemUpdateRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		updated, err := svc.Update(r.Context(), id, payload.toInput())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, updated)
	}
}

// ItemDelete deactivates a catalog item; existing estimate lines keep their
// copied name and price.
func ItemDelete(svc items.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "item service unavailable"))
			return
		}

		id, err := itemIDParam(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.Delete(r.Context(), id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, nil)
	}
}

// ItemDerivedPrice previews purchase price times markup without mutating the
// stored unit price.
func ItemDerivedPrice(svc items.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "item service unavailable"))
			return
		}

		id, err := itemIDParam(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		derived, err := svc.DerivedPrice(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, derived)
	}
}

func itemIDParam(r *http.Request) (uuid.UUID, error) {
	raw, err := validators.ParseUUIDParam(r, "itemId")
	if err != nil {
		return uuid.Nil, err
	}
	return uuid.MustParse(raw), nil
}
