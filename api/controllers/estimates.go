package controllers

import (
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Leadfive-LLC/estimate-system/api/responses"
	"github.com/Leadfive-LLC/estimate-system/api/validators"
	"github.com/Leadfive-LLC/estimate-system/internal/estimates"
	"github.com/Leadfive-LLC/estimate-system/pkg/enums"
	pkgerrors "github.com/Leadfive-LLC/estimate-system/pkg/errors"
	"github.com/Leadfive-LLC/estimate-system/pkg/logger"
	"github.com/Leadfive-LLC/estimate-system/pkg/types"
)

type estimateItemRequest struct {
	ItemID string `json:"item_id" validate:"required,uuid"`
	// No required tag: zero is a legitimate quantity for a placeholder line.
	Quantity  float64  `json:"quantity"`
	UnitPrice *float64 `json:"unit_price,omitempty"`
	Notes     *string  `json:"notes,omitempty"`
}

func (r estimateItemRequest) toInput() (estimates.EstimateItemInput, error) {
	itemID, err := uuid.Parse(r.ItemID)
	if err != nil {
		return estimates.EstimateItemInput{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid item id")
	}
	return estimates.EstimateItemInput{
		ItemID:    itemID,
		Quantity:  r.Quantity,
		UnitPrice: r.UnitPrice,
		Notes:     r.Notes,
	}, nil
}

type estimateCreateRequest struct {
	Title       string                `json:"title" validate:"required"`
	ClientID    string                `json:"client_id" validate:"required,uuid"`
	Description *string               `json:"description,omitempty"`
	Status      *string               `json:"status,omitempty"`
	ValidUntil  *time.Time            `json:"valid_until,omitempty"`
	Notes       *string               `json:"notes,omitempty"`
	Items       []estimateItemRequest `json:"items,omitempty" validate:"omitempty,dive"`
}

func (r estimateCreateRequest) toInput() (estimates.CreateEstimateInput, error) {
	clientID, err := uuid.Parse(r.ClientID)
	if err != nil {
		return estimates.CreateEstimateInput{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid client id")
	}

	input := estimates.CreateEstimateInput{
		Title:       strings.TrimSpace(r.Title),
		ClientID:    clientID,
		Description: r.Description,
		ValidUntil:  r.ValidUntil,
		Notes:       r.Notes,
	}

	if r.Status != nil {
		status, err := enums.ParseEstimateStatus(*r.Status)
		if err != nil {
			return estimates.CreateEstimateInput{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid status")
		}
		input.Status = &status
	}

	for _, line := range r.Items {
		item, err := line.toInput()
		if err != nil {
			return estimates.CreateEstimateInput{}, err
		}
		input.Items = append(input.Items, item)
	}

	return input, nil
}

type estimateUpdateRequest struct {
	Title       *string                `json:"title,omitempty" validate:"omitempty,min=1"`
	ClientID    *string                `json:"client_id,omitempty" validate:"omitempty,uuid"`
	Description types.NullableString   `json:"description,omitempty"`
	Status      *string                `json:"status,omitempty"`
	ValidUntil  types.NullableTime     `json:"valid_until,omitempty"`
	Notes       types.NullableString   `json:"notes,omitempty"`
	Items       *[]estimateItemRequest `json:"items,omitempty"`
}

func (r estimateUpdateRequest) toInput() (estimates.UpdateEstimateInput, error) {
	input := estimates.UpdateEstimateInput{
		Title:       r.Title,
		Description: r.Description,
		ValidUntil:  r.ValidUntil,
		Notes:       r.Notes,
	}

	if r.ClientID != nil {
		clientID, err := uuid.Parse(*r.ClientID)
		if err != nil {
			return estimates.UpdateEstimateInput{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid client id")
		}
		input.ClientID = &clientID
	}

	if r.Status != nil {
		status, err := enums.ParseEstimateStatus(*r.Status)
		if err != nil {
			return estimates.UpdateEstimateInput{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid status")
		}
		input.Status = &status
	}

	if r.Items != nil {
		lines := make([]estimates.EstimateItemInput, 0, len(*r.Items))
		for _, line := range *r.Items {
			item, err := line.toInput()
			if err != nil {
				return estimates.UpdateEstimateInput{}, err
			}
			lines = append(lines, item)
		}
		input.Items = &lines
	}

	return input, nil
}

// EstimateList returns the caller's estimates, optionally filtered by status.
func EstimateList(svc estimates.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "estimate service unavailable"))
			return
		}

		userID, err := requestUserID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		statusFilter, err := validators.ParseStatusQuery(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var status enums.EstimateStatus
		if statusFilter != nil {
			status = *statusFilter
		}

		list, err := svc.List(r.Context(), userID, status)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, list)
	}
}

func EstimateGet(svc estimates.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "estimate service unavailable"))
			return
		}

		userID, err := requestUserID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		estimateID, err := estimateIDParam(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		detail, err := svc.Get(r.Context(), userID, estimateID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, detail)
	}
}

func EstimateCreate(svc estimates.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "estimate service unavailable"))
			return
		}

		userID, err := requestUserID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload estimateCreateRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input, err := payload.toInput()
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		created, err := svc.Create(r.Context(), userID, input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, created)
	}
}

func EstimateUpdate(svc estimates.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "estimate service unavailable"))
			return
		}

		userID, err := requestUserID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		estimateID, err := estimateIDParam(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload estimateUpdateRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input, err := payload.toInput()
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		updated, err := svc.Update(r.Context(), userID, estimateID, input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, updated)
	}
}

func EstimateDelete(svc estimates.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "estimate service unavailable"))
			return
		}

		userID, err := requestUserID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		estimateID, err := estimateIDParam(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.Delete(r.Context(), userID, estimateID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, nil)
	}
}

func estimateIDParam(r *http.Request) (uuid.UUID, error) {
	raw, err := validators.ParseUUIDParam(r, "estimateId")
	if err != nil {
		return uuid.Nil, err
	}
	return uuid.MustParse(raw), nil
}
