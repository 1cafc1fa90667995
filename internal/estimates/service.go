package estimates

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Leadfive-LLC/estimate-system/internal/pricing"
	"github.com/Leadfive-LLC/estimate-system/pkg/db"
	"github.com/Leadfive-LLC/estimate-system/pkg/db/models"
	"github.com/Leadfive-LLC/estimate-system/pkg/enums"
	pkgerrors "github.com/Leadfive-LLC/estimate-system/pkg/errors"
	"github.com/Leadfive-LLC/estimate-system/pkg/types"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Service exposes estimate document operations. All reads and writes are
// scoped to the owning user.
type Service interface {
	List(ctx context.Context, userID uuid.UUID, status enums.EstimateStatus) ([]EstimateSummaryDTO, error)
	Get(ctx context.Context, userID, estimateID uuid.UUID) (*EstimateDetailDTO, error)
	Create(ctx context.Context, userID uuid.UUID, input CreateEstimateInput) (*EstimateDetailDTO, error)
	Update(ctx context.Context, userID, estimateID uuid.UUID, input UpdateEstimateInput) (*EstimateDetailDTO, error)
	Delete(ctx context.Context, userID, estimateID uuid.UUID) error
}

// EstimateItemInput is one requested line. UnitPrice overrides the catalog
// price when set; the line amount is always recomputed server-side.
type EstimateItemInput struct {
	ItemID    uuid.UUID
	Quantity  float64
	UnitPrice *float64
	Notes     *string
}

// CreateEstimateInput holds the validated payload to create an estimate.
type CreateEstimateInput struct {
	Title       string
	ClientID    uuid.UUID
	Description *string
	Status      *enums.EstimateStatus
	ValidUntil  *time.Time
	Notes       *string
	Items       []EstimateItemInput
}

// UpdateEstimateInput holds optional mutation values. A nil Items pointer
// keeps the current lines; a non-nil pointer replaces the full set, so an
// empty slice clears the estimate and its total.
type UpdateEstimateInput struct {
	Title       *string
	ClientID    *uuid.UUID
	Description types.NullableString
	Status      *enums.EstimateStatus
	ValidUntil  types.NullableTime
	Notes       types.NullableString
	Items       *[]EstimateItemInput
}

type itemLoader interface {
	FindActiveByIDs(ctx context.Context, ids []uuid.UUID) ([]models.Item, error)
}

type clientLoader interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Client, error)
}

type service struct {
	repo     *Repository
	dbClient *db.Client
	items    itemLoader
	clients  clientLoader
}

// NewService constructs the estimate service.
func NewService(repo *Repository, dbClient *db.Client, items itemLoader, clients clientLoader) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("estimate repository required")
	}
	if dbClient == nil {
		return nil, fmt.Errorf("db client required")
	}
	if items == nil {
		return nil, fmt.Errorf("item loader required")
	}
	if clients == nil {
		return nil, fmt.Errorf("client loader required")
	}
	return &service{repo: repo, dbClient: dbClient, items: items, clients: clients}, nil
}

// List returns the user's estimates, newest first.
func (s *service) List(ctx context.Context, userID uuid.UUID, status enums.EstimateStatus) ([]EstimateSummaryDTO, error) {
	if status != "" && !status.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid status filter")
	}

	rows, err := s.repo.ListByUser(ctx, userID, status)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: list estimates")
	}

	ids := make([]uuid.UUID, 0, len(rows))
	for i := range rows {
		ids = append(ids, rows[i].ID)
	}
	counts, err := s.repo.CountItems(ctx, ids)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: count estimate items")
	}

	dtos := make([]EstimateSummaryDTO, 0, len(rows))
	for i := range rows {
		dtos = append(dtos, *SummaryFromModel(&rows[i], counts[rows[i].ID]))
	}
	return dtos, nil
}

// Get loads the full estimate document with its tax breakdown.
func (s *service) Get(ctx context.Context, userID, estimateID uuid.UUID) (*EstimateDetailDTO, error) {
	return s.loadDetail(ctx, userID, estimateID)
}

// Create builds the estimate in a single transaction. Line amounts and the
// stored total are recomputed here regardless of what the caller sent.
func (s *service) Create(ctx context.Context, userID uuid.UUID, input CreateEstimateInput) (*EstimateDetailDTO, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "title is required")
	}

	if len(input.Items) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "at least one item is required")
	}

	status := enums.EstimateStatusDraft
	if input.Status != nil {
		if !input.Status.IsValid() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid status")
		}
		status = *input.Status
	}

	if err := s.ensureClient(ctx, input.ClientID); err != nil {
		return nil, err
	}

	lines, total, err := s.buildLines(ctx, input.Items)
	if err != nil {
		return nil, err
	}

	estimate := &models.Estimate{
		Title:       title,
		ClientID:    input.ClientID,
		UserID:      userID,
		Description: input.Description,
		Status:      status,
		TotalAmount: total,
		ValidUntil:  input.ValidUntil,
		Notes:       input.Notes,
	}

	if err := s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		txRepo := s.repo.WithTx(tx)
		if _, err := txRepo.Create(ctx, estimate); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: insert estimate")
		}
		if err := txRepo.ReplaceItems(ctx, estimate.ID, withEstimateID(estimate.ID, lines)); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: insert estimate items")
		}
		return nil
	}); err != nil {
		if pkgerrors.As(err) != nil {
			return nil, err
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create estimate")
	}

	return s.loadDetail(ctx, userID, estimate.ID)
}

// Update mutates the header and, when a new line set is provided, replaces
// every line and recomputes the total inside one transaction.
func (s *service) Update(ctx context.Context, userID, estimateID uuid.UUID, input UpdateEstimateInput) (*EstimateDetailDTO, error) {
	estimate, err := s.loadOwned(ctx, userID, estimateID)
	if err != nil {
		return nil, err
	}

	if input.Title != nil {
		title := strings.TrimSpace(*input.Title)
		if title == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "title cannot be empty")
		}
		estimate.Title = title
	}
	if input.ClientID != nil {
		if err := s.ensureClient(ctx, *input.ClientID); err != nil {
			return nil, err
		}
		estimate.ClientID = *input.ClientID
	}
	if input.Status != nil {
		if !input.Status.IsValid() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid status")
		}
		estimate.Status = *input.Status
	}
	if input.Description.Valid {
		estimate.Description = input.Description.Value
	}
	if input.ValidUntil.Valid {
		estimate.ValidUntil = input.ValidUntil.Value
	}
	if input.Notes.Valid {
		estimate.Notes = input.Notes.Value
	}

	var lines []models.EstimateItem
	if input.Items != nil {
		var total float64
		lines, total, err = s.buildLines(ctx, *input.Items)
		if err != nil {
			return nil, err
		}
		estimate.TotalAmount = total
	}

	if err := s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		txRepo := s.repo.WithTx(tx)
		if err := txRepo.UpdateHeader(ctx, estimate); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: update estimate")
		}
		if input.Items != nil {
			if err := txRepo.ReplaceItems(ctx, estimate.ID, withEstimateID(estimate.ID, lines)); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: replace estimate items")
			}
		}
		return nil
	}); err != nil {
		if pkgerrors.As(err) != nil {
			return nil, err
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update estimate")
	}

	return s.loadDetail(ctx, userID, estimate.ID)
}

// Delete removes the estimate and its lines.
func (s *service) Delete(ctx context.Context, userID, estimateID uuid.UUID) error {
	if _, err := s.loadOwned(ctx, userID, estimateID); err != nil {
		return err
	}

	if err := s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		txRepo := s.repo.WithTx(tx)
		if err := txRepo.ReplaceItems(ctx, estimateID, nil); err != nil {
			return err
		}
		return txRepo.Delete(ctx, estimateID)
	}); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: delete estimate")
	}
	return nil
}

// buildLines resolves catalog items and recomputes every line amount plus the
// document total.
func (s *service) buildLines(ctx context.Context, inputs []EstimateItemInput) ([]models.EstimateItem, float64, error) {
	if len(inputs) == 0 {
		return nil, 0, nil
	}

	ids := make([]uuid.UUID, 0, len(inputs))
	for _, line := range inputs {
		ids = append(ids, line.ItemID)
	}
	catalog, err := s.items.FindActiveByIDs(ctx, ids)
	if err != nil {
		return nil, 0, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load items")
	}
	byID := make(map[uuid.UUID]*models.Item, len(catalog))
	for i := range catalog {
		byID[catalog[i].ID] = &catalog[i]
	}

	lines := make([]models.EstimateItem, 0, len(inputs))
	amounts := make([]float64, 0, len(inputs))
	for idx, line := range inputs {
		item, ok := byID[line.ItemID]
		if !ok {
			return nil, 0, pkgerrors.New(pkgerrors.CodeNotFound, "item not found").
				WithDetails(map[string]any{"item_id": line.ItemID})
		}

		unitPrice := item.UnitPrice
		if line.UnitPrice != nil {
			unitPrice = *line.UnitPrice
		}
		amount, err := pricing.LineAmount(line.Quantity, unitPrice)
		if err != nil {
			return nil, 0, pkgerrors.New(pkgerrors.CodeValidation, "quantity and unit_price must be finite numbers")
		}

		lines = append(lines, models.EstimateItem{
			ItemID:    line.ItemID,
			Quantity:  line.Quantity,
			UnitPrice: unitPrice,
			Amount:    amount,
			Notes:     line.Notes,
			Position:  idx,
		})
		amounts = append(amounts, amount)
	}

	total, err := pricing.Total(amounts)
	if err != nil {
		return nil, 0, pkgerrors.New(pkgerrors.CodeValidation, "line amounts must be finite numbers")
	}
	return lines, total, nil
}

func (s *service) ensureClient(ctx context.Context, clientID uuid.UUID) error {
	if _, err := s.clients.FindByID(ctx, clientID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "client not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load client")
	}
	return nil
}

// loadOwned fetches the estimate header and hides other users' documents
// behind a not-found answer.
func (s *service) loadOwned(ctx context.Context, userID, estimateID uuid.UUID) (*models.Estimate, error) {
	estimate, err := s.repo.FindByID(ctx, estimateID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "estimate not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load estimate")
	}
	if estimate.UserID != userID {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "estimate not found")
	}
	return estimate, nil
}

func (s *service) loadDetail(ctx context.Context, userID, estimateID uuid.UUID) (*EstimateDetailDTO, error) {
	estimate, err := s.repo.FindDetail(ctx, estimateID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "estimate not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load estimate detail")
	}
	if estimate.UserID != userID {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "estimate not found")
	}

	subtotal, tax, err := pricing.TaxBreakdown(estimate.TotalAmount)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "compute tax breakdown")
	}
	return DetailFromModel(estimate, TaxBreakdownDTO{
		Subtotal: subtotal,
		Tax:      tax,
		Total:    estimate.TotalAmount,
	}), nil
}

func withEstimateID(id uuid.UUID, lines []models.EstimateItem) []models.EstimateItem {
	for i := range lines {
		lines[i].EstimateID = id
	}
	return lines
}
