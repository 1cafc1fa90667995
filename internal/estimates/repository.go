package estimates

import (
	"context"

	"github.com/Leadfive-LLC/estimate-system/pkg/db/models"
	"github.com/Leadfive-LLC/estimate-system/pkg/enums"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repository exposes estimate persistence operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs an estimates repo bound to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx returns a repository bound to the provided transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return &Repository{db: tx}
}

// ListByUser returns the user's estimates newest first, optionally filtered
// by status. The client association is preloaded for summary rows.
func (r *Repository) ListByUser(ctx context.Context, userID uuid.UUID, status enums.EstimateStatus) ([]models.Estimate, error) {
	query := r.db.WithContext(ctx).
		Preload("Client").
		Where("user_id = ?", userID)
	if status != "" {
		query = query.Where("status = ?", status)
	}
	var rows []models.Estimate
	if err := query.Order("created_at DESC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// CountItems returns line counts per estimate for the provided IDs.
func (r *Repository) CountItems(ctx context.Context, estimateIDs []uuid.UUID) (map[uuid.UUID]int, error) {
	counts := make(map[uuid.UUID]int, len(estimateIDs))
	if len(estimateIDs) == 0 {
		return counts, nil
	}
	type row struct {
		EstimateID uuid.UUID
		Count      int
	}
	var rows []row
	if err := r.db.WithContext(ctx).
		Model(&models.EstimateItem{}).
		Select("estimate_id, COUNT(*) AS count").
		Where("estimate_id IN ?", estimateIDs).
		Group("estimate_id").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	for _, r := range rows {
		counts[r.EstimateID] = r.Count
	}
	return counts, nil
}

// FindByID loads the estimate header without associations.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Estimate, error) {
	var estimate models.Estimate
	if err := r.db.WithContext(ctx).First(&estimate, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &estimate, nil
}

// FindDetail loads the estimate with its client and ordered line items.
func (r *Repository) FindDetail(ctx context.Context, id uuid.UUID) (*models.Estimate, error) {
	var estimate models.Estimate
	if err := r.db.WithContext(ctx).
		Preload("Client").
		Preload("Items", func(tx *gorm.DB) *gorm.DB {
			return tx.Order("position ASC")
		}).
		Preload("Items.Item").
		First(&estimate, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &estimate, nil
}

// Create inserts the estimate header together with its line items.
func (r *Repository) Create(ctx context.Context, estimate *models.Estimate) (*models.Estimate, error) {
	if err := r.db.WithContext(ctx).Create(estimate).Error; err != nil {
		return nil, err
	}
	return estimate, nil
}

// UpdateHeader persists the estimate row without touching its items.
func (r *Repository) UpdateHeader(ctx context.Context, estimate *models.Estimate) error {
	return r.db.WithContext(ctx).
		Model(&models.Estimate{}).
		Where("id = ?", estimate.ID).
		Select("title", "client_id", "description", "status", "total_amount", "valid_until", "notes").
		Updates(map[string]any{
			"title":        estimate.Title,
			"client_id":    estimate.ClientID,
			"description":  estimate.Description,
			"status":       estimate.Status,
			"total_amount": estimate.TotalAmount,
			"valid_until":  estimate.ValidUntil,
			"notes":        estimate.Notes,
		}).Error
}

// ReplaceItems removes every line for the estimate and inserts the new set.
// Callers run this inside a transaction so a failed insert never leaves the
// estimate half-replaced.
func (r *Repository) ReplaceItems(ctx context.Context, estimateID uuid.UUID, items []models.EstimateItem) error {
	tx := r.db.WithContext(ctx)
	if err := tx.Where("estimate_id = ?", estimateID).Delete(&models.EstimateItem{}).Error; err != nil {
		return err
	}
	if len(items) == 0 {
		return nil
	}
	return tx.Create(&items).Error
}

// Delete removes the estimate; line items go with it via FK cascade.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&models.Estimate{}, "id = ?", id).Error
}
