package repositories

import (
	"context"
	"errors"

	"maintdesk/internal/adapters/persistence/models"
	"maintdesk/internal/core/domain"

	pkgerrors "github.com/pkg/errors"
	"gorm.io/gorm"
)

// ErrInsufficientStock is returned when a fulfillment would draw a
// part's stock below zero.
var ErrInsufficientStock = errors.New("insufficient part stock")

// partRequestRepository implements PartRequestRepository interface
type partRequestRepository struct {
	db *gorm.DB
}

// NewPartRequestRepository creates a new part request repository
func NewPartRequestRepository(db *gorm.DB) PartRequestRepository {
	return &partRequestRepository{db: db}
}

// Create creates a part request together with its item rows
func (r *partRequestRepository) Create(ctx context.Context, request *models.PartRequest) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(request).Error
	})
	return pkgerrors.Wrap(err, "create part request")
}

// GetByID gets a part request by ID with its items preloaded
func (r *partRequestRepository) GetByID(ctx context.Context, id string) (*models.PartRequest, error) {
	var request models.PartRequest
	err := r.db.WithContext(ctx).
		Preload("Items").
		Preload("Items.Part").
		Where("id = ?", id).
		First(&request).Error
	if err != nil {
		return nil, err
	}
	return &request, nil
}

// ListByWorkOrder lists all part requests linked to a work order
func (r *partRequestRepository) ListByWorkOrder(ctx context.Context, workOrderID uint) ([]*models.PartRequest, error) {
	var requests []*models.PartRequest
	err := r.db.WithContext(ctx).
		Preload("Items").
		Where("work_order_id = ?", workOrderID).
		Order("created_at ASC").
		Find(&requests).Error
	if err != nil {
		return nil, err
	}
	return requests, nil
}

// ListByStatus lists part requests in a status with pagination
func (r *partRequestRepository) ListByStatus(ctx context.Context, status domain.Status, offset, limit int) ([]*models.PartRequest, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.PartRequest{})
	if status != "" {
		query = query.Where("status = ?", string(status))
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var requests []*models.PartRequest
	err := query.
		Preload("Items").
		Order("created_at ASC").
		Offset(offset).
		Limit(limit).
		Find(&requests).Error
	if err != nil {
		return nil, 0, err
	}
	return requests, total, nil
}

// StatusesByWorkOrder returns only the statuses of a work order's part
// requests, the read the lifecycle guard runs before a resolution.
func (r *partRequestRepository) StatusesByWorkOrder(ctx context.Context, workOrderID uint) ([]domain.Status, error) {
	var raw []string
	err := r.db.WithContext(ctx).
		Model(&models.PartRequest{}).
		Where("work_order_id = ?", workOrderID).
		Pluck("status", &raw).Error
	if err != nil {
		return nil, pkgerrors.Wrap(err, "part request statuses")
	}
	statuses := make([]domain.Status, len(raw))
	for i, s := range raw {
		statuses[i] = domain.Status(s)
	}
	return statuses, nil
}

// UpdateStatus changes the status with a compare-and-swap on the old status
func (r *partRequestRepository) UpdateStatus(ctx context.Context, id string, from, to domain.Status) error {
	res := r.db.WithContext(ctx).
		Model(&models.PartRequest{}).
		Where("id = ? AND status = ?", id, string(from)).
		Update("status", string(to))
	if res.Error != nil {
		return pkgerrors.Wrap(res.Error, "update part request status")
	}
	if res.RowsAffected == 0 {
		return domain.ErrStaleEntity
	}
	return nil
}

// Fulfill marks an approved request fulfilled and decrements stock for
// every item. The status compare-and-swap and the guarded stock updates
// share one transaction, so a stale status or an empty shelf rolls the
// whole fulfillment back.
func (r *partRequestRepository) Fulfill(ctx context.Context, request *models.PartRequest) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.
			Model(&models.PartRequest{}).
			Where("id = ? AND status = ?", request.ID, string(domain.StatusApproved)).
			Update("status", string(domain.StatusFulfilled))
		if res.Error != nil {
			return pkgerrors.Wrap(res.Error, "fulfill part request")
		}
		if res.RowsAffected == 0 {
			return domain.ErrStaleEntity
		}

		for _, item := range request.Items {
			res := tx.
				Model(&models.Part{}).
				Where("id = ? AND stock_qty >= ?", item.PartID, item.Quantity).
				Update("stock_qty", gorm.Expr("stock_qty - ?", item.Quantity))
			if res.Error != nil {
				return pkgerrors.Wrap(res.Error, "decrement part stock")
			}
			if res.RowsAffected == 0 {
				return ErrInsufficientStock
			}
		}
		return nil
	})
}

// DeletePending removes a request and its items, but only while the
// request row is still pending. The status predicate keeps a concurrent
// approval from racing the delete.
func (r *partRequestRepository) DeletePending(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.
			Where("id = ? AND status = ?", id, string(domain.StatusPending)).
			Delete(&models.PartRequest{})
		if res.Error != nil {
			return pkgerrors.Wrap(res.Error, "delete part request")
		}
		if res.RowsAffected == 0 {
			return domain.ErrStaleEntity
		}
		return pkgerrors.Wrap(
			tx.Where("part_request_id = ?", id).Delete(&models.PartRequestItem{}).Error,
			"delete part request items")
	})
}
