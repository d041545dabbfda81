package repositories

import (
	"context"
	"time"

	"maintdesk/internal/adapters/persistence/models"
	"maintdesk/internal/core/domain"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// workOrderRepository implements WorkOrderRepository interface
type workOrderRepository struct {
	db *gorm.DB
}

// NewWorkOrderRepository creates a new work order repository
func NewWorkOrderRepository(db *gorm.DB) WorkOrderRepository {
	return &workOrderRepository{db: db}
}

// Create creates a new work order
func (r *workOrderRepository) Create(ctx context.Context, workOrder *models.WorkOrder) error {
	return errors.Wrap(r.db.WithContext(ctx).Create(workOrder).Error, "create work order")
}

// GetByID gets a work order by ID with its issue preloaded
func (r *workOrderRepository) GetByID(ctx context.Context, id uint) (*models.WorkOrder, error) {
	var workOrder models.WorkOrder
	err := r.db.WithContext(ctx).
		Preload("Issue").
		Preload("Issue.Machine").
		Where("id = ?", id).
		First(&workOrder).Error
	if err != nil {
		return nil, err
	}
	return &workOrder, nil
}

// GetByIssueID gets the work order derived from an issue, if any
func (r *workOrderRepository) GetByIssueID(ctx context.Context, issueID uint) (*models.WorkOrder, error) {
	var workOrder models.WorkOrder
	err := r.db.WithContext(ctx).Where("issue_id = ?", issueID).First(&workOrder).Error
	if err != nil {
		return nil, err
	}
	return &workOrder, nil
}

// List lists work orders matching the filter with pagination
func (r *workOrderRepository) List(ctx context.Context, filter WorkOrderFilter, offset, limit int) ([]*models.WorkOrder, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.WorkOrder{})
	if filter.Status != "" {
		query = query.Where("status = ?", string(filter.Status))
	}
	if filter.Technician != 0 {
		query = query.Where("assigned_technician = ?", filter.Technician)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var workOrders []*models.WorkOrder
	err := query.
		Preload("Issue").
		Order("scheduled_date ASC").
		Offset(offset).
		Limit(limit).
		Find(&workOrders).Error
	if err != nil {
		return nil, 0, err
	}
	return workOrders, total, nil
}

// UpdateStatus changes the status with a compare-and-swap on the old status
func (r *workOrderRepository) UpdateStatus(ctx context.Context, id uint, from, to domain.Status) error {
	res := r.db.WithContext(ctx).
		Model(&models.WorkOrder{}).
		Where("id = ? AND status = ?", id, string(from)).
		Update("status", string(to))
	if res.Error != nil {
		return errors.Wrap(res.Error, "update work order status")
	}
	if res.RowsAffected == 0 {
		return domain.ErrStaleEntity
	}
	return nil
}

// ListOverdue lists unresolved work orders scheduled before the cutoff
func (r *workOrderRepository) ListOverdue(ctx context.Context, before time.Time) ([]*models.WorkOrder, error) {
	var workOrders []*models.WorkOrder
	err := r.db.WithContext(ctx).
		Preload("Issue").
		Where("scheduled_date < ?", before).
		Where("status <> ?", string(domain.StatusResolved)).
		Order("scheduled_date ASC").
		Find(&workOrders).Error
	if err != nil {
		return nil, err
	}
	return workOrders, nil
}

// CountByStatus returns work order counts grouped by status
func (r *workOrderRepository) CountByStatus(ctx context.Context) (map[string]int64, error) {
	return countByStatus(ctx, r.db, &models.WorkOrder{})
}
