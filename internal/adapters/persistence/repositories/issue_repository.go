package repositories

import (
	"context"

	"maintdesk/internal/adapters/persistence/models"
	"maintdesk/internal/core/domain"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// issueRepository implements IssueRepository interface
type issueRepository struct {
	db *gorm.DB
}

// NewIssueRepository creates a new issue repository
func NewIssueRepository(db *gorm.DB) IssueRepository {
	return &issueRepository{db: db}
}

// Create creates a new issue
func (r *issueRepository) Create(ctx context.Context, issue *models.Issue) error {
	return errors.Wrap(r.db.WithContext(ctx).Create(issue).Error, "create issue")
}

// GetByID gets an issue by ID with its machine preloaded
func (r *issueRepository) GetByID(ctx context.Context, id uint) (*models.Issue, error) {
	var issue models.Issue
	err := r.db.WithContext(ctx).
		Preload("Machine").
		Where("id = ?", id).
		First(&issue).Error
	if err != nil {
		return nil, err
	}
	return &issue, nil
}

// List lists issues matching the filter with pagination
func (r *issueRepository) List(ctx context.Context, filter IssueFilter, offset, limit int) ([]*models.Issue, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.Issue{})
	if filter.Status != "" {
		query = query.Where("status = ?", string(filter.Status))
	}
	if filter.CreatedBy != 0 {
		query = query.Where("created_by = ?", filter.CreatedBy)
	}
	if filter.MachineID != 0 {
		query = query.Where("machine_id = ?", filter.MachineID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var issues []*models.Issue
	err := query.
		Preload("Machine").
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&issues).Error
	if err != nil {
		return nil, 0, err
	}
	return issues, total, nil
}

// Update updates an issue's editable fields
func (r *issueRepository) Update(ctx context.Context, issue *models.Issue) error {
	return errors.Wrap(r.db.WithContext(ctx).Save(issue).Error, "update issue")
}

// UpdateStatus changes the status with a compare-and-swap on the old
// status so a concurrent transition loses cleanly instead of silently
// overwriting.
func (r *issueRepository) UpdateStatus(ctx context.Context, id uint, from, to domain.Status) error {
	res := r.db.WithContext(ctx).
		Model(&models.Issue{}).
		Where("id = ? AND status = ?", id, string(from)).
		Update("status", string(to))
	if res.Error != nil {
		return errors.Wrap(res.Error, "update issue status")
	}
	if res.RowsAffected == 0 {
		return domain.ErrStaleEntity
	}
	return nil
}

// CountByStatus returns issue counts grouped by status
func (r *issueRepository) CountByStatus(ctx context.Context) (map[string]int64, error) {
	return countByStatus(ctx, r.db, &models.Issue{})
}

type statusCount struct {
	Status string
	Count  int64
}

// countByStatus is shared by the dashboard aggregations.
func countByStatus(ctx context.Context, db *gorm.DB, model interface{}) (map[string]int64, error) {
	var rows []statusCount
	err := db.WithContext(ctx).
		Model(model).
		Select("status, COUNT(*) as count").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	counts := make(map[string]int64, len(rows))
	for _, row := range rows {
		counts[row.Status] = row.Count
	}
	return counts, nil
}
