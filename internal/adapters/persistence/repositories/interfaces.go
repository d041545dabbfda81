package repositories

import (
	"context"
	"time"

	"maintdesk/internal/adapters/persistence/models"
	"maintdesk/internal/core/domain"
)

// UserRepository defines user repository interface
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id uint) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	Update(ctx context.Context, user *models.User) error
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, offset, limit int) ([]*models.User, int64, error)
	ListByRole(ctx context.Context, role domain.Role) ([]*models.User, error)
	ExistsByUsername(ctx context.Context, username string) (bool, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
}

// RefreshTokenRepository defines refresh token repository interface
type RefreshTokenRepository interface {
	Create(ctx context.Context, token *models.RefreshToken) error
	GetByTokenHash(ctx context.Context, tokenHash string) (*models.RefreshToken, error)
	Revoke(ctx context.Context, id uint) error
	RevokeByTokenHash(ctx context.Context, tokenHash string) error
	RevokeAllByUserID(ctx context.Context, userID uint) error
	DeleteExpired(ctx context.Context) error
}

// IssueFilter narrows issue listings
type IssueFilter struct {
	Status    domain.Status
	CreatedBy uint
	MachineID uint
}

// IssueRepository defines issue repository interface
type IssueRepository interface {
	Create(ctx context.Context, issue *models.Issue) error
	GetByID(ctx context.Context, id uint) (*models.Issue, error)
	List(ctx context.Context, filter IssueFilter, offset, limit int) ([]*models.Issue, int64, error)
	Update(ctx context.Context, issue *models.Issue) error
	// UpdateStatus changes status only if the row still carries from
	// (compare-and-swap); returns domain.ErrStaleEntity otherwise.
	UpdateStatus(ctx context.Context, id uint, from, to domain.Status) error
	CountByStatus(ctx context.Context) (map[string]int64, error)
}

// WorkOrderFilter narrows work order listings
type WorkOrderFilter struct {
	Status     domain.Status
	Technician uint
}

// WorkOrderRepository defines work order repository interface
type WorkOrderRepository interface {
	Create(ctx context.Context, workOrder *models.WorkOrder) error
	GetByID(ctx context.Context, id uint) (*models.WorkOrder, error)
	GetByIssueID(ctx context.Context, issueID uint) (*models.WorkOrder, error)
	List(ctx context.Context, filter WorkOrderFilter, offset, limit int) ([]*models.WorkOrder, int64, error)
	UpdateStatus(ctx context.Context, id uint, from, to domain.Status) error
	ListOverdue(ctx context.Context, before time.Time) ([]*models.WorkOrder, error)
	CountByStatus(ctx context.Context) (map[string]int64, error)
}

// PartRequestRepository defines part request repository interface
type PartRequestRepository interface {
	Create(ctx context.Context, request *models.PartRequest) error
	GetByID(ctx context.Context, id string) (*models.PartRequest, error)
	ListByWorkOrder(ctx context.Context, workOrderID uint) ([]*models.PartRequest, error)
	ListByStatus(ctx context.Context, status domain.Status, offset, limit int) ([]*models.PartRequest, int64, error)
	// StatusesByWorkOrder feeds the lifecycle guard's dependent check.
	StatusesByWorkOrder(ctx context.Context, workOrderID uint) ([]domain.Status, error)
	UpdateStatus(ctx context.Context, id string, from, to domain.Status) error
	// Fulfill moves an approved request to fulfilled and draws down
	// stock for its items in a single transaction.
	Fulfill(ctx context.Context, request *models.PartRequest) error
	// DeletePending removes a request only while it is still pending.
	DeletePending(ctx context.Context, id string) error
}

// MachineRepository defines machine repository interface
type MachineRepository interface {
	Create(ctx context.Context, machine *models.Machine) error
	GetByID(ctx context.Context, id uint) (*models.Machine, error)
	List(ctx context.Context, offset, limit int) ([]*models.Machine, int64, error)
	Update(ctx context.Context, machine *models.Machine) error
	Delete(ctx context.Context, id uint) error
}

// PartRepository defines part repository interface
type PartRepository interface {
	Create(ctx context.Context, part *models.Part) error
	GetByID(ctx context.Context, id uint) (*models.Part, error)
	List(ctx context.Context, offset, limit int) ([]*models.Part, int64, error)
	Update(ctx context.Context, part *models.Part) error
	Delete(ctx context.Context, id uint) error
}

// CertificateRepository defines certificate repository interface
type CertificateRepository interface {
	Create(ctx context.Context, cert *models.Certificate) error
	GetByID(ctx context.Context, id uint) (*models.Certificate, error)
	ListByUser(ctx context.Context, userID uint) ([]*models.Certificate, error)
	ListExpiringBefore(ctx context.Context, deadline time.Time) ([]*models.Certificate, error)
	Delete(ctx context.Context, id uint) error
}
