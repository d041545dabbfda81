package services

import (
	"context"
	"errors"
	"testing"

	"maintdesk/internal/adapters/persistence/models"
	"maintdesk/internal/adapters/persistence/repositories"
	"maintdesk/internal/core/domain"
	"maintdesk/internal/core/lifecycle"

	"gorm.io/gorm"
)

type fakeIssueRepo struct {
	repositories.IssueRepository
	issue *models.Issue
}

func (f *fakeIssueRepo) GetByID(ctx context.Context, id uint) (*models.Issue, error) {
	if f.issue == nil || f.issue.ID != id {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *f.issue
	return &copied, nil
}

type fakeWorkOrderRepo struct {
	repositories.WorkOrderRepository
	created *models.WorkOrder
}

func (f *fakeWorkOrderRepo) GetByIssueID(ctx context.Context, issueID uint) (*models.WorkOrder, error) {
	if f.created != nil && f.created.IssueID == issueID {
		return f.created, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeWorkOrderRepo) Create(ctx context.Context, workOrder *models.WorkOrder) error {
	workOrder.ID = 1
	f.created = workOrder
	return nil
}

type fakeUserRepo struct {
	repositories.UserRepository
	user *models.User
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id uint) (*models.User, error) {
	if f.user == nil || f.user.ID != id {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *f.user
	return &copied, nil
}

func newWorkOrderFixture(issueStatus domain.Status) (*WorkOrderService, *fakeWorkOrderRepo) {
	issueRepo := &fakeIssueRepo{issue: &models.Issue{
		ID:        42,
		Title:     "Conveyor belt squeals under load",
		MachineID: 5,
		Status:    string(issueStatus),
		CreatedBy: 2,
	}}
	workOrderRepo := &fakeWorkOrderRepo{}
	userRepo := &fakeUserRepo{user: &models.User{
		ID:       9,
		Username: "tech.somchai",
		Role:     string(domain.RoleTechnician),
		IsActive: true,
	}}
	guard := lifecycle.NewGuard(func(ctx context.Context, workOrderID uint) ([]domain.Status, error) {
		return nil, nil
	})
	svc := NewWorkOrderService(workOrderRepo, issueRepo, userRepo, guard, NewNotificationService(nil))
	return svc, workOrderRepo
}

func TestCreateFromIssueRequiresResolvedIssue(t *testing.T) {
	for _, status := range []domain.Status{domain.StatusOpen, domain.StatusInProgress} {
		t.Run(string(status), func(t *testing.T) {
			svc, workOrderRepo := newWorkOrderFixture(status)

			_, err := svc.CreateFromIssue(context.Background(), &CreateWorkOrderInput{
				IssueID:      42,
				TechnicianID: 9,
			})
			if !errors.Is(err, ErrIssueNotResolved) {
				t.Fatalf("CreateFromIssue error = %v, want ErrIssueNotResolved", err)
			}
			if workOrderRepo.created != nil {
				t.Errorf("work order created from a %s issue", status)
			}
		})
	}
}

func TestCreateFromResolvedIssue(t *testing.T) {
	svc, workOrderRepo := newWorkOrderFixture(domain.StatusResolved)

	workOrder, err := svc.CreateFromIssue(context.Background(), &CreateWorkOrderInput{
		IssueID:      42,
		TechnicianID: 9,
	})
	if err != nil {
		t.Fatalf("CreateFromIssue returned error: %v", err)
	}
	if workOrder.IssueID != 42 || workOrder.AssignedTechnician != 9 {
		t.Errorf("work order = issue %d / technician %d, want 42/9", workOrder.IssueID, workOrder.AssignedTechnician)
	}
	if workOrder.Status != string(domain.StatusOpen) {
		t.Errorf("new work order status = %q, want open", workOrder.Status)
	}
	if workOrder.Priority != string(domain.PriorityMedium) {
		t.Errorf("default priority = %q, want medium", workOrder.Priority)
	}
	if workOrderRepo.created == nil {
		t.Fatal("work order was not persisted")
	}

	// A second promotion of the same issue must be refused.
	if _, err := svc.CreateFromIssue(context.Background(), &CreateWorkOrderInput{
		IssueID:      42,
		TechnicianID: 9,
	}); !errors.Is(err, ErrIssuePromoted) {
		t.Errorf("second promotion error = %v, want ErrIssuePromoted", err)
	}
}
