package services

import (
	"context"
	"errors"
	"log"
	"time"

	"maintdesk/internal/adapters/persistence/models"
	"maintdesk/internal/adapters/persistence/repositories"
	"maintdesk/internal/core/domain"
	"maintdesk/internal/core/lifecycle"

	"gorm.io/gorm"
)

// Work order errors
var (
	ErrWorkOrderNotFound  = errors.New("work order not found")
	ErrIssuePromoted      = errors.New("issue already has a work order")
	ErrIssueNotResolved   = errors.New("issue must be resolved before promotion")
	ErrTechnicianNotFound = errors.New("assigned technician not found")
	ErrNotATechnician     = errors.New("assignee does not have the technician role")
	ErrInvalidPriority    = errors.New("invalid priority")
	ErrNotAssignee        = errors.New("work order is assigned to another technician")
)

// WorkOrderService handles work order business logic
type WorkOrderService struct {
	workOrderRepo repositories.WorkOrderRepository
	issueRepo     repositories.IssueRepository
	userRepo      repositories.UserRepository
	guard         *lifecycle.Guard
	notify        *NotificationService
}

// NewWorkOrderService creates a new work order service
func NewWorkOrderService(
	workOrderRepo repositories.WorkOrderRepository,
	issueRepo repositories.IssueRepository,
	userRepo repositories.UserRepository,
	guard *lifecycle.Guard,
	notify *NotificationService,
) *WorkOrderService {
	return &WorkOrderService{
		workOrderRepo: workOrderRepo,
		issueRepo:     issueRepo,
		userRepo:      userRepo,
		guard:         guard,
		notify:        notify,
	}
}

// CreateWorkOrderInput represents work order creation input
type CreateWorkOrderInput struct {
	IssueID       uint      `json:"issue_id" validate:"required"`
	TechnicianID  uint      `json:"technician_id" validate:"required"`
	Priority      string    `json:"priority"`
	ScheduledDate time.Time `json:"scheduled_date"`
}

// CreateFromIssue promotes an issue into a technician-facing work
// order. Assigning the technician is part of creation: a work order
// never exists unowned.
func (s *WorkOrderService) CreateFromIssue(ctx context.Context, input *CreateWorkOrderInput) (*models.WorkOrder, error) {
	// 1. The issue must be resolved and must not already be promoted
	issue, err := s.issueRepo.GetByID(ctx, input.IssueID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrIssueNotFound
		}
		return nil, err
	}
	if issue.Status != string(domain.StatusResolved) {
		return nil, ErrIssueNotResolved
	}
	if _, err := s.workOrderRepo.GetByIssueID(ctx, input.IssueID); err == nil {
		return nil, ErrIssuePromoted
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	// 2. The assignee must be an active technician
	technician, err := s.userRepo.GetByID(ctx, input.TechnicianID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTechnicianNotFound
		}
		return nil, err
	}
	if technician.Role != string(domain.RoleTechnician) || !technician.IsActive {
		return nil, ErrNotATechnician
	}

	// 3. Normalize priority
	priority := domain.PriorityMedium
	if input.Priority != "" {
		p, ok := domain.ParsePriority(input.Priority)
		if !ok {
			return nil, ErrInvalidPriority
		}
		priority = p
	}

	scheduled := input.ScheduledDate
	if scheduled.IsZero() {
		scheduled = time.Now().Add(24 * time.Hour)
	}

	workOrder := &models.WorkOrder{
		IssueID:            input.IssueID,
		AssignedTechnician: input.TechnicianID,
		Priority:           string(priority),
		Status:             string(domain.StatusOpen),
		ScheduledDate:      scheduled,
	}
	if err := s.workOrderRepo.Create(ctx, workOrder); err != nil {
		return nil, err
	}

	s.notify.WorkOrderAssigned(ctx, workOrder)
	log.Printf("✅ Work order #%d created from issue #%d (technician %d, priority %s)",
		workOrder.ID, workOrder.IssueID, workOrder.AssignedTechnician, priority)
	return workOrder, nil
}

// GetByID returns a work order
func (s *WorkOrderService) GetByID(ctx context.Context, id uint) (*models.WorkOrder, error) {
	workOrder, err := s.workOrderRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrWorkOrderNotFound
		}
		return nil, err
	}
	return workOrder, nil
}

// List lists work orders matching the filter
func (s *WorkOrderService) List(ctx context.Context, filter repositories.WorkOrderFilter, offset, limit int) ([]*models.WorkOrder, int64, error) {
	return s.workOrderRepo.List(ctx, filter, offset, limit)
}

// Transition moves a work order to proposed on behalf of actor.
// Resolution is additionally blocked while any linked part request is
// pending or approved; the guard re-checks that against fresh data and
// the persist swaps on the checked status.
func (s *WorkOrderService) Transition(ctx context.Context, id uint, proposed domain.Status, actor domain.Role, actorID uint) (*models.WorkOrder, error) {
	workOrder, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	// Day-to-day mutation belongs to the assigned technician.
	if actor == domain.RoleTechnician && workOrder.AssignedTechnician != actorID {
		return nil, ErrNotAssignee
	}

	current := domain.Status(workOrder.Status)
	entity := lifecycle.Entity{Type: domain.EntityWorkOrder, ID: workOrder.ID, Status: current}
	if err := s.guard.CheckTransition(ctx, entity, proposed, actor); err != nil {
		return nil, err
	}

	if err := s.workOrderRepo.UpdateStatus(ctx, id, current, proposed); err != nil {
		return nil, err
	}

	workOrder.Status = string(proposed)
	if proposed == domain.StatusResolved {
		s.notify.WorkOrderResolved(ctx, workOrder)
	}
	log.Printf("✅ Work order #%d: %s → %s (by %s)", workOrder.ID, current, proposed, actor)
	return workOrder, nil
}

// ListOverdue lists unresolved work orders past their scheduled date
func (s *WorkOrderService) ListOverdue(ctx context.Context) ([]*models.WorkOrder, error) {
	return s.workOrderRepo.ListOverdue(ctx, time.Now())
}
