package services

import (
	"context"
	"errors"
	"log"

	"maintdesk/internal/adapters/persistence/models"
	"maintdesk/internal/adapters/persistence/repositories"
	"maintdesk/internal/core/domain"
	"maintdesk/internal/core/lifecycle"

	"gorm.io/gorm"
)

// Issue errors
var (
	ErrIssueNotFound   = errors.New("issue not found")
	ErrMachineNotFound = errors.New("machine not found")
)

// IssueService handles issue business logic
type IssueService struct {
	issueRepo   repositories.IssueRepository
	machineRepo repositories.MachineRepository
	guard       *lifecycle.Guard
	notify      *NotificationService
}

// NewIssueService creates a new issue service
func NewIssueService(
	issueRepo repositories.IssueRepository,
	machineRepo repositories.MachineRepository,
	guard *lifecycle.Guard,
	notify *NotificationService,
) *IssueService {
	return &IssueService{
		issueRepo:   issueRepo,
		machineRepo: machineRepo,
		guard:       guard,
		notify:      notify,
	}
}

// CreateIssueInput represents issue creation input
type CreateIssueInput struct {
	Title       string `json:"title" validate:"required,max=150"`
	Description string `json:"description"`
	MachineID   uint   `json:"machine_id" validate:"required"`
	PhotoRef    string `json:"photo_ref"`
}

// Create files a new issue on behalf of the reporting employee
func (s *IssueService) Create(ctx context.Context, input *CreateIssueInput, reporterID uint) (*models.Issue, error) {
	if _, err := s.machineRepo.GetByID(ctx, input.MachineID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMachineNotFound
		}
		return nil, err
	}

	issue := &models.Issue{
		Title:       input.Title,
		Description: input.Description,
		MachineID:   input.MachineID,
		PhotoRef:    input.PhotoRef,
		Status:      string(domain.StatusOpen),
		CreatedBy:   reporterID,
	}
	if err := s.issueRepo.Create(ctx, issue); err != nil {
		return nil, err
	}

	s.notify.IssueReported(ctx, issue)
	log.Printf("✅ Issue created: #%d %s (machine %d)", issue.ID, issue.Title, issue.MachineID)
	return issue, nil
}

// GetByID returns an issue
func (s *IssueService) GetByID(ctx context.Context, id uint) (*models.Issue, error) {
	issue, err := s.issueRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrIssueNotFound
		}
		return nil, err
	}
	return issue, nil
}

// List lists issues matching the filter
func (s *IssueService) List(ctx context.Context, filter repositories.IssueFilter, offset, limit int) ([]*models.Issue, int64, error) {
	return s.issueRepo.List(ctx, filter, offset, limit)
}

// Transition moves an issue to proposed on behalf of actor. The guard
// is consulted against a fresh read and the persist itself swaps on the
// checked status, so a concurrent transition fails with ErrStaleEntity
// instead of corrupting the chain.
func (s *IssueService) Transition(ctx context.Context, id uint, proposed domain.Status, actor domain.Role) (*models.Issue, error) {
	issue, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	current := domain.Status(issue.Status)
	entity := lifecycle.Entity{Type: domain.EntityIssue, ID: issue.ID, Status: current}
	if err := s.guard.CheckTransition(ctx, entity, proposed, actor); err != nil {
		return nil, err
	}

	if err := s.issueRepo.UpdateStatus(ctx, id, current, proposed); err != nil {
		return nil, err
	}

	issue.Status = string(proposed)
	if proposed == domain.StatusResolved {
		s.notify.IssueResolved(ctx, issue)
	}
	log.Printf("✅ Issue #%d: %s → %s (by %s)", issue.ID, current, proposed, actor)
	return issue, nil
}

// Reopen reverses a resolved issue back to open, the one permitted
// regression (manager/admin only, enforced by the lifecycle table).
func (s *IssueService) Reopen(ctx context.Context, id uint, actor domain.Role) (*models.Issue, error) {
	return s.Transition(ctx, id, domain.StatusOpen, actor)
}
