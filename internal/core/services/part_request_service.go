package services

import (
	"context"
	"errors"
	"log"

	"maintdesk/internal/adapters/persistence/models"
	"maintdesk/internal/adapters/persistence/repositories"
	"maintdesk/internal/core/domain"
	"maintdesk/internal/core/lifecycle"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Part request errors
var (
	ErrPartRequestNotFound = errors.New("part request not found")
	ErrPartNotFound        = errors.New("part not found")
	ErrEmptyRequest        = errors.New("part request needs at least one item")
	ErrInvalidQuantity     = errors.New("item quantity must be positive")
	ErrNotRequester        = errors.New("only the requesting technician may do this")
)

// PartRequestService handles part request business logic
type PartRequestService struct {
	partRequestRepo repositories.PartRequestRepository
	workOrderRepo   repositories.WorkOrderRepository
	partRepo        repositories.PartRepository
	guard           *lifecycle.Guard
	notify          *NotificationService
}

// NewPartRequestService creates a new part request service
func NewPartRequestService(
	partRequestRepo repositories.PartRequestRepository,
	workOrderRepo repositories.WorkOrderRepository,
	partRepo repositories.PartRepository,
	guard *lifecycle.Guard,
	notify *NotificationService,
) *PartRequestService {
	return &PartRequestService{
		partRequestRepo: partRequestRepo,
		workOrderRepo:   workOrderRepo,
		partRepo:        partRepo,
		guard:           guard,
		notify:          notify,
	}
}

// RequestItemInput is one line of a part request
type RequestItemInput struct {
	PartID   uint `json:"part_id" validate:"required"`
	Quantity int  `json:"quantity" validate:"required,min=1"`
}

// CreatePartRequestInput represents part request creation input
type CreatePartRequestInput struct {
	WorkOrderID uint               `json:"work_order_id" validate:"required"`
	Items       []RequestItemInput `json:"items" validate:"required,min=1"`
}

// Create files a part request against a work order on behalf of the
// requesting technician. It starts pending.
func (s *PartRequestService) Create(ctx context.Context, input *CreatePartRequestInput, requesterID uint) (*models.PartRequest, error) {
	if len(input.Items) == 0 {
		return nil, ErrEmptyRequest
	}

	if _, err := s.workOrderRepo.GetByID(ctx, input.WorkOrderID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrWorkOrderNotFound
		}
		return nil, err
	}

	request := &models.PartRequest{
		ID:          uuid.NewString(),
		WorkOrderID: input.WorkOrderID,
		RequestedBy: requesterID,
		Status:      string(domain.StatusPending),
	}
	for _, item := range input.Items {
		if item.Quantity <= 0 {
			return nil, ErrInvalidQuantity
		}
		if _, err := s.partRepo.GetByID(ctx, item.PartID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrPartNotFound
			}
			return nil, err
		}
		request.Items = append(request.Items, models.PartRequestItem{
			PartRequestID: request.ID,
			PartID:        item.PartID,
			Quantity:      item.Quantity,
		})
	}

	if err := s.partRequestRepo.Create(ctx, request); err != nil {
		return nil, err
	}

	s.notify.PartRequestFiled(ctx, request)
	log.Printf("✅ Part request %s filed for work order #%d (%d items)",
		request.ID, request.WorkOrderID, len(request.Items))
	return request, nil
}

// GetByID returns a part request
func (s *PartRequestService) GetByID(ctx context.Context, id string) (*models.PartRequest, error) {
	request, err := s.partRequestRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPartRequestNotFound
		}
		return nil, err
	}
	return request, nil
}

// ListByWorkOrder lists a work order's part requests
func (s *PartRequestService) ListByWorkOrder(ctx context.Context, workOrderID uint) ([]*models.PartRequest, error) {
	return s.partRequestRepo.ListByWorkOrder(ctx, workOrderID)
}

// ListByStatus lists part requests in a status (logistics work queue)
func (s *PartRequestService) ListByStatus(ctx context.Context, status domain.Status, offset, limit int) ([]*models.PartRequest, int64, error) {
	return s.partRequestRepo.ListByStatus(ctx, status, offset, limit)
}

// Transition moves a part request to proposed on behalf of actor.
// Fulfillment additionally draws the requested quantities down from
// part stock.
func (s *PartRequestService) Transition(ctx context.Context, id string, proposed domain.Status, actor domain.Role) (*models.PartRequest, error) {
	request, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	current := domain.Status(request.Status)
	entity := lifecycle.Entity{Type: domain.EntityPartRequest, ID: request.WorkOrderID, Status: current}
	if err := s.guard.CheckTransition(ctx, entity, proposed, actor); err != nil {
		return nil, err
	}

	// Fulfillment swaps the status and draws down stock in one
	// repository transaction; either both stick or neither does.
	if proposed == domain.StatusFulfilled {
		if err := s.partRequestRepo.Fulfill(ctx, request); err != nil {
			return nil, err
		}
	} else if err := s.partRequestRepo.UpdateStatus(ctx, id, current, proposed); err != nil {
		return nil, err
	}

	request.Status = string(proposed)
	switch proposed {
	case domain.StatusApproved:
		s.notify.PartRequestApproved(ctx, request)
	case domain.StatusRejected:
		s.notify.PartRequestRejected(ctx, request)
	case domain.StatusFulfilled:
		s.notify.PartRequestFulfilled(ctx, request)
	}
	log.Printf("✅ Part request %s: %s → %s (by %s)", request.ID, current, proposed, actor)
	return request, nil
}

// Delete removes a part request. Only permitted while pending, and only
// for the requesting technician or an admin — the status half of the
// rule lives in the lifecycle table, the ownership half here where the
// actor's identity is known.
func (s *PartRequestService) Delete(ctx context.Context, id string, actor domain.Role, actorID uint) error {
	request, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if actor == domain.RoleTechnician && request.RequestedBy != actorID {
		return ErrNotRequester
	}

	current := domain.Status(request.Status)
	entity := lifecycle.Entity{Type: domain.EntityPartRequest, ID: request.WorkOrderID, Status: current}
	if err := s.guard.CheckTransition(ctx, entity, domain.StatusDeleted, actor); err != nil {
		return err
	}

	if err := s.partRequestRepo.DeletePending(ctx, id); err != nil {
		return err
	}

	log.Printf("✅ Part request %s deleted (by %s)", id, actor)
	return nil
}
