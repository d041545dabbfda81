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

// fakePartRequestRepo backs the service with an in-memory request and
// counts which mutation path got used.
type fakePartRequestRepo struct {
	repositories.PartRequestRepository
	request      *models.PartRequest
	fulfillErr   error
	fulfillCalls int
	statusSwaps  int
}

func (f *fakePartRequestRepo) GetByID(ctx context.Context, id string) (*models.PartRequest, error) {
	if f.request == nil || f.request.ID != id {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *f.request
	return &copied, nil
}

func (f *fakePartRequestRepo) Fulfill(ctx context.Context, request *models.PartRequest) error {
	f.fulfillCalls++
	if f.fulfillErr != nil {
		return f.fulfillErr
	}
	f.request.Status = string(domain.StatusFulfilled)
	return nil
}

func (f *fakePartRequestRepo) UpdateStatus(ctx context.Context, id string, from, to domain.Status) error {
	f.statusSwaps++
	if f.request.Status != string(from) {
		return domain.ErrStaleEntity
	}
	f.request.Status = string(to)
	return nil
}

// fakePartRepo fails the test if the service tries to mutate stock on
// its own; fulfillment must leave that to the repository transaction.
type fakePartRepo struct {
	repositories.PartRepository
	stockWrites int
}

func (f *fakePartRepo) Update(ctx context.Context, part *models.Part) error {
	f.stockWrites++
	return nil
}

func newPartRequestFixture(status domain.Status) (*PartRequestService, *fakePartRequestRepo, *fakePartRepo) {
	requestRepo := &fakePartRequestRepo{request: &models.PartRequest{
		ID:          "4f9f7a52-0b7f-4a6e-9c2d-3d1f5a8e6b01",
		WorkOrderID: 7,
		RequestedBy: 3,
		Status:      string(status),
		Items: []models.PartRequestItem{
			{PartRequestID: "4f9f7a52-0b7f-4a6e-9c2d-3d1f5a8e6b01", PartID: 11, Quantity: 2},
		},
	}}
	partRepo := &fakePartRepo{}
	guard := lifecycle.NewGuard(func(ctx context.Context, workOrderID uint) ([]domain.Status, error) {
		return nil, nil
	})
	svc := NewPartRequestService(requestRepo, nil, partRepo, guard, NewNotificationService(nil))
	return svc, requestRepo, partRepo
}

func TestTransitionFulfillStaleStatusLeavesNoTrace(t *testing.T) {
	svc, requestRepo, partRepo := newPartRequestFixture(domain.StatusApproved)
	requestRepo.fulfillErr = domain.ErrStaleEntity
	id := requestRepo.request.ID

	_, err := svc.Transition(context.Background(), id, domain.StatusFulfilled, domain.RoleLogistics)
	if !errors.Is(err, domain.ErrStaleEntity) {
		t.Fatalf("Transition error = %v, want ErrStaleEntity", err)
	}
	if requestRepo.fulfillCalls != 1 {
		t.Errorf("Fulfill called %d times, want 1", requestRepo.fulfillCalls)
	}
	if requestRepo.statusSwaps != 0 {
		t.Errorf("UpdateStatus called %d times outside the fulfillment transaction", requestRepo.statusSwaps)
	}
	if partRepo.stockWrites != 0 {
		t.Errorf("stock mutated %d times outside the fulfillment transaction", partRepo.stockWrites)
	}
	if got := requestRepo.request.Status; got != string(domain.StatusApproved) {
		t.Errorf("request status = %q after failed fulfillment, want approved", got)
	}
}

func TestTransitionFulfillInsufficientStockLeavesNoTrace(t *testing.T) {
	svc, requestRepo, _ := newPartRequestFixture(domain.StatusApproved)
	requestRepo.fulfillErr = repositories.ErrInsufficientStock
	id := requestRepo.request.ID

	_, err := svc.Transition(context.Background(), id, domain.StatusFulfilled, domain.RoleLogistics)
	if !errors.Is(err, repositories.ErrInsufficientStock) {
		t.Fatalf("Transition error = %v, want ErrInsufficientStock", err)
	}
	if got := requestRepo.request.Status; got != string(domain.StatusApproved) {
		t.Errorf("request status = %q after failed fulfillment, want approved", got)
	}
}

func TestTransitionFulfillUsesRepositoryTransaction(t *testing.T) {
	svc, requestRepo, partRepo := newPartRequestFixture(domain.StatusApproved)
	id := requestRepo.request.ID

	request, err := svc.Transition(context.Background(), id, domain.StatusFulfilled, domain.RoleLogistics)
	if err != nil {
		t.Fatalf("Transition returned error: %v", err)
	}
	if request.Status != string(domain.StatusFulfilled) {
		t.Errorf("request status = %q, want fulfilled", request.Status)
	}
	if requestRepo.fulfillCalls != 1 {
		t.Errorf("Fulfill called %d times, want 1", requestRepo.fulfillCalls)
	}
	if requestRepo.statusSwaps != 0 {
		t.Errorf("UpdateStatus called %d times, want fulfillment to go through Fulfill only", requestRepo.statusSwaps)
	}
	if partRepo.stockWrites != 0 {
		t.Errorf("stock mutated %d times outside the fulfillment transaction", partRepo.stockWrites)
	}
}

func TestTransitionApproveSwapsStatusOnly(t *testing.T) {
	svc, requestRepo, _ := newPartRequestFixture(domain.StatusPending)
	id := requestRepo.request.ID

	request, err := svc.Transition(context.Background(), id, domain.StatusApproved, domain.RoleLogistics)
	if err != nil {
		t.Fatalf("Transition returned error: %v", err)
	}
	if request.Status != string(domain.StatusApproved) {
		t.Errorf("request status = %q, want approved", request.Status)
	}
	if requestRepo.fulfillCalls != 0 {
		t.Errorf("Fulfill called %d times on approval, want 0", requestRepo.fulfillCalls)
	}
	if requestRepo.statusSwaps != 1 {
		t.Errorf("UpdateStatus called %d times, want 1", requestRepo.statusSwaps)
	}
}
