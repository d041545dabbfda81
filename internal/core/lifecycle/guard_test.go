package lifecycle

import (
	"context"
	"errors"
	"testing"

	"maintdesk/internal/core/domain"
)

func fixedStatuses(statuses ...domain.Status) PartRequestQuery {
	return func(ctx context.Context, workOrderID uint) ([]domain.Status, error) {
		return statuses, nil
	}
}

func TestCheckTransitionInvalidEdge(t *testing.T) {
	guard := NewGuard(fixedStatuses())

	issue := Entity{Type: domain.EntityIssue, ID: 1, Status: domain.StatusResolved}
	err := guard.CheckTransition(context.Background(), issue, domain.StatusInProgress, domain.RoleTechnician)
	if !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("got %v, want ErrInvalidTransition", err)
	}
}

func TestCheckTransitionIssueHappyPath(t *testing.T) {
	guard := NewGuard(fixedStatuses())
	ctx := context.Background()

	steps := []struct {
		from, to domain.Status
	}{
		{domain.StatusOpen, domain.StatusInProgress},
		{domain.StatusInProgress, domain.StatusResolved},
	}
	for _, step := range steps {
		issue := Entity{Type: domain.EntityIssue, ID: 7, Status: step.from}
		if err := guard.CheckTransition(ctx, issue, step.to, domain.RoleTechnician); err != nil {
			t.Fatalf("issue %s->%s by technician: %v", step.from, step.to, err)
		}
	}
}

func TestCheckTransitionBlockedByDependent(t *testing.T) {
	ctx := context.Background()
	wo := Entity{Type: domain.EntityWorkOrder, ID: 42, Status: domain.StatusInProgress}

	for _, blocking := range []domain.Status{domain.StatusPending, domain.StatusApproved} {
		guard := NewGuard(fixedStatuses(domain.StatusFulfilled, blocking))
		err := guard.CheckTransition(ctx, wo, domain.StatusResolved, domain.RoleTechnician)
		if !errors.Is(err, ErrBlockedByDependent) {
			t.Errorf("with a %s part request: got %v, want ErrBlockedByDependent", blocking, err)
		}
	}

	// Once every linked request is settled the same call succeeds.
	guard := NewGuard(fixedStatuses(domain.StatusFulfilled, domain.StatusRejected))
	if err := guard.CheckTransition(ctx, wo, domain.StatusResolved, domain.RoleTechnician); err != nil {
		t.Fatalf("resolve with settled part requests: %v", err)
	}

	// No linked requests at all is fine too.
	guard = NewGuard(fixedStatuses())
	if err := guard.CheckTransition(ctx, wo, domain.StatusResolved, domain.RoleTechnician); err != nil {
		t.Fatalf("resolve with no part requests: %v", err)
	}
}

func TestCheckTransitionDependentCheckOnlyOnResolve(t *testing.T) {
	// The dependent query must not run for edges other than resolution.
	guard := NewGuard(func(ctx context.Context, workOrderID uint) ([]domain.Status, error) {
		t.Fatal("part request query called for a non-resolve edge")
		return nil, nil
	})

	wo := Entity{Type: domain.EntityWorkOrder, ID: 42, Status: domain.StatusOpen}
	if err := guard.CheckTransition(context.Background(), wo, domain.StatusInProgress, domain.RoleTechnician); err != nil {
		t.Fatalf("start work order: %v", err)
	}
}

func TestCheckTransitionQueryFailureFailsClosed(t *testing.T) {
	queryErr := errors.New("backend unavailable")
	guard := NewGuard(func(ctx context.Context, workOrderID uint) ([]domain.Status, error) {
		return nil, queryErr
	})

	wo := Entity{Type: domain.EntityWorkOrder, ID: 42, Status: domain.StatusInProgress}
	err := guard.CheckTransition(context.Background(), wo, domain.StatusResolved, domain.RoleTechnician)
	if err == nil {
		t.Fatal("missing dependent data must refuse the transition")
	}
	if !errors.Is(err, queryErr) {
		t.Fatalf("want the query error surfaced, got %v", err)
	}
}

func TestCheckTransitionNilQueryFailsClosed(t *testing.T) {
	guard := NewGuard(nil)

	wo := Entity{Type: domain.EntityWorkOrder, ID: 42, Status: domain.StatusInProgress}
	err := guard.CheckTransition(context.Background(), wo, domain.StatusResolved, domain.RoleTechnician)
	if !errors.Is(err, ErrBlockedByDependent) {
		t.Fatalf("got %v, want ErrBlockedByDependent", err)
	}
}

func TestCheckTransitionPartRequestDeletion(t *testing.T) {
	guard := NewGuard(fixedStatuses())
	ctx := context.Background()

	pending := Entity{Type: domain.EntityPartRequest, ID: 9, Status: domain.StatusPending}
	if err := guard.CheckTransition(ctx, pending, domain.StatusDeleted, domain.RoleTechnician); err != nil {
		t.Fatalf("technician deleting a pending request: %v", err)
	}
	if err := guard.CheckTransition(ctx, pending, domain.StatusDeleted, domain.RoleAdmin); err != nil {
		t.Fatalf("admin deleting a pending request: %v", err)
	}

	// Terminal requests are immutable for everyone, admin included.
	fulfilled := Entity{Type: domain.EntityPartRequest, ID: 9, Status: domain.StatusFulfilled}
	for _, actor := range []domain.Role{domain.RoleTechnician, domain.RoleAdmin} {
		err := guard.CheckTransition(ctx, fulfilled, domain.StatusDeleted, actor)
		if !errors.Is(err, ErrInvalidTransition) {
			t.Errorf("%s deleting a fulfilled request: got %v, want ErrInvalidTransition", actor, err)
		}
	}
}
