package lifecycle

import (
	"context"
	"errors"

	"maintdesk/internal/core/domain"

	pkgerrors "github.com/pkg/errors"
)

// Lifecycle errors
var (
	ErrInvalidTransition  = errors.New("status transition not permitted for this role")
	ErrBlockedByDependent = errors.New("work order has part requests that are not yet fulfilled or rejected")
)

// PartRequestQuery returns the statuses of every part request linked to
// a work order. It is injected so the guard stays free of storage
// concerns and unit-testable with fake data.
type PartRequestQuery func(ctx context.Context, workOrderID uint) ([]domain.Status, error)

// Entity is the minimal view of an entity the guard needs: what it is,
// which row it is, and the freshly read current status.
type Entity struct {
	Type   domain.EntityType
	ID     uint
	Status domain.Status
}

// Guard validates proposed status transitions before they are
// persisted. It never mutates anything itself; a nil error means the
// caller may go ahead and commit the transition it just checked.
// Because the check reads entity state, callers must re-run it against
// a fresh read immediately before commit.
type Guard struct {
	partRequests PartRequestQuery
}

// NewGuard creates a guard. partRequests may be nil, in which case any
// work order resolution is refused (fail closed: no data, no permit).
func NewGuard(partRequests PartRequestQuery) *Guard {
	return &Guard{partRequests: partRequests}
}

// CheckTransition validates that actor may move entity to proposed.
// Returns ErrInvalidTransition for an edge the lifecycle table does not
// permit, and ErrBlockedByDependent when resolving a work order that
// still has pending or approved part requests.
func (g *Guard) CheckTransition(ctx context.Context, entity Entity, proposed domain.Status, actor domain.Role) error {
	if !CanTransition(entity.Type, entity.Status, proposed, actor) {
		return ErrInvalidTransition
	}

	if entity.Type == domain.EntityWorkOrder && proposed == domain.StatusResolved {
		if g.partRequests == nil {
			return ErrBlockedByDependent
		}
		statuses, err := g.partRequests(ctx, entity.ID)
		if err != nil {
			return pkgerrors.Wrap(err, "query linked part requests")
		}
		for _, s := range statuses {
			if s == domain.StatusPending || s == domain.StatusApproved {
				return ErrBlockedByDependent
			}
		}
	}

	return nil
}
