package lifecycle

import (
	"testing"

	"maintdesk/internal/core/domain"
)

func TestIssueTransitions(t *testing.T) {
	cases := []struct {
		from, to domain.Status
		actor    domain.Role
		want     bool
	}{
		{domain.StatusOpen, domain.StatusInProgress, domain.RoleTechnician, true},
		{domain.StatusOpen, domain.StatusInProgress, domain.RoleAdmin, true},
		{domain.StatusOpen, domain.StatusInProgress, domain.RoleEmployee, false},
		{domain.StatusInProgress, domain.StatusResolved, domain.RoleTechnician, true},
		{domain.StatusInProgress, domain.StatusResolved, domain.RoleAdmin, true},
		{domain.StatusInProgress, domain.StatusResolved, domain.RoleManager, false},
		// No skipping.
		{domain.StatusOpen, domain.StatusResolved, domain.RoleTechnician, false},
		{domain.StatusOpen, domain.StatusResolved, domain.RoleAdmin, false},
		// No regression except explicit reopen.
		{domain.StatusResolved, domain.StatusInProgress, domain.RoleTechnician, false},
		{domain.StatusResolved, domain.StatusInProgress, domain.RoleAdmin, false},
		{domain.StatusInProgress, domain.StatusOpen, domain.RoleTechnician, false},
		// Reopen: manager or admin only.
		{domain.StatusResolved, domain.StatusOpen, domain.RoleManager, true},
		{domain.StatusResolved, domain.StatusOpen, domain.RoleAdmin, true},
		{domain.StatusResolved, domain.StatusOpen, domain.RoleTechnician, false},
		{domain.StatusResolved, domain.StatusOpen, domain.RoleEmployee, false},
	}

	for _, tc := range cases {
		got := CanTransition(domain.EntityIssue, tc.from, tc.to, tc.actor)
		if got != tc.want {
			t.Errorf("issue %s->%s by %s: got %v, want %v", tc.from, tc.to, tc.actor, got, tc.want)
		}
	}
}

func TestWorkOrderTransitions(t *testing.T) {
	cases := []struct {
		from, to domain.Status
		actor    domain.Role
		want     bool
	}{
		{domain.StatusOpen, domain.StatusInProgress, domain.RoleTechnician, true},
		{domain.StatusOpen, domain.StatusInProgress, domain.RoleAdmin, false},
		{domain.StatusInProgress, domain.StatusResolved, domain.RoleTechnician, true},
		{domain.StatusInProgress, domain.StatusResolved, domain.RoleManager, false},
		// Work orders never regress.
		{domain.StatusInProgress, domain.StatusOpen, domain.RoleTechnician, false},
		{domain.StatusResolved, domain.StatusOpen, domain.RoleManager, false},
		{domain.StatusResolved, domain.StatusInProgress, domain.RoleTechnician, false},
		{domain.StatusOpen, domain.StatusResolved, domain.RoleTechnician, false},
	}

	for _, tc := range cases {
		got := CanTransition(domain.EntityWorkOrder, tc.from, tc.to, tc.actor)
		if got != tc.want {
			t.Errorf("work order %s->%s by %s: got %v, want %v", tc.from, tc.to, tc.actor, got, tc.want)
		}
	}
}

func TestPartRequestTransitions(t *testing.T) {
	cases := []struct {
		from, to domain.Status
		actor    domain.Role
		want     bool
	}{
		{domain.StatusPending, domain.StatusApproved, domain.RoleLogistics, true},
		{domain.StatusPending, domain.StatusApproved, domain.RoleManager, true},
		{domain.StatusPending, domain.StatusApproved, domain.RoleTechnician, false},
		{domain.StatusPending, domain.StatusRejected, domain.RoleLogistics, true},
		{domain.StatusPending, domain.StatusRejected, domain.RoleManager, true},
		{domain.StatusPending, domain.StatusRejected, domain.RoleAdmin, false},
		{domain.StatusApproved, domain.StatusFulfilled, domain.RoleLogistics, true},
		{domain.StatusApproved, domain.StatusFulfilled, domain.RoleManager, false},
		// Deletion only while pending, by the requesting technician or admin.
		{domain.StatusPending, domain.StatusDeleted, domain.RoleTechnician, true},
		{domain.StatusPending, domain.StatusDeleted, domain.RoleAdmin, true},
		{domain.StatusPending, domain.StatusDeleted, domain.RoleLogistics, false},
		{domain.StatusApproved, domain.StatusDeleted, domain.RoleTechnician, false},
		{domain.StatusApproved, domain.StatusDeleted, domain.RoleAdmin, false},
	}

	for _, tc := range cases {
		got := CanTransition(domain.EntityPartRequest, tc.from, tc.to, tc.actor)
		if got != tc.want {
			t.Errorf("part request %s->%s by %s: got %v, want %v", tc.from, tc.to, tc.actor, got, tc.want)
		}
	}
}

func TestTerminalStatuses(t *testing.T) {
	terminal := []struct {
		entity domain.EntityType
		status domain.Status
	}{
		{domain.EntityPartRequest, domain.StatusFulfilled},
		{domain.EntityPartRequest, domain.StatusRejected},
		{domain.EntityWorkOrder, domain.StatusResolved},
	}
	for _, tc := range terminal {
		if !IsTerminal(tc.entity, tc.status) {
			t.Errorf("%s %s should be terminal", tc.entity, tc.status)
		}
	}

	// A resolved issue can still be reopened, so it is not terminal.
	if IsTerminal(domain.EntityIssue, domain.StatusResolved) {
		t.Error("resolved issue must remain reopenable")
	}

	// Terminal part requests admit nothing, for any role. The invariant
	// is status-gated: admin gets no exception.
	for _, from := range []domain.Status{domain.StatusFulfilled, domain.StatusRejected} {
		for _, role := range domain.Roles {
			for _, to := range []domain.Status{domain.StatusPending, domain.StatusApproved, domain.StatusDeleted} {
				if CanTransition(domain.EntityPartRequest, from, to, role) {
					t.Errorf("part request %s->%s by %s must be forbidden", from, to, role)
				}
			}
		}
	}
}

func TestAllowedTransitionsUnknownInputs(t *testing.T) {
	if got := AllowedTransitions(domain.EntityType("gizmo"), domain.StatusOpen); len(got) != 0 {
		t.Errorf("unknown entity type should have no transitions, got %v", got)
	}
	if got := AllowedTransitions(domain.EntityIssue, domain.Status("limbo")); len(got) != 0 {
		t.Errorf("unknown status should have no transitions, got %v", got)
	}
}
