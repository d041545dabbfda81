package lifecycle

import "maintdesk/internal/core/domain"

// Transition is one legal edge out of a status: the next status and the
// roles allowed to drive it.
type Transition struct {
	Next  domain.Status
	Roles []domain.Role
}

// transitions is the single source of truth for every legal status
// change, keyed by (entity type, current status). Anything not in this
// table is forbidden.
var transitions = map[domain.EntityType]map[domain.Status][]Transition{
	domain.EntityIssue: {
		domain.StatusOpen: {
			{Next: domain.StatusInProgress, Roles: []domain.Role{domain.RoleTechnician, domain.RoleAdmin}},
		},
		domain.StatusInProgress: {
			{Next: domain.StatusResolved, Roles: []domain.Role{domain.RoleTechnician, domain.RoleAdmin}},
		},
		// Reopen is the only permitted regression.
		domain.StatusResolved: {
			{Next: domain.StatusOpen, Roles: []domain.Role{domain.RoleManager, domain.RoleAdmin}},
		},
	},
	domain.EntityWorkOrder: {
		domain.StatusOpen: {
			{Next: domain.StatusInProgress, Roles: []domain.Role{domain.RoleTechnician}},
		},
		domain.StatusInProgress: {
			// Additionally guarded against unresolved part requests, see Guard.
			{Next: domain.StatusResolved, Roles: []domain.Role{domain.RoleTechnician}},
		},
	},
	domain.EntityPartRequest: {
		domain.StatusPending: {
			{Next: domain.StatusApproved, Roles: []domain.Role{domain.RoleLogistics, domain.RoleManager}},
			{Next: domain.StatusRejected, Roles: []domain.Role{domain.RoleLogistics, domain.RoleManager}},
			{Next: domain.StatusDeleted, Roles: []domain.Role{domain.RoleTechnician, domain.RoleAdmin}},
		},
		domain.StatusApproved: {
			{Next: domain.StatusFulfilled, Roles: []domain.Role{domain.RoleLogistics}},
		},
	},
}

// AllowedTransitions returns the legal edges out of the given status
// for the given entity type. The result is table data; callers must
// not modify it.
func AllowedTransitions(entityType domain.EntityType, current domain.Status) []Transition {
	return transitions[entityType][current]
}

// CanTransition reports whether actor may move an entity of entityType
// from current to next.
func CanTransition(entityType domain.EntityType, current, next domain.Status, actor domain.Role) bool {
	for _, t := range AllowedTransitions(entityType, current) {
		if t.Next != next {
			continue
		}
		for _, role := range t.Roles {
			if role == actor {
				return true
			}
		}
	}
	return false
}

// IsTerminal reports whether a status has no outgoing edges for the
// entity type, i.e. the entity is immutable once it reaches it.
func IsTerminal(entityType domain.EntityType, status domain.Status) bool {
	return len(AllowedTransitions(entityType, status)) == 0
}
