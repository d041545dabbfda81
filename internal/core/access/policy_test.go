package access

import (
	"testing"

	"maintdesk/internal/core/domain"
)

func containsRole(roles []domain.Role, role domain.Role) bool {
	for _, r := range roles {
		if r == role {
			return true
		}
	}
	return false
}

func TestRolesAllowedLongestPrefix(t *testing.T) {
	policy := NewPolicy(
		[]Rule{
			{Prefix: "/technician", Roles: []domain.Role{domain.RoleTechnician}},
			{Prefix: "/technician/admin-tools", Roles: []domain.Role{domain.RoleAdmin}},
		},
		nil, nil, nil,
	)

	roles := policy.RolesAllowed("/technician/work-orders")
	if !containsRole(roles, domain.RoleTechnician) || len(roles) != 1 {
		t.Fatalf("expected technician only, got %v", roles)
	}

	// The longer prefix wins regardless of rule order.
	roles = policy.RolesAllowed("/technician/admin-tools/audit")
	if !containsRole(roles, domain.RoleAdmin) || len(roles) != 1 {
		t.Fatalf("expected admin only, got %v", roles)
	}
}

func TestRolesAllowedSegmentBoundary(t *testing.T) {
	policy := DefaultPolicy()

	if roles := policy.RolesAllowed("/administrator"); len(roles) != 0 {
		t.Fatalf("/administrator must not match the /admin rule, got %v", roles)
	}
	if roles := policy.RolesAllowed("/admin/users"); !containsRole(roles, domain.RoleAdmin) {
		t.Fatalf("/admin/users should match the /admin rule, got %v", roles)
	}
	if roles := policy.RolesAllowed("/admin"); !containsRole(roles, domain.RoleAdmin) {
		t.Fatalf("/admin itself should match, got %v", roles)
	}
}

func TestRolesAllowedUnmatched(t *testing.T) {
	policy := DefaultPolicy()
	if roles := policy.RolesAllowed("/about"); len(roles) != 0 {
		t.Fatalf("unmatched path should have no rule, got %v", roles)
	}
}

func TestDefaultPolicyAreas(t *testing.T) {
	policy := DefaultPolicy()

	cases := []struct {
		path    string
		role    domain.Role
		allowed bool
	}{
		{"/technician/dashboard", domain.RoleTechnician, true},
		{"/technician/dashboard", domain.RoleEmployee, false},
		{"/employee/issues", domain.RoleEmployee, true},
		{"/logistics/part-requests", domain.RoleLogistics, true},
		{"/logistics/part-requests", domain.RoleTechnician, false},
		{"/manager/reports", domain.RoleManager, true},
		// Admin may enter every area.
		{"/employee/issues", domain.RoleAdmin, true},
		{"/technician/dashboard", domain.RoleAdmin, true},
		{"/logistics/part-requests", domain.RoleAdmin, true},
	}

	for _, tc := range cases {
		got := containsRole(policy.RolesAllowed(tc.path), tc.role)
		if got != tc.allowed {
			t.Errorf("RolesAllowed(%q) role %s: got %v, want %v", tc.path, tc.role, got, tc.allowed)
		}
	}
}

func TestIsPublic(t *testing.T) {
	policy := DefaultPolicy()

	for _, path := range []string{"/login", "/register", "/access-denied", "/auth/refresh", "/auth/logout"} {
		if !policy.IsPublic(path) {
			t.Errorf("expected %q to be public", path)
		}
	}
	for _, path := range []string{"/admin", "/dashboard", "/", "/loginx"} {
		if policy.IsPublic(path) {
			t.Errorf("expected %q not to be public", path)
		}
	}
}

func TestHomePath(t *testing.T) {
	policy := DefaultPolicy()

	homes := map[domain.Role]string{
		domain.RoleAdmin:      "/admin/dashboard",
		domain.RoleEmployee:   "/employee/dashboard",
		domain.RoleTechnician: "/technician/dashboard",
		domain.RoleManager:    "/manager/dashboard",
		domain.RoleLogistics:  "/logistics/dashboard",
	}
	for role, want := range homes {
		got, ok := policy.HomePath(role)
		if !ok || got != want {
			t.Errorf("HomePath(%s) = %q, %v; want %q", role, got, ok, want)
		}
	}

	if _, ok := policy.HomePath(domain.Role("superuser")); ok {
		t.Error("unmapped role must have no home path")
	}
}
