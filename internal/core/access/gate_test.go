package access

import (
	"testing"

	"maintdesk/internal/core/domain"
	"maintdesk/internal/pkg/jwt"
)

const testSecret = "gate-test-secret"

func tokenFor(t *testing.T, role domain.Role) string {
	t.Helper()
	token, err := jwt.GenerateAccessToken(1, "tester", role, testSecret, 15)
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}
	return token
}

func expiredToken(t *testing.T, role domain.Role) string {
	t.Helper()
	token, err := jwt.GenerateAccessToken(1, "tester", role, testSecret, -5)
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}
	return token
}

func newTestGate() *Gate {
	return NewGate(DefaultPolicy(), testSecret)
}

func TestDecidePublicPath(t *testing.T) {
	gate := newTestGate()

	// Public paths pass with no token, a valid token, or garbage.
	for _, token := range []string{"", tokenFor(t, domain.RoleEmployee), "not-a-jwt"} {
		d := gate.Decide("/login", token)
		if d.Kind != Allow {
			t.Errorf("Decide(/login) with token %q = %s, want allow", token, d.Kind)
		}
	}
}

func TestDecideMissingToken(t *testing.T) {
	gate := newTestGate()

	d := gate.Decide("/employee/dashboard", "")
	if d.Kind != RedirectLogin || d.Target != LoginPath {
		t.Fatalf("got %s -> %q, want redirect_login -> %s", d.Kind, d.Target, LoginPath)
	}
	if d.ClearToken {
		t.Error("no token was presented, nothing to clear")
	}
}

func TestDecideMalformedToken(t *testing.T) {
	gate := newTestGate()

	d := gate.Decide("/employee/dashboard", "garbage.token.value")
	if d.Kind != RedirectLogin {
		t.Fatalf("got %s, want redirect_login", d.Kind)
	}
	if !d.ClearToken {
		t.Error("invalid token must be cleared")
	}
}

func TestDecideExpiredToken(t *testing.T) {
	gate := newTestGate()

	for _, path := range []string{"/employee/dashboard", "/", "/admin/users"} {
		d := gate.Decide(path, expiredToken(t, domain.RoleAdmin))
		if d.Kind != RedirectLogin {
			t.Errorf("Decide(%q) with expired token = %s, want redirect_login", path, d.Kind)
		}
		if !d.ClearToken {
			t.Errorf("Decide(%q): expired token must be cleared", path)
		}
	}
}

func TestDecideUnknownRoleFailsClosed(t *testing.T) {
	gate := newTestGate()

	d := gate.Decide("/employee/dashboard", tokenFor(t, domain.Role("superuser")))
	if d.Kind != RedirectLogin || !d.ClearToken {
		t.Fatalf("unknown role must be treated as an invalid token, got %s clear=%v", d.Kind, d.ClearToken)
	}
}

func TestDecideEntryPathFansOut(t *testing.T) {
	gate := newTestGate()

	cases := []struct {
		role domain.Role
		home string
	}{
		{domain.RoleAdmin, "/admin/dashboard"},
		{domain.RoleEmployee, "/employee/dashboard"},
		{domain.RoleTechnician, "/technician/dashboard"},
		{domain.RoleManager, "/manager/dashboard"},
		{domain.RoleLogistics, "/logistics/dashboard"},
	}
	for _, tc := range cases {
		for _, entry := range []string{"/", "/dashboard"} {
			d := gate.Decide(entry, tokenFor(t, tc.role))
			if d.Kind != RedirectHome || d.Target != tc.home {
				t.Errorf("Decide(%q) as %s = %s -> %q, want redirect_home -> %q",
					entry, tc.role, d.Kind, d.Target, tc.home)
			}
		}
	}
}

func TestDecideEntryPathRoleWithoutHome(t *testing.T) {
	// A policy with an authorization entry but no home mapping for the
	// role resolves to access-denied rather than a guessed landing page.
	policy := NewPolicy(
		[]Rule{{Prefix: "/manager", Roles: []domain.Role{domain.RoleManager}}},
		nil,
		[]string{"/"},
		map[domain.Role]string{},
	)
	gate := NewGate(policy, testSecret)

	d := gate.Decide("/", tokenFor(t, domain.RoleManager))
	if d.Kind != RedirectDenied || d.Target != AccessDeniedPath {
		t.Fatalf("got %s -> %q, want redirect_denied -> %s", d.Kind, d.Target, AccessDeniedPath)
	}
}

func TestDecideRoleMatrix(t *testing.T) {
	gate := newTestGate()

	// Allow iff the role is in the path's allowed set.
	for _, role := range domain.Roles {
		for _, area := range []string{"/admin", "/employee", "/technician", "/manager", "/logistics"} {
			path := area + "/dashboard"
			want := RedirectDenied
			if containsRole(gate.Policy().RolesAllowed(path), role) {
				want = Allow
			}
			d := gate.Decide(path, tokenFor(t, role))
			if d.Kind != want {
				t.Errorf("Decide(%q) as %s = %s, want %s", path, role, d.Kind, want)
			}
		}
	}
}

func TestDecideScenarios(t *testing.T) {
	gate := newTestGate()

	if d := gate.Decide("/technician/dashboard", tokenFor(t, domain.RoleEmployee)); d.Kind != RedirectDenied {
		t.Errorf("employee on /technician/dashboard: got %s, want redirect_denied", d.Kind)
	}
	if d := gate.Decide("/technician/dashboard", tokenFor(t, domain.RoleTechnician)); d.Kind != Allow {
		t.Errorf("technician on /technician/dashboard: got %s, want allow", d.Kind)
	}
	if d := gate.Decide("/employee/dashboard", ""); d.Kind != RedirectLogin {
		t.Errorf("no token on /employee/dashboard: got %s, want redirect_login", d.Kind)
	}
	if d := gate.Decide("/", tokenFor(t, domain.RoleManager)); d.Kind != RedirectHome || d.Target != "/manager/dashboard" {
		t.Errorf("manager on /: got %s -> %q, want redirect_home -> /manager/dashboard", d.Kind, d.Target)
	}
}

func TestDecideUnprotectedPath(t *testing.T) {
	gate := newTestGate()

	// A path no rule covers is unprotected for any valid session.
	d := gate.Decide("/help/faq", tokenFor(t, domain.RoleEmployee))
	if d.Kind != Allow {
		t.Fatalf("got %s, want allow", d.Kind)
	}
	// But still requires a session.
	if d := gate.Decide("/help/faq", ""); d.Kind != RedirectLogin {
		t.Fatalf("got %s, want redirect_login", d.Kind)
	}
}

func TestDecideIsDeterministic(t *testing.T) {
	gate := newTestGate()
	token := tokenFor(t, domain.RoleLogistics)

	first := gate.Decide("/logistics/part-requests", token)
	for i := 0; i < 5; i++ {
		if d := gate.Decide("/logistics/part-requests", token); d.Kind != first.Kind || d.Target != first.Target {
			t.Fatalf("decision changed between identical calls: %v vs %v", first, d)
		}
	}
}

func TestDecideExposesSession(t *testing.T) {
	gate := newTestGate()

	d := gate.Decide("/technician/dashboard", tokenFor(t, domain.RoleTechnician))
	if d.Session == nil || d.Session.Role != domain.RoleTechnician || d.Session.UserID != 1 {
		t.Fatalf("allow decision should carry the validated session, got %+v", d.Session)
	}
}
