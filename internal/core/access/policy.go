package access

import (
	"strings"

	"maintdesk/internal/core/domain"
)

// Well-known navigation paths
const (
	LoginPath        = "/login"
	RegisterPath     = "/register"
	AccessDeniedPath = "/access-denied"
)

// Rule maps a path prefix to the set of roles allowed under it.
type Rule struct {
	Prefix string
	Roles  []domain.Role
}

// Policy is the static authorization table: an ordered list of
// (prefix, allowed-roles) rules, a public-path allowlist and the
// per-role landing paths. It holds no mutable state.
type Policy struct {
	rules  []Rule
	public []string
	entry  []string
	homes  map[domain.Role]string
}

// NewPolicy builds a policy from explicit tables.
func NewPolicy(rules []Rule, public, entry []string, homes map[domain.Role]string) *Policy {
	return &Policy{rules: rules, public: public, entry: entry, homes: homes}
}

// DefaultPolicy returns the shipped authorization table: one dashboard
// area per role (admin may enter any of them), public auth pages, and
// the generic entry paths that fan out to the role's home dashboard.
func DefaultPolicy() *Policy {
	return NewPolicy(
		[]Rule{
			{Prefix: "/admin", Roles: []domain.Role{domain.RoleAdmin}},
			{Prefix: "/employee", Roles: []domain.Role{domain.RoleEmployee, domain.RoleAdmin}},
			{Prefix: "/technician", Roles: []domain.Role{domain.RoleTechnician, domain.RoleAdmin}},
			{Prefix: "/manager", Roles: []domain.Role{domain.RoleManager, domain.RoleAdmin}},
			{Prefix: "/logistics", Roles: []domain.Role{domain.RoleLogistics, domain.RoleAdmin}},
		},
		[]string{
			LoginPath,
			RegisterPath,
			AccessDeniedPath,
			"/auth/login",
			"/auth/register",
			"/auth/refresh",
			"/auth/logout",
		},
		[]string{"/", "/dashboard"},
		map[domain.Role]string{
			domain.RoleAdmin:      "/admin/dashboard",
			domain.RoleEmployee:   "/employee/dashboard",
			domain.RoleTechnician: "/technician/dashboard",
			domain.RoleManager:    "/manager/dashboard",
			domain.RoleLogistics:  "/logistics/dashboard",
		},
	)
}

// RolesAllowed returns the allowed role set for a path using
// longest-prefix match over the ordered rule list. An empty result
// means no rule covers the path.
func (p *Policy) RolesAllowed(path string) []domain.Role {
	var best *Rule
	bestLen := -1
	for i := range p.rules {
		r := &p.rules[i]
		if matchesPrefix(path, r.Prefix) && len(r.Prefix) > bestLen {
			best = r
			bestLen = len(r.Prefix)
		}
	}
	if best == nil {
		return nil
	}
	return best.Roles
}

// IsPublic reports whether the path is reachable without a session.
func (p *Policy) IsPublic(path string) bool {
	for _, pub := range p.public {
		if matchesPrefix(path, pub) {
			return true
		}
	}
	return false
}

// IsEntry reports whether the path is a generic entry path that should
// fan out to the caller's role home.
func (p *Policy) IsEntry(path string) bool {
	for _, e := range p.entry {
		if path == e {
			return true
		}
	}
	return false
}

// HomePath returns the canonical landing path for a role.
func (p *Policy) HomePath(role domain.Role) (string, bool) {
	home, ok := p.homes[role]
	return home, ok
}

// matchesPrefix matches on whole path segments: "/admin" covers
// "/admin" and "/admin/users" but not "/administrator".
func matchesPrefix(path, prefix string) bool {
	if path == prefix {
		return true
	}
	trimmed := strings.TrimSuffix(prefix, "/")
	return strings.HasPrefix(path, trimmed+"/")
}
