package access

import (
	"maintdesk/internal/core/domain"
	"maintdesk/internal/pkg/jwt"
)

// DecisionKind enumerates the possible outcomes of a gate evaluation.
type DecisionKind int

const (
	Allow DecisionKind = iota
	RedirectLogin
	RedirectHome
	RedirectDenied
)

func (k DecisionKind) String() string {
	switch k {
	case Allow:
		return "allow"
	case RedirectLogin:
		return "redirect_login"
	case RedirectHome:
		return "redirect_home"
	case RedirectDenied:
		return "redirect_denied"
	}
	return "unknown"
}

// Decision is the outcome of evaluating one navigation request.
// Target is the redirect destination for the redirect kinds.
// ClearToken tells the caller to drop its stored token (set when the
// presented token failed validation). Session is populated whenever a
// valid token was presented.
type Decision struct {
	Kind       DecisionKind
	Target     string
	ClearToken bool
	Session    *domain.Session
}

// Gate decides, per navigation request, whether the caller may proceed
// or where it must be redirected. It is a pure function of its inputs:
// no state is retained between calls.
type Gate struct {
	policy *Policy
	secret string
}

// NewGate creates a gate over the given policy. secret is the HMAC key
// used to verify session tokens.
func NewGate(policy *Policy, secret string) *Gate {
	return &Gate{policy: policy, secret: secret}
}

// Policy returns the authorization table the gate consults.
func (g *Gate) Policy() *Policy {
	return g.policy
}

// Decide evaluates a navigation to path carrying the given token
// (empty string when no token is present).
//
// Public paths pass without a session. A missing token goes to login.
// A malformed or expired token goes to login and the stored token is
// cleared. Generic entry paths fan out to the role's home dashboard,
// or to access-denied for a role without one. Everything else is
// checked against the prefix table: no matching rule means the path is
// unprotected, a matching rule admits only the listed roles.
func (g *Gate) Decide(path, token string) Decision {
	if g.policy.IsPublic(path) {
		return Decision{Kind: Allow}
	}

	if token == "" {
		return Decision{Kind: RedirectLogin, Target: LoginPath}
	}

	session, err := jwt.ValidateSession(token, g.secret)
	if err != nil {
		return Decision{Kind: RedirectLogin, Target: LoginPath, ClearToken: true}
	}

	if g.policy.IsEntry(path) {
		home, ok := g.policy.HomePath(session.Role)
		if !ok {
			return Decision{Kind: RedirectDenied, Target: AccessDeniedPath, Session: session}
		}
		return Decision{Kind: RedirectHome, Target: home, Session: session}
	}

	allowed := g.policy.RolesAllowed(path)
	if len(allowed) == 0 {
		return Decision{Kind: Allow, Session: session}
	}
	for _, role := range allowed {
		if role == session.Role {
			return Decision{Kind: Allow, Session: session}
		}
	}
	return Decision{Kind: RedirectDenied, Target: AccessDeniedPath, Session: session}
}
