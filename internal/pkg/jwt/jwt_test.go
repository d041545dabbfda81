package jwt

import (
	"errors"
	"testing"

	"maintdesk/internal/core/domain"
)

const testSecret = "unit-test-secret"

func TestAccessTokenRoundTrip(t *testing.T) {
	token, err := GenerateAccessToken(12, "jane", domain.RoleManager, testSecret, 15)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	claims, err := ValidateAccessToken(token, testSecret)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if claims.UserID != 12 || claims.Username != "jane" || claims.Role != "manager" {
		t.Fatalf("claims mismatch: %+v", claims)
	}
}

func TestValidateAccessTokenExpired(t *testing.T) {
	token, err := GenerateAccessToken(12, "jane", domain.RoleManager, testSecret, -1)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	if _, err := ValidateAccessToken(token, testSecret); !errors.Is(err, ErrTokenExpired) {
		t.Fatalf("got %v, want ErrTokenExpired", err)
	}
}

func TestValidateAccessTokenTampered(t *testing.T) {
	token, err := GenerateAccessToken(12, "jane", domain.RoleManager, testSecret, 15)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	if _, err := ValidateAccessToken(token, "other-secret"); !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("wrong secret: got %v, want ErrTokenInvalid", err)
	}
	if _, err := ValidateAccessToken(token+"x", testSecret); !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("mangled token: got %v, want ErrTokenInvalid", err)
	}
	if _, err := ValidateAccessToken("", testSecret); !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("empty token: got %v, want ErrTokenInvalid", err)
	}
}

func TestValidateSession(t *testing.T) {
	token, err := GenerateAccessToken(3, "lee", domain.RoleLogistics, testSecret, 15)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	session, err := ValidateSession(token, testSecret)
	if err != nil {
		t.Fatalf("validate session: %v", err)
	}
	if session.UserID != 3 || session.Username != "lee" || session.Role != domain.RoleLogistics {
		t.Fatalf("session mismatch: %+v", session)
	}
	if session.ExpiresAt.IsZero() || session.IssuedAt.IsZero() {
		t.Fatalf("session timestamps not populated: %+v", session)
	}
}

func TestValidateSessionUnknownRole(t *testing.T) {
	// A structurally valid token with a role outside the closed set must
	// be rejected outright, never passed through.
	token, err := GenerateAccessToken(3, "lee", domain.Role("superuser"), testSecret, 15)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	if _, err := ValidateSession(token, testSecret); !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("got %v, want ErrTokenInvalid", err)
	}
}

func TestRefreshTokenRoundTrip(t *testing.T) {
	token, err := GenerateRefreshToken(7, "token-id-1", testSecret, 7)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	claims, err := ValidateRefreshToken(token, testSecret)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if claims.UserID != 7 || claims.TokenID != "token-id-1" {
		t.Fatalf("claims mismatch: %+v", claims)
	}
}
