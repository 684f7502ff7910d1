package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const testSecret = "test-secret"

func signToken(t *testing.T, claims *Claims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(testSecret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return signed
}

func TestValidateHS256RoundTrip(t *testing.T) {
	validator := NewJWTValidator(testSecret, "")
	signed := signToken(t, &Claims{
		SessionID: "sess-1",
		Roles:     []string{"owner"},
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "user-42",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})

	claims, err := validator.Validate(signed)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if claims.Subject != "user-42" {
		t.Errorf("subject = %q", claims.Subject)
	}
	if claims.SessionID != "sess-1" {
		t.Errorf("session = %q", claims.SessionID)
	}
	if len(claims.Roles) != 1 || claims.Roles[0] != "owner" {
		t.Errorf("roles = %v", claims.Roles)
	}
}

func TestValidateSessionFallsBackToJTI(t *testing.T) {
	validator := NewJWTValidator(testSecret, "")
	signed := signToken(t, &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "user-42",
			ID:        "jti-9",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})

	claims, err := validator.Validate(signed)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if claims.SessionID != "jti-9" {
		t.Errorf("expected jti fallback, got %q", claims.SessionID)
	}
}

func TestValidateRejectsExpired(t *testing.T) {
	validator := NewJWTValidator(testSecret, "")
	signed := signToken(t, &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "user-42",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
		},
	})

	if _, err := validator.Validate(signed); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("want ErrInvalidToken, got %v", err)
	}
}

func TestValidateRejectsWrongSecret(t *testing.T) {
	validator := NewJWTValidator("another-secret", "")
	signed := signToken(t, &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "user-42",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})

	if _, err := validator.Validate(signed); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("want ErrInvalidToken, got %v", err)
	}
}

func TestValidateRejectsMissingSubject(t *testing.T) {
	validator := NewJWTValidator(testSecret, "")
	signed := signToken(t, &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})

	if _, err := validator.Validate(signed); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("want ErrInvalidToken, got %v", err)
	}
}

func TestValidateEmptyToken(t *testing.T) {
	validator := NewJWTValidator(testSecret, "")
	if _, err := validator.Validate("  "); !errors.Is(err, ErrMissingToken) {
		t.Fatalf("want ErrMissingToken, got %v", err)
	}
}

func TestValidateWithoutConfiguredKey(t *testing.T) {
	validator := NewJWTValidator("", "")
	if _, err := validator.Validate("whatever"); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("want ErrInvalidToken, got %v", err)
	}
}
