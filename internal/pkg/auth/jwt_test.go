package auth

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const testSecret = "test-secret-key-for-unit-tests"

func TestJWT_IssueAndValidate(t *testing.T) {
	svc := NewJWTService(JWTConfig{Secret: testSecret, Issuer: "placement-portal"})

	token, err := svc.IssueToken(42, "student")
	if err != nil {
		t.Fatalf("IssueToken: %v", err)
	}

	claims, err := svc.ValidateToken(token)
	if err != nil {
		t.Fatalf("ValidateToken: %v", err)
	}
	if claims.ID != 42 || claims.Role != "student" {
		t.Fatalf("unexpected claims: id=%d role=%s", claims.ID, claims.Role)
	}
	if claims.ExpiresAt.Sub(claims.IssuedAt.Time) != DefaultTokenExpiration {
		t.Fatalf("expected a %s lifetime, got %s", DefaultTokenExpiration, claims.ExpiresAt.Sub(claims.IssuedAt.Time))
	}
}

func TestJWT_ExpiredTokenRejected(t *testing.T) {
	svc := NewJWTService(JWTConfig{Secret: testSecret, Expiration: time.Hour})
	issuedAt := time.Now()
	svc.now = func() time.Time { return issuedAt }

	token, err := svc.IssueToken(1, "coordinator")
	if err != nil {
		t.Fatalf("IssueToken: %v", err)
	}

	svc.now = func() time.Time { return issuedAt.Add(time.Hour + time.Second) }
	if _, err := svc.ValidateToken(token); !errors.Is(err, ErrExpiredToken) {
		t.Fatalf("expected ErrExpiredToken, got %v", err)
	}
}

func TestJWT_WrongSecretRejected(t *testing.T) {
	issuer := NewJWTService(JWTConfig{Secret: testSecret})
	other := NewJWTService(JWTConfig{Secret: "another-secret"})

	token, err := issuer.IssueToken(1, "student")
	if err != nil {
		t.Fatalf("IssueToken: %v", err)
	}
	if _, err := other.ValidateToken(token); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestJWT_NoneAlgorithmRejected(t *testing.T) {
	svc := NewJWTService(JWTConfig{Secret: testSecret})

	claims := &Claims{
		ID:   1,
		Role: "coordinator",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("sign none: %v", err)
	}

	if _, err := svc.ValidateToken(unsigned); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestJWT_TamperedTokenRejected(t *testing.T) {
	svc := NewJWTService(JWTConfig{Secret: testSecret})
	token, err := svc.IssueToken(7, "student")
	if err != nil {
		t.Fatalf("IssueToken: %v", err)
	}

	parts := strings.Split(token, ".")
	forged, err := NewJWTService(JWTConfig{Secret: "x"}).IssueToken(7, "coordinator")
	if err != nil {
		t.Fatalf("IssueToken: %v", err)
	}
	parts[1] = strings.Split(forged, ".")[1]

	if _, err := svc.ValidateToken(strings.Join(parts, ".")); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestExtractBearerToken(t *testing.T) {
	if _, err := ExtractBearerToken(""); !errors.Is(err, ErrInvalidFormat) {
		t.Fatalf("expected ErrInvalidFormat, got %v", err)
	}
	got, err := ExtractBearerToken("Bearer abc.def.ghi")
	if err != nil || got != "abc.def.ghi" {
		t.Fatalf("unexpected result %q, %v", got, err)
	}
}
