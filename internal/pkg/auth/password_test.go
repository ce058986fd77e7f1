package auth

import (
	"strings"
	"testing"
)

func TestPasswordHasher_HashAndCompare(t *testing.T) {
	hasher := NewPasswordHasher(4)

	hashed, err := hasher.Hash("secret123")
	if err != nil {
		t.Fatalf("Hash: %v", err)
	}
	if hashed == "secret123" || !strings.HasPrefix(hashed, "$2") {
		t.Fatalf("expected a bcrypt hash, got %q", hashed)
	}
	if !hasher.Compare(hashed, "secret123") {
		t.Fatal("expected matching password to compare equal")
	}
	if hasher.Compare(hashed, "secret124") {
		t.Fatal("expected wrong password to be rejected")
	}
}

func TestPasswordHasher_SaltsEveryHash(t *testing.T) {
	hasher := NewPasswordHasher(4)

	a, err := hasher.Hash("same")
	if err != nil {
		t.Fatalf("Hash: %v", err)
	}
	b, err := hasher.Hash("same")
	if err != nil {
		t.Fatalf("Hash: %v", err)
	}
	if a == b {
		t.Fatal("expected different hashes for the same password")
	}
}

func TestPasswordHasher_InvalidCostFallsBack(t *testing.T) {
	if got := NewPasswordHasher(99).cost; got != DefaultBcryptCost {
		t.Fatalf("expected cost %d, got %d", DefaultBcryptCost, got)
	}
}
