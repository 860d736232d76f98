package jwt

import (
	"errors"
	"testing"
)

const (
	testSecret        = "test_secret"
	testRefreshSecret = "test_refresh_secret"
)

func TestAccessTokenRoundTrip(t *testing.T) {
	token, err := GenerateAccessToken(42, "alice@staffclock.io", "Alice Smith", "employee", testSecret, 15)
	if err != nil {
		t.Fatalf("GenerateAccessToken failed: %v", err)
	}

	claims, err := ValidateAccessToken(token, testSecret)
	if err != nil {
		t.Fatalf("ValidateAccessToken failed: %v", err)
	}

	if claims.UserID != 42 {
		t.Errorf("expected user ID 42, got %d", claims.UserID)
	}
	if claims.Email != "alice@staffclock.io" {
		t.Errorf("unexpected email: %s", claims.Email)
	}
	if claims.Role != "employee" {
		t.Errorf("unexpected role: %s", claims.Role)
	}
}

func TestAccessTokenWrongSecret(t *testing.T) {
	token, err := GenerateAccessToken(42, "alice@staffclock.io", "Alice Smith", "employee", testSecret, 15)
	if err != nil {
		t.Fatalf("GenerateAccessToken failed: %v", err)
	}

	if _, err := ValidateAccessToken(token, "another_secret"); !errors.Is(err, ErrTokenInvalid) {
		t.Errorf("expected ErrTokenInvalid, got %v", err)
	}
}

func TestAccessTokenExpired(t *testing.T) {
	// Negative expiry makes the token already expired
	token, err := GenerateAccessToken(42, "alice@staffclock.io", "Alice Smith", "employee", testSecret, -1)
	if err != nil {
		t.Fatalf("GenerateAccessToken failed: %v", err)
	}

	if _, err := ValidateAccessToken(token, testSecret); !errors.Is(err, ErrTokenExpired) {
		t.Errorf("expected ErrTokenExpired, got %v", err)
	}
}

func TestRefreshTokenRoundTrip(t *testing.T) {
	token, err := GenerateRefreshToken(42, "token-id-1", testRefreshSecret, 7)
	if err != nil {
		t.Fatalf("GenerateRefreshToken failed: %v", err)
	}

	claims, err := ValidateRefreshToken(token, testRefreshSecret)
	if err != nil {
		t.Fatalf("ValidateRefreshToken failed: %v", err)
	}

	if claims.UserID != 42 {
		t.Errorf("expected user ID 42, got %d", claims.UserID)
	}
	if claims.TokenID != "token-id-1" {
		t.Errorf("unexpected token ID: %s", claims.TokenID)
	}
}

func TestValidateGarbage(t *testing.T) {
	if _, err := ValidateAccessToken("not-a-jwt", testSecret); !errors.Is(err, ErrTokenInvalid) {
		t.Errorf("expected ErrTokenInvalid, got %v", err)
	}
	if _, err := ValidateRefreshToken("not-a-jwt", testRefreshSecret); !errors.Is(err, ErrTokenInvalid) {
		t.Errorf("expected ErrTokenInvalid, got %v", err)
	}
}
