package utils

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestAccessTokenRoundTrip(t *testing.T) {
	m := NewJWTManager("test-secret", time.Hour, 24*time.Hour)
	userID := uuid.New()

	token, err := m.GenerateAccessToken(userID, "cashier@example.com", []string{"cashier"}, []string{"register-payments"})
	if err != nil {
		t.Fatalf("GenerateAccessToken: %v", err)
	}

	claims, err := m.ValidateAccessToken(token)
	if err != nil {
		t.Fatalf("ValidateAccessToken: %v", err)
	}
	if claims.UserID != userID || claims.Email != "cashier@example.com" {
		t.Fatalf("claims = %+v, want the issued identity", claims)
	}
	if len(claims.Roles) != 1 || claims.Roles[0] != "cashier" {
		t.Fatalf("roles = %v, want [cashier]", claims.Roles)
	}
}

func TestTokenTypesDoNotInterchange(t *testing.T) {
	m := NewJWTManager("test-secret", time.Hour, 24*time.Hour)
	userID := uuid.New()

	refresh, err := m.GenerateRefreshToken(userID)
	if err != nil {
		t.Fatalf("GenerateRefreshToken: %v", err)
	}
	if _, err := m.ValidateAccessToken(refresh); err == nil {
		t.Fatal("refresh token accepted as access token")
	}

	access, err := m.GenerateAccessToken(userID, "", nil, nil)
	if err != nil {
		t.Fatalf("GenerateAccessToken: %v", err)
	}
	if _, err := m.ValidateRefreshToken(access); err == nil {
		t.Fatal("access token accepted as refresh token")
	}

	got, err := m.ValidateRefreshToken(refresh)
	if err != nil {
		t.Fatalf("ValidateRefreshToken: %v", err)
	}
	if got != userID {
		t.Fatalf("refresh subject = %v, want %v", got, userID)
	}
}

func TestTokenSignedWithOtherSecretRejected(t *testing.T) {
	issuer := NewJWTManager("secret-a", time.Hour, time.Hour)
	verifier := NewJWTManager("secret-b", time.Hour, time.Hour)

	token, err := issuer.GenerateAccessToken(uuid.New(), "", nil, nil)
	if err != nil {
		t.Fatalf("GenerateAccessToken: %v", err)
	}
	if _, err := verifier.ValidateAccessToken(token); err == nil {
		t.Fatal("token verified under a different secret")
	}
}
