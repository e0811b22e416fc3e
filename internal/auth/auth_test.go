package auth_test

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"clinic-booking-api/internal/auth"
)

const secret = "test-secret"

func TestPasswordHashing(t *testing.T) {
	hash, err := auth.HashPassword("correct horse battery staple")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if !auth.CheckPassword(hash, "correct horse battery staple") {
		t.Error("correct password rejected")
	}
	if auth.CheckPassword(hash, "wrong password") {
		t.Error("wrong password accepted")
	}
}

func TestTokenRoundTrip(t *testing.T) {
	tok, err := auth.MakeToken("uid-1", "ana@example.com", "client", secret)
	if err != nil {
		t.Fatalf("make token: %v", err)
	}

	claims, err := auth.ParseToken(tok, secret)
	if err != nil {
		t.Fatalf("parse token: %v", err)
	}
	if claims.UserID != "uid-1" {
		t.Errorf("uid: got %s", claims.UserID)
	}
	if claims.Email != "ana@example.com" {
		t.Errorf("email: got %s", claims.Email)
	}
	if claims.Role != "client" {
		t.Errorf("role: got %s", claims.Role)
	}

	// expiry is fixed at 7 days from issuance
	diff := time.Until(claims.ExpiresAt.Time)
	if diff < 7*24*time.Hour-time.Minute || diff > 7*24*time.Hour+time.Minute {
		t.Errorf("expected ~7d expiry, got %v", diff)
	}
}

func TestTokenWrongSecret(t *testing.T) {
	tok, _ := auth.MakeToken("uid", "a@b.com", "client", secret)
	if _, err := auth.ParseToken(tok, "other-secret"); err == nil {
		t.Fatal("expected error for wrong secret")
	}
}

func TestTokenGarbage(t *testing.T) {
	for _, raw := range []string{"", "not.a.token", "aaaa.bbbb.cccc"} {
		if _, err := auth.ParseToken(raw, secret); err == nil {
			t.Errorf("expected error for %q", raw)
		}
	}
}

func TestTokenExpired(t *testing.T) {
	c := auth.Claims{
		UserID: "uid",
		Email:  "a@b.com",
		Role:   "client",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-time.Hour)),
		},
	}
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, c).SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	if _, err := auth.ParseToken(tok, secret); err == nil {
		t.Fatal("expected error for expired token")
	}
}

func TestTokenAlgNone(t *testing.T) {
	c := auth.Claims{
		UserID: "uid",
		Role:   "admin",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	tok, err := jwt.NewWithClaims(jwt.SigningMethodNone, c).SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	if _, err := auth.ParseToken(tok, secret); err == nil {
		t.Fatal("unsigned token must be rejected")
	}
}
