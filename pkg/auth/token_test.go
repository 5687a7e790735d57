package auth

import (
	"strings"
	"testing"
	"time"

	"github.com/angelmondragon/warungsunda-backend/pkg/config"
	"github.com/angelmondragon/warungsunda-backend/pkg/enums"
)

func testJWTConfig(minutes int) config.JWTConfig {
	return config.JWTConfig{
		Secret:            "secret",
		Issuer:            "warung-sunda",
		ExpirationMinutes: minutes,
	}
}

func TestMintAndParseSessionToken(t *testing.T) {
	cfg := testJWTConfig(30)
	now := time.Now().UTC()

	token, minted, err := MintSessionToken(cfg, now, SessionTokenPayload{
		UserID: "user-1",
		Role:   enums.UserRoleCustomer,
		JTI:    "jti-1",
	})
	if err != nil {
		t.Fatalf("mint session token: %v", err)
	}
	if minted.ID != "jti-1" {
		t.Fatalf("expected supplied jti, got %s", minted.ID)
	}

	claims, err := ParseSessionToken(cfg, token)
	if err != nil {
		t.Fatalf("parse session token: %v", err)
	}
	if claims.UserID != "user-1" || claims.Subject != "user-1" {
		t.Fatalf("unexpected subject %s/%s", claims.UserID, claims.Subject)
	}
	if claims.Role != enums.UserRoleCustomer {
		t.Fatalf("unexpected role %s", claims.Role)
	}
	if claims.Issuer != cfg.Issuer {
		t.Fatalf("expected issuer %s, got %s", cfg.Issuer, claims.Issuer)
	}

	exp := now.Add(30 * time.Minute)
	diff := claims.ExpiresAt.Sub(exp)
	if diff < 0 {
		diff = -diff
	}
	if diff >= time.Second {
		t.Fatalf("expected exp roughly %v, got %v", exp, claims.ExpiresAt.Time)
	}
}

func TestMintSessionTokenGeneratesJTI(t *testing.T) {
	_, claims, err := MintSessionToken(testJWTConfig(5), time.Now(), SessionTokenPayload{UserID: "user-2", Role: enums.UserRoleStaff})
	if err != nil {
		t.Fatalf("mint: %v", err)
	}
	if claims.ID == "" {
		t.Fatal("expected generated jti")
	}
}

func TestParseSessionTokenInvalidSignature(t *testing.T) {
	cfg := testJWTConfig(10)
	token, _, err := MintSessionToken(cfg, time.Now(), SessionTokenPayload{UserID: "user-1", Role: enums.UserRoleAdmin})
	if err != nil {
		t.Fatalf("mint: %v", err)
	}
	if _, err := ParseSessionToken(cfg, token+"x"); err == nil {
		t.Fatal("expected invalid signature error")
	}

	other := cfg
	other.Secret = "another"
	if _, err := ParseSessionToken(other, token); err == nil {
		t.Fatal("expected error for wrong secret")
	}
}

func TestParseSessionTokenExpired(t *testing.T) {
	cfg := testJWTConfig(15)
	token, _, err := MintSessionToken(cfg, time.Now().Add(-time.Hour), SessionTokenPayload{UserID: "user-1", Role: enums.UserRoleCustomer})
	if err != nil {
		t.Fatalf("mint: %v", err)
	}
	_, err = ParseSessionToken(cfg, token)
	if err == nil {
		t.Fatal("expected expiration error")
	}
	if !strings.Contains(err.Error(), "expired") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestMintSessionTokenValidatesPayload(t *testing.T) {
	cfg := testJWTConfig(5)
	if _, _, err := MintSessionToken(cfg, time.Now(), SessionTokenPayload{UserID: "user-1"}); err == nil {
		t.Fatal("expected invalid role error")
	}
	if _, _, err := MintSessionToken(cfg, time.Now(), SessionTokenPayload{Role: enums.UserRoleCustomer}); err == nil {
		t.Fatal("expected missing user error")
	}
	if _, _, err := MintSessionToken(config.JWTConfig{Issuer: "x", ExpirationMinutes: 1}, time.Now(), SessionTokenPayload{UserID: "u", Role: enums.UserRoleCustomer}); err == nil {
		t.Fatal("expected missing secret error")
	}
}
