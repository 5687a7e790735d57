package config

import (
	"os"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	setMinimalEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() returned unexpected error: %v", err)
	}

	if !cfg.DB.IsSQLite() {
		t.Fatalf("expected sqlite default driver, got %q", cfg.DB.Driver)
	}
	if cfg.Cart.CookieName != "warung_sunda_cart" {
		t.Fatalf("unexpected cart cookie name %q", cfg.Cart.CookieName)
	}
	if cfg.Cart.TTL != 7*24*time.Hour {
		t.Fatalf("expected 7 day cart ttl, got %v", cfg.Cart.TTL)
	}
	if cfg.Checkout.ReadyOffset != 15*time.Minute {
		t.Fatalf("expected 15m ready offset, got %v", cfg.Checkout.ReadyOffset)
	}
	if cfg.Checkout.TaxBasisPoints != 500 {
		t.Fatalf("expected 500 bps tax, got %d", cfg.Checkout.TaxBasisPoints)
	}
	if cfg.JWT.TTL() != 24*time.Hour {
		t.Fatalf("unexpected jwt ttl %v", cfg.JWT.TTL())
	}
}

func TestLoad_Overrides(t *testing.T) {
	setMinimalEnv(t)
	t.Setenv(EnvGatewayDelay, "250ms")
	t.Setenv(EnvSeedFixtures, "false")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() returned unexpected error: %v", err)
	}
	if cfg.Checkout.GatewayDelay != 250*time.Millisecond {
		t.Fatalf("expected gateway delay override, got %v", cfg.Checkout.GatewayDelay)
	}
	if cfg.FeatureFlags.SeedFixtures {
		t.Fatal("expected seed fixtures flag to be disabled")
	}
}

func TestLoad_MissingRequired(t *testing.T) {
	setMinimalEnv(t)
	if err := os.Unsetenv(EnvJWTSecret); err != nil {
		t.Fatalf("failed to unset %s: %v", EnvJWTSecret, err)
	}

	if _, err := Load(); err == nil {
		t.Fatal("expected missing required env to return an error")
	}
}

func TestLoad_RedisCartRequiresRedisURL(t *testing.T) {
	setMinimalEnv(t)
	t.Setenv(EnvCartBackend, CartBackendRedis)

	if _, err := Load(); err == nil {
		t.Fatal("expected redis cart backend without redis url to fail")
	}

	t.Setenv(EnvRedisURL, "redis://localhost:6379/0")
	if _, err := Load(); err != nil {
		t.Fatalf("expected redis cart backend to load, got %v", err)
	}
}

func TestLoad_PostgresRequiresDSN(t *testing.T) {
	setMinimalEnv(t)
	t.Setenv(EnvDBDriver, DBDriverPostgres)
	t.Setenv(EnvDBDSN, "")

	if _, err := Load(); err == nil {
		t.Fatal("expected postgres without dsn to fail")
	}
}

func TestLoad_InvalidDriver(t *testing.T) {
	setMinimalEnv(t)
	t.Setenv(EnvDBDriver, "mysql")

	if _, err := Load(); err == nil {
		t.Fatal("expected unknown driver to fail")
	}
}

func setMinimalEnv(t *testing.T) {
	t.Helper()

	t.Setenv(EnvAppEnv, "dev")
	t.Setenv(EnvJWTSecret, "secret")
}

func TestAppConfigEnvHelpers(t *testing.T) {
	devConfig := AppConfig{Env: "DEV"}
	if !devConfig.IsDev() {
		t.Fatalf("expected IsDev true for %q", devConfig.Env)
	}
	if devConfig.IsProd() {
		t.Fatalf("expected IsProd false for %q", devConfig.Env)
	}

	prodConfig := AppConfig{Env: "prod"}
	if !prodConfig.IsProd() {
		t.Fatalf("expected IsProd true for %q", prodConfig.Env)
	}
	if prodConfig.IsDev() {
		t.Fatalf("expected IsDev false for %q", prodConfig.Env)
	}
}
