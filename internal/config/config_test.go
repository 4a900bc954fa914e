package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.AppName != "EWallet" {
		t.Fatalf("unexpected app name %s", cfg.AppName)
	}
	if !cfg.IsDev() {
		t.Fatal("default environment must be development")
	}
	if cfg.SignupBonus != 100 {
		t.Fatalf("unexpected signup bonus %d", cfg.SignupBonus)
	}
	if cfg.ShutdownPeriod != 10*time.Second {
		t.Fatalf("unexpected shutdown period %s", cfg.ShutdownPeriod)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("SIGNUP_BONUS", "2500")
	t.Setenv("SHUTDOWN_TIMEOUT", "5s")
	t.Setenv("ACCESS_TOKEN_TTL", "30m")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.SignupBonus != 2500 {
		t.Fatalf("signup bonus override lost: %d", cfg.SignupBonus)
	}
	if cfg.ShutdownPeriod != 5*time.Second {
		t.Fatalf("shutdown override lost: %s", cfg.ShutdownPeriod)
	}
	if cfg.AccessTokenTTL != 30*time.Minute {
		t.Fatalf("access ttl override lost: %s", cfg.AccessTokenTTL)
	}
}

func TestLoadRejectsBadValues(t *testing.T) {
	t.Setenv("SIGNUP_BONUS", "-5")
	if _, err := Load(); err == nil {
		t.Fatal("negative signup bonus must be rejected")
	}

	t.Setenv("SIGNUP_BONUS", "100")
	t.Setenv("SHUTDOWN_TIMEOUT", "soon")
	if _, err := Load(); err == nil {
		t.Fatal("invalid duration must be rejected")
	}
}

func TestProductionRequiresInfra(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	if _, err := Load(); err == nil {
		t.Fatal("production without DATABASE_URL must fail")
	}
}

func TestAddress(t *testing.T) {
	if got := (Config{Port: "8080"}).Address(); got != ":8080" {
		t.Fatalf("unexpected address %s", got)
	}
	if got := (Config{Port: ":9090"}).Address(); got != ":9090" {
		t.Fatalf("unexpected address %s", got)
	}
}
