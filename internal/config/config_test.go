package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"combatbible/gymdesk/internal/config"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := config.LoadConfig(t.TempDir())
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if cfg.Server.Address != ":8080" {
		t.Errorf("address = %q", cfg.Server.Address)
	}
	if cfg.Database.Driver != config.DriverMemory {
		t.Errorf("driver = %q", cfg.Database.Driver)
	}
	if cfg.Catalog.GymID != "gym_001" {
		t.Errorf("gym id = %q", cfg.Catalog.GymID)
	}
	if cfg.JWT.Expiration != 12*time.Hour {
		t.Errorf("expiration = %v", cfg.JWT.Expiration)
	}
	if cfg.S3.Enabled() {
		t.Error("S3 must be disabled without a bucket")
	}
	if cfg.AI.Provider != config.ProviderStatic || cfg.AI.Variations != 3 {
		t.Errorf("ai = %+v", cfg.AI)
	}
	if !cfg.JWT.UsesDefaultSecret() {
		t.Errorf("secret = %q, want the built-in default", cfg.JWT.Secret)
	}
}

func TestLoadConfig_JWTSecretOverride(t *testing.T) {
	t.Setenv("JWT_SECRET", "s3cret-from-env")
	cfg, err := config.LoadConfig(t.TempDir())
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if cfg.JWT.UsesDefaultSecret() || cfg.JWT.Secret != "s3cret-from-env" {
		t.Errorf("secret = %q, want the env override", cfg.JWT.Secret)
	}
}

func TestLoadConfig_FileAndEnv(t *testing.T) {
	dir := t.TempDir()
	yaml := "server:\n  address: \":9000\"\njwt:\n  expiration: 30m\ns3:\n  bucket_name: videos\n"
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("CATALOG_GYM_NAME", "Tiger Muay Thai")

	cfg, err := config.LoadConfig(dir)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if cfg.Server.Address != ":9000" || cfg.JWT.Expiration != 30*time.Minute {
		t.Errorf("file values not applied: %+v %+v", cfg.Server, cfg.JWT)
	}
	if !cfg.S3.Enabled() {
		t.Error("S3 should be enabled")
	}
	if cfg.Catalog.GymName != "Tiger Muay Thai" {
		t.Errorf("gym name = %q, env must override", cfg.Catalog.GymName)
	}
}

func TestLoadConfig_RejectsUnknownDriver(t *testing.T) {
	t.Setenv("DATABASE_DRIVER", "postgres")
	if _, err := config.LoadConfig(t.TempDir()); err == nil {
		t.Error("LoadConfig() error = nil, want error")
	}
}

func TestLoadConfig_GeminiNeedsKey(t *testing.T) {
	t.Setenv("AI_PROVIDER", "gemini")
	if _, err := config.LoadConfig(t.TempDir()); err == nil {
		t.Error("LoadConfig() error = nil, want error")
	}
}
