package config

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/sethvargo/go-envconfig"
)

func TestLoadFrom_Defaults(t *testing.T) {
	cfg, err := LoadFrom(context.Background(), envconfig.MapLookuper(map[string]string{
		"JWT_SECRET": "s3cret",
	}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Port != "4000" {
		t.Errorf("expected port 4000, got %q", cfg.Port)
	}
	if cfg.TokenTTL != 24*time.Hour {
		t.Errorf("expected 24h ttl, got %s", cfg.TokenTTL)
	}
	if cfg.StoreDriver != DriverMongo {
		t.Errorf("expected mongo driver, got %q", cfg.StoreDriver)
	}
	if cfg.Mongo.Database != "ventas" {
		t.Errorf("expected database ventas, got %q", cfg.Mongo.Database)
	}
	if cfg.RedisEnabled() {
		t.Error("redis should be disabled without REDIS_ADDR")
	}
	if !cfg.IsDevelopment() {
		t.Error("expected development env by default")
	}
}

func TestLoadFrom_Overrides(t *testing.T) {
	cfg, err := LoadFrom(context.Background(), envconfig.MapLookuper(map[string]string{
		"JWT_SECRET":   "s3cret",
		"PORT":         "9000",
		"TOKEN_TTL":    "90m",
		"STORE_DRIVER": "memory",
		"REDIS_ADDR":   "localhost:6379",
		"REDIS_DB":     "2",
	}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Port != "9000" || cfg.TokenTTL != 90*time.Minute || cfg.StoreDriver != DriverMemory {
		t.Errorf("overrides not applied: %+v", cfg)
	}
	if !cfg.RedisEnabled() || cfg.Redis.DB != 2 {
		t.Errorf("expected redis db 2 enabled, got %+v", cfg.Redis)
	}
}

func TestLoadFrom_MissingSecret(t *testing.T) {
	_, err := LoadFrom(context.Background(), envconfig.MapLookuper(map[string]string{}))
	if err == nil {
		t.Fatal("expected error when JWT_SECRET is missing")
	}
	if !strings.Contains(err.Error(), "JWT_SECRET") {
		t.Errorf("error should name the variable, got %v", err)
	}
}

func TestLoadFrom_UnknownDriver(t *testing.T) {
	_, err := LoadFrom(context.Background(), envconfig.MapLookuper(map[string]string{
		"JWT_SECRET":   "s3cret",
		"STORE_DRIVER": "postgres",
	}))
	if err == nil {
		t.Fatal("expected error for unknown driver")
	}
}
