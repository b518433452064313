package config

import (
	"testing"
)

// Test that LoadConfig returns a non-nil config and that ConnectDatabase uses
// in-memory sqlite under APPENV=test.
func TestLoadConfigAndConnectDatabase_TestEnv(t *testing.T) {
	t.Setenv("APPENV", "test")
	t.Setenv("APPNAME", "hospital-admin-test")
	ResetConfigForTesting()
	t.Cleanup(ResetConfigForTesting)

	cfg := LoadConfig()
	if cfg == nil {
		t.Fatalf("expected non-nil config")
	}
	if cfg.AppEnv != "test" {
		t.Fatalf("expected AppEnv=test, got %q", cfg.AppEnv)
	}
	if cfg.AppName != "hospital-admin-test" {
		t.Fatalf("expected AppName from env, got %q", cfg.AppName)
	}

	db, err := ConnectDatabase()
	if err != nil {
		t.Fatalf("ConnectDatabase failed in test env: %v", err)
	}
	if db == nil {
		t.Fatalf("expected non-nil DB connection")
	}
}

func TestLoadConfigRedisSettings(t *testing.T) {
	t.Setenv("APPENV", "test")
	t.Setenv("REDIS_ADDR", "redis.internal:6380")
	t.Setenv("REDIS_PASS", "hunter2")
	t.Setenv("REDIS_DB", "3")
	ResetConfigForTesting()
	t.Cleanup(ResetConfigForTesting)

	cfg := LoadConfig()
	if cfg.RedisAddr != "redis.internal:6380" {
		t.Fatalf("expected RedisAddr from env, got %q", cfg.RedisAddr)
	}
	if cfg.RedisPass != "hunter2" {
		t.Fatalf("expected RedisPass from env, got %q", cfg.RedisPass)
	}
	if cfg.RedisDB != 3 {
		t.Fatalf("expected RedisDB=3, got %d", cfg.RedisDB)
	}
}

func TestLoadConfigRedisAddrDefault(t *testing.T) {
	t.Setenv("APPENV", "test")
	t.Setenv("REDIS_ADDR", "")
	ResetConfigForTesting()
	t.Cleanup(ResetConfigForTesting)

	cfg := LoadConfig()
	if cfg.RedisAddr != "localhost:6379" {
		t.Fatalf("expected default redis address, got %q", cfg.RedisAddr)
	}
}

func TestLoadConfigIsSingleton(t *testing.T) {
	t.Setenv("APPENV", "test")
	ResetConfigForTesting()
	t.Cleanup(ResetConfigForTesting)

	first := LoadConfig()
	second := LoadConfig()
	if first != second {
		t.Fatalf("expected LoadConfig to return the same instance")
	}
}
