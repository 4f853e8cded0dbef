package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv(ConfigPathEnvVar, "")
	cfg, err := Load(writeFile(t, "empty.yaml", "{}\n"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.DefaultTopN() != 5 {
		t.Errorf("TopN = %d, want 5", cfg.DefaultTopN())
	}
	if cfg.DefaultCacheKeyPrefix() != "recommendations::" {
		t.Errorf("KeyPrefix = %q", cfg.DefaultCacheKeyPrefix())
	}
	if cfg.DefaultCacheTTL() != 0 {
		t.Errorf("TTL = %v, want 0", cfg.DefaultCacheTTL())
	}
	if cfg.Cache.Backend != "memory" || cfg.Log.Level != "info" {
		t.Errorf("unexpected defaults: %+v", cfg)
	}
}

func TestLoad_FileAndEnv(t *testing.T) {
	path := writeFile(t, "carmatch.yaml", `
log:
  level: debug
  format: console
engine:
  top_n: 3
  inventory_file: cars.yaml
cache:
  backend: redis
  ttl: 10m
redis:
  addr: redis:6379
  db: 2
`)
	t.Setenv("CARMATCH_ENGINE_TOP_N", "4")
	t.Setenv("CARMATCH_REDIS_PASSWORD", "secret")
	t.Setenv("CARMATCH_UNKNOWN_THING", "ignored")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Engine.TopN != 4 {
		t.Errorf("TopN = %d, want env override 4", cfg.Engine.TopN)
	}
	if cfg.Engine.InventoryFile != "cars.yaml" {
		t.Errorf("InventoryFile = %q", cfg.Engine.InventoryFile)
	}
	if cfg.Cache.Backend != "redis" || cfg.Cache.TTL != 10*time.Minute {
		t.Errorf("Cache = %+v", cfg.Cache)
	}
	if cfg.Redis.Addr != "redis:6379" || cfg.Redis.DB != 2 || cfg.Redis.Password != "secret" {
		t.Errorf("Redis = %+v", cfg.Redis)
	}
	if cfg.Redis.DialTimeout != 5*time.Second {
		t.Errorf("DialTimeout default lost: %v", cfg.Redis.DialTimeout)
	}
	if cfg.Log.Level != "debug" || cfg.Log.Format != "console" {
		t.Errorf("Log = %+v", cfg.Log)
	}
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name, yaml, want string
	}{
		{"backend", "cache:\n  backend: memcached\n", "Backend"},
		{"top_n", "engine:\n  top_n: 0\n", "TopN"},
		{"top_n above 5", "engine:\n  top_n: 10\n", "TopN"},
		{"log format", "log:\n  format: xml\n", "Format"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeFile(t, "bad.yaml", tt.yaml))
			if err == nil {
				t.Fatalf("Load() should fail")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error %q should mention %s", err, tt.want)
			}
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Errorf("Load() of a missing explicit file should fail")
	}
}
