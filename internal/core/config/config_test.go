package config

import (
	"testing"
	"time"
)

func TestFromEnvDefaults(t *testing.T) {
	cfg := FromEnv()
	if cfg.Addr != ":8090" {
		t.Fatalf("Addr = %q, want :8090", cfg.Addr)
	}
	if cfg.Table != "argo_data" {
		t.Fatalf("Table = %q, want argo_data", cfg.Table)
	}
	if cfg.CacheTTL != 300*time.Second {
		t.Fatalf("CacheTTL = %v, want 300s", cfg.CacheTTL)
	}
	if cfg.CacheHotTTL != 600*time.Second {
		t.Fatalf("CacheHotTTL = %v, want double the TTL", cfg.CacheHotTTL)
	}
	if cfg.CacheDriver != "lru" {
		t.Fatalf("CacheDriver = %q, want lru", cfg.CacheDriver)
	}
	if cfg.Invalidation.Enabled {
		t.Fatal("invalidation must default to disabled")
	}
}

func TestFromEnvOverrides(t *testing.T) {
	t.Setenv("CACHE_DRIVER", "redis")
	t.Setenv("CACHE_TTL", "1m")
	t.Setenv("H3_RES", "22") // clamped
	t.Setenv("INVALIDATION_ENABLED", "yes")

	cfg := FromEnv()
	if cfg.CacheDriver != "redis" {
		t.Fatalf("CacheDriver = %q, want redis", cfg.CacheDriver)
	}
	if cfg.CacheTTL != time.Minute {
		t.Fatalf("CacheTTL = %v, want 1m", cfg.CacheTTL)
	}
	if cfg.H3Res != 15 {
		t.Fatalf("H3Res = %d, want clamp to 15", cfg.H3Res)
	}
	if !cfg.Invalidation.Enabled {
		t.Fatal("INVALIDATION_ENABLED=yes must enable invalidation")
	}
}
