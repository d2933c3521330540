package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

type InvalidationCfg struct {
	Enabled bool
	Driver  string
	Topic   string
	Brokers string
	GroupID string
}

type LLMCfg struct {
	APIKey  string
	BaseURL string
	Model   string
	Timeout time.Duration
}

type Config struct {
	Addr     string
	LogLevel string

	DatabaseURL string
	Table       string

	SchemaRefreshInterval time.Duration

	CacheDriver    string // "lru", "redis" or "none"
	RedisAddr      string
	CacheTTL       time.Duration
	CacheHotTTL    time.Duration
	CacheSize      int
	CacheOpTimeout time.Duration
	H3Res          int

	HotThreshold float64
	HotHalfLife  time.Duration

	LLM          LLMCfg
	Invalidation InvalidationCfg
}

func FromEnv() Config {
	res := getint("H3_RES", 5)
	if res < 0 {
		res = 0
	}
	if res > 15 {
		res = 15
	}

	ttl := getduration("CACHE_TTL", 300*time.Second)

	return Config{
		Addr:     getenv("ADDR", ":8090"),
		LogLevel: getenv("LOG_LEVEL", "info"),

		DatabaseURL: getenv("DATABASE_URL", "postgres://localhost:5432/argo"),
		Table:       getenv("ARGO_TABLE", "argo_data"),

		SchemaRefreshInterval: getduration("SCHEMA_REFRESH_INTERVAL", 5*time.Minute),

		CacheDriver:    getenv("CACHE_DRIVER", "lru"),
		RedisAddr:      getenv("REDIS_ADDR", "localhost:6379"),
		CacheTTL:       ttl,
		CacheHotTTL:    getduration("CACHE_HOT_TTL", 2*ttl),
		CacheSize:      getint("CACHE_SIZE", 1024),
		CacheOpTimeout: getduration("CACHE_OP_TIMEOUT", 250*time.Millisecond),
		H3Res:          res,

		HotThreshold: getfloat("HOT_THRESHOLD", 10.0),
		HotHalfLife:  getduration("HOT_HALF_LIFE", time.Minute),

		LLM: LLMCfg{
			APIKey:  getenv("GROQ_API_KEY", ""),
			BaseURL: getenv("LLM_BASE_URL", "https://api.groq.com/openai/v1"),
			Model:   getenv("LLM_MODEL", "llama-3.3-70b-versatile"),
			Timeout: getduration("LLM_TIMEOUT", 20*time.Second),
		},
		Invalidation: InvalidationCfg{
			Enabled: getbool("INVALIDATION_ENABLED", false),
			Driver:  getenv("INVALIDATION_DRIVER", "none"),
			Topic:   getenv("KAFKA_TOPIC", "argo-ingest"),
			Brokers: getenv("KAFKA_BROKERS", "localhost:9092"),
			GroupID: getenv("KAFKA_GROUP_ID", "argoquery-invalidator"),
		},
	}
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func getint(k string, def int) int {
	if v := os.Getenv(k); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func getbool(k string, def bool) bool {
	if v := os.Getenv(k); v != "" {
		switch strings.ToLower(strings.TrimSpace(v)) {
		case "1", "t", "true", "y", "yes":
			return true
		case "0", "f", "false", "n", "no":
			return false
		}
	}
	return def
}

func getfloat(k string, def float64) float64 {
	if v := os.Getenv(k); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return def
}

func getduration(k string, def time.Duration) time.Duration {
	if v := os.Getenv(k); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}
