package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"
)

type Config struct {
	ListenPort      string        // ex: ":8080"
	ShutdownTimeout time.Duration // ex: 5s

	LogLevel  string // "debug" | "info" | "warn" | "error"
	PrettyLog bool   // true => zap dev (color), false => zap prod (JSON)

	SeedFile string // path to a bookmarks.yaml seed file (optional, empty = no seed import)
	SeedUser string // user ID the seed file is imported for (required when SeedFile is set)

	JanitorInterval time.Duration // interval between expired-session sweeps (default: 1h)

	TrustProxy bool // true => trust X-Forwarded-For headers (e.g. cloudflared)

	// Rate limiting for mutation endpoints
	RateLimitBurst  int // token bucket size per client IP
	RateLimitPerMin int // refill rate per client IP per minute

	// Redis
	RedisAddr             string        // ex: "localhost:6379"
	RedisUser             string        // optional
	RedisPassword         string        // optional
	RedisPasswordRequired bool          // true => require password, false => allow empty password
	RedisDB               int           // Redis DB number
	RedisDT               time.Duration // Redis dial timeout (ex: 5s)
	RedisRT               time.Duration // Redis read timeout (ex: 3s)
	RedisWT               time.Duration // Redis write timeout (ex: 3s)
	RedisMaxWait          time.Duration // max wait between retries (ex: 10s)
	RedisPingTimeout      time.Duration // timeout for each ping attempt (ex: 5s)
	RedisPoolSize         int           // Redis connection pool size
	RedisConnectTimeout   time.Duration // Total time to retry connecting (ex: 30s)
	RedisRetryInterval    time.Duration // Initial wait between retries (ex: 2s, grows exponentially)
	RedisWarnThreshold    int           // warn after this many attempts
}

func Load() *Config {
	cfg := &Config{
		// Server settings
		ListenPort:      getenv("MARKD_LISTEN_PORT", ":8080"),
		ShutdownTimeout: mustDuration("MARKD_SHUTDOWN_TIMEOUT", 5*time.Second),

		// Logging
		LogLevel:  getenv("MARKD_LOG_LEVEL", "info"),
		PrettyLog: mustBool("MARKD_PRETTY_LOG", true),

		// Seed import
		SeedFile: getenv("MARKD_SEED_FILE", ""), // Optional, empty = seed import disabled
		SeedUser: getenv("MARKD_SEED_USER", ""),

		// Background maintenance
		JanitorInterval: mustDuration("MARKD_JANITOR_INTERVAL", time.Hour),

		// Access
		TrustProxy:      mustBool("MARKD_TRUST_PROXY", true),
		RateLimitBurst:  getenvInt("MARKD_RATE_LIMIT_BURST", 20),
		RateLimitPerMin: getenvInt("MARKD_RATE_LIMIT_PER_MIN", 60),

		// Redis settings
		RedisAddr:             requireEnv("MARKD_REDIS_ADDR"),
		RedisUser:             getenv("MARKD_REDIS_USERNAME", "default"),
		RedisPasswordRequired: mustBool("MARKD_REDIS_PASSWORD_REQUIRED", true),
		RedisPassword:         getenv("MARKD_REDIS_PASSWORD", ""),
		RedisDB:               requireEnvInt("MARKD_REDIS_DB"),
		RedisDT:               mustDuration("REDIS_DIAL_TIMEOUT", 5*time.Second),
		RedisRT:               mustDuration("REDIS_READ_TIMEOUT", 3*time.Second),
		RedisWT:               mustDuration("REDIS_WRITE_TIMEOUT", 3*time.Second),
		RedisMaxWait:          mustDuration("REDIS_MAX_WAIT", 10*time.Second),
		RedisPingTimeout:      mustDuration("REDIS_PING_TIMEOUT", 5*time.Second),
		RedisPoolSize:         getenvInt("REDIS_POOL_SIZE", 10),
		RedisConnectTimeout:   mustDuration("REDIS_CONNECT_TIMEOUT", 30*time.Second),
		RedisRetryInterval:    mustDuration("REDIS_RETRY_INTERVAL", 2*time.Second),
		RedisWarnThreshold:    getenvInt("REDIS_WARN_THRESHOLD", 3),
	}

	// Validate Redis password configuration
	if cfg.RedisPasswordRequired && cfg.RedisPassword == "" {
		panic("❌ FATAL: MARKD_REDIS_PASSWORD is required when MARKD_REDIS_PASSWORD_REQUIRED=true")
	}

	// Seed import needs an owner to file the bookmarks under
	if cfg.SeedFile != "" && cfg.SeedUser == "" {
		panic("❌ FATAL: MARKD_SEED_USER is required when MARKD_SEED_FILE is set")
	}

	// Log config only in debug mode with redacted sensitive fields
	if cfg.LogLevel == "debug" {
		cfgCopy := *cfg
		cfgCopy.RedisPassword = "***REDACTED***"
		if cfg.RedisUser != "" {
			cfgCopy.RedisUser = "***REDACTED***"
		}
		log.Printf("[DEBUG] cfg: %+v\n", cfgCopy)
	}

	return cfg
}

// helpers
func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func requireEnv(key string) string {
	v := os.Getenv(key)
	if v == "" {
		panic(fmt.Sprintf("❌ FATAL: Required environment variable %s is not set", key))
	}
	return v
}

func requireEnvInt(key string) int {
	v := os.Getenv(key)
	if v == "" {
		panic(fmt.Sprintf("❌ FATAL: Required environment variable %s is not set", key))
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		panic(fmt.Sprintf("❌ FATAL: Invalid integer value for %s: %s", key, v))
	}
	return i
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return def
}

func mustBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return def
}

func mustDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}
