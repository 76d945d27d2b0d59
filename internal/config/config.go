package config

import (
	"fmt"
	"log"
	"os"
	"runtime"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	ListenAddr      string        // ex: "127.0.0.1:2369"
	ShutdownTimeout time.Duration // ex: 5s

	LogLevel  string // "debug" | "info" | "warn" | "error"
	PrettyLog bool   // true => zap dev (color), false => zap prod (JSON)

	Platform string // "darwin" | "windows" | "linux", decides which menu the host gets

	SeedFile            string        // optional YAML file with blogs imported on first start
	NameRefreshInterval time.Duration // interval to refresh blog names from their homepage (default: 24h)
	NameFetchTimeout    time.Duration // timeout for a single homepage fetch (default: 10s)
	NameFetchPerMinute  int           // homepage fetches allowed per minute (default: 30)

	KeyringService string // service name under which credentials are stored

	// Redis
	RedisAddr           string        // ex: "localhost:6379"
	RedisUser           string        // optional
	RedisPassword       string        // optional
	RedisDB             int           // Redis DB number
	RedisDT             time.Duration // Redis dial timeout (ex: 5s)
	RedisRT             time.Duration // Redis read timeout (ex: 3s)
	RedisWT             time.Duration // Redis write timeout (ex: 3s)
	RedisMaxWait        time.Duration // max wait between retries (ex: 10s)
	RedisPingTimeout    time.Duration // timeout for each ping attempt (ex: 5s)
	RedisPoolSize       int           // Redis connection pool size
	RedisConnectTimeout time.Duration // Total time to retry connecting (ex: 30s)
	RedisRetryInterval  time.Duration // Initial wait between retries (ex: 2s, grows exponentially)
	RedisWarnThreshold  int           // warn after this many attempts

	AllowedHosts []string // Host headers accepted by the local API
	AllowedCIDRS []string // client IPs accepted by the local API

	APIRatePerSecond int // state-changing API requests per second (0 disables)
	APIBurst         int // burst on top of APIRatePerSecond
}

func Load() *Config {
	cfg := &Config{
		// Server settings
		ListenAddr:      getenv("GHOSTDESK_LISTEN_ADDR", "127.0.0.1:2369"),
		ShutdownTimeout: mustDuration("GHOSTDESK_SHUTDOWN_TIMEOUT", 5*time.Second),

		// Logging
		LogLevel:  getenv("GHOSTDESK_LOG_LEVEL", "info"),
		PrettyLog: mustBool("GHOSTDESK_PRETTY_LOG", true),

		Platform: getenv("GHOSTDESK_PLATFORM", runtime.GOOS),

		// Blogs
		SeedFile:            getenv("GHOSTDESK_SEED_FILE", ""), // Optional, empty = no seeding
		NameRefreshInterval: mustDuration("GHOSTDESK_NAME_REFRESH_INTERVAL", 24*time.Hour),
		NameFetchTimeout:    mustDuration("GHOSTDESK_NAME_FETCH_TIMEOUT", 10*time.Second),
		NameFetchPerMinute:  getenvInt("GHOSTDESK_NAME_FETCH_PER_MINUTE", 30),

		KeyringService: getenv("GHOSTDESK_KEYRING_SERVICE", "ghostdesk"),

		// Redis settings
		RedisAddr:           requireEnv("GHOSTDESK_REDIS_ADDR"),
		RedisUser:           getenv("GHOSTDESK_REDIS_USERNAME", ""),
		RedisPassword:       getenv("GHOSTDESK_REDIS_PASSWORD", ""),
		RedisDB:             getenvInt("GHOSTDESK_REDIS_DB", 0),
		RedisDT:             mustDuration("REDIS_DIAL_TIMEOUT", 5*time.Second),
		RedisRT:             mustDuration("REDIS_READ_TIMEOUT", 3*time.Second),
		RedisWT:             mustDuration("REDIS_WRITE_TIMEOUT", 3*time.Second),
		RedisMaxWait:        mustDuration("REDIS_MAX_WAIT", 10*time.Second),
		RedisPingTimeout:    mustDuration("REDIS_PING_TIMEOUT", 5*time.Second),
		RedisPoolSize:       getenvInt("REDIS_POOL_SIZE", 10),
		RedisConnectTimeout: mustDuration("REDIS_CONNECT_TIMEOUT", 30*time.Second),
		RedisRetryInterval:  mustDuration("REDIS_RETRY_INTERVAL", 2*time.Second),
		RedisWarnThreshold:  getenvInt("REDIS_WARN_THRESHOLD", 3),

		// Access restrictions (loopback only by default)
		AllowedHosts: splitAndTrim(getenv("GHOSTDESK_ALLOWED_HOSTS", "127.0.0.1:2369,localhost:2369")),
		AllowedCIDRS: splitAndTrim(getenv("GHOSTDESK_ALLOWED_CIDRS", "127.0.0.0/8,::1")),

		APIRatePerSecond: getenvInt("GHOSTDESK_API_RATE_PER_SECOND", 20),
		APIBurst:         getenvInt("GHOSTDESK_API_BURST", 40),
	}

	if cfg.NameFetchPerMinute < 1 {
		cfg.NameFetchPerMinute = 1
	}

	if cfg.LogLevel == "debug" {
		cfgCopy := *cfg
		if cfgCopy.RedisPassword != "" {
			cfgCopy.RedisPassword = "***REDACTED***"
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

func splitAndTrim(s string) []string {
	if s == "" {
		return nil
	}
	raw := strings.Split(s, ",")
	parts := make([]string, 0, len(raw))
	for _, part := range raw {
		trimmed := strings.TrimSpace(part)
		// Remove surrounding quotes if present
		trimmed = strings.Trim(trimmed, `"'`)
		if trimmed != "" {
			parts = append(parts, trimmed)
		}
	}
	return parts
}
