package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	platformstrings "consentflow/pkg/platform/strings"
)

// Server captures HTTP server level configuration.
type Server struct {
	Addr         string
	CallbackAddr string
	Log          LogConfig
	Consent      ConsentConfig
	Redis        RedisConfig
	Database     DatabaseConfig
	Audit        AuditConfig
}

// LogConfig selects the slog handler.
type LogConfig struct {
	Level  string
	Format string
}

// ConsentConfig configures the consent flow and its outbound calls.
type ConsentConfig struct {
	// APIBaseURL is the authorization service hosting /oauth/scopes and /oauth/authorize.
	APIBaseURL     string
	GatewayTimeout time.Duration
	ViewTTL        time.Duration
	// RenderWait bounds how long GET /authorize waits for the client-info
	// lookup before rendering the loading view.
	RenderWait time.Duration
	// RedirectHosts is an optional allow-list of redirect_uri hosts; empty allows any.
	RedirectHosts []string
	SigningKey    string
	// BreakerFailures and BreakerCooldown tune the gateway circuit breaker.
	BreakerFailures int
	BreakerCooldown time.Duration
}

// RedisConfig configures the optional Redis view store. An empty URL keeps
// views in memory.
type RedisConfig struct {
	URL          string
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// DatabaseConfig configures the optional Postgres database that persists the
// audit trail. An empty URL keeps a bounded in-memory trail instead.
type DatabaseConfig struct {
	URL             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// AuditConfig sizes the audit publisher and its in-memory fallback.
type AuditConfig struct {
	Buffer         int
	MemoryCapacity int
}

// FromEnv builds a Server config from environment variables so main stays lean.
// A .env file in the working directory is loaded first when present; variables
// already set in the environment win.
func FromEnv() Server {
	_ = godotenv.Load()

	signingKey := os.Getenv("CONSENT_VIEW_SIGNING_KEY")
	if signingKey == "" {
		// Use a default for development - should be overridden in production
		signingKey = "dev-view-signing-key-change-in-production"
	}

	return Server{
		Addr:         getString("CONSENT_ADDR", ":8080"),
		CallbackAddr: getString("CALLBACK_ADDR", ":3000"),
		Log: LogConfig{
			Level:  getString("LOG_LEVEL", "info"),
			Format: getString("LOG_FORMAT", "json"),
		},
		Consent: ConsentConfig{
			APIBaseURL:      strings.TrimRight(getString("CONSENT_API_BASE_URL", "https://dev-api.orqestra.io"), "/"),
			GatewayTimeout:  getDuration("CONSENT_GATEWAY_TIMEOUT", 10*time.Second),
			ViewTTL:         getDuration("CONSENT_VIEW_TTL", 15*time.Minute),
			RenderWait:      getDuration("CONSENT_RENDER_WAIT", 2*time.Second),
			RedirectHosts:   getList("CONSENT_REDIRECT_HOSTS"),
			SigningKey:      signingKey,
			BreakerFailures: getInt("CONSENT_BREAKER_FAILURES", 5),
			BreakerCooldown: getDuration("CONSENT_BREAKER_COOLDOWN", 30*time.Second),
		},
		Redis: RedisConfig{
			URL:          os.Getenv("REDIS_URL"),
			PoolSize:     getInt("REDIS_POOL_SIZE", 10),
			MinIdleConns: getInt("REDIS_MIN_IDLE_CONNS", 2),
			DialTimeout:  getDuration("REDIS_DIAL_TIMEOUT", 5*time.Second),
			ReadTimeout:  getDuration("REDIS_READ_TIMEOUT", 3*time.Second),
			WriteTimeout: getDuration("REDIS_WRITE_TIMEOUT", 3*time.Second),
		},
		Database: DatabaseConfig{
			URL:             os.Getenv("DATABASE_URL"),
			MaxOpenConns:    getInt("DB_MAX_OPEN_CONNS", 10),
			MaxIdleConns:    getInt("DB_MAX_IDLE_CONNS", 5),
			ConnMaxLifetime: getDuration("DB_CONN_MAX_LIFETIME", 30*time.Minute),
		},
		Audit: AuditConfig{
			Buffer:         getInt("AUDIT_BUFFER", 1024),
			MemoryCapacity: getInt("AUDIT_MEMORY_CAPACITY", 1024),
		},
	}
}

func getString(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func getInt(key string, fallback int) int {
	if v, err := strconv.Atoi(os.Getenv(key)); err == nil {
		return v
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	if v, err := time.ParseDuration(os.Getenv(key)); err == nil {
		return v
	}
	return fallback
}

func getList(key string) []string {
	return platformstrings.SplitList(os.Getenv(key))
}
