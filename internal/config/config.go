package config

import (
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	// Application
	AppName string
	AppEnv  string
	Port    string

	// Database (optional driver switch via ENV, default: sqlite)
	DBDriver       string
	DBConnection   string
	MigrateOnStart bool

	// Security (admin API bearer tokens)
	JWTSecret string
	JWTExpiry time.Duration

	// Rescan
	RescanBatchSize int

	// Admin API rate limit per client IP
	RateLimit       int
	RateLimitWindow time.Duration

	// Observability (optional)
	SentryDSN string

	// Leaderboard archive (optional, S3-compatible: MinIO, AWS S3, Cloudflare R2, etc.)
	S3Region      string
	S3Bucket      string
	S3AccessKey   string
	S3SecretKey   string
	S3Endpoint    string
	S3PresignTTL  time.Duration
	ArchivePrefix string
}

func Load() *Config {
	// Load .env file if it exists
	err := godotenv.Load()
	if err != nil {
		slog.Info("no .env file found, using environment variables")
	}

	cfg := &Config{
		// Application
		AppName: envString("APP_NAME", "Pomodoro Challenge"),
		AppEnv:  envString("APP_ENV", "development"),
		Port:    envString("PORT", "8090"),

		// Database
		DBDriver:       envString("DB_DRIVER", "sqlite"),
		DBConnection:   envString("DB_CONNECTION", "./data/challenge.db?_pragma=foreign_keys(1)&_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)"),
		MigrateOnStart: envBool("MIGRATE_ON_START", true),

		// Security
		JWTSecret: envRequired("JWT_SECRET"),
		JWTExpiry: envDuration("JWT_EXPIRY", 720*time.Hour), // 30 days

		// Rescan
		RescanBatchSize: envInt("RESCAN_BATCH_SIZE", 100),

		// Rate limit
		RateLimit:       envInt("RATE_LIMIT", 600),
		RateLimitWindow: envDuration("RATE_LIMIT_WINDOW", time.Minute),

		// Observability
		SentryDSN: envString("SENTRY_DSN", ""),

		// Archive (disabled when S3_BUCKET is empty)
		S3Region:      envString("S3_REGION", "us-east-1"),
		S3Bucket:      envString("S3_BUCKET", ""),
		S3AccessKey:   envString("S3_ACCESS_KEY", ""),
		S3SecretKey:   envString("S3_SECRET_KEY", ""),
		S3Endpoint:    envString("S3_ENDPOINT", ""),
		S3PresignTTL:  envDuration("S3_PRESIGN_TTL", 168*time.Hour), // 7 days
		ArchivePrefix: envString("ARCHIVE_PREFIX", "leaderboards"),
	}

	if cfg.IsProduction() {
		validateProduction(cfg)
	}

	return cfg
}

// validateProduction refuses sqlite-in-tmp style setups that lose the ledger on restart.
func validateProduction(cfg *Config) {
	if cfg.DBDriver == "sqlite" && cfg.DBConnection == ":memory:" {
		slog.Error("production deployment requires a persistent DB_CONNECTION",
			"hint", "set APP_ENV=development for throwaway in-memory databases")
		os.Exit(1)
	}
}

// ArchiveEnabled reports whether leaderboard snapshots should be written to S3.
func (c *Config) ArchiveEnabled() bool {
	return c.S3Bucket != ""
}

// Sanitized returns a copy without secrets, safe to hand to request handlers.
func (c *Config) Sanitized() *Config {
	clean := *c
	clean.DBConnection = ""
	clean.JWTSecret = ""
	clean.SentryDSN = ""
	clean.S3AccessKey = ""
	clean.S3SecretKey = ""
	return &clean
}

func envString(key, def string) string {
	value := os.Getenv(key)
	if value == "" {
		value = def
	}
	return value
}

func envInt(key string, def int) int {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		slog.Warn("config invalid int, using default", "key", key, "value", v, "default", def)
		return def
	}
	return n
}

func envBool(key string, def bool) bool {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		slog.Warn("config invalid bool, using default", "key", key, "value", v, "default", def)
		return def
	}
	return b
}

func envDuration(key string, def time.Duration) time.Duration {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		slog.Warn("config invalid duration, using default", "key", key, "value", v, "default", def)
		return def
	}
	return d
}

func envRequired(key string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	slog.Error("config required env var missing", "key", key)
	os.Exit(1)
	return ""
}

func (c *Config) IsDevelopment() bool {
	return c.AppEnv == "development"
}

func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}
