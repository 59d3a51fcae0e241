package config

import (
	"fmt"
	"os"
	"strings"
	"time"
)

// Storage backends
const (
	StoragePostgres = "postgres"
	StorageMemory   = "memory"
)

type Config struct {
	Port        string
	Environment string
	Storage     string // "postgres" or "memory"
	DatabaseURL string
	AutoMigrate bool
	LockTimeout time.Duration // Upper bound on waiting for a document row lock
	// Authentication: HS256 shared secret, JWKS endpoint, or both
	JWTSecret   string
	JWKSURL     string
	TokenTTL    time.Duration // Lifetime of tokens issued by /api/auth
	CORSOrigins string
	// Change notification relay; empty disables Redis
	RedisAddr    string
	RedisChannel string
	// Optional YAML file overriding the embedded upload policy
	UploadPolicyFile string
	LogDir           string
}

func Load() (*Config, error) {
	env := getEnv("ENVIRONMENT", "dev")

	lockTimeout, err := time.ParseDuration(getEnv("LOCK_TIMEOUT", "2s"))
	if err != nil {
		return nil, fmt.Errorf("invalid LOCK_TIMEOUT: %w", err)
	}

	tokenTTL, err := time.ParseDuration(getEnv("TOKEN_TTL", "24h"))
	if err != nil {
		return nil, fmt.Errorf("invalid TOKEN_TTL: %w", err)
	}

	cfg := &Config{
		Port:             getEnv("PORT", "8080"),
		Environment:      env,
		Storage:          strings.ToLower(getEnv("STORAGE", StoragePostgres)),
		DatabaseURL:      getEnv("DATABASE_URL", ""),
		AutoMigrate:      getEnv("AUTO_MIGRATE", getDefaultAutoMigrate(env)) == "true",
		LockTimeout:      lockTimeout,
		JWTSecret:        getEnv("JWT_SECRET", ""),
		JWKSURL:          getEnv("JWKS_URL", ""),
		TokenTTL:         tokenTTL,
		CORSOrigins:      getEnv("CORS_ORIGINS", "http://localhost:3000"),
		RedisAddr:        getEnv("REDIS_ADDR", ""),
		RedisChannel:     getEnv("REDIS_CHANNEL", "inkwell:changes"),
		UploadPolicyFile: getEnv("UPLOAD_POLICY_FILE", ""),
		LogDir:           getEnv("LOG_DIR", ""),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks combinations that Load cannot default.
// Authentication settings are checked separately by ValidateAuth.
func (c *Config) Validate() error {
	switch c.Storage {
	case StoragePostgres:
		if c.DatabaseURL == "" {
			return fmt.Errorf("DATABASE_URL is required when STORAGE=%s", StoragePostgres)
		}
	case StorageMemory:
	default:
		return fmt.Errorf("unknown STORAGE %q (want %s or %s)", c.Storage, StoragePostgres, StorageMemory)
	}

	if c.LockTimeout < 0 {
		return fmt.Errorf("LOCK_TIMEOUT must not be negative")
	}

	return nil
}

// ValidateAuth checks that the server can verify tokens
func (c *Config) ValidateAuth() error {
	if c.JWTSecret == "" && c.JWKSURL == "" {
		return fmt.Errorf("one of JWT_SECRET or JWKS_URL is required")
	}
	if c.TokenTTL <= 0 {
		return fmt.Errorf("TOKEN_TTL must be positive")
	}
	return nil
}

// IsDev reports whether the server runs in the development environment
func (c *Config) IsDev() bool {
	return c.Environment == "dev"
}

// AllowedOrigins splits CORS_ORIGINS on commas
func (c *Config) AllowedOrigins() []string {
	var origins []string
	for _, o := range strings.Split(c.CORSOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	return origins
}

// getDefaultAutoMigrate applies migrations on startup outside production
func getDefaultAutoMigrate(env string) string {
	if env == "prod" {
		return "false"
	}
	return "true"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
