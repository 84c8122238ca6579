package config

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"github.com/ulule/limiter/v3"
)

// Store drivers.
const (
	StoreDriverPostgres = "postgres"
	StoreDriverMemory   = "memory"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL   string
	Port          string
	IsProduction  bool
	EnableDBCheck bool

	StoreDriver    string
	MigrationsPath string
	RunMigrations  bool
	PostingMode    string

	JWTSecret string
	JWTIssuer string

	RequestTimeout     time.Duration
	RateLimit          string
	CORSAllowedOrigins []string

	RedisURL          string
	ReferenceCacheTTL time.Duration

	KafkaBrokers []string
	KafkaTopic   string
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()

	cfg := fromViper(v)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("PGSQL_URL", "")
	v.SetDefault("PORT", "8080")
	v.SetDefault("IS_PRODUCTION", false)
	v.SetDefault("ENABLE_DB_CHECK", true)
	v.SetDefault("STORE_DRIVER", StoreDriverPostgres)
	v.SetDefault("MIGRATIONS_PATH", "file://migrations")
	v.SetDefault("RUN_MIGRATIONS", true)
	v.SetDefault("POSTING_MODE", "auto")
	v.SetDefault("JWT_SECRET", "")
	v.SetDefault("JWT_ISSUER", "hrms")
	v.SetDefault("REQUEST_TIMEOUT", "10s")
	v.SetDefault("RATE_LIMIT", "100-M")
	v.SetDefault("CORS_ALLOWED_ORIGINS", "")
	v.SetDefault("REDIS_URL", "")
	v.SetDefault("REFERENCE_CACHE_TTL", "5m")
	v.SetDefault("KAFKA_BROKERS", "")
	v.SetDefault("KAFKA_TOPIC", "accounting.transaction.created")
}

func fromViper(v *viper.Viper) *Config {
	cfg := &Config{
		DatabaseURL:        v.GetString("PGSQL_URL"),
		Port:               v.GetString("PORT"),
		IsProduction:       v.GetBool("IS_PRODUCTION"),
		EnableDBCheck:      v.GetBool("ENABLE_DB_CHECK"),
		StoreDriver:        strings.ToLower(strings.TrimSpace(v.GetString("STORE_DRIVER"))),
		MigrationsPath:     v.GetString("MIGRATIONS_PATH"),
		RunMigrations:      v.GetBool("RUN_MIGRATIONS"),
		PostingMode:        strings.ToLower(strings.TrimSpace(v.GetString("POSTING_MODE"))),
		JWTSecret:          v.GetString("JWT_SECRET"),
		JWTIssuer:          v.GetString("JWT_ISSUER"),
		RequestTimeout:     v.GetDuration("REQUEST_TIMEOUT"),
		RateLimit:          v.GetString("RATE_LIMIT"),
		CORSAllowedOrigins: splitList(v.GetString("CORS_ALLOWED_ORIGINS")),
		RedisURL:           v.GetString("REDIS_URL"),
		ReferenceCacheTTL:  v.GetDuration("REFERENCE_CACHE_TTL"),
		KafkaBrokers:       splitList(v.GetString("KAFKA_BROKERS")),
		KafkaTopic:         v.GetString("KAFKA_TOPIC"),
	}

	if cfg.Port == "" {
		cfg.Port = "8080" // Default port
		log.Printf("Warning: PORT environment variable not set. Defaulting to %s\n", cfg.Port)
	}
	if cfg.JWTSecret == "" {
		log.Println("Warning: JWT_SECRET not set. Authentication is disabled.")
	}
	return cfg
}

// Validate checks values that would otherwise only fail on first use.
func (c *Config) Validate() error {
	var errs []error

	switch c.StoreDriver {
	case StoreDriverPostgres:
		if c.DatabaseURL == "" {
			errs = append(errs, errors.New("PGSQL_URL is required when STORE_DRIVER is postgres"))
		}
	case StoreDriverMemory:
	default:
		errs = append(errs, fmt.Errorf("STORE_DRIVER must be postgres or memory, got %q", c.StoreDriver))
	}

	switch c.PostingMode {
	case "auto", "atomic", "sequential":
	default:
		errs = append(errs, fmt.Errorf("POSTING_MODE must be auto, atomic or sequential, got %q", c.PostingMode))
	}

	if c.RequestTimeout <= 0 {
		errs = append(errs, errors.New("REQUEST_TIMEOUT must be a positive duration"))
	}
	if _, err := limiter.NewRateFromFormatted(c.RateLimit); err != nil {
		errs = append(errs, fmt.Errorf("RATE_LIMIT %q is invalid: %w", c.RateLimit, err))
	}
	if c.ReferenceCacheTTL < 0 {
		errs = append(errs, errors.New("REFERENCE_CACHE_TTL must not be negative"))
	}
	if c.IsProduction && c.JWTSecret == "" {
		errs = append(errs, errors.New("JWT_SECRET is required in production"))
	}

	if len(errs) > 0 {
		return fmt.Errorf("invalid configuration: %w", errors.Join(errs...))
	}
	return nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
