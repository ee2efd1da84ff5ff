package config

import (
	"log/slog"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const defaultJWTSecret = "a-very-secret-key-should-be-longer-and-random"

// Config holds application configuration.
type Config struct {
	DatabaseURL    string
	Port           string
	IsProduction   bool
	EnableDBCheck  bool
	JWTSecret      string
	JWTIssuer      string
	LogLevel       slog.Level
	MigrationsPath string

	CORSAllowedOrigins []string
	RateLimit          string

	// Report cache. An empty RedisAddress keeps reports in process memory.
	RedisAddress    string
	ReportCacheSize int
	ReportCacheTTL  time.Duration

	PostHogAPIKey   string
	PostHogEndpoint string
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()

	return fromViper(v), nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("PGSQL_URL", "")
	v.SetDefault("PORT", "8080")
	v.SetDefault("IS_PRODUCTION", false)
	v.SetDefault("ENABLE_DB_CHECK", false)
	v.SetDefault("JWT_SECRET", defaultJWTSecret)
	v.SetDefault("JWT_ISSUER", "")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("MIGRATIONS_PATH", "file://migrations")
	v.SetDefault("CORS_ALLOWED_ORIGINS", "*")
	v.SetDefault("RATE_LIMIT", "200-M")
	v.SetDefault("REDIS_ADDRESS", "")
	v.SetDefault("REPORT_CACHE_SIZE", 512)
	v.SetDefault("REPORT_CACHE_TTL", "10m")
	v.SetDefault("POSTHOG_API_KEY", "")
	v.SetDefault("POSTHOG_ENDPOINT", "")
}

func fromViper(v *viper.Viper) *Config {
	cfg := &Config{
		DatabaseURL:     v.GetString("PGSQL_URL"),
		Port:            v.GetString("PORT"),
		IsProduction:    v.GetBool("IS_PRODUCTION"),
		EnableDBCheck:   v.GetBool("ENABLE_DB_CHECK"),
		JWTSecret:       v.GetString("JWT_SECRET"),
		JWTIssuer:       v.GetString("JWT_ISSUER"),
		MigrationsPath:  v.GetString("MIGRATIONS_PATH"),
		RateLimit:       v.GetString("RATE_LIMIT"),
		RedisAddress:    v.GetString("REDIS_ADDRESS"),
		ReportCacheSize: v.GetInt("REPORT_CACHE_SIZE"),
		PostHogAPIKey:   v.GetString("POSTHOG_API_KEY"),
		PostHogEndpoint: v.GetString("POSTHOG_ENDPOINT"),
	}

	if cfg.DatabaseURL == "" {
		slog.Warn("PGSQL_URL environment variable not set")
	}
	if cfg.Port == "" {
		cfg.Port = "8080"
		slog.Warn("PORT environment variable not set, using default", slog.String("port", cfg.Port))
	}
	if cfg.JWTSecret == "" || cfg.JWTSecret == defaultJWTSecret {
		cfg.JWTSecret = defaultJWTSecret
		slog.Warn("JWT_SECRET environment variable not set, using default insecure key")
	}

	level := strings.ToLower(v.GetString("LOG_LEVEL"))
	if err := cfg.LogLevel.UnmarshalText([]byte(level)); err != nil {
		cfg.LogLevel = slog.LevelInfo
		slog.Warn("Invalid LOG_LEVEL, defaulting to info", slog.String("value", level))
	}

	ttlStr := v.GetString("REPORT_CACHE_TTL")
	ttl, err := time.ParseDuration(ttlStr)
	if err != nil || ttl <= 0 {
		ttl = 10 * time.Minute
		slog.Warn("Invalid REPORT_CACHE_TTL, using default", slog.String("value", ttlStr), slog.Duration("default", ttl))
	}
	cfg.ReportCacheTTL = ttl

	if cfg.ReportCacheSize <= 0 {
		cfg.ReportCacheSize = 512
	}

	for _, origin := range strings.Split(v.GetString("CORS_ALLOWED_ORIGINS"), ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			cfg.CORSAllowedOrigins = append(cfg.CORSAllowedOrigins, origin)
		}
	}

	return cfg
}
