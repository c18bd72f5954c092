package config

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Addr                string
	DatabaseURL         string
	FrontendDir         string
	Environment         string
	LogLevel            string
	RunMigrations       bool
	MigrationsDir       string
	MaxBodyBytes        int64
	RateLimitPerMinute  int
	CORSAllowedOrigins  []string
	RedisAddr           string
	RedisPassword       string
	RedisDB             int
	SummaryCacheTTL     time.Duration
	OverdueDays         int
	OverdueScanInterval time.Duration
	MetricsEnabled      bool
	ShutdownTimeout     time.Duration
}

var defaults = map[string]any{
	"APP_ADDR":              ":8080",
	"DATABASE_URL":          "",
	"FRONTEND_DIR":          "frontend/dist",
	"APP_ENV":               "development",
	"LOG_LEVEL":             "info",
	"RUN_MIGRATIONS":        true,
	"MIGRATIONS_DIR":        "migrations",
	"MAX_BODY_BYTES":        1048576,
	"RATE_LIMIT_PER_MINUTE": 120,
	"CORS_ALLOWED_ORIGINS":  "*",
	"REDIS_ADDR":            "",
	"REDIS_PASSWORD":        "",
	"REDIS_DB":              0,
	"SUMMARY_CACHE_TTL":     "30s",
	"OVERDUE_DAYS":          10,
	"OVERDUE_SCAN_INTERVAL": "1h",
	"METRICS_ENABLED":       true,
	"SHUTDOWN_TIMEOUT":      "10s",
}

// Load reads .env, then configs/config.yaml if present, then the process
// environment, which wins. Keys are the environment variable names.
func Load() Config {
	if err := godotenv.Load(); err == nil {
		slog.Debug("loaded .env")
	}

	v := viper.New()
	v.SetConfigType("yaml")
	v.SetConfigFile("configs/config.yaml")
	v.AutomaticEnv()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	if err := v.ReadInConfig(); err != nil {
		slog.Debug("no config file, using environment and defaults", "err", err)
	}

	return Config{
		Addr:                v.GetString("APP_ADDR"),
		DatabaseURL:         v.GetString("DATABASE_URL"),
		FrontendDir:         v.GetString("FRONTEND_DIR"),
		Environment:         v.GetString("APP_ENV"),
		LogLevel:            v.GetString("LOG_LEVEL"),
		RunMigrations:       v.GetBool("RUN_MIGRATIONS"),
		MigrationsDir:       v.GetString("MIGRATIONS_DIR"),
		MaxBodyBytes:        v.GetInt64("MAX_BODY_BYTES"),
		RateLimitPerMinute:  v.GetInt("RATE_LIMIT_PER_MINUTE"),
		CORSAllowedOrigins:  splitList(v.GetString("CORS_ALLOWED_ORIGINS")),
		RedisAddr:           v.GetString("REDIS_ADDR"),
		RedisPassword:       v.GetString("REDIS_PASSWORD"),
		RedisDB:             v.GetInt("REDIS_DB"),
		SummaryCacheTTL:     v.GetDuration("SUMMARY_CACHE_TTL"),
		OverdueDays:         v.GetInt("OVERDUE_DAYS"),
		OverdueScanInterval: v.GetDuration("OVERDUE_SCAN_INTERVAL"),
		MetricsEnabled:      v.GetBool("METRICS_ENABLED"),
		ShutdownTimeout:     v.GetDuration("SHUTDOWN_TIMEOUT"),
	}
}

func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// SlogLevel maps LogLevel onto slog, defaulting to info.
func (c Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func (c Config) Validate() error {
	if strings.TrimSpace(c.DatabaseURL) == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}
	if c.Environment == "production" {
		for _, origin := range c.CORSAllowedOrigins {
			if origin == "*" {
				return fmt.Errorf("CORS_ALLOWED_ORIGINS must list explicit origins in production")
			}
		}
	}
	if c.MaxBodyBytes < 1024 {
		return fmt.Errorf("MAX_BODY_BYTES must be at least 1024")
	}
	if c.RateLimitPerMinute < 0 {
		return fmt.Errorf("RATE_LIMIT_PER_MINUTE must not be negative")
	}
	if c.OverdueDays < 0 {
		return fmt.Errorf("OVERDUE_DAYS must not be negative")
	}
	if c.SummaryCacheTTL < 0 {
		return fmt.Errorf("SUMMARY_CACHE_TTL must not be negative")
	}
	if c.OverdueScanInterval < 0 {
		return fmt.Errorf("OVERDUE_SCAN_INTERVAL must not be negative")
	}
	return nil
}
