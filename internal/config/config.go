package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

type Config struct {
	Server struct {
		Port         string
		ReadTimeout  time.Duration
		WriteTimeout time.Duration
		LogLevel     string
	}

	Assets struct {
		Dir       string
		URLPrefix string
	}

	Session struct {
		CookieName string
		TTL        time.Duration
		MaxSize    int
		SweepSpec  string
		ChatWindow int
	}
}

func LoadConfig() (*Config, error) {
	// Load .env file if exists
	if err := godotenv.Load(); err != nil {
		zap.L().Info("No .env file found, using environment variables")
	}

	cfg := &Config{}
	var err error

	// Server configuration
	cfg.Server.Port = getEnv("FIBER_PORT", "8080")
	if cfg.Server.ReadTimeout, err = parseDuration("FIBER_READ_TIMEOUT", "10s"); err != nil {
		return nil, err
	}
	if cfg.Server.WriteTimeout, err = parseDuration("FIBER_WRITE_TIMEOUT", "10s"); err != nil {
		return nil, err
	}
	cfg.Server.LogLevel = getEnv("LOG_LEVEL", "info")

	// Static assets
	cfg.Assets.Dir = getEnv("ASSET_DIR", "./web/asset")
	cfg.Assets.URLPrefix = getEnv("ASSET_URL_PREFIX", "/asset/")

	// Session configuration
	cfg.Session.CookieName = getEnv("SESSION_COOKIE", "weather_session")
	if cfg.Session.TTL, err = parseDuration("SESSION_TTL", "24h"); err != nil {
		return nil, err
	}
	if cfg.Session.MaxSize, err = parseInt("MAX_SESSIONS", "1000"); err != nil {
		return nil, err
	}
	cfg.Session.SweepSpec = getEnv("SESSION_SWEEP_SPEC", "@every 1m")
	if cfg.Session.ChatWindow, err = parseInt("CHAT_WINDOW", "6"); err != nil {
		return nil, err
	}

	return cfg, nil
}

// ZapLevel returns the configured log level, defaulting to info.
func (c *Config) ZapLevel() zap.AtomicLevel {
	level, err := zap.ParseAtomicLevel(c.Server.LogLevel)
	if err != nil {
		zap.L().Warn("Invalid log level, using info", zap.String("value", c.Server.LogLevel))
		return zap.NewAtomicLevelAt(zap.InfoLevel)
	}
	return level
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func parseDuration(key, defaultValue string) (time.Duration, error) {
	value := getEnv(key, defaultValue)
	duration, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, value, err)
	}
	if duration <= 0 {
		return 0, fmt.Errorf("invalid %s %q: must be positive", key, value)
	}
	return duration, nil
}

func parseInt(key, defaultValue string) (int, error) {
	value := getEnv(key, defaultValue)
	intValue, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, value, err)
	}
	if intValue < 0 {
		return 0, fmt.Errorf("invalid %s %q: must not be negative", key, value)
	}
	return intValue, nil
}
