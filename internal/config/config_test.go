package config

import (
	"testing"
	"time"

	"go.uber.org/zap/zapcore"
)

func TestLoadConfig(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		cfg, err := LoadConfig()
		if err != nil {
			t.Fatalf("failed to load config: %s", err)
		}
		if cfg.Server.Port != "8080" {
			t.Errorf("expected port 8080, got %s", cfg.Server.Port)
		}
		if cfg.Server.ReadTimeout != 10*time.Second {
			t.Errorf("expected read timeout 10s, got %s", cfg.Server.ReadTimeout)
		}
		if cfg.Assets.URLPrefix != "/asset/" {
			t.Errorf("expected asset prefix /asset/, got %s", cfg.Assets.URLPrefix)
		}
		if cfg.Session.TTL != 24*time.Hour {
			t.Errorf("expected session ttl 24h, got %s", cfg.Session.TTL)
		}
		if cfg.Session.MaxSize != 1000 {
			t.Errorf("expected max sessions 1000, got %d", cfg.Session.MaxSize)
		}
		if cfg.Session.SweepSpec != "@every 1m" {
			t.Errorf("expected sweep spec @every 1m, got %s", cfg.Session.SweepSpec)
		}
		if cfg.Session.ChatWindow != 6 {
			t.Errorf("expected chat window 6, got %d", cfg.Session.ChatWindow)
		}
	})
	t.Run("values from env", func(t *testing.T) {
		t.Setenv("FIBER_PORT", "9090")
		t.Setenv("SESSION_TTL", "30m")
		t.Setenv("MAX_SESSIONS", "5")
		t.Setenv("ASSET_URL_PREFIX", "/static/")
		cfg, err := LoadConfig()
		if err != nil {
			t.Fatalf("failed to load config: %s", err)
		}
		if cfg.Server.Port != "9090" || cfg.Session.TTL != 30*time.Minute ||
			cfg.Session.MaxSize != 5 || cfg.Assets.URLPrefix != "/static/" {
			t.Errorf("env values not applied: %+v", cfg)
		}
	})
	t.Run("invalid values", func(t *testing.T) {
		for key, value := range map[string]string{
			"FIBER_READ_TIMEOUT": "soon",
			"SESSION_TTL":        "-1h",
			"MAX_SESSIONS":       "many",
			"CHAT_WINDOW":        "-3",
		} {
			t.Run(key, func(t *testing.T) {
				t.Setenv(key, value)
				if _, err := LoadConfig(); err == nil {
					t.Errorf("expected %s=%s to fail", key, value)
				}
			})
		}
	})
}

func TestZapLevel(t *testing.T) {
	cfg := &Config{}
	cfg.Server.LogLevel = "debug"
	if got := cfg.ZapLevel().Level(); got != zapcore.DebugLevel {
		t.Errorf("expected debug level, got %s", got)
	}
	cfg.Server.LogLevel = "chatty"
	if got := cfg.ZapLevel().Level(); got != zapcore.InfoLevel {
		t.Errorf("expected fallback to info, got %s", got)
	}
}
