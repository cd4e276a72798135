package services

import (
	"testing"

	"weather-lookup/internal/models"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestNormalizeCondition(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"晴", "晴"},
		{"晴天", "晴"},
		{" 阴天 ", "阴"},
		{"天转雨", "雨"},
		{"多云转晴", "多云晴"},
		{"小雨", "小雨"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := NormalizeCondition(tt.in); got != tt.want {
			t.Errorf("NormalizeCondition(%q): expected %q, got %q", tt.in, tt.want, got)
		}
	}
}

func TestSelectBackground(t *testing.T) {
	sel := NewBackgroundSelector("/asset/", zap.NewNop())

	tests := []struct {
		condition string
		key       models.ConditionKey
		image     string
		matched   bool
	}{
		{"晴", models.ConditionClear, "/asset/sunny.jpg", true},
		{"晴天", models.ConditionClear, "/asset/sunny.jpg", true},
		{"多云", models.ConditionCloudy, "/asset/cloudy.jpg", true},
		{"阴", models.ConditionOvercast, "/asset/cloudy1.jpg", true},
		{"雨", models.ConditionRain, "/asset/rainy.jpg", true},
		{"雪", models.ConditionSnow, "/asset/snowy.jpg", true},
		{"多云转晴", models.ConditionCloudy, "/asset/cloudy.jpg", false},
		{"雷阵雨", models.ConditionCloudy, "/asset/cloudy.jpg", false},
		{"", models.ConditionCloudy, "/asset/cloudy.jpg", false},
	}

	for _, tt := range tests {
		t.Run(tt.condition, func(t *testing.T) {
			bg := sel.Select(tt.condition)
			if bg.Key != tt.key || bg.Image != tt.image || bg.Matched != tt.matched {
				t.Errorf("Select(%q): expected {%s %s %t}, got {%s %s %t}",
					tt.condition, tt.key, tt.image, tt.matched, bg.Key, bg.Image, bg.Matched)
			}
			if again := sel.Select(tt.condition); again != bg {
				t.Errorf("Select(%q) is not deterministic: %+v vs %+v", tt.condition, bg, again)
			}
		})
	}
}

func TestSelectBackgroundWarnsOnFallback(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	sel := NewBackgroundSelector("/asset/", zap.New(core))

	sel.Select("晴")
	if logs.Len() != 0 {
		t.Fatalf("expected no warning for a known condition, got %d", logs.Len())
	}

	sel.Select("多云转晴")
	entries := logs.TakeAll()
	if len(entries) != 1 {
		t.Fatalf("expected 1 warning, got %d", len(entries))
	}
	if got := entries[0].ContextMap()["normalized"]; got != "多云晴" {
		t.Errorf("expected normalized field 多云晴, got %v", got)
	}
}

func TestSelectBackgroundAssetPrefix(t *testing.T) {
	tests := []struct {
		prefix string
		want   string
	}{
		{"", "/asset/rainy.jpg"},
		{"/static", "/static/rainy.jpg"},
		{"./asset/", "./asset/rainy.jpg"},
		{"https://cdn.example.com/img/", "https://cdn.example.com/img/rainy.jpg"},
	}

	for _, tt := range tests {
		sel := NewBackgroundSelector(tt.prefix, zap.NewNop())
		if got := sel.Select("雨").Image; got != tt.want {
			t.Errorf("prefix %q: expected %s, got %s", tt.prefix, tt.want, got)
		}
	}
}

func TestParseConditionKey(t *testing.T) {
	for key, literal := range map[models.ConditionKey]string{
		models.ConditionClear:    "晴",
		models.ConditionCloudy:   "多云",
		models.ConditionOvercast: "阴",
		models.ConditionRain:     "雨",
		models.ConditionSnow:     "雪",
	} {
		got, ok := models.ParseConditionKey(literal)
		if !ok || got != key {
			t.Errorf("ParseConditionKey(%q): expected %v, got %v (%t)", literal, key, got, ok)
		}
		if key.String() != literal {
			t.Errorf("expected %v.String() to be %s", key, literal)
		}
	}
	if _, ok := models.ParseConditionKey("多云 "); ok {
		t.Error("expected untrimmed key not to match")
	}
}
