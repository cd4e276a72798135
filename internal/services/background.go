package services

import (
	"strings"

	"weather-lookup/internal/models"
	"go.uber.org/zap"
)

// DefaultCondition is used when a condition has no background of its own.
const DefaultCondition = models.ConditionCloudy

var backgroundFiles = map[models.ConditionKey]string{
	models.ConditionClear:    "sunny.jpg",
	models.ConditionCloudy:   "cloudy.jpg",
	models.ConditionOvercast: "cloudy1.jpg",
	models.ConditionRain:     "rainy.jpg",
	models.ConditionSnow:     "snowy.jpg",
}

// connectives are the filler characters ("sky", "turning to") found in
// compound phrases such as 多云转晴.
var connectives = strings.NewReplacer("天", "", "转", "")

type Background struct {
	Key     models.ConditionKey `json:"key"`
	Image   string              `json:"image"`
	Matched bool                `json:"matched"`
}

type BackgroundSelector struct {
	assetPrefix string
	logger      *zap.Logger
}

func NewBackgroundSelector(assetPrefix string, logger *zap.Logger) *BackgroundSelector {
	if assetPrefix == "" {
		assetPrefix = "/asset/"
	}
	return &BackgroundSelector{
		assetPrefix: assetPrefix,
		logger:      logger,
	}
}

// NormalizeCondition strips the connective filler from condition and trims
// the surrounding whitespace.
func NormalizeCondition(condition string) string {
	return strings.TrimSpace(connectives.Replace(condition))
}

// Select maps a free-text condition to a background image. It always returns
// an image; unknown conditions fall back to the cloudy background.
func (s *BackgroundSelector) Select(condition string) Background {
	normalized := NormalizeCondition(condition)

	if key, ok := models.ParseConditionKey(normalized); ok {
		return Background{
			Key:     key,
			Image:   s.imageFor(key),
			Matched: true,
		}
	}

	s.logger.Warn("No background for condition, using default",
		zap.String("condition", condition),
		zap.String("normalized", normalized),
		zap.Stringer("default", DefaultCondition))

	return Background{
		Key:   DefaultCondition,
		Image: s.imageFor(DefaultCondition),
	}
}

func (s *BackgroundSelector) imageFor(key models.ConditionKey) string {
	return strings.TrimSuffix(s.assetPrefix, "/") + "/" + backgroundFiles[key]
}
