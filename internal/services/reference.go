package services

import (
	"weather-lookup/internal/models"
)

// referenceTable stands in for a live data source.
var referenceTable = []models.WeatherRecord{
	{
		City:               "福州市",
		TemperatureCelsius: 26,
		HumidityPercent:    68,
		WindLevel:          3,
		Condition:          "多云转晴",
		Suggestion:         "天气舒适，适合出行，但早晚略凉，建议带薄外套。",
	},
	{
		City:               "厦门市",
		TemperatureCelsius: 32,
		HumidityPercent:    68,
		WindLevel:          3,
		Condition:          "晴",
		Suggestion:         "天气炎热，出行注意防晒。",
	},
	{
		City:               "北京市",
		TemperatureCelsius: 22,
		HumidityPercent:    67,
		WindLevel:          3,
		Condition:          "雨",
		Suggestion:         "气温适中，建议轻便外出，注意早晚温差。",
	},
}

// FindRecord returns the first record whose city equals city exactly.
func FindRecord(city string) (models.WeatherRecord, bool) {
	for _, r := range referenceTable {
		if r.City == city {
			return r, true
		}
	}
	return models.WeatherRecord{}, false
}

// Cities returns the city names of the reference table in table order.
func Cities() []string {
	cities := make([]string, 0, len(referenceTable))
	for _, r := range referenceTable {
		cities = append(cities, r.City)
	}
	return cities
}
