package models

// Fixed chat vocabulary shown to the user.
const (
	SenderUser   = "用户"
	SenderSystem = "系统"

	NotFoundMessage = "暂无该城市的天气数据。"
)

type WeatherRecord struct {
	City               string `json:"city"`
	TemperatureCelsius int    `json:"temperature"`
	HumidityPercent    int    `json:"humidity"`
	WindLevel          int    `json:"wind"`
	Condition          string `json:"condition"`
	Suggestion         string `json:"suggestion"`
}

type ChatLogEntry struct {
	Sender  string `json:"sender"`
	Message string `json:"message"`
}

// Slot names a writable display field on the page.
type Slot string

const (
	SlotCity        Slot = "city-name"
	SlotTemperature Slot = "temp"
	SlotHumidity    Slot = "humidity"
	SlotWind        Slot = "wind"
	SlotCondition   Slot = "condition"
	SlotSuggestion  Slot = "suggestion"
)

// Slots lists the display slots in render order.
var Slots = []Slot{
	SlotCity,
	SlotTemperature,
	SlotHumidity,
	SlotWind,
	SlotCondition,
	SlotSuggestion,
}

// ConditionKey is one of the five conditions that have a background image.
type ConditionKey int

const (
	ConditionClear ConditionKey = iota + 1
	ConditionCloudy
	ConditionOvercast
	ConditionRain
	ConditionSnow
)

var conditionLiterals = map[ConditionKey]string{
	ConditionClear:    "晴",
	ConditionCloudy:   "多云",
	ConditionOvercast: "阴",
	ConditionRain:     "雨",
	ConditionSnow:     "雪",
}

func (k ConditionKey) String() string {
	if s, ok := conditionLiterals[k]; ok {
		return s
	}
	return "unknown"
}

// ParseConditionKey matches s against the five literal keys. Anything else,
// including compound phrases, is not a key.
func ParseConditionKey(s string) (ConditionKey, bool) {
	switch s {
	case "晴":
		return ConditionClear, true
	case "多云":
		return ConditionCloudy, true
	case "阴":
		return ConditionOvercast, true
	case "雨":
		return ConditionRain, true
	case "雪":
		return ConditionSnow, true
	}
	return 0, false
}

func (k ConditionKey) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}
