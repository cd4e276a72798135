package services

import (
	"fmt"
	"strconv"
	"strings"
	"sync"

	"weather-lookup/internal/models"
	"go.uber.org/zap"
)

// RenderTarget is the set of page elements a search writes to.
type RenderTarget interface {
	// SetSlot writes text content into a display slot. The text is never
	// interpreted as markup.
	SetSlot(slot models.Slot, text string)
	AppendChat(entry models.ChatLogEntry)
	ScrollChatToBottom()
	SetBackground(image string)
}

type Result struct {
	Query      string                `json:"query"`
	Found      bool                  `json:"found"`
	Record     *models.WeatherRecord `json:"record,omitempty"`
	Background *Background           `json:"background,omitempty"`
}

type LookupHandler struct {
	backgrounds *BackgroundSelector
	logger      *zap.Logger

	mu            sync.Mutex
	searchCount   int
	hitCount      int
	missCount     int
	fallbackCount int
}

func NewLookupHandler(backgrounds *BackgroundSelector, logger *zap.Logger) *LookupHandler {
	return &LookupHandler{
		backgrounds: backgrounds,
		logger:      logger,
	}
}

// HandleSearch runs one search activation against target.
func (h *LookupHandler) HandleSearch(target RenderTarget, raw string) Result {
	city := strings.TrimSpace(raw)
	result := Result{Query: city}

	record, ok := FindRecord(city)
	if !ok {
		h.logger.Info("No weather data for city", zap.String("city", city))
		h.appendChat(target, models.SenderSystem, models.NotFoundMessage)
		h.record(false, true)
		return result
	}

	h.logger.Debug("Rendering weather", zap.String("city", record.City))

	target.SetSlot(models.SlotCity, record.City)
	target.SetSlot(models.SlotTemperature, strconv.Itoa(record.TemperatureCelsius))
	target.SetSlot(models.SlotHumidity, strconv.Itoa(record.HumidityPercent))
	target.SetSlot(models.SlotWind, strconv.Itoa(record.WindLevel))
	target.SetSlot(models.SlotCondition, record.Condition)
	target.SetSlot(models.SlotSuggestion, record.Suggestion)

	h.appendChat(target, models.SenderUser, "查询 "+city)
	h.appendChat(target, models.SenderSystem, Reply(record))

	bg := h.backgrounds.Select(record.Condition)
	target.SetBackground(bg.Image)
	h.record(true, bg.Matched)

	result.Found = true
	result.Record = &record
	result.Background = &bg
	return result
}

// Reply formats the system's chat answer for a record.
func Reply(r models.WeatherRecord) string {
	return fmt.Sprintf("%s天气：%s，温度 %d°C。%s", r.City, r.Condition, r.TemperatureCelsius, r.Suggestion)
}

func (h *LookupHandler) appendChat(target RenderTarget, sender, message string) {
	target.AppendChat(models.ChatLogEntry{Sender: sender, Message: message})
	target.ScrollChatToBottom()
}

func (h *LookupHandler) record(found, matched bool) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.searchCount++
	if !found {
		h.missCount++
		return
	}
	h.hitCount++
	if !matched {
		h.fallbackCount++
	}
}

func (h *LookupHandler) GetStats() map[string]interface{} {
	h.mu.Lock()
	defer h.mu.Unlock()

	return map[string]interface{}{
		"searches":             h.searchCount,
		"hits":                 h.hitCount,
		"misses":               h.missCount,
		"background_fallbacks": h.fallbackCount,
	}
}
