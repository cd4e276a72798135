package api

import (
	"bytes"
	"embed"
	"html/template"
	"time"

	"weather-lookup/internal/scheduler"
	"weather-lookup/internal/services"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

//go:embed templates/index.html
var templateFS embed.FS

var pageTemplate = template.Must(template.ParseFS(templateFS, "templates/index.html"))

type Handler struct {
	lookup     *services.LookupHandler
	sessions   *services.SessionStore
	scheduler  *scheduler.Scheduler
	chatWindow int
	logger     *zap.Logger
}

func NewHandler(
	lookup *services.LookupHandler,
	sessions *services.SessionStore,
	sched *scheduler.Scheduler,
	chatWindow int,
	logger *zap.Logger,
) *Handler {
	return &Handler{
		lookup:     lookup,
		sessions:   sessions,
		scheduler:  sched,
		chatWindow: chatWindow,
		logger:     logger,
	}
}

type searchRequest struct {
	City string `json:"city" form:"city"`
}

type pageData struct {
	Session services.Snapshot
	Cities  []string
}

// Index handles GET /
func (h *Handler) Index(c *fiber.Ctx) error {
	var buf bytes.Buffer
	data := pageData{
		Session: sessionFrom(c).Snapshot(),
		Cities:  services.Cities(),
	}
	if err := pageTemplate.Execute(&buf, data); err != nil {
		h.logger.Error("Failed to render page", zap.Error(err))
		return fiber.NewError(fiber.StatusInternalServerError, "failed to render page")
	}

	c.Type("html", "utf-8")
	return c.Send(buf.Bytes())
}

// SearchForm handles POST /search
func (h *Handler) SearchForm(c *fiber.Ctx) error {
	h.search(c, c.FormValue("city"))
	return c.Redirect("/", fiber.StatusSeeOther)
}

// Search handles POST /api/v1/search
func (h *Handler) Search(c *fiber.Ctx) error {
	var req searchRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":   "Invalid request body",
			"details": err.Error(),
		})
	}

	result := h.search(c, req.City)

	return c.JSON(fiber.Map{
		"found":   result.Found,
		"result":  result,
		"session": sessionFrom(c).Snapshot(),
	})
}

func (h *Handler) search(c *fiber.Ctx, city string) services.Result {
	sess := sessionFrom(c)

	var result services.Result
	sess.Run(func(target services.RenderTarget) {
		result = h.lookup.HandleSearch(target, city)
	})

	h.logger.Info("Search handled",
		zap.String("session", sess.ID),
		zap.String("city", result.Query),
		zap.Bool("found", result.Found))

	return result
}

// GetSession handles GET /api/v1/session
func (h *Handler) GetSession(c *fiber.Ctx) error {
	return c.JSON(sessionFrom(c).Snapshot())
}

// GetChat handles GET /api/v1/chat
func (h *Handler) GetChat(c *fiber.Ctx) error {
	last := c.QueryInt("last", h.chatWindow)
	if last < 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "last must not be negative",
		})
	}

	return c.JSON(fiber.Map{
		"chat": sessionFrom(c).Snapshot().Recent(last),
	})
}

// GetCities handles GET /api/v1/cities
func (h *Handler) GetCities(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"cities": services.Cities(),
	})
}

// GetHealth handles GET /api/v1/health
func (h *Handler) GetHealth(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":    "healthy",
		"timestamp": time.Now(),
		"uptime":    time.Since(startTime).String(),
		"sessions":  h.sessions.Len(),
	})
}

// GetMetrics handles GET /api/v1/metrics
func (h *Handler) GetMetrics(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"metrics": fiber.Map{
			"lookup":    h.lookup.GetStats(),
			"sessions":  h.sessions.GetStats(),
			"scheduler": h.scheduler.GetStatus(),
		},
		"timestamp": time.Now(),
	})
}

var startTime = time.Now()
