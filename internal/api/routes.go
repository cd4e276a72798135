package api

import (
	"time"

	"weather-lookup/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"go.uber.org/zap"
)

const sessionLocal = "session"

type RouteConfig struct {
	CookieName     string
	CookieMaxAge   time.Duration
	AssetDir       string
	AssetURLPrefix string
}

func SetupRoutes(app *fiber.App, handler *Handler, cfg RouteConfig, log *zap.Logger) {
	// Middleware
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,HEAD",
	}))

	app.Use(logger.New(logger.Config{
		Format:     "${time} ${pid} ${locals:requestid} ${status} - ${method} ${path}\n",
		TimeFormat: time.RFC3339,
	}))

	// Background images; never checked for existence
	if cfg.AssetDir != "" {
		app.Static(cfg.AssetURLPrefix, cfg.AssetDir)
	}

	withSession := sessionMiddleware(handler.sessions, cfg, log)

	// Page
	app.Get("/", withSession, handler.Index)
	app.Post("/search", withSession, handler.SearchForm)

	// API v1 routes
	api := app.Group("/api/v1")

	api.Get("/health", handler.GetHealth)
	api.Get("/metrics", handler.GetMetrics)
	api.Get("/cities", handler.GetCities)

	api.Post("/search", withSession, handler.Search)
	api.Get("/session", withSession, handler.GetSession)
	api.Get("/chat", withSession, handler.GetChat)

	// 404 handler
	app.Use(func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Endpoint not found",
			"path":  c.Path(),
		})
	})
}

// sessionMiddleware attaches the visitor's session, starting a new one when
// the cookie is missing or stale.
func sessionMiddleware(store *services.SessionStore, cfg RouteConfig, log *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sess, created := store.GetOrCreate(c.Cookies(cfg.CookieName))
		if created {
			log.Debug("Started session",
				zap.String("session", sess.ID),
				zap.String("ip", c.IP()))
		}

		c.Cookie(&fiber.Cookie{
			Name:     cfg.CookieName,
			Value:    sess.ID,
			Path:     "/",
			MaxAge:   int(cfg.CookieMaxAge.Seconds()),
			HTTPOnly: true,
			SameSite: fiber.CookieSameSiteLaxMode,
		})
		c.Locals(sessionLocal, sess)

		return c.Next()
	}
}

func sessionFrom(c *fiber.Ctx) *services.Session {
	return c.Locals(sessionLocal).(*services.Session)
}
