package handler

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/swagger"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"mediaapi/docs"
	"mediaapi/internal/service"
)

// Deps groups everything the HTTP layer needs.
type Deps struct {
	Media   service.MediaService
	Folders service.FolderService
	// Health is checked by GET /health; the storage provider satisfies it.
	Health Pinger
	// Metrics is served on GET /metrics. Nil skips the route.
	Metrics prometheus.Gatherer
	// Auth guards the /media group. Nil leaves it open.
	Auth fiber.Handler
	Log  zerolog.Logger
}

// RegisterRoutes attaches the operational routes and the authenticated /media group.
func RegisterRoutes(app *fiber.App, d Deps) {
	app.Get("/healthz", LivenessProbe())
	if d.Health != nil {
		app.Get("/health", HealthCheck(d.Health))
	}
	if d.Metrics != nil {
		app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(d.Metrics, promhttp.HandlerOpts{})))
	}
	app.Get("/swagger/*", SwaggerUI())

	log := d.Log.With().Str("component", "http").Logger()

	var media fiber.Router
	if d.Auth != nil {
		media = app.Group("/media", d.Auth)
	} else {
		media = app.Group("/media")
	}

	media.Post("/upload", UploadMedia(d.Media, log))
	media.Get("/folders", ListFolders(d.Folders, log))
	media.Post("/folders", CreateFolder(d.Folders, log))
	media.Post("/folders/rename", RenameFolder(d.Folders, log))
	media.Delete("/folders", DeleteFolder(d.Folders, log))
	media.Get("/", ListResources(d.Media, log))
	media.Delete("/", DeleteResource(d.Media, log))
	media.Post("/bulk-delete", BulkDeleteResources(d.Media, log))
}

// SwaggerUI serves the generated API docs with the host and scheme of the current request.
func SwaggerUI() fiber.Handler {
	return func(c *fiber.Ctx) error {
		scheme := c.Protocol()
		if proto := c.Get("X-Forwarded-Proto"); proto != "" {
			scheme = strings.TrimSpace(strings.Split(proto, ",")[0])
		}

		docs.SwaggerInfo.Host = c.Get(fiber.HeaderHost)
		docs.SwaggerInfo.Schemes = []string{scheme}

		return swagger.HandlerDefault(c)
	}
}
