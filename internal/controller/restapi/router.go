package restapi

import (
	"github.com/andreyxaxa/Image-Gallery/config"
	v1 "github.com/andreyxaxa/Image-Gallery/internal/controller/restapi/v1"
	"github.com/andreyxaxa/Image-Gallery/internal/usecase"
	"github.com/andreyxaxa/Image-Gallery/pkg/logger"
	"github.com/andreyxaxa/Image-Gallery/pkg/session"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
)

// @title Image gallery
// @version 1.0.0
// @host localhost:8080
func NewRouter(
	app *fiber.App,
	cfg *config.Config,
	gallery usecase.GalleryUseCase,
	auth usecase.AuthUseCase,
	sessions *session.Manager,
	l logger.Interface,
) {
	// Swagger
	if cfg.Swagger.Enabled {
		app.Get("/swagger/*", swagger.HandlerDefault)
	}

	// Routers
	v1.NewGalleryRoutes(app, gallery, auth, sessions, cfg.Auth.SessionTTL, l)
}
