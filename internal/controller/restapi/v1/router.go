package v1

import (
	"time"

	"github.com/andreyxaxa/Image-Gallery/internal/usecase"
	"github.com/andreyxaxa/Image-Gallery/pkg/logger"
	"github.com/andreyxaxa/Image-Gallery/pkg/session"
	"github.com/gofiber/fiber/v2"
)

func NewGalleryRoutes(
	app fiber.Router,
	gallery usecase.GalleryUseCase,
	auth usecase.AuthUseCase,
	sessions *session.Manager,
	sessionTTL time.Duration,
	l logger.Interface,
) {
	r := &V1{
		gallery:    gallery,
		auth:       auth,
		sessions:   sessions,
		sessionTTL: sessionTTL,
		logger:     l,
	}

	{
		// Public
		app.Get("/login", r.loginPage)
		app.Post("/login", r.login)
		app.Post("/logout", r.logout)

		// Everything below requires a valid session
		protected := app.Group("", r.requireSession)
		protected.Get("/", r.uploadPage)
		protected.Post("/upload", r.uploadImage)
		protected.Get("/gallery", r.showGallery)
		protected.Post("/rename", r.renameImage)
		protected.Post("/delete", r.deleteImage)
		protected.Get("/download/:id", r.downloadImage)
		protected.Get("/thumb/:id", r.showThumb)
	}
}
