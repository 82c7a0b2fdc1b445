package v1

import (
	"time"

	"github.com/andreyxaxa/Image-Gallery/internal/usecase"
	"github.com/andreyxaxa/Image-Gallery/pkg/logger"
	"github.com/andreyxaxa/Image-Gallery/pkg/session"
)

type V1 struct {
	gallery    usecase.GalleryUseCase
	auth       usecase.AuthUseCase
	sessions   *session.Manager
	sessionTTL time.Duration
	logger     logger.Interface
}
