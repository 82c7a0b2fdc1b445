package infrastructure

import (
	"context"

	"github.com/andreyxaxa/Image-Gallery/internal/entity"
)

type (
	EventsSender interface {
		SendEvents(ctx context.Context, events []*entity.OutboxEvent) error
		Close() error
	}

	// ThumbnailMaker produces a small preview for the gallery page.
	ThumbnailMaker interface {
		Thumbnail(ctx context.Context, contentType string, data []byte) ([]byte, error)
	}
)
