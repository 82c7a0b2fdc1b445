package usecase

import (
	"context"
	"io"

	"github.com/andreyxaxa/Image-Gallery/internal/entity"
	"github.com/google/uuid"
)

type (
	// GalleryUseCase is the lifecycle manager for uploaded images. Every
	// record it exposes pairs a metadata row with a blob that actually
	// exists in the asset store.
	GalleryUseCase interface {
		Upload(ctx context.Context, data []byte, originalFilename, contentType string, size int64) (*entity.Image, error)
		List(ctx context.Context) ([]*entity.Image, error)
		Rename(ctx context.Context, id uuid.UUID, newName string) error
		Delete(ctx context.Context, storeKey string) error
		Download(ctx context.Context, id uuid.UUID) (*entity.Image, io.ReadCloser, error)
		DownloadThumb(ctx context.Context, id uuid.UUID) (*entity.Image, io.ReadCloser, error)

		// Outbox operations consumed by the relay worker.
		GetPendingEvents(ctx context.Context, maxRetries, limit int) ([]*entity.OutboxEvent, error)
		MarkAsProcessingBatch(ctx context.Context, events []*entity.OutboxEvent) error
		MarkAsProcessedBatch(ctx context.Context, events []*entity.OutboxEvent) error
		IncrementRetryCountBatch(ctx context.Context, events []*entity.OutboxEvent) error
		MarkMaxRetriesAsFailed(ctx context.Context, maxRetries int) error
		CleanupOutbox(ctx context.Context) error
	}

	// AuthUseCase exchanges a credential pair for a session token.
	AuthUseCase interface {
		Login(ctx context.Context, username, password string) (string, error)
	}
)
