package repo

import (
	"context"
	"io"

	"github.com/andreyxaxa/Image-Gallery/internal/entity"
	"github.com/google/uuid"
)

type (
	// BlobRepo is the asset store boundary. Delete is idempotent - removing
	// an absent key is not an error.
	BlobRepo interface {
		UploadBytes(ctx context.Context, key string, data []byte, contentType string, size int64) error
		Download(ctx context.Context, key string) (io.ReadCloser, error)
		Delete(ctx context.Context, key string) error
		ObjectURL(key string) string
	}

	// ImageMetadataRepo is the metadata store boundary. Lookups that match
	// nothing return errs.ErrRecordNotFound.
	ImageMetadataRepo interface {
		Create(ctx context.Context, image *entity.Image) error
		List(ctx context.Context) ([]*entity.Image, error)
		GetByID(ctx context.Context, id uuid.UUID) (*entity.Image, error)
		GetByStoreKey(ctx context.Context, storeKey string) (*entity.Image, error)
		UpdateName(ctx context.Context, id uuid.UUID, name string) error
		DeleteByStoreKey(ctx context.Context, storeKey string) error
	}

	UserRepo interface {
		GetByUsername(ctx context.Context, username string) (*entity.User, error)
	}

	OutboxRepo interface {
		Create(ctx context.Context, event *entity.OutboxEvent) error
		GetPendingEvents(ctx context.Context, maxRetries, limit int) ([]*entity.OutboxEvent, error)
		MarkAsProcessingBatch(ctx context.Context, IDs uuid.UUIDs) error
		MarkAsProcessedBatch(ctx context.Context, IDs uuid.UUIDs) error
		IncrementRetryCountBatch(ctx context.Context, IDs uuid.UUIDs) error
		MarkMaxRetriesAsFailed(ctx context.Context, maxRetries int) error
		DeleteOldProcessedAndFailed(ctx context.Context) (int64, error)
	}

	Transactor interface {
		WithinTransaction(ctx context.Context, f func(ctx context.Context) error) error
	}
)
