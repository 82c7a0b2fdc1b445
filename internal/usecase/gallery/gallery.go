package gallery

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/andreyxaxa/Image-Gallery/internal/entity"
	"github.com/andreyxaxa/Image-Gallery/internal/infrastructure"
	"github.com/andreyxaxa/Image-Gallery/internal/repo"
	"github.com/andreyxaxa/Image-Gallery/pkg/logger"
	"github.com/andreyxaxa/Image-Gallery/pkg/types/errs"
	"github.com/google/uuid"
)

type GalleryUseCase struct {
	blobRepo     repo.BlobRepo
	metadataRepo repo.ImageMetadataRepo
	outboxRepo   repo.OutboxRepo
	transactor   repo.Transactor
	thumbnailer  infrastructure.ThumbnailMaker

	logger logger.Interface
}

func New(
	blobRepo repo.BlobRepo,
	metadataRepo repo.ImageMetadataRepo,
	outboxRepo repo.OutboxRepo,
	transactor repo.Transactor,
	thumbnailer infrastructure.ThumbnailMaker,
	l logger.Interface,
) *GalleryUseCase {
	return &GalleryUseCase{
		blobRepo:     blobRepo,
		metadataRepo: metadataRepo,
		outboxRepo:   outboxRepo,
		transactor:   transactor,
		thumbnailer:  thumbnailer,
		logger:       l,
	}
}

func (uc *GalleryUseCase) Upload(
	ctx context.Context,
	data []byte,
	originalFilename string,
	contentType string,
	size int64,
) (*entity.Image, error) {
	imageID := uuid.New()
	storeKey := fmt.Sprintf("uploads/%s", imageID)

	// 1. blob goes to the asset store first
	err := uc.blobRepo.UploadBytes(ctx, storeKey, data, contentType, size)
	if err != nil {
		return nil, fmt.Errorf("GalleryUseCase - Upload - uc.blobRepo.UploadBytes: %w", err)
	}

	image, err := entity.NewImage(
		imageID,
		displayName(originalFilename),
		storeKey,
		uc.blobRepo.ObjectURL(storeKey),
		contentType,
		size,
	)
	if err != nil {
		uc.compensateBlob(ctx, storeKey, nil)

		return nil, fmt.Errorf("GalleryUseCase - Upload - entity.NewImage: %w", err)
	}

	// 2. gallery preview, best-effort - a missing thumb only degrades the UI
	image.ThumbKey = uc.uploadThumb(ctx, imageID, contentType, data)

	// 3. metadata and the uploaded-event in one transaction
	err = uc.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := uc.metadataRepo.Create(ctx, image); err != nil {
			return fmt.Errorf("GalleryUseCase - Upload - uc.metadataRepo.Create: %w", err)
		}

		event, err := newOutboxEvent(entity.EventUploaded, image)
		if err != nil {
			return fmt.Errorf("GalleryUseCase - Upload - newOutboxEvent: %w", err)
		}
		if err := uc.outboxRepo.Create(ctx, event); err != nil {
			return fmt.Errorf("GalleryUseCase - Upload - uc.outboxRepo.Create: %w", err)
		}

		return nil
	})

	// transaction failed - compensate the store writes so no orphaned blob
	// stays addressable
	if err != nil {
		uc.compensateBlob(ctx, storeKey, image.ThumbKey)

		return nil, fmt.Errorf("GalleryUseCase - Upload - uc.transactor.WithinTransaction: %w", err)
	}

	return image, nil
}

// List returns the records newest first. An empty gallery is a valid result.
func (uc *GalleryUseCase) List(ctx context.Context) ([]*entity.Image, error) {
	images, err := uc.metadataRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("GalleryUseCase - List - uc.metadataRepo.List: %w", err)
	}

	return images, nil
}

func (uc *GalleryUseCase) Rename(ctx context.Context, id uuid.UUID, newName string) error {
	name, err := trimmedName(newName)
	if err != nil {
		return fmt.Errorf("GalleryUseCase - Rename: %w", err)
	}

	err = uc.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := uc.metadataRepo.UpdateName(ctx, id, name); err != nil {
			return fmt.Errorf("GalleryUseCase - Rename - uc.metadataRepo.UpdateName: %w", err)
		}

		event, err := newRenameEvent(id, name)
		if err != nil {
			return fmt.Errorf("GalleryUseCase - Rename - newRenameEvent: %w", err)
		}
		if err := uc.outboxRepo.Create(ctx, event); err != nil {
			return fmt.Errorf("GalleryUseCase - Rename - uc.outboxRepo.Create: %w", err)
		}

		return nil
	})
	if err != nil {
		return fmt.Errorf("GalleryUseCase - Rename - uc.transactor.WithinTransaction: %w", err)
	}

	return nil
}

// Delete destroys the blob and then the metadata row. Either side being
// already absent is success, so a repeated delete never hard-fails. Only
// infrastructure errors reaching the stores propagate.
func (uc *GalleryUseCase) Delete(ctx context.Context, storeKey string) error {
	image, err := uc.metadataRepo.GetByStoreKey(ctx, storeKey)
	if err != nil && !errors.Is(err, errs.ErrRecordNotFound) {
		return fmt.Errorf("GalleryUseCase - Delete - uc.metadataRepo.GetByStoreKey: %w", err)
	}

	err = uc.blobRepo.Delete(ctx, storeKey)
	if err != nil {
		return fmt.Errorf("GalleryUseCase - Delete - uc.blobRepo.Delete: %w", err)
	}

	if image == nil {
		// record already gone, the blob delete above was a no-op as well
		return nil
	}

	if image.ThumbKey != nil {
		if err := uc.blobRepo.Delete(ctx, *image.ThumbKey); err != nil {
			uc.logger.Warn("failed to delete key=%s, error=%v", *image.ThumbKey, err)
		}
	}

	err = uc.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := uc.metadataRepo.DeleteByStoreKey(ctx, storeKey); err != nil {
			return fmt.Errorf("GalleryUseCase - Delete - uc.metadataRepo.DeleteByStoreKey: %w", err)
		}

		event, err := newOutboxEvent(entity.EventDeleted, image)
		if err != nil {
			return fmt.Errorf("GalleryUseCase - Delete - newOutboxEvent: %w", err)
		}
		if err := uc.outboxRepo.Create(ctx, event); err != nil {
			return fmt.Errorf("GalleryUseCase - Delete - uc.outboxRepo.Create: %w", err)
		}

		return nil
	})
	if err != nil {
		// a concurrent delete may have removed the row between the lookup
		// and the transaction
		if errors.Is(err, errs.ErrRecordNotFound) {
			return nil
		}
		return fmt.Errorf("GalleryUseCase - Delete - uc.transactor.WithinTransaction: %w", err)
	}

	return nil
}

func (uc *GalleryUseCase) Download(ctx context.Context, id uuid.UUID) (*entity.Image, io.ReadCloser, error) {
	image, err := uc.metadataRepo.GetByID(ctx, id)
	if err != nil {
		return nil, nil, fmt.Errorf("GalleryUseCase - Download - uc.metadataRepo.GetByID: %w", err)
	}

	body, err := uc.blobRepo.Download(ctx, image.StoreKey)
	if err != nil {
		return nil, nil, fmt.Errorf("GalleryUseCase - Download - uc.blobRepo.Download: %w", err)
	}

	return image, body, nil
}

// DownloadThumb streams the preview, falling back to the original when no
// thumbnail was generated at upload time.
func (uc *GalleryUseCase) DownloadThumb(ctx context.Context, id uuid.UUID) (*entity.Image, io.ReadCloser, error) {
	image, err := uc.metadataRepo.GetByID(ctx, id)
	if err != nil {
		return nil, nil, fmt.Errorf("GalleryUseCase - DownloadThumb - uc.metadataRepo.GetByID: %w", err)
	}

	key := image.StoreKey
	if image.ThumbKey != nil {
		key = *image.ThumbKey
	}

	body, err := uc.blobRepo.Download(ctx, key)
	if err != nil {
		return nil, nil, fmt.Errorf("GalleryUseCase - DownloadThumb - uc.blobRepo.Download: %w", err)
	}

	return image, body, nil
}

func (uc *GalleryUseCase) uploadThumb(ctx context.Context, imageID uuid.UUID, contentType string, data []byte) *string {
	thumb, err := uc.thumbnailer.Thumbnail(ctx, contentType, data)
	if err != nil {
		uc.logger.Warn("thumbnail generation failed for image=%s, error=%v", imageID, err)

		return nil
	}

	thumbKey := fmt.Sprintf("thumbs/%s", imageID)

	err = uc.blobRepo.UploadBytes(ctx, thumbKey, thumb, contentType, int64(len(thumb)))
	if err != nil {
		uc.logger.Warn("thumbnail upload failed for image=%s, error=%v", imageID, err)

		return nil
	}

	return &thumbKey
}

// compensateBlob undoes the asset-store writes after a failed metadata
// transaction. Best-effort: a secondary failure leaves a transient orphaned
// blob, which is logged, never hidden.
func (uc *GalleryUseCase) compensateBlob(ctx context.Context, storeKey string, thumbKey *string) {
	if err := uc.blobRepo.Delete(ctx, storeKey); err != nil {
		uc.logger.Error(err, "GalleryUseCase - compensateBlob - uc.blobRepo.Delete")
	}

	if thumbKey != nil {
		if err := uc.blobRepo.Delete(ctx, *thumbKey); err != nil {
			uc.logger.Error(err, "GalleryUseCase - compensateBlob - uc.blobRepo.Delete")
		}
	}
}
