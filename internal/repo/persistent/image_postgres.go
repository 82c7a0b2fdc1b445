package persistent

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/andreyxaxa/Image-Gallery/internal/entity"
	"github.com/andreyxaxa/Image-Gallery/pkg/postgres"
	"github.com/andreyxaxa/Image-Gallery/pkg/types/errs"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const (
	// Table
	imagesTable = "images"

	// Columns
	idColumn           = "id"
	originalNameColumn = "original_name"
	storeKeyColumn     = "store_key"
	thumbKeyColumn     = "thumb_key"
	urlColumn          = "url"
	contentTypeColumn  = "content_type"
	sizeColumn         = "size"
	createdAtColumn    = "created_at"
)

type ImageMetadataRepo struct {
	*postgres.Postgres
}

func NewImageMetadataRepo(pg *postgres.Postgres) *ImageMetadataRepo {
	return &ImageMetadataRepo{pg}
}

func (r *ImageMetadataRepo) Create(ctx context.Context, image *entity.Image) error {
	sql, args, err := r.Builder.
		Insert(imagesTable).
		Columns(
			idColumn,
			originalNameColumn,
			storeKeyColumn,
			thumbKeyColumn,
			urlColumn,
			contentTypeColumn,
			sizeColumn,
			createdAtColumn,
		).
		Values(
			image.ID,
			image.OriginalName,
			image.StoreKey,
			image.ThumbKey,
			image.URL,
			image.ContentType,
			image.Size,
			image.CreatedAt,
		).ToSql()
	if err != nil {
		return fmt.Errorf("ImageMetadataRepo - Create - r.Builder.ToSql: %w", err)
	}

	// Pool / Tx
	executor := r.GetExecutor(ctx)

	_, err = executor.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("ImageMetadataRepo - Create - executor.Exec: %w", err)
	}

	return nil
}

// List returns every record, newest first.
func (r *ImageMetadataRepo) List(ctx context.Context) ([]*entity.Image, error) {
	sql, args, err := r.selectImages().
		OrderBy(createdAtColumn + " DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("ImageMetadataRepo - List - r.Builder.ToSql: %w", err)
	}

	executor := r.GetExecutor(ctx)

	rows, err := executor.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("ImageMetadataRepo - List - executor.Query: %w", err)
	}
	defer rows.Close()

	var images []*entity.Image
	for rows.Next() {
		image, err := scanImage(rows)
		if err != nil {
			return nil, fmt.Errorf("ImageMetadataRepo - List - rows.Scan: %w", err)
		}
		images = append(images, image)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ImageMetadataRepo - List - rows.Err: %w", err)
	}

	return images, nil
}

func (r *ImageMetadataRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Image, error) {
	sql, args, err := r.selectImages().
		Where(squirrel.Eq{idColumn: id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("ImageMetadataRepo - GetByID - r.Builder.ToSql: %w", err)
	}

	executor := r.GetExecutor(ctx)

	image, err := scanImage(executor.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("ImageMetadataRepo - GetByID: %w", errs.ErrRecordNotFound)
		}
		return nil, fmt.Errorf("ImageMetadataRepo - GetByID - executor.QueryRow: %w", err)
	}

	return image, nil
}

func (r *ImageMetadataRepo) GetByStoreKey(ctx context.Context, storeKey string) (*entity.Image, error) {
	sql, args, err := r.selectImages().
		Where(squirrel.Eq{storeKeyColumn: storeKey}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("ImageMetadataRepo - GetByStoreKey - r.Builder.ToSql: %w", err)
	}

	executor := r.GetExecutor(ctx)

	image, err := scanImage(executor.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("ImageMetadataRepo - GetByStoreKey: %w", errs.ErrRecordNotFound)
		}
		return nil, fmt.Errorf("ImageMetadataRepo - GetByStoreKey - executor.QueryRow: %w", err)
	}

	return image, nil
}

func (r *ImageMetadataRepo) UpdateName(ctx context.Context, id uuid.UUID, name string) error {
	sql, args, err := r.Builder.
		Update(imagesTable).
		Set(originalNameColumn, name).
		Where(squirrel.Eq{idColumn: id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("ImageMetadataRepo - UpdateName - r.Builder.ToSql: %w", err)
	}

	executor := r.GetExecutor(ctx)

	tag, err := executor.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("ImageMetadataRepo - UpdateName - executor.Exec: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return fmt.Errorf("ImageMetadataRepo - UpdateName: %w", errs.ErrRecordNotFound)
	}

	return nil
}

func (r *ImageMetadataRepo) DeleteByStoreKey(ctx context.Context, storeKey string) error {
	sql, args, err := r.Builder.
		Delete(imagesTable).
		Where(squirrel.Eq{storeKeyColumn: storeKey}).
		ToSql()
	if err != nil {
		return fmt.Errorf("ImageMetadataRepo - DeleteByStoreKey - r.Builder.ToSql: %w", err)
	}

	executor := r.GetExecutor(ctx)

	tag, err := executor.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("ImageMetadataRepo - DeleteByStoreKey - executor.Exec: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return fmt.Errorf("ImageMetadataRepo - DeleteByStoreKey: %w", errs.ErrRecordNotFound)
	}

	return nil
}

func (r *ImageMetadataRepo) selectImages() squirrel.SelectBuilder {
	return r.Builder.
		Select(
			idColumn,
			originalNameColumn,
			storeKeyColumn,
			thumbKeyColumn,
			urlColumn,
			contentTypeColumn,
			sizeColumn,
			createdAtColumn,
		).
		From(imagesTable)
}

func scanImage(row pgx.Row) (*entity.Image, error) {
	var image entity.Image

	err := row.Scan(
		&image.ID,
		&image.OriginalName,
		&image.StoreKey,
		&image.ThumbKey,
		&image.URL,
		&image.ContentType,
		&image.Size,
		&image.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	return &image, nil
}
