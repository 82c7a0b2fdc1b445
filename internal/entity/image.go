package entity

import (
	"fmt"
	"strings"
	"time"

	"github.com/andreyxaxa/Image-Gallery/pkg/types/errs"
	"github.com/google/uuid"
)

// Image pairs a metadata record with the blob stored under StoreKey.
// StoreKey and URL are set once at upload and never change; OriginalName is
// the only mutable field (rename).
type Image struct {
	ID uuid.UUID `json:"id"`

	OriginalName string  `json:"original_name"`
	StoreKey     string  `json:"store_key"`
	ThumbKey     *string `json:"thumb_key,omitempty"`

	URL         string `json:"url"`
	ContentType string `json:"content_type"`
	Size        int64  `json:"size"`

	CreatedAt time.Time `json:"created_at"`
}

func NewImage(id uuid.UUID, name, storeKey, url, contentType string, size int64) (*Image, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("entity - NewImage: %w", errs.ErrEmptyName)
	}

	if storeKey == "" || url == "" {
		return nil, fmt.Errorf("entity - NewImage: store key and url are required")
	}

	return &Image{
		ID:           id,
		OriginalName: name,
		StoreKey:     storeKey,
		URL:          url,
		ContentType:  contentType,
		Size:         size,
		CreatedAt:    time.Now(),
	}, nil
}

// Ext maps the stored content type to a download filename extension.
func (i *Image) Ext() string {
	switch i.ContentType {
	case "image/png":
		return ".png"
	case "image/webp":
		return ".webp"
	case "image/gif":
		return ".gif"
	default:
		return ".jpg"
	}
}
