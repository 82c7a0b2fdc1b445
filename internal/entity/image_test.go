package entity

import (
	"errors"
	"testing"

	"github.com/andreyxaxa/Image-Gallery/pkg/types/errs"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewImage(t *testing.T) {
	image, err := NewImage(uuid.New(), "  vacation  ", "uploads/abc", "https://store/uploads/abc", "image/png", 42)

	require.NoError(t, err)
	assert.Equal(t, "vacation", image.OriginalName)
	assert.Equal(t, int64(42), image.Size)
	assert.False(t, image.CreatedAt.IsZero())
}

func TestNewImage_EmptyName(t *testing.T) {
	_, err := NewImage(uuid.New(), "   ", "uploads/abc", "https://store/uploads/abc", "image/png", 42)

	require.Error(t, err)
	assert.True(t, errors.Is(err, errs.ErrEmptyName))
}

func TestNewImage_MissingStoreKey(t *testing.T) {
	_, err := NewImage(uuid.New(), "vacation", "", "https://store/uploads/abc", "image/png", 42)

	assert.Error(t, err)
}

func TestImage_Ext(t *testing.T) {
	cases := map[string]string{
		"image/png":  ".png",
		"image/webp": ".webp",
		"image/gif":  ".gif",
		"image/jpeg": ".jpg",
		"image/jpg":  ".jpg",
		"":           ".jpg",
	}

	for contentType, want := range cases {
		image := Image{ContentType: contentType}
		assert.Equal(t, want, image.Ext(), "content type %q", contentType)
	}
}
