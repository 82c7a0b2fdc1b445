package processor

import (
	"bytes"
	"context"
	"fmt"
	"image"

	"github.com/disintegration/imaging"
)

// Gallery previews fit into a 320x320 box, aspect ratio preserved.
const thumbMaxSide = 320

type Thumbnailer struct {
}

func New() *Thumbnailer {
	return &Thumbnailer{}
}

func (p *Thumbnailer) Thumbnail(ctx context.Context, contentType string, data []byte) ([]byte, error) {
	img, err := decodeImage(data)
	if err != nil {
		return nil, fmt.Errorf("Thumbnailer - Thumbnail - decodeImage: %w", err)
	}

	thumb := imaging.Fit(img, thumbMaxSide, thumbMaxSide, imaging.Lanczos)

	res, err := encodeImage(thumb, contentType)
	if err != nil {
		return nil, fmt.Errorf("Thumbnailer - Thumbnail - encodeImage: %w", err)
	}

	return res, nil
}

func decodeImage(data []byte) (image.Image, error) {
	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("Thumbnailer - decodeImage - imaging.Decode: %w", err)
	}

	return img, nil
}

func encodeImage(img image.Image, contentType string) ([]byte, error) {
	var format imaging.Format

	switch contentType {
	case "image/png":
		format = imaging.PNG
	case "image/gif":
		format = imaging.GIF
	default:
		format = imaging.JPEG
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, format); err != nil {
		return nil, fmt.Errorf("Thumbnailer - encodeImage - imaging.Encode: %w", err)
	}

	return buf.Bytes(), nil
}
