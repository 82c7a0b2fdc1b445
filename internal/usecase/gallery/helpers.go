package gallery

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/andreyxaxa/Image-Gallery/internal/entity"
	"github.com/andreyxaxa/Image-Gallery/pkg/types/errs"
	"github.com/google/uuid"
)

// displayName strips the directory part and the extension from an uploaded
// filename, "holiday/vacation.png" becomes "vacation".
func displayName(originalFilename string) string {
	base := filepath.Base(originalFilename)

	return strings.TrimSuffix(base, filepath.Ext(base))
}

func trimmedName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", errs.ErrEmptyName
	}

	return name, nil
}

func newOutboxEvent(kind string, image *entity.Image) (*entity.OutboxEvent, error) {
	payload := map[string]interface{}{
		"kind":          kind,
		"image_id":      image.ID,
		"store_key":     image.StoreKey,
		"original_name": image.OriginalName,
		"url":           image.URL,
	}

	b, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("newOutboxEvent - json.Marshal: %w", err)
	}

	return &entity.OutboxEvent{
		ID:          uuid.New(),
		AggregateID: image.ID,
		Kind:        kind,
		Payload:     b,
		Status:      entity.Pending,
		CreatedAt:   time.Now(),
		RetryCount:  0,
	}, nil
}

func newRenameEvent(imageID uuid.UUID, newName string) (*entity.OutboxEvent, error) {
	payload := map[string]interface{}{
		"kind":          entity.EventRenamed,
		"image_id":      imageID,
		"original_name": newName,
	}

	b, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("newRenameEvent - json.Marshal: %w", err)
	}

	return &entity.OutboxEvent{
		ID:          uuid.New(),
		AggregateID: imageID,
		Kind:        entity.EventRenamed,
		Payload:     b,
		Status:      entity.Pending,
		CreatedAt:   time.Now(),
		RetryCount:  0,
	}, nil
}
