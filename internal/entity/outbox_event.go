package entity

import (
	"time"

	"github.com/google/uuid"
)

// Event kinds published for downstream consumers (thumbnailers, audit, cache
// invalidation). The payload is written in the same transaction as the
// metadata mutation it describes.
const (
	EventUploaded = "image.uploaded"
	EventRenamed  = "image.renamed"
	EventDeleted  = "image.deleted"
)

type OutboxEvent struct {
	ID          uuid.UUID  `json:"id"`
	AggregateID uuid.UUID  `json:"aggregate_id"`
	Kind        string     `json:"kind"`
	Payload     []byte     `json:"payload"`
	Status      Status     `json:"status"` // pending, processing, processed, failed
	CreatedAt   time.Time  `json:"created_at"`
	ProcessedAt *time.Time `json:"processed_at,omitempty"`
	RetryCount  int        `json:"retry_count"`
}
