package entity

// Status tracks an outbox event through the relay: pending rows are picked
// up for publishing, processing marks an in-flight batch, processed and
// failed are terminal and eligible for cleanup.
type Status string

const (
	Pending    Status = "pending"
	Processing Status = "processing"
	Processed  Status = "processed"
	Failed     Status = "failed"
)
