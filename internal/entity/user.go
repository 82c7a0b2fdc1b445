package entity

import (
	"time"

	"github.com/google/uuid"
)

// User is a principal allowed to manage the gallery. The service runs with a
// single seeded admin account, see cmd/seed.
type User struct {
	ID           uuid.UUID `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}
