package models

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID           uuid.UUID
	CreatedAt    time.Time
	Name         string
	Email        string
	PasswordHash string

	// Opaque bearer credential issued once at registration.
	// Never rotated for the lifetime of the user.
	AccessToken string
}
