package models

import (
	"time"

	"github.com/google/uuid"
)

// Listing order for guestbook messages
type MessageOrder string

const (
	OrderNewestFirst MessageOrder = "newest"
	OrderOldestFirst MessageOrder = "oldest"
	OrderMostLiked   MessageOrder = "likes"
)

type Message struct {
	ID        uuid.UUID
	CreatedAt time.Time

	// Author association, best effort: may be nil and is not validated
	// against the users table
	UserID *uuid.UUID

	Text  string
	Likes int64
}
