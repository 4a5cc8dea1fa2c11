package message

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/nkiryanov/guestbook/internal/apperrors"
	"github.com/nkiryanov/guestbook/internal/models"
)

const (
	minTextLen = 5
	maxTextLen = 140
)

type MessageRepo interface {
	CreateMessage(ctx context.Context, message models.Message) (models.Message, error)

	// Increment likes counter atomically, return the new value
	// Has to return apperrors.ErrMessageNotFound if no message matched
	AddLike(ctx context.Context, messageID uuid.UUID) (int64, error)

	// List messages in the given order, capped by the repo
	ListMessages(ctx context.Context, order models.MessageOrder) ([]models.Message, error)

	// Ids of messages authored by the user
	ListMessageIDsByUser(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error)
}

type Service struct {
	messageRepo MessageRepo
}

func NewService(messageRepo MessageRepo) *Service {
	return &Service{
		messageRepo: messageRepo,
	}
}

// Create stores a guestbook message
// authorID is a best effort association: it may be nil and is not checked
// against registered users
func (s *Service) Create(ctx context.Context, text string, authorID *uuid.UUID) (models.Message, error) {
	var message models.Message

	if len(text) < minTextLen || len(text) > maxTextLen {
		verr := apperrors.NewValidationError()
		verr.Add("message", fmt.Sprintf("Length must be between %d and %d", minTextLen, maxTextLen))
		return message, verr
	}

	message, err := s.messageRepo.CreateMessage(ctx, models.Message{
		ID:        uuid.New(),
		CreatedAt: time.Now(),
		UserID:    authorID,
		Text:      text,
	})
	if err != nil {
		return message, fmt.Errorf("can't create message. Err: %w", err)
	}

	return message, nil
}

// Like adds one like to the message
func (s *Service) Like(ctx context.Context, messageID uuid.UUID) error {
	_, err := s.messageRepo.AddLike(ctx, messageID)
	return err
}

// List returns up to 20 messages ordered by the sort discriminator:
// "dates" oldest first, "likes" most liked first, anything else newest first
func (s *Service) List(ctx context.Context, sortKey string) ([]models.Message, error) {
	order := models.OrderNewestFirst
	switch sortKey {
	case "dates":
		order = models.OrderOldestFirst
	case "likes":
		order = models.OrderMostLiked
	}

	return s.messageRepo.ListMessages(ctx, order)
}

// AuthoredIDs returns ids of messages the user posted, oldest first
func (s *Service) AuthoredIDs(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	return s.messageRepo.ListMessageIDsByUser(ctx, userID)
}
