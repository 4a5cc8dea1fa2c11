package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/nkiryanov/guestbook/internal/apperrors"
	"github.com/nkiryanov/guestbook/internal/models"
)

// Listing never returns more than this many messages
const messageListLimit = 20

type MessageRepo struct {
	DB DBTX
}

const createMessage = `-- name: CreateMessage
INSERT INTO messages (id, created_at, user_id, message)
VALUES ($1, $2, $3, $4)
RETURNING id, created_at, user_id, message, likes
`

func (r *MessageRepo) CreateMessage(ctx context.Context, message models.Message) (models.Message, error) {
	rows, _ := r.DB.Query(ctx, createMessage, message.ID, message.CreatedAt, message.UserID, message.Text)
	message, err := pgx.CollectOneRow(rows, rowToMessage)
	if err != nil {
		return message, fmt.Errorf("db error: %w", err)
	}

	return message, nil
}

const addLike = `-- name: AddLike
UPDATE messages
SET likes = likes + 1
WHERE id = $1
RETURNING likes
`

// Increment likes counter by one
// The increment happens in a single statement so concurrent likes never lose updates
func (r *MessageRepo) AddLike(ctx context.Context, messageID uuid.UUID) (int64, error) {
	rows, _ := r.DB.Query(ctx, addLike, messageID)
	likes, err := pgx.CollectOneRow(rows, pgx.RowTo[int64])

	switch {
	case err == nil:
		return likes, nil
	case errors.Is(err, pgx.ErrNoRows):
		return 0, apperrors.ErrMessageNotFound
	default:
		return 0, fmt.Errorf("db error: %w", err)
	}
}

const (
	listNewestFirst = `-- name: ListMessagesNewestFirst
SELECT id, created_at, user_id, message, likes FROM messages
ORDER BY created_at DESC
LIMIT $1
`
	listOldestFirst = `-- name: ListMessagesOldestFirst
SELECT id, created_at, user_id, message, likes FROM messages
ORDER BY created_at ASC
LIMIT $1
`
	listMostLiked = `-- name: ListMessagesMostLiked
SELECT id, created_at, user_id, message, likes FROM messages
ORDER BY likes DESC
LIMIT $1
`
)

// List messages in the given order, capped to the 20 most relevant rows
// Unknown order values fall back to newest first
func (r *MessageRepo) ListMessages(ctx context.Context, order models.MessageOrder) ([]models.Message, error) {
	query := listNewestFirst
	switch order {
	case models.OrderOldestFirst:
		query = listOldestFirst
	case models.OrderMostLiked:
		query = listMostLiked
	}

	rows, _ := r.DB.Query(ctx, query, messageListLimit)
	messages, err := pgx.CollectRows(rows, rowToMessage)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return messages, nil
}

const listMessageIDsByUser = `-- name: ListMessageIDsByUser
SELECT id FROM messages
WHERE user_id = $1
ORDER BY created_at ASC
`

// Ids of messages authored by the user, oldest first
func (r *MessageRepo) ListMessageIDsByUser(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	rows, _ := r.DB.Query(ctx, listMessageIDsByUser, userID)
	ids, err := pgx.CollectRows(rows, pgx.RowTo[uuid.UUID])
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return ids, nil
}

func rowToMessage(row pgx.CollectableRow) (models.Message, error) {
	var m models.Message
	err := row.Scan(&m.ID, &m.CreatedAt, &m.UserID, &m.Text, &m.Likes)
	return m, err
}
