package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/nkiryanov/guestbook/internal/apperrors"
	"github.com/nkiryanov/guestbook/internal/models"
)

type UserRepo struct {
	DB DBTX
}

const createUser = `-- name: CreateUser
INSERT INTO users (id, created_at, name, email, password_hash, access_token)
VALUES ($1, $2, $3, $4, $5, $6)
RETURNING id, created_at, name, email, password_hash, access_token
`

// Create user
// Uniqueness of name, email and access token is enforced by the database,
// so concurrent registrations can not both succeed
func (r *UserRepo) CreateUser(ctx context.Context, user models.User) (models.User, error) {
	rows, _ := r.DB.Query(ctx, createUser, user.ID, user.CreatedAt, user.Name, user.Email, user.PasswordHash, user.AccessToken)
	user, err := pgx.CollectOneRow(rows, rowToUser)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return user, apperrors.ErrUserAlreadyExists
		}

		return user, fmt.Errorf("db error: %w", err)
	}

	return user, nil
}

const getUserByEmail = `-- name: GetUserByEmail
SELECT id, created_at, name, email, password_hash, access_token FROM users
WHERE email = $1
`

func (r *UserRepo) GetUserByEmail(ctx context.Context, email string) (models.User, error) {
	rows, _ := r.DB.Query(ctx, getUserByEmail, email)
	user, err := pgx.CollectOneRow(rows, rowToUser)

	switch {
	case err == nil:
		return user, nil
	case errors.Is(err, pgx.ErrNoRows):
		return user, apperrors.ErrUserNotFound
	default:
		return user, fmt.Errorf("db error: %w", err)
	}
}

const getUserByToken = `-- name: GetUserByToken
SELECT id, created_at, name, email, password_hash, access_token FROM users
WHERE access_token = $1
`

// Exact match token lookup
// The token is the sole authorization credential, nothing else is checked
func (r *UserRepo) GetUserByToken(ctx context.Context, token string) (models.User, error) {
	rows, _ := r.DB.Query(ctx, getUserByToken, token)
	user, err := pgx.CollectOneRow(rows, rowToUser)

	switch {
	case err == nil:
		return user, nil
	case errors.Is(err, pgx.ErrNoRows):
		return user, apperrors.ErrUserNotFound
	default:
		return user, fmt.Errorf("db error: %w", err)
	}
}

func rowToUser(row pgx.CollectableRow) (models.User, error) {
	var u models.User
	err := row.Scan(&u.ID, &u.CreatedAt, &u.Name, &u.Email, &u.PasswordHash, &u.AccessToken)
	return u, err
}
