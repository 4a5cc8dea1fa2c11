package handlers

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/nkiryanov/guestbook/internal/handlers/middleware"
	"github.com/nkiryanov/guestbook/internal/logger"
	"github.com/nkiryanov/guestbook/internal/models"
)

// chain applies middlewares in the given order: m1(m2(...(h)))
func chain(h http.Handler, mds ...func(next http.Handler) http.Handler) http.Handler {
	for i := len(mds) - 1; i >= 0; i-- {
		h = mds[i](h)
	}
	return h
}

func NewRouter(
	authService authService,
	messageService messageService,
	logger logger.Logger,
) http.Handler {
	withAuth := middleware.Auth(authService)

	mux := http.NewServeMux()

	mux.Handle("GET /{$}", handleRoot())

	mux.Handle("POST /users", handleRegister(authService, logger))
	mux.Handle("POST /sessions", handleLogin(authService, logger))

	// The literal /users/messages pattern wins over the {userId} wildcard
	mux.Handle("GET /users/messages", handleListMessages(messageService, logger))
	mux.Handle("POST /users/{userId}", handleCreateMessage(messageService, logger))
	mux.Handle("POST /users/{userId}/{postId}/like", handleLikeMessage(messageService, logger))

	mux.Handle("GET /secrets", withAuth(handleSecrets()))
	mux.Handle("GET /users/{userId}", withAuth(handleUserProfile(messageService, logger)))

	return chain(mux,
		middleware.Logger(logger),
	)
}

type authService interface {
	// Register user with name, email and password
	// Has to return apperrors.ErrUserAlreadyExists if name or email is taken
	// and *apperrors.ValidationError on bad input
	Register(ctx context.Context, name string, email string, password string) (models.User, error)

	// Login user by email and password
	// Has to return apperrors.ErrUserNotFound on any credential mismatch
	Login(ctx context.Context, email string, password string) (models.User, error)

	// Resolve access token to its user, used by the auth middleware
	UserByToken(ctx context.Context, token string) (models.User, error)
}

type messageService interface {
	Create(ctx context.Context, text string, authorID *uuid.UUID) (models.Message, error)
	Like(ctx context.Context, messageID uuid.UUID) error
	List(ctx context.Context, sortKey string) ([]models.Message, error)
	AuthoredIDs(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error)
}
