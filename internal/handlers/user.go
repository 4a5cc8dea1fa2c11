package handlers

import (
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/nkiryanov/guestbook/internal/handlers/render"
	"github.com/nkiryanov/guestbook/internal/handlers/userctx"
	"github.com/nkiryanov/guestbook/internal/logger"
	"github.com/nkiryanov/guestbook/internal/models"
)

type userJSON struct {
	ID          uuid.UUID   `json:"id"`
	Name        string      `json:"name"`
	Email       string      `json:"email"`
	AccessToken string      `json:"accessToken"`
	MessageIDs  []uuid.UUID `json:"messageIds"`
	CreatedAt   time.Time   `json:"createdAt"`
}

// User payload with authored message ids, never the password hash
func userResponse(u models.User, messageIDs []uuid.UUID) userJSON {
	if messageIDs == nil {
		messageIDs = []uuid.UUID{}
	}

	return userJSON{
		ID:          u.ID,
		Name:        u.Name,
		Email:       u.Email,
		AccessToken: u.AccessToken,
		MessageIDs:  messageIDs,
		CreatedAt:   u.CreatedAt,
	}
}

func handleRoot() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("Backend for guest book"))
	})
}

func handleSecrets() http.Handler {
	type response struct {
		Secret string `json:"secret"`
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		render.JSON(w, response{Secret: "This is a super secret message"})
	})
}

// Profile of the authenticated user, whatever user id is in the path
func handleUserProfile(messageService messageService, l logger.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, ok := userctx.FromContext(r.Context())
		if !ok {
			render.ServiceError(w, "Internal server error", http.StatusInternalServerError)
			return
		}

		messageIDs, err := messageService.AuthoredIDs(r.Context(), user.ID)
		if err != nil {
			l.Error("Failed to list user messages", "error", err)
			render.ServiceError(w, "Could not find user", http.StatusBadRequest)
			return
		}

		render.JSONWithStatus(w, userResponse(user, messageIDs), http.StatusCreated)
	})
}
