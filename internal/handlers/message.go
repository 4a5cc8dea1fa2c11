package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/nkiryanov/guestbook/internal/apperrors"
	"github.com/nkiryanov/guestbook/internal/handlers/render"
	"github.com/nkiryanov/guestbook/internal/logger"
	"github.com/nkiryanov/guestbook/internal/models"
)

type messageResponse struct {
	ID        uuid.UUID  `json:"id"`
	UserID    *uuid.UUID `json:"userId"`
	Message   string     `json:"message"`
	Likes     int64      `json:"likes"`
	CreatedAt time.Time  `json:"createdAt"`
}

func toMessageResponse(m models.Message) messageResponse {
	return messageResponse{
		ID:        m.ID,
		UserID:    m.UserID,
		Message:   m.Text,
		Likes:     m.Likes,
		CreatedAt: m.CreatedAt,
	}
}

func handleCreateMessage(messageService messageService, l logger.Logger) http.Handler {
	type request struct {
		Message string `json:"message" validate:"required,min=5,max=140"`
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		data, err := render.BindAndValidate[request](w, r)
		if err != nil {
			return
		}

		// Author association is best effort: an unparseable user id in the
		// path stores the message without an author
		var authorID *uuid.UUID
		if uid, err := uuid.Parse(r.PathValue("userId")); err == nil {
			authorID = &uid
		}

		message, err := messageService.Create(r.Context(), data.Message, authorID)

		var verr *apperrors.ValidationError
		switch {
		case err == nil:
			render.JSONWithStatus(w, toMessageResponse(message), http.StatusCreated)
		case errors.As(err, &verr):
			render.FieldErrors(w, verr.Fields)
		default:
			l.Error("Failed to save message", "error", err)
			render.ServiceError(w, "Could not save post to the database", http.StatusBadRequest)
		}
	})
}

func handleLikeMessage(messageService messageService, l logger.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Missing and malformed ids collapse into the same answer as a
		// missing row, there is one combined error path for likes
		postID, err := uuid.Parse(r.PathValue("postId"))
		if err != nil {
			render.ServiceError(w, "Could not find the post", http.StatusBadRequest)
			return
		}

		err = messageService.Like(r.Context(), postID)

		switch {
		case err == nil:
			w.WriteHeader(http.StatusCreated)
		case errors.Is(err, apperrors.ErrMessageNotFound):
			render.ServiceError(w, "Could not find the post", http.StatusBadRequest)
		default:
			l.Error("Failed to like message", "error", err)
			render.ServiceError(w, "Could not find the post", http.StatusBadRequest)
		}
	})
}

func handleListMessages(messageService messageService, l logger.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		messages, err := messageService.List(r.Context(), r.URL.Query().Get("sort"))
		if err != nil {
			l.Error("Failed to list messages", "error", err)
			render.ServiceError(w, "Internal server error", http.StatusInternalServerError)
			return
		}

		response := make([]messageResponse, 0, len(messages))
		for _, m := range messages {
			response = append(response, toMessageResponse(m))
		}

		render.JSON(w, response)
	})
}
