package handlers

import (
	"errors"
	"net/http"

	"github.com/google/uuid"

	"github.com/nkiryanov/guestbook/internal/apperrors"
	"github.com/nkiryanov/guestbook/internal/handlers/render"
	"github.com/nkiryanov/guestbook/internal/logger"
)

func handleRegister(authService authService, l logger.Logger) http.Handler {
	type request struct {
		Name     string `json:"name" validate:"required"`
		Email    string `json:"email" validate:"required"`
		Password string `json:"password" validate:"required,min=5"`
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		data, err := render.BindAndValidate[request](w, r)
		if err != nil {
			return
		}

		user, err := authService.Register(r.Context(), data.Name, data.Email, data.Password)

		var verr *apperrors.ValidationError
		switch {
		case err == nil:
			// Freshly registered user has no messages yet
			render.JSONWithStatus(w, userResponse(user, []uuid.UUID{}), http.StatusCreated)
		case errors.As(err, &verr):
			render.FieldErrors(w, verr.Fields)
		case errors.Is(err, apperrors.ErrUserAlreadyExists):
			render.ServiceError(w, "Could not create user", http.StatusBadRequest)
		default:
			l.Error("Failed to register user", "error", err)
			render.ServiceError(w, "Internal server error", http.StatusInternalServerError)
		}
	})
}

func handleLogin(authService authService, l logger.Logger) http.Handler {
	type request struct {
		Email    string `json:"email" validate:"required"`
		Password string `json:"password" validate:"required"`
	}

	type response struct {
		Name        string    `json:"name"`
		UserID      uuid.UUID `json:"userId"`
		AccessToken string    `json:"accessToken"`
	}

	type failedResponse struct {
		NotFound bool `json:"notFound"`
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		data, err := render.BindAndValidate[request](w, r)
		if err != nil {
			return
		}

		user, err := authService.Login(r.Context(), data.Email, data.Password)

		switch {
		case err == nil:
			render.JSON(w, response{
				Name:        user.Name,
				UserID:      user.ID,
				AccessToken: user.AccessToken,
			})
		case errors.Is(err, apperrors.ErrUserNotFound):
			// Same body for unknown email and wrong password on purpose
			render.JSONWithStatus(w, failedResponse{NotFound: true}, http.StatusBadRequest)
		default:
			l.Error("Failed to login user", "error", err)
			render.ServiceError(w, "Internal server error", http.StatusInternalServerError)
		}
	})
}
