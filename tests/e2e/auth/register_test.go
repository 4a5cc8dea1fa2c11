package auth

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nkiryanov/guestbook/internal/testutil"
	"github.com/nkiryanov/guestbook/tests/e2e"
)

const RegisterURL = "/users"

func Test_Register(t *testing.T) {
	t.Parallel()

	pg := testutil.StartPostgresContainer(t)
	t.Cleanup(pg.Terminate)

	e2e.ServeInTx(pg.Pool, t, func(tx pgx.Tx, srvURL string, s e2e.Services) {
		t.Run("register ok", func(t *testing.T) {
			data := `{"name": "Bo", "email": "bo@x.com", "password": "hunter2"}`

			resp, err := http.Post(srvURL+RegisterURL, "application/json", strings.NewReader(data))
			require.NoError(t, err)
			body, err := io.ReadAll(resp.Body)
			require.NoError(t, err)
			defer func() { _ = resp.Body.Close() }()

			require.Equalf(t, http.StatusCreated, resp.StatusCode, "not expected code. Body: %s", string(body))

			var user struct {
				ID          string   `json:"id"`
				Name        string   `json:"name"`
				Email       string   `json:"email"`
				AccessToken string   `json:"accessToken"`
				MessageIDs  []string `json:"messageIds"`
			}
			require.NoError(t, json.Unmarshal(body, &user))

			assert.NotEmpty(t, user.ID)
			assert.Equal(t, "Bo", user.Name)
			assert.Equal(t, "bo@x.com", user.Email)
			assert.Len(t, user.AccessToken, 128, "access token must be 128 hex chars")
			assert.Equal(t, []string{}, user.MessageIDs, "fresh user has no messages")
			assert.NotContains(t, string(body), "password", "password must never leak in responses")
		})

		t.Run("register duplicate email fails", func(t *testing.T) {
			_, err := s.AuthService.Register(t.Context(), "First", "taken@x.com", "hunter2")
			require.NoError(t, err)

			data := `{"name": "Second", "email": "taken@x.com", "password": "hunter2"}`
			resp, err := http.Post(srvURL+RegisterURL, "application/json", strings.NewReader(data))
			require.NoError(t, err)
			body, err := io.ReadAll(resp.Body)
			require.NoError(t, err)
			defer func() { _ = resp.Body.Close() }()

			require.Equalf(t, http.StatusBadRequest, resp.StatusCode, "not expected code. Body: %s", string(body))
			require.JSONEq(t, `
				{
					"error": "service_error",
					"message": "Could not create user"
				}`, string(body))
		})

		t.Run("register short password fails with field detail", func(t *testing.T) {
			data := `{"name": "Shorty", "email": "shorty@x.com", "password": "1234"}`

			resp, err := http.Post(srvURL+RegisterURL, "application/json", strings.NewReader(data))
			require.NoError(t, err)
			body, err := io.ReadAll(resp.Body)
			require.NoError(t, err)
			defer func() { _ = resp.Body.Close() }()

			require.Equalf(t, http.StatusBadRequest, resp.StatusCode, "not expected code. Body: %s", string(body))
			require.JSONEq(t, `
				{
					"error": "validation_failed",
					"message": "Request validation failed",
					"fields": {"password": "Value is too short (minimum 5)"}
				}`, string(body))
		})
	})
}
