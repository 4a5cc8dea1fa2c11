package e2e

import (
	"net/http/httptest"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/nkiryanov/guestbook/internal/handlers"
	"github.com/nkiryanov/guestbook/internal/logger"
	"github.com/nkiryanov/guestbook/internal/repository/postgres"
	"github.com/nkiryanov/guestbook/internal/service/auth"
	"github.com/nkiryanov/guestbook/internal/service/message"
	"github.com/nkiryanov/guestbook/internal/testutil"
)

type Services struct {
	AuthService    *auth.Service
	MessageService *message.Service
}

// Create db transaction and run server with that connection (one connection cause one transaction)
// Everything the tests create is rolled back when the test ends
func ServeInTx(dbpool *pgxpool.Pool, t *testing.T, fn func(tx pgx.Tx, srvURL string, services Services)) {
	testutil.WithTx(dbpool, t, func(tx pgx.Tx) {
		// Initialize repositories
		userRepo := &postgres.UserRepo{DB: tx}
		messageRepo := &postgres.MessageRepo{DB: tx}

		// Initialize services
		as := auth.NewService(auth.DefaultHasher, userRepo)
		ms := message.NewService(messageRepo)

		// Complete all together as router
		router := handlers.NewRouter(as, ms, logger.NewNoOp())

		// Run http server with the router in transaction
		srv := httptest.NewServer(router)
		defer srv.Close()

		fn(tx, srv.URL, Services{
			AuthService:    as,
			MessageService: ms,
		})
	})
}
