package postgres

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nkiryanov/guestbook/internal/apperrors"
	"github.com/nkiryanov/guestbook/internal/models"
	"github.com/nkiryanov/guestbook/internal/testutil"
)

func Test_MessageRepo(t *testing.T) {
	t.Parallel()

	pg := testutil.StartPostgresContainer(t)
	t.Cleanup(pg.Terminate)

	withTx := func(t *testing.T, testFunc func(*MessageRepo)) {
		testutil.WithTx(pg.Pool, t, func(tx pgx.Tx) {
			testFunc(&MessageRepo{DB: tx})
		})
	}

	create := func(t *testing.T, r *MessageRepo, text string, userID *uuid.UUID) models.Message {
		t.Helper()
		m, err := r.CreateMessage(t.Context(), models.Message{ID: uuid.New(), CreatedAt: time.Now(), UserID: userID, Text: text})
		require.NoError(t, err)
		return m
	}

	t.Run("create message ok", func(t *testing.T) {
		withTx(t, func(r *MessageRepo) {
			userID := uuid.New()
			m, err := r.CreateMessage(t.Context(), models.Message{ID: uuid.New(), CreatedAt: time.Now(), UserID: &userID, Text: "hello there"})

			require.NoError(t, err)
			assert.Equal(t, "hello there", m.Text)
			assert.Equal(t, userID, *m.UserID)
			assert.Equal(t, int64(0), m.Likes, "new message should have zero likes")
			assert.WithinDuration(t, time.Now(), m.CreatedAt, time.Second)
		})
	})

	t.Run("create message without author ok", func(t *testing.T) {
		withTx(t, func(r *MessageRepo) {
			m := create(t, r, "anonymous note", nil)

			assert.Nil(t, m.UserID, "author association is optional")
		})
	})

	t.Run("add like increments", func(t *testing.T) {
		withTx(t, func(r *MessageRepo) {
			m := create(t, r, "like me please", nil)

			likes, err := r.AddLike(t.Context(), m.ID)
			require.NoError(t, err)
			assert.Equal(t, int64(1), likes)

			likes, err = r.AddLike(t.Context(), m.ID)
			require.NoError(t, err)
			assert.Equal(t, int64(2), likes)
		})
	})

	t.Run("add like unknown message fails", func(t *testing.T) {
		withTx(t, func(r *MessageRepo) {
			_, err := r.AddLike(t.Context(), uuid.New())

			assert.ErrorIs(t, err, apperrors.ErrMessageNotFound)
		})
	})

	t.Run("concurrent likes are not lost", func(t *testing.T) {
		// Runs on the pool directly: concurrency needs separate connections.
		// Writes are committed, so remove the row to keep the database clean
		// for the transaction scoped subtests below.
		r := &MessageRepo{DB: pg.Pool}
		m := create(t, r, "very popular post", nil)
		t.Cleanup(func() {
			_, err := pg.Pool.Exec(context.Background(), "DELETE FROM messages WHERE id = $1", m.ID)
			require.NoError(t, err)
		})

		const likers = 20

		var wg sync.WaitGroup
		for range likers {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, err := r.AddLike(t.Context(), m.ID)
				assert.NoError(t, err)
			}()
		}
		wg.Wait()

		likes, err := r.AddLike(t.Context(), m.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(likers+1), likes, "every concurrent like must be counted")
	})

	t.Run("list messages", func(t *testing.T) {
		withTx(t, func(r *MessageRepo) {
			first := create(t, r, "first message", nil)
			second := create(t, r, "second message", nil)
			third := create(t, r, "third message", nil)

			_, err := r.AddLike(t.Context(), second.ID)
			require.NoError(t, err)

			t.Run("newest first is default", func(t *testing.T) {
				messages, err := r.ListMessages(t.Context(), models.OrderNewestFirst)

				require.NoError(t, err)
				require.Len(t, messages, 3)
				assert.Equal(t, third.ID, messages[0].ID)
				assert.Equal(t, first.ID, messages[2].ID)
			})

			t.Run("oldest first", func(t *testing.T) {
				messages, err := r.ListMessages(t.Context(), models.OrderOldestFirst)

				require.NoError(t, err)
				require.Len(t, messages, 3)
				assert.Equal(t, first.ID, messages[0].ID)
				assert.Equal(t, third.ID, messages[2].ID)
			})

			t.Run("most liked first", func(t *testing.T) {
				messages, err := r.ListMessages(t.Context(), models.OrderMostLiked)

				require.NoError(t, err)
				require.Len(t, messages, 3)
				assert.Equal(t, second.ID, messages[0].ID, "liked message must come first")
			})

			t.Run("unknown order falls back to newest first", func(t *testing.T) {
				messages, err := r.ListMessages(t.Context(), models.MessageOrder("bogus"))

				require.NoError(t, err)
				require.Len(t, messages, 3)
				assert.Equal(t, third.ID, messages[0].ID)
			})
		})
	})

	t.Run("list is capped at 20", func(t *testing.T) {
		withTx(t, func(r *MessageRepo) {
			for range 25 {
				create(t, r, "one of too many messages", nil)
			}

			messages, err := r.ListMessages(t.Context(), models.OrderNewestFirst)

			require.NoError(t, err)
			assert.Len(t, messages, 20, "listing must be capped")
		})
	})

	t.Run("list message ids by user", func(t *testing.T) {
		withTx(t, func(r *MessageRepo) {
			userID := uuid.New()
			otherID := uuid.New()

			first := create(t, r, "authored first", &userID)
			create(t, r, "someone else post", &otherID)
			second := create(t, r, "authored second", &userID)

			ids, err := r.ListMessageIDsByUser(t.Context(), userID)

			require.NoError(t, err)
			assert.Equal(t, []uuid.UUID{first.ID, second.ID}, ids, "ids should be ordered oldest first")
		})
	})
}
