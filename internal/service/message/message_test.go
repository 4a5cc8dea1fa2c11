package message

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nkiryanov/guestbook/internal/apperrors"
	"github.com/nkiryanov/guestbook/internal/models"
)

// In memory MessageRepo, records the order listing was requested with
type fakeMessageRepo struct {
	messages  []models.Message
	lastOrder models.MessageOrder
}

func (r *fakeMessageRepo) CreateMessage(_ context.Context, m models.Message) (models.Message, error) {
	r.messages = append(r.messages, m)
	return m, nil
}

func (r *fakeMessageRepo) AddLike(_ context.Context, messageID uuid.UUID) (int64, error) {
	for i := range r.messages {
		if r.messages[i].ID == messageID {
			r.messages[i].Likes++
			return r.messages[i].Likes, nil
		}
	}
	return 0, apperrors.ErrMessageNotFound
}

func (r *fakeMessageRepo) ListMessages(_ context.Context, order models.MessageOrder) ([]models.Message, error) {
	r.lastOrder = order
	return r.messages, nil
}

func (r *fakeMessageRepo) ListMessageIDsByUser(_ context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	ids := []uuid.UUID{}
	for _, m := range r.messages {
		if m.UserID != nil && *m.UserID == userID {
			ids = append(ids, m.ID)
		}
	}
	return ids, nil
}

func TestService_Create(t *testing.T) {
	t.Run("create ok", func(t *testing.T) {
		s := NewService(&fakeMessageRepo{})
		authorID := uuid.New()

		m, err := s.Create(t.Context(), "hello guestbook", &authorID)

		require.NoError(t, err)
		assert.Equal(t, "hello guestbook", m.Text)
		assert.Equal(t, authorID, *m.UserID)
		assert.NotEqual(t, uuid.Nil, m.ID)
		assert.False(t, m.CreatedAt.IsZero(), "creation time must be set")
	})

	t.Run("text length boundaries", func(t *testing.T) {
		tests := []struct {
			name    string
			text    string
			wantErr bool
		}{
			{"too short", strings.Repeat("a", 4), true},
			{"min length", strings.Repeat("a", 5), false},
			{"max length", strings.Repeat("a", 140), false},
			{"too long", strings.Repeat("a", 141), true},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				s := NewService(&fakeMessageRepo{})

				_, err := s.Create(t.Context(), tt.text, nil)

				if tt.wantErr {
					var verr *apperrors.ValidationError
					require.ErrorAs(t, err, &verr)
					assert.Contains(t, verr.Fields, "message")
					return
				}
				require.NoError(t, err)
			})
		}
	})
}

func TestService_Like(t *testing.T) {
	t.Run("like existing message ok", func(t *testing.T) {
		repo := &fakeMessageRepo{}
		s := NewService(repo)

		m, err := s.Create(t.Context(), "like me please", nil)
		require.NoError(t, err)

		require.NoError(t, s.Like(t.Context(), m.ID))
		assert.Equal(t, int64(1), repo.messages[0].Likes)
	})

	t.Run("like unknown message fails", func(t *testing.T) {
		s := NewService(&fakeMessageRepo{})

		err := s.Like(t.Context(), uuid.New())

		assert.ErrorIs(t, err, apperrors.ErrMessageNotFound)
	})
}

func TestService_List(t *testing.T) {
	tests := []struct {
		sortKey  string
		expected models.MessageOrder
	}{
		{"dates", models.OrderOldestFirst},
		{"likes", models.OrderMostLiked},
		{"", models.OrderNewestFirst},
		{"bogus", models.OrderNewestFirst},
	}

	for _, tt := range tests {
		name := tt.sortKey
		if name == "" {
			name = "absent"
		}
		t.Run(name, func(t *testing.T) {
			repo := &fakeMessageRepo{}
			s := NewService(repo)

			_, err := s.List(t.Context(), tt.sortKey)

			require.NoError(t, err)
			assert.Equal(t, tt.expected, repo.lastOrder)
		})
	}
}

func TestService_AuthoredIDs(t *testing.T) {
	repo := &fakeMessageRepo{}
	s := NewService(repo)
	authorID := uuid.New()

	first, err := s.Create(t.Context(), "first message", &authorID)
	require.NoError(t, err)
	_, err = s.Create(t.Context(), "anonymous one", nil)
	require.NoError(t, err)

	ids, err := s.AuthoredIDs(t.Context(), authorID)

	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{first.ID}, ids)
}
