package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ticketdesk/ticketdesk/internal/domain/notification"
	notifvo "github.com/ticketdesk/ticketdesk/internal/domain/notification/valueobjects"
	uservo "github.com/ticketdesk/ticketdesk/internal/domain/user/valueobjects"
)

func newNotification(t *testing.T, userID uint, title string, createdAt time.Time, ticketID, sentBy *uint) *notification.Notification {
	t.Helper()
	n, err := notification.NewNotification(userID, title, "body", notifvo.TypeNewMessage, ticketID, sentBy, createdAt)
	require.NoError(t, err)
	return n
}

func TestNotificationRepository_ListByUser(t *testing.T) {
	gdb := setupTestDB(t)
	users := NewUserRepository(gdb)
	repo := NewNotificationRepository(gdb)
	ctx := context.Background()

	alice := createUser(t, users, "alice@x.com", uservo.RoleClient, true)
	carol := createUser(t, users, "carol@x.com", uservo.RoleUser, true)
	tk := createTicket(t, gdb, alice.ID(), nil)
	carolID := carol.ID()

	older := newNotification(t, alice.ID(), "older", baseTime, &tk.ID, &carolID)
	newer := newNotification(t, alice.ID(), "newer", baseTime.Add(time.Hour), nil, nil)
	other := newNotification(t, carol.ID(), "not mine", baseTime, nil, nil)
	for _, n := range []*notification.Notification{older, newer, other} {
		require.NoError(t, repo.Create(ctx, n))
	}

	list, err := repo.ListByUser(ctx, alice.ID(), false)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "newer", list[0].Title())
	assert.Equal(t, "older", list[1].Title())

	require.NotNil(t, list[1].SentBy())
	assert.Equal(t, "carol@x.com", list[1].SentBy().Email)
	require.NotNil(t, list[1].RelatedTicket())
	assert.Equal(t, "VPN down", list[1].RelatedTicket().Title)
	assert.Nil(t, list[0].SentBy())

	_, err = repo.MarkRead(ctx, newer.ID(), alice.ID(), baseTime)
	require.NoError(t, err)

	unread, err := repo.ListByUser(ctx, alice.ID(), true)
	require.NoError(t, err)
	require.Len(t, unread, 1)
	assert.Equal(t, older.ID(), unread[0].ID())
}

func TestNotificationRepository_MarkReadOwnership(t *testing.T) {
	gdb := setupTestDB(t)
	users := NewUserRepository(gdb)
	repo := NewNotificationRepository(gdb)
	ctx := context.Background()

	alice := createUser(t, users, "alice@x.com", uservo.RoleClient, true)
	bob := createUser(t, users, "bob@x.com", uservo.RoleHelpDesk, true)

	n := newNotification(t, alice.ID(), "for alice", baseTime, nil, nil)
	require.NoError(t, repo.Create(ctx, n))

	rows, err := repo.MarkRead(ctx, n.ID(), bob.ID(), baseTime.Add(time.Minute))
	require.NoError(t, err)
	assert.Equal(t, int64(0), rows)

	unread, err := repo.CountUnread(ctx, alice.ID())
	require.NoError(t, err)
	assert.Equal(t, int64(1), unread)

	readAt := baseTime.Add(2 * time.Minute)
	rows, err = repo.MarkRead(ctx, n.ID(), alice.ID(), readAt)
	require.NoError(t, err)
	assert.Equal(t, int64(1), rows)

	// already read
	rows, err = repo.MarkRead(ctx, n.ID(), alice.ID(), readAt.Add(time.Minute))
	require.NoError(t, err)
	assert.Equal(t, int64(0), rows)

	list, err := repo.ListByUser(ctx, alice.ID(), false)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.True(t, list[0].IsRead())
	require.NotNil(t, list[0].ReadAt())
	assert.True(t, list[0].ReadAt().Equal(readAt))
}

func TestNotificationRepository_MarkAllReadIdempotent(t *testing.T) {
	gdb := setupTestDB(t)
	users := NewUserRepository(gdb)
	repo := NewNotificationRepository(gdb)
	ctx := context.Background()

	alice := createUser(t, users, "alice@x.com", uservo.RoleClient, true)
	bob := createUser(t, users, "bob@x.com", uservo.RoleHelpDesk, true)

	for i := 0; i < 3; i++ {
		require.NoError(t, repo.Create(ctx, newNotification(t, alice.ID(), "a", baseTime.Add(time.Duration(i)*time.Second), nil, nil)))
	}
	require.NoError(t, repo.Create(ctx, newNotification(t, bob.ID(), "b", baseTime, nil, nil)))

	rows, err := repo.MarkAllRead(ctx, alice.ID(), baseTime.Add(time.Hour))
	require.NoError(t, err)
	assert.Equal(t, int64(3), rows)

	rows, err = repo.MarkAllRead(ctx, alice.ID(), baseTime.Add(2*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, int64(0), rows)

	unread, err := repo.CountUnread(ctx, alice.ID())
	require.NoError(t, err)
	assert.Zero(t, unread)

	bobUnread, err := repo.CountUnread(ctx, bob.ID())
	require.NoError(t, err)
	assert.Equal(t, int64(1), bobUnread)
}
