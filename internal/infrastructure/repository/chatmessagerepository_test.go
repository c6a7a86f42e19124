package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ticketdesk/ticketdesk/internal/domain/chat"
	uservo "github.com/ticketdesk/ticketdesk/internal/domain/user/valueobjects"
	"github.com/ticketdesk/ticketdesk/internal/infrastructure/persistence/models"
)

func TestChatMessageRepository_CreateAndList(t *testing.T) {
	gdb := setupTestDB(t)
	users := NewUserRepository(gdb)
	repo := NewChatMessageRepository(gdb)
	ctx := context.Background()

	alice := createUser(t, users, "alice@x.com", uservo.RoleClient, true)
	carol := createUser(t, users, "carol@x.com", uservo.RoleUser, true)
	tk := createTicket(t, gdb, alice.ID(), nil)

	second, err := chat.NewMessage(tk.ID, carol.ID(), "second", baseTime.Add(2*time.Minute))
	require.NoError(t, err)
	att, err := chat.NewAttachment("screen.png", "uploads/screen.png", "image/png", 2048, baseTime.Add(2*time.Minute))
	require.NoError(t, err)
	second.Attach(att)
	require.NoError(t, repo.Create(ctx, second))

	first, err := chat.NewMessage(tk.ID, alice.ID(), "first", baseTime.Add(time.Minute))
	require.NoError(t, err)
	require.NoError(t, repo.Create(ctx, first))

	assert.NotZero(t, second.ID())
	assert.NotZero(t, att.ID)
	assert.Equal(t, second.ID(), att.OwnerID)

	list, err := repo.ListByTicket(ctx, tk.ID)
	require.NoError(t, err)
	require.Len(t, list, 2)

	assert.Equal(t, "first", list[0].Body())
	assert.Equal(t, "second", list[1].Body())
	require.NotNil(t, list[1].Sender())
	assert.Equal(t, "carol@x.com", list[1].Sender().Email)
	assert.Equal(t, "First Last", list[1].Sender().DisplayName)
	require.Len(t, list[1].Attachments(), 1)
	assert.Equal(t, "screen.png", list[1].Attachments()[0].FileName)
	assert.False(t, list[0].IsSystemMessage())
}

func TestChatMessageRepository_CascadeWithTicket(t *testing.T) {
	gdb := setupTestDB(t)
	users := NewUserRepository(gdb)
	repo := NewChatMessageRepository(gdb)
	ctx := context.Background()

	alice := createUser(t, users, "alice@x.com", uservo.RoleClient, true)
	tk := createTicket(t, gdb, alice.ID(), nil)

	msg, err := chat.NewMessage(tk.ID, alice.ID(), "hello", baseTime)
	require.NoError(t, err)
	require.NoError(t, repo.Create(ctx, msg))

	require.NoError(t, gdb.Delete(&models.TicketModel{}, tk.ID).Error)

	var count int64
	require.NoError(t, gdb.Model(&models.ChatMessageModel{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestTicketAttachmentRepository(t *testing.T) {
	gdb := setupTestDB(t)
	users := NewUserRepository(gdb)
	repo := NewTicketAttachmentRepository(gdb)
	ctx := context.Background()

	alice := createUser(t, users, "alice@x.com", uservo.RoleClient, true)
	tk := createTicket(t, gdb, alice.ID(), nil)

	a, err := chat.NewAttachment("log.txt", "uploads/log.txt", "text/plain", 10, baseTime)
	require.NoError(t, err)
	require.NoError(t, repo.Create(ctx, tk.ID, a))
	assert.NotZero(t, a.ID)

	list, err := repo.ListByTicket(ctx, tk.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, int64(10), list[0].FileSize)
}
