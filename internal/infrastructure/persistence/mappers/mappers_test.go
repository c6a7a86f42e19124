package mappers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ticketdesk/ticketdesk/internal/infrastructure/persistence/models"
)

func TestNotificationToEntity_UnknownType(t *testing.T) {
	_, err := NotificationToEntity(&models.NotificationModel{ID: 1, UserID: 1, Type: "Urgent"})
	assert.Error(t, err)
}

func TestNotificationToEntity_References(t *testing.T) {
	ticketID := uint(42)
	carolID := uint(3)
	m := &models.NotificationModel{
		ID:              9,
		UserID:          1,
		Title:           "New message",
		Message:         "New message on ticket #42: VPN",
		Type:            "NewMessage",
		CreatedAt:       time.Now().UTC(),
		RelatedTicketID: &ticketID,
		RelatedTicket:   &models.TicketModel{ID: 42, Title: "VPN"},
		SentByUserID:    &carolID,
		SentBy:          &models.UserModel{ID: 3, Email: "carol@x.com", FirstName: "Carol", LastName: "Diaz", Role: "User"},
	}

	n, err := NotificationToEntity(m)
	require.NoError(t, err)
	assert.Equal(t, "NewMessage", n.Type().String())
	require.NotNil(t, n.SentBy())
	assert.Equal(t, "Carol Diaz", n.SentBy().DisplayName)
	require.NotNil(t, n.RelatedTicket())
	assert.Equal(t, "VPN", n.RelatedTicket().Title)

	back := NotificationToModel(n)
	assert.Equal(t, m.Type, back.Type)
	assert.Equal(t, m.RelatedTicketID, back.RelatedTicketID)
}

func TestDisplayName_FallsBackToEmail(t *testing.T) {
	assert.Equal(t, "svc@x.com", displayName(&models.UserModel{ID: 1, Email: "svc@x.com", Role: "User"}))
	assert.Equal(t, "Bob", displayName(&models.UserModel{ID: 2, Email: "b@x.com", FirstName: "Bob", Role: "User"}))
}
