package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	uservo "github.com/ticketdesk/ticketdesk/internal/domain/user/valueobjects"
	apperrors "github.com/ticketdesk/ticketdesk/internal/shared/errors"
)

func TestTicketRepository_GetByID(t *testing.T) {
	gdb := setupTestDB(t)
	users := NewUserRepository(gdb)
	repo := NewTicketRepository(gdb)
	ctx := context.Background()

	alice := createUser(t, users, "alice@x.com", uservo.RoleClient, true)
	bob := createUser(t, users, "bob@x.com", uservo.RoleHelpDesk, true)
	bobID := bob.ID()
	m := createTicket(t, gdb, alice.ID(), &bobID)

	got, err := repo.GetByID(ctx, m.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, alice.ID(), got.CreatedByID())
	require.NotNil(t, got.AssignedToID())
	assert.Equal(t, bob.ID(), *got.AssignedToID())
	assert.True(t, got.UpdatedAt().Equal(baseTime))

	missing, err := repo.GetByID(ctx, 999)
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestTicketRepository_TouchUpdatedAt(t *testing.T) {
	gdb := setupTestDB(t)
	users := NewUserRepository(gdb)
	repo := NewTicketRepository(gdb)
	ctx := context.Background()

	alice := createUser(t, users, "alice@x.com", uservo.RoleClient, true)
	m := createTicket(t, gdb, alice.ID(), nil)

	later := baseTime.Add(90 * time.Second)
	require.NoError(t, repo.TouchUpdatedAt(ctx, m.ID, later))

	got, err := repo.GetByID(ctx, m.ID)
	require.NoError(t, err)
	assert.True(t, got.UpdatedAt().Equal(later))

	// an older write landing late never moves the timestamp back
	require.NoError(t, repo.TouchUpdatedAt(ctx, m.ID, baseTime.Add(30*time.Second)))
	got, err = repo.GetByID(ctx, m.ID)
	require.NoError(t, err)
	assert.True(t, got.UpdatedAt().Equal(later))

	err = repo.TouchUpdatedAt(ctx, 999, later)
	assert.True(t, apperrors.IsNotFoundError(err))
}
