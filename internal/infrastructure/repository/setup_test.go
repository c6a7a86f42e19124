package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	ticketvo "github.com/ticketdesk/ticketdesk/internal/domain/ticket/valueobjects"
	"github.com/ticketdesk/ticketdesk/internal/domain/user"
	uservo "github.com/ticketdesk/ticketdesk/internal/domain/user/valueobjects"
	"github.com/ticketdesk/ticketdesk/internal/infrastructure/database/dbtest"
	"github.com/ticketdesk/ticketdesk/internal/infrastructure/persistence/models"
)

var baseTime = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

func setupTestDB(t *testing.T) *gorm.DB {
	return dbtest.Open(t)
}

func createUser(t *testing.T, repo user.Repository, email string, role uservo.Role, active bool) *user.User {
	t.Helper()
	u, err := user.NewUser(email, "First", "Last", "IT", role)
	require.NoError(t, err)
	if !active {
		u.Deactivate()
	}
	require.NoError(t, repo.Create(context.Background(), u))
	return u
}

func createTicket(t *testing.T, gdb *gorm.DB, creatorID uint, assigneeID *uint) *models.TicketModel {
	t.Helper()
	m := &models.TicketModel{
		Title:        "VPN down",
		Description:  "cannot connect",
		Status:       ticketvo.StatusOpen.String(),
		Priority:     ticketvo.PriorityHigh.String(),
		Category:     ticketvo.CategoryNetwork.String(),
		CreatedByID:  creatorID,
		AssignedToID: assigneeID,
		CreatedAt:    baseTime,
		UpdatedAt:    baseTime,
	}
	require.NoError(t, gdb.Create(m).Error)
	return m
}
