package utils

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	uservo "github.com/ticketdesk/ticketdesk/internal/domain/user/valueobjects"
	"github.com/ticketdesk/ticketdesk/internal/shared/constants"
	"github.com/ticketdesk/ticketdesk/internal/shared/errors"
)

func TestContextIdentity(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())

	_, err := GetUserID(c)
	assert.True(t, errors.IsAppError(err))
	assert.Equal(t, errors.ErrorTypeUnauthorized, errors.TypeOf(err))

	c.Set(constants.ContextKeyUserID, uint(7))
	c.Set(constants.ContextKeyUserEmail, "alice@x.com")
	c.Set(constants.ContextKeyUserRole, uservo.RoleHelpDesk.String())

	id, err := GetUserID(c)
	require.NoError(t, err)
	assert.Equal(t, uint(7), id)
	assert.Equal(t, "alice@x.com", GetUserEmail(c))
	assert.Equal(t, uservo.RoleHelpDesk, GetUserRole(c))
}
