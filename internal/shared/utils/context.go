package utils

import (
	"github.com/gin-gonic/gin"

	uservo "github.com/ticketdesk/ticketdesk/internal/domain/user/valueobjects"
	"github.com/ticketdesk/ticketdesk/internal/shared/constants"
	"github.com/ticketdesk/ticketdesk/internal/shared/errors"
)

// GetUserID returns the authenticated user id set by the auth middleware.
func GetUserID(c *gin.Context) (uint, error) {
	v, exists := c.Get(constants.ContextKeyUserID)
	if !exists {
		return 0, errors.NewUnauthorizedError("user not authenticated")
	}
	id, ok := v.(uint)
	if !ok || id == 0 {
		return 0, errors.NewUnauthorizedError("user not authenticated")
	}
	return id, nil
}

func GetUserEmail(c *gin.Context) string {
	return c.GetString(constants.ContextKeyUserEmail)
}

func GetUserRole(c *gin.Context) uservo.Role {
	return uservo.Role(c.GetString(constants.ContextKeyUserRole))
}
