package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ticketdesk/ticketdesk/internal/application/user/dto"
	"github.com/ticketdesk/ticketdesk/internal/shared/errors"
	"github.com/ticketdesk/ticketdesk/internal/shared/logger"
	"github.com/ticketdesk/ticketdesk/internal/shared/utils"
)

type UserHandler struct {
	service userService
	logger  logger.Interface
}

func NewUserHandler(service userService, logger logger.Interface) *UserHandler {
	return &UserHandler{
		service: service,
		logger:  logger,
	}
}

// GetMe
// GET /users/me
func (h *UserHandler) GetMe(c *gin.Context) {
	user, err := h.service.GetUserByEmail(c.Request.Context(), utils.GetUserEmail(c))
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "", user)
}

// CreateUser mirrors a directory account locally.
// POST /admin/users
func (h *UserHandler) CreateUser(c *gin.Context) {
	var req dto.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for create user", "error", err)
		utils.ErrorResponseWithError(c, errors.NewValidationError("invalid request body", err.Error()))
		return
	}

	user, err := h.service.CreateUser(c.Request.Context(), req)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusCreated, "user created", user)
}

// AssignManager sets or clears (manager_id: null) a user's manager.
// PATCH /admin/users/:id/manager
func (h *UserHandler) AssignManager(c *gin.Context) {
	userID, err := utils.ParseUintParam(c, "id", "user")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req dto.AssignManagerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponseWithError(c, errors.NewValidationError("invalid request body", err.Error()))
		return
	}

	user, err := h.service.AssignManager(c.Request.Context(), userID, req.ManagerID)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "manager updated", user)
}

// ListClients
// GET /admin/users/:id/clients
func (h *UserHandler) ListClients(c *gin.Context) {
	managerID, err := utils.ParseUintParam(c, "id", "user")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	clients, err := h.service.ListClients(c.Request.Context(), managerID)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "", clients)
}
