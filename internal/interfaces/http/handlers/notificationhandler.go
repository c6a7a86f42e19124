package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/ticketdesk/ticketdesk/internal/application/notification/dto"
	vo "github.com/ticketdesk/ticketdesk/internal/domain/notification/valueobjects"
	uservo "github.com/ticketdesk/ticketdesk/internal/domain/user/valueobjects"
	"github.com/ticketdesk/ticketdesk/internal/shared/errors"
	"github.com/ticketdesk/ticketdesk/internal/shared/logger"
	"github.com/ticketdesk/ticketdesk/internal/shared/utils"
)

type NotificationHandler struct {
	service notificationService
	logger  logger.Interface
}

func NewNotificationHandler(service notificationService, logger logger.Interface) *NotificationHandler {
	return &NotificationHandler{
		service: service,
		logger:  logger,
	}
}

// ListNotifications returns the caller's notifications, newest first.
// GET /notifications?unread_only=true
func (h *NotificationHandler) ListNotifications(c *gin.Context) {
	userID, err := utils.GetUserID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	unreadOnly := false
	if raw := c.Query("unread_only"); raw != "" {
		unreadOnly, err = strconv.ParseBool(raw)
		if err != nil {
			utils.ErrorResponseWithError(c, errors.NewValidationError("unread_only must be a boolean"))
			return
		}
	}

	result, err := h.service.ListNotifications(c.Request.Context(), userID, unreadOnly)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// MarkRead flags one of the caller's notifications as read. Ids owned by
// someone else are left untouched.
// PATCH /notifications/:id/read
func (h *NotificationHandler) MarkRead(c *gin.Context) {
	userID, err := utils.GetUserID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	id, err := utils.ParseUintParam(c, "id", "notification")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	if err := h.service.MarkRead(c.Request.Context(), id, userID); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "notification marked as read", nil)
}

// MarkAllRead
// PATCH /notifications/read-all
func (h *NotificationHandler) MarkAllRead(c *gin.Context) {
	userID, err := utils.GetUserID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	n, err := h.service.MarkAllRead(c.Request.Context(), userID)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "notifications marked as read", dto.MarkAllReadResponse{Updated: n})
}

// Broadcast notifies every active user, or only those with the given role.
// POST /admin/notifications/broadcast
func (h *NotificationHandler) Broadcast(c *gin.Context) {
	senderID, err := utils.GetUserID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req dto.BroadcastRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for broadcast", "error", err)
		utils.ErrorResponseWithError(c, errors.NewValidationError("invalid request body", err.Error()))
		return
	}

	notificationType := vo.TypeAdminMessage
	if req.Type != "" {
		notificationType, err = vo.ParseNotificationType(req.Type)
		if err != nil {
			utils.ErrorResponseWithError(c, errors.NewValidationError("invalid notification type", req.Type))
			return
		}
	}

	ctx := c.Request.Context()
	var notified int
	if req.Role == "" {
		notified = h.service.NotifyAll(ctx, req.Title, req.Message, notificationType, &senderID)
	} else {
		role, err := uservo.NewRole(req.Role)
		if err != nil {
			utils.ErrorResponseWithError(c, errors.NewValidationError("invalid role", req.Role))
			return
		}
		notified = h.service.NotifyRole(ctx, role, req.Title, req.Message, notificationType, &senderID)
	}

	h.logger.Infow("broadcast sent",
		"sent_by", senderID,
		"role", req.Role,
		"type", notificationType,
		"notified", notified,
	)
	utils.SuccessResponse(c, http.StatusOK, "broadcast sent", dto.BroadcastResponse{Notified: notified})
}
