package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ticketdesk/ticketdesk/internal/shared/logger"
	"github.com/ticketdesk/ticketdesk/internal/shared/utils"
)

type TicketMessageHandler struct {
	messages messageLister
	logger   logger.Interface
}

func NewTicketMessageHandler(messages messageLister, logger logger.Interface) *TicketMessageHandler {
	return &TicketMessageHandler{
		messages: messages,
		logger:   logger,
	}
}

// ListMessages returns a ticket's chat history in send order.
// GET /tickets/:id/messages
func (h *TicketMessageHandler) ListMessages(c *gin.Context) {
	ticketID, err := utils.ParseUintParam(c, "id", "ticket")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	messages, err := h.messages.ListMessages(c.Request.Context(), ticketID)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", messages)
}

// ListAttachments returns the file metadata attached to the ticket itself.
// GET /tickets/:id/attachments
func (h *TicketMessageHandler) ListAttachments(c *gin.Context) {
	ticketID, err := utils.ParseUintParam(c, "id", "ticket")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	attachments, err := h.messages.ListTicketAttachments(c.Request.Context(), ticketID)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", attachments)
}
