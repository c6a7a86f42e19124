// Package realtime serves the websocket endpoint that carries chat and
// notification traffic.
package realtime

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/ticketdesk/ticketdesk/internal/infrastructure/hub"
	"github.com/ticketdesk/ticketdesk/internal/interfaces/http/middleware"
	"github.com/ticketdesk/ticketdesk/internal/shared/config"
	"github.com/ticketdesk/ticketdesk/internal/shared/logger"
	"github.com/ticketdesk/ticketdesk/internal/shared/utils"
)

// Lifecycle is told about every accepted and finished connection.
type Lifecycle interface {
	Connected(c *hub.Conn)
	Disconnected(c *hub.Conn)
}

type HubHandler struct {
	upgrader   websocket.Upgrader
	lifecycle  Lifecycle
	dispatcher *CommandDispatcher
	cfg        config.HubConfig
	logger     logger.Interface
}

func NewHubHandler(
	lifecycle Lifecycle,
	dispatcher *CommandDispatcher,
	cfg config.HubConfig,
	allowedOrigins []string,
	log logger.Interface,
) *HubHandler {
	return &HubHandler{
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				return origin == "" || middleware.OriginAllowed(origin, allowedOrigins)
			},
		},
		lifecycle:  lifecycle,
		dispatcher: dispatcher,
		cfg:        cfg,
		logger:     log,
	}
}

// Connect upgrades an authenticated request to a websocket.
// GET /ws
func (h *HubHandler) Connect(c *gin.Context) {
	userID, err := utils.GetUserID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	identity := hub.Identity{
		UserID: userID,
		Email:  utils.GetUserEmail(c),
		Role:   utils.GetUserRole(c),
	}

	ws, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Warnw("failed to upgrade to websocket",
			"error", err,
			"user_id", userID,
			"ip", c.ClientIP(),
		)
		return
	}

	conn := hub.NewConn(identity, h.cfg.SendBuffer)
	h.lifecycle.Connected(conn)

	h.logger.Infow("websocket connected",
		"conn_id", conn.ID(),
		"user_id", userID,
		"ip", c.ClientIP(),
	)

	go h.writePump(conn, ws)
	h.readPump(conn, ws)
}

func (h *HubHandler) readPump(conn *hub.Conn, ws *websocket.Conn) {
	defer func() {
		h.lifecycle.Disconnected(conn)
		ws.Close()
	}()

	ws.SetReadLimit(h.cfg.MaxMessageSize)
	ws.SetReadDeadline(time.Now().Add(h.cfg.PongWait))
	ws.SetPongHandler(func(string) error {
		ws.SetReadDeadline(time.Now().Add(h.cfg.PongWait))
		return nil
	})

	for {
		_, message, err := ws.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure, websocket.CloseNoStatusReceived) {
				h.logger.Warnw("websocket read error",
					"error", err,
					"conn_id", conn.ID(),
				)
			}
			return
		}
		h.dispatcher.Dispatch(conn, message)
	}
}

// writePump is the only writer on ws. It exits when the handle's queue is
// closed or a write fails.
func (h *HubHandler) writePump(conn *hub.Conn, ws *websocket.Conn) {
	ticker := time.NewTicker(h.cfg.PingPeriod)
	defer func() {
		ticker.Stop()
		ws.Close()
	}()

	send := conn.Send()
	for {
		select {
		case frame, ok := <-send:
			ws.SetWriteDeadline(time.Now().Add(h.cfg.WriteWait))
			if !ok {
				ws.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
				return
			}
			if err := ws.WriteMessage(websocket.TextMessage, frame); err != nil {
				h.logger.Warnw("failed to write to websocket",
					"error", err,
					"conn_id", conn.ID(),
				)
				return
			}

		case <-ticker.C:
			ws.SetWriteDeadline(time.Now().Add(h.cfg.WriteWait))
			if err := ws.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
