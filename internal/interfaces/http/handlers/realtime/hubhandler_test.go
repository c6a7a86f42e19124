package realtime

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ticketdesk/ticketdesk/internal/application/connection"
	uservo "github.com/ticketdesk/ticketdesk/internal/domain/user/valueobjects"
	"github.com/ticketdesk/ticketdesk/internal/infrastructure/hub"
	"github.com/ticketdesk/ticketdesk/internal/shared/config"
	"github.com/ticketdesk/ticketdesk/internal/shared/constants"
	"github.com/ticketdesk/ticketdesk/internal/shared/logger"
)

func testHubConfig() config.HubConfig {
	return config.HubConfig{
		SendBuffer:     16,
		WriteWait:      time.Second,
		PongWait:       5 * time.Second,
		PingPeriod:     time.Second,
		MaxMessageSize: 4096,
		CommandTimeout: time.Second,
	}
}

// fakeAuth stands in for the auth middleware.
func fakeAuth(userID uint, email string, role uservo.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(constants.ContextKeyUserID, userID)
		c.Set(constants.ContextKeyUserEmail, email)
		c.Set(constants.ContextKeyUserRole, role.String())
		c.Next()
	}
}

func startServer(t *testing.T, router *hub.Router, chat ChatCommands) (*httptest.Server, *connection.LifecycleManager) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	log := logger.NewNopLogger()

	lifecycle := connection.NewLifecycleManager(router, true, log)
	dispatcher := NewCommandDispatcher(chat, &mockUserGroups{}, time.Second, log)
	handler := NewHubHandler(lifecycle, dispatcher, testHubConfig(), []string{"https://desk.example.com"}, log)

	engine := gin.New()
	engine.GET("/ws", fakeAuth(3, "carol@x.com", uservo.RoleUser), handler.Connect)
	srv := httptest.NewServer(engine)
	t.Cleanup(srv.Close)
	return srv, lifecycle
}

func wsURL(srv *httptest.Server) string {
	return "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
}

func TestHubHandler_ReceivesGroupBroadcasts(t *testing.T) {
	router := hub.NewRouter(logger.NewNopLogger(), nil)
	joined := make(chan struct{}, 1)
	chat := &mockChat{
		JoinTicketFunc: func(_ context.Context, conn *hub.Conn, ticketID uint) {
			router.Join(hub.TicketGroup(ticketID), conn)
			joined <- struct{}{}
		},
	}
	srv, lifecycle := startServer(t, router, chat)

	client, _, err := websocket.DefaultDialer.Dial(wsURL(srv), nil)
	require.NoError(t, err)
	defer client.Close()

	require.Eventually(t, func() bool { return lifecycle.ActiveConnections() == 1 }, 2*time.Second, 10*time.Millisecond)

	require.NoError(t, client.WriteMessage(websocket.TextMessage,
		[]byte(`{"type":"JoinTicketGroup","data":{"ticketId":42,"userEmail":"carol@x.com"}}`)))
	select {
	case <-joined:
	case <-time.After(2 * time.Second):
		t.Fatal("join command not dispatched")
	}

	n := router.Broadcast(context.Background(), hub.TicketGroup(42), "ReceiveMessage", map[string]any{"message": "hello"})
	assert.Equal(t, 1, n)

	require.NoError(t, client.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, frame, err := client.ReadMessage()
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"ReceiveMessage","data":{"message":"hello"}}`, string(frame))
}

func TestHubHandler_DisconnectSweepsMembership(t *testing.T) {
	router := hub.NewRouter(logger.NewNopLogger(), nil)
	joined := make(chan struct{}, 1)
	chat := &mockChat{
		JoinTicketFunc: func(_ context.Context, conn *hub.Conn, ticketID uint) {
			router.Join(hub.TicketGroup(ticketID), conn)
			joined <- struct{}{}
		},
	}
	srv, lifecycle := startServer(t, router, chat)

	client, _, err := websocket.DefaultDialer.Dial(wsURL(srv), nil)
	require.NoError(t, err)
	require.NoError(t, client.WriteMessage(websocket.TextMessage,
		[]byte(`{"type":"JoinTicketGroup","data":{"ticketId":9}}`)))
	<-joined
	require.Len(t, router.Members(hub.TicketGroup(9)), 1)

	require.NoError(t, client.WriteMessage(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")))
	client.Close()

	require.Eventually(t, func() bool {
		return lifecycle.ActiveConnections() == 0 && len(router.Members(hub.TicketGroup(9))) == 0
	}, 2*time.Second, 10*time.Millisecond)
}

func TestHubHandler_RejectsForeignOrigin(t *testing.T) {
	router := hub.NewRouter(logger.NewNopLogger(), nil)
	srv, lifecycle := startServer(t, router, &mockChat{})

	header := http.Header{}
	header.Set("Origin", "https://evil.example.com")
	_, resp, err := websocket.DefaultDialer.Dial(wsURL(srv), header)
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Zero(t, lifecycle.ActiveConnections())

	header.Set("Origin", "https://desk.example.com")
	client, _, err := websocket.DefaultDialer.Dial(wsURL(srv), header)
	require.NoError(t, err)
	client.Close()
}

func TestHubHandler_RequiresIdentity(t *testing.T) {
	gin.SetMode(gin.TestMode)
	log := logger.NewNopLogger()
	router := hub.NewRouter(log, nil)
	handler := NewHubHandler(
		connection.NewLifecycleManager(router, true, log),
		NewCommandDispatcher(&mockChat{}, &mockUserGroups{}, time.Second, log),
		testHubConfig(), nil, log,
	)

	engine := gin.New()
	engine.GET("/ws", handler.Connect)
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ws", nil))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
