package http

import (
	"context"
	"encoding/json"
	"fmt"
	nethttp "net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ticketvo "github.com/ticketdesk/ticketdesk/internal/domain/ticket/valueobjects"
	"github.com/ticketdesk/ticketdesk/internal/domain/user"
	uservo "github.com/ticketdesk/ticketdesk/internal/domain/user/valueobjects"
	"github.com/ticketdesk/ticketdesk/internal/infrastructure/config"
	"github.com/ticketdesk/ticketdesk/internal/infrastructure/database/dbtest"
	"github.com/ticketdesk/ticketdesk/internal/infrastructure/hub"
	"github.com/ticketdesk/ticketdesk/internal/infrastructure/persistence/models"
	sharedConfig "github.com/ticketdesk/ticketdesk/internal/shared/config"
	"github.com/ticketdesk/ticketdesk/internal/shared/logger"
)

func testConfig() *config.Config {
	return &config.Config{
		Server: sharedConfig.ServerConfig{
			AllowedOrigins:  []string{"*"},
			ShutdownTimeout: time.Second,
		},
		Database: sharedConfig.DatabaseConfig{Driver: "sqlite"},
		Auth: sharedConfig.AuthConfig{
			JWT: sharedConfig.JWTConfig{Secret: "test-secret", Issuer: "ticketdesk"},
		},
		Hub: sharedConfig.HubConfig{
			SendBuffer:        16,
			WriteWait:         time.Second,
			PongWait:          5 * time.Second,
			PingPeriod:        time.Second,
			MaxMessageSize:    4096,
			CommandTimeout:    2 * time.Second,
			EvictOnDisconnect: true,
		},
	}
}

type testApp struct {
	router *Router
	server *httptest.Server
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()
	gin.SetMode(gin.TestMode)

	r := NewRouter(dbtest.Open(t), testConfig(), nil, logger.NewNopLogger())
	r.SetupRoutes()
	srv := httptest.NewServer(r.GetEngine())
	t.Cleanup(func() {
		r.Shutdown()
		srv.Close()
	})
	return &testApp{router: r, server: srv}
}

func (a *testApp) createUser(t *testing.T, email, first string, role uservo.Role) *user.User {
	t.Helper()
	u, err := user.NewUser(email, first, "Tester", "IT", role)
	require.NoError(t, err)
	require.NoError(t, a.router.repos.userRepo.Create(context.Background(), u))
	return u
}

func (a *testApp) token(t *testing.T, u *user.User) string {
	t.Helper()
	token, err := a.router.jwtSvc.Generate(u.ID(), u.Email(), u.Role(), time.Hour)
	require.NoError(t, err)
	return token
}

func (a *testApp) do(t *testing.T, method, path, token, body string) *nethttp.Response {
	t.Helper()
	req, err := nethttp.NewRequest(method, a.server.URL+path, strings.NewReader(body))
	require.NoError(t, err)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := nethttp.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })
	return resp
}

func (a *testApp) dial(t *testing.T, token string) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(a.server.URL, "http") + "/ws?token=" + token
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

func send(t *testing.T, conn *websocket.Conn, frame string) {
	t.Helper()
	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte(frame)))
}

func readEnvelope(t *testing.T, conn *websocket.Conn) (string, json.RawMessage) {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(3*time.Second)))
	_, raw, err := conn.ReadMessage()
	require.NoError(t, err)
	var env struct {
		Type string          `json:"type"`
		Data json.RawMessage `json:"data"`
	}
	require.NoError(t, json.Unmarshal(raw, &env))
	return env.Type, env.Data
}

func TestRouter_Health(t *testing.T) {
	app := newTestApp(t)

	resp := app.do(t, nethttp.MethodGet, "/health", "", "")
	assert.Equal(t, nethttp.StatusOK, resp.StatusCode)

	var body struct {
		Status      string `json:"status"`
		Connections int    `json:"connections"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "ok", body.Status)
	assert.Equal(t, 0, body.Connections)
}

func TestRouter_Metrics(t *testing.T) {
	app := newTestApp(t)

	resp := app.do(t, nethttp.MethodGet, "/metrics", "", "")
	assert.Equal(t, nethttp.StatusOK, resp.StatusCode)
}

func TestRouter_RequiresAuthentication(t *testing.T) {
	app := newTestApp(t)

	for _, path := range []string{"/notifications", "/tickets/1/messages", "/users/me", "/ws"} {
		resp := app.do(t, nethttp.MethodGet, path, "", "")
		assert.Equal(t, nethttp.StatusUnauthorized, resp.StatusCode, path)
	}
}

func TestRouter_BroadcastRequiresPrivilegedRole(t *testing.T) {
	app := newTestApp(t)
	client := app.createUser(t, "alice@x.com", "Alice", uservo.RoleClient)
	admin := app.createUser(t, "root@x.com", "Root", uservo.RoleAdmin)
	app.createUser(t, "bob@x.com", "Bob", uservo.RoleHelpDesk)

	body := `{"title":"Maintenance","message":"Tonight 22:00"}`
	resp := app.do(t, nethttp.MethodPost, "/admin/notifications/broadcast", app.token(t, client), body)
	assert.Equal(t, nethttp.StatusForbidden, resp.StatusCode)

	resp = app.do(t, nethttp.MethodPost, "/admin/notifications/broadcast", app.token(t, admin), body)
	assert.Equal(t, nethttp.StatusOK, resp.StatusCode)

	resp = app.do(t, nethttp.MethodGet, "/notifications", app.token(t, client), "")
	require.Equal(t, nethttp.StatusOK, resp.StatusCode)
	var list struct {
		Data struct {
			Items []struct {
				Title string `json:"title"`
			} `json:"items"`
		} `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&list))
	require.Len(t, list.Data.Items, 1)
	assert.Equal(t, "Maintenance", list.Data.Items[0].Title)
}

func TestRouter_ChatRoundTrip(t *testing.T) {
	app := newTestApp(t)
	alice := app.createUser(t, "alice@x.com", "Alice", uservo.RoleClient)
	bob := app.createUser(t, "bob@x.com", "Bob", uservo.RoleHelpDesk)
	bobID := bob.ID()
	require.NoError(t, app.router.db.Create(&models.TicketModel{
		ID:           42,
		Title:        "VPN down",
		Status:       ticketvo.StatusOpen.String(),
		Priority:     ticketvo.PriorityHigh.String(),
		Category:     ticketvo.CategoryNetwork.String(),
		CreatedByID:  alice.ID(),
		AssignedToID: &bobID,
	}).Error)

	aliceWS := app.dial(t, app.token(t, alice))
	bobWS := app.dial(t, app.token(t, bob))

	send(t, aliceWS, `{"type":"JoinTicketGroup","data":{"ticketId":42}}`)
	send(t, bobWS, `{"type":"JoinUserGroup","data":{}}`)
	require.Eventually(t, func() bool {
		return len(app.router.router.Members(hub.TicketGroup(42))) == 1 &&
			len(app.router.router.Members(hub.UserGroup(bob.ID()))) == 1
	}, 3*time.Second, 10*time.Millisecond)

	send(t, aliceWS, `{"type":"SendMessageToTicket","data":{"ticketId":42,"message":"still broken"}}`)

	event, data := readEnvelope(t, aliceWS)
	assert.Equal(t, "ReceiveMessage", event)
	var message struct {
		Message     string `json:"message"`
		SenderEmail string `json:"senderEmail"`
	}
	require.NoError(t, json.Unmarshal(data, &message))
	assert.Equal(t, "still broken", message.Message)
	assert.Equal(t, "alice@x.com", message.SenderEmail)

	event, data = readEnvelope(t, bobWS)
	assert.Equal(t, "ReceiveNotification", event)
	var notification struct {
		Title           string `json:"title"`
		RelatedTicketID *uint  `json:"relatedTicketId"`
	}
	require.NoError(t, json.Unmarshal(data, &notification))
	assert.Equal(t, "New message", notification.Title)
	require.NotNil(t, notification.RelatedTicketID)
	assert.Equal(t, uint(42), *notification.RelatedTicketID)

	resp := app.do(t, nethttp.MethodGet, "/tickets/42/messages", app.token(t, bob), "")
	require.Equal(t, nethttp.StatusOK, resp.StatusCode)
	var history struct {
		Data []struct {
			Message string `json:"message"`
		} `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&history))
	require.Len(t, history.Data, 1)
	assert.Equal(t, "still broken", history.Data[0].Message)
}

func TestRouter_DisconnectEvictsMembership(t *testing.T) {
	app := newTestApp(t)
	bob := app.createUser(t, "bob@x.com", "Bob", uservo.RoleHelpDesk)

	ws := app.dial(t, app.token(t, bob))
	send(t, ws, `{"type":"JoinUserGroup","data":{"userEmail":"bob@x.com"}}`)
	require.Eventually(t, func() bool {
		return len(app.router.router.Members(hub.UserGroup(bob.ID()))) == 1
	}, 3*time.Second, 10*time.Millisecond)

	require.NoError(t, ws.WriteMessage(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")))
	_ = ws.Close()

	require.Eventually(t, func() bool {
		return app.router.lifecycle.ActiveConnections() == 0 &&
			len(app.router.router.Members(hub.UserGroup(bob.ID()))) == 0
	}, 3*time.Second, 10*time.Millisecond, fmt.Sprintf("user %d still enrolled", bob.ID()))
}
