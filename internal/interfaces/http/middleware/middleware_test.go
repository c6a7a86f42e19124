package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	uservo "github.com/ticketdesk/ticketdesk/internal/domain/user/valueobjects"
	"github.com/ticketdesk/ticketdesk/internal/infrastructure/auth"
	"github.com/ticketdesk/ticketdesk/internal/shared/biztime"
	"github.com/ticketdesk/ticketdesk/internal/shared/constants"
	"github.com/ticketdesk/ticketdesk/internal/shared/logger"
	"github.com/ticketdesk/ticketdesk/internal/shared/utils"
)

const testSecret = "test-secret"

func init() {
	gin.SetMode(gin.TestMode)
}

func newAuthEngine(t *testing.T) (*gin.Engine, *auth.JWTService) {
	t.Helper()
	jwtSvc := auth.NewJWTService(testSecret, "ticketdesk")
	m := NewAuthMiddleware(jwtSvc, logger.NewNopLogger())

	engine := gin.New()
	engine.GET("/me", m.RequireAuth(), func(c *gin.Context) {
		id, err := utils.GetUserID(c)
		require.NoError(t, err)
		c.JSON(http.StatusOK, gin.H{"id": id, "email": utils.GetUserEmail(c), "role": utils.GetUserRole(c)})
	})
	engine.GET("/admin", m.RequireAuth(), m.RequireRole(uservo.RoleAdmin, uservo.RoleManager), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})
	return engine, jwtSvc
}

func mustToken(t *testing.T, svc *auth.JWTService, role uservo.Role) string {
	t.Helper()
	token, err := svc.Generate(5, "alice@x.com", role, time.Hour)
	require.NoError(t, err)
	return token
}

func TestRequireAuth(t *testing.T) {
	engine, svc := newAuthEngine(t)
	token := mustToken(t, svc, uservo.RoleClient)

	tests := []struct {
		name   string
		setup  func(r *http.Request)
		status int
	}{
		{"missing token", func(r *http.Request) {}, http.StatusUnauthorized},
		{"malformed header", func(r *http.Request) { r.Header.Set(constants.HeaderAuthorization, "Token abc") }, http.StatusUnauthorized},
		{"bad signature", func(r *http.Request) { r.Header.Set(constants.HeaderAuthorization, "Bearer "+token+"x") }, http.StatusUnauthorized},
		{"bearer header", func(r *http.Request) { r.Header.Set(constants.HeaderAuthorization, "Bearer "+token) }, http.StatusOK},
		{"query parameter", func(r *http.Request) {
			q := r.URL.Query()
			q.Set(constants.TokenQueryParam, token)
			r.URL.RawQuery = q.Encode()
		}, http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			tt.setup(req)
			w := httptest.NewRecorder()
			engine.ServeHTTP(w, req)
			assert.Equal(t, tt.status, w.Code)
			if tt.status == http.StatusOK {
				assert.JSONEq(t, `{"id":5,"email":"alice@x.com","role":"Client"}`, w.Body.String())
			}
		})
	}
}

func TestRequireRole(t *testing.T) {
	engine, svc := newAuthEngine(t)

	for role, status := range map[uservo.Role]int{
		uservo.RoleAdmin:    http.StatusNoContent,
		uservo.RoleManager:  http.StatusNoContent,
		uservo.RoleHelpDesk: http.StatusForbidden,
		uservo.RoleClient:   http.StatusForbidden,
	} {
		req := httptest.NewRequest(http.MethodGet, "/admin", nil)
		req.Header.Set(constants.HeaderAuthorization, "Bearer "+mustToken(t, svc, role))
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, req)
		assert.Equal(t, status, w.Code, role.String())
	}
}

func TestCORS(t *testing.T) {
	engine := gin.New()
	engine.Use(CORS([]string{"https://desk.example.com"}))
	engine.GET("/ping", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodOptions, "/ping", nil)
	req.Header.Set("Origin", "https://desk.example.com")
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "https://desk.example.com", w.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("Origin", "https://evil.example.com")
	w = httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))

	assert.True(t, OriginAllowed("https://any.example.com", []string{"*"}))
	assert.False(t, OriginAllowed("", []string{"*"}))
}

func TestRequestID(t *testing.T) {
	engine := gin.New()
	engine.Use(RequestID(), CustomLogger(logger.NewNopLogger()))
	engine.GET("/ping", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))
	assert.NotEmpty(t, w.Header().Get(constants.HeaderXRequestID))

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set(constants.HeaderXRequestID, "req-1")
	w = httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	assert.Equal(t, "req-1", w.Header().Get(constants.HeaderXRequestID))
}

func TestRecovery(t *testing.T) {
	engine := gin.New()
	engine.Use(Recovery(logger.NewNopLogger()))
	engine.GET("/boom", func(c *gin.Context) { panic("boom") })

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/boom", nil))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "Internal server error occurred")
}

func TestRateLimiter(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	restore := biztime.SetNowFunc(func() time.Time { return time.Date(2024, 5, 1, 12, 0, 30, 0, time.UTC) })
	t.Cleanup(restore)

	rl := NewRateLimiter(client, "ws", 2, time.Minute, logger.NewNopLogger())
	engine := gin.New()
	engine.GET("/ws", rl.Limit(), func(c *gin.Context) { c.Status(http.StatusOK) })

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ws", nil))
		codes = append(codes, w.Code)
	}
	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)
}

func TestRateLimiter_FailsOpen(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr(), MaxRetries: -1})
	t.Cleanup(func() { _ = client.Close() })
	mr.Close()

	rl := NewRateLimiter(client, "ws", 1, time.Minute, logger.NewNopLogger())
	engine := gin.New()
	engine.GET("/ws", rl.Limit(), func(c *gin.Context) { c.Status(http.StatusOK) })

	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ws", nil))
		assert.Equal(t, http.StatusOK, w.Code)
	}
}
