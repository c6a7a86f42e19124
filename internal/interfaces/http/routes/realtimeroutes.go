package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/ticketdesk/ticketdesk/internal/interfaces/http/handlers/realtime"
	"github.com/ticketdesk/ticketdesk/internal/interfaces/http/middleware"
)

type RealtimeRouteConfig struct {
	HubHandler     *realtime.HubHandler
	AuthMiddleware *middleware.AuthMiddleware
	// RateLimiter is optional.
	RateLimiter *middleware.RateLimiter
}

func SetupRealtimeRoutes(engine *gin.Engine, config *RealtimeRouteConfig) {
	chain := []gin.HandlerFunc{}
	if config.RateLimiter != nil {
		chain = append(chain, config.RateLimiter.Limit())
	}
	chain = append(chain, config.AuthMiddleware.RequireAuth(), config.HubHandler.Connect)

	engine.GET("/ws", chain...)
}
