package http

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/ticketdesk/ticketdesk/internal/application/chat"
	"github.com/ticketdesk/ticketdesk/internal/application/connection"
	"github.com/ticketdesk/ticketdesk/internal/application/notification"
	notificationUsecases "github.com/ticketdesk/ticketdesk/internal/application/notification/usecases"
	"github.com/ticketdesk/ticketdesk/internal/application/user"
	vo "github.com/ticketdesk/ticketdesk/internal/domain/notification/valueobjects"
	"github.com/ticketdesk/ticketdesk/internal/infrastructure/auth"
	"github.com/ticketdesk/ticketdesk/internal/infrastructure/config"
	"github.com/ticketdesk/ticketdesk/internal/infrastructure/email"
	"github.com/ticketdesk/ticketdesk/internal/infrastructure/hub"
	"github.com/ticketdesk/ticketdesk/internal/infrastructure/pubsub"
	"github.com/ticketdesk/ticketdesk/internal/interfaces/http/handlers"
	"github.com/ticketdesk/ticketdesk/internal/interfaces/http/handlers/realtime"
	"github.com/ticketdesk/ticketdesk/internal/interfaces/http/middleware"
	"github.com/ticketdesk/ticketdesk/internal/shared/db"
	"github.com/ticketdesk/ticketdesk/internal/shared/goroutine"
	"github.com/ticketdesk/ticketdesk/internal/shared/logger"
	"github.com/ticketdesk/ticketdesk/internal/shared/services/markdown"
)

// Container holds the infrastructure, application services and handlers and
// wires them together. Shutdown releases everything it started.
type Container struct {
	// Core infrastructure
	engine *gin.Engine
	db     *gorm.DB
	cfg    *config.Config
	log    logger.Interface
	// redis is nil unless the relay or the websocket rate limit is enabled.
	redis *redis.Client

	// Metrics
	registry   *prometheus.Registry
	hubMetrics *hub.Metrics

	// Realtime
	router      *hub.Router
	broadcaster hub.Broadcaster
	relay       *pubsub.GroupRelay
	relayCancel context.CancelFunc
	relayMu     sync.Mutex
	lifecycle   *connection.LifecycleManager

	// Application services
	coordinator   *chat.Coordinator
	dispatcher    *notification.Dispatcher
	emailFallback *notificationUsecases.EmailFallback
	userService   *user.Service

	// Middlewares
	jwtSvc         *auth.JWTService
	authMiddleware *middleware.AuthMiddleware
	wsRateLimiter  *middleware.RateLimiter

	repos *repositories
	hdlrs *allHandlers
}

// NewContainer wires all components. redisClient may be nil when neither the
// relay nor the websocket rate limit is enabled.
func NewContainer(gdb *gorm.DB, cfg *config.Config, redisClient *redis.Client, log logger.Interface) *Container {
	c := &Container{
		engine: gin.New(),
		db:     gdb,
		cfg:    cfg,
		log:    log,
		redis:  redisClient,
	}

	c.initInfrastructure()
	c.initRealtime()
	c.initServices()
	c.initHandlers()

	return c
}

func (c *Container) initInfrastructure() {
	c.repos = newRepositories(c.db)

	c.registry = prometheus.NewRegistry()
	c.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	c.hubMetrics = hub.NewMetrics(c.registry)

	c.jwtSvc = auth.NewJWTService(c.cfg.Auth.JWT.Secret, c.cfg.Auth.JWT.Issuer)
	c.authMiddleware = middleware.NewAuthMiddleware(c.jwtSvc, c.log.Named("auth"))

	if c.cfg.Server.WSRateLimit > 0 {
		if c.redis == nil {
			c.log.Warnw("websocket rate limit configured without redis, disabled",
				"limit", c.cfg.Server.WSRateLimit,
			)
		} else {
			c.wsRateLimiter = middleware.NewRateLimiter(c.redis, "ws", c.cfg.Server.WSRateLimit, time.Minute, c.log)
		}
	}
}

func (c *Container) initRealtime() {
	hubLog := c.log.Named("hub")
	c.router = hub.NewRouter(hubLog, c.hubMetrics)
	c.broadcaster = c.router

	if c.cfg.Hub.RelayEnabled {
		if c.redis == nil {
			c.log.Warnw("hub relay enabled without redis, broadcasting locally only")
		} else {
			c.relay = pubsub.NewGroupRelay(c.router, c.redis, c.cfg.Hub.RelayChannel, c.cfg.Hub.RelayPublishTimeout, hubLog.Named("relay"))
			c.broadcaster = c.relay
			c.log.Infow("hub relay enabled",
				"channel", c.cfg.Hub.RelayChannel,
				"instance_id", c.relay.InstanceID(),
			)
		}
	}

	c.lifecycle = connection.NewLifecycleManager(c.router, c.cfg.Hub.EvictOnDisconnect, c.log.Named("connection"))
}

func (c *Container) initServices() {
	c.emailFallback = c.newEmailFallback(markdown.NewMarkdownService())

	c.dispatcher = notification.NewDispatcher(
		c.repos.notificationRepo,
		c.repos.userRepo,
		c.broadcaster,
		c.router,
		c.emailFallback,
		c.log.Named("notification"),
	)

	c.coordinator = chat.NewCoordinator(
		c.repos.userRepo,
		c.repos.ticketRepo,
		c.repos.messageRepo,
		c.repos.attachmentRepo,
		db.NewTransactionManager(c.db),
		c.broadcaster,
		c.router,
		c.dispatcher,
		c.log.Named("chat"),
	)

	c.userService = user.NewService(c.repos.userRepo, c.log.Named("user"))
}

// newEmailFallback returns nil when mail is disabled or SMTP is not configured.
func (c *Container) newEmailFallback(renderer notificationUsecases.HTMLRenderer) *notificationUsecases.EmailFallback {
	emailCfg := c.cfg.Notification.Email
	if !emailCfg.Enabled {
		return nil
	}

	mailer := email.NewSMTPEmailService(emailCfg.SMTP)
	if !mailer.IsConfigured() {
		c.log.Warnw("email notifications enabled but SMTP is not configured")
		return nil
	}

	types := make([]vo.NotificationType, 0, len(emailCfg.Types))
	for _, name := range emailCfg.Types {
		t, err := vo.ParseNotificationType(name)
		if err != nil {
			c.log.Warnw("ignoring unknown email notification type", "type", name)
			continue
		}
		types = append(types, t)
	}

	c.log.Infow("email notifications enabled", "types", emailCfg.Types)
	limits := notificationUsecases.EmailLimits{Workers: emailCfg.Workers, QueueSize: emailCfg.QueueSize}
	return notificationUsecases.NewEmailFallback(mailer, renderer, c.repos.userRepo, types, limits, c.log.Named("email"))
}

func (c *Container) initHandlers() {
	dispatcher := realtime.NewCommandDispatcher(c.coordinator, c.dispatcher, c.cfg.Hub.CommandTimeout, c.log.Named("realtime"))

	var pinger handlers.Pinger
	if sqlDB, err := c.db.DB(); err != nil {
		c.log.Errorw("failed to get sql.DB for health checks", "error", err)
	} else {
		pinger = sqlDB
	}

	c.hdlrs = &allHandlers{
		notificationHandler:  handlers.NewNotificationHandler(c.dispatcher, c.log),
		ticketMessageHandler: handlers.NewTicketMessageHandler(c.coordinator, c.log),
		userHandler:          handlers.NewUserHandler(c.userService, c.log),
		healthHandler:        handlers.NewHealthHandler(pinger, c.lifecycle.ActiveConnections),
		hubHandler:           realtime.NewHubHandler(c.lifecycle, dispatcher, c.cfg.Hub, c.cfg.Server.AllowedOrigins, c.log.Named("realtime")),
	}
}

// StartBackground starts the relay subscriber when the relay is enabled.
func (c *Container) StartBackground(ctx context.Context) {
	if c.relay == nil {
		return
	}

	c.relayMu.Lock()
	relayCtx, cancel := context.WithCancel(ctx)
	c.relayCancel = cancel
	c.relayMu.Unlock()

	goroutine.SafeGo(c.log, "hub-relay", func() {
		if err := c.relay.Run(relayCtx); err != nil && !errors.Is(err, context.Canceled) {
			c.log.Errorw("hub relay stopped", "error", err)
		}
	})
}

// Shutdown stops the relay, closes every realtime connection and drains the
// email queue.
func (c *Container) Shutdown() {
	c.relayMu.Lock()
	if c.relayCancel != nil {
		c.relayCancel()
		c.relayCancel = nil
	}
	c.relayMu.Unlock()

	c.lifecycle.CloseAll()
	c.emailFallback.Close()
}
