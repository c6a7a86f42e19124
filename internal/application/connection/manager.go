// Package connection tracks realtime connections and reconciles group
// membership when they go away.
package connection

import (
	"github.com/ticketdesk/ticketdesk/internal/infrastructure/hub"
	"github.com/ticketdesk/ticketdesk/internal/shared/logger"
)

// Registry is the part of the router the lifecycle manager drives.
type Registry interface {
	Register(c *hub.Conn)
	Unregister(c *hub.Conn) bool
	LeaveAll(c *hub.Conn)
	Connections() []*hub.Conn
	Close()
}

type LifecycleManager struct {
	registry          Registry
	evictOnDisconnect bool
	logger            logger.Interface
}

// NewLifecycleManager creates a manager. With evictOnDisconnect false a
// closed handle stays enrolled in its groups and broadcasts to it are dropped.
func NewLifecycleManager(registry Registry, evictOnDisconnect bool, logger logger.Interface) *LifecycleManager {
	return &LifecycleManager{
		registry:          registry,
		evictOnDisconnect: evictOnDisconnect,
		logger:            logger,
	}
}

func (m *LifecycleManager) Connected(c *hub.Conn) {
	m.registry.Register(c)
	m.logger.Infow("realtime client connected",
		"conn_id", c.ID(),
		"user_id", c.UserID(),
	)
}

// Disconnected closes the handle's queue and, when eviction is on, removes it
// from every group. Calling it twice is harmless.
func (m *LifecycleManager) Disconnected(c *hub.Conn) {
	groups := len(c.Groups())
	m.registry.Unregister(c)
	c.Close()
	if m.evictOnDisconnect {
		m.registry.LeaveAll(c)
	}
	m.logger.Infow("realtime client disconnected",
		"conn_id", c.ID(),
		"user_id", c.UserID(),
		"groups", groups,
		"evicted", m.evictOnDisconnect,
	)
}

func (m *LifecycleManager) ActiveConnections() int {
	return len(m.registry.Connections())
}

// CloseAll closes every handle and drops all groups. Used at shutdown.
func (m *LifecycleManager) CloseAll() {
	count := m.ActiveConnections()
	m.registry.Close()
	m.logger.Infow("closed all realtime connections", "count", count)
}
