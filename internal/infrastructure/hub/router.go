// Package hub keeps the process-local registry of broadcast groups and the
// connection handles joined to them.
package hub

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/ticketdesk/ticketdesk/internal/shared/logger"
)

// Envelope is the wire frame sent to clients.
type Envelope struct {
	Type string `json:"type"`
	Data any    `json:"data"`
}

// EncodeFrame renders an envelope once so it can be shared by every recipient.
func EncodeFrame(event string, payload any) ([]byte, error) {
	frame, err := json.Marshal(Envelope{Type: event, Data: payload})
	if err != nil {
		return nil, fmt.Errorf("failed to encode %s frame: %w", event, err)
	}
	return frame, nil
}

// Broadcaster delivers an event to every handle joined to a group and returns
// the number of handles the frame was queued to.
type Broadcaster interface {
	Broadcast(ctx context.Context, key GroupKey, event string, payload any) int
}

// Membership is the join/leave side of the router.
type Membership interface {
	Join(key GroupKey, c *Conn)
	Leave(key GroupKey, c *Conn)
	LeaveAll(c *Conn)
}

type group struct {
	mu      sync.RWMutex
	members map[*Conn]struct{}
	dead    bool
}

// Router maps group keys to member handles. Each group has its own lock, so
// operations on different groups never contend.
type Router struct {
	groups  sync.Map // GroupKey -> *group
	conns   sync.Map // conn id -> *Conn
	logger  logger.Interface
	metrics *Metrics
}

// NewRouter creates an empty router. metrics may be nil.
func NewRouter(log logger.Interface, metrics *Metrics) *Router {
	return &Router{
		logger:  log,
		metrics: metrics,
	}
}

// Register tracks a live handle.
func (r *Router) Register(c *Conn) {
	if _, loaded := r.conns.LoadOrStore(c.ID(), c); loaded {
		return
	}
	if r.metrics != nil {
		r.metrics.Connections.Inc()
	}
	r.logger.Infow("connection registered",
		"conn_id", c.ID(),
		"user_id", c.UserID(),
	)
}

// Unregister stops tracking a handle. Group memberships are left untouched.
func (r *Router) Unregister(c *Conn) bool {
	if _, loaded := r.conns.LoadAndDelete(c.ID()); !loaded {
		return false
	}
	if r.metrics != nil {
		r.metrics.Connections.Dec()
	}
	r.logger.Infow("connection unregistered",
		"conn_id", c.ID(),
		"user_id", c.UserID(),
	)
	return true
}

// Connections returns a snapshot of registered handles.
func (r *Router) Connections() []*Conn {
	var out []*Conn
	r.conns.Range(func(_, v any) bool {
		out = append(out, v.(*Conn))
		return true
	})
	return out
}

// Join adds c to the group. Joining twice is a no-op.
func (r *Router) Join(key GroupKey, c *Conn) {
	for {
		fresh := &group{members: make(map[*Conn]struct{})}
		v, loaded := r.groups.LoadOrStore(key, fresh)
		g := v.(*group)

		g.mu.Lock()
		if g.dead {
			// Lost a race with the last Leave of this group; retry on a new one.
			g.mu.Unlock()
			continue
		}
		if !loaded && r.metrics != nil {
			r.metrics.Groups.WithLabelValues(key.Kind()).Inc()
		}
		if _, ok := g.members[c]; !ok {
			g.members[c] = struct{}{}
			c.addGroup(key)
		}
		g.mu.Unlock()

		r.logger.Debugw("joined group",
			"group", key,
			"conn_id", c.ID(),
		)
		return
	}
}

// Leave removes c from the group. Leaving a group c never joined is a no-op.
func (r *Router) Leave(key GroupKey, c *Conn) {
	v, ok := r.groups.Load(key)
	if !ok {
		c.removeGroup(key)
		return
	}
	g := v.(*group)

	g.mu.Lock()
	delete(g.members, c)
	c.removeGroup(key)
	if len(g.members) == 0 && !g.dead {
		g.dead = true
		r.groups.CompareAndDelete(key, g)
		if r.metrics != nil {
			r.metrics.Groups.WithLabelValues(key.Kind()).Dec()
		}
	}
	g.mu.Unlock()

	r.logger.Debugw("left group",
		"group", key,
		"conn_id", c.ID(),
	)
}

// LeaveAll removes c from every group it joined.
func (r *Router) LeaveAll(c *Conn) {
	for _, key := range c.Groups() {
		r.Leave(key, c)
	}
}

// Members returns a snapshot of the handles joined to key.
func (r *Router) Members(key GroupKey) []*Conn {
	v, ok := r.groups.Load(key)
	if !ok {
		return nil
	}
	g := v.(*group)

	g.mu.RLock()
	defer g.mu.RUnlock()

	out := make([]*Conn, 0, len(g.members))
	for c := range g.members {
		out = append(out, c)
	}
	return out
}

// GroupCount returns the number of non-empty groups.
func (r *Router) GroupCount() int {
	n := 0
	r.groups.Range(func(_, _ any) bool {
		n++
		return true
	})
	return n
}

// Broadcast encodes the event once and queues it to every member of key.
func (r *Router) Broadcast(_ context.Context, key GroupKey, event string, payload any) int {
	frame, err := EncodeFrame(event, payload)
	if err != nil {
		r.logger.Errorw("failed to encode broadcast",
			"group", key,
			"event", event,
			"error", err,
		)
		return 0
	}
	return r.deliver(key, event, frame)
}

// DeliverFrame queues an already encoded frame to the local members of key.
func (r *Router) DeliverFrame(key GroupKey, event string, frame []byte) int {
	return r.deliver(key, event, frame)
}

func (r *Router) deliver(key GroupKey, event string, frame []byte) int {
	members := r.Members(key)
	delivered := 0
	for _, c := range members {
		if err := c.Enqueue(frame); err != nil {
			reason := "unknown"
			var hubErr *HubError
			if errors.As(err, &hubErr) {
				reason = hubErr.Code
			}
			if r.metrics != nil {
				r.metrics.Dropped.WithLabelValues(reason).Inc()
			}
			r.logger.Warnw("dropped frame for connection",
				"group", key,
				"event", event,
				"conn_id", c.ID(),
				"user_id", c.UserID(),
				"reason", reason,
			)
			continue
		}
		delivered++
	}
	if r.metrics != nil && delivered > 0 {
		r.metrics.Deliveries.WithLabelValues(event).Add(float64(delivered))
	}
	return delivered
}

// Close closes every registered handle and drops all groups.
func (r *Router) Close() {
	r.conns.Range(func(k, v any) bool {
		c := v.(*Conn)
		c.Close()
		r.conns.Delete(k)
		if r.metrics != nil {
			r.metrics.Connections.Dec()
		}
		return true
	})
	r.groups.Range(func(k, v any) bool {
		g := v.(*group)
		g.mu.Lock()
		if !g.dead {
			g.dead = true
			if r.metrics != nil {
				r.metrics.Groups.WithLabelValues(k.(GroupKey).Kind()).Dec()
			}
		}
		g.mu.Unlock()
		r.groups.Delete(k)
		return true
	})
	r.logger.Infow("router closed")
}
