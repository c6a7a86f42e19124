package hub

import (
	"sync"
	"time"

	"github.com/google/uuid"

	uservo "github.com/ticketdesk/ticketdesk/internal/domain/user/valueobjects"
	"github.com/ticketdesk/ticketdesk/internal/shared/biztime"
)

const DefaultSendBuffer = 256

// Identity is the authenticated principal behind a connection.
type Identity struct {
	UserID uint
	Email  string
	Role   uservo.Role
}

// Conn is a transport-agnostic connection handle. The transport drains Send()
// from a single writer goroutine, which keeps per-handle delivery in FIFO order.
type Conn struct {
	id          string
	identity    Identity
	connectedAt time.Time
	send        chan []byte

	mu     sync.Mutex
	closed bool
	groups map[GroupKey]struct{}
}

// NewConn creates a handle with a bounded outbound queue.
func NewConn(identity Identity, buffer int) *Conn {
	if buffer <= 0 {
		buffer = DefaultSendBuffer
	}
	return &Conn{
		id:          uuid.NewString(),
		identity:    identity,
		connectedAt: biztime.NowUTC(),
		send:        make(chan []byte, buffer),
		groups:      make(map[GroupKey]struct{}),
	}
}

func (c *Conn) ID() string { return c.id }

func (c *Conn) Identity() Identity { return c.identity }

func (c *Conn) UserID() uint { return c.identity.UserID }

func (c *Conn) ConnectedAt() time.Time { return c.connectedAt }

// Send is the outbound queue. It is closed by Close.
func (c *Conn) Send() <-chan []byte { return c.send }

// Enqueue queues a frame without blocking.
func (c *Conn) Enqueue(frame []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return ErrConnClosed
	}
	select {
	case c.send <- frame:
		return nil
	default:
		return ErrSendBufferFull
	}
}

// Close closes the outbound queue. Safe to call more than once.
func (c *Conn) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return
	}
	c.closed = true
	close(c.send)
}

func (c *Conn) IsClosed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.closed
}

// Groups returns a snapshot of the groups this handle joined.
func (c *Conn) Groups() []GroupKey {
	c.mu.Lock()
	defer c.mu.Unlock()

	keys := make([]GroupKey, 0, len(c.groups))
	for k := range c.groups {
		keys = append(keys, k)
	}
	return keys
}

func (c *Conn) addGroup(key GroupKey) {
	c.mu.Lock()
	c.groups[key] = struct{}{}
	c.mu.Unlock()
}

func (c *Conn) removeGroup(key GroupKey) {
	c.mu.Lock()
	delete(c.groups, key)
	c.mu.Unlock()
}
