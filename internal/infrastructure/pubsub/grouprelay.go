// Package pubsub relays group broadcasts between server instances over Redis.
package pubsub

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/ticketdesk/ticketdesk/internal/infrastructure/hub"
	"github.com/ticketdesk/ticketdesk/internal/shared/goroutine"
	"github.com/ticketdesk/ticketdesk/internal/shared/logger"
)

const (
	DefaultChannel = "ticketdesk:hub:broadcast"
	// DefaultPublishTimeout bounds how long a broadcast waits on redis.
	DefaultPublishTimeout = time.Second
)

// RelayEvent is the message published for every broadcast.
type RelayEvent struct {
	InstanceID string          `json:"instance_id"`
	Group      string          `json:"group"`
	Event      string          `json:"event"`
	Frame      json.RawMessage `json:"frame"`
}

// GroupRelay wraps a local router. Broadcasts are delivered locally and
// published so that other instances deliver them to their own members.
type GroupRelay struct {
	router         *hub.Router
	client         *redis.Client
	channel        string
	publishTimeout time.Duration
	logger         logger.Interface
	instanceID     string
}

var _ hub.Broadcaster = (*GroupRelay)(nil)

// NewGroupRelay creates a relay on channel. Empty channel and non-positive
// publishTimeout fall back to the defaults.
func NewGroupRelay(
	router *hub.Router,
	client *redis.Client,
	channel string,
	publishTimeout time.Duration,
	logger logger.Interface,
) *GroupRelay {
	if channel == "" {
		channel = DefaultChannel
	}
	if publishTimeout <= 0 {
		publishTimeout = DefaultPublishTimeout
	}
	return &GroupRelay{
		router:         router,
		client:         client,
		channel:        channel,
		publishTimeout: publishTimeout,
		logger:         logger,
		instanceID:     uuid.NewString(),
	}
}

func (g *GroupRelay) InstanceID() string { return g.instanceID }

// Broadcast delivers to local members and publishes the frame. The publish is
// detached from ctx cancellation and limited to the publish timeout. A publish
// failure is logged; local delivery is unaffected.
func (g *GroupRelay) Broadcast(ctx context.Context, key hub.GroupKey, event string, payload any) int {
	frame, err := hub.EncodeFrame(event, payload)
	if err != nil {
		g.logger.Errorw("failed to encode broadcast",
			"group", key,
			"event", event,
			"error", err,
		)
		return 0
	}

	delivered := g.router.DeliverFrame(key, event, frame)

	if err := g.publish(ctx, key, event, frame); err != nil {
		g.logger.Errorw("failed to relay broadcast",
			"group", key,
			"event", event,
			"error", err,
		)
	}
	return delivered
}

func (g *GroupRelay) publish(ctx context.Context, key hub.GroupKey, event string, frame []byte) error {
	data, err := json.Marshal(RelayEvent{
		InstanceID: g.instanceID,
		Group:      key.String(),
		Event:      event,
		Frame:      frame,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal relay event: %w", err)
	}

	pubCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), g.publishTimeout)
	defer cancel()

	if err := g.client.Publish(pubCtx, g.channel, data).Err(); err != nil {
		return fmt.Errorf("failed to publish relay event: %w", err)
	}
	return nil
}

// Run subscribes to the relay channel until ctx is cancelled, reconnecting
// with exponential backoff.
func (g *GroupRelay) Run(ctx context.Context) error {
	return g.subscribeWithReconnect(ctx, g.handle)
}

func (g *GroupRelay) handle(payload string) {
	var event RelayEvent
	if err := json.Unmarshal([]byte(payload), &event); err != nil {
		g.logger.Warnw("failed to unmarshal relay event",
			"error", err,
		)
		return
	}

	// Own frames were already delivered locally.
	if event.InstanceID == g.instanceID {
		return
	}

	key, err := hub.ParseGroupKey(event.Group)
	if err != nil {
		g.logger.Warnw("relay event with invalid group",
			"group", event.Group,
			"error", err,
		)
		return
	}

	n := g.router.DeliverFrame(key, event.Event, event.Frame)
	g.logger.Debugw("relayed broadcast delivered",
		"group", key,
		"event", event.Event,
		"source_instance", event.InstanceID,
		"delivered", n,
	)
}

func (g *GroupRelay) subscribeWithReconnect(ctx context.Context, handler func(payload string)) error {
	backoff := time.Second
	maxBackoff := 30 * time.Second

	for {
		err := g.subscribe(ctx, handler)
		if ctx.Err() != nil {
			return ctx.Err()
		}

		g.logger.Warnw("relay subscription disconnected, reconnecting",
			"channel", g.channel,
			"error", err,
			"backoff", backoff,
		)

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(backoff):
		}

		backoff = min(backoff*2, maxBackoff)
	}
}

func (g *GroupRelay) subscribe(ctx context.Context, handler func(payload string)) error {
	sub := g.client.Subscribe(ctx, g.channel)
	defer sub.Close()

	if _, err := sub.Receive(ctx); err != nil {
		return fmt.Errorf("failed to subscribe to channel %s: %w", g.channel, err)
	}

	g.logger.Infow("subscribed to relay channel",
		"channel", g.channel,
		"instance_id", g.instanceID,
	)

	ch := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			g.logger.Infow("relay subscriber stopped",
				"channel", g.channel,
				"reason", ctx.Err(),
			)
			return ctx.Err()

		case msg, ok := <-ch:
			if !ok {
				g.logger.Warnw("relay channel closed",
					"channel", g.channel,
				)
				return nil
			}
			// Handled inline to keep relayed frames in publish order.
			goroutine.Safe(g.logger, "relay-handler", func() {
				handler(msg.Payload)
			})()
		}
	}
}
