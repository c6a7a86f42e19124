package pubsub

import (
	"context"
	"encoding/json"
	"net"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	uservo "github.com/ticketdesk/ticketdesk/internal/domain/user/valueobjects"
	"github.com/ticketdesk/ticketdesk/internal/infrastructure/hub"
	"github.com/ticketdesk/ticketdesk/internal/shared/logger"
)

func setupTestRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() {
		client.Close()
		mr.Close()
	})
	return mr, client
}

func newRelay(client *redis.Client) (*GroupRelay, *hub.Router) {
	router := hub.NewRouter(logger.NewNopLogger(), nil)
	return NewGroupRelay(router, client, "", 0, logger.NewNopLogger()), router
}

func joinedConn(router *hub.Router, key hub.GroupKey) *hub.Conn {
	c := hub.NewConn(hub.Identity{UserID: 1, Email: "a@example.com", Role: uservo.RoleUser}, 16)
	router.Join(key, c)
	return c
}

func frames(c *hub.Conn) int {
	n := 0
	for {
		select {
		case <-c.Send():
			n++
		default:
			return n
		}
	}
}

func TestGroupRelay_DeliversAcrossInstances(t *testing.T) {
	mr, client := setupTestRedis(t)
	key := hub.TicketGroup(42)

	relayA, routerA := newRelay(client)
	relayB, routerB := newRelay(client)
	connA := joinedConn(routerA, key)
	connB := joinedConn(routerB, key)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = relayA.Run(ctx) }()
	go func() { _ = relayB.Run(ctx) }()

	require.Eventually(t, func() bool {
		return mr.PubSubNumSub(DefaultChannel)[DefaultChannel] == 2
	}, 2*time.Second, 10*time.Millisecond)

	delivered := relayA.Broadcast(ctx, key, "ReceiveMessage", map[string]string{"message": "hi"})
	assert.Equal(t, 1, delivered)

	var got []byte
	require.Eventually(t, func() bool {
		select {
		case got = <-connB.Send():
			return true
		default:
			return false
		}
	}, 2*time.Second, 10*time.Millisecond)

	var env hub.Envelope
	require.NoError(t, json.Unmarshal(got, &env))
	assert.Equal(t, "ReceiveMessage", env.Type)

	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, 1, frames(connA))
}

func TestGroupRelay_SkipsOwnInstance(t *testing.T) {
	_, client := setupTestRedis(t)
	relay, router := newRelay(client)
	key := hub.UserGroup(3)
	c := joinedConn(router, key)

	payload, err := json.Marshal(RelayEvent{
		InstanceID: relay.InstanceID(),
		Group:      key.String(),
		Event:      "ReceiveNotification",
		Frame:      json.RawMessage(`{"type":"ReceiveNotification","data":null}`),
	})
	require.NoError(t, err)

	relay.handle(string(payload))
	assert.Equal(t, 0, frames(c))

	payload, err = json.Marshal(RelayEvent{
		InstanceID: "other-instance",
		Group:      key.String(),
		Event:      "ReceiveNotification",
		Frame:      json.RawMessage(`{"type":"ReceiveNotification","data":null}`),
	})
	require.NoError(t, err)

	relay.handle(string(payload))
	assert.Equal(t, 1, frames(c))
}

func TestGroupRelay_IgnoresMalformedEvents(t *testing.T) {
	_, client := setupTestRedis(t)
	relay, router := newRelay(client)
	c := joinedConn(router, hub.TicketGroup(1))

	relay.handle("not json")
	relay.handle(`{"instance_id":"x","group":"room:1","event":"E","frame":{}}`)

	assert.Equal(t, 0, frames(c))
}

func TestGroupRelay_PublishFailureKeepsLocalDelivery(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr(), MaxRetries: -1})
	defer client.Close()

	relay, router := newRelay(client)
	key := hub.TicketGroup(7)
	c := joinedConn(router, key)

	mr.Close()

	assert.Equal(t, 1, relay.Broadcast(context.Background(), key, "ReceiveMessage", nil))
	assert.Equal(t, 1, frames(c))
}

func TestGroupRelay_RunStopsOnCancel(t *testing.T) {
	_, client := setupTestRedis(t)
	relay, _ := newRelay(client)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- relay.Run(ctx) }()

	cancel()
	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(2 * time.Second):
		t.Fatal("relay did not stop")
	}
}

func TestGroupRelay_PublishIgnoresCallerCancellation(t *testing.T) {
	mr, client := setupTestRedis(t)
	key := hub.TicketGroup(9)

	relayA, _ := newRelay(client)
	relayB, routerB := newRelay(client)
	connB := joinedConn(routerB, key)

	runCtx, stop := context.WithCancel(context.Background())
	defer stop()
	go func() { _ = relayB.Run(runCtx) }()

	require.Eventually(t, func() bool {
		return mr.PubSubNumSub(DefaultChannel)[DefaultChannel] == 1
	}, 2*time.Second, 10*time.Millisecond)

	cmdCtx, cancel := context.WithCancel(context.Background())
	cancel()
	relayA.Broadcast(cmdCtx, key, "ReceiveMessage", nil)

	require.Eventually(t, func() bool {
		return frames(connB) == 1
	}, 2*time.Second, 10*time.Millisecond)
}

func TestGroupRelay_PublishIsBoundedByTimeout(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer ln.Close()

	// Accepts connections and never answers.
	go func() {
		for {
			conn, err := ln.Accept()
			if err != nil {
				return
			}
			defer conn.Close()
		}
	}()

	client := redis.NewClient(&redis.Options{Addr: ln.Addr().String(), MaxRetries: -1})
	defer client.Close()

	router := hub.NewRouter(logger.NewNopLogger(), nil)
	relay := NewGroupRelay(router, client, "", 100*time.Millisecond, logger.NewNopLogger())
	key := hub.TicketGroup(3)
	c := joinedConn(router, key)

	start := time.Now()
	assert.Equal(t, 1, relay.Broadcast(context.Background(), key, "ReceiveMessage", nil))
	assert.Less(t, time.Since(start), time.Second)
	assert.Equal(t, 1, frames(c))
}
