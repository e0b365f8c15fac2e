package websocket

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func startHub(t *testing.T) *Hub {
	t.Helper()

	hub := NewHub(zap.NewNop())
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	go hub.Run(ctx)
	return hub
}

func waitForClients(t *testing.T, hub *Hub, want int) {
	t.Helper()

	deadline := time.After(2 * time.Second)
	for hub.TotalClients() != want {
		select {
		case <-deadline:
			t.Fatalf("expected %d clients, have %d", want, hub.TotalClients())
		case <-time.After(5 * time.Millisecond):
		}
	}
}

func TestHub_DeliversToAllClients(t *testing.T) {
	t.Parallel()

	hub := startHub(t)
	a := NewClient(hub, nil, "admin@elizabethtrader.com", zap.NewNop())
	b := NewClient(hub, nil, "second@elizabethtrader.com", zap.NewNop())
	hub.RegisterClient(a)
	hub.RegisterClient(b)
	waitForClients(t, hub, 2)

	hub.Broadcast(&Event{Type: EventPostCreated, PostID: 7, Title: "BTC outlook", At: time.Now()})

	for _, c := range []*Client{a, b} {
		select {
		case data := <-c.send:
			var ev Event
			require.NoError(t, json.Unmarshal(data, &ev))
			assert.Equal(t, EventPostCreated, ev.Type)
			assert.EqualValues(t, 7, ev.PostID)
			assert.Equal(t, "BTC outlook", ev.Title)
		case <-time.After(2 * time.Second):
			t.Fatalf("client %s never received the event", c.identifier)
		}
	}
}

func TestHub_UnregisterClosesSendChannel(t *testing.T) {
	t.Parallel()

	hub := startHub(t)
	c := NewClient(hub, nil, "admin@elizabethtrader.com", zap.NewNop())
	hub.RegisterClient(c)
	waitForClients(t, hub, 1)

	hub.unregister <- c
	waitForClients(t, hub, 0)

	select {
	case _, open := <-c.send:
		assert.False(t, open)
	case <-time.After(2 * time.Second):
		t.Fatal("send channel was not closed")
	}
}

func TestHub_DisconnectAfterShutdownDoesNotBlock(t *testing.T) {
	t.Parallel()

	hub := NewHub(zap.NewNop())
	ctx, cancel := context.WithCancel(context.Background())
	go hub.Run(ctx)

	c := NewClient(hub, nil, "admin@elizabethtrader.com", zap.NewNop())
	hub.RegisterClient(c)
	waitForClients(t, hub, 1)

	cancel()
	select {
	case <-hub.done:
	case <-time.After(2 * time.Second):
		t.Fatal("hub never shut down")
	}

	// A read pump that outlives the hub must still be able to exit.
	finished := make(chan struct{})
	go func() {
		c.disconnect()
		close(finished)
	}()
	select {
	case <-finished:
	case <-time.After(2 * time.Second):
		t.Fatal("disconnect blocked after hub shutdown")
	}

	// Same for a late registration.
	hub.RegisterClient(NewClient(hub, nil, "second@elizabethtrader.com", zap.NewNop()))
}

func TestHub_BroadcastWithoutClientsDoesNotBlock(t *testing.T) {
	t.Parallel()

	hub := NewHub(zap.NewNop())

	// No Run loop draining the channel: the buffered queue absorbs events
	// and the overflow is dropped instead of blocking the caller.
	for i := 0; i < 500; i++ {
		hub.Broadcast(&Event{Type: EventPostDeleted, PostID: int64(i), At: time.Now()})
	}
}
