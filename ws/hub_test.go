package ws

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"prepvio_backend/internal/services"
)

// The hub must satisfy the publisher interface services depend on.
var _ services.Publisher = (*Hub)(nil)

func TestPublish_RoutesToUserClients(t *testing.T) {
	hub := NewHub()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go hub.Run(ctx)

	client := newClient(hub, nil, "user-1")
	other := newClient(hub, nil, "user-2")
	hub.register <- client
	hub.register <- other

	hub.Publish("user-1", "notification", map[string]string{"title": "hi"})

	select {
	case data := <-client.send:
		var env Envelope
		require.NoError(t, json.Unmarshal(data, &env))
		assert.Equal(t, "notification", env.Event)
	case <-time.After(time.Second):
		t.Fatal("expected a frame for user-1")
	}

	select {
	case <-other.send:
		t.Fatal("user-2 must not receive the direct event")
	case <-time.After(50 * time.Millisecond):
	}
}

func TestBroadcast_ReachesAllClients(t *testing.T) {
	hub := NewHub()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go hub.Run(ctx)

	a := newClient(hub, nil, "user-1")
	b := newClient(hub, nil, "user-2")
	hub.register <- a
	hub.register <- b

	hub.Broadcast("maintenance", "scheduled downtime")

	for _, c := range []*Client{a, b} {
		select {
		case <-c.send:
		case <-time.After(time.Second):
			t.Fatal("expected broadcast frame")
		}
	}
}

func TestUnregister_ClosesSendChannel(t *testing.T) {
	hub := NewHub()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go hub.Run(ctx)

	client := newClient(hub, nil, "user-1")
	hub.register <- client
	hub.unregister <- client

	select {
	case _, ok := <-client.send:
		assert.False(t, ok, "send channel must be closed")
	case <-time.After(time.Second):
		t.Fatal("send channel not closed")
	}
}

func TestShutdown_UnregisterDoesNotBlock(t *testing.T) {
	hub := NewHub()
	ctx, cancel := context.WithCancel(context.Background())
	go hub.Run(ctx)

	client := newClient(hub, nil, "user-1")
	hub.register <- client

	cancel()

	// A client tearing down after the hub loop exited must not hang on
	// the unregister channel.
	finished := make(chan struct{})
	go func() {
		select {
		case hub.unregister <- client:
		case <-hub.done:
		}
		close(finished)
	}()

	select {
	case <-finished:
	case <-time.After(time.Second):
		t.Fatal("unregister blocked after hub shutdown")
	}
}
