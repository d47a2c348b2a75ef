package realtime

import (
	"context"
	"encoding/json"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func startHub(t *testing.T) *Hub {
	t.Helper()
	h := NewHub()
	go h.Run()
	return h
}

func TestHub_SendToUserReachesOnlyThatUser(t *testing.T) {
	h := startHub(t)
	alice, bob := uuid.New(), uuid.New()

	ca := NewClient(alice, nil)
	cb := NewClient(bob, nil)
	h.RegisterClient(ca)
	h.RegisterClient(cb)
	require.Eventually(t, func() bool { return h.Online(alice) && h.Online(bob) }, time.Second, 5*time.Millisecond)

	h.SendToUser(alice, Event{Type: EventNewMessage, Data: "oi"})

	select {
	case raw := <-ca.Send:
		var ev Event
		require.NoError(t, json.Unmarshal(raw, &ev))
		assert.Equal(t, EventNewMessage, ev.Type)
		assert.Equal(t, "oi", ev.Data)
	case <-time.After(time.Second):
		t.Fatal("alice got nothing")
	}
	assert.Empty(t, cb.Send)
}

func TestHub_UnregisterClosesQueue(t *testing.T) {
	h := startHub(t)
	u := uuid.New()
	c := NewClient(u, nil)
	h.RegisterClient(c)
	require.Eventually(t, func() bool { return h.Online(u) }, time.Second, 5*time.Millisecond)

	h.UnregisterClient(c)
	require.Eventually(t, func() bool { return !h.Online(u) }, time.Second, 5*time.Millisecond)

	_, open := <-c.Send
	assert.False(t, open)
}

func TestHubNotifier_WithoutRedis(t *testing.T) {
	h := startHub(t)
	u := uuid.New()
	c := NewClient(u, nil)
	h.RegisterClient(c)
	require.Eventually(t, func() bool { return h.Online(u) }, time.Second, 5*time.Millisecond)

	NewHubNotifier(h, nil).Notify(context.Background(), u, Event{Type: EventNewRating})

	select {
	case raw := <-c.Send:
		assert.Contains(t, string(raw), EventNewRating)
	case <-time.After(time.Second):
		t.Fatal("no event")
	}
}

func TestNilNotifierIsSafe(t *testing.T) {
	var n *HubNotifier
	n.Notify(context.Background(), uuid.New(), Event{Type: EventNewProposal})
	NopNotifier{}.Notify(context.Background(), uuid.New(), Event{})
	assert.Equal(t, "notifications:00000000-0000-0000-0000-000000000000", Channel(uuid.Nil))
}

type blockingConn struct {
	closed  chan struct{}
	release chan struct{}
	writing atomic.Bool
	writes  atomic.Int32
}

func newBlockingConn() *blockingConn {
	return &blockingConn{closed: make(chan struct{}), release: make(chan struct{})}
}

func (b *blockingConn) ReadJSON(v interface{}) error {
	<-b.closed
	return errors.New("peer closed")
}

func (b *blockingConn) WriteMessage(_ int, _ []byte) error {
	b.writing.Store(true)
	defer b.writing.Store(false)
	b.writes.Add(1)
	<-b.release
	return nil
}

func TestServe_WaitsForWriterBeforeReturning(t *testing.T) {
	h := startHub(t)
	u := uuid.New()
	conn := newBlockingConn()

	returned := make(chan struct{})
	go func() {
		h.Serve(conn, u)
		close(returned)
	}()
	require.Eventually(t, func() bool { return h.Online(u) }, time.Second, 5*time.Millisecond)

	h.SendToUser(u, Event{Type: EventNewMessage})
	require.Eventually(t, func() bool { return conn.writing.Load() }, time.Second, 5*time.Millisecond)

	close(conn.closed)
	select {
	case <-returned:
		t.Fatal("Serve returned while a write was in flight")
	case <-time.After(50 * time.Millisecond):
	}

	close(conn.release)
	select {
	case <-returned:
	case <-time.After(time.Second):
		t.Fatal("Serve did not return")
	}
	assert.False(t, conn.writing.Load())
	assert.Equal(t, int32(1), conn.writes.Load())
	assert.False(t, h.Online(u))
}

func TestNilHubIsOffline(t *testing.T) {
	var h *Hub
	assert.False(t, h.Online(uuid.New()))
}
