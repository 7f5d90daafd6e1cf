package v1

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// waitHub sends a no-op broadcast for an empty room. Run handles messages
// one at a time, so once this returns every earlier message is processed.
func waitHub(h *ChatHandler) {
	h.broadcast <- roomMessage{eventID: 0, payload: nil}
}

func TestChatHandlerBroadcast_DeliversToRoom(t *testing.T) {
	h := NewChatHandler(nil, nil)
	go h.Run()

	member := &Client{send: make(chan []byte, 8), userID: 1, eventID: 7}
	outsider := &Client{send: make(chan []byte, 8), userID: 2, eventID: 8}
	h.register <- member
	h.register <- outsider

	h.broadcast <- roomMessage{eventID: 7, payload: []byte(`{"content":"hello"}`)}
	waitHub(h)

	select {
	case got := <-member.send:
		assert.JSONEq(t, `{"content":"hello"}`, string(got))
	default:
		t.Fatal("expected a payload queued for the room member")
	}
	assert.Empty(t, outsider.send)
}

func TestChatHandlerBroadcast_EvictsSlowClient(t *testing.T) {
	h := NewChatHandler(nil, nil)
	go h.Run()

	client := &Client{send: make(chan []byte, 1), userID: 1, eventID: 7}
	h.register <- client

	// Fill the buffer so the next broadcast finds the client stuck.
	require.True(t, client.trySend([]byte("first")))

	h.broadcast <- roomMessage{eventID: 7, payload: []byte("second")}
	waitHub(h)

	h.roomsMutex.RLock()
	_, stillThere := h.rooms[7][client]
	h.roomsMutex.RUnlock()
	assert.False(t, stillThere)

	// The read pump may still be running after the eviction closed the
	// channel. Its error path must drop the payload, not crash.
	assert.NotPanics(t, func() {
		client.sendError("message could not be saved")
	})
	assert.False(t, client.trySend([]byte("late")))

	got, ok := <-client.send
	require.True(t, ok)
	assert.Equal(t, []byte("first"), got)
	_, ok = <-client.send
	assert.False(t, ok, "send channel should be closed after eviction")
}

func TestClientShutdown_Idempotent(t *testing.T) {
	client := &Client{send: make(chan []byte, 1)}

	assert.NotPanics(t, func() {
		client.shutdown()
		client.shutdown()
	})
	assert.False(t, client.trySend([]byte("x")))
}

func TestChatHandlerUnregister_RemovesClientAndRoom(t *testing.T) {
	h := NewChatHandler(nil, nil)
	go h.Run()

	client := &Client{send: make(chan []byte, 1), userID: 1, eventID: 7}
	h.register <- client
	h.unregister <- client
	waitHub(h)

	h.roomsMutex.RLock()
	_, roomExists := h.rooms[7]
	h.roomsMutex.RUnlock()
	assert.False(t, roomExists, "empty room should be dropped")

	_, ok := <-client.send
	assert.False(t, ok, "send channel should be closed after unregister")
}
