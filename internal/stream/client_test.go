package stream

import (
	"testing"

	"skillswap/internal/models"

	"github.com/stretchr/testify/assert"
)

func newHubClient(hub *Hub, memberID, peerID string) *Client {
	return &Client{
		Hub:      hub,
		Send:     make(chan []byte, sendBufferSize),
		MemberID: memberID,
		PeerID:   peerID,
	}
}

func TestSnapshotAfterUnregisterIsDropped(t *testing.T) {
	hub := NewHub()
	client := newHubClient(hub, "m1", "m2")

	hub.registerClient(client)
	hub.unregisterClient(client)

	// A fetch already in flight at disconnect delivers its snapshot
	// after the hub has torn the stream down. It must be dropped, not
	// sent on the closed channel.
	assert.NotPanics(t, func() {
		client.pushSnapshot([]models.ChatMessage{{ID: "msg-1"}})
	})

	err := client.SendFrame(NewFrame(MessageTypeSuccess))
	assert.Error(t, err)
}

func TestUnregisterTwiceIsSafe(t *testing.T) {
	hub := NewHub()
	client := newHubClient(hub, "m1", "m2")

	hub.registerClient(client)
	hub.unregisterClient(client)

	assert.NotPanics(t, func() {
		client.closeSend()
	})
}

func TestSendFrameBeforeTeardownStillQueues(t *testing.T) {
	hub := NewHub()
	client := newHubClient(hub, "m1", "m2")

	hub.registerClient(client)

	assert.NoError(t, client.SendFrame(NewFrame(MessageTypeSuccess)))
	assert.Len(t, client.Send, 1)

	hub.unregisterClient(client)
}
