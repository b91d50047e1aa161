package stream

import (
	"context"
	"fmt"
	"sync"
	"time"

	"skillswap/internal/models"
	"skillswap/internal/services"
	"skillswap/pkg/logger"

	"github.com/gorilla/websocket"
)

const (
	// Time allowed to write a message to the peer
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer. Attachments travel as
	// base64 data URLs inside the frame, so this must fit one image.
	maxMessageSize = 15 * 1024 * 1024

	// Buffer size for client send channel
	sendBufferSize = 32
)

var newline = []byte{'\n'}

// Client is one open conversation stream: a member's WebSocket
// connection bound to a single peer. The client owns a poller that
// pushes snapshot frames down the connection.
type Client struct {
	Conn *websocket.Conn
	Hub  *Hub

	// Buffered channel of outbound frames
	Send chan []byte

	MemberID string
	PeerID   string

	ConnectedAt time.Time
	LastPong    time.Time

	chats  *services.ChatService
	poller *ConversationPoller
	cancel context.CancelFunc

	// mu also guards closed. Once closed is set the send channel is
	// gone and frames are dropped.
	mu     sync.Mutex
	closed bool
}

func NewClient(conn *websocket.Conn, hub *Hub, chats *services.ChatService, memberID, peerID string, pollInterval time.Duration) *Client {
	client := &Client{
		Conn:        conn,
		Hub:         hub,
		Send:        make(chan []byte, sendBufferSize),
		MemberID:    memberID,
		PeerID:      peerID,
		ConnectedAt: time.Now(),
		LastPong:    time.Now(),
		chats:       chats,
	}

	client.poller = NewConversationPoller(memberID, peerID, pollInterval, chats.LoadConversation)

	return client
}

// Start launches the pumps and the poller. Returns once the
// connection is being serviced; the pumps run until the connection
// drops or the context is cancelled.
func (c *Client) Start(ctx context.Context) {
	pollCtx, cancel := context.WithCancel(ctx)
	c.cancel = cancel

	c.Hub.Register <- c

	go c.poller.Run(pollCtx, c.pushSnapshot)
	go c.WritePump()
	go c.ReadPump()
}

// ReadPump pumps frames from the WebSocket connection.
func (c *Client) ReadPump() {
	defer func() {
		c.cancel()
		c.Hub.Unregister <- c
		c.Conn.Close()
		c.logDisconnection()
	}()

	c.Conn.SetReadLimit(maxMessageSize)
	c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	c.Conn.SetPongHandler(func(string) error {
		c.mu.Lock()
		c.LastPong = time.Now()
		c.mu.Unlock()
		c.Conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	logger.LogConversationEvent("stream_opened", c.MemberID, c.PeerID, nil)

	for {
		_, data, err := c.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				logger.WithFields(map[string]interface{}{
					"member_id": c.MemberID,
					"error":     err.Error(),
				}).Error("WebSocket read error")
			}
			break
		}

		frame, err := ParseFrame(data)
		if err != nil {
			c.sendError(fmt.Sprintf("Invalid frame format: %v", err))
			continue
		}

		if err := frame.Validate(); err != nil {
			c.sendError(err.Error())
			continue
		}

		c.handleFrame(frame)
	}
}

// WritePump pumps frames from the send channel to the WebSocket
// connection.
func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.Conn.Close()
	}()

	for {
		select {
		case data, ok := <-c.Send:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			w, err := c.Conn.NextWriter(websocket.TextMessage)
			if err != nil {
				return
			}
			w.Write(data)

			// Add queued frames to the current write
			n := len(c.Send)
			for i := 0; i < n; i++ {
				w.Write(newline)
				w.Write(<-c.Send)
			}

			if err := w.Close(); err != nil {
				return
			}

		case <-ticker.C:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (c *Client) handleFrame(frame *Frame) {
	switch frame.Type {
	case MessageTypeSend:
		c.handleSend(frame)
	case MessageTypeHeartbeat:
		c.handleHeartbeat()
	default:
		c.sendError(fmt.Sprintf("Unknown frame type: %s", frame.Type))
	}
}

// handleSend persists the message and kicks the poller so the
// snapshot including it goes out immediately instead of on the next
// tick.
func (c *Client) handleSend(frame *Frame) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_, err := c.chats.SendMessage(ctx, c.MemberID, c.PeerID, frame.Content, frame.FileData)
	if err != nil {
		c.sendError(fmt.Sprintf("Failed to send message: %v", err))
		return
	}

	c.poller.Kick()

	// The peer's poller picks the message up on its own cycle, but
	// kicking it here closes the gap when both sides are connected.
	c.Hub.KickPeer(c.PeerID, c.MemberID)
}

func (c *Client) handleHeartbeat() {
	frame := NewFrame(MessageTypeSuccess)
	c.SendFrame(frame)
}

func (c *Client) pushSnapshot(messages []models.ChatMessage) {
	c.SendFrame(NewSnapshotFrame(messages))
}

// SendFrame queues a frame for delivery. A full buffer drops the
// connection; the client reconnects and gets a fresh snapshot. Frames
// arriving after teardown, such as a poller fetch already in flight at
// disconnect, are dropped rather than sent on the closed channel.
func (c *Client) SendFrame(frame *Frame) error {
	data, err := frame.ToJSON()
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return fmt.Errorf("stream closed")
	}

	select {
	case c.Send <- data:
		return nil
	default:
		c.Conn.Close()
		return fmt.Errorf("client send buffer full")
	}
}

// closeSend closes the send channel exactly once. Called by the hub on
// unregister; SendFrame holds the same lock, so no sender can race the
// close.
func (c *Client) closeSend() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return
	}
	c.closed = true
	close(c.Send)
}

func (c *Client) sendError(message string) {
	c.SendFrame(NewErrorFrame(message))
}

func (c *Client) logDisconnection() {
	duration := time.Since(c.ConnectedAt)

	logger.LogConversationEvent("stream_closed", c.MemberID, c.PeerID, map[string]interface{}{
		"duration_seconds": duration.Seconds(),
	})
}
