package stream

import (
	"encoding/json"
	"fmt"
	"time"

	"skillswap/internal/models"
)

// MessageType identifies a frame on the conversation stream.
type MessageType string

const (
	// Client to server.
	MessageTypeSend      MessageType = "send"
	MessageTypeHeartbeat MessageType = "heartbeat"

	// Server to client.
	MessageTypeSnapshot MessageType = "snapshot"
	MessageTypeError    MessageType = "error"
	MessageTypeSuccess  MessageType = "success"
)

// Frame is the envelope exchanged over a conversation stream.
// Inbound frames carry a message to send; outbound snapshot frames
// carry the full conversation, replacing whatever the client holds.
type Frame struct {
	Type      MessageType          `json:"type"`
	Content   string               `json:"content,omitempty"`
	FileData  *models.FileData     `json:"fileData,omitempty"`
	Messages  []models.ChatMessage `json:"messages,omitempty"`
	Error     string               `json:"error,omitempty"`
	Timestamp time.Time            `json:"timestamp"`
}

func NewFrame(msgType MessageType) *Frame {
	return &Frame{
		Type:      msgType,
		Timestamp: time.Now(),
	}
}

func NewSnapshotFrame(messages []models.ChatMessage) *Frame {
	frame := NewFrame(MessageTypeSnapshot)
	frame.Messages = messages
	return frame
}

func NewErrorFrame(message string) *Frame {
	frame := NewFrame(MessageTypeError)
	frame.Error = message
	return frame
}

func (f *Frame) ToJSON() ([]byte, error) {
	return json.Marshal(f)
}

func ParseFrame(data []byte) (*Frame, error) {
	var frame Frame
	if err := json.Unmarshal(data, &frame); err != nil {
		return nil, err
	}
	if frame.Timestamp.IsZero() {
		frame.Timestamp = time.Now()
	}
	return &frame, nil
}

// Validate checks an inbound frame.
func (f *Frame) Validate() error {
	switch f.Type {
	case MessageTypeSend:
		if f.Content == "" && f.FileData == nil {
			return fmt.Errorf("send frame needs content or a file")
		}
	case MessageTypeHeartbeat:
	default:
		return fmt.Errorf("unknown frame type: %s", f.Type)
	}
	return nil
}
