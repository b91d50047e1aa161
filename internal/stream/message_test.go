package stream

import (
	"testing"

	"skillswap/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFrame(t *testing.T) {
	frame, err := ParseFrame([]byte(`{"type":"send","content":"hi"}`))
	require.NoError(t, err)
	assert.Equal(t, MessageTypeSend, frame.Type)
	assert.Equal(t, "hi", frame.Content)
	assert.False(t, frame.Timestamp.IsZero())
}

func TestParseFrameRejectsInvalidJSON(t *testing.T) {
	_, err := ParseFrame([]byte(`{not json`))
	assert.Error(t, err)
}

func TestFrameValidate(t *testing.T) {
	send := &Frame{Type: MessageTypeSend, Content: "hello"}
	assert.NoError(t, send.Validate())

	fileOnly := &Frame{Type: MessageTypeSend, FileData: &models.FileData{Name: "a.png", Type: "image/png"}}
	assert.NoError(t, fileOnly.Validate())

	empty := &Frame{Type: MessageTypeSend}
	assert.Error(t, empty.Validate())

	heartbeat := &Frame{Type: MessageTypeHeartbeat}
	assert.NoError(t, heartbeat.Validate())

	// Server-to-client types are not accepted inbound.
	snapshot := &Frame{Type: MessageTypeSnapshot}
	assert.Error(t, snapshot.Validate())
}
