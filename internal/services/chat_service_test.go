package services

import (
	"testing"
	"time"

	"skillswap/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func msg(id, sender, recipient string, ts time.Time, isRead bool) models.ChatMessage {
	return models.ChatMessage{
		ID:          id,
		SenderID:    sender,
		RecipientID: recipient,
		Content:     "hello",
		Timestamp:   ts,
		IsRead:      isRead,
	}
}

func TestFilterConversation(t *testing.T) {
	base := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	all := []models.ChatMessage{
		msg("m3", "bob", "alice", base.Add(2*time.Minute), false),
		msg("m1", "alice", "bob", base, false),
		msg("m4", "carol", "alice", base.Add(3*time.Minute), false),
		msg("m2", "alice", "bob", base.Add(time.Minute), true),
		msg("m5", "bob", "carol", base.Add(4*time.Minute), false),
	}

	got := FilterConversation(all, "alice", "bob")

	require.Len(t, got, 3)
	assert.Equal(t, "m1", got[0].ID)
	assert.Equal(t, "m2", got[1].ID)
	assert.Equal(t, "m3", got[2].ID)
}

func TestFilterConversationSymmetric(t *testing.T) {
	base := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	all := []models.ChatMessage{
		msg("m1", "alice", "bob", base, false),
		msg("m2", "bob", "alice", base.Add(time.Minute), false),
		msg("m3", "carol", "bob", base.Add(2*time.Minute), false),
	}

	fromAlice := FilterConversation(all, "alice", "bob")
	fromBob := FilterConversation(all, "bob", "alice")

	assert.Equal(t, fromAlice, fromBob)
}

func TestFilterConversationEmpty(t *testing.T) {
	got := FilterConversation(nil, "alice", "bob")
	assert.Empty(t, got)
	assert.NotNil(t, got)
}

func TestFilterConversationStableOnEqualTimestamps(t *testing.T) {
	ts := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	all := []models.ChatMessage{
		msg("first", "alice", "bob", ts, false),
		msg("second", "bob", "alice", ts, false),
	}

	got := FilterConversation(all, "alice", "bob")

	require.Len(t, got, 2)
	assert.Equal(t, "first", got[0].ID)
	assert.Equal(t, "second", got[1].ID)
}

func TestUnreadFor(t *testing.T) {
	base := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	all := []models.ChatMessage{
		msg("m1", "bob", "alice", base, false),
		msg("m2", "bob", "alice", base.Add(time.Minute), true),
		msg("m3", "alice", "bob", base.Add(2*time.Minute), false),
		msg("m4", "carol", "alice", base.Add(3*time.Minute), false),
	}

	got := UnreadFor(all, "alice")

	// Own outgoing unread messages are the peer's to mark, not ours.
	assert.Equal(t, []string{"m1", "m4"}, got)
}

func TestUnreadForIdempotent(t *testing.T) {
	base := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	all := []models.ChatMessage{
		msg("m1", "bob", "alice", base, false),
		msg("m2", "bob", "alice", base.Add(time.Minute), false),
	}

	first := UnreadFor(all, "alice")
	require.Len(t, first, 2)

	// Simulate the marking having been applied.
	for i := range all {
		for _, id := range first {
			if all[i].ID == id {
				all[i].IsRead = true
			}
		}
	}

	assert.Empty(t, UnreadFor(all, "alice"))
}

func TestSanitizeAttachmentKeepsImagePayload(t *testing.T) {
	file := &models.FileData{
		Name:    "photo.png",
		Type:    "image/png",
		Size:    2048,
		DataURL: "data:image/png;base64,AAAA",
	}

	clean := SanitizeAttachment(file)

	assert.Equal(t, "data:image/png;base64,AAAA", clean.DataURL)
	assert.Equal(t, "photo.png", clean.Name)
}

func TestSanitizeAttachmentStripsNonImagePayload(t *testing.T) {
	file := &models.FileData{
		Name:    "notes.pdf",
		Type:    "application/pdf",
		Size:    4096,
		DataURL: "data:application/pdf;base64,AAAA",
	}

	clean := SanitizeAttachment(file)

	assert.Empty(t, clean.DataURL)
	assert.Equal(t, "notes.pdf", clean.Name)
	assert.Equal(t, "application/pdf", clean.Type)
	assert.Equal(t, int64(4096), clean.Size)

	// The original is left untouched.
	assert.Equal(t, "data:application/pdf;base64,AAAA", file.DataURL)
}
