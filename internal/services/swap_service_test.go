package services

import (
	"testing"

	"skillswap/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComposeRequestMessage(t *testing.T) {
	tests := []struct {
		name    string
		message string
		modes   SessionModes
		want    string
	}{
		{
			name:    "online only",
			message: "I can teach you guitar",
			modes:   SessionModes{Online: true},
			want:    "I can teach you guitar\n\nPreferred Session Mode(s): Online",
		},
		{
			name:    "offline only",
			message: "Let's trade skills",
			modes:   SessionModes{Offline: true},
			want:    "Let's trade skills\n\nPreferred Session Mode(s): Offline",
		},
		{
			name:    "both modes",
			message: "Happy either way",
			modes:   SessionModes{Online: true, Offline: true},
			want:    "Happy either way\n\nPreferred Session Mode(s): Online, Offline",
		},
		{
			name:    "empty message keeps only the modes line",
			message: "",
			modes:   SessionModes{Online: true},
			want:    "Preferred Session Mode(s): Online",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ComposeRequestMessage(tt.message, tt.modes)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestComposeRequestMessageRequiresAMode(t *testing.T) {
	_, err := ComposeRequestMessage("hi", SessionModes{})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestConfirmationMessage(t *testing.T) {
	details := MeetingDetails{
		Date:     "2024-06-01",
		Time:     "14:00",
		Location: "City Library",
		Notes:    "Bring your own laptop.",
	}

	got := ConfirmationMessage(details)

	assert.Equal(t, "Meeting confirmed - 2024-06-01 at 14:00 in City Library. Bring your own laptop.", got)
}

func TestConfirmationMessageEmptyNotes(t *testing.T) {
	details := MeetingDetails{Date: "2024-06-01", Time: "14:00", Location: "Online"}

	got := ConfirmationMessage(details)

	assert.Equal(t, "Meeting confirmed - 2024-06-01 at 14:00 in Online. ", got)
}

func TestSwapStatusTerminal(t *testing.T) {
	assert.False(t, models.SwapStatusPending.Terminal())
	assert.True(t, models.SwapStatusConfirmed.Terminal())
	assert.True(t, models.SwapStatusRejected.Terminal())
}

func TestEnsureDecidable(t *testing.T) {
	request := func(status models.SwapStatus) *models.SwapRequest {
		return &models.SwapRequest{
			ID:                 "r1",
			SenderProfileID:    "sender",
			RecipientProfileID: "recipient",
			Status:             status,
		}
	}

	assert.NoError(t, EnsureDecidable(request(models.SwapStatusPending), "recipient"))

	// Only the recipient decides.
	err := EnsureDecidable(request(models.SwapStatusPending), "sender")
	assert.ErrorIs(t, err, ErrAccessDenied)

	// A decided request never re-transitions, in either direction.
	err = EnsureDecidable(request(models.SwapStatusRejected), "recipient")
	assert.ErrorIs(t, err, ErrTerminalStatus)

	err = EnsureDecidable(request(models.SwapStatusConfirmed), "recipient")
	assert.ErrorIs(t, err, ErrTerminalStatus)
}
