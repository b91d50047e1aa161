package services

import (
	"testing"
	"time"

	"skillswap/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scheduledSession(start time.Time) *models.Session {
	return &models.Session{
		ID:                "sess-1",
		HostID:            "host",
		ParticipantID:     "learner",
		ScheduledDateTime: start,
		GoogleMeetLink:    "https://meet.google.com/abc-defg-hij",
		SessionStatus:     models.SessionStatusScheduled,
	}
}

func TestEvaluateAccessBeforeStart(t *testing.T) {
	start := time.Date(2024, 6, 1, 14, 0, 0, 0, time.UTC)
	session := scheduledSession(start)

	access, err := EvaluateAccess(session, "host", start.Add(-10*time.Minute))

	require.NoError(t, err)
	assert.False(t, access.Live)
	assert.Equal(t, start, access.ScheduledDateTime)
	assert.Empty(t, access.GoogleMeetLink)
	assert.Zero(t, access.Elapsed)
}

func TestEvaluateAccessAtStart(t *testing.T) {
	start := time.Date(2024, 6, 1, 14, 0, 0, 0, time.UTC)
	session := scheduledSession(start)

	access, err := EvaluateAccess(session, "host", start)

	require.NoError(t, err)
	assert.True(t, access.Live)
	assert.Zero(t, access.Elapsed)
	assert.Equal(t, session.GoogleMeetLink, access.GoogleMeetLink)
}

func TestEvaluateAccessElapsedFromScheduledStart(t *testing.T) {
	start := time.Date(2024, 6, 1, 14, 0, 0, 0, time.UTC)
	session := scheduledSession(start)

	// Joining late still measures from the scheduled start.
	access, err := EvaluateAccess(session, "learner", start.Add(25*time.Minute))

	require.NoError(t, err)
	assert.True(t, access.Live)
	assert.Equal(t, 25*time.Minute, access.Elapsed)
}

func TestEvaluateAccessStaysOpenAfterStart(t *testing.T) {
	start := time.Date(2024, 6, 1, 14, 0, 0, 0, time.UTC)
	session := scheduledSession(start)

	access, err := EvaluateAccess(session, "host", start.Add(48*time.Hour))

	require.NoError(t, err)
	assert.True(t, access.Live)
	assert.Equal(t, 48*time.Hour, access.Elapsed)
}

func TestEvaluateAccessPeer(t *testing.T) {
	start := time.Date(2024, 6, 1, 14, 0, 0, 0, time.UTC)
	session := scheduledSession(start)

	hostView, err := EvaluateAccess(session, "host", start.Add(time.Minute))
	require.NoError(t, err)
	assert.Equal(t, "learner", hostView.PeerID)

	learnerView, err := EvaluateAccess(session, "learner", start.Add(time.Minute))
	require.NoError(t, err)
	assert.Equal(t, "host", learnerView.PeerID)
}

func TestEvaluateAccessNonMember(t *testing.T) {
	start := time.Date(2024, 6, 1, 14, 0, 0, 0, time.UTC)
	session := scheduledSession(start)

	_, err := EvaluateAccess(session, "stranger", start.Add(time.Minute))

	assert.ErrorIs(t, err, ErrAccessDenied)
}
