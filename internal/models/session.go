package models

import "time"

// SessionStatus is the declared state of a scheduled session.
type SessionStatus string

const (
	SessionStatusScheduled SessionStatus = "scheduled"
	SessionStatusCompleted SessionStatus = "completed"
	SessionStatusCancelled SessionStatus = "cancelled"
)

// Session is a scheduled meeting between two identities. Updates are
// full-record overwrites with no version field: last write wins.
type Session struct {
	ID                string        `bson:"_id" json:"id"`
	HostID            string        `bson:"host_id" json:"hostId"`
	ParticipantID     string        `bson:"participant_id" json:"participantId"`
	ScheduledDateTime time.Time     `bson:"scheduled_date_time" json:"scheduledDateTime"`
	GoogleMeetLink    string        `bson:"google_meet_link" json:"googleMeetLink"`
	SessionStatus     SessionStatus `bson:"session_status" json:"sessionStatus"`
	CreatedAt         time.Time     `bson:"created_at" json:"created_at"`
	UpdatedAt         time.Time     `bson:"updated_at" json:"updated_at"`
}

// SessionAccess is the outcome of the time gate on session entry.
// When Live is false the session has not started: only the scheduled
// time is exposed and no live payload is populated. Elapsed counts from
// the scheduled start, not from the moment of joining.
type SessionAccess struct {
	SessionID         string        `json:"sessionId"`
	Live              bool          `json:"live"`
	ScheduledDateTime time.Time     `json:"scheduledDateTime"`
	Elapsed           time.Duration `json:"elapsed,omitempty"`
	GoogleMeetLink    string        `json:"googleMeetLink,omitempty"`
	PeerID            string        `json:"peerId,omitempty"`
}
