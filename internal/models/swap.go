package models

import "time"

// SwapStatus is the lifecycle state of a swap request.
type SwapStatus string

const (
	SwapStatusPending   SwapStatus = "pending"
	SwapStatusConfirmed SwapStatus = "confirmed"
	SwapStatusRejected  SwapStatus = "rejected"
)

// Terminal reports whether no further transition is permitted.
func (s SwapStatus) Terminal() bool {
	return s == SwapStatusConfirmed || s == SwapStatusRejected
}

// SwapRequest is a proposed skill exchange between two profiles. The
// preferred session modes and, after confirmation, the meeting details
// live inside the free-text message field rather than structured fields.
type SwapRequest struct {
	ID                 string     `bson:"_id" json:"id"`
	SenderProfileID    string     `bson:"sender_profile_id" json:"senderProfileId"`
	RecipientProfileID string     `bson:"recipient_profile_id" json:"recipientProfileId"`
	Message            string     `bson:"message" json:"message"`
	Status             SwapStatus `bson:"status" json:"status"`
	SentAt             time.Time  `bson:"sent_at" json:"sentAt"`
}
