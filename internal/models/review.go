package models

import "time"

// Review is created once, deletable only by its author, never updated.
type Review struct {
	ID         string    `bson:"_id" json:"id"`
	ReviewerID string    `bson:"reviewer_id" json:"reviewerId"`
	RevieweeID string    `bson:"reviewee_id" json:"revieweeId"`
	Rating     int       `bson:"rating" json:"rating"` // 1-5
	Comment    string    `bson:"comment,omitempty" json:"comment,omitempty"`
	SessionID  string    `bson:"session_id,omitempty" json:"sessionId,omitempty"`
	CreatedAt  time.Time `bson:"created_at" json:"created_at"`
}
