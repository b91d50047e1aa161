package models

import "time"

// Member is the identity record all ownership checks key off.
type Member struct {
	ID           string     `bson:"_id" json:"id"`
	Email        string     `bson:"email" json:"email"`
	PasswordHash string     `bson:"password_hash" json:"-"`
	Nickname     string     `bson:"nickname" json:"nickname"`
	CreatedAt    time.Time  `bson:"created_at" json:"created_at"`
	LastLogin    *time.Time `bson:"last_login,omitempty" json:"last_login,omitempty"`
}
