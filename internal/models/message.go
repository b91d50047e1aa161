package models

import "time"

// FileData describes a message attachment. Images carry their content
// inline as a data URL; any other file type carries only name/type/size
// metadata with no retrievable payload.
type FileData struct {
	Name    string `bson:"name" json:"name"`
	Type    string `bson:"type" json:"type"`
	Size    int64  `bson:"size" json:"size"`
	DataURL string `bson:"data_url,omitempty" json:"dataUrl,omitempty"`
}

// ChatMessage is a single direct message. Immutable once created except
// for the IsRead flag, which the recipient's poll cycle flips. There is
// no conversation record: a conversation is the derived set of messages
// whose (sender, recipient) matches an unordered pair of identities.
type ChatMessage struct {
	ID          string    `bson:"_id" json:"id"`
	SenderID    string    `bson:"sender_id" json:"senderId"`
	RecipientID string    `bson:"recipient_id" json:"recipientId"`
	Content     string    `bson:"content,omitempty" json:"content,omitempty"`
	Timestamp   time.Time `bson:"timestamp" json:"timestamp"`
	IsRead      bool      `bson:"is_read" json:"isRead"`
	FileData    *FileData `bson:"file_data,omitempty" json:"fileData,omitempty"`
}
