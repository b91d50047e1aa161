package services

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"skillswap/internal/models"
	"skillswap/internal/utils"
	"skillswap/pkg/database"
	"skillswap/pkg/logger"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ChatService implements the pull-based conversation model: every load
// fetches a bounded page of the whole chatmessages collection, filters
// it to the unordered identity pair in the service, orders it by
// timestamp and reconciles read state. No pair filtering is pushed down
// to the store, which caps correctness at collections below the fetch
// limit.
type ChatService struct {
	db         *mongo.Database
	collection *mongo.Collection
	fetchLimit int64
	maxFile    int64
}

func NewChatService(db *mongo.Database, fetchLimit, maxFileSize int64) *ChatService {
	return &ChatService{
		db:         db,
		collection: db.Collection(database.CollectionChatMessages),
		fetchLimit: fetchLimit,
		maxFile:    maxFileSize,
	}
}

// LoadConversation returns the ordered conversation between selfID and
// peerID and then marks every unread message addressed to selfID as
// read. The returned snapshot carries the read flags as fetched: a
// message first seen in this cycle still shows isRead=false and flips on
// the next load, which is what the peer observes too.
func (s *ChatService) LoadConversation(ctx context.Context, selfID, peerID string) ([]models.ChatMessage, error) {
	opCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	opts := options.Find().SetLimit(s.fetchLimit)

	cursor, err := s.collection.Find(opCtx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch messages: %w", err)
	}
	defer cursor.Close(opCtx)

	var all []models.ChatMessage
	if err = cursor.All(opCtx, &all); err != nil {
		return nil, fmt.Errorf("failed to decode messages: %w", err)
	}

	conversation := FilterConversation(all, selfID, peerID)

	// Read-state reconciliation: one update per message, errors logged
	// and swallowed. Marking is idempotent, so a duplicate update from a
	// racing cycle is harmless.
	for _, id := range UnreadFor(conversation, selfID) {
		if err := s.markRead(opCtx, id); err != nil {
			logger.LogError(err, "Failed to mark message read", map[string]interface{}{
				"message_id": id,
				"member_id":  selfID,
			})
		}
	}

	return conversation, nil
}

func (s *ChatService) markRead(ctx context.Context, messageID string) error {
	_, err := s.collection.UpdateOne(ctx,
		bson.M{"_id": messageID},
		bson.M{"$set": bson.M{"is_read": true}})
	return err
}

// SendMessage validates, stores and returns a new message. Either text
// content or a file must be present. Callers re-fetch the conversation
// immediately on success rather than waiting for the next poll tick.
func (s *ChatService) SendMessage(ctx context.Context, selfID, peerID, content string, file *models.FileData) (*models.ChatMessage, error) {
	content = strings.TrimSpace(content)
	if content == "" && file == nil {
		return nil, fmt.Errorf("%w: message needs text or a file", ErrValidation)
	}

	if file != nil {
		if file.Size > s.maxFile {
			return nil, fmt.Errorf("%w: file exceeds %d bytes", ErrValidation, s.maxFile)
		}
		file = SanitizeAttachment(file)
	}

	message := &models.ChatMessage{
		ID:          uuid.NewString(),
		SenderID:    selfID,
		RecipientID: peerID,
		Content:     content,
		Timestamp:   time.Now(),
		IsRead:      false,
		FileData:    file,
	}

	opCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if _, err := s.collection.InsertOne(opCtx, message); err != nil {
		logger.LogError(err, "Failed to send message", map[string]interface{}{
			"sender_id":    selfID,
			"recipient_id": peerID,
		})
		return nil, fmt.Errorf("failed to send message: %w", err)
	}

	logger.LogConversationEvent("message_sent", selfID, peerID, map[string]interface{}{
		"message_id": message.ID,
		"has_file":   file != nil,
	})

	return message, nil
}

// UnreadCount returns how many messages addressed to selfID are unread,
// grouped by sender.
func (s *ChatService) UnreadCount(ctx context.Context, selfID string) (map[string]int, error) {
	opCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	opts := options.Find().SetLimit(s.fetchLimit)

	cursor, err := s.collection.Find(opCtx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch messages: %w", err)
	}
	defer cursor.Close(opCtx)

	var all []models.ChatMessage
	if err = cursor.All(opCtx, &all); err != nil {
		return nil, fmt.Errorf("failed to decode messages: %w", err)
	}

	counts := make(map[string]int)
	for _, msg := range all {
		if msg.RecipientID == selfID && !msg.IsRead {
			counts[msg.SenderID]++
		}
	}

	return counts, nil
}

// FilterConversation keeps the messages exchanged between the unordered
// pair (a, b) and returns them in ascending timestamp order. The result
// is identical whichever of the two identities is "self".
func FilterConversation(messages []models.ChatMessage, a, b string) []models.ChatMessage {
	conversation := make([]models.ChatMessage, 0, len(messages))
	for _, msg := range messages {
		if (msg.SenderID == a && msg.RecipientID == b) ||
			(msg.SenderID == b && msg.RecipientID == a) {
			conversation = append(conversation, msg)
		}
	}

	sort.SliceStable(conversation, func(i, j int) bool {
		return conversation[i].Timestamp.Before(conversation[j].Timestamp)
	})

	return conversation
}

// UnreadFor returns the ids of messages addressed to selfID that are
// still unread. Applying the resulting updates twice yields the same
// read state as applying them once.
func UnreadFor(messages []models.ChatMessage, selfID string) []string {
	var ids []string
	for _, msg := range messages {
		if msg.RecipientID == selfID && !msg.IsRead {
			ids = append(ids, msg.ID)
		}
	}
	return ids
}

// SanitizeAttachment enforces the attachment rule: images keep their
// inline data URL, any other file type is reduced to name/type/size
// metadata with no retrievable payload.
func SanitizeAttachment(file *models.FileData) *models.FileData {
	clean := *file
	if !utils.IsImageType(clean.Type) {
		clean.DataURL = ""
	}
	return &clean
}
