package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"skillswap/internal/models"
	"skillswap/pkg/database"
	"skillswap/pkg/logger"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// SwapService owns the swaprequests collection and enforces the
// three-state lifecycle: pending -> confirmed | rejected, both terminal.
// The store itself cannot refuse a bad transition, so decisions use a
// conditional update on status=pending; a request that has already been
// decided matches nothing.
type SwapService struct {
	db         *mongo.Database
	collection *mongo.Collection
	fetchLimit int64
}

func NewSwapService(db *mongo.Database, fetchLimit int64) *SwapService {
	return &SwapService{
		db:         db,
		collection: db.Collection(database.CollectionSwapRequests),
		fetchLimit: fetchLimit,
	}
}

// SessionModes are the sender's preferred meeting modes. At least one
// must be picked; the choice is serialized into the request message
// rather than stored structurally.
type SessionModes struct {
	Online  bool `json:"online"`
	Offline bool `json:"offline"`
}

// MeetingDetails is what a confirmation appends into the message field.
type MeetingDetails struct {
	Date     string `json:"date"`
	Time     string `json:"time"`
	Location string `json:"location"`
	Notes    string `json:"notes"`
}

// CreateRequest stores a new pending swap request from sender to
// recipient.
func (s *SwapService) CreateRequest(ctx context.Context, senderID, recipientID, message string, modes SessionModes) (*models.SwapRequest, error) {
	if senderID == recipientID {
		return nil, fmt.Errorf("%w: cannot send a request to yourself", ErrValidation)
	}

	composed, err := ComposeRequestMessage(message, modes)
	if err != nil {
		return nil, err
	}

	request := &models.SwapRequest{
		ID:                 uuid.NewString(),
		SenderProfileID:    senderID,
		RecipientProfileID: recipientID,
		Message:            composed,
		Status:             models.SwapStatusPending,
		SentAt:             time.Now(),
	}

	opCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if _, err := s.collection.InsertOne(opCtx, request); err != nil {
		logger.LogError(err, "Failed to create swap request", map[string]interface{}{
			"sender_id":    senderID,
			"recipient_id": recipientID,
		})
		return nil, fmt.Errorf("failed to create swap request: %w", err)
	}

	logger.LogSwapEvent("request_sent", request.ID, senderID, map[string]interface{}{
		"recipient_id": recipientID,
	})

	return request, nil
}

// ListIncoming returns requests addressed to the member, newest first.
// Filtering happens in the service over a bounded fetch.
func (s *SwapService) ListIncoming(ctx context.Context, memberID string) ([]models.SwapRequest, error) {
	return s.list(ctx, func(r *models.SwapRequest) bool {
		return r.RecipientProfileID == memberID
	})
}

// ListOutgoing returns requests the member has sent, newest first.
func (s *SwapService) ListOutgoing(ctx context.Context, memberID string) ([]models.SwapRequest, error) {
	return s.list(ctx, func(r *models.SwapRequest) bool {
		return r.SenderProfileID == memberID
	})
}

func (s *SwapService) list(ctx context.Context, keep func(*models.SwapRequest) bool) ([]models.SwapRequest, error) {
	opCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	opts := options.Find().
		SetLimit(s.fetchLimit).
		SetSort(bson.D{{Key: "sent_at", Value: -1}})

	cursor, err := s.collection.Find(opCtx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch swap requests: %w", err)
	}
	defer cursor.Close(opCtx)

	var all []models.SwapRequest
	if err = cursor.All(opCtx, &all); err != nil {
		return nil, fmt.Errorf("failed to decode swap requests: %w", err)
	}

	filtered := make([]models.SwapRequest, 0, len(all))
	for i := range all {
		if keep(&all[i]) {
			filtered = append(filtered, all[i])
		}
	}

	return filtered, nil
}

// GetRequest fetches a request by id.
func (s *SwapService) GetRequest(ctx context.Context, requestID string) (*models.SwapRequest, error) {
	opCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var request models.SwapRequest
	err := s.collection.FindOne(opCtx, bson.M{"_id": requestID}).Decode(&request)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get swap request: %w", err)
	}

	return &request, nil
}

// Confirm transitions a pending request to confirmed and writes the
// meeting details into the message field. Only the recipient may
// confirm; a decided request is never re-decided.
func (s *SwapService) Confirm(ctx context.Context, requestID, memberID string, details MeetingDetails) (*models.SwapRequest, error) {
	if strings.TrimSpace(details.Date) == "" || strings.TrimSpace(details.Time) == "" || strings.TrimSpace(details.Location) == "" {
		return nil, fmt.Errorf("%w: date, time and location are required", ErrValidation)
	}

	return s.decide(ctx, requestID, memberID, models.SwapStatusConfirmed, bson.M{
		"status":  models.SwapStatusConfirmed,
		"message": ConfirmationMessage(details),
	})
}

// Reject transitions a pending request to rejected. Recipient only.
func (s *SwapService) Reject(ctx context.Context, requestID, memberID string) (*models.SwapRequest, error) {
	return s.decide(ctx, requestID, memberID, models.SwapStatusRejected, bson.M{
		"status": models.SwapStatusRejected,
	})
}

// EnsureDecidable reports whether the member may still decide the
// request. Only the recipient decides, and a confirmed or rejected
// request never re-transitions.
func EnsureDecidable(request *models.SwapRequest, memberID string) error {
	if request.RecipientProfileID != memberID {
		return ErrAccessDenied
	}
	if request.Status.Terminal() {
		return ErrTerminalStatus
	}
	return nil
}

func (s *SwapService) decide(ctx context.Context, requestID, memberID string, target models.SwapStatus, set bson.M) (*models.SwapRequest, error) {
	request, err := s.GetRequest(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if err := EnsureDecidable(request, memberID); err != nil {
		return nil, err
	}

	opCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	// Conditional on pending so racing decisions cannot double-transition.
	result, err := s.collection.UpdateOne(opCtx,
		bson.M{"_id": requestID, "status": models.SwapStatusPending},
		bson.M{"$set": set})
	if err != nil {
		logger.LogError(err, "Failed to decide swap request", map[string]interface{}{
			"request_id": requestID,
			"member_id":  memberID,
			"target":     string(target),
		})
		return nil, fmt.Errorf("failed to update swap request: %w", err)
	}
	if result.MatchedCount == 0 {
		return nil, ErrTerminalStatus
	}

	logger.LogSwapEvent("request_"+string(target), requestID, memberID, nil)

	return s.GetRequest(ctx, requestID)
}

// ComposeRequestMessage appends the preferred session modes to the
// sender's free-text message. At least one mode is required.
func ComposeRequestMessage(message string, modes SessionModes) (string, error) {
	if !modes.Online && !modes.Offline {
		return "", fmt.Errorf("%w: pick at least one session mode", ErrValidation)
	}

	var picked []string
	if modes.Online {
		picked = append(picked, "Online")
	}
	if modes.Offline {
		picked = append(picked, "Offline")
	}

	message = strings.TrimSpace(message)
	suffix := "Preferred Session Mode(s): " + strings.Join(picked, ", ")
	if message == "" {
		return suffix, nil
	}
	return message + "\n\n" + suffix, nil
}

// ConfirmationMessage renders the message a confirmation overwrites the
// request with.
func ConfirmationMessage(details MeetingDetails) string {
	return fmt.Sprintf("Meeting confirmed - %s at %s in %s. %s",
		details.Date, details.Time, details.Location, details.Notes)
}
