package services

import (
	"context"
	"fmt"
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

// SessionService owns the sessions collection. Updates are full-record
// overwrites with no version check; concurrent writers silently take
// last-write-wins.
type SessionService struct {
	db         *mongo.Database
	collection *mongo.Collection
	fetchLimit int64
}

func NewSessionService(db *mongo.Database, fetchLimit int64) *SessionService {
	return &SessionService{
		db:         db,
		collection: db.Collection(database.CollectionSessions),
		fetchLimit: fetchLimit,
	}
}

// CreateSession stores a new scheduled session hosted by hostID.
func (s *SessionService) CreateSession(ctx context.Context, hostID, participantID, meetLink string, scheduled time.Time) (*models.Session, error) {
	if strings.TrimSpace(participantID) == "" {
		return nil, fmt.Errorf("%w: participant is required", ErrValidation)
	}
	if strings.TrimSpace(meetLink) == "" {
		return nil, fmt.Errorf("%w: meet link is required", ErrValidation)
	}
	if scheduled.IsZero() {
		return nil, fmt.Errorf("%w: scheduled time is required", ErrValidation)
	}
	if hostID == participantID {
		return nil, fmt.Errorf("%w: host cannot be the participant", ErrValidation)
	}

	now := time.Now()
	session := &models.Session{
		ID:                uuid.NewString(),
		HostID:            hostID,
		ParticipantID:     participantID,
		ScheduledDateTime: scheduled,
		GoogleMeetLink:    meetLink,
		SessionStatus:     models.SessionStatusScheduled,
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	opCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if _, err := s.collection.InsertOne(opCtx, session); err != nil {
		logger.LogError(err, "Failed to create session", map[string]interface{}{
			"host_id":        hostID,
			"participant_id": participantID,
		})
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	logger.LogSessionEvent("session_created", session.ID, hostID, map[string]interface{}{
		"participant_id": participantID,
		"scheduled":      scheduled,
	})

	return session, nil
}

// ListSessions returns the sessions the member hosts or participates in.
// Membership filtering happens in the service over a bounded fetch.
func (s *SessionService) ListSessions(ctx context.Context, memberID string) ([]models.Session, error) {
	opCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	opts := options.Find().
		SetLimit(s.fetchLimit).
		SetSort(bson.D{{Key: "scheduled_date_time", Value: -1}})

	cursor, err := s.collection.Find(opCtx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch sessions: %w", err)
	}
	defer cursor.Close(opCtx)

	var all []models.Session
	if err = cursor.All(opCtx, &all); err != nil {
		return nil, fmt.Errorf("failed to decode sessions: %w", err)
	}

	mine := make([]models.Session, 0, len(all))
	for _, session := range all {
		if session.HostID == memberID || session.ParticipantID == memberID {
			mine = append(mine, session)
		}
	}

	return mine, nil
}

// GetSession fetches a session by id.
func (s *SessionService) GetSession(ctx context.Context, sessionID string) (*models.Session, error) {
	opCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var session models.Session
	err := s.collection.FindOne(opCtx, bson.M{"_id": sessionID}).Decode(&session)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	return &session, nil
}

// UpdateSession overwrites the mutable fields. Either party may update;
// there is no version check.
func (s *SessionService) UpdateSession(ctx context.Context, sessionID, memberID, meetLink string, scheduled time.Time, status models.SessionStatus) (*models.Session, error) {
	session, err := s.GetSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session.HostID != memberID && session.ParticipantID != memberID {
		return nil, ErrAccessDenied
	}
	if !utils.ValidateSessionStatus(string(status)) {
		return nil, fmt.Errorf("%w: invalid session status", ErrValidation)
	}

	opCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	update := bson.M{
		"$set": bson.M{
			"google_meet_link":    meetLink,
			"scheduled_date_time": scheduled,
			"session_status":      status,
			"updated_at":          time.Now(),
		},
	}

	if _, err := s.collection.UpdateOne(opCtx, bson.M{"_id": sessionID}, update); err != nil {
		logger.LogError(err, "Failed to update session", map[string]interface{}{
			"session_id": sessionID,
			"member_id":  memberID,
		})
		return nil, fmt.Errorf("failed to update session: %w", err)
	}

	logger.LogSessionEvent("session_updated", sessionID, memberID, nil)

	return s.GetSession(ctx, sessionID)
}

// DeleteSession removes a session. Either party may delete.
func (s *SessionService) DeleteSession(ctx context.Context, sessionID, memberID string) error {
	session, err := s.GetSession(ctx, sessionID)
	if err != nil {
		return err
	}
	if session.HostID != memberID && session.ParticipantID != memberID {
		return ErrAccessDenied
	}

	opCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if _, err := s.collection.DeleteOne(opCtx, bson.M{"_id": sessionID}); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}

	logger.LogSessionEvent("session_deleted", sessionID, memberID, nil)

	return nil
}

// EnterSession applies the access gate and returns the session state
// for the member at the current time.
func (s *SessionService) EnterSession(ctx context.Context, sessionID, memberID string) (*models.SessionAccess, error) {
	session, err := s.GetSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	access, err := EvaluateAccess(session, memberID, time.Now())
	if err != nil {
		return nil, err
	}

	if access.Live {
		logger.LogSessionEvent("session_entered", sessionID, memberID, map[string]interface{}{
			"elapsed": access.Elapsed.String(),
		})
	}

	return access, nil
}

// EvaluateAccess is the session time gate. The member must be the host
// or the participant. Before the scheduled start only the scheduled
// time is exposed; from the scheduled start on, the session is live
// with elapsed measured from the scheduled start (not from the moment
// of joining) and stays enterable indefinitely.
func EvaluateAccess(session *models.Session, memberID string, now time.Time) (*models.SessionAccess, error) {
	if session.HostID != memberID && session.ParticipantID != memberID {
		return nil, ErrAccessDenied
	}

	access := &models.SessionAccess{
		SessionID:         session.ID,
		ScheduledDateTime: session.ScheduledDateTime,
	}

	if now.Before(session.ScheduledDateTime) {
		access.Live = false
		return access, nil
	}

	access.Live = true
	access.Elapsed = now.Sub(session.ScheduledDateTime)
	access.GoogleMeetLink = session.GoogleMeetLink
	if session.HostID == memberID {
		access.PeerID = session.ParticipantID
	} else {
		access.PeerID = session.HostID
	}

	return access, nil
}
