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

// ReviewService owns the reviews collection. Reviews are append-only
// records; the only mutation is deletion by the author.
type ReviewService struct {
	db         *mongo.Database
	collection *mongo.Collection
	fetchLimit int64
}

func NewReviewService(db *mongo.Database, fetchLimit int64) *ReviewService {
	return &ReviewService{
		db:         db,
		collection: db.Collection(database.CollectionReviews),
		fetchLimit: fetchLimit,
	}
}

// CreateReview records a rating left by reviewerID for revieweeID.
func (s *ReviewService) CreateReview(ctx context.Context, reviewerID, revieweeID, sessionID, comment string, rating int) (*models.Review, error) {
	if reviewerID == revieweeID {
		return nil, fmt.Errorf("%w: cannot review yourself", ErrValidation)
	}
	if strings.TrimSpace(revieweeID) == "" {
		return nil, fmt.Errorf("%w: reviewee is required", ErrValidation)
	}
	if !utils.ValidateRating(rating) {
		return nil, fmt.Errorf("%w: rating must be between 1 and 5", ErrValidation)
	}

	review := &models.Review{
		ID:         uuid.NewString(),
		ReviewerID: reviewerID,
		RevieweeID: revieweeID,
		Rating:     rating,
		Comment:    strings.TrimSpace(comment),
		SessionID:  sessionID,
		CreatedAt:  time.Now(),
	}

	opCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if _, err := s.collection.InsertOne(opCtx, review); err != nil {
		logger.LogError(err, "Failed to create review", map[string]interface{}{
			"reviewer_id": reviewerID,
			"reviewee_id": revieweeID,
		})
		return nil, fmt.Errorf("failed to create review: %w", err)
	}

	logger.LogMemberAction(reviewerID, "review_created", map[string]interface{}{
		"review_id":   review.ID,
		"reviewee_id": revieweeID,
		"rating":      rating,
	})

	return review, nil
}

// ListReceived returns reviews written about the member, newest first.
func (s *ReviewService) ListReceived(ctx context.Context, memberID string) ([]models.Review, error) {
	return s.list(ctx, bson.M{"reviewee_id": memberID})
}

// ListGiven returns reviews the member has written, newest first.
func (s *ReviewService) ListGiven(ctx context.Context, memberID string) ([]models.Review, error) {
	return s.list(ctx, bson.M{"reviewer_id": memberID})
}

func (s *ReviewService) list(ctx context.Context, filter bson.M) ([]models.Review, error) {
	opCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	opts := options.Find().
		SetLimit(s.fetchLimit).
		SetSort(bson.D{{Key: "created_at", Value: -1}})

	cursor, err := s.collection.Find(opCtx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch reviews: %w", err)
	}
	defer cursor.Close(opCtx)

	var reviews []models.Review
	if err = cursor.All(opCtx, &reviews); err != nil {
		return nil, fmt.Errorf("failed to decode reviews: %w", err)
	}

	if reviews == nil {
		reviews = []models.Review{}
	}

	return reviews, nil
}

// AverageRating computes the mean of all ratings received by the
// member. Returns 0 with count 0 when no reviews exist.
func (s *ReviewService) AverageRating(ctx context.Context, memberID string) (float64, int, error) {
	reviews, err := s.ListReceived(ctx, memberID)
	if err != nil {
		return 0, 0, err
	}
	if len(reviews) == 0 {
		return 0, 0, nil
	}

	total := 0
	for _, review := range reviews {
		total += review.Rating
	}

	return float64(total) / float64(len(reviews)), len(reviews), nil
}

// DeleteReview removes a review. Only the author may delete it.
func (s *ReviewService) DeleteReview(ctx context.Context, reviewID, memberID string) error {
	opCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	var review models.Review
	err := s.collection.FindOne(opCtx, bson.M{"_id": reviewID}).Decode(&review)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return ErrNotFound
		}
		return fmt.Errorf("failed to get review: %w", err)
	}

	if review.ReviewerID != memberID {
		return ErrAccessDenied
	}

	if _, err := s.collection.DeleteOne(opCtx, bson.M{"_id": reviewID}); err != nil {
		return fmt.Errorf("failed to delete review: %w", err)
	}

	logger.LogMemberAction(memberID, "review_deleted", map[string]interface{}{
		"review_id": reviewID,
	})

	return nil
}
