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

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ProfileService owns the userprofiles collection. A profile's id is the
// owning member's id; the record is created lazily on the first save.
type ProfileService struct {
	db         *mongo.Database
	collection *mongo.Collection
	fetchLimit int64
}

func NewProfileService(db *mongo.Database, fetchLimit int64) *ProfileService {
	return &ProfileService{
		db:         db,
		collection: db.Collection(database.CollectionProfiles),
		fetchLimit: fetchLimit,
	}
}

// ProfilePage is one page of a profile listing.
type ProfilePage struct {
	Items   []models.Profile `json:"items"`
	HasNext bool             `json:"hasNext"`
}

// SkillFilter selects which skill field a search term must match.
type SkillFilter string

const (
	FilterAll   SkillFilter = "all"
	FilterTeach SkillFilter = "teach"
	FilterLearn SkillFilter = "learn"
)

// GetProfile fetches a profile by id.
func (s *ProfileService) GetProfile(ctx context.Context, profileID string) (*models.Profile, error) {
	opCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var profile models.Profile
	err := s.collection.FindOne(opCtx, bson.M{"_id": profileID}).Decode(&profile)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}

	return &profile, nil
}

// SaveProfile updates the member's profile, creating it on first save.
// Only the owner reaches this path: memberID is taken from the request
// identity, never from the payload.
func (s *ProfileService) SaveProfile(ctx context.Context, memberID string, profile *models.Profile) (*models.Profile, error) {
	if strings.TrimSpace(profile.FullName) == "" {
		return nil, fmt.Errorf("%w: full name is required", ErrValidation)
	}
	if !utils.ValidateAvailabilityDays(profile.AvailabilityDays) {
		return nil, fmt.Errorf("%w: invalid availability days", ErrValidation)
	}

	opCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	now := time.Now()
	profile.ID = memberID
	profile.UpdatedAt = now

	update := bson.M{
		"$set": bson.M{
			"full_name":            profile.FullName,
			"bio":                  profile.Bio,
			"profile_picture":      profile.ProfilePicture,
			"skills_to_teach":      profile.SkillsToTeach,
			"skills_to_learn":      profile.SkillsToLearn,
			"is_available":         profile.IsAvailable,
			"availability_details": profile.AvailabilityDetails,
			"availability_days":    profile.AvailabilityDays,
			"github_id":            profile.GithubID,
			"linkedin_url":         profile.LinkedinURL,
			"instagram_id":         profile.InstagramID,
			"updated_at":           now,
		},
		"$setOnInsert": bson.M{
			"created_at": now,
		},
	}

	opts := options.Update().SetUpsert(true)
	if _, err := s.collection.UpdateOne(opCtx, bson.M{"_id": memberID}, update, opts); err != nil {
		logger.LogError(err, "Failed to save profile", map[string]interface{}{
			"member_id": memberID,
		})
		return nil, fmt.Errorf("failed to save profile: %w", err)
	}

	logger.LogMemberAction(memberID, "profile_saved", nil)

	return s.GetProfile(ctx, memberID)
}

// ListProfiles returns one page of profiles plus a has-next flag.
func (s *ProfileService) ListProfiles(ctx context.Context, limit, skip int64) (*ProfilePage, error) {
	opCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	// Fetch one extra record to learn whether another page exists.
	opts := options.Find().
		SetLimit(limit + 1).
		SetSkip(skip).
		SetSort(bson.D{{Key: "created_at", Value: -1}})

	cursor, err := s.collection.Find(opCtx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list profiles: %w", err)
	}
	defer cursor.Close(opCtx)

	var profiles []models.Profile
	if err = cursor.All(opCtx, &profiles); err != nil {
		return nil, fmt.Errorf("failed to decode profiles: %w", err)
	}

	hasNext := int64(len(profiles)) > limit
	if hasNext {
		profiles = profiles[:limit]
	}

	return &ProfilePage{Items: profiles, HasNext: hasNext}, nil
}

// SearchProfiles fetches a bounded page and filters it in the service.
// No field-level filtering is pushed down to the store, which caps
// correctness at collections below the fetch limit.
func (s *ProfileService) SearchProfiles(ctx context.Context, term string, filter SkillFilter, day string) ([]models.Profile, error) {
	opCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	opts := options.Find().SetLimit(s.fetchLimit)

	cursor, err := s.collection.Find(opCtx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch profiles: %w", err)
	}
	defer cursor.Close(opCtx)

	var profiles []models.Profile
	if err = cursor.All(opCtx, &profiles); err != nil {
		return nil, fmt.Errorf("failed to decode profiles: %w", err)
	}

	return FilterProfiles(profiles, term, filter, day), nil
}

// FilterProfiles applies the search term, skill filter and availability
// day filter over an already fetched profile set.
func FilterProfiles(profiles []models.Profile, term string, filter SkillFilter, day string) []models.Profile {
	filtered := make([]models.Profile, 0, len(profiles))
	term = strings.ToLower(strings.TrimSpace(term))
	day = strings.ToLower(strings.TrimSpace(day))

	for _, p := range profiles {
		if term != "" && !matchesTerm(&p, term) {
			continue
		}
		if filter == FilterTeach && p.SkillsToTeach == "" {
			continue
		}
		if filter == FilterLearn && p.SkillsToLearn == "" {
			continue
		}
		if day != "" && !availableOn(&p, day) {
			continue
		}
		filtered = append(filtered, p)
	}

	return filtered
}

func matchesTerm(p *models.Profile, term string) bool {
	return strings.Contains(strings.ToLower(p.FullName), term) ||
		strings.Contains(strings.ToLower(p.SkillsToTeach), term) ||
		strings.Contains(strings.ToLower(p.SkillsToLearn), term) ||
		strings.Contains(strings.ToLower(p.Bio), term)
}

func availableOn(p *models.Profile, day string) bool {
	for _, d := range strings.Split(p.AvailabilityDays, ",") {
		if strings.ToLower(strings.TrimSpace(d)) == day {
			return true
		}
	}
	return false
}
