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
	"golang.org/x/crypto/bcrypt"
)

// AuthService is the identity provider: it owns member records and
// issues the tokens every ownership check keys off.
type AuthService struct {
	db         *mongo.Database
	collection *mongo.Collection
}

func NewAuthService(db *mongo.Database) *AuthService {
	return &AuthService{
		db:         db,
		collection: db.Collection(database.CollectionMembers),
	}
}

// AuthResult carries a member and their freshly issued token.
type AuthResult struct {
	Member *models.Member `json:"member"`
	Token  string         `json:"token"`
}

// Register creates a member and issues a token.
func (s *AuthService) Register(ctx context.Context, email, password, nickname string) (*AuthResult, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	if !utils.ValidateEmail(email) {
		return nil, fmt.Errorf("%w: invalid email", ErrValidation)
	}
	if len(password) < 8 {
		return nil, fmt.Errorf("%w: password must be at least 8 characters", ErrValidation)
	}
	if strings.TrimSpace(nickname) == "" {
		return nil, fmt.Errorf("%w: nickname is required", ErrValidation)
	}

	opCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	count, err := s.collection.CountDocuments(opCtx, bson.M{"email": email})
	if err != nil {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}
	if count > 0 {
		return nil, ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	member := &models.Member{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: string(hash),
		Nickname:     strings.TrimSpace(nickname),
		CreatedAt:    time.Now(),
	}

	if _, err := s.collection.InsertOne(opCtx, member); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, ErrEmailTaken
		}
		logger.LogError(err, "Failed to create member", map[string]interface{}{
			"email": email,
		})
		return nil, fmt.Errorf("failed to create member: %w", err)
	}

	token, err := utils.GenerateMemberJWT(member.ID, member.Nickname)
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}

	logger.LogMemberAction(member.ID, "register", map[string]interface{}{
		"email": email,
	})

	return &AuthResult{Member: member, Token: token}, nil
}

// Login verifies credentials, records last login and issues a token.
func (s *AuthService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	opCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	var member models.Member
	err := s.collection.FindOne(opCtx, bson.M{"email": email}).Decode(&member)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to look up member: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(member.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	now := time.Now()
	member.LastLogin = &now

	_, err = s.collection.UpdateOne(opCtx,
		bson.M{"_id": member.ID},
		bson.M{"$set": bson.M{"last_login": now}})
	if err != nil {
		logger.LogError(err, "Failed to record last login", map[string]interface{}{
			"member_id": member.ID,
		})
	}

	token, err := utils.GenerateMemberJWT(member.ID, member.Nickname)
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}

	logger.LogMemberAction(member.ID, "login", nil)

	return &AuthResult{Member: &member, Token: token}, nil
}

// GetMember fetches a member by id.
func (s *AuthService) GetMember(ctx context.Context, memberID string) (*models.Member, error) {
	opCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var member models.Member
	err := s.collection.FindOne(opCtx, bson.M{"_id": memberID}).Decode(&member)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get member: %w", err)
	}

	return &member, nil
}
