package services

import (
	"context"
	"fmt"
	"math"
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

// TestService owns the tests collection. A test carries its questions
// and at most one submission embedded in the same record.
type TestService struct {
	db         *mongo.Database
	collection *mongo.Collection
	fetchLimit int64
}

func NewTestService(db *mongo.Database, fetchLimit int64) *TestService {
	return &TestService{
		db:         db,
		collection: db.Collection(database.CollectionTests),
		fetchLimit: fetchLimit,
	}
}

// CreateTest stores a new test authored by tutorID for the given session.
func (s *TestService) CreateTest(ctx context.Context, tutorID, sessionID, title string, questions []models.Question) (*models.SessionTest, error) {
	if strings.TrimSpace(title) == "" {
		return nil, fmt.Errorf("%w: test title is required", ErrValidation)
	}
	if err := ValidateQuestions(questions); err != nil {
		return nil, err
	}

	now := time.Now()
	test := &models.SessionTest{
		ID:        uuid.NewString(),
		TutorID:   tutorID,
		SessionID: sessionID,
		TestTitle: strings.TrimSpace(title),
		Questions: questions,
		CreatedAt: now,
		UpdatedAt: now,
	}

	opCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if _, err := s.collection.InsertOne(opCtx, test); err != nil {
		logger.LogError(err, "Failed to create test", map[string]interface{}{
			"tutor_id":   tutorID,
			"session_id": sessionID,
		})
		return nil, fmt.Errorf("failed to create test: %w", err)
	}

	logger.LogMemberAction(tutorID, "test_created", map[string]interface{}{
		"test_id":    test.ID,
		"session_id": sessionID,
		"questions":  len(questions),
	})

	return test, nil
}

// GetTest fetches a test by id.
func (s *TestService) GetTest(ctx context.Context, testID string) (*models.SessionTest, error) {
	opCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var test models.SessionTest
	err := s.collection.FindOne(opCtx, bson.M{"_id": testID}).Decode(&test)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get test: %w", err)
	}

	return &test, nil
}

// ListForSession returns the tests attached to a session that the
// member may see: the tutor sees everything, a learner sees every
// test too but answer keys are stripped from unsubmitted ones.
func (s *TestService) ListForSession(ctx context.Context, sessionID, memberID string) ([]models.SessionTest, error) {
	opCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	opts := options.Find().
		SetLimit(s.fetchLimit).
		SetSort(bson.D{{Key: "created_at", Value: -1}})

	cursor, err := s.collection.Find(opCtx, bson.M{"session_id": sessionID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch tests: %w", err)
	}
	defer cursor.Close(opCtx)

	var tests []models.SessionTest
	if err = cursor.All(opCtx, &tests); err != nil {
		return nil, fmt.Errorf("failed to decode tests: %w", err)
	}

	out := make([]models.SessionTest, 0, len(tests))
	for _, test := range tests {
		if test.TutorID != memberID && !test.Submitted() {
			test = StripAnswerKey(test)
		}
		out = append(out, test)
	}

	return out, nil
}

// UpdateTest replaces the title and questions of an unsubmitted test.
// Only the author may update, and a submitted test is frozen.
func (s *TestService) UpdateTest(ctx context.Context, testID, tutorID, title string, questions []models.Question) (*models.SessionTest, error) {
	test, err := s.GetTest(ctx, testID)
	if err != nil {
		return nil, err
	}
	if test.TutorID != tutorID {
		return nil, ErrAccessDenied
	}
	if test.Submitted() {
		return nil, ErrAlreadySubmitted
	}
	if strings.TrimSpace(title) == "" {
		return nil, fmt.Errorf("%w: test title is required", ErrValidation)
	}
	if err := ValidateQuestions(questions); err != nil {
		return nil, err
	}

	opCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	update := bson.M{
		"$set": bson.M{
			"test_title": strings.TrimSpace(title),
			"questions":  questions,
			"updated_at": time.Now(),
		},
	}

	if _, err := s.collection.UpdateOne(opCtx, bson.M{"_id": testID}, update); err != nil {
		return nil, fmt.Errorf("failed to update test: %w", err)
	}

	return s.GetTest(ctx, testID)
}

// EnsureSubmittable reports whether the learner may submit this answer
// sheet. The author cannot take their own test, and a test with a
// recorded submission refuses further ones, leaving the stored score
// untouched.
func EnsureSubmittable(test *models.SessionTest, learnerID string, answers []int) error {
	if test.TutorID == learnerID {
		return fmt.Errorf("%w: the author cannot take their own test", ErrValidation)
	}
	if test.Submitted() {
		return ErrAlreadySubmitted
	}
	if len(answers) != len(test.Questions) {
		return fmt.Errorf("%w: expected %d answers, got %d", ErrValidation, len(test.Questions), len(answers))
	}
	return nil
}

// Submit records a learner's answers and grades them. Once a
// submission exists the test is frozen and a second submission is
// refused with the stored score untouched. The freeze is enforced
// with a conditional update so concurrent submissions cannot both
// land.
func (s *TestService) Submit(ctx context.Context, testID, learnerID string, answers []int) (*models.SessionTest, error) {
	test, err := s.GetTest(ctx, testID)
	if err != nil {
		return nil, err
	}
	if err := EnsureSubmittable(test, learnerID, answers); err != nil {
		return nil, err
	}

	now := time.Now()
	score := Grade(test.Questions, answers)
	submission := &models.Submission{
		LearnerID:   learnerID,
		Answers:     answers,
		SubmittedAt: now,
	}

	opCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	update := bson.M{
		"$set": bson.M{
			"submission":      submission,
			"score":           score,
			"submission_date": now,
			"updated_at":      now,
		},
	}

	result, err := s.collection.UpdateOne(opCtx, bson.M{"_id": testID, "submission": nil}, update)
	if err != nil {
		logger.LogError(err, "Failed to submit test", map[string]interface{}{
			"test_id":    testID,
			"learner_id": learnerID,
		})
		return nil, fmt.Errorf("failed to submit test: %w", err)
	}
	if result.MatchedCount == 0 {
		return nil, ErrAlreadySubmitted
	}

	logger.LogMemberAction(learnerID, "test_submitted", map[string]interface{}{
		"test_id": testID,
		"score":   score,
	})

	return s.GetTest(ctx, testID)
}

// DeleteTest removes a test. Only the author may delete it.
func (s *TestService) DeleteTest(ctx context.Context, testID, tutorID string) error {
	test, err := s.GetTest(ctx, testID)
	if err != nil {
		return err
	}
	if test.TutorID != tutorID {
		return ErrAccessDenied
	}

	opCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if _, err := s.collection.DeleteOne(opCtx, bson.M{"_id": testID}); err != nil {
		return fmt.Errorf("failed to delete test: %w", err)
	}

	logger.LogMemberAction(tutorID, "test_deleted", map[string]interface{}{
		"test_id": testID,
	})

	return nil
}

// ValidateQuestions checks the authoring rules: at least one question,
// each with non-empty text, exactly four non-empty options, and a
// correct-answer index within range.
func ValidateQuestions(questions []models.Question) error {
	if len(questions) == 0 {
		return fmt.Errorf("%w: at least one question is required", ErrValidation)
	}
	for i, q := range questions {
		if strings.TrimSpace(q.Question) == "" {
			return fmt.Errorf("%w: question %d has no text", ErrValidation, i+1)
		}
		if len(q.Options) != 4 {
			return fmt.Errorf("%w: question %d must have exactly 4 options", ErrValidation, i+1)
		}
		for j, opt := range q.Options {
			if strings.TrimSpace(opt) == "" {
				return fmt.Errorf("%w: question %d option %d is empty", ErrValidation, i+1, j+1)
			}
		}
		if q.CorrectAnswer < 0 || q.CorrectAnswer >= len(q.Options) {
			return fmt.Errorf("%w: question %d has an out-of-range answer index", ErrValidation, i+1)
		}
	}
	return nil
}

// Grade scores a completed answer sheet as a whole-number percentage,
// rounding half away from zero.
func Grade(questions []models.Question, answers []int) int {
	if len(questions) == 0 {
		return 0
	}
	correct := 0
	for i, q := range questions {
		if i < len(answers) && answers[i] == q.CorrectAnswer {
			correct++
		}
	}
	return int(math.Round(100 * float64(correct) / float64(len(questions))))
}

// StripAnswerKey returns a copy of the test with the correct-answer
// indices blanked, for handing a live test to a learner.
func StripAnswerKey(test models.SessionTest) models.SessionTest {
	stripped := make([]models.Question, len(test.Questions))
	for i, q := range test.Questions {
		q.CorrectAnswer = -1
		stripped[i] = q
	}
	test.Questions = stripped
	return test
}
