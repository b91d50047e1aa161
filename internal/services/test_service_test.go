package services

import (
	"testing"

	"skillswap/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fourOptions(correct int) models.Question {
	return models.Question{
		Question:      "What does this do?",
		Options:       []string{"a", "b", "c", "d"},
		CorrectAnswer: correct,
	}
}

func TestGrade(t *testing.T) {
	tests := []struct {
		name      string
		questions []models.Question
		answers   []int
		want      int
	}{
		{
			name:      "all correct",
			questions: []models.Question{fourOptions(0), fourOptions(1)},
			answers:   []int{0, 1},
			want:      100,
		},
		{
			name:      "all wrong",
			questions: []models.Question{fourOptions(0), fourOptions(1)},
			answers:   []int{3, 3},
			want:      0,
		},
		{
			name:      "two of three rounds up",
			questions: []models.Question{fourOptions(0), fourOptions(1), fourOptions(2)},
			answers:   []int{0, 1, 0},
			want:      67,
		},
		{
			name:      "one of three rounds down",
			questions: []models.Question{fourOptions(0), fourOptions(1), fourOptions(2)},
			answers:   []int{0, 0, 0},
			want:      33,
		},
		{
			name:      "one of six",
			questions: []models.Question{fourOptions(0), fourOptions(0), fourOptions(0), fourOptions(0), fourOptions(0), fourOptions(0)},
			answers:   []int{0, 1, 1, 1, 1, 1},
			want:      17,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Grade(tt.questions, tt.answers))
		})
	}
}

func TestGradeShortAnswerSheet(t *testing.T) {
	questions := []models.Question{fourOptions(0), fourOptions(1)}

	// Missing answers count as wrong rather than panicking.
	assert.Equal(t, 50, Grade(questions, []int{0}))
}

func TestValidateQuestions(t *testing.T) {
	assert.NoError(t, ValidateQuestions([]models.Question{fourOptions(3)}))

	err := ValidateQuestions(nil)
	assert.ErrorIs(t, err, ErrValidation)

	err = ValidateQuestions([]models.Question{{
		Question:      "q",
		Options:       []string{"a", "b", "c"},
		CorrectAnswer: 0,
	}})
	assert.ErrorIs(t, err, ErrValidation)

	err = ValidateQuestions([]models.Question{{
		Question:      "q",
		Options:       []string{"a", "b", "c", ""},
		CorrectAnswer: 0,
	}})
	assert.ErrorIs(t, err, ErrValidation)

	err = ValidateQuestions([]models.Question{fourOptions(4)})
	assert.ErrorIs(t, err, ErrValidation)

	err = ValidateQuestions([]models.Question{{
		Question:      "   ",
		Options:       []string{"a", "b", "c", "d"},
		CorrectAnswer: 0,
	}})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestStripAnswerKey(t *testing.T) {
	test := models.SessionTest{
		ID:        "t1",
		TutorID:   "tutor",
		Questions: []models.Question{fourOptions(2), fourOptions(3)},
	}

	stripped := StripAnswerKey(test)

	require.Len(t, stripped.Questions, 2)
	for _, q := range stripped.Questions {
		assert.Equal(t, -1, q.CorrectAnswer)
		assert.Len(t, q.Options, 4)
	}

	// The original keeps its key.
	assert.Equal(t, 2, test.Questions[0].CorrectAnswer)
	assert.Equal(t, 3, test.Questions[1].CorrectAnswer)
}

func TestSessionTestSubmitted(t *testing.T) {
	test := models.SessionTest{}
	assert.False(t, test.Submitted())

	test.Submission = &models.Submission{LearnerID: "learner", Answers: []int{0}}
	assert.True(t, test.Submitted())
}

func TestEnsureSubmittable(t *testing.T) {
	fresh := func() *models.SessionTest {
		return &models.SessionTest{
			ID:        "t1",
			TutorID:   "tutor",
			Questions: []models.Question{fourOptions(0), fourOptions(1)},
		}
	}

	assert.NoError(t, EnsureSubmittable(fresh(), "learner", []int{0, 1}))

	// The author cannot take their own test.
	err := EnsureSubmittable(fresh(), "tutor", []int{0, 1})
	assert.ErrorIs(t, err, ErrValidation)

	// Answer sheet length must match the question count.
	err = EnsureSubmittable(fresh(), "learner", []int{0})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestEnsureSubmittableRefusesSecondSubmission(t *testing.T) {
	test := &models.SessionTest{
		ID:        "t1",
		TutorID:   "tutor",
		Questions: []models.Question{fourOptions(0), fourOptions(1)},
		Submission: &models.Submission{
			LearnerID: "first-learner",
			Answers:   []int{0, 1},
		},
		Score: 100,
	}

	err := EnsureSubmittable(test, "second-learner", []int{1, 0})
	assert.ErrorIs(t, err, ErrAlreadySubmitted)

	// The recorded submission and score are untouched by the refusal.
	assert.Equal(t, "first-learner", test.Submission.LearnerID)
	assert.Equal(t, 100, test.Score)
}
