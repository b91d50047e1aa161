package models

import "time"

// Question is a fixed-choice quiz question with exactly four options.
// CorrectAnswer is the index into Options.
type Question struct {
	Question      string   `bson:"question" json:"question"`
	Options       []string `bson:"options" json:"options"`
	CorrectAnswer int      `bson:"correct_answer" json:"correctAnswer"`
}

// Submission is a learner's answer vector. A test holds at most one.
type Submission struct {
	LearnerID   string    `bson:"learner_id" json:"learnerId"`
	Answers     []int     `bson:"answers" json:"answers"`
	SubmittedAt time.Time `bson:"submitted_at" json:"submittedAt"`
}

// SessionTest is a quiz a tutor ties to a session. Questions and the
// submission are nested documents; the single-submission-per-test
// limitation is structural and deliberate.
type SessionTest struct {
	ID             string      `bson:"_id" json:"id"`
	TutorID        string      `bson:"tutor_id" json:"tutorId"`
	SessionID      string      `bson:"session_id" json:"sessionId"`
	TestTitle      string      `bson:"test_title" json:"testTitle"`
	Questions      []Question  `bson:"questions" json:"questions"`
	Submission     *Submission `bson:"submission,omitempty" json:"submission,omitempty"`
	Score          int         `bson:"score" json:"score"`
	SubmissionDate *time.Time  `bson:"submission_date,omitempty" json:"submissionDate,omitempty"`
	CreatedAt      time.Time   `bson:"created_at" json:"created_at"`
	UpdatedAt      time.Time   `bson:"updated_at" json:"updated_at"`
}

// Submitted reports whether a learner submission is already recorded.
func (t *SessionTest) Submitted() bool {
	return t.Submission != nil
}
