package store

import (
	"database/sql"
	"time"
)

type User struct {
	ID           int64
	Email        string
	PasswordHash string
	IsActive     bool
	IsSuperuser  bool
}

type Survey struct {
	ID          int64
	UserID      int64
	Title       string
	Description sql.NullString
	IsActive    bool
	ShareToken  sql.NullString
	CreatedAt   time.Time
	UpdatedAt   time.Time
	Questions   []Question
}

// QuestionIDs returns the set of ids of the survey's questions.
func (s Survey) QuestionIDs() map[int64]struct{} {
	ids := make(map[int64]struct{}, len(s.Questions))
	for _, q := range s.Questions {
		ids[q.ID] = struct{}{}
	}
	return ids
}

type Question struct {
	ID          int64
	SurveyID    int64
	Text        string
	IsOpenEnded bool
	Position    int
	Options     []QuestionOption
}

type QuestionOption struct {
	ID         int64
	QuestionID int64
	Text       string
}

// Submission groups the responses written by one submit.
type Submission struct {
	ID        int64
	SurveyID  int64
	CreatedAt time.Time
}

// Response is a single answered question. QuestionID reads as 0 once the
// question was replaced by a survey update.
type Response struct {
	ID           int64
	SubmissionID int64
	SurveyID     int64
	QuestionID   int64
	Answer       string
	CreatedAt    time.Time
}

// Answer mirrors a Response's text, keyed by response and question.
type Answer struct {
	ID         int64
	ResponseID int64
	QuestionID int64
	Text       string
}
