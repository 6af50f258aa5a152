package model

import "time"

type User struct {
	ID          int64  `json:"id"`
	Email       string `json:"email"`
	IsActive    bool   `json:"is_active"`
	IsSuperuser bool   `json:"is_superuser"`
}

type Survey struct {
	ID          int64      `json:"id"`
	UserID      int64      `json:"user_id"`
	Title       string     `json:"title"`
	Description *string    `json:"description"`
	IsActive    bool       `json:"is_active"`
	ShareToken  *string    `json:"share_token"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	Questions   []Question `json:"questions"`
}

type Question struct {
	ID          int64            `json:"id"`
	SurveyID    int64            `json:"survey_id"`
	Text        string           `json:"text"`
	IsOpenEnded bool             `json:"is_open_ended"`
	Order       int              `json:"order"`
	Options     []QuestionOption `json:"options"`
}

type QuestionOption struct {
	ID         int64  `json:"id"`
	QuestionID int64  `json:"question_id"`
	Text       string `json:"text"`
}

// Response is one answered question of a submission.
type Response struct {
	ID           int64     `json:"id"`
	SubmissionID int64     `json:"submission_id"`
	SurveyID     int64     `json:"survey_id"`
	QuestionID   int64     `json:"question_id"`
	Answer       string    `json:"answer"`
	CreatedAt    time.Time `json:"created_at"`
}

// Submission is everything one respondent sent in a single submit.
type Submission struct {
	ID          int64     `json:"id"`
	SurveyID    int64     `json:"survey_id"`
	SubmittedAt time.Time `json:"submitted_at"`
	Answers     []Answer  `json:"answers"`
}

type Answer struct {
	ID         int64  `json:"id"`
	ResponseID int64  `json:"response_id"`
	QuestionID int64  `json:"question_id"`
	Text       string `json:"text"`
}

type ShareToken struct {
	ShareToken string `json:"share_token"`
}

// Token is the body returned by the token endpoint.
type Token struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int64  `json:"expires_in"`
}

// Export is a rendered CSV file.
type Export struct {
	Filename string
	Content  []byte
}
