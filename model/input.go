package model

// Request bodies. Validation rules live in the validate tags and are
// checked by the service layer.

type SignupInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

type SurveyInput struct {
	Title       string          `json:"title" validate:"required,max=200"`
	Description *string         `json:"description"`
	Questions   []QuestionInput `json:"questions" validate:"dive"`
}

type QuestionInput struct {
	Text        string        `json:"text" validate:"required"`
	IsOpenEnded bool          `json:"is_open_ended"`
	Options     []OptionInput `json:"options" validate:"dive"`
}

type OptionInput struct {
	Text string `json:"text" validate:"required"`
}

type AnswerInput struct {
	QuestionID int64  `json:"question_id" validate:"required"`
	Answer     string `json:"answer"`
}
