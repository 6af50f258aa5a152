package model

import (
	"database/sql"

	"github.com/mbolis/quick-feedback/store"
)

func FromUser(u store.User) User {
	return User{
		ID:          u.ID,
		Email:       u.Email,
		IsActive:    u.IsActive,
		IsSuperuser: u.IsSuperuser,
	}
}

func FromSurvey(s store.Survey) Survey {
	out := Survey{
		ID:          s.ID,
		UserID:      s.UserID,
		Title:       s.Title,
		Description: stringPtr(s.Description),
		IsActive:    s.IsActive,
		ShareToken:  stringPtr(s.ShareToken),
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.UpdatedAt,
		Questions:   make([]Question, 0, len(s.Questions)),
	}
	for _, q := range s.Questions {
		out.Questions = append(out.Questions, FromQuestion(q))
	}
	return out
}

func FromSurveys(surveys []store.Survey) []Survey {
	out := make([]Survey, 0, len(surveys))
	for _, s := range surveys {
		out = append(out, FromSurvey(s))
	}
	return out
}

func FromQuestion(q store.Question) Question {
	out := Question{
		ID:          q.ID,
		SurveyID:    q.SurveyID,
		Text:        q.Text,
		IsOpenEnded: q.IsOpenEnded,
		Order:       q.Position,
		Options:     make([]QuestionOption, 0, len(q.Options)),
	}
	for _, o := range q.Options {
		out.Options = append(out.Options, QuestionOption{
			ID:         o.ID,
			QuestionID: o.QuestionID,
			Text:       o.Text,
		})
	}
	return out
}

func FromResponses(responses []store.Response) []Response {
	out := make([]Response, 0, len(responses))
	for _, r := range responses {
		out = append(out, Response{
			ID:           r.ID,
			SubmissionID: r.SubmissionID,
			SurveyID:     r.SurveyID,
			QuestionID:   r.QuestionID,
			Answer:       r.Answer,
			CreatedAt:    r.CreatedAt,
		})
	}
	return out
}

func FromAnswer(a store.Answer) Answer {
	return Answer{
		ID:         a.ID,
		ResponseID: a.ResponseID,
		QuestionID: a.QuestionID,
		Text:       a.Text,
	}
}

// StoreQuestions converts the input into storage questions numbered from 1.
// Options sent for an open-ended question are dropped.
func (in SurveyInput) StoreQuestions() []store.Question {
	questions := make([]store.Question, 0, len(in.Questions))
	for i, q := range in.Questions {
		sq := store.Question{
			Text:        q.Text,
			IsOpenEnded: q.IsOpenEnded,
			Position:    i + 1,
		}
		if !q.IsOpenEnded {
			for _, o := range q.Options {
				sq.Options = append(sq.Options, store.QuestionOption{Text: o.Text})
			}
		}
		questions = append(questions, sq)
	}
	return questions
}

func (in SurveyInput) StoreDescription() sql.NullString {
	if in.Description == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *in.Description, Valid: true}
}

func stringPtr(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	s := ns.String
	return &s
}
