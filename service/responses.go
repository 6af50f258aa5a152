package service

import (
	"context"
	"database/sql"
	"time"

	"github.com/pkg/errors"

	"github.com/mbolis/quick-feedback/database"
	"github.com/mbolis/quick-feedback/log"
	"github.com/mbolis/quick-feedback/model"
	"github.com/mbolis/quick-feedback/store"
)

// Responses collects anonymous submissions and lists them for owners.
type Responses struct {
	db  *sql.DB
	now func() time.Time
}

func NewResponses(db *sql.DB) *Responses {
	return &Responses{db: db, now: time.Now}
}

// Submit records one submission. Either every answer is stored or none is.
func (s *Responses) Submit(ctx context.Context, surveyID int64, answers []model.AnswerInput) (out []model.Response, err error) {
	if len(answers) == 0 {
		return nil, validationError("no answers submitted")
	}
	for _, a := range answers {
		if err = checkStruct(a); err != nil {
			return
		}
	}

	sub := store.Submission{SurveyID: surveyID, CreatedAt: s.now().UTC()}
	responses := make([]store.Response, 0, len(answers))

	err = database.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		survey, err := store.SurveyByID(ctx, tx, surveyID)
		if errors.Is(err, store.ErrNotFound) {
			return notFound("survey %d not found", surveyID)
		}
		if err != nil {
			return err
		}
		if !survey.IsActive {
			return validationError("survey %d is not accepting responses", surveyID)
		}

		questionIDs := survey.QuestionIDs()
		for _, a := range answers {
			if _, ok := questionIDs[a.QuestionID]; !ok {
				return validationError("question %d does not belong to survey %d", a.QuestionID, surveyID)
			}
			responses = append(responses, store.Response{QuestionID: a.QuestionID, Answer: a.Answer})
		}

		return store.InsertSubmission(ctx, tx, &sub, responses)
	})
	if err != nil {
		return
	}

	log.WithFields(log.Fields{"survey": surveyID, "submission": sub.ID, "answers": len(responses)}).
		Debug("responses.submitted")
	return model.FromResponses(responses), nil
}

// List returns every response row of a survey, for its owner.
func (s *Responses) List(ctx context.Context, surveyID, ownerID int64) ([]model.Response, error) {
	if _, err := ownedSurvey(ctx, s.db, surveyID, ownerID); err != nil {
		return nil, err
	}

	responses, err := store.ResponsesBySurvey(ctx, s.db, surveyID)
	if err != nil {
		return nil, err
	}
	return model.FromResponses(responses), nil
}

// Submissions returns the survey's responses grouped per submission, each
// with its answer rows, for its owner.
func (s *Responses) Submissions(ctx context.Context, surveyID, ownerID int64) ([]model.Submission, error) {
	if _, err := ownedSurvey(ctx, s.db, surveyID, ownerID); err != nil {
		return nil, err
	}

	responses, err := store.ResponsesBySurvey(ctx, s.db, surveyID)
	if err != nil {
		return nil, err
	}
	answers, err := store.AnswersBySurvey(ctx, s.db, surveyID)
	if err != nil {
		return nil, err
	}

	byResponse := make(map[int64][]store.Answer, len(answers))
	for _, a := range answers {
		byResponse[a.ResponseID] = append(byResponse[a.ResponseID], a)
	}

	submissions := []model.Submission{}
	index := map[int64]int{}
	for _, r := range responses {
		i, ok := index[r.SubmissionID]
		if !ok {
			i = len(submissions)
			index[r.SubmissionID] = i
			submissions = append(submissions, model.Submission{
				ID:          r.SubmissionID,
				SurveyID:    r.SurveyID,
				SubmittedAt: r.CreatedAt,
				Answers:     []model.Answer{},
			})
		}
		for _, a := range byResponse[r.ID] {
			submissions[i].Answers = append(submissions[i].Answers, model.FromAnswer(a))
		}
	}
	return submissions, nil
}
