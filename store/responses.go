package store

import (
	"context"
)

// InsertSubmission writes one submission and, for each response, the response
// row plus its mirroring answer row. IDs and timestamps are filled in.
func InsertSubmission(ctx context.Context, q Querier, sub *Submission, responses []Response) error {
	err := q.QueryRowContext(ctx, `
		INSERT INTO submission (survey_id, created_at) VALUES (?, ?)
		RETURNING id`,
		sub.SurveyID,
		sub.CreatedAt.UTC(),
	).Scan(&sub.ID)
	if err != nil {
		return wrap(err, "store.insert_submission")
	}

	rstmt, err := q.PrepareContext(ctx, `
		INSERT INTO response (submission_id, survey_id, question_id, answer, created_at)
		VALUES (?, ?, ?, ?, ?)
		RETURNING id`)
	if err != nil {
		return wrap(err, "store.insert_responses.prepare")
	}
	defer rstmt.Close()

	astmt, err := q.PrepareContext(ctx, `
		INSERT INTO answer (response_id, question_id, text)
		VALUES (?, ?, ?)`)
	if err != nil {
		return wrap(err, "store.insert_answers.prepare")
	}
	defer astmt.Close()

	for i := range responses {
		r := &responses[i]
		r.SubmissionID = sub.ID
		r.SurveyID = sub.SurveyID
		r.CreatedAt = sub.CreatedAt

		err = rstmt.QueryRowContext(ctx, r.SubmissionID, r.SurveyID, r.QuestionID, r.Answer, r.CreatedAt.UTC()).Scan(&r.ID)
		if err != nil {
			return wrap(err, "store.insert_response")
		}

		_, err = astmt.ExecContext(ctx, r.ID, r.QuestionID, r.Answer)
		if err != nil {
			return wrap(err, "store.insert_answer")
		}
	}
	return nil
}

// ResponsesBySurvey returns every response to a survey in submission order.
func ResponsesBySurvey(ctx context.Context, q Querier, surveyID int64) ([]Response, error) {
	rows, err := q.QueryContext(ctx, `
		SELECT id, submission_id, survey_id, COALESCE(question_id, 0), answer, created_at
		FROM response
		WHERE survey_id = ?
		ORDER BY id`,
		surveyID,
	)
	if err != nil {
		return nil, wrap(err, "store.responses_by_survey")
	}
	defer rows.Close()

	responses := []Response{}
	for rows.Next() {
		r := Response{}
		err = rows.Scan(&r.ID, &r.SubmissionID, &r.SurveyID, &r.QuestionID, &r.Answer, &r.CreatedAt)
		if err != nil {
			return nil, wrap(err, "store.responses_by_survey.scan")
		}
		responses = append(responses, r)
	}
	return responses, wrap(rows.Err(), "store.responses_by_survey.rows")
}

// AnswersBySurvey returns the answer rows of a survey's responses, ordered
// like ResponsesBySurvey.
func AnswersBySurvey(ctx context.Context, q Querier, surveyID int64) ([]Answer, error) {
	rows, err := q.QueryContext(ctx, `
		SELECT a.id, a.response_id, COALESCE(a.question_id, 0), a.text
		FROM answer a
		INNER JOIN response r ON (r.id = a.response_id)
		WHERE r.survey_id = ?
		ORDER BY r.id`,
		surveyID,
	)
	if err != nil {
		return nil, wrap(err, "store.answers_by_survey")
	}
	defer rows.Close()

	answers := []Answer{}
	for rows.Next() {
		a := Answer{}
		if err = rows.Scan(&a.ID, &a.ResponseID, &a.QuestionID, &a.Text); err != nil {
			return nil, wrap(err, "store.answers_by_survey.scan")
		}
		answers = append(answers, a)
	}
	return answers, wrap(rows.Err(), "store.answers_by_survey.rows")
}

// CountResponses counts the stored response rows of a survey.
func CountResponses(ctx context.Context, q Querier, surveyID int64) (n int, err error) {
	err = q.QueryRowContext(ctx, `
		SELECT count(*) FROM response WHERE survey_id = ?`,
		surveyID,
	).Scan(&n)
	err = wrap(err, "store.count_responses")
	return
}
