package store

import (
	"context"
	"database/sql"
	"time"
)

const surveyColumns = `
	s.id, s.user_id, s.title, s.description, s.is_active,
	s.share_token, s.created_at, s.updated_at`

func scanSurvey(row interface{ Scan(...any) error }, s *Survey) error {
	return row.Scan(
		&s.ID, &s.UserID, &s.Title, &s.Description, &s.IsActive,
		&s.ShareToken, &s.CreatedAt, &s.UpdatedAt,
	)
}

// InsertSurvey writes s and its whole question tree, filling in the
// generated ids.
func InsertSurvey(ctx context.Context, q Querier, s *Survey) error {
	err := q.QueryRowContext(ctx, `
		INSERT INTO survey (user_id, title, description, is_active, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
		RETURNING id`,
		s.UserID,
		s.Title,
		s.Description,
		s.IsActive,
		s.CreatedAt.UTC(),
		s.UpdatedAt.UTC(),
	).Scan(&s.ID)
	if err != nil {
		return wrap(err, "store.insert_survey")
	}

	return InsertQuestions(ctx, q, s.ID, s.Questions)
}

// InsertQuestions writes questions (and their options) under surveyID.
// Positions must already be set by the caller.
func InsertQuestions(ctx context.Context, q Querier, surveyID int64, questions []Question) error {
	qstmt, err := q.PrepareContext(ctx, `
		INSERT INTO question (survey_id, text, is_open_ended, position)
		VALUES (?, ?, ?, ?)
		RETURNING id`)
	if err != nil {
		return wrap(err, "store.insert_questions.prepare")
	}
	defer qstmt.Close()

	ostmt, err := q.PrepareContext(ctx, `
		INSERT INTO question_option (question_id, text)
		VALUES (?, ?)
		RETURNING id`)
	if err != nil {
		return wrap(err, "store.insert_options.prepare")
	}
	defer ostmt.Close()

	for i := range questions {
		qn := &questions[i]
		qn.SurveyID = surveyID
		err = qstmt.QueryRowContext(ctx, surveyID, qn.Text, qn.IsOpenEnded, qn.Position).Scan(&qn.ID)
		if err != nil {
			return wrap(err, "store.insert_question")
		}

		for j := range qn.Options {
			o := &qn.Options[j]
			o.QuestionID = qn.ID
			err = ostmt.QueryRowContext(ctx, qn.ID, o.Text).Scan(&o.ID)
			if err != nil {
				return wrap(err, "store.insert_option")
			}
		}
	}
	return nil
}

// SurveyByID loads a survey with its questions and options.
func SurveyByID(ctx context.Context, q Querier, id int64) (s Survey, err error) {
	err = scanSurvey(q.QueryRowContext(ctx, `
		SELECT `+surveyColumns+`
		FROM survey s
		WHERE s.id = ?`,
		id,
	), &s)
	if err != nil {
		err = wrap(err, "store.survey_by_id")
		return
	}

	s.Questions, err = QuestionsBySurvey(ctx, q, s.ID)
	return
}

// SurveyByShareToken loads the survey published under token, whatever its
// active flag.
func SurveyByShareToken(ctx context.Context, q Querier, token string) (s Survey, err error) {
	err = scanSurvey(q.QueryRowContext(ctx, `
		SELECT `+surveyColumns+`
		FROM survey s
		WHERE s.share_token = ?`,
		token,
	), &s)
	if err != nil {
		err = wrap(err, "store.survey_by_share_token")
		return
	}

	s.Questions, err = QuestionsBySurvey(ctx, q, s.ID)
	return
}

// SurveysByUser lists the surveys owned by userID in insertion order.
func SurveysByUser(ctx context.Context, q Querier, userID int64) ([]Survey, error) {
	rows, err := q.QueryContext(ctx, `
		SELECT `+surveyColumns+`
		FROM survey s
		WHERE s.user_id = ?
		ORDER BY s.id`,
		userID,
	)
	if err != nil {
		return nil, wrap(err, "store.surveys_by_user")
	}
	defer rows.Close()

	surveys := []Survey{}
	for rows.Next() {
		s := Survey{}
		if err = scanSurvey(rows, &s); err != nil {
			return nil, wrap(err, "store.surveys_by_user.scan")
		}
		surveys = append(surveys, s)
	}
	if err = rows.Err(); err != nil {
		return nil, wrap(err, "store.surveys_by_user.rows")
	}
	rows.Close()

	for i := range surveys {
		surveys[i].Questions, err = QuestionsBySurvey(ctx, q, surveys[i].ID)
		if err != nil {
			return nil, err
		}
	}
	return surveys, nil
}

// QuestionsBySurvey returns the questions of a survey ordered by position,
// each with its options.
func QuestionsBySurvey(ctx context.Context, q Querier, surveyID int64) ([]Question, error) {
	rows, err := q.QueryContext(ctx, `
		SELECT
			q.id, q.survey_id, q.text, q.is_open_ended, q.position,
			o.id, o.text
		FROM question q
		LEFT OUTER JOIN question_option o ON (q.id = o.question_id)
		WHERE q.survey_id = ?
		ORDER BY q.position, o.id`,
		surveyID,
	)
	if err != nil {
		return nil, wrap(err, "store.questions_by_survey")
	}
	defer rows.Close()

	questions := []Question{}
	for rows.Next() {
		qn := Question{}
		var optID sql.NullInt64
		var optText sql.NullString
		err = rows.Scan(
			&qn.ID, &qn.SurveyID, &qn.Text, &qn.IsOpenEnded, &qn.Position,
			&optID, &optText,
		)
		if err != nil {
			return nil, wrap(err, "store.questions_by_survey.scan")
		}

		last := len(questions) - 1
		if last < 0 || questions[last].ID != qn.ID {
			qn.Options = []QuestionOption{}
			questions = append(questions, qn)
			last++
		}
		if optID.Valid {
			questions[last].Options = append(questions[last].Options, QuestionOption{
				ID:         optID.Int64,
				QuestionID: qn.ID,
				Text:       optText.String,
			})
		}
	}
	return questions, wrap(rows.Err(), "store.questions_by_survey.rows")
}

func UpdateSurvey(ctx context.Context, q Querier, id int64, title string, description sql.NullString, updatedAt time.Time) error {
	res, err := q.ExecContext(ctx, `
		UPDATE survey
		SET
			title = ?,
			description = ?,
			updated_at = ?
		WHERE id = ?`,
		title,
		description,
		updatedAt.UTC(),
		id,
	)
	if err != nil {
		return wrap(err, "store.update_survey")
	}
	return expectRow(res, "store.update_survey")
}

// DeleteQuestions removes every question of a survey and its options.
// Responses and answers to them are kept, detached from the question.
func DeleteQuestions(ctx context.Context, q Querier, surveyID int64) error {
	_, err := q.ExecContext(ctx, `
		DELETE FROM question
		WHERE survey_id = ?`,
		surveyID,
	)
	return wrap(err, "store.delete_questions")
}

func SetSurveyActive(ctx context.Context, q Querier, id int64, active bool, updatedAt time.Time) error {
	res, err := q.ExecContext(ctx, `
		UPDATE survey SET is_active = ?, updated_at = ? WHERE id = ?`,
		active,
		updatedAt.UTC(),
		id,
	)
	if err != nil {
		return wrap(err, "store.set_survey_active")
	}
	return expectRow(res, "store.set_survey_active")
}

func SetShareToken(ctx context.Context, q Querier, id int64, token string) error {
	res, err := q.ExecContext(ctx, `
		UPDATE survey SET share_token = ? WHERE id = ?`,
		token,
		id,
	)
	if err != nil {
		return wrap(err, "store.set_share_token")
	}
	return expectRow(res, "store.set_share_token")
}

// DeleteSurvey removes a survey; foreign keys cascade to questions, options,
// submissions, responses and answers.
func DeleteSurvey(ctx context.Context, q Querier, id int64) error {
	res, err := q.ExecContext(ctx, `
		DELETE FROM survey WHERE id = ?`,
		id,
	)
	if err != nil {
		return wrap(err, "store.delete_survey")
	}
	return expectRow(res, "store.delete_survey")
}
