package service

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/pkg/errors"

	"github.com/mbolis/quick-feedback/database"
	"github.com/mbolis/quick-feedback/model"
	"github.com/mbolis/quick-feedback/store"
)

// Analytics derives read-only views from collected responses.
type Analytics struct {
	db *sql.DB
}

func NewAnalytics(db *sql.DB) *Analytics {
	return &Analytics{db: db}
}

// Compute aggregates the responses of a survey question by question.
func (a *Analytics) Compute(ctx context.Context, surveyID, ownerID int64) (out model.SurveyAnalytics, err error) {
	survey, responses, err := a.load(ctx, surveyID, ownerID)
	if err != nil {
		return
	}
	return model.SurveyAnalytics{
		SurveyID:  survey.ID,
		Analytics: aggregate(survey.Questions, responses),
	}, nil
}

// ExportCSV renders one row per submission and one column per question.
func (a *Analytics) ExportCSV(ctx context.Context, surveyID, ownerID int64) (out model.Export, err error) {
	survey, responses, err := a.load(ctx, surveyID, ownerID)
	if err != nil {
		return
	}

	var buf bytes.Buffer
	if err = writeCSV(&buf, survey.Questions, responses); err != nil {
		return out, errors.Wrap(err, "service.export_csv")
	}
	return model.Export{
		Filename: fmt.Sprintf("survey_%d_responses.csv", survey.ID),
		Content:  buf.Bytes(),
	}, nil
}

// load reads the survey and its responses from one snapshot.
func (a *Analytics) load(ctx context.Context, surveyID, ownerID int64) (survey store.Survey, responses []store.Response, err error) {
	err = database.WithTx(ctx, a.db, func(tx *sql.Tx) error {
		var err error
		if survey, err = ownedSurvey(ctx, tx, surveyID, ownerID); err != nil {
			return err
		}
		responses, err = store.ResponsesBySurvey(ctx, tx, surveyID)
		return err
	})
	return
}

// aggregate builds one analytics block per question, in question order.
// Open-ended questions list their answers in submission order; for
// multiple-choice questions each option counts the answers equal to its
// text. Answers matching no option are left out of every count.
func aggregate(questions []store.Question, responses []store.Response) []model.QuestionAnalytics {
	byQuestion := make(map[int64][]string, len(questions))
	for _, r := range responses {
		byQuestion[r.QuestionID] = append(byQuestion[r.QuestionID], r.Answer)
	}

	blocks := make([]model.QuestionAnalytics, 0, len(questions))
	for _, q := range questions {
		answers := byQuestion[q.ID]
		block := model.QuestionAnalytics{
			QuestionID:   q.ID,
			QuestionText: q.Text,
		}

		if q.IsOpenEnded {
			block.Type = model.OpenEnded
			block.Answers = append([]string{}, answers...)
		} else {
			block.Type = model.MultipleChoice
			tally := make(map[string]int, len(answers))
			for _, ans := range answers {
				tally[ans]++
			}
			block.Options = make([]model.OptionCount, 0, len(q.Options))
			for _, o := range q.Options {
				block.Options = append(block.Options, model.OptionCount{Option: o.Text, Count: tally[o.Text]})
			}
		}
		blocks = append(blocks, block)
	}
	return blocks
}

// writeCSV writes the export table. Responses are grouped by submission; a
// group's timestamp is that of its first response.
func writeCSV(w io.Writer, questions []store.Question, responses []store.Response) error {
	type group struct {
		id        int64
		createdAt time.Time
		answers   map[int64]string
	}

	var groups []*group
	index := map[int64]*group{}
	for _, r := range responses {
		g, ok := index[r.SubmissionID]
		if !ok {
			g = &group{id: r.SubmissionID, createdAt: r.CreatedAt, answers: map[int64]string{}}
			index[r.SubmissionID] = g
			groups = append(groups, g)
		}
		g.answers[r.QuestionID] = r.Answer
	}

	cw := csv.NewWriter(w)

	header := make([]string, 0, len(questions)+2)
	header = append(header, "Response ID", "Submitted At")
	for _, q := range questions {
		header = append(header, q.Text)
	}
	if err := cw.Write(header); err != nil {
		return err
	}

	for _, g := range groups {
		row := make([]string, 0, len(header))
		row = append(row, strconv.FormatInt(g.id, 10), g.createdAt.UTC().Format(time.RFC3339))
		for _, q := range questions {
			row = append(row, g.answers[q.ID])
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}
