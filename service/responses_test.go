package service_test

import (
	"context"
	"testing"

	"github.com/pkg/errors"

	"github.com/mbolis/quick-feedback/model"
	"github.com/mbolis/quick-feedback/service"
	"github.com/mbolis/quick-feedback/store"
	"github.com/mbolis/quick-feedback/testutil"
)

func TestResponses_Submit(t *testing.T) {
	db := testutil.NewTestDB(t)
	ctx := context.Background()
	owner := testutil.CreateTestUser(t, db, "owner@example.com")
	survey := testutil.CreateTestSurvey(t, db, owner.ID, "S",
		testutil.TestQuestion{Text: "Favorite color?"},
		testutil.TestQuestion{Text: "Recommend?", Options: []string{"Yes", "No"}},
	)
	responses := service.NewResponses(db)

	got, err := responses.Submit(ctx, survey.ID, []model.AnswerInput{
		{QuestionID: survey.Questions[0].ID, Answer: "Blue"},
		{QuestionID: survey.Questions[1].ID, Answer: "Yes"},
	})
	if err != nil {
		t.Fatalf("Failed to submit: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("Expected 2 responses, got %d", len(got))
	}
	if got[0].SubmissionID == 0 || got[0].SubmissionID != got[1].SubmissionID {
		t.Errorf("Expected both responses in one submission, got %d and %d", got[0].SubmissionID, got[1].SubmissionID)
	}
	for _, r := range got {
		if r.ID == 0 || r.SurveyID != survey.ID || r.CreatedAt.IsZero() {
			t.Errorf("Response not filled in: %+v", r)
		}
	}

	// anonymous respondents can submit any number of times
	again, err := responses.Submit(ctx, survey.ID, []model.AnswerInput{{QuestionID: survey.Questions[0].ID, Answer: "Red"}})
	if err != nil {
		t.Fatalf("Failed to submit again: %v", err)
	}
	if again[0].SubmissionID == got[0].SubmissionID {
		t.Error("Expected a new submission")
	}

	listed, err := responses.List(ctx, survey.ID, owner.ID)
	if err != nil {
		t.Fatalf("Failed to list responses: %v", err)
	}
	if len(listed) != 3 || listed[0].Answer != "Blue" || listed[2].Answer != "Red" {
		t.Errorf("Unexpected responses: %+v", listed)
	}
}

func TestResponses_Submit_Rejected(t *testing.T) {
	db := testutil.NewTestDB(t)
	ctx := context.Background()
	owner := testutil.CreateTestUser(t, db, "owner@example.com")
	survey := testutil.CreateTestSurvey(t, db, owner.ID, "S", testutil.TestQuestion{Text: "Q"})
	other := testutil.CreateTestSurvey(t, db, owner.ID, "Other", testutil.TestQuestion{Text: "Elsewhere"})
	inactive := testutil.CreateTestSurvey(t, db, owner.ID, "Closed", testutil.TestQuestion{Text: "Late"})
	if err := store.SetSurveyActive(ctx, db, inactive.ID, false, inactive.UpdatedAt); err != nil {
		t.Fatalf("Failed to deactivate survey: %v", err)
	}
	responses := service.NewResponses(db)

	q := survey.Questions[0].ID
	tests := []struct {
		name     string
		surveyID int64
		answers  []model.AnswerInput
		kind     error
	}{
		{"no answers", survey.ID, nil, service.ErrValidation},
		{"missing question id", survey.ID, []model.AnswerInput{{Answer: "x"}}, service.ErrValidation},
		{"question of another survey", survey.ID, []model.AnswerInput{
			{QuestionID: q, Answer: "fine"},
			{QuestionID: other.Questions[0].ID, Answer: "wrong"},
		}, service.ErrValidation},
		{"unknown question", survey.ID, []model.AnswerInput{{QuestionID: q + 1000, Answer: "x"}}, service.ErrValidation},
		{"inactive survey", inactive.ID, []model.AnswerInput{{QuestionID: inactive.Questions[0].ID, Answer: "x"}}, service.ErrValidation},
		{"unknown survey", survey.ID + 1000, []model.AnswerInput{{QuestionID: q, Answer: "x"}}, service.ErrNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := responses.Submit(ctx, tt.surveyID, tt.answers)
			if !errors.Is(err, tt.kind) {
				t.Errorf("Expected %v, got %v", tt.kind, err)
			}
		})
	}

	// all or nothing: the valid answer of the mixed submission is not stored
	for _, id := range []int64{survey.ID, other.ID, inactive.ID} {
		n, err := store.CountResponses(ctx, db, id)
		if err != nil {
			t.Fatalf("Failed to count responses: %v", err)
		}
		if n != 0 {
			t.Errorf("Expected no responses for survey %d, got %d", id, n)
		}
	}
}

func TestResponses_List_Ownership(t *testing.T) {
	db := testutil.NewTestDB(t)
	ctx := context.Background()
	owner := testutil.CreateTestUser(t, db, "owner@example.com")
	stranger := testutil.CreateTestUser(t, db, "stranger@example.com")
	survey := testutil.CreateTestSurvey(t, db, owner.ID, "S", testutil.TestQuestion{Text: "Q"})
	responses := service.NewResponses(db)

	if _, err := responses.List(ctx, survey.ID, stranger.ID); !errors.Is(err, service.ErrForbidden) {
		t.Errorf("Expected forbidden, got %v", err)
	}
	if _, err := responses.Submissions(ctx, survey.ID, stranger.ID); !errors.Is(err, service.ErrForbidden) {
		t.Errorf("Expected forbidden, got %v", err)
	}
	if _, err := responses.List(ctx, survey.ID+1, owner.ID); !errors.Is(err, service.ErrNotFound) {
		t.Errorf("Expected not found, got %v", err)
	}

	empty, err := responses.List(ctx, survey.ID, owner.ID)
	if err != nil {
		t.Fatalf("Failed to list responses: %v", err)
	}
	if empty == nil || len(empty) != 0 {
		t.Errorf("Expected an empty list, got %#v", empty)
	}
}

func TestResponses_Submissions(t *testing.T) {
	db := testutil.NewTestDB(t)
	ctx := context.Background()
	owner := testutil.CreateTestUser(t, db, "owner@example.com")
	survey := testutil.CreateTestSurvey(t, db, owner.ID, "S",
		testutil.TestQuestion{Text: "Q1"},
		testutil.TestQuestion{Text: "Q2", Options: []string{"Yes", "No"}},
	)
	q1, q2 := survey.Questions[0].ID, survey.Questions[1].ID
	responses := service.NewResponses(db)

	submits := [][]model.AnswerInput{
		{{QuestionID: q1, Answer: "a"}, {QuestionID: q2, Answer: "Yes"}},
		{{QuestionID: q2, Answer: "No"}},
	}
	for _, answers := range submits {
		if _, err := responses.Submit(ctx, survey.ID, answers); err != nil {
			t.Fatalf("Failed to submit: %v", err)
		}
	}

	subs, err := responses.Submissions(ctx, survey.ID, owner.ID)
	if err != nil {
		t.Fatalf("Failed to list submissions: %v", err)
	}
	if len(subs) != 2 {
		t.Fatalf("Expected 2 submissions, got %d", len(subs))
	}
	if len(subs[0].Answers) != 2 || subs[0].Answers[0].Text != "a" || subs[0].Answers[1].Text != "Yes" {
		t.Errorf("Unexpected first submission: %+v", subs[0])
	}
	if len(subs[1].Answers) != 1 || subs[1].Answers[0].QuestionID != q2 || subs[1].Answers[0].Text != "No" {
		t.Errorf("Unexpected second submission: %+v", subs[1])
	}
	if subs[0].SurveyID != survey.ID || subs[0].SubmittedAt.IsZero() {
		t.Errorf("Submission not filled in: %+v", subs[0])
	}
}
