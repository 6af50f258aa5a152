package service

import (
	"context"
	"database/sql"
	"time"

	"github.com/pkg/errors"

	"github.com/mbolis/quick-feedback/auth"
	"github.com/mbolis/quick-feedback/database"
	"github.com/mbolis/quick-feedback/model"
	"github.com/mbolis/quick-feedback/store"
)

// Surveys authors, publishes and deletes surveys.
type Surveys struct {
	db  *sql.DB
	now func() time.Time
}

func NewSurveys(db *sql.DB) *Surveys {
	return &Surveys{db: db, now: time.Now}
}

func (s *Surveys) Create(ctx context.Context, ownerID int64, in model.SurveyInput) (out model.Survey, err error) {
	if err = checkSurveyInput(in); err != nil {
		return
	}

	now := s.now().UTC()
	survey := store.Survey{
		UserID:      ownerID,
		Title:       in.Title,
		Description: in.StoreDescription(),
		IsActive:    true,
		CreatedAt:   now,
		UpdatedAt:   now,
		Questions:   in.StoreQuestions(),
	}

	err = database.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		return store.InsertSurvey(ctx, tx, &survey)
	})
	if err != nil {
		return
	}
	return model.FromSurvey(survey), nil
}

func (s *Surveys) Get(ctx context.Context, id, requesterID int64) (out model.Survey, err error) {
	survey, err := ownedSurvey(ctx, s.db, id, requesterID)
	if err != nil {
		return
	}
	return model.FromSurvey(survey), nil
}

// Shared returns the survey published under token, active or not.
func (s *Surveys) Shared(ctx context.Context, token string) (out model.Survey, err error) {
	survey, err := s.byToken(ctx, token)
	if err != nil {
		return
	}
	return model.FromSurvey(survey), nil
}

// ActiveShared is Shared restricted to surveys accepting responses.
func (s *Surveys) ActiveShared(ctx context.Context, token string) (out model.Survey, err error) {
	survey, err := s.byToken(ctx, token)
	if err != nil {
		return
	}
	if !survey.IsActive {
		return out, notFound("survey not found or inactive")
	}
	return model.FromSurvey(survey), nil
}

func (s *Surveys) byToken(ctx context.Context, token string) (store.Survey, error) {
	if token == "" {
		return store.Survey{}, notFound("survey not found")
	}
	survey, err := store.SurveyByShareToken(ctx, s.db, token)
	if errors.Is(err, store.ErrNotFound) {
		return survey, notFound("survey not found")
	}
	return survey, err
}

func (s *Surveys) List(ctx context.Context, ownerID int64) ([]model.Survey, error) {
	surveys, err := store.SurveysByUser(ctx, s.db, ownerID)
	if err != nil {
		return nil, err
	}
	return model.FromSurveys(surveys), nil
}

// Update replaces title, description and the whole question tree of a
// survey in a single transaction.
func (s *Surveys) Update(ctx context.Context, id, ownerID int64, in model.SurveyInput) (out model.Survey, err error) {
	if err = checkSurveyInput(in); err != nil {
		return
	}

	var survey store.Survey
	err = database.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		if _, err := ownedSurvey(ctx, tx, id, ownerID); err != nil {
			return err
		}

		err := store.UpdateSurvey(ctx, tx, id, in.Title, in.StoreDescription(), s.now())
		if err != nil {
			return err
		}
		if err = store.DeleteQuestions(ctx, tx, id); err != nil {
			return err
		}
		if err = store.InsertQuestions(ctx, tx, id, in.StoreQuestions()); err != nil {
			return err
		}

		survey, err = store.SurveyByID(ctx, tx, id)
		return err
	})
	if err != nil {
		return
	}
	return model.FromSurvey(survey), nil
}

func (s *Surveys) SetActive(ctx context.Context, id, ownerID int64, active bool) (out model.Survey, err error) {
	var survey store.Survey
	err = database.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		if _, err := ownedSurvey(ctx, tx, id, ownerID); err != nil {
			return err
		}
		if err := store.SetSurveyActive(ctx, tx, id, active, s.now()); err != nil {
			return err
		}

		var err error
		survey, err = store.SurveyByID(ctx, tx, id)
		return err
	})
	if err != nil {
		return
	}
	return model.FromSurvey(survey), nil
}

// GenerateShareToken publishes the survey under a fresh token. Any previous
// token stops working.
func (s *Surveys) GenerateShareToken(ctx context.Context, id, ownerID int64) (token string, err error) {
	err = database.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		if _, err := ownedSurvey(ctx, tx, id, ownerID); err != nil {
			return err
		}

		var err error
		if token, err = auth.NewShareToken(); err != nil {
			return err
		}
		return store.SetShareToken(ctx, tx, id, token)
	})
	return
}

// Delete removes the survey together with its questions, options and every
// response collected for it.
func (s *Surveys) Delete(ctx context.Context, id, ownerID int64) error {
	return database.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		if _, err := ownedSurvey(ctx, tx, id, ownerID); err != nil {
			return err
		}
		return store.DeleteSurvey(ctx, tx, id)
	})
}
