package service

import (
	"context"

	"github.com/pkg/errors"

	"github.com/mbolis/quick-feedback/store"
)

func requireOwner(s store.Survey, userID int64) error {
	if s.UserID != userID {
		return forbidden("not authorized to access survey %d", s.ID)
	}
	return nil
}

// ownedSurvey loads survey id and checks that userID owns it.
func ownedSurvey(ctx context.Context, q store.Querier, id, userID int64) (store.Survey, error) {
	s, err := store.SurveyByID(ctx, q, id)
	if errors.Is(err, store.ErrNotFound) {
		return s, notFound("survey %d not found", id)
	}
	if err != nil {
		return s, err
	}
	return s, requireOwner(s, userID)
}
