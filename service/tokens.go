package service

import (
	"context"
	"time"

	"github.com/pkg/errors"

	"github.com/mbolis/quick-feedback/store"
)

// RecordRefreshToken remembers a refresh token so that it can be redeemed
// once before expiration. email is the login as typed by the user.
func (s *Users) RecordRefreshToken(ctx context.Context, email, tokenID, refreshTokenID string, expiration time.Time) error {
	return store.InsertToken(ctx, s.db, normalizeEmail(email), tokenID, refreshTokenID, expiration)
}

// RedeemRefreshToken consumes a refresh token record.
func (s *Users) RedeemRefreshToken(ctx context.Context, email, tokenID, refreshTokenID string, now time.Time) error {
	expiration, err := store.ConsumeToken(ctx, s.db, normalizeEmail(email), tokenID, refreshTokenID)
	if errors.Is(err, store.ErrNotFound) {
		return authError("could not refresh")
	}
	if err != nil {
		return err
	}
	if expiration.Before(now) {
		return authError("refresh token expired")
	}
	return nil
}
