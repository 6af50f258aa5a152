package store

import (
	"context"
	"time"
)

const userColumns = `id, email, password_hash, is_active, is_superuser`

func InsertUser(ctx context.Context, q Querier, u *User) error {
	err := q.QueryRowContext(ctx, `
		INSERT INTO user (email, password_hash, is_active, is_superuser)
		VALUES (?, ?, ?, ?)
		RETURNING id`,
		u.Email,
		u.PasswordHash,
		u.IsActive,
		u.IsSuperuser,
	).Scan(&u.ID)
	return wrap(err, "store.insert_user")
}

func UserByEmail(ctx context.Context, q Querier, email string) (u User, err error) {
	err = q.QueryRowContext(ctx, `
		SELECT `+userColumns+`
		FROM user
		WHERE email = ?`,
		email,
	).Scan(&u.ID, &u.Email, &u.PasswordHash, &u.IsActive, &u.IsSuperuser)
	err = wrap(err, "store.user_by_email")
	return
}

func UserByID(ctx context.Context, q Querier, id int64) (u User, err error) {
	err = q.QueryRowContext(ctx, `
		SELECT `+userColumns+`
		FROM user
		WHERE id = ?`,
		id,
	).Scan(&u.ID, &u.Email, &u.PasswordHash, &u.IsActive, &u.IsSuperuser)
	err = wrap(err, "store.user_by_id")
	return
}

func SetUserActive(ctx context.Context, q Querier, id int64, active bool) error {
	res, err := q.ExecContext(ctx, `
		UPDATE user SET is_active = ? WHERE id = ?`,
		active,
		id,
	)
	if err != nil {
		return wrap(err, "store.set_user_active")
	}
	return expectRow(res, "store.set_user_active")
}

func InsertToken(ctx context.Context, q Querier, username, tokenID, refreshTokenID string, expiration time.Time) error {
	_, err := q.ExecContext(ctx, `
		INSERT INTO token (username, token_id, refresh_token_id, expiration)
		VALUES (?, ?, ?, ?)`,
		username,
		tokenID,
		refreshTokenID,
		expiration.Unix(),
	)
	return wrap(err, "store.insert_token")
}

// ConsumeToken deletes a refresh token record and returns its expiration.
// Each refresh token is therefore usable once.
func ConsumeToken(ctx context.Context, q Querier, username, tokenID, refreshTokenID string) (expiration time.Time, err error) {
	var unix int64
	err = q.QueryRowContext(ctx, `
		DELETE FROM token
		WHERE username = ?
			AND token_id = ?
			AND refresh_token_id = ?
		RETURNING expiration`,
		username,
		tokenID,
		refreshTokenID,
	).Scan(&unix)
	if err != nil {
		err = wrap(err, "store.consume_token")
		return
	}
	expiration = time.Unix(unix, 0)
	return
}
