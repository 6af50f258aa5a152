package service

import (
	"context"
	"database/sql"
	"strings"

	"github.com/pkg/errors"

	"github.com/mbolis/quick-feedback/auth"
	"github.com/mbolis/quick-feedback/log"
	"github.com/mbolis/quick-feedback/model"
	"github.com/mbolis/quick-feedback/store"
)

// Users manages accounts and checks credentials.
type Users struct {
	db *sql.DB
}

func NewUsers(db *sql.DB) *Users {
	return &Users{db: db}
}

// normalizeEmail is the form emails are stored and looked up in.
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *Users) Signup(ctx context.Context, in model.SignupInput) (out model.User, err error) {
	in.Email = normalizeEmail(in.Email)
	if err = checkStruct(in); err != nil {
		return
	}

	user, err := s.create(ctx, in.Email, in.Password, false)
	if err != nil {
		return
	}
	return model.FromUser(user), nil
}

func (s *Users) create(ctx context.Context, email, password string, superuser bool) (store.User, error) {
	hash, err := auth.HashPassword(password)
	if err != nil {
		return store.User{}, err
	}

	user := store.User{
		Email:        email,
		PasswordHash: hash,
		IsActive:     true,
		IsSuperuser:  superuser,
	}
	err = store.InsertUser(ctx, s.db, &user)
	if errors.Is(err, store.ErrDuplicate) {
		return user, conflict("email already registered")
	}
	return user, err
}

// Authenticate checks an email/password pair. Unknown users, wrong passwords
// and deactivated accounts all fail with the same error.
func (s *Users) Authenticate(ctx context.Context, email, password string) (store.User, error) {
	user, err := store.UserByEmail(ctx, s.db, normalizeEmail(email))
	if errors.Is(err, store.ErrNotFound) {
		return user, authError("incorrect email or password")
	}
	if err != nil {
		return user, err
	}

	err = auth.CheckPassword(user.PasswordHash, password)
	if errors.Is(err, auth.ErrMismatchedPassword) {
		return user, authError("incorrect email or password")
	}
	if err != nil {
		return user, err
	}

	if !user.IsActive {
		return user, authError("inactive user")
	}
	return user, nil
}

// Current loads the user a token was issued to.
func (s *Users) Current(ctx context.Context, id int64) (store.User, error) {
	user, err := store.UserByID(ctx, s.db, id)
	if errors.Is(err, store.ErrNotFound) {
		return user, authError("unknown user")
	}
	if err != nil {
		return user, err
	}
	if !user.IsActive {
		return user, authError("inactive user")
	}
	return user, nil
}

// ActiveByEmail loads an account that may still be issued tokens.
func (s *Users) ActiveByEmail(ctx context.Context, email string) (store.User, error) {
	user, err := store.UserByEmail(ctx, s.db, normalizeEmail(email))
	if errors.Is(err, store.ErrNotFound) {
		return user, authError("unknown user")
	}
	if err != nil {
		return user, err
	}
	if !user.IsActive {
		return user, authError("inactive user")
	}
	return user, nil
}

// SetActive enables or disables an account. It is the only change a user
// record accepts after creation.
func (s *Users) SetActive(ctx context.Context, id int64, active bool) (out model.User, err error) {
	err = store.SetUserActive(ctx, s.db, id, active)
	if errors.Is(err, store.ErrNotFound) {
		return out, notFound("user %d not found", id)
	}
	if err != nil {
		return
	}

	user, err := store.UserByID(ctx, s.db, id)
	if err != nil {
		return
	}
	return model.FromUser(user), nil
}

// EnsureSuperuser creates a superuser with the given credentials unless the
// email is already taken.
func (s *Users) EnsureSuperuser(ctx context.Context, email, password string) error {
	email = normalizeEmail(email)

	_, err := store.UserByEmail(ctx, s.db, email)
	if err == nil {
		log.Debugf("users.superuser: %s already exists", email)
		return nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return err
	}

	if _, err = s.create(ctx, email, password, true); err != nil {
		return err
	}
	log.Infof("users.superuser: created %s", email)
	return nil
}
