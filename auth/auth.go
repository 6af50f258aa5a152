// Package auth holds the credential primitives: password hashing and
// share token generation. Bearer tokens are handled by httpx.
package auth

import (
	"crypto/rand"
	"encoding/base64"

	"github.com/pkg/errors"
	"golang.org/x/crypto/bcrypt"
)

// ShareTokenBytes is the entropy of a share token.
const ShareTokenBytes = 32

var ErrMismatchedPassword = errors.New("auth: password does not match")

func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", errors.Wrap(err, "auth.hash_password")
	}
	return string(hash), nil
}

func CheckPassword(hash, password string) error {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return ErrMismatchedPassword
	}
	return errors.Wrap(err, "auth.check_password")
}

// NewShareToken returns a random URL-safe token without padding.
func NewShareToken() (string, error) {
	b := make([]byte, ShareTokenBytes)
	if _, err := rand.Read(b); err != nil {
		return "", errors.Wrap(err, "auth.share_token")
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
