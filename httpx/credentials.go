package httpx

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/oauth"
	"github.com/pkg/errors"

	"github.com/mbolis/quick-feedback/config"
	"github.com/mbolis/quick-feedback/service"
)

// Claims set on every access token.
const (
	ClaimUserID = "uid"
	ClaimRoles  = "roles"
	RoleAdmin   = "admin"
)

const refreshTokenTTL = 30 * 24 * time.Hour

type credentialsVerifier struct {
	users *service.Users
}

func CredentialsVerifier(users *service.Users) oauth.CredentialsVerifier {
	return &credentialsVerifier{users}
}

// NewBearerServer issues access tokens of cfg.TokenTTL for the
// password and refresh_token grants.
func NewBearerServer(users *service.Users, cfg config.Config) *oauth.BearerServer {
	return oauth.NewBearerServer(cfg.TokenSecret, cfg.TokenTTL, CredentialsVerifier(users), nil)
}

func (cv *credentialsVerifier) ValidateUser(username string, password string, scope string, r *http.Request) error {
	_, err := cv.users.Authenticate(requestContext(r), username, password)
	return err
}
func (cv *credentialsVerifier) StoreTokenID(tokenType oauth.TokenType, credential string, tokenID string, refreshTokenID string) error {
	return cv.users.RecordRefreshToken(context.Background(), credential, tokenID, refreshTokenID, time.Now().Add(refreshTokenTTL))
}
func (cv *credentialsVerifier) ValidateTokenID(tokenType oauth.TokenType, credential string, tokenID string, refreshTokenID string) error {
	ctx := context.Background()
	if err := cv.users.RedeemRefreshToken(ctx, credential, tokenID, refreshTokenID, time.Now()); err != nil {
		return err
	}
	_, err := cv.users.ActiveByEmail(ctx, credential)
	return err
}
func (cv *credentialsVerifier) AddClaims(tokenType oauth.TokenType, credential string, tokenID string, scope string, r *http.Request) (map[string]string, error) {
	user, err := cv.users.ActiveByEmail(requestContext(r), credential)
	if err != nil {
		return nil, err
	}

	claims := map[string]string{ClaimUserID: strconv.FormatInt(user.ID, 10)}
	if user.IsSuperuser {
		claims[ClaimRoles] = RoleAdmin
	}
	return claims, nil
}
func (*credentialsVerifier) AddProperties(tokenType oauth.TokenType, credential string, tokenID string, scope string, r *http.Request) (map[string]string, error) {
	return map[string]string{}, nil
}
func (*credentialsVerifier) ValidateClient(clientID string, clientSecret string, scope string, r *http.Request) error {
	return errors.New("not supported")
}

func requestContext(r *http.Request) context.Context {
	if r == nil {
		return context.Background()
	}
	return r.Context()
}
