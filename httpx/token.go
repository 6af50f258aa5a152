package httpx

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-chi/oauth"
	"github.com/goccy/go-json"
	"github.com/pkg/errors"

	"github.com/mbolis/quick-feedback/model"
)

var ErrTokenRejected = errors.New("token request rejected")

// PasswordGrant is the token request body for an email/password login.
func PasswordGrant(email, password string) url.Values {
	return url.Values{
		"grant_type": {"password"},
		"username":   {email},
		"password":   {password},
	}
}

// RefreshGrant is the token request body for a refresh token.
func RefreshGrant(refreshToken string) url.Values {
	return url.Values{
		"grant_type":    {"refresh_token"},
		"refresh_token": {refreshToken},
	}
}

// TokenRequest rewrites a request into a form-encoded call to the bearer
// server's token endpoint.
func TokenRequest(ctx context.Context, body url.Values) (*http.Request, error) {
	encoded := body.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, "/", strings.NewReader(encoded))
	if err != nil {
		return nil, errors.Wrap(err, "token.new_request")
	}
	req.Header.Set("content-type", "application/x-www-form-urlencoded")
	req.Header.Set("content-length", strconv.Itoa(len(encoded)))
	return req, nil
}

// RequestToken runs a token grant against bearerServer without going through
// the network, and decodes the issued tokens.
func RequestToken(ctx context.Context, bearerServer *oauth.BearerServer, body url.Values) (token model.Token, err error) {
	req, err := TokenRequest(ctx, body)
	if err != nil {
		return
	}

	resp := NewResponseBuffer()
	bearerServer.UserCredentials(resp, req)
	switch status := resp.Status(); {
	case status == http.StatusUnauthorized:
		return token, ErrTokenRejected
	case status != http.StatusOK:
		return token, errors.Errorf("token.request: status %d", status)
	}

	err = json.Unmarshal(resp.Body(), &token)
	err = errors.Wrap(err, "token.decode")
	return
}
