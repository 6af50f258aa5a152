package routes

import (
	"net/http"
	"regexp"

	"github.com/go-chi/render"

	"github.com/mbolis/quick-feedback/app"
	"github.com/mbolis/quick-feedback/httpx"
	"github.com/mbolis/quick-feedback/log"
	"github.com/mbolis/quick-feedback/model"
)

var reRefresh = regexp.MustCompile(`(?i)^refresh\s+(.*)`)

func Signup(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		in := model.SignupInput{}
		err := render.DecodeJSON(r.Body, &in)
		if err != nil {
			httpx.LogStatusMsg(w, r, http.StatusBadRequest, log.DebugLevel, "request.parse_body", "malformed request body")
			return
		}

		user, err := app.Users.Signup(r.Context(), in)
		if err != nil {
			httpx.Fail(w, r, "signup", err)
			return
		}

		render.Status(r, http.StatusCreated)
		render.JSON(w, r, user)
	}
}

// Login accepts an OAuth2 password form (username, password) or HTTP Basic
// credentials, and answers with an access and a refresh token.
func Login(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, pass, ok := r.BasicAuth()
		if !ok {
			user, pass = r.PostFormValue("username"), r.PostFormValue("password")
		}
		if user == "" || pass == "" {
			w.Header().Set("WWW-Authenticate", "Bearer")
			httpx.LogStatusMsg(w, r, http.StatusUnauthorized, log.DebugLevel, "login.credentials", "missing credentials")
			return
		}

		req, err := httpx.TokenRequest(r.Context(), httpx.PasswordGrant(user, pass))
		if err != nil {
			httpx.LogInternalError(w, r, "login.token_request", err)
			return
		}
		app.UserCredentials(w, req)
	}
}

func Refresh(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token := r.PostFormValue("refresh_token")
		if match := reRefresh.FindStringSubmatch(r.Header.Get("authorization")); len(match) > 0 {
			token = match[1]
		}
		if token == "" {
			httpx.LogStatusMsg(w, r, http.StatusUnauthorized, log.DebugLevel, "refresh.token", "missing refresh token")
			return
		}

		req, err := httpx.TokenRequest(r.Context(), httpx.RefreshGrant(token))
		if err != nil {
			httpx.LogInternalError(w, r, "refresh.token_request", err)
			return
		}

		resp := httpx.NewResponseBuffer()
		app.UserCredentials(resp, req)
		if resp.Status() >= http.StatusInternalServerError {
			// the verifier failed on an account that cannot be issued tokens anymore
			log.Debugf("refresh.user_credentials: status %d: %s", resp.Status(), resp.Body())
			httpx.LogStatusMsg(w, r, http.StatusUnauthorized, log.DebugLevel, "refresh.rejected", "could not refresh")
			return
		}
		resp.Flush(w)
	}
}

func Me(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, _ := httpx.UserFrom(r.Context())
		render.JSON(w, r, model.FromUser(user))
	}
}
