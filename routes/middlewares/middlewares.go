package middlewares

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/felixge/httpsnoop"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/oauth"

	"github.com/mbolis/quick-feedback/httpx"
	"github.com/mbolis/quick-feedback/log"
	"github.com/mbolis/quick-feedback/service"
)

// Authenticated requires a valid bearer token and loads its user.
func Authenticated(secret string, users *service.Users) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return chi.Chain(oauth.Authorize(secret, nil), currentUser(users)).Handler(next)
	}
}

// OptionalAuth authenticates requests that carry an Authorization header and
// lets anonymous ones through untouched.
func OptionalAuth(secret string, users *service.Users) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		authenticated := Authenticated(secret, users)(next)
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Header.Get("authorization") == "" {
				next.ServeHTTP(w, r)
				return
			}
			authenticated.ServeHTTP(w, r)
		})
	}
}

func currentUser(users *service.Users) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, _ := r.Context().Value(oauth.ClaimsContext).(map[string]string)

			id, err := strconv.ParseInt(claims[httpx.ClaimUserID], 10, 64)
			if err != nil {
				httpx.LogStatusMsg(w, r, http.StatusUnauthorized, log.DebugLevel, "auth.claims", "could not validate credentials")
				return
			}

			user, err := users.Current(r.Context(), id)
			if err != nil {
				httpx.Fail(w, r, "auth.current_user", err)
				return
			}

			next.ServeHTTP(w, r.WithContext(httpx.WithUser(r.Context(), user)))
		})
	}
}

// Admin lets through only tokens carrying the 'admin' role. It must run after
// Authenticated.
func Admin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, _ := r.Context().Value(oauth.ClaimsContext).(map[string]string)

		isAdmin := false
		if rolesClaim, ok := claims[httpx.ClaimRoles]; ok {
			roles := strings.Split(rolesClaim, ",")
			for _, role := range roles {
				if role == httpx.RoleAdmin {
					isAdmin = true
					break
				}
			}
		}

		user, ok := httpx.UserFrom(r.Context())
		if !isAdmin || !ok || !user.IsSuperuser {
			httpx.Fail(w, r, "auth.admin", service.NewError(service.ErrForbidden, "superuser privileges required"))
			return
		}

		next.ServeHTTP(w, r)
	})
}

// RequestLogger writes one access log line per request.
func RequestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		m := httpsnoop.CaptureMetrics(next, w, r)

		entry := log.WithFields(log.Fields{
			"method":   r.Method,
			"path":     r.URL.Path,
			"status":   m.Code,
			"bytes":    m.Written,
			"duration": m.Duration.Round(time.Microsecond).String(),
			"remote":   r.RemoteAddr,
		})
		if id := middleware.GetReqID(r.Context()); id != "" {
			entry = entry.WithField("request_id", id)
		}

		switch {
		case m.Code >= http.StatusInternalServerError:
			entry.Error("request")
		case m.Code >= http.StatusBadRequest:
			entry.Info("request")
		default:
			entry.Debug("request")
		}
	})
}
