package middlewares

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/go-chi/oauth"

	"github.com/mbolis/quick-feedback/httpx"
	"github.com/mbolis/quick-feedback/log"
	"github.com/mbolis/quick-feedback/store"
)

func TestAdmin(t *testing.T) {
	ok := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	tests := []struct {
		name   string
		claims map[string]string
		user   *store.User
		status int
	}{
		{"no claims", nil, nil, http.StatusForbidden},
		{"no admin role", map[string]string{httpx.ClaimRoles: "user"}, &store.User{IsSuperuser: true}, http.StatusForbidden},
		{"role but not superuser anymore", map[string]string{httpx.ClaimRoles: httpx.RoleAdmin}, &store.User{}, http.StatusForbidden},
		{"superuser", map[string]string{httpx.ClaimRoles: "user," + httpx.RoleAdmin}, &store.User{IsSuperuser: true}, http.StatusNoContent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest("GET", "/", nil)
			ctx := r.Context()
			if tt.claims != nil {
				ctx = context.WithValue(ctx, oauth.ClaimsContext, tt.claims)
			}
			if tt.user != nil {
				ctx = httpx.WithUser(ctx, *tt.user)
			}

			w := httptest.NewRecorder()
			Admin(ok).ServeHTTP(w, r.WithContext(ctx))
			if w.Code != tt.status {
				t.Errorf("Expected status %d, got %d", tt.status, w.Code)
			}
		})
	}
}

func TestRequestLogger(t *testing.T) {
	var buf bytes.Buffer
	log.Logger.SetOutput(&buf)
	defer log.Logger.SetOutput(os.Stderr)

	h := RequestLogger(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
		w.Write([]byte("short and stout"))
	}))

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest("GET", "/pot", nil))

	if w.Code != http.StatusTeapot || w.Body.String() != "short and stout" {
		t.Errorf("Expected the response to pass through, got %d %q", w.Code, w.Body.String())
	}
	line := buf.String()
	for _, want := range []string{"status=418", "path=/pot", "method=GET", "bytes=15"} {
		if !strings.Contains(line, want) {
			t.Errorf("Expected %q in log line %q", want, line)
		}
	}
}
