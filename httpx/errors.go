package httpx

import (
	"fmt"
	"net/http"

	"github.com/go-chi/render"
	"github.com/pkg/errors"

	"github.com/mbolis/quick-feedback/log"
	"github.com/mbolis/quick-feedback/service"
)

// ErrorBody is the JSON body of every error response.
type ErrorBody struct {
	Detail   string   `json:"detail"`
	Problems []string `json:"problems,omitempty"`
}

// Will log an error, and send an HTTP response with status 500 and default text
func LogInternalError(w http.ResponseWriter, r *http.Request, code string, err error) {
	log.Errorf("%s: %+v", code, err)
	render.Status(r, http.StatusInternalServerError)
	render.JSON(w, r, ErrorBody{Detail: http.StatusText(http.StatusInternalServerError)})
}

// Will log an error code and message at the given level,
// and send an HTTP response with the given status and formatted message
func LogStatusMsg(w http.ResponseWriter, r *http.Request, status int, level log.Level, code string, msg string, args ...any) {
	errMsg := fmt.Sprintf(msg, args...)
	log.Log(level, code+":", errMsg)
	render.Status(r, status)
	render.JSON(w, r, ErrorBody{Detail: errMsg})
}

// Status maps a service error kind to an HTTP status. Anything that is not a
// service error is an internal error.
func Status(err error) int {
	switch {
	case errors.Is(err, service.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, service.ErrAuth):
		return http.StatusUnauthorized
	case errors.Is(err, service.ErrConflict):
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}

// Fail reports err to the client with the status matching its kind.
func Fail(w http.ResponseWriter, r *http.Request, code string, err error) {
	status := Status(err)
	if status == http.StatusInternalServerError {
		LogInternalError(w, r, code, err)
		return
	}

	log.Debugf("%s: %s", code, err)
	body := ErrorBody{Detail: err.Error()}
	var serr *service.Error
	if errors.As(err, &serr) {
		body.Problems = serr.Problems()
	}
	if status == http.StatusUnauthorized {
		w.Header().Set("WWW-Authenticate", "Bearer")
	}
	render.Status(r, status)
	render.JSON(w, r, body)
}
