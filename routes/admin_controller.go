package routes

import (
	"net/http"

	"github.com/go-chi/render"

	"github.com/mbolis/quick-feedback/app"
	"github.com/mbolis/quick-feedback/httpx"
)

// SetUserActive lets a superuser deactivate or reactivate an account.
func SetUserActive(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userId, ok := idParam(w, r)
		if !ok {
			return
		}
		active, ok := activeParam(w, r)
		if !ok {
			return
		}

		user, err := app.Users.SetActive(r.Context(), userId, active)
		if err != nil {
			httpx.Fail(w, r, "set_user_active", err)
			return
		}

		render.JSON(w, r, user)
	}
}
