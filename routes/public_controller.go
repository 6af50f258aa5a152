package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"github.com/mbolis/quick-feedback/app"
	"github.com/mbolis/quick-feedback/httpx"
	"github.com/mbolis/quick-feedback/log"
	"github.com/mbolis/quick-feedback/model"
)

// GetSharedSurvey serves a survey by share token whatever its state, so its
// owner can preview it.
func GetSharedSurvey(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		survey, err := app.Surveys.Shared(r.Context(), chi.URLParam(r, "token"))
		if err != nil {
			httpx.Fail(w, r, "get_shared_survey", err)
			return
		}

		render.JSON(w, r, survey)
	}
}

// GetActiveSharedSurvey serves a survey by share token only while it accepts
// responses.
func GetActiveSharedSurvey(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		survey, err := app.Surveys.ActiveShared(r.Context(), chi.URLParam(r, "token"))
		if err != nil {
			httpx.Fail(w, r, "get_active_shared_survey", err)
			return
		}

		render.JSON(w, r, survey)
	}
}

// SubmitResponses takes a JSON array of {question_id, answer}.
func SubmitResponses(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		surveyId, ok := idParam(w, r)
		if !ok {
			return
		}

		answers := []model.AnswerInput{}
		err := render.DecodeJSON(r.Body, &answers)
		if err != nil {
			httpx.LogStatusMsg(w, r, http.StatusBadRequest, log.DebugLevel, "request.parse_body", "malformed request body")
			return
		}

		responses, err := app.Responses.Submit(r.Context(), surveyId, answers)
		if err != nil {
			httpx.Fail(w, r, "submit_responses", err)
			return
		}

		render.Status(r, http.StatusCreated)
		render.JSON(w, r, map[string]any{
			"responses": responses,
		})
	}
}
