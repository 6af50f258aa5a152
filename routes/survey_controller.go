package routes

import (
	"net/http"
	"strconv"

	"github.com/go-chi/render"

	"github.com/mbolis/quick-feedback/app"
	"github.com/mbolis/quick-feedback/httpx"
	"github.com/mbolis/quick-feedback/log"
	"github.com/mbolis/quick-feedback/model"
)

func CreateSurvey(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		in := model.SurveyInput{}
		err := render.DecodeJSON(r.Body, &in)
		if err != nil {
			httpx.LogStatusMsg(w, r, http.StatusBadRequest, log.DebugLevel, "request.parse_body", "malformed request body")
			return
		}

		user, _ := httpx.UserFrom(r.Context())
		survey, err := app.Surveys.Create(r.Context(), user.ID, in)
		if err != nil {
			httpx.Fail(w, r, "create_survey", err)
			return
		}

		render.Status(r, http.StatusCreated)
		render.JSON(w, r, survey)
	}
}

func ListSurveys(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, _ := httpx.UserFrom(r.Context())
		surveys, err := app.Surveys.List(r.Context(), user.ID)
		if err != nil {
			httpx.Fail(w, r, "list_surveys", err)
			return
		}

		render.JSON(w, r, map[string]any{
			"surveys": surveys,
		})
	}
}

func GetSurvey(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		surveyId, ok := idParam(w, r)
		if !ok {
			return
		}

		user, _ := httpx.UserFrom(r.Context())
		survey, err := app.Surveys.Get(r.Context(), surveyId, user.ID)
		if err != nil {
			httpx.Fail(w, r, "get_survey", err)
			return
		}

		render.JSON(w, r, survey)
	}
}

func UpdateSurvey(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		surveyId, ok := idParam(w, r)
		if !ok {
			return
		}

		in := model.SurveyInput{}
		err := render.DecodeJSON(r.Body, &in)
		if err != nil {
			httpx.LogStatusMsg(w, r, http.StatusBadRequest, log.DebugLevel, "request.parse_body", "malformed request body")
			return
		}

		user, _ := httpx.UserFrom(r.Context())
		survey, err := app.Surveys.Update(r.Context(), surveyId, user.ID, in)
		if err != nil {
			httpx.Fail(w, r, "update_survey", err)
			return
		}

		render.JSON(w, r, survey)
	}
}

func DeleteSurvey(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		surveyId, ok := idParam(w, r)
		if !ok {
			return
		}

		user, _ := httpx.UserFrom(r.Context())
		err := app.Surveys.Delete(r.Context(), surveyId, user.ID)
		if err != nil {
			httpx.Fail(w, r, "delete_survey", err)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

func SetSurveyStatus(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		surveyId, ok := idParam(w, r)
		if !ok {
			return
		}
		active, ok := activeParam(w, r)
		if !ok {
			return
		}

		user, _ := httpx.UserFrom(r.Context())
		survey, err := app.Surveys.SetActive(r.Context(), surveyId, user.ID, active)
		if err != nil {
			httpx.Fail(w, r, "set_survey_status", err)
			return
		}

		render.JSON(w, r, survey)
	}
}

func ShareSurvey(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		surveyId, ok := idParam(w, r)
		if !ok {
			return
		}

		user, _ := httpx.UserFrom(r.Context())
		token, err := app.Surveys.GenerateShareToken(r.Context(), surveyId, user.ID)
		if err != nil {
			httpx.Fail(w, r, "share_survey", err)
			return
		}

		render.JSON(w, r, model.ShareToken{ShareToken: token})
	}
}

func GetSurveyResponses(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		surveyId, ok := idParam(w, r)
		if !ok {
			return
		}

		user, _ := httpx.UserFrom(r.Context())
		responses, err := app.Responses.List(r.Context(), surveyId, user.ID)
		if err != nil {
			httpx.Fail(w, r, "get_responses", err)
			return
		}

		render.JSON(w, r, map[string]any{
			"responses": responses,
		})
	}
}

func GetSurveyAnalytics(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		surveyId, ok := idParam(w, r)
		if !ok {
			return
		}

		user, _ := httpx.UserFrom(r.Context())
		analytics, err := app.Analytics.Compute(r.Context(), surveyId, user.ID)
		if err != nil {
			httpx.Fail(w, r, "get_analytics", err)
			return
		}

		render.JSON(w, r, analytics)
	}
}

func ExportSurveyResponses(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		surveyId, ok := idParam(w, r)
		if !ok {
			return
		}

		user, _ := httpx.UserFrom(r.Context())
		export, err := app.Analytics.ExportCSV(r.Context(), surveyId, user.ID)
		if err != nil {
			httpx.Fail(w, r, "export_responses", err)
			return
		}

		w.Header().Set("Content-Type", "text/csv; charset=utf-8")
		w.Header().Set("Content-Disposition", `attachment; filename="`+export.Filename+`"`)
		w.Header().Set("Content-Length", strconv.Itoa(len(export.Content)))
		if _, err = w.Write(export.Content); err != nil {
			log.Debugf("export_responses.write: %s", err)
		}
	}
}
