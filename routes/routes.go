package routes

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/render"

	"github.com/mbolis/quick-feedback/app"
	"github.com/mbolis/quick-feedback/gql"
	"github.com/mbolis/quick-feedback/httpx"
	"github.com/mbolis/quick-feedback/log"
	"github.com/mbolis/quick-feedback/routes/middlewares"
)

func Wire(app app.App) http.Handler {
	root := chi.NewRouter()
	root.Use(middleware.RequestID, middlewares.RequestLogger, middleware.Recoverer)
	root.Use(cors.Handler(cors.Options{
		AllowedOrigins:   app.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	root.Get("/", func(w http.ResponseWriter, r *http.Request) {
		render.JSON(w, r, map[string]string{"message": "Customer Feedback System API is running"})
	})

	root.Mount("/api", apiRouter(app))
	root.With(middlewares.OptionalAuth(app.TokenSecret, app.Users)).
		Handle("/graphql", gql.Handler(app))

	return root
}

func apiRouter(app app.App) http.Handler {
	api := chi.NewRouter()

	api.Route("/auth", func(r chi.Router) {
		r.Post("/signup", Signup(app))
		r.Post("/login", Login(app))
		r.Post("/refresh", Refresh(app))
	})

	// anonymous respondents
	api.Get("/shared/{token}", GetSharedSurvey(app))
	api.Get("/shared/{token}/active", GetActiveSharedSurvey(app))
	api.Post(`/surveys/{id:^\d+$}/responses`, SubmitResponses(app))

	api.Group(func(r chi.Router) {
		r.Use(middlewares.Authenticated(app.TokenSecret, app.Users))

		r.Get("/me", Me(app))

		// CRUD survey
		r.Post("/surveys", CreateSurvey(app))
		r.Get("/surveys", ListSurveys(app))
		r.Get(`/surveys/{id:^\d+$}`, GetSurvey(app))
		r.Put(`/surveys/{id:^\d+$}`, UpdateSurvey(app))
		r.Delete(`/surveys/{id:^\d+$}`, DeleteSurvey(app))

		r.Patch(`/surveys/{id:^\d+$}/status`, SetSurveyStatus(app))
		r.Post(`/surveys/{id:^\d+$}/share`, ShareSurvey(app))

		r.Get(`/surveys/{id:^\d+$}/responses`, GetSurveyResponses(app))
		r.Get(`/surveys/{id:^\d+$}/analytics`, GetSurveyAnalytics(app))
		r.Get(`/surveys/{id:^\d+$}/export`, ExportSurveyResponses(app))

		r.Route("/admin", func(r chi.Router) {
			r.Use(middlewares.Admin)
			r.Patch(`/users/{id:^\d+$}/active`, SetUserActive(app))
		})
	})

	return api
}

func idParam(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httpx.LogStatusMsg(w, r, http.StatusBadRequest, log.DebugLevel, "request.get_url_param.id", "invalid id")
		return 0, false
	}
	return id, true
}

func activeParam(w http.ResponseWriter, r *http.Request) (bool, bool) {
	active, err := strconv.ParseBool(r.URL.Query().Get("is_active"))
	if err != nil {
		httpx.LogStatusMsg(w, r, http.StatusBadRequest, log.DebugLevel, "request.get_query_param.is_active", "is_active must be true or false")
		return false, false
	}
	return active, true
}
