package app

import (
	"database/sql"

	"github.com/go-chi/oauth"

	"github.com/mbolis/quick-feedback/config"
	"github.com/mbolis/quick-feedback/httpx"
	"github.com/mbolis/quick-feedback/service"
)

// App carries the dependencies shared by the REST and GraphQL front-ends.
type App struct {
	*sql.DB
	*oauth.BearerServer
	config.Config

	Users     *service.Users
	Surveys   *service.Surveys
	Responses *service.Responses
	Analytics *service.Analytics
}

func New(db *sql.DB, cfg config.Config) App {
	users := service.NewUsers(db)
	return App{
		DB:           db,
		BearerServer: httpx.NewBearerServer(users, cfg),
		Config:       cfg,
		Users:        users,
		Surveys:      service.NewSurveys(db),
		Responses:    service.NewResponses(db),
		Analytics:    service.NewAnalytics(db),
	}
}
