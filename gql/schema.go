package gql

import (
	"strconv"

	"github.com/graphql-go/graphql"
	"github.com/pkg/errors"

	"github.com/mbolis/quick-feedback/app"
	"github.com/mbolis/quick-feedback/httpx"
	"github.com/mbolis/quick-feedback/model"
	"github.com/mbolis/quick-feedback/service"
	"github.com/mbolis/quick-feedback/store"
)

var (
	idArg = &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)}

	surveyIdArgs = graphql.FieldConfigArgument{"surveyId": idArg}
	idArgs       = graphql.FieldConfigArgument{"id": idArg}
	tokenArgs    = graphql.FieldConfigArgument{
		"token": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
	}
	credentialArgs = graphql.FieldConfigArgument{
		"email":    &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
		"password": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
	}
)

// NewSchema builds the GraphQL schema over the services in app.
func NewSchema(app app.App) (graphql.Schema, error) {
	query := graphql.NewObject(graphql.ObjectConfig{
		Name: "Query",
		Fields: graphql.Fields{
			"me": &graphql.Field{
				Type: graphql.NewNonNull(userType),
				Resolve: resolve("me", func(p graphql.ResolveParams) (any, error) {
					user, err := viewer(p)
					if err != nil {
						return nil, err
					}
					return model.FromUser(user), nil
				}),
			},
			"surveys": &graphql.Field{
				Type: graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(surveyType))),
				Resolve: resolve("surveys", func(p graphql.ResolveParams) (any, error) {
					user, err := viewer(p)
					if err != nil {
						return nil, err
					}
					return app.Surveys.List(p.Context, user.ID)
				}),
			},
			"survey": &graphql.Field{
				Type: graphql.NewNonNull(surveyType),
				Args: idArgs,
				Resolve: resolve("survey", func(p graphql.ResolveParams) (any, error) {
					user, id, err := viewerAndID(p, "id")
					if err != nil {
						return nil, err
					}
					return app.Surveys.Get(p.Context, id, user.ID)
				}),
			},
			"sharedSurvey": &graphql.Field{
				Type: graphql.NewNonNull(surveyType),
				Args: tokenArgs,
				Resolve: resolve("shared_survey", func(p graphql.ResolveParams) (any, error) {
					token, _ := p.Args["token"].(string)
					return app.Surveys.Shared(p.Context, token)
				}),
			},
			"activeSharedSurvey": &graphql.Field{
				Type: graphql.NewNonNull(surveyType),
				Args: tokenArgs,
				Resolve: resolve("active_shared_survey", func(p graphql.ResolveParams) (any, error) {
					token, _ := p.Args["token"].(string)
					return app.Surveys.ActiveShared(p.Context, token)
				}),
			},
			"surveyResponses": &graphql.Field{
				Type: graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(submissionType))),
				Args: surveyIdArgs,
				Resolve: resolve("survey_responses", func(p graphql.ResolveParams) (any, error) {
					user, id, err := viewerAndID(p, "surveyId")
					if err != nil {
						return nil, err
					}
					return app.Responses.Submissions(p.Context, id, user.ID)
				}),
			},
			"responses": &graphql.Field{
				Type: graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(responseType))),
				Args: surveyIdArgs,
				Resolve: resolve("responses", func(p graphql.ResolveParams) (any, error) {
					user, id, err := viewerAndID(p, "surveyId")
					if err != nil {
						return nil, err
					}
					return app.Responses.List(p.Context, id, user.ID)
				}),
			},
			"analytics": &graphql.Field{
				Type: graphql.NewNonNull(surveyAnalyticsType),
				Args: surveyIdArgs,
				Resolve: resolve("analytics", func(p graphql.ResolveParams) (any, error) {
					user, id, err := viewerAndID(p, "surveyId")
					if err != nil {
						return nil, err
					}
					return app.Analytics.Compute(p.Context, id, user.ID)
				}),
			},
			"csvExport": &graphql.Field{
				Type: graphql.NewNonNull(csvExportType),
				Args: surveyIdArgs,
				Resolve: resolve("csv_export", func(p graphql.ResolveParams) (any, error) {
					user, id, err := viewerAndID(p, "surveyId")
					if err != nil {
						return nil, err
					}
					return app.Analytics.ExportCSV(p.Context, id, user.ID)
				}),
			},
		},
	})

	mutation := graphql.NewObject(graphql.ObjectConfig{
		Name: "Mutation",
		Fields: graphql.Fields{
			"signup": &graphql.Field{
				Type: graphql.NewNonNull(userType),
				Args: credentialArgs,
				Resolve: resolve("signup", func(p graphql.ResolveParams) (any, error) {
					email, _ := p.Args["email"].(string)
					password, _ := p.Args["password"].(string)
					return app.Users.Signup(p.Context, model.SignupInput{Email: email, Password: password})
				}),
			},
			"login": &graphql.Field{
				Type: graphql.NewNonNull(tokenType),
				Args: credentialArgs,
				Resolve: resolve("login", func(p graphql.ResolveParams) (any, error) {
					email, _ := p.Args["email"].(string)
					password, _ := p.Args["password"].(string)
					token, err := httpx.RequestToken(p.Context, app.BearerServer, httpx.PasswordGrant(email, password))
					if errors.Is(err, httpx.ErrTokenRejected) {
						return nil, service.NewError(service.ErrAuth, "incorrect email or password")
					}
					return token, err
				}),
			},
			"createSurvey": &graphql.Field{
				Type: graphql.NewNonNull(surveyType),
				Args: graphql.FieldConfigArgument{
					"input": &graphql.ArgumentConfig{Type: graphql.NewNonNull(surveyInputType)},
				},
				Resolve: resolve("create_survey", func(p graphql.ResolveParams) (any, error) {
					user, err := viewer(p)
					if err != nil {
						return nil, err
					}
					return app.Surveys.Create(p.Context, user.ID, surveyInput(p.Args["input"]))
				}),
			},
			"updateSurvey": &graphql.Field{
				Type: graphql.NewNonNull(surveyType),
				Args: graphql.FieldConfigArgument{
					"id":    idArg,
					"input": &graphql.ArgumentConfig{Type: graphql.NewNonNull(surveyInputType)},
				},
				Resolve: resolve("update_survey", func(p graphql.ResolveParams) (any, error) {
					user, id, err := viewerAndID(p, "id")
					if err != nil {
						return nil, err
					}
					return app.Surveys.Update(p.Context, id, user.ID, surveyInput(p.Args["input"]))
				}),
			},
			"deleteSurvey": &graphql.Field{
				Type: graphql.NewNonNull(graphql.Boolean),
				Args: idArgs,
				Resolve: resolve("delete_survey", func(p graphql.ResolveParams) (any, error) {
					user, id, err := viewerAndID(p, "id")
					if err != nil {
						return nil, err
					}
					if err = app.Surveys.Delete(p.Context, id, user.ID); err != nil {
						return nil, err
					}
					return true, nil
				}),
			},
			"setSurveyActive": &graphql.Field{
				Type: graphql.NewNonNull(surveyType),
				Args: graphql.FieldConfigArgument{
					"id":       idArg,
					"isActive": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Boolean)},
				},
				Resolve: resolve("set_survey_active", func(p graphql.ResolveParams) (any, error) {
					user, id, err := viewerAndID(p, "id")
					if err != nil {
						return nil, err
					}
					active, _ := p.Args["isActive"].(bool)
					return app.Surveys.SetActive(p.Context, id, user.ID, active)
				}),
			},
			"generateShareToken": &graphql.Field{
				Type: graphql.NewNonNull(graphql.String),
				Args: idArgs,
				Resolve: resolve("generate_share_token", func(p graphql.ResolveParams) (any, error) {
					user, id, err := viewerAndID(p, "id")
					if err != nil {
						return nil, err
					}
					return app.Surveys.GenerateShareToken(p.Context, id, user.ID)
				}),
			},
			"submitResponses": &graphql.Field{
				Type: graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(responseType))),
				Args: graphql.FieldConfigArgument{
					"surveyId": idArg,
					"answers": &graphql.ArgumentConfig{
						Type: graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(answerInputType))),
					},
				},
				Resolve: resolve("submit_responses", func(p graphql.ResolveParams) (any, error) {
					surveyID, err := int64Arg(p, "surveyId")
					if err != nil {
						return nil, err
					}
					answers, err := answerInputs(p.Args["answers"])
					if err != nil {
						return nil, err
					}
					return app.Responses.Submit(p.Context, surveyID, answers)
				}),
			},
		},
	})

	return graphql.NewSchema(graphql.SchemaConfig{
		Query:    query,
		Mutation: mutation,
	})
}

// viewer is the authenticated user of the request, if any.
func viewer(p graphql.ResolveParams) (store.User, error) {
	user, ok := httpx.UserFrom(p.Context)
	if !ok {
		return user, service.NewError(service.ErrAuth, "not authenticated")
	}
	return user, nil
}

func viewerAndID(p graphql.ResolveParams, name string) (user store.User, id int64, err error) {
	if user, err = viewer(p); err != nil {
		return
	}
	id, err = int64Arg(p, name)
	return
}

func int64Arg(p graphql.ResolveParams, name string) (int64, error) {
	return parseID(p.Args[name], name)
}

func parseID(v any, name string) (int64, error) {
	s, _ := v.(string)
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, service.NewError(service.ErrValidation, "%s: invalid id %q", name, s)
	}
	return id, nil
}

func surveyInput(v any) model.SurveyInput {
	fields, _ := v.(map[string]any)
	in := model.SurveyInput{}
	in.Title, _ = fields["title"].(string)
	if desc, ok := fields["description"].(string); ok {
		in.Description = &desc
	}

	questions, _ := fields["questions"].([]any)
	for _, q := range questions {
		qf, _ := q.(map[string]any)
		qin := model.QuestionInput{}
		qin.Text, _ = qf["text"].(string)
		qin.IsOpenEnded, _ = qf["isOpenEnded"].(bool)

		options, _ := qf["options"].([]any)
		for _, o := range options {
			of, _ := o.(map[string]any)
			text, _ := of["text"].(string)
			qin.Options = append(qin.Options, model.OptionInput{Text: text})
		}
		in.Questions = append(in.Questions, qin)
	}
	return in
}

func answerInputs(v any) ([]model.AnswerInput, error) {
	items, _ := v.([]any)
	answers := make([]model.AnswerInput, 0, len(items))
	for _, item := range items {
		fields, _ := item.(map[string]any)
		questionID, err := parseID(fields["questionId"], "questionId")
		if err != nil {
			return nil, err
		}
		answer, _ := fields["answer"].(string)
		answers = append(answers, model.AnswerInput{QuestionID: questionID, Answer: answer})
	}
	return answers, nil
}
