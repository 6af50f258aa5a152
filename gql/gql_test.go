package gql_test

import (
	"bytes"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/goccy/go-json"

	"github.com/mbolis/quick-feedback/app"
	"github.com/mbolis/quick-feedback/gql"
	"github.com/mbolis/quick-feedback/routes"
	"github.com/mbolis/quick-feedback/testutil"
)

type gqlError struct {
	Message    string         `json:"message"`
	Extensions map[string]any `json:"extensions"`
}

type gqlResponse struct {
	Data   json.RawMessage `json:"data"`
	Errors []gqlError      `json:"errors"`
}

type gqlServer struct {
	t       *testing.T
	handler http.Handler
}

func newGQLServer(t *testing.T) *gqlServer {
	cfg := testutil.GetTestConfig(t)
	db := testutil.SetupTestDB(t, cfg)
	return &gqlServer{t: t, handler: routes.Wire(app.New(db, cfg))}
}

func (s *gqlServer) exec(token, query string, vars map[string]any) gqlResponse {
	s.t.Helper()
	body, err := json.Marshal(map[string]any{"query": query, "variables": vars})
	if err != nil {
		s.t.Fatalf("Failed to encode request: %v", err)
	}
	req := httptest.NewRequest("POST", "/graphql", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	s.handler.ServeHTTP(w, req)
	testutil.AssertStatus(s.t, w, http.StatusOK)

	var resp gqlResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		s.t.Fatalf("Failed to decode response: %v", err)
	}
	return resp
}

// data runs the operation, fails the test on errors and decodes the data.
func (s *gqlServer) data(token, query string, vars map[string]any, v any) {
	s.t.Helper()
	resp := s.exec(token, query, vars)
	if len(resp.Errors) > 0 {
		s.t.Fatalf("Unexpected errors: %+v", resp.Errors)
	}
	if err := json.Unmarshal(resp.Data, v); err != nil {
		s.t.Fatalf("Failed to decode data: %v", err)
	}
}

func (s *gqlServer) login(email string) string {
	s.t.Helper()
	creds := map[string]any{"email": email, "password": "password123"}

	var signup struct {
		Signup struct{ ID, Email string }
	}
	s.data("", `mutation($email: String!, $password: String!) { signup(email: $email, password: $password) { id email } }`, creds, &signup)
	if signup.Signup.Email != email {
		s.t.Fatalf("Expected %s, got %+v", email, signup.Signup)
	}

	var login struct {
		Login struct {
			AccessToken string
			TokenType   string
		}
	}
	s.data("", `mutation($email: String!, $password: String!) { login(email: $email, password: $password) { accessToken tokenType } }`, creds, &login)
	if login.Login.AccessToken == "" {
		s.t.Fatal("Expected an access token")
	}
	return login.Login.AccessToken
}

func errorCode(resp gqlResponse) string {
	if len(resp.Errors) == 0 {
		return ""
	}
	code, _ := resp.Errors[0].Extensions["code"].(string)
	return code
}

const createSurvey = `mutation($input: SurveyInput!) {
	createSurvey(input: $input) {
		id title isActive
		questions { id order isOpenEnded options { text } }
	}
}`

type surveyData struct {
	ID        string
	Title     string
	IsActive  bool
	Questions []struct {
		ID          string
		Order       int
		IsOpenEnded bool
		Options     []struct{ Text string }
	}
}

func sampleSurvey() map[string]any {
	return map[string]any{"input": map[string]any{
		"title": "Customer satisfaction",
		"questions": []any{
			map[string]any{"text": "Favorite color?", "isOpenEnded": true},
			map[string]any{"text": "Would you recommend us?", "options": []any{
				map[string]any{"text": "Yes"},
				map[string]any{"text": "No"},
				map[string]any{"text": "Maybe"},
			}},
		},
	}}
}

func TestSurveyFlow(t *testing.T) {
	s := newGQLServer(t)
	token := s.login("owner@example.com")

	var created struct{ CreateSurvey surveyData }
	s.data(token, createSurvey, sampleSurvey(), &created)
	survey := created.CreateSurvey
	if survey.Title != "Customer satisfaction" || !survey.IsActive || len(survey.Questions) != 2 {
		t.Fatalf("Unexpected survey: %+v", survey)
	}
	if !survey.Questions[0].IsOpenEnded || len(survey.Questions[1].Options) != 3 || survey.Questions[1].Order != 2 {
		t.Errorf("Unexpected questions: %+v", survey.Questions)
	}

	var share struct{ GenerateShareToken string }
	s.data(token, `mutation($id: ID!) { generateShareToken(id: $id) }`, map[string]any{"id": survey.ID}, &share)

	var shared struct{ ActiveSharedSurvey surveyData }
	s.data("", `query($token: String!) { activeSharedSurvey(token: $token) { id title } }`,
		map[string]any{"token": share.GenerateShareToken}, &shared)
	if shared.ActiveSharedSurvey.ID != survey.ID {
		t.Errorf("Expected survey %s, got %s", survey.ID, shared.ActiveSharedSurvey.ID)
	}

	const submit = `mutation($surveyId: ID!, $answers: [AnswerInput!]!) {
		submitResponses(surveyId: $surveyId, answers: $answers) { id submissionId answer }
	}`
	colorQ, recommendQ := survey.Questions[0].ID, survey.Questions[1].ID
	for _, answers := range [][]any{
		{map[string]any{"questionId": colorQ, "answer": "Blue"}, map[string]any{"questionId": recommendQ, "answer": "Yes"}},
		{map[string]any{"questionId": recommendQ, "answer": "Maybe"}},
	} {
		var submitted struct {
			SubmitResponses []struct{ ID, SubmissionID, Answer string }
		}
		s.data("", submit, map[string]any{"surveyId": survey.ID, "answers": answers}, &submitted)
		if len(submitted.SubmitResponses) != len(answers) {
			t.Errorf("Expected %d responses, got %d", len(answers), len(submitted.SubmitResponses))
		}
	}

	var analytics struct {
		Analytics struct {
			SurveyID  string
			Analytics []struct {
				QuestionText string
				Type         string
				Answers      []string
				Options      []struct {
					Option string
					Count  int
				}
			}
		}
	}
	s.data(token, `query($id: ID!) {
		analytics(surveyId: $id) { surveyId analytics { questionText type answers options { option count } } }
	}`, map[string]any{"id": survey.ID}, &analytics)
	blocks := analytics.Analytics.Analytics
	if analytics.Analytics.SurveyID != survey.ID || len(blocks) != 2 {
		t.Fatalf("Unexpected analytics: %+v", analytics)
	}
	if strings.Join(blocks[0].Answers, ",") != "Blue" || len(blocks[0].Options) != 0 {
		t.Errorf("Unexpected open-ended block: %+v", blocks[0])
	}
	want := []string{"Yes:1", "No:0", "Maybe:1"}
	for i, oc := range blocks[1].Options {
		if got := fmt.Sprintf("%s:%d", oc.Option, oc.Count); got != want[i] {
			t.Errorf("Expected %s, got %s", want[i], got)
		}
	}

	var submissions struct {
		SurveyResponses []struct {
			Answers []struct{ Text string }
		}
	}
	s.data(token, `query($id: ID!) { surveyResponses(surveyId: $id) { answers { text } } }`,
		map[string]any{"id": survey.ID}, &submissions)
	if len(submissions.SurveyResponses) != 2 || len(submissions.SurveyResponses[0].Answers) != 2 {
		t.Errorf("Unexpected submissions: %+v", submissions)
	}

	var export struct {
		CsvExport struct{ Filename, Content string }
	}
	s.data(token, `query($id: ID!) { csvExport(surveyId: $id) { filename content } }`, map[string]any{"id": survey.ID}, &export)
	if !strings.HasPrefix(export.CsvExport.Content, "Response ID,Submitted At,Favorite color?,Would you recommend us?\n") {
		t.Errorf("Unexpected CSV content: %q", export.CsvExport.Content)
	}
	if export.CsvExport.Filename != "survey_"+survey.ID+"_responses.csv" {
		t.Errorf("Unexpected filename: %s", export.CsvExport.Filename)
	}

	var closed struct{ SetSurveyActive surveyData }
	s.data(token, `mutation($id: ID!) { setSurveyActive(id: $id, isActive: false) { isActive } }`, map[string]any{"id": survey.ID}, &closed)
	if closed.SetSurveyActive.IsActive {
		t.Error("Expected survey to be inactive")
	}
	resp := s.exec("", submit, map[string]any{
		"surveyId": survey.ID,
		"answers":  []any{map[string]any{"questionId": colorQ, "answer": "late"}},
	})
	if errorCode(resp) != gql.CodeBadInput {
		t.Errorf("Expected %s for an inactive survey, got %+v", gql.CodeBadInput, resp.Errors)
	}

	var deleted struct{ DeleteSurvey bool }
	s.data(token, `mutation($id: ID!) { deleteSurvey(id: $id) }`, map[string]any{"id": survey.ID}, &deleted)
	if !deleted.DeleteSurvey {
		t.Error("Expected deleteSurvey to return true")
	}
	resp = s.exec(token, `query($id: ID!) { survey(id: $id) { id } }`, map[string]any{"id": survey.ID})
	if errorCode(resp) != gql.CodeNotFound {
		t.Errorf("Expected %s, got %+v", gql.CodeNotFound, resp.Errors)
	}
}

func TestErrorCodes(t *testing.T) {
	s := newGQLServer(t)
	owner := s.login("owner@example.com")
	stranger := s.login("stranger@example.com")

	var created struct{ CreateSurvey surveyData }
	s.data(owner, createSurvey, sampleSurvey(), &created)
	id := map[string]any{"id": created.CreateSurvey.ID}

	tests := []struct {
		name  string
		token string
		query string
		vars  map[string]any
		code  string
	}{
		{"unauthenticated", "", `{ surveys { id } }`, nil, gql.CodeUnauthenticated},
		{"forbidden", stranger, `query($id: ID!) { survey(id: $id) { id } }`, id, gql.CodeForbidden},
		{"not found", owner, `{ survey(id: "9999") { id } }`, nil, gql.CodeNotFound},
		{"bad id", owner, `{ survey(id: "abc") { id } }`, nil, gql.CodeBadInput},
		{"empty title", owner, createSurvey, map[string]any{"input": map[string]any{"title": ""}}, gql.CodeBadInput},
		{"wrong password", "", `mutation { login(email: "owner@example.com", password: "nope") { accessToken } }`, nil, gql.CodeUnauthenticated},
		{"duplicate signup", "", `mutation { signup(email: "owner@example.com", password: "password123") { id } }`, nil, gql.CodeConflict},
		{"unknown share token", "", `{ sharedSurvey(token: "missing") { id } }`, nil, gql.CodeNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := s.exec(tt.token, tt.query, tt.vars)
			if got := errorCode(resp); got != tt.code {
				t.Errorf("Expected %s, got %q (%+v)", tt.code, got, resp.Errors)
			}
		})
	}

	t.Run("problems", func(t *testing.T) {
		resp := s.exec(owner, createSurvey, map[string]any{"input": map[string]any{"title": ""}})
		if len(resp.Errors) == 0 {
			t.Fatal("Expected an error")
		}
		problems, _ := resp.Errors[0].Extensions["problems"].([]any)
		if len(problems) == 0 {
			t.Errorf("Expected validation problems, got %+v", resp.Errors[0])
		}
	})
}

func TestMe(t *testing.T) {
	s := newGQLServer(t)
	token := s.login("me@example.com")

	var me struct {
		Me struct {
			Email       string
			IsActive    bool
			IsSuperuser bool
		}
	}
	s.data(token, `{ me { email isActive isSuperuser } }`, nil, &me)
	if me.Me.Email != "me@example.com" || !me.Me.IsActive || me.Me.IsSuperuser {
		t.Errorf("Unexpected user: %+v", me.Me)
	}
}

func TestHandler_Transport(t *testing.T) {
	s := newGQLServer(t)

	t.Run("get", func(t *testing.T) {
		q := url.Values{"query": {`{ sharedSurvey(token: "x") { id } }`}}
		req := httptest.NewRequest("GET", "/graphql?"+q.Encode(), nil)
		w := httptest.NewRecorder()
		s.handler.ServeHTTP(w, req)
		testutil.AssertStatus(t, w, http.StatusOK)
		var resp gqlResponse
		testutil.AssertJSON(t, w, &resp)
		if errorCode(resp) != gql.CodeNotFound {
			t.Errorf("Expected %s, got %+v", gql.CodeNotFound, resp.Errors)
		}
	})

	tests := []struct {
		name   string
		method string
		body   string
		status int
	}{
		{"method not allowed", "PUT", `{"query":"{ me { id } }"}`, http.StatusMethodNotAllowed},
		{"malformed body", "POST", `{"query":`, http.StatusBadRequest},
		{"missing query", "POST", `{}`, http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, "/graphql", strings.NewReader(tt.body))
			w := httptest.NewRecorder()
			s.handler.ServeHTTP(w, req)
			testutil.AssertStatus(t, w, tt.status)
		})
	}
}
