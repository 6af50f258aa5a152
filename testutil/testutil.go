// Package testutil holds fixtures shared by the package tests.
package testutil

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/mbolis/quick-feedback/auth"
	"github.com/mbolis/quick-feedback/config"
	"github.com/mbolis/quick-feedback/database"
	"github.com/mbolis/quick-feedback/store"
)

// TestPassword is the password of every user made by CreateTestUser.
const TestPassword = "correct horse battery"

// GetTestConfig returns a configuration pointing at a fresh database file
// under the test's temporary directory.
func GetTestConfig(t testing.TB) config.Config {
	t.Helper()
	return config.Config{
		Addr:        "127.0.0.1:0",
		DBUrl:       filepath.Join(t.TempDir(), "feedback.sqlite"),
		TokenSecret: "test-token-secret",
		TokenTTL:    time.Minute,
		CORSOrigins: []string{"http://localhost:3000"},
	}
}

// SetupTestDB opens and migrates the database named by cfg. It is closed
// when the test ends.
func SetupTestDB(t testing.TB, cfg config.Config) *sql.DB {
	t.Helper()

	db, err := database.Open(cfg)
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

// NewTestDB is SetupTestDB over a throwaway configuration.
func NewTestDB(t testing.TB) *sql.DB {
	t.Helper()
	return SetupTestDB(t, GetTestConfig(t))
}

// CreateTestUser stores an active user with TestPassword.
func CreateTestUser(t testing.TB, db *sql.DB, email string) store.User {
	t.Helper()

	hash, err := auth.HashPassword(TestPassword)
	if err != nil {
		t.Fatalf("Failed to hash password: %v", err)
	}
	user := store.User{Email: email, PasswordHash: hash, IsActive: true}
	if err = store.InsertUser(context.Background(), db, &user); err != nil {
		t.Fatalf("Failed to create test user: %v", err)
	}
	return user
}

// TestQuestion describes a question for CreateTestSurvey. A question with no
// options is open-ended.
type TestQuestion struct {
	Text    string
	Options []string
}

// CreateTestSurvey stores an active survey for owner with the questions in
// the given order.
func CreateTestSurvey(t testing.TB, db *sql.DB, ownerID int64, title string, questions ...TestQuestion) store.Survey {
	t.Helper()

	now := time.Now().UTC()
	survey := store.Survey{UserID: ownerID, Title: title, IsActive: true, CreatedAt: now, UpdatedAt: now}
	for i, tq := range questions {
		q := store.Question{Text: tq.Text, IsOpenEnded: len(tq.Options) == 0, Position: i + 1}
		for _, o := range tq.Options {
			q.Options = append(q.Options, store.QuestionOption{Text: o})
		}
		survey.Questions = append(survey.Questions, q)
	}

	if err := store.InsertSurvey(context.Background(), db, &survey); err != nil {
		t.Fatalf("Failed to create test survey: %v", err)
	}
	return survey
}

// MakeRequest creates an HTTP test request with a JSON body.
func MakeRequest(method, path string, body any, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// AssertStatus checks that the response has the expected status code.
func AssertStatus(t testing.TB, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into v.
func AssertJSON(t testing.TB, w *httptest.ResponseRecorder, v any) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}
