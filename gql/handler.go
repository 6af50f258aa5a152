package gql

import (
	"net/http"

	"github.com/goccy/go-json"
	"github.com/graphql-go/graphql"

	"github.com/mbolis/quick-feedback/app"
	"github.com/mbolis/quick-feedback/httpx"
	"github.com/mbolis/quick-feedback/log"
)

type request struct {
	Query         string         `json:"query"`
	OperationName string         `json:"operationName"`
	Variables     map[string]any `json:"variables"`
}

// Handler serves GraphQL over POST (JSON body) and GET (query string).
// Authentication, if any, must already be in the request context.
func Handler(app app.App) http.Handler {
	schema, err := NewSchema(app)
	if err != nil {
		log.Fatal("graphql.schema:", err)
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		req := request{}
		switch r.Method {
		case http.MethodGet:
			q := r.URL.Query()
			req.Query = q.Get("query")
			req.OperationName = q.Get("operationName")
			if vars := q.Get("variables"); vars != "" {
				if err := json.Unmarshal([]byte(vars), &req.Variables); err != nil {
					httpx.LogStatusMsg(w, r, http.StatusBadRequest, log.DebugLevel, "graphql.parse_variables", "malformed variables")
					return
				}
			}
		case http.MethodPost:
			if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
				httpx.LogStatusMsg(w, r, http.StatusBadRequest, log.DebugLevel, "graphql.parse_body", "malformed request body")
				return
			}
		default:
			w.Header().Set("Allow", "GET, POST")
			httpx.LogStatusMsg(w, r, http.StatusMethodNotAllowed, log.DebugLevel, "graphql.method", "method %s not allowed", r.Method)
			return
		}

		if req.Query == "" {
			httpx.LogStatusMsg(w, r, http.StatusBadRequest, log.DebugLevel, "graphql.query", "missing query")
			return
		}

		result := graphql.Do(graphql.Params{
			Schema:         schema,
			RequestString:  req.Query,
			OperationName:  req.OperationName,
			VariableValues: req.Variables,
			Context:        r.Context(),
		})

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(result); err != nil {
			log.Debugf("graphql.write: %s", err)
		}
	})
}
