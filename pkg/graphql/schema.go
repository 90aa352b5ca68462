// Package graphql serves a graphql-go schema over HTTP.
//
//	schema, _ := graphql.NewSchema(rootQuery)
//	r.Handle(http.MethodPost, "/graphql", "graphql", graphql.Handler(schema))
package graphql

import (
	"encoding/json"
	"net/http"

	"github.com/graphql-go/graphql"

	"github.com/coconina/storefront/pkg/logger"
)

// NewSchema creates a read-only schema from the root query.
func NewSchema(query *graphql.Object) (graphql.Schema, error) {
	return graphql.NewSchema(graphql.SchemaConfig{
		Query: query,
	})
}

// Request is the standard GraphQL-over-HTTP body.
type Request struct {
	Query         string                 `json:"query"`
	Variables     map[string]interface{} `json:"variables"`
	OperationName string                 `json:"operationName"`
}

// Handler executes POST bodies and GET ?query= requests against schema.
// Results use the plain {data, errors} shape GraphQL clients expect.
func Handler(schema graphql.Schema) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req Request

		switch r.Method {
		case http.MethodGet:
			req.Query = r.URL.Query().Get("query")
			req.OperationName = r.URL.Query().Get("operationName")
		case http.MethodPost:
			if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
				writeErrors(w, http.StatusBadRequest, "invalid request body: "+err.Error())
				return
			}
		default:
			w.Header().Set("Allow", "GET, POST")
			writeErrors(w, http.StatusMethodNotAllowed, "method not allowed")
			return
		}

		if req.Query == "" {
			writeErrors(w, http.StatusBadRequest, "query is required")
			return
		}

		result := graphql.Do(graphql.Params{
			Schema:         schema,
			RequestString:  req.Query,
			VariableValues: req.Variables,
			OperationName:  req.OperationName,
			Context:        r.Context(),
		})
		if result.HasErrors() {
			logger.WithCtx(r.Context()).Debug("graphql: query errors", "errors", len(result.Errors))
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(result) //nolint:errcheck
	}
}

func writeErrors(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]interface{}{ //nolint:errcheck
		"errors": []map[string]string{{"message": msg}},
	})
}
