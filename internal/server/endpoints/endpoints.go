// Package endpoints holds the HTTP endpoints served by the gazette
// read API. Each endpoint also carries the CLI command that calls it.
package endpoints

import (
	"encoding/json"
	"net/http"

	"github.com/lawtext/gazette/internal/api"
	"github.com/lawtext/gazette/internal/registry"
)

// Config carries the services endpoints depend on.
type Config struct {
	Store *registry.Store
}

// All returns every endpoint, ready to register.
func All(cfg Config) []api.Endpoint {
	return []api.Endpoint{
		&HealthEndpoint{},
		&IssuesEndpoint{store: cfg.Store},
		&IssueActsEndpoint{store: cfg.Store},
		&ActEndpoint{store: cfg.Store},
	}
}

// writeJSON writes a JSON response.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// ErrorResponse is a standard error response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// writeError writes a JSON error response.
func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, ErrorResponse{Error: msg})
}
