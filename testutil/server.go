// Package testutil provides small fixtures for tests that exercise the SDK
// against a local HTTP server.
package testutil

import (
	"net/http"
	"net/http/httptest"
)

// Route pairs a method and path with a canned JSON response.
type Route struct {
	Method string
	Path   string
	Status int
	Body   string
}

// NewServer starts an httptest server answering the given routes with JSON.
// Unmatched requests get a 404 with an empty JSON object so response parsing
// still has bytes to report.
func NewServer(routes ...Route) *httptest.Server {
	mux := http.NewServeMux()
	registered := make(map[string]bool)
	for _, route := range routes {
		pattern := route.Method + " " + route.Path
		if registered[pattern] {
			continue
		}
		registered[pattern] = true
		status, body := route.Status, route.Body
		mux.HandleFunc(pattern, func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(status)
			if body != "" {
				_, _ = w.Write([]byte(body))
			}
		})
	}
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte("{}"))
	})
	return httptest.NewServer(mux)
}
