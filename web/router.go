package web

import (
	"net/http"

	"github.com/gorilla/mux"
)

// buildRoutes wires the dashboard and the JSON API onto one router.
// The not-found and method-not-allowed handlers bypass mux middleware,
// so they answer without access logging.
func buildRoutes(s *server) http.Handler {
	counter := &RequestCounter{}

	rtr := mux.NewRouter()
	rtr.Use(accessLog(counter), recovery)

	rtr.HandleFunc("/", s.handleDashboard).Methods(http.MethodGet)
	rtr.HandleFunc("/healthz", handleHealthz).Methods(http.MethodGet, http.MethodOptions)

	api := rtr.PathPrefix("/api/v1").Subrouter()
	api.HandleFunc("/analyze", s.handleAnalyze).Methods(http.MethodPost)
	api.HandleFunc("/files", s.handleFiles).Methods(http.MethodGet)
	api.HandleFunc("/charts/{kind}", s.handleChart).Methods(http.MethodGet)

	rtr.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		respondError(w, http.StatusNotFound, "not found")
	})
	rtr.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		respondError(w, http.StatusMethodNotAllowed, "method not allowed")
	})

	return rtr
}
