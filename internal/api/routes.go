package api

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/patrickwarner/webapp/internal/middleware"
)

// Route binds one method on one path to a handler.
type Route struct {
	Method  string
	Path    string
	Handler http.HandlerFunc
}

// Routes returns the route table served by NewRouter.
func (s *Server) Routes() []Route {
	return []Route{
		{http.MethodGet, HealthzPath, s.HealthzHandler},
		{http.MethodPost, HealthzPath, s.MethodNotAllowedHandler},
		{http.MethodPut, HealthzPath, s.MethodNotAllowedHandler},
		{http.MethodPatch, HealthzPath, s.MethodNotAllowedHandler},
		{http.MethodDelete, HealthzPath, s.MethodNotAllowedHandler},
		{http.MethodHead, HealthzPath, s.MethodNotAllowedHandler},
		{http.MethodOptions, HealthzPath, s.MethodNotAllowedHandler},
	}
}

// NewRouter registers the route table on a mux.Router. Methods that match a
// path but have no entry fall through to MethodNotAllowedHandler.
func NewRouter(s *Server) *mux.Router {
	r := mux.NewRouter()
	r.Use(
		middleware.WithTraceLogger(s.Logger),
		middleware.WithRequestID(s.Logger),
	)
	for _, rt := range s.Routes() {
		r.HandleFunc(rt.Path, rt.Handler).Methods(rt.Method)
	}
	r.MethodNotAllowedHandler = http.HandlerFunc(s.MethodNotAllowedHandler)
	return r
}
