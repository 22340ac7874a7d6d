// Package routes maps request paths to the four pages the server knows.
package routes

import (
	"net/http"

	"github.com/gorilla/mux"
)

// Route identifies one of the fixed page outcomes.
type Route int

const (
	NotFound Route = iota
	Overview
	Product
	API
)

func (r Route) String() string {
	switch r {
	case Overview:
		return "overview"
	case Product:
		return "product"
	case API:
		return "api"
	case NotFound:
		return "not-found"
	}
	return "unknown"
}

// table lists every path with its route. Matching is exact.
var table = []struct {
	path  string
	route Route
}{
	{"/", Overview},
	{"/overview", Overview},
	{"/product", Product},
	{"/api", API},
}

// Resolve returns the route for a request path. Paths that are not in the
// table resolve to NotFound.
func Resolve(path string) Route {
	for _, e := range table {
		if e.path == path {
			return e.route
		}
	}
	return NotFound
}

// Paths returns the paths registered for route.
func Paths(route Route) []string {
	var out []string
	for _, e := range table {
		if e.route == route {
			out = append(out, e.path)
		}
	}
	return out
}

// Server returns the handler for a route.
type Server interface {
	ServeRoute(Route) http.Handler
}

// NewRouter registers every table path on a mux router. Anything that does
// not match exactly is sent to the NotFound handler.
func NewRouter(s Server) *mux.Router {
	router := mux.NewRouter()
	// keep "//overview" and friends from being redirected to a clean path
	router.SkipClean(true)

	for _, e := range table {
		router.Path(e.path).Handler(s.ServeRoute(e.route))
	}
	notFound := s.ServeRoute(NotFound)
	router.NotFoundHandler = notFound
	router.MethodNotAllowedHandler = notFound

	return router
}
