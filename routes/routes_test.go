package routes

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var samplePaths = []string{
	"/", "/overview", "/product", "/api",
	"", "/overview/", "/Overview", "/products", "/product/1", "/api/",
	"/api/v1", "//overview", "/does-not-exist", "/index.html", "/ ",
}

func TestResolve(t *testing.T) {
	tests := []struct {
		path string
		want Route
	}{
		{"/", Overview},
		{"/overview", Overview},
		{"/product", Product},
		{"/api", API},
		{"/overview/", NotFound},
		{"/OVERVIEW", NotFound},
		{"/product/0", NotFound},
		{"/apix", NotFound},
		{"/does-not-exist", NotFound},
		{"", NotFound},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Resolve(tt.path), "Resolve(%q)", tt.path)
	}
}

func TestPaths(t *testing.T) {
	assert.Equal(t, []string{"/", "/overview"}, Paths(Overview))
	assert.Equal(t, []string{"/product"}, Paths(Product))
	assert.Equal(t, []string{"/api"}, Paths(API))
	assert.Empty(t, Paths(NotFound))
}

func TestRoute_String(t *testing.T) {
	assert.Equal(t, "overview", Overview.String())
	assert.Equal(t, "product", Product.String())
	assert.Equal(t, "api", API.String())
	assert.Equal(t, "not-found", NotFound.String())
	assert.Equal(t, "unknown", Route(42).String())
}

// echoServer answers every route with the route name.
type echoServer struct{}

func (echoServer) ServeRoute(r Route) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(r.String()))
	})
}

func TestNewRouter_AgreesWithResolve(t *testing.T) {
	router := NewRouter(echoServer{})

	for _, p := range samplePaths {
		req := httptest.NewRequest(http.MethodGet, "http://localhost/", nil)
		req.URL.Path = p
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		assert.Equal(t, Resolve(p).String(), w.Body.String(), "path %q", p)
	}
}

func TestNewRouter_MethodNotAllowedIsNotFound(t *testing.T) {
	router := NewRouter(echoServer{})
	require.NotNil(t, router.MethodNotAllowedHandler)

	w := httptest.NewRecorder()
	router.MethodNotAllowedHandler.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/api", nil))

	assert.Equal(t, "not-found", w.Body.String())
}

func TestNewRouter_IgnoresQueryAndMethod(t *testing.T) {
	router := NewRouter(echoServer{})

	for _, method := range []string{http.MethodGet, http.MethodPost, http.MethodHead} {
		req := httptest.NewRequest(method, "/product?id=3&x=y", nil)
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		if method != http.MethodHead {
			assert.Equal(t, "product", w.Body.String(), method)
		}
		assert.Equal(t, http.StatusOK, w.Code, method)
	}
}
