package handlers

import (
	"errors"
	"fmt"
	"html"
	"log"
	"net/http"
	"net/url"
	"strconv"

	"farmstand/catalog"
	"farmstand/render"
	"farmstand/routes"
)

const (
	ContentTypeHTML = "text/html"
	ContentTypeJSON = "application/json"

	NotFoundBody   = "<h1>Page not found!</h1>"
	NotFoundHeader = "my-own-header"
	NotFoundValue  = "hello-world"
)

var (
	ErrMissingID    = errors.New("missing product id")
	ErrInvalidID    = errors.New("product id is not a number")
	ErrIDOutOfRange = errors.New("product id out of range")
)

// Pages serves the catalog pages. It only reads the catalog, so one value
// can serve concurrent requests.
type Pages struct {
	catalog  *catalog.Catalog
	renderer *render.Renderer
}

// NewPages returns the page handlers for c. A nil renderer renders without
// flag rules.
func NewPages(c *catalog.Catalog, r *render.Renderer) *Pages {
	if r == nil {
		r = render.New()
	}
	return &Pages{catalog: c, renderer: r}
}

// ServeRoute returns the handler for route.
func (p *Pages) ServeRoute(route routes.Route) http.Handler {
	switch route {
	case routes.Overview:
		return http.HandlerFunc(p.Overview)
	case routes.Product:
		return http.HandlerFunc(p.Product)
	case routes.API:
		return http.HandlerFunc(p.API)
	case routes.NotFound:
		return http.HandlerFunc(NotFound)
	}
	panic(fmt.Sprintf("handlers: no handler for route %d", int(route)))
}

// Overview renders one card per record into the overview page.
func (p *Pages) Overview(w http.ResponseWriter, r *http.Request) {
	body := p.renderer.Overview(p.catalog.OverviewTemplate(), p.catalog.CardTemplate(), p.catalog.Records())
	writeBody(w, http.StatusOK, ContentTypeHTML, []byte(body))
}

// Product renders the record selected by the id query parameter.
func (p *Pages) Product(w http.ResponseWriter, r *http.Request) {
	id, err := ParseProductID(r.URL.Query(), p.catalog.Len())
	if err != nil {
		log.Printf("[handlers] bad product request %q: %v", r.URL.RawQuery, err)
		BadRequest(w, err)
		return
	}
	rec, _ := p.catalog.Record(id)
	body := p.renderer.Fill(p.catalog.ProductTemplate(), rec)
	writeBody(w, http.StatusOK, ContentTypeHTML, []byte(body))
}

// API writes the data file exactly as it was read from disk.
func (p *Pages) API(w http.ResponseWriter, r *http.Request) {
	writeBody(w, http.StatusOK, ContentTypeJSON, p.catalog.RawJSON())
}

// NotFound writes the fixed fallback page.
func NotFound(w http.ResponseWriter, r *http.Request) {
	w.Header().Set(NotFoundHeader, NotFoundValue)
	writeBody(w, http.StatusNotFound, ContentTypeHTML, []byte(NotFoundBody))
}

// BadRequest writes a 400 page describing err.
func BadRequest(w http.ResponseWriter, err error) {
	body := "<h1>Bad request</h1><p>" + html.EscapeString(err.Error()) + "</p>"
	writeBody(w, http.StatusBadRequest, ContentTypeHTML, []byte(body))
}

// ParseProductID reads the id query parameter and checks it indexes one of
// n records.
func ParseProductID(q url.Values, n int) (int, error) {
	raw, ok := q["id"]
	if !ok || len(raw) == 0 || raw[0] == "" {
		return 0, ErrMissingID
	}
	id, err := strconv.Atoi(raw[0])
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidID, raw[0])
	}
	if id < 0 || id >= n {
		return 0, fmt.Errorf("%w: %d not in [0, %d)", ErrIDOutOfRange, id, n)
	}
	return id, nil
}

func writeBody(w http.ResponseWriter, status int, contentType string, body []byte) {
	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(status)
	if _, err := w.Write(body); err != nil {
		log.Printf("[handlers] write response: %v", err)
	}
}
