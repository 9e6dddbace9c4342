// Package module mounts self-contained HTTP surfaces under single-level
// path prefixes.
package module

import (
	"fmt"
	"net/http"
	"strings"
	"sync"

	"github.com/JaimeStill/revisor/pkg/middleware"
)

// Module serves an inner router under a prefix such as "/api". The prefix is
// stripped before dispatch, so the inner router registers "/reviews" rather
// than "/api/reviews".
type Module struct {
	prefix     string
	router     http.Handler
	middleware middleware.System

	once    sync.Once
	handler http.Handler
}

// New panics unless prefix is a single segment with a leading slash.
func New(prefix string, router http.Handler) *Module {
	if err := validatePrefix(prefix); err != nil {
		panic(err)
	}
	return &Module{
		prefix:     prefix,
		router:     router,
		middleware: middleware.New(),
	}
}

// Prefix returns the module's path prefix.
func (m *Module) Prefix() string {
	return m.prefix
}

// Use appends middleware. The stack is frozen by the first request, so all
// calls must happen during setup.
func (m *Module) Use(mw func(http.Handler) http.Handler) {
	m.middleware.Use(mw)
}

// Handler returns the router wrapped in the module's middleware.
func (m *Module) Handler() http.Handler {
	m.once.Do(func() {
		m.handler = m.middleware.Apply(m.router)
	})
	return m.handler
}

// Serve strips the prefix and dispatches a copy of req. req itself is left
// untouched.
func (m *Module) Serve(w http.ResponseWriter, req *http.Request) {
	m.serve(w, req, req.URL.Path)
}

func (m *Module) serve(w http.ResponseWriter, req *http.Request, path string) {
	inner := strings.TrimPrefix(path, m.prefix)
	if inner == "" {
		inner = "/"
	}
	m.Handler().ServeHTTP(w, withPath(req, inner))
}

func withPath(req *http.Request, path string) *http.Request {
	r := req.Clone(req.Context())
	r.URL.Path = path
	r.URL.RawPath = ""
	return r
}

func validatePrefix(prefix string) error {
	switch {
	case prefix == "":
		return fmt.Errorf("module prefix cannot be empty")
	case !strings.HasPrefix(prefix, "/"):
		return fmt.Errorf("module prefix must start with /: %s", prefix)
	case strings.Count(prefix, "/") != 1:
		return fmt.Errorf("module prefix must be a single segment: %s", prefix)
	}
	return nil
}
