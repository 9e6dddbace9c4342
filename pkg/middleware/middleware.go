// Package middleware holds the HTTP middleware shared by mounted modules.
package middleware

import (
	"net/http"
	"slices"
)

// System collects middleware and wraps a handler with it. The first
// middleware added is the outermost at request time.
type System interface {
	Use(mw func(http.Handler) http.Handler)
	Apply(handler http.Handler) http.Handler
}

type chain []func(http.Handler) http.Handler

func New() System {
	return &chain{}
}

func (c *chain) Use(fn func(http.Handler) http.Handler) {
	*c = append(*c, fn)
}

func (c *chain) Apply(handler http.Handler) http.Handler {
	for _, fn := range slices.Backward(*c) {
		handler = fn(handler)
	}
	return handler
}
