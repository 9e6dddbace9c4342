// Package routes declares handler tables that domains hand to a ServeMux.
package routes

import "net/http"

// Route is one method and path pattern, relative to its Group's prefix.
type Route struct {
	Method  string
	Pattern string
	Handler http.HandlerFunc
}

func (r Route) pattern(prefix string) string {
	return r.Method + " " + prefix + r.Pattern
}
