package api

import (
	"github.com/JaimeStill/revisor/internal/reviews"
)

// Domain holds all domain systems that comprise the API.
type Domain struct {
	Reviews reviews.System
}

// NewDomain creates all domain systems from the API runtime.
func NewDomain(runtime *Runtime) *Domain {
	return &Domain{
		Reviews: reviews.New(
			runtime.Database.Connection(),
			runtime.Storage,
			runtime.Workflow,
			runtime.Logger,
			runtime.Pagination,
		),
	}
}
