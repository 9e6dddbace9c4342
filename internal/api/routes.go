package api

import (
	"net/http"

	"github.com/JaimeStill/revisor/internal/config"
	"github.com/JaimeStill/revisor/pkg/routes"
)

func registerRoutes(
	mux *http.ServeMux,
	domain *Domain,
	cfg *config.Config,
) {
	routes.Register(
		mux,
		domain.Reviews.Handler(cfg.API.MaxUploadSizeBytes()).Routes(),
	)
}
