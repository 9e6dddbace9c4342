package api

import (
	"github.com/JaimeStill/revisor/internal/config"
	"github.com/JaimeStill/revisor/internal/infrastructure"
	"github.com/JaimeStill/revisor/internal/policy"
	"github.com/JaimeStill/revisor/internal/signature"
	"github.com/JaimeStill/revisor/internal/workflow"
	"github.com/JaimeStill/revisor/pkg/pagination"
)

// Runtime extends Infrastructure with API-specific configuration and the
// review workflow runtime shared by domain systems.
type Runtime struct {
	*infrastructure.Infrastructure
	Pagination pagination.Config
	Workflow   *workflow.Runtime
}

// NewRuntime creates an API runtime with a module-scoped logger.
func NewRuntime(cfg *config.Config, infra *infrastructure.Infrastructure) *Runtime {
	logger := infra.Logger.With("module", "api")

	return &Runtime{
		Infrastructure: &infrastructure.Infrastructure{
			Lifecycle: infra.Lifecycle,
			Logger:    logger,
			Database:  infra.Database,
			Storage:   infra.Storage,
			Oracle:    infra.Oracle,
		},
		Pagination: cfg.API.Pagination,
		Workflow: &workflow.Runtime{
			Oracle:     infra.Oracle,
			Signatures: signature.Default,
			Policy:     policy.New(policy.Options{MaxRecordAge: cfg.Review.MaxRecordAge}),
			Logger:     logger.With("workflow", "review"),
			Workers:    cfg.Review.Workers,
		},
	}
}
