package workflow

import (
	"log/slog"

	"github.com/JaimeStill/revisor/internal/oracle"
	"github.com/JaimeStill/revisor/internal/policy"
	"github.com/JaimeStill/revisor/internal/signature"
)

// Runtime bundles the collaborators a review run needs.
// It is constructed by higher-level composition code from configuration.
type Runtime struct {
	Oracle     oracle.Analyzer
	Signatures signature.Checker
	Policy     *policy.Policy
	Logger     *slog.Logger

	// Text extracts plain text from a PDF. Nil uses extract.Text.
	Text func(raw []byte) string

	// Workers bounds concurrent evaluations. Zero uses the CPU count.
	Workers int
}
