// Package oracle reads apostille documents through a generative model and
// returns a structured AnalysisRecord. Callers depend on the Analyzer
// interface; New builds the Anthropic-backed implementation.
package oracle

import "context"

// Request describes one analysis. In ModePair, Document is the original
// record followed by its certificate in a single PDF and Reference is the
// original's identifier.
type Request struct {
	Mode            Mode
	Document        []byte
	OriginalName    string
	CertificateName string
	Reference       string
}

// Analyzer produces an AnalysisRecord for a document.
type Analyzer interface {
	Analyze(ctx context.Context, req Request) (AnalysisRecord, error)
}

// AnalyzerFunc adapts a function to the Analyzer interface.
type AnalyzerFunc func(ctx context.Context, req Request) (AnalysisRecord, error)

// Analyze calls f.
func (f AnalyzerFunc) Analyze(ctx context.Context, req Request) (AnalysisRecord, error) {
	return f(ctx, req)
}
