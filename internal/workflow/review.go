package workflow

import (
	"context"
	"fmt"
	"strings"

	"github.com/JaimeStill/revisor/internal/extract"
	"github.com/JaimeStill/revisor/internal/oracle"
	"github.com/JaimeStill/revisor/internal/pairing"
	"github.com/JaimeStill/revisor/internal/policy"
)

func reviewPair(ctx context.Context, rt *Runtime, p pairing.MatchedPair) Row {
	row := Row{File: p.Name(), Kind: KindPair}

	sig := rt.Signatures.Check(p.Certificate.Raw)

	merged, err := extract.Merge(p.Original.Raw, p.Certificate.Raw)
	if err != nil {
		return failed(ctx, rt, row, fmt.Errorf("merge documents: %w", err))
	}

	var reference string
	if p.Original.Identifier != nil {
		reference = p.Original.Identifier.String()
	}

	rec, err := rt.Oracle.Analyze(ctx, oracle.Request{
		Mode:            oracle.ModePair,
		Document:        merged,
		OriginalName:    p.Original.Name,
		CertificateName: p.Certificate.Name,
		Reference:       reference,
	})
	if err != nil {
		return failed(ctx, rt, row, err)
	}

	v := rt.Policy.EvaluatePair(sig, rec)

	references := "NO"
	if rec.References() {
		references = "SÍ"
	}

	row.Holder = rec.Holder
	row.DocumentType = rec.DocumentType
	row.IssueDate = rec.IssueDate
	row.ReferencesOriginal = references
	row.ReferenceFound = rec.ReferenceFound
	row.CertificateSigner = rec.SignerDisplay()
	row.Signature = sig.Label()
	row.Signers = strings.Join(sig.Signers, ", ")
	row.Status = v.Status
	row.Action = v.Action
	row.Observation = Observation(rec.Summary, v.Problems)

	return row
}

func reviewOrphan(ctx context.Context, rt *Runtime, o pairing.Orphan) Row {
	doc := o.Document
	row := Row{
		File:               doc.Name,
		Kind:               KindSingle,
		ReferencesOriginal: notApplicable,
		ReferenceFound:     notApplicable,
		CertificateSigner:  notApplicable,
	}

	sig := rt.Signatures.Check(doc.Raw)

	rec, err := rt.Oracle.Analyze(ctx, oracle.Request{
		Mode:         oracle.ModeSingle,
		Document:     doc.Raw,
		OriginalName: doc.Name,
	})
	if err != nil {
		return failed(ctx, rt, row, err)
	}

	v := rt.Policy.EvaluateSingle(sig, rec)
	if w := orphanWarning(o); w != "" {
		v.AddProblem(w)
		v.Escalate(policy.NeedsReview, w)
	}

	row.Holder = rec.Holder
	row.DocumentType = rec.DocumentType
	row.IssueDate = rec.IssueDate
	row.Signature = sig.Label()
	row.Signers = strings.Join(sig.Signers, ", ")
	row.Status = v.Status
	row.Action = v.Action
	row.Observation = Observation(rec.Summary, v.Problems)

	return row
}

func orphanWarning(o pairing.Orphan) string {
	switch o.Reason {
	case pairing.ReasonMissingCertificate:
		return "⚠️ IF sin CE correspondiente cargado"
	case pairing.ReasonMissingOriginal:
		ref := "desconocido"
		if o.Document.Identifier != nil {
			ref = o.Document.Identifier.String()
		}
		return fmt.Sprintf("⚠️ CE sin IF correspondiente (busca: %s)", ref)
	case pairing.ReasonAmbiguousOriginal:
		return fmt.Sprintf("⚠️ IF con número duplicado (candidatos: %s)", strings.Join(o.Candidates, ", "))
	}
	return ""
}

func failed(ctx context.Context, rt *Runtime, row Row, err error) Row {
	rt.Logger.WarnContext(ctx, "review item failed", "item", row.File, "error", err)
	return errorRow(row, err)
}

