// Package pairing links certifying documents to the original records they
// reference. Matching is by exact identifier equality; anything that cannot
// be linked is returned as an orphan with the reason it was left unmatched.
package pairing

import (
	"github.com/JaimeStill/revisor/internal/documents"
)

// Reason explains why a document was not paired.
type Reason string

// Orphan reasons.
const (
	ReasonMissingOriginal    Reason = "missing-original"
	ReasonMissingCertificate Reason = "missing-certificate"
	ReasonUnclassified       Reason = "unclassified"
	ReasonAmbiguousOriginal  Reason = "ambiguous-original"
)

// MatchedPair is an original record and the certificate that references it.
type MatchedPair struct {
	Original    documents.ClassifiedDocument `json:"original"`
	Certificate documents.ClassifiedDocument `json:"certificate"`
}

// Name joins both file names for display.
func (p MatchedPair) Name() string {
	return p.Original.Name + " + " + p.Certificate.Name
}

// Orphan is a document left unmatched after pairing.
// Candidates lists the originals sharing the certificate's identifier when
// the reason is ReasonAmbiguousOriginal.
type Orphan struct {
	Document   documents.ClassifiedDocument `json:"document"`
	Reason     Reason                       `json:"reason"`
	Candidates []string                     `json:"candidates,omitempty"`
}

// Result holds the outcome of a pairing pass. Pairs follow certificate input
// order; orphans list certificates first, then originals, then unclassified
// documents, each in input order.
type Result struct {
	Pairs   []MatchedPair `json:"pairs"`
	Orphans []Orphan      `json:"orphans"`
}

// Pair splits docs by role and matches every certificate to the single
// original carrying the same identifier. Originals sharing an identifier are
// never auto-paired: a certificate referencing them becomes an
// ReasonAmbiguousOriginal orphan and the originals remain unconsumed.
func Pair(docs []documents.ClassifiedDocument) Result {
	var (
		originals     []documents.ClassifiedDocument
		certificates  []documents.ClassifiedDocument
		unclassified  []documents.ClassifiedDocument
		certOrphans   []Orphan
		originalIndex = make(map[documents.Identifier][]int)
	)

	for _, doc := range docs {
		switch doc.Role {
		case documents.RoleOriginal:
			if doc.Identifier != nil {
				originalIndex[*doc.Identifier] = append(originalIndex[*doc.Identifier], len(originals))
			}
			originals = append(originals, doc)
		case documents.RoleCertificate:
			certificates = append(certificates, doc)
		default:
			unclassified = append(unclassified, doc)
		}
	}

	result := Result{
		Pairs:   make([]MatchedPair, 0),
		Orphans: make([]Orphan, 0),
	}
	consumed := make([]bool, len(originals))

	for _, cert := range certificates {
		if cert.Identifier == nil {
			certOrphans = append(certOrphans, Orphan{Document: cert, Reason: ReasonMissingOriginal})
			continue
		}

		candidates := originalIndex[*cert.Identifier]
		switch len(candidates) {
		case 0:
			certOrphans = append(certOrphans, Orphan{Document: cert, Reason: ReasonMissingOriginal})
		case 1:
			idx := candidates[0]
			if consumed[idx] {
				certOrphans = append(certOrphans, Orphan{Document: cert, Reason: ReasonMissingOriginal})
				continue
			}
			consumed[idx] = true
			result.Pairs = append(result.Pairs, MatchedPair{
				Original:    originals[idx],
				Certificate: cert,
			})
		default:
			names := make([]string, len(candidates))
			for i, idx := range candidates {
				names[i] = originals[idx].Name
			}
			certOrphans = append(certOrphans, Orphan{
				Document:   cert,
				Reason:     ReasonAmbiguousOriginal,
				Candidates: names,
			})
		}
	}

	result.Orphans = append(result.Orphans, certOrphans...)

	for i, orig := range originals {
		if !consumed[i] {
			result.Orphans = append(result.Orphans, Orphan{Document: orig, Reason: ReasonMissingCertificate})
		}
	}

	for _, doc := range unclassified {
		result.Orphans = append(result.Orphans, Orphan{Document: doc, Reason: ReasonUnclassified})
	}

	return result
}
