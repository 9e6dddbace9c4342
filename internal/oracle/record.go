package oracle

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/JaimeStill/revisor/pkg/formatting"
)

// AnalysisRecord is the structured reading of a document returned by the
// oracle. Every field is optional: absent or malformed values decode to the
// zero value. Pair fields are only populated in ModePair.
type AnalysisRecord struct {
	DocumentType          string   `json:"tipo_documento"`
	Holder                string   `json:"titular_documento"`
	IssueDate             string   `json:"fecha_emision"`
	DocumentYear          int      `json:"anio_documento"`
	Pre2012               bool     `json:"es_pre_2012"`
	VisibleSigners        []string `json:"firmantes_visibles"`
	VisibleSignatureCount int      `json:"cantidad_firmas_visibles"`
	MultipleSignatures    bool     `json:"multiples_firmas"`
	MinistrySealVisible   bool     `json:"sello_ministerio_visible"`
	SealClear             bool     `json:"sello_claro"`
	ImageQuality          string   `json:"calidad_imagen"`
	PhonePhoto            bool     `json:"es_foto_celular"`
	Problems              []string `json:"problemas_detectados"`
	Summary               string   `json:"observacion_redactada"`

	ReferencesOriginal    *bool  `json:"ce_referencia_if_correctamente,omitempty"`
	ReferenceFound        string `json:"numero_if_encontrado_en_ce,omitempty"`
	CertificateSigner     string `json:"firmante_ce,omitempty"`
	CertificateSignerRole string `json:"cargo_firmante_ce,omitempty"`
}

// Quality returns the image quality tier lowercased and trimmed.
func (r AnalysisRecord) Quality() string {
	return strings.ToLower(strings.TrimSpace(r.ImageQuality))
}

// References reports whether the certificate was confirmed to reference the
// original. A missing flag counts as not confirmed.
func (r AnalysisRecord) References() bool {
	return r.ReferencesOriginal != nil && *r.ReferencesOriginal
}

// SignerDisplay renders the certificate signer with their role when known.
func (r AnalysisRecord) SignerDisplay() string {
	signer := strings.TrimSpace(r.CertificateSigner)
	if signer == "" {
		signer = "No identificado"
	}
	if role := strings.TrimSpace(r.CertificateSignerRole); role != "" {
		return fmt.Sprintf("%s (%s)", signer, role)
	}
	return signer
}

// Decode parses an oracle reply into an AnalysisRecord. The reply may be bare
// JSON or JSON inside a markdown fence. Field values of the wrong type are
// coerced or dropped; the names of affected fields are returned as warnings.
// Only a reply that contains no JSON object at all is an error.
func Decode(content string) (AnalysisRecord, []string, error) {
	var rec AnalysisRecord

	m, err := formatting.Parse[map[string]any](content)
	if err != nil {
		return rec, nil, fmt.Errorf("%w: %w", ErrMalformedResponse, err)
	}
	if m == nil {
		return rec, nil, fmt.Errorf("%w: empty object", ErrMalformedResponse)
	}

	warnings := sanitize(m)

	data, err := json.Marshal(m)
	if err != nil {
		return rec, warnings, fmt.Errorf("%w: %w", ErrMalformedResponse, err)
	}

	if err := validateSchema(data); err != nil {
		warnings = append(warnings, err.Error())
	}

	if err := json.Unmarshal(data, &rec); err != nil {
		return rec, warnings, fmt.Errorf("%w: %w", ErrMalformedResponse, err)
	}

	return rec, warnings, nil
}
