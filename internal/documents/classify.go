package documents

import (
	"bytes"
	"strings"
)

// CertificatePhrase appears in every certifying document issued by the registry.
const CertificatePhrase = "CERTIFICO QUE EL PRESENTE DOCUMENTO"

// DepartmentCode identifies the civil registry inside the exchange system stream.
const DepartmentCode = "DGRC"

const governmentName = "GOBIERNO DE LA CIUDAD"

var registrySignals = []string{
	governmentName,
	"HOJA ADICIONAL DE FIRMAS",
	"REGISTRO DEL ESTADO CIVIL",
	"GEDO",
}

// Classify determines the role of a document from its extracted text and raw
// bytes. Checks run in priority order: certificate phrase, registry signals
// confirmed by department code, then unclassified. The result depends only on
// the inputs, so classifying the same bytes twice yields the same role and
// identifier.
func Classify(name string, raw []byte, text string) ClassifiedDocument {
	normalized := NormalizeText(text)
	upper := strings.ToUpper(normalized)

	doc := ClassifiedDocument{
		Name: name,
		Role: RoleUnclassified,
		Raw:  raw,
		Text: normalized,
	}

	if strings.Contains(upper, CertificatePhrase) {
		doc.Role = RoleCertificate
		doc.Identifier = ExtractIdentifier(normalized)
		return doc
	}

	if !containsAny(upper, registrySignals) {
		return doc
	}

	id := ExtractIdentifierFromRawBytes(raw)
	if id == nil {
		return doc
	}

	if bytes.Contains(raw, []byte(DepartmentCode)) || strings.Contains(upper, governmentName) {
		doc.Role = RoleOriginal
		doc.Identifier = id
	}

	return doc
}

// NormalizeText turns line breaks into spaces, collapses whitespace runs and
// trims the result. Casing is preserved.
func NormalizeText(text string) string {
	return strings.Join(strings.Fields(text), " ")
}

func containsAny(s string, substrs []string) bool {
	for _, sub := range substrs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
