// Package policy turns a signature report and an oracle analysis into a
// review verdict. Evaluation starts at Approved and only ever escalates.
package policy

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/JaimeStill/revisor/internal/oracle"
	"github.com/JaimeStill/revisor/internal/signature"
)

// DefaultMaxRecordAge is the validity window, in days, of a criminal-record
// certificate.
const DefaultMaxRecordAge = 90

var (
	criminalRecordKeywords = []string{"antecedente", "penal"}
	degreeKeywords         = []string{"título", "titulo", "analítico", "analitico"}
	dateFalsePositives     = []string{"fecha futura", "fecha posterior"}
)

// Options configures a Policy. Zero values select the defaults.
type Options struct {
	MaxRecordAge int
	Now          func() time.Time
}

// Policy evaluates documents and pairs. It holds no mutable state and is
// safe for concurrent use.
type Policy struct {
	maxAge int
	now    func() time.Time
}

// New creates a Policy from opts.
func New(opts Options) *Policy {
	p := &Policy{
		maxAge: opts.MaxRecordAge,
		now:    opts.Now,
	}
	if p.maxAge <= 0 {
		p.maxAge = DefaultMaxRecordAge
	}
	if p.now == nil {
		p.now = time.Now
	}
	return p
}

// MaxRecordAge returns the configured validity window in days.
func (p *Policy) MaxRecordAge() int {
	return p.maxAge
}

// EvaluateSingle reviews a standalone document.
func (p *Policy) EvaluateSingle(sig signature.Presence, rec oracle.AnalysisRecord) Verdict {
	v := newVerdict("Listo para cargar")
	now := p.now()
	docType := strings.ToLower(rec.DocumentType)

	if containsAny(docType, criminalRecordKeywords) {
		p.checkRecordAge(&v, rec.IssueDate, now)

		if sig.Present == signature.False {
			v.Flag(Rejected, "Falta firma digital", "No se detectó firma digital")
		}
	}

	if containsAny(docType, degreeKeywords) && rec.VisibleSignatureCount == 0 {
		v.Flag(NeedsReview, "No se detecta firma visible", "Sin firma visible")
	}

	if rec.MultipleSignatures && sig.Count > 1 {
		v.Flag(NeedsReview, "Verificar cuál firma corresponde", "Múltiples firmas detectadas")
	}

	checkQuality(&v, rec)
	checkReportedProblems(&v, rec.Problems, now)

	if rec.PhonePhoto {
		v.Flag(NeedsReview, "Documento fotografiado con celular", "Documento fotografiado con celular")
	}

	return v
}

// EvaluatePair reviews an original record and its certificate analyzed
// together. sig describes the certificate, which carries the signature that
// matters for the apostille.
func (p *Policy) EvaluatePair(sig signature.Presence, rec oracle.AnalysisRecord) Verdict {
	v := newVerdict("Par IF+CE válido – Listo para cargar")

	if !rec.References() {
		v.Flag(Rejected,
			"El CE no referencia al IF correspondiente",
			"El CE no contiene el número IF correcto en su texto")
	}

	switch sig.Present {
	case signature.False:
		v.Flag(Rejected, "CE sin firma digital", "El CE no tiene firma digital válida")
	case signature.Unknown:
		v.Flag(NeedsReview,
			"Firma del CE no detectada automáticamente",
			"No se pudo verificar firma digital del CE automáticamente")
	}

	checkQuality(&v, rec)
	checkReportedProblems(&v, rec.Problems, p.now())

	return v
}

func (p *Policy) checkRecordAge(v *Verdict, issued string, now time.Time) {
	issued = strings.TrimSpace(issued)
	if issued == "" {
		v.Flag(NeedsReview, "No se detectó fecha", "No se pudo leer la fecha de emisión")
		return
	}

	date, ok := ParseDate(issued)
	if !ok {
		v.Flag(NeedsReview, "Fecha no interpretable", "No se pudo interpretar la fecha: "+issued)
		return
	}

	switch days := DaysSince(date, now); {
	case days < 0:
		v.Flag(NeedsReview,
			"Fecha posterior a hoy",
			fmt.Sprintf("Fecha futura detectada: %s (verificar si es error de sistema)", issued))
	case days > p.maxAge:
		v.Flag(Rejected,
			fmt.Sprintf("Certificado vencido (>%d días)", p.maxAge),
			fmt.Sprintf("Vencido hace %d días (máximo: %d)", days, p.maxAge))
	default:
		if v.Status == Approved {
			v.Action = "Certificado vigente"
		}
	}
}

func checkQuality(v *Verdict, rec oracle.AnalysisRecord) {
	switch q := rec.Quality(); q {
	case "ilegible":
		v.Flag(Rejected, "Imagen ilegible", "Imagen ilegible")
	case "baja", "borrosa":
		v.Flag(NeedsReview, "Calidad de imagen insuficiente", "Calidad de imagen: "+q)
	}
}

// checkReportedProblems escalates on oracle problems, skipping those that
// mention the current year or a future date. Date validity is decided by
// checkRecordAge, not by the oracle.
func checkReportedProblems(v *Verdict, problems []string, now time.Time) {
	year := strconv.Itoa(now.Year())
	for _, problem := range problems {
		lower := strings.ToLower(problem)
		if strings.Contains(lower, year) || containsAny(lower, dateFalsePositives) {
			continue
		}
		v.Flag(NeedsReview, "Revisar problemas detectados", problem)
	}
}

func containsAny(s string, substrs []string) bool {
	for _, sub := range substrs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
