package workflow_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/JaimeStill/revisor/internal/documents"
	"github.com/JaimeStill/revisor/internal/extract"
	"github.com/JaimeStill/revisor/internal/oracle"
	"github.com/JaimeStill/revisor/internal/pdftest"
	"github.com/JaimeStill/revisor/internal/policy"
	"github.com/JaimeStill/revisor/internal/signature"
	"github.com/JaimeStill/revisor/internal/workflow"
)

var fixedNow = time.Date(2026, time.March, 15, 12, 0, 0, 0, time.UTC)

type stubOracle struct {
	mu       sync.Mutex
	requests []oracle.Request
	records  map[string]oracle.AnalysisRecord
	errs     map[string]error
}

func (s *stubOracle) Analyze(_ context.Context, req oracle.Request) (oracle.AnalysisRecord, error) {
	s.mu.Lock()
	s.requests = append(s.requests, req)
	s.mu.Unlock()

	key := req.OriginalName
	if req.Mode == oracle.ModePair {
		key = req.OriginalName + "+" + req.CertificateName
	}
	if err, ok := s.errs[key]; ok {
		return oracle.AnalysisRecord{}, err
	}
	return s.records[key], nil
}

func (s *stubOracle) request(mode oracle.Mode) (oracle.Request, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, r := range s.requests {
		if r.Mode == mode {
			return r, true
		}
	}
	return oracle.Request{}, false
}

func newRuntime(o oracle.Analyzer) *workflow.Runtime {
	return &workflow.Runtime{
		Oracle:     o,
		Signatures: signature.Default,
		Policy:     policy.New(policy.Options{Now: func() time.Time { return fixedNow }}),
		Logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
		Text:       func(raw []byte) string { return string(raw) },
		Workers:    2,
	}
}

func ptr(b bool) *bool { return &b }

func batch() []workflow.Input {
	return []workflow.Input{
		{Name: "acta.pdf", Data: pdftest.Build(pdftest.Options{
			Pages: []string{"GOBIERNO DE LA CIUDAD DE BUENOS AIRES", "IF-2024-555"},
		})},
		{Name: "ce.pdf", Data: pdftest.Build(pdftest.Options{
			Pages: []string{
				"CERTIFICO QUE EL PRESENTE DOCUMENTO ES COPIA FIEL",
				"Numero de documento electronico: IF-2024-555",
			},
			FieldSigners: []string{"Gonzalo Alvarez"},
		})},
		{Name: "ce-huerfano.pdf", Data: pdftest.Build(pdftest.Options{
			Pages: []string{"CERTIFICO QUE EL PRESENTE DOCUMENTO", "IF-2024-999"},
		})},
		{Name: "antecedentes.pdf", Data: pdftest.Build(pdftest.Options{
			Pages: []string{"Certificado de antecedentes"},
		})},
		{Name: "broken.pdf", Data: []byte("not a pdf")},
	}
}

func TestExecute(t *testing.T) {
	o := &stubOracle{
		records: map[string]oracle.AnalysisRecord{
			"acta.pdf+ce.pdf": {
				DocumentType:          "Acta de nacimiento",
				Holder:                "Apolo Arce",
				IssueDate:             "20/02/2026",
				ReferencesOriginal:    ptr(true),
				ReferenceFound:        "IF-2024-555",
				CertificateSigner:     "Gonzalo Alvarez",
				CertificateSignerRole: "Gerente Operativo",
				Summary:               "Acta verificada.",
			},
			"ce-huerfano.pdf": {DocumentType: "Certificado", Summary: "CE."},
			"antecedentes.pdf": {
				DocumentType: "Certificado de antecedentes penales",
				IssueDate:    "10/03/2026",
			},
		},
		errs: map[string]error{
			"broken.pdf": errors.New("oracle unavailable"),
		},
	}

	result, err := workflow.Execute(context.Background(), newRuntime(o), batch())
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}

	if result.Pairs != 1 || result.Orphans != 3 {
		t.Fatalf("got %d pairs and %d orphans, want 1 and 3", result.Pairs, result.Orphans)
	}
	if len(result.Rows) != 4 {
		t.Fatalf("got %d rows, want 4", len(result.Rows))
	}

	t.Run("pair", func(t *testing.T) {
		row := result.Rows[0]
		want := workflow.Row{
			File:               "acta.pdf + ce.pdf",
			Kind:               workflow.KindPair,
			Holder:             "Apolo Arce",
			DocumentType:       "Acta de nacimiento",
			IssueDate:          "20/02/2026",
			ReferencesOriginal: "SÍ",
			ReferenceFound:     "IF-2024-555",
			CertificateSigner:  "Gonzalo Alvarez (Gerente Operativo)",
			Signature:          "SÍ",
			Signers:            "Gonzalo Alvarez",
			Status:             policy.Approved,
			Action:             "Par IF+CE válido – Listo para cargar",
			Observation:        "Acta verificada.",
		}
		if row != want {
			t.Errorf("got %+v\nwant %+v", row, want)
		}

		req, ok := o.request(oracle.ModePair)
		if !ok {
			t.Fatal("no pair request sent")
		}
		if req.Reference != "IF-2024-555" {
			t.Errorf("reference: got %q, want IF-2024-555", req.Reference)
		}
		pages, err := extract.PageCount(req.Document)
		if err != nil {
			t.Fatalf("PageCount: %v", err)
		}
		if pages != 4 {
			t.Errorf("merged pages: got %d, want 4", pages)
		}
	})

	t.Run("orphan certificate", func(t *testing.T) {
		row := result.Rows[1]
		warning := "⚠️ CE sin IF correspondiente (busca: IF-2024-999)"
		if row.File != "ce-huerfano.pdf" || row.Kind != workflow.KindSingle {
			t.Fatalf("got %s %s", row.File, row.Kind)
		}
		if row.Status != policy.NeedsReview || row.Action != warning {
			t.Errorf("got %s %q, want needs_review %q", row.Status, row.Action, warning)
		}
		if row.Observation != "CE. — "+warning {
			t.Errorf("observation: got %q", row.Observation)
		}
		if row.Signature != "NO" || row.ReferencesOriginal != "—" {
			t.Errorf("got signature %q and reference %q", row.Signature, row.ReferencesOriginal)
		}
	})

	t.Run("unclassified criminal record", func(t *testing.T) {
		row := result.Rows[2]
		if row.File != "antecedentes.pdf" {
			t.Fatalf("got %s, want antecedentes.pdf", row.File)
		}
		if row.Status != policy.Rejected || row.Action != "Falta firma digital" {
			t.Errorf("got %s %q", row.Status, row.Action)
		}
	})

	t.Run("oracle failure", func(t *testing.T) {
		row := result.Rows[3]
		if row.File != "broken.pdf" {
			t.Fatalf("got %s, want broken.pdf", row.File)
		}
		if row.Status != policy.NeedsReview || row.Action != "Error de análisis" {
			t.Errorf("got %s %q", row.Status, row.Action)
		}
		if row.Observation != "Error: oracle unavailable" {
			t.Errorf("observation: got %q", row.Observation)
		}
	})

	t.Run("counts", func(t *testing.T) {
		tests := []struct {
			status policy.Status
			want   int
		}{
			{policy.Approved, 1},
			{policy.NeedsReview, 2},
			{policy.Rejected, 1},
		}
		for _, tt := range tests {
			if got := result.Count(tt.status); got != tt.want {
				t.Errorf("%s: got %d, want %d", tt.status, got, tt.want)
			}
		}
	})

	t.Run("classifications", func(t *testing.T) {
		if len(result.Classifications) != 5 {
			t.Fatalf("got %d entries, want 5", len(result.Classifications))
		}
		first := result.Classifications[0]
		if first.Role != documents.RoleOriginal || first.Identifier != "IF-2024-555" {
			t.Errorf("got %s %s", first.Role, first.Identifier)
		}
		last := result.Classifications[4]
		if last.Role != documents.RoleUnclassified || last.Identifier != "—" || last.Preview != "not a pdf" {
			t.Errorf("got %+v", last)
		}
	})
}

func TestExecuteAmbiguousOriginals(t *testing.T) {
	original := func() []byte {
		return pdftest.Build(pdftest.Options{Pages: []string{"GOBIERNO DE LA CIUDAD", "IF-2020-123"}})
	}
	inputs := []workflow.Input{
		{Name: "a.pdf", Data: original()},
		{Name: "b.pdf", Data: original()},
		{Name: "ce.pdf", Data: pdftest.Build(pdftest.Options{
			Pages: []string{"CERTIFICO QUE EL PRESENTE DOCUMENTO IF-2020-123"},
		})},
	}

	o := &stubOracle{}
	result, err := workflow.Execute(context.Background(), newRuntime(o), inputs)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}

	if result.Pairs != 0 {
		t.Fatalf("got %d pairs, want 0", result.Pairs)
	}

	want := []struct{ file, action string }{
		{"ce.pdf", "⚠️ IF con número duplicado (candidatos: a.pdf, b.pdf)"},
		{"a.pdf", "⚠️ IF sin CE correspondiente cargado"},
		{"b.pdf", "⚠️ IF sin CE correspondiente cargado"},
	}
	if len(result.Rows) != len(want) {
		t.Fatalf("got %d rows, want %d", len(result.Rows), len(want))
	}
	for i, w := range want {
		row := result.Rows[i]
		if row.File != w.file || row.Action != w.action || row.Status != policy.NeedsReview {
			t.Errorf("row %d: got %s %s %q, want %s needs_review %q", i, row.File, row.Status, row.Action, w.file, w.action)
		}
	}
}

func TestExecuteNoInputs(t *testing.T) {
	_, err := workflow.Execute(context.Background(), newRuntime(&stubOracle{}), nil)
	if !errors.Is(err, workflow.ErrNoInputs) {
		t.Errorf("got %v, want ErrNoInputs", err)
	}
}

func TestExecuteCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := workflow.Execute(ctx, newRuntime(&stubOracle{}), batch())
	if !errors.Is(err, context.Canceled) {
		t.Errorf("got %v, want context.Canceled", err)
	}
}

func TestObservation(t *testing.T) {
	tests := []struct {
		name     string
		summary  string
		problems []string
		want     string
	}{
		{"summary only", " Documento vigente. ", nil, "Documento vigente."},
		{"problems only", "", []string{"a", "b"}, "a; b"},
		{"both", "Acta.", []string{"a"}, "Acta. — a"},
		{"neither", "", nil, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := workflow.Observation(tt.summary, tt.problems); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}
