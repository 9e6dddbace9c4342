package documents_test

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/JaimeStill/revisor/internal/documents"
)

func TestExtractIdentifier(t *testing.T) {
	tests := []struct {
		name string
		text string
		want *documents.Identifier
	}{
		{"hyphens", "IF-2024-555", &documents.Identifier{Year: "2024", Number: "555"}},
		{"spaces", "IF 2024 555", &documents.Identifier{Year: "2024", Number: "555"}},
		{"underscores", "IF_2024_555", &documents.Identifier{Year: "2024", Number: "555"}},
		{"mixed separators", "IF - _2015 -- 29802485", &documents.Identifier{Year: "2015", Number: "29802485"}},
		{"lowercase marker", "if-2020-123", &documents.Identifier{Year: "2020", Number: "123"}},
		{"trailing department", "IF-2015-29802485- -DGRC", &documents.Identifier{Year: "2015", Number: "29802485"}},
		{"embedded in sentence", "Número/s de documento/s electrónico/s: IF-2024-555 y otros", &documents.Identifier{Year: "2024", Number: "555"}},
		{"first match wins", "IF-2020-1 IF-2021-2", &documents.Identifier{Year: "2020", Number: "1"}},
		{"no separator", "IF2024555", nil},
		{"three digit year", "IF-202-555", nil},
		{"empty", "", nil},
		{"no marker", "2024-555", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := documents.ExtractIdentifier(tt.text)
			assertIdentifier(t, got, tt.want)
		})
	}
}

func TestExtractIdentifierFromRawBytes(t *testing.T) {
	tests := []struct {
		name string
		raw  []byte
		want *documents.Identifier
	}{
		{
			"stream text",
			[]byte("%PDF-1.4\n1 0 obj\n(IF-2015-29802485- -DGRC) Tj\nendobj"),
			&documents.Identifier{Year: "2015", Number: "29802485"},
		},
		{
			"invalid utf8 around marker",
			append([]byte{0xff, 0xfe, 0x80}, []byte(" IF 2019 77 ")...),
			&documents.Identifier{Year: "2019", Number: "77"},
		},
		{
			"lowercase decoy before stamp",
			[]byte("%PDF /Producer (Elif 2020 7) stream (IF-2015-29802485- -DGRC)"),
			&documents.Identifier{Year: "2015", Number: "29802485"},
		},
		{
			"lowercase only",
			[]byte("stream if-2020-7 endstream"),
			nil,
		},
		{
			"underscore not accepted",
			[]byte("IF_2015_29802485"),
			nil,
		},
		{
			"empty",
			nil,
			nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := documents.ExtractIdentifierFromRawBytes(tt.raw)
			assertIdentifier(t, got, tt.want)
		})
	}
}

func TestIdentifierString(t *testing.T) {
	id := documents.Identifier{Year: "2024", Number: "555"}
	if got := id.String(); got != "IF-2024-555" {
		t.Errorf("got %s, want IF-2024-555", got)
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name     string
		raw      []byte
		text     string
		wantRole documents.Role
		wantID   *documents.Identifier
	}{
		{
			name:     "certificate with reference",
			raw:      []byte("%PDF"),
			text:     "CERTIFICO QUE EL PRESENTE DOCUMENTO ... Número/s de documento/s electrónico/s: IF-2024-555",
			wantRole: documents.RoleCertificate,
			wantID:   &documents.Identifier{Year: "2024", Number: "555"},
		},
		{
			name:     "certificate phrase split across lines",
			raw:      []byte("%PDF"),
			text:     "Certifico  que el\npresente   documento es copia\nIF 2023 10",
			wantRole: documents.RoleCertificate,
			wantID:   &documents.Identifier{Year: "2023", Number: "10"},
		},
		{
			name:     "certificate without reference",
			raw:      []byte("%PDF"),
			text:     "CERTIFICO QUE EL PRESENTE DOCUMENTO es auténtico",
			wantRole: documents.RoleCertificate,
		},
		{
			name:     "certificate wins over registry signals",
			raw:      []byte("IF-2010-1 DGRC"),
			text:     "GOBIERNO DE LA CIUDAD CERTIFICO QUE EL PRESENTE DOCUMENTO IF-2024-9",
			wantRole: documents.RoleCertificate,
			wantID:   &documents.Identifier{Year: "2024", Number: "9"},
		},
		{
			name:     "original from raw stream with government name",
			raw:      []byte("%PDF-1.4 stream (IF-2015-29802485) endstream"),
			text:     "Gobierno de la Ciudad de Buenos Aires",
			wantRole: documents.RoleOriginal,
			wantID:   &documents.Identifier{Year: "2015", Number: "29802485"},
		},
		{
			name:     "original confirmed by department code",
			raw:      []byte("%PDF (IF-2015-29802485- -DGRC)"),
			text:     "HOJA ADICIONAL DE FIRMAS",
			wantRole: documents.RoleOriginal,
			wantID:   &documents.Identifier{Year: "2015", Number: "29802485"},
		},
		{
			name:     "exchange system document from another agency",
			raw:      []byte("%PDF (IF-2018-4412- -MJGGC)"),
			text:     "GEDO generador electrónico de documentos",
			wantRole: documents.RoleUnclassified,
		},
		{
			name:     "registry signal without identifier",
			raw:      []byte("%PDF DGRC"),
			text:     "REGISTRO DEL ESTADO CIVIL",
			wantRole: documents.RoleUnclassified,
		},
		{
			name:     "unrelated document",
			raw:      []byte("%PDF IF-2015-1 DGRC"),
			text:     "Título de grado Universidad",
			wantRole: documents.RoleUnclassified,
		},
		{
			name:     "no text layer",
			raw:      []byte("%PDF IF-2015-1 DGRC"),
			text:     "",
			wantRole: documents.RoleUnclassified,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := documents.Classify("file.pdf", tt.raw, tt.text)

			if doc.Role != tt.wantRole {
				t.Errorf("role: got %s, want %s", doc.Role, tt.wantRole)
			}
			assertIdentifier(t, doc.Identifier, tt.wantID)
			if doc.Name != "file.pdf" {
				t.Errorf("name: got %s", doc.Name)
			}
		})
	}
}

func TestClassifyIdempotent(t *testing.T) {
	raw := []byte("%PDF (IF-2015-29802485- -DGRC)")
	text := "REGISTRO DEL ESTADO CIVIL Y CAPACIDAD DE LAS PERSONAS"

	first := documents.Classify("a.pdf", raw, text)
	second := documents.Classify("a.pdf", raw, text)

	if first.Role != second.Role {
		t.Fatalf("role changed: %s then %s", first.Role, second.Role)
	}
	if *first.Identifier != *second.Identifier {
		t.Fatalf("identifier changed: %v then %v", first.Identifier, second.Identifier)
	}
}

func TestNormalizeText(t *testing.T) {
	got := documents.NormalizeText("  Acta\nde   nacimiento\t\n N° 12  ")
	want := "Acta de nacimiento N° 12"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestRoleJSON(t *testing.T) {
	var r documents.Role
	if err := json.Unmarshal([]byte(`"certificate"`), &r); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if r != documents.RoleCertificate {
		t.Errorf("got %s, want certificate", r)
	}

	err := json.Unmarshal([]byte(`"receipt"`), &r)
	if !errors.Is(err, documents.ErrInvalidRole) {
		t.Errorf("got %v, want ErrInvalidRole", err)
	}
}

func TestRoleLabel(t *testing.T) {
	tests := []struct {
		role documents.Role
		want string
	}{
		{documents.RoleOriginal, "IF"},
		{documents.RoleCertificate, "CE"},
		{documents.RoleUnclassified, "OTRO"},
	}

	for _, tt := range tests {
		if got := tt.role.Label(); got != tt.want {
			t.Errorf("%s: got %s, want %s", tt.role, got, tt.want)
		}
	}
}

func assertIdentifier(t *testing.T, got, want *documents.Identifier) {
	t.Helper()
	if want == nil {
		if got != nil {
			t.Fatalf("got %v, want none", *got)
		}
		return
	}
	if got == nil {
		t.Fatalf("got none, want %v", *want)
	}
	if *got != *want {
		t.Errorf("got %v, want %v", *got, *want)
	}
}
