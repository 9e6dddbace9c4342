package extract_test

import (
	"errors"
	"testing"

	"github.com/JaimeStill/revisor/internal/extract"
	"github.com/JaimeStill/revisor/internal/pdftest"
)

func TestTextMalformed(t *testing.T) {
	tests := []struct {
		name string
		raw  []byte
	}{
		{"nil", nil},
		{"garbage", []byte("definitely not a pdf")},
		{"truncated header", []byte("%PDF-1.4\n1 0 obj\n<<")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := extract.Text(tt.raw); got != "" {
				t.Errorf("got %q, want empty", got)
			}
		})
	}
}

func TestPageCount(t *testing.T) {
	raw := pdftest.Build(pdftest.Options{Pages: []string{"uno", "dos", "tres"}})

	count, err := extract.PageCount(raw)
	if err != nil {
		t.Fatalf("page count failed: %v", err)
	}
	if count != 3 {
		t.Errorf("got %d, want 3", count)
	}
}

func TestPageCountInvalid(t *testing.T) {
	if _, err := extract.PageCount([]byte("nope")); err == nil {
		t.Error("expected error for invalid pdf")
	}
}

func TestMerge(t *testing.T) {
	original := pdftest.Build(pdftest.Options{Pages: []string{"acta 1", "acta 2"}})
	certificate := pdftest.Build(pdftest.Options{Pages: []string{"certificado"}})

	merged, err := extract.Merge(original, certificate)
	if err != nil {
		t.Fatalf("merge failed: %v", err)
	}

	count, err := extract.PageCount(merged)
	if err != nil {
		t.Fatalf("page count failed: %v", err)
	}
	if count != 3 {
		t.Errorf("got %d pages, want 3", count)
	}
}

func TestMergeSingle(t *testing.T) {
	doc := pdftest.Build(pdftest.Options{})
	merged, err := extract.Merge(doc)
	if err != nil {
		t.Fatalf("merge failed: %v", err)
	}
	if len(merged) != len(doc) {
		t.Errorf("single document should pass through unchanged")
	}
}

func TestMergeEmpty(t *testing.T) {
	_, err := extract.Merge()
	if !errors.Is(err, extract.ErrNoDocuments) {
		t.Errorf("got %v, want ErrNoDocuments", err)
	}
}
