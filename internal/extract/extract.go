// Package extract provides the low-level PDF primitives the review pipeline
// consumes: best-effort plain text, page counts and document concatenation.
package extract

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/ledongthuc/pdf"
	"github.com/pdfcpu/pdfcpu/pkg/api"
)

// ErrNoDocuments is returned by Merge when called without input.
var ErrNoDocuments = errors.New("no documents to merge")

// Text returns the plain text of every page in raw. Extraction is best
// effort: unreadable or malformed documents yield an empty string.
func Text(raw []byte) (text string) {
	defer func() {
		if r := recover(); r != nil {
			text = ""
		}
	}()

	if len(raw) == 0 {
		return ""
	}

	r, err := pdf.NewReader(bytes.NewReader(raw), int64(len(raw)))
	if err != nil {
		return ""
	}

	plain, err := r.GetPlainText()
	if err != nil {
		return ""
	}

	data, err := io.ReadAll(plain)
	if err != nil {
		return ""
	}

	return string(data)
}

// PageCount returns the number of pages in raw.
func PageCount(raw []byte) (int, error) {
	count, err := api.PageCount(bytes.NewReader(raw), nil)
	if err != nil {
		return 0, fmt.Errorf("count pages: %w", err)
	}
	return count, nil
}

// Merge concatenates docs in order into a single PDF. Pair analysis sends
// the original record's pages first and the certificate's pages after.
func Merge(docs ...[]byte) ([]byte, error) {
	if len(docs) == 0 {
		return nil, ErrNoDocuments
	}
	if len(docs) == 1 {
		return docs[0], nil
	}

	readers := make([]io.ReadSeeker, len(docs))
	for i, d := range docs {
		readers[i] = bytes.NewReader(d)
	}

	var out bytes.Buffer
	if err := api.MergeRaw(readers, &out, false, nil); err != nil {
		return nil, fmt.Errorf("merge documents: %w", err)
	}

	return out.Bytes(), nil
}
