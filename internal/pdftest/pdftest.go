// Package pdftest builds small, well-formed PDF documents for tests.
package pdftest

import (
	"bytes"
	"fmt"
	"strings"
)

// Options describes the document to build.
type Options struct {
	// Pages holds the text drawn on each page. An empty slice yields one blank page.
	Pages []string
	// FieldSigners adds one signed AcroForm signature field per name.
	FieldSigners []string
	// WidgetSigners adds one signed widget annotation per name on the first page.
	WidgetSigners []string
	// UnsignedField adds a signature field with no value.
	UnsignedField bool
	// Comment is written as a PDF comment line after the header. Tests use it
	// to plant raw stream text such as identifiers or department codes.
	Comment string
}

type builder struct {
	objects []string
}

func (b *builder) add(body string) int {
	b.objects = append(b.objects, body)
	return len(b.objects)
}

func (b *builder) set(num int, body string) {
	b.objects[num-1] = body
}

// Build renders opts as PDF bytes with a valid cross-reference table.
func Build(opts Options) []byte {
	b := &builder{}

	catalog := b.add("")
	pages := b.add("")
	font := b.add("<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica >>")

	texts := opts.Pages
	if len(texts) == 0 {
		texts = []string{""}
	}

	var fieldRefs []string
	var widgetRefs []string

	for _, name := range opts.FieldSigners {
		v := b.add(fmt.Sprintf("<< /Type /Sig /Name (%s) >>", escape(name)))
		f := b.add(fmt.Sprintf("<< /FT /Sig /T (Firma%d) /V %d 0 R >>", len(fieldRefs)+1, v))
		fieldRefs = append(fieldRefs, fmt.Sprintf("%d 0 R", f))
	}

	if opts.UnsignedField {
		f := b.add("<< /FT /Sig /T (Vacia) >>")
		fieldRefs = append(fieldRefs, fmt.Sprintf("%d 0 R", f))
	}

	var pageRefs []string
	for i, text := range texts {
		content := fmt.Sprintf("BT /F1 12 Tf 72 712 Td (%s) Tj ET", escape(text))
		stream := b.add(fmt.Sprintf("<< /Length %d >>\nstream\n%s\nendstream", len(content), content))
		page := b.add("")

		annots := ""
		if i == 0 {
			for _, name := range opts.WidgetSigners {
				v := b.add(fmt.Sprintf("<< /Type /Sig /Name (%s) >>", escape(name)))
				w := b.add(fmt.Sprintf(
					"<< /Type /Annot /Subtype /Widget /FT /Sig /T (Widget%d) /Rect [0 0 0 0] /P %d 0 R /V %d 0 R >>",
					len(widgetRefs)+1, page, v,
				))
				widgetRefs = append(widgetRefs, fmt.Sprintf("%d 0 R", w))
			}
			if len(widgetRefs) > 0 {
				annots = fmt.Sprintf(" /Annots [%s]", strings.Join(widgetRefs, " "))
			}
		}

		b.set(page, fmt.Sprintf(
			"<< /Type /Page /Parent %d 0 R /MediaBox [0 0 612 792] /Resources << /Font << /F1 %d 0 R >> >> /Contents %d 0 R%s >>",
			pages, font, stream, annots,
		))
		pageRefs = append(pageRefs, fmt.Sprintf("%d 0 R", page))
	}

	b.set(pages, fmt.Sprintf(
		"<< /Type /Pages /Kids [%s] /Count %d >>",
		strings.Join(pageRefs, " "), len(pageRefs),
	))

	acroForm := ""
	if len(fieldRefs) > 0 {
		form := b.add(fmt.Sprintf("<< /Fields [%s] /SigFlags 3 >>", strings.Join(fieldRefs, " ")))
		acroForm = fmt.Sprintf(" /AcroForm %d 0 R", form)
	}
	b.set(catalog, fmt.Sprintf("<< /Type /Catalog /Pages %d 0 R%s >>", pages, acroForm))

	return b.render(catalog, opts.Comment)
}

func (b *builder) render(root int, comment string) []byte {
	var buf bytes.Buffer
	buf.WriteString("%PDF-1.4\n")
	if comment != "" {
		fmt.Fprintf(&buf, "%% %s\n", strings.ReplaceAll(comment, "\n", " "))
	}

	offsets := make([]int, len(b.objects))
	for i, body := range b.objects {
		offsets[i] = buf.Len()
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", i+1, body)
	}

	xref := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n", len(b.objects)+1)
	buf.WriteString("0000000000 65535 f \n")
	for _, off := range offsets {
		fmt.Fprintf(&buf, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root %d 0 R >>\nstartxref\n%d\n%%%%EOF\n", len(b.objects)+1, root, xref)

	return buf.Bytes()
}

func escape(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `(`, `\(`, `)`, `\)`)
	return r.Replace(s)
}
