// Package signature detects digital signatures in PDF documents by walking
// the same structures a viewer inspects: AcroForm signature fields and
// signature widgets attached to pages.
package signature

import (
	"bytes"
	"encoding/json"
	"fmt"
	"regexp"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"
)

// Tri is a three-valued signature presence.
// Unknown means the document could not be parsed, which is not the same as
// a confirmed absence.
type Tri int

// Tri values.
const (
	Unknown Tri = iota
	False
	True
)

func (t Tri) String() string {
	switch t {
	case True:
		return "true"
	case False:
		return "false"
	default:
		return "unknown"
	}
}

// MarshalJSON renders True and False as booleans and Unknown as null.
func (t Tri) MarshalJSON() ([]byte, error) {
	switch t {
	case True:
		return []byte("true"), nil
	case False:
		return []byte("false"), nil
	default:
		return []byte("null"), nil
	}
}

// UnmarshalJSON accepts true, false or null.
func (t *Tri) UnmarshalJSON(data []byte) error {
	var v *bool
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("decode signature presence: %w", err)
	}
	switch {
	case v == nil:
		*t = Unknown
	case *v:
		*t = True
	default:
		*t = False
	}
	return nil
}

// Presence reports the signatures found in a document.
// Signers keeps discovery order without duplicates.
type Presence struct {
	Present Tri      `json:"present"`
	Count   int      `json:"count"`
	Signers []string `json:"signers"`
}

// Label returns the report label for the presence value.
func (p Presence) Label() string {
	switch p.Present {
	case True:
		return "SÍ"
	case False:
		return "NO"
	default:
		return "NO DETECTADA"
	}
}

// Signer names used when the signature dictionary does not carry one.
const (
	DefaultFieldSigner  = "Firma digital detectada"
	DefaultWidgetSigner = "Firma en página"
	OpaqueSigner        = "Firma digital detectada (certificado no extraíble)"
)

var signatureDictPattern = regexp.MustCompile(`/Type\s*/Sig\b`)

// Checker inspects raw PDF bytes for signatures.
type Checker interface {
	Check(raw []byte) Presence
}

// CheckFunc adapts a function to the Checker interface.
type CheckFunc func(raw []byte) Presence

// Check calls f(raw).
func (f CheckFunc) Check(raw []byte) Presence {
	return f(raw)
}

// Default is the pdfcpu-backed checker.
var Default Checker = CheckFunc(Check)

// Check parses raw and collects signer names from AcroForm fields and page
// widgets. When the document cannot be parsed the result is Unknown with a
// zero count; Check never returns an error or panics.
func Check(raw []byte) (p Presence) {
	defer func() {
		if r := recover(); r != nil {
			p = Presence{Present: Unknown, Signers: []string{}}
		}
	}()

	ctx, err := api.ReadContext(bytes.NewReader(raw), model.NewDefaultConfiguration())
	if err != nil {
		return Presence{Present: Unknown, Signers: []string{}}
	}

	w := &walker{ctx: ctx, seen: make(map[string]bool), signers: []string{}}

	catalog, err := ctx.Catalog()
	if err != nil {
		return Presence{Present: Unknown, Signers: []string{}}
	}

	w.walkAcroForm(catalog)
	w.walkPages(catalog)

	if len(w.signers) == 0 && signatureDictPattern.Match(raw) {
		w.add(OpaqueSigner)
	}

	present := False
	if len(w.signers) > 0 {
		present = True
	}

	return Presence{
		Present: present,
		Count:   len(w.signers),
		Signers: w.signers,
	}
}

type walker struct {
	ctx     *model.Context
	seen    map[string]bool
	signers []string
}

func (w *walker) add(name string) {
	if w.seen[name] {
		return
	}
	w.seen[name] = true
	w.signers = append(w.signers, name)
}

func (w *walker) walkAcroForm(catalog types.Dict) {
	obj, ok := catalog.Find("AcroForm")
	if !ok {
		return
	}
	form, err := w.ctx.DereferenceDict(obj)
	if err != nil || form == nil {
		return
	}
	fieldsObj, ok := form.Find("Fields")
	if !ok {
		return
	}
	fields, err := w.ctx.DereferenceArray(fieldsObj)
	if err != nil {
		return
	}
	for _, f := range fields {
		w.walkField(f, "", 0)
	}
}

func (w *walker) walkField(obj types.Object, inheritedType string, depth int) {
	if depth > 32 {
		return
	}
	field, err := w.ctx.DereferenceDict(obj)
	if err != nil || field == nil {
		return
	}

	fieldType := inheritedType
	if ft := field.NameEntry("FT"); ft != nil {
		fieldType = *ft
	}

	if fieldType == "Sig" {
		if name, ok := w.signatureName(field, DefaultFieldSigner, "Name", "Reason"); ok {
			w.add(name)
		}
	}

	kidsObj, ok := field.Find("Kids")
	if !ok {
		return
	}
	kids, err := w.ctx.DereferenceArray(kidsObj)
	if err != nil {
		return
	}
	for _, kid := range kids {
		w.walkField(kid, fieldType, depth+1)
	}
}

func (w *walker) walkPages(catalog types.Dict) {
	obj, ok := catalog.Find("Pages")
	if !ok {
		return
	}
	w.walkPageNode(obj, 0)
}

func (w *walker) walkPageNode(obj types.Object, depth int) {
	if depth > 64 {
		return
	}
	node, err := w.ctx.DereferenceDict(obj)
	if err != nil || node == nil {
		return
	}

	if kidsObj, ok := node.Find("Kids"); ok {
		kids, err := w.ctx.DereferenceArray(kidsObj)
		if err == nil {
			for _, kid := range kids {
				w.walkPageNode(kid, depth+1)
			}
		}
		return
	}

	annotsObj, ok := node.Find("Annots")
	if !ok {
		return
	}
	annots, err := w.ctx.DereferenceArray(annotsObj)
	if err != nil {
		return
	}
	for _, a := range annots {
		annot, err := w.ctx.DereferenceDict(a)
		if err != nil || annot == nil {
			continue
		}
		subtype := annot.NameEntry("Subtype")
		ft := annot.NameEntry("FT")
		if subtype == nil || *subtype != "Widget" || ft == nil || *ft != "Sig" {
			continue
		}
		if name, ok := w.signatureName(annot, DefaultWidgetSigner, "Name"); ok {
			w.add(name)
		}
	}
}

// signatureName resolves the field's /V dictionary and returns the first
// non-empty entry among keys, or fallback. A field without a value is unsigned.
func (w *walker) signatureName(field types.Dict, fallback string, keys ...string) (string, bool) {
	vObj, ok := field.Find("V")
	if !ok || vObj == nil {
		return "", false
	}
	v, err := w.ctx.DereferenceDict(vObj)
	if err != nil || v == nil {
		return "", false
	}

	for _, key := range keys {
		obj, ok := v.Find(key)
		if !ok {
			continue
		}
		if s := w.text(obj); s != "" {
			return s, true
		}
	}
	return fallback, true
}

func (w *walker) text(obj types.Object) string {
	o, err := w.ctx.Dereference(obj)
	if err != nil {
		return ""
	}
	switch v := o.(type) {
	case types.StringLiteral:
		s, err := types.StringLiteralToString(v)
		if err != nil {
			return v.Value()
		}
		return s
	case types.HexLiteral:
		s, err := types.HexLiteralToString(v)
		if err != nil {
			return ""
		}
		return s
	case types.Name:
		return v.Value()
	}
	return ""
}
