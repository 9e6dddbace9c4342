// Package report renders review rows as an xlsx workbook.
package report

import (
	"fmt"
	"unicode/utf8"

	"github.com/xuri/excelize/v2"

	"github.com/JaimeStill/revisor/internal/policy"
	"github.com/JaimeStill/revisor/internal/workflow"
)

// Download metadata for the workbook.
const (
	Filename    = "revision_apostillas.xlsx"
	ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

const (
	sheet    = "Revisión"
	maxWidth = 60
)

// Headers are the column titles in order.
var Headers = []string{
	"Archivo",
	"Tipo trámite",
	"Titular",
	"Tipo",
	"Fecha CE",
	"CE referencia IF",
	"IF encontrado en CE",
	"Firmante CE",
	"Firma Digital CE",
	"Firmantes Certificado",
	"Estado",
	"Acción",
	"Observaciones",
}

var statusFills = map[policy.Status]string{
	policy.Approved:    "E6F4EA",
	policy.NeedsReview: "FFF8E1",
	policy.Rejected:    "FDECEA",
}

func values(r workflow.Row) []string {
	return []string{
		r.File,
		r.Kind,
		r.Holder,
		r.DocumentType,
		r.IssueDate,
		r.ReferencesOriginal,
		r.ReferenceFound,
		r.CertificateSigner,
		r.Signature,
		r.Signers,
		r.Status.Label(),
		r.Action,
		r.Observation,
	}
}

// Write renders rows into a single-sheet workbook: a bold gray header, one
// row per entry filled by status, a frozen header row and an autofilter.
func Write(rows []workflow.Row) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"ECECEC"}, Pattern: 1},
		Font:      &excelize.Font{Bold: true},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return nil, fmt.Errorf("header style: %w", err)
	}

	fills := make(map[policy.Status]int, len(statusFills))
	for status, color := range statusFills {
		id, err := f.NewStyle(&excelize.Style{
			Fill: excelize.Fill{Type: "pattern", Color: []string{color}, Pattern: 1},
		})
		if err != nil {
			return nil, fmt.Errorf("%s style: %w", status, err)
		}
		fills[status] = id
	}

	widths := make([]int, len(Headers))
	write := func(row int, cols []string) error {
		for i, v := range cols {
			cell, err := excelize.CoordinatesToCellName(i+1, row)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return err
			}
			widths[i] = max(widths[i], utf8.RuneCountInString(v))
		}
		return nil
	}

	if err := write(1, Headers); err != nil {
		return nil, fmt.Errorf("write header: %w", err)
	}

	last, _ := excelize.ColumnNumberToName(len(Headers))
	if err := f.SetCellStyle(sheet, "A1", last+"1", headerStyle); err != nil {
		return nil, fmt.Errorf("style header: %w", err)
	}

	for i, r := range rows {
		n := i + 2
		if err := write(n, values(r)); err != nil {
			return nil, fmt.Errorf("write row %d: %w", n, err)
		}
		if id, ok := fills[r.Status]; ok {
			if err := f.SetCellStyle(sheet, fmt.Sprintf("A%d", n), fmt.Sprintf("%s%d", last, n), id); err != nil {
				return nil, fmt.Errorf("style row %d: %w", n, err)
			}
		}
	}

	for i, w := range widths {
		col, _ := excelize.ColumnNumberToName(i + 1)
		if err := f.SetColWidth(sheet, col, col, float64(min(w+3, maxWidth))); err != nil {
			return nil, fmt.Errorf("column width %s: %w", col, err)
		}
	}

	if err := f.SetPanes(sheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	}); err != nil {
		return nil, fmt.Errorf("freeze header: %w", err)
	}

	ref := fmt.Sprintf("A1:%s%d", last, len(rows)+1)
	if err := f.AutoFilter(sheet, ref, nil); err != nil {
		return nil, fmt.Errorf("autofilter: %w", err)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx write: %w", err)
	}

	return buf.Bytes(), nil
}
