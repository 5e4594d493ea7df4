package export

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/jung-kurt/gofpdf"
)

// PDFExporter renders a weekly grid into a printable landscape PDF.
type PDFExporter struct{}

// NewPDFExporter constructs a PDF exporter.
func NewPDFExporter() *PDFExporter {
	return &PDFExporter{}
}

// Render creates a PDF document with the grid laid out day-by-period.
func (e *PDFExporter) Render(doc GridDocument) ([]byte, error) {
	if len(doc.PeriodHead) == 0 {
		return nil, fmt.Errorf("pdf requires at least one period column")
	}
	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.SetMargins(10, 15, 10)
	pdf.AddPage()

	if doc.Title != "" {
		pdf.SetFont("Arial", "B", 14)
		pdf.CellFormat(0, 10, strings.ToUpper(doc.Title), "", 1, "C", false, 0, "")
		pdf.Ln(3)
	}

	dayWidth := 28.0
	colWidth := (277.0 - dayWidth) / float64(len(doc.PeriodHead))

	pdf.SetFont("Arial", "B", 9)
	pdf.CellFormat(dayWidth, 8, "Day", "1", 0, "C", false, 0, "")
	for _, head := range doc.PeriodHead {
		pdf.CellFormat(colWidth, 8, head, "1", 0, "C", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 8)
	for i, row := range doc.Rows {
		day := ""
		if i < len(doc.DayLabels) {
			day = doc.DayLabels[i]
		}
		pdf.CellFormat(dayWidth, 10, day, "1", 0, "C", false, 0, "")
		for _, cell := range row {
			pdf.CellFormat(colWidth, 10, cell, "1", 0, "C", false, 0, "")
		}
		pdf.Ln(-1)
	}

	buf := &bytes.Buffer{}
	if err := pdf.Output(buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}
