package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
)

// GridDocument is a rendered weekly grid: one row per day, one column per
// period, cells already formatted for display.
type GridDocument struct {
	Title      string
	DayLabels  []string
	PeriodHead []string
	Rows       [][]string
}

// CSVExporter renders GridDocument records into CSV bytes.
type CSVExporter struct{}

// NewCSVExporter builds a CSV exporter.
func NewCSVExporter() *CSVExporter {
	return &CSVExporter{}
}

// Render produces CSV encoded bytes for the grid.
func (e *CSVExporter) Render(doc GridDocument) ([]byte, error) {
	if len(doc.PeriodHead) == 0 {
		return nil, fmt.Errorf("csv requires at least one period column")
	}
	buf := &bytes.Buffer{}
	writer := csv.NewWriter(buf)

	header := append([]string{"Day"}, doc.PeriodHead...)
	if err := writer.Write(header); err != nil {
		return nil, fmt.Errorf("write csv header: %w", err)
	}
	for i, row := range doc.Rows {
		day := ""
		if i < len(doc.DayLabels) {
			day = doc.DayLabels[i]
		}
		record := append([]string{day}, row...)
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("write csv row: %w", err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("flush csv: %w", err)
	}
	return buf.Bytes(), nil
}
