// Package csvexport flattens detected tables into CSV for spreadsheet
// consumers that only need the tabular content of a document.
package csvexport

import (
	"encoding/csv"
	"io"

	"pdfworker/internal/domain"
)

// BOM is the UTF-8 byte order mark, written first for Excel compatibility
// on Windows.
var BOM = []byte{0xEF, 0xBB, 0xBF}

// Writer wraps csv.Writer for exporting extracted tables as CSV.
type Writer struct {
	csv   *csv.Writer
	first bool
}

// NewWriter creates a Writer that writes CSV to w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{csv: csv.NewWriter(w), first: true}
}

// WriteTables writes every table in model order. Tables are separated by one
// empty record. Cells are placed on the table's rows×columns grid; a grid
// position with no cell yields an empty field.
func (w *Writer) WriteTables(tables []domain.Table) error {
	for i := range tables {
		if err := w.writeTable(&tables[i]); err != nil {
			return err
		}
	}
	return nil
}

func (w *Writer) writeTable(t *domain.Table) error {
	if !w.first {
		if err := w.csv.Write([]string{""}); err != nil {
			return err
		}
	}
	w.first = false

	grid := make([][]string, t.Rows)
	for r := range grid {
		grid[r] = make([]string, t.Columns)
	}
	for i := range t.Cells {
		c := &t.Cells[i]
		if c.RowIndex >= 0 && c.RowIndex < t.Rows && c.ColumnIndex >= 0 && c.ColumnIndex < t.Columns {
			grid[c.RowIndex][c.ColumnIndex] = c.Content
		}
	}

	for _, row := range grid {
		if err := w.csv.Write(row); err != nil {
			return err
		}
	}
	return nil
}

// Flush flushes the underlying csv.Writer buffer.
func (w *Writer) Flush() {
	w.csv.Flush()
}

// Error returns any error from the underlying csv.Writer.
func (w *Writer) Error() error {
	return w.csv.Error()
}
