// Package table holds untyped cell grids as read from spreadsheet and CSV
// files, before any column resolution.
package table

import "strings"

// Raw is one sheet's worth of cells. Rows are padded to len(Headers).
type Raw struct {
	Source  string
	Sheet   string
	Headers []string
	Rows    [][]string
}

// Width returns the number of header columns.
func (r *Raw) Width() int {
	return len(r.Headers)
}

// Len returns the number of data rows.
func (r *Raw) Len() int {
	return len(r.Rows)
}

// DropColumns returns a copy without the columns at the given 0-based positions.
func (r *Raw) DropColumns(positions []int) *Raw {
	drop := make(map[int]bool, len(positions))
	for _, p := range positions {
		drop[p] = true
	}
	keep := func(cells []string) []string {
		out := make([]string, 0, len(cells))
		for i, c := range cells {
			if !drop[i] {
				out = append(out, c)
			}
		}
		return out
	}

	rows := make([][]string, len(r.Rows))
	for i, row := range r.Rows {
		rows[i] = keep(row)
	}
	return &Raw{Source: r.Source, Sheet: r.Sheet, Headers: keep(r.Headers), Rows: rows}
}

// ColumnIndex returns the position of the first header equal to name
// (case-insensitive, trimmed), or -1.
func (r *Raw) ColumnIndex(name string) int {
	for i, h := range r.Headers {
		if strings.EqualFold(strings.TrimSpace(h), strings.TrimSpace(name)) {
			return i
		}
	}
	return -1
}

// Cell returns row[col] or "" when out of range.
func Cell(row []string, col int) string {
	if col < 0 || col >= len(row) {
		return ""
	}
	return row[col]
}

// IsBlankRow reports whether every cell in row is whitespace.
func IsBlankRow(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

// Workbook is a set of named sheets in file order.
type Workbook struct {
	Source string
	Sheets []*Raw
}

// Sheet returns the sheet with the given name (case-insensitive).
func (w *Workbook) Sheet(name string) (*Raw, bool) {
	for _, s := range w.Sheets {
		if strings.EqualFold(s.Sheet, name) {
			return s, true
		}
	}
	return nil, false
}
