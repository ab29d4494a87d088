package excel

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"

	"backorder/domain/order"

	"github.com/xuri/excelize/v2"
)

// ReportWriter renders classified buckets into a styled workbook
type ReportWriter struct {
	config ExcelConfig
}

// NewReportWriter creates a report writer
func NewReportWriter(config ExcelConfig) *ReportWriter {
	return &ReportWriter{config: config}
}

// Rows between the last data row and the totals row, and between the totals
// row and the legend header.
const (
	totalsGap = 3
	legendGap = 3
)

// WriteReport writes one sheet per bucket and saves the workbook atomically.
func (w *ReportWriter) WriteReport(ctx context.Context, path string, layout order.Layout, buckets []order.Bucket) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if len(buckets) == 0 {
		return fmt.Errorf("no sheets to write")
	}

	f := excelize.NewFile()
	defer f.Close()

	styles := newStyleSet(f, w.config)
	defaultSheet := f.GetSheetName(0)

	for i, b := range buckets {
		name := b.Name.SheetName()
		if i == 0 {
			if err := f.SetSheetName(defaultSheet, name); err != nil {
				return fmt.Errorf("failed to rename default sheet: %w", err)
			}
		} else if _, err := f.NewSheet(name); err != nil {
			return fmt.Errorf("failed to create sheet %s: %w", name, err)
		}

		sw := &sheetWriter{f: f, sheet: name, layout: layout, styles: styles, config: w.config}
		if err := sw.write(b.Records); err != nil {
			return fmt.Errorf("sheet %s: %w", name, err)
		}
		log.Printf("[ReportWriter] Sheet '%s' written with %d rows", name, len(b.Records))
	}
	f.SetActiveSheet(0)

	return saveAtomic(f, path)
}

// saveAtomic writes the workbook next to path and renames it into place, so
// a failed run never leaves a readable partial report or clobbers an old one.
func saveAtomic(f *excelize.File, path string) (err error) {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file in %s: %w", dir, err)
	}
	tmpName := tmp.Name()
	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmpName)
		}
	}()

	if err = f.Write(tmp); err != nil {
		return fmt.Errorf("failed to encode workbook: %w", err)
	}
	if err = tmp.Sync(); err != nil {
		return fmt.Errorf("failed to sync %s: %w", tmpName, err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", tmpName, err)
	}
	if err = os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("failed to move report into place: %w", err)
	}
	log.Printf("[ReportWriter] Report saved to %s", path)
	return nil
}

type sheetWriter struct {
	f      *excelize.File
	sheet  string
	layout order.Layout
	styles *styleSet
	config ExcelConfig
}

func (s *sheetWriter) write(records []order.Record) error {
	if err := s.writeHeader(); err != nil {
		return err
	}
	if err := s.setColumnWidths(); err != nil {
		return err
	}
	if s.config.FreezeHeader {
		if err := s.f.SetPanes(s.sheet, &excelize.Panes{
			Freeze:      true,
			YSplit:      1,
			TopLeftCell: "A2",
			ActivePane:  "bottomLeft",
		}); err != nil {
			return fmt.Errorf("failed to freeze header: %w", err)
		}
	}

	// An empty sheet is just its header.
	if len(records) == 0 {
		return nil
	}

	for i, rec := range records {
		if err := s.writeRecord(i+2, rec); err != nil {
			return fmt.Errorf("row %d: %w", i+2, err)
		}
	}

	lastRow := len(records) + 1
	totalRow, err := s.writeTotals(lastRow)
	if err != nil {
		return err
	}
	return s.writeLegend(totalRow + legendGap)
}

func (s *sheetWriter) writeHeader() error {
	for i, h := range s.layout.Headers() {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := s.f.SetCellStr(s.sheet, cell, h); err != nil {
			return err
		}
	}
	last, _ := excelize.CoordinatesToCellName(len(s.layout.Columns), 1)
	return s.f.SetCellStyle(s.sheet, "A1", last, s.styles.header)
}

func (s *sheetWriter) setColumnWidths() error {
	for i, lc := range s.layout.Columns {
		name, _ := excelize.ColumnNumberToName(i + 1)
		// roughly 7 pixels per character unit
		if err := s.f.SetColWidth(s.sheet, name, name, float64(lc.Width)/7); err != nil {
			return err
		}
	}
	return nil
}

func (s *sheetWriter) writeRecord(row int, rec order.Record) error {
	fill := ""
	if s.layout.HighlightComments {
		if hex, ok := order.HighlightFor(rec.Comments); ok {
			fill = hex
		}
	}

	for i, lc := range s.layout.Columns {
		cell, _ := excelize.CoordinatesToCellName(i+1, row)

		var err error
		switch lc.Kind {
		case order.KindDate:
			if t := rec.Date(lc.Column); t != nil {
				err = s.f.SetCellValue(s.sheet, cell, *t)
			}
		case order.KindMoney:
			// exact decimal text in a numeric cell
			if d := rec.Decimal(lc.Column); d.Valid {
				err = s.f.SetCellDefault(s.sheet, cell, d.Decimal.String())
			}
		case order.KindNumber:
			// numeric stock as a number, anything else as exported
			if v := rec.Text(lc.Column); v != "" {
				if rec.Decimal(lc.Column).Valid {
					err = s.f.SetCellDefault(s.sheet, cell, v)
				} else {
					err = s.f.SetCellStr(s.sheet, cell, v)
				}
			}
		case order.KindFormula:
			err = s.f.SetCellFormula(s.sheet, cell, s.formula(lc.Column, row))
		default:
			if v := rec.Text(lc.Column); v != "" {
				err = s.f.SetCellStr(s.sheet, cell, v)
			}
		}
		if err != nil {
			return fmt.Errorf("column %s: %w", lc.Column.Header(), err)
		}

		style, err := s.styles.data(lc.Kind, fill)
		if err != nil {
			return err
		}
		if err := s.f.SetCellStyle(s.sheet, cell, cell, style); err != nil {
			return err
		}
	}
	return nil
}

// formula renders a computed column as a reference to its sibling cells.
func (s *sheetWriter) formula(c order.Column, row int) string {
	fm, ok := order.Formulas[c]
	if !ok {
		return ""
	}
	return s.ref(fm.Left, row) + fm.Op + s.ref(fm.Right, row)
}

func (s *sheetWriter) ref(c order.Column, row int) string {
	name, _ := excelize.ColumnNumberToName(s.layout.Index(c))
	return name + strconv.Itoa(row)
}

func (s *sheetWriter) writeTotals(lastRow int) (int, error) {
	totalRow := lastRow + totalsGap
	for _, c := range order.TotalColumns {
		idx := s.layout.Index(c)
		if idx == 0 {
			continue
		}
		name, _ := excelize.ColumnNumberToName(idx)
		cell := name + strconv.Itoa(totalRow)
		if err := s.f.SetCellFormula(s.sheet, cell, fmt.Sprintf("SUM(%s2:%s%d)", name, name, lastRow)); err != nil {
			return 0, err
		}
		if err := s.f.SetCellStyle(s.sheet, cell, cell, s.styles.total); err != nil {
			return 0, err
		}
	}
	return totalRow, nil
}

func (s *sheetWriter) writeLegend(start int) error {
	if err := s.f.SetCellStr(s.sheet, fmt.Sprintf("A%d", start), "COLOR"); err != nil {
		return err
	}
	if err := s.f.SetCellStr(s.sheet, fmt.Sprintf("B%d", start), "MEANING"); err != nil {
		return err
	}
	if err := s.f.MergeCell(s.sheet, fmt.Sprintf("B%d", start), fmt.Sprintf("F%d", start)); err != nil {
		return err
	}
	if err := s.f.SetCellStyle(s.sheet, fmt.Sprintf("A%d", start), fmt.Sprintf("F%d", start), s.styles.legendHeader); err != nil {
		return err
	}

	for i, entry := range order.Legend {
		row := start + i + 1
		colorCell := fmt.Sprintf("A%d", row)
		if err := s.f.SetCellStr(s.sheet, colorCell, entry.Color); err != nil {
			return err
		}
		style, err := s.styles.legendSwatch(entry.Hex)
		if err != nil {
			return err
		}
		if err := s.f.SetCellStyle(s.sheet, colorCell, colorCell, style); err != nil {
			return err
		}

		from, to := fmt.Sprintf("B%d", row), fmt.Sprintf("F%d", row)
		if err := s.f.SetCellStr(s.sheet, from, entry.Meaning); err != nil {
			return err
		}
		if err := s.f.MergeCell(s.sheet, from, to); err != nil {
			return err
		}
		if err := s.f.SetCellStyle(s.sheet, from, to, s.styles.legendText); err != nil {
			return err
		}
	}
	return nil
}
