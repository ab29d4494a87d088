package carryforward

import (
	"backorder/adapters/coercer"
	"backorder/domain/order"
	"backorder/domain/table"
	"backorder/internal/diagnostics"
	"backorder/internal/ingest"
)

// Annotations holds the user-entered values of one prior line.
type Annotations map[order.Column]string

// Lookup indexes prior annotations by composite key.
type Lookup map[order.Key]Annotations

// BuildLookup reads the MILITARY then COMMERCIAL sheets of a prior report.
// Each sheet's data ends at its first fully blank row, so the totals and
// legend blocks below it are never read. On duplicate keys the last
// occurrence wins. Sheets that are missing or lack key columns are skipped
// with a warning.
func BuildLookup(wb *table.Workbook, fields []order.Column, diag *diagnostics.Context) Lookup {
	lookup := make(Lookup)
	for _, name := range order.ReportSheets {
		sheet, ok := wb.Sheet(name.SheetName())
		if !ok {
			diag.Warn(Stage, "prior report sheet missing", diagnostics.Fields{"file": wb.Source, "sheet": name.SheetName()})
			continue
		}
		mapping, err := ingest.Resolve(sheet, ingest.Rules)
		if err != nil {
			diag.Warn(Stage, "prior report sheet unreadable", diagnostics.Fields{"sheet": sheet.Sheet, "error": err.Error()})
			continue
		}

		orderIdx := mapping.Index[order.ColOrderNumber]
		itemIdx := mapping.Index[order.ColItemNumber]
		for _, row := range sheet.Rows {
			if table.IsBlankRow(row) {
				break
			}
			key := order.NewKey(table.Cell(row, orderIdx), table.Cell(row, itemIdx))
			ann := make(Annotations, len(fields))
			for _, f := range fields {
				if idx, ok := mapping.Index[f]; ok {
					ann[f] = coercer.Text(table.Cell(row, idx))
				}
			}
			lookup[key] = ann
		}
	}
	return lookup
}

// Overlay returns copies of records with user fields replaced by their
// prior values. A blank prior value never overwrites. The second result
// is the number of records whose key was found.
func Overlay(records []order.Record, lookup Lookup, fields []order.Column) ([]order.Record, int) {
	out := make([]order.Record, len(records))
	matched := 0
	for i, r := range records {
		ann, ok := lookup[r.Key()]
		if ok {
			matched++
			for _, f := range fields {
				if v := ann[f]; v != "" {
					r = r.WithText(f, v)
				}
			}
		}
		out[i] = r
	}
	return out, matched
}
