// Package ingest turns exported spreadsheets into typed order records.
package ingest

import (
	"context"
	"fmt"
	"time"

	"backorder/adapters/coercer"
	"backorder/domain/order"
	"backorder/domain/table"
	"backorder/internal/diagnostics"
	"backorder/ports"

	"github.com/shopspring/decimal"
)

// Stage is the diagnostics stage name of the loader.
const Stage = "Loader"

// maxSamples bounds the bad values quoted in a parse warning.
const maxSamples = 5

// Table is the loader's output.
type Table struct {
	Source        string
	Records       []order.Record
	Columns       order.ColumnSet
	RowCount      int
	SourceColumns int
}

// Loader reads and types input files.
type Loader struct {
	reader  ports.TableReader
	coercer *coercer.Coercer
	rules   []Rule
}

// NewLoader creates a loader backed by reader.
func NewLoader(reader ports.TableReader, c *coercer.Coercer) *Loader {
	if c == nil {
		c = coercer.NewDefault()
	}
	return &Loader{reader: reader, coercer: c, rules: Rules}
}

// Load reads path and builds records according to variant.
func (l *Loader) Load(ctx context.Context, path string, variant Variant, diag *diagnostics.Context) (*Table, error) {
	diag.Info(Stage, "reading input", diagnostics.Fields{"file": path, "variant": variant.String()})

	raw, err := l.reader.ReadTable(ctx, path)
	if err != nil {
		return nil, err
	}
	return l.FromRaw(raw, variant, diag)
}

// FromRaw builds records from an already-read table.
//
// When the table does not fit the variant's schema the error comes with a
// Table that carries only the source shape (Source, RowCount, SourceColumns).
func (l *Loader) FromRaw(raw *table.Raw, variant Variant, diag *diagnostics.Context) (*Table, error) {
	sourceColumns := raw.Width()
	shape := &Table{Source: raw.Source, RowCount: raw.Len(), SourceColumns: sourceColumns}

	prepared, err := Prepare(raw, variant)
	if err != nil {
		return shape, err
	}

	mapping, err := Resolve(prepared, l.rules)
	if err != nil {
		return shape, err
	}
	for _, c := range mapping.Missing {
		diag.Warn(Stage, "optional column missing, values left blank", diagnostics.Fields{"column": c.Header()})
	}

	b := newBuilder(l.coercer, mapping)
	records := make([]order.Record, 0, prepared.Len())
	for _, row := range prepared.Rows {
		if table.IsBlankRow(row) {
			continue
		}
		records = append(records, b.build(row))
	}
	b.report(diag)

	diag.Info(Stage, "input loaded", diagnostics.Fields{"rows": len(records), "columns": sourceColumns})

	return &Table{
		Source:        raw.Source,
		Records:       records,
		Columns:       mapping.Columns(),
		RowCount:      len(records),
		SourceColumns: sourceColumns,
	}, nil
}

type parseFailures struct {
	count   int
	samples []string
}

type builder struct {
	coercer  *coercer.Coercer
	mapping  Mapping
	failures map[order.Column]*parseFailures
}

func newBuilder(c *coercer.Coercer, m Mapping) *builder {
	return &builder{coercer: c, mapping: m, failures: make(map[order.Column]*parseFailures)}
}

func (b *builder) cell(row []string, c order.Column) (string, bool) {
	idx, ok := b.mapping.Index[c]
	if !ok {
		return "", false
	}
	return table.Cell(row, idx), true
}

func (b *builder) text(row []string, c order.Column) string {
	raw, _ := b.cell(row, c)
	return coercer.Text(raw)
}

func (b *builder) fail(c order.Column, raw string) {
	f := b.failures[c]
	if f == nil {
		f = &parseFailures{}
		b.failures[c] = f
	}
	f.count++
	if len(f.samples) < maxSamples {
		f.samples = append(f.samples, raw)
	}
}

func (b *builder) build(row []string) order.Record {
	rec := order.Record{
		OrderNumber:  b.text(row, order.ColOrderNumber),
		CustomerPO:   b.text(row, order.ColCustomerPO),
		ItemNumber:   b.text(row, order.ColItemNumber),
		Manufacturer: b.text(row, order.ColManufacturer),
		ShipASAP:     b.text(row, order.ColShipASAP),
		CustomerName: b.text(row, order.ColCustomerName),
		Salesperson:  b.text(row, order.ColSalesperson),
		Dock:         b.text(row, order.ColDock),
		Comments:     b.text(row, order.ColComments),
	}
	rec.OrderDate = b.date(row, order.ColOrderDate)
	rec.DueDate = b.date(row, order.ColDueDate)
	rec.UnitPrice = b.decimal(row, order.ColUnitPrice)
	rec.UnitCost = b.decimal(row, order.ColUnitCost)
	rec.Stock = b.text(row, order.ColStock)
	rec.StockQty, _ = b.coercer.Decimal(rec.Stock)
	return rec
}

func (b *builder) date(row []string, c order.Column) *time.Time {
	raw, ok := b.cell(row, c)
	if !ok {
		return nil
	}
	t, ok := b.coercer.Date(raw)
	if !ok {
		b.fail(c, raw)
		return nil
	}
	return t
}

func (b *builder) decimal(row []string, c order.Column) decimal.NullDecimal {
	raw, ok := b.cell(row, c)
	if !ok {
		return decimal.NullDecimal{}
	}
	d, ok := b.coercer.Decimal(raw)
	if !ok {
		b.fail(c, raw)
		return decimal.NullDecimal{}
	}
	return d
}

// report emits one aggregated warning per column with unparseable values.
func (b *builder) report(diag *diagnostics.Context) {
	for _, c := range order.RecordColumns {
		f, ok := b.failures[c]
		if !ok {
			continue
		}
		diag.Warn(Stage, fmt.Sprintf("invalid %s values set to null", c.Header()), diagnostics.Fields{
			"column":  c.Header(),
			"count":   f.count,
			"samples": f.samples,
		})
	}
}

// UniqueByKey drops every record whose composite key was already seen,
// keeping the first, and returns the number removed.
func UniqueByKey(records []order.Record) ([]order.Record, int) {
	seen := make(map[order.Key]bool, len(records))
	out := make([]order.Record, 0, len(records))
	for _, r := range records {
		k := r.Key()
		if seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, r)
	}
	return out, len(records) - len(out)
}
