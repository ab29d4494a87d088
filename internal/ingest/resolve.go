package ingest

import (
	"strings"

	"backorder/domain/core"
	"backorder/domain/order"
	"backorder/domain/table"
)

// Variant selects how an input file's columns are located.
type Variant int

const (
	// VariantExport is the ERP export: positional drop, then names.
	VariantExport Variant = iota
	// VariantNamed is a file whose headers are already meaningful.
	VariantNamed
)

func (v Variant) String() string {
	if v == VariantNamed {
		return "named"
	}
	return "export"
}

// Export layout: these 0-based positions carry unused ERP fields and are
// removed before any header is looked at.
var (
	ExportDropPositions = []int{0, 3, 4, 8, 9, 15, 17, 19}
	ExportMinColumns    = 20
)

// Rule lists the header spellings accepted for one logical column.
type Rule struct {
	Column   order.Column
	Names    []string
	Required bool
	// Annotation columns are hand-entered and silently blank when absent.
	Annotation bool
}

// Rules is the column-resolution table shared by both variants. Names are
// matched trimmed and case-insensitively; the first name found wins.
var Rules = []Rule{
	{Column: order.ColOrderNumber, Names: []string{"order_no", "ORDER #", "order number"}, Required: true},
	{Column: order.ColCustomerPO, Names: []string{"cust_po", "CUST PO"}},
	{Column: order.ColOrderDate, Names: []string{"order_dt", "order_date", "ORDER DATE"}},
	{Column: order.ColItemNumber, Names: []string{"item_no", "ITEM NO", "item number"}, Required: true},
	{Column: order.ColManufacturer, Names: []string{"manu_no", "MFG"}},
	{Column: order.ColShipASAP, Names: []string{"ship_asap", "SHIP ASAP"}},
	{Column: order.ColUnitPrice, Names: []string{"unit_price", "UNIT PRICE"}},
	{Column: order.ColUnitCost, Names: []string{"unit_cost", "UNIT COST"}},
	{Column: order.ColCustomerName, Names: []string{"cust_name", "CUST NAME"}},
	{Column: order.ColSalesperson, Names: []string{"slsman_nam", "slsman_name", "SALESMAN NAME"}},
	{Column: order.ColDueDate, Names: []string{"due_date", "DUE DATE"}},
	{Column: order.ColStock, Names: []string{"from_stk", "STOCK"}},
	{Column: order.ColDock, Names: []string{"pcx_dock", "PCX DOCK", "dock"}, Annotation: true},
	{Column: order.ColComments, Names: []string{"comments", "COMMENTS"}, Annotation: true},
}

// Mapping is the result of resolving Rules against one header row.
type Mapping struct {
	Index   map[order.Column]int
	Missing []order.Column // optional columns not found
}

// Columns returns the set of resolved columns.
func (m Mapping) Columns() order.ColumnSet {
	cols := make([]order.Column, 0, len(m.Index))
	for c := range m.Index {
		cols = append(cols, c)
	}
	return order.NewColumnSet(cols...)
}

// Resolve maps every rule to a header position. Missing required columns
// fail with a schema error naming them and the available headers.
func Resolve(raw *table.Raw, rules []Rule) (Mapping, error) {
	m := Mapping{Index: make(map[order.Column]int, len(rules))}
	var missing []string

	for _, rule := range rules {
		idx := -1
		for _, name := range rule.Names {
			if idx = raw.ColumnIndex(name); idx >= 0 {
				break
			}
		}
		switch {
		case idx >= 0:
			m.Index[rule.Column] = idx
		case rule.Required:
			missing = append(missing, rule.Names[0])
		case !rule.Annotation:
			m.Missing = append(m.Missing, rule.Column)
		}
	}

	if len(missing) > 0 {
		available := make([]string, len(raw.Headers))
		for i, h := range raw.Headers {
			available[i] = strings.TrimSpace(h)
		}
		return m, core.NewSchemaError(missing, available)
	}
	return m, nil
}

// Prepare applies the variant's positional rules to raw.
func Prepare(raw *table.Raw, variant Variant) (*table.Raw, error) {
	if variant != VariantExport {
		return raw, nil
	}
	if raw.Width() < ExportMinColumns {
		return nil, core.NewColumnCountError(ExportMinColumns, raw.Width())
	}
	return raw.DropColumns(ExportDropPositions), nil
}
