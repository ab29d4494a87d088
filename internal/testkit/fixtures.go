package testkit

import "fmt"

// exportWidth is the column count of the ERP export; exportSlots are the
// positions that survive the loader's positional drop.
const exportWidth = 20

var exportSlots = []int{1, 2, 5, 6, 7, 10, 11, 12, 13, 14, 16, 18}

var exportNames = []string{
	"order_no", "cust_po", "order_dt", "item_no", "manu_no", "ship_asap",
	"unit_price", "unit_cost", "cust_name", "slsman_nam", "due_date", "from_stk",
}

// NamedHeaders are the headers of the raw-data variant.
var NamedHeaders = []string{
	"order_no", "cust_po", "order_dt", "item_no", "manu_no", "ship_asap",
	"unit_price", "unit_cost", "cust_name", "slsman_name", "due_date", "from_stk",
}

func (l Line) values() []string {
	return []string{
		l.Order, l.PO, l.OrderDate, l.Item, l.Mfg, l.ShipASAP,
		l.Price, l.Cost, l.Customer, l.Salesperson, l.DueDate, l.Stock,
	}
}

func spread(values []string, filler func(pos int) string) []string {
	row := make([]string, exportWidth)
	for i := range row {
		row[i] = filler(i)
	}
	for i, slot := range exportSlots {
		row[slot] = values[i]
	}
	return row
}

// ExportHeaders returns the 20 header cells of an ERP export.
func ExportHeaders() []string {
	return spread(exportNames, func(pos int) string { return fmt.Sprintf("unused_%d", pos) })
}

// ExportRow places a line's values at the export's positional slots.
func ExportRow(l Line) []string {
	return spread(l.values(), func(pos int) string { return fmt.Sprintf("x%d", pos) })
}

// ExportRows returns a header plus one row per line.
func ExportRows(lines ...Line) [][]string {
	rows := [][]string{ExportHeaders()}
	for _, l := range lines {
		rows = append(rows, ExportRow(l))
	}
	return rows
}

// NamedRows returns a raw-data header plus one row per line.
func NamedRows(lines ...Line) [][]string {
	rows := [][]string{NamedHeaders}
	for _, l := range lines {
		rows = append(rows, l.values())
	}
	return rows
}

// WriteExport writes an ERP export workbook.
func (k *TestKit) WriteExport(name string, lines ...Line) string {
	k.t.Helper()
	return k.WriteWorkbook(name, Sheet{Name: "Sheet1", Rows: ExportRows(lines...)})
}

// WriteNamed writes a raw-data workbook.
func (k *TestKit) WriteNamed(name string, lines ...Line) string {
	k.t.Helper()
	return k.WriteWorkbook(name, Sheet{Name: "Sheet1", Rows: NamedRows(lines...)})
}

// Sample returns a small mixed set of lines: two military, two commercial
// and one exact secondary-salesperson duplicate of a primary line.
func Sample() []Line {
	return []Line{
		{Order: "1002", PO: "PO-7", OrderDate: "2025-03-01", Item: "A1", Mfg: "ACME", ShipASAP: "Y", Price: "12.50", Cost: "8.00", Customer: "DLA Troop Support", Salesperson: "MANUEL ORTEGA", DueDate: "2025-03-20", Stock: "4"},
		{Order: "1001", PO: "PO-3", OrderDate: "2025-02-27", Item: "B7", Mfg: "BOLT", ShipASAP: "N", Price: "3.10", Cost: "1.05", Customer: "Acme Corp", Salesperson: "Lisa Miller", DueDate: "2025-03-15", Stock: "10"},
		{Order: "1001", PO: "PO-3", OrderDate: "2025-02-27", Item: "B7", Mfg: "BOLT", ShipASAP: "N", Price: "3.10", Cost: "1.05", Customer: "Acme Corp", Salesperson: "Sara Burrell", DueDate: "2025-03-15", Stock: "10"},
		{Order: "999", PO: "PO-1", OrderDate: "2025-02-20", Item: "C3", Mfg: "NUTS", ShipASAP: "N", Price: "1.00", Cost: "0.50", Customer: "DFAS Columbus", Salesperson: "manuel ortega", DueDate: "", Stock: "2"},
		{Order: "1003", PO: "PO-9", OrderDate: "2025-03-02", Item: "D4", Mfg: "GEAR", ShipASAP: "Y", Price: "100", Cost: "75", Customer: "Globex", Salesperson: "Sara Burrell", DueDate: "2025-04-01", Stock: "1"},
	}
}
