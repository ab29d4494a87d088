package order

// Column identifies a logical order-line column independent of how the
// source file spells its header.
type Column string

// Source and user-editable columns
const (
	ColOrderNumber  Column = "order_no"
	ColCustomerPO   Column = "cust_po"
	ColOrderDate    Column = "order_dt"
	ColItemNumber   Column = "item_no"
	ColManufacturer Column = "manu_no"
	ColShipASAP     Column = "ship_asap"
	ColUnitPrice    Column = "unit_price"
	ColUnitCost     Column = "unit_cost"
	ColCustomerName Column = "cust_name"
	ColSalesperson  Column = "slsman_nam"
	ColDueDate      Column = "due_date"
	ColStock        Column = "from_stk"
	ColDock         Column = "pcx_dock"
	ColComments     Column = "comments"
)

// Computed columns exist only in rendered reports
const (
	ColGPUnit    Column = "gp_unit"
	ColGPTotal   Column = "gp_total"
	ColTotalSale Column = "total_sale"
)

// RecordColumns lists every column a Record carries, in report order.
var RecordColumns = []Column{
	ColOrderNumber, ColCustomerPO, ColOrderDate, ColDock, ColItemNumber,
	ColManufacturer, ColShipASAP, ColUnitPrice, ColUnitCost, ColCustomerName,
	ColSalesperson, ColDueDate, ColStock, ColComments,
}

// UserColumns are edited by hand in a living report and carried across runs.
var UserColumns = []Column{ColDock, ColComments}

// Headers maps columns to the literal header text used in generated reports.
var Headers = map[Column]string{
	ColOrderNumber:  "ORDER #",
	ColCustomerPO:   "CUST PO",
	ColOrderDate:    "ORDER DATE",
	ColDock:         "PCX DOCK",
	ColItemNumber:   "ITEM NO",
	ColManufacturer: "MFG",
	ColShipASAP:     "SHIP ASAP",
	ColUnitPrice:    "UNIT PRICE",
	ColUnitCost:     "UNIT COST",
	ColCustomerName: "CUST NAME",
	ColSalesperson:  "SALESMAN NAME",
	ColDueDate:      "DUE DATE",
	ColStock:        "STOCK",
	ColGPUnit:       "GP UNIT",
	ColGPTotal:      "GP TOTAL",
	ColTotalSale:    "TOTAL SALE",
	ColComments:     "COMMENTS",
}

// Header returns the report header for c, or the raw column name.
func (c Column) Header() string {
	if h, ok := Headers[c]; ok {
		return h
	}
	return string(c)
}

// ColumnSet records which logical columns were present in a source.
type ColumnSet map[Column]bool

// NewColumnSet builds a set from cols.
func NewColumnSet(cols ...Column) ColumnSet {
	s := make(ColumnSet, len(cols))
	for _, c := range cols {
		s[c] = true
	}
	return s
}

// Has reports whether c is present.
func (s ColumnSet) Has(c Column) bool {
	return s[c]
}

// With returns a copy of s that also contains cols.
func (s ColumnSet) With(cols ...Column) ColumnSet {
	out := make(ColumnSet, len(s)+len(cols))
	for c := range s {
		out[c] = true
	}
	for _, c := range cols {
		out[c] = true
	}
	return out
}
