package order

import "strings"

// CellKind decides how a report column is written and formatted.
type CellKind int

const (
	KindText CellKind = iota
	KindDate
	KindMoney
	KindNumber
	KindFormula
)

// LayoutColumn is one column of a rendered sheet.
type LayoutColumn struct {
	Column Column
	Kind   CellKind
	Width  int // pixels
}

// Formula is a two-operand expression over sibling cells of the same row.
type Formula struct {
	Left  Column
	Op    string
	Right Column
}

// Formulas defines the computed columns.
var Formulas = map[Column]Formula{
	ColGPUnit:    {Left: ColUnitPrice, Op: "-", Right: ColUnitCost},
	ColGPTotal:   {Left: ColGPUnit, Op: "*", Right: ColStock},
	ColTotalSale: {Left: ColStock, Op: "*", Right: ColUnitPrice},
}

// TotalColumns are summed in the totals row.
var TotalColumns = []Column{ColGPTotal, ColTotalSale}

// LegendEntry is one row of the color legend.
type LegendEntry struct {
	Color   string
	Meaning string
	Hex     string
}

// Legend is written under the totals row of every non-empty sheet.
var Legend = []LegendEntry{
	{Color: "GREEN", Meaning: "SHIPPING TODAY", Hex: "00FF00"},
	{Color: "YELLOW", Meaning: "PROBLEM WITH ORDER -- SEE COMMENTS", Hex: "FFFF00"},
	{Color: "RED", Meaning: "AT TESTING", Hex: "FF0000"},
	{Color: "ORANGE", Meaning: "SCHEDULED ORDER", Hex: "FFA500"},
}

// CommentHighlight fills a row whose comments contain Keyword.
type CommentHighlight struct {
	Keyword string
	Hex     string
}

// CommentHighlights are checked in order; the first match wins.
var CommentHighlights = []CommentHighlight{
	{Keyword: "PROCESS", Hex: "DEEAD0"},
	{Keyword: "PICKUP", Hex: "C5D9F1"},
	{Keyword: "ISSUE", Hex: "FFFF00"},
	{Keyword: "TESTING", Hex: "CCC0DA"},
	{Keyword: "SCHEDULED", Hex: "F2DCDB"},
}

// HighlightFor returns the fill color for a comment, if any keyword matches.
func HighlightFor(comment string) (string, bool) {
	upper := strings.ToUpper(comment)
	for _, h := range CommentHighlights {
		if strings.Contains(upper, h.Keyword) {
			return h.Hex, true
		}
	}
	return "", false
}

// Layout describes the column order and presentation of a report sheet.
type Layout struct {
	Name              string
	Columns           []LayoutColumn
	HighlightComments bool
}

// StandardLayout is the 16-column daily backorder report.
var StandardLayout = Layout{
	Name: "standard",
	Columns: []LayoutColumn{
		{ColOrderNumber, KindText, 54},
		{ColCustomerPO, KindText, 160},
		{ColOrderDate, KindDate, 80},
		{ColItemNumber, KindText, 167},
		{ColManufacturer, KindText, 54},
		{ColShipASAP, KindText, 49},
		{ColUnitPrice, KindMoney, 75},
		{ColUnitCost, KindMoney, 75},
		{ColCustomerName, KindText, 256},
		{ColSalesperson, KindText, 125},
		{ColDueDate, KindDate, 80},
		{ColStock, KindNumber, 45},
		{ColGPUnit, KindFormula, 75},
		{ColGPTotal, KindFormula, 83},
		{ColTotalSale, KindFormula, 83},
		{ColComments, KindText, 400},
	},
}

// LivingLayout adds the dock column and comment-keyword row colors.
var LivingLayout = Layout{
	Name: "living",
	Columns: []LayoutColumn{
		{ColOrderNumber, KindText, 54},
		{ColCustomerPO, KindText, 160},
		{ColOrderDate, KindDate, 80},
		{ColDock, KindText, 80},
		{ColItemNumber, KindText, 167},
		{ColManufacturer, KindText, 54},
		{ColShipASAP, KindText, 49},
		{ColUnitPrice, KindMoney, 75},
		{ColUnitCost, KindMoney, 75},
		{ColCustomerName, KindText, 256},
		{ColSalesperson, KindText, 125},
		{ColDueDate, KindDate, 80},
		{ColStock, KindNumber, 45},
		{ColGPUnit, KindFormula, 75},
		{ColGPTotal, KindFormula, 83},
		{ColTotalSale, KindFormula, 83},
		{ColComments, KindText, 400},
	},
	HighlightComments: true,
}

// Headers returns the header row.
func (l Layout) Headers() []string {
	out := make([]string, len(l.Columns))
	for i, c := range l.Columns {
		out[i] = c.Column.Header()
	}
	return out
}

// Index returns the 1-based position of c, or 0 when absent.
func (l Layout) Index(c Column) int {
	for i, lc := range l.Columns {
		if lc.Column == c {
			return i + 1
		}
	}
	return 0
}
