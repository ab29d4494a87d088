package order

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Record is one backorder line.
//
// Records are values: pipeline stages copy and return new slices and never
// mutate a Record reachable from another stage's output.
type Record struct {
	OrderNumber  string
	CustomerPO   string
	OrderDate    *time.Time
	ItemNumber   string
	Manufacturer string
	ShipASAP     string
	UnitPrice    decimal.NullDecimal
	UnitCost     decimal.NullDecimal
	CustomerName string
	Salesperson  string
	DueDate      *time.Time
	Stock        string              // as exported, numeric or not
	StockQty     decimal.NullDecimal // Stock parsed as a quantity, null when non-numeric

	// User-editable
	Dock     string
	Comments string
}

// Key is the composite natural key of a Record.
type Key struct {
	Order string
	Item  string
}

// NewKey builds a Key from raw cell text.
func NewKey(order, item string) Key {
	return Key{Order: strings.TrimSpace(order), Item: strings.TrimSpace(item)}
}

func (k Key) String() string {
	return k.Order + "/" + k.Item
}

// Key returns the record's composite key.
func (r Record) Key() Key {
	return NewKey(r.OrderNumber, r.ItemNumber)
}

// GPUnit is unit price minus unit cost.
func (r Record) GPUnit() decimal.NullDecimal {
	if !r.UnitPrice.Valid || !r.UnitCost.Valid {
		return decimal.NullDecimal{}
	}
	return decimal.NewNullDecimal(r.UnitPrice.Decimal.Sub(r.UnitCost.Decimal))
}

// GPTotal is GPUnit times stock.
func (r Record) GPTotal() decimal.NullDecimal {
	gp := r.GPUnit()
	if !gp.Valid || !r.StockQty.Valid {
		return decimal.NullDecimal{}
	}
	return decimal.NewNullDecimal(gp.Decimal.Mul(r.StockQty.Decimal))
}

// TotalSale is stock times unit price.
func (r Record) TotalSale() decimal.NullDecimal {
	if !r.UnitPrice.Valid || !r.StockQty.Valid {
		return decimal.NullDecimal{}
	}
	return decimal.NewNullDecimal(r.StockQty.Decimal.Mul(r.UnitPrice.Decimal))
}

// Text returns the value of a string column; other columns return "".
func (r Record) Text(c Column) string {
	switch c {
	case ColOrderNumber:
		return r.OrderNumber
	case ColCustomerPO:
		return r.CustomerPO
	case ColItemNumber:
		return r.ItemNumber
	case ColManufacturer:
		return r.Manufacturer
	case ColShipASAP:
		return r.ShipASAP
	case ColCustomerName:
		return r.CustomerName
	case ColSalesperson:
		return r.Salesperson
	case ColStock:
		return r.Stock
	case ColDock:
		return r.Dock
	case ColComments:
		return r.Comments
	}
	return ""
}

// Date returns the value of a date column.
func (r Record) Date(c Column) *time.Time {
	switch c {
	case ColOrderDate:
		return r.OrderDate
	case ColDueDate:
		return r.DueDate
	}
	return nil
}

// Decimal returns the value of a numeric column, including computed ones.
func (r Record) Decimal(c Column) decimal.NullDecimal {
	switch c {
	case ColUnitPrice:
		return r.UnitPrice
	case ColUnitCost:
		return r.UnitCost
	case ColStock:
		return r.StockQty
	case ColGPUnit:
		return r.GPUnit()
	case ColGPTotal:
		return r.GPTotal()
	case ColTotalSale:
		return r.TotalSale()
	}
	return decimal.NullDecimal{}
}

// WithText returns a copy of r with a string column replaced.
func (r Record) WithText(c Column, v string) Record {
	switch c {
	case ColOrderNumber:
		r.OrderNumber = v
	case ColCustomerPO:
		r.CustomerPO = v
	case ColItemNumber:
		r.ItemNumber = v
	case ColManufacturer:
		r.Manufacturer = v
	case ColShipASAP:
		r.ShipASAP = v
	case ColCustomerName:
		r.CustomerName = v
	case ColSalesperson:
		r.Salesperson = v
	case ColStock:
		r.Stock = v
	case ColDock:
		r.Dock = v
	case ColComments:
		r.Comments = v
	}
	return r
}

// FieldEqual compares one column of two records. Null equals null.
func FieldEqual(a, b Record, c Column) bool {
	switch c {
	case ColOrderDate, ColDueDate:
		return dateEqual(a.Date(c), b.Date(c))
	case ColUnitPrice, ColUnitCost:
		return decimalEqual(a.Decimal(c), b.Decimal(c))
	default:
		return a.Text(c) == b.Text(c)
	}
}

// EqualExcept reports whether a and b match on every record column except those in skip.
func EqualExcept(a, b Record, skip ...Column) bool {
	for _, c := range RecordColumns {
		if containsColumn(skip, c) {
			continue
		}
		if !FieldEqual(a, b, c) {
			return false
		}
	}
	return true
}

func containsColumn(cols []Column, c Column) bool {
	for _, x := range cols {
		if x == c {
			return true
		}
	}
	return false
}

func dateEqual(a, b *time.Time) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.Equal(*b)
}

func decimalEqual(a, b decimal.NullDecimal) bool {
	if !a.Valid || !b.Valid {
		return a.Valid == b.Valid
	}
	return a.Decimal.Equal(b.Decimal)
}
