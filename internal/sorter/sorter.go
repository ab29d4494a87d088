// Package sorter orders a bucket for presentation.
package sorter

import (
	"sort"
	"time"

	"backorder/adapters/coercer"
	"backorder/domain/order"
	"backorder/internal/diagnostics"

	"github.com/shopspring/decimal"
)

// Stage is the diagnostics stage name of the sorter.
const Stage = "Sorter"

const maxSamples = 5

// sortable is a record with its precomputed key.
type sortable struct {
	rec     order.Record
	present bool // numeric, dated or non-blank
	num     decimal.Decimal
	date    time.Time
	text    string
}

// Sort returns b reordered by key. The sort is stable: ties keep input
// order. Values that cannot be compared (non-numeric order numbers, null
// dates, blank text) go after all comparable ones, in input order.
//
// When the key's column is absent from b.Columns the bucket is returned
// unchanged and a warning is recorded.
func Sort(b order.Bucket, key order.SortKey, diag *diagnostics.Context) order.Bucket {
	col := key.Column()
	if !b.Columns.Has(col) {
		diag.Warn(Stage, "sort column not found, bucket left unsorted", diagnostics.Fields{
			"bucket": string(b.Name),
			"column": col.Header(),
		})
		return b
	}

	items := make([]sortable, len(b.Records))
	var invalid []string
	invalidCount := 0
	for i, r := range b.Records {
		items[i] = keyOf(r, key)
		if key == order.SortByOrderNumber && !items[i].present {
			invalidCount++
			if len(invalid) < maxSamples {
				invalid = append(invalid, r.OrderNumber)
			}
		}
	}
	if invalidCount > 0 {
		diag.Warn(Stage, "non-numeric order numbers sorted last", diagnostics.Fields{
			"bucket":  string(b.Name),
			"count":   invalidCount,
			"samples": invalid,
		})
	}

	sort.SliceStable(items, func(i, j int) bool {
		return less(items[i], items[j], key)
	})

	out := make([]order.Record, len(items))
	for i, it := range items {
		out[i] = it.rec
	}
	return b.WithRecords(out)
}

func keyOf(r order.Record, key order.SortKey) sortable {
	s := sortable{rec: r}
	switch key {
	case order.SortByOrderNumber:
		s.num, s.present = coercer.Number(r.OrderNumber)
	case order.SortByDueDate:
		if r.DueDate != nil {
			s.date, s.present = *r.DueDate, true
		}
	default:
		s.text = r.Text(key.Column())
		s.present = s.text != ""
	}
	return s
}

func less(a, b sortable, key order.SortKey) bool {
	if a.present != b.present {
		return a.present
	}
	if !a.present {
		return false
	}
	switch key {
	case order.SortByOrderNumber:
		return a.num.LessThan(b.num)
	case order.SortByDueDate:
		return a.date.Before(b.date)
	default:
		return a.text < b.text
	}
}
