// Package dedup removes order lines entered twice under two salespeople.
package dedup

import (
	"backorder/domain/order"
	"backorder/internal/diagnostics"
)

// Stage is the diagnostics stage name of the deduplicator.
const Stage = "Dedup"

// Pair names the salesperson whose lines are kept (Primary) and the one
// whose identical lines are dropped (Secondary). Names match exactly.
type Pair struct {
	Primary   string
	Secondary string
}

// Deduplicator removes secondary lines that duplicate a primary line.
type Deduplicator struct {
	pair Pair
}

// New creates a deduplicator for pair.
func New(pair Pair) *Deduplicator {
	return &Deduplicator{pair: pair}
}

// IsDuplicate reports whether secondary matches primary on every column
// except salesperson.
func IsDuplicate(primary, secondary order.Record) bool {
	return order.EqualExcept(primary, secondary, order.ColSalesperson)
}

// Apply returns b without the secondary lines that have a matching primary
// line. Only the commercial bucket is ever changed.
func (d *Deduplicator) Apply(b order.Bucket, diag *diagnostics.Context) order.Bucket {
	if b.Name != order.Commercial {
		return b
	}

	var primary []order.Record
	secondaryCount := 0
	for _, r := range b.Records {
		switch r.Salesperson {
		case d.pair.Primary:
			primary = append(primary, r)
		case d.pair.Secondary:
			secondaryCount++
		}
	}
	if len(primary) == 0 || secondaryCount == 0 {
		return b
	}

	kept := make([]order.Record, 0, len(b.Records))
	removed := 0
	for _, r := range b.Records {
		if r.Salesperson == d.pair.Secondary && hasMatch(primary, r) {
			removed++
			continue
		}
		kept = append(kept, r)
	}

	diag.Info(Stage, "duplicates removed", diagnostics.Fields{
		"removed":   removed,
		"primary":   len(primary),
		"secondary": secondaryCount,
	})
	return b.WithRecords(kept)
}

// first match wins
func hasMatch(primary []order.Record, r order.Record) bool {
	for _, p := range primary {
		if IsDuplicate(p, r) {
			return true
		}
	}
	return false
}
