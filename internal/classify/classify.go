// Package classify splits order lines into the military and commercial
// buckets.
package classify

import (
	"strings"

	"backorder/domain/order"
	"backorder/internal/diagnostics"
)

// Stage is the diagnostics stage name of the classifier.
const Stage = "Classifier"

// Rule decides military membership: the salesperson must match exactly
// (ignoring case) and the customer name must contain one of the keywords.
type Rule struct {
	Salesperson string
	Keywords    []string
}

// Classifier partitions records by Rule.
type Classifier struct {
	salesperson string
	keywords    []string
}

// New normalizes rule into a classifier.
func New(rule Rule) *Classifier {
	kw := make([]string, 0, len(rule.Keywords))
	for _, k := range rule.Keywords {
		if k = strings.ToLower(strings.TrimSpace(k)); k != "" {
			kw = append(kw, k)
		}
	}
	return &Classifier{
		salesperson: strings.ToUpper(strings.TrimSpace(rule.Salesperson)),
		keywords:    kw,
	}
}

// IsMilitary reports whether r belongs in the military bucket. A blank
// customer name never matches.
func (c *Classifier) IsMilitary(r order.Record) bool {
	if strings.ToUpper(strings.TrimSpace(r.Salesperson)) != c.salesperson {
		return false
	}
	customer := strings.ToLower(r.CustomerName)
	if customer == "" {
		return false
	}
	for _, k := range c.keywords {
		if strings.Contains(customer, k) {
			return true
		}
	}
	return false
}

// Split returns the military and commercial buckets. Every record lands
// in exactly one, in input order; both share cols.
func (c *Classifier) Split(records []order.Record, cols order.ColumnSet, diag *diagnostics.Context) (military, commercial order.Bucket) {
	var mil, com []order.Record
	for _, r := range records {
		if c.IsMilitary(r) {
			mil = append(mil, r)
		} else {
			com = append(com, r)
		}
	}

	diag.Info(Stage, "records classified", diagnostics.Fields{"military": len(mil), "commercial": len(com)})

	return order.NewBucket(order.Military, mil, cols), order.NewBucket(order.Commercial, com, cols)
}
