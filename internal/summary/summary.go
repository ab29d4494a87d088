// Package summary computes the per-bucket figures printed after a run.
package summary

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"backorder/domain/core"
	"backorder/domain/order"

	"github.com/montanaflynn/stats"
	"github.com/shopspring/decimal"
)

// Aging describes how long lines have been open, in days since order date.
type Aging struct {
	Dated  int
	Median float64
	P90    float64
	Max    float64
}

// Bucket summarizes one bucket.
type Bucket struct {
	Name          order.BucketName
	Count         int
	TotalSale     decimal.Decimal
	GPTotal       decimal.Decimal
	Overdue       int
	Aging         Aging
	BySalesperson map[string]int
}

// Report is the summary of every bucket of a run.
type Report struct {
	Buckets []Bucket
}

// Summarize computes figures for each bucket as of today. Null operands
// are skipped in the money totals; undated lines are left out of Aging.
func Summarize(buckets []order.Bucket, today time.Time) (Report, error) {
	today = core.Today(today)
	r := Report{Buckets: make([]Bucket, 0, len(buckets))}
	for _, b := range buckets {
		s, err := summarizeBucket(b, today)
		if err != nil {
			return Report{}, fmt.Errorf("summary of %s: %w", b.Name, err)
		}
		r.Buckets = append(r.Buckets, s)
	}
	return r, nil
}

func summarizeBucket(b order.Bucket, today time.Time) (Bucket, error) {
	s := Bucket{
		Name:          b.Name,
		Count:         b.Len(),
		TotalSale:     decimal.Zero,
		GPTotal:       decimal.Zero,
		BySalesperson: make(map[string]int),
	}

	var ages []float64
	for _, r := range b.Records {
		if v := r.TotalSale(); v.Valid {
			s.TotalSale = s.TotalSale.Add(v.Decimal)
		}
		if v := r.GPTotal(); v.Valid {
			s.GPTotal = s.GPTotal.Add(v.Decimal)
		}
		if r.DueDate != nil && core.Today(*r.DueDate).Before(today) {
			s.Overdue++
		}
		if r.OrderDate != nil {
			ages = append(ages, today.Sub(core.Today(*r.OrderDate)).Hours()/24)
		}
		s.BySalesperson[r.Salesperson]++
	}

	if len(ages) == 0 {
		return s, nil
	}
	aging, err := ageStats(ages)
	if err != nil {
		return s, err
	}
	s.Aging = aging
	return s, nil
}

func ageStats(ages []float64) (Aging, error) {
	median, err := stats.Median(ages)
	if err != nil {
		return Aging{}, err
	}
	p90, err := stats.Percentile(ages, 90)
	if err != nil {
		return Aging{}, err
	}
	max, err := stats.Max(ages)
	if err != nil {
		return Aging{}, err
	}
	return Aging{Dated: len(ages), Median: median, P90: p90, Max: max}, nil
}

// Get returns the summary of the named bucket.
func (r Report) Get(name order.BucketName) (Bucket, bool) {
	for _, b := range r.Buckets {
		if b.Name == name {
			return b, true
		}
	}
	return Bucket{}, false
}

// Lines renders the report for console output.
func (r Report) Lines() []string {
	var lines []string
	for _, b := range r.Buckets {
		lines = append(lines, fmt.Sprintf("%s: %d lines, total sale $%s, GP total $%s, %d overdue",
			b.Name, b.Count, b.TotalSale.StringFixed(2), b.GPTotal.StringFixed(2), b.Overdue))
		if b.Aging.Dated > 0 {
			lines = append(lines, fmt.Sprintf("  age (days): median %.0f, p90 %.0f, max %.0f",
				b.Aging.Median, b.Aging.P90, b.Aging.Max))
		}
		if len(b.BySalesperson) > 0 {
			lines = append(lines, "  by salesperson: "+formatCounts(b.BySalesperson))
		}
	}
	return lines
}

func formatCounts(m map[string]int) string {
	names := make([]string, 0, len(m))
	for n := range m {
		names = append(names, n)
	}
	sort.Strings(names)
	parts := make([]string, len(names))
	for i, n := range names {
		label := n
		if label == "" {
			label = "(none)"
		}
		parts[i] = fmt.Sprintf("%s=%d", label, m[n])
	}
	return strings.Join(parts, ", ")
}
