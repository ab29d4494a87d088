package order

import (
	"fmt"
	"strings"
)

// SortKey selects the presentation order of a bucket.
type SortKey string

const (
	SortByOrderNumber SortKey = "order_no"
	SortBySalesperson SortKey = "slsman_nam"
	SortByDueDate     SortKey = "due_date"
	SortByDock        SortKey = "pcx_dock"
)

// DefaultSortKey is used when no key is configured.
const DefaultSortKey = SortByOrderNumber

var sortKeyAliases = map[string]SortKey{
	"order_no":     SortByOrderNumber,
	"order-number": SortByOrderNumber,
	"order":        SortByOrderNumber,
	"slsman_nam":   SortBySalesperson,
	"salesperson":  SortBySalesperson,
	"due_date":     SortByDueDate,
	"due-date":     SortByDueDate,
	"pcx_dock":     SortByDock,
	"dock":         SortByDock,
}

// ParseSortKey accepts the canonical names and their hyphenated aliases.
func ParseSortKey(s string) (SortKey, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return DefaultSortKey, nil
	}
	if k, ok := sortKeyAliases[s]; ok {
		return k, nil
	}
	return "", fmt.Errorf("unknown sort key %q (want order_no, slsman_nam, due_date or pcx_dock)", s)
}

// Column returns the record column the key sorts on.
func (k SortKey) Column() Column {
	switch k {
	case SortBySalesperson:
		return ColSalesperson
	case SortByDueDate:
		return ColDueDate
	case SortByDock:
		return ColDock
	default:
		return ColOrderNumber
	}
}
