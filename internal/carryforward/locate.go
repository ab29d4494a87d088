package carryforward

import (
	"sort"
	"strings"
	"time"

	"backorder/domain/core"
	"backorder/ports"
)

// LocatePrior picks the most recent prior report from names. For each day
// 1..lookback before today it collects names containing that day's MMDDYY
// stamp and ending in .xlsx; the first day with candidates wins, and among
// them the lexicographically last name. Excel lock files (~$...) are
// ignored.
func LocatePrior(names []string, today time.Time, lookback int) (string, bool) {
	for delta := 1; delta <= lookback; delta++ {
		stamp := core.DateStamp(core.DaysBefore(today, delta))

		var candidates []string
		for _, name := range names {
			if isReportName(name) && strings.Contains(name, stamp) {
				candidates = append(candidates, name)
			}
		}
		if len(candidates) > 0 {
			sort.Strings(candidates)
			return candidates[len(candidates)-1], true
		}
	}
	return "", false
}

func isReportName(name string) bool {
	return strings.HasSuffix(strings.ToLower(name), ".xlsx") && !strings.HasPrefix(name, "~$")
}

// FindPrior lists dir and applies LocatePrior. A missing directory is a
// miss, not an error.
func FindPrior(lister ports.HistoryLister, dir string, today time.Time, lookback int) (string, bool, error) {
	names, err := lister.ListReports(dir)
	if err != nil {
		return "", false, err
	}
	name, ok := LocatePrior(names, today, lookback)
	return name, ok, nil
}
