// Package pipeline turns a (table, selection) pair into a renderable figure
// spec. Every function here is pure: the source table is never mutated, all
// configuration arrives as an immutable object, and identical inputs always
// produce identical output, so concurrent recomputations need no locking.
package pipeline

import (
	"sort"
	"strings"

	"oncoviz/domain/cohort"
)

// ResolveSuffix maps a (base metric, follow-up year) choice to the literal
// column suffix carrying that data. ORR has no time dimension and resolves to
// itself regardless of year. Survival metrics append the month count for the
// chosen year. An empty return means "no such column can exist" and is the
// only failure signal; the function never errors.
func ResolveSuffix(baseMetric, year string, yearToMonths map[string]string) string {
	metric := strings.ToUpper(strings.TrimSpace(baseMetric))
	if metric == "" {
		return ""
	}
	if metric == "ORR" {
		return "ORR"
	}
	if metric == "PFS" || metric == "OVS" {
		months := yearToMonths[year]
		if months == "" {
			return ""
		}
		return metric + months
	}
	return ""
}

// AvailablePrefixes scans the table's column names and returns the sorted set
// of regimen prefixes that carry the given suffix. The prefix alphabet is not
// fixed: whatever leading substring appears in the data qualifies, so new
// regimens surface through the data alone.
func AvailablePrefixes(table cohort.Table, suffix string) []string {
	if suffix == "" {
		return nil
	}

	seen := make(map[string]bool)
	for _, col := range table.Columns {
		if strings.HasSuffix(col, suffix) && len(col) > len(suffix) {
			seen[col[:len(col)-len(suffix)]] = true
		}
	}

	prefixes := make([]string, 0, len(seen))
	for p := range seen {
		prefixes = append(prefixes, p)
	}
	sort.Strings(prefixes)
	return prefixes
}
