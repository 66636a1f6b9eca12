package cohort

import (
	"fmt"

	"oncoviz/domain/core"
)

// Dimension columns every snapshot must carry. Everything else is expected
// to be a metric column following the grammar below.
const (
	ColumnCancer = "cancer"
	ColumnLine   = "line"
)

// Metric column names follow a fixed grammar: a one-character regimen prefix
// followed by a metric suffix, e.g. "1ORR" or "2PFS12". The prefix identifies
// which regimen the column measures; the suffix names the metric. The grammar
// is validated once at load time so the pipeline can slice names without
// re-checking them on every recompute.

// SplitColumn splits a metric column name into its regimen prefix and metric
// suffix. ok is false for names too short to carry both parts.
func SplitColumn(name string) (prefix, suffix string, ok bool) {
	runes := []rune(name)
	if len(runes) < 2 {
		return "", "", false
	}
	return string(runes[:1]), string(runes[1:]), true
}

// IsDimension reports whether the column is one of the fixed dimension columns.
func IsDimension(name string) bool {
	return name == ColumnCancer || name == ColumnLine
}

// GrammarReport is the outcome of validating a snapshot's column names.
type GrammarReport struct {
	MetricColumns []string
	Warnings      []string
}

// ValidateColumns checks a loaded table against the column grammar. Missing
// dimension columns are fatal. Metric columns that cannot carry a prefix and
// suffix, and duplicated names, are reported as warnings and excluded from
// MetricColumns; the rest of the pipeline never sees them.
func ValidateColumns(t Table) (GrammarReport, error) {
	var report GrammarReport

	if !t.HasColumn(ColumnCancer) {
		return report, core.NewMissingDimensionError(ColumnCancer)
	}
	if !t.HasColumn(ColumnLine) {
		return report, core.NewMissingDimensionError(ColumnLine)
	}

	seen := make(map[string]bool)
	for _, name := range t.Columns {
		if IsDimension(name) {
			continue
		}
		if seen[name] {
			report.Warnings = append(report.Warnings, fmt.Sprintf("duplicate column %q ignored", name))
			continue
		}
		seen[name] = true

		if _, _, ok := SplitColumn(name); !ok {
			report.Warnings = append(report.Warnings,
				fmt.Sprintf("column %q too short for prefix+suffix grammar, ignored", name))
			continue
		}
		report.MetricColumns = append(report.MetricColumns, name)
	}

	return report, nil
}
