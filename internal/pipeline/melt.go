package pipeline

import (
	"math"
	"strconv"
	"strings"

	"oncoviz/domain/cohort"
	"oncoviz/internal/config"
)

// Melt reshapes the wide table into long form: one output row per
// (cohort row, regimen column) pair for the resolved metric suffix.
//
// Prefixes with no matching column are silently skipped. Cell values are
// coerced to numbers and rows whose value fails coercion are dropped:
// malformed or missing cells must never render as zero, which would read as
// a measured 0% response. Rows whose prefix has no configured regimen label
// are dropped too; an unlabeled series cannot be told apart in the legend.
//
// With zero matching columns the result is empty but still structurally
// valid: it names its columns, so callers can distinguish "nothing matched"
// from a malformed result.
func Melt(table cohort.Table, suffix string, prefixes []string, display *config.DisplayConfig) cohort.LongTable {
	long := cohort.LongTable{ValueColumn: suffix}

	for _, prefix := range prefixes {
		column := prefix + suffix
		if !table.HasColumn(column) {
			continue
		}

		label, known := display.RegimenLabel(prefix)
		if !known {
			continue
		}

		for _, row := range table.Rows {
			value, ok := coerceNumeric(row[column])
			if !ok {
				continue
			}
			line := row[cohort.ColumnLine]
			long.Rows = append(long.Rows, cohort.LongRow{
				Cancer:    row[cohort.ColumnCancer],
				Line:      line,
				Regimen:   label,
				LineLabel: display.LineLabel(line),
				Value:     value,
			})
		}
	}

	return long
}

// coerceNumeric parses a cell into a float. Empty cells, non-numeric text
// and NaN spellings all fail coercion.
func coerceNumeric(raw string) (float64, bool) {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || math.IsNaN(v) {
		return 0, false
	}
	return v, true
}
