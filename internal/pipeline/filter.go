package pipeline

import (
	"oncoviz/domain/cohort"
)

// FilterRows narrows the table to rows matching the selected cancer types and
// treatment lines. An empty selection on either dimension means no filter on
// that dimension, not "exclude everything": absence of a choice is "all".
// The result is always an independent copy, so callers can hand it onward
// while the shared source table keeps serving other recomputations.
func FilterRows(table cohort.Table, cancers, lines []string) cohort.Table {
	cancerSet := toSet(cancers)
	lineSet := toSet(lines)

	columns := make([]string, len(table.Columns))
	copy(columns, table.Columns)

	rows := make([]cohort.Row, 0, len(table.Rows))
	for _, row := range table.Rows {
		if len(cancerSet) > 0 && !cancerSet[row[cohort.ColumnCancer]] {
			continue
		}
		if len(lineSet) > 0 && !lineSet[row[cohort.ColumnLine]] {
			continue
		}
		rows = append(rows, row.Clone())
	}

	return cohort.NewTable(columns, rows)
}

func toSet(values []string) map[string]bool {
	if len(values) == 0 {
		return nil
	}
	set := make(map[string]bool, len(values))
	for _, v := range values {
		set[v] = true
	}
	return set
}
