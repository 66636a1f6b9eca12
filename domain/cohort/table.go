// Package cohort holds the wide outcomes table and the long form it melts
// into. One row describes one patient cohort: its cancer type, its treatment
// line, and one column per regimen-metric combination.
package cohort

import (
	"sort"

	"oncoviz/domain/core"
)

// Row is a single cohort keyed by column name. Cells stay strings until the
// melt step coerces metric values to numbers.
type Row map[string]string

// Table is the in-memory source table. It is loaded once at startup and
// never mutated afterwards; every pipeline step that narrows it works on an
// independent copy, so concurrent recomputations can share one Table.
type Table struct {
	Columns []string
	Rows    []Row
}

// NewTable builds a table from headers and rows.
func NewTable(columns []string, rows []Row) Table {
	return Table{Columns: columns, Rows: rows}
}

// Clone returns a deep copy. The copy shares nothing with the receiver.
func (t Table) Clone() Table {
	columns := make([]string, len(t.Columns))
	copy(columns, t.Columns)

	rows := make([]Row, len(t.Rows))
	for i, row := range t.Rows {
		rows[i] = row.Clone()
	}
	return Table{Columns: columns, Rows: rows}
}

// Clone returns an independent copy of the row.
func (r Row) Clone() Row {
	out := make(Row, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// HasColumn reports whether the table carries the named column.
func (t Table) HasColumn(name string) bool {
	for _, c := range t.Columns {
		if c == name {
			return true
		}
	}
	return false
}

// DistinctValues returns the sorted set of non-empty values in a column.
func (t Table) DistinctValues(column string) []string {
	seen := make(map[string]bool)
	for _, row := range t.Rows {
		if v := row[column]; v != "" {
			seen[v] = true
		}
	}

	values := make([]string, 0, len(seen))
	for v := range seen {
		values = append(values, v)
	}
	sort.Strings(values)
	return values
}

// IsEmpty reports whether the table has no data rows.
func (t Table) IsEmpty() bool {
	return len(t.Rows) == 0
}

// Fingerprint computes the content hash identifying this snapshot.
func (t Table) Fingerprint() core.SnapshotHash {
	rows := make([]map[string]string, len(t.Rows))
	for i, r := range t.Rows {
		rows[i] = r
	}
	return core.ComputeSnapshotHash(t.Columns, rows)
}
