package cohort

// LongRow is one melted observation: a single cohort's value for a single
// regimen's metric column, with display labels attached.
type LongRow struct {
	Cancer    string  `json:"cancer"`
	Line      string  `json:"line"`
	Regimen   string  `json:"regimen"`
	LineLabel string  `json:"line_label"`
	Value     float64 `json:"value"`
}

// LongTable is the melt output. ValueColumn carries the metric suffix the
// values were read from, so callers can tell a structurally valid empty
// result apart from a malformed one.
type LongTable struct {
	ValueColumn string    `json:"value_column"`
	Rows        []LongRow `json:"rows"`
}

// ColumnNames returns the logical column set of the long table. An empty
// result still names its identity and value columns; the line label column
// only exists once rows do, since it is derived during the melt.
func (t LongTable) ColumnNames() []string {
	names := []string{ColumnCancer, ColumnLine, "regimen", t.ValueColumn}
	if len(t.Rows) > 0 {
		names = append(names, "line_label")
	}
	return names
}

// IsEmpty reports whether the melt produced no usable observations.
func (t LongTable) IsEmpty() bool {
	return len(t.Rows) == 0
}

// Regimens returns the distinct regimen labels present, in first-seen order.
func (t LongTable) Regimens() []string {
	seen := make(map[string]bool)
	var out []string
	for _, r := range t.Rows {
		if !seen[r.Regimen] {
			seen[r.Regimen] = true
			out = append(out, r.Regimen)
		}
	}
	return out
}

// Values returns the metric values for one regimen label.
func (t LongTable) Values(regimen string) []float64 {
	var out []float64
	for _, r := range t.Rows {
		if r.Regimen == regimen {
			out = append(out, r.Value)
		}
	}
	return out
}
