package app

import (
	"sort"
	"strings"

	"oncoviz/domain/cohort"
)

// Option is one selectable entry: the raw value the pipeline consumes and
// the label the shell displays.
type Option struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// OptionsResult carries every selection vocabulary the shell needs to build
// its controls. Cancers and lines come from the data; regimens are the
// configured prefixes that actually occur in the columns; metrics and years
// come from config.
type OptionsResult struct {
	Title    string   `json:"title"`
	Cancers  []Option `json:"cancers"`
	Lines    []Option `json:"lines"`
	Regimens []Option `json:"regimens"`
	Metrics  []Option `json:"metrics"`
	Years    []Option `json:"years"`
	Views    []Option `json:"views"`
	Suffixes []string `json:"suffixes"`
}

var metricLabels = map[string]string{
	"ORR": "Overall response rate",
	"PFS": "Progression-free survival",
	"OVS": "Overall survival",
}

// Options discovers the selection vocabularies for the loaded snapshot.
func (s *ChartService) Options() OptionsResult {
	out := OptionsResult{Title: s.display.Title}

	for _, c := range s.table.DistinctValues(cohort.ColumnCancer) {
		out.Cancers = append(out.Cancers, Option{Value: c, Label: c})
	}

	for _, line := range orderedLineValues(s.table.DistinctValues(cohort.ColumnLine)) {
		out.Lines = append(out.Lines, Option{Value: line, Label: s.display.LineLabel(line)})
	}

	for _, prefix := range s.display.SortedPrefixes() {
		if !s.prefixHasColumns(prefix) {
			continue
		}
		label, _ := s.display.RegimenLabel(prefix)
		out.Regimens = append(out.Regimens, Option{Value: prefix, Label: label})
	}

	for _, metric := range s.display.BaseMetrics {
		label := metricLabels[metric]
		if label == "" {
			label = metric
		}
		out.Metrics = append(out.Metrics, Option{Value: metric, Label: label})
	}

	for _, year := range s.display.SortedYears() {
		out.Years = append(out.Years, Option{Value: year, Label: "Year " + year})
	}

	out.Views = []Option{
		{Value: string(cohort.ViewByLine), Label: "Compare treatment lines"},
		{Value: string(cohort.ViewByCancer), Label: "Compare cancer types"},
	}

	out.Suffixes = s.AvailableSuffixes()
	return out
}

// AvailableSuffixes lists the metric suffixes present in the snapshot,
// ordered by the configured preference with any extras sorted after.
func (s *ChartService) AvailableSuffixes() []string {
	present := make(map[string]bool)
	for _, col := range s.table.Columns {
		if cohort.IsDimension(col) {
			continue
		}
		if _, suffix, ok := cohort.SplitColumn(col); ok {
			present[suffix] = true
		}
	}

	var out []string
	taken := make(map[string]bool)
	for _, suffix := range s.display.MetricOrder {
		if present[suffix] && !taken[suffix] {
			out = append(out, suffix)
			taken[suffix] = true
		}
	}

	var rest []string
	for suffix := range present {
		if !taken[suffix] {
			rest = append(rest, suffix)
		}
	}
	sort.Strings(rest)
	return append(out, rest...)
}

// prefixHasColumns reports whether at least one metric column uses the prefix.
func (s *ChartService) prefixHasColumns(prefix string) bool {
	for _, col := range s.table.Columns {
		if cohort.IsDimension(col) {
			continue
		}
		if strings.HasPrefix(col, prefix) && len(col) > len(prefix) {
			return true
		}
	}
	return false
}

// orderedLineValues pins "1" first, matching the fixed axis order.
func orderedLineValues(values []string) []string {
	out := make([]string, len(values))
	copy(out, values)
	sort.Slice(out, func(i, j int) bool {
		if (out[i] == "1") != (out[j] == "1") {
			return out[i] == "1"
		}
		return out[i] < out[j]
	})
	return out
}
