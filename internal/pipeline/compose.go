package pipeline

import (
	"math"
	"sort"
	"unicode/utf8"

	"oncoviz/domain/chart"
	"oncoviz/domain/cohort"
	"oncoviz/internal/config"
)

// Figure geometry. Margins grow with label length and height grows with
// facet count so labels never truncate as the selection widens.
const (
	minLeftMargin  = 90
	perCharLeft    = 7.5
	minRightMargin = 120
	perCharRight   = 9.0
	topMargin      = 130
	bottomMargin   = 140
	minHeight      = 550
	baseHeight     = 320
	perFacetHeight = 160
	facetGap       = 0.03
)

// NoDataMessage is the placeholder title shown when nothing can be drawn.
const NoDataMessage = "No data for the current selection"

// Compose builds the figure spec for the melted data. Bars are horizontal,
// stacked, and normalized to percent: the metric is a proportion and the
// comparison of interest is share, not magnitude.
//
// view decides the arrangement: by_line groups bars by treatment line with
// one facet panel per cancer type; by_cancer groups by cancer type with one
// panel per treatment line. The line-label axis keeps a fixed category order
// regardless of data order so re-renders never shuffle the bars.
//
// Empty input yields a placeholder spec carrying only an explanatory title,
// never a broken chart.
func Compose(long cohort.LongTable, view cohort.View, display *config.DisplayConfig, title string) chart.Spec {
	theme := display.Theme()
	if long.IsEmpty() {
		return chart.Placeholder(NoDataMessage, theme)
	}

	var yOf, facetOf func(cohort.LongRow) string
	var categories []string
	switch view {
	case cohort.ViewByCancer:
		yOf = func(r cohort.LongRow) string { return r.Cancer }
		facetOf = func(r cohort.LongRow) string { return r.LineLabel }
		categories = distinctSorted(long, yOf)
	default:
		yOf = func(r cohort.LongRow) string { return r.LineLabel }
		facetOf = func(r cohort.LongRow) string { return r.Cancer }
		categories = display.OrderedLineLabels()
	}

	facets := facetOrder(long, view, facetOf, display)
	regimens := orderedRegimens(long, display)
	colors := display.ColorMap()

	spec := chart.Spec{
		Layout: chart.Layout{
			Title:   chart.Title{Text: title, Font: &chart.Font{Color: theme.FontColor}},
			BarMode: "stack",
			BarNorm: "percent",
			PaperBG: theme.PaperBG,
			PlotBG:  theme.PlotBG,
			Font:    &chart.Font{Color: theme.FontColor},
			Legend: &chart.Legend{
				Orientation: "h",
				YAnchor:     "top",
				Y:           -0.22,
				XAnchor:     "center",
				X:           0.5,
				Title:       &chart.LegendTitle{Text: "Regimen"},
				BGColor:     "rgba(0,0,0,0)",
			},
			Axes: make(map[string]chart.Axis),
		},
	}

	n := len(facets)
	rowFrac := (1.0 - facetGap*float64(n-1)) / float64(n)
	legendSeen := make(map[string]bool)

	for i, facet := range facets {
		slot := i + 1
		top := 1.0 - float64(i)*(rowFrac+facetGap)
		bottom := top - rowFrac
		if bottom < 0 {
			bottom = 0
		}
		xref := chart.XAxisRef(slot)
		yref := chart.YAxisRef(slot)

		for _, regimen := range regimens {
			var xs []float64
			var ys []string
			for _, row := range long.Rows {
				if facetOf(row) != facet || row.Regimen != regimen {
					continue
				}
				xs = append(xs, row.Value)
				ys = append(ys, yOf(row))
			}
			if len(xs) == 0 {
				continue
			}

			show := !legendSeen[regimen]
			legendSeen[regimen] = true
			spec.Data = append(spec.Data, chart.Trace{
				Type:        "bar",
				Name:        regimen,
				X:           xs,
				Y:           ys,
				Orientation: "h",
				Marker:      chart.Marker{Color: colors[regimen], Line: chart.MarkerLine{Width: 0}},
				XAxis:       xref,
				YAxis:       yref,
				LegendGroup: regimen,
				ShowLegend:  &show,
			})
		}

		showTicks := i == n-1
		xAxis := chart.Axis{
			Anchor:         yref,
			Range:          []float64{0, 100},
			TickSuffix:     "%",
			Color:          theme.FontColor,
			ShowTickLabels: &showTicks,
		}
		if slot > 1 {
			xAxis.Matches = "x"
		}
		spec.Layout.Axes[chart.XAxisName(slot)] = xAxis
		spec.Layout.Axes[chart.YAxisName(slot)] = chart.Axis{
			Domain:        []float64{bottom, top},
			Anchor:        xref,
			CategoryOrder: "array",
			CategoryArray: categories,
			AutoMargin:    true,
			Color:         theme.FontColor,
		}

		// Facet label sits at the right edge of the plotting area, kept
		// horizontal so it stays readable however many panels are stacked.
		spec.Layout.Annotations = append(spec.Layout.Annotations, chart.Annotation{
			Text:      facet,
			XRef:      "paper",
			YRef:      "paper",
			X:         1.0,
			Y:         (bottom + top) / 2,
			XAnchor:   "left",
			YAnchor:   "middle",
			TextAngle: 0,
			ShowArrow: false,
			Font:      &chart.Font{Color: theme.FontColor},
		})
	}

	leftLen := longestLabel(long, yOf)
	rightLen := 0
	for _, f := range facets {
		if l := utf8.RuneCountInString(f); l > rightLen {
			rightLen = l
		}
	}

	spec.Layout.Margin = &chart.Margin{
		L: marginFor(minLeftMargin, perCharLeft, leftLen),
		R: marginFor(minRightMargin, perCharRight, rightLen),
		T: topMargin,
		B: bottomMargin,
	}
	spec.Layout.Height = chartHeight(n)

	return spec
}

func chartHeight(facetCount int) int {
	h := baseHeight + perFacetHeight*facetCount
	if h < minHeight {
		return minHeight
	}
	return h
}

func marginFor(minimum int, perChar float64, labelLen int) int {
	m := int(math.Ceil(perChar * float64(labelLen)))
	if m < minimum {
		return minimum
	}
	return m
}

func longestLabel(long cohort.LongTable, labelOf func(cohort.LongRow) string) int {
	longest := 0
	for _, row := range long.Rows {
		if l := utf8.RuneCountInString(labelOf(row)); l > longest {
			longest = l
		}
	}
	return longest
}

func distinctSorted(long cohort.LongTable, of func(cohort.LongRow) string) []string {
	seen := make(map[string]bool)
	for _, row := range long.Rows {
		seen[of(row)] = true
	}
	out := make([]string, 0, len(seen))
	for v := range seen {
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}

// facetOrder fixes the top-to-bottom panel order: cancers sort ascending,
// line labels follow the configured line order with any stragglers sorted
// after. Deterministic ordering is what makes the full pipeline idempotent.
func facetOrder(long cohort.LongTable, view cohort.View, facetOf func(cohort.LongRow) string, display *config.DisplayConfig) []string {
	present := make(map[string]bool)
	for _, row := range long.Rows {
		present[facetOf(row)] = true
	}

	if view != cohort.ViewByCancer {
		return sortedKeys(present)
	}

	var out []string
	taken := make(map[string]bool)
	for _, label := range display.OrderedLineLabels() {
		if present[label] {
			out = append(out, label)
			taken[label] = true
		}
	}
	for _, label := range sortedKeys(present) {
		if !taken[label] {
			out = append(out, label)
		}
	}
	return out
}

// orderedRegimens fixes the stacking and legend order to the configured
// prefix order, so the same regimen always occupies the same segment
// position across selections.
func orderedRegimens(long cohort.LongTable, display *config.DisplayConfig) []string {
	present := make(map[string]bool)
	for _, row := range long.Rows {
		present[row.Regimen] = true
	}

	var out []string
	taken := make(map[string]bool)
	for _, prefix := range display.SortedPrefixes() {
		if label, ok := display.RegimenLabel(prefix); ok && present[label] && !taken[label] {
			out = append(out, label)
			taken[label] = true
		}
	}
	for _, label := range long.Regimens() {
		if !taken[label] {
			out = append(out, label)
			taken[label] = true
		}
	}
	return out
}

func sortedKeys(set map[string]bool) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
