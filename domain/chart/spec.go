// Package chart defines the declarative figure specification the pipeline
// emits. The types serialize to the JSON shape consumed by standard
// declarative bar-chart renderers (traces plus layout); the dashboard page
// hands the marshaled spec straight to its plotting library.
package chart

import (
	"encoding/json"
	"fmt"
)

// Spec is a complete renderable figure.
type Spec struct {
	Data   []Trace `json:"data"`
	Layout Layout  `json:"layout"`
}

// Trace is one bar series: a regimen's values within one facet panel.
type Trace struct {
	Type        string    `json:"type"`
	Name        string    `json:"name"`
	X           []float64 `json:"x"`
	Y           []string  `json:"y"`
	Orientation string    `json:"orientation,omitempty"`
	Marker      Marker    `json:"marker"`
	XAxis       string    `json:"xaxis,omitempty"`
	YAxis       string    `json:"yaxis,omitempty"`
	LegendGroup string    `json:"legendgroup,omitempty"`
	ShowLegend  *bool     `json:"showlegend,omitempty"`
}

// Marker styles a trace's bars.
type Marker struct {
	Color string     `json:"color,omitempty"`
	Line  MarkerLine `json:"line"`
}

// MarkerLine is the outline drawn around each bar segment.
type MarkerLine struct {
	Width float64 `json:"width"`
}

// Layout carries figure-level styling and geometry. Axes are keyed by their
// layout name ("xaxis", "yaxis2", ...) because the number of axis slots
// depends on the facet count.
type Layout struct {
	Title       Title        `json:"title"`
	BarMode     string       `json:"barmode,omitempty"`
	BarNorm     string       `json:"barnorm,omitempty"`
	Height      int          `json:"height,omitempty"`
	Margin      *Margin      `json:"margin,omitempty"`
	PaperBG     string       `json:"paper_bgcolor,omitempty"`
	PlotBG      string       `json:"plot_bgcolor,omitempty"`
	Font        *Font        `json:"font,omitempty"`
	ShowLegend  *bool        `json:"showlegend,omitempty"`
	Legend      *Legend      `json:"legend,omitempty"`
	Annotations []Annotation `json:"annotations,omitempty"`
	Axes        map[string]Axis
}

// MarshalJSON flattens Axes into the layout object so each axis appears
// under its own key, the shape renderers expect.
func (l Layout) MarshalJSON() ([]byte, error) {
	type plain Layout
	base, err := json.Marshal(plain(l))
	if err != nil {
		return nil, err
	}

	var merged map[string]json.RawMessage
	if err := json.Unmarshal(base, &merged); err != nil {
		return nil, err
	}
	delete(merged, "Axes")

	for name, axis := range l.Axes {
		raw, err := json.Marshal(axis)
		if err != nil {
			return nil, err
		}
		merged[name] = raw
	}
	return json.Marshal(merged)
}

// Title is the figure heading.
type Title struct {
	Text string `json:"text"`
	Font *Font  `json:"font,omitempty"`
}

// Margin is the space reserved around the plotting area, in pixels.
type Margin struct {
	L int `json:"l"`
	R int `json:"r"`
	T int `json:"t"`
	B int `json:"b"`
}

// Font styles text elements.
type Font struct {
	Color string `json:"color,omitempty"`
	Size  int    `json:"size,omitempty"`
}

// Legend positions and styles the series legend.
type Legend struct {
	Orientation string       `json:"orientation,omitempty"`
	YAnchor     string       `json:"yanchor,omitempty"`
	Y           float64      `json:"y"`
	XAnchor     string       `json:"xanchor,omitempty"`
	X           float64      `json:"x"`
	Title       *LegendTitle `json:"title,omitempty"`
	BGColor     string       `json:"bgcolor,omitempty"`
}

// LegendTitle is the legend heading.
type LegendTitle struct {
	Text string `json:"text"`
}

// Axis describes one axis slot. Domain carries the [start, end] fraction of
// the paper the axis occupies, which is how facet rows are stacked.
type Axis struct {
	Domain         []float64 `json:"domain,omitempty"`
	Range          []float64 `json:"range,omitempty"`
	Anchor         string    `json:"anchor,omitempty"`
	Matches        string    `json:"matches,omitempty"`
	TickSuffix     string    `json:"ticksuffix,omitempty"`
	CategoryOrder  string    `json:"categoryorder,omitempty"`
	CategoryArray  []string  `json:"categoryarray,omitempty"`
	ShowTickLabels *bool     `json:"showticklabels,omitempty"`
	AutoMargin     bool      `json:"automargin,omitempty"`
	Color          string    `json:"color,omitempty"`
}

// Annotation is free-standing text, used for facet panel labels.
type Annotation struct {
	Text      string  `json:"text"`
	XRef      string  `json:"xref"`
	YRef      string  `json:"yref"`
	X         float64 `json:"x"`
	Y         float64 `json:"y"`
	XAnchor   string  `json:"xanchor,omitempty"`
	YAnchor   string  `json:"yanchor,omitempty"`
	TextAngle int     `json:"textangle"`
	ShowArrow bool    `json:"showarrow"`
	Font      *Font   `json:"font,omitempty"`
}

// Theme is the fixed visual dressing applied to every figure.
type Theme struct {
	PaperBG   string
	PlotBG    string
	FontColor string
}

// XAxisName returns the layout key for the i-th (1-based) x axis slot.
func XAxisName(i int) string {
	if i <= 1 {
		return "xaxis"
	}
	return fmt.Sprintf("xaxis%d", i)
}

// YAxisName returns the layout key for the i-th (1-based) y axis slot.
func YAxisName(i int) string {
	if i <= 1 {
		return "yaxis"
	}
	return fmt.Sprintf("yaxis%d", i)
}

// XAxisRef returns the trace-side reference for the i-th x axis slot.
func XAxisRef(i int) string {
	if i <= 1 {
		return "x"
	}
	return fmt.Sprintf("x%d", i)
}

// YAxisRef returns the trace-side reference for the i-th y axis slot.
func YAxisRef(i int) string {
	if i <= 1 {
		return "y"
	}
	return fmt.Sprintf("y%d", i)
}

// Placeholder builds a figure that carries only an explanatory title, used
// whenever there is nothing valid to draw. It is a real, renderable spec so
// the page never has to special-case the empty state.
func Placeholder(message string, theme Theme) Spec {
	return Spec{
		Data: []Trace{},
		Layout: Layout{
			Title:   Title{Text: message, Font: &Font{Color: theme.FontColor}},
			PaperBG: theme.PaperBG,
			PlotBG:  theme.PlotBG,
			Font:    &Font{Color: theme.FontColor},
		},
	}
}
