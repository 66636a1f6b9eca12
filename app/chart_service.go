package app

import (
	"fmt"
	"log"
	"strings"
	"time"

	"oncoviz/domain/chart"
	"oncoviz/domain/cohort"
	"oncoviz/internal/config"
	"oncoviz/internal/pipeline"
)

// IncompleteMessage is the placeholder title shown while required fields are unset.
const IncompleteMessage = "Choose cancer types, treatment lines, a metric and a follow-up year to display results"

// ChartService runs the full recompute pipeline against the shared source
// table. The table and display config are read-only after construction, so
// one service instance safely serves concurrent requests.
type ChartService struct {
	table   cohort.Table
	display *config.DisplayConfig
}

// NewChartService creates a chart service over a loaded snapshot.
func NewChartService(table cohort.Table, display *config.DisplayConfig) *ChartService {
	return &ChartService{table: table, display: display}
}

// Display exposes the immutable display vocabulary.
func (s *ChartService) Display() *config.DisplayConfig {
	return s.display
}

// Table exposes the shared source table.
func (s *ChartService) Table() cohort.Table {
	return s.table
}

// Recompute is one full pipeline pass: selection in, classified result out.
type Recompute struct {
	Suffix  string           `json:"suffix"`
	State   pipeline.State   `json:"state"`
	Missing []string         `json:"missing,omitempty"`
	Long    cohort.LongTable `json:"-"`
}

// FigureResult is what the dashboard shell renders: a state, the fields
// still missing when incomplete, and a spec that is always drawable.
type FigureResult struct {
	State   pipeline.State `json:"state"`
	Missing []string       `json:"missing,omitempty"`
	Spec    chart.Spec     `json:"spec"`
}

// Run executes resolver, filter and melt for a selection and classifies the
// outcome. It never errors: every degenerate input maps to a display state.
func (s *ChartService) Run(sel cohort.Selection) Recompute {
	start := time.Now()

	if missing := sel.MissingFields(); len(missing) > 0 {
		return Recompute{State: pipeline.StateIncomplete, Missing: missing}
	}

	suffix := pipeline.ResolveSuffix(sel.Metric, sel.Year, s.display.Years)
	if suffix == "" {
		return Recompute{State: pipeline.StateNoData}
	}

	prefixes := pipeline.AvailablePrefixes(s.table, suffix)
	if len(sel.Regimens) > 0 {
		prefixes = intersect(prefixes, sel.Regimens)
	}

	filtered := pipeline.FilterRows(s.table, sel.Cancers, sel.Lines)
	long := pipeline.Melt(filtered, suffix, prefixes, s.display)
	state := pipeline.EvaluateState(sel, suffix, long)

	log.Printf("[ChartService] Recompute done in %.2fms (state=%s, suffix=%s, rows=%d)",
		float64(time.Since(start).Nanoseconds())/1e6, state, suffix, len(long.Rows))

	return Recompute{Suffix: suffix, State: state, Long: long}
}

// BuildFigure runs the pipeline and composes the figure spec for the result.
func (s *ChartService) BuildFigure(sel cohort.Selection) FigureResult {
	rc := s.Run(sel)
	theme := s.display.Theme()

	switch rc.State {
	case pipeline.StateIncomplete:
		return FigureResult{
			State:   rc.State,
			Missing: rc.Missing,
			Spec:    chart.Placeholder(IncompleteMessage, theme),
		}
	case pipeline.StateNoData:
		return FigureResult{State: rc.State, Spec: chart.Placeholder(pipeline.NoDataMessage, theme)}
	}

	title := figureTitle(rc.Suffix, sel.Metric, sel.Year)
	return FigureResult{
		State: rc.State,
		Spec:  pipeline.Compose(rc.Long, sel.View, s.display, title),
	}
}

// figureTitle names the resolved metric. ORR carries no time dimension, so
// it reads "Overall" instead of a year.
func figureTitle(suffix, metric, year string) string {
	if strings.EqualFold(strings.TrimSpace(metric), "ORR") {
		return fmt.Sprintf("%s (Overall)", suffix)
	}
	return fmt.Sprintf("%s (Year %s)", strings.ToUpper(strings.TrimSpace(metric)), year)
}

func intersect(prefixes, chosen []string) []string {
	chosenSet := make(map[string]bool, len(chosen))
	for _, c := range chosen {
		chosenSet[c] = true
	}
	out := make([]string, 0, len(prefixes))
	for _, p := range prefixes {
		if chosenSet[p] {
			out = append(out, p)
		}
	}
	return out
}
