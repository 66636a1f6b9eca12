package ui

import (
	"net/url"
	"strings"

	"oncoviz/app"
	"oncoviz/domain/chart"
	"oncoviz/domain/cohort"
	"oncoviz/internal/pipeline"
)

// Notice is the advisory overlay state bundled with every chart response.
type Notice struct {
	Visible bool   `json:"visible"`
	Message string `json:"message,omitempty"`
}

// ChartPayload is the /api/chart response body: the figure plus the overlay
// the shell should or should not show over it.
type ChartPayload struct {
	State   pipeline.State `json:"state"`
	Missing []string       `json:"missing,omitempty"`
	Figure  chart.Spec     `json:"figure"`
	Notice  Notice         `json:"notice"`
}

// HealthPayload reports what the server is serving from.
type HealthPayload struct {
	Status      string `json:"status"`
	Rows        int    `json:"rows"`
	Columns     int    `json:"columns"`
	Fingerprint string `json:"fingerprint"`
}

// parseSelection maps dashboard query parameters onto a selection. Repeated
// keys carry the multi-select dimensions; blanks are dropped so an empty
// checklist reads as nothing chosen rather than an empty-string choice.
func parseSelection(q url.Values) cohort.Selection {
	return cohort.Selection{
		Cancers:  cleanValues(q["cancer"]),
		Lines:    cleanValues(q["line"]),
		Regimens: cleanValues(q["regimen"]),
		Metric:   strings.TrimSpace(q.Get("metric")),
		Year:     strings.TrimSpace(q.Get("year")),
		View:     cohort.ParseView(q.Get("view")),
	}
}

func cleanValues(raw []string) []string {
	out := make([]string, 0, len(raw))
	for _, v := range raw {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

// buildChartPayload pairs a figure result with its overlay state. The
// overlay message mirrors the placeholder title so shell and figure agree.
func buildChartPayload(res app.FigureResult, dismissed bool) ChartPayload {
	notice := Notice{}
	switch res.State {
	case pipeline.StateIncomplete:
		notice.Message = app.IncompleteMessage
	case pipeline.StateNoData:
		notice.Message = pipeline.NoDataMessage
	}
	notice.Visible = res.State != pipeline.StateReady && !dismissed

	return ChartPayload{
		State:   res.State,
		Missing: res.Missing,
		Figure:  res.Spec,
		Notice:  notice,
	}
}

func buildHealth(charts *app.ChartService) HealthPayload {
	table := charts.Table()
	return HealthPayload{
		Status:      "ok",
		Rows:        len(table.Rows),
		Columns:     len(table.Columns),
		Fingerprint: table.Fingerprint().Short(),
	}
}
