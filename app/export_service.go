package app

import (
	"fmt"
	"io"
	"log"

	"oncoviz/domain/cohort"
	"oncoviz/domain/core"
	"oncoviz/internal/errors"
	"oncoviz/internal/pipeline"
	"oncoviz/ports"
)

// ExportService writes the melted data behind the current chart to a
// workbook, so the exact numbers on screen can be taken away.
type ExportService struct {
	charts   *ChartService
	exporter ports.WorkbookExporter
}

// NewExportService creates an export service over the shared chart service.
func NewExportService(charts *ChartService, exporter ports.WorkbookExporter) *ExportService {
	return &ExportService{charts: charts, exporter: exporter}
}

// ExportResult describes a completed export.
type ExportResult struct {
	ID       core.ExportID `json:"id"`
	Filename string        `json:"filename"`
	Rows     int           `json:"rows"`
}

// ExportWorkbook runs the pipeline for the selection and streams the long
// table to w. An incomplete selection is rejected; a no-data selection
// still yields a valid workbook with just the header row.
func (s *ExportService) ExportWorkbook(w io.Writer, sel cohort.Selection) (*ExportResult, error) {
	rc := s.charts.Run(sel)
	if rc.State == pipeline.StateIncomplete {
		return nil, errors.InvalidInput("cannot export an incomplete selection")
	}

	if err := s.exporter.WriteWorkbook(w, rc.Long); err != nil {
		return nil, err
	}

	id := core.ExportID(core.NewID())
	result := &ExportResult{
		ID:       id,
		Filename: exportFilename(rc.Suffix),
		Rows:     len(rc.Long.Rows),
	}
	log.Printf("[ExportService] Export %s complete: %s (%d rows)", id, result.Filename, result.Rows)
	return result, nil
}

// Filename reports the download name for a selection without running the
// export, for handlers that set headers before streaming.
func (s *ExportService) Filename(sel cohort.Selection) string {
	suffix := pipeline.ResolveSuffix(sel.Metric, sel.Year, s.charts.Display().Years)
	return exportFilename(suffix)
}

func exportFilename(suffix string) string {
	if suffix == "" {
		return "outcomes.xlsx"
	}
	return fmt.Sprintf("outcomes_%s.xlsx", suffix)
}
