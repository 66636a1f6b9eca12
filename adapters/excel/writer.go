package excel

import (
	"io"
	"log"
	"time"

	"github.com/xuri/excelize/v2"

	"oncoviz/domain/cohort"
	"oncoviz/internal/errors"
)

// Exporter writes a melted result to an xlsx workbook, one observation per
// row, so users can pull the exact numbers behind the chart they are seeing.
type Exporter struct {
	sheet string
}

// NewExporter creates a workbook exporter writing to the default sheet.
func NewExporter() *Exporter {
	return &Exporter{sheet: "Sheet1"}
}

// WriteWorkbook streams the long table as a workbook to w. The header row
// mirrors the long table's column names, so an empty result still produces
// a structurally valid workbook.
func (e *Exporter) WriteWorkbook(w io.Writer, long cohort.LongTable) error {
	start := time.Now()

	f := excelize.NewFile()
	defer f.Close()

	for i, name := range long.ColumnNames() {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return errors.ExportError(err)
		}
		if err := f.SetCellValue(e.sheet, cell, name); err != nil {
			return errors.ExportError(err)
		}
	}

	for rowIdx, row := range long.Rows {
		values := []interface{}{row.Cancer, row.Line, row.Regimen, row.Value, row.LineLabel}
		for colIdx, value := range values {
			cell, err := excelize.CoordinatesToCellName(colIdx+1, rowIdx+2)
			if err != nil {
				return errors.ExportError(err)
			}
			if err := f.SetCellValue(e.sheet, cell, value); err != nil {
				return errors.ExportError(err)
			}
		}
	}

	if _, err := f.WriteTo(w); err != nil {
		return errors.ExportError(err)
	}

	log.Printf("[Exporter] Workbook written (%d rows) in %.2fms",
		len(long.Rows), float64(time.Since(start).Nanoseconds())/1e6)
	return nil
}
