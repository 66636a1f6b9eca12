package app

import (
	"bytes"
	"testing"

	"github.com/xuri/excelize/v2"

	"oncoviz/adapters/excel"
	"oncoviz/domain/cohort"
	"oncoviz/internal/errors"
)

func exportFixture() *ExportService {
	svc := serviceFixture()
	return NewExportService(svc, excel.NewExporter())
}

func TestExportService_RejectsIncompleteSelection(t *testing.T) {
	svc := exportFixture()

	var buf bytes.Buffer
	_, err := svc.ExportWorkbook(&buf, cohort.Selection{Metric: "ORR"})
	if err == nil {
		t.Fatal("Expected error for incomplete selection")
	}
	if errors.GetCode(err) != errors.CodeInvalidInput {
		t.Errorf("Expected code %s, got %s", errors.CodeInvalidInput, errors.GetCode(err))
	}
	if buf.Len() != 0 {
		t.Error("Nothing should be written on rejection")
	}
}

func TestExportService_WritesWorkbook(t *testing.T) {
	svc := exportFixture()

	var buf bytes.Buffer
	result, err := svc.ExportWorkbook(&buf, completeSelection())
	if err != nil {
		t.Fatalf("ExportWorkbook() error = %v", err)
	}

	if result.Rows != 2 {
		t.Errorf("Rows = %d, want 2", result.Rows)
	}
	if result.Filename != "outcomes_ORR.xlsx" {
		t.Errorf("Filename = %q, want outcomes_ORR.xlsx", result.Filename)
	}
	if result.ID == "" {
		t.Error("Expected an export ID")
	}

	f, err := excelize.OpenReader(&buf)
	if err != nil {
		t.Fatalf("Exported bytes are not a workbook: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows("Sheet1")
	if err != nil {
		t.Fatalf("GetRows() error = %v", err)
	}
	// Header plus two observations.
	if len(rows) != 3 {
		t.Fatalf("Expected 3 sheet rows, got %d", len(rows))
	}
	if rows[0][0] != "cancer" || rows[0][3] != "ORR" {
		t.Errorf("Header = %v", rows[0])
	}
	if rows[1][0] != "Melanoma" || rows[1][2] != "PD-1 alone" {
		t.Errorf("First observation = %v", rows[1])
	}
}

// TestExportService_NoDataStillExports verifies a complete selection that
// matches nothing yields a header-only workbook rather than an error.
func TestExportService_NoDataStillExports(t *testing.T) {
	svc := exportFixture()
	sel := completeSelection()
	sel.Cancers = []string{"Bladder"}

	var buf bytes.Buffer
	result, err := svc.ExportWorkbook(&buf, sel)
	if err != nil {
		t.Fatalf("ExportWorkbook() error = %v", err)
	}
	if result.Rows != 0 {
		t.Errorf("Rows = %d, want 0", result.Rows)
	}

	f, err := excelize.OpenReader(&buf)
	if err != nil {
		t.Fatalf("Exported bytes are not a workbook: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows("Sheet1")
	if err != nil {
		t.Fatalf("GetRows() error = %v", err)
	}
	if len(rows) != 1 {
		t.Errorf("Expected only the header row, got %d", len(rows))
	}
}

func TestExportService_Filename(t *testing.T) {
	svc := exportFixture()

	if got := svc.Filename(completeSelection()); got != "outcomes_ORR.xlsx" {
		t.Errorf("Filename() = %q, want outcomes_ORR.xlsx", got)
	}

	sel := completeSelection()
	sel.Metric = "PFS"
	if got := svc.Filename(sel); got != "outcomes_PFS12.xlsx" {
		t.Errorf("Filename() = %q, want outcomes_PFS12.xlsx", got)
	}

	if got := svc.Filename(cohort.Selection{}); got != "outcomes.xlsx" {
		t.Errorf("Filename() = %q, want bare fallback", got)
	}
}
