package excel

import (
	"bytes"
	"reflect"
	"testing"

	"github.com/xuri/excelize/v2"

	"oncoviz/domain/cohort"
)

func TestExporter_WriteWorkbook(t *testing.T) {
	long := cohort.LongTable{
		ValueColumn: "ORR",
		Rows: []cohort.LongRow{
			{Cancer: "Melanoma", Line: "1", Regimen: "PD-1 alone", LineLabel: "No prior treatment", Value: 45.5},
			{Cancer: "NSCLC", Line: "2+", Regimen: "PD-1 + CTLA-4", LineLabel: "At least one prior treatment", Value: 31},
		},
	}

	var buf bytes.Buffer
	if err := NewExporter().WriteWorkbook(&buf, long); err != nil {
		t.Fatalf("WriteWorkbook() error = %v", err)
	}

	f, err := excelize.OpenReader(&buf)
	if err != nil {
		t.Fatalf("Output is not a workbook: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows("Sheet1")
	if err != nil {
		t.Fatalf("GetRows() error = %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("Expected header plus 2 rows, got %d", len(rows))
	}

	wantHeader := []string{"cancer", "line", "regimen", "ORR", "line_label"}
	if !reflect.DeepEqual(rows[0], wantHeader) {
		t.Errorf("Header = %v, want %v", rows[0], wantHeader)
	}

	want := []string{"Melanoma", "1", "PD-1 alone", "45.5", "No prior treatment"}
	if !reflect.DeepEqual(rows[1], want) {
		t.Errorf("First row = %v, want %v", rows[1], want)
	}
	if rows[2][2] != "PD-1 + CTLA-4" {
		t.Errorf("Second row regimen = %q", rows[2][2])
	}
}

// TestExporter_EmptyResult verifies an empty melt still writes a header-only
// workbook, so a no-data export downloads cleanly.
func TestExporter_EmptyResult(t *testing.T) {
	long := cohort.LongTable{ValueColumn: "PFS12"}

	var buf bytes.Buffer
	if err := NewExporter().WriteWorkbook(&buf, long); err != nil {
		t.Fatalf("WriteWorkbook() error = %v", err)
	}

	f, err := excelize.OpenReader(&buf)
	if err != nil {
		t.Fatalf("Output is not a workbook: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows("Sheet1")
	if err != nil {
		t.Fatalf("GetRows() error = %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("Expected only the header row, got %d", len(rows))
	}
	wantHeader := []string{"cancer", "line", "regimen", "PFS12"}
	if !reflect.DeepEqual(rows[0], wantHeader) {
		t.Errorf("Header = %v, want %v", rows[0], wantHeader)
	}
}
