package excel

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"

	"oncoviz/domain/cohort"
	"oncoviz/internal/errors"
)

func writeExcelFixture(t *testing.T, rows [][]interface{}) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "snapshot.xlsx")

	f := excelize.NewFile()
	defer f.Close()
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			t.Fatalf("cell name: %v", err)
		}
		if err := f.SetSheetRow("Sheet1", cell, &row); err != nil {
			t.Fatalf("set row: %v", err)
		}
	}
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("save fixture: %v", err)
	}
	return path
}

func TestSnapshotReader_LoadExcel(t *testing.T) {
	path := writeExcelFixture(t, [][]interface{}{
		{" cancer ", "line", "1ORR", "2ORR"},
		{"Melanoma", "1", " 45 ", "58"},
		{"NSCLC", "2+", "30", "41"},
	})

	table, report, err := NewSnapshotReader(path).LoadSnapshot()
	if err != nil {
		t.Fatalf("LoadSnapshot() error = %v", err)
	}

	if len(table.Rows) != 2 {
		t.Fatalf("Expected 2 rows, got %d", len(table.Rows))
	}
	// Headers and cells come back trimmed.
	if !table.HasColumn(cohort.ColumnCancer) {
		t.Errorf("Padded header not trimmed: %v", table.Columns)
	}
	if table.Rows[0]["1ORR"] != "45" {
		t.Errorf("Padded cell not trimmed: %q", table.Rows[0]["1ORR"])
	}
	if table.Rows[1][cohort.ColumnLine] != "2+" {
		t.Errorf("Line = %q, want 2+", table.Rows[1][cohort.ColumnLine])
	}

	if len(report.MetricColumns) != 2 {
		t.Errorf("MetricColumns = %v, want both ORR columns", report.MetricColumns)
	}
	if len(report.Warnings) != 0 {
		t.Errorf("Unexpected warnings: %v", report.Warnings)
	}
}

func TestSnapshotReader_LoadCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snapshot.csv")
	csv := "cancer,line,1ORR,2PFS12\nMelanoma,1,45,33\nRCC,2+,22,18\n"
	if err := os.WriteFile(path, []byte(csv), 0644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	table, report, err := NewSnapshotReader(path).LoadSnapshot()
	if err != nil {
		t.Fatalf("LoadSnapshot() error = %v", err)
	}

	if len(table.Rows) != 2 {
		t.Fatalf("Expected 2 rows, got %d", len(table.Rows))
	}
	if table.Rows[1][cohort.ColumnCancer] != "RCC" {
		t.Errorf("Cancer = %q, want RCC", table.Rows[1][cohort.ColumnCancer])
	}
	if len(report.MetricColumns) != 2 {
		t.Errorf("MetricColumns = %v", report.MetricColumns)
	}
}

func TestSnapshotReader_MissingFile(t *testing.T) {
	reader := NewSnapshotReader(filepath.Join(t.TempDir(), "absent.xlsx"))

	_, _, err := reader.LoadSnapshot()
	if err == nil {
		t.Fatal("Expected error for missing file")
	}
	if errors.GetCode(err) != errors.CodeSnapshotLoad {
		t.Errorf("Expected code %s, got %s", errors.CodeSnapshotLoad, errors.GetCode(err))
	}
}

func TestSnapshotReader_HeaderOnly(t *testing.T) {
	path := writeExcelFixture(t, [][]interface{}{
		{"cancer", "line", "1ORR"},
	})

	_, _, err := NewSnapshotReader(path).LoadSnapshot()
	if err == nil {
		t.Fatal("Expected error for header-only snapshot")
	}
	if errors.GetCode(err) != errors.CodeDataFormat {
		t.Errorf("Expected code %s, got %s", errors.CodeDataFormat, errors.GetCode(err))
	}
}

// TestSnapshotReader_MissingDimension verifies a snapshot without the line
// column fails with a format error instead of loading partially.
func TestSnapshotReader_MissingDimension(t *testing.T) {
	path := writeExcelFixture(t, [][]interface{}{
		{"cancer", "1ORR"},
		{"Melanoma", "45"},
	})

	_, _, err := NewSnapshotReader(path).LoadSnapshot()
	if err == nil {
		t.Fatal("Expected error for missing dimension column")
	}
	if errors.GetCode(err) != errors.CodeDataFormat {
		t.Errorf("Expected code %s, got %s", errors.CodeDataFormat, errors.GetCode(err))
	}
}

func TestNewSnapshotReader_PicksTypeFromExtension(t *testing.T) {
	if r := NewSnapshotReader("data/outcomes.CSV"); r.fileType != "csv" {
		t.Errorf("fileType = %q, want csv", r.fileType)
	}
	if r := NewSnapshotReader("data/outcomes.xlsx"); r.fileType != "xlsx" {
		t.Errorf("fileType = %q, want xlsx", r.fileType)
	}
	if r := NewSnapshotReader("data/outcomes"); r.fileType != "xlsx" {
		t.Errorf("fileType = %q, want xlsx default", r.fileType)
	}
}
