package testkit

import (
	"strconv"
	"testing"

	"oncoviz/domain/cohort"
)

func TestTestKit_Deterministic(t *testing.T) {
	a := NewTestKit().OutcomesTable()
	b := NewTestKit().OutcomesTable()

	if a.Fingerprint() != b.Fingerprint() {
		t.Error("Same seed produced different tables")
	}

	c := NewTestKitWithSeed(7).OutcomesTable()
	if a.Fingerprint() == c.Fingerprint() {
		t.Error("Different seeds produced identical tables")
	}
}

func TestTestKit_Shape(t *testing.T) {
	table := NewTestKit().OutcomesTable()

	// 4 cancers x 2 lines.
	if len(table.Rows) != 8 {
		t.Errorf("Expected 8 rows, got %d", len(table.Rows))
	}
	// 2 dimensions + 3 prefixes x 5 suffixes.
	if len(table.Columns) != 17 {
		t.Errorf("Expected 17 columns, got %d", len(table.Columns))
	}
	if table.Columns[0] != cohort.ColumnCancer || table.Columns[1] != cohort.ColumnLine {
		t.Errorf("Dimension columns must lead: %v", table.Columns[:2])
	}

	cancers := table.DistinctValues(cohort.ColumnCancer)
	if len(cancers) != 4 {
		t.Errorf("Expected 4 cancers, got %v", cancers)
	}
	lines := table.DistinctValues(cohort.ColumnLine)
	if len(lines) != 2 {
		t.Errorf("Expected 2 lines, got %v", lines)
	}
}

// TestTestKit_PlantedDefects verifies the deliberate blank and malformed
// cells are present, so the coercion-drop path shows up in demo data.
func TestTestKit_PlantedDefects(t *testing.T) {
	table := NewTestKit().OutcomesTable()

	var blankFound, malformedFound bool
	for _, row := range table.Rows {
		if row[cohort.ColumnCancer] == "Bladder" && row[cohort.ColumnLine] == "1" && row["3OVS24"] == "" {
			blankFound = true
		}
		if row[cohort.ColumnCancer] == "Melanoma" && row[cohort.ColumnLine] == "2+" && row["3PFS24"] == "n/a" {
			malformedFound = true
		}
	}
	if !blankFound {
		t.Error("Expected the blank 3OVS24 cell in the first cohort")
	}
	if !malformedFound {
		t.Error("Expected the n/a 3PFS24 cell in the second-line Melanoma cohort")
	}
}

func TestTestKit_LoadSnapshot(t *testing.T) {
	table, report, err := NewTestKit().LoadSnapshot()
	if err != nil {
		t.Fatalf("LoadSnapshot() error = %v", err)
	}
	if table.IsEmpty() {
		t.Fatal("Expected rows")
	}
	if len(report.MetricColumns) != 15 {
		t.Errorf("Expected 15 metric columns, got %d", len(report.MetricColumns))
	}
	if len(report.Warnings) != 0 {
		t.Errorf("Unexpected warnings: %v", report.Warnings)
	}
}

// TestTestKit_RatesAreParseable verifies every non-defect cell coerces to a
// value in the percentage range.
func TestTestKit_RatesAreParseable(t *testing.T) {
	table := NewTestKit().OutcomesTable()

	for _, row := range table.Rows {
		for col, cell := range row {
			if cohort.IsDimension(col) || cell == "" || cell == "n/a" {
				continue
			}
			rate, err := strconv.ParseFloat(cell, 64)
			if err != nil {
				t.Fatalf("Cell %s=%q does not parse: %v", col, cell, err)
			}
			if rate < 1 || rate > 95 {
				t.Errorf("Rate %s=%v outside the clamp range", col, rate)
			}
		}
	}
}
