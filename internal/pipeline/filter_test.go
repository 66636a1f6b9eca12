package pipeline

import (
	"testing"

	"oncoviz/domain/cohort"
)

func filterFixture() cohort.Table {
	return cohort.NewTable(
		[]string{cohort.ColumnCancer, cohort.ColumnLine, "1ORR"},
		[]cohort.Row{
			{cohort.ColumnCancer: "Melanoma", cohort.ColumnLine: "1", "1ORR": "45"},
			{cohort.ColumnCancer: "Melanoma", cohort.ColumnLine: "2+", "1ORR": "38"},
			{cohort.ColumnCancer: "NSCLC", cohort.ColumnLine: "1", "1ORR": "30"},
			{cohort.ColumnCancer: "RCC", cohort.ColumnLine: "2+", "1ORR": "22"},
		},
	)
}

// TestFilterRows_EmptyMeansAll verifies that an empty choice on a dimension
// leaves that dimension unfiltered instead of excluding everything.
func TestFilterRows_EmptyMeansAll(t *testing.T) {
	table := filterFixture()

	got := FilterRows(table, nil, nil)
	if len(got.Rows) != len(table.Rows) {
		t.Fatalf("Expected all %d rows, got %d", len(table.Rows), len(got.Rows))
	}

	got = FilterRows(table, []string{"NSCLC"}, nil)
	if len(got.Rows) != 1 {
		t.Fatalf("Expected 1 NSCLC row, got %d", len(got.Rows))
	}
	if got.Rows[0][cohort.ColumnCancer] != "NSCLC" {
		t.Errorf("Expected NSCLC row, got %q", got.Rows[0][cohort.ColumnCancer])
	}
}

func TestFilterRows_BothDimensions(t *testing.T) {
	got := FilterRows(filterFixture(), []string{"Melanoma", "RCC"}, []string{"2+"})

	if len(got.Rows) != 2 {
		t.Fatalf("Expected 2 rows, got %d", len(got.Rows))
	}
	for _, row := range got.Rows {
		if row[cohort.ColumnLine] != "2+" {
			t.Errorf("Expected line 2+, got %q", row[cohort.ColumnLine])
		}
	}
}

func TestFilterRows_NoMatches(t *testing.T) {
	got := FilterRows(filterFixture(), []string{"Pancreatic"}, nil)

	if len(got.Rows) != 0 {
		t.Fatalf("Expected 0 rows, got %d", len(got.Rows))
	}
	if len(got.Columns) != 3 {
		t.Errorf("Columns must survive an empty filter, got %v", got.Columns)
	}
}

// TestFilterRows_CopySemantics verifies the result is independent of the
// source: mutating a filtered row must not leak into the shared table.
func TestFilterRows_CopySemantics(t *testing.T) {
	table := filterFixture()

	got := FilterRows(table, nil, nil)
	got.Rows[0]["1ORR"] = "99"
	got.Columns[0] = "mutated"

	if table.Rows[0]["1ORR"] != "45" {
		t.Errorf("Source row mutated: got %q, want 45", table.Rows[0]["1ORR"])
	}
	if table.Columns[0] != cohort.ColumnCancer {
		t.Errorf("Source columns mutated: got %q", table.Columns[0])
	}
}
