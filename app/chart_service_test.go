package app

import (
	"reflect"
	"testing"

	"oncoviz/domain/cohort"
	"oncoviz/internal/config"
	"oncoviz/internal/pipeline"
)

func serviceFixture() *ChartService {
	table := cohort.NewTable(
		[]string{cohort.ColumnCancer, cohort.ColumnLine, "1ORR", "2ORR", "1PFS12"},
		[]cohort.Row{
			{cohort.ColumnCancer: "Melanoma", cohort.ColumnLine: "1", "1ORR": "40", "2ORR": "60", "1PFS12": "30"},
			{cohort.ColumnCancer: "Melanoma", cohort.ColumnLine: "2+", "1ORR": "20", "2ORR": "35", "1PFS12": "15"},
			{cohort.ColumnCancer: "NSCLC", cohort.ColumnLine: "1", "1ORR": "35", "2ORR": "50", "1PFS12": "25"},
		},
	)
	return NewChartService(table, config.DefaultDisplay())
}

func completeSelection() cohort.Selection {
	return cohort.Selection{
		Cancers: []string{"Melanoma"},
		Lines:   []string{"1"},
		Metric:  "ORR",
		Year:    "1",
	}
}

func TestChartService_Run_Incomplete(t *testing.T) {
	svc := serviceFixture()

	rc := svc.Run(cohort.Selection{})

	if rc.State != pipeline.StateIncomplete {
		t.Fatalf("State = %q, want incomplete", rc.State)
	}
	if len(rc.Missing) != 4 {
		t.Errorf("Missing = %v, want all four required fields", rc.Missing)
	}
}

func TestChartService_Run_Ready(t *testing.T) {
	svc := serviceFixture()

	rc := svc.Run(completeSelection())

	if rc.State != pipeline.StateReady {
		t.Fatalf("State = %q, want ready", rc.State)
	}
	if rc.Suffix != "ORR" {
		t.Errorf("Suffix = %q, want ORR", rc.Suffix)
	}
	// One Melanoma first-line row, two regimens with ORR columns.
	if len(rc.Long.Rows) != 2 {
		t.Fatalf("Expected 2 melted rows, got %d", len(rc.Long.Rows))
	}
	if rc.Long.Rows[0].Value != 40 || rc.Long.Rows[1].Value != 60 {
		t.Errorf("Values = [%v, %v], want [40, 60]", rc.Long.Rows[0].Value, rc.Long.Rows[1].Value)
	}
}

// TestChartService_Run_RegimenNarrowing verifies a regimen choice drops the
// other regimens' columns from the melt.
func TestChartService_Run_RegimenNarrowing(t *testing.T) {
	svc := serviceFixture()
	sel := completeSelection()
	sel.Regimens = []string{"2"}

	rc := svc.Run(sel)

	if rc.State != pipeline.StateReady {
		t.Fatalf("State = %q, want ready", rc.State)
	}
	if len(rc.Long.Rows) != 1 {
		t.Fatalf("Expected 1 melted row, got %d", len(rc.Long.Rows))
	}
	if rc.Long.Rows[0].Regimen != "PD-1 + CTLA-4" {
		t.Errorf("Regimen = %q, want PD-1 + CTLA-4", rc.Long.Rows[0].Regimen)
	}
}

func TestChartService_Run_NoData(t *testing.T) {
	svc := serviceFixture()

	t.Run("unknown metric", func(t *testing.T) {
		sel := completeSelection()
		sel.Metric = "DFS"
		if rc := svc.Run(sel); rc.State != pipeline.StateNoData {
			t.Errorf("State = %q, want no_data", rc.State)
		}
	})

	t.Run("no matching rows", func(t *testing.T) {
		sel := completeSelection()
		sel.Cancers = []string{"Bladder"}
		if rc := svc.Run(sel); rc.State != pipeline.StateNoData {
			t.Errorf("State = %q, want no_data", rc.State)
		}
	})

	t.Run("suffix without columns", func(t *testing.T) {
		sel := completeSelection()
		sel.Metric = "OVS"
		if rc := svc.Run(sel); rc.State != pipeline.StateNoData {
			t.Errorf("State = %q, want no_data", rc.State)
		}
	})
}

func TestChartService_Run_Idempotent(t *testing.T) {
	svc := serviceFixture()
	sel := completeSelection()

	first := svc.Run(sel)
	second := svc.Run(sel)

	if !reflect.DeepEqual(first, second) {
		t.Error("Same selection produced different recomputes")
	}
}

func TestChartService_BuildFigure_States(t *testing.T) {
	svc := serviceFixture()

	t.Run("incomplete placeholder", func(t *testing.T) {
		res := svc.BuildFigure(cohort.Selection{Metric: "ORR"})
		if res.State != pipeline.StateIncomplete {
			t.Fatalf("State = %q", res.State)
		}
		if res.Spec.Layout.Title.Text != IncompleteMessage {
			t.Errorf("Title = %q, want incomplete message", res.Spec.Layout.Title.Text)
		}
		if len(res.Missing) == 0 {
			t.Error("Expected missing fields to be reported")
		}
		if len(res.Spec.Data) != 0 {
			t.Error("Placeholder must carry no traces")
		}
	})

	t.Run("no data placeholder", func(t *testing.T) {
		sel := completeSelection()
		sel.Cancers = []string{"Bladder"}
		res := svc.BuildFigure(sel)
		if res.State != pipeline.StateNoData {
			t.Fatalf("State = %q", res.State)
		}
		if res.Spec.Layout.Title.Text != pipeline.NoDataMessage {
			t.Errorf("Title = %q, want no-data message", res.Spec.Layout.Title.Text)
		}
	})

	t.Run("ready figure", func(t *testing.T) {
		res := svc.BuildFigure(completeSelection())
		if res.State != pipeline.StateReady {
			t.Fatalf("State = %q", res.State)
		}
		if res.Spec.Layout.Title.Text != "ORR (Overall)" {
			t.Errorf("Title = %q, want ORR (Overall)", res.Spec.Layout.Title.Text)
		}
		if len(res.Spec.Data) == 0 {
			t.Error("Expected traces in a ready figure")
		}
	})
}

func TestFigureTitle(t *testing.T) {
	tests := []struct {
		suffix string
		metric string
		year   string
		want   string
	}{
		{"ORR", "ORR", "1", "ORR (Overall)"},
		{"ORR", " orr ", "2", "ORR (Overall)"},
		{"PFS12", "PFS", "1", "PFS (Year 1)"},
		{"OVS24", "ovs", "2", "OVS (Year 2)"},
	}

	for _, tt := range tests {
		if got := figureTitle(tt.suffix, tt.metric, tt.year); got != tt.want {
			t.Errorf("figureTitle(%q, %q, %q) = %q, want %q", tt.suffix, tt.metric, tt.year, got, tt.want)
		}
	}
}
