package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"oncoviz/adapters/excel"
	"oncoviz/app"
	"oncoviz/domain/cohort"
	"oncoviz/internal/config"
	"oncoviz/internal/pipeline"
)

var (
	snapshotPath string
	displayPath  string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "oncoviz-cli",
		Short: "Inspect outcome snapshots and build charts from the command line",
	}

	rootCmd.PersistentFlags().StringVar(&snapshotPath, "snapshot", "", "Snapshot workbook or CSV (default: synthetic demo data)")
	rootCmd.PersistentFlags().StringVar(&displayPath, "display", "", "Display vocabulary YAML (default: built-in)")

	rootCmd.AddCommand(
		newInspectCmd(),
		newChartCmd(),
		newSummaryCmd(),
		newExportCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// buildServices loads the snapshot and display vocabulary the same way the
// server does, so CLI output matches what the dashboard would show.
func buildServices() (*app.ChartService, cohort.GrammarReport, error) {
	display, err := config.LoadDisplay(displayPath)
	if err != nil {
		return nil, cohort.GrammarReport{}, err
	}

	dataCfg := config.DataConfig{SnapshotFile: snapshotPath, DisplayFile: displayPath}
	table, report, err := app.LoadSnapshot(dataCfg)
	if err != nil {
		return nil, cohort.GrammarReport{}, err
	}

	return app.NewChartService(table, display), report, nil
}

// selectionFlags are the shared selection options for chart, summary and
// export. Unset dimensions default to everything the snapshot contains, so
// a bare --metric/--year pair charts the full cohort.
type selectionFlags struct {
	cancers  []string
	lines    []string
	regimens []string
	metric   string
	year     string
	view     string
}

func (f *selectionFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringSliceVar(&f.cancers, "cancer", nil, "Cancer types to include (repeatable; default all)")
	cmd.Flags().StringSliceVar(&f.lines, "line", nil, "Treatment lines to include (repeatable; default all)")
	cmd.Flags().StringSliceVar(&f.regimens, "regimen", nil, "Regimen prefixes to include (repeatable; default all)")
	cmd.Flags().StringVar(&f.metric, "metric", "", "Outcome metric: ORR, PFS or OVS")
	cmd.Flags().StringVar(&f.year, "year", "", "Follow-up year: 1 or 2 (ignored for ORR)")
	cmd.Flags().StringVar(&f.view, "view", "by_line", "Facet dimension: by_line or by_cancer")
}

func (f *selectionFlags) selection(charts *app.ChartService) cohort.Selection {
	sel := cohort.Selection{
		Cancers:  f.cancers,
		Lines:    f.lines,
		Regimens: f.regimens,
		Metric:   f.metric,
		Year:     f.year,
		View:     cohort.ParseView(f.view),
	}

	if len(sel.Cancers) == 0 {
		sel.Cancers = charts.Table().DistinctValues(cohort.ColumnCancer)
	}
	if len(sel.Lines) == 0 {
		sel.Lines = charts.Table().DistinctValues(cohort.ColumnLine)
	}
	return sel
}

func newInspectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "inspect",
		Short: "Show what the loaded snapshot contains",
		Long: `Show the snapshot's dimensions, discovered vocabularies and metric
suffixes, plus any column grammar warnings.

Example: oncoviz-cli inspect --snapshot outcomes.xlsx`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInspect()
		},
	}
}

func runInspect() error {
	charts, report, err := buildServices()
	if err != nil {
		return fmt.Errorf("failed to load snapshot: %w", err)
	}

	table := charts.Table()
	opts := charts.Options()

	fmt.Printf("\n📊 SNAPSHOT OVERVIEW\n")
	fmt.Printf("Rows: %d\n", len(table.Rows))
	fmt.Printf("Columns: %d\n", len(table.Columns))
	fmt.Printf("Fingerprint: %s\n", table.Fingerprint().Short())

	fmt.Printf("\n🧬 CANCER TYPES (%d):\n", len(opts.Cancers))
	for _, o := range opts.Cancers {
		fmt.Printf("• %s\n", o.Value)
	}

	fmt.Printf("\n💊 TREATMENT LINES:\n")
	for _, o := range opts.Lines {
		fmt.Printf("• %s: %s\n", o.Value, o.Label)
	}

	fmt.Printf("\n🧪 REGIMENS:\n")
	for _, o := range opts.Regimens {
		fmt.Printf("• %s: %s\n", o.Value, o.Label)
	}

	fmt.Printf("\n📈 METRIC SUFFIXES: %s\n", strings.Join(opts.Suffixes, ", "))

	if len(report.Warnings) > 0 {
		fmt.Printf("\n⚠️  WARNINGS:\n")
		for _, w := range report.Warnings {
			fmt.Printf("• %s\n", w)
		}
	}

	return nil
}

func newChartCmd() *cobra.Command {
	var flags selectionFlags
	var out string

	cmd := &cobra.Command{
		Use:   "chart",
		Short: "Build the figure spec for a selection",
		Long: `Run the pipeline for a selection and print the figure spec as JSON.

Example: oncoviz-cli chart --metric PFS --year 1 --cancer NSCLC --out figure.json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runChart(&flags, out)
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVar(&out, "out", "", "Write JSON to this file instead of stdout")
	return cmd
}

func runChart(flags *selectionFlags, out string) error {
	charts, _, err := buildServices()
	if err != nil {
		return fmt.Errorf("failed to load snapshot: %w", err)
	}

	res := charts.BuildFigure(flags.selection(charts))
	if res.State != pipeline.StateReady {
		fmt.Fprintf(os.Stderr, "state=%s", res.State)
		if len(res.Missing) > 0 {
			fmt.Fprintf(os.Stderr, " (missing: %s)", strings.Join(res.Missing, ", "))
		}
		fmt.Fprintln(os.Stderr)
	}

	blob, err := json.MarshalIndent(res.Spec, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode figure spec: %w", err)
	}

	if out == "" {
		fmt.Println(string(blob))
		return nil
	}
	if err := os.WriteFile(out, blob, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", out, err)
	}

	fmt.Printf("Wrote %s (%d bytes)\n", out, len(blob))
	return nil
}

func newSummaryCmd() *cobra.Command {
	var flags selectionFlags
	var workers int64

	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Describe and compare regimens for a selection",
		Long: `Run the pipeline for a selection and print per-regimen descriptive
statistics plus pairwise Welch t-tests.

Example: oncoviz-cli summary --metric ORR --year 1`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSummary(cmd.Context(), &flags, workers)
		},
	}

	flags.register(cmd)
	cmd.Flags().Int64Var(&workers, "workers", 4, "Concurrent regimen computations")
	return cmd
}

func runSummary(ctx context.Context, flags *selectionFlags, workers int64) error {
	charts, _, err := buildServices()
	if err != nil {
		return fmt.Errorf("failed to load snapshot: %w", err)
	}

	summary := app.NewSummaryService(charts, workers)
	result, err := summary.Summarize(ctx, flags.selection(charts))
	if err != nil {
		return fmt.Errorf("summary failed: %w", err)
	}

	if result.State != pipeline.StateReady {
		fmt.Printf("Nothing to summarise (state=%s)\n", result.State)
		return nil
	}

	fmt.Printf("\n🧪 PER-REGIMEN SUMMARY (%s)\n", result.Metric)
	for _, r := range result.Regimens {
		fmt.Printf("%s: n=%d mean=%.1f median=%.1f sd=%.1f range=[%.1f, %.1f]\n",
			r.Regimen, r.Count, r.Mean, r.Median, r.StdDev, r.Min, r.Max)
	}

	if len(result.Comparisons) > 0 {
		fmt.Printf("\n⚖️  PAIRWISE COMPARISONS (Welch)\n")
		for _, c := range result.Comparisons {
			marker := ""
			if c.PValue < 0.05 {
				marker = " *"
			}
			fmt.Printf("%s vs %s: diff=%+.1f t=%.2f df=%.1f p=%.4f%s\n",
				c.RegimenA, c.RegimenB, c.MeanDiff, c.TStatistic, c.DF, c.PValue, marker)
		}
	}

	return nil
}

func newExportCmd() *cobra.Command {
	var flags selectionFlags
	var out string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the melted data behind a selection to a workbook",
		Long: `Run the pipeline for a selection and write the long-format rows to an
xlsx workbook, the same file the dashboard's download button produces.

Example: oncoviz-cli export --metric OVS --year 2 --out outcomes_OVS24.xlsx`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExport(&flags, out)
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVar(&out, "out", "", "Output path (default: the dashboard's download name)")
	return cmd
}

func runExport(flags *selectionFlags, out string) error {
	charts, _, err := buildServices()
	if err != nil {
		return fmt.Errorf("failed to load snapshot: %w", err)
	}

	export := app.NewExportService(charts, excel.NewExporter())
	sel := flags.selection(charts)
	if out == "" {
		out = export.Filename(sel)
	}

	f, err := os.Create(out)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", out, err)
	}
	defer f.Close()

	result, err := export.ExportWorkbook(f, sel)
	if err != nil {
		return fmt.Errorf("export failed: %w", err)
	}

	fmt.Printf("📦 Wrote %s (%d data rows)\n", out, result.Rows)
	return nil
}
