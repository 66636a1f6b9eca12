// Package testkit generates a synthetic outcomes table. It backs the demo
// mode when no snapshot file is configured and gives tests a realistic,
// fully deterministic fixture.
package testkit

import (
	"fmt"
	"log"
	"math/rand"

	"oncoviz/domain/cohort"
)

// Default vocabulary for the synthetic table. The shape matches a real
// snapshot: one row per (cancer, line) cohort, one column per
// regimen-prefix + metric-suffix pair.
var (
	syntheticCancers  = []string{"Bladder", "Melanoma", "NSCLC", "RCC"}
	syntheticLines    = []string{"1", "2+"}
	syntheticPrefixes = []string{"1", "2", "3"}
	syntheticSuffixes = []string{"ORR", "PFS12", "OVS12", "PFS24", "OVS24"}
)

// TestKit builds deterministic synthetic snapshots.
type TestKit struct {
	seed int64
}

// NewTestKit creates a test kit with the default seed.
func NewTestKit() *TestKit {
	return &TestKit{seed: 42}
}

// NewTestKitWithSeed creates a test kit with an explicit seed.
func NewTestKitWithSeed(seed int64) *TestKit {
	return &TestKit{seed: seed}
}

// OutcomesTable generates the synthetic wide table. The same seed always
// yields the same table. A few cells are deliberately unusable ("n/a" and
// blank) so the coercion-drop path is visible in the demo too.
func (k *TestKit) OutcomesTable() cohort.Table {
	rng := rand.New(rand.NewSource(k.seed))

	columns := []string{cohort.ColumnCancer, cohort.ColumnLine}
	for _, prefix := range syntheticPrefixes {
		for _, suffix := range syntheticSuffixes {
			columns = append(columns, prefix+suffix)
		}
	}

	rows := make([]cohort.Row, 0, len(syntheticCancers)*len(syntheticLines))
	for ci, cancer := range syntheticCancers {
		for li, line := range syntheticLines {
			row := cohort.Row{
				cohort.ColumnCancer: cancer,
				cohort.ColumnLine:   line,
			}
			for _, prefix := range syntheticPrefixes {
				for _, suffix := range syntheticSuffixes {
					row[prefix+suffix] = formatRate(syntheticRate(rng, prefix, suffix, li))
				}
			}
			// One missing and one malformed cell per synthetic dataset.
			if ci == 0 && li == 0 {
				row["3OVS24"] = ""
			}
			if ci == 1 && li == 1 {
				row["3PFS24"] = "n/a"
			}
			rows = append(rows, row)
		}
	}

	return cohort.NewTable(columns, rows)
}

// LoadSnapshot implements ports.SnapshotSource with the synthetic table.
func (k *TestKit) LoadSnapshot() (cohort.Table, cohort.GrammarReport, error) {
	table := k.OutcomesTable()
	report, err := cohort.ValidateColumns(table)
	if err != nil {
		return cohort.Table{}, report, err
	}
	log.Printf("[TestKit] Synthetic snapshot generated: %d rows, %d metric columns (seed %d)",
		len(table.Rows), len(report.MetricColumns), k.seed)
	return table, report, nil
}

// syntheticRate produces a plausible outcome percentage: combination therapy
// beats monotherapy beats neither, survival decays with follow-up time, and
// later treatment lines do worse.
func syntheticRate(rng *rand.Rand, prefix, suffix string, lineIdx int) float64 {
	base := map[string]float64{"1": 42, "2": 55, "3": 18}[prefix]

	switch suffix {
	case "PFS12", "OVS12":
		base *= 0.85
	case "PFS24", "OVS24":
		base *= 0.6
	}

	if lineIdx > 0 {
		base *= 0.7
	}

	rate := base + (rng.Float64()-0.5)*10
	if rate < 1 {
		rate = 1
	}
	if rate > 95 {
		rate = 95
	}
	return rate
}

func formatRate(rate float64) string {
	return fmt.Sprintf("%.1f", rate)
}
