package app

import (
	"log"

	"oncoviz/adapters/excel"
	"oncoviz/domain/cohort"
	"oncoviz/internal/config"
	"oncoviz/internal/testkit"
	"oncoviz/ports"
)

// OpenSnapshot picks the snapshot source: the configured file when one is
// set, otherwise the synthetic generator so the dashboard still runs.
func OpenSnapshot(dataCfg config.DataConfig) ports.SnapshotSource {
	if dataCfg.SnapshotFile != "" {
		snapCfg := excel.DefaultSnapshotConfig()
		snapCfg.FilePath = dataCfg.SnapshotFile
		snapCfg.Enabled = true
		log.Printf("[Snapshot] Using snapshot file: %s", snapCfg.FilePath)
		return excel.NewSnapshotSource(snapCfg)
	}

	log.Printf("[Snapshot] No snapshot file configured, using synthetic data")
	return testkit.NewTestKit()
}

// LoadSnapshot opens and loads the source table in one step.
func LoadSnapshot(dataCfg config.DataConfig) (cohort.Table, cohort.GrammarReport, error) {
	return OpenSnapshot(dataCfg).LoadSnapshot()
}
