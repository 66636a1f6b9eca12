package ports

import (
	"oncoviz/domain/cohort"
)

// SnapshotSource loads the wide outcomes table. Implementations exist for
// Excel/CSV snapshot files and for the synthetic generator the demo mode
// and tests use.
type SnapshotSource interface {
	// LoadSnapshot reads the table once, validates its column grammar and
	// returns both. The table must be safe to share read-only afterwards.
	LoadSnapshot() (cohort.Table, cohort.GrammarReport, error)
}
