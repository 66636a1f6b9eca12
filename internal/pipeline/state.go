package pipeline

import (
	"oncoviz/domain/cohort"
)

// State is where a recompute landed. It is re-derived from scratch on every
// selection change; nothing carries over between recomputations.
type State string

const (
	// StateIncomplete means a required selection field is still unset.
	StateIncomplete State = "incomplete"
	// StateNoData means the selection is complete but resolves to nothing:
	// the metric/year pair has no column, or the melt came back empty.
	StateNoData State = "no_data"
	// StateReady means a full chart was produced.
	StateReady State = "ready"
)

// EvaluateState classifies a recompute from its selection, resolved suffix
// and melt result. None of these conditions are errors: each maps to a
// user-facing display state and the pipeline carries on.
func EvaluateState(sel cohort.Selection, suffix string, long cohort.LongTable) State {
	if !sel.IsComplete() {
		return StateIncomplete
	}
	if suffix == "" || long.IsEmpty() {
		return StateNoData
	}
	return StateReady
}
