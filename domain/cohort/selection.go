package cohort

// View selects the facet arrangement of the chart. There are exactly two
// arrangements and no extension point: a tagged enum, not an interface.
type View string

const (
	// ViewByLine groups bars by treatment line and facets by cancer type.
	ViewByLine View = "by_line"
	// ViewByCancer groups bars by cancer type and facets by treatment line.
	ViewByCancer View = "by_cancer"
)

// ParseView maps a raw string to a View, falling back to ViewByLine for
// anything unrecognized.
func ParseView(s string) View {
	if View(s) == ViewByCancer {
		return ViewByCancer
	}
	return ViewByLine
}

// Selection is the user's current choice tuple. It is passed by value into
// the pipeline on every recompute; the pipeline never holds onto it.
type Selection struct {
	Cancers  []string `json:"cancers"`
	Lines    []string `json:"lines"`
	Regimens []string `json:"regimens"`
	Metric   string   `json:"metric"`
	Year     string   `json:"year"`
	View     View     `json:"view"`
}

// MissingFields lists the required fields that are still unset. Regimens are
// not required: an empty regimen choice means "all regimens present in the
// data", the same empty-means-all policy the row filters use.
func (s Selection) MissingFields() []string {
	var missing []string
	if len(s.Cancers) == 0 {
		missing = append(missing, "cancer types")
	}
	if len(s.Lines) == 0 {
		missing = append(missing, "treatment lines")
	}
	if s.Metric == "" {
		missing = append(missing, "outcome metric")
	}
	if s.Year == "" {
		missing = append(missing, "follow-up year")
	}
	return missing
}

// IsComplete reports whether every required field is set.
func (s Selection) IsComplete() bool {
	return len(s.MissingFields()) == 0
}
