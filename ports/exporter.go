package ports

import (
	"io"

	"oncoviz/domain/cohort"
)

// WorkbookExporter writes a melted result to a spreadsheet stream.
type WorkbookExporter interface {
	WriteWorkbook(w io.Writer, long cohort.LongTable) error
}
