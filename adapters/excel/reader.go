package excel

import (
	"encoding/csv"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"oncoviz/domain/cohort"
	"oncoviz/internal/errors"
)

// SnapshotReader loads the wide outcomes table from an Excel or CSV snapshot.
// The file is read once at startup; the resulting table is immutable.
type SnapshotReader struct {
	filePath string
	fileType string // "xlsx" or "csv"
}

// NewSnapshotReader creates a reader for the given snapshot file, picking the
// format from the extension.
func NewSnapshotReader(filePath string) *SnapshotReader {
	ext := strings.ToLower(filepath.Ext(filePath))
	fileType := "xlsx"
	if ext == ".csv" {
		fileType = "csv"
	}
	return &SnapshotReader{filePath: filePath, fileType: fileType}
}

// NewSnapshotSource creates a reader from a SnapshotConfig.
func NewSnapshotSource(cfg SnapshotConfig) *SnapshotReader {
	return NewSnapshotReader(cfg.FilePath)
}

// LoadSnapshot reads the snapshot into a cohort table, trims its headers and
// validates the column grammar once. Grammar warnings are logged and returned
// alongside the table; only missing dimension columns fail the load.
func (r *SnapshotReader) LoadSnapshot() (cohort.Table, cohort.GrammarReport, error) {
	log.Printf("[SnapshotReader] Starting to read %s file: %s", r.fileType, r.filePath)

	if _, err := os.Stat(r.filePath); os.IsNotExist(err) {
		return cohort.Table{}, cohort.GrammarReport{}, errors.SnapshotLoadError(r.filePath, err)
	}

	var rows [][]string
	var err error
	switch r.fileType {
	case "csv":
		rows, err = r.readCSVRows()
	default:
		rows, err = r.readExcelRows()
	}
	if err != nil {
		return cohort.Table{}, cohort.GrammarReport{}, errors.SnapshotLoadError(r.filePath, err)
	}

	if len(rows) < 2 {
		return cohort.Table{}, cohort.GrammarReport{}, errors.DataFormatError(
			fmt.Sprintf("%s must have at least a header row and one data row", r.filePath))
	}

	table := r.processRows(rows)

	report, err := cohort.ValidateColumns(table)
	if err != nil {
		return cohort.Table{}, report, errors.WithCode(errors.CodeDataFormat, err)
	}
	for _, w := range report.Warnings {
		log.Printf("[SnapshotReader] Column grammar: %s", w)
	}

	log.Printf("[SnapshotReader] Snapshot ready: %d rows, %d metric columns, fingerprint %s",
		len(table.Rows), len(report.MetricColumns), table.Fingerprint().Short())
	return table, report, nil
}

// readExcelRows reads raw rows from Sheet1
func (r *SnapshotReader) readExcelRows() ([][]string, error) {
	startTime := time.Now()
	f, err := excelize.OpenFile(r.filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer f.Close()
	fileOpenTime := time.Since(startTime)
	log.Printf("[SnapshotReader] Excel file opened in %.2fms", float64(fileOpenTime.Nanoseconds())/1e6)

	readStart := time.Now()
	rows, err := f.GetRows("Sheet1")
	if err != nil {
		return nil, fmt.Errorf("failed to read Sheet1: %w", err)
	}
	readTime := time.Since(readStart)
	log.Printf("[SnapshotReader] Sheet1 read in %.2fms (%d rows)", float64(readTime.Nanoseconds())/1e6, len(rows))

	return rows, nil
}

// readCSVRows reads raw rows from a CSV file
func (r *SnapshotReader) readCSVRows() ([][]string, error) {
	file, err := os.Open(r.filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open CSV file: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	readStart := time.Now()
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV file: %w", err)
	}
	readTime := time.Since(readStart)
	log.Printf("[SnapshotReader] CSV file read in %.2fms (%d rows)", float64(readTime.Nanoseconds())/1e6, len(rows))

	return rows, nil
}

// processRows converts raw string rows into a cohort table. Headers and
// cells are whitespace-trimmed; the published snapshots carry padded names.
func (r *SnapshotReader) processRows(rows [][]string) cohort.Table {
	headerRow := rows[0]
	headers := make([]string, len(headerRow))
	for i, header := range headerRow {
		headers[i] = strings.TrimSpace(header)
	}

	dataRows := make([]cohort.Row, 0, len(rows)-1)
	for i := 1; i < len(rows); i++ {
		row := rows[i]
		rowData := make(cohort.Row)
		for j, cell := range row {
			if j < len(headers) {
				rowData[headers[j]] = strings.TrimSpace(cell)
			}
		}
		dataRows = append(dataRows, rowData)
	}

	log.Printf("[SnapshotReader] %s file processed (%d columns, %d rows)",
		strings.ToUpper(r.fileType), len(headers), len(dataRows))

	return cohort.NewTable(headers, dataRows)
}
