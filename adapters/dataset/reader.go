// Package dataset reads columnar data from CSV and Excel files and exports
// matrix sweep results as XLSX heatmaps.
package dataset

import (
	"encoding/csv"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"statcheck/internal"
	"statcheck/internal/errors"
)

// Dataset holds raw column-oriented string data read from a file.
type Dataset struct {
	Headers []string
	Rows    [][]string
}

// Reader handles reading Excel and CSV files
type Reader struct {
	filePath string
	fileType string // "xlsx" or "csv"
}

// NewReader creates a reader that handles both Excel and CSV files.
func NewReader(filePath string) *Reader {
	ext := strings.ToLower(filepath.Ext(filePath))
	fileType := "xlsx"
	if ext == ".csv" {
		fileType = "csv"
	}
	return &Reader{filePath: filePath, fileType: fileType}
}

// ReadData reads the file into a Dataset.
func (r *Reader) ReadData() (*Dataset, error) {
	if _, err := os.Stat(r.filePath); os.IsNotExist(err) {
		return nil, errors.NotFound(r.filePath)
	}

	switch r.fileType {
	case "csv":
		return r.readCSV()
	case "xlsx":
		return r.readExcel()
	default:
		return nil, errors.InvalidInput("unsupported file type: " + r.fileType)
	}
}

func (r *Reader) readExcel() (*Dataset, error) {
	f, err := excelize.OpenFile(r.filePath)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open Excel file")
	}
	defer f.Close()

	rows, err := f.GetRows("Sheet1")
	if err != nil {
		return nil, errors.Wrap(err, "failed to read Sheet1")
	}
	return r.processRows(rows)
}

func (r *Reader) readCSV() (*Dataset, error) {
	file, err := os.Open(r.filePath)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open CSV file")
	}
	defer file.Close()

	rows, err := csv.NewReader(file).ReadAll()
	if err != nil {
		return nil, errors.Wrap(err, "failed to read CSV file")
	}
	return r.processRows(rows)
}

func (r *Reader) processRows(rows [][]string) (*Dataset, error) {
	if len(rows) < 2 {
		return nil, errors.ValidationError("file must have a header row and at least one data row")
	}

	headers := make([]string, len(rows[0]))
	for i, header := range rows[0] {
		headers[i] = strings.TrimSpace(header)
	}

	data := make([][]string, 0, len(rows)-1)
	for _, row := range rows[1:] {
		cells := make([]string, len(headers))
		for j := range headers {
			if j < len(row) {
				cells[j] = strings.TrimSpace(row[j])
			}
		}
		data = append(data, cells)
	}

	internal.DefaultLogger.Debug("read %s: %d columns, %d rows", r.filePath, len(headers), len(data))
	return &Dataset{Headers: headers, Rows: data}, nil
}

// columnIndex returns the position of a named column.
func (d *Dataset) columnIndex(name string) (int, error) {
	for i, h := range d.Headers {
		if h == name {
			return i, nil
		}
	}
	return 0, errors.NotFound("column " + name)
}

// NumericColumn parses a column as continuous data. Empty cells and the
// usual missing-value markers become NaN so the sample validation rejects
// them rather than silently miscalculating.
func (d *Dataset) NumericColumn(name string) ([]float64, error) {
	idx, err := d.columnIndex(name)
	if err != nil {
		return nil, err
	}

	values := make([]float64, len(d.Rows))
	for i, row := range d.Rows {
		cell := row[idx]
		if isMissing(cell) {
			values[i] = math.NaN()
			continue
		}
		v, err := strconv.ParseFloat(cell, 64)
		if err != nil {
			return nil, errors.ValidationErrorf("column %q has non-numeric value %q at row %d", name, cell, i+1)
		}
		values[i] = v
	}
	return values, nil
}

// LabelColumn returns a column as categorical labels. Missing markers become
// empty labels so the categorical validation rejects them.
func (d *Dataset) LabelColumn(name string) ([]string, error) {
	idx, err := d.columnIndex(name)
	if err != nil {
		return nil, err
	}

	labels := make([]string, len(d.Rows))
	for i, row := range d.Rows {
		cell := row[idx]
		if isMissing(cell) {
			cell = ""
		}
		labels[i] = cell
	}
	return labels, nil
}

func isMissing(cell string) bool {
	switch strings.ToLower(cell) {
	case "", "na", "n/a", "nan", "null":
		return true
	}
	return false
}
