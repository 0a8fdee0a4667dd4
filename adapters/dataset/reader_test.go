package dataset

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"statcheck/adapters/stats/engine"
	"statcheck/internal/errors"
)

func writeCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "data.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestReader_CSV(t *testing.T) {
	path := writeCSV(t, "height,weight,group\n170,65,a\n182,80,b\n176,72,a\n")

	ds, err := NewReader(path).ReadData()
	require.NoError(t, err)

	assert.Equal(t, []string{"height", "weight", "group"}, ds.Headers)
	assert.Len(t, ds.Rows, 3)

	heights, err := ds.NumericColumn("height")
	require.NoError(t, err)
	assert.Equal(t, []float64{170, 182, 176}, heights)

	groups, err := ds.LabelColumn("group")
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "a"}, groups)
}

func TestReader_MissingValues(t *testing.T) {
	path := writeCSV(t, "x,label\n1.5,yes\nNA,no\n2.5,null\n")

	ds, err := NewReader(path).ReadData()
	require.NoError(t, err)

	x, err := ds.NumericColumn("x")
	require.NoError(t, err)
	assert.Equal(t, 1.5, x[0])
	assert.True(t, math.IsNaN(x[1]), "missing marker should read as NaN")

	labels, err := ds.LabelColumn("label")
	require.NoError(t, err)
	assert.Equal(t, "", labels[2], "missing marker should read as an empty label")
}

func TestReader_NonNumericValue(t *testing.T) {
	path := writeCSV(t, "x\n1\ntwo\n3\n")

	ds, err := NewReader(path).ReadData()
	require.NoError(t, err)

	_, err = ds.NumericColumn("x")
	require.Error(t, err)
	assert.Equal(t, errors.CodeValidationError, errors.GetCode(err))
	assert.Contains(t, err.Error(), "two")
}

func TestReader_UnknownColumn(t *testing.T) {
	path := writeCSV(t, "x\n1\n2\n")

	ds, err := NewReader(path).ReadData()
	require.NoError(t, err)

	_, err = ds.NumericColumn("y")
	require.Error(t, err)
	assert.Equal(t, errors.CodeNotFound, errors.GetCode(err))
}

func TestReader_FileNotFound(t *testing.T) {
	_, err := NewReader("/nonexistent/data.csv").ReadData()
	require.Error(t, err)
	assert.Equal(t, errors.CodeNotFound, errors.GetCode(err))
}

func TestReader_HeaderOnly(t *testing.T) {
	path := writeCSV(t, "x,y\n")

	_, err := NewReader(path).ReadData()
	require.Error(t, err)
	assert.Equal(t, errors.CodeValidationError, errors.GetCode(err))
}

func TestReader_Excel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.xlsx")
	f := excelize.NewFile()
	require.NoError(t, f.SetSheetRow("Sheet1", "A1", &[]interface{}{"x", "y"}))
	require.NoError(t, f.SetSheetRow("Sheet1", "A2", &[]interface{}{1.5, 2.5}))
	require.NoError(t, f.SetSheetRow("Sheet1", "A3", &[]interface{}{3.5, 4.5}))
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())

	ds, err := NewReader(path).ReadData()
	require.NoError(t, err)
	assert.Equal(t, []string{"x", "y"}, ds.Headers)

	x, err := ds.NumericColumn("x")
	require.NoError(t, err)
	assert.Equal(t, []float64{1.5, 3.5}, x)
}

func TestWriteHeatmap(t *testing.T) {
	path := filepath.Join(t.TempDir(), "matrix.xlsx")
	m := &engine.MatrixResult{
		SweepID: "test-sweep",
		Test:    "pearson",
		Alpha:   0.05,
		Columns: []string{"a", "b"},
		Coefficients: [][]float64{
			{1, 0.42},
			{0.42, 1},
		},
		PValues: [][]float64{
			{0, 0.02},
			{0.02, 0},
		},
		Comparisons: 3,
	}

	require.NoError(t, WriteHeatmap(path, m))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	header, err := f.GetCellValue("Sheet1", "B2")
	require.NoError(t, err)
	assert.Equal(t, "a", header)

	cell, err := f.GetCellValue("Sheet1", "C3")
	require.NoError(t, err)
	assert.Equal(t, "0.42", cell)
}
