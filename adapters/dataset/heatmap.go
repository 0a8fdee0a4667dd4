package dataset

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"statcheck/adapters/stats/engine"
	"statcheck/internal/errors"
)

// WriteHeatmap exports a matrix sweep result as an XLSX sheet with a
// three-color scale over the coefficients, the spreadsheet equivalent of a
// heatmap plot.
func WriteHeatmap(path string, m *engine.MatrixResult) error {
	f := excelize.NewFile()
	defer f.Close()
	const sheet = "Sheet1"

	title := fmt.Sprintf("%s test's coefficient (alpha=%.2g, sweep %s)", m.Test, m.Alpha, m.SweepID)
	if err := f.SetCellValue(sheet, "A1", title); err != nil {
		return errors.Wrap(err, "failed to write heatmap title")
	}

	// Header row and column
	for j, col := range m.Columns {
		cell, _ := excelize.CoordinatesToCellName(j+2, 2)
		if err := f.SetCellValue(sheet, cell, col); err != nil {
			return errors.Wrap(err, "failed to write heatmap header")
		}
		rowCell, _ := excelize.CoordinatesToCellName(1, j+3)
		if err := f.SetCellValue(sheet, rowCell, col); err != nil {
			return errors.Wrap(err, "failed to write heatmap header")
		}
	}

	for i := range m.Columns {
		for j := range m.Columns {
			cell, _ := excelize.CoordinatesToCellName(j+2, i+3)
			if err := f.SetCellValue(sheet, cell, m.Coefficients[i][j]); err != nil {
				return errors.Wrap(err, "failed to write heatmap cell")
			}
		}
	}

	// Three-color scale across the coefficient block
	k := len(m.Columns)
	topLeft, _ := excelize.CoordinatesToCellName(2, 3)
	bottomRight, _ := excelize.CoordinatesToCellName(k+1, k+2)
	err := f.SetConditionalFormat(sheet, topLeft+":"+bottomRight, []excelize.ConditionalFormatOptions{
		{
			Type:     "3_color_scale",
			Criteria: "=",
			MinType:  "num",
			MinValue: "-1",
			MinColor: "#5A8AC6",
			MidType:  "num",
			MidValue: "0",
			MidColor: "#FCFCFF",
			MaxType:  "num",
			MaxValue: "1",
			MaxColor: "#F8696B",
		},
	})
	if err != nil {
		return errors.Wrap(err, "failed to apply heatmap color scale")
	}

	if err := f.SaveAs(path); err != nil {
		return errors.Wrap(err, "failed to save heatmap file")
	}
	return nil
}
