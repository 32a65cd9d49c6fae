// Package xlsxfile reads and writes translation grids as Excel workbooks.
//
// Only a single worksheet is used. The first row is the header; empty grid
// cells are left unset in the workbook.
package xlsxfile

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/minios-linux/transheet/grid"
)

// Default layout values.
const (
	DefaultSheet       = "Sheet1"
	DefaultColumnWidth = 50
)

// WriteOptions controls the workbook layout.
type WriteOptions struct {
	// Sheet is the worksheet name (default "Sheet1").
	Sheet string
	// ColumnWidth is applied to every used column (default 50).
	ColumnWidth float64
}

// ReadFile opens the workbook at path and returns the rows of sheet.
// An empty sheet name selects the first worksheet.
func ReadFile(path, sheet string) (grid.Grid, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, fmt.Errorf("%s: workbook has no sheets", path)
		}
		sheet = sheets[0]
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("reading sheet %q of %s: %w", sheet, path, err)
	}
	return grid.Grid(rows), nil
}

// WriteFile stores g in a new workbook at path, overwriting any existing file.
func WriteFile(path string, g grid.Grid, opts WriteOptions) error {
	if opts.Sheet == "" {
		opts.Sheet = DefaultSheet
	}
	if opts.ColumnWidth <= 0 {
		opts.ColumnWidth = DefaultColumnWidth
	}

	f := excelize.NewFile()
	defer f.Close()

	if opts.Sheet != DefaultSheet {
		if err := f.SetSheetName(DefaultSheet, opts.Sheet); err != nil {
			return fmt.Errorf("naming sheet %q: %w", opts.Sheet, err)
		}
	}

	width := 0
	for r, row := range g {
		if len(row) > width {
			width = len(row)
		}
		for c, value := range row {
			if value == "" {
				continue
			}
			cell, err := excelize.CoordinatesToCellName(c+1, r+1)
			if err != nil {
				return err
			}
			// SetCellStr keeps values like "007" or "TRUE" as text.
			if err := f.SetCellStr(opts.Sheet, cell, value); err != nil {
				return fmt.Errorf("writing cell %s: %w", cell, err)
			}
		}
	}

	if width > 0 {
		last, err := excelize.ColumnNumberToName(width)
		if err != nil {
			return err
		}
		if err := f.SetColWidth(opts.Sheet, "A", last, opts.ColumnWidth); err != nil {
			return fmt.Errorf("setting column width: %w", err)
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
