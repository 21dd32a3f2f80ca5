package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

// Sheet is one worksheet of a generated workbook.
type Sheet struct {
	Name    string
	Title   string
	Headers []string
	Rows    [][]any
}

// WriteXLSX renders sheets into a workbook and writes it to w. The first
// sheet replaces the default "Sheet1".
func WriteXLSX(w io.Writer, sheets ...Sheet) error {
	if len(sheets) == 0 {
		return fmt.Errorf("export: no sheets")
	}

	f := excelize.NewFile()
	defer f.Close()

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11, Color: "#FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return fmt.Errorf("export: header style: %w", err)
	}
	titleStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 14},
	})
	if err != nil {
		return fmt.Errorf("export: title style: %w", err)
	}

	for i, sheet := range sheets {
		if i == 0 {
			if err := f.SetSheetName("Sheet1", sheet.Name); err != nil {
				return err
			}
		} else if _, err := f.NewSheet(sheet.Name); err != nil {
			return err
		}

		row := 1
		if sheet.Title != "" {
			if err := f.SetCellValue(sheet.Name, "A1", sheet.Title); err != nil {
				return err
			}
			if err := f.SetCellStyle(sheet.Name, "A1", "A1", titleStyle); err != nil {
				return err
			}
			row = 3
		}

		if err := writeRow(f, sheet.Name, row, toAny(sheet.Headers)); err != nil {
			return err
		}
		if len(sheet.Headers) > 0 {
			first, _ := excelize.CoordinatesToCellName(1, row)
			last, _ := excelize.CoordinatesToCellName(len(sheet.Headers), row)
			if err := f.SetCellStyle(sheet.Name, first, last, headerStyle); err != nil {
				return err
			}
			lastCol, _ := excelize.ColumnNumberToName(len(sheet.Headers))
			if err := f.SetColWidth(sheet.Name, "A", lastCol, 16); err != nil {
				return err
			}
		}

		for _, values := range sheet.Rows {
			row++
			if err := writeRow(f, sheet.Name, row, values); err != nil {
				return err
			}
		}
	}

	f.SetActiveSheet(0)
	return f.Write(w)
}

func writeRow(f *excelize.File, sheet string, row int, values []any) error {
	if len(values) == 0 {
		return nil
	}
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	return f.SetSheetRow(sheet, cell, &values)
}

func toAny(values []string) []any {
	out := make([]any, len(values))
	for i, v := range values {
		out[i] = v
	}
	return out
}
