// Package Reports renders completed drive logs as downloadable files.
package Reports

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"

	"Mileage/Models"
)

const sheetName = "Drive logs"

var headers = []string{"Date", "Job site", "Address", "Start km", "End km", "Distance km"}

// Summary totals a list of drive logs.
type Summary struct {
	Count   int
	TotalKm int
}

// Summarize adds up the distance of every log that has an end reading.
func Summarize(driveLogs []Models.DriveLogWithJobSite) Summary {
	s := Summary{Count: len(driveLogs)}
	for _, dl := range driveLogs {
		s.TotalKm += dl.Distance()
	}
	return s
}

// DriveLogsXLSX builds a workbook with one row per drive log and a total
// row at the bottom.
func DriveLogsXLSX(driveLogs []Models.DriveLogWithJobSite) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return nil, fmt.Errorf("error naming sheet: %w", err)
	}

	for i, header := range headers {
		if err := f.SetCellValue(sheetName, cellName(i, 1), header); err != nil {
			return nil, err
		}
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{
			Type:    "pattern",
			Color:   []string{"#E6E6FA"},
			Pattern: 1,
		},
	})
	styled := err == nil
	if styled {
		f.SetRowStyle(sheetName, 1, 1, headerStyle)
	}

	for rowIndex, dl := range driveLogs {
		row := rowIndex + 2
		var endKm interface{}
		if dl.EndKm != nil {
			endKm = *dl.EndKm
		}
		values := []interface{}{
			dl.DateString(),
			dl.JobSiteName,
			dl.JobSiteAddress,
			dl.StartKm,
			endKm,
			dl.Distance(),
		}
		for colIndex, value := range values {
			if err := f.SetCellValue(sheetName, cellName(colIndex, row), value); err != nil {
				return nil, err
			}
		}
	}

	totalRow := len(driveLogs) + 2
	summary := Summarize(driveLogs)
	f.SetCellValue(sheetName, cellName(0, totalRow), "Total")
	f.SetCellValue(sheetName, cellName(len(headers)-1, totalRow), summary.TotalKm)
	if styled {
		f.SetRowStyle(sheetName, totalRow, totalRow, headerStyle)
	}

	f.SetColWidth(sheetName, "A", "A", 12)
	f.SetColWidth(sheetName, "B", "C", 30)
	f.SetColWidth(sheetName, "D", "F", 12)

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("error writing Excel file to buffer: %w", err)
	}
	return &buf, nil
}

func cellName(col, row int) string {
	name, _ := excelize.CoordinatesToCellName(col+1, row)
	return name
}
