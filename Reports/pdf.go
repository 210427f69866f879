package Reports

import (
	"bytes"
	"fmt"
	"strconv"
	"time"

	"github.com/go-pdf/fpdf"

	"Mileage/Models"
)

var pdfColumnWidths = []float64{25, 45, 55, 20, 20, 25}

// DriveLogsPDF renders the drive logs as a single table, newest first, as
// they are passed in. generatedAt is printed in the title.
func DriveLogsPDF(driveLogs []Models.DriveLogWithJobSite, generatedAt time.Time) (*bytes.Buffer, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Drive logs", false)
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(40, 10, fmt.Sprintf("Drive logs: %s", generatedAt.Format(Models.DateLayout)))
	pdf.Ln(12)

	pdf.SetFont("Arial", "B", 10)
	pdf.SetFillColor(230, 230, 250)
	for i, header := range headers {
		pdf.CellFormat(pdfColumnWidths[i], 8, header, "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)

	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetFont("Arial", "", 9)
	for _, dl := range driveLogs {
		endKm := ""
		if dl.EndKm != nil {
			endKm = strconv.Itoa(*dl.EndKm)
		}
		cells := []string{
			dl.DateString(),
			tr(truncate(dl.JobSiteName, 28)),
			tr(truncate(dl.JobSiteAddress, 34)),
			strconv.Itoa(dl.StartKm),
			endKm,
			strconv.Itoa(dl.Distance()),
		}
		for i, cell := range cells {
			align := "L"
			if i >= 3 {
				align = "R"
			}
			pdf.CellFormat(pdfColumnWidths[i], 7, cell, "1", 0, align, false, 0, "")
		}
		pdf.Ln(-1)
	}

	summary := Summarize(driveLogs)
	pdf.Ln(4)
	pdf.SetFont("Arial", "B", 12)
	pdf.Cell(0, 10, fmt.Sprintf("Drives: %d   Total distance: %d km", summary.Count, summary.TotalKm))

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("error writing PDF: %w", err)
	}
	return &buf, nil
}

func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-1]) + "…"
}
