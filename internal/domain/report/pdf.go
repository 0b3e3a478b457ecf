package report

import (
	"bytes"
	"context"
	"time"

	"github.com/jung-kurt/gofpdf"
)

// BuildPDF renders the same table as BuildCSV as a landscape A4 grid.
func (b *Builder) BuildPDF(ctx context.Context, userID string, from, to time.Time) ([]byte, error) {
	rows, err := b.tabulate(ctx, userID, from, to)
	if err != nil {
		return nil, err
	}

	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.SetTitle("Attendance Report", false)
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(0, 8, "Attendance "+from.Format(dayFormat)+" - "+to.Format(dayFormat), "", 1, "L", false, 0, "")
	pdf.Ln(2)

	pageWidth, _ := pdf.GetPageSize()
	left, _, right, _ := pdf.GetMargins()
	colWidth := (pageWidth - left - right) / float64(len(rows[0]))

	pdf.SetFont("Arial", "B", 9)
	for i, row := range rows {
		if i == 1 {
			pdf.SetFont("Arial", "", 9)
		}
		for _, cell := range row {
			pdf.CellFormat(colWidth, 6, cell, "1", 0, "C", false, 0, "")
		}
		pdf.Ln(-1)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
