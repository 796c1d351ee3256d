package faculty

import (
	"bytes"
	"fmt"
	"sort"
	"time"

	"github.com/phpdave11/gofpdf"
)

// BuildDirectoryPDF renders the faculty directory grouped by department.
func BuildDirectoryPDF(faculties []*Faculty, generated time.Time) ([]byte, error) {
	rows := make([]*Faculty, len(faculties))
	copy(rows, faculties)
	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].Department != rows[j].Department {
			return rows[i].Department < rows[j].Department
		}
		return rows[i].Name < rows[j].Name
	})

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Faculty Directory", false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "Faculty Directory")
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "", 11)
	pdf.Cell(0, 7, fmt.Sprintf("Generated: %s", generated.Format("2006-01-02 15:04")))
	pdf.Ln(6)
	pdf.Cell(0, 7, fmt.Sprintf("Total faculty: %d", len(rows)))
	pdf.Ln(10)

	current := ""
	for _, f := range rows {
		if f.Department != current {
			current = f.Department
			pdf.Ln(2)
			pdf.SetFont("Helvetica", "B", 13)
			pdf.Cell(0, 8, current)
			pdf.Ln(8)

			pdf.SetFont("Helvetica", "B", 10)
			pdf.Cell(15, 6, "ID")
			pdf.Cell(70, 6, "Name")
			pdf.Cell(90, 6, "Email")
			pdf.Ln(6)
			pdf.SetFont("Helvetica", "", 10)
		}
		pdf.Cell(15, 6, fmt.Sprintf("%d", f.ID))
		pdf.Cell(70, 6, f.Name)
		pdf.Cell(90, 6, f.Email)
		pdf.Ln(6)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
