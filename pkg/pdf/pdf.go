// Package pdf builds contract documents with gofpdf.
package pdf

import (
	"bytes"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"
)

// Field is one label/value row in a contract section.
type Field struct {
	Label string
	Value string
}

// Document describes a contract to render.
type Document struct {
	Title     string
	Reference string // e.g. "Order #42"
	Sections  []Section
	Body      string // rendered terms text
	IssuedAt  time.Time
}

// Section groups related fields under a heading.
type Section struct {
	Heading string
	Fields  []Field
}

// Render produces the PDF bytes for the document.
func Render(doc Document) ([]byte, error) {
	f := gofpdf.New("P", "mm", "A4", "")
	f.SetTitle(doc.Title, true)
	f.SetMargins(20, 20, 20)
	f.AddPage()

	// Header
	f.SetFont("Helvetica", "B", 18)
	f.CellFormat(0, 12, doc.Title, "", 1, "C", false, 0, "")

	f.SetFont("Helvetica", "", 10)
	f.SetTextColor(100, 100, 100)
	issued := doc.IssuedAt
	if issued.IsZero() {
		issued = time.Now()
	}
	f.CellFormat(0, 6, fmt.Sprintf("%s  ·  %s", doc.Reference, issued.Format("2 January 2006")), "", 1, "C", false, 0, "")
	f.Ln(6)
	f.SetTextColor(0, 0, 0)

	// Sections
	for _, sec := range doc.Sections {
		f.SetFont("Helvetica", "B", 12)
		f.CellFormat(0, 8, sec.Heading, "", 1, "L", false, 0, "")
		f.SetDrawColor(200, 200, 200)
		f.Line(20, f.GetY(), 190, f.GetY())
		f.Ln(2)

		f.SetFont("Helvetica", "", 10)
		for _, field := range sec.Fields {
			f.SetFont("Helvetica", "B", 10)
			f.CellFormat(50, 6, field.Label, "", 0, "L", false, 0, "")
			f.SetFont("Helvetica", "", 10)
			f.MultiCell(0, 6, field.Value, "", "L", false)
		}
		f.Ln(4)
	}

	// Terms body
	if doc.Body != "" {
		f.SetFont("Helvetica", "B", 12)
		f.CellFormat(0, 8, "Terms and Conditions", "", 1, "L", false, 0, "")
		f.Ln(1)
		f.SetFont("Helvetica", "", 10)
		f.MultiCell(0, 5, doc.Body, "", "L", false)
	}

	// Signature lines
	f.Ln(14)
	f.SetFont("Helvetica", "", 10)
	y := f.GetY()
	f.Line(20, y, 80, y)
	f.Line(120, y, 180, y)
	f.SetY(y + 1)
	f.CellFormat(60, 6, "Customer signature", "", 0, "L", false, 0, "")
	f.SetX(120)
	f.CellFormat(60, 6, "Company representative", "", 1, "L", false, 0, "")

	var buf bytes.Buffer
	if err := f.Output(&buf); err != nil {
		return nil, fmt.Errorf("pdf: render %q: %w", doc.Title, err)
	}
	return buf.Bytes(), nil
}
