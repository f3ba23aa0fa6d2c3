package report

import (
	"fmt"
	"io"

	"github.com/go-pdf/fpdf"
)

const (
	pdfTitle      = "Resume Shortlisting Report"
	pdfMargin     = 10.0
	pdfLineHeight = 5.0
	pdfCellPad    = 1.0
)

// Column widths in mm for A4 landscape; they add up to the printable width.
var pdfColumnWidths = []float64{45, 35, 15, 92, 90}

// WritePDF renders the table as a landscape A4 document with a title, the
// summary line and a bordered grid.
func WritePDF(w io.Writer, t *Table) error {
	doc := fpdf.New("L", "mm", "A4", "")
	doc.SetMargins(pdfMargin, pdfMargin, pdfMargin)
	doc.SetAutoPageBreak(false, pdfMargin)
	doc.SetTitle(pdfTitle, true)
	tr := doc.UnicodeTranslatorFromDescriptor("")

	doc.AddPage()
	doc.SetFont("Helvetica", "B", 16)
	doc.CellFormat(0, 10, pdfTitle, "", 1, "C", false, 0, "")
	if t.Summary != "" {
		doc.SetFont("Helvetica", "", 10)
		doc.CellFormat(0, 6, tr(t.Summary), "", 1, "C", false, 0, "")
	}
	doc.Ln(4)

	writePDFHeader(doc)

	_, pageHeight := doc.GetPageSize()
	for _, row := range t.Rows {
		doc.SetFont("Helvetica", "", 10)

		cells := row.Cells()
		lines := make([][]string, len(cells))
		maxLines := 1
		for i, cell := range cells {
			lines[i] = splitCell(doc, tr(cell), pdfColumnWidths[i]-2*pdfCellPad)
			maxLines = max(maxLines, len(lines[i]))
		}
		height := float64(maxLines)*pdfLineHeight + 2*pdfCellPad

		if doc.GetY()+height > pageHeight-pdfMargin {
			doc.AddPage()
			writePDFHeader(doc)
			doc.SetFont("Helvetica", "", 10)
		}

		x, y := doc.GetXY()
		for i, cellLines := range lines {
			width := pdfColumnWidths[i]
			doc.Rect(x, y, width, height, "D")
			for j, line := range cellLines {
				doc.SetXY(x+pdfCellPad, y+pdfCellPad+float64(j)*pdfLineHeight)
				doc.CellFormat(width-2*pdfCellPad, pdfLineHeight, line, "", 0, "L", false, 0, "")
			}
			x += width
		}
		doc.SetXY(pdfMargin, y+height)
	}

	if err := doc.Output(w); err != nil {
		return fmt.Errorf("failed to render pdf report: %w", err)
	}
	return nil
}

func writePDFHeader(doc *fpdf.Fpdf) {
	doc.SetFont("Helvetica", "B", 11)
	doc.SetFillColor(211, 211, 211)
	for i, header := range Headers {
		doc.CellFormat(pdfColumnWidths[i], 8, header, "1", 0, "C", true, 0, "")
	}
	doc.Ln(-1)
}

// splitCell wraps translated cp1252 text. SplitText measures rune by rune,
// so the bytes are widened to runes for measuring and narrowed back after.
func splitCell(doc *fpdf.Fpdf, encoded string, width float64) []string {
	widened := make([]rune, 0, len(encoded))
	for i := 0; i < len(encoded); i++ {
		widened = append(widened, rune(encoded[i]))
	}

	lines := doc.SplitText(string(widened), width)
	for i, line := range lines {
		narrowed := make([]byte, 0, len(line))
		for _, r := range line {
			narrowed = append(narrowed, byte(r))
		}
		lines[i] = string(narrowed)
	}
	return lines
}
