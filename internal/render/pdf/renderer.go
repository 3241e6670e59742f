package pdf

import (
	"bytes"
	"fmt"

	"github.com/go-pdf/fpdf"

	"github.com/alerthe/alerthe-server/internal/domain/models"
)

const (
	marginLeft  = 14.0
	marginRight = 14.0
	bottomSpace = 20.0

	rowHeight    = 6.0
	contentWidth = 210 - marginLeft - marginRight // A4 portrait, mm
)

// colWidths sums to contentWidth; the description column gets the bulk.
var colWidths = []float64{8, 28, 22, 22, 50, 18, 34}

// Renderer produces the PDF artifact for a compiled report document.
type Renderer struct {
	logoPath string
}

// NewRenderer builds a PDF renderer. logoPath is optional; when empty the
// header renders without an image.
func NewRenderer(logoPath string) *Renderer {
	return &Renderer{logoPath: logoPath}
}

// Render lays out the document on A4 pages and returns the PDF bytes. The
// incident table breaks across pages automatically with its header row
// repeated on every continuation page.
func (r *Renderer) Render(doc models.ReportDocument) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(doc.ReportNumber, true)
	pdf.SetAutoPageBreak(true, bottomSpace)

	pdf.SetFooterFunc(func() {
		_, pageH := pdf.GetPageSize()
		y := pageH - 14
		pdf.SetDrawColor(144, 202, 173)
		pdf.SetLineWidth(0.3)
		pdf.Line(marginLeft, y-4, 210-marginRight, y-4)
		pdf.SetFont("Helvetica", "", 8)
		pdf.SetTextColor(100, 100, 100)
		pdf.SetXY(marginLeft, y-2)
		pdf.CellFormat(contentWidth, 5,
			fmt.Sprintf("Report automatically generated on %s", doc.GeneratedAt.Format("02/01/2006 15:04:05")),
			"", 0, "C", false, 0, "")
	})

	pdf.AddPage()
	r.drawHeader(pdf, doc)
	r.drawSummary(pdf, doc)
	r.drawTable(pdf, doc)
	r.drawNarrative(pdf, doc)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("write pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func (r *Renderer) drawHeader(pdf *fpdf.Fpdf, doc models.ReportDocument) {
	if r.logoPath != "" {
		pdf.ImageOptions(r.logoPath, marginLeft, 10, 28, 28, false, fpdf.ImageOptions{ReadDpi: true}, 0, "")
	}

	pdf.SetFont("Helvetica", "B", 14)
	pdf.SetTextColor(40, 100, 70)
	pdf.SetXY(45, 14)
	pdf.MultiCell(150, 6, doc.Title, "", "L", false)

	pdf.SetFont("Helvetica", "", 11)
	pdf.SetTextColor(0, 0, 0)
	y := pdf.GetY() + 2
	pdf.SetXY(45, y)
	pdf.CellFormat(150, 6, doc.ReportNumber, "", 0, "L", false, 0, "")
	pdf.SetXY(45, y+6)
	pdf.CellFormat(150, 6, doc.PeriodLabel, "", 0, "L", false, 0, "")

	pdf.SetDrawColor(0, 0, 0)
	pdf.SetLineWidth(0.5)
	pdf.Line(marginLeft, 42, 210-marginRight, 42)
	pdf.SetY(50)
}

func (r *Renderer) drawSummary(pdf *fpdf.Fpdf, doc models.ReportDocument) {
	pdf.SetFont("Helvetica", "", 10)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetX(marginLeft)
	pdf.CellFormat(0, 5, "Executive Summary:", "", 1, "L", false, 0, "")
	pdf.SetX(marginLeft)
	pdf.MultiCell(contentWidth, 5, doc.ExecutiveSummary, "", "L", false)
	pdf.Ln(4)

	pdf.SetX(marginLeft)
	pdf.CellFormat(0, 5, "Summary by Category:", "", 1, "L", false, 0, "")
	for _, line := range doc.Breakdown {
		pdf.SetX(marginLeft + 6)
		pdf.CellFormat(0, 6, fmt.Sprintf("%s: %d (%.1f%%)", line.Category, line.Count, line.Percent),
			"", 1, "L", false, 0, "")
	}
	pdf.Ln(5)
}

func (r *Renderer) drawTable(pdf *fpdf.Fpdf, doc models.ReportDocument) {
	_, pageH := pdf.GetPageSize()
	bottom := pageH - bottomSpace

	drawHead := func() {
		pdf.SetFont("Helvetica", "B", 8)
		pdf.SetFillColor(144, 202, 173)
		pdf.SetTextColor(0, 0, 0)
		pdf.SetDrawColor(0, 0, 0)
		pdf.SetLineWidth(0.2)
		pdf.SetX(marginLeft)
		for i, label := range doc.TableHeader {
			pdf.CellFormat(colWidths[i], rowHeight, label, "1", 0, "C", true, 0, "")
		}
		pdf.Ln(rowHeight)
	}

	drawHead()
	pdf.SetFont("Helvetica", "", 8)

	for _, row := range doc.Rows {
		if pdf.GetY()+rowHeight > bottom {
			pdf.AddPage()
			drawHead()
			pdf.SetFont("Helvetica", "", 8)
		}

		cells := []string{
			fmt.Sprint(row.Seq),
			row.Name,
			row.Contact,
			row.Category,
			row.Description,
			row.Date,
			row.Coordinates,
		}
		pdf.SetX(marginLeft)
		for i, text := range cells {
			pdf.CellFormat(colWidths[i], rowHeight, clip(pdf, text, colWidths[i]-2), "1", 0, "L", false, 0, "")
		}
		pdf.Ln(rowHeight)
	}
}

func (r *Renderer) drawNarrative(pdf *fpdf.Fpdf, doc models.ReportDocument) {
	_, pageH := pdf.GetPageSize()
	y := pdf.GetY() + 10
	if y > pageH-bottomSpace-20 {
		pdf.AddPage()
		y = pdf.GetY()
	}

	pdf.SetFont("Helvetica", "", 10)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetXY(marginLeft, y)
	pdf.CellFormat(0, 5, "Technical Analysis:", "", 1, "L", false, 0, "")
	pdf.SetX(marginLeft)
	pdf.MultiCell(contentWidth, 5, doc.Narrative, "", "L", false)
}

// clip keeps a cell's text on one line within its column width.
func clip(pdf *fpdf.Fpdf, text string, width float64) string {
	if text == "" {
		return text
	}
	lines := pdf.SplitText(text, width)
	if len(lines) <= 1 {
		return text
	}
	return lines[0]
}
