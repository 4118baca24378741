package export

import (
	"bytes"
	"strings"
	"time"

	"github.com/jung-kurt/gofpdf"

	"github.com/jonathan/resume-finalizer/internal/types"
)

// Page geometry in points, US Letter.
const (
	pdfPageWidth    = 612.0
	pdfPageHeight   = 792.0
	pdfMargin       = 54.0
	pdfTitleHeight  = 22.0
	pdfLineHeight   = 14.0
	pdfItemSpacing  = 4.0
	pdfSectionGap   = 16.0
	pdfBulletIndent = 14.0

	// pdfBottomLimit is where content must stop; within pdfBreakThreshold
	// of it a new page starts before drawing the next block.
	pdfBottomLimit    = pdfPageHeight - pdfMargin
	pdfBreakThreshold = 28.0
)

const (
	pdfBodyFont  = "Helvetica"
	pdfBodySize  = 10.0
	pdfTitleSize = 12.0
	pdfMarkSize  = 7.0
)

// PDF serializes the final document into a paginated, styled PDF.
//
// The writer runs a page-fill loop: a vertical cursor advances down each
// page, every page gets the attribution watermark stamped on creation, and
// each section title and item checks remaining space before drawing.
func PDF(doc *types.FinalDocument, enhancedOrder []string) (*File, error) {
	w := newPDFWriter()

	for i, name := range CanonicalOrder(doc, enhancedOrder) {
		if i > 0 {
			w.y += pdfSectionGap
		}
		w.drawSectionTitle(SectionTitle(name))

		contact := isContactSection(name)
		for _, item := range doc.Items(name) {
			if contact {
				w.drawPlainItem(item.Content)
			} else {
				w.drawBulletItem(item.Content)
			}
		}
	}

	var buf bytes.Buffer
	if err := w.pdf.Output(&buf); err != nil {
		return nil, &Error{Format: "pdf", Message: "failed to encode document", Cause: err}
	}

	return &File{
		Name: Filename("pdf", time.Now()),
		MIME: MIMEPDF,
		Data: buf.Bytes(),
	}, nil
}

type pdfWriter struct {
	pdf       *gofpdf.Fpdf
	translate func(string) string
	y         float64
}

func newPDFWriter() *pdfWriter {
	pdf := gofpdf.New("P", "pt", "Letter", "")
	pdf.SetMargins(pdfMargin, pdfMargin, pdfMargin)
	pdf.SetAutoPageBreak(false, 0)

	w := &pdfWriter{
		pdf:       pdf,
		translate: pdf.UnicodeTranslatorFromDescriptor(""),
	}
	w.newPage()
	return w
}

// newPage starts a fresh page, stamps the watermark before any content is
// drawn, and resets the cursor to the top margin.
func (w *pdfWriter) newPage() {
	w.pdf.AddPage()
	w.stampWatermark()
	w.y = pdfMargin
}

func (w *pdfWriter) stampWatermark() {
	w.pdf.SetFont(pdfBodyFont, "I", pdfMarkSize)
	w.pdf.SetTextColor(150, 150, 150)
	mark := w.translate(attribution)
	x := pdfPageWidth - pdfMargin - w.pdf.GetStringWidth(mark)
	w.pdf.Text(x, pdfPageHeight-pdfMargin/2, mark)
	w.pdf.SetTextColor(0, 0, 0)
}

// ensureRoom paginates when fewer than needed points remain, or when the
// cursor has drifted into the break threshold above the bottom margin.
// At the top of a fresh page it never paginates, so a block taller than a
// whole page starts drawing and spills over via the per-line checks.
func (w *pdfWriter) ensureRoom(needed float64) {
	if w.y <= pdfMargin {
		return
	}
	if w.y+needed > pdfBottomLimit || w.y > pdfBottomLimit-pdfBreakThreshold {
		w.newPage()
	}
}

// drawSectionTitle renders an upper-cased bold title with an underline
// rule matching the title's rendered width.
func (w *pdfWriter) drawSectionTitle(title string) {
	w.ensureRoom(pdfTitleHeight + pdfLineHeight)

	w.pdf.SetFont(pdfBodyFont, "B", pdfTitleSize)
	text := w.translate(strings.ToUpper(title))
	w.pdf.Text(pdfMargin, w.y+pdfTitleSize, text)

	ruleY := w.y + pdfTitleSize + 4
	w.pdf.SetLineWidth(0.6)
	w.pdf.SetDrawColor(60, 60, 60)
	w.pdf.Line(pdfMargin, ruleY, pdfMargin+w.pdf.GetStringWidth(text), ruleY)

	w.y += pdfTitleHeight
}

// drawPlainItem renders wrapped text with no bullet, for contact sections.
func (w *pdfWriter) drawPlainItem(content string) {
	lines := w.wrap(content, pdfPageWidth-2*pdfMargin)
	w.ensureRoom(float64(len(lines))*pdfLineHeight + pdfItemSpacing)
	w.drawLines(lines, pdfMargin)
}

// drawBulletItem renders a bullet glyph with hanging-indented wrapped text.
// Room is checked before the glyph goes down so bullet and first line
// always share a page.
func (w *pdfWriter) drawBulletItem(content string) {
	lines := w.wrap(content, pdfPageWidth-2*pdfMargin-pdfBulletIndent)
	w.ensureRoom(float64(len(lines))*pdfLineHeight + pdfItemSpacing)
	w.pdf.Text(pdfMargin, w.y+pdfBodySize, w.translate("•"))
	w.drawLines(lines, pdfMargin+pdfBulletIndent)
}

// wrap word-wraps content at the given column width using the renderer's
// own metrics.
func (w *pdfWriter) wrap(content string, width float64) []string {
	w.pdf.SetFont(pdfBodyFont, "", pdfBodySize)
	lines := w.pdf.SplitText(w.translate(content), width)
	if len(lines) == 0 {
		lines = []string{""}
	}
	return lines
}

// drawLines renders wrapped lines, advancing the cursor by line count
// times the line height plus the fixed item spacing. Every line re-checks
// the bottom limit so an item taller than the remaining page spills onto a
// new one.
func (w *pdfWriter) drawLines(lines []string, x float64) {
	w.pdf.SetFont(pdfBodyFont, "", pdfBodySize)
	for _, line := range lines {
		if w.y+pdfLineHeight > pdfBottomLimit {
			w.newPage()
			w.pdf.SetFont(pdfBodyFont, "", pdfBodySize)
		}
		w.pdf.Text(x, w.y+pdfBodySize, line)
		w.y += pdfLineHeight
	}
	w.y += pdfItemSpacing
}
