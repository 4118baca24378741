package export

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"strings"
	"time"

	"github.com/jonathan/resume-finalizer/internal/types"
)

// WordprocessingML layout constants. Sizes are half-points, distances are
// twips (1/20 point): US Letter 12240x15840, 0.75" margins.
const (
	docxPageWidth  = 12240
	docxPageHeight = 15840
	docxMargin     = 1080

	docxFont     = "Calibri"
	docxBodySize = 22 // 11pt
	docxHeadSize = 24 // 12pt
	docxMarkSize = 16 // 8pt

	docxLineSpacing   = 276 // 1.15 lines
	docxHeadingBefore = 240
	docxHeadingAfter  = 120
	docxHangingIndent = 270
	docxMutedColor    = "808080"
	docxBorderColor   = "3C3C3C"
)

const wNS = `xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main" xmlns:r="http://schemas.openxmlformats.org/officeDocument/2006/relationships"`

// DOCX serializes the final document into a styled OOXML package: a zip
// holding the document part, a styles part carrying the document-wide
// default run properties, and a footer part referenced from the single
// page-layout section.
func DOCX(doc *types.FinalDocument, enhancedOrder []string) (*File, error) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)

	parts := []struct {
		name string
		body string
	}{
		{"[Content_Types].xml", docxContentTypes},
		{"_rels/.rels", docxPackageRels},
		{"word/_rels/document.xml.rels", docxDocumentRels},
		{"word/styles.xml", docxStyles()},
		{"word/footer1.xml", docxFooter()},
		{"word/document.xml", docxDocument(doc, enhancedOrder)},
	}

	for _, part := range parts {
		f, err := zw.Create(part.name)
		if err != nil {
			zw.Close()
			return nil, &Error{Format: "docx", Message: fmt.Sprintf("failed to create part %s", part.name), Cause: err}
		}
		if _, err := f.Write([]byte(part.body)); err != nil {
			zw.Close()
			return nil, &Error{Format: "docx", Message: fmt.Sprintf("failed to write part %s", part.name), Cause: err}
		}
	}

	if err := zw.Close(); err != nil {
		return nil, &Error{Format: "docx", Message: "failed to finalize package", Cause: err}
	}

	return &File{
		Name: Filename("docx", time.Now()),
		MIME: MIMEDOCX,
		Data: buf.Bytes(),
	}, nil
}

// docxDocument builds word/document.xml: sections in canonical order, each
// a bold upper-cased heading with a bottom border rule followed by its
// paragraphs, closed by the single page-layout section referencing the
// footer.
func docxDocument(doc *types.FinalDocument, enhancedOrder []string) string {
	var b strings.Builder
	b.WriteString(xml.Header)
	b.WriteString(`<w:document ` + wNS + `><w:body>`)

	for i, name := range CanonicalOrder(doc, enhancedOrder) {
		writeHeading(&b, SectionTitle(name), i == 0)

		contact := isContactSection(name)
		for _, item := range doc.Items(name) {
			if contact {
				writeContactParagraph(&b, item.Content)
			} else {
				writeBulletParagraph(&b, item.Content)
			}
		}
	}

	fmt.Fprintf(&b,
		`<w:sectPr><w:footerReference w:type="default" r:id="rId1"/>`+
			`<w:pgSz w:w="%d" w:h="%d"/>`+
			`<w:pgMar w:top="%d" w:right="%d" w:bottom="%d" w:left="%d" w:header="720" w:footer="720" w:gutter="0"/>`+
			`</w:sectPr>`,
		docxPageWidth, docxPageHeight, docxMargin, docxMargin, docxMargin, docxMargin)

	b.WriteString(`</w:body></w:document>`)
	return b.String()
}

// writeHeading emits a bold upper-cased heading paragraph. The first
// heading gets zero spacing-before; subsequent ones get the fixed gap.
func writeHeading(b *strings.Builder, title string, first bool) {
	before := docxHeadingBefore
	if first {
		before = 0
	}
	fmt.Fprintf(b,
		`<w:p><w:pPr>`+
			`<w:pBdr><w:bottom w:val="single" w:sz="6" w:space="1" w:color="%s"/></w:pBdr>`+
			`<w:spacing w:before="%d" w:after="%d"/>`+
			`<w:rPr><w:b/><w:sz w:val="%d"/></w:rPr>`+
			`</w:pPr>`+
			`<w:r><w:rPr><w:b/><w:sz w:val="%d"/></w:rPr><w:t xml:space="preserve">%s</w:t></w:r>`+
			`</w:p>`,
		docxBorderColor, before, docxHeadingAfter, docxHeadSize, docxHeadSize,
		escapeXML(strings.ToUpper(title)))
}

// writeContactParagraph emits a left-aligned plain paragraph.
func writeContactParagraph(b *strings.Builder, content string) {
	fmt.Fprintf(b,
		`<w:p><w:pPr><w:jc w:val="left"/></w:pPr>`+
			`<w:r><w:t xml:space="preserve">%s</w:t></w:r></w:p>`,
		escapeXML(content))
}

// writeBulletParagraph emits a bullet-prefixed paragraph with a hanging
// indent matching the bullet width.
func writeBulletParagraph(b *strings.Builder, content string) {
	fmt.Fprintf(b,
		`<w:p><w:pPr><w:ind w:left="%d" w:hanging="%d"/></w:pPr>`+
			`<w:r><w:t xml:space="preserve">%s</w:t></w:r></w:p>`,
		docxHangingIndent, docxHangingIndent,
		escapeXML("• "+content))
}

// docxStyles emits the styles part carrying document-wide run and
// paragraph defaults: font family, size, line spacing.
func docxStyles() string {
	return xml.Header + fmt.Sprintf(
		`<w:styles `+wNS+`><w:docDefaults>`+
			`<w:rPrDefault><w:rPr>`+
			`<w:rFonts w:ascii="%s" w:hAnsi="%s" w:cs="%s"/>`+
			`<w:sz w:val="%d"/><w:szCs w:val="%d"/>`+
			`</w:rPr></w:rPrDefault>`+
			`<w:pPrDefault><w:pPr><w:spacing w:line="%d" w:lineRule="auto"/></w:pPr></w:pPrDefault>`+
			`</w:docDefaults></w:styles>`,
		docxFont, docxFont, docxFont, docxBodySize, docxBodySize, docxLineSpacing)
}

// docxFooter emits the footer part: right-aligned italic muted attribution
// present on every page.
func docxFooter() string {
	return xml.Header + fmt.Sprintf(
		`<w:ftr `+wNS+`><w:p>`+
			`<w:pPr><w:jc w:val="right"/></w:pPr>`+
			`<w:r><w:rPr><w:i/><w:color w:val="%s"/><w:sz w:val="%d"/></w:rPr>`+
			`<w:t xml:space="preserve">%s</w:t></w:r>`+
			`</w:p></w:ftr>`,
		docxMutedColor, docxMarkSize, escapeXML(attribution))
}

const docxContentTypes = xml.Header +
	`<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">` +
	`<Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/>` +
	`<Default Extension="xml" ContentType="application/xml"/>` +
	`<Override PartName="/word/document.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"/>` +
	`<Override PartName="/word/styles.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.styles+xml"/>` +
	`<Override PartName="/word/footer1.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.footer+xml"/>` +
	`</Types>`

const docxPackageRels = xml.Header +
	`<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">` +
	`<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument" Target="word/document.xml"/>` +
	`</Relationships>`

const docxDocumentRels = xml.Header +
	`<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">` +
	`<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/footer" Target="footer1.xml"/>` +
	`<Relationship Id="rId2" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/styles" Target="styles.xml"/>` +
	`</Relationships>`

func escapeXML(s string) string {
	var buf bytes.Buffer
	if err := xml.EscapeText(&buf, []byte(s)); err != nil {
		return s
	}
	return buf.String()
}
