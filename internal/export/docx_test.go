package export

import (
	"archive/zip"
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-finalizer/internal/types"
)

func readZipParts(t *testing.T, data []byte) map[string]string {
	t.Helper()
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	require.NoError(t, err)

	parts := make(map[string]string, len(zr.File))
	for _, f := range zr.File {
		rc, err := f.Open()
		require.NoError(t, err)
		body, err := io.ReadAll(rc)
		require.NoError(t, err)
		require.NoError(t, rc.Close())
		parts[f.Name] = string(body)
	}
	return parts
}

func TestDOCXPackageParts(t *testing.T) {
	file, err := DOCX(sampleFinalDoc(), []string{"Summary", "Skills"})
	require.NoError(t, err)

	assert.Equal(t, MIMEDOCX, file.MIME)
	assert.True(t, strings.HasSuffix(file.Name, ".docx"))

	parts := readZipParts(t, file.Data)
	for _, name := range []string{
		"[Content_Types].xml",
		"_rels/.rels",
		"word/_rels/document.xml.rels",
		"word/document.xml",
		"word/styles.xml",
		"word/footer1.xml",
	} {
		assert.Contains(t, parts, name)
	}
}

func TestDOCXDocumentContent(t *testing.T) {
	file, err := DOCX(sampleFinalDoc(), []string{"Summary", "Skills"})
	require.NoError(t, err)
	parts := readZipParts(t, file.Data)
	document := parts["word/document.xml"]

	// Headings upper-case in canonical order, bullets on regular items,
	// plain lines in the contact section.
	assert.Contains(t, document, "SUMMARY")
	assert.Contains(t, document, "SKILLS")
	assert.Contains(t, document, "CONTACT INFORMATION")
	assert.Less(t, strings.Index(document, "SUMMARY"), strings.Index(document, "SKILLS"))
	assert.Contains(t, document, "• Go")
	assert.NotContains(t, document, "• jane@example.com")
	assert.Contains(t, document, "jane@example.com")
	assert.Contains(t, document, `<w:footerReference w:type="default" r:id="rId1"/>`)
}

func TestDOCXFooterCarriesAttribution(t *testing.T) {
	file, err := DOCX(sampleFinalDoc(), nil)
	require.NoError(t, err)
	parts := readZipParts(t, file.Data)
	assert.Contains(t, parts["word/footer1.xml"], "Powered by Resume Finalizer")
}

func TestDOCXEscapesContent(t *testing.T) {
	doc := types.NewFinalDocument()
	doc.Append("Skills", types.FinalItem{Content: "C++ & <Go>", Source: types.SourceEnhanced})

	file, err := DOCX(doc, nil)
	require.NoError(t, err)
	parts := readZipParts(t, file.Data)
	document := parts["word/document.xml"]

	assert.Contains(t, document, "C++ &amp; &lt;Go&gt;")
	assert.NotContains(t, document, "<Go>")
}
