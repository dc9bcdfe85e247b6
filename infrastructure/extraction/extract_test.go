package extraction

import (
	"archive/zip"
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildDOCX(t *testing.T, documentXML string) []byte {
	t.Helper()
	var buf bytes.Buffer
	w := zip.NewWriter(&buf)
	f, err := w.Create("word/document.xml")
	require.NoError(t, err)
	_, err = f.Write([]byte(documentXML))
	require.NoError(t, err)
	require.NoError(t, w.Close())
	return buf.Bytes()
}

const sampleDocumentXML = `<?xml version="1.0" encoding="UTF-8"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
  <w:body>
    <w:p><w:r><w:t>Grace Hopper</w:t></w:r><w:r><w:t>Engineer</w:t></w:r></w:p>
    <w:p><w:r><w:t>Skills: Go, SQL</w:t></w:r></w:p>
    <w:p></w:p>
  </w:body>
</w:document>`

func TestDetectFormat(t *testing.T) {
	tests := []struct {
		name        string
		contentType string
		filename    string
		data        []byte
		expected    Format
	}{
		{"pdf content type", "application/pdf", "resume.bin", nil, FormatPDF},
		{"pdf extension", "application/octet-stream", "resume.PDF", nil, FormatPDF},
		{"docx content type", "application/vnd.openxmlformats-officedocument.wordprocessingml.document", "x", nil, FormatDOCX},
		{"docx extension", "", "resume.docx", nil, FormatDOCX},
		{"zip magic bytes", "", "resume", []byte("PK\x03\x04rest"), FormatDOCX},
		{"plain text fallback", "text/plain", "resume.txt", []byte("hello"), FormatText},
		{"empty everything", "", "", nil, FormatText},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, DetectFormat(tt.contentType, tt.filename, tt.data))
		})
	}
}

func TestExtractTextPlain(t *testing.T) {
	text := ExtractText("text/plain", "resume.txt", []byte("Grace Hopper\nEngineer"))
	assert.Equal(t, "Grace Hopper\nEngineer", text)
}

func TestExtractTextPlainDropsInvalidUTF8(t *testing.T) {
	text := ExtractText("text/plain", "resume.txt", []byte("Gr\xfface"))
	assert.Equal(t, "Grace", text)
}

func TestExtractTextDOCX(t *testing.T) {
	data := buildDOCX(t, sampleDocumentXML)
	text := ExtractText("", "resume.docx", data)
	assert.Equal(t, "Grace Hopper Engineer\nSkills: Go, SQL", text)
}

func TestExtractTextDOCXTablesAndHyperlinks(t *testing.T) {
	// Paragraphs in table cells and runs behind hyperlink wrappers carry
	// real resume content (skills tables, contact links).
	data := buildDOCX(t, `<?xml version="1.0" encoding="UTF-8"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
  <w:body>
    <w:p><w:r><w:t>Grace Hopper</w:t></w:r></w:p>
    <w:p><w:hyperlink><w:r><w:t>grace@navy.mil</w:t></w:r></w:hyperlink></w:p>
    <w:tbl>
      <w:tr>
        <w:tc><w:p><w:r><w:t>Skills: COBOL, Leadership</w:t></w:r></w:p></w:tc>
      </w:tr>
    </w:tbl>
  </w:body>
</w:document>`)
	text := ExtractText("", "resume.docx", data)
	assert.Equal(t, "Grace Hopper\ngrace@navy.mil\nSkills: COBOL, Leadership", text)
}

func TestExtractTextDOCXMissingDocumentPart(t *testing.T) {
	var buf bytes.Buffer
	w := zip.NewWriter(&buf)
	f, err := w.Create("word/other.xml")
	require.NoError(t, err)
	_, err = f.Write([]byte("<x/>"))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	assert.Empty(t, ExtractText("", "resume.docx", buf.Bytes()))
}

func TestExtractTextDOCXCorruptArchive(t *testing.T) {
	assert.Empty(t, ExtractText("", "resume.docx", []byte("PK\x03\x04 not a real archive")))
}

func TestExtractTextDOCXMalformedXML(t *testing.T) {
	data := buildDOCX(t, "<w:document><unclosed")
	assert.Empty(t, ExtractText("", "resume.docx", data))
}

func TestExtractTextPDFFallsBackToPrintableLines(t *testing.T) {
	// Not a parseable PDF, so extraction degrades to the byte-level scan.
	data := []byte("%PDF-1.4 junk\n\nGrace Hopper\n  Skills: Go  \n\x00\x01\n")
	text := ExtractText("application/pdf", "resume.pdf", data)
	assert.Contains(t, text, "Grace Hopper")
	assert.Contains(t, text, "Skills: Go")
}

func TestExtractTextPDFEmptyInput(t *testing.T) {
	assert.Empty(t, ExtractText("application/pdf", "resume.pdf", nil))
}
