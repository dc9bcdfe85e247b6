// Package extraction turns uploaded resume documents into plain text.
// Extraction is best effort: a document that cannot be read yields empty
// text rather than an error, and the caller decides what that means.
package extraction

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"io"
	"regexp"
	"strings"

	"github.com/ledongthuc/pdf"
)

// Format is the detected document format.
type Format string

// Supported document formats.
const (
	FormatPDF  Format = "pdf"
	FormatDOCX Format = "docx"
	FormatText Format = "text"
)

var docxMagic = []byte("PK\x03\x04")

// DetectFormat guesses the document format from the content type, the
// filename extension, and finally the leading bytes.
func DetectFormat(contentType, filename string, data []byte) Format {
	loweredType := strings.ToLower(contentType)
	loweredName := strings.ToLower(filename)

	if strings.Contains(loweredType, "pdf") || strings.HasSuffix(loweredName, ".pdf") {
		return FormatPDF
	}
	if strings.Contains(loweredType, "wordprocessingml") ||
		strings.HasSuffix(loweredName, ".docx") ||
		bytes.HasPrefix(data, docxMagic) {
		return FormatDOCX
	}
	return FormatText
}

// ExtractText extracts plain text from a document, routing on the
// detected format.
func ExtractText(contentType, filename string, data []byte) string {
	switch DetectFormat(contentType, filename, data) {
	case FormatPDF:
		return extractPDFText(data)
	case FormatDOCX:
		return extractDOCXText(data)
	default:
		return string(bytes.ToValidUTF8(data, nil))
	}
}

// extractPDFText reads text content from a PDF, falling back to a crude
// printable-line scan when the file defeats the parser.
func extractPDFText(data []byte) string {
	if text, ok := readPDF(data); ok && strings.TrimSpace(text) != "" {
		return text
	}
	return printableLines(data)
}

// readPDF isolates the pdf library, which panics on some malformed files.
func readPDF(data []byte) (text string, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			text, ok = "", false
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", false
	}
	plain, err := reader.GetPlainText()
	if err != nil {
		return "", false
	}
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, plain); err != nil {
		return "", false
	}
	return buf.String(), true
}

var artifactPattern = regexp.MustCompile(`[\r\n\t]+`)

// printableLines recovers whatever line structure survives a byte-level
// decode of a binary document.
func printableLines(data []byte) string {
	decoded := decodeLatin1(data)
	var lines []string
	for _, raw := range strings.Split(decoded, "\n") {
		stripped := strings.TrimSpace(raw)
		if stripped == "" {
			continue
		}
		lines = append(lines, artifactPattern.ReplaceAllString(stripped, " "))
	}
	return strings.Join(lines, "\n")
}

func decodeLatin1(data []byte) string {
	runes := make([]rune, len(data))
	for i, b := range data {
		runes[i] = rune(b)
	}
	return string(runes)
}

// extractDOCXText reads paragraph text from a DOCX archive's main
// document part. Any structural fault yields empty text.
func extractDOCXText(data []byte) string {
	archive, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return ""
	}

	var documentXML []byte
	for _, file := range archive.File {
		if file.Name != "word/document.xml" {
			continue
		}
		rc, err := file.Open()
		if err != nil {
			return ""
		}
		documentXML, err = io.ReadAll(rc)
		_ = rc.Close()
		if err != nil {
			return ""
		}
		break
	}
	if documentXML == nil {
		return ""
	}

	return docxParagraphText(documentXML)
}

// docxParagraphText walks the document token stream and collects every
// text node nested anywhere under each paragraph. Paragraphs live not
// only directly under the body but also inside table cells, and runs may
// sit behind hyperlink wrappers, so element-shape unmarshalling would
// drop them.
func docxParagraphText(documentXML []byte) string {
	decoder := xml.NewDecoder(bytes.NewReader(documentXML))

	var paragraphs []string
	var texts []string
	paragraphDepth := 0
	inText := false
	for {
		token, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return ""
		}
		switch el := token.(type) {
		case xml.StartElement:
			switch el.Name.Local {
			case "p":
				if paragraphDepth == 0 {
					texts = nil
				}
				paragraphDepth++
			case "t":
				inText = paragraphDepth > 0
			}
		case xml.EndElement:
			switch el.Name.Local {
			case "p":
				if paragraphDepth > 0 {
					paragraphDepth--
					if paragraphDepth == 0 && len(texts) > 0 {
						paragraphs = append(paragraphs, strings.Join(texts, " "))
					}
				}
			case "t":
				inText = false
			}
		case xml.CharData:
			if inText {
				if s := string(el); s != "" {
					texts = append(texts, s)
				}
			}
		}
	}
	return strings.Join(paragraphs, "\n")
}
