// test_helpers.go contains functions that are exposed only for testing purposes.
// These should not be used in production code.

package docxdiff

import (
	"archive/zip"
	"bytes"
	"io"
	"strings"
)

// buildDocumentXML wraps paragraphs of already-escaped run XML in a
// minimal document part.
func buildDocumentXML(paragraphXML ...string) string {
	var sb strings.Builder
	sb.WriteString(xmlHeader)
	sb.WriteString(`<w:document xmlns:w="` + wmlNamespace + `"><w:body>`)
	for _, p := range paragraphXML {
		sb.WriteString(p)
	}
	sb.WriteString(`</w:body></w:document>`)
	return sb.String()
}

// textParagraphXML builds one plain paragraph holding the given text.
func textParagraphXML(text string) string {
	return `<w:p><w:r><w:t xml:space="preserve">` + escapeText(text) + `</w:t></w:r></w:p>`
}

// createTestPackage builds an in-memory DOCX whose body holds one plain
// paragraph per given text.
func createTestPackage(paragraphTexts ...string) []byte {
	paragraphs := make([]string, len(paragraphTexts))
	for i, text := range paragraphTexts {
		paragraphs[i] = textParagraphXML(text)
	}
	return createTestPackageFromDocumentXML(buildDocumentXML(paragraphs...))
}

// createTestPackageFromDocumentXML builds an in-memory DOCX around an
// arbitrary document part.
func createTestPackageFromDocumentXML(documentXML string) []byte {
	var buf bytes.Buffer
	w := zip.NewWriter(&buf)

	rels, _ := w.Create("_rels/.rels")
	io.WriteString(rels, rootRelationshipsXML)

	ct, _ := w.Create("[Content_Types].xml")
	io.WriteString(ct, contentTypesXML)

	doc, _ := w.Create("word/document.xml")
	io.WriteString(doc, documentXML)

	w.Close()
	return buf.Bytes()
}

// readOutputDocument reopens an output package and parses its document
// part.
func readOutputDocument(output []byte) (*Node, error) {
	archive, err := OpenArchive(output, DefaultLimits())
	if err != nil {
		return nil, err
	}
	content, present, err := archive.ReadPart(DocumentPartName)
	if err != nil {
		return nil, err
	}
	if !present {
		return nil, NewMissingPartError(DocumentPartName)
	}
	return ParsePart(content)
}
