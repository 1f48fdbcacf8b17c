package docxdiff

import (
	"archive/zip"
	"bytes"
	"fmt"
)

// Fixed part paths of the output package.
const (
	contentTypesPartName  = "[Content_Types].xml"
	rootRelationsPartName = "_rels/.rels"
	settingsPartName      = "word/settings.xml"
)

const contentTypesXML = xmlHeader + `<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">
  <Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/>
  <Default Extension="xml" ContentType="application/xml"/>
  <Override PartName="/word/document.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"/>
  <Override PartName="/word/settings.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.settings+xml"/>
</Types>`

const rootRelationshipsXML = xmlHeader + `<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">
  <Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument" Target="word/document.xml"/>
</Relationships>`

// settingsXML switches revision tracking display on so readers surface the
// synthesized markup for review.
const settingsXML = xmlHeader + `<w:settings xmlns:w="` + wmlNamespace + `">
  <w:trackChanges/>
</w:settings>`

// AssemblePackage serializes the rewritten document tree and packages it
// with the minimal fixed set of companion parts a package reader requires:
// the content-type manifest, the root relationships part, and a settings
// part with revision tracking enabled. A fresh package is allocated;
// neither input package is reused. Parts of the inputs beyond the document
// body (styles, media, numbering, headers and footers) are deliberately
// not carried over.
func AssemblePackage(doc *Node) ([]byte, error) {
	buf := new(bytes.Buffer)
	w := zip.NewWriter(buf)

	parts := []struct {
		name    string
		content []byte
	}{
		{contentTypesPartName, []byte(contentTypesXML)},
		{rootRelationsPartName, []byte(rootRelationshipsXML)},
		{DocumentPartName, SerializePart(doc)},
		{settingsPartName, []byte(settingsXML)},
	}

	for _, part := range parts {
		fw, err := w.Create(part.name)
		if err != nil {
			return nil, fmt.Errorf("failed to create %s: %w", part.name, err)
		}
		if _, err := fw.Write(part.content); err != nil {
			return nil, fmt.Errorf("failed to write %s: %w", part.name, err)
		}
	}

	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("failed to close zip writer: %w", err)
	}

	return buf.Bytes(), nil
}
