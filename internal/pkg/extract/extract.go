// Package extract turns uploaded documents into plain text for grounding.
package extract

import (
	"path/filepath"
	"strings"
)

// Extractor extracts plain text from uploaded document bytes.
type Extractor struct{}

func NewExtractor() *Extractor {
	return &Extractor{}
}

// ExtractBytes extracts text from content. The MIME type decides the decoder;
// when it is missing or generic, the filename extension is consulted.
// Anything not recognized as PDF is treated as plain text.
func (e *Extractor) ExtractBytes(content []byte, mimeType, filename string) (string, error) {
	if isPDF(mimeType, filename) {
		return extractPDF(content)
	}
	return extractPlain(content)
}

func isPDF(mimeType, filename string) bool {
	mt := strings.ToLower(strings.TrimSpace(mimeType))
	if i := strings.IndexByte(mt, ';'); i >= 0 {
		mt = strings.TrimSpace(mt[:i])
	}
	if mt == "application/pdf" {
		return true
	}
	if mt != "" && mt != "application/octet-stream" {
		return false
	}
	return strings.ToLower(filepath.Ext(filename)) == ".pdf"
}
