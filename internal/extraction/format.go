// Package extraction turns uploaded documents into plain text. A Dispatcher picks
// one Extractor per file from its extension; an Accumulator collects the text of
// a batch together with the per-file failures.
package extraction

import (
	"path/filepath"
	"strings"
)

// Format is the closed set of document kinds the dispatcher recognises.
type Format int

const (
	FormatUnsupported Format = iota
	FormatPDF
	FormatPlainText
	FormatWordDocument
)

// String returns the canonical extension of the format.
func (f Format) String() string {
	switch f {
	case FormatPDF:
		return "pdf"
	case FormatPlainText:
		return "txt"
	case FormatWordDocument:
		return "docx"
	default:
		return "unsupported"
	}
}

// Supported reports whether the format has an extractor.
func (f Format) Supported() bool {
	return f != FormatUnsupported
}

// SupportedExtensions lists the accepted extensions, without the dot.
func SupportedExtensions() []string {
	return []string{FormatPDF.String(), FormatPlainText.String(), FormatWordDocument.String()}
}

// Extension returns the lower-cased text after the last dot of the file's base
// name, or "" when there is none.
func Extension(fileName string) string {
	return strings.ToLower(strings.TrimPrefix(filepath.Ext(fileName), "."))
}

// DetectFormat maps a file name to its Format. Matching is case-insensitive.
func DetectFormat(fileName string) Format {
	switch Extension(fileName) {
	case "pdf":
		return FormatPDF
	case "txt":
		return FormatPlainText
	case "docx":
		return FormatWordDocument
	default:
		return FormatUnsupported
	}
}
