package extraction

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
)

// PDFExtractor extracts the text of every page in page order, each page
// terminated by a newline.
type PDFExtractor struct{}

func NewPDFExtractor() *PDFExtractor {
	return &PDFExtractor{}
}

func (e *PDFExtractor) ExtractText(data []byte) (text string, err error) {
	// the pdf package panics on some malformed object graphs
	defer func() {
		if r := recover(); r != nil {
			text = ""
			err = fmt.Errorf("malformed PDF: %v", r)
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("cannot open PDF: %w", err)
	}

	pages := reader.NumPage()
	if pages < 0 {
		return "", fmt.Errorf("malformed PDF: negative page count %d", pages)
	}

	var sb strings.Builder
	for i := 1; i <= pages; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			return "", fmt.Errorf("malformed PDF: page %d of %d not found", i, pages)
		}
		content, err := page.GetPlainText(nil)
		if err != nil {
			return "", fmt.Errorf("page %d: %w", i, err)
		}
		sb.WriteString(pageText(content))
	}
	return sb.String(), nil
}

// pageText drops the newline the library writes when the page opens its first
// text object and ends the page with one. Blank lines of the page itself are
// kept.
func pageText(content string) string {
	return strings.TrimPrefix(content, "\n") + "\n"
}
