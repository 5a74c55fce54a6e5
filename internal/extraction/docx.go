package extraction

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"

	"fjacquet/doc-extract-csv/internal/xmlutils"
)

// maxDocxPartSize bounds the decompressed size of word/document.xml.
const maxDocxPartSize = 256 << 20

var errNotWordDocument = errors.New("not a WordprocessingML document")

// Subtrees of a paragraph that never contribute to its text.
var docxSkippedElements = map[string]bool{
	"pPr":               true,
	"rPr":               true,
	"drawing":           true,
	"pict":              true,
	"object":            true,
	"txbxContent":       true,
	"AlternateContent":  true,
	"footnoteReference": true,
	"commentReference":  true,
}

// WordExtractor extracts the text of the top-level body paragraphs of a .docx
// file, one line per paragraph. Tables, headers, footers and text boxes are
// not part of the output.
type WordExtractor struct{}

func NewWordExtractor() *WordExtractor {
	return &WordExtractor{}
}

func (e *WordExtractor) ExtractText(data []byte) (string, error) {
	part, err := readDocxPart(data, xmlutils.DocxMainPart)
	if err != nil {
		return "", err
	}

	root, err := xmlutils.ParseXMLBytes(part)
	if err != nil {
		return "", err
	}
	bodies, err := xmlutils.CountMatches(root, xmlutils.DocxBodyPath)
	if err != nil {
		return "", err
	}
	if bodies == 0 {
		return "", errNotWordDocument
	}

	paragraphs, err := bodyParagraphs(part)
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	for _, p := range paragraphs {
		sb.WriteString(p)
		sb.WriteString("\n")
	}
	return sb.String(), nil
}

func readDocxPart(data []byte, name string) ([]byte, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("cannot open docx package: %w", err)
	}

	for _, f := range zr.File {
		if f.Name != name {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return nil, fmt.Errorf("cannot open %s: %w", name, err)
		}
		defer rc.Close()

		part, err := io.ReadAll(io.LimitReader(rc, maxDocxPartSize+1))
		if err != nil {
			return nil, fmt.Errorf("cannot read %s: %w", name, err)
		}
		if len(part) > maxDocxPartSize {
			return nil, fmt.Errorf("%s exceeds %d bytes", name, maxDocxPartSize)
		}
		return part, nil
	}
	return nil, fmt.Errorf("missing %s: %w", name, errNotWordDocument)
}

// bodyParagraphs walks document.xml and returns the text of each w:p that is a
// direct child of w:body, in document order.
func bodyParagraphs(part []byte) ([]string, error) {
	dec := xml.NewDecoder(bytes.NewReader(part))

	var (
		stack      []string
		paragraphs []string
		current    strings.Builder
		inPara     bool
		skipDepth  int
		inText     bool
	)

	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("invalid document.xml: %w", err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			name := t.Name.Local
			parentIsBody := len(stack) == 2 && stack[0] == "document" && stack[1] == "body"
			stack = append(stack, name)

			if !inPara {
				if name == "p" && parentIsBody {
					inPara = true
					current.Reset()
				}
				continue
			}
			if skipDepth > 0 || docxSkippedElements[name] {
				skipDepth++
				continue
			}
			switch name {
			case "t":
				inText = true
			case "tab":
				current.WriteString("\t")
			case "br", "cr":
				current.WriteString("\n")
			case "noBreakHyphen":
				current.WriteString("-")
			}

		case xml.EndElement:
			if len(stack) > 0 {
				stack = stack[:len(stack)-1]
			}
			if !inPara {
				continue
			}
			if skipDepth > 0 {
				skipDepth--
				continue
			}
			switch t.Name.Local {
			case "t":
				inText = false
			case "p":
				if len(stack) == 2 {
					paragraphs = append(paragraphs, current.String())
					inPara = false
				}
			}

		case xml.CharData:
			if inPara && inText && skipDepth == 0 {
				current.Write(t)
			}
		}
	}

	if len(stack) != 0 {
		return nil, fmt.Errorf("invalid document.xml: unexpected end of document")
	}
	return paragraphs, nil
}
