package extraction

import (
	"errors"
	"unicode/utf8"
)

var errInvalidUTF8 = errors.New("invalid UTF-8")

// PlainTextExtractor decodes UTF-8 text and terminates it with a newline. Any
// invalid byte sequence fails the whole file; there is no fallback encoding.
type PlainTextExtractor struct{}

func NewPlainTextExtractor() *PlainTextExtractor {
	return &PlainTextExtractor{}
}

func (e *PlainTextExtractor) ExtractText(data []byte) (string, error) {
	if !utf8.Valid(data) {
		return "", errInvalidUTF8
	}
	return string(data) + "\n", nil
}
