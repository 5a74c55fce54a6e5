// Package apperror defines the typed errors shared across extraction, record
// assembly and storage.
package apperror

import (
	"errors"
	"fmt"
	"strings"
)

// ErrFileTooLarge is wrapped when an upload exceeds the configured size limit.
var ErrFileTooLarge = errors.New("file exceeds maximum allowed size")

// ExtractionError reports a file whose text could not be extracted. It is
// reported per file; other files in the same batch are still processed.
type ExtractionError struct {
	FileName string
	Format   string
	Msg      string
	Err      error
}

func (e *ExtractionError) Error() string {
	switch {
	case e.Msg != "" && e.Err != nil:
		return fmt.Sprintf("%s extraction failed for '%s': %s: %v", e.Format, e.FileName, e.Msg, e.Err)
	case e.Err != nil:
		return fmt.Sprintf("%s extraction failed for '%s': %v", e.Format, e.FileName, e.Err)
	default:
		return fmt.Sprintf("%s extraction failed for '%s': %s", e.Format, e.FileName, e.Msg)
	}
}

func (e *ExtractionError) Unwrap() error {
	return e.Err
}

// UnsupportedFormatError reports a file whose extension has no extractor.
type UnsupportedFormatError struct {
	FileName  string
	Extension string
}

func (e *UnsupportedFormatError) Error() string {
	if e.Extension == "" {
		return fmt.Sprintf("unsupported file '%s': no extension", e.FileName)
	}
	return fmt.Sprintf("unsupported file '%s': extension '%s' is not one of pdf, txt, docx", e.FileName, e.Extension)
}

// MissingRequiredFieldError lists the required record fields that were empty.
type MissingRequiredFieldError struct {
	Fields []string
}

func (e *MissingRequiredFieldError) Error() string {
	return fmt.Sprintf("missing required fields: %s", strings.Join(e.Fields, ", "))
}

// StoreIOError reports a failed read or write of the tabular store.
type StoreIOError struct {
	Op   string
	Path string
	Err  error
}

func (e *StoreIOError) Error() string {
	return fmt.Sprintf("store %s failed for '%s': %v", e.Op, e.Path, e.Err)
}

func (e *StoreIOError) Unwrap() error {
	return e.Err
}

// IsMissingRequiredField reports whether err is, or wraps, a MissingRequiredFieldError.
func IsMissingRequiredField(err error) bool {
	var target *MissingRequiredFieldError
	return errors.As(err, &target)
}
