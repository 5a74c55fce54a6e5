package extraction

import (
	"fmt"
	"time"

	"fjacquet/doc-extract-csv/internal/apperror"
	"fjacquet/doc-extract-csv/internal/logging"
)

// Result is the outcome of dispatching one file.
type Result struct {
	Format Format
	Text   string
	// Skipped is set when the extension is unsupported and the dispatcher runs
	// in lenient mode. Text is empty in that case.
	Skipped bool
}

// Dispatcher routes a file to the extractor of its format.
type Dispatcher struct {
	logger      logging.Logger
	extractors  map[Format]Extractor
	strict      bool
	maxFileSize int64
}

// NewDispatcher creates a Dispatcher with the PDF, plain text and Word
// extractors. With strict set, unsupported extensions are reported as
// *apperror.UnsupportedFormatError instead of being skipped. A maxFileSize of
// zero disables the size check.
func NewDispatcher(logger logging.Logger, strict bool, maxFileSize int64) *Dispatcher {
	return &Dispatcher{
		logger: logger,
		extractors: map[Format]Extractor{
			FormatPDF:          NewPDFExtractor(),
			FormatPlainText:    NewPlainTextExtractor(),
			FormatWordDocument: NewWordExtractor(),
		},
		strict:      strict,
		maxFileSize: maxFileSize,
	}
}

// Strict reports whether unsupported extensions are errors.
func (d *Dispatcher) Strict() bool {
	return d.strict
}

// Extract returns the plain text of one uploaded file. Extraction failures are
// returned as *apperror.ExtractionError.
func (d *Dispatcher) Extract(fileName string, data []byte) (Result, error) {
	format := DetectFormat(fileName)
	log := d.logger.WithFields(
		logging.Field{Key: logging.FieldFile, Value: fileName},
		logging.Field{Key: logging.FieldFormat, Value: format.String()},
	)

	switch format {
	case FormatUnsupported:
		ext := Extension(fileName)
		if d.strict {
			return Result{Format: format}, &apperror.UnsupportedFormatError{FileName: fileName, Extension: ext}
		}
		log.Debug("Skipping file with unsupported extension",
			logging.Field{Key: logging.FieldExtension, Value: ext})
		return Result{Format: format, Skipped: true}, nil

	case FormatPDF, FormatPlainText, FormatWordDocument:
		if d.maxFileSize > 0 && int64(len(data)) > d.maxFileSize {
			return Result{Format: format}, &apperror.ExtractionError{
				FileName: fileName,
				Format:   format.String(),
				Err:      fmt.Errorf("%w: %d bytes, limit is %d", apperror.ErrFileTooLarge, len(data), d.maxFileSize),
			}
		}

		extractor, ok := d.extractors[format]
		if !ok {
			return Result{Format: format}, &apperror.ExtractionError{
				FileName: fileName,
				Format:   format.String(),
				Msg:      "no extractor registered",
			}
		}

		start := time.Now()
		text, err := extractor.ExtractText(data)
		if err != nil {
			return Result{Format: format}, &apperror.ExtractionError{
				FileName: fileName,
				Format:   format.String(),
				Err:      err,
			}
		}
		log.Debug("Extracted text",
			logging.Field{Key: logging.FieldBytes, Value: len(data)},
			logging.Field{Key: logging.FieldDuration, Value: time.Since(start).Milliseconds()})
		return Result{Format: format, Text: text}, nil
	}

	return Result{Format: format}, fmt.Errorf("unknown format %d", format)
}
