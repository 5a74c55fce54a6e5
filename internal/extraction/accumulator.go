package extraction

import (
	"strings"

	"fjacquet/doc-extract-csv/internal/logging"
	"fjacquet/doc-extract-csv/internal/models"

	"github.com/google/uuid"
)

// FileExtractor is what an Accumulator needs from a Dispatcher.
type FileExtractor interface {
	Extract(fileName string, data []byte) (Result, error)
}

// FileResult records what happened to one uploaded file.
type FileResult struct {
	FileName string
	Format   Format
	// Bytes is the number of bytes contributed to the accumulated text.
	Bytes   int
	Skipped bool
	Err     error
}

// OK reports whether the file contributed text.
func (r FileResult) OK() bool {
	return r.Err == nil && !r.Skipped
}

// Accumulator concatenates the text of a batch of uploads in upload order. A
// failing file is recorded and never aborts the batch. It is not safe for
// concurrent use.
type Accumulator struct {
	sessionID string
	extractor FileExtractor
	logger    logging.Logger
	text      strings.Builder
	results   []FileResult
}

// NewAccumulator creates an empty Accumulator with a fresh session id.
func NewAccumulator(extractor FileExtractor, logger logging.Logger) *Accumulator {
	sessionID := uuid.New().String()
	return &Accumulator{
		sessionID: sessionID,
		extractor: extractor,
		logger:    logger.WithField(logging.FieldSession, sessionID),
	}
}

// SessionID identifies this accumulator in logs.
func (a *Accumulator) SessionID() string {
	return a.sessionID
}

// Add extracts one file and appends its text. Extractor output is already
// newline-terminated.
func (a *Accumulator) Add(file models.UploadedFile) FileResult {
	res, err := a.extractor.Extract(file.Name, file.Data)
	if err != nil {
		return a.Fail(file.Name, err)
	}

	result := FileResult{FileName: file.Name, Format: res.Format, Skipped: res.Skipped}
	if !res.Skipped {
		a.text.WriteString(res.Text)
		result.Bytes = len(res.Text)
	}
	a.results = append(a.results, result)
	return result
}

// AddAll processes files in order.
func (a *Accumulator) AddAll(files []models.UploadedFile) []FileResult {
	results := make([]FileResult, 0, len(files))
	for _, f := range files {
		results = append(results, a.Add(f))
	}
	return results
}

// Fail records a file that could not be processed, e.g. because it could not
// be read from disk.
func (a *Accumulator) Fail(fileName string, err error) FileResult {
	result := FileResult{FileName: fileName, Format: DetectFormat(fileName), Err: err}
	a.results = append(a.results, result)
	a.logger.WithError(err).Error("Error processing file",
		logging.Field{Key: logging.FieldFile, Value: fileName})
	return result
}

// Text returns the accumulated text.
func (a *Accumulator) Text() string {
	return a.text.String()
}

// Results returns every recorded file result in upload order.
func (a *Accumulator) Results() []FileResult {
	out := make([]FileResult, len(a.results))
	copy(out, a.results)
	return out
}

// Errors returns the results of the files that failed.
func (a *Accumulator) Errors() []FileResult {
	var failed []FileResult
	for _, r := range a.results {
		if r.Err != nil {
			failed = append(failed, r)
		}
	}
	return failed
}

// Reset drops the accumulated text and results. The session id is kept.
func (a *Accumulator) Reset() {
	a.text.Reset()
	a.results = nil
}
