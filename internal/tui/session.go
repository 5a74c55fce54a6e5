// Package tui is the interactive operator session: upload documents, fill in
// the record fields, save to the CSV store and download the result.
package tui

import (
	"fmt"
	"strings"

	"fjacquet/doc-extract-csv/internal/export"
	"fjacquet/doc-extract-csv/internal/extraction"
	"fjacquet/doc-extract-csv/internal/fileutils"
	"fjacquet/doc-extract-csv/internal/logging"
	"fjacquet/doc-extract-csv/internal/models"
	"fjacquet/doc-extract-csv/internal/store"
	"fjacquet/doc-extract-csv/internal/validation"
)

// DefaultTitle is shown at the top of every screen.
const DefaultTitle = "Data Extractor and CSV Saver"

// Downloader hands the store back to the operator.
type Downloader interface {
	DownloadCSV() (export.Download, error)
	DownloadXLSX() (export.Download, error)
}

// Session is the state shared by the screens of one interactive run.
type Session struct {
	Title       string
	Accumulator *extraction.Accumulator
	Store       store.RecordStore
	Exporter    Downloader
	Logger      logging.Logger
	// MaxFileSize bounds a single upload in bytes; zero disables the check.
	MaxFileSize int64
	XLSXEnabled bool
	// BrowseDir is listed by the file browser.
	BrowseDir string

	saved bool
}

// Saved reports whether a record was appended during this session.
func (s *Session) Saved() bool {
	return s.saved
}

// loadUploads reads every path from disk. Paths that cannot be read come back
// as failures keyed by file name, in input order alongside the loaded files.
func (s *Session) loadUploads(paths []string) []pendingUpload {
	uploads := make([]pendingUpload, 0, len(paths))
	for _, p := range paths {
		s.Logger.Debug("Reading upload", logging.Field{Key: logging.FieldPath, Value: p})
		if err := validation.IsValidPath(p); err != nil {
			uploads = append(uploads, pendingUpload{name: p, err: err})
			continue
		}
		file, err := fileutils.ReadUpload(p, s.MaxFileSize)
		if err != nil {
			uploads = append(uploads, pendingUpload{name: p, err: err})
			continue
		}
		uploads = append(uploads, pendingUpload{name: file.Name, file: file})
	}
	return uploads
}

// ingest feeds loaded uploads to the accumulator in order. Runs of readable
// files go through in one batch; a read failure is recorded where it occurred.
func (s *Session) ingest(uploads []pendingUpload) []extraction.FileResult {
	results := make([]extraction.FileResult, 0, len(uploads))
	var batch []models.UploadedFile
	flush := func() {
		results = append(results, s.Accumulator.AddAll(batch)...)
		batch = batch[:0]
	}
	for _, u := range uploads {
		if u.err != nil {
			flush()
			results = append(results, s.Accumulator.Fail(u.name, u.err))
			continue
		}
		batch = append(batch, u.file)
	}
	flush()
	return results
}

// assemble builds a record from fields and the text accumulated so far.
func (s *Session) assemble(fields models.Fields) (models.Record, error) {
	return models.NewRecordBuilder().
		WithFields(fields).
		WithExtractedText(s.Accumulator.Text()).
		Build()
}

// appendRecord writes record to the store.
func (s *Session) appendRecord(record models.Record) error {
	if err := s.Store.Append(record); err != nil {
		s.Logger.WithError(err).Error("Save failed",
			logging.Field{Key: logging.FieldOperation, Value: "append"})
		return err
	}
	s.Logger.Info("Record saved",
		logging.Field{Key: logging.FieldSession, Value: s.Accumulator.SessionID()},
		logging.Field{Key: logging.FieldBytes, Value: len(record.ExtractedText)})
	return nil
}

func (s *Session) rowCount() (int, error) {
	return s.Store.Count()
}

type pendingUpload struct {
	name string
	file models.UploadedFile
	err  error
}

// typedPath turns the upload input into at most one path. The input is taken
// whole, so commas and inner spaces are part of the file name.
func typedPath(input string) []string {
	if p := strings.TrimSpace(input); p != "" {
		return []string{p}
	}
	return nil
}

// fileErrorText renders a per-file failure the way the operator sees it.
func fileErrorText(r extraction.FileResult) string {
	return fmt.Sprintf("Error processing file '%s': %v", r.FileName, r.Err)
}
