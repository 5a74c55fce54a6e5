// Package store persists records in a single CSV file with a fixed header.
package store

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"fjacquet/doc-extract-csv/internal/apperror"
	"fjacquet/doc-extract-csv/internal/fileutils"
	"fjacquet/doc-extract-csv/internal/logging"
	"fjacquet/doc-extract-csv/internal/models"

	"github.com/gocarina/gocsv"
)

const filePerm = 0644

// Store is the tabular store contract used by the interactive session.
type Store interface {
	// EnsureExists creates the store with only the header row if it is absent.
	// An existing file is never modified.
	EnsureExists() error
	// Append adds one row after every existing row. The bytes already in the
	// file are kept as they are.
	Append(record models.Record) error
	// ReadAll returns the raw file content.
	ReadAll() ([]byte, error)
}

// RecordStore is a Store that can also decode its rows.
type RecordStore interface {
	Store
	Records() ([]models.Record, error)
	Count() (int, error)
}

// CSVStore is a Store backed by one CSV file. Appends are serialized within
// the process; separate processes writing the same file are not coordinated
// and the last writer wins.
type CSVStore struct {
	path      string
	delimiter rune
	logger    logging.Logger
	mu        sync.Mutex
}

// NewCSVStore creates a store for the file at path.
func NewCSVStore(path string, delimiter rune, logger logging.Logger) *CSVStore {
	if delimiter == 0 {
		delimiter = ','
	}
	return &CSVStore{
		path:      path,
		delimiter: delimiter,
		logger:    logger.WithField(logging.FieldStorePath, path),
	}
}

// Path returns the location of the backing file.
func (s *CSVStore) Path() string {
	return s.path
}

func (s *CSVStore) EnsureExists() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := fileutils.EnsureDirectoryExists(filepath.Dir(s.path)); err != nil {
		return &apperror.StoreIOError{Op: "create", Path: s.path, Err: err}
	}

	file, err := os.OpenFile(s.path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, filePerm)
	if errors.Is(err, fs.ErrExist) {
		return nil
	}
	if err != nil {
		return &apperror.StoreIOError{Op: "create", Path: s.path, Err: err}
	}

	header, err := s.encodeHeader()
	if err == nil {
		_, err = file.Write(header)
	}
	if closeErr := file.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		_ = os.Remove(s.path)
		return &apperror.StoreIOError{Op: "create", Path: s.path, Err: err}
	}

	s.logger.Info("Created CSV store")
	return nil
}

func (s *CSVStore) Append(record models.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		return &apperror.StoreIOError{Op: "read", Path: s.path, Err: err}
	}

	rows, err := s.newRecordReader(data).ReadAll()
	if err != nil {
		return &apperror.StoreIOError{Op: "read", Path: s.path, Err: fmt.Errorf("malformed CSV: %w", err)}
	}

	var buf bytes.Buffer
	w := s.newWriter(&buf)
	if len(rows) == 0 {
		// an emptied file gets its header back
		err = gocsv.MarshalCSV([]models.Record{record}, w)
	} else {
		// earlier rows are copied byte for byte, never re-encoded
		buf.Write(data)
		if !bytes.HasSuffix(data, []byte("\n")) {
			buf.WriteByte('\n')
		}
		err = gocsv.MarshalCSVWithoutHeaders([]models.Record{record}, w)
	}
	if err != nil {
		return &apperror.StoreIOError{Op: "write", Path: s.path, Err: err}
	}

	if err := fileutils.WriteFileAtomic(s.path, buf.Bytes(), filePerm); err != nil {
		return &apperror.StoreIOError{Op: "write", Path: s.path, Err: err}
	}

	// header plus the previous rows plus the new one
	count := len(rows)
	if count == 0 {
		count = 1
	}
	s.logger.Info("Appended record",
		logging.Field{Key: logging.FieldCount, Value: count})
	return nil
}

func (s *CSVStore) ReadAll() ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, &apperror.StoreIOError{Op: "read", Path: s.path, Err: err}
	}
	return data, nil
}

// Records decodes every row by header name. A header-only store yields no
// records.
func (s *CSVStore) Records() ([]models.Record, error) {
	data, err := s.ReadAll()
	if err != nil {
		return nil, err
	}

	var records []models.Record
	if err := gocsv.UnmarshalCSV(s.newRecordReader(data), &records); err != nil {
		if errors.Is(err, gocsv.ErrEmptyCSVFile) {
			return []models.Record{}, nil
		}
		return nil, &apperror.StoreIOError{Op: "decode", Path: s.path, Err: err}
	}
	return records, nil
}

// Count returns the number of records in the store.
func (s *CSVStore) Count() (int, error) {
	records, err := s.Records()
	if err != nil {
		return 0, err
	}
	return len(records), nil
}

func (s *CSVStore) encodeHeader() ([]byte, error) {
	var buf bytes.Buffer
	if err := gocsv.MarshalCSV([]models.Record{}, s.newWriter(&buf)); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (s *CSVStore) newReader(data []byte) *csv.Reader {
	r := csv.NewReader(bytes.NewReader(data))
	r.Comma = s.delimiter
	r.FieldsPerRecord = -1
	return r
}

func (s *CSVStore) newWriter(buf *bytes.Buffer) *gocsv.SafeCSVWriter {
	csvWriter := csv.NewWriter(buf)
	csvWriter.Comma = s.delimiter
	return gocsv.NewSafeCSVWriter(csvWriter)
}

// newRecordReader returns a reader that keeps carriage returns inside quoted
// fields. encoding/csv folds a quoted "\r\n" into "\n", so those CRs are
// masked before parsing and restored in every field afterwards.
func (s *CSVStore) newRecordReader(data []byte) *recordReader {
	marker := crMarker(data)
	return &recordReader{
		reader: s.newReader(maskQuotedCR(data, marker)),
		marker: marker,
	}
}

// recordReader implements gocsv.CSVReader.
type recordReader struct {
	reader *csv.Reader
	marker string
}

var _ gocsv.CSVReader = (*recordReader)(nil)

func (r *recordReader) Read() ([]string, error) {
	row, err := r.reader.Read()
	if err != nil {
		return nil, err
	}
	for i, field := range row {
		row[i] = strings.ReplaceAll(field, r.marker, "\r")
	}
	return row, nil
}

func (r *recordReader) ReadAll() ([][]string, error) {
	var rows [][]string
	for {
		row, err := r.Read()
		if errors.Is(err, io.EOF) {
			return rows, nil
		}
		if err != nil {
			return nil, err
		}
		rows = append(rows, row)
	}
}

// crMarker picks a private-use rune absent from data.
func crMarker(data []byte) string {
	r := rune(0xE000)
	for bytes.ContainsRune(data, r) {
		r++
	}
	return string(r)
}

// maskQuotedCR replaces every CR between quotes with marker. A well-formed
// file only has quotes that open, close or escape a quoted field, so toggling
// on each one tracks the quoted state exactly.
func maskQuotedCR(data []byte, marker string) []byte {
	if !bytes.ContainsRune(data, '\r') {
		return data
	}
	var out bytes.Buffer
	out.Grow(len(data))
	quoted := false
	for _, b := range data {
		switch {
		case b == '"':
			quoted = !quoted
		case b == '\r' && quoted:
			out.WriteString(marker)
			continue
		}
		out.WriteByte(b)
	}
	return out.Bytes()
}
