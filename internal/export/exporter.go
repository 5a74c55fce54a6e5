// Package export produces operator downloads of the tabular store.
package export

import (
	"fmt"
	"path/filepath"
	"strings"

	"fjacquet/doc-extract-csv/internal/fileutils"
	"fjacquet/doc-extract-csv/internal/logging"
	"fjacquet/doc-extract-csv/internal/models"
	"fjacquet/doc-extract-csv/internal/store"

	"github.com/xuri/excelize/v2"
)

const (
	CSVMIMEType  = "text/csv"
	XLSXMIMEType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

	// SheetName is the worksheet holding the records in an XLSX download.
	SheetName = "Extracted Data"
)

// Download describes a file handed to the operator.
type Download struct {
	Path     string
	FileName string
	MIMEType string
	Size     int64
}

// Exporter copies the store into the download directory.
type Exporter struct {
	store     store.RecordStore
	directory string
	fileName  string
	logger    logging.Logger
}

// NewExporter creates an exporter writing fileName into directory.
func NewExporter(s store.RecordStore, directory, fileName string, logger logging.Logger) *Exporter {
	if directory == "" {
		directory = "."
	}
	return &Exporter{
		store:     s,
		directory: directory,
		fileName:  fileName,
		logger:    logger,
	}
}

// DownloadCSV writes the store's full content, header included, under the
// configured download name.
func (e *Exporter) DownloadCSV() (Download, error) {
	data, err := e.store.ReadAll()
	if err != nil {
		return Download{}, err
	}
	return e.write(e.fileName, CSVMIMEType, data)
}

// DownloadXLSX renders every record into a single-sheet workbook.
func (e *Exporter) DownloadXLSX() (Download, error) {
	records, err := e.store.Records()
	if err != nil {
		return Download{}, err
	}

	data, err := RenderXLSX(records)
	if err != nil {
		return Download{}, err
	}

	name := strings.TrimSuffix(e.fileName, filepath.Ext(e.fileName)) + ".xlsx"
	return e.write(name, XLSXMIMEType, data)
}

func (e *Exporter) write(name, mimeType string, data []byte) (Download, error) {
	if err := fileutils.EnsureDirectoryExists(e.directory); err != nil {
		return Download{}, err
	}

	path := filepath.Join(e.directory, name)
	if err := fileutils.WriteFileAtomic(path, data, 0644); err != nil {
		return Download{}, fmt.Errorf("failed to write download %s: %w", path, err)
	}

	e.logger.Info("Download written",
		logging.Field{Key: logging.FieldOutputFile, Value: path},
		logging.Field{Key: logging.FieldFormat, Value: mimeType},
		logging.Field{Key: logging.FieldBytes, Value: len(data)})

	return Download{
		Path:     path,
		FileName: name,
		MIMEType: mimeType,
		Size:     int64(len(data)),
	}, nil
}

// RenderXLSX returns workbook bytes with the store header on row 1 and one
// record per following row.
func RenderXLSX(records []models.Record) ([]byte, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	// rename the default sheet rather than adding a second one
	if err := f.SetSheetName(f.GetSheetName(0), SheetName); err != nil {
		return nil, fmt.Errorf("xlsx sheet: %w", err)
	}

	if err := writeRow(f, 1, models.Columns()); err != nil {
		return nil, err
	}
	for i, r := range records {
		if err := writeRow(f, i+2, r.Row()); err != nil {
			return nil, err
		}
	}

	_ = f.SetColWidth(SheetName, "A", "G", 22)
	_ = f.SetColWidth(SheetName, "H", "H", 80) // extracted text

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx write: %w", err)
	}
	return buf.Bytes(), nil
}

func writeRow(f *excelize.File, row int, values []string) error {
	for col, v := range values {
		cell, err := excelize.CoordinatesToCellName(col+1, row)
		if err != nil {
			return err
		}
		if err := f.SetCellStr(SheetName, cell, v); err != nil {
			return fmt.Errorf("xlsx cell %s: %w", cell, err)
		}
	}
	return nil
}
