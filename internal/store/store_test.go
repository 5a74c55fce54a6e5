package store

import (
	"encoding/csv"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"fjacquet/doc-extract-csv/internal/apperror"
	"fjacquet/doc-extract-csv/internal/logging"
	"fjacquet/doc-extract-csv/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const expectedHeader = "Company Name,Product Brand,Product Description,Production Location,Geographical Area,Production Volume,Annual Revenue,Extracted Text\n"

func newTestStore(t *testing.T) (*CSVStore, *logging.MockLogger) {
	t.Helper()
	logger := logging.NewMockLogger()
	return NewCSVStore(filepath.Join(t.TempDir(), "extracted_data.csv"), ',', logger), logger
}

func sampleRecord(company string) models.Record {
	return models.Record{
		CompanyName:        company,
		ProductBrand:       "Widget",
		ProductDescription: "Small widget",
		ProductionLocation: "Lyon",
		GeographicalArea:   "EU",
		ProductionVolume:   "1000",
		AnnualRevenue:      "2M",
		ExtractedText:      "Page1\nPage2\n",
	}
}

func isStoreIO(err error) bool {
	var ioErr *apperror.StoreIOError
	return errors.As(err, &ioErr)
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func TestEnsureExists_CreatesHeaderOnly(t *testing.T) {
	s, logger := newTestStore(t)

	require.NoError(t, s.EnsureExists())

	assert.Equal(t, expectedHeader, readFile(t, s.Path()))
	assert.True(t, logger.HasEntry("INFO", "Created CSV store"))
}

func TestEnsureExists_Idempotent(t *testing.T) {
	s, _ := newTestStore(t)

	require.NoError(t, s.EnsureExists())
	require.NoError(t, s.Append(sampleRecord("Acme")))
	before := readFile(t, s.Path())

	require.NoError(t, s.EnsureExists())
	require.NoError(t, s.EnsureExists())

	assert.Equal(t, before, readFile(t, s.Path()))
	assert.Equal(t, 1, strings.Count(readFile(t, s.Path()), "Company Name"))
}

func TestEnsureExists_LeavesForeignFileUntouched(t *testing.T) {
	s, _ := newTestStore(t)
	require.NoError(t, os.WriteFile(s.Path(), []byte("a,b\n1,2\n"), 0600))

	require.NoError(t, s.EnsureExists())

	assert.Equal(t, "a,b\n1,2\n", readFile(t, s.Path()))
}

func TestEnsureExists_CreatesParentDirectories(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "store.csv")
	s := NewCSVStore(path, ',', logging.NewMockLogger())

	require.NoError(t, s.EnsureExists())
	assert.Equal(t, expectedHeader, readFile(t, path))
}

func TestAppend_AddsRowsInOrder(t *testing.T) {
	s, _ := newTestStore(t)
	require.NoError(t, s.EnsureExists())

	require.NoError(t, s.Append(sampleRecord("First")))
	require.NoError(t, s.Append(sampleRecord("Second")))

	records, err := s.Records()
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "First", records[0].CompanyName)
	assert.Equal(t, "Second", records[1].CompanyName)

	count, err := s.Count()
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestAppend_RoundTripsSpecialCharacters(t *testing.T) {
	s, _ := newTestStore(t)
	require.NoError(t, s.EnsureExists())

	record := models.Record{
		CompanyName:        "Acme, Inc.",
		ProductBrand:       `The "Best" Brand`,
		ProductDescription: "line one\nline two",
		ProductionLocation: " leading space",
		GeographicalArea:   "Zürich; Genève",
		ProductionVolume:   "1,000,000",
		AnnualRevenue:      `"quoted"`,
		ExtractedText:      "Hello\nWorld\n\tindented, \"quoted\"\n",
	}
	require.NoError(t, s.Append(record))

	records, err := s.Records()
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, record, records[0])

	// also readable by a plain CSV reader
	rows, err := csv.NewReader(strings.NewReader(readFile(t, s.Path()))).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, models.Columns(), rows[0])
	assert.Equal(t, record.Row(), rows[1])
}

func TestAppend_EmptyExtractedTextKeepsColumn(t *testing.T) {
	s, _ := newTestStore(t)
	require.NoError(t, s.EnsureExists())

	record := sampleRecord("Acme")
	record.ExtractedText = ""
	require.NoError(t, s.Append(record))

	lines := strings.Split(strings.TrimSuffix(readFile(t, s.Path()), "\n"), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "Acme,Widget,Small widget,Lyon,EU,1000,2M,", lines[1])
}

func TestAppend_PreservesExistingRowsVerbatim(t *testing.T) {
	s, _ := newTestStore(t)
	existing := expectedHeader + "Old Co,Brand,Desc,Here,World,5,6,\"multi\nline\"\n"
	require.NoError(t, os.WriteFile(s.Path(), []byte(existing), 0600))

	require.NoError(t, s.Append(sampleRecord("New Co")))

	content := readFile(t, s.Path())
	assert.True(t, strings.HasPrefix(content, existing))
	records, err := s.Records()
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "multi\nline", records[0].ExtractedText)
}

func TestAppend_KeepsCRLFInsideFields(t *testing.T) {
	s, _ := newTestStore(t)
	require.NoError(t, s.EnsureExists())

	first := sampleRecord("Windows")
	first.ExtractedText = "a\r\nb"
	require.NoError(t, s.Append(first))
	afterFirst := readFile(t, s.Path())
	assert.Contains(t, afterFirst, "\"a\r\nb\"")

	second := sampleRecord("Unix")
	second.ExtractedText = "line1\r\nline2\n"
	require.NoError(t, s.Append(second))

	content := readFile(t, s.Path())
	assert.True(t, strings.HasPrefix(content, afterFirst))
	assert.Contains(t, content, "\"line1\r\nline2\n\"")

	records, err := s.Records()
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, first, records[0])
	assert.Equal(t, second, records[1])
}

func TestAppend_AddsMissingFinalNewline(t *testing.T) {
	s, _ := newTestStore(t)
	existing := strings.TrimSuffix(expectedHeader, "\n") + "\r\nOld Co,Brand,Desc,Here,World,5,6,text"
	require.NoError(t, os.WriteFile(s.Path(), []byte(existing), 0600))

	require.NoError(t, s.Append(sampleRecord("New Co")))

	content := readFile(t, s.Path())
	assert.True(t, strings.HasPrefix(content, existing+"\nNew Co,"))
	records, err := s.Records()
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "text", records[0].ExtractedText)
	assert.Equal(t, "New Co", records[1].CompanyName)
}

func TestMaskQuotedCR(t *testing.T) {
	data := []byte("h1,h2\r\n\"x\r\ny\",\"say \"\"hi\"\"\r\"\r\n")
	marker := crMarker(data)

	masked := string(maskQuotedCR(data, marker))
	assert.Equal(t, "h1,h2\r\n\"x"+marker+"\ny\",\"say \"\"hi\"\""+marker+"\"\r\n", masked)

	unchanged := []byte("no,carriage,returns\n")
	assert.Equal(t, unchanged, maskQuotedCR(unchanged, marker))
}

func TestCRMarkerAvoidsExistingRunes(t *testing.T) {
	data := []byte(string(rune(0xE000)) + string(rune(0xE001)))
	assert.Equal(t, string(rune(0xE002)), crMarker(data))
}

func TestAppend_EmptyFileGetsHeader(t *testing.T) {
	s, _ := newTestStore(t)
	require.NoError(t, os.WriteFile(s.Path(), nil, 0600))

	require.NoError(t, s.Append(sampleRecord("Acme")))

	assert.True(t, strings.HasPrefix(readFile(t, s.Path()), expectedHeader))
}

func TestAppend_MissingStoreIsIOError(t *testing.T) {
	s, _ := newTestStore(t)

	err := s.Append(sampleRecord("Acme"))

	var ioErr *apperror.StoreIOError
	require.True(t, errors.As(err, &ioErr))
	assert.Equal(t, "read", ioErr.Op)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestAppend_MalformedStoreIsIOError(t *testing.T) {
	s, _ := newTestStore(t)
	require.NoError(t, os.WriteFile(s.Path(), []byte("a,\"unterminated\n"), 0600))

	err := s.Append(sampleRecord("Acme"))
	assert.True(t, isStoreIO(err))
	assert.Equal(t, "a,\"unterminated\n", readFile(t, s.Path()))
}

func TestCustomDelimiter(t *testing.T) {
	path := filepath.Join(t.TempDir(), "store.csv")
	s := NewCSVStore(path, ';', logging.NewMockLogger())
	require.NoError(t, s.EnsureExists())
	require.NoError(t, s.Append(sampleRecord("Semi;Colon")))

	content := readFile(t, path)
	assert.True(t, strings.HasPrefix(content, "Company Name;Product Brand;"))
	assert.Contains(t, content, `"Semi;Colon"`)

	records, err := s.Records()
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "Semi;Colon", records[0].CompanyName)
}

func TestReadAll(t *testing.T) {
	s, _ := newTestStore(t)
	require.NoError(t, s.EnsureExists())
	require.NoError(t, s.Append(sampleRecord("Acme")))

	data, err := s.ReadAll()
	require.NoError(t, err)
	assert.Equal(t, readFile(t, s.Path()), string(data))

	missing := NewCSVStore(filepath.Join(t.TempDir(), "missing.csv"), ',', logging.NewMockLogger())
	_, err = missing.ReadAll()
	assert.True(t, isStoreIO(err))
}

func TestRecords_HeaderOnly(t *testing.T) {
	s, _ := newTestStore(t)
	require.NoError(t, s.EnsureExists())

	records, err := s.Records()
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestMockStore(t *testing.T) {
	m := NewMockStore()
	require.NoError(t, m.EnsureExists())
	require.NoError(t, m.Append(sampleRecord("Acme")))

	data, err := m.ReadAll()
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), expectedHeader))

	records, err := m.Records()
	require.NoError(t, err)
	assert.Len(t, records, 1)
	count, err := m.Count()
	require.NoError(t, err)
	assert.Equal(t, 1, count)
	assert.Equal(t, 1, m.EnsureExistsCalls)

	m.AppendError = errors.New("disk full")
	assert.Error(t, m.Append(sampleRecord("Other")))
}

func TestImplementsInterfaces(t *testing.T) {
	var _ RecordStore = (*CSVStore)(nil)
	var _ RecordStore = (*MockStore)(nil)
}
