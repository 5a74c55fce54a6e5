package store

import (
	"bytes"
	"encoding/csv"
	"sync"

	"fjacquet/doc-extract-csv/internal/models"
)

// MockStore is an in-memory RecordStore for testing.
type MockStore struct {
	mu      sync.Mutex
	created bool
	records []models.Record

	// Error fields for testing error conditions
	EnsureExistsError error
	AppendError       error
	ReadAllError      error

	EnsureExistsCalls int
}

// NewMockStore returns a MockStore holding records.
func NewMockStore(records ...models.Record) *MockStore {
	return &MockStore{created: true, records: records}
}

func (m *MockStore) EnsureExists() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.EnsureExistsCalls++
	if m.EnsureExistsError != nil {
		return m.EnsureExistsError
	}
	m.created = true
	return nil
}

func (m *MockStore) Append(record models.Record) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.AppendError != nil {
		return m.AppendError
	}
	m.records = append(m.records, record)
	return nil
}

// ReadAll renders the stored records as comma-separated text with a header.
func (m *MockStore) ReadAll() ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.ReadAllError != nil {
		return nil, m.ReadAllError
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	_ = w.Write(models.Columns())
	for _, r := range m.records {
		_ = w.Write(r.Row())
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}

func (m *MockStore) Records() ([]models.Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.ReadAllError != nil {
		return nil, m.ReadAllError
	}
	out := make([]models.Record, len(m.records))
	copy(out, m.records)
	return out, nil
}

func (m *MockStore) Count() (int, error) {
	records, err := m.Records()
	return len(records), err
}
