package extraction

// Extractor turns the raw bytes of one document into plain text. Non-empty
// output ends with a newline so the text of consecutive files stays separated.
type Extractor interface {
	ExtractText(data []byte) (string, error)
}

// MockExtractor returns canned text or an error and counts its calls.
type MockExtractor struct {
	MockText string
	MockErr  error
	Calls    int
}

// NewMockExtractor creates a MockExtractor with the given result.
func NewMockExtractor(mockText string, mockErr error) *MockExtractor {
	return &MockExtractor{
		MockText: mockText,
		MockErr:  mockErr,
	}
}

func (e *MockExtractor) ExtractText(data []byte) (string, error) {
	e.Calls++
	if e.MockErr != nil {
		return "", e.MockErr
	}
	return e.MockText, nil
}
