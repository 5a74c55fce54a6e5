package logging

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFieldConstants(t *testing.T) {
	assert.Equal(t, "file_name", FieldFile)
	assert.Equal(t, "format", FieldFormat)
	assert.Equal(t, "count", FieldCount)
	assert.Equal(t, "session_id", FieldSession)
	assert.Equal(t, "store_path", FieldStorePath)
	assert.Equal(t, "error", FieldError)
}
