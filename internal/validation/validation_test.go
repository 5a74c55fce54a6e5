package validation_test

import (
	"os"
	"path/filepath"
	"testing"

	"fjacquet/doc-extract-csv/internal/validation"

	"github.com/stretchr/testify/assert"
)

func TestIsValidPath(t *testing.T) {
	tmpDir := t.TempDir()

	testFile := filepath.Join(tmpDir, "report.pdf")
	err := os.WriteFile(testFile, []byte("%PDF-1.4"), 0600)
	assert.NoError(t, err)

	tests := []struct {
		name        string
		path        string
		expectError bool
		errContains string
	}{
		{
			name:        "Existing file",
			path:        testFile,
			expectError: false,
		},
		{
			name:        "Directory",
			path:        tmpDir,
			expectError: true,
			errContains: "is a directory",
		},
		{
			name:        "Non-existent path",
			path:        "/nonexistent/path/to/file.txt",
			expectError: true,
			errContains: "path does not exist",
		},
		{
			name:        "Blank path",
			path:        "   ",
			expectError: true,
			errContains: "must not be empty",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validation.IsValidPath(tt.path)
			if tt.expectError {
				assert.Error(t, err)
				if tt.errContains != "" {
					assert.Contains(t, err.Error(), tt.errContains)
				}
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestIsValidOutputFormat(t *testing.T) {
	tests := []struct {
		name        string
		format      string
		expectError bool
	}{
		{name: "Valid CSV format", format: "csv"},
		{name: "Valid XLSX format", format: "xlsx"},
		{name: "Invalid format - json", format: "json", expectError: true},
		{name: "Invalid format - empty", format: "", expectError: true},
		{name: "Invalid format - uppercase", format: "CSV", expectError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validation.IsValidOutputFormat(tt.format)
			if tt.expectError {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), "unsupported output format")
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestIsValidFilePermissions(t *testing.T) {
	tests := []struct {
		name        string
		mode        os.FileMode
		expectError bool
	}{
		{name: "0600", mode: 0600},
		{name: "0644", mode: 0644},
		{name: "0755", mode: 0755},
		{name: "0666 world writable", mode: 0666, expectError: true},
		{name: "0777 world writable", mode: 0777, expectError: true},
		{name: "0602 world writable", mode: 0602, expectError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validation.IsValidFilePermissions(tt.mode)
			if tt.expectError {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), "too permissive")
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
