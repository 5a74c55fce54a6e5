// Package validation checks operator input before it reaches the extractors or
// the store.
package validation

import (
	"fmt"
	"os"
	"strings"
)

// IsValidPath checks that an upload path exists and is a regular file.
func IsValidPath(path string) error {
	if strings.TrimSpace(path) == "" {
		return fmt.Errorf("path must not be empty")
	}

	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return fmt.Errorf("path does not exist: %s", path)
	}
	if err != nil {
		return fmt.Errorf("error checking path %s: %w", path, err)
	}

	if info.IsDir() {
		return fmt.Errorf("path %s is a directory, not a file", path)
	}
	if !info.Mode().IsRegular() {
		return fmt.Errorf("path %s is not a regular file", path)
	}

	return nil
}

// IsValidOutputFormat checks if the given download format is supported.
func IsValidOutputFormat(format string) error {
	switch format {
	case "csv", "xlsx":
		return nil
	default:
		return fmt.Errorf("unsupported output format: %s. Supported formats are 'csv', 'xlsx'", format)
	}
}

// IsValidFilePermissions rejects modes that let other users write the file.
func IsValidFilePermissions(mode os.FileMode) error {
	if mode.Perm()&0002 != 0 {
		return fmt.Errorf("file permissions are too permissive: %s. Recommended 0600 or 0644", mode.String())
	}
	return nil
}
