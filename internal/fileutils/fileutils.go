// Package fileutils provides the file operations shared by the store, the
// exporter and the interactive session.
package fileutils

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"fjacquet/doc-extract-csv/internal/apperror"
	"fjacquet/doc-extract-csv/internal/models"
)

// FileExists checks if a file exists and is not a directory
func FileExists(filePath string) bool {
	info, err := os.Stat(filePath)
	if err != nil {
		return false
	}
	return !info.IsDir()
}

// DirectoryExists checks if a directory exists
func DirectoryExists(dirPath string) bool {
	info, err := os.Stat(dirPath)
	if err != nil {
		return false
	}
	return info.IsDir()
}

// EnsureDirectoryExists creates a directory if it doesn't exist
func EnsureDirectoryExists(dirPath string) error {
	if dirPath == "" || DirectoryExists(dirPath) {
		return nil
	}
	if err := os.MkdirAll(dirPath, 0750); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}
	return nil
}

// WriteFileAtomic replaces filePath with data. The content goes to a temporary
// file in the same directory which is then renamed over the target, so readers
// see either the old or the new content.
func WriteFileAtomic(filePath string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(filePath)
	if err := EnsureDirectoryExists(dir); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(filePath)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temporary file: %w", err)
	}
	tmpName := tmp.Name()
	committed := false
	defer func() {
		if !committed {
			_ = os.Remove(tmpName)
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("failed to write temporary file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("failed to sync temporary file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temporary file: %w", err)
	}
	if err := os.Chmod(tmpName, perm); err != nil {
		return fmt.Errorf("failed to set permissions: %w", err)
	}
	if err := os.Rename(tmpName, filePath); err != nil {
		return fmt.Errorf("failed to replace file: %w", err)
	}
	committed = true
	return nil
}

// ReadUpload loads a file from disk as an upload. Files larger than maxBytes
// are rejected with an error wrapping apperror.ErrFileTooLarge; maxBytes <= 0
// disables the check.
func ReadUpload(filePath string, maxBytes int64) (models.UploadedFile, error) {
	info, err := os.Stat(filePath)
	if err != nil {
		return models.UploadedFile{}, fmt.Errorf("cannot access file: %w", err)
	}
	if info.IsDir() {
		return models.UploadedFile{}, fmt.Errorf("%s is a directory", filePath)
	}
	if maxBytes > 0 && info.Size() > maxBytes {
		return models.UploadedFile{}, fmt.Errorf("%w: %d bytes, limit is %d", apperror.ErrFileTooLarge, info.Size(), maxBytes)
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		return models.UploadedFile{}, fmt.Errorf("failed to read file: %w", err)
	}
	return models.UploadedFile{Name: filepath.Base(filePath), Data: data}, nil
}

// ListFilesWithExtensions returns the regular files directly inside dirPath
// whose extension matches one of extensions, case-insensitively. Extensions
// are given without the leading dot. The result is sorted.
func ListFilesWithExtensions(dirPath string, extensions ...string) ([]string, error) {
	entries, err := os.ReadDir(dirPath)
	if err != nil {
		return nil, fmt.Errorf("failed to list files: %w", err)
	}

	wanted := make(map[string]bool, len(extensions))
	for _, ext := range extensions {
		wanted[strings.ToLower(strings.TrimPrefix(ext, "."))] = true
	}

	var files []string
	for _, entry := range entries {
		if !entry.Type().IsRegular() {
			continue
		}
		ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(entry.Name()), "."))
		if wanted[ext] {
			files = append(files, filepath.Join(dirPath, entry.Name()))
		}
	}
	sort.Strings(files)
	return files, nil
}
