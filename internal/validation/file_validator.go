// Package validation checks user-supplied file names and paths before the
// parsing layer touches them.
package validation

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// SupportedExtensions lists the file extensions the parser understands.
var SupportedExtensions = []string{".csv", ".tsv", ".xlsx", ".xlsm"}

// FileValidator provides input validation shared by the HTTP upload path
// and the CLI.
type FileValidator struct {
	logger *slog.Logger
}

// NewFileValidator creates a new file validator.
func NewFileValidator(logger *slog.Logger) *FileValidator {
	if logger == nil {
		logger = slog.Default()
	}
	return &FileValidator{logger: logger}
}

// ValidateUploadName checks an uploaded file name: it must be a bare name
// without path separators and carry a supported extension.
func (v *FileValidator) ValidateUploadName(name string) error {
	if name == "" {
		return fmt.Errorf("file name is empty")
	}
	if strings.ContainsAny(name, `/\`) || name != filepath.Base(name) {
		v.logger.Warn("Rejected upload name with path separators",
			slog.String("file_name", name))
		return fmt.Errorf("file name %q must not contain path separators", name)
	}
	if !IsSupportedExtension(name) {
		return fmt.Errorf("unsupported file type %q, expected one of %s",
			filepath.Ext(name), strings.Join(SupportedExtensions, ", "))
	}
	return nil
}

// ValidateInputFile checks that a local path exists, is a regular file, and
// has a supported extension.
func (v *FileValidator) ValidateInputFile(path string) error {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return fmt.Errorf("input file %s does not exist", path)
	}
	if err != nil {
		return fmt.Errorf("failed to stat %s: %w", path, err)
	}
	if info.IsDir() {
		return fmt.Errorf("%s is a directory, expected a file", path)
	}
	if !IsSupportedExtension(path) {
		return fmt.Errorf("unsupported file type %q, expected one of %s",
			filepath.Ext(path), strings.Join(SupportedExtensions, ", "))
	}
	return nil
}

// IsSupportedExtension reports whether the file name ends in an extension
// the parser can dispatch on.
func IsSupportedExtension(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	for _, supported := range SupportedExtensions {
		if ext == supported {
			return true
		}
	}
	return false
}
