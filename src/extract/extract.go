// Package extract reads plain-text content out of local documents for
// summarization. Only text and PDF files are supported.
package extract

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// UnsupportedFormatError reports a file extension outside the supported
// set. It is a user-visible condition, not a crash.
type UnsupportedFormatError struct {
	Ext string
}

func (e *UnsupportedFormatError) Error() string {
	return fmt.Sprintf("unsupported file type %q: only .txt and .pdf are supported", e.Ext)
}

// Text extracts the textual content of the file at path. Line endings are
// normalized to \n.
func Text(path string) (string, error) {
	if _, err := os.Stat(path); err != nil {
		return "", fmt.Errorf("file not found: %s", path)
	}

	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".txt", ".log", ".md":
		data, err := os.ReadFile(path)
		if err != nil {
			return "", fmt.Errorf("read %s: %w", path, err)
		}
		return strings.ReplaceAll(string(data), "\r\n", "\n"), nil
	case ".pdf":
		return pdfText(path)
	default:
		return "", &UnsupportedFormatError{Ext: ext}
	}
}
