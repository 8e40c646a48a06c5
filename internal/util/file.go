package util

import (
	"errors"
	"io"
	"net/http"
	"path/filepath"
	"strings"
)

// ValidateMimeType sniffs the first 512 bytes of reader. allowedTypes holds
// MIME prefixes ("image/") or full types ("application/pdf").
func ValidateMimeType(reader io.Reader, allowedTypes []string) (string, error) {
	buffer := make([]byte, 512)
	n, err := reader.Read(buffer)
	if err != nil && err != io.EOF {
		return "", err
	}

	mimeType := http.DetectContentType(buffer[:n])

	for _, allowed := range allowedTypes {
		if strings.HasPrefix(mimeType, allowed) || mimeType == allowed {
			return mimeType, nil
		}
	}

	return mimeType, errors.New("invalid file type: " + mimeType)
}

// HasExtension reports whether filename ends in one of exts, case-insensitively.
func HasExtension(filename string, exts []string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	for _, allowed := range exts {
		if ext == allowed {
			return true
		}
	}
	return false
}
