// Package skip decides which inputs bypass review entirely. Missing files,
// files without a recognized code extension, and empty files are skipped:
// they count as a pass and never reach the inference service.
package skip

import (
	"os"
	"path/filepath"
	"strings"
)

// codeExtensions is the set of file extensions treated as reviewable code.
var codeExtensions = map[string]bool{
	".py":   true,
	".js":   true,
	".java": true,
	".ts":   true,
	".tsx":  true,
	".go":   true,
	".rs":   true,
	".cpp":  true,
	".c":    true,
}

// Reason explains why an input was skipped.
type Reason string

const (
	ReasonNone     Reason = ""
	ReasonNotFound Reason = "not found"
	ReasonNotCode  Reason = "not code"
	ReasonEmpty    Reason = "empty"
)

// IsCodeFile reports whether path has a recognized code extension.
func IsCodeFile(path string) bool {
	return codeExtensions[strings.ToLower(filepath.Ext(path))]
}

// Check examines a path and returns the skip reason, if any, along with the
// file contents when the file should be reviewed. It only touches the local
// filesystem.
func Check(path string) (Reason, string, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return ReasonNotFound, "", nil
	}

	if !IsCodeFile(path) {
		return ReasonNotCode, "", nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return ReasonNone, "", err
	}

	code := string(data)
	if strings.TrimSpace(code) == "" {
		return ReasonEmpty, "", nil
	}

	return ReasonNone, code, nil
}
