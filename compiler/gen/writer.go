package gen

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/tools/imports"
)

// Metrics tracks generation results.
type Metrics struct {
	FilesGenerated int   // files written to disk
	FilesUnchanged int   // files rendered identical to the existing ones
	FilesCached    int   // files skipped by the cache without rendering
	TotalBytes     int64 // bytes written
}

// format runs goimports over a rendered file. On failure the unformatted
// source is written next to the target for debugging.
func format(path string, src []byte) ([]byte, error) {
	formatted, err := imports.Process(path, src, nil)
	if err != nil {
		// Already failing: errors of the debug write are ignored.
		debugPath := path + ".error"
		_ = os.MkdirAll(filepath.Dir(debugPath), 0o755)
		_ = os.WriteFile(debugPath, src, 0o644)
		return nil, NewGenerationError("format", path, fmt.Sprintf("unformatted source written to %s", debugPath), err)
	}
	return formatted, nil
}

// writeFile writes content to path unless the file already holds it. It
// reports whether the file was written.
func writeFile(path string, content []byte) (bool, error) {
	if old, err := os.ReadFile(path); err == nil && bytes.Equal(old, content) {
		return false, nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return false, NewGenerationError("write", path, "create directory", err)
	}
	if err := os.WriteFile(path, content, 0o644); err != nil {
		return false, NewGenerationError("write", path, "", err)
	}
	return true, nil
}
