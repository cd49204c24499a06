package report

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// WriteFile renders doc into out and returns the path written.
// An empty out, an existing directory, or a path with no extension or a
// trailing separator is treated as a directory and receives the default
// Filename.
func WriteFile(out string, doc Document, f Format) (string, error) {
	path := out
	if isDirTarget(out) {
		path = filepath.Join(out, Filename(doc.Brand, f))
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return "", fmt.Errorf("creating output dir: %w", err)
		}
	}

	file, err := os.Create(path) //nolint:gosec // output path is chosen by the local user
	if err != nil {
		return "", fmt.Errorf("creating report: %w", err)
	}
	if err := Render(file, doc, f); err != nil {
		_ = file.Close()
		_ = os.Remove(path)
		return "", err
	}
	if err := file.Close(); err != nil {
		return "", fmt.Errorf("closing report: %w", err)
	}
	return path, nil
}

func isDirTarget(out string) bool {
	if out == "" || strings.HasSuffix(out, "/") || strings.HasSuffix(out, string(filepath.Separator)) {
		return true
	}
	if info, err := os.Stat(out); err == nil {
		return info.IsDir()
	}
	return filepath.Ext(out) == ""
}
