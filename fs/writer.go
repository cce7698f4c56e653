// Package fs writes exported research documents to disk.
package fs

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/DennisFaucher/aisalesplan"
)

// Writer exports documents to files. Files are written to a temporary
// name first and renamed into place, so a failed export never leaves a
// truncated document behind.
type Writer struct {
	exporter aisalesplan.Exporter
	baseDir  string
}

// NewWriter creates a Writer that resolves relative paths against baseDir.
// An empty baseDir means the current working directory.
func NewWriter(exporter aisalesplan.Exporter, baseDir string) *Writer {
	return &Writer{exporter: exporter, baseDir: baseDir}
}

// Path returns where doc would be written. An empty name selects the
// document's default filename.
func (w *Writer) Path(doc *aisalesplan.ExportDocument, name string) string {
	if name == "" {
		name = doc.Filename(w.exporter.Extension())
	}
	if filepath.IsAbs(name) || w.baseDir == "" {
		return name
	}
	return filepath.Join(w.baseDir, name)
}

// WriteDocument exports doc and returns the path of the written file.
func (w *Writer) WriteDocument(doc *aisalesplan.ExportDocument, name string) (string, error) {
	if err := doc.Validate(); err != nil {
		return "", err
	}

	path := w.Path(doc, name)
	dir := filepath.Dir(path)

	f, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return "", fmt.Errorf("failed to create %s: %w", path, err)
	}
	tmp := f.Name()

	if err := w.exporter.Export(f, doc); err != nil {
		f.Close()
		os.Remove(tmp)
		return "", err
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return "", fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err := os.Chmod(tmp, 0644); err != nil {
		os.Remove(tmp)
		return "", fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return "", fmt.Errorf("failed to write %s: %w", path, err)
	}

	return path, nil
}
