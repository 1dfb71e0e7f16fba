package parser

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"regexp"

	"github.com/indaco/cargosync/internal/core"
)

// Splice replaces capturing group `group` of the first match of re in data
// with value. Bytes outside that group are returned untouched. It reports the
// previous group value and whether re matched at all.
func Splice(data []byte, re *regexp.Regexp, group int, value string) (updated []byte, old string, ok bool) {
	loc := re.FindSubmatchIndex(data)
	if loc == nil || 2*group+1 >= len(loc) || loc[2*group] < 0 {
		return data, "", false
	}

	start, end := loc[2*group], loc[2*group+1]
	updated = make([]byte, 0, len(data)-(end-start)+len(value))
	updated = append(updated, data[:start]...)
	updated = append(updated, value...)
	updated = append(updated, data[end:]...)

	return updated, string(data[start:end]), true
}

// Writer writes rewritten file contents back to disk.
type Writer struct {
	fs core.FileSystem
}

// NewWriter creates a new Writer with the given filesystem.
func NewWriter(fsys core.FileSystem) *Writer {
	return &Writer{fs: fsys}
}

// Overwrite replaces the whole content of path, keeping the permission bits
// of the existing file. New files get core.PermPublicRead.
func (w *Writer) Overwrite(ctx context.Context, path string, data []byte) error {
	perm := core.PermPublicRead
	info, err := w.fs.Stat(ctx, path)
	switch {
	case err == nil:
		perm = info.Mode().Perm()
	case !errors.Is(err, fs.ErrNotExist):
		return fmt.Errorf("failed to stat file %q: %w", path, err)
	}

	if err := w.fs.WriteFile(ctx, path, data, perm); err != nil {
		return fmt.Errorf("failed to write file %q: %w", path, err)
	}
	return nil
}

// ReadWriter combines Reader and Writer functionality.
type ReadWriter struct {
	*Reader
	*Writer
}

// NewReadWriter creates a new ReadWriter with the given filesystem.
func NewReadWriter(fsys core.FileSystem) *ReadWriter {
	return &ReadWriter{
		Reader: NewReader(fsys),
		Writer: NewWriter(fsys),
	}
}
