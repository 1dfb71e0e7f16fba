// Package core holds the small set of abstractions shared by every other
// package: filesystem access, marshaling and permission constants.
package core

import (
	"context"
	"os"
)

// File permission constants.
const (
	// PermOwnerRW is used for files only the owner should read or write (config files).
	PermOwnerRW os.FileMode = 0o600

	// PermPublicRead is used for files created without an existing mode to preserve.
	PermPublicRead os.FileMode = 0o644

	// PermDir is the mode reported for directories.
	PermDir os.FileMode = 0o755
)

// FileSystem abstracts file operations so commands can be tested against an
// in-memory implementation.
type FileSystem interface {
	ReadFile(ctx context.Context, path string) ([]byte, error)
	WriteFile(ctx context.Context, path string, data []byte, perm os.FileMode) error
	Stat(ctx context.Context, path string) (os.FileInfo, error)
}

// Marshaler abstracts serialization for testability.
type Marshaler interface {
	Marshal(v any) ([]byte, error)
}

// OSFileSystem implements FileSystem on top of the os package.
type OSFileSystem struct{}

// NewOSFileSystem returns a FileSystem backed by the real disk.
func NewOSFileSystem() *OSFileSystem {
	return &OSFileSystem{}
}

func (f *OSFileSystem) ReadFile(ctx context.Context, path string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return os.ReadFile(path)
}

func (f *OSFileSystem) WriteFile(ctx context.Context, path string, data []byte, perm os.FileMode) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return os.WriteFile(path, data, perm)
}

func (f *OSFileSystem) Stat(ctx context.Context, path string) (os.FileInfo, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return os.Stat(path)
}

// Ensure OSFileSystem implements FileSystem.
var _ FileSystem = (*OSFileSystem)(nil)
