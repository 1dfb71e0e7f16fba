package core

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

// MockFileSystem is an in-memory FileSystem used by tests.
// Setting one of the *Err fields makes the corresponding operation fail.
type MockFileSystem struct {
	mu     sync.Mutex
	files  map[string][]byte
	modes  map[string]os.FileMode
	writes map[string]int

	ReadErr  error
	WriteErr error
	StatErr  error
}

// NewMockFileSystem creates an empty MockFileSystem.
func NewMockFileSystem() *MockFileSystem {
	return &MockFileSystem{
		files:  make(map[string][]byte),
		modes:  make(map[string]os.FileMode),
		writes: make(map[string]int),
	}
}

// SetFile stores a file with PermPublicRead permissions.
func (m *MockFileSystem) SetFile(path string, data []byte) {
	m.SetFileWithMode(path, data, PermPublicRead)
}

// SetFileWithMode stores a file with the given permissions.
func (m *MockFileSystem) SetFileWithMode(path string, data []byte, perm os.FileMode) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.files[filepath.Clean(path)] = append([]byte(nil), data...)
	m.modes[filepath.Clean(path)] = perm
}

// GetFile returns a copy of a stored file.
func (m *MockFileSystem) GetFile(path string) ([]byte, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	data, ok := m.files[filepath.Clean(path)]
	if !ok {
		return nil, false
	}
	return append([]byte(nil), data...), true
}

// WriteCount reports how many times WriteFile succeeded for path.
func (m *MockFileSystem) WriteCount(path string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.writes[filepath.Clean(path)]
}

func (m *MockFileSystem) ReadFile(ctx context.Context, path string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if m.ReadErr != nil {
		return nil, m.ReadErr
	}
	data, ok := m.GetFile(path)
	if !ok {
		return nil, &fs.PathError{Op: "open", Path: path, Err: fs.ErrNotExist}
	}
	return data, nil
}

func (m *MockFileSystem) WriteFile(ctx context.Context, path string, data []byte, perm os.FileMode) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if m.WriteErr != nil {
		return m.WriteErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	key := filepath.Clean(path)
	if _, exists := m.files[key]; !exists {
		m.modes[key] = perm
	}
	m.files[key] = append([]byte(nil), data...)
	m.writes[key]++
	return nil
}

func (m *MockFileSystem) Stat(ctx context.Context, path string) (os.FileInfo, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if m.StatErr != nil {
		return nil, m.StatErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	key := filepath.Clean(path)
	if data, ok := m.files[key]; ok {
		return &mockFileInfo{name: filepath.Base(key), size: int64(len(data)), mode: m.modes[key]}, nil
	}
	if m.hasChildren(key) {
		return &mockFileInfo{name: filepath.Base(key), mode: fs.ModeDir | PermDir}, nil
	}
	return nil, &fs.PathError{Op: "stat", Path: path, Err: fs.ErrNotExist}
}

func (m *MockFileSystem) hasChildren(dir string) bool {
	prefix := dir + string(filepath.Separator)
	for name := range m.files {
		if strings.HasPrefix(name, prefix) {
			return true
		}
	}
	return false
}

var _ FileSystem = (*MockFileSystem)(nil)

type mockFileInfo struct {
	name string
	size int64
	mode os.FileMode
}

func (fi *mockFileInfo) Name() string       { return fi.name }
func (fi *mockFileInfo) Size() int64        { return fi.size }
func (fi *mockFileInfo) Mode() os.FileMode  { return fi.mode }
func (fi *mockFileInfo) ModTime() time.Time { return time.Time{} }
func (fi *mockFileInfo) IsDir() bool        { return fi.mode.IsDir() }
func (fi *mockFileInfo) Sys() any           { return nil }
