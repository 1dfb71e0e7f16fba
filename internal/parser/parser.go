package parser

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/indaco/cargosync/internal/core"
	"github.com/pelletier/go-toml/v2"
)

// ErrPackageNotLocked is returned when a lock file has no entry for the requested package.
var ErrPackageNotLocked = errors.New("package not found in lock file")

// Reader provides version reading capabilities for the supported formats.
type Reader struct {
	fs core.FileSystem
}

// NewReader creates a new Reader with the given filesystem.
func NewReader(fs core.FileSystem) *Reader {
	return &Reader{fs: fs}
}

// Read reads a version from a file based on the provided configuration.
func (r *Reader) Read(ctx context.Context, cfg FileConfig) (*Result, error) {
	if cfg.Path == "" {
		return nil, fmt.Errorf("file path is required")
	}

	if !cfg.Format.IsValid() {
		return nil, fmt.Errorf("invalid format: %s", cfg.Format)
	}

	data, err := r.fs.ReadFile(ctx, cfg.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %q: %w", cfg.Path, err)
	}

	var version string
	switch cfg.Format {
	case FormatTOML:
		version, err = r.readTOML(data, cfg.Path, cfg.Field)
	case FormatRegex:
		version, err = r.readRegex(data, cfg.Path, cfg.Pattern)
	default:
		return nil, fmt.Errorf("unsupported format: %s", cfg.Format)
	}

	if err != nil {
		return nil, err
	}

	return &Result{
		Version: version,
		Path:    cfg.Path,
		Format:  cfg.Format,
		Field:   cfg.Field,
	}, nil
}

// ReadVersion is a convenience method that reads and returns just the version string.
func (r *Reader) ReadVersion(ctx context.Context, cfg FileConfig) (string, error) {
	result, err := r.Read(ctx, cfg)
	if err != nil {
		return "", err
	}
	return result.Version, nil
}

// lockFile mirrors the parts of Cargo.lock we care about.
type lockFile struct {
	Packages []lockedPackage `toml:"package"`
}

type lockedPackage struct {
	Name    string `toml:"name"`
	Version string `toml:"version"`
}

// ReadLockedVersion returns the version recorded for pkg in a Cargo.lock style file.
// When the same name is locked more than once the first entry wins.
func (r *Reader) ReadLockedVersion(ctx context.Context, path, pkg string) (string, error) {
	data, err := r.fs.ReadFile(ctx, path)
	if err != nil {
		return "", fmt.Errorf("failed to read file %q: %w", path, err)
	}

	var lock lockFile
	if err := toml.Unmarshal(data, &lock); err != nil {
		return "", fmt.Errorf("failed to parse TOML in %q: %w", path, err)
	}

	for _, p := range lock.Packages {
		if p.Name == pkg {
			return p.Version, nil
		}
	}
	return "", fmt.Errorf("%w: %q in %q", ErrPackageNotLocked, pkg, path)
}

// readTOML extracts a version from TOML data using dot notation for the field path.
func (r *Reader) readTOML(data []byte, path, field string) (string, error) {
	if field == "" {
		return "", fmt.Errorf("field is required for TOML format")
	}

	var obj map[string]any
	if err := toml.Unmarshal(data, &obj); err != nil {
		return "", fmt.Errorf("failed to parse TOML in %q: %w", path, err)
	}

	value, err := getNestedValue(obj, field)
	if err != nil {
		return "", fmt.Errorf("in file %q: %w", path, err)
	}

	version, ok := value.(string)
	if !ok {
		return "", fmt.Errorf("field %q in %q is not a string", field, path)
	}

	return version, nil
}

// readRegex extracts a version using a regex pattern with a capturing group.
func (r *Reader) readRegex(data []byte, path, pattern string) (string, error) {
	if pattern == "" {
		return "", fmt.Errorf("pattern is required for regex format")
	}

	re, err := regexp.Compile(pattern)
	if err != nil {
		return "", fmt.Errorf("invalid regex pattern %q: %w", pattern, err)
	}

	matches := re.FindSubmatch(data)
	if len(matches) < 2 {
		return "", fmt.Errorf("no version match found in %q (pattern %q must have capturing group)", path, pattern)
	}

	return string(matches[1]), nil
}

// getNestedValue retrieves a value from a nested map using dot notation.
// Example: "workspace.package.version" accesses obj["workspace"]["package"]["version"]
func getNestedValue(obj map[string]any, field string) (any, error) {
	if field == "" {
		return nil, fmt.Errorf("field path cannot be empty")
	}

	parts := strings.Split(field, ".")
	current := any(obj)

	for i, part := range parts {
		currentMap, ok := current.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("field %q is not an object at path %q", strings.Join(parts[:i], "."), part)
		}

		value, exists := currentMap[part]
		if !exists {
			return nil, fmt.Errorf("field %q not found", field)
		}

		current = value
	}

	return current, nil
}
