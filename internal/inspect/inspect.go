// Package inspect reads the versions currently recorded in a Cargo manifest
// and lock file and reports whether they agree.
package inspect

import (
	"context"
	"errors"
	"fmt"
	"io/fs"

	"github.com/indaco/cargosync/internal/core"
	"github.com/indaco/cargosync/internal/parser"
	"github.com/indaco/cargosync/internal/versionsync"
)

// manifestField is read when no top-level version line exists, for
// example a manifest using single-quoted strings.
const manifestField = "package.version"

// Report holds the versions found on disk.
type Report struct {
	Package string

	ManifestPath    string
	ManifestVersion string

	LockfilePath    string
	LockfilePresent bool
	LockfileVersion string
}

// Consistent reports whether the lock file is absent or matches the manifest.
func (r *Report) Consistent() bool {
	return !r.LockfilePresent || r.LockfileVersion == r.ManifestVersion
}

// Inspector reads versions through a parser.Reader.
type Inspector struct {
	fs     core.FileSystem
	reader *parser.Reader
}

// New creates an Inspector on the given filesystem.
func New(fsys core.FileSystem) *Inspector {
	return &Inspector{fs: fsys, reader: parser.NewReader(fsys)}
}

// Inspect builds a Report for the files named in opts.
func (i *Inspector) Inspect(ctx context.Context, opts versionsync.Options) (*Report, error) {
	report := &Report{
		Package:      opts.PackageName,
		ManifestPath: opts.ManifestPath,
		LockfilePath: opts.LockfilePath,
	}

	version, err := i.manifestVersion(ctx, opts.ManifestPath)
	if err != nil {
		return nil, err
	}
	report.ManifestVersion = version

	if _, err := i.fs.Stat(ctx, opts.LockfilePath); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return report, nil
		}
		return nil, fmt.Errorf("failed to stat lock file %q: %w", opts.LockfilePath, err)
	}
	report.LockfilePresent = true

	locked, err := i.reader.ReadLockedVersion(ctx, opts.LockfilePath, opts.PackageName)
	if err != nil {
		if errors.Is(err, parser.ErrPackageNotLocked) {
			return nil, &versionsync.PatternNotFoundError{
				Kind:    versionsync.KindLockfile,
				Path:    opts.LockfilePath,
				Package: opts.PackageName,
			}
		}
		return nil, err
	}
	report.LockfileVersion = locked

	return report, nil
}

// manifestVersion returns the value on the same line a sync rewrites, so
// show and check agree with set. The TOML field is the fallback.
func (i *Inspector) manifestVersion(ctx context.Context, path string) (string, error) {
	version, err := i.reader.ReadVersion(ctx, parser.FileConfig{
		Path:    path,
		Format:  parser.FormatRegex,
		Pattern: versionsync.ManifestLinePattern,
	})
	if err == nil {
		return version, nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return "", err
	}

	version, err = i.reader.ReadVersion(ctx, parser.FileConfig{
		Path:   path,
		Format: parser.FormatTOML,
		Field:  manifestField,
	})
	if err != nil {
		return "", &versionsync.PatternNotFoundError{Kind: versionsync.KindManifest, Path: path}
	}
	return version, nil
}
