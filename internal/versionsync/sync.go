// Package versionsync rewrites the release version of a Cargo project: the
// top-level `version` line of the manifest and the entry for the same package
// in the lock file.
//
// Both files are read whole, changed by a single substitution and written
// back whole. The two writes are independent: when the lock file update fails
// the manifest has already been rewritten.
package versionsync

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/indaco/cargosync/internal/core"
	"github.com/indaco/cargosync/internal/parser"
)

// Defaults used when Options fields are empty.
const (
	DefaultManifestPath = "Cargo.toml"
	DefaultLockfilePath = "Cargo.lock"
	DefaultPackageName  = "lox-linein-bridge"
)

// Options configures a Synchronizer.
type Options struct {
	ManifestPath string
	LockfilePath string
	PackageName  string

	// DryRun computes every change without writing any file.
	DryRun bool
}

func (o Options) withDefaults() Options {
	if o.ManifestPath == "" {
		o.ManifestPath = DefaultManifestPath
	}
	if o.LockfilePath == "" {
		o.LockfilePath = DefaultLockfilePath
	}
	if o.PackageName == "" {
		o.PackageName = DefaultPackageName
	}
	return o
}

// Change describes the rewrite of a single file.
type Change struct {
	Path       string
	OldVersion string
	NewVersion string

	// Written is false for dry runs.
	Written bool
}

// Unchanged reports whether the file already carried the new version.
func (c Change) Unchanged() bool {
	return c.OldVersion == c.NewVersion
}

// Result summarizes a Sync run.
type Result struct {
	Version  string
	Manifest Change

	// Lockfile is nil when the lock file does not exist.
	Lockfile *Change
}

// Synchronizer applies a version to the manifest and lock file.
type Synchronizer struct {
	rw   *parser.ReadWriter
	fs   core.FileSystem
	opts Options
}

// New creates a Synchronizer. Empty option fields fall back to the defaults.
func New(fsys core.FileSystem, opts Options) *Synchronizer {
	return &Synchronizer{
		rw:   parser.NewReadWriter(fsys),
		fs:   fsys,
		opts: opts.withDefaults(),
	}
}

// Options returns the effective options.
func (s *Synchronizer) Options() Options {
	return s.opts
}

// Sync updates the manifest and then the lock file. The first failure stops
// the run; nothing already written is rolled back.
func (s *Synchronizer) Sync(ctx context.Context, version string) (*Result, error) {
	if err := ValidateVersionArg(version); err != nil {
		return nil, err
	}

	manifest, err := s.UpdateManifest(ctx, version)
	if err != nil {
		return nil, err
	}

	lock, err := s.UpdateLockfile(ctx, version)
	if err != nil {
		return &Result{Version: version, Manifest: manifest}, err
	}

	return &Result{Version: version, Manifest: manifest, Lockfile: lock}, nil
}

// UpdateManifest rewrites the first top-level `version = "..."` line of the manifest.
func (s *Synchronizer) UpdateManifest(ctx context.Context, version string) (Change, error) {
	path := s.opts.ManifestPath

	data, err := s.fs.ReadFile(ctx, path)
	if err != nil {
		return Change{}, fmt.Errorf("failed to read manifest %q: %w", path, err)
	}

	updated, old, ok := parser.Splice(data, manifestPattern, manifestValueGroup, version)
	if !ok {
		return Change{}, &PatternNotFoundError{Kind: KindManifest, Path: path}
	}

	return s.commit(ctx, path, updated, old, version)
}

// UpdateLockfile rewrites the version of the configured package in the lock
// file. A missing lock file is skipped and reported as a nil Change.
func (s *Synchronizer) UpdateLockfile(ctx context.Context, version string) (*Change, error) {
	path := s.opts.LockfilePath

	if _, err := s.fs.Stat(ctx, path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to stat lock file %q: %w", path, err)
	}

	data, err := s.fs.ReadFile(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("failed to read lock file %q: %w", path, err)
	}

	updated, old, ok := parser.Splice(data, lockPattern(s.opts.PackageName), lockValueGroup, version)
	if !ok {
		return nil, &PatternNotFoundError{Kind: KindLockfile, Path: path, Package: s.opts.PackageName}
	}

	change, err := s.commit(ctx, path, updated, old, version)
	if err != nil {
		return nil, err
	}
	return &change, nil
}

func (s *Synchronizer) commit(ctx context.Context, path string, data []byte, old, version string) (Change, error) {
	change := Change{Path: path, OldVersion: old, NewVersion: version}
	if s.opts.DryRun {
		return change, nil
	}
	if err := s.rw.Overwrite(ctx, path, data); err != nil {
		return Change{}, err
	}
	change.Written = true
	return change, nil
}

// ValidateVersionArg rejects values that cannot be written into a quoted
// TOML string on a single line. The version is otherwise opaque.
func ValidateVersionArg(version string) error {
	if strings.TrimSpace(version) == "" {
		return fmt.Errorf("%w: version must not be empty", ErrUsage)
	}
	if strings.ContainsAny(version, "\"\n\r") {
		return fmt.Errorf("%w: version must not contain quotes or line breaks", ErrUsage)
	}
	return nil
}
