package versionsync

import (
	"errors"
	"fmt"
)

var (
	// ErrUsage is returned for a missing, extra or empty version argument.
	ErrUsage = errors.New("usage: cargosync <version>")

	// ErrManifestVersionNotFound means the manifest has no `version = "..."` line.
	ErrManifestVersionNotFound = errors.New("version line not found")

	// ErrLockfileVersionNotFound means the lock file has no block for the configured package.
	ErrLockfileVersionNotFound = errors.New("package version not found")
)

// Kind identifies which document a PatternNotFoundError refers to.
type Kind int

const (
	KindManifest Kind = iota
	KindLockfile
)

// String returns a human-readable representation of the kind.
func (k Kind) String() string {
	switch k {
	case KindManifest:
		return "manifest"
	case KindLockfile:
		return "lockfile"
	default:
		return "unknown"
	}
}

// PatternNotFoundError reports that the version pattern did not match a document.
// The document is left untouched when this error is returned.
type PatternNotFoundError struct {
	Kind    Kind
	Path    string
	Package string
}

func (e *PatternNotFoundError) Error() string {
	if e.Kind == KindLockfile {
		return fmt.Sprintf("%s: version of package %q not found", e.Path, e.Package)
	}
	return fmt.Sprintf("%s: %s", e.Path, ErrManifestVersionNotFound)
}

// Unwrap lets errors.Is match the sentinel for the document kind.
func (e *PatternNotFoundError) Unwrap() error {
	if e.Kind == KindLockfile {
		return ErrLockfileVersionNotFound
	}
	return ErrManifestVersionNotFound
}
