package versionsync

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/indaco/cargosync/internal/core"
)

const testManifest = `[package]
name = "lox-linein-bridge"
version = "0.1.0"
edition = "2021"

[dependencies]
anyhow = { version = "1.0" }
tokio = { version = "1", features = ["full"] }
`

const testLock = `# This file is automatically @generated by Cargo.
# It is not intended for manual editing.
version = 3

[[package]]
name = "anyhow"
version = "1.0.86"
source = "registry+https://github.com/rust-lang/crates.io-index"

[[package]]
name = "lox-linein-bridge"
version = "0.1.0"
dependencies = [
 "anyhow",
 "tokio",
]

[[package]]
name = "tokio"
version = "1.38.0"
source = "registry+https://github.com/rust-lang/crates.io-index"
`

func newMockProject(manifest, lock string) *core.MockFileSystem {
	fs := core.NewMockFileSystem()
	fs.SetFile("Cargo.toml", []byte(manifest))
	if lock != "" {
		fs.SetFile("Cargo.lock", []byte(lock))
	}
	return fs
}

func mustGet(t *testing.T, fs *core.MockFileSystem, path string) string {
	t.Helper()
	data, ok := fs.GetFile(path)
	if !ok {
		t.Fatalf("file %q not found", path)
	}
	return string(data)
}

/* ------------------------------------------------------------------------- */
/* MANIFEST                                                                  */
/* ------------------------------------------------------------------------- */

func TestUpdateManifest(t *testing.T) {
	fs := newMockProject(testManifest, "")
	s := New(fs, Options{})

	change, err := s.UpdateManifest(context.Background(), "0.2.0")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := strings.Replace(testManifest, `version = "0.1.0"`, `version = "0.2.0"`, 1)
	if got := mustGet(t, fs, "Cargo.toml"); got != want {
		t.Errorf("manifest mismatch\ngot:\n%s\nwant:\n%s", got, want)
	}
	if change.OldVersion != "0.1.0" || change.NewVersion != "0.2.0" || !change.Written {
		t.Errorf("unexpected change: %+v", change)
	}
}

func TestUpdateManifest_FirstMatchOnly(t *testing.T) {
	manifest := "version = \"1.0.0\"\n\n[workspace]\nversion = \"1.0.0\"\n"
	fs := newMockProject(manifest, "")

	if _, err := New(fs, Options{}).UpdateManifest(context.Background(), "2.0.0"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := "version = \"2.0.0\"\n\n[workspace]\nversion = \"1.0.0\"\n"
	if got := mustGet(t, fs, "Cargo.toml"); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestUpdateManifest_NotFound(t *testing.T) {
	tests := []struct {
		name     string
		manifest string
	}{
		{"no version line", "[package]\nname = \"x\"\n"},
		{"indented version", "[package]\n  version = \"0.1.0\"\n"},
		{"trailing comment", "version = \"0.1.0\" # pinned\n"},
		{"single quotes", "version = '0.1.0'\n"},
		{"empty value", "version = \"\"\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs := newMockProject(tt.manifest, "")

			_, err := New(fs, Options{}).UpdateManifest(context.Background(), "0.2.0")
			if !errors.Is(err, ErrManifestVersionNotFound) {
				t.Fatalf("expected ErrManifestVersionNotFound, got %v", err)
			}

			var pnf *PatternNotFoundError
			if !errors.As(err, &pnf) || pnf.Kind != KindManifest || pnf.Path != "Cargo.toml" {
				t.Errorf("unexpected error detail: %#v", err)
			}
			if fs.WriteCount("Cargo.toml") != 0 {
				t.Error("manifest must not be written when the pattern is missing")
			}
			if got := mustGet(t, fs, "Cargo.toml"); got != tt.manifest {
				t.Errorf("manifest modified: %q", got)
			}
		})
	}
}

func TestUpdateManifest_ReadError(t *testing.T) {
	fs := core.NewMockFileSystem()

	_, err := New(fs, Options{}).UpdateManifest(context.Background(), "1.0.0")
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected ErrNotExist, got %v", err)
	}
	if errors.Is(err, ErrManifestVersionNotFound) {
		t.Error("read error must not be reported as pattern miss")
	}
}

/* ------------------------------------------------------------------------- */
/* LOCK FILE                                                                 */
/* ------------------------------------------------------------------------- */

func TestUpdateLockfile(t *testing.T) {
	fs := newMockProject(testManifest, testLock)

	change, err := New(fs, Options{}).UpdateLockfile(context.Background(), "0.2.0")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if change == nil {
		t.Fatal("expected a change, got nil")
	}

	want := strings.Replace(testLock,
		"name = \"lox-linein-bridge\"\nversion = \"0.1.0\"",
		"name = \"lox-linein-bridge\"\nversion = \"0.2.0\"", 1)
	if got := mustGet(t, fs, "Cargo.lock"); got != want {
		t.Errorf("lock mismatch\ngot:\n%s\nwant:\n%s", got, want)
	}
	if change.OldVersion != "0.1.0" {
		t.Errorf("OldVersion = %q, want %q", change.OldVersion, "0.1.0")
	}
}

func TestUpdateLockfile_Missing(t *testing.T) {
	fs := newMockProject(testManifest, "")

	change, err := New(fs, Options{}).UpdateLockfile(context.Background(), "0.2.0")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if change != nil {
		t.Errorf("expected nil change, got %+v", change)
	}
}

func TestUpdateLockfile_NotFound(t *testing.T) {
	tests := []struct {
		name string
		lock string
	}{
		{"no such package", "[[package]]\nname = \"other\"\nversion = \"1.0.0\"\n"},
		{"package only as dependency", "[[package]]\nname = \"other\"\nversion = \"1.0.0\"\ndependencies = [\n \"lox-linein-bridge\",\n]\n"},
		{"name without block header", "name = \"lox-linein-bridge\"\nversion = \"0.1.0\"\n"},
		{"name without version", "[[package]]\nname = \"lox-linein-bridge\"\n"},
		{"empty file", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs := core.NewMockFileSystem()
			fs.SetFile("Cargo.lock", []byte(tt.lock))

			_, err := New(fs, Options{}).UpdateLockfile(context.Background(), "0.2.0")
			if !errors.Is(err, ErrLockfileVersionNotFound) {
				t.Fatalf("expected ErrLockfileVersionNotFound, got %v", err)
			}
			var pnf *PatternNotFoundError
			if !errors.As(err, &pnf) || pnf.Package != DefaultPackageName {
				t.Errorf("unexpected error detail: %#v", err)
			}
			if fs.WriteCount("Cargo.lock") != 0 {
				t.Error("lock file must not be written when the pattern is missing")
			}
		})
	}
}

func TestUpdateLockfile_PackageNameIsLiteral(t *testing.T) {
	lock := "[[package]]\nname = \"aXb\"\nversion = \"1.0.0\"\n\n[[package]]\nname = \"a.b\"\nversion = \"1.0.0\"\n"
	fs := core.NewMockFileSystem()
	fs.SetFile("Cargo.lock", []byte(lock))

	if _, err := New(fs, Options{PackageName: "a.b"}).UpdateLockfile(context.Background(), "2.0.0"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := "[[package]]\nname = \"aXb\"\nversion = \"1.0.0\"\n\n[[package]]\nname = \"a.b\"\nversion = \"2.0.0\"\n"
	if got := mustGet(t, fs, "Cargo.lock"); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestUpdateLockfile_StatError(t *testing.T) {
	fs := core.NewMockFileSystem()
	fs.StatErr = errors.New("permission denied")

	if _, err := New(fs, Options{}).UpdateLockfile(context.Background(), "1.0.0"); err == nil {
		t.Fatal("expected error")
	}
}

/* ------------------------------------------------------------------------- */
/* SYNC                                                                      */
/* ------------------------------------------------------------------------- */

func TestSync(t *testing.T) {
	fs := newMockProject(testManifest, testLock)

	res, err := New(fs, Options{}).Sync(context.Background(), "0.2.0")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Version != "0.2.0" || res.Lockfile == nil {
		t.Fatalf("unexpected result: %+v", res)
	}

	lock := mustGet(t, fs, "Cargo.lock")
	if !strings.Contains(lock, "name = \"anyhow\"\nversion = \"1.0.86\"") {
		t.Error("other package blocks must be left alone")
	}
	if !strings.Contains(lock, "name = \"tokio\"\nversion = \"1.38.0\"") {
		t.Error("other package blocks must be left alone")
	}
	if !strings.HasPrefix(lock, "# This file is automatically @generated by Cargo.\n# It is not intended for manual editing.\nversion = 3\n") {
		t.Error("lock file header changed")
	}
}

func TestSync_LockfileMissing(t *testing.T) {
	fs := newMockProject(testManifest, "")

	res, err := New(fs, Options{}).Sync(context.Background(), "0.2.0")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Lockfile != nil {
		t.Errorf("expected nil lock change, got %+v", res.Lockfile)
	}
	if fs.WriteCount("Cargo.toml") != 1 {
		t.Error("manifest should be written exactly once")
	}
	if _, ok := fs.GetFile("Cargo.lock"); ok {
		t.Error("lock file must not be created")
	}
}

func TestSync_LockfileMissDoesNotRollBackManifest(t *testing.T) {
	lock := "[[package]]\nname = \"other\"\nversion = \"1.0.0\"\n"
	fs := newMockProject(testManifest, lock)

	res, err := New(fs, Options{}).Sync(context.Background(), "0.2.0")
	if !errors.Is(err, ErrLockfileVersionNotFound) {
		t.Fatalf("expected ErrLockfileVersionNotFound, got %v", err)
	}
	if res == nil || !res.Manifest.Written {
		t.Fatalf("expected manifest change in partial result, got %+v", res)
	}

	if got := mustGet(t, fs, "Cargo.toml"); !strings.Contains(got, "version = \"0.2.0\"") {
		t.Error("manifest is expected to be already rewritten")
	}
	if got := mustGet(t, fs, "Cargo.lock"); got != lock {
		t.Errorf("lock file modified: %q", got)
	}
}

func TestSync_ManifestMissStopsBeforeLockfile(t *testing.T) {
	fs := newMockProject("[package]\nname = \"x\"\n", testLock)

	_, err := New(fs, Options{}).Sync(context.Background(), "0.2.0")
	if !errors.Is(err, ErrManifestVersionNotFound) {
		t.Fatalf("expected ErrManifestVersionNotFound, got %v", err)
	}
	if fs.WriteCount("Cargo.lock") != 0 {
		t.Error("lock file must not be touched after a manifest failure")
	}
}

func TestSync_Idempotent(t *testing.T) {
	once := newMockProject(testManifest, testLock)
	twice := newMockProject(testManifest, testLock)
	ctx := context.Background()

	if _, err := New(once, Options{}).Sync(ctx, "0.3.0-rc.1"); err != nil {
		t.Fatal(err)
	}
	for range 2 {
		if _, err := New(twice, Options{}).Sync(ctx, "0.3.0-rc.1"); err != nil {
			t.Fatal(err)
		}
	}

	for _, path := range []string{"Cargo.toml", "Cargo.lock"} {
		if mustGet(t, once, path) != mustGet(t, twice, path) {
			t.Errorf("%s differs between one and two runs", path)
		}
	}

	res, err := New(twice, Options{}).Sync(ctx, "0.3.0-rc.1")
	if err != nil {
		t.Fatal(err)
	}
	if !res.Manifest.Unchanged() || !res.Lockfile.Unchanged() {
		t.Errorf("expected unchanged result, got %+v / %+v", res.Manifest, res.Lockfile)
	}
}

func TestSync_DryRun(t *testing.T) {
	fs := newMockProject(testManifest, testLock)

	res, err := New(fs, Options{DryRun: true}).Sync(context.Background(), "9.9.9")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Manifest.Written || res.Lockfile.Written {
		t.Error("dry run must not report written files")
	}
	if res.Manifest.OldVersion != "0.1.0" || res.Lockfile.OldVersion != "0.1.0" {
		t.Errorf("unexpected old versions: %+v", res)
	}
	if fs.WriteCount("Cargo.toml") != 0 || fs.WriteCount("Cargo.lock") != 0 {
		t.Error("dry run must not write")
	}
}

func TestSync_InvalidVersion(t *testing.T) {
	for _, v := range []string{"", "  ", "1.0\"", "1.0\n"} {
		fs := newMockProject(testManifest, testLock)
		if _, err := New(fs, Options{}).Sync(context.Background(), v); !errors.Is(err, ErrUsage) {
			t.Errorf("version %q: expected ErrUsage, got %v", v, err)
		}
		if fs.WriteCount("Cargo.toml") != 0 {
			t.Errorf("version %q: manifest written", v)
		}
	}
}

func TestSync_OpaqueVersion(t *testing.T) {
	fs := newMockProject(testManifest, testLock)

	if _, err := New(fs, Options{}).Sync(context.Background(), "not-semver_$1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := mustGet(t, fs, "Cargo.toml"); !strings.Contains(got, "version = \"not-semver_$1\"\n") {
		t.Errorf("version not written literally:\n%s", got)
	}
}

func TestSync_WriteError(t *testing.T) {
	fs := newMockProject(testManifest, testLock)
	fs.WriteErr = errors.New("read-only file system")

	if _, err := New(fs, Options{}).Sync(context.Background(), "0.2.0"); err == nil {
		t.Fatal("expected error")
	}
}

func TestSync_RealFilesByteIdentical(t *testing.T) {
	dir := t.TempDir()
	manifestPath := filepath.Join(dir, "Cargo.toml")
	lockPath := filepath.Join(dir, "Cargo.lock")

	if err := os.WriteFile(manifestPath, []byte(testManifest), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(lockPath, []byte(testLock), 0o600); err != nil {
		t.Fatal(err)
	}

	s := New(core.NewOSFileSystem(), Options{ManifestPath: manifestPath, LockfilePath: lockPath})
	if _, err := s.Sync(context.Background(), "0.2.0"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	gotManifest, _ := os.ReadFile(manifestPath)
	wantManifest := strings.Replace(testManifest, "version = \"0.1.0\"", "version = \"0.2.0\"", 1)
	if string(gotManifest) != wantManifest {
		t.Errorf("manifest mismatch:\n%s", gotManifest)
	}

	info, err := os.Stat(lockPath)
	if err != nil {
		t.Fatal(err)
	}
	if info.Mode().Perm() != 0o600 {
		t.Errorf("lock file mode = %v, want 0600", info.Mode().Perm())
	}
}

func TestOptionsDefaults(t *testing.T) {
	opts := New(core.NewMockFileSystem(), Options{}).Options()
	if opts.ManifestPath != DefaultManifestPath || opts.LockfilePath != DefaultLockfilePath || opts.PackageName != DefaultPackageName {
		t.Errorf("unexpected defaults: %+v", opts)
	}
}

func TestKindString(t *testing.T) {
	if KindManifest.String() != "manifest" || KindLockfile.String() != "lockfile" || Kind(9).String() != "unknown" {
		t.Error("unexpected Kind.String output")
	}
}
