// Package testutils holds helpers shared by command and CLI tests.
package testutils

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/urfave/cli/v3"
)

// CaptureStdout runs fn and returns everything it printed to os.Stdout.
func CaptureStdout(fn func()) (string, error) {
	old := os.Stdout
	r, w, err := os.Pipe()
	if err != nil {
		return "", err
	}
	os.Stdout = w

	done := make(chan struct{})
	var buf bytes.Buffer
	var copyErr error
	go func() {
		_, copyErr = io.Copy(&buf, r)
		close(done)
	}()

	defer func() { os.Stdout = old }()
	fn()

	w.Close()
	<-done
	return buf.String(), copyErr
}

// WriteTempConfig writes content to .cargosync.yaml in a fresh temp dir and
// returns the file path.
func WriteTempConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), ".cargosync.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("failed to write temp config: %v", err)
	}
	return path
}

// WriteTempProject writes the given files (name -> content) into a fresh temp
// dir and returns the directory.
func WriteTempProject(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		path := filepath.Join(dir, name)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatalf("failed to write %s: %v", name, err)
		}
	}
	return dir
}

// ReadFile reads a file relative to dir and fails the test on error.
func ReadFile(t *testing.T, dir, name string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(dir, name))
	if err != nil {
		t.Fatalf("failed to read %s: %v", name, err)
	}
	return string(data)
}

// RunCLITest runs app with args inside workDir and fails the test on error.
func RunCLITest(t *testing.T, app *cli.Command, args []string, workDir string) {
	t.Helper()
	if err := RunCLITestAllowError(t, app, args, workDir); err != nil {
		t.Fatalf("CLI run failed: %v", err)
	}
}

// RunCLITestAllowError runs app with args inside workDir and returns its error.
func RunCLITestAllowError(t *testing.T, app *cli.Command, args []string, workDir string) error {
	t.Helper()
	t.Chdir(workDir)
	return app.Run(context.Background(), args)
}
