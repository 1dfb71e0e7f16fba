package config

import (
	"os"
	"path/filepath"
	"testing"
)

/* ------------------------------------------------------------------------- */
/* HELPERS                                                                   */
/* ------------------------------------------------------------------------- */

// writeConfig writes content as DefaultConfigFile in dir.
func writeConfig(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, DefaultConfigFile)
	if err := os.WriteFile(path, []byte(content), ConfigFilePerm); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	return path
}

func checkError(t *testing.T, err error, wantErr bool) {
	t.Helper()
	if (err != nil) != wantErr {
		t.Fatalf("expected err=%v, got err=%v", wantErr, err)
	}
}

func checkConfig(t *testing.T, got *Config, want Config) {
	t.Helper()
	if got == nil {
		t.Fatal("expected non-nil config, got nil")
	}
	if *got != want {
		t.Errorf("config = %+v, want %+v", *got, want)
	}
}
