// Package version exposes the cargosync release version.
package version

import (
	_ "embed"
	"strings"
)

//go:embed .version
var embedded string

// override is set at link time: -ldflags "-X github.com/indaco/cargosync/internal/version.override=1.2.3"
var override string

// GetVersion returns the release version without a leading "v".
func GetVersion() string {
	if v := strings.TrimSpace(override); v != "" {
		return strings.TrimPrefix(v, "v")
	}
	if v := strings.TrimSpace(embedded); v != "" {
		return v
	}
	return "dev"
}
