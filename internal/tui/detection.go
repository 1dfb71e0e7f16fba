// Package tui wraps the interactive prompts and decides when they may be shown.
package tui

import (
	"os"

	"golang.org/x/term"
)

// ciEnvs are environment variables set by common CI providers.
var ciEnvs = []string{
	"CI",
	"CONTINUOUS_INTEGRATION",
	"GITHUB_ACTIONS",
	"GITLAB_CI",
	"CIRCLECI",
	"BUILDKITE",
	"JENKINS_HOME",
	"TF_BUILD",
}

// IsInteractiveFn is swapped out by tests.
var IsInteractiveFn = IsInteractive

// IsInteractive reports whether prompts can be shown: stdin and stdout must
// both be terminals and no CI environment may be detected.
func IsInteractive() bool {
	if !term.IsTerminal(int(os.Stdout.Fd())) || !term.IsTerminal(int(os.Stdin.Fd())) { //nolint:gosec // G115: fd is small
		return false
	}
	return !IsCI()
}

// IsCI reports whether a known CI environment variable is set.
func IsCI() bool {
	for _, env := range ciEnvs {
		if os.Getenv(env) != "" {
			return true
		}
	}
	return false
}
