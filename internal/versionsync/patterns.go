package versionsync

import (
	"fmt"
	"regexp"
)

// ManifestLinePattern matches a top-level `version = "<value>"` line.
// Group 1 is the value. Readers use it to see the line a sync rewrites.
const ManifestLinePattern = `(?m)^version = "([^"]+)"$`

var manifestPattern = regexp.MustCompile(ManifestLinePattern)

// manifestValueGroup is the capture group holding the manifest version.
const manifestValueGroup = 1

// lockValueGroup is the capture group holding the locked version.
const lockValueGroup = 2

// lockPattern matches from a `[[package]]` header through the
// `name = "<pkg>"` line up to the first `version = "` after it.
// Group 1 is everything up to the opening quote, group 2 the value, group 3
// the closing quote.
func lockPattern(pkg string) *regexp.Regexp {
	return regexp.MustCompile(fmt.Sprintf(
		`(?ms)(\[\[package\]\]\n(?:[^\n]*\n)*?name = "%s"\n(?:[^\n]*\n)*?version = ")([^"]+)(")`,
		regexp.QuoteMeta(pkg),
	))
}
