package inspect

import (
	"fmt"
	"strings"

	"github.com/indaco/cargosync/internal/printer"
	"github.com/tidwall/sjson"
)

// OutputFormat controls how a Report is displayed.
type OutputFormat string

const (
	// FormatText outputs human-readable text.
	FormatText OutputFormat = "text"

	// FormatJSON outputs machine-readable JSON.
	FormatJSON OutputFormat = "json"
)

// ParseOutputFormat converts a string to OutputFormat, defaulting to text.
func ParseOutputFormat(s string) OutputFormat {
	if strings.EqualFold(s, string(FormatJSON)) {
		return FormatJSON
	}
	return FormatText
}

// Render formats the report.
func Render(r *Report, format OutputFormat) (string, error) {
	if format == FormatJSON {
		return renderJSON(r)
	}
	return renderText(r), nil
}

func renderText(r *Report) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "%s %s\n", printer.Bold("Package"), r.Package)
	fmt.Fprintf(&sb, "  %-10s %s %s\n", "manifest", r.ManifestVersion, printer.Faint("("+r.ManifestPath+")"))

	switch {
	case !r.LockfilePresent:
		fmt.Fprintf(&sb, "  %-10s %s\n", "lockfile", printer.Faint("not present ("+r.LockfilePath+")"))
	case r.Consistent():
		fmt.Fprintf(&sb, "  %-10s %s %s %s\n", "lockfile", r.LockfileVersion, printer.Faint("("+r.LockfilePath+")"), printer.SuccessBadge("✓"))
	default:
		fmt.Fprintf(&sb, "  %-10s %s %s %s\n", "lockfile", printer.Warning(r.LockfileVersion), printer.Faint("("+r.LockfilePath+")"), printer.Warning("✗ mismatch"))
	}

	return strings.TrimRight(sb.String(), "\n")
}

type jsonField struct {
	path  string
	value any
}

// renderJSON builds the document field by field so the key order is stable.
func renderJSON(r *Report) (string, error) {
	doc := "{}"
	fields := []jsonField{
		{"package", r.Package},
		{"manifest.path", r.ManifestPath},
		{"manifest.version", r.ManifestVersion},
		{"lockfile.path", r.LockfilePath},
		{"lockfile.present", r.LockfilePresent},
		{"consistent", r.Consistent()},
	}
	if r.LockfilePresent {
		fields = append(fields, jsonField{"lockfile.version", r.LockfileVersion})
	}

	var err error
	for _, f := range fields {
		doc, err = sjson.Set(doc, f.path, f.value)
		if err != nil {
			return "", fmt.Errorf("failed to encode %s: %w", f.path, err)
		}
	}
	return doc, nil
}
