package parser

// Format represents the supported ways of locating a version in a file.
type Format string

const (
	// FormatTOML reads a dot-notation field from a TOML document (Cargo.toml).
	FormatTOML Format = "toml"

	// FormatRegex extracts the first capturing group of a regex.
	FormatRegex Format = "regex"
)

// String returns the string representation of the format.
func (f Format) String() string {
	return string(f)
}

// IsValid returns true if the format is a known valid format.
func (f Format) IsValid() bool {
	switch f {
	case FormatTOML, FormatRegex:
		return true
	default:
		return false
	}
}

// FileConfig describes how to read a version from a specific file.
type FileConfig struct {
	// Path is the file path (absolute or relative).
	Path string

	// Format specifies the file format.
	Format Format

	// Field is the dot-notation path to the version field (TOML only).
	// Example: "package.version", "workspace.package.version"
	Field string

	// Pattern is the regex pattern for regex format.
	// Must contain a capturing group for the version.
	Pattern string
}

// Result represents the result of reading a version from a file.
type Result struct {
	// Version is the extracted version string.
	Version string

	// Path is the file path that was read.
	Path string

	// Format is the format that was used.
	Format Format

	// Field is the field path that was used (for structured formats).
	Field string
}
