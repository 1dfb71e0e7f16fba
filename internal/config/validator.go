package config

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/indaco/cargosync/internal/core"
	"github.com/indaco/cargosync/internal/tui"
)

// ValidationResult represents the result of a validation check.
type ValidationResult struct {
	// Category is the validation category (e.g., "Manifest", "Package").
	Category string

	// Passed indicates if the check passed.
	Passed bool

	// Message provides details about the validation result.
	Message string

	// Warning indicates if this is a warning rather than an error.
	Warning bool
}

// Validator checks a configuration against the files it points to.
type Validator struct {
	fs          core.FileSystem
	cfg         *Config
	validations []ValidationResult
}

// NewValidator creates a new configuration validator.
func NewValidator(fsys core.FileSystem, cfg *Config) *Validator {
	return &Validator{
		fs:          fsys,
		cfg:         cfg,
		validations: make([]ValidationResult, 0),
	}
}

// Validate runs all validation checks and returns the results.
func (v *Validator) Validate(ctx context.Context) ([]ValidationResult, error) {
	v.validations = make([]ValidationResult, 0)

	if err := v.validateManifest(ctx); err != nil {
		return nil, err
	}
	if err := v.validateLockfile(ctx); err != nil {
		return nil, err
	}
	v.validatePackage()
	v.validateTheme()

	return v.validations, nil
}

func (v *Validator) validateManifest(ctx context.Context) error {
	exists, err := v.exists(ctx, v.cfg.Manifest)
	if err != nil {
		return err
	}
	if !exists {
		v.addValidation("Manifest", false, fmt.Sprintf("%s does not exist", v.cfg.Manifest), false)
		return nil
	}
	v.addValidation("Manifest", true, v.cfg.Manifest, false)
	return nil
}

// validateLockfile only warns: a missing lock file is skipped on sync.
func (v *Validator) validateLockfile(ctx context.Context) error {
	exists, err := v.exists(ctx, v.cfg.Lockfile)
	if err != nil {
		return err
	}
	if !exists {
		v.addValidation("Lock file", true, fmt.Sprintf("%s does not exist and will be skipped", v.cfg.Lockfile), true)
		return nil
	}
	v.addValidation("Lock file", true, v.cfg.Lockfile, false)
	return nil
}

func (v *Validator) validatePackage() {
	switch {
	case strings.TrimSpace(v.cfg.Package) == "":
		v.addValidation("Package", false, "package name must not be empty", false)
	case strings.ContainsAny(v.cfg.Package, "\"\n\r"):
		v.addValidation("Package", false, fmt.Sprintf("package name %q must not contain quotes or line breaks", v.cfg.Package), false)
	default:
		v.addValidation("Package", true, v.cfg.Package, false)
	}
}

func (v *Validator) validateTheme() {
	if v.cfg.Theme == "" || tui.IsValidTheme(v.cfg.Theme) {
		return
	}
	v.addValidation("Theme", false,
		fmt.Sprintf("unknown theme %q (valid: %s)", v.cfg.Theme, strings.Join(tui.ValidThemes, ", ")), false)
}

func (v *Validator) exists(ctx context.Context, path string) (bool, error) {
	if _, err := v.fs.Stat(ctx, path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, fmt.Errorf("failed to stat %q: %w", path, err)
	}
	return true, nil
}

// addValidation adds a validation result to the list.
func (v *Validator) addValidation(category string, passed bool, message string, warning bool) {
	v.validations = append(v.validations, ValidationResult{
		Category: category,
		Passed:   passed,
		Message:  message,
		Warning:  warning,
	})
}

// HasErrors returns true if any validation failed.
func HasErrors(results []ValidationResult) bool {
	return ErrorCount(results) > 0
}

// ErrorCount returns the number of failed validations.
func ErrorCount(results []ValidationResult) int {
	count := 0
	for _, r := range results {
		if !r.Passed && !r.Warning {
			count++
		}
	}
	return count
}

// Errors joins every failed validation into a single error, or returns nil.
func Errors(results []ValidationResult) error {
	var errs []error
	for _, r := range results {
		if !r.Passed && !r.Warning {
			errs = append(errs, fmt.Errorf("%s: %s", strings.ToLower(r.Category), r.Message))
		}
	}
	return errors.Join(errs...)
}
